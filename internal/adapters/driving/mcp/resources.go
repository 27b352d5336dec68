package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	uriScheme = "layerex://"

	// historyLimit bounds the records listed by the history resource.
	historyLimit = 50
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Current export, preview and history settings",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "history",
		Name:        "history",
		Description: "Recent export runs, newest first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "history/{exportId}",
		Name:        "export-run",
		Description: "One export run with the files it saved",
		MIMEType:    "application/json",
	}, s.handleExportRunResource)
}

type settingsInfo struct {
	OutputDir        string `json:"output_dir"`
	Format           string `json:"format"`
	FullCanvas       bool   `json:"full_canvas"`
	SingleFileDirect bool   `json:"single_file_direct"`
	PreviewMaxSize   int    `json:"preview_max_size"`
	HistoryEnabled   bool   `json:"history_enabled"`
}

type recordInfo struct {
	ID        string   `json:"id"`
	Document  string   `json:"document"`
	Mode      string   `json:"mode"`
	Files     int      `json:"files"`
	Skipped   int      `json:"skipped,omitempty"`
	Saved     []string `json:"saved,omitempty"`
	CreatedAt string   `json:"created_at"`
}

func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Settings == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	settings, err := s.ports.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	return jsonResult(req.Params.URI, settingsInfo{
		OutputDir:        settings.Export.OutputDir,
		Format:           settings.Export.Format,
		FullCanvas:       settings.Export.FullCanvas,
		SingleFileDirect: settings.Export.SingleFileDirect,
		PreviewMaxSize:   settings.Preview.MaxSize,
		HistoryEnabled:   settings.History.Enabled,
	})
}

func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return jsonResult(req.Params.URI, []recordInfo{})
	}

	records, err := s.ports.History.List(ctx, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}

	infos := make([]recordInfo, len(records))
	for i, r := range records {
		infos[i] = recordInfo{
			ID:        r.ID,
			Document:  r.Document,
			Mode:      r.Mode.String(),
			Files:     r.FileCount,
			Skipped:   r.FailureCount,
			CreatedAt: r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}
	}
	return jsonResult(req.Params.URI, infos)
}

func (s *Server) handleExportRunResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	id := extractExportID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	records, err := s.ports.History.List(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	for _, r := range records {
		if r.ID != id {
			continue
		}
		return jsonResult(req.Params.URI, recordInfo{
			ID:        r.ID,
			Document:  r.Document,
			Mode:      r.Mode.String(),
			Files:     r.FileCount,
			Skipped:   r.FailureCount,
			Saved:     r.Saved,
			CreatedAt: r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractExportID extracts the run ID from a URI like layerex://history/{exportId}.
func extractExportID(uri string) string {
	const prefix = uriScheme + "history/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
