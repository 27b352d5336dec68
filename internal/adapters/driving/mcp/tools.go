package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
	"github.com/ambrosestarlit/layerex/internal/logger"
)

// PathInput names the document a tool works on.
type PathInput struct {
	Path string `json:"path" jsonschema:"path of the PSD document on the local filesystem"`
}

// LayerOutput describes one entry of the flattened layer list.
type LayerOutput struct {
	Index   int    `json:"index"`
	Ordinal int    `json:"ordinal,omitempty"`
	Name    string `json:"name"`
	Group   bool   `json:"group"`
	Depth   int    `json:"depth"`
	Hidden  bool   `json:"hidden,omitempty"`
	Left    int    `json:"left,omitempty"`
	Top     int    `json:"top,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

// ListLayersOutput is the output schema for the list_layers tool.
type ListLayersOutput struct {
	Document   string        `json:"document"`
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	LayerCount int           `json:"layer_count"`
	Layers     []LayerOutput `json:"layers"`
}

// ExportInput is the input schema for the export_layers tool.
type ExportInput struct {
	Path      string `json:"path" jsonschema:"path of the PSD document on the local filesystem"`
	Ordinals  []int  `json:"ordinals,omitempty" jsonschema:"layer numbers from list_layers to export; empty exports every layer"`
	Mode      string `json:"mode,omitempty" jsonschema:"individual, merged or list (default individual)"`
	OutputDir string `json:"output_dir,omitempty" jsonschema:"directory to write to; defaults to the configured output directory"`
	Native    bool   `json:"native,omitempty" jsonschema:"crop individual layers to their own size instead of the full canvas"`
	Format    string `json:"format,omitempty" jsonschema:"image format: png, bmp or tiff; defaults to the configured format"`
}

// FailureOutput describes a layer that could not be exported.
type FailureOutput struct {
	Ordinal int    `json:"ordinal,omitempty"`
	Name    string `json:"name"`
	Reason  string `json:"reason"`
}

// ExportOutput is the output schema for the export_layers tool.
type ExportOutput struct {
	ID       string          `json:"id"`
	Mode     string          `json:"mode"`
	Files    []string        `json:"files"`
	Saved    []string        `json:"saved"`
	Failures []FailureOutput `json:"failures,omitempty"`
}

// ManifestOutput is the output schema for the layer_manifest tool.
type ManifestOutput struct {
	Manifest string `json:"manifest"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_layers",
		Description: "List the flattened layer tree of a PSD document with the layer numbers used for export",
	}, s.handleListLayers)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "export_layers",
		Description: "Export layers of a PSD document as individual images, one merged image or a text layer list",
	}, s.handleExportLayers)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "layer_manifest",
		Description: "Render the text layer list of a PSD document without writing any file",
	}, s.handleLayerManifest)
}

func (s *Server) handleListLayers(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PathInput,
) (*mcp.CallToolResult, ListLayersOutput, error) {
	session, err := s.openDocument(ctx, input.Path)
	if err != nil {
		return nil, ListLayersOutput{}, err
	}

	doc := session.Document()
	entries := session.Entries()
	output := ListLayersOutput{
		Document:   doc.Name,
		Width:      doc.Width,
		Height:     doc.Height,
		LayerCount: domain.CountLeaves(entries),
		Layers:     make([]LayerOutput, len(entries)),
	}
	for i, e := range entries {
		layer := LayerOutput{
			Index:   i,
			Ordinal: e.Ordinal,
			Name:    e.DisplayName,
			Group:   e.IsGroup,
			Depth:   e.Depth,
		}
		if src := e.Source; src != nil {
			layer.Hidden = src.Hidden
			layer.Left, layer.Top = src.Left, src.Top
			layer.Width, layer.Height = src.Width(), src.Height()
		}
		output.Layers[i] = layer
	}

	return nil, output, nil
}

func (s *Server) handleExportLayers(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExportInput,
) (*mcp.CallToolResult, ExportOutput, error) {
	mode := domain.ExportIndividual
	if input.Mode != "" {
		mode = domain.ExportMode(input.Mode)
	}
	if !mode.IsValid() {
		return nil, ExportOutput{}, fmt.Errorf("%w: export mode %q", domain.ErrInvalidInput, input.Mode)
	}

	session, err := s.openDocument(ctx, input.Path)
	if err != nil {
		return nil, ExportOutput{}, err
	}

	if len(input.Ordinals) == 0 {
		err = session.SelectAll()
	} else {
		err = session.SelectOrdinals(input.Ordinals)
	}
	if err != nil {
		return nil, ExportOutput{}, fmt.Errorf("select layers: %w", err)
	}

	placement := s.defaultPlacement()
	if input.Native {
		placement = domain.PlacementNative
	}
	result, err := session.Export(ctx, domain.ExportRequest{
		Mode:      mode,
		Placement: placement,
		Format:    input.Format,
		OutputDir: input.OutputDir,
	}, nil)
	if err != nil {
		return nil, ExportOutput{}, fmt.Errorf("export: %w", err)
	}

	entries := session.Entries()
	output := ExportOutput{
		ID:    result.ID,
		Mode:  result.Mode.String(),
		Files: result.Files,
		Saved: result.Saved,
	}
	for _, f := range result.Failures {
		failure := FailureOutput{Name: f.Name, Reason: f.Reason}
		if f.Index >= 0 && f.Index < len(entries) {
			failure.Ordinal = entries[f.Index].Ordinal
		}
		output.Failures = append(output.Failures, failure)
	}

	return nil, output, nil
}

// defaultPlacement returns the configured placement for individual exports.
func (s *Server) defaultPlacement() domain.Placement {
	if s.ports.Settings == nil {
		return domain.DefaultSettings().Export.Placement()
	}
	settings, err := s.ports.Settings.Get()
	if err != nil {
		logger.Warn("mcp: read settings: %v", err)
		return domain.DefaultSettings().Export.Placement()
	}
	return settings.Export.Placement()
}

func (s *Server) handleLayerManifest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PathInput,
) (*mcp.CallToolResult, ManifestOutput, error) {
	session, err := s.openDocument(ctx, input.Path)
	if err != nil {
		return nil, ManifestOutput{}, err
	}

	manifest, err := session.Manifest()
	if err != nil {
		return nil, ManifestOutput{}, err
	}
	return nil, ManifestOutput{Manifest: manifest}, nil
}
