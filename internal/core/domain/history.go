package domain

import "time"

// ExportRecord is a persisted summary of one export run.
type ExportRecord struct {
	ID           string
	Document     string
	Mode         ExportMode
	FileCount    int
	FailureCount int
	Saved        []string
	CreatedAt    time.Time
}

// NewExportRecord summarises an export result.
func NewExportRecord(r *ExportResult) ExportRecord {
	return ExportRecord{
		ID:           r.ID,
		Document:     r.Document,
		Mode:         r.Mode,
		FileCount:    len(r.Files),
		FailureCount: len(r.Failures),
		Saved:        append([]string(nil), r.Saved...),
		CreatedAt:    r.FinishedAt,
	}
}
