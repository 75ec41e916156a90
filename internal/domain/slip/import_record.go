package slip

import (
	"time"

	"github.com/slipdesk/backend/internal/domain/shared"
)

// ImportStatus represents the outcome of one processing run
type ImportStatus string

const (
	ImportStatusCompleted ImportStatus = "COMPLETED"
	ImportStatusPartial   ImportStatus = "PARTIAL" // some rows skipped
	ImportStatusFailed    ImportStatus = "FAILED"
)

// IsValid checks if the ImportStatus is a valid value
func (s ImportStatus) IsValid() bool {
	switch s {
	case ImportStatusCompleted, ImportStatusPartial, ImportStatusFailed:
		return true
	}
	return false
}

// ImportRecord captures one processing run of an order export file, kept
// for the import history view.
type ImportRecord struct {
	shared.BaseEntity
	Filename      string
	TotalRows     int
	ProcessedRows int
	SkippedRows   int
	DocumentCount int
	Status        ImportStatus
	ErrorMessage  string
	CompletedAt   time.Time
}

// NewImportRecord creates a record for a finished processing run
func NewImportRecord(filename string, totalRows, processedRows, skippedRows, documentCount int) *ImportRecord {
	status := ImportStatusCompleted
	if skippedRows > 0 {
		status = ImportStatusPartial
	}

	return &ImportRecord{
		BaseEntity:    shared.NewBaseEntity(),
		Filename:      filename,
		TotalRows:     totalRows,
		ProcessedRows: processedRows,
		SkippedRows:   skippedRows,
		DocumentCount: documentCount,
		Status:        status,
		CompletedAt:   time.Now(),
	}
}

// NewFailedImportRecord creates a record for a run that produced nothing
func NewFailedImportRecord(filename string, totalRows int, errMessage string) *ImportRecord {
	return &ImportRecord{
		BaseEntity:   shared.NewBaseEntity(),
		Filename:     filename,
		TotalRows:    totalRows,
		Status:       ImportStatusFailed,
		ErrorMessage: errMessage,
		CompletedAt:  time.Now(),
	}
}
