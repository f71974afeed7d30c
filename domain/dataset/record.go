package dataset

import (
	"github.com/Priyuuuuu/smartdata-standardization/domain/core"
)

// Status represents the processing state of a stored dataset
type Status string

const (
	StatusUploaded   Status = "uploaded"
	StatusProcessing Status = "processing"
	StatusReady      Status = "ready"
	StatusFailed     Status = "failed"
)

// Record is a stored dataset with its parsed table, file information
// and processing state. The Data and Profile payloads are persisted as
// JSON documents by the repository adapters.
type Record struct {
	ID core.DatasetID `json:"id"`

	// File information
	OriginalFilename string `json:"original_filename"`
	FilePath         string `json:"file_path,omitempty"`
	FileSize         int64  `json:"file_size"`

	DisplayName string `json:"display_name"`

	// Table statistics filled once profiling completes
	RowCount    int `json:"row_count"`
	ColumnCount int `json:"column_count"`

	// Processing state
	Status       Status `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`

	// Parsed table; nil until parsing completes
	Data *Dataset `json:"data,omitempty"`

	CreatedAt core.Timestamp `json:"created_at"`
	UpdatedAt core.Timestamp `json:"updated_at"`
}

// IsReady reports whether profiling has completed
func (r *Record) IsReady() bool {
	return r.Status == StatusReady
}
