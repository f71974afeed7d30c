package ports

import (
	"io"

	"github.com/Priyuuuuu/smartdata-standardization/domain/dataset"
)

// DatasetReader parses a stored upload into a structured dataset
type DatasetReader interface {
	// Read parses the file at path into a dataset
	Read(path string) (*dataset.Dataset, error)
}

// DatasetWriter serializes a dataset for download
type DatasetWriter interface {
	// Write renders the dataset to w
	Write(w io.Writer, ds *dataset.Dataset) error
}
