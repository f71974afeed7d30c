// Package csvio reads and writes datasets as CSV
package csvio

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Priyuuuuu/smartdata-standardization/domain/core"
	"github.com/Priyuuuuu/smartdata-standardization/domain/dataset"
	"github.com/Priyuuuuu/smartdata-standardization/internal/errors"
	"github.com/Priyuuuuu/smartdata-standardization/internal/infer"
)

// Reader parses CSV files into datasets
type Reader struct{}

// NewReader creates a new CSV reader
func NewReader() *Reader {
	return &Reader{}
}

// Read parses the CSV file at path into a dataset
func (r *Reader) Read(path string) (*dataset.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.ParseError("failed to open CSV file", err)
	}
	defer file.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(file, name)
}

// Parse reads CSV data into a dataset. The first record is the header
// row; every later record becomes a row keyed by header name. Cells are
// coerced to their natural types, ragged rows are padded with nulls and
// extra cells are dropped.
func Parse(r io.Reader, displayName string) (*dataset.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.ParseError("failed to read CSV data", err)
	}
	if len(records) == 0 {
		return nil, core.ErrEmptyDataset
	}

	headerRow := records[0]
	fields := make([]string, len(headerRow))
	for i, header := range headerRow {
		fields[i] = strings.TrimSpace(header)
	}

	rows := make([]dataset.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(dataset.Row, len(fields))
		for j, field := range fields {
			if j < len(record) {
				row[field] = infer.Coerce(record[j])
			} else {
				row[field] = dataset.NewNullValue()
			}
		}
		rows = append(rows, row)
	}

	ds := dataset.New(fields, displayName).WithRows(rows)
	if err := ds.Validate(); err != nil {
		return nil, errors.ParseError("invalid CSV structure", err)
	}
	return &ds, nil
}

// Writer renders datasets as CSV
type Writer struct{}

// NewWriter creates a new CSV writer
func NewWriter() *Writer {
	return &Writer{}
}

// Write renders the dataset to w
func (w *Writer) Write(out io.Writer, ds *dataset.Dataset) error {
	return Export(out, ds)
}

// Export writes the dataset as CSV: header row first, then every row in
// order with cells rendered in their natural text form. Nulls become
// empty cells, so a parse of the output reproduces the dataset.
func Export(out io.Writer, ds *dataset.Dataset) error {
	writer := csv.NewWriter(out)

	if err := writer.Write(ds.Fields); err != nil {
		return errors.InternalError("failed to write CSV header", err)
	}

	record := make([]string, len(ds.Fields))
	for _, row := range ds.Rows {
		for i, field := range ds.Fields {
			record[i] = row.Cell(field).Text()
		}
		if err := writer.Write(record); err != nil {
			return errors.InternalError("failed to write CSV row", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
