// Package excel reads XLSX workbooks into datasets
package excel

import (
	"path/filepath"
	"strings"

	"github.com/Priyuuuuu/smartdata-standardization/domain/core"
	"github.com/Priyuuuuu/smartdata-standardization/domain/dataset"
	"github.com/Priyuuuuu/smartdata-standardization/internal/errors"
	"github.com/Priyuuuuu/smartdata-standardization/internal/infer"

	"github.com/xuri/excelize/v2"
)

// Reader parses XLSX workbooks into datasets
type Reader struct{}

// NewReader creates a new workbook reader
func NewReader() *Reader {
	return &Reader{}
}

// Read parses the first sheet of the workbook at path into a dataset.
// The first row is the header; later rows become records with cells
// coerced to their natural types, the same shape the CSV reader yields.
func (r *Reader) Read(path string) (*dataset.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.ParseError("failed to open workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, core.ErrEmptyDataset
	}

	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.ParseError("failed to read sheet", err)
	}
	if len(raw) == 0 {
		return nil, core.ErrEmptyDataset
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return fromRows(raw, name)
}

// fromRows converts raw string rows into a dataset. Ragged rows are
// padded with nulls; cells beyond the header are dropped.
func fromRows(raw [][]string, displayName string) (*dataset.Dataset, error) {
	headerRow := raw[0]
	fields := make([]string, len(headerRow))
	for i, header := range headerRow {
		fields[i] = strings.TrimSpace(header)
	}

	rows := make([]dataset.Row, 0, len(raw)-1)
	for _, record := range raw[1:] {
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
		return nil, errors.ParseError("invalid sheet structure", err)
	}
	return &ds, nil
}
