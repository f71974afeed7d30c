// Package profiling computes the statistical profile of a dataset: one
// Column summary per field plus dataset-wide null and duplicate-row
// metrics. Profiling is a pure function of the dataset snapshot and
// never fails on conforming input; degenerate shapes (zero rows, empty
// numeric columns) produce guarded zeros or unset statistics instead of
// errors.
package profiling

import (
	"github.com/montanaflynn/stats"

	"github.com/Priyuuuuu/smartdata-standardization/domain/core"
	"github.com/Priyuuuuu/smartdata-standardization/domain/dataset"
	"github.com/Priyuuuuu/smartdata-standardization/domain/profile"
	"github.com/Priyuuuuu/smartdata-standardization/internal/infer"
)

// Profiler computes column and dataset profiles
type Profiler struct{}

// NewProfiler creates a new profiler
func NewProfiler() *Profiler {
	return &Profiler{}
}

// ProfileDataset profiles every field in header order and computes the
// dataset-wide metrics. NullValues always equals the sum of per-column
// null counts.
func (p *Profiler) ProfileDataset(ds dataset.Dataset) profile.Profile {
	rowCount := ds.RowCount()
	columnCount := len(ds.Fields)

	columns := make([]profile.Column, 0, columnCount)
	nullValues := 0
	for _, field := range ds.Fields {
		col := p.ProfileColumn(field, ds.ColumnValues(field), rowCount)
		nullValues += col.NullCount
		columns = append(columns, col)
	}

	duplicateRows := p.countDuplicateRows(ds)

	return profile.Profile{
		RowCount:            rowCount,
		ColumnCount:         columnCount,
		Columns:             columns,
		NullValues:          nullValues,
		NullPercentage:      percentage(nullValues, rowCount*columnCount),
		DuplicateRows:       duplicateRows,
		DuplicatePercentage: percentage(duplicateRows, rowCount),
	}
}

// ProfileColumn computes the statistical summary of one field. The
// rowCount comes from the enclosing dataset so percentages stay correct
// even when some rows omit the field entirely.
func (p *Profiler) ProfileColumn(name string, values []dataset.Value, rowCount int) profile.Column {
	col := profile.Column{
		Name: name,
		Type: infer.InferColumnType(values),
	}

	nullCount := 0
	distinct := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v.IsNull {
			nullCount++
		}
		distinct[v.Canonical()] = struct{}{}
	}

	col.NullCount = nullCount
	col.NullPercentage = percentage(nullCount, rowCount)
	col.UniqueCount = len(distinct)

	switch col.Type {
	case profile.TypeNumber:
		col.Numeric = p.computeNumericStats(values)
	case profile.TypeString, profile.TypeBoolean:
		col.Categorical = p.computeCategoricalStats(values)
	}

	return col
}

// computeNumericStats summarizes the cells that actually carry numbers.
// A column can be inferred numeric from numeric-looking strings yet
// hold no number cells; its stats stay unset rather than zero.
func (p *Profiler) computeNumericStats(values []dataset.Value) *profile.NumericStats {
	data := make([]float64, 0, len(values))
	for _, v := range values {
		if v.IsNumeric() {
			data = append(data, v.AsFloat64())
		}
	}
	if len(data) == 0 {
		return nil
	}

	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)

	return &profile.NumericStats{
		Min:    min,
		Max:    max,
		Mean:   mean,
		Median: median,
	}
}

// computeCategoricalStats builds the frequency table over non-null
// values keyed by their text form. Categories keep first-encountered
// order, which also fixes mode tie-breaking.
func (p *Profiler) computeCategoricalStats(values []dataset.Value) *profile.CategoricalStats {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, v := range values {
		if v.IsNull {
			continue
		}
		key := v.Text()
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	cat := &profile.CategoricalStats{
		Categories: make([]profile.CategoryCount, 0, len(order)),
	}
	for _, key := range order {
		cat.Categories = append(cat.Categories, profile.CategoryCount{
			Value: key,
			Count: counts[key],
		})
		if counts[key] > cat.ModeCount {
			cat.Mode = key
			cat.ModeCount = counts[key]
		}
	}
	return cat
}

// countDuplicateRows counts rows beyond the first occurrence of each
// canonical row key
func (p *Profiler) countDuplicateRows(ds dataset.Dataset) int {
	seen := make(map[core.RowKey]bool, len(ds.Rows))
	duplicates := 0
	for _, row := range ds.Rows {
		key := ds.RowKey(row)
		if seen[key] {
			duplicates++
			continue
		}
		seen[key] = true
	}
	return duplicates
}

// percentage guards the degenerate dataset shapes: a zero denominator
// reports 0, never NaN
func percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
