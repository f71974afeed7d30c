package cleaning

import (
	"github.com/Priyuuuuu/smartdata-standardization/domain/clean"
	"github.com/Priyuuuuu/smartdata-standardization/domain/core"
	"github.com/Priyuuuuu/smartdata-standardization/domain/dataset"
	"github.com/Priyuuuuu/smartdata-standardization/domain/profile"
	"github.com/Priyuuuuu/smartdata-standardization/internal/infer"
)

// CleanConfig defines the cleaning fallbacks and caps
type CleanConfig struct {
	// OutlierCapMultiplier caps numeric values above median times this
	// factor. Only the upper bound is capped.
	OutlierCapMultiplier float64 `json:"outlier_cap_multiplier"`
	// NumericFallback fills missing numeric cells when the column has
	// no median.
	NumericFallback float64 `json:"numeric_fallback"`
	// TextFallback fills missing non-numeric cells when the column has
	// no mode.
	TextFallback string `json:"text_fallback"`
}

// DefaultCleanConfig returns the standard fallbacks
func DefaultCleanConfig() CleanConfig {
	return CleanConfig{
		OutlierCapMultiplier: 3,
		NumericFallback:      0,
		TextFallback:         "Unknown",
	}
}

// Transformer applies selected suggestions to a dataset
type Transformer struct {
	config CleanConfig
}

// NewTransformer creates a transformer with the given config
func NewTransformer(config CleanConfig) *Transformer {
	return &Transformer{config: config}
}

// Apply runs the selected suggestions in the caller's order, each one
// against the dataset produced by the previous step, and returns a new
// dataset. The input dataset and profile are never modified. Fill and
// cap values come from the supplied profile, not from re-profiling the
// intermediate data. Suggestions that are not auto-fixable, reference a
// column unknown to the profile or the dataset, name a column for the
// dataset-wide duplicate issue, or carry an unhandled issue kind are
// skipped silently.
func (t *Transformer) Apply(ds dataset.Dataset, prof profile.Profile, selected []clean.Suggestion) dataset.Dataset {
	current := ds.WithRows(ds.Rows)

	for _, s := range selected {
		if !s.AutoFix {
			continue
		}
		switch s.Issue {
		case clean.IssueDuplicate:
			if s.DatasetWide() {
				current = t.removeDuplicates(current)
			}
		case clean.IssueMissing:
			current = t.fillMissing(current, prof, s.Column)
		case clean.IssueOutlier:
			current = t.capOutliers(current, prof, s.Column)
		}
	}

	return current
}

// removeDuplicates keeps the first occurrence of each canonical row
// key, preserving encounter order
func (t *Transformer) removeDuplicates(ds dataset.Dataset) dataset.Dataset {
	seen := make(map[core.RowKey]bool, len(ds.Rows))
	rows := make([]dataset.Row, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		key := ds.RowKey(row)
		if seen[key] {
			continue
		}
		seen[key] = true
		rows = append(rows, row)
	}
	return ds.WithRows(rows)
}

// fillMissing replaces null cells in one column with the profile's
// median, mode, or the configured fallback
func (t *Transformer) fillMissing(ds dataset.Dataset, prof profile.Profile, column string) dataset.Dataset {
	col := prof.Column(column)
	if col == nil || !ds.HasField(column) {
		return ds
	}

	fill := t.fillValue(col)
	rows := make([]dataset.Row, len(ds.Rows))
	for i, row := range ds.Rows {
		if row.Cell(column).IsNull {
			rows[i] = row.With(column, fill)
		} else {
			rows[i] = row
		}
	}
	return ds.WithRows(rows)
}

// fillValue picks the replacement for missing cells: median for numeric
// columns, mode when defined, otherwise the configured default
func (t *Transformer) fillValue(col *profile.Column) dataset.Value {
	if col.Type == profile.TypeNumber && col.Numeric != nil {
		return dataset.NewNumberValue(col.Numeric.Median)
	}
	if col.Categorical.HasMode() {
		// the frequency table keys are text forms; restore the natural
		// type so boolean columns are filled with boolean cells
		return infer.Coerce(col.Categorical.Mode)
	}
	if col.Type == profile.TypeNumber {
		return dataset.NewNumberValue(t.config.NumericFallback)
	}
	return dataset.NewStringValue(t.config.TextFallback)
}

// capOutliers caps numeric cells above median times the configured
// multiplier. Values below the cap are untouched; there is no
// symmetric lower bound.
func (t *Transformer) capOutliers(ds dataset.Dataset, prof profile.Profile, column string) dataset.Dataset {
	col := prof.Column(column)
	if col == nil || col.Numeric == nil || !ds.HasField(column) {
		return ds
	}

	cap := col.Numeric.Median * t.config.OutlierCapMultiplier
	rows := make([]dataset.Row, len(ds.Rows))
	for i, row := range ds.Rows {
		cell := row.Cell(column)
		if cell.IsNumeric() && cell.AsFloat64() > cap {
			rows[i] = row.With(column, dataset.NewNumberValue(cap))
		} else {
			rows[i] = row
		}
	}
	return ds.WithRows(rows)
}
