// Package cleaning turns a dataset profile into actionable cleaning
// suggestions and applies a caller-selected subset of them. Generation
// is a pure function of the profile; application is a pure function of
// the dataset, its profile and the selection.
package cleaning

import (
	"fmt"

	"github.com/Priyuuuuu/smartdata-standardization/domain/clean"
	"github.com/Priyuuuuu/smartdata-standardization/domain/profile"
)

// SuggestConfig defines the suggestion thresholds
type SuggestConfig struct {
	// OutlierMeanMultiplier flags a numeric column when its max exceeds
	// the mean by this factor. A cheap heuristic, intentionally not a
	// rigorous outlier test.
	OutlierMeanMultiplier float64 `json:"outlier_mean_multiplier"`
}

// DefaultSuggestConfig returns the standard thresholds
func DefaultSuggestConfig() SuggestConfig {
	return SuggestConfig{
		OutlierMeanMultiplier: 3,
	}
}

// Generator emits cleaning suggestions from a profile
type Generator struct {
	config SuggestConfig
}

// NewGenerator creates a generator with the given config
func NewGenerator(config SuggestConfig) *Generator {
	return &Generator{config: config}
}

// Suggest derives the ordered suggestion list from a profile. Rule
// order is fixed so output stays reproducible: missing values per
// column first, then one dataset-wide duplicate suggestion, then
// outliers per numeric column.
func (g *Generator) Suggest(prof profile.Profile) []clean.Suggestion {
	suggestions := make([]clean.Suggestion, 0)

	for _, col := range prof.Columns {
		if col.NullPercentage > 0 {
			suggestions = append(suggestions, g.missingSuggestion(col))
		}
	}

	if prof.DuplicatePercentage > 0 {
		suggestions = append(suggestions, clean.Suggestion{
			Column: clean.MultipleColumns,
			Issue:  clean.IssueDuplicate,
			Description: fmt.Sprintf("Dataset contains %d duplicate rows (%.1f%%)",
				prof.DuplicateRows, prof.DuplicatePercentage),
			Recommendation: "Remove duplicate rows, keeping the first occurrence",
			AutoFix:        true,
		})
	}

	for _, col := range prof.Columns {
		if s, ok := g.outlierSuggestion(col); ok {
			suggestions = append(suggestions, s)
		}
	}

	return suggestions
}

// missingSuggestion proposes the fill strategy that matches the column
// shape: median for numeric columns, the mode when one exists,
// otherwise a placeholder
func (g *Generator) missingSuggestion(col profile.Column) clean.Suggestion {
	s := clean.Suggestion{
		Column: col.Name,
		Issue:  clean.IssueMissing,
		Description: fmt.Sprintf("Column '%s' has %d missing values (%.1f%%)",
			col.Name, col.NullCount, col.NullPercentage),
		AutoFix: true,
	}

	switch {
	case col.Type == profile.TypeNumber:
		s.Recommendation = "Fill with mean or median"
	case col.Categorical.HasMode():
		s.Recommendation = fmt.Sprintf("Fill with most common value: %s", col.Categorical.Mode)
	default:
		s.Recommendation = "Remove rows or fill with placeholder"
	}
	return s
}

// outlierSuggestion flags a numeric column whose max is far above the
// mean. Constant columns never fire; neither do columns whose inferred
// numeric type produced no numeric cells.
func (g *Generator) outlierSuggestion(col profile.Column) (clean.Suggestion, bool) {
	if col.Type != profile.TypeNumber || col.Numeric == nil {
		return clean.Suggestion{}, false
	}
	ns := col.Numeric
	if ns.Max-ns.Min <= 0 {
		return clean.Suggestion{}, false
	}
	if ns.Max <= ns.Mean*g.config.OutlierMeanMultiplier {
		return clean.Suggestion{}, false
	}

	return clean.Suggestion{
		Column: col.Name,
		Issue:  clean.IssueOutlier,
		Description: fmt.Sprintf("Column '%s' may contain outliers (max %.2f exceeds %.0fx the mean %.2f)",
			col.Name, ns.Max, g.config.OutlierMeanMultiplier, ns.Mean),
		Recommendation: "Cap extreme values at a multiple of the column median",
		AutoFix:        true,
	}, true
}
