package report

import (
	"strings"
	"testing"

	"github.com/Priyuuuuu/smartdata-standardization/domain/clean"
	"github.com/Priyuuuuu/smartdata-standardization/domain/profile"
)

func sampleProfile() *profile.Profile {
	return &profile.Profile{
		RowCount:            4,
		ColumnCount:         2,
		NullValues:          1,
		NullPercentage:      12.5,
		DuplicateRows:       1,
		DuplicatePercentage: 25,
		Columns: []profile.Column{
			{
				Name: "age", Type: profile.TypeNumber,
				UniqueCount: 3, NullCount: 1, NullPercentage: 25,
				Numeric: &profile.NumericStats{Min: 21, Max: 40, Mean: 30.5, Median: 30},
			},
			{
				Name: "city", Type: profile.TypeString,
				UniqueCount: 2,
				Categorical: &profile.CategoricalStats{
					Categories: []profile.CategoryCount{{Value: "NY", Count: 3}, {Value: "LA", Count: 1}},
					Mode:       "NY", ModeCount: 3,
				},
			},
		},
	}
}

func TestMarkdown(t *testing.T) {
	suggestions := []clean.Suggestion{
		{
			Column: "age", Issue: clean.IssueMissing,
			Description:    "Column 'age' has 1 missing values (25.0%)",
			Recommendation: "Fill with mean or median",
			AutoFix:        true,
		},
	}

	md := NewBuilder().Markdown("people", sampleProfile(), suggestions)

	expected := []string{
		"# Data Profile: people",
		"- Rows: 4",
		"- Missing cells: 1 (12.5%)",
		"- Duplicate rows: 1 (25.0%)",
		"## Columns",
		"| age | number | 3 | 1 | 25.0% |",
		"### age (number)",
		"| 21 | 40 | 30.5 | 30 |",
		"### city (string)",
		"Most common value: **NY** (3 occurrences)",
		"| NY | 3 |",
		"## Suggestions",
		"1. **missing** (age)",
		"Recommendation: Fill with mean or median",
	}
	for _, want := range expected {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q\n\n%s", want, md)
		}
	}
}

func TestMarkdownNoSuggestions(t *testing.T) {
	md := NewBuilder().Markdown("clean set", sampleProfile(), nil)

	if !strings.Contains(md, "No issues detected.") {
		t.Errorf("expected empty suggestion note, got:\n%s", md)
	}
}

func TestMarkdownSkipsStatlessColumns(t *testing.T) {
	prof := &profile.Profile{
		RowCount:    1,
		ColumnCount: 1,
		Columns:     []profile.Column{{Name: "blob", Type: profile.TypeMixed}},
	}

	md := NewBuilder().Markdown("mixed", prof, nil)

	if strings.Contains(md, "### blob") {
		t.Errorf("expected no section for a column without statistics:\n%s", md)
	}
}

func TestToHTML(t *testing.T) {
	md := NewBuilder().Markdown("people", sampleProfile(), nil)
	out := string(ToHTML(md))

	for _, want := range []string{"<h1", "<table>", "<strong>NY</strong>"} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML missing %q\n\n%s", want, out)
		}
	}
}
