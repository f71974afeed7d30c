package cleaning

import (
	"strings"
	"testing"

	"github.com/Priyuuuuu/smartdata-standardization/domain/clean"
	"github.com/Priyuuuuu/smartdata-standardization/domain/dataset"
	"github.com/Priyuuuuu/smartdata-standardization/domain/profile"
	"github.com/Priyuuuuu/smartdata-standardization/internal/profiling"
)

func TestSuggestOrderingAndKinds(t *testing.T) {
	ds := dataset.New([]string{"age", "city", "price"}, "orders.csv")
	ds.Rows = []dataset.Row{
		{"age": dataset.NewNumberValue(25), "city": dataset.NewStringValue("NY"), "price": dataset.NewNumberValue(10)},
		{"age": dataset.NewNullValue(), "city": dataset.NewStringValue("NY"), "price": dataset.NewNumberValue(10)},
		{"age": dataset.NewNumberValue(25), "city": dataset.NewStringValue("NY"), "price": dataset.NewNumberValue(10)},
		{"age": dataset.NewNumberValue(30), "city": dataset.NewNullValue(), "price": dataset.NewNumberValue(1000)},
	}

	prof := profiling.NewProfiler().ProfileDataset(ds)
	suggestions := NewGenerator(DefaultSuggestConfig()).Suggest(prof)

	// missing per column in column order, then duplicate, then outlier
	wantIssues := []clean.Issue{clean.IssueMissing, clean.IssueMissing, clean.IssueOutlier}
	wantColumns := []string{"age", "city", "price"}
	var gotIssues []clean.Issue
	var gotColumns []string
	for _, s := range suggestions {
		if s.Issue == clean.IssueDuplicate {
			continue
		}
		gotIssues = append(gotIssues, s.Issue)
		gotColumns = append(gotColumns, s.Column)
	}
	for i := range wantIssues {
		if i >= len(gotIssues) || gotIssues[i] != wantIssues[i] || gotColumns[i] != wantColumns[i] {
			t.Fatalf("suggestions = %+v, want issue order %v on columns %v", suggestions, wantIssues, wantColumns)
		}
	}

	// missing suggestions precede the duplicate one, which precedes outliers
	idx := func(issue clean.Issue) int {
		for i, s := range suggestions {
			if s.Issue == issue {
				return i
			}
		}
		return -1
	}
	if !(idx(clean.IssueMissing) < idx(clean.IssueDuplicate) && idx(clean.IssueDuplicate) < idx(clean.IssueOutlier)) {
		t.Errorf("rule order violated: %+v", suggestions)
	}

	for _, s := range suggestions {
		if !s.AutoFix {
			t.Errorf("suggestion %+v should be auto-fixable", s)
		}
		if s.Issue == clean.IssueInconsistent {
			t.Errorf("no rule should produce the inconsistent kind: %+v", s)
		}
	}
}

func TestMissingRecommendationTexts(t *testing.T) {
	tests := []struct {
		name     string
		column   profile.Column
		wantText string
	}{
		{
			name: "numeric column suggests mean or median",
			column: profile.Column{
				Name: "age", Type: profile.TypeNumber, NullCount: 1, NullPercentage: 25,
				Numeric: &profile.NumericStats{Min: 20, Max: 30, Mean: 25, Median: 25},
			},
			wantText: "mean or median",
		},
		{
			name: "categorical column suggests the mode",
			column: profile.Column{
				Name: "city", Type: profile.TypeString, NullCount: 1, NullPercentage: 25,
				Categorical: &profile.CategoricalStats{
					Categories: []profile.CategoryCount{{Value: "NY", Count: 3}},
					Mode:       "NY", ModeCount: 3,
				},
			},
			wantText: "most common value: NY",
		},
		{
			name: "column without a mode suggests a placeholder",
			column: profile.Column{
				Name: "note", Type: profile.TypeString, NullCount: 4, NullPercentage: 100,
				Categorical: &profile.CategoricalStats{Categories: []profile.CategoryCount{}},
			},
			wantText: "placeholder",
		},
	}

	g := NewGenerator(DefaultSuggestConfig())
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			prof := profile.Profile{
				RowCount: 4, ColumnCount: 1,
				Columns:    []profile.Column{test.column},
				NullValues: test.column.NullCount,
			}
			suggestions := g.Suggest(prof)
			if len(suggestions) == 0 {
				t.Fatal("expected a missing suggestion")
			}
			s := suggestions[0]
			if s.Issue != clean.IssueMissing {
				t.Fatalf("issue = %s, want missing", s.Issue)
			}
			if !strings.Contains(s.Recommendation, test.wantText) {
				t.Errorf("recommendation %q does not mention %q", s.Recommendation, test.wantText)
			}
		})
	}
}

func TestOutlierRule(t *testing.T) {
	tests := []struct {
		name     string
		numeric  *profile.NumericStats
		colType  profile.ColumnType
		wantFire bool
	}{
		{
			name:     "fires when max greatly exceeds mean",
			numeric:  &profile.NumericStats{Min: 10, Max: 1000, Mean: 257.5, Median: 10},
			colType:  profile.TypeNumber,
			wantFire: true,
		},
		{
			name:     "constant column never fires",
			numeric:  &profile.NumericStats{Min: 10, Max: 10, Mean: 10, Median: 10},
			colType:  profile.TypeNumber,
			wantFire: false,
		},
		{
			name:     "max within threshold stays quiet",
			numeric:  &profile.NumericStats{Min: 1, Max: 29, Mean: 10, Median: 9},
			colType:  profile.TypeNumber,
			wantFire: false,
		},
		{
			name:     "numeric type without stats stays quiet",
			numeric:  nil,
			colType:  profile.TypeNumber,
			wantFire: false,
		},
		{
			name:     "non-numeric column stays quiet",
			numeric:  &profile.NumericStats{Min: 10, Max: 1000, Mean: 20, Median: 10},
			colType:  profile.TypeString,
			wantFire: false,
		},
	}

	g := NewGenerator(DefaultSuggestConfig())
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			prof := profile.Profile{
				RowCount: 4, ColumnCount: 1,
				Columns: []profile.Column{{Name: "v", Type: test.colType, Numeric: test.numeric}},
			}
			suggestions := g.Suggest(prof)
			fired := false
			for _, s := range suggestions {
				if s.Issue == clean.IssueOutlier {
					fired = true
				}
			}
			if fired != test.wantFire {
				t.Errorf("outlier fired = %t, want %t", fired, test.wantFire)
			}
		})
	}
}

func TestOutlierMultiplierIsConfigurable(t *testing.T) {
	prof := profile.Profile{
		RowCount: 3, ColumnCount: 1,
		Columns: []profile.Column{{
			Name: "v", Type: profile.TypeNumber,
			Numeric: &profile.NumericStats{Min: 1, Max: 25, Mean: 10, Median: 9},
		}},
	}

	strict := NewGenerator(SuggestConfig{OutlierMeanMultiplier: 2})
	if len(strict.Suggest(prof)) != 1 {
		t.Error("expected outlier with multiplier 2 since 25 > 10*2")
	}

	lax := NewGenerator(SuggestConfig{OutlierMeanMultiplier: 3})
	if len(lax.Suggest(prof)) != 0 {
		t.Error("expected no outlier with multiplier 3 since 25 <= 10*3")
	}
}

func TestNoSuggestionsForCleanDataset(t *testing.T) {
	ds := dataset.New([]string{"a", "b"}, "clean.csv")
	ds.Rows = []dataset.Row{
		{"a": dataset.NewNumberValue(1), "b": dataset.NewStringValue("x")},
		{"a": dataset.NewNumberValue(2), "b": dataset.NewStringValue("y")},
	}

	prof := profiling.NewProfiler().ProfileDataset(ds)
	suggestions := NewGenerator(DefaultSuggestConfig()).Suggest(prof)

	if len(suggestions) != 0 {
		t.Errorf("expected no suggestions, got %+v", suggestions)
	}
}
