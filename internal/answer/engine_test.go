package answer

import (
	"strings"
	"testing"

	"github.com/Priyuuuuu/smartdata-standardization/domain/dataset"
	"github.com/Priyuuuuu/smartdata-standardization/domain/profile"
	"github.com/Priyuuuuu/smartdata-standardization/internal/profiling"
)

func fixture() (dataset.Dataset, profile.Profile) {
	ds := dataset.New([]string{"age", "city"}, "people.csv")
	ds.Rows = []dataset.Row{
		{"age": dataset.NewNumberValue(25), "city": dataset.NewStringValue("NY")},
		{"age": dataset.NewNullValue(), "city": dataset.NewStringValue("NY")},
		{"age": dataset.NewNumberValue(25), "city": dataset.NewStringValue("NY")},
	}
	return ds, profiling.NewProfiler().ProfileDataset(ds)
}

func TestRowCountQuestion(t *testing.T) {
	ds, prof := fixture()
	e := NewEngine()

	got := e.Answer("How many rows are in this dataset?", ds, prof)
	want := "There are 3 rows in this dataset."
	if got != want {
		t.Errorf("answer = %q, want %q", got, want)
	}

	// records phrasing hits the same intent
	if a := e.Answer("how many records do we have", ds, prof); a != want {
		t.Errorf("records answer = %q, want %q", a, want)
	}
}

func TestColumnListQuestion(t *testing.T) {
	ds, prof := fixture()

	got := NewEngine().Answer("What columns does this dataset have?", ds, prof)

	if !strings.Contains(got, "2 columns") {
		t.Errorf("answer %q misses the column count", got)
	}
	if !strings.Contains(got, "age") || !strings.Contains(got, "city") {
		t.Errorf("answer %q misses the column names", got)
	}
}

func TestColumnAggregates(t *testing.T) {
	ds := dataset.New([]string{"price"}, "prices.csv")
	ds.Rows = []dataset.Row{
		{"price": dataset.NewNumberValue(10)},
		{"price": dataset.NewNumberValue(20)},
		{"price": dataset.NewNumberValue(60)},
	}
	prof := profiling.NewProfiler().ProfileDataset(ds)
	e := NewEngine()

	tests := []struct {
		question string
		want     string
	}{
		{"What is the maximum price?", "The maximum value of 'price' is 60."},
		{"what is the highest price", "The maximum value of 'price' is 60."},
		{"What is the minimum price?", "The minimum value of 'price' is 10."},
		{"lowest price?", "The minimum value of 'price' is 10."},
		{"What is the average price?", "The average value of 'price' is 30."},
		{"mean price", "The average value of 'price' is 30."},
	}
	for _, test := range tests {
		if got := e.Answer(test.question, ds, prof); got != test.want {
			t.Errorf("Answer(%q) = %q, want %q", test.question, got, test.want)
		}
	}
}

func TestUniqueAndMissingQuestions(t *testing.T) {
	ds, prof := fixture()
	e := NewEngine()

	unique := e.Answer("How many unique values does age have?", ds, prof)
	if unique != "Column 'age' has 2 unique values." {
		t.Errorf("unique answer = %q", unique)
	}

	missing := e.Answer("How many missing values in age?", ds, prof)
	if !strings.Contains(missing, "1 missing values") {
		t.Errorf("missing answer = %q", missing)
	}
	if !strings.Contains(missing, "33.3%") {
		t.Errorf("missing answer %q misses the percentage", missing)
	}
}

func TestGenericColumnSummary(t *testing.T) {
	ds, prof := fixture()

	got := NewEngine().Answer("Tell me about age", ds, prof)

	if !strings.Contains(got, "Column 'age'") {
		t.Errorf("summary %q misses the column name", got)
	}
	if !strings.Contains(got, "unique") || !strings.Contains(got, "missing") {
		t.Errorf("summary %q misses unique/missing counts", got)
	}
	// the kind comes from the first row's value, a single sample
	if !strings.Contains(got, "looks like a number") {
		t.Errorf("summary %q misses the sampled kind", got)
	}
}

func TestAnswersReflectLiveDataset(t *testing.T) {
	ds, prof := fixture()
	e := NewEngine()

	before := e.Answer("What is the maximum age?", ds, prof)
	if before != "The maximum value of 'age' is 25." {
		t.Fatalf("before = %q", before)
	}

	// grow the dataset but keep the stale profile: per-column answers
	// must track the cells, not the profile
	grown := ds.WithRows(append(ds.Clone().Rows, dataset.Row{
		"age":  dataset.NewNumberValue(99),
		"city": dataset.NewStringValue("LA"),
	}))

	after := e.Answer("What is the maximum age?", grown, prof)
	if after != "The maximum value of 'age' is 99." {
		t.Errorf("after = %q, want live maximum 99", after)
	}
}

func TestSubjectColumnPicksFirstMatchInOrder(t *testing.T) {
	ds := dataset.New([]string{"score", "score_total"}, "s.csv")
	ds.Rows = []dataset.Row{
		{"score": dataset.NewNumberValue(1), "score_total": dataset.NewNumberValue(10)},
	}
	prof := profiling.NewProfiler().ProfileDataset(ds)

	got := NewEngine().Answer("what is the maximum score_total?", ds, prof)

	// "score" appears first in column order and matches as a substring
	if !strings.Contains(got, "'score'") {
		t.Errorf("answer %q should target the first matching field", got)
	}
}

func TestFallbackAnswer(t *testing.T) {
	ds, prof := fixture()

	got := NewEngine().Answer("Is the weather nice today?", ds, prof)
	if got != FallbackAnswer {
		t.Errorf("answer = %q, want fixed fallback", got)
	}
}

func TestNonNumericAggregateIsGraceful(t *testing.T) {
	ds, prof := fixture()

	got := NewEngine().Answer("What is the maximum city?", ds, prof)
	if !strings.Contains(got, "no numeric values") {
		t.Errorf("answer = %q, want a graceful non-numeric reply", got)
	}
}
