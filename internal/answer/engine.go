// Package answer resolves free-text questions about a dataset with
// deterministic keyword matching. Intents form an ordered rule chain
// evaluated first-match-wins; per-column statistics are recomputed from
// the live dataset cells on every call, never cached.
package answer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Priyuuuuu/smartdata-standardization/domain/dataset"
	"github.com/Priyuuuuu/smartdata-standardization/domain/profile"
	"github.com/Priyuuuuu/smartdata-standardization/internal/infer"
)

// FallbackAnswer is returned when no rule recognizes the question
const FallbackAnswer = "I'm not sure how to answer that. Try asking about row counts, columns, or specific column statistics."

// Engine answers questions against one dataset snapshot and its profile
type Engine struct {
	rules []rule
}

// rule pairs an intent predicate with its handler
type rule struct {
	matches func(q query) bool
	respond func(q query) string
}

// query carries the lowered question and the data being asked about
type query struct {
	text    string
	dataset dataset.Dataset
	profile profile.Profile
}

// NewEngine builds the rule chain in priority order: row count, column
// list, then per-column questions.
func NewEngine() *Engine {
	e := &Engine{}
	e.rules = []rule{
		{matches: e.asksRowCount, respond: e.answerRowCount},
		{matches: e.asksColumns, respond: e.answerColumns},
		{matches: e.asksAboutColumn, respond: e.answerColumn},
	}
	return e
}

// Answer resolves one question. Unrecognized intents yield the fixed
// fallback text, never an error.
func (e *Engine) Answer(question string, ds dataset.Dataset, prof profile.Profile) string {
	q := query{
		text:    strings.ToLower(question),
		dataset: ds,
		profile: prof,
	}
	for _, r := range e.rules {
		if r.matches(q) {
			return r.respond(q)
		}
	}
	return FallbackAnswer
}

func (e *Engine) asksRowCount(q query) bool {
	return containsAny(q.text, "how many rows", "how many records", "number of rows", "number of records", "row count")
}

func (e *Engine) answerRowCount(q query) string {
	return fmt.Sprintf("There are %d rows in this dataset.", q.profile.RowCount)
}

func (e *Engine) asksColumns(q query) bool {
	return containsAny(q.text, "how many columns", "how many fields", "what columns", "what fields", "which columns", "which fields", "list the columns", "list the fields")
}

func (e *Engine) answerColumns(q query) string {
	return fmt.Sprintf("There are %d columns: %s.",
		q.profile.ColumnCount, strings.Join(q.dataset.Fields, ", "))
}

func (e *Engine) asksAboutColumn(q query) bool {
	return e.subjectColumn(q) != ""
}

// subjectColumn returns the first field, in column order, whose name
// appears in the question
func (e *Engine) subjectColumn(q query) string {
	for _, field := range q.dataset.Fields {
		if strings.Contains(q.text, strings.ToLower(field)) {
			return field
		}
	}
	return ""
}

// answerColumn checks the sub-intents in fixed order, falling back to a
// generic column summary when no statistic keyword matches
func (e *Engine) answerColumn(q query) string {
	field := e.subjectColumn(q)
	values := q.dataset.ColumnValues(field)

	switch {
	case containsAny(q.text, "max", "highest"):
		return e.numericAnswer(field, values, "maximum", func(data []float64) float64 {
			max := data[0]
			for _, v := range data[1:] {
				if v > max {
					max = v
				}
			}
			return max
		})
	case containsAny(q.text, "min", "lowest"):
		return e.numericAnswer(field, values, "minimum", func(data []float64) float64 {
			min := data[0]
			for _, v := range data[1:] {
				if v < min {
					min = v
				}
			}
			return min
		})
	case containsAny(q.text, "average", "mean", "avg"):
		return e.numericAnswer(field, values, "average", func(data []float64) float64 {
			sum := 0.0
			for _, v := range data {
				sum += v
			}
			return sum / float64(len(data))
		})
	case containsAny(q.text, "unique", "distinct"):
		return fmt.Sprintf("Column '%s' has %d unique values.", field, uniqueCount(values))
	case containsAny(q.text, "missing", "null", "empty"):
		missing := missingCount(values)
		return fmt.Sprintf("Column '%s' has %d missing values (%.1f%%).",
			field, missing, percentage(missing, len(values)))
	}

	return e.summarizeColumn(field, values)
}

// numericAnswer computes one aggregate over the cells that actually
// carry numbers
func (e *Engine) numericAnswer(field string, values []dataset.Value, label string, aggregate func([]float64) float64) string {
	data := numbers(values)
	if len(data) == 0 {
		return fmt.Sprintf("Column '%s' has no numeric values to compute a %s from.", field, label)
	}
	return fmt.Sprintf("The %s value of '%s' is %s.", label, field, formatNumber(aggregate(data)))
}

// summarizeColumn reports uniqueness and missingness plus the kind of
// the first row's value. The kind comes from that single sample, not
// from the profiled column type.
func (e *Engine) summarizeColumn(field string, values []dataset.Value) string {
	missing := missingCount(values)
	summary := fmt.Sprintf("Column '%s' has %d unique values and %d missing values (%.1f%%).",
		field, uniqueCount(values), missing, percentage(missing, len(values)))
	if len(values) > 0 {
		summary += fmt.Sprintf(" The first value looks like a %s.", infer.Classify(values[0]))
	}
	return summary
}

func numbers(values []dataset.Value) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if v.IsNumeric() {
			out = append(out, v.AsFloat64())
		}
	}
	return out
}

func uniqueCount(values []dataset.Value) int {
	distinct := make(map[string]struct{}, len(values))
	for _, v := range values {
		distinct[v.Canonical()] = struct{}{}
	}
	return len(distinct)
}

func missingCount(values []dataset.Value) int {
	missing := 0
	for _, v := range values {
		if v.IsNull {
			missing++
		}
	}
	return missing
}

func percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// formatNumber renders a float the way cells render in exports: the
// shortest exact decimal form
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
