// Package infer decides the semantic type of a column from its raw
// cell values. Inference is deliberately permissive: a string cell that
// reads as a numeric or date literal votes for that type even though
// the cell itself stays a string. Summary statistics later restrict
// themselves to cells that actually carry the type.
package infer

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Priyuuuuu/smartdata-standardization/domain/dataset"
	"github.com/Priyuuuuu/smartdata-standardization/domain/profile"
)

// Date literal shapes, anchored at the value start: YYYY-MM-DD,
// MM/DD/YYYY and MM-DD-YYYY.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`),
	regexp.MustCompile(`^\d{2}/\d{2}/\d{4}`),
	regexp.MustCompile(`^\d{2}-\d{2}-\d{4}`),
}

// InferColumnType classifies every non-null value of a column and
// returns the unanimous type, or mixed when the values disagree. A
// column with no non-null values defaults to string.
func InferColumnType(values []dataset.Value) profile.ColumnType {
	var columnType profile.ColumnType
	for _, v := range values {
		if v.IsNull {
			continue
		}
		t := Classify(v)
		if columnType == "" {
			columnType = t
			continue
		}
		if columnType != t {
			return profile.TypeMixed
		}
	}
	if columnType == "" {
		return profile.TypeString
	}
	return columnType
}

// Classify determines the semantic type of a single cell value. Null
// cells classify as string, matching the all-null column default.
func Classify(v dataset.Value) profile.ColumnType {
	switch {
	case v.IsNull:
		return profile.TypeString
	case v.IsNumeric():
		return profile.TypeNumber
	case v.IsBoolean():
		return profile.TypeBoolean
	case v.IsString():
		return classifyString(v.AsString())
	}
	return profile.TypeString
}

func classifyString(s string) profile.ColumnType {
	if isDateString(s) {
		return profile.TypeDate
	}
	if isNumberLiteral(s) {
		return profile.TypeNumber
	}
	if isBoolLiteral(s) {
		return profile.TypeBoolean
	}
	return profile.TypeString
}

func isDateString(s string) bool {
	for _, p := range datePatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

func isNumberLiteral(s string) bool {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return false
	}
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

func isBoolLiteral(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "false":
		return true
	}
	return false
}
