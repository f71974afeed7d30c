package infer

import (
	"math"
	"strconv"
	"strings"

	"github.com/Priyuuuuu/smartdata-standardization/domain/dataset"
)

// Coerce converts a raw text cell into its natural typed value. Empty
// text becomes null, numeric and boolean literals become typed cells,
// and everything else, date literals included, stays a string.
func Coerce(raw string) dataset.Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return dataset.NewNullValue()
	}
	if isDateString(trimmed) {
		return dataset.NewStringValue(trimmed)
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return dataset.NewNumberValue(f)
	}
	switch strings.ToLower(trimmed) {
	case "true":
		return dataset.NewBoolValue(true)
	case "false":
		return dataset.NewBoolValue(false)
	}
	return dataset.NewStringValue(trimmed)
}
