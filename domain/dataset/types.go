package dataset

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Priyuuuuu/smartdata-standardization/domain/core"
)

// Value represents one typed cell with deterministic coercion
type Value struct {
	Type      ValueType `json:"type"`
	StringVal *string   `json:"string_val,omitempty"`
	NumberVal *float64  `json:"number_val,omitempty"`
	BoolVal   *bool     `json:"bool_val,omitempty"`
	IsNull    bool      `json:"is_null"`
}

// ValueType defines the storage type for cell values
type ValueType string

const (
	ValueTypeString  ValueType = "string"
	ValueTypeNumber  ValueType = "number"
	ValueTypeBoolean ValueType = "boolean"
	ValueTypeNull    ValueType = "null"
)

// NewStringValue creates a string value; empty strings are treated as null
func NewStringValue(s string) Value {
	if s == "" {
		return Value{Type: ValueTypeNull, IsNull: true}
	}
	return Value{Type: ValueTypeString, StringVal: &s}
}

// NewNumberValue creates a number value
func NewNumberValue(n float64) Value {
	return Value{Type: ValueTypeNumber, NumberVal: &n}
}

// NewBoolValue creates a boolean value
func NewBoolValue(b bool) Value {
	return Value{Type: ValueTypeBoolean, BoolVal: &b}
}

// NewNullValue creates a null value
func NewNullValue() Value {
	return Value{Type: ValueTypeNull, IsNull: true}
}

// IsNumeric returns true if the value holds a valid number
func (v Value) IsNumeric() bool {
	return v.Type == ValueTypeNumber && v.NumberVal != nil
}

// IsString returns true if the value holds a valid string
func (v Value) IsString() bool {
	return v.Type == ValueTypeString && v.StringVal != nil
}

// IsBoolean returns true if the value holds a valid boolean
func (v Value) IsBoolean() bool {
	return v.Type == ValueTypeBoolean && v.BoolVal != nil
}

// AsFloat64 returns the numeric value as float64, or 0 if not numeric
func (v Value) AsFloat64() float64 {
	if v.NumberVal != nil {
		return *v.NumberVal
	}
	return 0.0
}

// AsString returns the string value, or empty string if not a string
func (v Value) AsString() string {
	if v.StringVal != nil {
		return *v.StringVal
	}
	return ""
}

// AsBoolean returns the boolean value, or false if not a boolean
func (v Value) AsBoolean() bool {
	if v.BoolVal != nil {
		return *v.BoolVal
	}
	return false
}

// Text renders the value in its natural text form. Numbers keep the
// shortest exact decimal representation, booleans render as true/false,
// nulls render as the empty string. Used for CSV export and frequency
// table keys.
func (v Value) Text() string {
	switch {
	case v.IsNull:
		return ""
	case v.NumberVal != nil:
		return strconv.FormatFloat(*v.NumberVal, 'f', -1, 64)
	case v.BoolVal != nil:
		return strconv.FormatBool(*v.BoolVal)
	case v.StringVal != nil:
		return *v.StringVal
	}
	return ""
}

// Canonical renders the cell with a kind tag for value-equality
// comparisons. The number 25 and the string "25" never collide, and
// every null form collapses to one marker.
func (v Value) Canonical() string {
	switch {
	case v.IsNull:
		return "_"
	case v.NumberVal != nil:
		return "n:" + strconv.FormatFloat(*v.NumberVal, 'g', -1, 64)
	case v.BoolVal != nil:
		return "b:" + strconv.FormatBool(*v.BoolVal)
	case v.StringVal != nil:
		return "s:" + strconv.Quote(*v.StringVal)
	}
	return "_"
}

// MarshalJSON renders the value as its natural scalar
func (v Value) MarshalJSON() ([]byte, error) {
	switch {
	case v.IsNull:
		return []byte("null"), nil
	case v.NumberVal != nil:
		return json.Marshal(*v.NumberVal)
	case v.BoolVal != nil:
		return json.Marshal(*v.BoolVal)
	case v.StringVal != nil:
		return json.Marshal(*v.StringVal)
	}
	return []byte("null"), nil
}

// UnmarshalJSON reads a natural scalar back into a typed value
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case nil:
		*v = NewNullValue()
	case bool:
		*v = NewBoolValue(x)
	case float64:
		*v = NewNumberValue(x)
	case string:
		*v = NewStringValue(x)
	default:
		return fmt.Errorf("unsupported cell value of type %T", raw)
	}
	return nil
}

// Row maps field names to cell values. Absent fields are null.
type Row map[string]Value

// Cell returns the value for a field, null when the field is absent
func (r Row) Cell(field string) Value {
	v, ok := r[field]
	if !ok {
		return NewNullValue()
	}
	return v
}

// With returns a copy of the row with one field overridden. The
// receiver is never modified.
func (r Row) With(field string, v Value) Row {
	out := make(Row, len(r)+1)
	for k, val := range r {
		out[k] = val
	}
	out[field] = v
	return out
}

// Dataset is a parsed table: ordered unique field names plus ordered
// row records. Transforms never mutate a Dataset in place; they return
// a new value.
type Dataset struct {
	Fields      []string `json:"fields"`
	Rows        []Row    `json:"rows"`
	DisplayName string   `json:"display_name"`
}

// New creates a dataset with the given header and display name
func New(fields []string, displayName string) Dataset {
	return Dataset{
		Fields:      append([]string(nil), fields...),
		Rows:        []Row{},
		DisplayName: displayName,
	}
}

// Validate checks the structural invariants: at least one field, no
// duplicate or blank field names, and every row keyed within Fields
func (d Dataset) Validate() error {
	if len(d.Fields) == 0 {
		return core.ErrEmptyDataset
	}
	seen := make(map[string]bool, len(d.Fields))
	for _, f := range d.Fields {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("blank field name in header")
		}
		if seen[f] {
			return fmt.Errorf("duplicate field name %q", f)
		}
		seen[f] = true
	}
	for i, row := range d.Rows {
		for k := range row {
			if !seen[k] {
				return fmt.Errorf("row %d references unknown field %q", i, k)
			}
		}
	}
	return nil
}

// RowCount returns the number of rows
func (d Dataset) RowCount() int { return len(d.Rows) }

// ColumnValues returns the ordered cell values of one field, one entry
// per row, with absent cells reported as null
func (d Dataset) ColumnValues(field string) []Value {
	out := make([]Value, len(d.Rows))
	for i, row := range d.Rows {
		out[i] = row.Cell(field)
	}
	return out
}

// HasField reports whether the header contains the field
func (d Dataset) HasField(field string) bool {
	for _, f := range d.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// WithRows returns a dataset sharing this header and display name but
// holding the given rows
func (d Dataset) WithRows(rows []Row) Dataset {
	return Dataset{
		Fields:      append([]string(nil), d.Fields...),
		Rows:        rows,
		DisplayName: d.DisplayName,
	}
}

// Clone returns a deep copy. Cell values are immutable so they are
// shared; the field slice, row slice and row maps are fresh.
func (d Dataset) Clone() Dataset {
	rows := make([]Row, len(d.Rows))
	for i, row := range d.Rows {
		cp := make(Row, len(row))
		for k, v := range row {
			cp[k] = v
		}
		rows[i] = cp
	}
	return Dataset{
		Fields:      append([]string(nil), d.Fields...),
		Rows:        rows,
		DisplayName: d.DisplayName,
	}
}

// RowKey converts a row to its canonical comparable key: every field in
// header order rendered with a type tag, then hashed. Equal rows map to
// equal keys regardless of map iteration order.
func (d Dataset) RowKey(row Row) core.RowKey {
	var sb strings.Builder
	for i, field := range d.Fields {
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(field)
		sb.WriteByte('=')
		sb.WriteString(row.Cell(field).Canonical())
	}
	return core.NewRowKey([]byte(sb.String()))
}
