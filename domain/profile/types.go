package profile

// ColumnType represents the automatically inferred semantic type of a column
type ColumnType string

const (
	TypeNumber  ColumnType = "number"
	TypeBoolean ColumnType = "boolean"
	TypeDate    ColumnType = "date"
	TypeString  ColumnType = "string"
	TypeMixed   ColumnType = "mixed"
)

// IsNumeric reports whether columns of this type carry numeric statistics
func (t ColumnType) IsNumeric() bool {
	return t == TypeNumber
}

// NumericStats contains summary statistics for numeric columns. Present
// only when the column held at least one numeric value.
type NumericStats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// CategoryCount represents a category value and its frequency
type CategoryCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// CategoricalStats contains the frequency table for string and boolean
// columns. Categories keep first-encountered order so mode tie-breaking
// stays reproducible across runs.
type CategoricalStats struct {
	Categories []CategoryCount `json:"categories"`
	Mode       string          `json:"mode"`
	ModeCount  int             `json:"mode_count"`
}

// HasMode reports whether at least one non-null value was observed
func (c *CategoricalStats) HasMode() bool {
	return c != nil && len(c.Categories) > 0
}

// Column is the read-only statistical view over one field across all
// rows. Exactly one of Numeric and Categorical may be set, depending on
// the inferred type; both stay nil for date and mixed columns.
type Column struct {
	Name           string            `json:"name"`
	Type           ColumnType        `json:"type"`
	UniqueCount    int               `json:"unique_count"`
	NullCount      int               `json:"null_count"`
	NullPercentage float64           `json:"null_percentage"`
	Numeric        *NumericStats     `json:"numeric,omitempty"`
	Categorical    *CategoricalStats `json:"categorical,omitempty"`
}

// Profile is the aggregate statistical summary of one dataset snapshot.
// It is a pure function of the dataset: profiling the same input twice
// yields identical values, including floating-point results.
type Profile struct {
	RowCount            int      `json:"row_count"`
	ColumnCount         int      `json:"column_count"`
	Columns             []Column `json:"columns"`
	NullValues          int      `json:"null_values"`
	NullPercentage      float64  `json:"null_percentage"`
	DuplicateRows       int      `json:"duplicate_rows"`
	DuplicatePercentage float64  `json:"duplicate_percentage"`
}

// Column returns the profiled column with the given name, or nil when
// the profile has no such column
func (p *Profile) Column(name string) *Column {
	for i := range p.Columns {
		if p.Columns[i].Name == name {
			return &p.Columns[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the profile
func (p *Profile) Clone() *Profile {
	cp := *p
	cp.Columns = make([]Column, len(p.Columns))
	for i, col := range p.Columns {
		cc := col
		if col.Numeric != nil {
			n := *col.Numeric
			cc.Numeric = &n
		}
		if col.Categorical != nil {
			cat := *col.Categorical
			cat.Categories = append([]CategoryCount(nil), col.Categorical.Categories...)
			cc.Categorical = &cat
		}
		cp.Columns[i] = cc
	}
	return &cp
}
