// Package charts prepares profile-driven chart inputs: the
// dimension/measure partition of the columns and a histogram series per
// measure. Rendering belongs to the visualization layer; this package
// only shapes the data.
package charts

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/Priyuuuuu/smartdata-standardization/domain/dataset"
	"github.com/Priyuuuuu/smartdata-standardization/domain/profile"
)

// ChartData is the visualization contract: non-numeric columns become
// dimensions, numeric columns become measures, both in column order.
type ChartData struct {
	Dimensions []string    `json:"dimensions"`
	Measures   []string    `json:"measures"`
	Histograms []Histogram `json:"histograms"`
}

// Histogram is the binned distribution of one measure column
type Histogram struct {
	Column string `json:"column"`
	Bins   []Bin  `json:"bins"`
}

// Bin is one histogram bucket over [Low, High)
type Bin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// Builder derives chart data from a dataset and its profile
type Builder struct{}

// NewBuilder creates a chart data builder
func NewBuilder() *Builder {
	return &Builder{}
}

// Build partitions the profiled columns and computes a histogram for
// every measure that holds at least one numeric cell
func (b *Builder) Build(ds dataset.Dataset, prof profile.Profile) ChartData {
	data := ChartData{
		Dimensions: make([]string, 0, len(prof.Columns)),
		Measures:   make([]string, 0, len(prof.Columns)),
		Histograms: make([]Histogram, 0),
	}

	for _, col := range prof.Columns {
		if !col.Type.IsNumeric() {
			data.Dimensions = append(data.Dimensions, col.Name)
			continue
		}
		data.Measures = append(data.Measures, col.Name)
		if hist, ok := b.histogram(col.Name, ds.ColumnValues(col.Name)); ok {
			data.Histograms = append(data.Histograms, hist)
		}
	}

	return data
}

// histogram bins the numeric cells of one column. Bin count follows
// Sturges' rule; a constant column collapses to a single bin.
func (b *Builder) histogram(column string, values []dataset.Value) (Histogram, bool) {
	data := make([]float64, 0, len(values))
	for _, v := range values {
		if v.IsNumeric() {
			data = append(data, v.AsFloat64())
		}
	}
	if len(data) == 0 {
		return Histogram{}, false
	}

	sort.Float64s(data)
	min, max := data[0], data[len(data)-1]

	if min == max {
		return Histogram{
			Column: column,
			Bins:   []Bin{{Low: min, High: max, Count: len(data)}},
		}, true
	}

	binCount := sturgesBins(len(data))
	dividers := make([]float64, binCount+1)
	floats.Span(dividers, min, max)
	// widen the last divider so the maximum lands in the final bin
	dividers[binCount] = math.Nextafter(max, math.Inf(1))

	counts := stat.Histogram(nil, dividers, data, nil)

	bins := make([]Bin, binCount)
	for i := range bins {
		bins[i] = Bin{
			Low:   dividers[i],
			High:  dividers[i+1],
			Count: int(counts[i]),
		}
	}
	return Histogram{Column: column, Bins: bins}, true
}

// sturgesBins picks ceil(log2(n)) + 1 bins, at least one
func sturgesBins(n int) int {
	if n <= 1 {
		return 1
	}
	return int(math.Ceil(math.Log2(float64(n)))) + 1
}
