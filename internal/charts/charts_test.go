package charts

import (
	"reflect"
	"testing"

	"github.com/Priyuuuuu/smartdata-standardization/domain/dataset"
	"github.com/Priyuuuuu/smartdata-standardization/internal/profiling"
)

func TestPartitionKeepsColumnOrder(t *testing.T) {
	ds := dataset.New([]string{"city", "age", "active", "price"}, "t.csv")
	ds.Rows = []dataset.Row{
		{
			"city":   dataset.NewStringValue("NY"),
			"age":    dataset.NewNumberValue(25),
			"active": dataset.NewBoolValue(true),
			"price":  dataset.NewNumberValue(9.5),
		},
	}
	prof := profiling.NewProfiler().ProfileDataset(ds)

	data := NewBuilder().Build(ds, prof)

	if !reflect.DeepEqual(data.Dimensions, []string{"city", "active"}) {
		t.Errorf("Dimensions = %v, want [city active]", data.Dimensions)
	}
	if !reflect.DeepEqual(data.Measures, []string{"age", "price"}) {
		t.Errorf("Measures = %v, want [age price]", data.Measures)
	}
}

func TestHistogramCountsCoverAllCells(t *testing.T) {
	ds := dataset.New([]string{"v"}, "t.csv")
	for _, f := range []float64{1, 2, 3, 4, 5, 6, 7, 8, 100} {
		ds.Rows = append(ds.Rows, dataset.Row{"v": dataset.NewNumberValue(f)})
	}
	prof := profiling.NewProfiler().ProfileDataset(ds)

	data := NewBuilder().Build(ds, prof)

	if len(data.Histograms) != 1 {
		t.Fatalf("histograms = %d, want 1", len(data.Histograms))
	}
	total := 0
	for _, bin := range data.Histograms[0].Bins {
		total += bin.Count
	}
	if total != 9 {
		t.Errorf("binned cells = %d, want all 9 including the maximum", total)
	}
}

func TestConstantColumnGetsSingleBin(t *testing.T) {
	ds := dataset.New([]string{"v"}, "t.csv")
	for i := 0; i < 4; i++ {
		ds.Rows = append(ds.Rows, dataset.Row{"v": dataset.NewNumberValue(7)})
	}
	prof := profiling.NewProfiler().ProfileDataset(ds)

	data := NewBuilder().Build(ds, prof)

	bins := data.Histograms[0].Bins
	if len(bins) != 1 || bins[0].Count != 4 {
		t.Errorf("bins = %+v, want one bin holding all 4 cells", bins)
	}
}

func TestNumericTypeWithoutCellsGetsNoHistogram(t *testing.T) {
	ds := dataset.New([]string{"n"}, "t.csv")
	ds.Rows = []dataset.Row{
		{"n": dataset.NewStringValue("25")},
		{"n": dataset.NewStringValue("30")},
	}
	prof := profiling.NewProfiler().ProfileDataset(ds)

	data := NewBuilder().Build(ds, prof)

	if len(data.Measures) != 1 {
		t.Fatalf("measures = %v, want the inferred numeric column", data.Measures)
	}
	if len(data.Histograms) != 0 {
		t.Errorf("histograms = %+v, want none without numeric cells", data.Histograms)
	}
}
