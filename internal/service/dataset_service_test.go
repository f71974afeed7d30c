package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/Priyuuuuu/smartdata-standardization/domain/clean"
	"github.com/Priyuuuuu/smartdata-standardization/domain/core"
	"github.com/Priyuuuuu/smartdata-standardization/domain/dataset"
	"github.com/Priyuuuuu/smartdata-standardization/internal"
	"github.com/Priyuuuuu/smartdata-standardization/internal/storage"
	"github.com/Priyuuuuu/smartdata-standardization/internal/store"

	"github.com/stretchr/testify/assert"
)

const sampleCSV = `name,age,city
Alice,30,NY
Alice,30,NY
Bob,,LA
`

func newTestService(t *testing.T) (*DatasetService, storage.FileStorage) {
	t.Helper()
	repo := store.NewMemoryRepository()
	files := storage.NewLocalFileStorageWithPath(t.TempDir())
	svc := NewDatasetService(repo, files, internal.NewLogger(internal.LogLevelError), nil)
	return svc, files
}

func uploadAndWait(t *testing.T, svc *DatasetService, content, filename string) *dataset.Record {
	t.Helper()
	ctx := context.Background()

	rec, err := svc.Upload(ctx, strings.NewReader(content), filename)
	if err != nil {
		t.Fatalf("Upload() error: %v", err)
	}
	svc.Wait()

	got, err := svc.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	return got
}

func TestUploadAndProcess(t *testing.T) {
	svc, _ := newTestService(t)

	rec := uploadAndWait(t, svc, sampleCSV, "people.csv")

	assert.Equal(t, dataset.StatusReady, rec.Status)
	assert.Equal(t, "people", rec.DisplayName)
	assert.Equal(t, 3, rec.RowCount)
	assert.Equal(t, 3, rec.ColumnCount)
	assert.Empty(t, rec.ErrorMessage)
	assert.NotNil(t, rec.Data)

	prof, err := svc.Profile(context.Background(), rec.ID)
	assert.NoError(t, err)
	assert.Equal(t, 3, prof.RowCount)
	assert.Equal(t, 1, prof.NullValues)
	assert.Equal(t, 1, prof.DuplicateRows)

	age := prof.Column("age")
	if age == nil {
		t.Fatal("expected age column in profile")
	}
	assert.Equal(t, 30.0, age.Numeric.Median)
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Upload(ctx, strings.NewReader("x"), "data.txt")
	assert.ErrorIs(t, err, core.ErrUnsupportedInput)

	_, err = svc.Upload(ctx, strings.NewReader("x"), "")
	assert.ErrorIs(t, err, core.ErrUnsupportedInput)
}

func TestUploadParseFailure(t *testing.T) {
	svc, _ := newTestService(t)

	rec := uploadAndWait(t, svc, "a,b\n\"unclosed", "bad.csv")

	assert.Equal(t, dataset.StatusFailed, rec.Status)
	assert.NotEmpty(t, rec.ErrorMessage)

	// Operations that need parsed data report the failure
	_, err := svc.Ask(context.Background(), rec.ID, "how many rows")
	assert.ErrorIs(t, err, core.ErrDatasetFailed)

	_, err = svc.Profile(context.Background(), rec.ID)
	assert.ErrorIs(t, err, core.ErrProfileNotReady)
}

func TestAskBeforeProcessingFinishes(t *testing.T) {
	repo := store.NewMemoryRepository()
	files := storage.NewLocalFileStorageWithPath(t.TempDir())
	svc := NewDatasetService(repo, files, internal.NewLogger(internal.LogLevelError), nil)

	now := core.Now()
	rec := &dataset.Record{
		ID:        core.NewDatasetID(),
		Status:    dataset.StatusUploaded,
		CreatedAt: now,
		UpdatedAt: now,
	}
	assert.NoError(t, repo.Create(context.Background(), rec))

	// parsed data is not available until processing completes
	_, err := svc.Ask(context.Background(), rec.ID, "how many rows are there?")
	assert.ErrorIs(t, err, core.ErrProfileNotReady)
}

func TestSuggestions(t *testing.T) {
	svc, _ := newTestService(t)

	rec := uploadAndWait(t, svc, sampleCSV, "people.csv")

	suggestions, err := svc.Suggestions(context.Background(), rec.ID)
	assert.NoError(t, err)
	assert.Len(t, suggestions, 2)

	// Missing value suggestions come before the dataset-wide duplicate one
	assert.Equal(t, clean.IssueMissing, suggestions[0].Issue)
	assert.Equal(t, "age", suggestions[0].Column)
	assert.Equal(t, clean.IssueDuplicate, suggestions[1].Issue)
	assert.Equal(t, clean.MultipleColumns, suggestions[1].Column)
}

func TestClean(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	rec := uploadAndWait(t, svc, sampleCSV, "people.csv")

	suggestions, err := svc.Suggestions(ctx, rec.ID)
	assert.NoError(t, err)

	result, err := svc.Clean(ctx, rec.ID, suggestions)
	assert.NoError(t, err)
	assert.Equal(t, 3, result.RowsBefore)
	assert.Equal(t, 2, result.RowsAfter)

	// Bob's missing age was filled with the column median
	bob := result.Dataset.Rows[1]
	assert.Equal(t, 30.0, bob.Cell("age").AsFloat64())

	// The cleaned dataset and fresh profile were persisted
	updated, err := svc.Get(ctx, rec.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2, updated.RowCount)

	prof, err := svc.Profile(ctx, rec.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, prof.NullValues)
	assert.Equal(t, 0, prof.DuplicateRows)
}

func TestAsk(t *testing.T) {
	svc, _ := newTestService(t)

	rec := uploadAndWait(t, svc, sampleCSV, "people.csv")

	answer, err := svc.Ask(context.Background(), rec.ID, "How many rows are there?")
	assert.NoError(t, err)
	assert.Equal(t, "There are 3 rows in this dataset.", answer)

	answer, err = svc.Ask(context.Background(), rec.ID, "What is the average age?")
	assert.NoError(t, err)
	assert.Equal(t, "The average value of 'age' is 30.", answer)
}

func TestExport(t *testing.T) {
	svc, _ := newTestService(t)

	rec := uploadAndWait(t, svc, sampleCSV, "people.csv")

	var buf bytes.Buffer
	filename, err := svc.Export(context.Background(), rec.ID, &buf)
	assert.NoError(t, err)
	assert.Equal(t, "people.csv", filename)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "name,age,city", lines[0])
	assert.Equal(t, "Alice,30,NY", lines[1])
}

func TestDelete(t *testing.T) {
	svc, files := newTestService(t)
	ctx := context.Background()

	rec := uploadAndWait(t, svc, sampleCSV, "people.csv")
	exists, err := files.Exists(ctx, rec.FilePath)
	assert.NoError(t, err)
	assert.True(t, exists)

	assert.NoError(t, svc.Delete(ctx, rec.ID))

	_, err = svc.Get(ctx, rec.ID)
	assert.ErrorIs(t, err, core.ErrDatasetNotFound)

	exists, err = files.Exists(ctx, rec.FilePath)
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestList(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	uploadAndWait(t, svc, sampleCSV, "first.csv")
	uploadAndWait(t, svc, sampleCSV, "second.csv")

	records, err := svc.List(ctx, 0, 0)
	assert.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestReport(t *testing.T) {
	svc, _ := newTestService(t)

	rec := uploadAndWait(t, svc, sampleCSV, "people.csv")

	md, err := svc.Report(context.Background(), rec.ID)
	assert.NoError(t, err)
	assert.Contains(t, md, "# Data Profile: people")
	assert.Contains(t, md, "## Columns")
	assert.Contains(t, md, "duplicate")
}

func TestCharts(t *testing.T) {
	svc, _ := newTestService(t)

	rec := uploadAndWait(t, svc, sampleCSV, "people.csv")

	data, err := svc.Charts(context.Background(), rec.ID)
	assert.NoError(t, err)
	assert.Contains(t, data.Dimensions, "name")
	assert.Contains(t, data.Dimensions, "city")
	assert.Contains(t, data.Measures, "age")
}
