// Package service orchestrates dataset processing: uploads, background
// profiling, cleaning, questions, reports and exports. Both the HTTP
// API and the CLI sit on top of this layer.
package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Priyuuuuu/smartdata-standardization/adapters/csvio"
	"github.com/Priyuuuuu/smartdata-standardization/adapters/excel"
	"github.com/Priyuuuuu/smartdata-standardization/adapters/report"
	"github.com/Priyuuuuu/smartdata-standardization/domain/clean"
	"github.com/Priyuuuuu/smartdata-standardization/domain/core"
	"github.com/Priyuuuuu/smartdata-standardization/domain/dataset"
	"github.com/Priyuuuuu/smartdata-standardization/domain/profile"
	"github.com/Priyuuuuu/smartdata-standardization/internal"
	"github.com/Priyuuuuu/smartdata-standardization/internal/answer"
	"github.com/Priyuuuuu/smartdata-standardization/internal/charts"
	"github.com/Priyuuuuu/smartdata-standardization/internal/cleaning"
	"github.com/Priyuuuuu/smartdata-standardization/internal/profiling"
	"github.com/Priyuuuuu/smartdata-standardization/internal/storage"
	"github.com/Priyuuuuu/smartdata-standardization/ports"

	"golang.org/x/sync/semaphore"
)

// Config holds service tuning knobs
type Config struct {
	MaxConcurrentProfiles int64
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{MaxConcurrentProfiles: 4}
}

// CleanResult summarizes a cleaning pass: the transformed dataset, its
// fresh profile, and the row delta.
type CleanResult struct {
	Dataset    dataset.Dataset  `json:"dataset"`
	Profile    *profile.Profile `json:"profile"`
	RowsBefore int              `json:"rows_before"`
	RowsAfter  int              `json:"rows_after"`
}

// DatasetService coordinates storage, profiling and the cleaning engine
type DatasetService struct {
	repo        ports.DatasetRepository
	files       storage.FileStorage
	profiler    *profiling.Profiler
	generator   *cleaning.Generator
	transformer *cleaning.Transformer
	answerer    *answer.Engine
	charts      *charts.Builder
	reports     *report.Builder
	logger      *internal.Logger

	// Bounds concurrent background profiling
	sem *semaphore.Weighted
	wg  sync.WaitGroup
}

// NewDatasetService creates a dataset service
func NewDatasetService(repo ports.DatasetRepository, files storage.FileStorage, logger *internal.Logger, cfg *Config) *DatasetService {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DatasetService{
		repo:        repo,
		files:       files,
		profiler:    profiling.NewProfiler(),
		generator:   cleaning.NewGenerator(cleaning.DefaultSuggestConfig()),
		transformer: cleaning.NewTransformer(cleaning.DefaultCleanConfig()),
		answerer:    answer.NewEngine(),
		charts:      charts.NewBuilder(),
		reports:     report.NewBuilder(),
		logger:      logger,
		sem:         semaphore.NewWeighted(cfg.MaxConcurrentProfiles),
	}
}

// Upload stores a dataset file, creates its record and kicks off
// background profiling. The returned record carries status "uploaded";
// callers poll until it reaches "ready" or "failed".
func (s *DatasetService) Upload(ctx context.Context, file io.Reader, filename string) (*dataset.Record, error) {
	if err := validateFilename(filename); err != nil {
		return nil, err
	}

	filePath, err := s.files.Store(ctx, file, filename)
	if err != nil {
		return nil, err
	}

	fileSize, err := s.files.GetFileSize(filePath)
	if err != nil {
		fileSize = 0
	}

	now := core.Now()
	rec := &dataset.Record{
		ID:               core.NewDatasetID(),
		OriginalFilename: filename,
		FilePath:         filePath,
		FileSize:         fileSize,
		DisplayName:      displayName(filename),
		Status:           dataset.StatusUploaded,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		// Detached from the request context: the upload response
		// returns before processing finishes.
		s.processInBackground(context.Background(), rec.ID, filePath)
	}()

	return rec, nil
}

// processInBackground parses, profiles and persists one uploaded file
func (s *DatasetService) processInBackground(ctx context.Context, id core.DatasetID, filePath string) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		s.logger.Error("profiling slot acquire failed for dataset %s: %v", id, err)
		return
	}
	defer s.sem.Release(1)

	s.logger.Info("processing dataset %s from %s", id, filePath)

	if err := s.repo.UpdateStatus(ctx, id, dataset.StatusProcessing, ""); err != nil {
		s.logger.Error("failed to mark dataset %s processing: %v", id, err)
		return
	}

	if err := s.process(ctx, id, filePath); err != nil {
		s.logger.Error("processing failed for dataset %s: %v", id, err)
		if uerr := s.repo.UpdateStatus(ctx, id, dataset.StatusFailed, err.Error()); uerr != nil {
			s.logger.Error("failed to mark dataset %s failed: %v", id, uerr)
		}
		return
	}

	s.logger.Info("dataset %s ready", id)
}

func (s *DatasetService) process(ctx context.Context, id core.DatasetID, filePath string) error {
	ds, err := s.readFile(filePath)
	if err != nil {
		return err
	}

	prof := s.profiler.ProfileDataset(*ds)

	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	rec.Data = ds
	rec.RowCount = prof.RowCount
	rec.ColumnCount = prof.ColumnCount
	rec.Status = dataset.StatusReady
	rec.ErrorMessage = ""
	rec.UpdatedAt = core.Now()

	if err := s.repo.SaveProfile(ctx, id, &prof); err != nil {
		return err
	}
	return s.repo.Update(ctx, rec)
}

// readFile parses a stored upload, dispatching on file extension
func (s *DatasetService) readFile(filePath string) (*dataset.Dataset, error) {
	return ReadDatasetFile(filePath)
}

// ReadDatasetFile parses a local CSV or XLSX file into a dataset. The
// CLI uses this directly; the service uses it for stored uploads.
func ReadDatasetFile(filePath string) (*dataset.Dataset, error) {
	var reader ports.DatasetReader
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".csv":
		reader = csvio.NewReader()
	case ".xlsx":
		reader = excel.NewReader()
	default:
		return nil, core.ErrUnsupportedInput
	}
	return reader.Read(filePath)
}

// Get retrieves one dataset record
func (s *DatasetService) Get(ctx context.Context, id core.DatasetID) (*dataset.Record, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves dataset records, newest first
func (s *DatasetService) List(ctx context.Context, limit, offset int) ([]*dataset.Record, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

// Delete removes a dataset record and its stored file
func (s *DatasetService) Delete(ctx context.Context, id core.DatasetID) error {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if rec.FilePath != "" {
		if err := s.files.Delete(ctx, rec.FilePath); err != nil {
			s.logger.Warn("failed to delete stored file for dataset %s: %v", id, err)
		}
	}
	return nil
}

// Profile returns the stored profile for a dataset
func (s *DatasetService) Profile(ctx context.Context, id core.DatasetID) (*profile.Profile, error) {
	return s.repo.GetProfile(ctx, id)
}

// Suggestions generates cleaning suggestions from the stored profile
func (s *DatasetService) Suggestions(ctx context.Context, id core.DatasetID) ([]clean.Suggestion, error) {
	prof, err := s.repo.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.generator.Suggest(*prof), nil
}

// Clean applies the selected suggestions to the stored dataset, persists
// the cleaned copy with a fresh profile, and returns both.
func (s *DatasetService) Clean(ctx context.Context, id core.DatasetID, selected []clean.Suggestion) (*CleanResult, error) {
	rec, err := s.readyRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	prof, err := s.repo.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	cleaned := s.transformer.Apply(*rec.Data, *prof, selected)
	freshProf := s.profiler.ProfileDataset(cleaned)

	rec.Data = &cleaned
	rec.RowCount = freshProf.RowCount
	rec.ColumnCount = freshProf.ColumnCount
	rec.UpdatedAt = core.Now()

	if err := s.repo.SaveProfile(ctx, id, &freshProf); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}

	return &CleanResult{
		Dataset:    cleaned,
		Profile:    &freshProf,
		RowsBefore: prof.RowCount,
		RowsAfter:  freshProf.RowCount,
	}, nil
}

// Ask answers a natural-language question about the dataset. Aggregates
// are computed from the live data; the stored profile supplies counts.
func (s *DatasetService) Ask(ctx context.Context, id core.DatasetID, question string) (string, error) {
	rec, err := s.readyRecord(ctx, id)
	if err != nil {
		return "", err
	}
	prof, err := s.repo.GetProfile(ctx, id)
	if err != nil {
		return "", err
	}
	return s.answerer.Answer(question, *rec.Data, *prof), nil
}

// Export writes the stored dataset as CSV and returns a download name
func (s *DatasetService) Export(ctx context.Context, id core.DatasetID, w io.Writer) (string, error) {
	rec, err := s.readyRecord(ctx, id)
	if err != nil {
		return "", err
	}
	if err := csvio.Export(w, rec.Data); err != nil {
		return "", err
	}
	return exportFilename(rec.DisplayName), nil
}

// Report renders the profile report as Markdown
func (s *DatasetService) Report(ctx context.Context, id core.DatasetID) (string, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	prof, err := s.repo.GetProfile(ctx, id)
	if err != nil {
		return "", err
	}
	suggestions := s.generator.Suggest(*prof)
	return s.reports.Markdown(rec.DisplayName, prof, suggestions), nil
}

// Charts builds the dimension/measure partition and histogram series
func (s *DatasetService) Charts(ctx context.Context, id core.DatasetID) (*charts.ChartData, error) {
	rec, err := s.readyRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	prof, err := s.repo.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	data := s.charts.Build(*rec.Data, *prof)
	return &data, nil
}

// Wait blocks until all background processing has finished. Used for
// graceful shutdown and by tests.
func (s *DatasetService) Wait() {
	s.wg.Wait()
}

// readyRecord loads a record whose parsed data is available
func (s *DatasetService) readyRecord(ctx context.Context, id core.DatasetID) (*dataset.Record, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Status == dataset.StatusFailed {
		return nil, core.ErrDatasetFailed
	}
	if !rec.IsReady() || rec.Data == nil {
		return nil, core.ErrProfileNotReady
	}
	return rec, nil
}

func validateFilename(filename string) error {
	if strings.TrimSpace(filename) == "" {
		return core.ErrUnsupportedInput
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".xlsx":
		return nil
	}
	return core.ErrUnsupportedInput
}

func displayName(filename string) string {
	return strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
}

func exportFilename(displayName string) string {
	name := strings.TrimSpace(displayName)
	if name == "" {
		name = "dataset"
	}
	name = strings.ReplaceAll(name, " ", "_")
	return fmt.Sprintf("%s.csv", name)
}
