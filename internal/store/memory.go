// Package store provides the in-memory dataset repository, the default
// when no database is configured and the backing store for tests.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/Priyuuuuu/smartdata-standardization/domain/core"
	"github.com/Priyuuuuu/smartdata-standardization/domain/dataset"
	"github.com/Priyuuuuu/smartdata-standardization/domain/profile"
	"github.com/Priyuuuuu/smartdata-standardization/internal/errors"
	"github.com/Priyuuuuu/smartdata-standardization/ports"
)

// MemoryRepository is a mutex-guarded map implementation of the dataset
// repository. Stored records and profiles are copied on the way in and
// out so callers never share state with the store.
type MemoryRepository struct {
	mu       sync.RWMutex
	records  map[core.DatasetID]*dataset.Record
	profiles map[core.DatasetID]*profile.Profile
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records:  make(map[core.DatasetID]*dataset.Record),
		profiles: make(map[core.DatasetID]*profile.Profile),
	}
}

// Create stores a new dataset record
func (s *MemoryRepository) Create(ctx context.Context, rec *dataset.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[rec.ID]; exists {
		return errors.ValidationError("dataset already exists: " + rec.ID.String())
	}
	s.records[rec.ID] = cloneRecord(rec)
	return nil
}

// GetByID retrieves a dataset record by its ID
func (s *MemoryRepository) GetByID(ctx context.Context, id core.DatasetID) (*dataset.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, core.ErrDatasetNotFound
	}
	return cloneRecord(rec), nil
}

// List retrieves dataset records ordered by creation time, newest first
func (s *MemoryRepository) List(ctx context.Context, limit, offset int) ([]*dataset.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*dataset.Record, 0, len(s.records))
	for _, rec := range s.records {
		all = append(all, rec)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}

	out := make([]*dataset.Record, len(all))
	for i, rec := range all {
		out[i] = cloneRecord(rec)
	}
	return out, nil
}

// Update replaces an existing dataset record
func (s *MemoryRepository) Update(ctx context.Context, rec *dataset.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[rec.ID]; !ok {
		return core.ErrDatasetNotFound
	}
	s.records[rec.ID] = cloneRecord(rec)
	return nil
}

// Delete removes a dataset record and its profile
func (s *MemoryRepository) Delete(ctx context.Context, id core.DatasetID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return core.ErrDatasetNotFound
	}
	delete(s.records, id)
	delete(s.profiles, id)
	return nil
}

// UpdateStatus updates only the status and error message of a dataset
func (s *MemoryRepository) UpdateStatus(ctx context.Context, id core.DatasetID, status dataset.Status, errorMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return core.ErrDatasetNotFound
	}
	rec.Status = status
	rec.ErrorMessage = errorMsg
	rec.UpdatedAt = core.Now()
	return nil
}

// SaveProfile stores the computed profile for a dataset
func (s *MemoryRepository) SaveProfile(ctx context.Context, id core.DatasetID, prof *profile.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return core.ErrDatasetNotFound
	}
	s.profiles[id] = prof.Clone()
	rec.UpdatedAt = core.Now()
	return nil
}

// GetProfile retrieves the stored profile for a dataset. Returns
// core.ErrProfileNotReady while profiling has not completed.
func (s *MemoryRepository) GetProfile(ctx context.Context, id core.DatasetID) (*profile.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.records[id]; !ok {
		return nil, core.ErrDatasetNotFound
	}
	prof, ok := s.profiles[id]
	if !ok {
		return nil, core.ErrProfileNotReady
	}
	return prof.Clone(), nil
}

func cloneRecord(rec *dataset.Record) *dataset.Record {
	cp := *rec
	if rec.Data != nil {
		d := rec.Data.Clone()
		cp.Data = &d
	}
	return &cp
}

// Ensure MemoryRepository implements the repository port
var _ ports.DatasetRepository = (*MemoryRepository)(nil)
