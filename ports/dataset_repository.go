package ports

import (
	"context"

	"github.com/Priyuuuuu/smartdata-standardization/domain/core"
	"github.com/Priyuuuuu/smartdata-standardization/domain/dataset"
	"github.com/Priyuuuuu/smartdata-standardization/domain/profile"
)

// DatasetRepository defines the interface for dataset storage operations
type DatasetRepository interface {
	// Core CRUD operations
	Create(ctx context.Context, rec *dataset.Record) error
	GetByID(ctx context.Context, id core.DatasetID) (*dataset.Record, error)
	List(ctx context.Context, limit, offset int) ([]*dataset.Record, error)
	Update(ctx context.Context, rec *dataset.Record) error
	Delete(ctx context.Context, id core.DatasetID) error

	// Status transitions for background processing
	UpdateStatus(ctx context.Context, id core.DatasetID, status dataset.Status, errorMsg string) error

	// Profile persistence
	SaveProfile(ctx context.Context, id core.DatasetID, prof *profile.Profile) error
	GetProfile(ctx context.Context, id core.DatasetID) (*profile.Profile, error)
}
