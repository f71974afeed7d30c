package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/Priyuuuuu/smartdata-standardization/domain/core"
	"github.com/Priyuuuuu/smartdata-standardization/domain/dataset"
	"github.com/Priyuuuuu/smartdata-standardization/domain/profile"
	"github.com/Priyuuuuu/smartdata-standardization/internal/errors"
	"github.com/Priyuuuuu/smartdata-standardization/ports"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS datasets (
	id UUID PRIMARY KEY,
	original_filename TEXT NOT NULL DEFAULT '',
	file_path TEXT NOT NULL DEFAULT '',
	file_size BIGINT NOT NULL DEFAULT 0,
	display_name TEXT NOT NULL DEFAULT '',
	row_count INTEGER NOT NULL DEFAULT 0,
	column_count INTEGER NOT NULL DEFAULT 0,
	status TEXT NOT NULL,
	error_message TEXT NOT NULL DEFAULT '',
	data JSONB,
	profile JSONB,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_datasets_created_at ON datasets (created_at DESC);
`

// EnsureSchema creates the datasets table if it does not exist
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return errors.DatabaseError("failed to ensure schema", err)
	}
	return nil
}

const selectColumns = `
	id, original_filename, COALESCE(file_path, '') as file_path,
	COALESCE(file_size, 0) as file_size, display_name,
	COALESCE(row_count, 0) as row_count, COALESCE(column_count, 0) as column_count,
	status, COALESCE(error_message, '') as error_message, data, created_at, updated_at`

// datasetRepository implements the DatasetRepository interface
type datasetRepository struct {
	db *sqlx.DB
}

// NewDatasetRepository creates a new dataset repository
func NewDatasetRepository(db *sqlx.DB) ports.DatasetRepository {
	return &datasetRepository{db: db}
}

// Create inserts a new dataset record into the database
func (r *datasetRepository) Create(ctx context.Context, rec *dataset.Record) error {
	dataJSON, err := marshalData(rec.Data)
	if err != nil {
		return err
	}

	query := `INSERT INTO datasets (
		id, original_filename, file_path, file_size, display_name,
		row_count, column_count, status, error_message, data, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err = r.db.ExecContext(ctx, query,
		rec.ID, rec.OriginalFilename, rec.FilePath, rec.FileSize, rec.DisplayName,
		rec.RowCount, rec.ColumnCount, rec.Status, rec.ErrorMessage, dataJSON,
		rec.CreatedAt.Time(), rec.UpdatedAt.Time(),
	)
	if err != nil {
		return errors.DatabaseError("failed to create dataset", err)
	}
	return nil
}

// GetByID retrieves a dataset record by its ID
func (r *datasetRepository) GetByID(ctx context.Context, id core.DatasetID) (*dataset.Record, error) {
	query := `SELECT` + selectColumns + ` FROM datasets WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	rec, err := scanRecord(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.ErrDatasetNotFound
		}
		return nil, errors.DatabaseError("failed to get dataset", err)
	}
	return rec, nil
}

// List retrieves dataset records ordered by creation time, newest first
func (r *datasetRepository) List(ctx context.Context, limit, offset int) ([]*dataset.Record, error) {
	query := `SELECT` + selectColumns + ` FROM datasets
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, errors.DatabaseError("failed to query datasets", err)
	}
	defer rows.Close()

	var records []*dataset.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, errors.DatabaseError("failed to scan dataset", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("failed to iterate datasets", err)
	}
	return records, nil
}

// Update modifies an existing dataset record
func (r *datasetRepository) Update(ctx context.Context, rec *dataset.Record) error {
	dataJSON, err := marshalData(rec.Data)
	if err != nil {
		return err
	}

	query := `UPDATE datasets SET
		original_filename = $2, file_path = $3, file_size = $4, display_name = $5,
		row_count = $6, column_count = $7, status = $8, error_message = $9,
		data = $10, updated_at = $11
	WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.OriginalFilename, rec.FilePath, rec.FileSize, rec.DisplayName,
		rec.RowCount, rec.ColumnCount, rec.Status, rec.ErrorMessage, dataJSON,
		rec.UpdatedAt.Time(),
	)
	if err != nil {
		return errors.DatabaseError("failed to update dataset", err)
	}
	return requireRow(result)
}

// Delete removes a dataset record from the database
func (r *datasetRepository) Delete(ctx context.Context, id core.DatasetID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM datasets WHERE id = $1`, id)
	if err != nil {
		return errors.DatabaseError("failed to delete dataset", err)
	}
	return requireRow(result)
}

// UpdateStatus updates only the status and error message of a dataset
func (r *datasetRepository) UpdateStatus(ctx context.Context, id core.DatasetID, status dataset.Status, errorMsg string) error {
	query := `UPDATE datasets SET status = $2, error_message = $3, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status, errorMsg)
	if err != nil {
		return errors.DatabaseError("failed to update dataset status", err)
	}
	return requireRow(result)
}

// SaveProfile stores the computed profile for a dataset
func (r *datasetRepository) SaveProfile(ctx context.Context, id core.DatasetID, prof *profile.Profile) error {
	profileJSON, err := json.Marshal(prof)
	if err != nil {
		return errors.InternalError("failed to marshal profile", err)
	}

	query := `UPDATE datasets SET profile = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, profileJSON)
	if err != nil {
		return errors.DatabaseError("failed to save profile", err)
	}
	return requireRow(result)
}

// GetProfile retrieves the stored profile for a dataset. Returns
// core.ErrProfileNotReady while profiling has not completed.
func (r *datasetRepository) GetProfile(ctx context.Context, id core.DatasetID) (*profile.Profile, error) {
	var profileJSON []byte
	err := r.db.QueryRowContext(ctx, `SELECT profile FROM datasets WHERE id = $1`, id).Scan(&profileJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.ErrDatasetNotFound
		}
		return nil, errors.DatabaseError("failed to get profile", err)
	}
	if len(profileJSON) == 0 {
		return nil, core.ErrProfileNotReady
	}

	var prof profile.Profile
	if err := json.Unmarshal(profileJSON, &prof); err != nil {
		return nil, errors.InternalError("failed to unmarshal profile", err)
	}
	return &prof, nil
}

// rowScanner lets scanRecord work for both QueryRow and Query results
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*dataset.Record, error) {
	var rec dataset.Record
	var dataJSON []byte
	var createdAt, updatedAt time.Time

	err := row.Scan(
		&rec.ID, &rec.OriginalFilename, &rec.FilePath, &rec.FileSize, &rec.DisplayName,
		&rec.RowCount, &rec.ColumnCount, &rec.Status, &rec.ErrorMessage, &dataJSON,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.CreatedAt = core.NewTimestamp(createdAt)
	rec.UpdatedAt = core.NewTimestamp(updatedAt)

	if len(dataJSON) > 0 {
		var ds dataset.Dataset
		if err := json.Unmarshal(dataJSON, &ds); err != nil {
			return nil, err
		}
		rec.Data = &ds
	}
	return &rec, nil
}

func marshalData(ds *dataset.Dataset) ([]byte, error) {
	if ds == nil {
		return nil, nil
	}
	dataJSON, err := json.Marshal(ds)
	if err != nil {
		return nil, errors.InternalError("failed to marshal dataset", err)
	}
	return dataJSON, nil
}

func requireRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return core.ErrDatasetNotFound
	}
	return nil
}
