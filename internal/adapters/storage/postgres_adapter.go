package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/medisense-health/scheduler/internal/domain/providers"
	"github.com/medisense-health/scheduler/internal/infrastructure/clients/postgres"
	apperrors "github.com/medisense-health/scheduler/pkg/errors"
)

// PostgresAdapter implements the BlobStore interface on a single-row-per-key
// blob table. The whole-collection replace-on-write discipline maps to an
// upsert of one row.
//
// Schema:
//
//	CREATE TABLE IF NOT EXISTS blobs (
//	    key        TEXT PRIMARY KEY,
//	    value      BYTEA NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL
//	);
type PostgresAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPostgresAdapter creates a new Postgres blob store
func NewPostgresAdapter(client *postgres.Client) providers.BlobStore {
	return &PostgresAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Get retrieves a blob; missing keys return (nil, nil)
func (a *PostgresAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	query, args, err := a.db.Select("value").
		From("blobs").
		Where(goqu.Ex{"key": key}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build blob query", err)
	}

	var value []byte
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get blob", err)
	}
	return value, nil
}

// Set replaces the blob stored under key
func (a *PostgresAdapter) Set(ctx context.Context, key string, value []byte) error {
	query, args, err := a.db.Insert("blobs").
		Rows(goqu.Record{
			"key":        key,
			"value":      value,
			"updated_at": time.Now(),
		}).
		OnConflict(goqu.DoUpdate("key", goqu.Record{
			"value":      value,
			"updated_at": time.Now(),
		})).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build blob upsert", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to set blob", err)
	}
	return nil
}

// Remove deletes the blob stored under key
func (a *PostgresAdapter) Remove(ctx context.Context, key string) error {
	query, args, err := a.db.Delete("blobs").
		Where(goqu.Ex{"key": key}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build blob delete", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to remove blob", err)
	}
	return nil
}
