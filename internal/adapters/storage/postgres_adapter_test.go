package storage_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medisense-health/scheduler/internal/adapters/storage"
	"github.com/medisense-health/scheduler/internal/infrastructure/clients/postgres"
)

func TestPostgresAdapter_Get(t *testing.T) {
	t.Run("returns stored blob", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT "value" FROM "blobs"`).
			WithArgs("healthRecords").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`[]`)))

		adapter := storage.NewPostgresAdapter(postgres.NewClientFromDB(db))
		blob, err := adapter.Get(context.Background(), "healthRecords")

		require.NoError(t, err)
		assert.Equal(t, []byte(`[]`), blob)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing key reads as nil", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT "value" FROM "blobs"`).
			WithArgs("healthRecords").
			WillReturnRows(sqlmock.NewRows([]string{"value"}))

		adapter := storage.NewPostgresAdapter(postgres.NewClientFromDB(db))
		blob, err := adapter.Get(context.Background(), "healthRecords")

		require.NoError(t, err)
		assert.Nil(t, blob)
	})
}

func TestPostgresAdapter_Set(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO "blobs" .* ON CONFLICT \("key"\) DO UPDATE`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	adapter := storage.NewPostgresAdapter(postgres.NewClientFromDB(db))
	err = adapter.Set(context.Background(), "healthRecords", []byte(`[]`))

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAdapter_Remove(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM "blobs"`).
		WithArgs("healthRecords").
		WillReturnResult(sqlmock.NewResult(0, 1))

	adapter := storage.NewPostgresAdapter(postgres.NewClientFromDB(db))
	err = adapter.Remove(context.Background(), "healthRecords")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
