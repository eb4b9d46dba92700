package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepoTest(t *testing.T) (Repository, *gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return NewRepository(gdb, ist), gdb, mock
}

func TestRepository_FindByIdentityAndDate_NotFound(t *testing.T) {
	repo, _, mock := setupRepoTest(t)

	mock.ExpectQuery(`SELECT \* FROM "attendances" WHERE identity_id = \$1 AND attendance_date = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "identity_id"}))

	got, err := repo.FindByIdentityAndDate(context.Background(), "S001", time.Date(2026, 3, 2, 0, 0, 0, 0, ist))
	assert.Nil(t, got)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByIdentityAndDate_LocksInsideTx(t *testing.T) {
	repo, gdb, mock := setupRepoTest(t)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)

	// Stored naive wall-clock value, read back as IST.
	naiveIn := time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "identity_id", "attendance_date", "status", "in_time", "out_time"}).
		AddRow("0b3c8a2e-6a43-4a7f-9a49-f1d0c9ad1a11", "S001", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), StatusPresent, naiveIn, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM "attendances" WHERE identity_id = \$1 AND attendance_date = \$2 .*FOR UPDATE`).
		WillReturnRows(rows)
	mock.ExpectRollback()

	tx, err := sqlDB.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	got, err := repo.WithTx(tx).FindByIdentityAndDate(context.Background(), "S001", time.Date(2026, 3, 2, 12, 0, 0, 0, ist))
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	require.NotNil(t, got.InTime)
	assert.True(t, got.InTime.Equal(time.Date(2026, 3, 2, 9, 15, 0, 0, ist)))
	assert.Equal(t, StatePresent, got.State())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ResetForDate_Upserts(t *testing.T) {
	repo, gdb, mock := setupRepoTest(t)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "attendances" .* ON CONFLICT \("identity_id","attendance_date"\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	tx, err := sqlDB.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	n, err := repo.WithTx(tx).ResetForDate(context.Background(), []string{"S001", "S002", "S003"}, time.Date(2026, 3, 3, 0, 0, 0, 0, ist))
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.EqualValues(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ResetForDate_EmptyBatch(t *testing.T) {
	repo, _, mock := setupRepoTest(t)

	n, err := repo.ResetForDate(context.Background(), nil, time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
