package identity

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepoTest(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return NewRepository(gdb), mock
}

func TestRepository_ListWithEmbedding(t *testing.T) {
	repo, mock := setupRepoTest(t)

	rows := sqlmock.NewRows([]string{"id", "name", "embedding", "group_id"}).
		AddRow("S001", "Asha", "[1,0,0]", nil).
		AddRow("S002", "Ravi", "[0,1,0]", "G1")
	mock.ExpectQuery(`SELECT \* FROM "identities" WHERE embedding IS NOT NULL ORDER BY id ASC`).
		WillReturnRows(rows)

	got, err := repo.ListWithEmbedding(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "S001", got[0].ID)
	assert.Equal(t, []float32{1, 0, 0}, got[0].Vector())
	assert.Nil(t, got[0].GroupID)
	require.NotNil(t, got[1].GroupID)
	assert.Equal(t, "G1", *got[1].GroupID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByID_NotFound(t *testing.T) {
	repo, mock := setupRepoTest(t)

	mock.ExpectQuery(`FROM "identities" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	got, err := repo.FindByID(context.Background(), "ghost")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListIDs(t *testing.T) {
	repo, mock := setupRepoTest(t)

	mock.ExpectQuery(`SELECT "id" FROM "identities" WHERE id > \$1 ORDER BY id ASC LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("S002").AddRow("S003"))

	ids, err := repo.ListIDs(context.Background(), "S001", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"S002", "S003"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdentity_Vector(t *testing.T) {
	assert.Nil(t, Identity{}.Vector())
}
