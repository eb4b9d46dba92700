package identity

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=identity_repo.go -destination=mock/identity_repo_mock.go -package=mock
type Repository interface {
	ListWithEmbedding(ctx context.Context) ([]Identity, error)
	FindByID(ctx context.Context, id string) (*Identity, error)
	ListIDs(ctx context.Context, afterID string, limit int) ([]string, error)
	ListByGroup(ctx context.Context, groupID string) ([]Identity, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ListWithEmbedding returns every identity carrying an embedding, ordered by
// id so that callers iterate the roster deterministically.
func (r *repository) ListWithEmbedding(ctx context.Context) ([]Identity, error) {
	var rows []Identity
	err := r.db.WithContext(ctx).
		Where("embedding IS NOT NULL").
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Identity, error) {
	var row Identity
	err := r.db.WithContext(ctx).
		Omit("embedding").
		First(&row, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListIDs pages through the roster by id (keyset pagination).
func (r *repository) ListIDs(ctx context.Context, afterID string, limit int) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&Identity{}).
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *repository) ListByGroup(ctx context.Context, groupID string) ([]Identity, error) {
	var rows []Identity
	q := r.db.WithContext(ctx).Omit("embedding").Order("id ASC")
	if groupID != "" {
		q = q.Where("group_id = ?", groupID)
	}
	err := q.Find(&rows).Error
	return rows, err
}
