package identity

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// Identity is an enrolled roster entry. Embedding, when present, is stored
// unit-normalized by the enrollment path.
type Identity struct {
	ID        string           `gorm:"column:id;type:varchar(50);primaryKey"`
	Name      string           `gorm:"column:name;type:varchar(100);not null"`
	Embedding *pgvector.Vector `gorm:"column:embedding;type:vector"`
	GroupID   *string          `gorm:"column:group_id;type:varchar(50);index"`
	CreatedAt time.Time        `gorm:"column:created_at"`
}

func (Identity) TableName() string {
	return "identities"
}

// Vector returns the stored embedding, or nil when none is enrolled.
func (i Identity) Vector() []float32 {
	if i.Embedding == nil {
		return nil
	}
	v := i.Embedding.Slice()
	if len(v) == 0 {
		return nil
	}
	return v
}
