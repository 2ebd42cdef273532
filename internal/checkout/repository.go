package checkout

import (
	"context"

	"gorm.io/gorm"

	"github.com/maisonvela/vela-backend/pkg/db/models"
)

// Repository persists composed orders.
type Repository interface {
	InsertOrder(ctx context.Context, tx *gorm.DB, order *models.Order) error
}

type repository struct{}

// NewRepository constructs the checkout repository.
func NewRepository() Repository {
	return &repository{}
}

// InsertOrder writes the order and its item snapshots in the caller's
// transaction. gorm cascades the Items association in the same tx, so a
// failed item insert rolls back the order row.
func (r *repository) InsertOrder(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}
