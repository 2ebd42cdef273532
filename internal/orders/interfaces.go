package orders

import (
	"context"

	"github.com/google/uuid"

	"github.com/maisonvela/vela-backend/pkg/db/models"
	"github.com/maisonvela/vela-backend/pkg/enums"
)

// Repository defines persistence operations for order tables.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	List(ctx context.Context, status, cursor string, limit int) ([]models.Order, int64, string, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
}
