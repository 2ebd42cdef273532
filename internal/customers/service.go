package customers

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maisonvela/vela-backend/pkg/db/models"
	"github.com/maisonvela/vela-backend/pkg/enums"
	pkgerrors "github.com/maisonvela/vela-backend/pkg/errors"
)

// CustomerDTO is the account payload surfaced to admins and account screens.
type CustomerDTO struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	FullName   *string   `json:"full_name,omitempty"`
	IsAdmin    bool      `json:"is_admin"`
	OrderCount int       `json:"order_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// CustomerPage is one page of customers for admin listings.
type CustomerPage struct {
	Items      []CustomerDTO `json:"items"`
	Total      int           `json:"total"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// ServiceParams groups dependencies for the customer service.
type ServiceParams struct {
	Repo *Repository
}

// Service exposes account reads.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (CustomerDTO, error)
	List(ctx context.Context, cursor string, limit int) (CustomerPage, error)
}

type service struct {
	repo *Repository
}

// NewService builds a customer service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customers repo is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (CustomerDTO, error) {
	if id == uuid.Nil {
		return CustomerDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CustomerDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "customer not found")
		}
		return CustomerDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}

	isAdmin, err := s.repo.HasRole(ctx, id, enums.RoleAdmin)
	if err != nil {
		return CustomerDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load roles")
	}

	counts, err := s.repo.OrderCounts(ctx, []uuid.UUID{id})
	if err != nil {
		return CustomerDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count orders")
	}

	dto := newDTO(row, isAdmin)
	dto.OrderCount = counts[id]
	return dto, nil
}

func (s *service) List(ctx context.Context, cursor string, limit int) (CustomerPage, error) {
	rows, total, nextCursor, err := s.repo.List(ctx, cursor, limit)
	if err != nil {
		return CustomerPage{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customers")
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for i := range rows {
		ids = append(ids, rows[i].ID)
	}
	counts, err := s.repo.OrderCounts(ctx, ids)
	if err != nil {
		return CustomerPage{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count orders")
	}

	items := make([]CustomerDTO, 0, len(rows))
	for i := range rows {
		dto := newDTO(&rows[i], false)
		dto.OrderCount = counts[rows[i].ID]
		items = append(items, dto)
	}
	return CustomerPage{
		Items:      items,
		Total:      int(total),
		NextCursor: nextCursor,
	}, nil
}

func newDTO(row *models.Profile, isAdmin bool) CustomerDTO {
	return CustomerDTO{
		ID:        row.ID,
		Email:     row.Email,
		FullName:  row.FullName,
		IsAdmin:   isAdmin,
		CreatedAt: row.CreatedAt,
	}
}
