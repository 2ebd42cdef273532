package wishlist

import (
	"context"

	"github.com/google/uuid"

	"github.com/maisonvela/vela-backend/internal/catalog"
	pkgerrors "github.com/maisonvela/vela-backend/pkg/errors"
)

type productResolver interface {
	GetProduct(ctx context.Context, id uuid.UUID, includeHidden bool) (catalog.Product, error)
	ResolveProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]catalog.Product, error)
}

// ToggleResult reports the state after a toggle.
type ToggleResult struct {
	ProductID uuid.UUID `json:"product_id"`
	Saved     bool      `json:"saved"`
}

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	Repo     *Repository
	Products productResolver
}

// Service exposes wishlist toggling and reads.
type Service interface {
	Toggle(ctx context.Context, userID, productID uuid.UUID) (ToggleResult, error)
	List(ctx context.Context, userID uuid.UUID) ([]catalog.Product, error)
}

type service struct {
	repo     *Repository
	products productResolver
}

// NewService builds a wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist repo is required")
	}
	if params.Products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product resolver is required")
	}
	return &service{
		repo:     params.Repo,
		products: params.Products,
	}, nil
}

// Toggle saves the product if absent and removes it if present.
func (s *service) Toggle(ctx context.Context, userID, productID uuid.UUID) (ToggleResult, error) {
	if userID == uuid.Nil {
		return ToggleResult{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "must be logged in")
	}
	if productID == uuid.Nil {
		return ToggleResult{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	if _, err := s.products.GetProduct(ctx, productID, false); err != nil {
		return ToggleResult{}, err
	}

	exists, err := s.repo.Exists(ctx, userID, productID)
	if err != nil {
		return ToggleResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check wishlist")
	}

	if exists {
		if err := s.repo.Remove(ctx, userID, productID); err != nil {
			return ToggleResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove wishlist entry")
		}
		return ToggleResult{ProductID: productID, Saved: false}, nil
	}

	if err := s.repo.Add(ctx, userID, productID); err != nil {
		return ToggleResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add wishlist entry")
	}
	return ToggleResult{ProductID: productID, Saved: true}, nil
}

// List returns the saved products that are still visible, in save order.
func (s *service) List(ctx context.Context, userID uuid.UUID) ([]catalog.Product, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "must be logged in")
	}

	ids, err := s.repo.ListProductIDs(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishlist")
	}
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}

	resolved, err := s.products.ResolveProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if product, ok := resolved[id]; ok {
			items = append(items, product)
		}
	}
	return items, nil
}
