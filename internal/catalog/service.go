package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/maisonvela/vela-backend/internal/events"
	"github.com/maisonvela/vela-backend/internal/pricing"
	"github.com/maisonvela/vela-backend/pkg/db/models"
	pkgerrors "github.com/maisonvela/vela-backend/pkg/errors"
)

const relatedLimit = 4

type eventDispatcher interface {
	CatalogEvent(ctx context.Context, eventType, aggregateID string, payload any)
}

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	Repo   *Repository
	Events eventDispatcher
}

// Service exposes catalog reads for the storefront and CRUD for admins.
type Service interface {
	ListProducts(ctx context.Context, params ListParams) (ProductPage, error)
	GetProduct(ctx context.Context, id uuid.UUID, includeHidden bool) (Product, error)
	GetRelatedProducts(ctx context.Context, id uuid.UUID) ([]Product, error)
	ResolveProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Product, error)

	ListCategories(ctx context.Context) ([]CategoryDTO, error)
	GetCategoryBySlug(ctx context.Context, slug string) (CategoryDTO, error)

	CreateProduct(ctx context.Context, input CreateProductInput) (Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	CreateCategory(ctx context.Context, input CreateCategoryInput) (CategoryDTO, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (CategoryDTO, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo   *Repository
	events eventDispatcher
}

// NewService builds a catalog service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repo is required")
	}
	return &service{
		repo:   params.Repo,
		events: params.Events,
	}, nil
}

func (s *service) ListProducts(ctx context.Context, params ListParams) (ProductPage, error) {
	rows, total, nextCursor, err := s.repo.ListProducts(ctx, params)
	if err != nil {
		return ProductPage{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	items := make([]Product, 0, len(rows))
	for i := range rows {
		items = append(items, Project(&rows[i]))
	}
	return ProductPage{
		Items:      items,
		Total:      int(total),
		NextCursor: nextCursor,
	}, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID, includeHidden bool) (Product, error) {
	if id == uuid.Nil {
		return Product{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	row, err := s.repo.FindProduct(ctx, id, includeHidden)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Product{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return Product{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return Project(row), nil
}

func (s *service) GetRelatedProducts(ctx context.Context, id uuid.UUID) ([]Product, error) {
	row, err := s.repo.FindProduct(ctx, id, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	related, err := s.repo.RelatedProducts(ctx, row.ID, row.CategoryID, relatedLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load related products")
	}

	items := make([]Product, 0, len(related))
	for i := range related {
		items = append(items, Project(&related[i]))
	}
	return items, nil
}

// ResolveProducts loads the visible projections for a set of IDs. Cart
// rehydration uses this; IDs that vanished or were hidden are simply absent.
func (s *service) ResolveProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Product, error) {
	rows, err := s.repo.FindProductsByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}
	resolved := make(map[uuid.UUID]Product, len(rows))
	for i := range rows {
		resolved[rows[i].ID] = Project(&rows[i])
	}
	return resolved, nil
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	rows, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	items := make([]CategoryDTO, 0, len(rows))
	for i := range rows {
		items = append(items, NewCategoryDTO(&rows[i]))
	}
	return items, nil
}

func (s *service) GetCategoryBySlug(ctx context.Context, slug string) (CategoryDTO, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return CategoryDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "category slug is required")
	}
	row, err := s.repo.FindCategoryBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CategoryDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "category not found")
		}
		return CategoryDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return NewCategoryDTO(row), nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (Product, error) {
	price, err := parsePrice(input.Price)
	if err != nil {
		return Product{}, err
	}

	row := models.Product{
		Name:               strings.TrimSpace(input.Name),
		Description:        input.Description,
		Price:              price,
		SalePrice:          pricing.SalePrice(price, input.DiscountPercentage),
		DiscountPercentage: input.DiscountPercentage,
		Images:             pq.StringArray(input.Images),
		Sizes:              pq.StringArray(input.Sizes),
		Colors:             pq.StringArray(EncodeColors(input.Colors)),
		Stock:              input.Stock,
		Featured:           input.Featured,
		IsNew:              input.IsNew,
		IsVisible:          true,
	}
	if input.IsVisible != nil {
		row.IsVisible = *input.IsVisible
	}
	if input.CategoryID != nil {
		categoryID, err := s.resolveCategoryID(ctx, *input.CategoryID)
		if err != nil {
			return Product{}, err
		}
		row.CategoryID = categoryID
	}

	if err := s.repo.CreateProduct(ctx, &row); err != nil {
		return Product{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	created, err := s.repo.FindProduct(ctx, row.ID, true)
	if err != nil {
		return Product{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload product")
	}

	projected := Project(created)
	s.emitProductChanged(ctx, projected)
	return projected, nil
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (Product, error) {
	row, err := s.repo.FindProduct(ctx, id, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Product{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return Product{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if input.Name != nil {
		row.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		row.Description = input.Description
	}
	if input.Price != nil {
		price, err := parsePrice(*input.Price)
		if err != nil {
			return Product{}, err
		}
		row.Price = price
	}
	switch {
	case input.ClearDiscount:
		row.DiscountPercentage = nil
	case input.DiscountPercentage != nil:
		row.DiscountPercentage = input.DiscountPercentage
	}
	// Sale price always re-derives from the current base price and discount.
	row.SalePrice = pricing.SalePrice(row.Price, row.DiscountPercentage)

	if input.Images != nil {
		row.Images = pq.StringArray(*input.Images)
	}
	if input.Sizes != nil {
		row.Sizes = pq.StringArray(*input.Sizes)
	}
	if input.Colors != nil {
		row.Colors = pq.StringArray(EncodeColors(*input.Colors))
	}
	switch {
	case input.ClearCategory:
		row.CategoryID = nil
		row.Category = nil
	case input.CategoryID != nil:
		categoryID, err := s.resolveCategoryID(ctx, *input.CategoryID)
		if err != nil {
			return Product{}, err
		}
		row.CategoryID = categoryID
	}
	if input.Stock != nil {
		row.Stock = *input.Stock
	}
	if input.Featured != nil {
		row.Featured = *input.Featured
	}
	if input.IsNew != nil {
		row.IsNew = *input.IsNew
	}
	if input.IsVisible != nil {
		row.IsVisible = *input.IsVisible
	}

	if err := s.repo.SaveProduct(ctx, row); err != nil {
		return Product{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}

	updated, err := s.repo.FindProduct(ctx, row.ID, true)
	if err != nil {
		return Product{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload product")
	}

	projected := Project(updated)
	s.emitProductChanged(ctx, projected)
	return projected, nil
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if _, err := s.repo.FindProduct(ctx, id, true); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	if s.events != nil {
		s.events.CatalogEvent(ctx, events.TypeProductChanged, id.String(), map[string]any{
			"id":      id.String(),
			"deleted": true,
		})
	}
	return nil
}

func (s *service) CreateCategory(ctx context.Context, input CreateCategoryInput) (CategoryDTO, error) {
	row := models.Category{
		Name:        strings.TrimSpace(input.Name),
		Slug:        normalizeSlug(input.Slug),
		Description: input.Description,
		Image:       input.Image,
	}
	if row.Slug == "" {
		return CategoryDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "category slug is required")
	}

	if err := s.repo.CreateCategory(ctx, &row); err != nil {
		if isUniqueViolation(err) {
			return CategoryDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "category slug already exists")
		}
		return CategoryDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}

	dto := NewCategoryDTO(&row)
	s.emitCategoryChanged(ctx, dto)
	return dto, nil
}

func (s *service) UpdateCategory(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (CategoryDTO, error) {
	row, err := s.repo.FindCategory(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CategoryDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "category not found")
		}
		return CategoryDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}

	if input.Name != nil {
		row.Name = strings.TrimSpace(*input.Name)
	}
	if input.Slug != nil {
		slug := normalizeSlug(*input.Slug)
		if slug == "" {
			return CategoryDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "category slug is required")
		}
		row.Slug = slug
	}
	if input.Description != nil {
		row.Description = input.Description
	}
	if input.Image != nil {
		row.Image = input.Image
	}

	if err := s.repo.SaveCategory(ctx, row); err != nil {
		if isUniqueViolation(err) {
			return CategoryDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "category slug already exists")
		}
		return CategoryDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update category")
	}

	dto := NewCategoryDTO(row)
	s.emitCategoryChanged(ctx, dto)
	return dto, nil
}

func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "category id is required")
	}
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	if s.events != nil {
		s.events.CatalogEvent(ctx, events.TypeCategoryChanged, id.String(), map[string]any{
			"id":      id.String(),
			"deleted": true,
		})
	}
	return nil
}

func (s *service) resolveCategoryID(ctx context.Context, raw string) (*uuid.UUID, error) {
	categoryID, err := uuid.Parse(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category id")
	}
	if _, err := s.repo.FindCategory(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return &categoryID, nil
}

func (s *service) emitProductChanged(ctx context.Context, p Product) {
	if s.events == nil {
		return
	}
	s.events.CatalogEvent(ctx, events.TypeProductChanged, p.ID.String(), p)
}

func (s *service) emitCategoryChanged(ctx context.Context, c CategoryDTO) {
	if s.events == nil {
		return
	}
	s.events.CatalogEvent(ctx, events.TypeCategoryChanged, c.ID.String(), c)
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "invalid price")
	}
	if price.IsNegative() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	return price.Round(2), nil
}

func normalizeSlug(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key value")
}
