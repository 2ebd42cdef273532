package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maisonvela/vela-backend/pkg/db/models"
	"github.com/maisonvela/vela-backend/pkg/pagination"
)

// Repository encapsulates catalog persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListProducts returns one page of product rows matching the params, newest
// first. Storefront reads keep the visibility filter; admin reads drop it.
func (r *Repository) ListProducts(ctx context.Context, params ListParams) ([]models.Product, int64, string, error) {
	normalizedLimit := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)

	decodedCursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, 0, "", err
	}

	base := r.db.WithContext(ctx).Model(&models.Product{})
	base = applyListFilters(base, params)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, "", err
	}

	query := base.Session(&gorm.Session{}).Preload("Category")
	if decodedCursor != nil {
		query = query.Where(
			"(products.created_at < ?) OR (products.created_at = ? AND products.id < ?)",
			decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID,
		)
	}
	query = query.Order("products.created_at DESC").Order("products.id DESC").Limit(limitWithBuffer)

	var rows []models.Product
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, "", err
	}

	nextCursor := ""
	if len(rows) > normalizedLimit {
		rows = rows[:normalizedLimit]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}

	return rows, total, nextCursor, nil
}

func applyListFilters(query *gorm.DB, params ListParams) *gorm.DB {
	if !params.IncludeHidden {
		query = query.Where("products.is_visible = TRUE")
	}
	if params.CategorySlug != "" {
		query = query.
			Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", params.CategorySlug)
	}
	if params.Featured != nil {
		query = query.Where("products.featured = ?", *params.Featured)
	}
	if params.IsNew != nil {
		query = query.Where("products.is_new = ?", *params.IsNew)
	}
	if search := strings.TrimSpace(params.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("products.name ILIKE ? OR products.description ILIKE ?", pattern, pattern)
	}
	return query
}

// FindProduct loads one product with its category joined.
func (r *Repository) FindProduct(ctx context.Context, id uuid.UUID, includeHidden bool) (*models.Product, error) {
	query := r.db.WithContext(ctx).Preload("Category")
	if !includeHidden {
		query = query.Where("is_visible = TRUE")
	}

	var row models.Product
	if err := query.First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// FindProductsByIDs loads visible products for the given IDs. Missing or
// hidden IDs are silently absent from the result.
func (r *Repository) FindProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id IN ? AND is_visible = TRUE", ids).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// RelatedProducts returns visible products sharing the category, excluding
// the product itself, newest first.
func (r *Repository) RelatedProducts(ctx context.Context, productID uuid.UUID, categoryID *uuid.UUID, limit int) ([]models.Product, error) {
	if categoryID == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 4
	}

	var rows []models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("category_id = ? AND id <> ? AND is_visible = TRUE", *categoryID, productID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateProduct inserts a product row.
func (r *Repository) CreateProduct(ctx context.Context, row *models.Product) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// SaveProduct persists the full product row.
func (r *Repository) SaveProduct(ctx context.Context, row *models.Product) error {
	return r.db.WithContext(ctx).Save(row).Error
}

// DeleteProduct removes a product row. Order items keep their snapshots; the
// FK nulls their product reference.
func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

// ListCategories returns all categories ordered by name.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindCategory loads one category by ID.
func (r *Repository) FindCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var row models.Category
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// FindCategoryBySlug loads one category by its unique slug.
func (r *Repository) FindCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var row models.Category
	if err := r.db.WithContext(ctx).First(&row, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// CreateCategory inserts a category row.
func (r *Repository) CreateCategory(ctx context.Context, row *models.Category) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// SaveCategory persists the full category row.
func (r *Repository) SaveCategory(ctx context.Context, row *models.Category) error {
	return r.db.WithContext(ctx).Save(row).Error
}

// DeleteCategory removes a category. Products referencing it keep a NULL
// category and project as accessories.
func (r *Repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id).Error
}
