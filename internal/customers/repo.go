package customers

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maisonvela/vela-backend/pkg/db/models"
	"github.com/maisonvela/vela-backend/pkg/enums"
	"github.com/maisonvela/vela-backend/pkg/pagination"
)

// Repository encapsulates profile and role persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a customer repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a profile row.
func (r *Repository) Create(ctx context.Context, row *models.Profile) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// FindByID loads one profile.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var row models.Profile
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// FindByEmail loads one profile by its normalized email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var row models.Profile
	err := r.db.WithContext(ctx).
		First(&row, "email = ?", strings.ToLower(strings.TrimSpace(email))).
		Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns one page of profiles, newest first.
func (r *Repository) List(ctx context.Context, cursor string, limit int) ([]models.Profile, int64, string, error) {
	normalizedLimit := pagination.NormalizeLimit(limit)
	limitWithBuffer := pagination.LimitWithBuffer(limit)

	decodedCursor, err := pagination.ParseCursor(cursor)
	if err != nil {
		return nil, 0, "", err
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Profile{}).Count(&total).Error; err != nil {
		return nil, 0, "", err
	}

	query := r.db.WithContext(ctx).Model(&models.Profile{})
	if decodedCursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID,
		)
	}
	query = query.Order("created_at DESC").Order("id DESC").Limit(limitWithBuffer)

	var rows []models.Profile
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

// OrderCounts returns the number of orders placed by each of the given
// users. Users with no orders are absent from the map.
func (r *Repository) OrderCounts(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(userIDs))
	if len(userIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		UserID uuid.UUID
		Total  int
	}
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("user_id, COUNT(*) AS total").
		Where("user_id IN ?", userIDs).
		Group("user_id").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.UserID] = row.Total
	}
	return counts, nil
}

// HasRole reports whether the user holds the role.
func (r *Repository) HasRole(ctx context.Context, userID uuid.UUID, role enums.Role) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserRole{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GrantRole inserts the role row, ignoring duplicates so grants stay
// idempotent.
func (r *Repository) GrantRole(ctx context.Context, userID uuid.UUID, role enums.Role) error {
	return r.db.WithContext(ctx).
		Exec(`INSERT INTO user_roles (user_id, role) VALUES (?, ?) ON CONFLICT (user_id, role) DO NOTHING`, userID, role).
		Error
}
