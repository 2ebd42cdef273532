package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/maisonvela/vela-backend/pkg/enums"
)

// UserRole grants an elevated role to a profile. The (user, role) pair is
// unique so repeated admin-setup calls stay idempotent.
type UserRole struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex:user_roles_user_role_key"`
	Role      enums.Role `gorm:"column:role;not null;uniqueIndex:user_roles_user_role_key"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}
