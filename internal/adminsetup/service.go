// Package adminsetup promotes an authenticated account to the admin role
// when it presents the shared bootstrap code. The grant is idempotent so
// re-running setup after a partial deploy is safe.
package adminsetup

import (
	"context"
	"crypto/subtle"

	"github.com/google/uuid"

	"github.com/maisonvela/vela-backend/pkg/config"
	"github.com/maisonvela/vela-backend/pkg/enums"
	pkgerrors "github.com/maisonvela/vela-backend/pkg/errors"
	"github.com/maisonvela/vela-backend/pkg/logger"
)

type roleGranter interface {
	GrantRole(ctx context.Context, userID uuid.UUID, role enums.Role) error
}

// Input is the setup request payload.
type Input struct {
	Code string `json:"code" validate:"required"`
}

// Result reports the outcome of a setup attempt.
type Result struct {
	UserID  uuid.UUID `json:"user_id"`
	IsAdmin bool      `json:"is_admin"`
}

// ServiceParams groups dependencies for the admin setup service.
type ServiceParams struct {
	Roles roleGranter
	Setup config.AdminSetupConfig
	Logg  *logger.Logger
}

// Service grants the admin role against the configured setup code.
type Service interface {
	Promote(ctx context.Context, userID uuid.UUID, input Input) (Result, error)
}

type service struct {
	roles roleGranter
	setup config.AdminSetupConfig
	logg  *logger.Logger
}

// NewService builds an admin setup service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Roles == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "admin setup role store is required")
	}
	if params.Logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "admin setup logger is required")
	}
	return &service{roles: params.Roles, setup: params.Setup, logg: params.Logg}, nil
}

func (s *service) Promote(ctx context.Context, userID uuid.UUID, input Input) (Result, error) {
	if userID == uuid.Nil {
		return Result{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "must be logged in to run admin setup")
	}
	if s.setup.Code == "" {
		return Result{}, pkgerrors.New(pkgerrors.CodeForbidden, "admin setup is not enabled")
	}
	if subtle.ConstantTimeCompare([]byte(input.Code), []byte(s.setup.Code)) != 1 {
		return Result{}, pkgerrors.New(pkgerrors.CodeForbidden, "invalid setup code")
	}

	if err := s.roles.GrantRole(ctx, userID, enums.RoleAdmin); err != nil {
		return Result{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to grant admin role")
	}

	s.logg.Info(s.logg.WithUserID(ctx, userID.String()), "admin role granted via setup code")
	return Result{UserID: userID, IsAdmin: true}, nil
}
