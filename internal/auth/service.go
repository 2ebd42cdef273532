package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maisonvela/vela-backend/internal/customers"
	"github.com/maisonvela/vela-backend/pkg/auth"
	"github.com/maisonvela/vela-backend/pkg/config"
	"github.com/maisonvela/vela-backend/pkg/db/models"
	"github.com/maisonvela/vela-backend/pkg/enums"
	pkgerrors "github.com/maisonvela/vela-backend/pkg/errors"
	"github.com/maisonvela/vela-backend/pkg/logger"
	"github.com/maisonvela/vela-backend/pkg/security"
)

// accountStore is the slice of the customer repository the auth service
// depends on.
type accountStore interface {
	Create(ctx context.Context, row *models.Profile) error
	FindByEmail(ctx context.Context, email string) (*models.Profile, error)
	HasRole(ctx context.Context, userID uuid.UUID, role enums.Role) (bool, error)
}

// ServiceParams groups dependencies for the auth service.
type ServiceParams struct {
	Accounts accountStore
	JWT      config.JWTConfig
	Password config.PasswordConfig
	Logg     *logger.Logger

	// Now is overridable for deterministic token expiry in tests.
	Now func() time.Time
}

// Service handles account registration and sign-in.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (AuthResult, error)
	Login(ctx context.Context, input LoginInput) (AuthResult, error)
}

type service struct {
	accounts accountStore
	jwt      config.JWTConfig
	password config.PasswordConfig
	logg     *logger.Logger
	now      func() time.Time
}

// NewService builds an auth service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Accounts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "auth accounts store is required")
	}
	if params.JWT.Secret == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "auth jwt secret is required")
	}
	if params.Logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "auth logger is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		accounts: params.Accounts,
		jwt:      params.JWT,
		password: params.Password,
		logg:     params.Logg,
		now:      now,
	}, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	email := normalizeEmail(input.Email)
	if email == "" {
		return AuthResult{}, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if len(input.Password) < 8 {
		return AuthResult{}, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}
	if input.ConfirmPassword != input.Password {
		return AuthResult{}, pkgerrors.New(pkgerrors.CodeValidation, "passwords do not match")
	}

	hash, err := security.HashPassword(input.Password, s.password)
	if err != nil {
		return AuthResult{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to hash password")
	}

	row := &models.Profile{
		Email:        email,
		FullName:     trimmedName(input.FullName),
		PasswordHash: hash,
	}
	if err := s.accounts.Create(ctx, row); err != nil {
		if pkgerrors.IsUniqueViolation(err) || isDuplicateKeyMessage(err) {
			return AuthResult{}, pkgerrors.New(pkgerrors.CodeConflict, "an account with this email already exists")
		}
		return AuthResult{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to create account")
	}

	result, err := s.mint(row, enums.RoleCustomer)
	if err != nil {
		return AuthResult{}, err
	}

	s.logg.Info(s.logg.WithUserID(ctx, row.ID.String()), "account registered")
	return result, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return AuthResult{}, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	row, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResult{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
		}
		return AuthResult{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to look up account")
	}

	ok, err := security.VerifyPassword(input.Password, row.PasswordHash)
	if err != nil {
		return AuthResult{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to verify password")
	}
	if !ok {
		return AuthResult{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
	}

	role := enums.RoleCustomer
	isAdmin, err := s.accounts.HasRole(ctx, row.ID, enums.RoleAdmin)
	if err != nil {
		return AuthResult{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to resolve account roles")
	}
	if isAdmin {
		role = enums.RoleAdmin
	}

	return s.mint(row, role)
}

func (s *service) mint(row *models.Profile, role enums.Role) (AuthResult, error) {
	token, err := auth.MintAccessToken(s.jwt, s.now(), auth.AccessTokenPayload{
		UserID: row.ID,
		Email:  row.Email,
		Role:   role,
	})
	if err != nil {
		return AuthResult{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to mint access token")
	}
	return AuthResult{
		Token: token,
		Customer: customers.CustomerDTO{
			ID:        row.ID,
			Email:     row.Email,
			FullName:  row.FullName,
			IsAdmin:   role == enums.RoleAdmin,
			CreatedAt: row.CreatedAt,
		},
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func trimmedName(name *string) *string {
	if name == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// isDuplicateKeyMessage is the fallback for stores that do not surface a
// typed driver error, such as the in-memory fakes used in tests.
func isDuplicateKeyMessage(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key value")
}
