package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	pkgauth "github.com/maisonvela/vela-backend/pkg/auth"
	"github.com/maisonvela/vela-backend/pkg/config"
	"github.com/maisonvela/vela-backend/pkg/db/models"
	"github.com/maisonvela/vela-backend/pkg/enums"
	pkgerrors "github.com/maisonvela/vela-backend/pkg/errors"
	"github.com/maisonvela/vela-backend/pkg/logger"
)

type fakeAccounts struct {
	byEmail map[string]*models.Profile
	roles   map[uuid.UUID][]enums.Role
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{
		byEmail: map[string]*models.Profile{},
		roles:   map[uuid.UUID][]enums.Role{},
	}
}

func (f *fakeAccounts) Create(_ context.Context, row *models.Profile) error {
	if _, exists := f.byEmail[row.Email]; exists {
		return errors.New(`duplicate key value violates unique constraint "profiles_email_key"`)
	}
	row.ID = uuid.New()
	row.CreatedAt = time.Now()
	f.byEmail[row.Email] = row
	return nil
}

func (f *fakeAccounts) FindByEmail(_ context.Context, email string) (*models.Profile, error) {
	row, ok := f.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (f *fakeAccounts) HasRole(_ context.Context, userID uuid.UUID, role enums.Role) (bool, error) {
	for _, held := range f.roles[userID] {
		if held == role {
			return true, nil
		}
	}
	return false, nil
}

func testService(t *testing.T, accounts *fakeAccounts) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Accounts: accounts,
		JWT:      testJWTConfig(),
		Password: testPasswordConfig(),
		Logg:     logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("disabled")}),
	})
	require.NoError(t, err)
	return svc
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "vela", ExpirationMinutes: 60}
}

func testPasswordConfig() config.PasswordConfig {
	// Small parameters keep the argon2id hashing fast in tests.
	return config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	accounts := newFakeAccounts()
	svc := testService(t, accounts)

	name := "Ada Lovelace"
	registered, err := svc.Register(context.Background(), RegisterInput{
		Email:           "  Ada@Example.COM ",
		Password:        "correct horse",
		ConfirmPassword: "correct horse",
		FullName:        &name,
	})
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", registered.Customer.Email)
	require.False(t, registered.Customer.IsAdmin)
	require.NotEmpty(t, registered.Token)

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), registered.Token)
	require.NoError(t, err)
	require.Equal(t, registered.Customer.ID, claims.UserID)
	require.Equal(t, enums.RoleCustomer, claims.Role)

	loggedIn, err := svc.Login(context.Background(), LoginInput{
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	require.Equal(t, registered.Customer.ID, loggedIn.Customer.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	accounts := newFakeAccounts()
	svc := testService(t, accounts)

	input := RegisterInput{
		Email:           "ada@example.com",
		Password:        "correct horse",
		ConfirmPassword: "correct horse",
	}
	_, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), input)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestRegisterValidation(t *testing.T) {
	svc := testService(t, newFakeAccounts())

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:           "ada@example.com",
		Password:        "short",
		ConfirmPassword: "short",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.Register(context.Background(), RegisterInput{
		Email:           "ada@example.com",
		Password:        "correct horse",
		ConfirmPassword: "wrong horse",
	})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	accounts := newFakeAccounts()
	svc := testService(t, accounts)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:           "ada@example.com",
		Password:        "correct horse",
		ConfirmPassword: "correct horse",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginInput{Email: "ada@example.com", Password: "wrong"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())

	_, err = svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "whatever"})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestLoginMintsAdminRole(t *testing.T) {
	accounts := newFakeAccounts()
	svc := testService(t, accounts)

	registered, err := svc.Register(context.Background(), RegisterInput{
		Email:           "root@example.com",
		Password:        "correct horse",
		ConfirmPassword: "correct horse",
	})
	require.NoError(t, err)
	accounts.roles[registered.Customer.ID] = []enums.Role{enums.RoleAdmin}

	loggedIn, err := svc.Login(context.Background(), LoginInput{
		Email:    "root@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	require.True(t, loggedIn.Customer.IsAdmin)

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), loggedIn.Token)
	require.NoError(t, err)
	require.Equal(t, enums.RoleAdmin, claims.Role)
}
