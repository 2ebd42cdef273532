package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	pkgAuth "github.com/maisonvela/vela-backend/pkg/auth"
	"github.com/maisonvela/vela-backend/pkg/config"
	"github.com/maisonvela/vela-backend/pkg/enums"
	"github.com/maisonvela/vela-backend/pkg/logger"
)

func jwtConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "vela", ExpirationMinutes: 60}
}

func mintToken(t *testing.T, role enums.Role) (string, uuid.UUID) {
	t.Helper()
	userID := uuid.New()
	token, err := pkgAuth.MintAccessToken(jwtConfig(), time.Now(), pkgAuth.AccessTokenPayload{
		UserID: userID,
		Email:  "ada@example.com",
		Role:   role,
	})
	require.NoError(t, err)
	return token, userID
}

func testLogg() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("disabled")})
}

func TestAuthSeedsContext(t *testing.T) {
	token, userID := mintToken(t, enums.RoleCustomer)

	var seenUser, seenRole string
	handler := Auth(jwtConfig(), testLogg())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser = UserIDFromContext(r.Context())
		seenRole = RoleFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, userID.String(), seenUser)
	require.Equal(t, "customer", seenRole)
}

func TestAuthRejectsMissingAndBadTokens(t *testing.T) {
	handler := Auth(jwtConfig(), testLogg())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuthAllowsAnonymous(t *testing.T) {
	var seenUser string
	called := false
	handler := OptionalAuth(jwtConfig(), testLogg())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		seenUser = UserIDFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.True(t, called)
	require.Empty(t, seenUser)
}

func TestOptionalAuthRejectsMalformedToken(t *testing.T) {
	handler := OptionalAuth(jwtConfig(), testLogg())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole("admin", testLogg())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req = req.WithContext(WithRole(req.Context(), "customer"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest("GET", "/", nil)
	req = req.WithContext(WithRole(req.Context(), "admin"))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestUserUUIDFromContext(t *testing.T) {
	id := uuid.New()
	ctx := WithUserID(nil, id.String())
	require.Equal(t, id, UserUUIDFromContext(ctx))

	require.Equal(t, uuid.Nil, UserUUIDFromContext(WithUserID(nil, "garbage")))
}
