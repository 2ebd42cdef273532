package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	pkgerrors "github.com/maisonvela/vela-backend/pkg/errors"
)

type samplePayload struct {
	Email    string `json:"email" validate:"required,email"`
	Quantity int    `json:"quantity" validate:"min=1"`
}

func TestDecodeJSONBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"ada@example.com","quantity":2}`))

	var payload samplePayload
	require.NoError(t, DecodeJSONBody(r, &payload))
	require.Equal(t, "ada@example.com", payload.Email)
	require.Equal(t, 2, payload.Quantity)
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"ada@example.com","quantity":1,"extra":true}`))

	var payload samplePayload
	err := DecodeJSONBody(r, &payload)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestDecodeJSONBodyReportsFieldErrors(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"not-an-email","quantity":0}`))

	var payload samplePayload
	err := DecodeJSONBody(r, &payload)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)

	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	require.Equal(t, "must be a valid email", details["email"])
	require.Equal(t, "must be at least 1", details["quantity"])
}

func TestParseQueryInt(t *testing.T) {
	r := httptest.NewRequest("GET", "/?limit=30", nil)
	value, err := ParseQueryInt(r, "limit", 20, 1, 100)
	require.NoError(t, err)
	require.Equal(t, 30, value)

	r = httptest.NewRequest("GET", "/", nil)
	value, err = ParseQueryInt(r, "limit", 20, 1, 100)
	require.NoError(t, err)
	require.Equal(t, 20, value)

	r = httptest.NewRequest("GET", "/?limit=abc", nil)
	_, err = ParseQueryInt(r, "limit", 20, 1, 100)
	require.NotNil(t, pkgerrors.As(err))

	r = httptest.NewRequest("GET", "/?limit=500", nil)
	_, err = ParseQueryInt(r, "limit", 20, 1, 100)
	require.NotNil(t, pkgerrors.As(err))
}

func TestParseQueryBool(t *testing.T) {
	r := httptest.NewRequest("GET", "/?featured=true", nil)
	value, err := ParseQueryBool(r, "featured")
	require.NoError(t, err)
	require.NotNil(t, value)
	require.True(t, *value)

	r = httptest.NewRequest("GET", "/", nil)
	value, err = ParseQueryBool(r, "featured")
	require.NoError(t, err)
	require.Nil(t, value)

	r = httptest.NewRequest("GET", "/?featured=maybe", nil)
	_, err = ParseQueryBool(r, "featured")
	require.NotNil(t, pkgerrors.As(err))
}
