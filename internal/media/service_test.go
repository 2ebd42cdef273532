package media

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	pkgerrors "github.com/maisonvela/vela-backend/pkg/errors"
	"github.com/maisonvela/vela-backend/pkg/logger"
)

type fakeStore struct {
	uploads   map[string]string
	deleted   []string
	deleteErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{uploads: map[string]string{}}
}

func (f *fakeStore) Upload(_ context.Context, objectPath, contentType string, body io.Reader) (string, error) {
	payload, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.uploads[objectPath] = contentType + ":" + string(payload)
	return "https://storage.googleapis.com/test-bucket/" + objectPath, nil
}

func (f *fakeStore) Delete(_ context.Context, objectPath string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, objectPath)
	return nil
}

func (f *fakeStore) ObjectPathFromURL(publicURL string) string {
	const prefix = "https://storage.googleapis.com/test-bucket/"
	if !strings.HasPrefix(publicURL, prefix) {
		return ""
	}
	return strings.TrimPrefix(publicURL, prefix)
}

func testMediaService(t *testing.T, store *fakeStore) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Store: store,
		Logg:  logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("disabled")}),
		Now:   func() time.Time { return time.Unix(1749600000, 0) },
	})
	require.NoError(t, err)
	return svc
}

func TestUploadStoresImage(t *testing.T) {
	store := newFakeStore()
	svc := testMediaService(t, store)

	result, err := svc.Upload(context.Background(), "image/png", 4, strings.NewReader("data"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(result.Path, "products/1749600000-"))
	require.True(t, strings.HasSuffix(result.Path, ".png"))
	require.Equal(t, "https://storage.googleapis.com/test-bucket/"+result.Path, result.URL)
	require.Equal(t, "image/png:data", store.uploads[result.Path])
}

func TestUploadNormalizesContentType(t *testing.T) {
	store := newFakeStore()
	svc := testMediaService(t, store)

	result, err := svc.Upload(context.Background(), "IMAGE/JPEG; charset=binary", 4, strings.NewReader("data"))
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(result.Path, ".jpg"))
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	svc := testMediaService(t, newFakeStore())

	_, err := svc.Upload(context.Background(), "application/pdf", 4, strings.NewReader("data"))
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUploadRejectsOversizedBody(t *testing.T) {
	svc := testMediaService(t, newFakeStore())

	_, err := svc.Upload(context.Background(), "image/png", MaxUploadBytes+1, strings.NewReader("data"))
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestDeleteByURL(t *testing.T) {
	store := newFakeStore()
	svc := testMediaService(t, store)

	svc.DeleteByURL(context.Background(), "https://storage.googleapis.com/test-bucket/products/old.png")
	require.Equal(t, []string{"products/old.png"}, store.deleted)

	// Foreign URLs and storage failures are swallowed.
	svc.DeleteByURL(context.Background(), "https://example.com/elsewhere.png")
	store.deleteErr = errors.New("boom")
	svc.DeleteByURL(context.Background(), "https://storage.googleapis.com/test-bucket/products/other.png")
	require.Len(t, store.deleted, 1)
}
