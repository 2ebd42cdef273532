// Package media uploads product imagery to object storage and hands back
// the public URLs the catalog stores on product rows.
package media

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	pkgerrors "github.com/maisonvela/vela-backend/pkg/errors"
	"github.com/maisonvela/vela-backend/pkg/logger"
)

// MaxUploadBytes caps a single image upload.
const MaxUploadBytes = 10 << 20

const objectPrefix = "products"

type objectStore interface {
	Upload(ctx context.Context, objectPath, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, objectPath string) error
	ObjectPathFromURL(publicURL string) string
}

// UploadResult describes a stored image.
type UploadResult struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

// ServiceParams groups dependencies for the media service.
type ServiceParams struct {
	Store objectStore
	Logg  *logger.Logger

	// Now is overridable for deterministic object names in tests.
	Now func() time.Time
}

// Service stores and removes product imagery.
type Service interface {
	Upload(ctx context.Context, contentType string, size int64, body io.Reader) (UploadResult, error)
	DeleteByURL(ctx context.Context, publicURL string)
}

type service struct {
	store objectStore
	logg  *logger.Logger
	now   func() time.Time
}

// NewService builds a media service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "media object store is required")
	}
	if params.Logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "media logger is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{store: params.Store, logg: params.Logg, now: now}, nil
}

func (s *service) Upload(ctx context.Context, contentType string, size int64, body io.Reader) (UploadResult, error) {
	if size > MaxUploadBytes {
		return UploadResult{}, pkgerrors.New(pkgerrors.CodeValidation, "image exceeds the 10MB upload limit")
	}

	mimeType, err := sniffMimeType(contentType)
	if err != nil {
		return UploadResult{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unreadable content type")
	}
	ext, ok := extensionFor(mimeType)
	if !ok {
		return UploadResult{}, pkgerrors.New(pkgerrors.CodeValidation, "only png, jpeg, webp and gif images are accepted")
	}

	objectPath := s.objectPath(ext)
	url, err := s.store.Upload(ctx, objectPath, mimeType, io.LimitReader(body, MaxUploadBytes))
	if err != nil {
		return UploadResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to upload image")
	}

	s.logg.Info(s.logg.WithField(ctx, "object_path", objectPath), "product image uploaded")
	return UploadResult{URL: url, Path: objectPath}, nil
}

// DeleteByURL removes a previously uploaded image. Removal is best
// effort because product rows keep working with a dangling URL.
func (s *service) DeleteByURL(ctx context.Context, publicURL string) {
	objectPath := s.store.ObjectPathFromURL(publicURL)
	if objectPath == "" {
		return
	}
	if err := s.store.Delete(ctx, objectPath); err != nil {
		s.logg.Error(s.logg.WithField(ctx, "object_path", objectPath), "failed to delete product image", err)
	}
}

func (s *service) objectPath(ext string) string {
	suffix := make([]byte, 6)
	if _, err := rand.Read(suffix); err != nil {
		// crypto/rand never fails on supported platforms; fall back to
		// a timestamp-only name if it somehow does.
		return fmt.Sprintf("%s/%d.%s", objectPrefix, s.now().UnixNano(), ext)
	}
	return fmt.Sprintf("%s/%d-%s.%s", objectPrefix, s.now().Unix(), hex.EncodeToString(suffix), ext)
}
