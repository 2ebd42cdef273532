package controllers

import (
	"net/http"
	"strings"

	"github.com/maisonvela/vela-backend/api/responses"
	"github.com/maisonvela/vela-backend/internal/media"
	pkgerrors "github.com/maisonvela/vela-backend/pkg/errors"
	"github.com/maisonvela/vela-backend/pkg/logger"
)

// AdminMediaUpload stores a product image from a multipart form and
// returns its public URL. The form field is named "file".
func AdminMediaUpload(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeDependency, "media storage is not configured"))
			return
		}

		if err := r.ParseMultipartForm(media.MaxUploadBytes); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file field is required"))
			return
		}
		defer file.Close()

		result, err := svc.Upload(ctx, header.Header.Get("Content-Type"), header.Size, file)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// AdminMediaDelete removes a previously uploaded image by its public URL.
func AdminMediaDelete(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeDependency, "media storage is not configured"))
			return
		}

		url := strings.TrimSpace(r.URL.Query().Get("url"))
		if url == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "url query parameter is required"))
			return
		}

		svc.DeleteByURL(ctx, url)
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
