package controllers

import (
	"net/http"

	"github.com/maisonvela/vela-backend/api/responses"
	"github.com/maisonvela/vela-backend/api/validators"
	"github.com/maisonvela/vela-backend/internal/adminsetup"
	"github.com/maisonvela/vela-backend/pkg/logger"
)

// AdminSetup promotes the authenticated user to admin when the request
// carries the configured setup code.
func AdminSetup(svc adminsetup.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := requireUser(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var input adminsetup.Input
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.Promote(ctx, userID, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
