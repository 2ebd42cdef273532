package controllers

import (
	"net/http"

	"github.com/maisonvela/vela-backend/api/responses"
	"github.com/maisonvela/vela-backend/api/validators"
	"github.com/maisonvela/vela-backend/internal/analytics"
	"github.com/maisonvela/vela-backend/pkg/logger"
)

// AdminDashboard serves the aggregate stats for the admin landing page.
func AdminDashboard(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		stats, err := svc.Dashboard(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

// AdminRevenueSeries serves the zero-filled daily revenue series for a
// 7, 14, or 30 day window.
func AdminRevenueSeries(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		days, err := validators.ParseQueryInt(r, "days", 7, 1, 30)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		series, err := svc.RevenueSeries(ctx, days)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, series)
	}
}

// AdminTopSellers serves the best-selling products ranked by units sold.
func AdminTopSellers(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sellers, err := svc.TopSellers(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, sellers)
	}
}

// AdminLowStock serves products at or below the low stock threshold.
func AdminLowStock(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		products, err := svc.LowStock(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}
