package handler

import (
	"context"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Sapuran-Berperan/bus-admin-backend/internal/model"
	"github.com/Sapuran-Berperan/bus-admin-backend/internal/upstream"
)

// DashboardSource lists every collection counted on the dashboard
type DashboardSource interface {
	ListBuses(ctx context.Context, q model.ListQuery) (*upstream.BusListing, error)
	ListUsers(ctx context.Context, q model.ListQuery) (*upstream.UserListing, error)
	ListCities(ctx context.Context, q model.ListQuery) (*upstream.CityListing, error)
}

// DashboardHandler serves the admin dashboard counts
type DashboardHandler struct {
	source DashboardSource
	logger *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(source DashboardSource, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		source: source,
		logger: logger,
	}
}

// countQuery lists one item per page so the page count equals the item count
var countQuery = model.ListQuery{Page: 1, Limit: 1}

// Stats returns the user, bus and city counts, fetched concurrently
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var stats model.DashboardStats

	var g errgroup.Group
	g.Go(func() error {
		stats.Users = h.count(ctx, "users", func(ctx context.Context) (int, error) {
			listing, err := h.source.ListUsers(ctx, countQuery)
			if err != nil {
				return 0, err
			}
			return listing.TotalPages, nil
		})
		return nil
	})
	g.Go(func() error {
		stats.Buses = h.count(ctx, "buses", func(ctx context.Context) (int, error) {
			listing, err := h.source.ListBuses(ctx, countQuery)
			if err != nil {
				return 0, err
			}
			return listing.TotalPages, nil
		})
		return nil
	})
	g.Go(func() error {
		stats.Cities = h.count(ctx, "cities", func(ctx context.Context) (int, error) {
			listing, err := h.source.ListCities(ctx, countQuery)
			if err != nil {
				return 0, err
			}
			return listing.TotalPages, nil
		})
		return nil
	})
	_ = g.Wait()

	respondSuccess(w, http.StatusOK, "Dashboard retrieved successfully", stats)
}

// count runs one counting listing. A failed count is nil.
func (h *DashboardHandler) count(ctx context.Context, collection string, list func(context.Context) (int, error)) *int {
	n, err := list(ctx)
	if err != nil {
		h.logger.Warn("dashboard count failed", zap.String("collection", collection), zap.Error(err))
		return nil
	}
	return &n
}
