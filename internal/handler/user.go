package handler

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/Sapuran-Berperan/bus-admin-backend/internal/model"
	"github.com/Sapuran-Berperan/bus-admin-backend/internal/pipeline"
	"github.com/Sapuran-Berperan/bus-admin-backend/internal/upstream"
)

// UserLister lists platform accounts
type UserLister interface {
	ListUsers(ctx context.Context, q model.ListQuery) (*upstream.UserListing, error)
}

// UserHandler serves the users table
type UserHandler struct {
	users   UserLister
	tracker *pipeline.Tracker
	logger  *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users UserLister, tracker *pipeline.Tracker, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		users:   users,
		tracker: tracker,
		logger:  logger,
	}
}

// List returns one page of users, optionally filtered by account type
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	q := ParseUserQuery(r)

	ctx, ticket := beginFetch(h.tracker, r, screenUsers)
	page, err := pipeline.FetchPage(ctx, h.logger, q.Page, func(ctx context.Context) ([]model.User, int, error) {
		listing, err := h.users.ListUsers(ctx, q)
		if err != nil {
			return nil, 0, err
		}
		return listing.Users, listing.TotalPages, nil
	})
	current := ticket.Done()

	respondPage(ctx, w, current, page, err, "Users retrieved successfully")
}
