package handler

import (
	"context"
	"net/http"

	"github.com/Sapuran-Berperan/bus-admin-backend/internal/middleware"
	"github.com/Sapuran-Berperan/bus-admin-backend/internal/pipeline"
)

// Screens whose listing requests supersede each other per client
const (
	screenBuses  = "buses"
	screenUsers  = "users"
	screenCities = "cities"
)

// beginFetch registers a listing request for screen with the tracker
func beginFetch(tracker *pipeline.Tracker, r *http.Request, screen string) (context.Context, *pipeline.Ticket) {
	key := pipeline.Key(screen, middleware.GetClientID(r.Context()))
	return tracker.Begin(r.Context(), key)
}
