package handler

import (
	"net/http"

	"github.com/Sapuran-Berperan/bus-admin-backend/internal/pipeline"
)

// BusHandler serves the bus table
type BusHandler struct {
	pipeline *pipeline.BusPipeline
	tracker  *pipeline.Tracker
}

// NewBusHandler creates a new BusHandler
func NewBusHandler(p *pipeline.BusPipeline, tracker *pipeline.Tracker) *BusHandler {
	return &BusHandler{
		pipeline: p,
		tracker:  tracker,
	}
}

// List returns one page of buses with owner and city names resolved
func (h *BusHandler) List(w http.ResponseWriter, r *http.Request) {
	q := ParseBusQuery(r)

	ctx, ticket := beginFetch(h.tracker, r, screenBuses)
	page, err := h.pipeline.Fetch(ctx, q)
	current := ticket.Done()

	respondPage(ctx, w, current, page, err, "Buses retrieved successfully")
}
