package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Sapuran-Berperan/bus-admin-backend/internal/model"
	"github.com/Sapuran-Berperan/bus-admin-backend/internal/pipeline"
)

const (
	msgSuperseded = "Request superseded by a newer request"
	msgNoData     = "No data available"
)

// Meta contains response metadata
type Meta struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Response is the standard API response structure
type Response struct {
	Meta Meta        `json:"meta"`
	Data interface{} `json:"data"`
}

// respondJSON writes a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// respondSuccess sends a success response
func respondSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	respondJSON(w, status, Response{
		Meta: Meta{
			Success: true,
			Message: message,
		},
		Data: data,
	})
}

// respondError sends an error response with data: null
func respondError(w http.ResponseWriter, status int, message string, details map[string]string) {
	respondJSON(w, status, Response{
		Meta: Meta{
			Success: false,
			Message: message,
			Details: details,
		},
		Data: nil,
	})
}

// respondPage writes the outcome of a tracked listing fetch. A fetch that is
// no longer the newest for its client never carries data; a failed listing
// still answers 200 with an empty no-data page.
func respondPage[T any](ctx context.Context, w http.ResponseWriter, current bool, page model.Page[T], err error, message string) {
	switch {
	case !current || pipeline.IsSuperseded(ctx, err):
		respondError(w, http.StatusConflict, msgSuperseded, nil)
	case err != nil:
		respondError(w, http.StatusServiceUnavailable, "Request cancelled", nil)
	case page.NoData:
		respondSuccess(w, http.StatusOK, msgNoData, page)
	default:
		respondSuccess(w, http.StatusOK, message, page)
	}
}

// Health reports that the service is up
func Health(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, "OK", nil)
}
