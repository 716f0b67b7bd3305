package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Sapuran-Berperan/bus-admin-backend/internal/middleware"
	"github.com/Sapuran-Berperan/bus-admin-backend/internal/model"
	"github.com/Sapuran-Berperan/bus-admin-backend/internal/pipeline"
	"github.com/Sapuran-Berperan/bus-admin-backend/internal/repository"
	"github.com/Sapuran-Berperan/bus-admin-backend/internal/upstream"
	"github.com/Sapuran-Berperan/bus-admin-backend/internal/util"
)

// CityStore lists cities and edits their stops
type CityStore interface {
	ListCities(ctx context.Context, q model.ListQuery) (*upstream.CityListing, error)
	AddStop(ctx context.Context, pincode string, stop model.Stop) error
	DeleteStop(ctx context.Context, pincode, stopID string) error
}

// AuditStore records and lists stop mutations
type AuditStore interface {
	CreateAuditEntry(ctx context.Context, arg repository.CreateAuditEntryParams) (model.AuditEntry, error)
	ListAuditEntriesPaginated(ctx context.Context, params model.ListAuditParams) (*repository.ListAuditEntriesPaginatedResult, error)
}

// CityHandler serves the city table and its stop editor
type CityHandler struct {
	cities  CityStore
	audit   AuditStore
	tracker *pipeline.Tracker
	logger  *zap.Logger
}

// NewCityHandler creates a new CityHandler
func NewCityHandler(cities CityStore, audit AuditStore, tracker *pipeline.Tracker, logger *zap.Logger) *CityHandler {
	return &CityHandler{
		cities:  cities,
		audit:   audit,
		tracker: tracker,
		logger:  logger,
	}
}

// List returns one page of cities with their stops
func (h *CityHandler) List(w http.ResponseWriter, r *http.Request) {
	q := ParseCityQuery(r)

	ctx, ticket := beginFetch(h.tracker, r, screenCities)
	page, err := pipeline.FetchPage(ctx, h.logger, q.Page, func(ctx context.Context) ([]model.City, int, error) {
		listing, err := h.cities.ListCities(ctx, q)
		if err != nil {
			return nil, 0, err
		}
		return listing.Cities, listing.TotalPages, nil
	})
	current := ticket.Done()

	respondPage(ctx, w, current, page, err, "Cities retrieved successfully")
}

// AddStop adds a stop to the city identified by its pincode
func (h *CityHandler) AddStop(w http.ResponseWriter, r *http.Request) {
	pincode := chi.URLParam(r, "pincode")

	var req model.AddStopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if validationErrors := req.Validate(); len(validationErrors) > 0 {
		respondError(w, http.StatusBadRequest, "Validation failed", validationErrors)
		return
	}

	stop := model.Stop{
		StopID:       util.GenerateStopID(req.StopName),
		StopName:     req.StopName,
		StopTimings:  req.StopTimings,
		StopDuration: req.StopDuration,
	}

	if err := h.cities.AddStop(r.Context(), pincode, stop); err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "City not found", nil)
			return
		}
		h.logger.Error("failed to add stop", zap.String("pincode", pincode), zap.Error(err))
		respondError(w, http.StatusBadGateway, "Failed to add stop", nil)
		return
	}

	h.record(r.Context(), model.AuditActionAddStop, pincode, stop.StopID)
	respondSuccess(w, http.StatusCreated, "Stop added successfully", stop)
}

// RemoveStop deletes a stop from the city identified by its pincode
func (h *CityHandler) RemoveStop(w http.ResponseWriter, r *http.Request) {
	pincode := chi.URLParam(r, "pincode")
	stopID := chi.URLParam(r, "stopId")

	if err := h.cities.DeleteStop(r.Context(), pincode, stopID); err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "Stop not found", nil)
			return
		}
		h.logger.Error("failed to remove stop",
			zap.String("pincode", pincode),
			zap.String("stop_id", stopID),
			zap.Error(err))
		respondError(w, http.StatusBadGateway, "Failed to remove stop", nil)
		return
	}

	h.record(r.Context(), model.AuditActionRemoveStop, pincode, stopID)
	respondSuccess(w, http.StatusOK, "Stop removed successfully", nil)
}

// record writes an audit entry. Failures are logged and never surface.
func (h *CityHandler) record(ctx context.Context, action, pincode, stopID string) {
	_, err := h.audit.CreateAuditEntry(ctx, repository.CreateAuditEntryParams{
		Action:      action,
		CityPincode: pincode,
		StopID:      stopID,
		Actor:       middleware.GetClientID(ctx),
	})
	if err != nil && !errors.Is(err, repository.ErrAuditDisabled) {
		h.logger.Warn("failed to record audit entry",
			zap.String("action", action),
			zap.String("pincode", pincode),
			zap.String("stop_id", stopID),
			zap.Error(err))
	}
}

func isNotFound(err error) bool {
	var statusErr *upstream.StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}
