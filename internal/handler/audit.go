package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Sapuran-Berperan/bus-admin-backend/internal/model"
	"github.com/Sapuran-Berperan/bus-admin-backend/internal/repository"
)

// AuditHandler serves the stop mutation history
type AuditHandler struct {
	audit  AuditStore
	logger *zap.Logger
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(audit AuditStore, logger *zap.Logger) *AuditHandler {
	return &AuditHandler{
		audit:  audit,
		logger: logger,
	}
}

// List returns audit entries with pagination, sorting and filters
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	params := ParseListAuditParams(r)

	result, err := h.audit.ListAuditEntriesPaginated(r.Context(), params)
	if err != nil {
		if errors.Is(err, repository.ErrAuditDisabled) {
			respondError(w, http.StatusServiceUnavailable, "Audit trail is not enabled", nil)
			return
		}
		h.logger.Error("failed to list audit entries", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch audit entries", nil)
		return
	}

	response := model.AuditListResponse{
		Entries: result.Entries,
		Pagination: model.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  result.TotalCount,
			TotalPages:  CalculateTotalPages(result.TotalCount, params.PerPage),
		},
	}

	respondSuccess(w, http.StatusOK, "Audit entries retrieved successfully", response)
}
