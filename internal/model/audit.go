package model

import (
	"time"

	"github.com/google/uuid"
)

// Audit actions recorded for stop mutations
const (
	AuditActionAddStop    = "add_stop"
	AuditActionRemoveStop = "remove_stop"
)

// AuditEntry records one mutation made through the admin screens
type AuditEntry struct {
	ID          uuid.UUID `json:"id"`
	Action      string    `json:"action"`
	CityPincode string    `json:"city_pincode"`
	StopID      string    `json:"stop_id"`
	Actor       string    `json:"actor"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListAuditParams contains all parameters for paginated audit listing
type ListAuditParams struct {
	// Pagination
	Page    int
	PerPage int

	// Sorting
	SortDir string

	// Filters
	Action  string
	Pincode string
}

// DefaultListAuditParams returns default pagination parameters
func DefaultListAuditParams() ListAuditParams {
	return ListAuditParams{
		Page:    1,
		PerPage: 10,
		SortDir: SortDesc,
	}
}

// AuditListResponse is the paginated audit listing payload
type AuditListResponse struct {
	Entries    []AuditEntry   `json:"entries"`
	Pagination PaginationMeta `json:"pagination"`
}
