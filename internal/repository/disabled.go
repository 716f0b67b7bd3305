package repository

import (
	"context"
	"errors"

	"github.com/Sapuran-Berperan/bus-admin-backend/internal/model"
)

// ErrAuditDisabled is returned by Disabled for every call
var ErrAuditDisabled = errors.New("audit trail disabled: no database configured")

// Disabled stands in for Queries when the service runs without a database
type Disabled struct{}

func (Disabled) CreateAuditEntry(ctx context.Context, arg CreateAuditEntryParams) (model.AuditEntry, error) {
	return model.AuditEntry{}, ErrAuditDisabled
}

func (Disabled) ListAuditEntriesPaginated(ctx context.Context, params model.ListAuditParams) (*ListAuditEntriesPaginatedResult, error) {
	return nil, ErrAuditDisabled
}
