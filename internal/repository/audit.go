package repository

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/Sapuran-Berperan/bus-admin-backend/internal/model"
)

// psql uses PostgreSQL placeholder format ($1, $2, etc.)
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var auditColumns = []string{"id", "action", "city_pincode", "stop_id", "actor", "created_at"}

// CreateAuditEntryParams contains the fields of a new audit entry
type CreateAuditEntryParams struct {
	Action      string
	CityPincode string
	StopID      string
	Actor       string
}

// CreateAuditEntry inserts an audit entry and returns it as stored
func (q *Queries) CreateAuditEntry(ctx context.Context, arg CreateAuditEntryParams) (model.AuditEntry, error) {
	query, args, err := psql.Insert("audit_entries").
		Columns("id", "action", "city_pincode", "stop_id", "actor").
		Values(uuid.New(), arg.Action, arg.CityPincode, arg.StopID, arg.Actor).
		Suffix("RETURNING " + strings.Join(auditColumns, ", ")).
		ToSql()
	if err != nil {
		return model.AuditEntry{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	var e model.AuditEntry
	err = q.db.QueryRowContext(ctx, query, args...).Scan(
		&e.ID,
		&e.Action,
		&e.CityPincode,
		&e.StopID,
		&e.Actor,
		&e.CreatedAt,
	)
	if err != nil {
		return model.AuditEntry{}, fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return e, nil
}

// ListAuditEntriesPaginatedResult contains the paginated entries and total count
type ListAuditEntriesPaginatedResult struct {
	Entries    []model.AuditEntry
	TotalCount int64
}

// ListAuditEntriesPaginated retrieves audit entries with pagination, sorting and filters
func (q *Queries) ListAuditEntriesPaginated(ctx context.Context, params model.ListAuditParams) (*ListAuditEntriesPaginatedResult, error) {
	conditions := sq.And{}
	if params.Action != "" {
		conditions = append(conditions, sq.Eq{"action": params.Action})
	}
	if params.Pincode != "" {
		conditions = append(conditions, sq.Eq{"city_pincode": params.Pincode})
	}

	// Get total count first
	countQuery := psql.Select("COUNT(*)").From("audit_entries")
	if len(conditions) > 0 {
		countQuery = countQuery.Where(conditions)
	}

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build count query: %w", err)
	}

	var totalCount int64
	if err := q.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&totalCount); err != nil {
		return nil, fmt.Errorf("failed to execute count query: %w", err)
	}

	if totalCount == 0 {
		return &ListAuditEntriesPaginatedResult{
			Entries:    []model.AuditEntry{},
			TotalCount: 0,
		}, nil
	}

	selectQuery := psql.Select(auditColumns...).From("audit_entries")
	if len(conditions) > 0 {
		selectQuery = selectQuery.Where(conditions)
	}

	orderDir := strings.ToUpper(params.SortDir)
	if orderDir != "ASC" && orderDir != "DESC" {
		orderDir = "DESC"
	}
	offset := (params.Page - 1) * params.PerPage
	selectQuery = selectQuery.
		OrderBy("created_at " + orderDir).
		Limit(uint64(params.PerPage)).
		Offset(uint64(offset))

	selectSQL, selectArgs, err := selectQuery.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := q.db.QueryContext(ctx, selectSQL, selectArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute select query: %w", err)
	}
	defer rows.Close()

	entries := []model.AuditEntry{}
	for rows.Next() {
		var e model.AuditEntry
		if err := rows.Scan(&e.ID, &e.Action, &e.CityPincode, &e.StopID, &e.Actor, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit rows: %w", err)
	}

	return &ListAuditEntriesPaginatedResult{
		Entries:    entries,
		TotalCount: totalCount,
	}, nil
}
