package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Sapuran-Berperan/bus-admin-backend/internal/model"
)

// Allowed sort directions
var allowedSortDirs = map[string]bool{
	"asc":  true,
	"desc": true,
}

// Allowed audit action filters
var allowedAuditActions = map[string]bool{
	model.AuditActionAddStop:    true,
	model.AuditActionRemoveStop: true,
}

const (
	defaultPage    = 1
	defaultPerPage = 10
	maxPerPage     = 100
	minPerPage     = 1
)

// ParseBusQuery parses query parameters for the bus table. A raw filter wins
// over the seats shortcut.
func ParseBusQuery(r *http.Request) model.ListQuery {
	q := model.DefaultBusQuery()
	parseListQuery(r, &q)

	if filter := strings.TrimSpace(r.URL.Query().Get("filter")); filter != "" {
		q.Filter = filter
	} else if seats := r.URL.Query().Get("seats"); seats != "" {
		q.Filter = model.SeatsFilter(strings.ToLower(strings.TrimSpace(seats)))
	}

	return q
}

// ParseUserQuery parses query parameters for the users table. Unknown
// account types are ignored.
func ParseUserQuery(r *http.Request) model.ListQuery {
	q := model.DefaultUserQuery()
	parseListQuery(r, &q)

	if filter := strings.TrimSpace(r.URL.Query().Get("filter")); model.IsAccountType(filter) {
		q.Filter = filter
	}

	return q
}

// ParseCityQuery parses query parameters for the city table
func ParseCityQuery(r *http.Request) model.ListQuery {
	q := model.DefaultCityQuery()
	sort := q.Sort
	parseListQuery(r, &q)

	if !model.CitySortKeys[q.Sort] {
		q.Sort = sort
	}

	return q
}

// parseListQuery overrides the defaults in q with page, limit, sort and order
func parseListQuery(r *http.Request, q *model.ListQuery) {
	values := r.URL.Query()

	// Parse page
	if pageStr := values.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			page = defaultPage
		}
		q.Page = page
	}

	// Parse limit
	if limitStr := values.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err == nil && limit >= minPerPage {
			if limit > maxPerPage {
				limit = maxPerPage
			}
			q.Limit = limit
		}
	}

	// Parse sort, forwarded as given
	if sort := strings.TrimSpace(values.Get("sort")); sort != "" {
		q.Sort = sort
	}

	// Parse order
	if order := values.Get("order"); order != "" {
		order = strings.ToLower(strings.TrimSpace(order))
		if allowedSortDirs[order] {
			q.Order = order
		}
	}
}

// ParseListAuditParams parses query parameters for paginated audit listing
func ParseListAuditParams(r *http.Request) model.ListAuditParams {
	params := model.DefaultListAuditParams()

	// Parse page
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			page = defaultPage
		}
		params.Page = page
	}

	// Parse per_page
	if perPageStr := r.URL.Query().Get("per_page"); perPageStr != "" {
		perPage, err := strconv.Atoi(perPageStr)
		if err != nil || perPage < minPerPage {
			perPage = defaultPerPage
		}
		if perPage > maxPerPage {
			perPage = maxPerPage
		}
		params.PerPage = perPage
	}

	// Parse sort_dir
	if sortDir := r.URL.Query().Get("sort_dir"); sortDir != "" {
		sortDir = strings.ToLower(strings.TrimSpace(sortDir))
		if allowedSortDirs[sortDir] {
			params.SortDir = sortDir
		}
	}

	// Parse action
	if action := strings.TrimSpace(r.URL.Query().Get("action")); allowedAuditActions[action] {
		params.Action = action
	}

	// Parse pincode
	if pincode := strings.TrimSpace(r.URL.Query().Get("pincode")); pincode != "" {
		params.Pincode = pincode
	}

	return params
}

// CalculateTotalPages calculates total pages from total items and per page
func CalculateTotalPages(totalItems int64, perPage int) int {
	if totalItems == 0 {
		return 0
	}
	pages := int(totalItems) / perPage
	if int(totalItems)%perPage > 0 {
		pages++
	}
	return pages
}
