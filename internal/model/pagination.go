package model

// Sort orders understood by the listing collaborators
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListQuery carries the page, sort and filter parameters of a listing request.
// Values are forwarded to the listing collaborator untransformed.
type ListQuery struct {
	Page   int
	Limit  int
	Sort   string
	Order  string
	Filter string
}

// Page is a single page of listing results.
// NoData is set when the listing request itself failed.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	TotalPages int  `json:"total_pages"`
	NoData     bool `json:"no_data"`
}

// NoDataPage returns the empty result reported when a listing fails.
// Total pages are reset rather than carried over from an earlier page.
func NoDataPage[T any](page int) Page[T] {
	return Page[T]{
		Items:      []T{},
		Page:       page,
		TotalPages: 0,
		NoData:     true,
	}
}

// PaginationMeta contains pagination metadata for paginated responses
type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
}
