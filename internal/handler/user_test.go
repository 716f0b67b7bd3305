package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sapuran-Berperan/bus-admin-backend/internal/model"
	"github.com/Sapuran-Berperan/bus-admin-backend/internal/upstream"
)

func TestUserHandler_List(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		expectedFilter string
	}{
		{name: "no filter", url: "/users", expectedFilter: ""},
		{name: "account type filter", url: "/users?filter=Owner", expectedFilter: "Owner"},
		{name: "unknown account type is ignored", url: "/users?filter=Pilot", expectedFilter: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got model.ListQuery
			backend := &fakeBackend{
				listUsers: func(ctx context.Context, q model.ListQuery) (*upstream.UserListing, error) {
					got = q
					return &upstream.UserListing{
						Users:      []model.User{{ID: "u1", Name: "Asha", AccountType: "Owner", Active: true}},
						TotalPages: 3,
					}, nil
				},
			}

			rr := serve(t, newTestRouter(backend, &fakeAudit{}), httptest.NewRequest(http.MethodGet, tt.url, nil))
			if rr.Code != http.StatusOK {
				t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
			}

			if got.Filter != tt.expectedFilter {
				t.Errorf("expected filter %q, got %q", tt.expectedFilter, got.Filter)
			}
			if got.Limit != 5 || got.Sort != "name" || got.Order != model.SortAsc {
				t.Errorf("expected users defaults, got %+v", got)
			}

			body := decode[model.UserPage](t, rr)
			if body.Meta.Message != "Users retrieved successfully" {
				t.Errorf("unexpected message: %s", body.Meta.Message)
			}
			if len(body.Data.Items) != 1 || body.Data.Items[0].Name != "Asha" || body.Data.TotalPages != 3 {
				t.Errorf("unexpected page: %+v", body.Data)
			}
		})
	}
}

func TestUserHandler_List_ListingFailure(t *testing.T) {
	// listUsers unset: the backend fails
	rr := serve(t, newTestRouter(&fakeBackend{}, &fakeAudit{}), httptest.NewRequest(http.MethodGet, "/users?page=2", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	body := decode[model.UserPage](t, rr)
	if !body.Data.NoData || len(body.Data.Items) != 0 || body.Data.TotalPages != 0 {
		t.Errorf("expected no-data page, got %+v", body.Data)
	}
}
