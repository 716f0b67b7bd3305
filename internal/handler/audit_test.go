package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Sapuran-Berperan/bus-admin-backend/internal/model"
	"github.com/Sapuran-Berperan/bus-admin-backend/internal/repository"
)

func TestAuditHandler_List_Success(t *testing.T) {
	audit := &fakeAudit{
		listResult: &repository.ListAuditEntriesPaginatedResult{
			Entries: []model.AuditEntry{{
				ID:          uuid.New(),
				Action:      model.AuditActionAddStop,
				CityPincode: "570001",
				StopID:      "central",
				Actor:       "admin-1",
				CreatedAt:   time.Now().UTC(),
			}},
			TotalCount: 21,
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/audit?page=2&per_page=10&sort_dir=asc&action=add_stop&pincode=570001", nil)
	rr := serve(t, newTestRouter(&fakeBackend{}, audit), req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}

	expectedParams := model.ListAuditParams{Page: 2, PerPage: 10, SortDir: "asc", Action: "add_stop", Pincode: "570001"}
	if audit.listParams != expectedParams {
		t.Errorf("expected params %+v, got %+v", expectedParams, audit.listParams)
	}

	body := decode[model.AuditListResponse](t, rr)
	if len(body.Data.Entries) != 1 || body.Data.Entries[0].StopID != "central" {
		t.Errorf("unexpected entries: %+v", body.Data.Entries)
	}
	expectedMeta := model.PaginationMeta{CurrentPage: 2, PerPage: 10, TotalItems: 21, TotalPages: 3}
	if body.Data.Pagination != expectedMeta {
		t.Errorf("expected pagination %+v, got %+v", expectedMeta, body.Data.Pagination)
	}
}

func TestAuditHandler_List_Errors(t *testing.T) {
	tests := []struct {
		name         string
		audit        AuditStore
		expectedCode int
	}{
		{name: "no database", audit: repository.Disabled{}, expectedCode: http.StatusServiceUnavailable},
		{name: "query failure", audit: &fakeAudit{listErr: errors.New("boom")}, expectedCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(t, newTestRouter(&fakeBackend{}, tt.audit), httptest.NewRequest(http.MethodGet, "/audit", nil))
			if rr.Code != tt.expectedCode {
				t.Errorf("expected status %d, got %d", tt.expectedCode, rr.Code)
			}
			if body := decode[any](t, rr); body.Meta.Success {
				t.Error("expected success=false")
			}
		})
	}
}
