package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Sapuran-Berperan/bus-admin-backend/internal/middleware"
	"github.com/Sapuran-Berperan/bus-admin-backend/internal/model"
	"github.com/Sapuran-Berperan/bus-admin-backend/internal/pipeline"
	"github.com/Sapuran-Berperan/bus-admin-backend/internal/repository"
	"github.com/Sapuran-Berperan/bus-admin-backend/internal/upstream"
)

var errNotConfigured = errors.New("not configured")

// fakeBackend stands in for the booking backend. Unset funcs fail.
type fakeBackend struct {
	listBuses  func(ctx context.Context, q model.ListQuery) (*upstream.BusListing, error)
	listUsers  func(ctx context.Context, q model.ListQuery) (*upstream.UserListing, error)
	listCities func(ctx context.Context, q model.ListQuery) (*upstream.CityListing, error)
	addStop    func(ctx context.Context, pincode string, stop model.Stop) error
	deleteStop func(ctx context.Context, pincode, stopID string) error

	owners map[string]string
	cities map[string]string
}

func (f *fakeBackend) ListBuses(ctx context.Context, q model.ListQuery) (*upstream.BusListing, error) {
	if f.listBuses == nil {
		return nil, errNotConfigured
	}
	return f.listBuses(ctx, q)
}

func (f *fakeBackend) ListUsers(ctx context.Context, q model.ListQuery) (*upstream.UserListing, error) {
	if f.listUsers == nil {
		return nil, errNotConfigured
	}
	return f.listUsers(ctx, q)
}

func (f *fakeBackend) ListCities(ctx context.Context, q model.ListQuery) (*upstream.CityListing, error) {
	if f.listCities == nil {
		return nil, errNotConfigured
	}
	return f.listCities(ctx, q)
}

func (f *fakeBackend) AddStop(ctx context.Context, pincode string, stop model.Stop) error {
	if f.addStop == nil {
		return errNotConfigured
	}
	return f.addStop(ctx, pincode, stop)
}

func (f *fakeBackend) DeleteStop(ctx context.Context, pincode, stopID string) error {
	if f.deleteStop == nil {
		return errNotConfigured
	}
	return f.deleteStop(ctx, pincode, stopID)
}

func (f *fakeBackend) GetOwnerName(ctx context.Context, ownerID string) (string, error) {
	if name, ok := f.owners[ownerID]; ok {
		return name, nil
	}
	return "", upstream.ErrNameMissing
}

func (f *fakeBackend) GetCityName(ctx context.Context, cityID string) (string, error) {
	if name, ok := f.cities[cityID]; ok {
		return name, nil
	}
	return "", upstream.ErrNameMissing
}

// fakeAudit records created entries and serves a canned listing
type fakeAudit struct {
	mu        sync.Mutex
	created   []repository.CreateAuditEntryParams
	createErr error

	listResult *repository.ListAuditEntriesPaginatedResult
	listErr    error
	listParams model.ListAuditParams
}

func (f *fakeAudit) CreateAuditEntry(ctx context.Context, arg repository.CreateAuditEntryParams) (model.AuditEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return model.AuditEntry{}, f.createErr
	}
	f.created = append(f.created, arg)
	return model.AuditEntry{Action: arg.Action, CityPincode: arg.CityPincode, StopID: arg.StopID, Actor: arg.Actor}, nil
}

func (f *fakeAudit) ListAuditEntriesPaginated(ctx context.Context, params model.ListAuditParams) (*repository.ListAuditEntriesPaginatedResult, error) {
	f.listParams = params
	return f.listResult, f.listErr
}

// newTestRouter mounts every admin handler the way the server does, minus auth
func newTestRouter(backend *fakeBackend, audit AuditStore) http.Handler {
	logger := zap.NewNop()
	tracker := pipeline.NewTracker()

	busHandler := NewBusHandler(pipeline.NewBusPipeline(backend, logger, 0), tracker)
	userHandler := NewUserHandler(backend, tracker, logger)
	cityHandler := NewCityHandler(backend, audit, tracker, logger)
	dashboardHandler := NewDashboardHandler(backend, logger)
	auditHandler := NewAuditHandler(audit, logger)

	r := chi.NewRouter()
	r.Use(middleware.ClientID)
	r.Get("/health", Health)
	r.Get("/buses", busHandler.List)
	r.Get("/users", userHandler.List)
	r.Get("/cities", cityHandler.List)
	r.Post("/cities/{pincode}/stops", cityHandler.AddStop)
	r.Delete("/cities/{pincode}/stops/{stopId}", cityHandler.RemoveStop)
	r.Get("/dashboard", dashboardHandler.Stats)
	r.Get("/audit", auditHandler.List)
	return r
}

// envelope is Response with a typed data field
type envelope[T any] struct {
	Meta Meta `json:"meta"`
	Data T    `json:"data"`
}

func serve(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var body envelope[T]
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return body
}

func TestHealth(t *testing.T) {
	rr := serve(t, newTestRouter(&fakeBackend{}, &fakeAudit{}), httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if body := decode[any](t, rr); !body.Meta.Success {
		t.Error("expected success=true")
	}
}
