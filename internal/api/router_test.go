package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/motorpool/vehicle-registry/internal/core/domain"
	"github.com/motorpool/vehicle-registry/internal/core/ports"
	"github.com/motorpool/vehicle-registry/internal/core/service"
	"github.com/motorpool/vehicle-registry/internal/infrastructure/directory"
)

// memVehicleRepo is an in-memory VehicleRepository with the same plate
// uniqueness guarantee the storage layer provides.
type memVehicleRepo struct {
	mu       sync.Mutex
	vehicles []*domain.Vehicle
	nextID   int64
}

func (r *memVehicleRepo) Insert(_ context.Context, v *domain.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.vehicles {
		if existing.Plate == v.Plate {
			return &domain.ConflictError{Plate: v.Plate}
		}
	}
	r.nextID++
	v.ID = r.nextID
	stored := *v
	r.vehicles = append(r.vehicles, &stored)
	return nil
}

func (r *memVehicleRepo) FindByID(_ context.Context, id int64) (*domain.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.vehicles {
		if v.ID == id {
			out := *v
			return &out, nil
		}
	}
	return nil, &domain.NotFoundError{ID: id}
}

func (r *memVehicleRepo) List(_ context.Context, offset, limit int64) ([]*domain.Vehicle, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := int64(len(r.vehicles))
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	out := make([]*domain.Vehicle, 0, end-offset)
	for _, v := range r.vehicles[offset:end] {
		c := *v
		out = append(out, &c)
	}
	return out, total, nil
}

func (r *memVehicleRepo) Update(_ context.Context, v *domain.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.vehicles {
		if existing.Plate == v.Plate && existing.ID != v.ID {
			return &domain.ConflictError{Plate: v.Plate}
		}
	}
	for i, existing := range r.vehicles {
		if existing.ID == v.ID {
			stored := *v
			r.vehicles[i] = &stored
			return nil
		}
	}
	return &domain.NotFoundError{ID: v.ID}
}

func (r *memVehicleRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, v := range r.vehicles {
		if v.ID == id {
			r.vehicles = append(r.vehicles[:i], r.vehicles[i+1:]...)
			return nil
		}
	}
	return &domain.NotFoundError{ID: id}
}

// memEventRepo stores audit events in memory, newest first on read.
type memEventRepo struct {
	mu     sync.Mutex
	events []*domain.RegistryEvent
}

func (r *memEventRepo) Insert(_ context.Context, e *domain.RegistryEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *e
	r.events = append(r.events, &c)
	return nil
}

func (r *memEventRepo) ListRecent(_ context.Context, limit int64) ([]*domain.RegistryEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.RegistryEvent, 0, len(r.events))
	for i := len(r.events) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		c := *r.events[i]
		out = append(out, &c)
	}
	return out, nil
}

// directSink records audit events synchronously so tests stay deterministic.
type directSink struct {
	repo ports.EventRepository
}

func (s *directSink) Enqueue(e domain.RegistryEvent) {
	_ = s.repo.Insert(context.Background(), &e)
}

type apiFixture struct {
	router http.Handler
	events *memEventRepo
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	dir, err := directory.New([]directory.Seed{
		{Username: "admin", Password: "admin123", Role: domain.RoleAdmin},
		{Username: "usuario", Password: "user123", Role: domain.RoleUser},
	})
	if err != nil {
		t.Fatalf("build directory: %v", err)
	}

	tokens := service.NewTokenService("integration-test-secret", 30*time.Minute)
	auth := service.NewAuthService(dir, tokens, nil, zerolog.Nop())

	events := &memEventRepo{}
	vehicles := service.NewVehicleService(&memVehicleRepo{}, &directSink{repo: events}, zerolog.Nop())

	router := NewRouter(Dependencies{
		AuthService:    auth,
		VehicleService: vehicles,
		Tokens:         tokens,
		Events:         events,
		Logger:         zerolog.Nop(),
		Version:        "test",
		Metrics:        prometheus.NewRegistry(),
	})
	return &apiFixture{router: router, events: events}
}

func (f *apiFixture) do(t *testing.T, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *apiFixture) login(t *testing.T, username, password string) string {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/api/auth/login", "",
		fmt.Sprintf(`{"username":%q,"password":%q}`, username, password))
	if rec.Code != http.StatusOK {
		t.Fatalf("login as %s: expected 200, got %d: %s", username, rec.Code, rec.Body.String())
	}
	var resp struct {
		Token     string `json:"token"`
		TokenType string `json:"token_type"`
		Role      string `json:"role"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.TokenType != "bearer" || resp.Token == "" {
		t.Fatalf("unexpected login response: %+v", resp)
	}
	return resp.Token
}

func TestAPI_LoginRejectsBadPassword(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/api/auth/login", "",
		`{"username":"admin","password":"wrong-pass"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAPI_ProtectedRoutesRequireToken(t *testing.T) {
	f := newAPIFixture(t)

	for _, tc := range []struct{ method, target string }{
		{http.MethodGet, "/api/vehiculos"},
		{http.MethodPost, "/api/vehiculos"},
		{http.MethodGet, "/api/vehiculos/1"},
		{http.MethodDelete, "/api/vehiculos/1"},
		{http.MethodGet, "/api/eventos"},
	} {
		rec := f.do(t, tc.method, tc.target, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s without token: expected 401, got %d", tc.method, tc.target, rec.Code)
		}
	}
}

func TestAPI_ForgedTokenRejected(t *testing.T) {
	f := newAPIFixture(t)

	forged := service.NewTokenService("some-other-secret", time.Minute)
	token, err := forged.Issue("admin", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	rec := f.do(t, http.MethodGet, "/api/vehiculos", token, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for forged token, got %d", rec.Code)
	}
}

func TestAPI_ListIsAdminOnly(t *testing.T) {
	f := newAPIFixture(t)

	userToken := f.login(t, "usuario", "user123")
	rec := f.do(t, http.MethodGet, "/api/vehiculos", userToken, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("list as USER: expected 403, got %d", rec.Code)
	}

	adminToken := f.login(t, "admin", "admin123")
	rec = f.do(t, http.MethodPost, "/api/vehiculos", adminToken,
		`{"plate":"abc-1234","make":"Toyota","model":"Corolla","color":"Rojo"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = f.do(t, http.MethodGet, "/api/vehiculos", adminToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list as ADMIN: expected 200, got %d", rec.Code)
	}
	var resp struct {
		Total    int64 `json:"total"`
		Vehicles []struct {
			Plate string `json:"plate"`
		} `json:"vehicles"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if resp.Total != 1 || len(resp.Vehicles) != 1 || resp.Vehicles[0].Plate != "ABC-1234" {
		t.Fatalf("unexpected list response: %+v", resp)
	}
}

func TestAPI_CreateNormalizesAndConflicts(t *testing.T) {
	f := newAPIFixture(t)
	token := f.login(t, "usuario", "user123")

	rec := f.do(t, http.MethodPost, "/api/vehiculos", token,
		`{"plate":"  abc-1234  ","make":"Toyota","model":"Corolla","color":"Rojo"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID     int64  `json:"id"`
		Plate  string `json:"plate"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.Plate != "ABC-1234" {
		t.Fatalf("expected normalized plate ABC-1234, got %q", created.Plate)
	}
	if created.Status != domain.StatusActive {
		t.Fatalf("expected default status Active, got %q", created.Status)
	}

	rec = f.do(t, http.MethodPost, "/api/vehiculos", token,
		`{"plate":"ABC1234","make":"Honda","model":"Civic","color":"Azul"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("ABC1234 is a distinct plate: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = f.do(t, http.MethodPost, "/api/vehiculos", token,
		`{"plate":"abc-1234","make":"Honda","model":"Civic","color":"Azul"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate plate: expected 409, got %d", rec.Code)
	}
	var conflict struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &conflict); err != nil {
		t.Fatalf("decode conflict response: %v", err)
	}
	if !strings.Contains(conflict.Error, "ABC-1234") {
		t.Fatalf("conflict message should name the normalized plate: %q", conflict.Error)
	}
}

func TestAPI_ValidationFailureListsEveryField(t *testing.T) {
	f := newAPIFixture(t)
	token := f.login(t, "usuario", "user123")

	rec := f.do(t, http.MethodPost, "/api/vehiculos", token,
		`{"plate":"bad","make":"","model":"","color":"","status":"Broken"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Error  string `json:"error"`
		Fields []struct {
			Field  string `json:"field"`
			Reason string `json:"reason"`
		} `json:"fields"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode validation response: %v", err)
	}
	if len(resp.Fields) != 5 {
		t.Fatalf("expected 5 field errors, got %d: %+v", len(resp.Fields), resp.Fields)
	}
}

func TestAPI_UpdateAndDeleteLifecycle(t *testing.T) {
	f := newAPIFixture(t)
	admin := f.login(t, "admin", "admin123")
	user := f.login(t, "usuario", "user123")

	rec := f.do(t, http.MethodPost, "/api/vehiculos", admin,
		`{"plate":"xyz-999","make":"Nissan","model":"Sentra","color":"Gris"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", rec.Code)
	}
	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	target := fmt.Sprintf("/api/vehiculos/%d", created.ID)

	// mutation is admin-only
	rec = f.do(t, http.MethodPut, target, user, `{"color":"Negro"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("update as USER: expected 403, got %d", rec.Code)
	}
	rec = f.do(t, http.MethodDelete, target, user, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("delete as USER: expected 403, got %d", rec.Code)
	}

	// read-one is open to both roles
	rec = f.do(t, http.MethodGet, target, user, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get as USER: expected 200, got %d", rec.Code)
	}

	rec = f.do(t, http.MethodPut, target, admin, `{"color":"negro","status":"Inactive"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var updated struct {
		Color  string `json:"color"`
		Status string `json:"status"`
		Plate  string `json:"plate"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode update response: %v", err)
	}
	if updated.Color != "negro" || updated.Status != domain.StatusInactive || updated.Plate != "XYZ-999" {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	rec = f.do(t, http.MethodDelete, target, admin, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rec.Code)
	}
	rec = f.do(t, http.MethodGet, target, admin, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", rec.Code)
	}
	rec = f.do(t, http.MethodDelete, target, admin, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", rec.Code)
	}
}

func TestAPI_AuditTrailIsAdminOnly(t *testing.T) {
	f := newAPIFixture(t)
	admin := f.login(t, "admin", "admin123")
	user := f.login(t, "usuario", "user123")

	rec := f.do(t, http.MethodPost, "/api/vehiculos", user,
		`{"plate":"qrs-001","make":"Mazda","model":"CX-5","color":"Blanco"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", rec.Code)
	}

	rec = f.do(t, http.MethodGet, "/api/eventos", user, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("events as USER: expected 403, got %d", rec.Code)
	}

	rec = f.do(t, http.MethodGet, "/api/eventos", admin, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("events as ADMIN: expected 200, got %d", rec.Code)
	}
	var resp struct {
		Events []struct {
			Action string `json:"action"`
			Plate  string `json:"plate"`
			Actor  string `json:"actor"`
		} `json:"events"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode events response: %v", err)
	}
	if len(resp.Events) != 1 {
		t.Fatalf("expected 1 audit event, got %d", len(resp.Events))
	}
	e := resp.Events[0]
	if e.Action != domain.ActionCreated || e.Plate != "QRS-001" || e.Actor != "usuario" {
		t.Fatalf("unexpected audit event: %+v", e)
	}
}

func TestAPI_RootBanner(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode banner: %v", err)
	}
	if resp["status"] != "online" || resp["version"] != "test" {
		t.Fatalf("unexpected banner: %v", resp)
	}
}
