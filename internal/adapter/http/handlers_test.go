package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/roomtrack/roomtrack/internal/adapter/memory"
	"github.com/roomtrack/roomtrack/internal/domain/lease"
	"github.com/roomtrack/roomtrack/internal/domain/payment"
	"github.com/roomtrack/roomtrack/internal/domain/property"
	"github.com/roomtrack/roomtrack/internal/domain/user"
	"github.com/roomtrack/roomtrack/internal/middleware"
	"github.com/roomtrack/roomtrack/internal/service"
)

// newTestServer wires the full router against the in-memory store.
func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	store := memory.NewStore()
	emitter := service.NewNotificationService(store, nil)

	h := NewHandlers(
		service.NewUserService(store, 4), // MinCost keeps the tests fast
		service.NewPropertyService(store),
		service.NewLeaseService(store, emitter),
		service.NewPaymentService(store, emitter),
		service.NewMaintenanceService(store, emitter),
		service.NewMessageService(store),
		emitter,
		service.NewStatsService(store, nil, time.Minute),
	)

	r := chi.NewRouter()
	r.Use(middleware.Identity(store))
	MountRoutes(r, h)
	return r
}

// do performs a JSON request, optionally authenticated as userID, and
// decodes the response body into out when out is non-nil.
func do(t *testing.T, srv http.Handler, method, path, userID string, body, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if out != nil && rec.Code < 300 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decode %s %s response: %v\nbody: %s", method, path, err, rec.Body.String())
		}
	}
	return rec.Code
}

func registerUser(t *testing.T, srv http.Handler, username string, role user.Role) *user.User {
	t.Helper()
	var u user.User
	code := do(t, srv, http.MethodPost, "/api/v1/auth/register", "", user.CreateRequest{
		Username: username,
		Email:    username + "@test.com",
		Password: "hunter2hunter2",
		Role:     role,
	}, &u)
	if code != http.StatusCreated {
		t.Fatalf("register %s: status = %d", username, code)
	}
	return &u
}

func TestAuthFlow(t *testing.T) {
	srv := newTestServer(t)
	u := registerUser(t, srv, "wanjiku", user.RoleLandlord)

	var got user.User
	code := do(t, srv, http.MethodPost, "/api/v1/auth/login", "",
		map[string]string{"username": "wanjiku", "password": "hunter2hunter2"}, &got)
	if code != http.StatusOK || got.ID != u.ID {
		t.Errorf("login: status = %d, id = %s, want 200 and %s", code, got.ID, u.ID)
	}

	code = do(t, srv, http.MethodPost, "/api/v1/auth/login", "",
		map[string]string{"username": "wanjiku", "password": "wrong"}, nil)
	if code != http.StatusUnauthorized {
		t.Errorf("bad password: status = %d, want 401", code)
	}

	// Protected routes reject anonymous requests.
	if code := do(t, srv, http.MethodGet, "/api/v1/auth/me", "", nil, nil); code != http.StatusUnauthorized {
		t.Errorf("anonymous /auth/me: status = %d, want 401", code)
	}
	if code := do(t, srv, http.MethodGet, "/api/v1/auth/me", u.ID, nil, &got); code != http.StatusOK {
		t.Errorf("/auth/me: status = %d, want 200", code)
	}
}

func TestLeaseLifecycle(t *testing.T) {
	srv := newTestServer(t)
	landlord := registerUser(t, srv, "wanjiku", user.RoleLandlord)
	tenant := registerUser(t, srv, "otieno", user.RoleTenant)
	other := registerUser(t, srv, "akinyi", user.RoleTenant)

	var prop property.Property
	code := do(t, srv, http.MethodPost, "/api/v1/properties", landlord.ID, property.CreateRequest{
		Name:       "Green Court",
		Address:    "Ngong Road, Nairobi",
		TotalUnits: 2,
	}, &prop)
	if code != http.StatusCreated {
		t.Fatalf("create property: status = %d", code)
	}

	var unit property.Unit
	code = do(t, srv, http.MethodPost, "/api/v1/properties/"+prop.ID+"/units", landlord.ID,
		property.CreateUnitRequest{UnitNumber: "A1", RentAmount: 15000, Bedrooms: 1, Bathrooms: 1}, &unit)
	if code != http.StatusCreated {
		t.Fatalf("create unit: status = %d", code)
	}

	// Tenants cannot create properties.
	code = do(t, srv, http.MethodPost, "/api/v1/properties", tenant.ID, property.CreateRequest{
		Name: "Rogue", Address: "Nowhere", TotalUnits: 1,
	}, nil)
	if code != http.StatusForbidden {
		t.Errorf("tenant create property: status = %d, want 403", code)
	}

	assign := lease.AssignRequest{
		TenantID:  tenant.ID,
		UnitID:    unit.ID,
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	var l lease.Lease
	code = do(t, srv, http.MethodPost, "/api/v1/leases", landlord.ID, assign, &l)
	if code != http.StatusCreated {
		t.Fatalf("assign lease: status = %d", code)
	}
	if l.MonthlyRent != 15000 {
		t.Errorf("monthly rent = %v, want 15000", l.MonthlyRent)
	}

	// The unit is taken now.
	assign.TenantID = other.ID
	if code := do(t, srv, http.MethodPost, "/api/v1/leases", landlord.ID, assign, nil); code != http.StatusConflict {
		t.Errorf("assign occupied unit: status = %d, want 409", code)
	}

	var active lease.Lease
	if code := do(t, srv, http.MethodGet, "/api/v1/leases/active", tenant.ID, nil, &active); code != http.StatusOK || active.ID != l.ID {
		t.Errorf("active lease: status = %d, id = %s, want 200 and %s", code, active.ID, l.ID)
	}

	// Terminate, then the tenant has no active lease.
	if code := do(t, srv, http.MethodPost, "/api/v1/leases/"+l.ID+"/terminate", landlord.ID, nil, nil); code != http.StatusOK {
		t.Errorf("terminate: status = %d, want 200", code)
	}
	if code := do(t, srv, http.MethodGet, "/api/v1/leases/active", tenant.ID, nil, nil); code != http.StatusNotFound {
		t.Errorf("active lease after terminate: status = %d, want 404", code)
	}
}

func TestPaymentFlow(t *testing.T) {
	srv := newTestServer(t)
	landlord := registerUser(t, srv, "wanjiku", user.RoleLandlord)
	tenant := registerUser(t, srv, "otieno", user.RoleTenant)

	var prop property.Property
	do(t, srv, http.MethodPost, "/api/v1/properties", landlord.ID, property.CreateRequest{
		Name: "Green Court", Address: "Ngong Road, Nairobi", TotalUnits: 1,
	}, &prop)
	var unit property.Unit
	do(t, srv, http.MethodPost, "/api/v1/properties/"+prop.ID+"/units", landlord.ID,
		property.CreateUnitRequest{UnitNumber: "A1", RentAmount: 15000, Bedrooms: 1, Bathrooms: 1}, &unit)
	var l lease.Lease
	do(t, srv, http.MethodPost, "/api/v1/leases", landlord.ID, lease.AssignRequest{
		TenantID:  tenant.ID,
		UnitID:    unit.ID,
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
	}, &l)

	submit := payment.SubmitRequest{LeaseID: l.ID, TransactionCode: "QX12ABC34", Method: payment.MethodMpesa}
	var p payment.Payment
	code := do(t, srv, http.MethodPost, "/api/v1/payments", tenant.ID, submit, &p)
	if code != http.StatusCreated {
		t.Fatalf("submit payment: status = %d", code)
	}
	if p.Amount != 15000 || p.Status != payment.StatusPending {
		t.Errorf("payment = %v %s, want 15000 pending", p.Amount, p.Status)
	}

	// One pending payment per billing period.
	if code := do(t, srv, http.MethodPost, "/api/v1/payments", tenant.ID, submit, nil); code != http.StatusConflict {
		t.Errorf("duplicate pending: status = %d, want 409", code)
	}

	// Only landlords and admins decide.
	decide := map[string]string{"decision": "approve"}
	if code := do(t, srv, http.MethodPost, "/api/v1/payments/"+p.ID+"/decide", tenant.ID, decide, nil); code != http.StatusForbidden {
		t.Errorf("tenant decide: status = %d, want 403", code)
	}

	var decided payment.Payment
	code = do(t, srv, http.MethodPost, "/api/v1/payments/"+p.ID+"/decide", landlord.ID, decide, &decided)
	if code != http.StatusOK {
		t.Fatalf("decide: status = %d", code)
	}
	if decided.Status != payment.StatusApproved || !decided.ReceiptGenerated {
		t.Errorf("decided = %s receipt=%v, want approved with receipt", decided.Status, decided.ReceiptGenerated)
	}

	// Deciding twice conflicts.
	if code := do(t, srv, http.MethodPost, "/api/v1/payments/"+p.ID+"/decide", landlord.ID, decide, nil); code != http.StatusConflict {
		t.Errorf("double decide: status = %d, want 409", code)
	}
}

func TestStatsEndpoints(t *testing.T) {
	srv := newTestServer(t)
	admin := registerUser(t, srv, "root", user.RoleAdmin)
	landlord := registerUser(t, srv, "wanjiku", user.RoleLandlord)

	if code := do(t, srv, http.MethodGet, "/api/v1/stats/admin", landlord.ID, nil, nil); code != http.StatusForbidden {
		t.Errorf("landlord admin stats: status = %d, want 403", code)
	}

	var overview map[string]any
	if code := do(t, srv, http.MethodGet, "/api/v1/stats/admin", admin.ID, nil, &overview); code != http.StatusOK {
		t.Errorf("admin stats: status = %d, want 200", code)
	}

	if code := do(t, srv, http.MethodGet, "/api/v1/stats/landlord", landlord.ID, nil, nil); code != http.StatusOK {
		t.Errorf("landlord stats: status = %d, want 200", code)
	}
}
