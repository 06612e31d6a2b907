package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/roomtrack/roomtrack/internal/adapter/memory"
	"github.com/roomtrack/roomtrack/internal/domain/user"
)

func seedUser(t *testing.T, store *memory.Store, role user.Role) *user.User {
	t.Helper()
	u := user.User{
		ID:       uuid.NewString(),
		Username: string(role) + "-user",
		Email:    string(role) + "@test.com",
		Role:     role,
	}
	if err := store.CreateUser(context.Background(), &u); err != nil {
		t.Fatal(err)
	}
	return &u
}

func TestIdentity(t *testing.T) {
	store := memory.NewStore()
	u := seedUser(t, store, user.RoleTenant)

	var got *user.User
	handler := Identity(store)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = UserFromContext(r.Context())
	}))

	// No header on a protected path: 401.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/leases", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no header: status = %d, want 401", rec.Code)
	}

	// Unknown user: 401.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/leases", nil)
	req.Header.Set("X-User-ID", uuid.NewString())
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unknown user: status = %d, want 401", rec.Code)
	}

	// Known user lands on the context.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/leases", nil)
	req.Header.Set("X-User-ID", u.ID)
	handler.ServeHTTP(rec, req)
	if got == nil || got.ID != u.ID {
		t.Errorf("context user = %+v, want %s", got, u.ID)
	}

	// Public paths skip resolution entirely.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("public path: status = %d, want 200", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	store := memory.NewStore()
	landlord := seedUser(t, store, user.RoleLandlord)
	tenant := seedUser(t, store, user.RoleTenant)

	protected := RequireRole(user.RoleAdmin, user.RoleLandlord)(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	run := func(u *user.User) int {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if u != nil {
			req = req.WithContext(context.WithValue(req.Context(), actorCtxKey{}, u))
		}
		protected.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := run(nil); code != http.StatusUnauthorized {
		t.Errorf("anonymous: status = %d, want 401", code)
	}
	if code := run(tenant); code != http.StatusForbidden {
		t.Errorf("tenant: status = %d, want 403", code)
	}
	if code := run(landlord); code != http.StatusOK {
		t.Errorf("landlord: status = %d, want 200", code)
	}
}
