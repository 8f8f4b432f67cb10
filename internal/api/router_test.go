package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/studiodesk/schedule-system/internal/core/service"
	"github.com/studiodesk/schedule-system/internal/infrastructure/db/sqlite"
	"github.com/studiodesk/schedule-system/internal/infrastructure/http/handlers"
	"github.com/studiodesk/schedule-system/internal/infrastructure/queue"
	"github.com/studiodesk/schedule-system/internal/infrastructure/worksheet"
)

type memRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func (m *memRevoker) Revoke(_ context.Context, tokenID string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[tokenID] = until
	return nil
}

func (m *memRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[tokenID]
	return ok, nil
}

// newTestServer wires the real services over a temporary SQLite store. The
// echoprometheus middleware registers global collectors, so one server is
// built per test binary.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	writes := queue.NewDispatcher(2, zerolog.Nop())
	writes.Start(ctx)

	opener := sqlite.NewOpener(t.TempDir(), true)
	t.Cleanup(func() { _ = opener.Close(context.Background()) })

	users := worksheet.NewUserRepository(opener, "studio_db", writes, zerolog.Nop())
	schedules := worksheet.NewScheduleRepository(opener, "studio_db", writes, zerolog.Nop())
	revoker := &memRevoker{revoked: map[string]time.Time{}}

	auth := service.NewAuthService(users, revoker, "test-secret", time.Hour, zerolog.Nop())
	if err := auth.EnsureMaster(ctx, "owner", "owner-pw", "Owner"); err != nil {
		t.Fatalf("EnsureMaster: %v", err)
	}

	return NewRouter(Dependencies{
		Auth:      auth,
		Schedules: service.NewScheduleService(schedules, zerolog.Nop()),
		Admin:     service.NewAdminService(users, zerolog.Nop()),
		Users:     users,
		Revoker:   revoker,
		Readiness: map[string]handlers.Check{"store": opener.Ping},
		JWTSecret: "test-secret",
		Log:       zerolog.Nop(),
	})
}

func call(t *testing.T, e *echo.Echo, method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var out map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec, out
}

func login(t *testing.T, e *echo.Echo, id, password string) string {
	t.Helper()
	rec, out := call(t, e, http.MethodPost, "/auth/login", "", `{"id":"`+id+`","password":"`+password+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d: %s", id, rec.Code, rec.Body.String())
	}
	token, _ := out["token"].(string)
	return token
}

func TestRouter_EndToEnd(t *testing.T) {
	e := newTestServer(t)

	t.Run("health", func(t *testing.T) {
		if rec, _ := call(t, e, http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusOK {
			t.Fatalf("expected ready, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("unauthenticated schedule access", func(t *testing.T) {
		if rec, _ := call(t, e, http.MethodGet, "/v1/schedules?date=2026-01-29", "", ""); rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("signup, approval and staff workflow", func(t *testing.T) {
		rec, _ := call(t, e, http.MethodPost, "/auth/signup", "", `{"id":"kim","password":"kim-pw","name":"Kim","role":"Shooting"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("signup: expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if rec, _ := call(t, e, http.MethodPost, "/auth/signup", "", `{"id":"kim","password":"x","name":"Again","role":"Editing"}`); rec.Code != http.StatusConflict {
			t.Fatalf("duplicate signup: expected 409, got %d", rec.Code)
		}

		rec, out := call(t, e, http.MethodPost, "/auth/login", "", `{"id":"kim","password":"kim-pw"}`)
		if rec.Code != http.StatusForbidden || out["error"] != "account pending approval" {
			t.Fatalf("unapproved login: expected 403, got %d: %s", rec.Code, rec.Body.String())
		}
		if rec, _ := call(t, e, http.MethodPost, "/auth/login", "", `{"id":"ghost","password":"x"}`); rec.Code != http.StatusNotFound {
			t.Fatalf("unknown user: expected 404, got %d", rec.Code)
		}

		master := login(t, e, "owner", "owner-pw")
		rec, _ = call(t, e, http.MethodPut, "/v1/admin/users", master, `{"users":[{"id":"kim","role":"Shooting","approved":true}]}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("approve: expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		staff := login(t, e, "kim", "kim-pw")
		if rec, _ := call(t, e, http.MethodGet, "/v1/admin/users", staff, ""); rec.Code != http.StatusForbidden {
			t.Fatalf("staff roster access: expected 403, got %d", rec.Code)
		}

		rec, created := call(t, e, http.MethodPost, "/v1/schedules", staff,
			`{"date":"2026-01-29","time":"10:00","type":"rehearsal","couple":{"groom_name":"Han","bride_name":"Oh","bride_phone":"010-3333-4444"}}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		id, _ := created["id"].(string)

		rec, day := call(t, e, http.MethodGet, "/v1/schedules?date=2026-01-29", staff, "")
		if rec.Code != http.StatusOK || day["total"] != float64(1) {
			t.Fatalf("list: unexpected %d: %s", rec.Code, rec.Body.String())
		}

		rec, _ = call(t, e, http.MethodPost, "/v1/schedules/"+id+"/memos", staff, `{"content":"bring reflector"}`)
		if rec.Code != http.StatusCreated || !strings.Contains(rec.Body.String(), `"writer":"Kim"`) {
			t.Fatalf("memo: unexpected %d: %s", rec.Code, rec.Body.String())
		}

		// the memo bumped the row to version 2
		rec, _ = call(t, e, http.MethodPut, "/v1/schedules/"+id, staff,
			`{"date":"2026-01-29","time":"11:00","type":"rehearsal","version":1}`)
		if rec.Code != http.StatusConflict {
			t.Fatalf("stale update: expected 409, got %d", rec.Code)
		}
		rec, _ = call(t, e, http.MethodPut, "/v1/schedules/"+id, staff,
			`{"date":"2026-01-29","time":"11:00","type":"rehearsal","version":2,"price":1000}`)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("staff price change: expected 403, got %d", rec.Code)
		}

		if rec, _ := call(t, e, http.MethodDelete, "/v1/schedules/"+id+"?version=2", staff, ""); rec.Code != http.StatusForbidden {
			t.Fatalf("staff delete: expected 403, got %d", rec.Code)
		}

		rec, results := call(t, e, http.MethodGet, "/v1/schedules/search?q=3333", staff, "")
		if rec.Code != http.StatusOK || results["total"] != float64(1) {
			t.Fatalf("search: unexpected %d: %s", rec.Code, rec.Body.String())
		}

		if rec, _ := call(t, e, http.MethodPost, "/auth/logout", staff, ""); rec.Code != http.StatusOK {
			t.Fatalf("logout: expected 200, got %d", rec.Code)
		}
		if rec, _ := call(t, e, http.MethodGet, "/auth/me", staff, ""); rec.Code != http.StatusUnauthorized {
			t.Fatalf("revoked token: expected 401, got %d", rec.Code)
		}
	})
}
