package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type stubBlacklist struct {
	blocked map[string]bool
}

func (s *stubBlacklist) IsBlocked(_ context.Context, id string) bool { return s.blocked[id] }
func (s *stubBlacklist) List(context.Context) []string { return nil }
func (s *stubBlacklist) Add(context.Context, string) error { return nil }

func newGatedEcho(list *stubBlacklist) (*echo.Echo, *bool) {
	e := echo.New()
	reached := false
	e.Pre(BlacklistGate(list, "/blocked.html", zerolog.Nop()))
	e.Any("/*", func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	return e, &reached
}

func TestBlacklistGate_RedirectsBlockedClient(t *testing.T) {
	e, reached := newGatedEcho(&stubBlacklist{blocked: map[string]bool{"203.0.113.9": true}})

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set(echo.HeaderXForwardedFor, "203.0.113.9")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if *reached {
		t.Fatalf("blocked request reached the handler")
	}
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/blocked.html" {
		t.Fatalf("expected redirect to /blocked.html, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestBlacklistGate_BlockedPageDoesNotLoop(t *testing.T) {
	e, reached := newGatedEcho(&stubBlacklist{blocked: map[string]bool{"203.0.113.9": true}})

	req := httptest.NewRequest(http.MethodGet, "/blocked.html", nil)
	req.Header.Set(echo.HeaderXForwardedFor, "203.0.113.9")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if *reached || rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without reaching handler, got %d", rec.Code)
	}
}

func TestBlacklistGate_AllowsOthers(t *testing.T) {
	e, reached := newGatedEcho(&stubBlacklist{blocked: map[string]bool{"203.0.113.9": true}})

	req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	req.Header.Set(echo.HeaderXForwardedFor, "198.51.100.1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if !*reached || rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got %d", rec.Code)
	}
}
