package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/duckcorp/portal/internal/api/middleware"
	"github.com/duckcorp/portal/internal/core/domain"
)

type stubAuthService struct {
	loginFn    func(ctx context.Context, username, password string) (string, *domain.Session, error)
	registerFn func(ctx context.Context, username, password string) (string, *domain.Session, error)
	logoutFn   func(ctx context.Context, token string) error
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.Session, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Register(ctx context.Context, username, password string) (string, *domain.Session, error) {
	return s.registerFn(ctx, username, password)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}

func (s *stubAuthService) Resolve(context.Context, string) (*domain.Session, error) {
	return nil, domain.ErrSessionNotFound
}

type stubUserDirectory struct {
	changePasswordFn func(ctx context.Context, username, oldPassword, newPassword string) error
	setRoleFn        func(ctx context.Context, username, role string) error
	addTagFn         func(ctx context.Context, username, tag string) error
	users            domain.Users
}

func (s *stubUserDirectory) VerifyCredentials(context.Context, string, string) (*domain.User, error) {
	return nil, domain.ErrBadCredential
}

func (s *stubUserDirectory) Register(context.Context, string, string) (*domain.User, error) {
	return nil, domain.ErrDuplicateUsername
}

func (s *stubUserDirectory) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	return s.changePasswordFn(ctx, username, oldPassword, newPassword)
}

func (s *stubUserDirectory) SetRole(ctx context.Context, username, role string) error {
	return s.setRoleFn(ctx, username, role)
}

func (s *stubUserDirectory) AddTag(ctx context.Context, username, tag string) error {
	return s.addTagFn(ctx, username, tag)
}

func (s *stubUserDirectory) Get(_ context.Context, username string) (*domain.User, error) {
	if u, ok := s.users[username]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubUserDirectory) List(context.Context) domain.Users {
	return s.users
}

// newRequest builds an echo context with the validator installed. body is
// sent as JSON when non-empty.
func newRequest(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withSession(c echo.Context, username string, role domain.Role) {
	middleware.WithSession(c, &domain.Session{Username: username, Role: role, Tags: []string{}}, "tok-"+username)
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.CookieName {
			return ck
		}
	}
	return nil
}
