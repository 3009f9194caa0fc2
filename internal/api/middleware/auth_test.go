package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/staylink/booking-api/internal/core/domain"
	"github.com/staylink/booking-api/internal/core/service"
)

const (
	testSecret = "test-secret-0123456789abcdef0123"
	testCookie = "jwt"
)

type stubUsers struct {
	users map[string]*domain.User
	err   error
}

func (s *stubUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func newUsers(users ...*domain.User) *stubUsers {
	s := &stubUsers{users: map[string]*domain.User{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func issue(t *testing.T, secret, userID string) string {
	t.Helper()
	tok, _, err := service.NewTokenService(secret, time.Hour).Issue(context.Background(), userID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

// serve runs handler through the middleware chain and renders any returned error.
func serve(e *echo.Echo, req *http.Request, h echo.HandlerFunc, mws ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestAuthenticate_ValidBearer(t *testing.T) {
	e := echo.New()
	alice := &domain.User{ID: "u1", Role: domain.RoleHost}
	tokens := service.NewTokenService(testSecret, time.Hour)
	mw := Authenticate(tokens, newUsers(alice), testCookie, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+issue(t, testSecret, "u1"))

	called := false
	rec := serve(e, req, func(c echo.Context) error {
		called = true
		u, ok := Identity(c)
		if !ok || u.ID != "u1" {
			t.Fatalf("identity not attached: %+v", u)
		}
		if c.Get(ContextKeyRole) != domain.RoleHost {
			t.Fatalf("role not attached")
		}
		cl, ok := Claims(c)
		if !ok || cl.UserID != "u1" || cl.TokenID == "" {
			t.Fatalf("claims not attached: %+v", cl)
		}
		return c.NoContent(http.StatusOK)
	}, mw)

	if !called {
		t.Fatal("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthenticate_MissingToken(t *testing.T) {
	e := echo.New()
	mw := Authenticate(service.NewTokenService(testSecret, time.Hour), newUsers(), testCookie, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := serve(e, req, func(c echo.Context) error {
		t.Fatal("should not reach next")
		return nil
	}, mw)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticate_CookieFallback(t *testing.T) {
	e := echo.New()
	bob := &domain.User{ID: "u2", Role: domain.RoleUser}
	mw := Authenticate(service.NewTokenService(testSecret, time.Hour), newUsers(bob), testCookie, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Basic Zm9vOmJhcg==")
	req.AddCookie(&http.Cookie{Name: testCookie, Value: issue(t, testSecret, "u2")})

	rec := serve(e, req, func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, mw)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestAuthenticate_HeaderWinsOverCookie(t *testing.T) {
	e := echo.New()
	alice := &domain.User{ID: "u1", Role: domain.RoleHost}
	bob := &domain.User{ID: "u2", Role: domain.RoleUser}
	mw := Authenticate(service.NewTokenService(testSecret, time.Hour), newUsers(alice, bob), testCookie, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+issue(t, testSecret, "u1"))
	req.AddCookie(&http.Cookie{Name: testCookie, Value: issue(t, testSecret, "u2")})

	rec := serve(e, req, func(c echo.Context) error {
		u, _ := Identity(c)
		if u.ID != "u1" {
			t.Fatalf("expected header identity u1, got %s", u.ID)
		}
		return c.NoContent(http.StatusOK)
	}, mw)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthenticate_MalformedToken(t *testing.T) {
	e := echo.New()
	mw := Authenticate(service.NewTokenService(testSecret, time.Hour), newUsers(), testCookie, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-token")
	rec := serve(e, req, func(c echo.Context) error {
		t.Fatal("should not reach next")
		return nil
	}, mw)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticate_DeletedUser(t *testing.T) {
	e := echo.New()
	mw := Authenticate(service.NewTokenService(testSecret, time.Hour), newUsers(), testCookie, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+issue(t, testSecret, "gone"))
	rec := serve(e, req, func(c echo.Context) error {
		t.Fatal("should not reach next")
		return nil
	}, mw)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticate_StoreFailure(t *testing.T) {
	e := echo.New()
	users := &stubUsers{err: errors.New("connection reset")}
	mw := Authenticate(service.NewTokenService(testSecret, time.Hour), users, testCookie, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+issue(t, testSecret, "u1"))
	rec := serve(e, req, func(c echo.Context) error {
		t.Fatal("should not reach next")
		return nil
	}, mw)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestProtect_WrongKeyNeverReachesRoleCheck(t *testing.T) {
	e := echo.New()
	alice := &domain.User{ID: "u1", Role: domain.RoleAdmin}
	authn := Authenticate(service.NewTokenService(testSecret, time.Hour), newUsers(alice), testCookie, zerolog.Nop())

	roleCheckReached := false
	spy := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roleCheckReached = true
			return next(c)
		}
	}
	chain := Protect(authn, domain.RoleAdmin)
	chain = append([]echo.MiddlewareFunc{chain[0], spy}, chain[1:]...)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+issue(t, "another-secret-0123456789abcdef", "u1"))
	rec := serve(e, req, func(c echo.Context) error {
		t.Fatal("should not reach handler")
		return nil
	}, chain...)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if roleCheckReached {
		t.Fatal("role check ran for an unauthenticated request")
	}
}

func TestProtect_HostOnMixedRoleRoute(t *testing.T) {
	e := echo.New()
	host := &domain.User{ID: "h1", Role: domain.RoleHost}
	authn := Authenticate(service.NewTokenService(testSecret, time.Hour), newUsers(host), testCookie, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+issue(t, testSecret, "h1"))

	called := false
	rec := serve(e, req, func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusCreated)
	}, Protect(authn, domain.RoleUser, domain.RoleAdmin, domain.RoleHost)...)

	if !called || rec.Code != http.StatusCreated {
		t.Fatalf("expected handler to run with 201, got called=%v code=%d", called, rec.Code)
	}
}

func TestProtect_OrderAndLength(t *testing.T) {
	authn := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	if got := len(Protect(authn)); got != 1 {
		t.Fatalf("expected only authentication without roles, got %d", got)
	}
	if got := len(Protect(authn, domain.RoleAdmin)); got != 2 {
		t.Fatalf("expected authentication and authorization, got %d", got)
	}
}

func TestIdentify_OptionalCaller(t *testing.T) {
	alice := &domain.User{ID: "u1", Role: domain.RoleHost}
	tokens := service.NewTokenService(testSecret, time.Hour)

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"no token", "", ""},
		{"bad token", "Bearer garbage", ""},
		{"wrong key", "Bearer " + issue(t, "other-secret-0123456789abcdef0123", "u1"), ""},
		{"valid token", "Bearer " + issue(t, testSecret, "u1"), "u1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			mw := Identify(tokens, newUsers(alice), testCookie, zerolog.Nop())
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}

			got := ""
			rec := serve(e, req, func(c echo.Context) error {
				if u, ok := Identity(c); ok {
					got = u.ID
				}
				return c.NoContent(http.StatusOK)
			}, mw)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if got != tt.want {
				t.Fatalf("identity = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIdentify_StoreFailureAborts(t *testing.T) {
	e := echo.New()
	tokens := service.NewTokenService(testSecret, time.Hour)
	users := &stubUsers{err: errors.New("connection reset")}
	mw := Identify(tokens, users, testCookie, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+issue(t, testSecret, "u1"))

	rec := serve(e, req, func(c echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	}, mw)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
