package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/staylink/booking-api/internal/api/handler"
	"github.com/staylink/booking-api/internal/core/domain"
	"github.com/staylink/booking-api/internal/core/ports"
	"github.com/staylink/booking-api/internal/core/service"
)

const routerSecret = "router-secret-0123456789abcdef01"

type routerUsers map[string]*domain.User

func (u routerUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	if usr, ok := u[id]; ok {
		return usr, nil
	}
	return nil, domain.ErrUserNotFound
}

// fakeUserAdmin records that a handler behind the admin gate ran.
type fakeUserAdmin struct {
	ports.UserService
	listed bool
}

func (f *fakeUserAdmin) List(context.Context) ([]*domain.User, error) {
	f.listed = true
	return []*domain.User{}, nil
}

type fakeBookings struct {
	ports.BookingService
	created int
	updated int
}

func (f *fakeBookings) Create(_ context.Context, actor *domain.User, in ports.CreateBookingInput) (*domain.Booking, error) {
	f.created++
	return &domain.Booking{ID: "b1", PropertyID: in.PropertyID, UserID: actor.ID}, nil
}

func (f *fakeBookings) Update(_ context.Context, _ *domain.User, id string, _ ports.UpdateBookingInput) (*domain.Booking, error) {
	f.updated++
	return &domain.Booking{ID: id}, nil
}

type fakeProperties struct {
	ports.PropertyService
	created int
	viewer  *domain.User
}

// Get mirrors the service contract: bookings only for the owner or an admin.
func (f *fakeProperties) Get(_ context.Context, viewer *domain.User, id string) (*ports.PropertyDetail, error) {
	f.viewer = viewer
	p := &domain.Property{ID: id, UserID: "host-1"}
	detail := &ports.PropertyDetail{Property: p, Reviews: []*domain.Review{}}
	if viewer != nil && domain.CanMutate(viewer, p.UserID) {
		detail.Bookings = []*domain.Booking{{ID: "b1", PropertyID: id, UserID: "guest-7"}}
	}
	return detail, nil
}

func (f *fakeProperties) Create(_ context.Context, actor *domain.User, in ports.PropertyInput) (*domain.Property, error) {
	f.created++
	return &domain.Property{ID: "p1", UserID: actor.ID, Title: in.Title}, nil
}

type routerFixture struct {
	srv        http.Handler
	tokens     *service.TokenService
	users      *fakeUserAdmin
	bookings   *fakeBookings
	properties *fakeProperties
}

func newRouterFixture() *routerFixture {
	tokens := service.NewTokenService(routerSecret, time.Hour)
	f := &routerFixture{
		tokens:     tokens,
		users:      &fakeUserAdmin{},
		bookings:   &fakeBookings{},
		properties: &fakeProperties{},
	}
	f.srv = NewRouter(Dependencies{
		Tokens: tokens,
		Users: routerUsers{
			"user-1":  {ID: "user-1", Role: domain.RoleUser},
			"host-1":  {ID: "host-1", Role: domain.RoleHost},
			"admin-1": {ID: "admin-1", Role: domain.RoleAdmin},
		},
		UserAdmin:  f.users,
		Bookings:   f.bookings,
		Properties: f.properties,
		Cookie:     handler.CookieConfig{Name: "jwt"},
		Log:        zerolog.Nop(),
		Registry:   prometheus.NewRegistry(),
	})
	return f
}

func (f *routerFixture) do(t *testing.T, method, path, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if userID != "" {
		tok, _, err := f.tokens.Issue(context.Background(), userID)
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	f.srv.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestRouter_Health(t *testing.T) {
	f := newRouterFixture()
	if rec := f.do(t, http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := f.do(t, http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected ready with no checks, got %d", rec.Code)
	}
}

func TestRouter_MissingTokenIsRejectedBeforeHandler(t *testing.T) {
	f := newRouterFixture()
	rec := f.do(t, http.MethodPost, "/api/v1/properties", "", `{"title":"x"}`)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["status"] != "fail" {
		t.Fatalf("expected fail envelope, got %v", body)
	}
	if f.properties.created != 0 {
		t.Fatal("handler ran without a token")
	}
}

func TestRouter_AdminOnlyUsers(t *testing.T) {
	f := newRouterFixture()

	rec := f.do(t, http.MethodGet, "/api/v1/users", "host-1", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for host, got %d", rec.Code)
	}
	if msg, _ := decodeEnvelope(t, rec)["message"].(string); !strings.Contains(msg, "host") {
		t.Fatalf("expected message naming the role, got %q", msg)
	}
	if f.users.listed {
		t.Fatal("admin handler ran for a host")
	}

	rec = f.do(t, http.MethodGet, "/api/v1/users", "admin-1", "")
	if rec.Code != http.StatusOK || !f.users.listed {
		t.Fatalf("expected admin to list users, got %d", rec.Code)
	}
}

func TestRouter_HostCanBookButNotEditBookings(t *testing.T) {
	f := newRouterFixture()
	booking := `{"check_in_date":"2024-05-01","check_out_date":"2024-05-03","payment_info":{"id":"p","status":"paid"}}`

	rec := f.do(t, http.MethodPost, "/api/v1/properties/p1/bookings", "host-1", booking)
	if rec.Code != http.StatusCreated || f.bookings.created != 1 {
		t.Fatalf("expected host booking to succeed, got %d", rec.Code)
	}

	rec = f.do(t, http.MethodPut, "/api/v1/bookings/b1", "host-1", `{"check_out_date":"2024-05-04"}`)
	if rec.Code != http.StatusForbidden || f.bookings.updated != 0 {
		t.Fatalf("expected 403 for host update, got %d", rec.Code)
	}

	rec = f.do(t, http.MethodPut, "/api/v1/bookings/b1", "user-1", `{"check_out_date":"2024-05-04"}`)
	if rec.Code != http.StatusOK || f.bookings.updated != 1 {
		t.Fatalf("expected user update to pass the role gate, got %d", rec.Code)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	f := newRouterFixture()
	rec := f.do(t, http.MethodGet, "/api/v1/nowhere", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if decodeEnvelope(t, rec)["status"] != "fail" {
		t.Fatal("expected fail envelope")
	}
}

func TestRouter_PropertyDetailHidesBookingsFromAnonymous(t *testing.T) {
	f := newRouterFixture()

	rec := f.do(t, http.MethodGet, "/api/v1/properties/p1", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if f.properties.viewer != nil {
		t.Fatalf("expected no viewer, got %+v", f.properties.viewer)
	}
	data, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
	if _, ok := data["bookings"]; ok {
		t.Fatalf("anonymous detail carries bookings: %s", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "guest-7") {
		t.Fatalf("guest id leaked: %s", rec.Body.String())
	}
}

func TestRouter_PropertyDetailIdentifiesOptionalCaller(t *testing.T) {
	f := newRouterFixture()

	rec := f.do(t, http.MethodGet, "/api/v1/properties/p1", "user-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if f.properties.viewer == nil || f.properties.viewer.ID != "user-1" {
		t.Fatalf("expected user-1 as viewer, got %+v", f.properties.viewer)
	}
	if strings.Contains(rec.Body.String(), "bookings") {
		t.Fatalf("non-owner sees bookings: %s", rec.Body.String())
	}

	rec = f.do(t, http.MethodGet, "/api/v1/properties/p1", "host-1", "")
	data, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
	if b, ok := data["bookings"].([]any); !ok || len(b) != 1 {
		t.Fatalf("owner should see bookings, got %s", rec.Body.String())
	}
}

func TestRouter_PropertyDetailIgnoresBadToken(t *testing.T) {
	f := newRouterFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties/p1", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	f.srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected anonymous 200, got %d", rec.Code)
	}
	if f.properties.viewer != nil {
		t.Fatalf("bad token must not identify a caller, got %+v", f.properties.viewer)
	}
}
