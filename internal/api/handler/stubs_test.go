package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/staylink/booking-api/internal/api/middleware"
	"github.com/staylink/booking-api/internal/core/domain"
	"github.com/staylink/booking-api/internal/core/ports"
)

// newTestContext builds an echo context with the validator registered. When
// user is non-nil it is attached as if Authenticate had run.
func newTestContext(method, target, body string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
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
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(middleware.ContextKeyUser, user)
		c.Set(middleware.ContextKeyRole, user.Role)
	}
	return c, rec
}

var (
	alice = &domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com", Role: domain.RoleHost}
	bob   = &domain.User{ID: "u2", Name: "Bob", Email: "bob@example.com", Role: domain.RoleUser}
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	logoutFn   func(ctx context.Context, claims *domain.SessionClaims) error
	profileFn  func(ctx context.Context, actor *domain.User, in ports.ProfileInput) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, claims *domain.SessionClaims) error {
	return s.logoutFn(ctx, claims)
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, actor *domain.User, in ports.ProfileInput) (*domain.User, error) {
	return s.profileFn(ctx, actor, in)
}

type stubPropertyService struct {
	listFn   func(ctx context.Context, f ports.ListPropertiesFilter) (*ports.ListPropertiesResult, error)
	getFn    func(ctx context.Context, viewer *domain.User, id string) (*ports.PropertyDetail, error)
	createFn func(ctx context.Context, actor *domain.User, in ports.PropertyInput) (*domain.Property, error)
	updateFn func(ctx context.Context, actor *domain.User, id string, in ports.UpdatePropertyInput) (*domain.Property, error)
	deleteFn func(ctx context.Context, actor *domain.User, id string) error
}

func (s *stubPropertyService) List(ctx context.Context, f ports.ListPropertiesFilter) (*ports.ListPropertiesResult, error) {
	return s.listFn(ctx, f)
}

func (s *stubPropertyService) Get(ctx context.Context, viewer *domain.User, id string) (*ports.PropertyDetail, error) {
	return s.getFn(ctx, viewer, id)
}

func (s *stubPropertyService) Create(ctx context.Context, actor *domain.User, in ports.PropertyInput) (*domain.Property, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubPropertyService) Update(ctx context.Context, actor *domain.User, id string, in ports.UpdatePropertyInput) (*domain.Property, error) {
	return s.updateFn(ctx, actor, id, in)
}

func (s *stubPropertyService) Delete(ctx context.Context, actor *domain.User, id string) error {
	return s.deleteFn(ctx, actor, id)
}

type stubBookingService struct {
	createFn   func(ctx context.Context, actor *domain.User, in ports.CreateBookingInput) (*domain.Booking, error)
	getFn      func(ctx context.Context, actor *domain.User, id string) (*domain.Booking, error)
	mineFn     func(ctx context.Context, actor *domain.User) ([]ports.BookingWithProperty, error)
	propertyFn func(ctx context.Context, actor *domain.User, propertyID string) ([]*domain.Booking, error)
	updateFn   func(ctx context.Context, actor *domain.User, id string, in ports.UpdateBookingInput) (*domain.Booking, error)
	deleteFn   func(ctx context.Context, actor *domain.User, id string) error
}

func (s *stubBookingService) Create(ctx context.Context, actor *domain.User, in ports.CreateBookingInput) (*domain.Booking, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubBookingService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Booking, error) {
	return s.getFn(ctx, actor, id)
}

func (s *stubBookingService) ListMine(ctx context.Context, actor *domain.User) ([]ports.BookingWithProperty, error) {
	return s.mineFn(ctx, actor)
}

func (s *stubBookingService) ListForProperty(ctx context.Context, actor *domain.User, propertyID string) ([]*domain.Booking, error) {
	return s.propertyFn(ctx, actor, propertyID)
}

func (s *stubBookingService) Update(ctx context.Context, actor *domain.User, id string, in ports.UpdateBookingInput) (*domain.Booking, error) {
	return s.updateFn(ctx, actor, id, in)
}

func (s *stubBookingService) Delete(ctx context.Context, actor *domain.User, id string) error {
	return s.deleteFn(ctx, actor, id)
}

type stubReviewService struct {
	addFn      func(ctx context.Context, actor *domain.User, propertyID string, in ports.ReviewInput) (*domain.Review, error)
	getFn      func(ctx context.Context, id string) (*domain.Review, error)
	propertyFn func(ctx context.Context, propertyID string) ([]*domain.Review, error)
	mineFn     func(ctx context.Context, actor *domain.User) ([]*domain.Review, error)
	updateFn   func(ctx context.Context, actor *domain.User, id string, in ports.UpdateReviewInput) (*domain.Review, error)
	deleteFn   func(ctx context.Context, actor *domain.User, id string) error
}

func (s *stubReviewService) Add(ctx context.Context, actor *domain.User, propertyID string, in ports.ReviewInput) (*domain.Review, error) {
	return s.addFn(ctx, actor, propertyID, in)
}

func (s *stubReviewService) Get(ctx context.Context, id string) (*domain.Review, error) {
	return s.getFn(ctx, id)
}

func (s *stubReviewService) ListForProperty(ctx context.Context, propertyID string) ([]*domain.Review, error) {
	return s.propertyFn(ctx, propertyID)
}

func (s *stubReviewService) ListMine(ctx context.Context, actor *domain.User) ([]*domain.Review, error) {
	return s.mineFn(ctx, actor)
}

func (s *stubReviewService) Update(ctx context.Context, actor *domain.User, id string, in ports.UpdateReviewInput) (*domain.Review, error) {
	return s.updateFn(ctx, actor, id, in)
}

func (s *stubReviewService) Delete(ctx context.Context, actor *domain.User, id string) error {
	return s.deleteFn(ctx, actor, id)
}

type stubUserService struct {
	listFn   func(ctx context.Context) ([]*domain.User, error)
	getFn    func(ctx context.Context, id string) (*domain.User, error)
	createFn func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error)
	updateFn func(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubUserService) List(ctx context.Context) ([]*domain.User, error) { return s.listFn(ctx) }

func (s *stubUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, in)
}

func (s *stubUserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubUserService) Delete(ctx context.Context, id string) error { return s.deleteFn(ctx, id) }
