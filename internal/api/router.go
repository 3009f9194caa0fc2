package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/staylink/booking-api/docs"
	"github.com/staylink/booking-api/internal/api/handler"
	"github.com/staylink/booking-api/internal/api/middleware"
	"github.com/staylink/booking-api/internal/core/domain"
	"github.com/staylink/booking-api/internal/core/ports"
)

const defaultRequestTimeout = 15 * time.Second

// Dependencies is everything the HTTP layer needs from the rest of the service.
type Dependencies struct {
	Auth       ports.AuthService
	Tokens     ports.TokenVerifier
	Users      middleware.UserFinder
	UserAdmin  ports.UserService
	Properties ports.PropertyService
	Bookings   ports.BookingService
	Reviews    ports.ReviewService

	Cookie         handler.CookieConfig
	RequestTimeout time.Duration
	Readiness      []handler.DependencyCheck
	Log            zerolog.Logger

	// Registry receives the HTTP metrics and backs /metrics.
	// Defaults to the global Prometheus registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}

	timeout := deps.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "booking",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(echomiddleware.ContextTimeoutWithConfig(echomiddleware.ContextTimeoutConfig{
		Timeout: timeout,
	}))

	// --- Health probes and tooling (no auth required) ---
	e.GET("/health", handler.Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(deps.Readiness...).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authn := middleware.Authenticate(deps.Tokens, deps.Users, deps.Cookie.Name, deps.Log)
	identify := middleware.Identify(deps.Tokens, deps.Users, deps.Cookie.Name, deps.Log)
	protect := func(roles ...domain.Role) []echo.MiddlewareFunc {
		return middleware.Protect(authn, roles...)
	}

	var (
		anyone       = []domain.Role{domain.RoleUser, domain.RoleHost, domain.RoleAdmin}
		guests       = []domain.Role{domain.RoleUser, domain.RoleAdmin}
		bookingRoles = []domain.Role{domain.RoleUser, domain.RoleAdmin, domain.RoleHost}
	)

	v1 := e.Group("/api/v1")

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Cookie)
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, protect()...)
	auth.GET("/me", authHandler.Me, protect()...)
	auth.PATCH("/me", authHandler.UpdateMe, protect()...)

	propertyHandler := handler.NewPropertyHandler(deps.Properties)
	bookingHandler := handler.NewBookingHandler(deps.Bookings)
	reviewHandler := handler.NewReviewHandler(deps.Reviews)

	// --- Property routes ---
	properties := v1.Group("/properties")
	properties.GET("", propertyHandler.List)
	properties.POST("", propertyHandler.Create, protect(anyone...)...)
	properties.GET("/:propertyId", propertyHandler.Get, identify)
	properties.PUT("/:propertyId", propertyHandler.Update, protect(anyone...)...)
	properties.DELETE("/:propertyId", propertyHandler.Delete, protect(anyone...)...)
	properties.GET("/:propertyId/bookings", bookingHandler.ListForProperty, protect(anyone...)...)
	properties.POST("/:propertyId/bookings", bookingHandler.Create, protect(bookingRoles...)...)
	properties.GET("/:propertyId/reviews", reviewHandler.ListForProperty)
	properties.POST("/:propertyId/reviews", reviewHandler.Add, protect(guests...)...)

	// --- Booking routes ---
	bookings := v1.Group("/bookings")
	bookings.GET("/me", bookingHandler.ListMine, protect()...)
	bookings.POST("", bookingHandler.Create, protect(bookingRoles...)...)
	bookings.GET("/:bookingId", bookingHandler.Get, protect()...)
	bookings.PUT("/:bookingId", bookingHandler.Update, protect(guests...)...)
	bookings.DELETE("/:bookingId", bookingHandler.Delete, protect(guests...)...)

	// --- Review routes ---
	reviews := v1.Group("/reviews")
	reviews.GET("/me", reviewHandler.ListMine, protect()...)
	reviews.GET("/:reviewId", reviewHandler.Get)
	reviews.PUT("/:reviewId", reviewHandler.Update, protect(guests...)...)
	reviews.DELETE("/:reviewId", reviewHandler.Delete, protect(guests...)...)

	// --- User administration ---
	userHandler := handler.NewUserHandler(deps.UserAdmin)
	users := v1.Group("/users", protect(domain.RoleAdmin)...)
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.GET("/:userId", userHandler.Get)
	users.PUT("/:userId", userHandler.Update)
	users.DELETE("/:userId", userHandler.Delete)

	e.RouteNotFound("/*", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "route "+c.Request().URL.Path+" not found")
	})

	return e
}
