package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/staylink/booking-api/internal/api/metrics"
	"github.com/staylink/booking-api/internal/core/domain"
	"github.com/staylink/booking-api/internal/core/ports"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service ports.BookingService
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// Create handles POST /api/v1/bookings and POST /api/v1/properties/:propertyId/bookings.
//
// @Summary      Book a property
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookingRequest  true  "Booking"
// @Success      201   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /bookings [post]
// @Router       /properties/{propertyId}/bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	var req createBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	propertyID := c.Param("propertyId")
	if propertyID == "" {
		propertyID = strings.TrimSpace(req.PropertyID)
	}
	if propertyID == "" {
		return domain.Errorf(domain.ErrValidation, "property_id is required")
	}

	b, err := h.service.Create(c.Request().Context(), user, req.toInput(propertyID))
	if err != nil {
		return err
	}
	metrics.BookingsCreatedTotal.Inc()
	return respond(c, http.StatusCreated, b)
}

// ListMine handles GET /api/v1/bookings/me.
//
// @Summary      List the caller's bookings with property summaries
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse
// @Failure      401  {object}  errorResponse
// @Router       /bookings/me [get]
func (h *BookingHandler) ListMine(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	items, err := h.service.ListMine(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return respondList(c, toBookingResponses(items), len(items))
}

// ListForProperty handles GET /api/v1/properties/:propertyId/bookings.
//
// @Summary      List a property's bookings (property owner or admin)
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        propertyId  path      string  true  "Property ID"
// @Success      200         {object}  successResponse
// @Failure      403         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /properties/{propertyId}/bookings [get]
func (h *BookingHandler) ListForProperty(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	items, err := h.service.ListForProperty(c.Request().Context(), user, c.Param("propertyId"))
	if err != nil {
		return err
	}
	return respondList(c, nonNil(items), len(items))
}

// Get handles GET /api/v1/bookings/:bookingId.
//
// @Summary      Get a booking (owner or admin)
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        bookingId  path      string  true  "Booking ID"
// @Success      200        {object}  successResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /bookings/{bookingId} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	b, err := h.service.Get(c.Request().Context(), user, c.Param("bookingId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, b)
}

// Update handles PUT /api/v1/bookings/:bookingId.
//
// @Summary      Update a booking (owner or admin)
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        bookingId  path      string                true  "Booking ID"
// @Param        body       body      updateBookingRequest  true  "Fields to change"
// @Success      200        {object}  successResponse
// @Failure      400        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /bookings/{bookingId} [put]
func (h *BookingHandler) Update(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	var req updateBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	b, err := h.service.Update(c.Request().Context(), user, c.Param("bookingId"), req.toInput())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, b)
}

// Delete handles DELETE /api/v1/bookings/:bookingId.
//
// @Summary      Cancel a booking (owner or admin)
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        bookingId  path      string  true  "Booking ID"
// @Success      200        {object}  successResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /bookings/{bookingId} [delete]
func (h *BookingHandler) Delete(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), user, c.Param("bookingId")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, empty)
}
