package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/staylink/booking-api/internal/api/middleware"
	"github.com/staylink/booking-api/internal/core/domain"
	"github.com/staylink/booking-api/internal/core/ports"
)

// PropertyHandler handles HTTP requests for property operations.
type PropertyHandler struct {
	service ports.PropertyService
}

func NewPropertyHandler(service ports.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

var propertySorts = map[string]ports.PropertySort{
	"":           ports.SortNewest,
	"-createdAt": ports.SortNewest,
	"createdAt":  ports.SortOldest,
	"price":      ports.SortPriceAsc,
	"-price":     ports.SortPriceDesc,
	"rating":     ports.SortRatingDesc,
}

// List handles GET /api/v1/properties.
//
// @Summary      List properties
// @Tags         properties
// @Produce      json
// @Param        city          query     string  false  "City (case-insensitive)"
// @Param        propertyType  query     string  false  "Apartment, House, Villa, Cabin, Cottage, Loft or Other"
// @Param        minPrice      query     number  false  "Minimum price per night"
// @Param        maxPrice      query     number  false  "Maximum price per night"
// @Param        guests        query     int     false  "Minimum guest capacity"
// @Param        featured      query     bool    false  "Featured only"
// @Param        sort          query     string  false  "price, -price, createdAt, -createdAt or rating"
// @Param        page          query     int     false  "Page (1-based)"
// @Param        limit         query     int     false  "Page size (max 100)"
// @Success      200           {object}  successResponse
// @Failure      400           {object}  errorResponse
// @Router       /properties [get]
func (h *PropertyHandler) List(c echo.Context) error {
	var (
		f    ports.ListPropertiesFilter
		sort string
	)
	err := echo.QueryParamsBinder(c).
		String("city", &f.City).
		String("propertyType", &f.PropertyType).
		Float64("minPrice", &f.MinPrice).
		Float64("maxPrice", &f.MaxPrice).
		Int("guests", &f.MinGuests).
		String("sort", &sort).
		Int("page", &f.Page).
		Int("limit", &f.Limit).
		BindError()
	if err != nil {
		return domain.Errorf(domain.ErrValidation, "invalid query parameters: %v", err)
	}
	if v := c.QueryParam("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			return domain.Errorf(domain.ErrValidation, "featured must be true or false")
		}
		f.Featured = &featured
	}
	s, ok := propertySorts[sort]
	if !ok {
		return domain.Errorf(domain.ErrValidation, "unsupported sort %q", sort)
	}
	f.Sort = s

	res, err := h.service.List(c.Request().Context(), f)
	if err != nil {
		return err
	}
	count := len(res.Items)
	return c.JSON(http.StatusOK, successResponse{
		Status: "success",
		Count:  &count,
		Pagination: &pagination{
			Page:       res.Page,
			Limit:      res.Limit,
			Total:      res.Total,
			TotalPages: res.TotalPages,
		},
		Data: nonNil(res.Items),
	})
}

// Get handles GET /api/v1/properties/:propertyId.
//
// Bookings are included only for the property owner or an admin.
//
// @Summary      Get a property with its reviews, and bookings for its owner
// @Tags         properties
// @Produce      json
// @Param        propertyId  path      string  true  "Property ID"
// @Success      200         {object}  successResponse
// @Failure      404         {object}  errorResponse
// @Router       /properties/{propertyId} [get]
func (h *PropertyHandler) Get(c echo.Context) error {
	viewer, _ := middleware.Identity(c)
	detail, err := h.service.Get(c.Request().Context(), viewer, c.Param("propertyId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, toPropertyDetailResponse(detail))
}

// Create handles POST /api/v1/properties.
//
// @Summary      Create a property owned by the caller
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPropertyRequest  true  "Property"
// @Success      201   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /properties [post]
func (h *PropertyHandler) Create(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	var req createPropertyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.service.Create(c.Request().Context(), user, req.toInput())
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, p)
}

// Update handles PUT /api/v1/properties/:propertyId.
//
// @Summary      Update a property (owner or admin)
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        propertyId  path      string                 true  "Property ID"
// @Param        body        body      updatePropertyRequest  true  "Fields to change"
// @Success      200         {object}  successResponse
// @Failure      400         {object}  errorResponse
// @Failure      403         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /properties/{propertyId} [put]
func (h *PropertyHandler) Update(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	var req updatePropertyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.service.Update(c.Request().Context(), user, c.Param("propertyId"), req.toInput())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, p)
}

// Delete handles DELETE /api/v1/properties/:propertyId.
//
// @Summary      Delete a property with its bookings and reviews (owner or admin)
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        propertyId  path      string  true  "Property ID"
// @Success      200         {object}  successResponse
// @Failure      403         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /properties/{propertyId} [delete]
func (h *PropertyHandler) Delete(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), user, c.Param("propertyId")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, empty)
}
