package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staylink/booking-api/internal/core/ports"
)

// ReviewHandler handles HTTP requests for review operations.
type ReviewHandler struct {
	service ports.ReviewService
}

func NewReviewHandler(service ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

type createReviewRequest struct {
	Title  string `json:"title"  validate:"required,max=100"`
	Text   string `json:"text"   validate:"required"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
}

type updateReviewRequest struct {
	Title  *string `json:"title"  validate:"omitempty,min=1,max=100"`
	Text   *string `json:"text"   validate:"omitempty,min=1"`
	Rating *int    `json:"rating" validate:"omitempty,min=1,max=5"`
}

// Add handles POST /api/v1/properties/:propertyId/reviews.
//
// @Summary      Review a property (one review per user)
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        propertyId  path      string               true  "Property ID"
// @Param        body        body      createReviewRequest  true  "Review"
// @Success      201         {object}  successResponse
// @Failure      400         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Failure      409         {object}  errorResponse
// @Router       /properties/{propertyId}/reviews [post]
func (h *ReviewHandler) Add(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	var req createReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	r, err := h.service.Add(c.Request().Context(), user, c.Param("propertyId"), ports.ReviewInput{
		Title:  req.Title,
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, r)
}

// ListForProperty handles GET /api/v1/properties/:propertyId/reviews.
//
// @Summary      List a property's reviews
// @Tags         reviews
// @Produce      json
// @Param        propertyId  path      string  true  "Property ID"
// @Success      200         {object}  successResponse
// @Router       /properties/{propertyId}/reviews [get]
func (h *ReviewHandler) ListForProperty(c echo.Context) error {
	items, err := h.service.ListForProperty(c.Request().Context(), c.Param("propertyId"))
	if err != nil {
		return err
	}
	return respondList(c, nonNil(items), len(items))
}

// ListMine handles GET /api/v1/reviews/me.
//
// @Summary      List the caller's reviews
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse
// @Failure      401  {object}  errorResponse
// @Router       /reviews/me [get]
func (h *ReviewHandler) ListMine(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	items, err := h.service.ListMine(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return respondList(c, nonNil(items), len(items))
}

// Get handles GET /api/v1/reviews/:reviewId.
//
// @Summary      Get a review
// @Tags         reviews
// @Produce      json
// @Param        reviewId  path      string  true  "Review ID"
// @Success      200       {object}  successResponse
// @Failure      404       {object}  errorResponse
// @Router       /reviews/{reviewId} [get]
func (h *ReviewHandler) Get(c echo.Context) error {
	r, err := h.service.Get(c.Request().Context(), c.Param("reviewId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, r)
}

// Update handles PUT /api/v1/reviews/:reviewId.
//
// @Summary      Update a review (owner or admin)
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        reviewId  path      string               true  "Review ID"
// @Param        body      body      updateReviewRequest  true  "Fields to change"
// @Success      200       {object}  successResponse
// @Failure      400       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /reviews/{reviewId} [put]
func (h *ReviewHandler) Update(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	var req updateReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	r, err := h.service.Update(c.Request().Context(), user, c.Param("reviewId"), ports.UpdateReviewInput{
		Title:  req.Title,
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, r)
}

// Delete handles DELETE /api/v1/reviews/:reviewId.
//
// @Summary      Delete a review (owner or admin)
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        reviewId  path      string  true  "Review ID"
// @Success      200       {object}  successResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /reviews/{reviewId} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), user, c.Param("reviewId")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, empty)
}
