package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// successResponse is the envelope for every 2xx body.
type successResponse struct {
	Status     string      `json:"status" example:"success"`
	Token      string      `json:"token,omitempty"`
	Count      *int        `json:"count,omitempty"`
	Pagination *pagination `json:"pagination,omitempty"`
	Data       any         `json:"data"`
}

type pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// errorResponse documents the failure envelope written by the HTTP error handler.
type errorResponse struct {
	Status  string `json:"status" example:"fail"`
	Message string `json:"message"`
}

func respond(c echo.Context, code int, data any) error {
	return c.JSON(code, successResponse{Status: "success", Data: data})
}

func respondList(c echo.Context, data any, count int) error {
	return c.JSON(http.StatusOK, successResponse{Status: "success", Count: &count, Data: data})
}

// empty is the data payload of responses that carry nothing, e.g. deletes.
var empty = struct{}{}

// bindAndValidate binds the request body and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload").SetInternal(err)
	}
	return c.Validate(req)
}
