package handlers

import (
	"strconv"

	"github.com/hollowave/hollowave-backend/internal/apperrors"
	"github.com/hollowave/hollowave-backend/internal/middleware"
	"github.com/hollowave/hollowave-backend/internal/pagination"
	"github.com/labstack/echo/v4"
)

// bindAndValidate binds the JSON body into req and runs struct validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return apperrors.Validation(err.Error())
	}
	return nil
}

// paramID parses a numeric path parameter.
func paramID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.Validation("invalid " + name)
	}
	return uint(id), nil
}

// principal returns the authenticated user id or an Unauthenticated error.
func principal(c echo.Context) (uint, error) {
	id := middleware.PrincipalID(c)
	if id == 0 {
		return 0, apperrors.Unauthenticated()
	}
	return id, nil
}

// pageParams reads cursor/limit query values with per-endpoint defaults.
func pageParams(c echo.Context, defaultLimit, maxLimit int) pagination.Params {
	return pagination.Parse(c.QueryParam("cursor"), c.QueryParam("limit"), defaultLimit, maxLimit)
}
