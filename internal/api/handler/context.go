package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/social-network/internal/api/middleware"
)

// ctxAccountID returns the caller ID injected by the Auth middleware. An
// empty value means the route was mounted without the gate.
func ctxAccountID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.ContextKeyAccountID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized - No token provided.")
	}
	return id, nil
}

// bindAndValidate decodes the request body into req and runs its
// validation tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload.")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
