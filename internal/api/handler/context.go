package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careerhub/resume-api/internal/api/middleware"
	"github.com/careerhub/resume-api/internal/core/domain"
)

// ctxUser extracts the account injected by the auth guards and fast-fails
// before any service call when the guard did not run.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.ContextUserKey).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}
