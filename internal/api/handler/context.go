package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studiodesk/schedule-system/internal/api/middleware"
	"github.com/studiodesk/schedule-system/internal/core/domain"
)

// ctxSession returns the session injected by the Auth middleware. A missing
// or logged-out session means the route was mounted without Auth.
func ctxSession(c echo.Context) (domain.Session, error) {
	session, _ := c.Get(middleware.SessionKey).(domain.Session)
	if !session.IsLoggedIn() {
		return domain.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return session, nil
}

// bindAndValidate decodes the request body into req and runs the struct
// validator. Decode failures are 400, rule violations 422.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}
