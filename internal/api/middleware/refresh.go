package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studiodesk/schedule-system/internal/core/domain"
	"github.com/studiodesk/schedule-system/internal/core/ports"
)

// Refresh reloads the session user from the users worksheet and replaces the
// token's role and name with the stored ones. Accounts that were removed or
// lost approval after login are rejected. It runs after Auth and before RBAC
// on routes where a stale role must not grant access.
func Refresh(users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, _ := c.Get(SessionKey).(domain.Session)
			if !session.IsLoggedIn() {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
			}

			user, err := users.FindByID(c.Request().Context(), session.UserID)
			if errors.Is(err, domain.ErrUserNotFound) {
				return echo.NewHTTPError(http.StatusUnauthorized, "account no longer exists")
			}
			if err != nil {
				return err
			}
			if !user.Approved {
				return domain.ErrNotApproved
			}

			session.Role = user.Role
			session.Name = user.Name
			c.Set(SessionKey, session)
			return next(c)
		}
	}
}
