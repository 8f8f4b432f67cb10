package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/studiodesk/schedule-system/internal/core/domain"
	"github.com/studiodesk/schedule-system/internal/core/ports"
)

// SessionKey is the echo context key holding the request's domain.Session.
const SessionKey = "session"

// Auth validates the bearer JWT, rejects revoked tokens and injects the
// rebuilt session into context.
func Auth(jwtSecret string, revoker ports.TokenRevoker, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				return []byte(jwtSecret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			session, ok := sessionFromClaims(claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing session claims")
			}

			revoked, err := revoker.IsRevoked(c.Request().Context(), session.TokenID)
			if err != nil {
				// Fail closed: a token that cannot be checked is not trusted.
				log.Error().Err(err).Str("user_id", session.UserID).Msg("token revocation check failed")
				return echo.NewHTTPError(http.StatusServiceUnavailable, "session store unavailable")
			}
			if revoked {
				return echo.NewHTTPError(http.StatusUnauthorized, "session has been logged out")
			}

			c.Set(SessionKey, session)
			return next(c)
		}
	}
}

func sessionFromClaims(claims jwt.MapClaims) (domain.Session, bool) {
	sub, _ := claims["sub"].(string)
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)
	jti, _ := claims["jti"].(string)
	if sub == "" || role == "" || jti == "" {
		return domain.Session{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return domain.Session{}, false
	}

	return domain.NewSession(&domain.User{ID: sub, Name: name, Role: role}, jti, exp.Time.In(time.Local)), true
}
