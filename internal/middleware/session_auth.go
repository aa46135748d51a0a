package middleware

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/labstack/echo/v4"
)

// SessionUserKey is the session key holding the principal's user id.
const SessionUserKey = "userID"

// ContextUserKey is the echo context key the principal is stored under.
const ContextUserKey = "principalID"

// SessionAuthMiddleware resolves the principal from the session and stores it
// on the request context. Requests without a session principal are rejected.
func SessionAuthMiddleware(sessions *scs.SessionManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := sessions.GetInt(c.Request().Context(), SessionUserKey)
			if userID == 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			c.Set(ContextUserKey, uint(userID))
			return next(c)
		}
	}
}

// PrincipalID returns the authenticated user id from the request context,
// zero when unauthenticated.
func PrincipalID(c echo.Context) uint {
	if id, ok := c.Get(ContextUserKey).(uint); ok {
		return id
	}
	return 0
}
