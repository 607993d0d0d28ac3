package middleware

import (
	"github.com/labstack/echo/v4"
)

// Header names under which the API gateway forwards the caller's
// identity.  The services trust the gateway; there is no token
// verification here.
const (
	HeaderActorID   = "X-Actor-Id"
	HeaderActorRole = "X-Actor-Role"
)

// Identity copies the gateway identity headers into the request
// context under the "user_id" and "role" keys, where RequireRole and
// the rate limiter read them.  Requests without the headers pass
// through as anonymous.
func Identity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id := c.Request().Header.Get(HeaderActorID); id != "" {
				c.Set("user_id", id)
			}
			if role := c.Request().Header.Get(HeaderActorRole); role != "" {
				c.Set("role", role)
			}
			return next(c)
		}
	}
}

// actorID returns the caller id stored by Identity, or "anon".
func actorID(c echo.Context) string {
	if v, ok := c.Get("user_id").(string); ok && v != "" {
		return v
	}
	return "anon"
}
