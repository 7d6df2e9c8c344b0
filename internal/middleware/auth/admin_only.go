package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// RequireAdmin accepts only requests carrying "Authorization: Bearer <token>"
// signed with secret and holding the admin role. An empty secret disables the check.
func RequireAdmin(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if len(secret) == 0 {
			return next
		}
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
			}

			claims, err := ParseAccessToken(raw, secret)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "access token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
			}

			if claims.Role != "admin" {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}

			setUserContext(c, claims)
			return next(c)
		}
	}
}
