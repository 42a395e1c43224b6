package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/practice-room-reservation/internal/utils"
)

// AdminAuth returns an Echo middleware that guards administrator read
// routes.  Two credentials are accepted: a Bearer token minted by the
// admin login endpoint, or the shared admin code passed directly in the
// X-Admin-Code header (handy for curl and the admin page before login).
// A missing credential yields 401, a wrong one 403.
func AdminAuth(jwtSecret, adminCodeHash string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if code := c.Request().Header.Get("X-Admin-Code"); code != "" {
				if !utils.VerifySecret(adminCodeHash, code) {
					return c.JSON(http.StatusForbidden, echo.Map{"error": "admin code does not match"})
				}
				return next(c)
			}

			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "admin credential required"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Parse with HS256 only; any other signing method is rejected.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok || claims["role"] != "admin" {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "not an admin token"})
			}
			return next(c)
		}
	}
}
