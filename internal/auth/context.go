package auth

import (
	"github.com/labstack/echo/v4"
)

const claimsKey = "auth_claims"

func SetClaims(c echo.Context, claims *Claims) {
	c.Set(claimsKey, claims)
}

// ClaimsFrom returns the claims stored by the auth middleware, or nil on
// public routes.
func ClaimsFrom(c echo.Context) *Claims {
	claims, _ := c.Get(claimsKey).(*Claims)
	return claims
}

func UserID(c echo.Context) string {
	if claims := ClaimsFrom(c); claims != nil {
		return claims.UserID
	}
	return ""
}
