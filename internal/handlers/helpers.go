package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/pastryvapors/promohub/backend/internal/models"
)

// getClaimsFromContext returns the JWT claims set by the auth middleware
func getClaimsFromContext(c echo.Context) *models.JwtCustomClaims {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return nil
	}
	return claims
}

// getUserIDFromContext returns the authenticated user ID, 0 when absent
func getUserIDFromContext(c echo.Context) uint {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return 0
	}
	return claims.UserID
}
