package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/abdur-rahman-shawl/young-minds-availability-api/internal/middleware"
	"github.com/abdur-rahman-shawl/young-minds-availability-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// mentorIDFromContext resolves the mentor whose schedule the request acts
// on: the authenticated user.
func mentorIDFromContext(c *gin.Context) string {
	claims := claimsFromContext(c)
	if claims == nil {
		return ""
	}
	return claims.UserID
}
