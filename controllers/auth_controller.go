package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/shower-configurator-api/middleware"
	"go.uber.org/zap"
)

// LoginRequest represents the request body for an admin login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/login - exchanges admin credentials for a signed token
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := authService().Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err, "log in")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
	})
}

// Logout handles POST /api/logout. Tokens are stateless, so the client discards its copy.
func Logout(c *gin.Context) {
	if adminID, err := middleware.GetAdminID(c); err == nil {
		fields := []zap.Field{zap.Uint("admin_id", adminID)}
		if claims, err := middleware.GetClaims(c); err == nil && claims.RegisteredClaims.Expiry > 0 {
			fields = append(fields, zap.Time("token_expires_at", time.Unix(claims.RegisteredClaims.Expiry, 0)))
		}
		zap.L().Info("Admin logged out", fields...)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out",
	})
}
