// internal/handlers/auth.go
package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/rahulbala1799/TT/internal/config"
	"github.com/rahulbala1799/TT/internal/utils"
)

// AuthHandler implements the shop's shared-password access gate. The old UI
// kept this check in the browser; here the password is verified server-side
// and exchanged for a session token.
type AuthHandler struct {
	cfg config.AuthConfig
}

func NewAuthHandler(cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

type accessRequest struct {
	Password string `json:"password" binding:"required"`
}

// POST /auth/access
func (h *AuthHandler) Access(c *gin.Context) {
	var req accessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if !h.passwordMatches(req.Password) {
		utils.UnauthorizedResponse(c, "Invalid access password")
		return
	}

	token, err := utils.GenerateAccessToken(h.cfg.TokenTTL)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to issue access token", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresIn": h.cfg.TokenTTL * 3600,
	})
}

func (h *AuthHandler) passwordMatches(password string) bool {
	if h.cfg.AccessPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(h.cfg.AccessPasswordHash), []byte(password)) == nil
	}
	if h.cfg.AccessPassword == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(h.cfg.AccessPassword), []byte(password)) == 1
}
