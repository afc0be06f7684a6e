package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/formpilot/autofill-backend/internal/dtos"
	"github.com/formpilot/autofill-backend/internal/services"
)

type AuthHandler struct {
	Identities *services.IdentityService
}

func NewAuthHandler(identities *services.IdentityService) *AuthHandler {
	return &AuthHandler{Identities: identities}
}

// GoogleAuth is the POST /auth/google endpoint. The extension calls it after
// every Google sign-in; the identity row is upserted keyed on email.
func (h *AuthHandler) GoogleAuth(c *gin.Context) {
	var user dtos.GoogleUser
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	if err := h.Identities.RecordLogin(&user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record login: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
