package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	issuer *Issuer
}

func NewHandler(issuer *Issuer) *Handler {
	return &Handler{issuer: issuer}
}

// --------------------------------------------------
// POST /session
// --------------------------------------------------
func (h *Handler) Start(c *gin.Context) {
	claims, token, err := h.issuer.Start(RoleCustomer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session_id": claims.SessionID,
		"token":      token,
		"expires_at": claims.ExpiresAt,
	})
}
