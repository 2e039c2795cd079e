package order

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionKey is the gin context key holding the caller's session ID.
const SessionKey = "sessionID"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// GET /orders/current
// --------------------------------------------------
func (h *Handler) Current(c *gin.Context) {
	tacos := h.service.Current(c.GetString(SessionKey))

	names := make([]string, 0, len(tacos))
	for _, t := range tacos {
		names = append(names, t.Name)
	}

	c.JSON(http.StatusOK, gin.H{
		"tacos":    tacos,
		"names":    names,
		"defaults": DefaultForm(h.service.Now()),
	})
}

// --------------------------------------------------
// POST /orders
// --------------------------------------------------
func (h *Handler) Submit(c *gin.Context) {
	var form CheckoutForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	submitted, errs, err := h.service.Submit(c.Request.Context(), c.GetString(SessionKey), form)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit order"})
		return
	}
	if !errs.Empty() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}

	c.JSON(http.StatusCreated, submitted)
}

// --------------------------------------------------
// ADMIN: GET /admin/orders/:id
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	submitted, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load order"})
		return
	}

	c.JSON(http.StatusOK, submitted)
}
