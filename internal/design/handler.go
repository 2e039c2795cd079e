// Package design serves the taco design form: the catalog grouped by
// category, proposed tacos, and submission of a drafted taco into the
// session order.
package design

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tacocloud/internal/ingredient"
	"tacocloud/internal/order"
	"tacocloud/internal/taco"
)

type Handler struct {
	provider *ingredient.Provider
	proposer *taco.Proposer
	orders   *order.Service
}

func NewHandler(provider *ingredient.Provider, proposer *taco.Proposer, orders *order.Service) *Handler {
	return &Handler{
		provider: provider,
		proposer: proposer,
		orders:   orders,
	}
}

// --------------------------------------------------
// GET /design
// --------------------------------------------------
func (h *Handler) Form(c *gin.Context) {
	catalog := h.provider.Catalog()

	resp := gin.H{
		"groups": ingredient.Groups(catalog),
		"order":  h.orders.Current(c.GetString(order.SessionKey)),
	}
	if suggestion, ok := h.proposer.Suggest(catalog); ok {
		resp["suggestion"] = suggestion.Draft()
	}

	c.JSON(http.StatusOK, resp)
}

// --------------------------------------------------
// GET /propose
// --------------------------------------------------
func (h *Handler) Propose(c *gin.Context) {
	c.JSON(http.StatusOK, h.proposer.Propose(h.provider.Catalog()))
}

// --------------------------------------------------
// POST /design
// --------------------------------------------------
func (h *Handler) Submit(c *gin.Context) {
	var draft taco.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	built, errs := taco.Build(h.provider.Catalog(), draft)
	if !errs.Empty() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}

	if err := h.orders.AddTaco(c.GetString(order.SessionKey), built); err != nil {
		if errors.Is(err, order.ErrDuplicateTaco) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add taco"})
		return
	}

	c.JSON(http.StatusCreated, built)
}
