package ingredient

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Group is one category of the catalog as shown on the design form.
type Group struct {
	Category    Category     `json:"category"`
	Mandatory   bool         `json:"mandatory"`
	Exclusive   bool         `json:"exclusive"`
	Ingredients []Ingredient `json:"ingredients"`
}

// Groups lists the present categories in declaration order with their
// ingredients sorted by name.
func Groups(c *Catalog) []Group {
	cats := c.Categories()
	out := make([]Group, 0, len(cats))
	for _, cat := range cats {
		out = append(out, Group{
			Category:    cat,
			Mandatory:   cat.Mandatory(),
			Exclusive:   cat.Exclusive(),
			Ingredients: c.ByCategory(cat),
		})
	}
	return out
}

type Handler struct {
	provider *Provider
}

func NewHandler(provider *Provider) *Handler {
	return &Handler{provider: provider}
}

// --------------------------------------------------
// GET /ingredients
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"groups": Groups(h.provider.Catalog()),
	})
}

// --------------------------------------------------
// GET /ingredients/:id
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	item, ok := h.provider.Catalog().Lookup(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrNotFound.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}

// --------------------------------------------------
// ADMIN: POST /admin/ingredients
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	var req struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Category string `json:"category"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	category, err := ParseCategory(req.Category)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := New(req.ID, req.Name, category)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.provider.Repository().Save(c.Request.Context(), item); err != nil {
		if errors.Is(err, ErrDuplicateID) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save ingredient"})
		return
	}

	// the catalog only changes on reload
	c.JSON(http.StatusCreated, item)
}

// --------------------------------------------------
// ADMIN: POST /admin/catalog/reload
// --------------------------------------------------
func (h *Handler) Reload(c *gin.Context) {
	catalog, err := h.provider.Reload(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "catalog reloaded",
		"ingredients": catalog.Len(),
	})
}
