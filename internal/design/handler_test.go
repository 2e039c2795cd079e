package design

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"tacocloud/internal/ingredient"
	"tacocloud/internal/logger"
	"tacocloud/internal/order"
	"tacocloud/internal/session"
	"tacocloud/internal/taco"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *order.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	provider, err := ingredient.NewProvider(
		context.Background(),
		ingredient.NewInMemoryRepository(ingredient.DefaultIngredients()),
		logger.Discard(),
	)
	if err != nil {
		t.Fatalf("provider: %v", err)
	}

	orders := order.NewService(
		order.NewInMemoryRepository(),
		session.NewStore(order.New, time.Hour),
		nil,
		logger.Discard(),
	)
	h := NewHandler(provider, taco.NewProposer(rand.NewPCG(1, 2)), orders)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(order.SessionKey, "test-session")
		c.Next()
	})
	r.GET("/design", h.Form)
	r.GET("/propose", h.Propose)
	r.POST("/design", h.Submit)
	return r, orders
}

func postDraft(r *gin.Engine, d taco.Draft) *httptest.ResponseRecorder {
	body, _ := json.Marshal(d)
	req := httptest.NewRequest(http.MethodPost, "/design", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFormHasGroupsAndSuggestion(t *testing.T) {
	r, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/design", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var body struct {
		Groups     []json.RawMessage `json:"groups"`
		Suggestion *taco.Draft       `json:"suggestion"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Groups) != 5 {
		t.Fatalf("expected 5 groups, got %d", len(body.Groups))
	}
	if body.Suggestion == nil || len(body.Suggestion.Ingredients) == 0 {
		t.Fatalf("expected a suggestion, got %s", w.Body.String())
	}
}

func TestProposeIsAcceptedByDesign(t *testing.T) {
	r, orders := setupTestRouter(t)

	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/propose", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}

		var proposed taco.Taco
		if err := json.Unmarshal(w.Body.Bytes(), &proposed); err != nil {
			t.Fatalf("decode: %v", err)
		}

		w = postDraft(r, proposed.Draft())
		if w.Code != http.StatusCreated && w.Code != http.StatusConflict {
			t.Fatalf("proposed taco rejected: %d %s", w.Code, w.Body.String())
		}
	}

	if len(orders.Current("test-session")) == 0 {
		t.Fatalf("expected proposed tacos in the order")
	}
}

func TestSubmitValidationAndDuplicate(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := postDraft(r, taco.Draft{Name: "Tiny", Ingredients: []string{"GRBF", "SLSA", "SRCR"}})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", w.Code)
	}

	var body struct {
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Errors) != 2 {
		t.Fatalf("expected name and ingredient errors, got %+v", body.Errors)
	}
	if body.Errors[1].Message != "Select at least one wrap & Select at most one sauce" {
		t.Fatalf("unexpected composition message %q", body.Errors[1].Message)
	}

	good := taco.Draft{Name: "Carnitas night", Ingredients: []string{"carn", "COTO", "SLSA"}}
	if w := postDraft(r, good); w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d (%s)", w.Code, w.Body.String())
	}
	if w := postDraft(r, good); w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", w.Code)
	}
}
