package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tacocloud/internal/design"
	"tacocloud/internal/ingredient"
	"tacocloud/internal/logger"
	"tacocloud/internal/middleware"
	"tacocloud/internal/order"
	"tacocloud/internal/session"
)

// Deps is everything the HTTP layer needs.
type Deps struct {
	Log         *logger.Logger
	Issuer      *session.Issuer
	Ingredients *ingredient.Handler
	Design      *design.Handler
	Orders      *order.Handler
	Sessions    *session.Handler
	CORSOrigins []string
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(d.Log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     d.CORSOrigins,
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── PUBLIC ─────────────────────────
	r.POST("/session", d.Sessions.Start)
	r.GET("/ingredients", d.Ingredients.List)
	r.GET("/ingredients/:id", d.Ingredients.Get)
	r.GET("/propose", d.Design.Propose)

	// ───────────────────────── SESSION ROUTES ─────────────────────────
	customer := r.Group("/")
	customer.Use(
		middleware.SessionAuth(d.Issuer),
		middleware.RequireRole(session.RoleCustomer, session.RoleAdmin),
	)
	{
		customer.GET("/design", d.Design.Form)
		customer.POST("/design", d.Design.Submit)
		customer.GET("/orders/current", d.Orders.Current)
		customer.POST("/orders", d.Orders.Submit)
	}

	// ───────────────────────── ADMIN ROUTES ─────────────────────────
	admin := r.Group("/admin")
	admin.Use(
		middleware.SessionAuth(d.Issuer),
		middleware.RequireRole(session.RoleAdmin),
	)
	{
		admin.POST("/ingredients", d.Ingredients.Create)
		admin.POST("/catalog/reload", d.Ingredients.Reload)
		admin.GET("/orders/:id", d.Orders.Get)
	}

	return r
}
