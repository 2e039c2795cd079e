package main

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"tacocloud/internal/config"
	"tacocloud/internal/db"
	"tacocloud/internal/design"
	"tacocloud/internal/ingredient"
	"tacocloud/internal/logger"
	"tacocloud/internal/order"
	"tacocloud/internal/router"
	"tacocloud/internal/session"
	"tacocloud/internal/storage"
	"tacocloud/internal/taco"
)

func main() {
	// ───────────────────────── ENV ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.DefaultConfig()).Error("config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ───────────────────────── REPOS ─────────────────────────
	var (
		ingredientRepo ingredient.Repository
		orderRepo      order.Repository
	)

	seed := ingredient.DefaultIngredients()
	if cfg.CatalogFile != "" {
		seed, err = ingredient.LoadYAML(cfg.CatalogFile)
		if err != nil {
			log.Error("catalog file", "path", cfg.CatalogFile, "error", err)
			os.Exit(1)
		}
	}

	if cfg.DatabaseURL != "" {
		pgDB, err := db.Connect(ctx, cfg.DatabaseURL, log)
		if err != nil {
			log.Error("database", "error", err)
			os.Exit(1)
		}
		defer pgDB.Close()

		added, err := db.SeedIngredients(ctx, pgDB, seed)
		if err != nil {
			log.Error("seed ingredients", "error", err)
			os.Exit(1)
		}
		log.Info("ingredients seeded", "added", added)

		ingredientRepo = ingredient.NewPostgresRepository(pgDB)
		orderRepo = order.NewPostgresRepository(pgDB)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory storage")
		ingredientRepo = ingredient.NewInMemoryRepository(seed)
		orderRepo = order.NewInMemoryRepository()
	}

	// ───────────────────────── CATALOG ─────────────────────────
	provider, err := ingredient.NewProvider(ctx, ingredientRepo, log)
	if err != nil {
		log.Error("catalog", "error", err)
		os.Exit(1)
	}

	// ───────────────────────── STORAGE ─────────────────────────
	var receipts order.Storage
	if cfg.R2.Enabled() {
		r2Client, err := storage.NewR2Client(ctx, cfg.R2)
		if err != nil {
			log.Error("r2 init failed", "error", err)
			os.Exit(1)
		}
		receipts = r2Client
	} else {
		log.Info("receipt archive disabled")
	}

	// ───────────────────────── SESSIONS ─────────────────────────
	issuer, err := session.NewIssuer(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		log.Error("session issuer", "error", err)
		os.Exit(1)
	}
	sessions := session.NewStore(order.New, cfg.SessionTTL)
	go sweepSessions(ctx, sessions, cfg.SessionTTL/4, log)

	// ───────────────────────── SERVICES ─────────────────────────
	orderService := order.NewService(orderRepo, sessions, receipts, log)
	proposer := taco.NewProposer(rand.NewPCG(rand.Uint64(), rand.Uint64()))

	r := router.NewRouter(router.Deps{
		Log:         log,
		Issuer:      issuer,
		Ingredients: ingredient.NewHandler(provider),
		Design:      design.NewHandler(provider, proposer, orderService),
		Orders:      order.NewHandler(orderService),
		Sessions:    session.NewHandler(issuer),
		CORSOrigins: cfg.CORSOrigins,
	})

	// ───────────────────────── START ─────────────────────────
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("api running", "addr", cfg.Addr(), "ingredients", provider.Catalog().Len())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "error", err)
	}
	log.Info("api stopped")
}

func sweepSessions(ctx context.Context, sessions *session.Store[*order.Order], every time.Duration, log *logger.Logger) {
	if every < time.Minute {
		every = time.Minute
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Sweep(); n > 0 {
				log.Debug("expired sessions dropped", "count", n)
			}
		}
	}
}
