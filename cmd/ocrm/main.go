// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/ocrm-go/internal/bus"
	"github.com/olegiv/ocrm-go/internal/catalog"
	"github.com/olegiv/ocrm-go/internal/config"
	"github.com/olegiv/ocrm-go/internal/handler"
	"github.com/olegiv/ocrm-go/internal/kv"
	"github.com/olegiv/ocrm-go/internal/logging"
	"github.com/olegiv/ocrm-go/internal/middleware"
	"github.com/olegiv/ocrm-go/internal/model"
	"github.com/olegiv/ocrm-go/internal/scheduler"
	"github.com/olegiv/ocrm-go/internal/session"
	"github.com/olegiv/ocrm-go/internal/store"
	"github.com/olegiv/ocrm-go/internal/version"
	"github.com/olegiv/ocrm-go/internal/view"
)

// registerCRUD registers standard CRUD routes for a resource.
// Routes: GET /, POST /, GET /{id}, PUT /{id}, PATCH /{id}, DELETE /{id}
func registerCRUD(r chi.Router, base string, list, create, get, update, del http.HandlerFunc) {
	r.Get(base, list)
	r.Post(base, create)
	r.Get(base+"/{id}", get)
	r.Put(base+"/{id}", update)
	r.Patch(base+"/{id}", update)
	r.Delete(base+"/{id}", del)
}

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "oCRM - Open Customer Relationship Management\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OCRM_SESSION_SECRET    Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OCRM_DB_PATH           SQLite database path (default: ./data/ocrm.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OCRM_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OCRM_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OCRM_REDIS_URL         Redis URL for cross-instance sync (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OCRM_CATALOG_URL       External product catalog endpoint (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "\nFor more information, see: https://github.com/olegiv/ocrm-go\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("ocrm %s (commit: %s, built: %s)\n",
			version.Version, version.GitCommit, version.BuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Initialize storage engine
	slog.Info("initializing database", "path", cfg.DBPath)
	engine, err := kv.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func() {
		if err := engine.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}()
	slog.Info("database ready")

	st := store.New(engine)

	// Upgrade logger to also mirror WARN and ERROR logs into the audit log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewAuditHandler(textHandler, st))
	slog.SetDefault(logger)
	slog.Info("audit log integration enabled", "min_level", "warn")

	// Change notifier: in-process only, or Redis-backed across instances
	var notifier bus.Notifier = bus.NewLocal()
	if cfg.UseRedisBus() {
		redisBus, err := bus.NewRedis(bus.RedisOptions{URL: cfg.RedisURL})
		if err != nil {
			return fmt.Errorf("connecting change notifier: %w", err)
		}
		defer func() {
			if err := redisBus.Close(); err != nil {
				slog.Error("error closing change notifier", "error", err)
			}
		}()
		notifier = redisBus
		slog.Info("cross-instance change notification enabled", "url", cfg.RedisURL)
	}

	bindings := view.New(st, notifier)

	// Session manager on the shared SQLite database
	sessionManager := session.New(engine.DB(), cfg.IsDevelopment())
	slog.Info("session manager initialized")

	// Login protection
	loginProtection := middleware.NewLoginProtection()
	slog.Info("login protection initialized",
		"ip_rate_limit", "0.5 req/s",
		"max_failed_attempts", 5,
		"lockout_duration", "15m",
	)

	// Scheduled maintenance
	sched := scheduler.New(logger)
	retention := time.Duration(cfg.EventRetentionDays) * 24 * time.Hour
	if err := sched.Add("prune-events", "30 3 * * *", scheduler.PruneEvents(bindings, retention)); err != nil {
		return fmt.Errorf("scheduling event pruning: %w", err)
	}
	staleAfter := time.Duration(cfg.CartStaleDays) * 24 * time.Hour
	if err := sched.Add("clear-stale-cart", "45 3 * * *", scheduler.ClearStaleCart(bindings, staleAfter)); err != nil {
		return fmt.Errorf("scheduling cart cleanup: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	// Handlers
	authHandler := handler.NewAuthHandler(sessionManager, bindings.Team, st.CurrentUser, loginProtection)
	contactHandler := handler.NewResource(bindings.Contacts)
	invoiceHandler := handler.NewInvoiceHandler(bindings.Invoices)
	teamHandler := handler.NewResource(bindings.Team)
	productHandler := handler.NewProductHandler(bindings.Products)
	cartHandler := handler.NewCartHandler(bindings.Cart, bindings.Invoices, st.LastOrder)
	dashboardHandler := handler.NewDashboardHandler(bindings)
	themeHandler := handler.NewThemeHandler(st.Theme)
	eventHandler := handler.NewEventHandler(bindings.Events)

	// Router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(sessionManager.LoadAndSave)

	csrfMiddleware := middleware.CSRF([]byte(cfg.SessionSecret), cfg.IsDevelopment(), cfg.ServerPort)
	slog.Info("CSRF protection initialized", "secure", !cfg.IsDevelopment())

	r.Get("/health", handler.Health)

	// Public storefront routes
	r.Group(func(r chi.Router) {
		r.Use(csrfMiddleware)

		r.Get("/api/products", productHandler.List)
		r.Get("/api/products/{id}", productHandler.Get)
		r.Get("/api/theme", themeHandler.Get)
		r.Put("/api/theme", themeHandler.Put)

		r.Get("/api/cart", cartHandler.List)
		r.Post("/api/cart", cartHandler.Add)
		r.Delete("/api/cart/{id}", cartHandler.Remove)
		r.Post("/api/checkout", cartHandler.Checkout)
		r.Get("/api/orders/last", cartHandler.LastOrder)

		if cfg.CatalogURL != "" {
			catalogHandler := handler.NewCatalogHandler(catalog.NewClient(cfg.CatalogURL))
			r.Get("/api/catalog", catalogHandler.List)
			slog.Info("remote catalog enabled", "url", cfg.CatalogURL)
		}
	})

	// Auth routes
	r.Group(func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.With(loginProtection.Middleware()).Post("/api/login", authHandler.Login)
		r.Post("/api/logout", authHandler.Logout)
	})

	// Admin routes (authenticated)
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Use(middleware.Auth(sessionManager))
		r.Use(middleware.LoadUser(sessionManager, bindings.Team))

		r.Get("/me", authHandler.Me)
		r.Get("/dashboard", dashboardHandler.Stats)

		registerCRUD(r, "/contacts", contactHandler.List, contactHandler.Create,
			contactHandler.Get, contactHandler.Update, contactHandler.Delete)
		registerCRUD(r, "/invoices", invoiceHandler.List, invoiceHandler.Create,
			invoiceHandler.Get, invoiceHandler.Update, invoiceHandler.Delete)
		registerCRUD(r, "/products", productHandler.List, productHandler.Create,
			productHandler.Get, productHandler.Update, productHandler.Delete)

		// Admin-only routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin())

			registerCRUD(r, "/team", teamHandler.List, teamHandler.Create,
				teamHandler.Get, teamHandler.Update, teamHandler.Delete)
			r.Get("/events", eventHandler.List)
		})
	})

	// Touch the team collection so first-start seeding happens now rather
	// than on the first login attempt
	if len(bindings.Team.Load(context.Background())) == 0 {
		slog.Warn("team collection is empty after seeding", "category", model.EventCategorySystem)
	} else {
		slog.Info("default admin available", "email", store.DefaultAdminEmail)
	}

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
