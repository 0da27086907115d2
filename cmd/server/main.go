package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RyanColorado04/DjangoSandbox2/internal/config"
	"github.com/RyanColorado04/DjangoSandbox2/internal/handlers"
	"github.com/RyanColorado04/DjangoSandbox2/internal/store"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
)

func main() {
	// 1. Setup logging
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 2. Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// 3. Open database and run migrations
	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := db.Migrate(cfg.MigrationsDir); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// 4. Session store
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	// 5. Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load(cfg.TemplatesDir); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	authHandler := &handlers.AuthHandler{
		Store:        db,
		SessionStore: sessionStore,
		Templates:    templates,
	}
	catalogHandler := &handlers.CatalogHandler{
		Store:        db,
		Templates:    templates,
		SessionStore: sessionStore,
	}
	cartHandler := &handlers.CartHandler{
		Store:        db,
		Templates:    templates,
		SessionStore: sessionStore,
	}
	adminHandler := &handlers.AdminHandler{
		Store:        db,
		SessionStore: sessionStore,
		Templates:    templates,
	}

	if err := os.MkdirAll("static/uploads/products", 0o755); err != nil {
		slog.Error("Failed to create upload directory", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()

	// Static assets and product images
	fileServer := http.FileServer(http.Dir("./static"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	rateLimiter := handlers.NewRateLimiter(1 * time.Minute)

	// Public catalog
	mux.HandleFunc("/{$}", catalogHandler.ListProducts)
	mux.HandleFunc("GET /products", catalogHandler.ListProducts)
	mux.HandleFunc("GET /products/{id}", catalogHandler.ProductDetail)

	// Auth
	mux.HandleFunc("GET /login", authHandler.LoginGet)
	mux.HandleFunc("POST /login", rateLimiter.Middleware(authHandler.LoginPost))
	mux.HandleFunc("/logout", authHandler.Logout)

	// Cart and checkout, authenticated. Add and checkout take GET or POST.
	mux.HandleFunc("/cart/add/{id}", authHandler.RequireUser(cartHandler.AddToCart))
	mux.HandleFunc("GET /cart", authHandler.RequireUser(cartHandler.ViewCart))
	mux.HandleFunc("/checkout", authHandler.RequireUser(cartHandler.Checkout))

	// Admin
	mux.HandleFunc("/admin", authHandler.RequireAdmin(adminHandler.Dashboard))
	mux.HandleFunc("/admin/orders", authHandler.RequireAdmin(adminHandler.ListOrders))
	mux.HandleFunc("/admin/categories", authHandler.RequireAdmin(adminHandler.ListCategories))
	mux.HandleFunc("POST /admin/categories", authHandler.RequireAdmin(adminHandler.CreateCategory))
	mux.HandleFunc("POST /admin/categories/delete", authHandler.RequireAdmin(adminHandler.DeleteCategory))
	mux.HandleFunc("/admin/products", authHandler.RequireAdmin(adminHandler.ListProducts))
	mux.HandleFunc("/admin/products/new", authHandler.RequireAdmin(adminHandler.AddProductForm))
	mux.HandleFunc("POST /admin/products", authHandler.RequireAdmin(adminHandler.CreateProduct))
	mux.HandleFunc("/admin/products/edit", authHandler.RequireAdmin(adminHandler.EditProductForm))
	mux.HandleFunc("POST /admin/products/update", authHandler.RequireAdmin(adminHandler.UpdateProduct))
	mux.HandleFunc("POST /admin/products/delete", authHandler.RequireAdmin(adminHandler.DeleteProduct))

	// 6. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Chain: Logger -> Security Headers -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			CSRF(mux),
		),
	)

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
