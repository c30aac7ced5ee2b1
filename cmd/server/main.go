package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"appforge/internal/cache"
	"appforge/internal/config"
	"appforge/internal/handler"
	"appforge/internal/httputil"
	"appforge/internal/i18n"
	"appforge/internal/idgen"
	"appforge/internal/middleware"
	"appforge/internal/repository/postgres"
	"appforge/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Message catalogs (en, zh)
	translator, err := i18n.New()
	if err != nil {
		log.Fatalf("Failed to load message catalogs: %v", err)
	}

	// Id generation
	idGen, err := idgen.New()
	if err != nil {
		log.Fatalf("Failed to create id generator: %v", err)
	}

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	workspaceRepo := postgres.NewWorkspaceRepository(repoConfig)
	folderRepo := postgres.NewFolderRepository(repoConfig)
	tagRepo := postgres.NewTagRepository(repoConfig)
	appRepo := postgres.NewAppRepository(repoConfig)
	userRepo := postgres.NewUserRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	// Per-user workspace selection cache
	workspaceCache := cache.NewWorkspaceCache()

	// Create services. Workspace creation dispatches to registered
	// subscribers inside the same transaction.
	folderService := service.NewFolderService(folderRepo, txManager, idGen, logger)

	registry := service.NewSubscriberRegistry(logger)
	registry.Register(service.NewFolderBootstrap(folderService, func(ctx context.Context) string {
		return translator.Message(httputil.LangFromContext(ctx), "default_folder_name")
	}))

	workspaceService := service.NewWorkspaceService(
		workspaceRepo,
		txManager,
		registry,
		workspaceCache,
		idGen,
		func(ctx context.Context) string {
			return translator.Message(httputil.LangFromContext(ctx), "default_workspace_name")
		},
		logger,
	)
	tagService := service.NewTagService(tagRepo, appRepo, txManager, idGen, logger)
	appService := service.NewAppService(appRepo, folderRepo, txManager, idGen, logger)
	userService := service.NewUserService(userRepo, idGen, cfg.JWTSecret, cfg.JWTTTL, logger)

	// Create handlers
	responder := httputil.NewResponder(translator, logger)
	workspaceHandler := handler.NewWorkspaceHandler(workspaceService, responder, logger)
	folderHandler := handler.NewFolderHandler(folderService, responder, logger)
	tagHandler := handler.NewTagHandler(tagService, responder, logger)
	appHandler := handler.NewAppHandler(appService, responder, logger)
	userHandler := handler.NewUserHandler(userService, responder, logger)
	healthHandler := handler.NewHealthHandler(pool, responder)

	auth := middleware.NewAuth(workspaceService, responder, cfg.JWTSecret)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", healthHandler.Check)

	// Public user routes
	mux.HandleFunc("POST /api/users/sign-up", userHandler.SignUp)
	mux.HandleFunc("POST /api/users/sign-in", userHandler.SignIn)
	mux.HandleFunc("GET /api/users", auth.Wrap(userHandler.List))

	// Workspace routes
	mux.HandleFunc("GET /api/workspaces", auth.Wrap(workspaceHandler.List))
	mux.HandleFunc("POST /api/workspaces", auth.Wrap(workspaceHandler.Create))
	mux.HandleFunc("PUT /api/workspaces/{id}", auth.Wrap(workspaceHandler.Update))
	mux.HandleFunc("DELETE /api/workspaces/{id}", auth.Wrap(workspaceHandler.Delete))
	mux.HandleFunc("PUT /api/workspaces/{id}/current", auth.Wrap(workspaceHandler.Switch))

	// Folder routes
	mux.HandleFunc("GET /api/folders/{folderType}", auth.Wrap(folderHandler.GetTree))
	mux.HandleFunc("POST /api/folders/{folderType}", auth.Wrap(folderHandler.Create))
	mux.HandleFunc("PUT /api/folders/{folderType}/{id}", auth.Wrap(folderHandler.Rename))
	mux.HandleFunc("DELETE /api/folders/{folderType}/{id}", auth.Wrap(folderHandler.Delete))
	mux.HandleFunc("PUT /api/folders/{folderType}/{id}/move", auth.Wrap(folderHandler.Move))

	// Tag routes
	mux.HandleFunc("GET /api/tags/{tagType}", auth.Wrap(tagHandler.List))
	mux.HandleFunc("POST /api/tags/{tagType}", auth.Wrap(tagHandler.Create))
	mux.HandleFunc("PUT /api/tags/{tagType}/{id}", auth.Wrap(tagHandler.Update))
	mux.HandleFunc("DELETE /api/tags/{tagType}/{id}", auth.Wrap(tagHandler.Delete))

	// App routes
	mux.HandleFunc("GET /api/apps", auth.Wrap(appHandler.List))
	mux.HandleFunc("POST /api/apps", auth.Wrap(appHandler.Create))
	mux.HandleFunc("PUT /api/apps/{id}", auth.Wrap(appHandler.Update))
	mux.HandleFunc("DELETE /api/apps/{id}", auth.Wrap(appHandler.Delete))
	mux.HandleFunc("GET /api/apps/{id}/draft", auth.Wrap(appHandler.GetDraft))
	mux.HandleFunc("PUT /api/apps/{id}/draft", auth.Wrap(appHandler.UpdateDraft))
	mux.HandleFunc("POST /api/apps/{id}/clone", auth.Wrap(appHandler.Clone))
	mux.HandleFunc("POST /api/apps/{id}/release", auth.Wrap(appHandler.Release))
	mux.HandleFunc("PUT /api/apps/{id}/tags", auth.Wrap(appHandler.UpdateTags))

	// Build middleware chain. Fallback gives unmatched routes and wrong
	// methods an enveloped 404/405 instead of the mux's plain text.
	var root http.Handler = middleware.Fallback(mux, responder)

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → RequestID → Locale → Routes
	root = middleware.Locale()(root)
	root = middleware.RequestID()(root)
	root = middleware.Recovery(responder, logger)(root)

	// CORS - Must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization", "X-Tenant-ID", "X-User-ID", "X-Request-ID"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server; shut down cleanly on SIGINT/SIGTERM
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}
}
