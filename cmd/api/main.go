package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dealtrack/dealtrack_api/internal/cache"
	"github.com/dealtrack/dealtrack_api/internal/config"
	"github.com/dealtrack/dealtrack_api/internal/database"
	"github.com/dealtrack/dealtrack_api/internal/handler"
	"github.com/dealtrack/dealtrack_api/internal/marketplace"
	"github.com/dealtrack/dealtrack_api/internal/matcher"
	"github.com/dealtrack/dealtrack_api/internal/middleware"
	"github.com/dealtrack/dealtrack_api/internal/repository"
	"github.com/dealtrack/dealtrack_api/internal/service"
	"github.com/dealtrack/dealtrack_api/internal/sse"
	"github.com/dealtrack/dealtrack_api/internal/throttle"
	"github.com/dealtrack/dealtrack_api/internal/utils"
	"github.com/dealtrack/dealtrack_api/internal/worker"
	"github.com/dealtrack/dealtrack_api/pkg/amazon"
	"github.com/dealtrack/dealtrack_api/pkg/ebay"
	"github.com/dealtrack/dealtrack_api/pkg/simscore"
	"github.com/dealtrack/dealtrack_api/pkg/walmart"
)

// main is the application entrypoint for the DealTrack API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting dealtrack api")

	utils.InitJWT(cfg.JWTSecret)

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	priceCache := cache.NewPriceCache(redisClient)

	// 4. Initialize marketplace adapters, one throttle gate per platform
	amazonAdapter := marketplace.NewAmazonAdapter(
		amazon.NewClient(cfg.RapidAPI.AmazonKey),
		throttle.NewGate(cfg.Worker.AmazonDelay),
	)
	ebayAdapter := marketplace.NewEbayAdapter(
		ebay.NewClient(cfg.RapidAPI.EbayKey),
		throttle.NewGate(cfg.Worker.EbayDelay),
	)
	walmartAdapter := marketplace.NewWalmartAdapter(
		walmart.NewClient(cfg.RapidAPI.WalmartKey),
		throttle.NewGate(cfg.Worker.WalmartDelay),
	)

	// Marketplaces without an API key are left out of the pipelines.
	secondaries := []marketplace.Adapter{}
	if cfg.RapidAPI.EbayKey != "" {
		secondaries = append(secondaries, ebayAdapter)
	} else {
		log.Warn().Msg("eBay API key not configured, platform disabled")
	}
	if cfg.RapidAPI.WalmartKey != "" {
		secondaries = append(secondaries, walmartAdapter)
	} else {
		log.Warn().Msg("Walmart API key not configured, platform disabled")
	}
	allAdapters := append([]marketplace.Adapter{amazonAdapter}, secondaries...)

	// 4a. Pick the similarity scorer: external oracle when configured,
	// local heuristic otherwise. The oracle gets its own throttle gate like
	// the marketplace clients.
	var scorer matcher.Scorer = matcher.NewHeuristicScorer()
	if cfg.Similarity.BaseURL != "" {
		scorer = matcher.NewThrottledScorer(
			simscore.NewClient(cfg.Similarity.BaseURL, cfg.Similarity.APIKey, cfg.Similarity.Timeout),
			throttle.NewGate(cfg.Similarity.Delay),
		)
		log.Info().Str("base_url", cfg.Similarity.BaseURL).Msg("using external similarity service")
	}
	productMatcher := matcher.New(scorer)

	// 5. Initialize repositories
	productRepo := repository.NewProductRepo(db)
	offerRepo := repository.NewOfferRepo(db)
	wishlistRepo := repository.NewWishlistRepo(db)
	userRepo := repository.NewUserRepo(db)
	historyRepo := repository.NewHistoryRepo(db)

	// 5a. SSE hub for alert pushes
	hub := sse.NewHub()
	notifier := sse.NewNotifier(hub)

	// 6. Initialize services
	authSvc := service.NewAuthService(userRepo)
	productSvc := service.NewProductService(productRepo)
	priceSvc := service.NewPriceService(offerRepo, priceCache)
	wishlistSvc := service.NewWishlistService(wishlistRepo, productRepo)
	historySvc := service.NewHistoryService(historyRepo, productRepo)
	alertSvc := service.NewAlertService(wishlistRepo, notifier, cfg.Worker.AlertDedupeWindow)
	importSvc := service.NewImportService(amazonAdapter, secondaries, productMatcher, productRepo, offerRepo)
	refreshSvc := service.NewRefreshService(allAdapters, offerRepo, priceCache)
	syncSvc := service.NewPriceSyncService(productRepo, offerRepo, priceCache)

	// 7. Initialize handlers
	handlers := &Handlers{
		Health:   handler.NewHealthHandler(db),
		Auth:     handler.NewAuthHandler(authSvc),
		Product:  handler.NewProductHandler(productSvc),
		Price:    handler.NewPriceHandler(priceSvc),
		Wishlist: handler.NewWishlistHandler(wishlistSvc, alertSvc, hub),
		History:  handler.NewHistoryHandler(historySvc),
		Admin:    handler.NewAdminHandler(importSvc, refreshSvc, syncSvc, alertSvc),
	}

	// 8. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers)

	// 9. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 10. Start the nightly update worker
	updateWorker, err := worker.NewUpdateWorker(refreshSvc, syncSvc, alertSvc, cfg.Worker.UpdateTime, cfg.Worker.Timezone)
	if err != nil {
		log.Error().Err(err).Msg("update worker initialization failed")
		fmt.Fprintf(os.Stderr, "update worker initialization failed: %v\n", err)
		os.Exit(1)
	}
	go updateWorker.Start(ctx)

	// 11. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 12. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 13. Cancel context to stop the worker
	cancel()

	// 14. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health   *handler.HealthHandler
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Price    *handler.PriceHandler
	Wishlist *handler.WishlistHandler
	History  *handler.HistoryHandler
	Admin    *handler.AdminHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers) {
	router.GET("/health", handlers.Health.Check)

	api := router.Group("/api")

	// Public routes
	api.POST("/auth/register", handlers.Auth.Register)
	api.POST("/auth/login", handlers.Auth.Login)

	api.GET("/products", handlers.Product.List)
	api.GET("/products/categories", handlers.Product.Categories)
	api.GET("/products/:pid", handlers.Product.Get)
	api.GET("/products/:pid/prices", handlers.Price.Latest)
	api.GET("/products/:pid/history", handlers.Price.History)

	// Authenticated routes
	authed := api.Group("")
	authed.Use(middleware.JWTMiddleware())
	{
		authed.GET("/wishlist", handlers.Wishlist.List)
		authed.POST("/wishlist", handlers.Wishlist.Add)
		authed.DELETE("/wishlist/:pid", handlers.Wishlist.Remove)
		authed.GET("/wishlist/alerts", handlers.Wishlist.Alerts)
		authed.GET("/wishlist/alerts/stream", handlers.Wishlist.Stream)
		authed.POST("/wishlist/:pid/ack", handlers.Wishlist.Acknowledge)

		authed.GET("/history", handlers.History.List)
		authed.POST("/history", handlers.History.Record)
		authed.DELETE("/history", handlers.History.Clear)
	}

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.JWTMiddleware(), middleware.AdminMiddleware())
	{
		admin.POST("/import", handlers.Admin.Import)
		admin.POST("/refresh-prices", handlers.Admin.RefreshPrices)
		admin.POST("/sync-prices", handlers.Admin.SyncPrices)
		admin.POST("/reset-alerts", handlers.Admin.ResetAlerts)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	// Run migrations
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
