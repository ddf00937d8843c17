package main

import (
	"log"
	"time"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"

	"github.com/unity-hallie/freezer-backend/internal/config"
	"github.com/unity-hallie/freezer-backend/internal/constants"
	"github.com/unity-hallie/freezer-backend/internal/database"
	"github.com/unity-hallie/freezer-backend/internal/email"
	"github.com/unity-hallie/freezer-backend/internal/handlers"
	"github.com/unity-hallie/freezer-backend/internal/logging"
	"github.com/unity-hallie/freezer-backend/internal/middleware"
	"github.com/unity-hallie/freezer-backend/internal/repository"
	"github.com/unity-hallie/freezer-backend/internal/services"
	"github.com/unity-hallie/freezer-backend/internal/shopping"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		logger.Warn("failed to add indexes", "error", err)
	}

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	householdRepo := repository.NewHouseholdRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	itemRepo := repository.NewItemRepository(db)

	// Email client (best effort when unconfigured)
	mailer := email.NewClient(cfg.PostmarkToken, cfg.FromEmail, cfg.AppBaseURL)

	// Services
	authService := services.NewAuthService(userRepo, mailer, logger)
	householdService := services.NewHouseholdService(householdRepo, userRepo, mailer, logger)
	locationService := services.NewLocationService(locationRepo, logger)
	itemService := services.NewItemService(itemRepo, locationRepo, householdRepo, logger)

	// Shopping list parser: the model-backed parser when a key is present,
	// rule-based fallback otherwise.
	var parser shopping.Parser
	if cfg.OpenAIAPIKey != "" {
		parser = shopping.NewOpenAIParser(cfg.OpenAIAPIKey)
	}
	parseCache := shopping.NewCache(5*time.Minute, constants.ParseCacheMaxEntries)
	ingestionService := services.NewIngestionService(parser, parseCache, householdRepo, itemService, logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	householdHandler := handlers.NewHouseholdHandler(householdService, locationService)
	locationHandler := handlers.NewLocationHandler(locationService, itemService)
	itemHandler := handlers.NewItemHandler(itemService)
	ingestionHandler := handlers.NewIngestionHandler(ingestionService)

	// Rate limiting
	limiter := middleware.NewRateLimiter()
	go func() {
		for range time.Tick(5 * time.Minute) {
			limiter.Cleanup()
		}
	}()

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,
		"tcp",
		redisAddr,
		"",
		"",
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Health check endpoint
	r.GET("/health", handlers.HealthCheck)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register",
				middleware.RateLimitByIP(limiter, "register", 3, time.Minute),
				authHandler.Register)
			auth.POST("/login",
				middleware.RateLimitByIP(limiter, "login", 10, time.Minute),
				authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.Me)
			auth.POST("/verify-email", authHandler.VerifyEmail)
			auth.POST("/password-reset/request",
				middleware.RateLimitByIP(limiter, "reset", 5, time.Hour),
				authHandler.RequestPasswordReset)
			auth.POST("/password-reset/confirm", authHandler.ResetPassword)
		}

		// Household routes (protected)
		households := api.Group("/households")
		households.Use(middleware.RequireAuth())
		{
			households.POST("", householdHandler.Create)
			households.GET("", householdHandler.List)
			households.POST("/join", householdHandler.Join)
			households.GET("/:id", middleware.RequireHouseholdAccess(), householdHandler.Get)
			households.PATCH("/:id", middleware.RequireHouseholdAccess(), middleware.RequireHouseholdOwner(), householdHandler.Update)
			households.POST("/:id/leave", householdHandler.Leave)
			households.POST("/:id/invite",
				middleware.RateLimitByUser(limiter, "invite", 10, time.Hour),
				householdHandler.Invite)
			households.GET("/:id/locations", middleware.RequireHouseholdAccess(), householdHandler.ListLocations)
			households.POST("/:id/locations", middleware.RequireHouseholdAccess(), householdHandler.CreateLocation)
		}

		// Location routes (protected)
		locations := api.Group("/locations")
		locations.Use(middleware.RequireAuth())
		{
			locations.GET("", locationHandler.List)
			locations.GET("/:id", middleware.RequireLocationAccess(), locationHandler.Get)
			locations.PATCH("/:id", middleware.RequireLocationAccess(), locationHandler.Update)
			locations.DELETE("/:id", middleware.RequireLocationAccess(), locationHandler.Delete)
			locations.GET("/:id/items", middleware.RequireLocationAccess(), locationHandler.ListItems)
			locations.POST("/:id/items", middleware.RequireLocationAccess(), locationHandler.CreateItem)
		}

		// Item routes (protected)
		items := api.Group("/items")
		items.Use(middleware.RequireAuth())
		{
			items.GET("", itemHandler.List)
			items.POST("/by-location-name", itemHandler.CreateByLocationName)
			items.GET("/:id", middleware.RequireItemAccess(), itemHandler.Get)
			items.PATCH("/:id", middleware.RequireItemAccess(), itemHandler.Update)
			items.DELETE("/:id", middleware.RequireItemAccess(), itemHandler.Delete)
		}

		// Shopping list ingestion (protected, metered)
		shoppingRoutes := api.Group("/shopping")
		shoppingRoutes.Use(middleware.RequireAuth())
		{
			shoppingRoutes.POST("/ingest",
				middleware.RateLimitByUser(limiter, "ingest", 5, time.Minute),
				ingestionHandler.Ingest)
		}
	}

	// Start server
	logger.Info("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
