package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"amarthrift-backend/config"
	"amarthrift-backend/database"
	"amarthrift-backend/internal/api"
	"amarthrift-backend/internal/cart"
	"amarthrift-backend/internal/middleware"
	"amarthrift-backend/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	// Run database migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins, cfg.AllowAllOrigins))
	router.Use(middleware.SecurityMiddleware(&middleware.SecurityConfig{
		MaxRequestSize:    cfg.MaxFileSize * int64(cfg.MaxProductImages),
		RateLimitRequests: cfg.RateLimitRequests,
		RateLimitWindow:   cfg.RateLimitWindow,
	}))

	// Uploaded product images are served as static files
	router.Static("/uploads", cfg.UploadPath)

	// Initialize services
	activityService := services.NewActivityService(db)
	authService := services.NewAuthService(cfg.JWTSecret, cfg.JWTExpiration)
	userService := services.NewUserService(db)
	productService := services.NewProductService(db, activityService)
	feedService := services.NewFeedService(func(r *http.Request) bool {
		if cfg.AllowAllOrigins {
			return true
		}
		origin := r.Header.Get("Origin")
		for _, allowed := range cfg.AllowedOrigins {
			if origin == allowed {
				return true
			}
		}
		return false
	})
	orderService := services.NewOrderService(db, activityService, feedService,
		cfg.DeliveryChargeMetro, cfg.DeliveryChargeRemote)
	reviewService := services.NewReviewService(db, activityService)
	storageService := services.NewStorageService(cfg.UploadPath, cfg.MaxFileSize, cfg.AllowedFileTypes, cfg.MaxProductImages)
	googleService := services.NewGoogleService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	cartStore := cart.NewSQLStore(db)

	// Periodically drop expired entries from the token blacklist
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			authService.CleanupExpiredTokens()
		}
	}()

	// Initialize handlers
	authHandlers := api.NewAuthHandlers(userService, authService, googleService)
	productHandlers := api.NewProductHandlers(productService, storageService, activityService)
	cartHandlers := api.NewCartHandlers(cartStore, productService)
	orderHandlers := api.NewOrderHandlers(orderService, cartStore)
	reviewHandlers := api.NewReviewHandlers(reviewService)
	adminHandlers := api.NewAdminHandlers(activityService, orderService, feedService)
	metaHandlers := api.NewMetaHandlers(productService, cfg.StoreBaseURL)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	// Public surface
	router.GET("/health", metaHandlers.Health)
	router.GET("/sitemap.xml", metaHandlers.Sitemap)

	apiGroup := router.Group("/api/v1")
	{
		meta := apiGroup.Group("/meta")
		{
			meta.GET("/districts", metaHandlers.Districts)
			meta.GET("/categories", metaHandlers.Categories)
		}

		products := apiGroup.Group("/products")
		{
			products.GET("", productHandlers.List)
			products.GET("/:id", productHandlers.Get)
		}

		reviews := apiGroup.Group("/reviews")
		{
			reviews.GET("", reviewHandlers.List)
			reviews.POST("", reviewHandlers.Create)
		}

		orders := apiGroup.Group("/orders")
		{
			orders.POST("", orderHandlers.Create)
			orders.GET("/track", orderHandlers.Track)
		}

		cartGroup := apiGroup.Group("/cart")
		{
			cartGroup.GET("", cartHandlers.Get)
			cartGroup.DELETE("", cartHandlers.Clear)
			cartGroup.POST("/items", cartHandlers.AddItem)
			cartGroup.PUT("/items/:productId", cartHandlers.UpdateQuantity)
			cartGroup.DELETE("/items/:productId", cartHandlers.RemoveItem)
		}

		auth := apiGroup.Group("/auth")
		{
			auth.POST("/register", authHandlers.Register)
			auth.POST("/login", authHandlers.Login)
			auth.POST("/logout", authHandlers.Logout)
			auth.POST("/google", authHandlers.GoogleLogin)
			auth.GET("/me", authMiddleware.AuthRequired(), authHandlers.Me)
		}

		// Back-office surface
		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.AuthRequired(), authMiddleware.RequireStoreManager())
		{
			admin.GET("/orders", orderHandlers.List)
			admin.GET("/orders/:id", orderHandlers.Get)
			admin.PUT("/orders/:id", orderHandlers.Update)
			admin.DELETE("/orders/:id", orderHandlers.Delete)

			admin.POST("/products", productHandlers.Create)
			admin.PUT("/products/:id", productHandlers.Update)
			admin.DELETE("/products/:id", productHandlers.Delete)
			admin.POST("/products/:id/images", productHandlers.UploadImages)
			admin.DELETE("/products/:id/images", productHandlers.DeleteImage)
			admin.POST("/images", productHandlers.UploadStandalone)

			admin.DELETE("/reviews/:id", reviewHandlers.Delete)

			admin.GET("/activity", adminHandlers.Activity)
			admin.GET("/stats", adminHandlers.Stats)
			admin.GET("/ws", adminHandlers.OrderFeed)
		}
	}

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s (%s)", cfg.ServerPort(), cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
	log.Println("Server exited")
}
