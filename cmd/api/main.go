package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/ukmstimbara/inventaris-api/docs" // Swagger docs
	"github.com/ukmstimbara/inventaris-api/internal/config"
	"github.com/ukmstimbara/inventaris-api/internal/database"
	"github.com/ukmstimbara/inventaris-api/internal/handlers"
	"github.com/ukmstimbara/inventaris-api/internal/jobs"
	"github.com/ukmstimbara/inventaris-api/internal/middleware"
	"github.com/ukmstimbara/inventaris-api/internal/repository"
	"github.com/ukmstimbara/inventaris-api/internal/services"
	"github.com/ukmstimbara/inventaris-api/internal/storage"
	"github.com/ukmstimbara/inventaris-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title Inventaris API
// @version 1.0
// @description REST API for UKM equipment inventory and loan management

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Setup(cfg.Environment)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	if cfg.ResendAPIKey == "" || cfg.FromEmail == "" {
		logger.Warn("Email disabled: RESEND_API_KEY or FROM_EMAIL not set")
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	repos := repository.NewRepositories(db)

	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	svcs := services.NewServices(repos, worker, cfg)

	scheduleJobs(worker, svcs)

	h := handlers.NewHandlers(svcs, store)

	router := setupRouter(h, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	worker.Shutdown()
	logger.Info("Background worker stopped")

	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Uploaded photos are served directly
	router.Static("/uploads", cfg.StoragePath)

	v1 := router.Group("/api/v1")
	{
		router.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
		})

		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

		// Public routes
		v1.GET("/health", h.Health.Index)
		v1.GET("/settings/contact", h.Settings.Contact)

		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
		}

		// Protected routes
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			// Admin-only routes
			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/users", h.User.Index)
				admin.POST("/users", h.User.Create)
				admin.DELETE("/users/:id", h.User.Delete)
				admin.PUT("/users/:id/toggle_status", h.User.ToggleStatus)

				admin.POST("/barang", h.Barang.Create)
				admin.PUT("/barang/:id", h.Barang.Update)
				admin.POST("/barang/:id/photo", h.Barang.UploadPhoto)
				admin.DELETE("/barang/:id", h.Barang.Delete)

				admin.POST("/peminjaman/:id/approve", h.Peminjaman.Approve)
				admin.POST("/peminjaman/:id/reject", h.Peminjaman.Reject)

				admin.GET("/settings", h.Settings.Show)
				admin.PUT("/settings", h.Settings.Update)

				admin.GET("/audits", h.Audit.Index)
				admin.GET("/stats/dashboard", h.Stats.Dashboard)

				admin.GET("/exports/barang", h.Export.Barang)
				admin.GET("/exports/peminjaman", h.Export.Peminjaman)
			}

			// Profile routes (admin or the profile owner)
			protected.GET("/users/:id", middleware.RequireAdminOrOwner(), h.User.Show)
			protected.PUT("/users/:id", middleware.RequireAdminOrOwner(), h.User.Update)

			// Current user routes
			protected.PATCH("/users/change_password", h.User.ChangePassword)
			protected.POST("/users/profile_picture", h.User.UploadProfilePicture)

			// Inventory browsing (all members)
			protected.GET("/barang", h.Barang.Index)
			protected.GET("/barang/:id", h.Barang.Show)

			// Loan lifecycle
			protected.GET("/peminjaman", h.Peminjaman.Index)
			protected.POST("/peminjaman", h.Peminjaman.Create)
			protected.GET("/peminjaman/:id", h.Peminjaman.Show)
			protected.POST("/peminjaman/:id/return", h.Peminjaman.Return)
			protected.GET("/peminjaman/:id/receipt", h.Peminjaman.Receipt)

			// Notifications. Static route first so "mark_all_as_read" is not
			// matched as :id.
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", h.Notification.Index)
				notifications.POST("/mark_all_as_read", h.Notification.MarkAllAsRead)
				notifications.POST("/:id/mark_as_read", h.Notification.MarkAsRead)
			}
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services) {
	// Overdue loan notifications every hour
	worker.ScheduleEvery(1*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Checking overdue loans...")
		return svcs.Peminjaman.CheckOverdueLoans(ctx)
	})

	// Keep the audit trail inside its cap even if a trim was missed
	worker.ScheduleEvery(24*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Trimming audit trail...")
		return svcs.Audit.Trim(ctx)
	})

	logger.Info("Scheduled recurring jobs")
}
