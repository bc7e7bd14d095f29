package routes

import (
	"net/http"

	"container-tracker/internal/config"
	"container-tracker/internal/database"
	"container-tracker/internal/delivery/http/handler"
	"container-tracker/internal/delivery/ws"
	"container-tracker/internal/infrastructure/database/postgres"
	"container-tracker/internal/ingestion"
	"container-tracker/internal/logger"
	"container-tracker/internal/middleware"
	alertUsecase "container-tracker/internal/usecase/alert"
	containerUsecase "container-tracker/internal/usecase/container"
	deviceUsecase "container-tracker/internal/usecase/device"
	telemetryUsecase "container-tracker/internal/usecase/telemetry"
	transferUsecase "container-tracker/internal/usecase/transfer"
	voyageUsecase "container-tracker/internal/usecase/voyage"

	"github.com/gin-gonic/gin"
)

// SetupRoutes builds the gin engine and wires repositories, the ingestion
// pipeline, and the websocket hub. The returned hub is already running.
func SetupRoutes(cfg *config.Config, db *database.Database) (*gin.Engine, *ingestion.Pipeline, *ws.Hub) {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware order: recovery, request ID, logging, security headers,
	// CORS, request size limit, rate limit.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(10 << 20))
	if cfg.RateLimit.GeneralRPS > 0 {
		router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))
	}

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	containerRepo := postgres.NewContainerRepository(db)
	deviceRepo := postgres.NewDeviceRepository(db)
	voyageRepo := postgres.NewVoyageRepository(db)
	alertRepo := postgres.NewAlertRepository(db)
	transferRepo := postgres.NewTransferRepository(db)
	telemetryStore := ingestion.NewRepository(db)

	hub := ws.NewHub()
	go hub.Run()

	alertEngine := ingestion.NewAlertEngine(containerRepo, alertRepo)
	pipeline := ingestion.NewPipeline(telemetryStore, alertEngine, hub,
		cfg.Ingest.BatchTimeout, cfg.Ingest.MaxBatchSize)

	containerService := containerUsecase.NewService(containerRepo)
	deviceService := deviceUsecase.NewService(deviceRepo, containerRepo, pipeline)
	voyageService := voyageUsecase.NewService(voyageRepo)
	alertService := alertUsecase.NewService(alertRepo)
	transferService := transferUsecase.NewService(transferRepo, pipeline)
	telemetryService := telemetryUsecase.NewService(pipeline)

	containerHandler := handler.NewContainerHandler(containerService)
	deviceHandler := handler.NewDeviceHandler(deviceService)
	voyageHandler := handler.NewVoyageHandler(voyageService)
	alertHandler := handler.NewAlertHandler(alertService)
	transferHandler := handler.NewTransferHandler(transferService)
	telemetryHandler := handler.NewTelemetryHandler(telemetryService)

	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			telemetryHandler.RegisterRoutes(protected)
			containerHandler.RegisterRoutes(protected)
			deviceHandler.RegisterRoutes(protected)
			voyageHandler.RegisterRoutes(protected)
			alertHandler.RegisterRoutes(protected)
			transferHandler.RegisterRoutes(protected)

			protected.GET("/ws", hub.ServeWS)
		}
	}

	logger.Info("All routes initialized")
	return router, pipeline, hub
}
