package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/abdur-rahman-shawl/young-minds-availability-api/api/swagger"
	"github.com/abdur-rahman-shawl/young-minds-availability-api/internal/handler"
	"github.com/abdur-rahman-shawl/young-minds-availability-api/internal/middleware"
	"github.com/abdur-rahman-shawl/young-minds-availability-api/internal/repository"
	"github.com/abdur-rahman-shawl/young-minds-availability-api/internal/service"
	"github.com/abdur-rahman-shawl/young-minds-availability-api/pkg/cache"
	"github.com/abdur-rahman-shawl/young-minds-availability-api/pkg/config"
	"github.com/abdur-rahman-shawl/young-minds-availability-api/pkg/database"
	"github.com/abdur-rahman-shawl/young-minds-availability-api/pkg/logger"
	corsmiddleware "github.com/abdur-rahman-shawl/young-minds-availability-api/pkg/middleware/cors"
	reqidmiddleware "github.com/abdur-rahman-shawl/young-minds-availability-api/pkg/middleware/requestid"
	"github.com/abdur-rahman-shawl/young-minds-availability-api/pkg/storage"
)

// @title Young Minds Availability API
// @version 0.1.0
// @description Mentor availability, booking window and scheduling service
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, availability cache disabled", "error", err)
		redisClient = nil
	} else {
		defer redisClient.Close() //nolint:errcheck
	}

	scheduleRepo := repository.NewScheduleRepository(db)
	exceptionRepo := repository.NewExceptionRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	limits := service.BookingLimits{
		MaxSessionDurationMinutes: cfg.Booking.MaxSessionDurationMinutes,
		MaxAdvanceDaysCeiling:     cfg.Booking.MaxAdvanceDaysCeiling,
	}
	settingsSvc := service.NewSettingsService(scheduleRepo, cacheRepo, metricsSvc, nil, logr, cfg.Availability.DefaultTimezone, limits)
	exceptionSvc := service.NewExceptionService(exceptionRepo, cacheRepo, metricsSvc, nil, logr)
	availabilitySvc := service.NewAvailabilityService(scheduleRepo, settingsSvc, exceptionSvc, cacheRepo, metricsSvc, nil, logr, cfg.Availability.CacheTTL)
	patternSvc := service.NewPatternService(scheduleRepo, cacheRepo, metricsSvc, nil, logr)
	bookingSvc := service.NewBookingService(bookingRepo, availabilitySvc, settingsSvc, metricsSvc, nil, logr)
	templateSvc := service.NewTemplateService(templateRepo, availabilitySvc, nil, logr)

	availabilityHandler := handler.NewAvailabilityHandler(availabilitySvc, settingsSvc)
	patternHandler := handler.NewPatternHandler(patternSvc)
	exceptionHandler := handler.NewExceptionHandler(exceptionSvc)
	bookingHandler := handler.NewBookingHandler(bookingSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.GET("/stats", metricsHandler.Stats)

	authed := api.Group("", middleware.JWT(cfg.JWT.Secret))

	availability := authed.Group("/availability")
	availability.GET("", availabilityHandler.Get)
	availability.PUT("", availabilityHandler.Save)
	availability.POST("", availabilityHandler.Save)
	availability.PATCH("/settings", availabilityHandler.UpdateSettings)
	availability.GET("/effective", availabilityHandler.Effective)
	availability.GET("/slots", bookingHandler.Slots)

	patterns := availability.Group("/patterns")
	patterns.GET("/:day", patternHandler.Get)
	patterns.PATCH("/:day/enabled", patternHandler.SetEnabled)
	patterns.POST("/:day/blocks", patternHandler.AddBlock)
	patterns.PUT("/:day/blocks/:index", patternHandler.EditBlock)
	patterns.DELETE("/:day/blocks/:index", patternHandler.RemoveBlock)
	patterns.POST("/:day/copy", patternHandler.Copy)
	patterns.POST("/bulk", patternHandler.Bulk)

	exceptions := availability.Group("/exceptions")
	exceptions.GET("", exceptionHandler.List)
	exceptions.POST("", exceptionHandler.Create)
	exceptions.DELETE("", exceptionHandler.Delete)
	exceptions.POST("/quick-add", exceptionHandler.QuickAdd)

	bookings := authed.Group("/bookings")
	bookings.POST("", bookingHandler.Create)
	bookings.POST("/:id/confirm", bookingHandler.Confirm)
	bookings.POST("/:id/cancel", bookingHandler.Cancel)

	if cfg.Templates.Enabled {
		templateHandler := handler.NewTemplateHandler(templateSvc)
		templates := availability.Group("/templates")
		templates.GET("", templateHandler.List)
		templates.POST("", templateHandler.Save)
		templates.POST("/:id/apply", templateHandler.Apply)
		templates.DELETE("/:id", templateHandler.Delete)
	}

	if cfg.Exports.Enabled {
		files, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to init export storage", "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
		exportSvc := service.NewExportService(availabilitySvc, files, signer, logr, 0)
		exportHandler := handler.NewExportHandler(exportSvc)
		availability.GET("/export", exportHandler.Export)
		// Download carries its own HMAC token, no JWT required.
		api.GET("/availability/export/download", exportHandler.Download)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
