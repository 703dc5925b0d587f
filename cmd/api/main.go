package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"venuebook/internal/config"
	"venuebook/internal/database"
	"venuebook/internal/middleware"
	"venuebook/internal/modules/admin"
	"venuebook/internal/modules/booking"
	"venuebook/internal/modules/calendar"
	"venuebook/internal/modules/catalog"
	"venuebook/internal/modules/notification"
	"venuebook/internal/pkg/logger"
	"venuebook/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("database connect failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}

	venueRepo := repository.NewVenueRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	var mailer notification.Mailer
	if cfg.MailServer != "" {
		mailer = notification.NewSMTPMailer(cfg.MailServer, cfg.MailPort, cfg.MailUsername, cfg.MailPassword)
	} else {
		mailer = notification.NewDevConsoleMailer(zlog)
	}
	notifier := notification.NewService(mailer, cfg.AdminEmail, cfg.BaseURL)

	bookingService := booking.NewService(
		bookingRepo,
		venueRepo,
		notifier,
		booking.BookableHours{Open: cfg.OpenTime, Close: cfg.CloseTime},
		zlog,
	)
	bookingHandler := booking.NewHandler(bookingService)

	catalogService := catalog.NewService(venueRepo, bookingRepo, cfg.OpenTime, cfg.CloseTime)
	catalogHandler := catalog.NewHandler(catalogService)

	adminService := admin.NewService(bookingRepo, venueRepo, notifier, zlog)
	adminHandler := admin.NewHandler(adminService)

	r := gin.New()
	r.Use(logger.RequestLogger(zlog), gin.Recovery(), middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		bookingHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)

		adminHandler.RegisterRoutes(v1.Group("/admin"))
	}

	if cfg.GoogleClientID != "" {
		oauthCfg := calendar.NewOAuthConfig(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI)
		calendarService := calendar.NewService(
			oauthCfg,
			calendar.NewGoogleClient(oauthCfg),
			bookingRepo,
			venueRepo,
			zlog,
		)
		calendar.NewHandler(calendarService).RegisterRoutes(v1, r)
	} else {
		zlog.Info("google credentials not configured, calendar export disabled")
	}

	zlog.Info("server starting", zap.String("addr", cfg.HTTPAddr))
	if err := r.Run(cfg.HTTPAddr); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
