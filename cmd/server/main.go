package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	httpapi "hotelops-backend/internal/api/http"
	"hotelops-backend/internal/config"
	"hotelops-backend/internal/jobs"
	"hotelops-backend/internal/logger"
	"hotelops-backend/internal/repository/postgres"
	"hotelops-backend/internal/scheduler"
	"hotelops-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	withScheduler := flag.Bool("with-scheduler", false, "Run the cron scheduler in-process alongside the API server")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting HotelOps Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Email Service
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.From, cfg.Email.FromName)

	// Initialize Services
	availabilitySvc := service.NewAvailabilityService(store.ReservationRepository, store.RoomRepository)
	reservationSvc := service.NewReservationService(
		store.ReservationRepository,
		store.RoomRepository,
		emailSvc,
		store.NotificationRepository,
	)
	lifecycleSvc := service.NewLifecycleService(
		store.ReservationRepository,
		emailSvc,
		store.NotificationRepository,
	)
	settlementSvc := service.NewSettlementService(store.PaymentRepository, emailSvc)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Initialize HTTP handlers
	reservationHandler := httpapi.NewReservationHandler(reservationSvc, availabilitySvc)
	lifecycleHandler := httpapi.NewLifecycleHandler(lifecycleSvc)
	paymentHandler := httpapi.NewPaymentHandler(settlementSvc)
	notificationHandler := httpapi.NewNotificationHandler(noteSvc)

	router := httpapi.NewRouter(reservationHandler, lifecycleHandler, paymentHandler, notificationHandler)

	// Optionally run the scheduler in-process for single-node deployments
	if *withScheduler {
		jobRunner := jobs.NewJobRunner(db, store, &jobs.Services{
			Email:     emailSvc,
			Lifecycle: lifecycleSvc,
		}, cfg)
		cronScheduler := scheduler.NewScheduler(jobRunner)
		cronScheduler.Start()
		defer cronScheduler.Stop()
	}

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
