package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/taskhive/task-service/internal/config"
	"github.com/taskhive/task-service/internal/handler"
	"github.com/taskhive/task-service/internal/middleware"
	"github.com/taskhive/task-service/internal/repository"
	"github.com/taskhive/task-service/internal/service"
	"github.com/taskhive/task-service/internal/uploads"
	"github.com/taskhive/task-service/internal/utils/email"

	_ "github.com/lib/pq"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)

	uploadStore, err := uploads.NewStore(cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		logger.Fatalf("Failed to prepare upload dir: %v", err)
	}

	var mailer service.Mailer
	if cfg.WelcomeEmail {
		mailer = email.NewSender(cfg, logger)
	}

	svc := service.NewService(repo, repo, mailer, logger, cfg)
	h := handler.NewHandler(svc, uploadStore, logger)
	r := handler.NewRouter(h, middleware.Authenticate(cfg, repo, logger), cfg.UploadDir)

	// Schedule the orphaned upload sweep
	janitor := uploads.NewJanitor(uploadStore, repo, logger, 24*time.Hour)
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@hourly", janitor.Run); err != nil {
		logger.Fatalf("Failed to schedule upload janitor: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
