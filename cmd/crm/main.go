package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/velora/crm/internal/crm/auth"
	"github.com/velora/crm/internal/crm/config"
	"github.com/velora/crm/internal/crm/controller"
	"github.com/velora/crm/internal/crm/db"
	"github.com/velora/crm/internal/crm/events"
	"github.com/velora/crm/internal/crm/handlers"
	"github.com/velora/crm/internal/crm/metrics"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", filepath.Join("internal", "crm", "config", "config.yaml"), "path to config file")
	flag.Parse()

	logger := initLogger()
	defer func(logger *zap.Logger) {
		err := logger.Sync()
		if err != nil {
			logger.Error("failed to sync logger", zap.Error(err))
		}
	}(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	repo, err := db.NewRepository(&db.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		log.Fatal("failed to initialize database", err)
	}
	defer repo.Close()

	producer, err := events.NewProducer(cfg.KafkaBrokers, logger, cfg.Topic)
	if err != nil {
		log.Fatal("failed to initialize Kafka producer", err)
	}
	defer producer.Close()

	if cfg.ConsumerGroup != "" {
		ctx, cancel := context.WithCancel(context.Background())

		audit := logger.Named("event_audit")
		consumer := events.NewConsumer(cfg.KafkaBrokers, cfg.ConsumerGroup, cfg.Topic, logger)
		consumer.RegisterHandler(func(_ context.Context, event events.Event) error {
			audit.Info("domain event",
				zap.String("event_type", string(event.Type)),
				zap.String("key", event.Key),
			)
			return nil
		})
		if err := consumer.Start(ctx); err != nil {
			cancel()
			logger.Fatal("failed to start event consumer", zap.Error(err))
		}
		defer func() {
			cancel()
			consumer.Close()
		}()
	}

	companySvc := controller.NewCompanyService(repo, producer, logger)
	enquirySvc := controller.NewEnquiryService(repo, producer, logger)
	quotationSvc := controller.NewQuotationService(repo, producer, logger)
	communicationSvc := controller.NewCommunicationService(repo, logger)

	handler := handlers.NewHandler(companySvc, enquirySvc, quotationSvc, communicationSvc, logger)
	limiter := auth.NewLoginLimiter(repo, cfg.LoginMaxAttempts, time.Duration(cfg.LoginWindowSeconds)*time.Second)
	login := handlers.NewLoginHandler(cfg.LoginUser, cfg.LoginPassword, cfg.JWTSecret, limiter, logger)

	router := handlers.NewRouter(handler, login, metrics.New(), cfg.JWTSecret)
	server := handlers.NewServer(cfg.HTTPPort, router, logger)

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	waitForShutdown(server, logger)
}

// initLogger initializes a Zap production logger.
func initLogger() *zap.Logger {
	logger, _ := zap.NewProduction()
	return logger
}

// waitForShutdown blocks until an interrupt or SIGTERM is received, then
// shuts down the server.
func waitForShutdown(server *handlers.Server, logger *zap.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	server.Stop()
	logger.Info("Server stopped properly")
}
