package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"portfolio-service/internal/config"
	"portfolio-service/internal/database/mongo"
	"portfolio-service/internal/database/redis"
	"portfolio-service/internal/event"
	"portfolio-service/internal/handlers"
	"portfolio-service/internal/middleware"
	"portfolio-service/internal/repository"
	"portfolio-service/internal/server"
	"portfolio-service/internal/service"
	"portfolio-service/pkg/discovery"
)

func setupLogging(logDir string) (*os.File, error) {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	if logDir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	logFileName := fmt.Sprintf("log_%s.log", time.Now().Format("2006-01-02"))
	logFile := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	return file, nil
}

func main() {
	cfg := config.Load()

	logFile, err := setupLogging(cfg.Log.Dir)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoDB.Timeout)
	mongoClient, err := mongo.Connect(ctx, cfg.MongoDB)
	cancel()
	if err != nil {
		log.Fatalf("Fatal error connecting to MongoDB: %v", err)
	}

	profileRepo := repository.NewProfileRepository(mongoClient.Database(), cfg.MongoDB.Collection)

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	if err := profileRepo.CreateIndexes(ctx); err != nil {
		log.Printf("Warning: Failed to create database indexes: %v", err)
	} else {
		log.Println("Database indexes created successfully")
	}
	cancel()

	eventPublisher, err := event.NewEventPublisher(cfg.RabbitMQ.URI, cfg.RabbitMQ.Exchange)
	if err != nil {
		log.Printf("Warning: Failed to initialize event publisher: %v", err)
		eventPublisher, _ = event.NewEventPublisher("", cfg.RabbitMQ.Exchange)
	}

	var limiter *middleware.RateLimiter
	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	redisClient, err := redis.NewClient(ctx, cfg.Redis)
	cancel()
	if err != nil {
		log.Printf("Warning: Rate limiting disabled: %v", err)
	} else if redisClient != nil {
		limiter = middleware.NewRateLimiter(redisClient, cfg.RateLimit.Max, cfg.RateLimit.Window)
		limiter.Next = middleware.SkipPaths("/api/health")
	}

	profileService := service.NewProfileService(profileRepo, eventPublisher)
	profileHandler := handlers.NewProfileHandler(profileService, cfg.Server.RequestTimeout)

	app := server.NewApp(cfg, profileHandler, limiter)

	registry, err := discovery.NewServiceRegistry(cfg)
	if err != nil {
		log.Printf("Warning: Service discovery init failed: %v", err)
	} else if registry != nil {
		if err := registry.Register(); err != nil {
			log.Printf("Warning: %v", err)
		}
	}

	shutdownChan := make(chan os.Signal, 1)
	doneChan := make(chan bool, 1)

	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", cfg.Addr())
		if err := app.Listen(cfg.Addr()); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
		doneChan <- true
	}()

	<-shutdownChan
	log.Println("Shutting down server...")

	ctx, cancel = context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}

	if err := eventPublisher.Close(); err != nil {
		log.Printf("Error closing event publisher: %v", err)
	}

	if registry != nil {
		if err := registry.Deregister(); err != nil {
			log.Printf("Error deregistering from service discovery: %v", err)
		}
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis client: %v", err)
		}
	}

	mongoClient.Disconnect(ctx)

	<-doneChan
	log.Println("Server shutdown complete")
}
