package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Barkatzx/medicare-server/internal/config"
	"github.com/Barkatzx/medicare-server/internal/database"
	"github.com/Barkatzx/medicare-server/internal/handlers"
	"github.com/Barkatzx/medicare-server/internal/metrics"
	"github.com/Barkatzx/medicare-server/internal/middleware"
	"github.com/Barkatzx/medicare-server/internal/repository"
	"github.com/Barkatzx/medicare-server/internal/server"
	"github.com/Barkatzx/medicare-server/internal/services"
	"github.com/Barkatzx/medicare-server/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := utils.NewLogger(cfg.App.Env)
	defer func() {
		_ = logger.Sync()
	}()
	sugar := logger.Sugar()
	sugar.Infof("Starting medicare-server in %s environment on port %d", cfg.App.Env, cfg.App.Port)

	db, mongoClient, err := database.ConnectMongo(cfg.Mongo.URI, cfg.Mongo.Database, sugar)
	if err != nil {
		sugar.Fatal(err)
	}
	rdb, err := database.ConnectRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, sugar)
	if err != nil {
		sugar.Fatal(err)
	}

	metrics.Init()

	tokens := utils.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpireDays)
	limiter := middleware.NewRateLimiter(rdb, "rl", cfg.RateLimit.Limit, time.Duration(cfg.RateLimit.WindowSeconds)*time.Second)

	userRepo := repository.NewMongoUserRepo(db, "users")
	productRepo := repository.NewMongoProductRepo(db, "products")
	userSvc := services.NewUserService(userRepo, productRepo, tokens, logger)
	h := handlers.NewHandler(userSvc, logger)

	app := server.New(cfg, h, tokens, limiter, logger)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		sugar.Infof("Server listening on %s", addr)
		if err := app.Listen(addr); err != nil {
			sugar.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	sugar.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		sugar.Errorf("Fiber app shutdown error: %v", err)
	}
	if err := mongoClient.Disconnect(ctx); err != nil {
		sugar.Errorf("MongoDB disconnect error: %v", err)
	}
	if err := rdb.Close(); err != nil {
		sugar.Errorf("Redis client close error: %v", err)
	}

	sugar.Info("Graceful shutdown complete")
}
