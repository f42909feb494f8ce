package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/voyeglobal/auth-api/internal/config"
	"github.com/voyeglobal/auth-api/internal/infrastructure/commerce"
	"github.com/voyeglobal/auth-api/internal/infrastructure/credstore"
	"github.com/voyeglobal/auth-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/voyeglobal/auth-api/internal/infrastructure/jwt"
	s3infra "github.com/voyeglobal/auth-api/internal/infrastructure/s3"
	"github.com/voyeglobal/auth-api/internal/infrastructure/smtp"
	"github.com/voyeglobal/auth-api/internal/infrastructure/sns"
	"github.com/voyeglobal/auth-api/internal/logging"
	transporthttp "github.com/voyeglobal/auth-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg, err := config.Load()
	if err != nil {
		// Misconfiguration is fatal at startup, never a per-request error.
		log.Fatalf("configuration error: %v", err)
	}

	logger := logging.New(cfg.LogLevel)

	// Token issuer — refuses to start without a signing secret.
	issuer, err := jwtinfra.NewIssuer(cfg)
	if err != nil {
		log.Fatalf("token issuer: %v", err)
	}

	// Credential store (pending OTPs + attempt counters).
	redisClient, err := credstore.NewRedisClient(context.Background(), cfg.RedisURL)
	if err != nil {
		log.Fatalf("credential store: %v", err)
	}
	credStore := credstore.NewRedisStore(redisClient)

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// S3 avatar store.
	s3Client := s3infra.NewClient(cfg)
	avatarStore := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// SMTP mailer.
	mailer := smtp.NewMailer(cfg)

	// SNS SMS sender (optional — graceful fallback).
	var smsSender sns.SMSSender
	if sender, err := sns.NewSender(cfg); err == nil {
		smsSender = sender
	} else {
		logger.Warn("SNS sender not available", "err", err)
	}

	// Storefront capability: config-backed when an account page is set,
	// otherwise explicitly unavailable.
	var gateway commerce.Gateway = commerce.Unavailable{}
	if cfg.AccountPageURL != "" {
		gateway = commerce.NewSiteGateway(cfg)
	}

	deps := &transporthttp.Deps{
		UserRepo:         dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		NotificationRepo: dynamo.NewNotificationRepo(dynamoClient, cfg.DynamoTables.Notifications),
		CredStore:        credStore,
		AvatarStore:      avatarStore,
		Mailer:           mailer,
		SMSSender:        smsSender,
		Issuer:           issuer,
		Commerce:         gateway,
		Logger:           logger,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.AppPort, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	redisClient.Close()
	logger.Info("server stopped")
}
