package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	companyapp "github.com/tarfea/dashboard-api/internal/application/company"
	documentapp "github.com/tarfea/dashboard-api/internal/application/document"
	domesticapp "github.com/tarfea/dashboard-api/internal/application/domestic"
	notificationapp "github.com/tarfea/dashboard-api/internal/application/notification"
	userapp "github.com/tarfea/dashboard-api/internal/application/user"
	"github.com/tarfea/dashboard-api/internal/config"
	"github.com/tarfea/dashboard-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/tarfea/dashboard-api/internal/infrastructure/jwt"
	s3infra "github.com/tarfea/dashboard-api/internal/infrastructure/s3"
	"github.com/tarfea/dashboard-api/internal/infrastructure/smtp"
	snsinfra "github.com/tarfea/dashboard-api/internal/infrastructure/sns"
	transport "github.com/tarfea/dashboard-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		slog.Error("failed to load JWT keys", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables)

	userRepo := dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users)
	sessionRepo := dynamo.NewSessionRepo(dynamoClient, cfg.DynamoTables.Sessions)
	companyRepo := dynamo.NewCompanyRepo(dynamoClient, cfg.DynamoTables.Companies)
	domesticRepo := dynamo.NewDomesticRepo(dynamoClient, cfg.DynamoTables.Domestics)
	dismissalRepo := dynamo.NewDismissalRepo(dynamoClient, cfg.DynamoTables.Dismissals)
	documentRepo := dynamo.NewDocumentRepo(dynamoClient, cfg.DynamoTables.Documents)

	objectStore := s3infra.NewStore(s3infra.NewClient(cfg), cfg.S3BucketName)
	mailer := smtp.NewMailer(cfg)

	// SMS is optional: without SNS credentials the reminder endpoint still
	// works for email, and sms requests come back as 400.
	smsSender, err := snsinfra.NewSender(cfg)
	if err != nil {
		slog.Warn("SNS unavailable, sms reminders disabled", "error", err)
		smsSender = nil
	}

	userService := userapp.NewService(userapp.ServiceDeps{
		UserRepo:        userRepo,
		SessionRepo:     sessionRepo,
		JWTProvider:     jwtProvider,
		RefreshTokenDur: cfg.RefreshTokenExpiry,
	})
	companyService := companyapp.NewService(companyRepo)
	domesticService := domesticapp.NewService(domesticRepo)
	notificationService := notificationapp.NewService(notificationapp.ServiceDeps{
		CompanyRepo:   companyRepo,
		DismissalRepo: dismissalRepo,
		UserRepo:      userRepo,
		Mailer:        mailer,
		SMSSender:     smsSender,
	})
	documentService := documentapp.NewService(companyRepo, documentRepo, objectStore)

	router := transport.NewRouter(&transport.Deps{
		JWTProvider:         jwtProvider,
		AllowedOrigins:      cfg.AllowedOrigins,
		UserService:         userService,
		CompanyService:      companyService,
		DomesticService:     domesticService,
		NotificationService: notificationService,
		DocumentService:     documentService,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server listening", "port", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
