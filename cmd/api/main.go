package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	fbapp "firebase.google.com/go/v4"

	"reliefnet/internal/adapter/api"
	"reliefnet/internal/adapter/api/handler"
	apimiddleware "reliefnet/internal/adapter/api/middleware"
	"reliefnet/internal/adapter/api/router"
	"reliefnet/internal/adapter/repository"
	"reliefnet/internal/infrastructure/firebase"
	"reliefnet/internal/infrastructure/ratelimit"
	"reliefnet/internal/infrastructure/storage"
	"reliefnet/internal/infrastructure/websocket"
	"reliefnet/internal/usecase"
	"reliefnet/pkg/config"
	"reliefnet/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration: %v", err)
	}
	logger.SetEnvironment(cfg.Environment)

	if err := logger.InitSentry(cfg.SentryDSN, cfg.Environment); err != nil {
		logger.Warn("Sentry disabled: %v", err)
	}
	defer logger.Flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opt, err := cfg.CredentialsOption()
	if err != nil {
		logger.Fatal("Failed to load Firebase credentials: %v", err)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{
		ProjectID:     cfg.FirebaseProject,
		StorageBucket: cfg.StorageBucket,
	}, opt)
	if err != nil {
		logger.Fatal("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		logger.Fatal("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		logger.Fatal("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, opt)
	if err != nil {
		logger.Fatal("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	firebaseAuthClient, err := firebase.NewFirebaseAuthClient(ctx, authClient, cfg.FirebaseApiKey)
	if err != nil {
		logger.Fatal("Failed to initialize phone sign-in: %v", err)
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("Unknown timezone %s, using UTC: %v", cfg.Timezone, err)
		location = time.UTC
	}

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	phoneLoginRepo := repository.NewFirestorePhoneLoginRepository(firestoreClient)
	helpRequestRepo := repository.NewFirestoreHelpRequestRepository(firestoreClient)
	helpOfferRepo := repository.NewFirestoreHelpOfferRepository(firestoreClient)
	resourceRepo := repository.NewFirestoreResourceRepository(firestoreClient)
	foodPointRepo := repository.NewFirestoreFoodPointRepository(firestoreClient)
	fileMetadataRepo := repository.NewFirestoreFileMetadataRepository(firestoreClient)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	limiter := ratelimit.NewRateLimiter()
	limiter.StartCleanupRoutine(ctx)

	sessionUseCase := usecase.NewSessionUseCase(firebaseAuthClient, userRepo, cfg.SessionExpiry)
	phoneLoginUseCase := usecase.NewPhoneLoginUseCase(phoneLoginRepo, userRepo, firebaseAuthClient, limiter, usecase.PhoneLoginConfig{
		CountryCode:   cfg.PhoneCountryCode,
		FlowTTL:       cfg.LoginFlowTTL,
		MaxAttempts:   cfg.MaxCodeAttempts,
		SessionExpiry: cfg.SessionExpiry,
	})
	userUseCase := usecase.NewUserUseCase(userRepo, firebaseAuthClient)
	helpRequestUseCase := usecase.NewHelpRequestUseCase(helpRequestRepo, userRepo, fileMetadataRepo, storageClient, wsManager)
	helpOfferUseCase := usecase.NewHelpOfferUseCase(helpOfferRepo, userRepo, wsManager)
	resourceUseCase := usecase.NewResourceUseCase(resourceRepo, userRepo, wsManager)
	foodPointUseCase := usecase.NewFoodPointUseCase(foodPointRepo, location)

	if cfg.FoodPointsFile != "" {
		if _, err := foodPointUseCase.SeedFile(ctx, cfg.FoodPointsFile); err != nil {
			logger.Error("Failed to seed food points: %v", err)
		}
	}

	handler.Setup(
		sessionUseCase,
		phoneLoginUseCase,
		userUseCase,
		helpRequestUseCase,
		helpOfferUseCase,
		resourceUseCase,
		foodPointUseCase,
		handler.CookieConfig{Name: cfg.SessionCookieName, Secure: cfg.IsProduction()},
	)
	handler.SetupFeedHandler(wsManager, cfg.AllowedOrigins)
	handler.SetupHealthHandler(firebaseAuthClient)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Accept-Language"},
		AllowCredentials: true,
	}))
	e.Use(middleware.BodyLimit("6M"))

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(sessionUseCase, cfg.SessionCookieName)
	coordinatorMiddleware := apimiddleware.NewCoordinatorMiddleware(userRepo)

	router.Setup(e, authMiddleware, coordinatorMiddleware, limiter, cfg.Environment)

	go func() {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error: %v", err)
	}
	<-wsManager.Done()
}
