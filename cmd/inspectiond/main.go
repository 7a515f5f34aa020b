package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"substation-inspection-backend/config"
	"substation-inspection-backend/internal/api"
	"substation-inspection-backend/internal/catalog"
	"substation-inspection-backend/internal/db"
	"substation-inspection-backend/internal/dedupe"
	"substation-inspection-backend/internal/gauth"
	"substation-inspection-backend/internal/gdrive"
	"substation-inspection-backend/internal/gsheets"
	"substation-inspection-backend/internal/intake"
	"substation-inspection-backend/internal/notification"
	"substation-inspection-backend/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "inspection-backend ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded from %s", configPath)

	stations, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logger.Fatalf("failed to load substation catalog: %v", err)
	}
	logger.Printf("substation catalog loaded: %d stations", len(stations))

	// Database: a missing DSN degrades persistence instead of failing.
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	var appStore store.Store
	if gormDB != nil {
		appStore = store.NewGormStore(gormDB)
		logger.Println("data store initialized")
	} else {
		appStore = store.NewNoopStore()
		logger.Println("running without a database; dashboard and log persistence disabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Google clients: missing credentials disable the upload path but
	// keep the rest of the API serving.
	var (
		driveClient  *gdrive.Client
		sheetsClient *gsheets.Client
	)
	httpClient, err := gauth.NewHTTPClient(ctx, &cfg.Google)
	if err != nil {
		logger.Printf("Warning: google credentials unavailable (%v); evidence upload disabled", err)
	} else {
		driveClient, err = gdrive.New(ctx, httpClient, cfg.Drive.ParentFolderID)
		if err != nil {
			logger.Fatalf("failed to create drive client: %v", err)
		}
		sheetsClient, err = gsheets.New(ctx, httpClient, cfg.Sheets.SpreadsheetID, cfg.Sheets.Range)
		if err != nil {
			logger.Fatalf("failed to create sheets client: %v", err)
		}
		logger.Println("drive and sheets clients initialized")
	}

	webpushOptions := &webpush.Options{
		VAPIDPublicKey:  cfg.Push.PublicKey,
		VAPIDPrivateKey: cfg.Push.PrivateKey,
		Subscriber:      cfg.Push.Subject,
		TTL:             cfg.Push.TTL,
	}

	workerPool := notification.NewWorkerPool(cfg.WorkerPool.Size, gormDB, webpushOptions)
	workerPool.Start(ctx)

	deduper := dedupe.New(cfg.Dedupe.Window)

	// gdrive/gsheets clients are concrete types behind interfaces; a
	// typed nil must not reach the service as a non-nil interface.
	var uploader intake.Uploader
	if driveClient != nil {
		uploader = driveClient
	}
	var appender intake.SheetAppender
	if sheetsClient != nil {
		appender = sheetsClient
	}

	intakeSvc := intake.NewService(deduper, uploader, appender, appStore, workerPool)

	handler := api.NewHandler(intakeSvc, appStore, stations, webpushOptions)
	router := api.NewRouter(handler, &cfg.Server)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
