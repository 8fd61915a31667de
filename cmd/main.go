package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	httpctx "github.com/fieldscope/field-inspector/internal/api/http/context"
	"github.com/fieldscope/field-inspector/internal/api/http/router"
	"github.com/fieldscope/field-inspector/internal/config"
	"github.com/fieldscope/field-inspector/internal/logger"
	"github.com/fieldscope/field-inspector/internal/model"
	"github.com/fieldscope/field-inspector/internal/repository/memory"
	"github.com/fieldscope/field-inspector/internal/repository/postgres"
	"github.com/fieldscope/field-inspector/internal/server"
	"github.com/fieldscope/field-inspector/internal/service"
	storage "github.com/fieldscope/field-inspector/internal/storage/minio"
	"github.com/fieldscope/field-inspector/internal/token"
	"github.com/fieldscope/field-inspector/internal/transcribe/whisper"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	// Every external backend is optional. A missing setting or a failed
	// initialization selects the in-process fallback instead of aborting.
	userStore, recordStore, db := setupDatabase(ctx, cfg, logger)
	if db != nil {
		defer db.Close()
	}
	storageClient := setupStorage(ctx, cfg, logger)
	speechBackend := setupSpeech(cfg, logger)

	tokenManager := token.NewJWT(cfg.JWT.Secret)
	fallbackUsers := memory.NewUserStore()
	fallbackRecords := memory.NewRecordStore()

	authService := service.NewAuth(userStore, fallbackUsers, tokenManager, logger)
	uploadService := service.NewUpload(storageClient, logger)
	recordService := service.NewRecords(recordStore, fallbackRecords, uploadService, logger)
	transcriptionService := service.NewTranscription(speechBackend, logger)
	ingestService := service.NewIngest(recordService, uploadService, transcriptionService, logger)

	ctxMgr := httpctx.NewManager()
	r := router.New(authService, ingestService, recordService, ctxMgr, cfg.HTTP.MaxUploadBytes, logger)
	httpServer := server.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func setupDatabase(ctx context.Context, cfg *config.Config, logger *logger.Logger) (model.UserStore, model.RecordStore, *postgres.Connection) {
	if cfg.Database.DSN == "" {
		logger.Info("no database configured, using in-process record and user stores")
		return nil, nil, nil
	}

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to connect to database, using in-process stores", "error", err)
		return nil, nil, nil
	}

	return postgres.NewUserRepository(db), postgres.NewRecordRepository(db), db
}

func setupStorage(ctx context.Context, cfg *config.Config, logger *logger.Logger) model.Storage {
	if cfg.Storage.Endpoint == "" {
		logger.Info("no object storage configured, photo uploads will be simulated")
		return nil
	}

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Error("failed to create minio client, photo uploads will be simulated", "error", err)
		return nil
	}

	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Error("failed to initialize storage client, photo uploads will be simulated", "error", err)
		return nil
	}

	return storageClient
}

func setupSpeech(cfg *config.Config, logger *logger.Logger) model.SpeechBackend {
	if cfg.Speech.APIKey == "" {
		logger.Info("no speech backend configured, transcriptions will use the fallback pool")
		return nil
	}

	return whisper.NewClient(cfg.Speech.BaseURL, cfg.Speech.APIKey, cfg.Speech.Model, cfg.Speech.Language)
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
