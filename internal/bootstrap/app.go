package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"invoice-backend/internal/batches"
	"invoice-backend/internal/exports"
	"invoice-backend/internal/queue"
	"invoice-backend/internal/services/health"
	"invoice-backend/internal/shared/config"
	"invoice-backend/internal/shared/server"
	"invoice-backend/internal/shared/storage/db"
	"invoice-backend/internal/shared/storage/object"
	azurestore "invoice-backend/internal/shared/storage/object/azure"
	localstore "invoice-backend/internal/shared/storage/object/local"
	miniostore "invoice-backend/internal/shared/storage/object/minio"
	s3store "invoice-backend/internal/shared/storage/object/s3"
	"invoice-backend/internal/uploads"
)

// App holds shared dependencies and the assembled router.
type App struct {
	Config        config.Config
	Router        *gin.Engine
	DB            *sql.DB
	SourceStore   object.ObjectStore
	ResultStore   object.ObjectStore
	RunsRepo      batches.Repo
	UploadService *uploads.Service
	BatchService  *batches.Service
	ExportService *exports.Service
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	exportMode, err := exports.ParseMode(cfg.ExportMode)
	if err != nil {
		return nil, fmt.Errorf("EXPORT_MODE: %w", err)
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sourceStore, err := buildStore(ctx, cfg, cfg.AzureConnectionString)
	if err != nil {
		return nil, err
	}
	resultStore := sourceStore
	if cfg.ObjectStoreType == "azure" && strings.TrimSpace(cfg.AzureResultConnectionString) != "" {
		resultStore, err = buildStore(ctx, cfg, cfg.AzureResultConnectionString)
		if err != nil {
			return nil, err
		}
	}

	events, err := buildEvents(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var runs batches.Repo
	if sqlDB != nil {
		runs = &batches.PGRepo{DB: sqlDB}
	} else {
		runs = batches.NewMemoryRepo()
	}

	app := &App{
		Config:        cfg,
		DB:            sqlDB,
		SourceStore:   sourceStore,
		ResultStore:   resultStore,
		RunsRepo:      runs,
		UploadService: uploads.NewService(sourceStore, cfg.SourceContainer),
		BatchService:  batches.NewService(cfg, batches.NewClient(&http.Client{}), runs).WithEvents(events),
		ExportService: exports.NewService(resultStore, cfg.ResultContainer, exportMode),
	}

	var pinger health.Pinger
	if sqlDB != nil {
		pinger = sqlDB
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        cfg,
		UploadHandler: uploads.NewHandler(app.UploadService),
		BatchHandler:  batches.NewHandler(app.BatchService),
		ExportHandler: exports.NewHandler(app.ExportService),
		Health:        health.NewService(pinger, cfg.ObjectStoreType),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		log.Printf("bootstrap: DATABASE_URL empty; batch runs kept in memory")
		return nil, nil
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; batch runs kept in memory: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config, azureConnectionString string) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "azure":
		return azurestore.New(azureConnectionString)
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	case "minio":
		return miniostore.New(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildEvents(ctx context.Context, cfg config.Config) (queue.Publisher, error) {
	if cfg.BatchEventsQueueURL == "" {
		return queue.Nop{}, nil
	}
	pub, err := queue.NewSQSPublisher(ctx, cfg.AWSRegion, cfg.BatchEventsQueueURL)
	if err != nil {
		return nil, fmt.Errorf("batch events queue: %w", err)
	}
	return pub, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
