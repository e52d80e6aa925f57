package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"careers-backend/internal/applications"
	googleauth "careers-backend/internal/auth"
	"careers-backend/internal/jobs"
	"careers-backend/internal/positions"
	"careers-backend/internal/queue"
	"careers-backend/internal/shared/config"
	"careers-backend/internal/shared/i18n"
	"careers-backend/internal/shared/server"
	"careers-backend/internal/shared/storage/db"
	"careers-backend/internal/shared/storage/object"
	localstore "careers-backend/internal/shared/storage/object/local"
	s3store "careers-backend/internal/shared/storage/object/s3"
)

// App holds the wired dependency graph.
type App struct {
	Config     config.Config
	Router     *gin.Engine
	DB         *sql.DB
	Store      object.ObjectStore
	Queue      queue.Client
	Translator *i18n.Translator

	PositionsRepo    positions.Repo
	JobsRepo         jobs.Repo
	ApplicationsRepo applications.Repo

	PositionsService    *positions.Service
	JobsService         *jobs.Service
	ApplicationsService *applications.Service

	PositionsHandler    *positions.Handler
	JobsHandler         *jobs.Handler
	ApplicationsHandler *applications.Handler
	GoogleAuth          *googleauth.GoogleService
}

// Build prepares the full dependency graph and router. Without a reachable
// database in dev, repositories fall back to in-memory implementations.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	translator, err := i18n.New(cfg.DefaultLocale)
	if err != nil {
		return nil, fmt.Errorf("load locales: %w", err)
	}

	app := &App{
		Config:     cfg,
		DB:         sqlDB,
		Store:      store,
		Queue:      queueClient,
		Translator: translator,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:       app.Config,
		Positions:    app.PositionsHandler,
		Jobs:         app.JobsHandler,
		Applications: app.ApplicationsHandler,
		GoogleAuth:   app.GoogleAuth,
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(cfg.SubmitQueueURL) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx, cfg.AWSRegion, cfg.SubmitQueueURL)
}

func buildServices(app *App) {
	if app.DB != nil {
		app.PositionsRepo = &positions.PGRepo{DB: app.DB}
		app.JobsRepo = &jobs.PGRepo{DB: app.DB}
		app.ApplicationsRepo = &applications.PGRepo{DB: app.DB}
	} else {
		posRepo := positions.NewMemoryRepo()
		jobsRepo := jobs.NewMemoryRepo()
		appsRepo := applications.NewMemoryRepo()
		// The memory repos enforce cross-aggregate rules through each
		// other; Postgres gets the same from foreign keys.
		jobsRepo.SetAnswerChecker(appsRepo)
		appsRepo.Schema = jobsRepo
		app.PositionsRepo = posRepo
		app.JobsRepo = jobsRepo
		app.ApplicationsRepo = appsRepo
	}

	app.PositionsService = &positions.Service{
		Repo: app.PositionsRepo,
		Jobs: app.JobsRepo,
	}
	app.JobsService = &jobs.Service{
		Repo:      app.JobsRepo,
		Positions: app.PositionsRepo,
	}
	app.ApplicationsService = &applications.Service{
		Repo: app.ApplicationsRepo,
		Jobs: app.JobsRepo,
		Resumes: &applications.ResumePolicy{
			Store:    app.Store,
			MaxBytes: app.Config.ResumeMaxBytes,
		},
		Queue: app.Queue,
	}

	app.PositionsHandler = positions.NewHandler(app.PositionsService)
	app.JobsHandler = jobs.NewHandler(app.JobsService)
	app.ApplicationsHandler = applications.NewHandler(app.ApplicationsService, app.Translator)

	if strings.TrimSpace(app.Config.GoogleClientID) != "" {
		app.GoogleAuth = googleauth.NewGoogleService(
			app.Config.GoogleClientID,
			app.Config.GoogleClientSecret,
			app.Config.GoogleRedirectURL,
			app.Config.AdminRedirectURL,
			app.Config.AdminEmails,
		)
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
