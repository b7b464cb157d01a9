package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chistym17/jobgenie/internal/dispatch"
	"github.com/chistym17/jobgenie/internal/llm"
	"github.com/chistym17/jobgenie/internal/llm/gemini"
	"github.com/chistym17/jobgenie/internal/resumes"
	"github.com/chistym17/jobgenie/internal/shared/config"
	"github.com/chistym17/jobgenie/internal/shared/server"
	"github.com/chistym17/jobgenie/internal/shared/storage/db"
)

// App holds the shared dependencies of one process. Everything is
// constructed once here and injected; there are no package-level client
// handles.
type App struct {
	Config     config.Config
	Router     *gin.Engine
	DB         *sql.DB
	LLM        llm.Client
	Dispatcher dispatch.Dispatcher
	Repo       resumes.Repo
	Pipeline   *resumes.Service
	Handler    *resumes.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	llmClient, err := buildLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}

	dispatcher, err := buildDispatcher(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var repo resumes.Repo
	if sqlDB != nil {
		repo = &resumes.PGRepo{DB: sqlDB}
	} else {
		repo = resumes.NewMemoryRepo()
	}

	pipeline := &resumes.Service{
		LLM:             llmClient,
		Repo:            repo,
		Dispatcher:      dispatcher,
		LLMTimeout:      cfg.LLMTimeout,
		DispatchTimeout: cfg.DispatchTimeout,
	}
	handler := resumes.NewHandler(pipeline)

	app := &App{
		Config:     cfg,
		DB:         sqlDB,
		LLM:        llmClient,
		Dispatcher: dispatcher,
		Repo:       repo,
		Pipeline:   pipeline,
		Handler:    handler,
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:  cfg,
		Resumes: handler,
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory store")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory store: %v", err)
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

func buildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: GOOGLE_API_KEY empty; llm calls will fail until configured")
			return llm.PlaceholderClient{}, nil
		}
		return nil, fmt.Errorf("GOOGLE_API_KEY is required")
	}
	return gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
}

func buildDispatcher(ctx context.Context, cfg config.Config) (dispatch.Dispatcher, error) {
	if cfg.Dispatcher == "sqs" {
		return dispatch.NewSQSClient(ctx, cfg.SQSQueueURL)
	}
	if strings.TrimSpace(cfg.WorkerURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: WORKER_URL empty; enrichment dispatch disabled")
			return dispatch.Disabled{}, nil
		}
		return nil, fmt.Errorf("WORKER_URL is required")
	}
	return dispatch.NewHTTPClient(cfg.WorkerURL, cfg.DispatchTimeout)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
