package bootstrap

import (
	"fmt"
	"time"

	"horo-rag/internal/ai"
	"horo-rag/internal/config"
	"horo-rag/internal/repository"
)

// App holds process-wide state: configuration, the model-backend client,
// and the in-memory tenant store. All other components are request-scoped
// and assembled by the router.
type App struct {
	Config *config.Config
	AI     *ai.Client
	Store  *repository.TenantStore

	StartedAt time.Time
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	aiClient := ai.NewClient(ai.Config{
		BaseURL:        cfg.LLM.BaseURL,
		APIKey:         cfg.LLM.APIKey,
		Model:          cfg.LLM.Model,
		EmbeddingModel: cfg.LLM.EmbeddingModel,
		RequestTimeout: time.Duration(cfg.LLM.RequestTimeoutSeconds) * time.Second,
	})

	return &App{
		Config:    cfg,
		AI:        aiClient,
		Store:     repository.NewTenantStore(),
		StartedAt: time.Now(),
	}, nil
}
