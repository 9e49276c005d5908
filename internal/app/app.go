// Package app assembles noteflow's services from configuration.
//
// It replaces a process-wide singleton: callers build an App, use its
// services, and Close it when done.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/noteflow/internal/adapters/driven/ai"
	"github.com/custodia-labs/noteflow/internal/adapters/driven/cache/badger"
	"github.com/custodia-labs/noteflow/internal/adapters/driven/cache/memory"
	"github.com/custodia-labs/noteflow/internal/adapters/driven/config/env"
	"github.com/custodia-labs/noteflow/internal/adapters/driven/config/file"
	"github.com/custodia-labs/noteflow/internal/adapters/driven/models"
	blugestore "github.com/custodia-labs/noteflow/internal/adapters/driven/storage/bluge"
	memstore "github.com/custodia-labs/noteflow/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/noteflow/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/core/ports/driven"
	"github.com/custodia-labs/noteflow/internal/core/services"
	"github.com/custodia-labs/noteflow/internal/logger"
	"github.com/custodia-labs/noteflow/internal/normalisers"
	"github.com/custodia-labs/noteflow/internal/normalisers/eml"
	"github.com/custodia-labs/noteflow/internal/normalisers/html"
	"github.com/custodia-labs/noteflow/internal/pipeline"
	"github.com/custodia-labs/noteflow/internal/postprocessors"
	"github.com/custodia-labs/noteflow/internal/ratelimit"
)

// Record store backends selectable with the store.backend config key.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreBluge  = "bluge"
)

// Options control how an App is built.
type Options struct {
	// ConfigDir holds config.toml, workflows.yaml and templates/.
	// Defaults to ~/.noteflow.
	ConfigDir string

	// DotenvFiles are loaded before reading the environment.
	// Defaults to .env in the working directory.
	DotenvFiles []string

	// Store overrides the store.backend config key.
	Store string

	// Config replaces config.toml, e.g. with a memory store.
	Config driven.ConfigStore
}

// App holds the wired services.
type App struct {
	Config      driven.ConfigStore
	AI          env.AIConfig
	Access      *services.AIAccessService
	Models      *services.ModelRegistry
	Templates   *file.TemplateStore
	Workflows   *services.WorkflowEngine
	Processor   *services.ContentProcessor
	Categorizer *services.Categorizer
	Records     *services.RecordService
	Context     *pipeline.ContextManager
	Normalisers *normalisers.Registry

	workflowsPath string
	storeName     string

	mu      sync.Mutex
	closers []io.Closer
}

// New builds an App. Resources opened before a failure are released.
func New(opts Options) (_ *App, err error) {
	dir := opts.ConfigDir
	if dir == "" {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return nil, fmt.Errorf("get home directory: %w", herr)
		}
		dir = filepath.Join(home, ".noteflow")
	}

	a := &App{
		workflowsPath: filepath.Join(dir, file.WorkflowsFile),
		Context:       pipeline.NewContextManager(pipeline.DefaultMaxContextSize),
	}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	logger.Section("Initialising noteflow")

	a.Config = opts.Config
	if a.Config == nil {
		if a.Config, err = file.NewConfigStore(dir); err != nil {
			return nil, err
		}
	}
	if a.AI, err = env.LoadAI(opts.DotenvFiles...); err != nil {
		return nil, err
	}
	if a.Access, err = a.buildAccess(); err != nil {
		return nil, err
	}

	var completer driven.Completer
	if a.AI.HasEndpoint() {
		completer = a.Access
	}

	a.Models = services.NewModelRegistry(models.NewLoader(models.Deps{Completer: completer}))
	if err = a.registerModels(); err != nil {
		return nil, err
	}

	if a.Templates, err = file.NewTemplateStore(filepath.Join(dir, "templates")); err != nil {
		return nil, err
	}
	a.Workflows = services.NewWorkflowEngine(a.Templates)
	if err = a.registerWorkflows(); err != nil {
		return nil, err
	}

	chunker, err := a.buildChunker()
	if err != nil {
		return nil, err
	}
	graph := postprocessors.NewGraphBuilder(map[string]any{
		"similarity_threshold": a.Config.GetFloat("graph.similarity_threshold"),
	})
	a.Processor = services.NewContentProcessor(a.Models, a.Workflows, chunker, graph)
	a.Normalisers = normalisers.NewRegistry(html.New(), eml.New())

	a.Categorizer = services.NewCategorizer()
	if err = a.registerRules(completer); err != nil {
		return nil, err
	}

	a.storeName = opts.Store
	if a.storeName == "" {
		a.storeName = a.Config.GetString("store.backend")
	}
	store, err := a.openStore(dir)
	if err != nil {
		return nil, err
	}
	a.Records = services.NewRecordService(store)

	logger.Info("noteflow ready (store=%s, cloud=%t)", a.storeName, a.AI.HasEndpoint())
	return a, nil
}

// buildAccess creates the AI access service. Without an endpoint every
// request falls back.
func (a *App) buildAccess() (*services.AIAccessService, error) {
	if !a.AI.HasEndpoint() {
		logger.Debug("AI_ENDPOINT not set; AI requests will use fallback responses")
		return services.NewAIAccessService(nil, nil, nil), nil
	}

	retries := a.AI.MaxRetries
	if retries == 0 {
		retries = -1
	}
	client, err := ai.NewCompletionClient(ai.Config{
		Provider:   a.AI.Provider,
		Endpoint:   a.AI.Endpoint,
		APIKey:     a.AI.APIKey,
		Model:      a.AI.Model,
		MaxRetries: retries,
		Timeout:    a.AI.Timeout,
	})
	if err != nil {
		return nil, err
	}

	limiter, err := ratelimit.New(a.AI.RateLimit)
	if err != nil {
		return nil, err
	}

	var cache driven.ResponseCache
	if a.AI.CacheDir != "" {
		persistent, err := badger.Open(a.AI.CacheDir, a.AI.CacheTTL)
		if err != nil {
			return nil, err
		}
		a.track(persistent)
		cache = persistent
	} else {
		cache = memory.NewLRU(a.AI.CacheSize)
	}

	return services.NewAIAccessService(client, cache, limiter), nil
}

// DefaultModelConfigs are registered for every content type that
// config.toml does not configure.
func DefaultModelConfigs() []domain.ModelConfig {
	return []domain.ModelConfig{
		{Name: "llama3", ContentType: domain.ContentTypeText, Settings: domain.ModelSettings{Local: true, ModelPath: "models/llama3"}},
		{Name: "llava", ContentType: domain.ContentTypeImage, Settings: domain.ModelSettings{Local: true, ModelPath: "models/llava"}},
		{Name: "local-video", ContentType: domain.ContentTypeVideo, Settings: domain.ModelSettings{Local: true}},
		{Name: "local-audio", ContentType: domain.ContentTypeAudio, Settings: domain.ModelSettings{Local: true}},
		{Name: "csv", ContentType: domain.ContentTypeTable, Settings: domain.ModelSettings{Local: true}},
	}
}

func (a *App) registerModels() error {
	for _, cfg := range DefaultModelConfigs() {
		if err := a.Models.RegisterModelConfig(cfg.ContentType, cfg); err != nil {
			return err
		}
	}

	configured, err := file.ModelConfigs(a.Config)
	if err != nil {
		return err
	}
	for _, cfg := range configured {
		if err := a.Models.RegisterModelConfig(cfg.ContentType, cfg); err != nil {
			return err
		}
		logger.Debug("Registered model %q for %s", cfg.Name, cfg.ContentType)
	}
	return nil
}

// DefaultWorkflows are registered before workflows.yaml is read.
func DefaultWorkflows() map[string]domain.WorkflowDefinition {
	return map[string]domain.WorkflowDefinition{
		"notes": {
			Trigger: domain.Trigger{ContentTypes: []domain.ContentType{domain.ContentTypeText}},
			Actions: []domain.Action{
				domain.TransformAction{Template: driven.TemplateNote},
				domain.CategorizeAction{Category: "notes"},
			},
		},
		"images": {
			Trigger: domain.Trigger{ContentTypes: []domain.ContentType{domain.ContentTypeImage}},
			Actions: []domain.Action{
				domain.TransformAction{Template: driven.TemplateImage},
				domain.CategorizeAction{Category: "images"},
			},
		},
	}
}

func (a *App) registerWorkflows() error {
	for category, wf := range DefaultWorkflows() {
		a.Workflows.Register(category, wf)
	}

	defs, err := file.LoadWorkflows(a.workflowsPath)
	if err != nil {
		return err
	}
	a.applyWorkflows(defs)
	return nil
}

func (a *App) applyWorkflows(defs map[string]domain.WorkflowDefinition) {
	for category, wf := range defs {
		a.Workflows.Register(category, wf)
	}
}

// WatchWorkflows re-registers workflows whenever workflows.yaml changes.
// Categories removed from the file stay registered until restart.
func (a *App) WatchWorkflows(ctx context.Context) error {
	return file.WatchWorkflows(ctx, a.workflowsPath, a.applyWorkflows)
}

// SaveWorkflow writes def to workflows.yaml under category, keeping the
// other definitions in the file, and registers it.
func (a *App) SaveWorkflow(category string, def domain.WorkflowDefinition) error {
	if category == "" {
		return fmt.Errorf("%w: workflow category is required", domain.ErrInvalidConfig)
	}
	defs, err := file.LoadWorkflows(a.workflowsPath)
	if err != nil {
		return err
	}
	defs[category] = def
	if err := file.SaveWorkflows(a.workflowsPath, defs); err != nil {
		return err
	}
	a.Workflows.Register(category, def)
	logger.Info("Saved workflow %q to %s", category, a.workflowsPath)
	return nil
}

// WorkflowsPath returns the workflow definitions file.
func (a *App) WorkflowsPath() string {
	return a.workflowsPath
}

func (a *App) buildChunker() (driven.Chunker, error) {
	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry)

	name := a.Config.GetString("chunker.name")
	if name == "" {
		name = postprocessors.DefaultChunker
	}

	cfg := map[string]any{}
	if size := a.Config.GetInt("chunker.chunk_size"); size > 0 {
		cfg["chunk_size"] = size
	}
	if _, ok := a.Config.Get("chunker.overlap"); ok {
		cfg["overlap"] = a.Config.GetInt("chunker.overlap")
	}

	chunker, err := registry.Build(name, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: chunker: %v", domain.ErrInvalidConfig, err)
	}
	return chunker, nil
}

// openStore opens the record store selected by storeName.
func (a *App) openStore(dir string) (driven.RecordStore, error) {
	dataDir := a.Config.GetString("store.path")
	if dataDir == "" {
		dataDir = filepath.Join(dir, "data")
	}

	switch a.storeName {
	case "", StoreSQLite:
		a.storeName = StoreSQLite
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, err
		}
		a.track(store)
		return store, nil
	case StoreBluge:
		index, err := blugestore.Open(filepath.Join(dataDir, "index"))
		if err != nil {
			return nil, err
		}
		a.track(index)
		return index, nil
	case StoreMemory:
		return memstore.NewRecordStore(), nil
	default:
		return nil, fmt.Errorf("%w: unknown store backend %q", domain.ErrInvalidConfig, a.storeName)
	}
}

// StoreName returns the selected record store backend.
func (a *App) StoreName() string {
	return a.storeName
}

func (a *App) track(c io.Closer) {
	a.mu.Lock()
	a.closers = append(a.closers, c)
	a.mu.Unlock()
}

// Close releases stores and caches in reverse order of opening.
func (a *App) Close() error {
	a.mu.Lock()
	closers := a.closers
	a.closers = nil
	a.mu.Unlock()

	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
