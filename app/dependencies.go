package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/upb/llm-router/config"
	"github.com/upb/llm-router/internal/observability"
	"github.com/upb/llm-router/models"
	"github.com/upb/llm-router/services/classifier"
	"github.com/upb/llm-router/services/dispatch"
	"github.com/upb/llm-router/services/inference"
	"github.com/upb/llm-router/services/policy"
	"github.com/upb/llm-router/services/providers"
	"github.com/upb/llm-router/services/providers/anthropic"
	"github.com/upb/llm-router/services/providers/ollama"
	"github.com/upb/llm-router/services/providers/openai"
	"github.com/upb/llm-router/services/routing"
)

// Version is reported as the service version in traces
const Version = "0.1.0"

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *observability.Metrics
	Catalog *config.Catalog

	// Routing pipeline
	Registry   *providers.Registry
	Classifier classifier.Classifier
	Selector   *policy.Selector
	Dispatcher *dispatch.Dispatcher

	// Services
	RoutingService   *routing.RoutingService
	InferenceService *inference.InferenceService

	shutdownTracing observability.ShutdownFunc
}

// NewDependencies creates and wires up all application dependencies
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewMetrics(),
	}

	// Initialize tracing first so every later component picks up the provider
	if err := deps.initTracing(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	// Load the static model catalog
	if err := deps.initCatalog(cfg); err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	// Initialize provider registry
	if err := deps.initProviders(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize providers: %w", err)
	}

	// Initialize classifier, selector and services
	deps.initServices(cfg)

	logger.Info("all dependencies initialized successfully",
		zap.Stringers("providers", deps.Registry.IDs()),
		zap.String("ruleset", deps.Classifier.Name()),
		zap.Int("catalog_models", deps.Catalog.ModelCount()))
	return deps, nil
}

func (d *Dependencies) initTracing(ctx context.Context, cfg *config.Config) error {
	shutdown, err := observability.InitTracing(ctx, observability.TracingConfig{
		Enabled:     cfg.Observability.TracingEnabled,
		Endpoint:    cfg.Observability.TracingEndpoint,
		ServiceName: cfg.Observability.ServiceName,
		Version:     Version,
		SampleRate:  cfg.Observability.TracingSampleRate,
		Insecure:    cfg.Observability.TracingInsecure,
	}, d.Logger)
	if err != nil {
		return err
	}
	d.shutdownTracing = shutdown
	return nil
}

func (d *Dependencies) initCatalog(cfg *config.Config) error {
	catalog, err := config.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}

	if !catalog.Found {
		d.Logger.Warn("model catalog not found, serving an empty catalog",
			zap.String("path", catalog.Path))
	} else {
		d.Logger.Info("model catalog loaded",
			zap.String("path", catalog.Path),
			zap.Int("models", catalog.ModelCount()))
	}

	d.Catalog = catalog
	return nil
}

// initProviders builds one adapter per backend and checks that every
// provider the routing table can select is registered
func (d *Dependencies) initProviders(cfg *config.Config) error {
	registry, err := providers.NewRegistryBuilder().
		WithAdapterBuilder(models.ProviderOllama, ollama.Builder).
		WithAdapterBuilder(models.ProviderOpenAI, openai.Builder).
		WithAdapterBuilder(models.ProviderAnthropic, anthropic.Builder).
		Build(ProviderConfigs(cfg))
	if err != nil {
		return err
	}

	if err := registry.Require(policy.DefaultTable().Providers()...); err != nil {
		return err
	}

	// Missing keys are reported per call as auth errors, not at startup
	if cfg.Providers.OpenAI.APIKey == "" {
		d.Logger.Warn("OPENAI_API_KEY is not set, openai calls will fail")
	}
	if cfg.Providers.Anthropic.APIKey == "" {
		d.Logger.Warn("ANTHROPIC_API_KEY is not set, anthropic calls will fail")
	}

	d.Registry = registry
	return nil
}

func (d *Dependencies) initServices(cfg *config.Config) {
	d.Classifier = classifier.NewKeywordClassifier(d.Catalog.Ruleset())
	d.Selector = policy.NewSelector(policy.DefaultTable(), d.Registry)
	d.Dispatcher = dispatch.NewDispatcher(d.Registry, nil, cfg.Dispatch.Timeout, d.Metrics, d.Logger)
	d.RoutingService = routing.NewRoutingService(d.Classifier, d.Selector, d.Metrics, d.Logger)
	d.InferenceService = inference.NewInferenceService(d.RoutingService, d.Dispatcher, d.Logger)
}

// ProviderConfigs maps backend settings to adapter configs
func ProviderConfigs(cfg *config.Config) map[models.ProviderID]providers.Config {
	return map[models.ProviderID]providers.Config{
		models.ProviderOllama: {
			BaseURL: cfg.Providers.Ollama.BaseURL,
		},
		models.ProviderOpenAI: {
			BaseURL: cfg.Providers.OpenAI.BaseURL,
			APIKey:  cfg.Providers.OpenAI.APIKey,
		},
		models.ProviderAnthropic: {
			BaseURL: cfg.Providers.Anthropic.BaseURL,
			APIKey:  cfg.Providers.Anthropic.APIKey,
			Version: cfg.Providers.Anthropic.Version,
		},
	}
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	// Flush pending spans
	if d.shutdownTracing != nil {
		if err := d.shutdownTracing(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shut down tracing: %w", err))
		}
	}

	// Sync logger
	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
