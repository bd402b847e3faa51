package main

import (
	"context"
	"fmt"
	"time"

	"chrona-bot/internal/api"
	"chrona-bot/internal/engine"
	"chrona-bot/internal/engine/engineobs"
	"chrona-bot/internal/interfaces"
	"chrona-bot/internal/llm/claude"
	"chrona-bot/internal/llm/gemini"
	"chrona-bot/internal/llm/llmobs"
	"chrona-bot/internal/llm/openai"
	"chrona-bot/internal/llm/static"
	"chrona-bot/internal/logger"
	"chrona-bot/internal/progress"
	"chrona-bot/internal/publisher/dryrun"
	"chrona-bot/internal/publisher/pubobs"
	"chrona-bot/internal/publisher/x"
	"chrona-bot/internal/store"
	"chrona-bot/internal/trace"
)

// initializeLogger builds the process logger from LOG_* variables
func initializeLogger() (*logger.Logger, error) {
	log, err := logger.New(logger.LoadConfigFromEnv())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log, nil
}

// initializeTracer enables OpenTelemetry tracing; failures only disable tracing
func initializeTracer(ctx context.Context, log *logger.Logger) {
	if err := trace.Init(version); err != nil {
		log.Warn(ctx, "Failed to initialize tracer, tracing disabled", "error", err)
	}
}

func shutdownTracer(log *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := trace.Shutdown(ctx); err != nil {
		log.Warn(ctx, "Failed to shut down tracer", "error", err)
	}
}

// loadConfig loads the optional config file, applies command line flags and validates
func loadConfig(ctx context.Context, log *logger.Logger, opts *options) (*store.Config, error) {
	cfg, err := store.Load(opts.configPath)
	if err != nil {
		log.ErrorWithErr(ctx, "Failed to load config", err, "path", opts.configPath)
		return nil, err
	}
	if opts.dryRun {
		cfg.Mode = store.ModeDryRun
	}
	if err := cfg.Validate(); err != nil {
		log.ErrorWithErr(ctx, "Invalid configuration, aborting", err)
		return nil, err
	}

	if cfg.DryRun() {
		log.Warn(ctx, "Running in DRY_RUN mode - the post will only be logged")
	}
	log.Info(ctx, "Configuration loaded",
		"mode", cfg.Mode,
		"provider", cfg.LLM.Provider,
		"model", cfg.LLM.Model,
		"timezone", cfg.Timezone,
	)
	return cfg, nil
}

// resolveDate picks the calendar date to report on, in the configured timezone
func resolveDate(ctx context.Context, log *logger.Logger, cfg *store.Config, flag string, now time.Time) (time.Time, error) {
	loc, err := cfg.Location()
	if err != nil {
		log.Warn(ctx, "Unknown timezone, falling back to UTC", "timezone", cfg.Timezone, "error", err)
		loc = time.UTC
	}

	if flag != "" {
		d, err := time.ParseInLocation("2006-01-02", flag, loc)
		if err != nil {
			return time.Time{}, err
		}
		return d, nil
	}

	today := progress.Today(now, loc)
	log.Info(ctx, "Target date resolved", "now", now.In(loc).Format(time.RFC3339), "date", today.Format("2006-01-02"))
	return today, nil
}

// initializeGenerator returns the configured sentence generator with observability.
// A generator that cannot be built is replaced by the static fallback: sentence
// generation never aborts a run.
func initializeGenerator(ctx context.Context, cfg *store.Config, log *logger.Logger) interfaces.SentenceGenerator {
	var (
		gen interfaces.SentenceGenerator
		err error
	)

	switch cfg.LLM.Provider {
	case store.ProviderGemini:
		gen, err = gemini.New(ctx, gemini.Params{
			APIKey:      cfg.Credentials.GeminiAPIKey,
			Model:       cfg.LLM.Model,
			Prompt:      cfg.LLM.Prompt,
			Endpoint:    cfg.LLM.Endpoint,
			MaxTokens:   cfg.LLM.MaxTokens,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLMTimeout(),
		})
	case store.ProviderOpenAI:
		gen, err = openai.New(openai.Params{
			APIKey:      cfg.Credentials.OpenAIAPIKey,
			Model:       cfg.LLM.Model,
			Prompt:      cfg.LLM.Prompt,
			Endpoint:    cfg.LLM.Endpoint,
			MaxTokens:   cfg.LLM.MaxTokens,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLMTimeout(),
		}, api.WithLogger(log))
	case store.ProviderClaude:
		gen, err = claude.New(claude.Params{
			APIKey:      cfg.Credentials.ClaudeAPIKey,
			Model:       cfg.LLM.Model,
			Prompt:      cfg.LLM.Prompt,
			Endpoint:    cfg.LLM.Endpoint,
			MaxTokens:   cfg.LLM.MaxTokens,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLMTimeout(),
		}, api.WithLogger(log))
	default:
		gen = static.New(cfg.LLM.Fallback)
	}

	if err != nil {
		log.ErrorWithErr(ctx, "Failed to initialize sentence generator, using fallback sentence", err,
			"provider", cfg.LLM.Provider,
		)
		gen = static.New(cfg.LLM.Fallback)
	}

	return llmobs.Wrap(gen, cfg.LLM.Provider, log)
}

// initializePublisher returns the X client, or the dry-run publisher, with observability
func initializePublisher(ctx context.Context, cfg *store.Config, log *logger.Logger) (interfaces.Publisher, error) {
	if cfg.DryRun() {
		return pubobs.Wrap(dryrun.New(log), log), nil
	}

	pub, err := x.NewClient(x.Params{
		APIKey:            cfg.Credentials.XAPIKey,
		APISecret:         cfg.Credentials.XAPISecret,
		AccessToken:       cfg.Credentials.XAccessToken,
		AccessTokenSecret: cfg.Credentials.XAccessTokenSecret,
		Endpoint:          cfg.X.Endpoint,
		Timeout:           cfg.XTimeout(),
	}, api.WithLogger(log))
	if err != nil {
		return nil, err
	}
	log.Debug(ctx, "X publisher initialized", "endpoint", cfg.X.Endpoint)
	return pubobs.Wrap(pub, log), nil
}

// initializeEngine initializes and returns the run engine with observability
func initializeEngine(cfg *store.Config, gen interfaces.SentenceGenerator, pub interfaces.Publisher, log *logger.Logger) interfaces.Engine {
	return engineobs.Wrap(engine.New(cfg, gen, pub, log), log)
}
