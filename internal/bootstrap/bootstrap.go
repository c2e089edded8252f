// Package bootstrap wires settings, storage, providers and services into the
// ports the driving adapters consume.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/hopwise/hopwise/internal/adapters/driven/ai"
	"github.com/hopwise/hopwise/internal/adapters/driven/config/envconfig"
	"github.com/hopwise/hopwise/internal/adapters/driven/config/file"
	"github.com/hopwise/hopwise/internal/adapters/driven/storage/memory"
	"github.com/hopwise/hopwise/internal/adapters/driven/storage/redis"
	"github.com/hopwise/hopwise/internal/adapters/driven/storage/sqlite"
	"github.com/hopwise/hopwise/internal/adapters/driven/telemetry"
	"github.com/hopwise/hopwise/internal/connectors"
	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driven"
	"github.com/hopwise/hopwise/internal/core/ports/driving"
	"github.com/hopwise/hopwise/internal/core/services"
	"github.com/hopwise/hopwise/internal/logger"
)

// promptReloadDebounce coalesces editor save bursts.
const promptReloadDebounce = 250 * time.Millisecond

// LoadSettings opens the TOML config at path (or ~/.hopwise/config.toml when
// empty) and returns the settings service over it.
func LoadSettings(path string) (*services.SettingsService, error) {
	var (
		store *file.ConfigStore
		err   error
	)
	if path == "" {
		store, err = file.NewConfigStore("")
	} else {
		store, err = file.NewConfigStoreAt(path)
	}
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	return services.NewSettingsService(store), nil
}

// Resolve reads settings and applies HOPWISE_* environment overrides.
func Resolve(settings driving.SettingsService) (domain.AppSettings, error) {
	s, err := settings.Get()
	if err != nil {
		return s, fmt.Errorf("load settings: %w", err)
	}
	overrides, err := envconfig.Parse()
	if err != nil {
		return s, err
	}
	if err := overrides.Apply(&s); err != nil {
		return s, err
	}
	return s, nil
}

// Options tune Build.
type Options struct {
	// PromptDir holds prompt overrides. Empty disables file prompts.
	PromptDir string

	// WatchPrompts reloads prompt files on change until ctx ends.
	WatchPrompts bool

	// ValidateLLM pings the model before use and drops it when unreachable.
	ValidateLLM bool
}

// App holds the wired services. Close releases everything it opened.
type App struct {
	Settings     domain.AppSettings
	Router       *services.RouterService
	Orchestrator *services.OrchestratorService
	Stats        *services.StatsService
	Scheduler    *services.Scheduler

	RideComparator       *services.Comparator[domain.RideEstimate]
	RestaurantComparator *services.Comparator[domain.Restaurant]

	Metrics *telemetry.Metrics
	Prompts *file.PromptStore

	cache   driven.CacheStore
	limiter driven.RateLimiter
	closers []io.Closer
}

// Build wires the application for settings.
func Build(ctx context.Context, settings domain.AppSettings, opts Options) (*App, error) {
	app := &App{Settings: settings, Metrics: telemetry.NewMetrics()}
	ok := false
	defer func() {
		if !ok {
			_ = app.Close()
		}
	}()

	llm, err := buildLLM(ctx, &settings.LLM, opts.ValidateLLM)
	if err != nil {
		return nil, err
	}
	if llm != nil {
		app.closers = append(app.closers, llm)
	}

	var rdb *goredis.Client
	redisClient := func() *goredis.Client {
		if rdb == nil {
			rdb = redis.NewClient(settings.RedisAddr)
			app.closers = append(app.closers, rdb)
		}
		return rdb
	}

	if app.cache, err = buildCache(settings.Cache, redisClient); err != nil {
		return nil, err
	}
	app.closers = append(app.closers, app.cache)

	if app.limiter, err = buildLimiter(settings.RateLimit, redisClient); err != nil {
		return nil, err
	}

	factory := connectors.NewFactory()
	rides, err := factory.RideProviders(settings.Providers)
	if err != nil {
		return nil, err
	}
	restaurants, err := factory.RestaurantProviders(ctx, settings.Providers)
	if err != nil {
		return nil, err
	}
	geocoder, err := factory.Geocoder(settings.Geocoder, settings.Providers.Timeout,
		app.cache, settings.Cache.GeocodingTTL, app.limiter)
	if err != nil {
		return nil, err
	}

	parser := services.NewIntentParser(llm, settings.LLM.Timeout)
	app.Router = services.NewRouterService(settings.EnabledDomains, llm, app.Metrics).
		WithModelTimeout(settings.LLM.Timeout)
	rideCmp := services.NewComparator[domain.RideEstimate](services.NewRideRules(settings.Weights), llm, app.Metrics).
		WithModelTimeout(settings.LLM.Timeout)
	restCmp := services.NewComparator[domain.Restaurant](services.RestaurantRules{}, llm, app.Metrics).
		WithModelTimeout(settings.LLM.Timeout)
	app.RideComparator, app.RestaurantComparator = rideCmp, restCmp

	if opts.PromptDir != "" {
		prompts, err := file.NewPromptStore(opts.PromptDir, services.DefaultPrompts())
		if err != nil {
			logger.Warn("Prompt overrides disabled: %v", err)
		} else {
			app.Prompts = prompts
			parser.SetPromptStore(prompts)
			app.Router.SetPromptStore(prompts)
			rideCmp.SetPromptStore(prompts)
			restCmp.SetPromptStore(prompts)
			if opts.WatchPrompts {
				if err := prompts.Watch(ctx, promptReloadDebounce); err != nil {
					logger.Warn("Prompt hot reload disabled: %v", err)
				}
			}
		}
	}

	fetch := func(ttl time.Duration) services.FetchConfig {
		return services.FetchConfig{
			Cache:   app.cache,
			Limiter: app.limiter,
			Metrics: app.Metrics,
			TTL:     ttl,
			Timeout: settings.Providers.Timeout,
		}
	}

	registry := services.NewRegistry(
		services.NewRideHandler(parser, rides, rideCmp, geocoder, fetch(settings.Cache.RideshareTTL)),
		services.NewRestaurantHandler(parser, restaurants, restCmp, geocoder, fetch(settings.Cache.RestaurantsTTL)),
	)
	app.Orchestrator = services.NewOrchestratorService(app.Router, registry)
	app.Stats = services.NewStatsService(app.cache, app.limiter)

	var purger driven.CachePurger
	if p, isPurger := app.cache.(driven.CachePurger); isPurger {
		purger = p
	}
	app.Scheduler = services.NewScheduler(domain.DefaultSchedulerConfig(), purger)

	logger.Debug("Wired cache=%s ratelimit=%s geocoder=%s llm=%t",
		settings.Cache.Backend, settings.RateLimit.Backend, settings.Geocoder, llm != nil)
	ok = true
	return app, nil
}

// PromptDir returns the prompt directory next to the config file at
// configPath, or ~/.hopwise/prompts.
func PromptDir(configPath string) (string, error) {
	if configPath != "" {
		return filepath.Join(filepath.Dir(configPath), "prompts"), nil
	}
	dir, err := file.DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "prompts"), nil
}

// Close releases opened resources in reverse order.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func buildLLM(ctx context.Context, settings *domain.LLMSettings, validate bool) (driven.LLMService, error) {
	if !validate {
		return ai.CreateLLMService(settings)
	}
	llm, err := ai.CreateAndValidateLLMService(ctx, settings)
	if err != nil {
		logger.Warn("Continuing without a model: %v", err)
		return nil, nil
	}
	return llm, nil
}

func buildCache(settings domain.CacheSettings, rdb func() *goredis.Client) (driven.CacheStore, error) {
	switch settings.Backend {
	case domain.BackendMemory, "":
		return memory.NewCache(), nil
	case domain.BackendRedis:
		return redis.NewCache(rdb()), nil
	case domain.BackendSQLite:
		store, err := sqlite.NewStore(settings.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite cache: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: unknown cache backend %q", domain.ErrInvalidInput, settings.Backend)
	}
}

func buildLimiter(settings domain.RateLimitSettings, rdb func() *goredis.Client) (driven.RateLimiter, error) {
	switch settings.Backend {
	case domain.BackendMemory, "":
		return memory.NewRateLimiter(settings), nil
	case domain.BackendRedis:
		return redis.NewRateLimiter(rdb(), settings), nil
	default:
		return nil, fmt.Errorf("%w: rate limiter backend %q is not supported", domain.ErrInvalidInput, settings.Backend)
	}
}
