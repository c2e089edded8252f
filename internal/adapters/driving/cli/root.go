// Package cli implements the hopwise command line. It is a driving adapter
// over the orchestrator, router, stats and settings ports.
package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/hopwise/hopwise/internal/bootstrap"
	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driving"
	"github.com/hopwise/hopwise/internal/logger"
)

// version is set at build time with -ldflags.
var version = "dev"

var (
	verbose      bool
	jsonOutput   bool
	configPath   string
	userLocation string
)

// Services used by commands. Built lazily from settings on first use; tests
// assign them directly.
var (
	settingsService driving.SettingsService
	orchestrator    driving.Orchestrator
	router          driving.DomainRouter
	statsService    driving.StatsService
	scheduler       driving.Scheduler
	metricsHandler  http.Handler

	wired *bootstrap.App
)

var rootCmd = &cobra.Command{
	Use:   "hopwise",
	Short: "Compare rides and restaurants from one question",
	Long: `Hopwise answers travel questions in plain language.

It works out whether you need a ride, a place to eat or both, asks every
configured provider, and recommends one option per domain.

Examples:
  hopwise ask "cheapest ride from Times Square to JFK"
  hopwise ask --priority rating "sushi near SoHo then a ride home"
  hopwise food --category Cafe "vegan brunch in Brooklyn"`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output to stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.hopwise/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&userLocation, "location", "l", "",
		"where you are, used when the query does not say")
}

// Execute runs the root command and releases wired resources afterwards.
func Execute(ctx context.Context) error {
	defer closeServices()
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

func ensureSettings() error {
	if settingsService != nil {
		return nil
	}
	svc, err := bootstrap.LoadSettings(configPath)
	if err != nil {
		return err
	}
	settingsService = svc
	return nil
}

// ensureServices wires the query services unless they are already set.
func ensureServices(ctx context.Context, opts bootstrap.Options) error {
	if orchestrator != nil {
		return nil
	}
	if err := ensureSettings(); err != nil {
		return err
	}
	settings, err := bootstrap.Resolve(settingsService)
	if err != nil {
		return err
	}
	if opts.PromptDir == "" {
		if opts.PromptDir, err = bootstrap.PromptDir(configPath); err != nil {
			logger.Warn("Prompt overrides disabled: %v", err)
		}
	}

	app, err := bootstrap.Build(ctx, settings, opts)
	if err != nil {
		return fmt.Errorf("start hopwise: %w", err)
	}
	wired = app
	orchestrator = app.Orchestrator
	router = app.Router
	statsService = app.Stats
	scheduler = app.Scheduler
	metricsHandler = app.Metrics.Handler()
	return nil
}

// startBackground runs the scheduler for long-lived commands. The returned
// func stops it.
func startBackground(ctx context.Context) func() {
	if scheduler == nil {
		return func() {}
	}
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		if err := scheduler.Start(ctx); err != nil && ctx.Err() == nil {
			logger.Warn("Scheduler stopped: %v", err)
		}
	}()
	return func() {
		cancel()
		if err := scheduler.Stop(); err != nil {
			logger.Warn("Scheduler stop: %v", err)
		}
	}
}

func closeServices() {
	scheduler = nil
	if wired == nil {
		return
	}
	if err := wired.Close(); err != nil {
		logger.Warn("Shutdown: %v", err)
	}
	wired = nil
}

// queryContext is sent with every query.
func queryContext() domain.QueryContext {
	return domain.QueryContext{UserLocation: userLocation}
}
