// Package main provides the CLI entrypoint for inkwell.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/custodia-labs/inkwell/internal/adapters/driven/ai"
	"github.com/custodia-labs/inkwell/internal/adapters/driven/clock"
	"github.com/custodia-labs/inkwell/internal/adapters/driven/config/file"
	"github.com/custodia-labs/inkwell/internal/adapters/driven/metrics/prometheus"
	"github.com/custodia-labs/inkwell/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/inkwell/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/inkwell/internal/adapters/driven/suggestions"
	"github.com/custodia-labs/inkwell/internal/adapters/driving/cli"
	"github.com/custodia-labs/inkwell/internal/analyzers/goals"
	"github.com/custodia-labs/inkwell/internal/analyzers/grammar"
	"github.com/custodia-labs/inkwell/internal/analyzers/style"
	"github.com/custodia-labs/inkwell/internal/core/ports/driven"
	"github.com/custodia-labs/inkwell/internal/core/services"
	"github.com/custodia-labs/inkwell/internal/logger"
	"github.com/custodia-labs/inkwell/internal/normalisers"
	"github.com/custodia-labs/inkwell/internal/normalisers/docx"
	"github.com/custodia-labs/inkwell/internal/normalisers/html"
	"github.com/custodia-labs/inkwell/internal/normalisers/markdown"
	"github.com/custodia-labs/inkwell/internal/normalisers/plaintext"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cli.SetVersion(version)
	cli.SetBootstrap(func(opts cli.Options) (*cli.Services, func(), error) {
		return bootstrap(ctx, opts)
	})

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// stores groups the persistence collaborators for one run.
type stores struct {
	config      driven.ConfigStore
	history     driven.HistoryStore
	preferences driven.PreferencesStore
	close       func()
}

func openStores(ephemeral bool) (*stores, error) {
	if ephemeral {
		return &stores{
			config:      memory.NewConfigStore(),
			history:     memory.NewHistoryStore(),
			preferences: memory.NewPreferencesStore(),
			close:       func() {},
		}, nil
	}

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return nil, err
	}
	db, err := sqlite.NewStore("")
	if err != nil {
		return nil, err
	}
	logger.Debug("using database %s", db.Path())

	return &stores{
		config:      configStore,
		history:     db.HistoryStore(),
		preferences: db.PreferencesStore(),
		close: func() {
			if err := db.Close(); err != nil {
				logger.Warn("closing database: %v", err)
			}
		},
	}, nil
}

// bootstrap wires the analyzers, stores and services behind the CLI.
func bootstrap(ctx context.Context, opts cli.Options) (*cli.Services, func(), error) {
	st, err := openStores(opts.Ephemeral)
	if err != nil {
		return nil, nil, err
	}

	settingsService := services.NewSettingsService(st.config, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		st.close()
		return nil, nil, err
	}

	var remote driven.SuggestionSource
	var llm driven.LLMService
	if settings.Analysis.EnableRemoteSuggestions {
		llm, err = ai.CreateAndValidateLLMService(ctx, &settings.LLM)
		switch {
		case err != nil:
			logger.Warn("remote suggestions disabled: %v", err)
		case llm == nil:
			logger.Warn("remote suggestions enabled but no LLM provider is configured")
		default:
			prompts, err := file.NewPromptStore("")
			if err != nil {
				logger.Warn("prompt store unavailable, using defaults: %v", err)
			}
			var promptStore driven.PromptStore
			if prompts != nil {
				promptStore = prompts
			}
			remote = suggestions.NewSource(llm, promptStore, suggestions.DefaultConfig())
		}
	}

	styleAnalyzer := style.New(style.DefaultConfig())
	pipeline := services.NewPipeline(
		settings.Analysis,
		styleAnalyzer,
		grammar.New(grammar.DefaultConfig()),
		goals.New(styleAnalyzer),
		remote,
	)

	metrics := prometheus.New()
	coordinator := services.NewCoordinator(settings.Analysis, pipeline, clock.New(), st.history, metrics)

	registry := normalisers.NewRegistry(plaintext.New(), markdown.New(), html.New(), docx.New())

	cleanup := func() {
		coordinator.Stop()
		coordinator.Wait()
		if llm != nil {
			if err := llm.Close(); err != nil {
				logger.Warn("closing LLM service: %v", err)
			}
		}
		st.close()
	}

	return &cli.Services{
		Coordinator: coordinator,
		Goals:       services.NewGoalService(st.preferences),
		History:     services.NewHistoryService(st.history),
		Settings:    settingsService,
		Normalisers: registry,
		Metrics:     metrics.Handler(),
	}, cleanup, nil
}
