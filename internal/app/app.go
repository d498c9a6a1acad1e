package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"goodnews/internal/api"
	"goodnews/internal/config"
	"goodnews/internal/infrastructure/extract"
	"goodnews/internal/infrastructure/feeds"
	"goodnews/internal/infrastructure/llm"
	"goodnews/internal/infrastructure/scheduler"
	"goodnews/internal/infrastructure/search"
	"goodnews/internal/infrastructure/storage"
	"goodnews/internal/infrastructure/telegram"
	"goodnews/internal/logging"
	"goodnews/internal/ports"
	"goodnews/internal/source"
	"goodnews/internal/summary"
	"goodnews/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg         config.Config
	logger      *slog.Logger
	ledger      *storage.SQLiteLedger
	maintenance *usecase.Maintenance
	server      *http.Server
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	ledger, err := storage.Open(cfg.Ledger.Path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	var strategies []source.Strategy
	if cfg.Search.APIKey != "" {
		strategies = append(strategies, search.NewTavilyStrategy(cfg.Search.Endpoint, cfg.Search.APIKey, cfg.Search.Timeout()))
	} else {
		baseLogger.Warn("search api key not set, tavily strategy disabled")
	}
	for _, feed := range cfg.Feeds {
		strategies = append(strategies, feeds.NewFeedStrategy(feed.Name, feed.URL))
	}

	candidateSource := source.New(baseLogger.With("component", "source"), strategies...)

	summarizer := summary.New(
		llm.NewClient(cfg.Ollama),
		cfg.Ollama.Timeout(),
		baseLogger.With("component", "summary"),
	)

	curator := usecase.NewCurator(cfg.Curation, usecase.CuratorDeps{
		Source:     candidateSource,
		Ledger:     ledger,
		Fetcher:    extract.New(config.FetchTimeout),
		Summarizer: summarizer,
		Logger:     baseLogger.With("component", "curator"),
	})

	var notifier ports.Notifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		notifier = telegram.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	}

	maintenance := usecase.NewMaintenance(
		scheduler.NewIntervalScheduler(cfg.Ledger.PruneInterval()),
		ledger,
		curator,
		notifier,
		cfg.Ledger.Retention(),
		baseLogger.With("component", "maintenance"),
	)

	apiServer := api.NewServer(curator, baseLogger.With("component", "api"))

	return &Application{
		cfg:         cfg,
		logger:      baseLogger,
		ledger:      ledger,
		maintenance: maintenance,
		server: &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           apiServer.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Run serves HTTP until ctx is cancelled, then shuts everything down.
func (a *Application) Run(ctx context.Context) error {
	if err := a.maintenance.Start(ctx); err != nil {
		return fmt.Errorf("start maintenance: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", "addr", a.cfg.Server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close(context.Background())
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn("http shutdown", "error", err)
	}
	a.close(shutdownCtx)

	return nil
}

func (a *Application) close(ctx context.Context) {
	if err := a.maintenance.Stop(ctx); err != nil {
		a.logger.Warn("stop maintenance", "error", err)
	}
	if err := a.ledger.Close(); err != nil {
		a.logger.Warn("close ledger", "error", err)
	}
}
