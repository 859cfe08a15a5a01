package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"ListingsMonitor/internal/config"
	"ListingsMonitor/internal/domain"
	"ListingsMonitor/internal/infrastructure/email"
	"ListingsMonitor/internal/infrastructure/parser"
	"ListingsMonitor/internal/infrastructure/scheduler"
	"ListingsMonitor/internal/infrastructure/state"
	"ListingsMonitor/internal/infrastructure/telegram"
	"ListingsMonitor/internal/logging"
	"ListingsMonitor/internal/ports"
	"ListingsMonitor/internal/scanner"
	"ListingsMonitor/internal/usecase"
)

// Application wires configs to the pipeline and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
	db       *sql.DB
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	registry := scanner.NewRegistry()
	registry.Register(parser.NewSSLVScanner(
		&http.Client{Timeout: cfg.Scraper.RequestTimeout()},
		cfg.Scraper.UserAgent,
	))

	source := parser.NewStrategySource(
		registry,
		"sslv",
		cfg.Sources,
		cfg.Scraper.SourceDelay(),
		baseLogger.With("component", "source"),
	)

	var (
		store ports.SeenStore
		db    *sql.DB
	)
	if cfg.Storage.PostgresDSN != "" {
		var err error
		db, err = state.Open(cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open seen store: %w", err)
		}
		store = state.NewPostgresStore(db, baseLogger.With("component", "store.postgres"))
	} else {
		store = state.NewFileStore(cfg.Storage.StateFile, baseLogger.With("component", "store.file"))
	}

	var notifiers []ports.Notifier
	if mail := cfg.Notifications.Email; mail.From != "" && mail.To != "" {
		notifiers = append(notifiers, email.NewNotifier(mail.SMTPHost, mail.SMTPPort, mail.From, mail.Password, mail.To))
	}
	if tg := cfg.Notifications.Telegram; tg.BotToken != "" && tg.ChatID != "" {
		notifiers = append(notifiers, telegram.NewNotifier(tg.BotToken, tg.ChatID))
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:    source,
		Store:     store,
		Notifiers: notifiers,
		Criteria:  toCriteria(cfg.Criteria),
		Logger:    baseLogger.With("component", "pipeline"),
	})

	return &Application{cfg: cfg, logger: baseLogger, pipeline: pipeline, db: db}, nil
}

// Run executes a single pass, or keeps running on the configured interval
// until the context is cancelled. Per-source failures stay internal; only a
// wiring-level failure is reported.
func (a *Application) Run(ctx context.Context) error {
	if a.cfg.Scheduler.Mode != config.ModeContinuous {
		a.pipeline.RunOnce(ctx, time.Now())
		return nil
	}

	driver := scheduler.NewIntervalScheduler(a.cfg.Scheduler.Interval(), a.cfg.Scheduler.RunImmediately)
	runner := usecase.NewRunner(driver, a.pipeline)

	if err := runner.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	a.logger.Info("monitoring started",
		"interval", a.cfg.Scheduler.Interval(),
		"sources", len(a.cfg.Sources))

	<-ctx.Done()
	return runner.Stop(context.Background())
}

// Close releases held resources.
func (a *Application) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func toCriteria(cfg config.CriteriaConfig) domain.Criteria {
	return domain.Criteria{
		MinPrice:        cfg.MinPrice,
		MaxPrice:        cfg.MaxPrice,
		MinArea:         cfg.MinArea,
		IncludeKeywords: cfg.IncludeKeywords,
		ExcludeKeywords: cfg.ExcludeKeywords,
	}
}
