package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"NPSLabeler/internal/config"
	"NPSLabeler/internal/infrastructure/classifier"
	"NPSLabeler/internal/infrastructure/export"
	"NPSLabeler/internal/infrastructure/scheduler"
	"NPSLabeler/internal/infrastructure/telegram"
	"NPSLabeler/internal/infrastructure/warehouse"
	"NPSLabeler/internal/labeling"
	"NPSLabeler/internal/logging"
	"NPSLabeler/internal/ports"
	"NPSLabeler/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	db       *sqlx.DB
	pipeline *usecase.Pipeline
}

// New builds a runnable application instance against a live warehouse.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	db, err := warehouse.Open(cfg.Warehouse)
	if err != nil {
		return nil, fmt.Errorf("open warehouse: %w", err)
	}

	source := warehouse.NewSource(db, cfg.Run.Incremental(), baseLogger.With("component", "source"))
	sink := warehouse.NewSink(db, baseLogger.With("component", "sink"))

	var scorer ports.Classifier
	switch cfg.Classifier.Backend {
	case config.BackendOpenAI:
		scorer = classifier.NewOpenAIClient(cfg.Classifier.APIKey, cfg.Classifier.Model)
	default:
		scorer = classifier.NewHTTPClient(cfg.Classifier.Endpoint, cfg.Classifier.APIKey, cfg.Classifier.Timeout())
	}

	var exporter ports.Exporter
	if cfg.Run.CSVPath != "" {
		exporter = export.NewCSVWriter(cfg.Run.CSVPath)
	}

	var notifier ports.Notifier
	if tg := cfg.Notifications.Telegram; tg.BotToken != "" && tg.ChatID != "" {
		notifier = telegram.NewNotifier(tg.BotToken, tg.ChatID)
	}

	pipeline, err := usecase.NewPipeline(usecase.PipelineDeps{
		Source:      source,
		Classifier:  scorer,
		Sink:        sink,
		Exporter:    exporter,
		Notifier:    notifier,
		Logger:      baseLogger.With("component", "pipeline"),
		Taxonomy:    labeling.Taxonomy(),
		ChunkSize:   cfg.Run.ChunkSize,
		Workers:     cfg.Run.Workers,
		Timeout:     cfg.Classifier.Timeout(),
		Incremental: cfg.Run.Incremental(),
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Application{cfg: cfg, logger: baseLogger, db: db, pipeline: pipeline}, nil
}

// Run executes the pipeline once, or on an interval when one is configured,
// and blocks until the context is canceled or the single run completes.
func (a *Application) Run(ctx context.Context) error {
	defer func() {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("closing warehouse connection", "error", err)
		}
	}()

	every := a.cfg.Run.Every()
	if every <= 0 {
		stats, err := a.pipeline.Run(ctx)
		if err != nil {
			return err
		}
		a.logger.Info("run complete", "labeled", stats.Labeled, "failed", stats.Failed)
		return nil
	}

	sched := usecase.NewScheduler(
		scheduler.NewIntervalScheduler(every),
		a.pipeline,
		a.logger.With("component", "scheduler"),
	)
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	a.logger.Info("scheduler started", "every", every)

	<-ctx.Done()

	return sched.Stop(context.Background())
}
