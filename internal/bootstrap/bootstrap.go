package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/metadoclabs/insights/internal/config"
	"github.com/metadoclabs/insights/internal/core/ports"
	"github.com/metadoclabs/insights/internal/core/usecase"
	"github.com/metadoclabs/insights/internal/infrastructure/extractor"
	"github.com/metadoclabs/insights/internal/infrastructure/llm/ollama"
	"github.com/metadoclabs/insights/internal/infrastructure/queue/nats"
	"github.com/metadoclabs/insights/internal/infrastructure/repository/postgres"
	"github.com/metadoclabs/insights/internal/infrastructure/resilience"
	"github.com/metadoclabs/insights/internal/infrastructure/storage/localfs"
	"github.com/metadoclabs/insights/internal/infrastructure/textanalysis"
)

type App struct {
	Config config.Config

	Queue       ports.MessageQueue
	Submissions ports.SubmissionStore
	Reports     ports.ReportRepository
	Storage     ports.ObjectStorage
	Analysis    ports.AnalysisService

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := config.ApplyPolicyFile(&cfg, cfg.AnalysisPolicyFile); err != nil {
		return nil, fmt.Errorf("apply analysis policy: %w", err)
	}

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	submissions := postgres.NewSubmissionRepository(db)
	reports := postgres.NewReportRepository(db)
	snapshots := postgres.NewSnapshotRepository(db)
	deadlines := postgres.NewDeadlineRepository(db)
	rubrics := postgres.NewRubricRepository(db)
	for name, ensure := range map[string]func(context.Context) error{
		"submissions": submissions.EnsureSchema,
		"reports":     reports.EnsureSchema,
		"snapshots":   snapshots.EnsureSchema,
		"deadlines":   deadlines.EnsureSchema,
	} {
		if err := ensure(ctx); err != nil {
			return nil, fmt.Errorf("ensure %s schema: %w", name, err)
		}
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := nats.New(cfg.NATSURL, cfg.NATSSubject)
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	var reviewer ports.Reviewer
	if cfg.ReviewerEnabled {
		client := ollama.New(cfg.OllamaURL, cfg.OllamaModel)
		reviewer = ollama.NewReviewer(client, ollama.ReviewerOptions{
			Timeout:           time.Duration(cfg.ReviewerTimeoutSecs) * time.Second,
			RequestsPerMinute: cfg.ReviewerRatePerMinute,
			MaxPromptChars:    cfg.ReviewerMaxPromptLen,
			Executor:          resilience.NewExecutor(resilience.DefaultConfig()),
		})
	}

	analyzer := textanalysis.New(cfg.TopTermsLimit, cfg.EntityLimitPerType)
	docs := extractor.NewChain(storage)
	classifier := usecase.NewTimelinessClassifier(time.Duration(cfg.LastMinuteWindowMinutes) * time.Minute)
	tracker := usecase.NewSnapshotTracker(snapshots, cfg.MajorChangeThresholdPct)
	policy := usecase.CompletenessPolicy{
		MinWords:     cfg.MinDocumentWords,
		MaxWords:     cfg.MaxDocumentWords,
		MinSentences: cfg.MinDocumentSentences,
	}

	analysis := usecase.NewAnalyzeSubmissionUseCase(
		submissions, reports, deadlines, rubrics,
		storage, docs, analyzer, reviewer,
		classifier, tracker, policy,
	)

	return &App{
		Config: cfg,

		Queue:       queue,
		Submissions: submissions,
		Reports:     reports,
		Storage:     storage,
		Analysis:    analysis,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
