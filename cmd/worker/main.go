package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/metadoclabs/insights/internal/bootstrap"
	"github.com/metadoclabs/insights/internal/config"
	"github.com/metadoclabs/insights/internal/observability/logging"
	"github.com/metadoclabs/insights/internal/observability/metrics"
)

const serviceName = "insights-worker"

func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger(serviceName, cfg.LogLevel)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	pipelineMetrics := metrics.NewPipelineMetrics(serviceName)
	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: pipelineMetrics.Handler(),
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	analysisTimeout := time.Duration(cfg.AnalysisTimeoutSeconds) * time.Second
	logger.Info("worker subscribed", "subject", cfg.NATSSubject)

	err = app.Queue.SubscribeAnalysisRequested(ctx, func(handlerCtx context.Context, submissionID string) error {
		runCtx, cancel := context.WithTimeout(handlerCtx, analysisTimeout)
		defer cancel()

		if submission, err := app.Submissions.GetByID(runCtx, submissionID); err == nil {
			pipelineMetrics.ObserveQueueLag(serviceName, time.Since(submission.ReceivedAt))
		}

		pipelineMetrics.StartAnalysis()
		started := time.Now()
		report, err := app.Analysis.RunAnalysis(runCtx, submissionID)

		status := "error"
		if report != nil {
			status = string(report.Status)
		}
		pipelineMetrics.FinishAnalysis(serviceName, status, time.Since(started))

		if err != nil {
			logger.Error("analysis failed", "submission_id", submissionID, "error", err)
			return err
		}
		logger.Info("analysis finished",
			"submission_id", submissionID,
			"status", status,
			"duration_seconds", report.ProcessingSeconds,
		)
		return nil
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}
