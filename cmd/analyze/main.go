package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/metadoclabs/insights/internal/bootstrap"
	"github.com/metadoclabs/insights/internal/config"
	"github.com/metadoclabs/insights/internal/core/domain"
)

func main() {
	filePath := flag.String("file", "", "path of the document to analyze")
	submissionID := flag.String("submission-id", "", "existing submission id to re-analyze")
	deadlineID := flag.String("deadline", "", "deadline id to grade timeliness against")
	rubricID := flag.String("rubric", "", "rubric id for the qualitative review")
	enqueue := flag.Bool("enqueue", false, "publish to the queue instead of analyzing inline")
	flag.Parse()

	if *filePath == "" && *submissionID == "" {
		log.Fatal("either -file or -submission-id is required")
	}

	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	id := *submissionID
	if *filePath != "" {
		id, err = registerFile(ctx, app, *filePath, *deadlineID, *rubricID)
		if err != nil {
			log.Fatalf("register submission: %v", err)
		}
	}

	if *enqueue {
		if err := app.Queue.PublishAnalysisRequested(ctx, id); err != nil {
			log.Fatalf("publish analysis request: %v", err)
		}
		fmt.Println(id)
		return
	}

	runCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.AnalysisTimeoutSeconds)*time.Second)
	defer cancel()

	report, err := app.Analysis.RunAnalysis(runCtx, id)
	if err != nil {
		log.Fatalf("run analysis: %v", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		log.Fatalf("encode report: %v", err)
	}
}

func registerFile(ctx context.Context, app *bootstrap.App, path, deadlineID, rubricID string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", fmt.Errorf("hash document: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind document: %w", err)
	}

	id := uuid.NewString()
	filename := filepath.Base(path)
	storageKey := id + "_" + filename
	if err := app.Storage.Save(ctx, storageKey, f); err != nil {
		return "", fmt.Errorf("store document: %w", err)
	}

	submission := &domain.Submission{
		ID:          id,
		Filename:    filename,
		StoragePath: storageKey,
		ContentHash: hex.EncodeToString(hasher.Sum(nil)),
		ReceivedAt:  time.Now().UTC(),
		DeadlineID:  deadlineID,
		RubricID:    rubricID,
	}
	if err := app.Submissions.Register(ctx, submission); err != nil {
		return "", err
	}
	return id, nil
}
