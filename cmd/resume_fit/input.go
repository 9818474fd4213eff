package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/resume-fit/internal/config"
	"github.com/jonathan/resume-fit/internal/fetch"
	"github.com/jonathan/resume-fit/internal/ingestion"
	"github.com/jonathan/resume-fit/internal/logger"
	"go.uber.org/zap"
)

// readDocument returns text from path, or inline when path is empty. A file
// that decodes to no text, or fails to decode, yields an empty document.
func readDocument(path, inline string, log *zap.Logger) (string, error) {
	if path == "" {
		return inline, nil
	}

	text, metadata, err := ingestion.IngestFromFile(path)
	if unreadable(err) {
		log.Warn("document unreadable, analyzing without it", zap.String("path", path), zap.Error(err))
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	log.Debug("document ingested",
		zap.String("path", path),
		zap.String("kind", string(metadata.Kind)),
		zap.Int("chars", metadata.Chars),
		zap.String("preview", logger.TruncateForLog(text, 80)))
	return text, nil
}

// readJobURL fetches and extracts a job posting.
func readJobURL(ctx context.Context, url string, cfg config.FetchConfig, log *zap.Logger) (string, error) {
	text, metadata, err := ingestion.IngestFromURL(ctx, url, ingestion.URLOptions{
		UseBrowser: cfg.UseBrowser,
		Fetch:      &fetch.Options{Timeout: cfg.Timeout, Logger: log},
		Logger:     log,
	})
	if unreadable(err) {
		log.Warn("job posting unreadable, analyzing without it", zap.String("url", url), zap.Error(err))
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to ingest from URL: %w", err)
	}

	log.Info("job posting fetched",
		zap.String("url", url),
		zap.String("platform", metadata.Platform),
		zap.Int("chars", metadata.Chars),
		zap.Bool("rendered", metadata.Rendered))
	return text, nil
}

func unreadable(err error) bool {
	return errors.Is(err, ingestion.ErrNoText) || errors.Is(err, ingestion.ErrContentExtractionFailed)
}
