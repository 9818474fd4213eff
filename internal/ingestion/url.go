package ingestion

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/resume-fit/internal/fetch"
	"github.com/jonathan/resume-fit/internal/logger"
	"go.uber.org/zap"
)

var (
	// ErrHTTPRequestFailed is returned when HTTP request fails
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// URLOptions configures IngestFromURL.
type URLOptions struct {
	// UseBrowser enables the headless browser fallback for pages whose
	// static HTML is too thin to hold a posting.
	UseBrowser bool
	// Renderer overrides the headless browser. Nil selects Chrome.
	Renderer fetch.Renderer
	Fetch    *fetch.Options
	Logger   *zap.Logger
}

// IngestFromURL fetches a job posting, extracts its main text with
// platform-specific selectors and returns the cleaned text with metadata.
func IngestFromURL(ctx context.Context, urlStr string, opts URLOptions) (string, *Metadata, error) {
	log := logger.OrNop(opts.Logger).With(zap.String("url", urlStr))

	platform := fetch.DetectPlatform(urlStr)
	log.Debug("detected platform", zap.String("platform", string(platform)))

	fetchOpts := opts.Fetch
	if fetchOpts == nil {
		fetchOpts = &fetch.Options{Logger: opts.Logger}
	}
	result, err := fetch.URL(ctx, urlStr, fetchOpts)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	textContent, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	log.Debug("extracted text", zap.Int("chars", len(textContent)))

	rendered := false
	if opts.UseBrowser && fetch.ShouldUseBrowser(textContent) {
		renderer := opts.Renderer
		if renderer == nil {
			renderer = fetch.NewChromeRenderer(opts.Logger)
		}
		log.Info("content too short, falling back to browser rendering",
			zap.Int("chars", len(textContent)),
			zap.Int("min_chars", fetch.MinContentLength))

		browserHTML, browserErr := renderer.Render(ctx, urlStr)
		if browserErr != nil {
			log.Warn("browser rendering failed, using HTTP content", zap.Error(browserErr))
		} else {
			browserText, extractErr := fetch.ExtractMainText(browserHTML, contentSelectors, noiseSelectors...)
			if extractErr != nil {
				log.Warn("browser content extraction failed, using HTTP content", zap.Error(extractErr))
			} else if len(browserText) > len(textContent) {
				textContent = browserText
				rendered = true
			}
		}
	}

	cleanedText := CleanText(textContent)
	if cleanedText == "" {
		return "", nil, ErrNoText
	}

	metadata := NewMetadata(cleanedText, urlStr)
	metadata.Kind = KindHTML
	metadata.Platform = string(platform)
	metadata.Rendered = rendered
	return cleanedText, metadata, nil
}
