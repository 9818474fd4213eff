package embedding

import (
	"context"

	"github.com/jonathan/resume-fit/internal/llm"
	"golang.org/x/sync/errgroup"
)

const (
	// MaxBatchSize is the largest number of texts sent in one embedding request.
	MaxBatchSize = 100
	// defaultConcurrency bounds in-flight embedding requests.
	defaultConcurrency = 4
)

// Gemini embeds texts with a remote embedding model, splitting large inputs
// into batches that are requested concurrently.
type Gemini struct {
	embedder    llm.Embedder
	model       string
	batchSize   int
	concurrency int
}

// NewGemini returns a provider backed by embedder. model is informational.
func NewGemini(embedder llm.Embedder, model string) *Gemini {
	return &Gemini{
		embedder:    embedder,
		model:       model,
		batchSize:   MaxBatchSize,
		concurrency: defaultConcurrency,
	}
}

// Name implements Provider.
func (g *Gemini) Name() string { return "gemini:" + g.model }

// Embed implements Provider. Any request failure is reported as ErrUnavailable.
func (g *Gemini) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	vectors := make([][]float32, len(texts))
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(g.concurrency)

	for start := 0; start < len(texts); start += g.batchSize {
		end := start + g.batchSize
		if end > len(texts) {
			end = len(texts)
		}

		group.Go(func() error {
			batch, err := g.embedder.EmbedTexts(gctx, texts[start:end])
			if err != nil {
				return err
			}
			copy(vectors[start:end], batch)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, unavailable("gemini embed", err)
	}
	return vectors, nil
}
