package embedding

import (
	"context"
	"fmt"
	"sync"
)

// Cached memoizes another provider so that a string always maps to the same
// vector for the life of the process. Only strings missing from the cache are
// sent to the wrapped provider.
type Cached struct {
	next Provider

	mu      sync.RWMutex
	vectors map[string][]float32
}

// NewCached wraps next.
func NewCached(next Provider) *Cached {
	return &Cached{
		next:    next,
		vectors: make(map[string][]float32),
	}
}

// Name implements Provider.
func (c *Cached) Name() string { return c.next.Name() }

// Len returns the number of cached vectors.
func (c *Cached) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.vectors)
}

// Embed implements Provider. Returned vectors are copies; callers may modify them.
func (c *Cached) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	var missing []string
	missingIdx := make(map[string][]int)

	c.mu.RLock()
	for i, text := range texts {
		if v, ok := c.vectors[text]; ok {
			out[i] = cloneVector(v)
			continue
		}
		if _, queued := missingIdx[text]; !queued {
			missing = append(missing, text)
		}
		missingIdx[text] = append(missingIdx[text], i)
	}
	c.mu.RUnlock()

	if len(missing) == 0 {
		return out, nil
	}

	fresh, err := c.next.Embed(ctx, missing)
	if err != nil {
		return nil, err
	}
	if len(fresh) != len(missing) {
		return nil, fmt.Errorf("%w: %s returned %d vectors for %d texts", ErrUnavailable, c.next.Name(), len(fresh), len(missing))
	}

	c.mu.Lock()
	for i, text := range missing {
		// A concurrent caller may have stored this string first; keep its vector.
		v, ok := c.vectors[text]
		if !ok {
			v = cloneVector(fresh[i])
			c.vectors[text] = v
		}
		for _, idx := range missingIdx[text] {
			out[idx] = cloneVector(v)
		}
	}
	c.mu.Unlock()

	return out, nil
}

func cloneVector(v []float32) []float32 {
	out := make([]float32, len(v))
	copy(out, v)
	return out
}
