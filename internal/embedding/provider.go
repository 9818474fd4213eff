// Package embedding maps skill strings to fixed-length vectors.
package embedding

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable reports that a provider cannot produce vectors. Callers treat
// it as a signal to use heuristic similarity, never as a failure.
var ErrUnavailable = errors.New("embedding provider unavailable")

// Provider returns one vector per input string, in input order. Vectors for the
// same string are identical within a process lifetime. Implementations must be
// safe for concurrent use.
type Provider interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Name() string
}

// Unavailable is a Provider that never produces vectors.
type Unavailable struct {
	Reason string
}

// Embed always fails with ErrUnavailable.
func (u Unavailable) Embed(context.Context, []string) ([][]float32, error) {
	if u.Reason == "" {
		return nil, ErrUnavailable
	}
	return nil, fmt.Errorf("%w: %s", ErrUnavailable, u.Reason)
}

// Name implements Provider.
func (Unavailable) Name() string { return "unavailable" }

// unavailable wraps err so that errors.Is(err, ErrUnavailable) holds.
func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}
