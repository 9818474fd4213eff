// Package steps provides step definitions and dependency validation for the
// skill analysis pipeline.
package steps

import (
	"fmt"
	"sort"
)

// Step names, in execution order.
const (
	StepNormalize = "normalize"
	StepExtract   = "extract"
	StepSentiment = "sentiment"
	StepMatch     = "match"
	StepScore     = "score"
)

// Step categories
const (
	CategoryPreprocessing = "preprocessing"
	CategoryAnalysis      = "analysis"
	CategoryScoring       = "scoring"
)

// StepDefinition defines metadata for a pipeline step
type StepDefinition struct {
	Name         string
	Category     string
	Dependencies []string
}

// StepRegistry holds all step definitions
var StepRegistry = map[string]StepDefinition{
	StepNormalize: {
		Name:         StepNormalize,
		Category:     CategoryPreprocessing,
		Dependencies: []string{},
	},
	StepExtract: {
		Name:         StepExtract,
		Category:     CategoryAnalysis,
		Dependencies: []string{StepNormalize},
	},
	StepSentiment: {
		Name:         StepSentiment,
		Category:     CategoryAnalysis,
		Dependencies: []string{StepNormalize},
	},
	StepMatch: {
		Name:         StepMatch,
		Category:     CategoryAnalysis,
		Dependencies: []string{StepExtract},
	},
	StepScore: {
		Name:         StepScore,
		Category:     CategoryScoring,
		Dependencies: []string{StepMatch, StepSentiment},
	},
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("step %s: missing dependencies: %v", e.Step, e.MissingDependencies)
}

// Tracker records completed steps of a single run.
type Tracker struct {
	completed map[string]bool
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{completed: make(map[string]bool)}
}

// Complete marks stepName as done after checking its dependencies.
func (t *Tracker) Complete(stepName string) error {
	if err := ValidateDependencies(t.completed, stepName); err != nil {
		return err
	}
	t.completed[stepName] = true
	return nil
}

// Completed reports whether stepName has been marked done.
func (t *Tracker) Completed(stepName string) bool {
	return t.completed[stepName]
}

// ValidateDependencies checks if all required dependencies for a step are completed
func ValidateDependencies(completed map[string]bool, stepName string) error {
	def, ok := StepRegistry[stepName]
	if !ok {
		return fmt.Errorf("unknown step: %s", stepName)
	}

	var missing []string
	for _, dep := range def.Dependencies {
		if !completed[dep] {
			missing = append(missing, dep)
		}
	}

	if len(missing) > 0 {
		return &DependencyError{
			Step:                stepName,
			MissingDependencies: missing,
		}
	}
	return nil
}

// Order returns every step in a dependency-respecting order. Steps that
// become ready together are sorted by name.
func Order() []string {
	done := make(map[string]bool, len(StepRegistry))
	order := make([]string, 0, len(StepRegistry))

	for len(order) < len(StepRegistry) {
		var ready []string
		for name := range StepRegistry {
			if done[name] {
				continue
			}
			if ValidateDependencies(done, name) == nil {
				ready = append(ready, name)
			}
		}
		if len(ready) == 0 {
			break
		}
		sort.Strings(ready)
		for _, name := range ready {
			done[name] = true
			order = append(order, name)
		}
	}
	return order
}

// Position returns the 1-based index of stepName in Order, or 0 if unknown.
func Position(stepName string) int {
	for i, name := range Order() {
		if name == stepName {
			return i + 1
		}
	}
	return 0
}
