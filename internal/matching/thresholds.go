package matching

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-fit/internal/types"
)

// Thresholds are the tier boundaries. A similarity strictly above High is a
// high match; strictly above Partial is a partial match; anything else is missing.
type Thresholds struct {
	High    float64 `json:"high" mapstructure:"high"`
	Partial float64 `json:"partial" mapstructure:"partial"`
}

// Threshold preset names.
const (
	PresetDefault    = "default"
	PresetSimplified = "simplified"
)

// DefaultThresholds is the reference 0.8 / 0.5 split.
var DefaultThresholds = Thresholds{High: 0.8, Partial: 0.5}

// SimplifiedThresholds is the looser 0.7 / 0.3 split.
var SimplifiedThresholds = Thresholds{High: 0.7, Partial: 0.3}

// ThresholdsForPreset resolves a preset name. An empty name selects the default.
func ThresholdsForPreset(name string) (Thresholds, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PresetDefault:
		return DefaultThresholds, nil
	case PresetSimplified:
		return SimplifiedThresholds, nil
	default:
		return Thresholds{}, fmt.Errorf("unknown threshold preset %q", name)
	}
}

// Validate checks 0 <= Partial < High <= 1.
func (t Thresholds) Validate() error {
	if t.Partial < 0 || t.High > 1 || t.Partial >= t.High {
		return fmt.Errorf("invalid thresholds: need 0 <= partial (%.2f) < high (%.2f) <= 1", t.Partial, t.High)
	}
	return nil
}

// Classify maps a best similarity to its tier.
func (t Thresholds) Classify(similarity float64) types.MatchTier {
	switch {
	case similarity > t.High:
		return types.TierHigh
	case similarity > t.Partial:
		return types.TierPartial
	default:
		return types.TierMissing
	}
}
