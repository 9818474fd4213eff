package skills

import (
	"context"
	"strings"
)

// Entity labels shared by every recognizer.
const (
	LabelOrg        = "ORG"
	LabelProduct    = "PRODUCT"
	LabelTechnology = "TECHNOLOGY"
	LabelPerson     = "PERSON"
	LabelOther      = "OTHER"
)

// DefaultEntityLabels are the entity categories treated as skills.
var DefaultEntityLabels = []string{LabelOrg, LabelProduct, LabelTechnology}

// Entity is one named entity found in a text.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// EntityRecognizer finds named entities in text. Implementations must be safe
// for concurrent use.
type EntityRecognizer interface {
	Recognize(ctx context.Context, text string) ([]Entity, error)
	Name() string
}

// NopRecognizer recognizes nothing.
type NopRecognizer struct{}

// Recognize always returns no entities.
func (NopRecognizer) Recognize(context.Context, string) ([]Entity, error) {
	return nil, nil
}

// Name implements EntityRecognizer.
func (NopRecognizer) Name() string { return "none" }

// labelSet builds an upper-cased lookup of entity labels.
func labelSet(labels []string) map[string]struct{} {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		l = strings.ToUpper(strings.TrimSpace(l))
		if l != "" {
			set[l] = struct{}{}
		}
	}
	return set
}
