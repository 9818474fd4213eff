package skills

import (
	"context"
	"regexp"
	"sort"
	"strings"
)

var (
	// PostgreSQL, GitHub, JavaScript, macOS, DevOps
	camelCasePattern = regexp.MustCompile(`\b[A-Z]?[a-z]+[A-Z][A-Za-z0-9]*\b`)
	// Node.js, ASP.NET, Socket.io
	dottedPattern = regexp.MustCompile(`\b[A-Za-z][A-Za-z0-9]*\.(?:js|JS|Js|NET|net|io|IO|ai|AI|py)\b`)
	// HTML5, Python3, EC2
	versionedPattern = regexp.MustCompile(`\b[A-Za-z]{2,}[0-9]+\b`)
	// Acme Corp, Globex Technologies
	orgPattern = regexp.MustCompile(`\b(?:[A-Z][A-Za-z0-9]*\s){1,3}(?:Inc|Corp|Corporation|LLC|Ltd|Labs|Technologies|Systems|Group|Software)\b`)
	// AWS, GCP, SQL
	acronymPattern = regexp.MustCompile(`\b[A-Z]{2,5}\b`)
)

// acronymStopList holds all-caps tokens that are not products or technologies.
var acronymStopList = map[string]struct{}{
	"CEO": {}, "CTO": {}, "CFO": {}, "COO": {}, "VP": {}, "HR": {}, "PM": {}, "AM": {},
	"USA": {}, "US": {}, "UK": {}, "EU": {}, "GPA": {}, "BA": {}, "BS": {}, "BSC": {},
	"MS": {}, "MSC": {}, "MBA": {}, "PHD": {}, "EOE": {}, "EEO": {}, "OR": {}, "AND": {},
	"THE": {}, "TO": {}, "IN": {}, "OF": {}, "FOR": {}, "WITH": {}, "ON": {}, "AT": {},
	"BY": {}, "AN": {}, "IS": {}, "ARE": {}, "WE": {}, "OUR": {}, "YOU": {}, "MY": {},
	"NEW": {}, "JOB": {}, "WORK": {}, "ABOUT": {}, "TEAM": {}, "ROLE": {}, "NOTE": {},
	"YEARS": {}, "USD": {}, "EST": {}, "PST": {}, "ETC": {}, "II": {}, "III": {}, "IV": {},
}

// RuleRecognizer is an offline, shape-based entity recognizer. It tags
// CamelCase and dotted names and version-suffixed tokens as technologies,
// acronyms as products and capitalized names ending in a company suffix as
// organizations.
type RuleRecognizer struct{}

// NewRuleRecognizer returns a RuleRecognizer.
func NewRuleRecognizer() *RuleRecognizer {
	return &RuleRecognizer{}
}

// Name implements EntityRecognizer.
func (r *RuleRecognizer) Name() string { return "rules" }

type spannedEntity struct {
	start int
	Entity
}

// Recognize returns entities in order of first appearance, each surface form once.
func (r *RuleRecognizer) Recognize(ctx context.Context, text string) ([]Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	var found []spannedEntity
	collect := func(re *regexp.Regexp, label string, keep func(string) bool) {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			surface := strings.TrimSpace(text[loc[0]:loc[1]])
			if keep != nil && !keep(surface) {
				continue
			}
			found = append(found, spannedEntity{start: loc[0], Entity: Entity{Text: surface, Label: label}})
		}
	}

	collect(orgPattern, LabelOrg, nil)
	collect(camelCasePattern, LabelTechnology, nil)
	collect(dottedPattern, LabelTechnology, nil)
	collect(versionedPattern, LabelTechnology, nil)
	collect(acronymPattern, LabelProduct, func(s string) bool {
		_, stop := acronymStopList[s]
		return !stop
	})

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].start < found[j].start
	})

	entities := make([]Entity, 0, len(found))
	seen := make(map[string]struct{}, len(found))
	for _, e := range found {
		key := strings.ToLower(e.Text)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		entities = append(entities, e.Entity)
	}
	return entities, nil
}
