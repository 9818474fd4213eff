// Package parsing provides text and skill-name normalization shared by the extraction stages.
package parsing

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	// Word characters are Unicode letters, digits and underscore.
	disallowedChars = regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?;:]`)
)

// NormalizeText strips every character that is not a word character,
// whitespace or one of ". , ! ? ; :", collapses whitespace runs to a single
// space and trims the result. Input is NFC-composed first so that accented
// letters arriving in decomposed form survive the character filter.
// Whitespace is any unicode.IsSpace rune, so NBSP, em-space and \v separate
// words like an ASCII space does.
// Collapsing runs after the filter keeps the result free of double spaces
// left behind by removed symbols, which makes NormalizeText idempotent.
func NormalizeText(raw string) string {
	if raw == "" {
		return ""
	}
	text := norm.NFC.String(raw)
	text = strings.Map(asciiSpace, text)
	text = disallowedChars.ReplaceAllString(text, "")
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// asciiSpace maps every Unicode space to ' '. RE2's \s only knows ASCII
// whitespace and would otherwise let the character filter glue words together.
func asciiSpace(r rune) rune {
	if unicode.IsSpace(r) {
		return ' '
	}
	return r
}

// skillAliases maps common skill name variants to canonical tokens
var skillAliases = map[string]string{
	"golang":                "go",
	"go lang":               "go",
	"js":                    "javascript",
	"ecmascript":            "javascript",
	"ts":                    "typescript",
	"k8s":                   "kubernetes",
	"react.js":              "react",
	"reactjs":               "react",
	"vue.js":                "vue",
	"vuejs":                 "vue",
	"nodejs":                "node.js",
	"node":                  "node.js",
	"postgres":              "postgresql",
	"psql":                  "postgresql",
	"mongo":                 "mongodb",
	"amazon web services":   "aws",
	"gcp":                   "google cloud",
	"google cloud platform": "google cloud",
	"ms azure":              "azure",
	"microsoft azure":       "azure",
	"ml":                    "machine learning",
	"dl":                    "deep learning",
	"nlp":                   "natural language processing",
	"ci cd":                 "cicd",
	"tf":                    "terraform",
	"py":                    "python",
	"sklearn":               "scikit-learn",
	"scikit learn":          "scikit-learn",
	"next.js":               "nextjs",
	"tensor flow":           "tensorflow",
}

// NormalizeSkillName lower-cases, trims and collapses internal whitespace of a
// skill name, then maps well-known aliases to their canonical token.
func NormalizeSkillName(skillName string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(skillName), " "))
	if normalized == "" {
		return ""
	}
	if canonical, ok := skillAliases[normalized]; ok {
		return canonical
	}
	return normalized
}

// NormalizeSkillNames normalizes every name and drops empties and duplicates,
// keeping first-occurrence order.
func NormalizeSkillNames(names []string) []string {
	if len(names) == 0 {
		return names
	}

	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		normalized := NormalizeSkillName(name)
		if normalized == "" {
			continue // Skip empty skill names
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}
