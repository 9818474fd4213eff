// Package types provides type definitions for structured data used throughout the resume-fit system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"sort"
	"strings"
)

// SkillSet is a deduplicated, order-stable collection of normalized skill tokens.
// It is built once per document per analysis run and never mutated afterwards.
type SkillSet struct {
	items []string
	index map[string]int
}

// NewSkillSet builds a SkillSet from raw tokens. Tokens are lower-cased and
// trimmed; empty tokens and duplicates are dropped. First occurrence wins, so
// the input order is preserved.
func NewSkillSet(tokens ...string) SkillSet {
	set := SkillSet{
		items: make([]string, 0, len(tokens)),
		index: make(map[string]int, len(tokens)),
	}
	for _, token := range tokens {
		normalized := strings.ToLower(strings.Join(strings.Fields(token), " "))
		if normalized == "" {
			continue
		}
		if _, exists := set.index[normalized]; exists {
			continue
		}
		set.index[normalized] = len(set.items)
		set.items = append(set.items, normalized)
	}
	return set
}

// NewSortedSkillSet is NewSkillSet with the tokens sorted lexically.
func NewSortedSkillSet(tokens ...string) SkillSet {
	set := NewSkillSet(tokens...)
	sort.Strings(set.items)
	for i, item := range set.items {
		set.index[item] = i
	}
	return set
}

// Len returns the number of skills in the set.
func (s SkillSet) Len() int {
	return len(s.items)
}

// IsEmpty reports whether the set has no skills.
func (s SkillSet) IsEmpty() bool {
	return len(s.items) == 0
}

// Contains reports whether the normalized token is a member of the set.
func (s SkillSet) Contains(token string) bool {
	_, ok := s.index[strings.ToLower(strings.TrimSpace(token))]
	return ok
}

// Items returns a copy of the skills in iteration order.
func (s SkillSet) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// At returns the skill at position i.
func (s SkillSet) At(i int) string {
	return s.items[i]
}

// Union returns the order-stable union of s followed by the members of other
// that s does not already contain.
func (s SkillSet) Union(other SkillSet) SkillSet {
	tokens := make([]string, 0, s.Len()+other.Len())
	tokens = append(tokens, s.items...)
	tokens = append(tokens, other.items...)
	return NewSkillSet(tokens...)
}

// MarshalJSON encodes the set as a JSON array of strings.
func (s SkillSet) MarshalJSON() ([]byte, error) {
	if s.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.items)
}

// UnmarshalJSON decodes a JSON array of strings into a normalized set.
func (s *SkillSet) UnmarshalJSON(data []byte) error {
	var tokens []string
	if err := json.Unmarshal(data, &tokens); err != nil {
		return err
	}
	*s = NewSkillSet(tokens...)
	return nil
}
