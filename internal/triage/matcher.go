package triage

import (
	ahocorasick "github.com/cloudflare/ahocorasick"
)

// keywordMatcher finds which keywords of a fixed table occur in a text.
// It wraps an Aho-Corasick automaton so one pass covers the whole table,
// while reporting hits in table declaration order. Matches are raw substring
// hits, never tokenized.
type keywordMatcher struct {
	matcher  *ahocorasick.Matcher
	keywords []string
}

func newKeywordMatcher(keywords []string) *keywordMatcher {
	return &keywordMatcher{
		matcher:  ahocorasick.NewStringMatcher(keywords),
		keywords: keywords,
	}
}

// Found returns the table keywords contained in text, in declaration order.
// text must already be lowercased by the caller.
func (m *keywordMatcher) Found(text string) []string {
	if text == "" {
		return nil
	}

	hits := m.matcher.Match([]byte(text))
	if len(hits) == 0 {
		return nil
	}

	hit := make(map[int]bool, len(hits))
	for _, idx := range hits {
		hit[idx] = true
	}

	found := make([]string, 0, len(hit))
	for i, kw := range m.keywords {
		if hit[i] {
			found = append(found, kw)
		}
	}
	return found
}

// Count returns how many table keywords are contained in text.
func (m *keywordMatcher) Count(text string) int {
	return len(m.Found(text))
}
