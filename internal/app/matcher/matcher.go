// Package matcher extracts known symptom keys from free text.
//
// Keys are literal phrases matched case-insensitively on word boundaries.
// The result is always a sorted, duplicate-free subset of the vocabulary it
// was given, so any replacement classifier can keep the same contract.
package matcher

import (
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	aho "github.com/petar-dambovaliev/aho-corasick"
)

// Matcher keeps the automaton for the last vocabulary it saw and rebuilds it
// only when the vocabulary changes. It is safe for concurrent use.
type Matcher struct {
	mu    sync.RWMutex
	index *index
}

func New() *Matcher {
	return &Matcher{}
}

// Match returns the known keys that occur in text as whole words.
func (m *Matcher) Match(text string, known []string) []string {
	return m.indexFor(known).match(text)
}

// Match runs a one-off match without caching the automaton.
func Match(text string, known []string) []string {
	return newIndex(known).match(text)
}

func (m *Matcher) indexFor(known []string) *index {
	keys := vocabulary(known)

	m.mu.RLock()
	idx := m.index
	m.mu.RUnlock()
	if idx != nil && idx.same(keys) {
		return idx
	}

	idx = build(keys)
	m.mu.Lock()
	m.index = idx
	m.mu.Unlock()
	return idx
}

type index struct {
	keys      []string
	automaton aho.AhoCorasick
}

func newIndex(known []string) *index {
	return build(vocabulary(known))
}

func build(keys []string) *index {
	idx := &index{keys: keys}
	if len(keys) > 0 {
		builder := aho.NewAhoCorasickBuilder(aho.Opts{
			DFA: true,
		})
		idx.automaton = builder.Build(keys)
	}
	return idx
}

func (idx *index) same(keys []string) bool {
	if len(idx.keys) != len(keys) {
		return false
	}
	for i := range keys {
		if idx.keys[i] != keys[i] {
			return false
		}
	}
	return true
}

type span struct {
	key        int
	start, end int
}

func (idx *index) match(text string) []string {
	result := []string{}
	if text == "" || len(idx.keys) == 0 {
		return result
	}
	haystack := []byte(strings.ToLower(text))

	var hits []span
	iter := idx.automaton.IterOverlappingByte(haystack)
	for next := iter.Next(); next != nil; next = iter.Next() {
		h := span{key: next.Pattern(), start: next.Start(), end: next.End()}
		if bounded(haystack, h.start, h.end) {
			hits = append(hits, h)
		}
	}

	found := make([]bool, len(idx.keys))
	for i, h := range hits {
		if found[h.key] || shadowed(hits, i) {
			continue
		}
		found[h.key] = true
	}
	for i, ok := range found {
		if ok {
			result = append(result, idx.keys[i])
		}
	}
	return result
}

// shadowed reports whether hits[i] lies inside a longer hit of another key.
func shadowed(hits []span, i int) bool {
	h := hits[i]
	for j, o := range hits {
		if j == i || o.key == h.key {
			continue
		}
		if o.start <= h.start && h.end <= o.end && o.end-o.start > h.end-h.start {
			return true
		}
	}
	return false
}

// bounded reports whether text[start:end] has a word boundary on both sides,
// with the same meaning as \b in regular expressions.
func bounded(text []byte, start, end int) bool {
	if start >= end {
		return false
	}
	first, _ := utf8.DecodeRune(text[start:end])
	last, _ := utf8.DecodeLastRune(text[start:end])

	before := false
	if start > 0 {
		r, _ := utf8.DecodeLastRune(text[:start])
		before = isWord(r)
	}
	after := false
	if end < len(text) {
		r, _ := utf8.DecodeRune(text[end:])
		after = isWord(r)
	}
	return before != isWord(first) && isWord(last) != after
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// vocabulary lowercases, dedups and sorts the known keys. Blank keys are dropped.
func vocabulary(known []string) []string {
	seen := make(map[string]struct{}, len(known))
	keys := make([]string, 0, len(known))
	for _, k := range known {
		k = strings.ToLower(k)
		if strings.TrimSpace(k) == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
