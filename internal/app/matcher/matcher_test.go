package matcher

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cardiac = []string{"chest pain", "shortness of breath", "fatigue", "palpitations", "dizziness"}

func TestMatch_EmptyText(t *testing.T) {
	got := Match("", cardiac)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMatch_EmptyVocabulary(t *testing.T) {
	assert.Empty(t, Match("chest pain", nil))
}

func TestMatch_PhraseShadowsContainedKey(t *testing.T) {
	got := Match("Patient reports chest pain and fatigue today", []string{"chest pain", "fatigue", "pain"})
	assert.Equal(t, []string{"chest pain", "fatigue"}, got)
}

func TestMatch_ContainedKeyStillMatchesElsewhere(t *testing.T) {
	got := Match("chest pain in the morning, and later pain in the knee", []string{"chest pain", "pain"})
	assert.Equal(t, []string{"chest pain", "pain"}, got)
}

func TestMatch_WordBoundary(t *testing.T) {
	assert.Empty(t, Match("he is painting", []string{"pain"}))
	assert.Empty(t, Match("unpain", []string{"pain"}))
	assert.Empty(t, Match("pain_killer", []string{"pain"}))
	assert.Equal(t, []string{"pain"}, Match("pain, then more pain.", []string{"pain"}))
	assert.Equal(t, []string{"pain"}, Match("(pain)", []string{"pain"}))
}

func TestMatch_CaseInsensitive(t *testing.T) {
	got := Match("I have DIZZINESS and Palpitations", cardiac)
	assert.Equal(t, []string{"dizziness", "palpitations"}, got)
}

func TestMatch_SpecialCharactersAreLiteral(t *testing.T) {
	known := []string{"a.c", "x+y"}
	assert.Empty(t, Match("abc and xxy", known))
	assert.Equal(t, []string{"a.c", "x+y"}, Match("a.c and x+y", known))
}

func TestMatch_ResultIsSortedSubsetWithoutDuplicates(t *testing.T) {
	texts := []string{
		"fatigue fatigue fatigue",
		"dizziness, chest pain, shortness of breath and fatigue",
		"palpitations; Fatigue; DIZZINESS; chest pain",
		"nothing relevant here",
	}
	known := append([]string{"fatigue", "FATIGUE"}, cardiac...)
	allowed := map[string]bool{}
	for _, k := range cardiac {
		allowed[k] = true
	}
	for _, text := range texts {
		got := Match(text, known)
		assert.True(t, sort.StringsAreSorted(got), text)
		seen := map[string]bool{}
		for _, s := range got {
			assert.True(t, allowed[s], "%q not in vocabulary", s)
			assert.False(t, seen[s], "duplicate %q", s)
			seen[s] = true
		}
	}
}

func TestMatcher_RebuildsOnVocabularyChange(t *testing.T) {
	m := New()
	assert.Equal(t, []string{"fatigue"}, m.Match("fatigue and dizziness", []string{"fatigue"}))
	first := m.index

	assert.Equal(t, []string{"fatigue"}, m.Match("fatigue", []string{"fatigue"}))
	assert.Same(t, first, m.index)

	assert.Equal(t, []string{"dizziness", "fatigue"}, m.Match("fatigue and dizziness", []string{"fatigue", "dizziness"}))
	assert.NotSame(t, first, m.index)
}

func TestMatcher_ConcurrentUse(t *testing.T) {
	m := New()
	done := make(chan []string)
	for i := 0; i < 8; i++ {
		go func(i int) {
			known := cardiac
			if i%2 == 0 {
				known = cardiac[:2]
			}
			done <- m.Match("chest pain and shortness of breath", known)
		}(i)
	}
	for i := 0; i < 8; i++ {
		assert.Equal(t, []string{"chest pain", "shortness of breath"}, <-done)
	}
}

func BenchmarkMatch(b *testing.B) {
	m := New()
	text := "Patient reports chest pain, intermittent palpitations and some dizziness after exercise"
	for i := 0; i < b.N; i++ {
		m.Match(text, cardiac)
	}
}
