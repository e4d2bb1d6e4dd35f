package faq

import (
	"math"
	"strings"

	"github.com/spec-kit/question-service/internal/domain"
)

// DefaultThreshold is the minimum similarity score a fuzzy match must reach
// to be suggested.
const DefaultThreshold = 0.55

const (
	// UnknownCategory is assigned when no match could be produced.
	UnknownCategory = "Unknown"

	manualReviewAnswer = "Category provided manually. Operator should review."
	noAnswerFound      = "No quick answer found. Requires operator review."
)

// Normalize lowercases, trims and collapses internal whitespace runs to a
// single space. Whitespace-only input yields the empty string.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// Similarity scores two strings in [0,1] as 1 - editDistance/maxLen using
// classic Levenshtein distance. Two empty strings score 1.0.
func Similarity(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(ra, rb))/float64(maxLen)
}

func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// Matcher scores submitted questions against the static corpus.
type Matcher struct {
	corpus    *Corpus
	threshold float64
}

// NewMatcher constructs a matcher. A non-positive threshold falls back to
// DefaultThreshold.
func NewMatcher(corpus *Corpus, threshold float64) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{corpus: corpus, threshold: threshold}
}

// FindExact returns the first corpus entry whose normalized text equals the
// normalized question, or nil.
func (m *Matcher) FindExact(question string) *domain.MatchResult {
	normalized := Normalize(question)
	for _, entry := range m.corpus.Entries {
		if entry.NormalizedQuestion == normalized {
			return &domain.MatchResult{
				Category:        entry.Category,
				Answer:          entry.Answer,
				Kind:            domain.MatchExact,
				Confidence:      1.0,
				MatchedQuestion: entry.OriginalQuestion,
			}
		}
	}
	return nil
}

// FindBest scores the question against every corpus entry and returns the
// first-seen strict maximum if it reaches the threshold, or nil. Later
// entries with an equal score do not replace the incumbent, so ties break
// by corpus order.
func (m *Matcher) FindBest(question string) *domain.MatchResult {
	normalized := Normalize(question)

	bestScore := 0.0
	var best *Entry
	for i := range m.corpus.Entries {
		score := Similarity(normalized, m.corpus.Entries[i].NormalizedQuestion)
		if score > bestScore {
			bestScore = score
			best = &m.corpus.Entries[i]
		}
	}

	if best == nil || bestScore < m.threshold {
		return nil
	}
	return &domain.MatchResult{
		Category:        best.Category,
		Answer:          best.Answer,
		Kind:            domain.MatchSimilar,
		Confidence:      math.Round(bestScore*100) / 100,
		MatchedQuestion: best.OriginalQuestion,
	}
}

// Classify produces a match result for a submitted question. A non-empty
// manual category bypasses matching entirely; otherwise exact match is tried
// before fuzzy match, and a miss on both yields the "none" result.
func (m *Matcher) Classify(question, manualCategory string) domain.MatchResult {
	question = strings.TrimSpace(question)

	if strings.TrimSpace(manualCategory) != "" {
		return domain.MatchResult{
			Category:   manualCategory,
			Answer:     manualReviewAnswer,
			Kind:       domain.MatchManual,
			Confidence: 0.0,
		}
	}

	if exact := m.FindExact(question); exact != nil {
		return *exact
	}
	if similar := m.FindBest(question); similar != nil {
		return *similar
	}

	return domain.MatchResult{
		Category:   UnknownCategory,
		Answer:     noAnswerFound,
		Kind:       domain.MatchNone,
		Confidence: 0.0,
	}
}
