package mapping

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Scorer scores the similarity of two normalized header strings in [0,1].
// A score of 0 means "no candidate". Implementations must be pure so an
// analysis stays deterministic; alternative measures (token embeddings,
// phonetic codes) can be substituted without touching the aggregator.
type Scorer interface {
	Score(a, b string) float64
}

// LevenshteinScorer is the default fuzzy measure: normalized edit distance
// bounded by a cutoff, blended with token-overlap ratio. Distances beyond
// Cutoff (as a fraction of the longer string) score 0.
type LevenshteinScorer struct {
	Cutoff float64
}

// DefaultFuzzyCutoff discards candidates whose edit distance exceeds this
// fraction of the longer string's length.
const DefaultFuzzyCutoff = 0.4

func (s LevenshteinScorer) Score(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	cutoff := s.Cutoff
	if cutoff <= 0 {
		cutoff = DefaultFuzzyCutoff
	}

	longer := utf8.RuneCountInString(a)
	if l := utf8.RuneCountInString(b); l > longer {
		longer = l
	}

	dist := levenshtein.ComputeDistance(a, b)
	if float64(dist) > cutoff*float64(longer) {
		return 0
	}
	return 1 - float64(dist)/float64(longer)
}

// TokenOverlapScorer scores by Jaccard overlap of word tokens. Useful when
// headers reorder words ("limit memory" vs "memory limit") where edit
// distance punishes too hard.
type TokenOverlapScorer struct{}

func (TokenOverlapScorer) Score(a, b string) float64 {
	at := Normalize(a).Tokens
	bt := Normalize(b).Tokens
	if len(at) == 0 || len(bt) == 0 {
		return 0
	}

	aSet := make(map[string]struct{}, len(at))
	for _, t := range at {
		aSet[t] = struct{}{}
	}
	bSet := make(map[string]struct{}, len(bt))
	for _, t := range bt {
		bSet[t] = struct{}{}
	}

	inter := 0
	for t := range aSet {
		if _, ok := bSet[t]; ok {
			inter++
		}
	}
	union := len(aSet) + len(bSet) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
