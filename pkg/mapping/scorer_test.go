package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshteinScorer(t *testing.T) {
	s := LevenshteinScorer{Cutoff: DefaultFuzzyCutoff}

	assert.Equal(t, 1.0, s.Score("workspace", "workspace"))
	assert.Equal(t, 0.0, s.Score("", "workspace"))
	assert.Equal(t, 0.0, s.Score("workspace", ""))

	// One deletion in nine runes.
	assert.InDelta(t, 1.0-1.0/9.0, s.Score("workspce", "workspace"), 1e-9)

	// Distance beyond 40% of the longer string scores zero.
	assert.Equal(t, 0.0, s.Score("tags", "workspace"))
}

func TestLevenshteinScorer_ZeroCutoffUsesDefault(t *testing.T) {
	s := LevenshteinScorer{}
	assert.Greater(t, s.Score("model", "modle"), 0.0)
}

func TestLevenshteinScorer_Symmetric(t *testing.T) {
	s := LevenshteinScorer{Cutoff: DefaultFuzzyCutoff}
	assert.Equal(t, s.Score("memory", "memroy"), s.Score("memroy", "memory"))
}

func TestTokenOverlapScorer(t *testing.T) {
	s := TokenOverlapScorer{}

	assert.Equal(t, 1.0, s.Score("memory limit", "limit memory"), "token order must not matter")
	assert.InDelta(t, 1.0/3.0, s.Score("memory limit", "memory cap"), 1e-9)
	assert.Equal(t, 0.0, s.Score("memory", ""))
	assert.Equal(t, 0.0, s.Score("alpha beta", "gamma delta"))
}

func TestScorerIsPluggable(t *testing.T) {
	// A constant scorer shows the fuzzy tier honors substitution.
	reg := DefaultRegistry()
	m := NewMatcher(reg, constantScorer{0.9})

	candidates := m.Match(RawColumn{Header: "utterly unknown heading"})
	assert.NotEmpty(t, candidates)
	for _, c := range candidates {
		if c.Strategy == StrategyFuzzy {
			assert.InDelta(t, 0.6*0.9, c.Confidence, 1e-9, "fuzzy confidence is scorer output scaled into the fuzzy band")
		}
	}
}

type constantScorer struct{ v float64 }

func (s constantScorer) Score(a, b string) float64 { return s.v }
