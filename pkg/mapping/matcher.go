package mapping

import (
	"sort"
	"strings"

	"github.com/IGLOU-EU/go-wildcard/v2"
)

// Matcher scores raw columns against every canonical field in a registry.
// It holds no mutable state after construction, so one Matcher may serve
// concurrent analyses.
type Matcher struct {
	reg        *Registry
	scorer     Scorer
	tieEpsilon float64
	shapeBonus float64
}

const (
	// defaultTieEpsilon is the confidence gap under which two fields are
	// considered tied and the value-shape hint is consulted.
	defaultTieEpsilon = 0.05
	// defaultShapeBonus caps the tie-break bonus earned from sample values.
	defaultShapeBonus = 0.1

	// Confidence bands per strategy tier.
	exactConfidence      = 1.0
	normalizedFloor      = 0.75
	normalizedCeil       = 0.95
	synonymExactScore    = 0.85
	synonymWildcardScore = 0.72
	fuzzyCeil            = 0.6
)

// NewMatcher builds a matcher over the given registry. A nil scorer falls
// back to the default Levenshtein scorer.
func NewMatcher(reg *Registry, scorer Scorer) *Matcher {
	if scorer == nil {
		scorer = LevenshteinScorer{Cutoff: DefaultFuzzyCutoff}
	}
	return &Matcher{
		reg:        reg,
		scorer:     scorer,
		tieEpsilon: defaultTieEpsilon,
		shapeBonus: defaultShapeBonus,
	}
}

// Match scores one raw column against every canonical field and returns at
// most one candidate per field, sorted by confidence descending with ties
// broken by strategy rank then field key. Empty and purely numeric headers
// yield no candidates.
func (m *Matcher) Match(col RawColumn) []MatchCandidate {
	header := Normalize(col.Header)
	if header.Empty() || numericOnly(header) {
		return nil
	}

	candidates := make([]MatchCandidate, 0, len(m.reg.Fields()))
	for _, field := range m.reg.Fields() {
		if cand, ok := m.scoreField(header, field); ok {
			candidates = append(candidates, cand)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	sortCandidates(candidates)
	m.applyShapeTieBreak(candidates, col.Samples)
	sortCandidates(candidates)
	return candidates
}

// scoreField evaluates the strategy tiers in priority order for a single
// field; the first tier that produces a candidate wins.
func (m *Matcher) scoreField(header Token, field CanonicalField) (MatchCandidate, bool) {
	aliases := m.reg.FieldAliases(field.Key)

	// Tier 1: exact alias match.
	for _, alias := range aliases {
		if header.Joined == alias.Joined {
			return MatchCandidate{Field: field.Key, Confidence: exactConfidence, Strategy: StrategyExact}, true
		}
	}

	// Tier 2: token-boundary containment, scaled by matched length ratio.
	best := 0.0
	for _, alias := range aliases {
		shorter, longer := alias.Joined, header.Joined
		if len(shorter) > len(longer) {
			shorter, longer = longer, shorter
		}
		if !containsTokens(longer, shorter) {
			continue
		}
		ratio := float64(len(shorter)) / float64(len(longer))
		if conf := normalizedFloor + (normalizedCeil-normalizedFloor)*ratio; conf > best {
			best = conf
		}
	}
	if best > 0 {
		return MatchCandidate{Field: field.Key, Confidence: best, Strategy: StrategyNormalized}, true
	}

	// Tier 3: curated synonym table, exact phrases before wildcard patterns.
	for _, syn := range m.reg.synonyms {
		if syn.Field != field.Key {
			continue
		}
		if syn.Wildcard {
			if wildcard.Match(syn.Phrase, header.Joined) {
				return MatchCandidate{Field: field.Key, Confidence: synonymWildcardScore, Strategy: StrategySynonym}, true
			}
			continue
		}
		if syn.Phrase == header.Joined {
			return MatchCandidate{Field: field.Key, Confidence: synonymExactScore, Strategy: StrategySynonym}, true
		}
	}

	// Tier 4: fuzzy fallback through the pluggable scorer.
	bestSim := 0.0
	for _, alias := range aliases {
		if sim := m.scorer.Score(header.Joined, alias.Joined); sim > bestSim {
			bestSim = sim
		}
	}
	if bestSim > 0 {
		return MatchCandidate{Field: field.Key, Confidence: fuzzyCeil * bestSim, Strategy: StrategyFuzzy}, true
	}

	return MatchCandidate{}, false
}

// applyShapeTieBreak awards a small bonus to candidates tied with the leader
// whose expected value shape agrees with the sampled cell values. The bonus
// never exceeds shapeBonus, so a fuzzy candidate can never overtake an exact
// one.
func (m *Matcher) applyShapeTieBreak(candidates []MatchCandidate, samples []string) {
	if len(samples) == 0 || len(candidates) < 2 {
		return
	}
	top := candidates[0].Confidence
	if candidates[1].Confidence < top-m.tieEpsilon {
		return
	}

	for i := range candidates {
		if candidates[i].Confidence < top-m.tieEpsilon {
			break
		}
		shape := m.fieldShape(candidates[i].Field)
		bonus := m.shapeBonus * shapeAgreement(samples, shape)
		if bonus == 0 {
			continue
		}
		if c := candidates[i].Confidence + bonus; c < 1 {
			candidates[i].Confidence = c
		} else {
			candidates[i].Confidence = 1
		}
	}
}

func (m *Matcher) fieldShape(key string) ValueShape {
	for _, f := range m.reg.Fields() {
		if f.Key == key {
			return f.Shape
		}
	}
	return ShapeText
}

// shapeAgreement returns the fraction of non-empty samples consistent with
// the expected shape. Free-text carries no signal and scores 0.
func shapeAgreement(samples []string, shape ValueShape) float64 {
	if shape == ShapeText {
		return 0
	}
	seen, hits := 0, 0
	for _, s := range samples {
		v := strings.TrimSpace(s)
		if v == "" {
			continue
		}
		seen++
		switch shape {
		case ShapeNumeric:
			if looksNumeric(v) {
				hits++
			}
		case ShapeBoolean:
			if _, ok := parseBoolish(v); ok {
				hits++
			}
		case ShapeList:
			if strings.ContainsAny(v, ",;|") {
				hits++
			}
		}
	}
	if seen == 0 {
		return 0
	}
	return float64(hits) / float64(seen)
}

func looksNumeric(v string) bool {
	dot := false
	for i, r := range v {
		switch {
		case r >= '0' && r <= '9':
		case (r == '+' || r == '-') && i == 0:
		case r == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return v != "" && v != "+" && v != "-" && v != "."
}

func parseBoolish(v string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes", "y", "on":
		return true, true
	case "false", "0", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}

// containsTokens reports whether inner appears in outer on token boundaries,
// so "name" matches inside "full name" but not inside "names".
func containsTokens(outer, inner string) bool {
	if inner == "" || outer == "" {
		return false
	}
	return strings.Contains(" "+outer+" ", " "+inner+" ")
}

func sortCandidates(candidates []MatchCandidate) {
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if a.Strategy.rank() != b.Strategy.rank() {
			return a.Strategy.rank() < b.Strategy.rank()
		}
		return a.Field < b.Field
	})
}
