package mapping

import "sort"

// Assignment is one accepted (column, field) pairing.
type Assignment struct {
	Column     int // index into the analyzed column slice
	Field      string
	Confidence float64
	Strategy   Strategy
}

// Assigner resolves per-column candidates into a one-to-one column/field
// assignment. The default greedy assigner approximates maximum-weight
// bipartite matching; an exact algorithm (e.g. Hungarian) can be swapped in
// without touching the rest of the pipeline.
type Assigner interface {
	Assign(columns []RawColumn, candidates [][]MatchCandidate) []Assignment
}

// GreedyAssigner sorts all (column, field, confidence) triples globally by
// confidence and claims greedily: each column and each field at most once.
// Ties break by strategy rank, then original column order, then field key,
// keeping results deterministic.
type GreedyAssigner struct{}

func (GreedyAssigner) Assign(columns []RawColumn, candidates [][]MatchCandidate) []Assignment {
	type triple struct {
		col  int
		cand MatchCandidate
	}

	var triples []triple
	for i := range columns {
		for _, c := range candidates[i] {
			triples = append(triples, triple{col: i, cand: c})
		}
	}

	sort.Slice(triples, func(i, j int) bool {
		a, b := triples[i], triples[j]
		if a.cand.Confidence != b.cand.Confidence {
			return a.cand.Confidence > b.cand.Confidence
		}
		if a.cand.Strategy.rank() != b.cand.Strategy.rank() {
			return a.cand.Strategy.rank() < b.cand.Strategy.rank()
		}
		if a.col != b.col {
			return a.col < b.col
		}
		return a.cand.Field < b.cand.Field
	})

	claimedCol := make(map[int]struct{}, len(columns))
	claimedField := make(map[string]struct{}, len(columns))
	assignments := make([]Assignment, 0, len(columns))
	for _, t := range triples {
		if _, ok := claimedCol[t.col]; ok {
			continue
		}
		if _, ok := claimedField[t.cand.Field]; ok {
			continue
		}
		claimedCol[t.col] = struct{}{}
		claimedField[t.cand.Field] = struct{}{}
		assignments = append(assignments, Assignment{
			Column:     t.col,
			Field:      t.cand.Field,
			Confidence: t.cand.Confidence,
			Strategy:   t.cand.Strategy,
		})
	}
	return assignments
}

// aggregate combines per-column candidates into the whole-file result.
// Assignments below the confidence floor are reported but excluded from the
// recommendation; the aggregate confidence is the mean of accepted
// confidences scaled by required-field completeness.
func aggregate(columns []RawColumn, candidates [][]MatchCandidate, reg *Registry, assigner Assigner, floor float64) *AnalysisResult {
	assignments := assigner.Assign(columns, candidates)

	byColumn := make(map[int]Assignment, len(assignments))
	for _, a := range assignments {
		byColumn[a.Column] = a
	}

	result := &AnalysisResult{
		RecommendedMapping: make(map[string]string),
		DetectedColumns:    make([]DetectedColumn, 0, len(columns)),
	}

	var sum float64
	var accepted int
	assignedRequired := make(map[string]struct{})

	for i, col := range columns {
		detected := DetectedColumn{Header: col.Header, Index: col.Index}

		if a, ok := byColumn[i]; ok {
			detected.Field = a.Field
			detected.Confidence = a.Confidence
			detected.Strategy = a.Strategy
			if a.Confidence >= floor {
				detected.Mapped = true
				result.RecommendedMapping[col.Header] = a.Field
				sum += a.Confidence
				accepted++
				if fieldRequired(reg, a.Field) {
					assignedRequired[a.Field] = struct{}{}
				}
			}
		} else if len(candidates[i]) > 0 {
			// Lost every claim; surface the best candidate for override UIs.
			best := candidates[i][0]
			detected.Field = best.Field
			detected.Confidence = best.Confidence
			detected.Strategy = best.Strategy
		}

		result.DetectedColumns = append(result.DetectedColumns, detected)
	}

	if accepted > 0 {
		confidence := sum / float64(accepted)
		if total := reg.RequiredCount(); total > 0 {
			confidence *= float64(len(assignedRequired)) / float64(total)
		}
		result.Confidence = confidence
	}

	return result
}

func fieldRequired(reg *Registry, key string) bool {
	for _, f := range reg.Fields() {
		if f.Key == key {
			return f.Required
		}
	}
	return false
}
