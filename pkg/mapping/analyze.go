// Package mapping infers which canonical agent configuration field each
// column of a human-authored CSV represents. It scores every header against
// a fixed field registry through layered strategies (exact, normalized,
// synonym, fuzzy) and aggregates per-column scores into a whole-file
// recommendation a caller can accept or override.
//
// Analysis is pure and synchronous: the only shared state is the read-only
// registry, so callers may run any number of analyses concurrently.
package mapping

import (
	"fmt"
	"io"
	"unicode/utf8"

	interrors "github.com/fleetglass/agentmap/internal/errors"
)

const (
	// DefaultConfidenceFloor is the minimum confidence for a column to
	// enter the recommended mapping.
	DefaultConfidenceFloor = 0.5
	// DefaultSampleLimit bounds how many data rows are read from a CSV
	// stream for tie-break sampling.
	DefaultSampleLimit = 20
)

// Analyzer runs whole-file column analyses against one registry.
type Analyzer struct {
	reg         *Registry
	matcher     *Matcher
	assigner    Assigner
	floor       float64
	sampleLimit int
}

// Option customizes an Analyzer. The zero set of options yields the
// thresholds documented on the Default* constants.
type Option func(*Analyzer)

// WithConfidenceFloor overrides the minimum confidence for recommendation.
func WithConfidenceFloor(floor float64) Option {
	return func(a *Analyzer) { a.floor = floor }
}

// WithScorer substitutes the fuzzy-tier similarity measure.
func WithScorer(s Scorer) Option {
	return func(a *Analyzer) { a.matcher.scorer = s }
}

// WithAssigner substitutes the column/field assignment strategy.
func WithAssigner(as Assigner) Option {
	return func(a *Analyzer) { a.assigner = as }
}

// WithTieEpsilon overrides the confidence gap treated as a tie.
func WithTieEpsilon(eps float64) Option {
	return func(a *Analyzer) { a.matcher.tieEpsilon = eps }
}

// WithSampleLimit bounds tie-break sampling when reading CSV streams.
func WithSampleLimit(n int) Option {
	return func(a *Analyzer) { a.sampleLimit = n }
}

// New builds an Analyzer over the given registry. A nil registry selects the
// built-in agent-import registry.
func New(reg *Registry, opts ...Option) *Analyzer {
	if reg == nil {
		reg = DefaultRegistry()
	}
	a := &Analyzer{
		reg:         reg,
		matcher:     NewMatcher(reg, nil),
		assigner:    GreedyAssigner{},
		floor:       DefaultConfidenceFloor,
		sampleLimit: DefaultSampleLimit,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeHeaders analyzes a pre-parsed ordered header row. sampleRows, which
// may be nil, provides data rows whose cells serve as tie-break signals for
// their columns. The call is side-effect free; repeated calls with the same
// inputs return identical results.
func (a *Analyzer) AnalyzeHeaders(headers []string, sampleRows [][]string) (*AnalysisResult, error) {
	if len(headers) == 0 {
		return nil, interrors.WrapValidationError("analyze_headers",
			fmt.Errorf("no header columns: %w", interrors.ErrEmptyInput))
	}

	columns := make([]RawColumn, len(headers))
	for i, h := range headers {
		if !utf8.ValidString(h) {
			return nil, interrors.NewImportError(interrors.ErrorTypeValidation, "analyze_headers",
				fmt.Errorf("header is not valid UTF-8: %w", interrors.ErrInvalidInput)).WithHeader(h)
		}
		columns[i] = RawColumn{Header: h, Index: i, Samples: columnSamples(sampleRows, i, a.sampleLimit)}
	}

	candidates := make([][]MatchCandidate, len(columns))
	for i, col := range columns {
		candidates[i] = a.matcher.Match(col)
	}

	result := aggregate(columns, candidates, a.reg, a.assigner, a.floor)
	result.HeaderlessHint = headerlessHint(result, columns)
	return result, nil
}

// AnalyzeCSV tokenizes the header row of raw CSV text with a conventional
// comma/quote-aware grammar, retains up to the sample limit of data rows for
// tie-breaking, and analyzes the result.
func (a *Analyzer) AnalyzeCSV(r io.Reader) (*AnalysisResult, error) {
	headers, samples, err := readHeaderAndSamples(r, a.sampleLimit)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeHeaders(headers, samples)
}

// columnSamples extracts the given column from sample rows, skipping rows
// too short to reach it.
func columnSamples(rows [][]string, col, limit int) []string {
	if len(rows) == 0 {
		return nil
	}
	samples := make([]string, 0, min(len(rows), limit))
	for _, row := range rows {
		if len(samples) >= limit {
			break
		}
		if col < len(row) {
			samples = append(samples, row[col])
		}
	}
	if len(samples) == 0 {
		return nil
	}
	return samples
}

// headerlessHint flags files whose header row itself looks like data: no
// column cleared the floor and at least half the headers parse as numeric or
// boolean values. Reported as data for the import UI, never as an error.
func headerlessHint(result *AnalysisResult, columns []RawColumn) bool {
	if len(result.RecommendedMapping) > 0 {
		return false
	}
	dataish := 0
	for _, col := range columns {
		if looksNumeric(col.Header) {
			dataish++
			continue
		}
		if _, ok := parseBoolish(col.Header); ok {
			dataish++
		}
	}
	return dataish*2 >= len(columns)
}
