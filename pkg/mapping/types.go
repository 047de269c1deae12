package mapping

// Strategy identifies which matching tier produced a candidate's score.
type Strategy string

const (
	StrategyExact      Strategy = "exact"
	StrategyNormalized Strategy = "normalized"
	StrategySynonym    Strategy = "synonym"
	StrategyFuzzy      Strategy = "fuzzy"
)

// rank orders strategies for tie-breaking. Lower wins.
func (s Strategy) rank() int {
	switch s {
	case StrategyExact:
		return 0
	case StrategyNormalized:
		return 1
	case StrategySynonym:
		return 2
	case StrategyFuzzy:
		return 3
	default:
		return 4
	}
}

// RawColumn is one header as found in the input file, plus its position and
// an optional sample of cell values used only as a tie-break signal.
type RawColumn struct {
	Header  string
	Index   int
	Samples []string
}

// MatchCandidate is the result of scoring one column against one canonical
// field. Confidence is in [0,1].
type MatchCandidate struct {
	Field      string   `json:"field"`
	Confidence float64  `json:"confidence"`
	Strategy   Strategy `json:"strategy"`
}

// DetectedColumn is the per-column diagnostic carried in an AnalysisResult.
// Field and Strategy describe the chosen (or best unaccepted) candidate.
type DetectedColumn struct {
	Header     string   `json:"header"`
	Index      int      `json:"index"`
	Field      string   `json:"field,omitempty"`
	Confidence float64  `json:"confidence"`
	Strategy   Strategy `json:"strategy,omitempty"`
	Mapped     bool     `json:"mapped"`
}

// AnalysisResult is the whole-file mapping recommendation.
type AnalysisResult struct {
	// RecommendedMapping maps raw header strings to canonical field keys.
	// A field key appears at most once, and every entry cleared the
	// minimum confidence floor.
	RecommendedMapping map[string]string `json:"recommendedMapping"`

	// DetectedColumns lists per-column diagnostics in input order,
	// including columns that did not make it into the recommendation.
	DetectedColumns []DetectedColumn `json:"detectedColumns"`

	// Confidence is the aggregate score for the whole mapping: the mean
	// of accepted per-column confidences scaled by required-field
	// completeness.
	Confidence float64 `json:"confidence"`

	// HeaderlessHint is set when the header row itself looks like a data
	// row, suggesting the file has no header at all.
	HeaderlessHint bool `json:"headerlessHint,omitempty"`
}
