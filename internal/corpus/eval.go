package corpus

import (
	"github.com/fleetglass/agentmap/pkg/mapping"
)

// SampleReport is the evaluation outcome for one labeled sample.
type SampleReport struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Correct  int     `json:"correct"`
	Expected int     `json:"expected"`
	Spurious int     `json:"spurious"` // mapped headers the label says should stay unmapped
	Accuracy float64 `json:"accuracy"`
}

// Report aggregates matcher accuracy across a labeled corpus.
type Report struct {
	Samples  []SampleReport `json:"samples"`
	Correct  int            `json:"correct"`
	Expected int            `json:"expected"`
	Accuracy float64        `json:"accuracy"`
}

// Evaluate runs the analyzer over every labeled sample and scores the
// recommended mappings against the labels. Accuracy is the fraction of
// labeled header->field pairs the analyzer reproduced.
func Evaluate(samples []Sample, analyzer *mapping.Analyzer) (*Report, error) {
	report := &Report{Samples: make([]SampleReport, 0, len(samples))}

	for _, sample := range samples {
		result, err := analyzer.AnalyzeHeaders(sample.Headers, nil)
		if err != nil {
			return nil, err
		}

		sr := SampleReport{ID: sample.ID, Name: sample.Name, Expected: len(sample.Expected)}
		for header, want := range sample.Expected {
			if got, ok := result.RecommendedMapping[header]; ok && got == want {
				sr.Correct++
			}
		}
		for header := range result.RecommendedMapping {
			if _, labeled := sample.Expected[header]; !labeled {
				sr.Spurious++
			}
		}
		if sr.Expected > 0 {
			sr.Accuracy = float64(sr.Correct) / float64(sr.Expected)
		} else if sr.Spurious == 0 {
			sr.Accuracy = 1
		}

		report.Samples = append(report.Samples, sr)
		report.Correct += sr.Correct
		report.Expected += sr.Expected
	}

	if report.Expected > 0 {
		report.Accuracy = float64(report.Correct) / float64(report.Expected)
	}
	return report, nil
}
