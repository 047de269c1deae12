package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fleetglass/agentmap/internal/logging"
	"github.com/fleetglass/agentmap/pkg/mapping"
)

var (
	flagFloor       float64
	flagSampleLimit int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.csv> [file.csv...]",
	Short: "Analyze CSV headers and print the recommended field mapping",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		analyzer, err := buildAnalyzer()
		if err != nil {
			return err
		}

		type fileResult struct {
			File   string                  `json:"file"`
			Result *mapping.AnalysisResult `json:"analysis"`
		}

		results := make([]fileResult, len(args))
		var g errgroup.Group

		// The core holds no mutable state, so independent files can be
		// analyzed concurrently against the same analyzer.
		for i, path := range args {
			i, path := i, path
			g.Go(func() error {
				_, requestID := logging.WithRequestID(cmd.Context(), "")

				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("open %s: %w", path, err)
				}
				defer f.Close()

				result, err := analyzer.AnalyzeCSV(f)
				if err != nil {
					return fmt.Errorf("analyze %s: %w", path, err)
				}

				log.Debug().
					Str("request_id", requestID).
					Str("file", path).
					Int("columns", len(result.DetectedColumns)).
					Int("mapped", len(result.RecommendedMapping)).
					Float64("confidence", result.Confidence).
					Msg("Analysis complete")

				results[i] = fileResult{File: path, Result: result}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		for _, r := range results {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().Float64Var(&flagFloor, "floor", envFloat("AGENTMAP_CONFIDENCE_FLOOR", mapping.DefaultConfidenceFloor), "minimum confidence for a column to be mapped")
	analyzeCmd.Flags().IntVar(&flagSampleLimit, "sample-rows", mapping.DefaultSampleLimit, "data rows sampled for value-shape tie-breaks")
}

// buildAnalyzer assembles the analyzer from the registry flag and tuning
// flags shared by analyze and eval.
func buildAnalyzer() (*mapping.Analyzer, error) {
	var reg *mapping.Registry
	if flagRegistry != "" {
		var err error
		reg, err = mapping.LoadRegistryFile(flagRegistry)
		if err != nil {
			return nil, err
		}
	}
	return mapping.New(reg,
		mapping.WithConfidenceFloor(flagFloor),
		mapping.WithSampleLimit(flagSampleLimit),
	), nil
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var f float64
	if _, err := fmt.Sscanf(v, "%g", &f); err != nil {
		fmt.Fprintf(os.Stderr, "invalid %s=%q; using %g\n", key, v, fallback)
		return fallback
	}
	return f
}
