package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fleetglass/agentmap/internal/corpus"
	"github.com/fleetglass/agentmap/pkg/mapping"
)

var (
	flagCorpusDB      string
	flagSampleName    string
	flagEvalThreshold float64
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Manage the labeled header corpus",
}

var corpusAddCmd = &cobra.Command{
	Use:   "add <file.csv> <header=field>...",
	Short: "Add a labeled sample: a CSV file plus its confirmed header mapping",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer f.Close()

		headers, _, err := mapping.ReadHeader(f)
		if err != nil {
			return err
		}

		expected := make(map[string]string, len(args)-1)
		for _, pair := range args[1:] {
			header, field, ok := strings.Cut(pair, "=")
			if !ok {
				return fmt.Errorf("label %q is not of the form header=field", pair)
			}
			expected[header] = field
		}

		store, err := corpus.Open(flagCorpusDB)
		if err != nil {
			return err
		}
		defer store.Close()

		name := flagSampleName
		if name == "" {
			name = args[0]
		}
		id, err := store.Add(corpus.Sample{Name: name, Headers: headers, Expected: expected})
		if err != nil {
			return err
		}

		fmt.Printf("Added sample %s (%d headers, %d labels)\n", id, len(headers), len(expected))
		return nil
	},
}

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate matcher accuracy against the labeled corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := corpus.Open(flagCorpusDB)
		if err != nil {
			return err
		}
		defer store.Close()

		samples, err := store.List()
		if err != nil {
			return err
		}
		if len(samples) == 0 {
			return fmt.Errorf("corpus at %s has no samples", flagCorpusDB)
		}

		analyzer, err := buildAnalyzer()
		if err != nil {
			return err
		}

		report, err := corpus.Evaluate(samples, analyzer)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}

		if report.Accuracy < flagEvalThreshold {
			log.Warn().
				Float64("accuracy", report.Accuracy).
				Float64("threshold", flagEvalThreshold).
				Msg("Corpus accuracy below threshold")
			return fmt.Errorf("accuracy %.3f below threshold %.3f", report.Accuracy, flagEvalThreshold)
		}
		return nil
	},
}

func init() {
	corpusCmd.PersistentFlags().StringVar(&flagCorpusDB, "db", "corpus.db", "path to the corpus database")
	corpusCmd.AddCommand(corpusAddCmd)
	corpusAddCmd.Flags().StringVar(&flagSampleName, "name", "", "sample name (default: file path)")

	evalCmd.Flags().StringVar(&flagCorpusDB, "db", "corpus.db", "path to the corpus database")
	evalCmd.Flags().Float64Var(&flagEvalThreshold, "threshold", 0.95, "minimum acceptable corpus accuracy")
	evalCmd.Flags().Float64Var(&flagFloor, "floor", envFloat("AGENTMAP_CONFIDENCE_FLOOR", mapping.DefaultConfidenceFloor), "minimum confidence for a column to be mapped")
	evalCmd.Flags().IntVar(&flagSampleLimit, "sample-rows", mapping.DefaultSampleLimit, "data rows sampled for value-shape tie-breaks")
}
