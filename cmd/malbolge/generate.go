package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"malbolge_gen"
)

func newGenerateCommand() *cobra.Command {
	var (
		text         string
		seed         int64
		maxDepth     uint
		opcodes      string
		captureTrace bool
		jsonOut      bool
		archivePath  string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Synthesize a Malbolge program that prints a target string",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := &malbolge_gen.GeneratorConfig{
				RandomSeed:     seed,
				MaxSearchDepth: maxDepth,
				OpcodeChoices:  opcodes,
				CaptureTrace:   captureTrace,
			}
			generator := malbolge_gen.NewGenerator(config)
			result, err := generator.GenerateForString(cmd.Context(), text)
			if err != nil {
				return err
			}

			logrus.WithFields(logrus.Fields{
				"evaluations":  result.Stats.Evaluations,
				"cache_hits":   result.Stats.CacheHits,
				"pruned":       result.Stats.Pruned,
				"pruned_ratio": fmt.Sprintf("%.3f", result.Stats.PrunedRatio),
				"duration_ns":  result.Stats.DurationNS,
				"steps":        result.Execution.Steps,
			}).Info("generation complete")

			if archivePath != "" {
				dir, name := filepath.Split(archivePath)
				if dir == "" {
					dir = "."
				}
				persist, err := malbolge_gen.NewPersistence(&malbolge_gen.PersistenceConfig{Path: dir, Name: name})
				if err != nil {
					return err
				}
				defer persist.Shutdown()
				record, err := persist.SaveResult(result)
				if err != nil {
					return err
				}
				logrus.WithField("record_id", record.ID).Info("archived result")
			}

			if jsonOut || captureTrace {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(result)
			}
			fmt.Println(result.AsciiSource)
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Desired output string")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for deterministic search")
	cmd.Flags().UintVar(&maxDepth, "max-depth", malbolge_gen.DefaultMaxSearchDepth, "Maximum search depth before randomized extension")
	cmd.Flags().StringVar(&opcodes, "opcodes", malbolge_gen.DefaultOpcodeChoices, "Opcode choices considered during search")
	cmd.Flags().BoolVar(&captureTrace, "trace", false, "Capture a search trace and print the result as JSON")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the full result as JSON")
	cmd.Flags().StringVar(&archivePath, "archive", "", "Also store the result in the SQLite archive at this path")
	cmd.MarkFlagRequired("text")
	return cmd
}
