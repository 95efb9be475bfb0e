package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"malbolge_gen"
	"nickandperla.net/malbolge"
)

type benchReport struct {
	Module     string `json:"module"`
	Iterations int    `json:"iterations"`
	TotalNS    int64  `json:"total_ns"`
	NSPerOp    int64  `json:"ns_per_op"`
}

func newBenchCommand() *cobra.Command {
	var (
		module     string
		iterations int
		profileDir string
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run interpreter and generator micro-benchmarks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if profileDir != "" {
				defer profile.Start(profile.CPUProfile, profile.ProfilePath(profileDir)).Stop()
			}

			var reports []benchReport
			switch module {
			case "interpreter":
				reports = append(reports, benchInterpreter(iterations))
			case "generator":
				reports = append(reports, benchGenerator(iterations))
			case "all":
				reports = append(reports, benchInterpreter(iterations), benchGenerator(iterations))
			default:
				return fmt.Errorf("unknown module [%s]; expected interpreter, generator, or all", module)
			}

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(reports)
		},
	}

	cmd.Flags().StringVar(&module, "module", "all", "Which module to benchmark (interpreter|generator|all)")
	cmd.Flags().IntVar(&iterations, "iterations", 50, "Iterations per benchmark")
	cmd.Flags().StringVar(&profileDir, "profile-dir", "", "Write a CPU profile to this directory")
	return cmd
}

func benchInterpreter(iterations int) benchReport {
	program := malbolge_gen.BootstrapPrefix()
	interp := malbolge.NewInterpreter(nil)
	started := time.Now()
	for i := 0; i < iterations; i++ {
		if _, err := interp.Execute(nil, program, false); err != nil {
			panic(err)
		}
	}
	total := time.Since(started).Nanoseconds()
	return benchReport{
		Module:     "interpreter",
		Iterations: iterations,
		TotalNS:    total,
		NSPerOp:    total / int64(iterations),
	}
}

func benchGenerator(iterations int) benchReport {
	started := time.Now()
	for i := 0; i < iterations; i++ {
		generator := malbolge_gen.NewGenerator(&malbolge_gen.GeneratorConfig{RandomSeed: int64(i)})
		if _, err := generator.GenerateForString(nil, "Hi"); err != nil {
			panic(err)
		}
	}
	total := time.Since(started).Nanoseconds()
	return benchReport{
		Module:     "generator",
		Iterations: iterations,
		TotalNS:    total,
		NSPerOp:    total / int64(iterations),
	}
}
