package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"nickandperla.net/malbolge"
)

func newRunCommand() *cobra.Command {
	var (
		opcodes          string
		opcodesFile      string
		asciiSource      string
		asciiFile        string
		input            string
		maxSteps         uint
		cycleLimit       uint
		noCycleDetection bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute Malbolge opcodes or ASCII source",
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := resolveProgram(opcodes, opcodesFile, asciiSource, asciiFile)
			if err != nil {
				return err
			}

			config := malbolge.DefaultInterpreterConfig()
			config.MaxSteps = maxSteps
			if noCycleDetection {
				config.CycleDetectionLimit = 0
			} else if cmd.Flags().Changed("cycle-limit") {
				config.CycleDetectionLimit = cycleLimit
			}

			interp := malbolge.NewInterpreter(config)
			result, err := interp.ExecuteWithInput(cmd.Context(), program, []byte(input), false)
			if err != nil {
				return err
			}

			os.Stdout.Write(result.Output)
			fields := logrus.Fields{
				"halt_reason":      result.HaltReason.String(),
				"steps":            result.Steps,
				"last_instruction": string(result.HaltMetadata.LastInstruction),
				"peak_cells":       result.PeakMemoryCells,
			}
			if result.HaltMetadata.CycleDetected {
				fields["cycle_repeat_length"] = result.HaltMetadata.CycleRepeatLength
			}
			if result.HaltMetadata.CycleTrackingLimited {
				fields["cycle_tracking_limited"] = true
			}
			logrus.WithFields(fields).Info("run finished")

			if !result.HaltReason.Success() {
				return fmt.Errorf("program halted with [%s] after [%d] steps, last instruction [%c]",
					result.HaltReason, result.Steps, result.HaltMetadata.LastInstruction)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opcodes, "opcodes", "", "Raw opcode string ending with 'v'")
	cmd.Flags().StringVar(&opcodesFile, "opcodes-file", "", "Path to a file of raw opcodes; whitespace is stripped")
	cmd.Flags().StringVar(&asciiSource, "ascii", "", "ASCII Malbolge program, normalized before execution")
	cmd.Flags().StringVar(&asciiFile, "ascii-file", "", "Path to an ASCII Malbolge source file")
	cmd.Flags().StringVar(&input, "input", "", "Input buffer consumed by the '/' instruction")
	cmd.Flags().UintVar(&maxSteps, "max-steps", 0, "Halt with step_limit_exceeded after this many steps (0 = unlimited)")
	cmd.Flags().UintVar(&cycleLimit, "cycle-limit", malbolge.DefaultCycleDetectionLimit, "Number of unique states tracked for cycle detection")
	cmd.Flags().BoolVar(&noCycleDetection, "no-cycle-detection", false, "Disable cycle detection tracking entirely")
	return cmd
}

// resolveProgram turns exactly one of the four program flags into a
// normalized opcode string.
func resolveProgram(opcodes, opcodesFile, asciiSource, asciiFile string) (string, error) {
	set := 0
	for _, v := range []string{opcodes, opcodesFile, asciiSource, asciiFile} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return "", fmt.Errorf("exactly one of --opcodes, --opcodes-file, --ascii, --ascii-file must be given")
	}

	switch {
	case opcodesFile != "":
		data, err := os.ReadFile(opcodesFile)
		if err != nil {
			return "", err
		}
		opcodes = stripWhitespace(string(data))
	case asciiFile != "":
		data, err := os.ReadFile(asciiFile)
		if err != nil {
			return "", err
		}
		asciiSource = stripWhitespace(string(data))
	case asciiSource != "":
		asciiSource = stripWhitespace(asciiSource)
	}

	if asciiSource != "" {
		return malbolge.Normalize(asciiSource)
	}
	return opcodes, nil
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
