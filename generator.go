package malbolge_gen

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xrash/smetrics"

	"nickandperla.net/malbolge"
)

// Generator synthesizes Malbolge programs that print a target string. One
// generator can serve many runs; each run gets its own interpreter, snapshot
// cache, and seeded random source, so independent generators parallelize
// freely across targets.
type Generator struct {
	Config *GeneratorConfig
}

// NewGenerator builds a generator. A nil config selects
// DefaultGeneratorConfig; the config is cloned so later caller mutations
// cannot leak into runs.
func NewGenerator(config *GeneratorConfig) *Generator {
	if config == nil {
		config = DefaultGeneratorConfig()
	}
	clone := config.Clone()
	clone.normalize()
	return &Generator{Config: clone}
}

// searchRun is the mutable state of one generation run.
type searchRun struct {
	cfg      *GeneratorConfig
	target   string
	eval     *Evaluator
	selector *Selector
	rng      *rand.Rand
	stats    *GenerationStats
	trace    []TraceEvent
	frontier *prefixState
}

// GenerateForString synthesizes a program whose output equals target. The
// run is deterministic for a fixed configuration; only wall-clock duration
// varies between identical runs.
func (g *Generator) GenerateForString(ctx context.Context, target string) (*GenerationResult, error) {
	if err := g.Config.validate(); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	started := time.Now()

	stats := &GenerationStats{}
	run := &searchRun{
		cfg:      g.Config,
		target:   target,
		eval:     NewEvaluator(stats, g.Config.MaxProgramLength),
		selector: NewSelector(g.Config.OpcodeChoices),
		rng:      rand.New(rand.NewSource(g.Config.RandomSeed)),
		stats:    stats,
	}

	bootstrap := BootstrapPrefix()
	if uint(len(bootstrap))+1 >= g.Config.MaxProgramLength {
		return nil, fmt.Errorf("bootstrap length [%d] exceeds max program length [%d]", len(bootstrap), g.Config.MaxProgramLength)
	}
	bootResult, err := run.eval.interp.Execute(ctx, bootstrap, true)
	if err != nil {
		return nil, err
	}
	if bootResult.HaltReason == malbolge.Cancelled {
		return nil, ctx.Err()
	}
	if !bootResult.HaltReason.Success() {
		return nil, fmt.Errorf("bootstrap halted with [%s] after [%d] steps", bootResult.HaltReason, bootResult.Steps)
	}
	run.frontier = &prefixState{
		output:  bootResult.Output,
		machine: bootResult.Machine,
		fp:      bootResult.Machine.Fingerprint(len(bootResult.Output)),
	}

	program := []byte(bootstrap)
	for k := 0; k < len(target); k++ {
		suffix, state, err := run.searchByte(ctx, k)
		if err != nil {
			run.finish(started)
			return nil, err
		}
		program = append(program, suffix...)
		run.frontier = state
		if DEBUG {
			logger.Debugf("committed byte %d/%d after %d evaluations", k+1, len(target), run.stats.Evaluations)
		}
	}
	program = append(program, HaltOpcode)

	// Re-execute the finished program on a fresh interpreter to verify the
	// output and populate the final diagnostics.
	verifier := malbolge.NewInterpreter(nil)
	verify, err := verifier.Execute(ctx, string(program), true)
	if err != nil {
		return nil, err
	}
	if verify.HaltReason == malbolge.Cancelled {
		return nil, ctx.Err()
	}
	if !bytes.Equal(verify.Output, []byte(target)) {
		similarity := smetrics.JaroWinkler(string(verify.Output), target, 0.7, 4)
		return nil, fmt.Errorf("%w: re-executed output [%q] does not match target [%q] (similarity %.3f, halt reason [%s])",
			ErrVerificationFailed, verify.Output, target, similarity, verify.HaltReason)
	}

	ascii, err := malbolge.ReverseNormalize(string(program), 0)
	if err != nil {
		return nil, err
	}

	run.finish(started)
	logger.WithFields(logrus.Fields{
		"target_bytes": len(target),
		"opcodes":      len(program),
		"evaluations":  run.stats.Evaluations,
		"duration_ns":  run.stats.DurationNS,
	}).Debug("generation verified")
	return &GenerationResult{
		Target:        target,
		Opcodes:       string(program),
		AsciiSource:   ascii,
		MachineOutput: verify.Output,
		Stats:         run.stats,
		Trace:         run.trace,
		Execution:     verify,
	}, nil
}

func (r *searchRun) finish(started time.Time) {
	r.stats.DurationNS = time.Since(started).Nanoseconds()
	r.stats.TraceLength = uint64(len(r.trace))
	r.stats.finalize()
}

// searchByte finds an opcode suffix that makes the machine emit target byte
// k. It alternates bounded exhaustive expansion with randomized extension:
// every level appends one construction opcode to each live node and probes
// the child with the output opcode; when depth is exhausted without a winner
// a seeded random symbol is committed and the expansion restarts.
func (r *searchRun) searchByte(ctx context.Context, k int) ([]byte, *prefixState, error) {
	want := []byte(r.target[:k+1])
	seen := map[malbolge.Fingerprint]struct{}{r.frontier.fp: {}}
	base := r.frontier
	var committed []byte
	var draws uint

	for {
		level := []*searchNode{{state: base}}
		for depth := 1; depth <= int(r.cfg.MaxSearchDepth); depth++ {
			var winners []*candidateWinner
			var next []*searchNode
			for _, node := range level {
				for ci := 0; ci < len(r.cfg.OpcodeChoices); ci++ {
					if err := ctx.Err(); err != nil {
						return nil, nil, fmt.Errorf("%w after [%d] evaluations", err, r.stats.Evaluations)
					}
					symbol := r.cfg.OpcodeChoices[ci]

					child, hit, err := r.eval.Extend(ctx, node.state, symbol)
					if err != nil {
						return nil, nil, err
					}
					if _, dup := seen[child.fp]; dup {
						r.stats.Pruned++
						r.stats.RepeatedStatePruned++
						r.record(depth, node.state.fp, symbol, TraceRepeatedState, child)
						continue
					}
					seen[child.fp] = struct{}{}
					if hit {
						r.record(depth, node.state.fp, symbol, TraceCacheHit, child)
					} else {
						r.record(depth, node.state.fp, symbol, TraceAccepted, child)
					}

					probe, _, err := r.eval.Extend(ctx, child, OutputOpcode)
					if err != nil {
						return nil, nil, err
					}
					if bytes.Equal(probe.output, want) {
						r.record(depth, child.fp, OutputOpcode, TraceAccepted, probe)
						winners = append(winners, &candidateWinner{
							suffix: append(node.child(symbol), OutputOpcode),
							state:  probe,
						})
						continue
					}
					r.stats.Pruned++
					r.record(depth, child.fp, OutputOpcode, TracePrefixMismatch, probe)
					next = append(next, &searchNode{suffix: node.child(symbol), state: child})
				}
			}
			if len(winners) > 0 {
				winner := r.selector.Pick(winners)
				suffix := make([]byte, 0, len(committed)+len(winner.suffix))
				suffix = append(suffix, committed...)
				suffix = append(suffix, winner.suffix...)
				return suffix, winner.state, nil
			}
			level = next
			if len(level) == 0 {
				break
			}
		}

		// Randomized extension: commit one seeded random symbol to the base
		// and restart the bounded expansion from there. Draws do not count
		// against the depth limit but are capped per character.
		if draws >= r.cfg.RandomDrawLimit {
			return nil, nil, fmt.Errorf("%w: no suffix produced byte [%d] of the target within [%d] random draws ([%d] evaluations)",
				ErrGenerationExhausted, k, draws, r.stats.Evaluations)
		}
		symbol := r.cfg.OpcodeChoices[r.rng.Intn(len(r.cfg.OpcodeChoices))]
		draws++
		r.stats.RandomDraws++
		extended, _, err := r.eval.Extend(ctx, base, symbol)
		if err != nil {
			return nil, nil, err
		}
		committed = append(committed, symbol)
		base = extended
	}
}

// record appends a trace event when tracing is enabled.
func (r *searchRun) record(depth int, parent malbolge.Fingerprint, symbol byte, reason TraceReason, state *prefixState) {
	if !r.cfg.CaptureTrace {
		return
	}
	r.trace = append(r.trace, TraceEvent{
		Depth:             depth,
		ParentFingerprint: parent,
		Symbol:            string(symbol),
		Reason:            reason,
		OutputLength:      len(state.output),
		Fingerprint:       state.fp,
	})
}
