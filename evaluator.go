package malbolge_gen

import (
	"context"
	"fmt"

	"nickandperla.net/malbolge"
)

// cacheKey addresses the snapshot cache: the parent state's fingerprint plus
// the single appended symbol.
type cacheKey struct {
	parent malbolge.Fingerprint
	symbol byte
}

// Evaluator advances prefix states one opcode at a time, memoizing resulting
// snapshots by (parent fingerprint, symbol). Equal fingerprints imply equal
// tape content, so a cached snapshot is interchangeable with a re-executed
// one regardless of which textual prefix reached the parent.
type Evaluator struct {
	interp *malbolge.Interpreter
	cache  map[cacheKey]*prefixState
	stats  *GenerationStats
	maxLen uint
}

// NewEvaluator builds an evaluator around a search interpreter. Search
// programs are jump-free, so cycle tracking is disabled to keep stepping
// cheap.
func NewEvaluator(stats *GenerationStats, maxProgramLength uint) *Evaluator {
	return &Evaluator{
		interp: malbolge.NewInterpreter(&malbolge.InterpreterConfig{
			AllowMemoryExpansion: true,
			MemoryLimit:          malbolge.MaxAddressSpace,
			CycleDetectionLimit:  0,
		}),
		cache:  make(map[cacheKey]*prefixState),
		stats:  stats,
		maxLen: maxProgramLength,
	}
}

// Extend returns the state reached by appending symbol to parent, stepping
// the interpreter only on a cache miss. The boolean reports a cache hit.
// Every call counts as one evaluation.
func (e *Evaluator) Extend(ctx context.Context, parent *prefixState, symbol byte) (*prefixState, bool, error) {
	e.stats.Evaluations++

	key := cacheKey{parent: parent.fp, symbol: symbol}
	if cached, ok := e.cache[key]; ok {
		e.stats.CacheHits++
		return cached, true, nil
	}

	if uint(len(parent.machine.Tape))+1 > e.maxLen {
		return nil, false, fmt.Errorf("%w: program reached the configured length limit [%d]", ErrGenerationExhausted, e.maxLen)
	}

	result, err := e.interp.ExecuteFromSnapshot(ctx, parent.machine, string(symbol), true)
	if err != nil {
		return nil, false, err
	}
	if result.HaltReason == malbolge.Cancelled {
		return nil, false, ctx.Err()
	}
	if !result.HaltReason.Success() {
		return nil, false, fmt.Errorf("candidate run halted with [%s] after [%d] steps, last instruction [%c]",
			result.HaltReason, result.Steps, result.HaltMetadata.LastInstruction)
	}

	output := make([]byte, 0, len(parent.output)+len(result.Output))
	output = append(output, parent.output...)
	output = append(output, result.Output...)

	state := &prefixState{
		output:  output,
		machine: result.Machine,
		fp:      result.Machine.Fingerprint(len(output)),
	}
	e.cache[key] = state
	return state, false, nil
}
