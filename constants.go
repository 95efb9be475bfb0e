package malbolge_gen

import (
	"nickandperla.net/malbolge"
)

const (
	DEBUG = false

	// The fixed opcode prefix every generated program starts with: one jump
	// followed by 99 no-ops. The jump lands the code pointer just short of
	// the program end, leaving a fully addressable tape for the
	// per-character search to build on.
	BootstrapJump     = "i"
	BootstrapNoOpSpan = 99

	DefaultOpcodeChoices    = "op*"
	DefaultMaxSearchDepth   = 5
	DefaultMaxProgramLength = malbolge.MaxProgramLength

	// DefaultRandomDrawLimit caps randomized extension per target byte. A
	// byte that cannot be produced within this many draws aborts the run
	// with ErrGenerationExhausted.
	DefaultRandomDrawLimit = 65536

	DefaultEngineWorkers = 4
	DefaultBatchSize     = 100
)

// OutputOpcode emits the accumulator's low byte; every committed character
// suffix ends with it. HaltOpcode terminates every finished program.
const (
	OutputOpcode byte = '<'
	HaltOpcode   byte = 'v'
)

// BootstrapPrefix renders the full bootstrap opcode string.
func BootstrapPrefix() string {
	prefix := make([]byte, 1+BootstrapNoOpSpan)
	prefix[0] = BootstrapJump[0]
	for i := 1; i < len(prefix); i++ {
		prefix[i] = 'o'
	}
	return string(prefix)
}
