package malbolge

import (
	"context"
	"fmt"
	"sync"
)

// HaltReason classifies how a run terminated. Terminal conditions are
// reported through ExecutionResult rather than raised as errors; only
// load-time problems surface as Go errors.
type HaltReason uint8

const (
	Running HaltReason = iota
	HaltOpcode
	EndOfProgram
	InvalidOpcode
	InputUnderflow
	StepLimitExceeded
	MemoryLimitExceeded
	Cancelled
)

var haltReasonNames = [...]string{
	Running:             "running",
	HaltOpcode:          "halt_opcode",
	EndOfProgram:        "end_of_program",
	InvalidOpcode:       "invalid_opcode",
	InputUnderflow:      "input_underflow",
	StepLimitExceeded:   "step_limit_exceeded",
	MemoryLimitExceeded: "memory_limit_exceeded",
	Cancelled:           "cancelled",
}

func (r HaltReason) String() string {
	if int(r) < len(haltReasonNames) {
		return haltReasonNames[r]
	}
	return fmt.Sprintf("halt_reason(%d)", uint8(r))
}

// Success reports whether the run ended in a normal program termination.
func (r HaltReason) Success() bool {
	return r == HaltOpcode || r == EndOfProgram
}

// DefaultCycleDetectionLimit bounds the number of sampled fingerprints kept
// for cycle detection before the tracker reports itself as limited.
const DefaultCycleDetectionLimit = 100000

// DefaultCycleSamplingPeriod is how many steps pass between fingerprint
// samples. Sampling rather than hashing every step keeps the hot loop cheap.
const DefaultCycleSamplingPeriod = 16

// InterpreterConfig names every knob of an interpreter instance. Zero values
// are normalized by NewInterpreter: MemoryLimit 0 means the full address
// space, MaxSteps 0 means unlimited, CycleDetectionLimit 0 disables tracking.
type InterpreterConfig struct {
	AllowMemoryExpansion bool `toml:"allow_memory_expansion"`
	MemoryLimit          uint `toml:"memory_limit"`
	MaxSteps             uint `toml:"max_steps"`
	CycleDetectionLimit  uint `toml:"cycle_detection_limit"`
	CycleSamplingPeriod  uint `toml:"cycle_sampling_period"`
}

// DefaultInterpreterConfig returns the configuration used when callers pass
// nil: expandable memory up to the full address space, no step limit, cycle
// detection on.
func DefaultInterpreterConfig() *InterpreterConfig {
	return &InterpreterConfig{
		AllowMemoryExpansion: true,
		MemoryLimit:          MaxAddressSpace,
		MaxSteps:             0,
		CycleDetectionLimit:  DefaultCycleDetectionLimit,
		CycleSamplingPeriod:  DefaultCycleSamplingPeriod,
	}
}

// HaltMetadata carries the diagnostic fields populated on every run,
// successful or not.
type HaltMetadata struct {
	LastInstruction      byte
	LastJumpTarget       int // -1 when the last instruction did not jump
	CycleDetected        bool
	CycleRepeatLength    uint
	CycleTrackingLimited bool
}

// ExecutionResult is the structured outcome of a run.
type ExecutionResult struct {
	Output           []byte
	Halted           bool
	Steps            uint
	HaltReason       HaltReason
	HaltMetadata     HaltMetadata
	MemoryExpansions uint
	PeakMemoryCells  uint
	Machine          *Machine
}

// Interpreter executes normalized Malbolge opcodes on an owned machine. One
// instance serializes all public entry points under a mutex, so shared use is
// safe but not parallel; independent instances and independent snapshots run
// freely in parallel.
type Interpreter struct {
	mu               sync.Mutex
	machine          *Machine
	config           *InterpreterConfig
	programLength    int
	memoryExpansions uint
	peakCells        int
}

// NewInterpreter builds an interpreter from config. A nil config selects
// DefaultInterpreterConfig.
func NewInterpreter(config *InterpreterConfig) *Interpreter {
	if config == nil {
		config = DefaultInterpreterConfig()
	}
	normalized := *config
	if normalized.MemoryLimit == 0 || normalized.MemoryLimit > MaxAddressSpace {
		normalized.MemoryLimit = MaxAddressSpace
	}
	if normalized.CycleSamplingPeriod == 0 {
		normalized.CycleSamplingPeriod = DefaultCycleSamplingPeriod
	}
	return &Interpreter{
		machine: &Machine{},
		config:  &normalized,
	}
}

// Machine exposes the interpreter's current machine, primarily for tests and
// diagnostics. Callers must not mutate it while a run is in flight.
func (in *Interpreter) Machine() *Machine {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.machine
}

// loadProgram validates opcodes, renders them to ASCII tape values, and
// resets the machine. Load problems are errors, not halt reasons.
func (in *Interpreter) loadProgram(opcodes string) error {
	if len(opcodes) == 0 {
		return fmt.Errorf("opcode sequence is empty")
	}
	if uint(len(opcodes)) > in.config.MemoryLimit {
		return fmt.Errorf("program length [%d] exceeds memory limit [%d]", len(opcodes), in.config.MemoryLimit)
	}
	ascii, err := ReverseNormalize(opcodes, 0)
	if err != nil {
		return err
	}
	if err := in.machine.LoadTape(ascii); err != nil {
		return err
	}
	in.programLength = len(opcodes)
	in.resetDiagnostics()
	return nil
}

func (in *Interpreter) resetDiagnostics() {
	in.memoryExpansions = 0
	in.peakCells = len(in.machine.Tape)
}

// Execute loads opcodes onto a fresh tape and runs until a terminal
// condition. When captureMachine is set the result carries a snapshot of the
// final machine.
func (in *Interpreter) Execute(ctx context.Context, opcodes string, captureMachine bool) (*ExecutionResult, error) {
	return in.ExecuteWithInput(ctx, opcodes, nil, captureMachine)
}

// ExecuteWithInput is Execute with an input buffer for the `/` instruction.
// Generated programs never read input; the buffer exists for hand-written
// programs. An exhausted buffer halts the run with InputUnderflow.
func (in *Interpreter) ExecuteWithInput(ctx context.Context, opcodes string, input []byte, captureMachine bool) (*ExecutionResult, error) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if err := in.loadProgram(opcodes); err != nil {
		return nil, err
	}
	return in.executeLoaded(ctx, input, captureMachine), nil
}

// ExecuteFromSnapshot resumes a captured machine after appending the decoded
// suffix opcodes at the first uninitialized cell past the snapshot's tape.
// Registers and prior tape content are kept; the result's output holds only
// bytes produced after the resume point.
func (in *Interpreter) ExecuteFromSnapshot(ctx context.Context, snapshot *Machine, suffix string, captureMachine bool) (*ExecutionResult, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	machine := snapshot.Snapshot()
	prefixLength := len(machine.Tape)
	if len(suffix) > 0 {
		ascii, err := ReverseNormalize(suffix, prefixLength)
		if err != nil {
			return nil, err
		}
		if uint(prefixLength+len(suffix)) > in.config.MemoryLimit {
			return nil, fmt.Errorf("extended program length [%d] exceeds memory limit [%d]", prefixLength+len(suffix), in.config.MemoryLimit)
		}
		for i := 0; i < len(ascii); i++ {
			machine.Tape = append(machine.Tape, uint16(ascii[i]))
		}
	}
	machine.Halted = false
	in.machine = machine
	in.programLength = prefixLength + len(suffix)
	in.resetDiagnostics()
	return in.executeLoaded(ctx, nil, captureMachine), nil
}

// ResumeExecution continues the currently loaded machine, for example after a
// reported step-limit halt. Step and diagnostic counters start fresh.
func (in *Interpreter) ResumeExecution(ctx context.Context, input []byte, captureMachine bool) *ExecutionResult {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.resetDiagnostics()
	return in.executeLoaded(ctx, input, captureMachine)
}

// executeLoaded is the step loop. Callers hold in.mu.
func (in *Interpreter) executeLoaded(ctx context.Context, input []byte, captureMachine bool) *ExecutionResult {
	m := in.machine
	m.Halted = false

	cfg := in.config
	output := make([]byte, 0, 16)
	meta := HaltMetadata{LastJumpTarget: -1}
	reason := Running
	var steps uint
	inputPos := 0

	var tracker map[Fingerprint]uint
	if cfg.CycleDetectionLimit > 0 {
		tracker = make(map[Fingerprint]uint)
	} else {
		meta.CycleTrackingLimited = true
	}

	var done <-chan struct{}
	if ctx != nil {
		done = ctx.Done()
	}

loop:
	for {
		if done != nil {
			select {
			case <-done:
				reason = Cancelled
				break loop
			default:
			}
		}
		if cfg.MaxSteps > 0 && steps >= cfg.MaxSteps {
			reason = StepLimitExceeded
			break loop
		}
		if int(m.C) >= in.programLength {
			m.Halted = true
			reason = EndOfProgram
			break loop
		}
		if err := in.ensureCapacity(int(m.C)); err != nil {
			reason = MemoryLimitExceeded
			break loop
		}
		cell := m.Tape[m.C]
		if cell < 33 || cell > 126 {
			reason = InvalidOpcode
			break loop
		}
		instruction := normalTranslate[(int(cell)-33+int(m.C))%94]
		if !IsOpcode(instruction) {
			meta.LastInstruction = instruction
			reason = InvalidOpcode
			break loop
		}
		meta.LastInstruction = instruction
		meta.LastJumpTarget = -1

		if tracker != nil && steps%uint(cfg.CycleSamplingPeriod) == 0 {
			if uint(len(tracker)) < cfg.CycleDetectionLimit {
				fp := m.Fingerprint(len(output))
				if prev, ok := tracker[fp]; ok {
					meta.CycleDetected = true
					meta.CycleRepeatLength = steps - prev
				} else {
					tracker[fp] = steps
				}
			} else {
				meta.CycleTrackingLimited = true
			}
		}

		switch instruction {
		case 'j':
			if err := in.ensureCapacity(int(m.D)); err != nil {
				reason = MemoryLimitExceeded
				break loop
			}
			target := m.Tape[m.D]
			m.D = target
			meta.LastJumpTarget = int(target)
		case 'i':
			if err := in.ensureCapacity(int(m.D)); err != nil {
				reason = MemoryLimitExceeded
				break loop
			}
			target := m.Tape[m.D]
			m.C = target
			meta.LastJumpTarget = int(target)
		case '*':
			if err := in.ensureCapacity(int(m.D)); err != nil {
				reason = MemoryLimitExceeded
				break loop
			}
			m.A = RotateRight(m.Tape[m.D])
			m.Tape[m.D] = m.A
		case 'p':
			if err := in.ensureCapacity(int(m.D)); err != nil {
				reason = MemoryLimitExceeded
				break loop
			}
			m.A = Crazy(m.A, m.Tape[m.D])
			m.Tape[m.D] = m.A
		case '<':
			output = append(output, byte(m.A%256))
		case '/':
			if inputPos >= len(input) {
				reason = InputUnderflow
				break loop
			}
			m.A = uint16(input[inputPos])
			inputPos++
		case 'o':
			// NOP; advances C and D.
		case 'v':
			m.Halted = true
			reason = HaltOpcode
		}

		m.encryptCurrentCell()
		m.C = (m.C + 1) % MaxAddressSpace
		m.D = (m.D + 1) % MaxAddressSpace
		steps++

		if m.Halted {
			break loop
		}
	}

	result := &ExecutionResult{
		Output:           output,
		Halted:           m.Halted,
		Steps:            steps,
		HaltReason:       reason,
		HaltMetadata:     meta,
		MemoryExpansions: in.memoryExpansions,
		PeakMemoryCells:  uint(in.peakCells),
	}
	if captureMachine {
		result.Machine = m.Snapshot()
	}
	return result
}

// ensureCapacity grows the tape so index is addressable, backfilling new
// cells with the crazy rule tape[k] = Crazy(tape[k-2], tape[k-1]).
func (in *Interpreter) ensureCapacity(index int) error {
	m := in.machine
	initial := len(m.Tape)
	if index < initial {
		return nil
	}
	if !in.config.AllowMemoryExpansion {
		return fmt.Errorf("memory expansion is disabled, cannot address cell [%d]", index)
	}
	limit := int(in.config.MemoryLimit)
	if index >= limit {
		return fmt.Errorf("cell [%d] exceeds memory limit [%d]", index, limit)
	}
	for len(m.Tape) <= index {
		var next uint16
		switch {
		case len(m.Tape) >= 2:
			next = Crazy(m.Tape[len(m.Tape)-2], m.Tape[len(m.Tape)-1])
		case len(m.Tape) == 1:
			next = Crazy(m.Tape[0], m.Tape[0])
		}
		m.Tape = append(m.Tape, next)
		if len(m.Tape) >= limit {
			break
		}
	}
	if index >= len(m.Tape) {
		return fmt.Errorf("unable to expand tape to cell [%d]", index)
	}
	in.memoryExpansions++
	if len(m.Tape) > in.peakCells {
		in.peakCells = len(m.Tape)
	}
	return nil
}
