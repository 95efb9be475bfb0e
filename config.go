package malbolge_gen

import (
	"fmt"
	"strings"

	cp "github.com/jinzhu/copier"
)

// GeneratorConfig names every knob of a generation run. Zero values are
// filled with defaults by normalize; OpcodeChoices must stay a non-empty
// subset of the construction opcodes "op*".
type GeneratorConfig struct {
	RandomSeed       int64  `toml:"random_seed"`
	MaxSearchDepth   uint   `toml:"max_search_depth"`
	OpcodeChoices    string `toml:"opcode_choices"`
	MaxProgramLength uint   `toml:"max_program_length"`
	RandomDrawLimit  uint   `toml:"random_draw_limit"`
	CaptureTrace     bool   `toml:"capture_trace"`
}

// DefaultGeneratorConfig returns the configuration used when callers pass
// nil.
func DefaultGeneratorConfig() *GeneratorConfig {
	return &GeneratorConfig{
		RandomSeed:       0,
		MaxSearchDepth:   DefaultMaxSearchDepth,
		OpcodeChoices:    DefaultOpcodeChoices,
		MaxProgramLength: DefaultMaxProgramLength,
		RandomDrawLimit:  DefaultRandomDrawLimit,
	}
}

// Clone returns a deep copy so a run never observes caller mutations.
func (gc *GeneratorConfig) Clone() *GeneratorConfig {
	clone := &GeneratorConfig{}
	cp.Copy(clone, gc)
	return clone
}

// normalize fills zero values with defaults and clamps the program length to
// the address space.
func (gc *GeneratorConfig) normalize() {
	if gc.MaxSearchDepth == 0 {
		gc.MaxSearchDepth = DefaultMaxSearchDepth
	}
	if gc.OpcodeChoices == "" {
		gc.OpcodeChoices = DefaultOpcodeChoices
	}
	if gc.MaxProgramLength == 0 || gc.MaxProgramLength > DefaultMaxProgramLength {
		gc.MaxProgramLength = DefaultMaxProgramLength
	}
	if gc.RandomDrawLimit == 0 {
		gc.RandomDrawLimit = DefaultRandomDrawLimit
	}
}

// validate rejects opcode choices outside the construction set.
func (gc *GeneratorConfig) validate() error {
	if len(gc.OpcodeChoices) == 0 {
		return fmt.Errorf("OpcodeChoices must not be empty")
	}
	for i := 0; i < len(gc.OpcodeChoices); i++ {
		if !strings.ContainsRune(DefaultOpcodeChoices, rune(gc.OpcodeChoices[i])) {
			return fmt.Errorf("OpcodeChoices contains [%c]; only characters from [%s] are searchable", gc.OpcodeChoices[i], DefaultOpcodeChoices)
		}
	}
	return nil
}

// ToolConfig is the TOML file consumed by the command-line tools.
type ToolConfig struct {
	BatchSize   uint               `toml:"batch_size"`
	Workers     uint               `toml:"workers"`
	Generator   *GeneratorConfig   `toml:"generator"`
	Persistence *PersistenceConfig `toml:"persistence"`
}
