package malbolge_gen

import (
	"nickandperla.net/malbolge"
)

// GenerationResult is the record returned for a verified generation run. The
// opcode string always ends with the halt opcode, and MachineOutput is the
// output observed when the finished program was re-executed on a fresh
// interpreter.
type GenerationResult struct {
	Target        string                    `json:"target"`
	Opcodes       string                    `json:"opcodes"`
	AsciiSource   string                    `json:"ascii_source"`
	MachineOutput []byte                    `json:"machine_output"`
	Stats         *GenerationStats          `json:"stats"`
	Trace         []TraceEvent              `json:"trace,omitempty"`
	Execution     *malbolge.ExecutionResult `json:"-"`
}
