package malbolge_gen

import (
	"nickandperla.net/malbolge"
)

// prefixState couples a machine snapshot with the output the program has
// produced from its start and the snapshot's fingerprint. States are shared
// through the evaluator cache and must never be mutated after creation.
type prefixState struct {
	output  []byte
	machine *malbolge.Machine
	fp      malbolge.Fingerprint
}

// searchNode is a live node in one character's expansion tree: the opcode
// suffix appended past the search base and the state it produced.
type searchNode struct {
	suffix []byte
	state  *prefixState
}

// child returns the node's suffix extended by one symbol, without aliasing
// the parent's backing array.
func (n *searchNode) child(symbol byte) []byte {
	suffix := make([]byte, len(n.suffix)+1)
	copy(suffix, n.suffix)
	suffix[len(n.suffix)] = symbol
	return suffix
}

// candidateWinner is a node whose trial output opcode produced the next
// target byte. Its suffix ends with the output opcode.
type candidateWinner struct {
	suffix []byte
	state  *prefixState
}
