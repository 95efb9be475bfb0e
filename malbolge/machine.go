package malbolge

import (
	"fmt"
)

// Machine is the full mutable state of a Malbolge run: the three registers,
// the tape, and the halt flag. A copy produced by Snapshot never shares tape
// storage with its parent, so generator consumers can treat snapshots as
// immutable resumption points.
type Machine struct {
	Tape   []uint16
	A      uint16
	C      uint16
	D      uint16
	Halted bool
}

// Reset zeroes the registers and clears the halt flag. The tape is untouched.
func (m *Machine) Reset() {
	m.A = 0
	m.C = 0
	m.D = 0
	m.Halted = false
}

// LoadTape replaces the tape with the raw byte values of an ASCII program and
// resets the registers.
func (m *Machine) LoadTape(ascii string) error {
	if len(ascii) > MaxAddressSpace {
		return fmt.Errorf("program length [%d] exceeds addressable tape size [%d]", len(ascii), MaxAddressSpace)
	}
	m.Tape = make([]uint16, len(ascii))
	for i := 0; i < len(ascii); i++ {
		m.Tape[i] = uint16(ascii[i])
	}
	m.Reset()
	return nil
}

// Snapshot returns a deep copy of the machine.
func (m *Machine) Snapshot() *Machine {
	tape := make([]uint16, len(m.Tape))
	copy(tape, m.Tape)
	return &Machine{
		Tape:   tape,
		A:      m.A,
		C:      m.C,
		D:      m.D,
		Halted: m.Halted,
	}
}

// encryptCurrentCell re-encrypts the cell at C after an instruction executes.
// Values outside the printable range are left untouched, as are code pointers
// that have run past the initialized tape.
func (m *Machine) encryptCurrentCell() {
	if int(m.C) >= len(m.Tape) {
		return
	}
	v := m.Tape[m.C]
	if v >= 33 && v <= 126 {
		m.Tape[m.C] = uint16(encryptionTranslate[v-33])
	}
}
