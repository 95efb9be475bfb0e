package malbolge

import (
	"testing"
)

func TestLoadTapeStoresRawBytes(t *testing.T) {
	m := &Machine{}
	if err := m.LoadTape("b!"); err != nil {
		t.Fatalf("Unexpected failure calling LoadTape. %v", err)
	}
	if len(m.Tape) != 2 || m.Tape[0] != 'b' || m.Tape[1] != '!' {
		t.Errorf("Tape [%v] does not hold the raw byte values", m.Tape)
	}
	if m.A != 0 || m.C != 0 || m.D != 0 || m.Halted {
		t.Errorf("Registers were not reset on load")
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	m := &Machine{}
	if err := m.LoadTape("bb"); err != nil {
		t.Fatalf("Unexpected failure calling LoadTape. %v", err)
	}
	m.A = 7

	snap := m.Snapshot()
	snap.Tape[0] = 0
	snap.A = 99

	if m.Tape[0] != 'b' {
		t.Errorf("Mutating the snapshot tape leaked into the parent")
	}
	if m.A != 7 {
		t.Errorf("Mutating snapshot registers leaked into the parent")
	}
}

func TestEncryptCurrentCell(t *testing.T) {
	m := &Machine{Tape: []uint16{33}}
	m.encryptCurrentCell()
	if m.Tape[0] != uint16(encryptionTranslate[0]) {
		t.Errorf("Cell [33] encrypted to [%d], want [%d]", m.Tape[0], encryptionTranslate[0])
	}

	// Values outside the printable range are left alone.
	m = &Machine{Tape: []uint16{20000}}
	m.encryptCurrentCell()
	if m.Tape[0] != 20000 {
		t.Errorf("Unprintable cell was rewritten to [%d]", m.Tape[0])
	}

	// A code pointer past the initialized tape is a no-op.
	m = &Machine{Tape: []uint16{40}, C: 5}
	m.encryptCurrentCell()
}
