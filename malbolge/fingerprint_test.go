package malbolge

import (
	"testing"
)

func TestFingerprintEqualForEqualStates(t *testing.T) {
	m1 := &Machine{Tape: []uint16{98, 66, 70}, A: 3, C: 2, D: 1}
	m2 := m1.Snapshot()

	if m1.Fingerprint(4) != m2.Fingerprint(4) {
		t.Errorf("Equal machines produced different fingerprints")
	}
}

func TestFingerprintSensitivity(t *testing.T) {
	base := &Machine{Tape: []uint16{98, 66, 70}, A: 3, C: 2, D: 1}
	fp := base.Fingerprint(4)

	tapeChanged := base.Snapshot()
	tapeChanged.Tape[1] = 67
	if tapeChanged.Fingerprint(4) == fp {
		t.Errorf("Tape mutation did not change the fingerprint")
	}

	regChanged := base.Snapshot()
	regChanged.A = 4
	if regChanged.Fingerprint(4) == fp {
		t.Errorf("Register mutation did not change the fingerprint")
	}

	if base.Fingerprint(5) == fp {
		t.Errorf("Output length did not change the fingerprint")
	}
}

func TestFingerprintUsableAsMapKey(t *testing.T) {
	m := &Machine{Tape: []uint16{98}}
	seen := map[Fingerprint]struct{}{}
	seen[m.Fingerprint(0)] = struct{}{}
	if _, ok := seen[m.Snapshot().Fingerprint(0)]; !ok {
		t.Errorf("Fingerprint of an identical snapshot missed the map entry")
	}
}
