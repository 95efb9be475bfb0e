package malbolge

import (
	"encoding/binary"
	"fmt"

	xxhash "github.com/cespare/xxhash/v2"
)

// Fingerprint identifies a machine snapshot for caching, repeated-state
// pruning, and cycle detection. Two snapshots with equal fingerprints hold the
// same registers, the same tape content, and the same output length, so their
// futures are identical. The struct is comparable and usable as a map key.
type Fingerprint struct {
	A         uint16 `json:"a"`
	C         uint16 `json:"c"`
	D         uint16 `json:"d"`
	TapeHash  uint64 `json:"tape_hash"`
	OutputLen uint32 `json:"output_len"`
}

func (f Fingerprint) String() string {
	return fmt.Sprintf("a=%d c=%d d=%d tape=%016x out=%d", f.A, f.C, f.D, f.TapeHash, f.OutputLen)
}

// Fingerprint hashes the initialized tape prefix with xxhash and combines it
// with the registers and the length of the output produced so far.
func (m *Machine) Fingerprint(outputLen int) Fingerprint {
	buf := make([]byte, 2*len(m.Tape))
	for i, v := range m.Tape {
		binary.LittleEndian.PutUint16(buf[2*i:], v)
	}
	return Fingerprint{
		A:         m.A,
		C:         m.C,
		D:         m.D,
		TapeHash:  xxhash.Sum64(buf),
		OutputLen: uint32(outputLen),
	}
}
