package malbolge_gen

import (
	"sort"

	"nickandperla.net/malbolge"
)

// Selector picks one winner among the candidate winners of a depth level.
// The ordering is fully deterministic for a given configuration: shortest
// suffix first, then the configured opcode-choice order position-wise, then
// the lowest fingerprint.
type Selector struct {
	rank [128]int
}

func NewSelector(opcodeChoices string) *Selector {
	s := &Selector{}
	for i := range s.rank {
		s.rank[i] = len(opcodeChoices) + 1
	}
	for i := 0; i < len(opcodeChoices); i++ {
		s.rank[opcodeChoices[i]] = i
	}
	s.rank[OutputOpcode] = len(opcodeChoices)
	return s
}

// Pick returns the best winner. The input slice is reordered in place.
func (s *Selector) Pick(winners []*candidateWinner) *candidateWinner {
	sort.Slice(winners, func(i, j int) bool {
		return s.less(winners[i], winners[j])
	})
	return winners[0]
}

func (s *Selector) less(a, b *candidateWinner) bool {
	if len(a.suffix) != len(b.suffix) {
		return len(a.suffix) < len(b.suffix)
	}
	for i := 0; i < len(a.suffix); i++ {
		ra, rb := s.rank[a.suffix[i]], s.rank[b.suffix[i]]
		if ra != rb {
			return ra < rb
		}
	}
	return fingerprintLess(a.state.fp, b.state.fp)
}

func fingerprintLess(a, b malbolge.Fingerprint) bool {
	if a.A != b.A {
		return a.A < b.A
	}
	if a.C != b.C {
		return a.C < b.C
	}
	if a.D != b.D {
		return a.D < b.D
	}
	if a.TapeHash != b.TapeHash {
		return a.TapeHash < b.TapeHash
	}
	return a.OutputLen < b.OutputLen
}
