package malbolge_gen

// GenerationStats aggregates search effort for one generation run.
// Evaluations counts every child or probe state the search materialized,
// cache hits included; the pruning law Evaluations == Pruned + Accepted()
// holds at all times.
type GenerationStats struct {
	Evaluations         uint64  `json:"evaluations"`
	CacheHits           uint64  `json:"cache_hits"`
	Pruned              uint64  `json:"pruned"`
	RepeatedStatePruned uint64  `json:"repeated_state_pruned"`
	RandomDraws         uint64  `json:"random_draws"`
	DurationNS          int64   `json:"duration_ns"`
	TraceLength         uint64  `json:"trace_length"`
	PrunedRatio         float64 `json:"pruned_ratio"`
	RepeatedStateRatio  float64 `json:"repeated_state_ratio"`
}

// Accepted counts evaluations that were committed or stayed live.
func (s *GenerationStats) Accepted() uint64 {
	return s.Evaluations - s.Pruned
}

// finalize computes the derived ratios.
func (s *GenerationStats) finalize() {
	den := s.Evaluations
	if den == 0 {
		den = 1
	}
	s.PrunedRatio = float64(s.Pruned) / float64(den)
	s.RepeatedStateRatio = float64(s.RepeatedStatePruned) / float64(den)
}

// EqualSearchEffort compares everything except wall-clock duration; two runs
// with identical configuration must agree on these fields.
func (s *GenerationStats) EqualSearchEffort(other *GenerationStats) bool {
	return s.Evaluations == other.Evaluations &&
		s.CacheHits == other.CacheHits &&
		s.Pruned == other.Pruned &&
		s.RepeatedStatePruned == other.RepeatedStatePruned &&
		s.RandomDraws == other.RandomDraws &&
		s.TraceLength == other.TraceLength
}
