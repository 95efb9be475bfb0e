package malbolge_gen

// ArchiveMetrics summarizes the archived generation runs so batch sweeps can
// be compared without loading every row.
type ArchiveMetrics struct {
	Count           int64
	Targets         int64
	AvgEvaluations  float64
	MaxEvaluations  uint64
	AvgDurationNS   float64
	BestDurationNS  int64
	WorstDurationNS int64
	AvgProgramBytes float64
}

// QueryMetrics aggregates over the whole archive in one pass.
func (p *Persistence) QueryMetrics() (*ArchiveMetrics, error) {
	m := &ArchiveMetrics{}
	row := p.DB.Raw(`
		SELECT COUNT(*),
		       COUNT(DISTINCT target),
		       COALESCE(AVG(evaluations), 0),
		       COALESCE(MAX(evaluations), 0),
		       COALESCE(AVG(duration_ns), 0),
		       COALESCE(MIN(duration_ns), 0),
		       COALESCE(MAX(duration_ns), 0),
		       COALESCE(AVG(LENGTH(packed_opcodes)), 0)
		FROM generation_records`).Row()
	if err := row.Scan(
		&m.Count,
		&m.Targets,
		&m.AvgEvaluations,
		&m.MaxEvaluations,
		&m.AvgDurationNS,
		&m.BestDurationNS,
		&m.WorstDurationNS,
		&m.AvgProgramBytes,
	); err != nil {
		return nil, err
	}
	return m, nil
}
