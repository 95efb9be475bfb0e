package malbolge_gen

import (
	"fmt"

	"nickandperla.net/malbolge"
)

// TraceReason classifies a single candidate evaluation.
type TraceReason uint8

const (
	TraceAccepted TraceReason = iota
	TracePrefixMismatch
	TraceRepeatedState
	TraceCacheHit
)

var traceReasonNames = [...]string{
	TraceAccepted:       "accepted",
	TracePrefixMismatch: "prefix_mismatch",
	TraceRepeatedState:  "repeated_state",
	TraceCacheHit:       "cache_hit",
}

func (r TraceReason) String() string {
	if int(r) < len(traceReasonNames) {
		return traceReasonNames[r]
	}
	return fmt.Sprintf("trace_reason(%d)", uint8(r))
}

func (r TraceReason) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}

// TraceEvent records one candidate evaluation during the layered search.
// Capturing traces roughly doubles generator memory usage.
type TraceEvent struct {
	Depth             int                  `json:"depth"`
	ParentFingerprint malbolge.Fingerprint `json:"parent_fingerprint"`
	Symbol            string               `json:"symbol"`
	Reason            TraceReason          `json:"reason"`
	OutputLength      int                  `json:"output_length"`
	Fingerprint       malbolge.Fingerprint `json:"fingerprint"`
}
