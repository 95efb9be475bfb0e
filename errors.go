package malbolge_gen

import (
	"errors"
)

var (
	// ErrGenerationExhausted means the randomized-extension budget for some
	// target byte ran out before a producing suffix was found.
	ErrGenerationExhausted = errors.New("generation exhausted")

	// ErrVerificationFailed means the finished program's re-executed output
	// differs from the target. This is a bug-level condition and is never
	// silently adjusted.
	ErrVerificationFailed = errors.New("verification failed")
)
