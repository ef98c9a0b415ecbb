package world

import (
	"fmt"

	"github.com/google/uuid"
)

// KeyDiagnostic describes a key whose placement degraded or failed.
type KeyDiagnostic struct {
	KeyID  string // the key that was being placed
	Lock   string // "door" or "chest"
	X, Y   int    // position of the lock the key opens
	Reason string
}

// Report is the structured outcome of one generation run. Placement problems
// are reported here and logged; they never abort the pipeline.
type Report struct {
	RunID string // unique per run, for correlating logs and traces
	Seed  int64  // the seed this run used

	// UnplacedKeys lists keys for which every placement strategy was
	// exhausted. The matching lock stays locked with no key in existence.
	UnplacedKeys []KeyDiagnostic

	// DegradedKeys lists keys placed by the last-resort fallback that drops
	// the reachability constraint. The dungeon may not be solvable through
	// these locks.
	DegradedKeys []KeyDiagnostic

	Warnings []string
}

func newReport(seed int64) *Report {
	return &Report{
		RunID: uuid.NewString(),
		Seed:  seed,
	}
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Clean returns true if generation completed without diagnostics.
func (r *Report) Clean() bool {
	return len(r.UnplacedKeys) == 0 && len(r.DegradedKeys) == 0 && len(r.Warnings) == 0
}
