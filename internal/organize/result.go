package organize

import (
	"time"

	"github.com/google/uuid"
)

// Outcome classifies what happened to a single item during a run.
type Outcome string

const (
	OutcomeCopied          Outcome = "copied"
	OutcomeWritten         Outcome = "written"
	OutcomeSkippedFilter   Outcome = "skipped-filter"
	OutcomeSkippedConflict Outcome = "skipped-conflict"
	OutcomeOverwritten     Outcome = "overwritten"
	OutcomeRenamed         Outcome = "renamed"
	OutcomeError           Outcome = "error"
)

// Entry records the fate of one item.
type Entry struct {
	Outcome     Outcome
	Source      string
	Destination string
	Detail      string
}

// Result is the report of a completed (or interrupted) run. Entries keep
// enumeration order. Callers must treat a returned Result as read-only.
type Result struct {
	RunID      string
	Kind       string
	StartedAt  time.Time
	FinishedAt time.Time
	Entries    []Entry
	Counts     map[Outcome]int
}

func newResult(kind string) *Result {
	return &Result{
		RunID:     uuid.NewString(),
		Kind:      kind,
		StartedAt: time.Now().UTC(),
		Counts:    make(map[Outcome]int),
	}
}

func (r *Result) record(entry Entry) {
	r.Entries = append(r.Entries, entry)
	r.Counts[entry.Outcome]++
}

func (r *Result) finish() {
	r.FinishedAt = time.Now().UTC()
}

// ErrorCount returns the number of per-item failures in the run.
func (r *Result) ErrorCount() int {
	return r.Counts[OutcomeError]
}
