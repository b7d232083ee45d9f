package model

import "time"

// Run statuses as stored in the journal
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// Summary represents the outcome of one generator run
type Summary struct {
	RunID      string           `json:"run_id"`
	Input      string           `json:"input"`
	Output     string           `json:"output"`
	Status     string           `json:"status"`
	Read       int64            `json:"read"`
	Accepted   int64            `json:"accepted"`
	Rejected   map[string]int64 `json:"rejected"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Error      string           `json:"error,omitempty"`
}

// RejectedTotal sums the per-reason rejection counts
func (s Summary) RejectedTotal() int64 {
	var total int64
	for _, n := range s.Rejected {
		total += n
	}
	return total
}

// Duration is the wall time of the run
func (s Summary) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}
