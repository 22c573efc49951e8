package domain

import "time"

// RunResult is the outcome of the last finished background run.
type RunResult string

const (
	// RunResultNone means nothing has finished yet.
	RunResultNone RunResult = ""
	// RunResultSucceeded means the run completed its goal.
	RunResultSucceeded RunResult = "succeeded"
	// RunResultTimedOut means the run gave up waiting.
	RunResultTimedOut RunResult = "timed_out"
	// RunResultFailed means the run hit an error.
	RunResultFailed RunResult = "failed"
	// RunResultCanceled means the run was stopped from outside.
	RunResultCanceled RunResult = "canceled"
)

// RunStatus reports the state of a single-flight background runner.
type RunStatus struct {
	Active       bool      `json:"active"`
	RunID        string    `json:"run_id,omitempty"`
	StartedAt    time.Time `json:"started_at,omitzero"`
	LastResult   RunResult `json:"last_result,omitempty"`
	LastError    string    `json:"last_error,omitempty"`
	LastFinished time.Time `json:"last_finished,omitzero"`
	// LastURL is the page the last successful run landed on.
	LastURL string `json:"last_url,omitempty"`
}
