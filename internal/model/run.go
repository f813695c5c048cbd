package model

import "time"

// RunKind identifies which batch produced a run record.
type RunKind string

// Run kinds.
const (
	RunKindEnrich RunKind = "enrich"
	RunKindOrgs   RunKind = "orgs"
)

// RunStatus is the lifecycle state of a recorded run.
type RunStatus string

// Run statuses.
const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// RunSummary holds the counters reported at the end of a batch.
type RunSummary struct {
	Processed int `json:"processed"`
	Found     int `json:"found"`
	NotFound  int `json:"not_found"`
	Removed   int `json:"removed"`
	Skipped   int `json:"skipped"`
}

// Run is a recorded batch execution in the local ledger.
type Run struct {
	ID         string      `json:"id"`
	Kind       RunKind     `json:"kind"`
	Status     RunStatus   `json:"status"`
	InputPath  string      `json:"input_path"`
	OutputPath string      `json:"output_path"`
	Summary    *RunSummary `json:"summary,omitempty"`
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt *time.Time  `json:"finished_at,omitempty"`
}
