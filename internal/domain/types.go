package domain

import (
    "time"

    "github.com/google/uuid"
)

// AnalysisRun is the persistence-facing record of one analysis invocation.
type AnalysisRun struct {
    ID             uuid.UUID  `json:"id"`
    Project        string     `json:"project"`
    StartedAt      time.Time  `json:"started_at"`
    FinishedAt     *time.Time `json:"finished_at"`
    IssuesAnalyzed int        `json:"issues_analyzed"`
    Success        bool       `json:"success"`
    Error          string     `json:"error,omitempty"`
}

// MetricValue is one flattened kpi/value pair snapshot for a run, kept for
// cheap history queries without unpacking the result document.
type MetricValue struct {
    RunID uuid.UUID `json:"run_id"`
    Name  string    `json:"kpi"`
    Value float64   `json:"value"`
}
