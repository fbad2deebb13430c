package model

import "time"

// RenderRunInput carries a finished run to the output renderers.
type RenderRunInput struct {
	AccountID string
	Profile   string
	Duration  time.Duration
	Counts    map[Status]int
	Results   []Result
	// Verbose lists NOT_FOUND results as well.
	Verbose bool
}

// RunReportJSON is the machine readable summary of a run.
type RunReportJSON struct {
	AccountID   string         `json:"account_id"`
	Profile     string         `json:"profile,omitempty"`
	GeneratedAt string         `json:"generated_at"`
	DurationSec float64        `json:"duration_sec"`
	HasFindings bool           `json:"has_findings"`
	Summary     RunSummaryJSON `json:"summary"`
	Found       []ResultJSON   `json:"found"`
	Failures    []ResultJSON   `json:"failures"`
	NotFound    []ResultJSON   `json:"not_found,omitempty"`
}

// RunSummaryJSON holds per-status counts.
type RunSummaryJSON struct {
	Total        int `json:"total"`
	Found        int `json:"found"`
	NotFound     int `json:"not_found"`
	AccessDenied int `json:"access_denied"`
	Error        int `json:"error"`
}

// ResultJSON is one task outcome in a report.
type ResultJSON struct {
	Service     string   `json:"service"`
	Region      string   `json:"region"`
	Operation   string   `json:"operation"`
	Status      Status   `json:"status"`
	ErrorCode   string   `json:"error_code,omitempty"`
	Diagnostic  string   `json:"diagnostic,omitempty"`
	Attempts    int      `json:"attempts"`
	Identifiers []string `json:"identifiers,omitempty"`
}
