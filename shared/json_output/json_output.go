// Package jsonoutput renders run summaries and history as JSON.
package jsonoutput

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/thirukguru/aws-list-all/model"
	"github.com/thirukguru/aws-list-all/service/storage"
	"github.com/thirukguru/aws-list-all/shared/resource"
)

// OutputRunJSON writes the summary of a finished run as JSON.
func OutputRunJSON(w io.Writer, input model.RenderRunInput) error {
	output := BuildRunReport(input, time.Now().UTC().Format(time.RFC3339))
	return printJSON(w, output)
}

// BuildRunReport builds the run JSON report model.
func BuildRunReport(input model.RenderRunInput, generatedAt string) model.RunReportJSON {
	report := model.RunReportJSON{
		AccountID:   input.AccountID,
		Profile:     input.Profile,
		GeneratedAt: generatedAt,
		DurationSec: input.Duration.Seconds(),
		Summary: model.RunSummaryJSON{
			Total:        len(input.Results),
			Found:        input.Counts[model.StatusFound],
			NotFound:     input.Counts[model.StatusNotFound],
			AccessDenied: input.Counts[model.StatusAccessDenied],
			Error:        input.Counts[model.StatusError],
		},
		Found:    []model.ResultJSON{},
		Failures: []model.ResultJSON{},
	}
	report.HasFindings = report.Summary.Found > 0

	results := append([]model.Result(nil), input.Results...)
	sort.Slice(results, func(i, j int) bool { return results[i].Task.Key() < results[j].Task.Key() })
	for _, r := range results {
		switch r.Status {
		case model.StatusFound:
			report.Found = append(report.Found, mapResult(r))
		case model.StatusNotFound:
			if input.Verbose {
				report.NotFound = append(report.NotFound, mapResult(r))
			}
		default:
			report.Failures = append(report.Failures, mapResult(r))
		}
	}
	return report
}

func mapResult(r model.Result) model.ResultJSON {
	return model.ResultJSON{
		Service:     r.Task.Service,
		Region:      r.Task.Region,
		Operation:   r.Task.Operation,
		Status:      r.Status,
		ErrorCode:   r.ErrorCode,
		Diagnostic:  r.Diagnostic,
		Attempts:    r.Attempts,
		Identifiers: resource.Identifiers(r.Payload),
	}
}

// OutputRunsJSON writes stored run summaries as JSON.
func OutputRunsJSON(w io.Writer, runs []storage.RunSummary) error {
	return printJSON(w, runs)
}

// OutputRunDetailJSON writes one stored run with its results.
func OutputRunDetailJSON(w io.Writer, run storage.RunSummary, results []storage.ResultRecord) error {
	return printJSON(w, struct {
		Run     storage.RunSummary     `json:"run"`
		Results []storage.ResultRecord `json:"results"`
	}{run, results})
}

// OutputTrendsJSON writes trend points as JSON.
func OutputTrendsJSON(w io.Writer, points []storage.TrendPoint) error {
	return printJSON(w, points)
}

// OutputComparisonJSON writes a run comparison as JSON.
func OutputComparisonJSON(w io.Writer, cmp *storage.RunComparison) error {
	return printJSON(w, cmp)
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
