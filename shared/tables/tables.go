// Package tables renders run summaries, history and introspection output
// as console tables.
package tables

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/thirukguru/aws-list-all/model"
	"github.com/thirukguru/aws-list-all/service/storage"
	"github.com/thirukguru/aws-list-all/shared/resource"
)

var statusColors = map[model.Status]text.Colors{
	model.StatusFound:        {text.FgGreen},
	model.StatusNotFound:     {text.FgHiBlack},
	model.StatusAccessDenied: {text.FgBlue},
	model.StatusError:        {text.FgRed},
}

func newWriter(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}

// DrawRunTable prints the status counts of a run followed by the tasks that
// found resources or failed.
func DrawRunTable(w io.Writer, input model.RenderRunInput) {
	fmt.Fprintf(w, "\nQuery Summary (%d calls in %s)\n", len(input.Results), input.Duration.Round(time.Millisecond))
	t := newWriter(w)
	t.AppendHeader(table.Row{"Status", "Marker", "Count"})
	for _, st := range model.Statuses {
		t.AppendRow(table.Row{statusColors[st].Sprint(string(st)), st.Marker(), input.Counts[st]})
	}
	t.AppendFooter(table.Row{"Total", "", len(input.Results)})
	t.Render()

	rows := make([]model.Result, 0, len(input.Results))
	for _, r := range input.Results {
		if r.Status != model.StatusNotFound || input.Verbose {
			rows = append(rows, r)
		}
	}
	if len(rows) == 0 {
		return
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Task.Key() < rows[j].Task.Key() })

	t = newWriter(w)
	t.AppendHeader(table.Row{"Service", "Region", "Operation", "Status", "Details"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.Task.Service, r.Task.Region, r.Task.Operation, statusColors[r.Status].Sprint(string(r.Status)), details(r.Status, r.ErrorCode, r.Payload)})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 5, WidthMax: 60}})
	t.Render()
}

func details(st model.Status, code string, payload map[string]any) string {
	switch st {
	case model.StatusFound:
		counts := resource.Counts(payload)
		keys := make([]string, 0, len(counts))
		for k, n := range counts {
			if n > 0 {
				keys = append(keys, fmt.Sprintf("%s(%d)", k, n))
			}
		}
		sort.Strings(keys)
		return strings.Join(keys, ", ")
	case model.StatusNotFound:
		return ""
	default:
		return code
	}
}

// RenderRunsTable prints stored run summaries.
func RenderRunsTable(w io.Writer, runs []storage.RunSummary) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No stored runs")
		return
	}
	t := newWriter(w)
	t.AppendHeader(table.Row{"ID", "Run", "Account", "Profile", "Started", "Tasks", "Found", "Not Found", "Denied", "Errors"})
	for _, r := range runs {
		t.AppendRow(table.Row{r.RunID, shortUUID(r.RunUUID), r.AccountID, r.Profile, r.RunTimestamp.Format("2006-01-02 15:04:05"),
			r.TotalTasks, r.FoundCount, r.NotFoundCount, r.DeniedCount, r.ErrorCount})
	}
	t.Render()
}

// RenderResultsTable prints the stored results of one run.
func RenderResultsTable(w io.Writer, run storage.RunSummary, results []storage.ResultRecord) {
	fmt.Fprintf(w, "\nRun %d (%s) account %s, %d tasks\n", run.RunID, run.RunUUID, run.AccountID, run.TotalTasks)
	t := newWriter(w)
	t.AppendHeader(table.Row{"Service", "Region", "Operation", "Status", "Items", "Attempts", "Error"})
	for _, r := range results {
		t.AppendRow(table.Row{r.Service, r.Region, r.Operation, statusColors[r.Status].Sprint(string(r.Status)), r.ItemCount, r.Attempts, r.ErrorCode})
	}
	t.Render()
}

// RenderTrendTable prints an ASCII table of trend data.
func RenderTrendTable(w io.Writer, points []storage.TrendPoint) {
	t := newWriter(w)
	t.AppendHeader(table.Row{"Account", "Date", "Runs", "Found", "Not Found", "Denied", "Errors", "Items"})
	for _, p := range points {
		t.AppendRow(table.Row{p.AccountID, p.Date, p.Runs, p.Found, p.NotFound, p.Denied, p.Errors, p.Items})
	}
	t.Render()
}

// RenderComparisonTable prints comparison summary for two runs.
func RenderComparisonTable(w io.Writer, cmp *storage.RunComparison) {
	if cmp == nil {
		fmt.Fprintln(w, "No comparison data available")
		return
	}
	fmt.Fprintf(w, "\nRun Comparison (%d -> %d)\n", cmp.RunID1, cmp.RunID2)
	t := newWriter(w)
	t.AppendHeader(table.Row{"New", "Gone", "Persistent"})
	t.AppendRow(table.Row{cmp.NewFound, cmp.Gone, cmp.Persistent})
	t.Render()

	for _, k := range cmp.NewKeys {
		fmt.Fprintf(w, "  %s %s\n", text.FgGreen.Sprint("+"), k)
	}
	for _, k := range cmp.GoneKeys {
		fmt.Fprintf(w, "  %s %s\n", text.FgRed.Sprint("-"), k)
	}
}

// RenderServiceRegionsTable prints the regions of every service.
func RenderServiceRegionsTable(w io.Writer, regions map[string][]string) {
	names := make([]string, 0, len(regions))
	for n := range regions {
		names = append(names, n)
	}
	sort.Strings(names)

	t := newWriter(w)
	t.AppendHeader(table.Row{"Service", "Regions", "Count"})
	for _, n := range names {
		t.AppendRow(table.Row{n, strings.Join(regions[n], " "), len(regions[n])})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, WidthMax: 80}})
	t.Render()
}

func shortUUID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
