// Package htmloutput renders a completed run as a self-contained HTML grid
// with regions as columns and services as rows.
package htmloutput

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/thirukguru/aws-list-all/model"
	"github.com/thirukguru/aws-list-all/shared/resource"
)

// Grid is the read side of a run summary the report is built from.
type Grid interface {
	Regions() []string
	Services() []string
	Cell(region, service string, status model.Status) []model.Result
	Total() int
}

// ReportData contains all data needed for HTML report generation
type ReportData struct {
	AccountID   string
	Profile     string
	GeneratedAt string
	Total       int
	Regions     []string
	Rows        []Row
}

// Row is one service across every region.
type Row struct {
	Service string
	Cells   []Cell
}

// Cell holds the non-empty status groups of one service in one region.
type Cell struct {
	Region string
	Groups []Group
}

// Group is a collapsible list of entries sharing a status.
type Group struct {
	ID       string
	Class    string
	Collapse string
	Label    string
	Entries  []Entry
}

// Entry describes a single listing call.
type Entry struct {
	Operation string
	Detail    string
}

type groupStyle struct {
	class    string
	collapse string
	label    string
}

var groupStyles = map[model.Status]groupStyle{
	model.StatusNotFound:     {"nfound", "nCollapse", "No Resources Found"},
	model.StatusFound:        {"found", "fCollapse", "Resources Found"},
	model.StatusAccessDenied: {"denied", "dCollapse", "Missing Permissions"},
	model.StatusError:        {"error", "eCollapse", "Error During Query"},
}

// BuildReportData lays the grid out in report order: services and regions
// sorted, groups in model.Statuses order.
func BuildReportData(g Grid, accountID, profile string) ReportData {
	data := ReportData{
		AccountID: accountID,
		Profile:   profile,
		Total:     g.Total(),
		Regions:   g.Regions(),
	}
	for row, svc := range g.Services() {
		r := Row{Service: svc}
		for col, region := range data.Regions {
			c := Cell{Region: region}
			for _, st := range model.Statuses {
				results := g.Cell(region, svc, st)
				if len(results) == 0 {
					continue
				}
				style := groupStyles[st]
				grp := Group{
					ID:       fmt.Sprintf("%s-%d-%d", style.collapse, row, col),
					Class:    style.class,
					Collapse: style.collapse,
					Label:    style.label,
				}
				for _, res := range results {
					grp.Entries = append(grp.Entries, Entry{
						Operation: res.Task.Operation,
						Detail:    describe(res),
					})
				}
				c.Groups = append(c.Groups, grp)
			}
			r.Cells = append(r.Cells, c)
		}
		data.Rows = append(data.Rows, r)
	}
	return data
}

func describe(r model.Result) string {
	switch r.Status {
	case model.StatusFound:
		return strings.Join(resource.Identifiers(r.Payload), ", ")
	case model.StatusAccessDenied, model.StatusError:
		if r.Diagnostic != "" {
			return r.Diagnostic
		}
		return r.ErrorCode
	}
	return ""
}

// GenerateHTMLReport generates a complete HTML report from the provided data
func GenerateHTMLReport(data ReportData) (string, error) {
	if data.GeneratedAt == "" {
		data.GeneratedAt = time.Now().Format("2006-01-02 15:04:05 MST")
	}

	tmpl, err := template.New("report").Parse(htmlTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}
