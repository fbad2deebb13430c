package output

import (
	"io"

	"github.com/thirukguru/aws-list-all/model"
	"github.com/thirukguru/aws-list-all/service/storage"
	jsonoutput "github.com/thirukguru/aws-list-all/shared/json_output"
	"github.com/thirukguru/aws-list-all/shared/tables"
)

// Format represents the output format type
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// Renderer defines the interface for drawing tables and JSON documents
type Renderer interface {
	DrawRunTable(w io.Writer, input model.RenderRunInput)
	DrawRunsTable(w io.Writer, runs []storage.RunSummary)
	DrawRunDetailTable(w io.Writer, run storage.RunSummary, results []storage.ResultRecord)
	DrawTrendTable(w io.Writer, points []storage.TrendPoint)
	DrawComparisonTable(w io.Writer, cmp *storage.RunComparison)
	OutputRunJSON(w io.Writer, input model.RenderRunInput) error
	OutputRunsJSON(w io.Writer, runs []storage.RunSummary) error
	OutputRunDetailJSON(w io.Writer, run storage.RunSummary, results []storage.ResultRecord) error
	OutputTrendsJSON(w io.Writer, points []storage.TrendPoint) error
	OutputComparisonJSON(w io.Writer, cmp *storage.RunComparison) error
}

type realRenderer struct{}

func (r *realRenderer) DrawRunTable(w io.Writer, input model.RenderRunInput) {
	tables.DrawRunTable(w, input)
}

func (r *realRenderer) DrawRunsTable(w io.Writer, runs []storage.RunSummary) {
	tables.RenderRunsTable(w, runs)
}

func (r *realRenderer) DrawRunDetailTable(w io.Writer, run storage.RunSummary, results []storage.ResultRecord) {
	tables.RenderResultsTable(w, run, results)
}

func (r *realRenderer) DrawTrendTable(w io.Writer, points []storage.TrendPoint) {
	tables.RenderTrendTable(w, points)
}

func (r *realRenderer) DrawComparisonTable(w io.Writer, cmp *storage.RunComparison) {
	tables.RenderComparisonTable(w, cmp)
}

func (r *realRenderer) OutputRunJSON(w io.Writer, input model.RenderRunInput) error {
	return jsonoutput.OutputRunJSON(w, input)
}

func (r *realRenderer) OutputRunsJSON(w io.Writer, runs []storage.RunSummary) error {
	return jsonoutput.OutputRunsJSON(w, runs)
}

func (r *realRenderer) OutputRunDetailJSON(w io.Writer, run storage.RunSummary, results []storage.ResultRecord) error {
	return jsonoutput.OutputRunDetailJSON(w, run, results)
}

func (r *realRenderer) OutputTrendsJSON(w io.Writer, points []storage.TrendPoint) error {
	return jsonoutput.OutputTrendsJSON(w, points)
}

func (r *realRenderer) OutputComparisonJSON(w io.Writer, cmp *storage.RunComparison) error {
	return jsonoutput.OutputComparisonJSON(w, cmp)
}

// service is the internal implementation
type service struct {
	format   Format
	out      io.Writer
	renderer Renderer
}

// Service defines the interface for output operations
type Service interface {
	RenderRun(input model.RenderRunInput) error
	RenderRuns(runs []storage.RunSummary) error
	RenderRunDetail(run storage.RunSummary, results []storage.ResultRecord) error
	RenderTrends(points []storage.TrendPoint) error
	RenderComparison(cmp *storage.RunComparison) error
}
