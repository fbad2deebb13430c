// Package output provides a service for rendering results to the console.
package output

import (
	"io"
	"os"

	"github.com/thirukguru/aws-list-all/model"
	"github.com/thirukguru/aws-list-all/service/storage"
)

// NewService creates a new output service with the specified format
func NewService(format string) Service {
	return newService(format, os.Stdout, &realRenderer{})
}

func newService(format string, out io.Writer, renderer Renderer) *service {
	f := FormatTable
	if format == "json" {
		f = FormatJSON
	}
	return &service{
		format:   f,
		out:      out,
		renderer: renderer,
	}
}

func (s *service) RenderRun(input model.RenderRunInput) error {
	if s.format == FormatJSON {
		return s.renderer.OutputRunJSON(s.out, input)
	}
	s.renderer.DrawRunTable(s.out, input)
	return nil
}

func (s *service) RenderRuns(runs []storage.RunSummary) error {
	if s.format == FormatJSON {
		return s.renderer.OutputRunsJSON(s.out, runs)
	}
	s.renderer.DrawRunsTable(s.out, runs)
	return nil
}

func (s *service) RenderRunDetail(run storage.RunSummary, results []storage.ResultRecord) error {
	if s.format == FormatJSON {
		return s.renderer.OutputRunDetailJSON(s.out, run, results)
	}
	s.renderer.DrawRunDetailTable(s.out, run, results)
	return nil
}

func (s *service) RenderTrends(points []storage.TrendPoint) error {
	if s.format == FormatJSON {
		return s.renderer.OutputTrendsJSON(s.out, points)
	}
	s.renderer.DrawTrendTable(s.out, points)
	return nil
}

func (s *service) RenderComparison(cmp *storage.RunComparison) error {
	if s.format == FormatJSON {
		return s.renderer.OutputComparisonJSON(s.out, cmp)
	}
	s.renderer.DrawComparisonTable(s.out, cmp)
	return nil
}
