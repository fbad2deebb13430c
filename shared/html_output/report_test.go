package htmloutput

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirukguru/aws-list-all/model"
	"github.com/thirukguru/aws-list-all/service/summary"
)

func result(svc, region, op string, st model.Status) model.Result {
	r := model.Result{
		Task:   model.Task{Service: svc, Region: region, Operation: op},
		Status: st,
	}
	switch st {
	case model.StatusFound:
		r.Payload = map[string]any{"Queues": []any{map[string]any{"QueueUrl": "https://sqs/q1"}}}
	case model.StatusAccessDenied:
		r.ErrorCode = "AccessDenied"
		r.Diagnostic = "not authorized to perform " + op
	case model.StatusError:
		r.ErrorCode = "InternalFailure"
	}
	return r
}

func newSummary() *summary.Summary {
	s := summary.New()
	s.Accumulate(result("sqs", "us-east-1", "ListQueues", model.StatusFound))
	s.Accumulate(result("sqs", "us-east-1", "ListDeadLetterSourceQueues", model.StatusNotFound))
	s.Accumulate(result("sqs", "eu-west-1", "ListQueues", model.StatusAccessDenied))
	s.Accumulate(result("ec2", "eu-west-1", "DescribeVpcs", model.StatusError))
	return s
}

func TestBuildReportData(t *testing.T) {
	data := BuildReportData(newSummary(), "123456789012", "dev")

	assert.Equal(t, []string{"eu-west-1", "us-east-1"}, data.Regions)
	assert.Equal(t, 4, data.Total)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, "ec2", data.Rows[0].Service)
	assert.Equal(t, "sqs", data.Rows[1].Service)

	ec2 := data.Rows[0]
	require.Len(t, ec2.Cells, 2)
	assert.Empty(t, ec2.Cells[1].Groups, "ec2 has no us-east-1 results")
	require.Len(t, ec2.Cells[0].Groups, 1)
	assert.Equal(t, "error", ec2.Cells[0].Groups[0].Class)
	assert.Equal(t, "InternalFailure", ec2.Cells[0].Groups[0].Entries[0].Detail)

	east := data.Rows[1].Cells[1]
	require.Len(t, east.Groups, 2)
	assert.Equal(t, "nfound", east.Groups[0].Class, "not found group comes first")
	assert.Equal(t, "found", east.Groups[1].Class)
	assert.Equal(t, "fCollapse-1-1", east.Groups[1].ID)
	assert.Equal(t, "https://sqs/q1", east.Groups[1].Entries[0].Detail)

	denied := data.Rows[1].Cells[0].Groups[0]
	assert.Equal(t, "dCollapse", denied.Collapse)
	assert.Contains(t, denied.Entries[0].Detail, "not authorized")
}

func TestGenerateHTMLReport(t *testing.T) {
	data := BuildReportData(newSummary(), "123456789012", "dev")
	data.GeneratedAt = "2024-01-01 00:00:00 UTC"

	html, err := GenerateHTMLReport(data)
	require.NoError(t, err)

	for _, want := range []string{
		"Resources Found [<span class=\"count\">1</span>]",
		"No Resources Found [<span class=\"count\">1</span>]",
		"Missing Permissions [<span class=\"count\">1</span>]",
		"Error During Query [<span class=\"count\">1</span>]",
		"function filterEntries",
		"<th>eu-west-1</th>",
		"Account: <strong>123456789012</strong>",
	} {
		assert.Contains(t, html, want)
	}
	assert.NotContains(t, html, "<script src=")
	assert.NotContains(t, html, "<link ")
}

func TestGenerateHTMLReportEscapes(t *testing.T) {
	s := summary.New()
	r := result("sqs", "us-east-1", "ListQueues", model.StatusError)
	r.Diagnostic = "<script>alert(1)</script>"
	s.Accumulate(r)

	html, err := GenerateHTMLReport(BuildReportData(s, "", ""))
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestWriteHTMLReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	data := BuildReportData(newSummary(), "123456789012", "dev")

	path, err := WriteHTMLReport(dir, "", data)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DefaultReportName), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "<!DOCTYPE html>"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}
