package tables

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/thirukguru/aws-list-all/model"
	"github.com/thirukguru/aws-list-all/service/storage"
)

func init() {
	text.DisableColors()
}

func TestDrawRunTable(t *testing.T) {
	input := model.RenderRunInput{
		Duration: 2 * time.Second,
		Counts:   map[model.Status]int{model.StatusFound: 1, model.StatusNotFound: 1, model.StatusError: 1},
		Results: []model.Result{
			{Task: model.Task{Service: "ec2", Region: "eu-west-1", Operation: "DescribeVpcs"}, Status: model.StatusFound,
				Payload: map[string]any{"Vpcs": []any{map[string]any{"VpcId": "vpc-1"}}}},
			{Task: model.Task{Service: "sqs", Region: "eu-west-1", Operation: "ListQueues"}, Status: model.StatusNotFound},
			{Task: model.Task{Service: "kms", Region: "eu-west-1", Operation: "ListKeys"}, Status: model.StatusError, ErrorCode: "Throttling"},
		},
	}

	var buf bytes.Buffer
	DrawRunTable(&buf, input)
	out := buf.String()
	for _, want := range []string{"Query Summary (3 calls in 2s)", "FOUND", "+++", "DescribeVpcs", "Vpcs(1)", "Throttling"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "ListQueues") {
		t.Fatalf("NOT_FOUND rows must be hidden unless verbose:\n%s", out)
	}

	buf.Reset()
	input.Verbose = true
	DrawRunTable(&buf, input)
	if !strings.Contains(buf.String(), "ListQueues") {
		t.Fatalf("verbose output should list NOT_FOUND rows")
	}
}

func TestRenderComparisonTable(t *testing.T) {
	var buf bytes.Buffer
	RenderComparisonTable(&buf, nil)
	if !strings.Contains(buf.String(), "No comparison data") {
		t.Fatalf("unexpected output: %s", buf.String())
	}

	buf.Reset()
	RenderComparisonTable(&buf, &storage.RunComparison{RunID1: 1, RunID2: 2, NewFound: 1, NewKeys: []string{"ec2/eu-west-1/DescribeVpcs"}})
	if !strings.Contains(buf.String(), "+ ec2/eu-west-1/DescribeVpcs") {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}

func TestRenderRunsTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	RenderRunsTable(&buf, nil)
	if strings.TrimSpace(buf.String()) != "No stored runs" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
