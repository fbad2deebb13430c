package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/thirukguru/aws-list-all/model"
	"github.com/thirukguru/aws-list-all/service/catalog"
	"github.com/thirukguru/aws-list-all/service/flag"
	"github.com/thirukguru/aws-list-all/service/listing"
	"github.com/thirukguru/aws-list-all/service/storage"
)

type mockStorage struct {
	runs    map[string]storage.RunSummary
	results []storage.ResultRecord
	points  []storage.TrendPoint
	cmp     *storage.RunComparison

	status   model.Status
	compared [2]int64
	purged   int
}

func (m *mockStorage) SaveRun(context.Context, storage.SaveRunInput) (int64, error) {
	return 0, nil
}
func (m *mockStorage) GetRecentRuns(string, int) ([]storage.RunSummary, error) {
	out := []storage.RunSummary{}
	for _, r := range m.runs {
		out = append(out, r)
	}
	return out, nil
}
func (m *mockStorage) GetRun(ref string) (*storage.RunSummary, error) {
	r, ok := m.runs[ref]
	if !ok {
		return nil, storage.ErrRunNotFound
	}
	return &r, nil
}
func (m *mockStorage) ListResults(_ int64, status model.Status) ([]storage.ResultRecord, error) {
	m.status = status
	return m.results, nil
}
func (m *mockStorage) GetRunComparison(runID1, runID2 int64) (*storage.RunComparison, error) {
	m.compared = [2]int64{runID1, runID2}
	return m.cmp, nil
}
func (m *mockStorage) GetTrends(string, int) ([]storage.TrendPoint, error) {
	return m.points, nil
}
func (m *mockStorage) Vacuum(context.Context) error  { return nil }
func (m *mockStorage) Reindex(context.Context) error { return nil }
func (m *mockStorage) PurgeOlderThan(_ context.Context, days int) (int64, error) {
	m.purged = days
	return 2, nil
}
func (m *mockStorage) Close() error { return nil }

type recordingOutput struct {
	calls []string
}

func (r *recordingOutput) RenderRun(model.RenderRunInput) error {
	r.calls = append(r.calls, "run")
	return nil
}
func (r *recordingOutput) RenderRuns([]storage.RunSummary) error {
	r.calls = append(r.calls, "runs")
	return nil
}
func (r *recordingOutput) RenderRunDetail(storage.RunSummary, []storage.ResultRecord) error {
	r.calls = append(r.calls, "detail")
	return nil
}
func (r *recordingOutput) RenderTrends([]storage.TrendPoint) error {
	r.calls = append(r.calls, "trends")
	return nil
}
func (r *recordingOutput) RenderComparison(*storage.RunComparison) error {
	r.calls = append(r.calls, "comparison")
	return nil
}

func newMockStorage() *mockStorage {
	return &mockStorage{
		runs: map[string]storage.RunSummary{
			"1": {RunID: 1, RunUUID: "aaaa", RunTimestamp: time.Now().Add(-time.Hour)},
			"2": {RunID: 2, RunUUID: "bbbb", RunTimestamp: time.Now()},
		},
		points: []storage.TrendPoint{
			{AccountID: "111111111111", Date: "2026-02-10", Runs: 2, Found: 5, NotFound: 40, Denied: 1, Errors: 0, Items: 12},
			{AccountID: "111111111111", Date: "2026-02-11", Runs: 1, Found: 6, NotFound: 39, Denied: 1, Errors: 1, Items: 14},
		},
		cmp: &storage.RunComparison{RunID1: 1, RunID2: 2, NewFound: 1},
	}
}

func TestRunHistory(t *testing.T) {
	tests := []struct {
		flags model.HistoryFlags
		want  string
	}{
		{model.HistoryFlags{Action: "list"}, "runs"},
		{model.HistoryFlags{Action: "show", Args: []string{"2"}, Status: "FOUND"}, "detail"},
		{model.HistoryFlags{Action: "diff", Args: []string{"1", "2"}}, "comparison"},
		{model.HistoryFlags{Action: "trends", Days: 7}, "trends"},
	}
	for _, tc := range tests {
		store := newMockStorage()
		out := &recordingOutput{}
		if err := runHistory(context.Background(), &bytes.Buffer{}, store, out, tc.flags); err != nil {
			t.Fatalf("%s: runHistory failed: %v", tc.flags.Action, err)
		}
		if len(out.calls) != 1 || out.calls[0] != tc.want {
			t.Fatalf("%s: unexpected render calls %v", tc.flags.Action, out.calls)
		}
		if tc.flags.Action == "show" && store.status != model.StatusFound {
			t.Fatalf("status filter not passed: %q", store.status)
		}
		if tc.flags.Action == "diff" && store.compared != [2]int64{1, 2} {
			t.Fatalf("unexpected compared runs: %v", store.compared)
		}
	}
}

func TestRunHistoryPurge(t *testing.T) {
	store := newMockStorage()
	var buf bytes.Buffer
	if err := runHistory(context.Background(), &buf, store, &recordingOutput{}, model.HistoryFlags{Action: "purge", Days: 90}); err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	if store.purged != 90 || !strings.Contains(buf.String(), "Purged 2 runs") {
		t.Fatalf("unexpected purge: days=%d out=%q", store.purged, buf.String())
	}
}

func TestRunHistoryUnknownRun(t *testing.T) {
	err := runHistory(context.Background(), &bytes.Buffer{}, newMockStorage(), &recordingOutput{}, model.HistoryFlags{Action: "show", Args: []string{"9"}})
	if !errors.Is(err, storage.ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestRunHistoryTrendsExport(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "trends.csv")
	flags := model.HistoryFlags{Action: "trends", Days: 30, ExportCSV: csvPath}
	if err := runHistory(context.Background(), &bytes.Buffer{}, newMockStorage(), &recordingOutput{}, flags); err != nil {
		t.Fatalf("runHistory failed: %v", err)
	}

	b, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("failed reading exported csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d: %q", len(lines), b)
	}
	if lines[0] != "account_id,date,runs,found,not_found,denied,errors,items" {
		t.Fatalf("unexpected csv header: %s", lines[0])
	}
	if lines[2] != "111111111111,2026-02-11,1,6,39,1,1,14" {
		t.Fatalf("unexpected csv row: %s", lines[2])
	}
}

func TestShowListings(t *testing.T) {
	color.NoColor = true
	dir := t.TempDir()
	sink := listing.NewService(dir, "dev")
	found, err := sink.Persist(model.Result{
		Task:    model.Task{Service: "s3", Region: "us-east-1", Operation: "ListBuckets"},
		Status:  model.StatusFound,
		Payload: map[string]any{"Buckets": []any{map[string]any{"Name": "logs"}}},
	})
	if err != nil {
		t.Fatalf("Persist failed: %v", err)
	}
	missing := filepath.Join(dir, "missing.json")

	var out, errOut bytes.Buffer
	err = showListings(&out, &errOut, model.ShowFlags{Files: []string{missing, found}, Verbose: 1})
	if err == nil {
		t.Fatalf("expected missing file to be reported")
	}
	if !strings.Contains(out.String(), "+++ s3 us-east-1 ListBuckets") || !strings.Contains(out.String(), "logs") {
		t.Fatalf("readable files must still be printed: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "missing.json") {
		t.Fatalf("unexpected error output: %q", errOut.String())
	}
}

type fakeCatalog struct {
	catalog.Catalog
}

func (fakeCatalog) Services() []string { return []string{"ec2", "s3"} }
func (fakeCatalog) Operations(_ context.Context, svc string) ([]string, error) {
	return map[string][]string{"ec2": {"DescribeVpcs"}, "s3": {"ListBuckets"}}[svc], nil
}
func (fakeCatalog) Regions(context.Context, string) ([]string, error) {
	return []string{"eu-west-1", "us-east-1"}, nil
}
func (fakeCatalog) Required(_ context.Context, svc string) (map[string][]string, error) {
	if svc == "s3" {
		return map[string][]string{"ListObjectsV2": {"Bucket"}}, nil
	}
	return nil, nil
}
func (fakeCatalog) Verbs(svc string) ([]string, error) {
	return []string{"Get" + svc, "List" + svc}, nil
}

func TestIntrospect(t *testing.T) {
	tests := []struct {
		flags model.IntrospectFlags
		want  []string
	}{
		{model.IntrospectFlags{Detail: "list-operations"}, []string{"ec2 DescribeVpcs\n", "s3 ListBuckets\n"}},
		{model.IntrospectFlags{Detail: "list-operations", Services: []string{"s3"}, Verbose: 1}, []string{"s3 ListObjectsV2 (skipped, requires Bucket)"}},
		{model.IntrospectFlags{Detail: "debug"}, []string{"ec2 Listec2\n", "s3 Gets3\n"}},
		{model.IntrospectFlags{Detail: "list-service-regions"}, []string{"eu-west-1 us-east-1"}},
		{model.IntrospectFlags{Detail: "list-services"}, []string{"ec2\n"}},
	}
	for _, tc := range tests {
		var buf bytes.Buffer
		if err := introspect(context.Background(), &buf, fakeCatalog{}, tc.flags); err != nil {
			t.Fatalf("%s: introspect failed: %v", tc.flags.Detail, err)
		}
		for _, want := range tc.want {
			if !strings.Contains(buf.String(), want) {
				t.Fatalf("%s: expected %q in %q", tc.flags.Detail, want, buf.String())
			}
		}
	}
}

func TestRunUsage(t *testing.T) {
	if err := run(nil); !errors.Is(err, flag.ErrUsage) {
		t.Fatalf("expected ErrUsage without a command, got %v", err)
	}
	if err := run([]string{"bogus"}); err == nil || errors.Is(err, flag.ErrUsage) {
		t.Fatalf("expected unknown command error, got %v", err)
	}
	if err := run([]string{"show"}); !errors.Is(err, flag.ErrUsage) {
		t.Fatalf("expected ErrUsage for show without files, got %v", err)
	}
	if err := run([]string{"introspect"}); !errors.Is(err, flag.ErrUsage) {
		t.Fatalf("expected ErrUsage for introspect without detail, got %v", err)
	}
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	printVersion(&buf, model.VersionInfo{Version: "1.2.3", Commit: "abc", Date: "today"})
	if !strings.Contains(buf.String(), "aws-list-all version 1.2.3") || !strings.Contains(buf.String(), "commit: abc") {
		t.Fatalf("unexpected version output: %q", buf.String())
	}
}
