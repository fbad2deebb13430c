package listing

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/thirukguru/aws-list-all/model"
)

func foundResult() model.Result {
	return model.Result{
		Task: model.Task{
			Service:    "ec2",
			Region:     "eu-west-1",
			Operation:  "DescribeSnapshots",
			Parameters: map[string]any{"OwnerIds": []any{"self"}},
		},
		Status: model.StatusFound,
		Payload: map[string]any{
			"Snapshots": []any{
				map[string]any{"SnapshotId": "snap-2", "OwnerId": "123"},
				map[string]any{"SnapshotId": "snap-1", "OwnerId": "123"},
			},
		},
		Attempts: 2,
		Duration: 1500 * time.Millisecond,
	}
}

func TestFileName(t *testing.T) {
	task := model.Task{Service: "ec2", Region: "eu-west-1", Operation: "DescribeVpcs"}
	if got := FileName(task, "prod"); got != "ec2_DescribeVpcs_eu-west-1_prod.json" {
		t.Fatalf("unexpected file name %q", got)
	}
	if got := FileName(task, ""); got != "ec2_DescribeVpcs_eu-west-1_default.json" {
		t.Fatalf("unexpected default file name %q", got)
	}
	if got := FileName(task, "team/prod"); strings.Contains(got, "/") {
		t.Fatalf("file name must not contain separators: %q", got)
	}
}

func TestPersistLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	sink := NewService(filepath.Join(dir, "out"), "prod")

	for _, r := range []model.Result{
		foundResult(),
		{Task: model.Task{Service: "sqs", Region: "us-east-1", Operation: "ListQueues"}, Status: model.StatusNotFound, Attempts: 1},
		{Task: model.Task{Service: "iam", Region: "aws-global", Operation: "ListUsers"}, Status: model.StatusAccessDenied, ErrorCode: "AccessDenied", Diagnostic: "not allowed", Attempts: 1},
	} {
		path, err := sink.Persist(r)
		if err != nil {
			t.Fatalf("Persist failed: %v", err)
		}
		if filepath.Base(path) != FileName(r.Task, "prod") {
			t.Fatalf("unexpected path %s", path)
		}

		l, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if l.Profile != "prod" {
			t.Fatalf("expected profile prod, got %q", l.Profile)
		}
		if got := l.Result(); !reflect.DeepEqual(got, r) {
			t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, r)
		}
	}

	entries, err := os.ReadDir(filepath.Join(dir, "out"))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 listing files and no temp files, got %d", len(entries))
	}
}

func TestPersistOverwrites(t *testing.T) {
	dir := t.TempDir()
	sink := NewService(dir, "")
	r := foundResult()
	if _, err := sink.Persist(r); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}
	r.Status = model.StatusNotFound
	r.Payload = nil
	path, err := sink.Persist(r)
	if err != nil {
		t.Fatalf("Persist failed: %v", err)
	}
	l, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if l.Status != model.StatusNotFound || l.Response != nil {
		t.Fatalf("expected overwritten listing, got %+v", l)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"service":"ec2","status":"MAYBE"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Fatalf("expected error for unknown status")
	}

	garbage := filepath.Join(dir, "garbage.json")
	if err := os.WriteFile(garbage, []byte(`{not json`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(garbage); err == nil {
		t.Fatalf("expected error for invalid json")
	}
}

func TestPrinter(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	found := FromResult(foundResult(), "default")
	empty := FromResult(model.Result{Task: model.Task{Service: "sqs", Region: "us-east-1", Operation: "ListQueues"}, Status: model.StatusNotFound}, "")
	denied := FromResult(model.Result{Task: model.Task{Service: "iam", Region: "aws-global", Operation: "ListUsers"}, Status: model.StatusAccessDenied, ErrorCode: "AccessDenied", Diagnostic: "not allowed"}, "")

	tests := []struct {
		name    string
		verbose int
		query   string
		listing Listing
		want    string
	}{
		{"found", 0, "", found, "+++ ec2 eu-west-1 DescribeSnapshots Snapshots(2)\n"},
		{"found verbose", 1, "", found, "+++ ec2 eu-west-1 DescribeSnapshots Snapshots(2)\n    snap-1\n    snap-2\n"},
		{"found query", 0, ".Snapshots[].SnapshotId", found, "+++ ec2 eu-west-1 DescribeSnapshots Snapshots(2)\n    \"snap-2\"\n    \"snap-1\"\n"},
		{"not found hidden", 1, "", empty, ""},
		{"not found shown", 2, "", empty, "--- sqs us-east-1 ListQueues\n"},
		{"denied", 0, "", denied, ">:| iam aws-global ListUsers AccessDenied\n"},
		{"denied verbose", 1, "", denied, ">:| iam aws-global ListUsers AccessDenied\n    not allowed\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewPrinter(tc.verbose, tc.query).Print(&buf, tc.listing); err != nil {
				t.Fatalf("Print failed: %v", err)
			}
			if buf.String() != tc.want {
				t.Fatalf("unexpected output:\n%q\nwant\n%q", buf.String(), tc.want)
			}
		})
	}
}

func TestQuery(t *testing.T) {
	payload := map[string]any{"Users": []any{map[string]any{"UserName": "a"}, map[string]any{"UserName": "b"}}}

	got, err := Query(".Users | length", payload)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("unexpected result %v", got)
	}

	if _, err := Query(".Users[", payload); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := Query(".Users | error(\"nope\")", payload); err == nil {
		t.Fatalf("expected runtime error")
	}
	if got, err := Query(".Missing", nil); err != nil || len(got) != 1 || got[0] != nil {
		t.Fatalf("expected null for missing key, got %v %v", got, err)
	}
}
