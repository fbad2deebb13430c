package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/thirukguru/aws-list-all/model"
)

func newTestStorage(t *testing.T) Service {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.db")
	svc, err := NewService(dbPath)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func res(svc, region, op string, st model.Status, payload map[string]any) model.Result {
	return model.Result{
		Task:     model.Task{Service: svc, Region: region, Operation: op},
		Status:   st,
		Payload:  payload,
		Attempts: 1,
		Duration: 120 * time.Millisecond,
	}
}

func sampleResults() []model.Result {
	return []model.Result{
		res("ec2", "eu-west-1", "DescribeVpcs", model.StatusFound, map[string]any{"Vpcs": []any{map[string]any{"VpcId": "vpc-1"}, map[string]any{"VpcId": "vpc-2"}}}),
		res("ec2", "eu-west-1", "DescribeInstances", model.StatusNotFound, nil),
		res("iam", "aws-global", "ListUsers", model.StatusFound, map[string]any{"Users": []any{map[string]any{"UserName": "alice"}}}),
		{Task: model.Task{Service: "kms", Region: "eu-west-1", Operation: "ListKeys"}, Status: model.StatusAccessDenied, ErrorCode: "AccessDeniedException", Diagnostic: "denied", Attempts: 1},
		{Task: model.Task{Service: "sqs", Region: "eu-west-1", Operation: "ListQueues"}, Status: model.StatusError, ErrorCode: "Throttling", Diagnostic: "giving up after 6 attempts", Attempts: 6},
	}
}

func TestSaveRunAndQueries(t *testing.T) {
	svc := newTestStorage(t)
	ctx := context.Background()

	runID, err := svc.SaveRun(ctx, SaveRunInput{
		AccountID: "111111111111",
		Profile:   "prod",
		Version:   "1.0.0",
		Results:   sampleResults(),
	})
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if runID <= 0 {
		t.Fatalf("expected positive runID, got %d", runID)
	}

	recent, err := svc.GetRecentRuns("111111111111", 10)
	if err != nil {
		t.Fatalf("GetRecentRuns failed: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("expected 1 recent run, got %d", len(recent))
	}
	r := recent[0]
	if r.TotalTasks != 5 || r.FoundCount != 2 || r.NotFoundCount != 1 || r.DeniedCount != 1 || r.ErrorCount != 1 {
		t.Fatalf("unexpected run counts: %+v", r)
	}
	if r.Profile != "prod" || r.RunUUID == "" {
		t.Fatalf("unexpected run metadata: %+v", r)
	}

	byID, err := svc.GetRun("1")
	if err != nil || byID.RunID != runID {
		t.Fatalf("GetRun by id failed: %v %+v", err, byID)
	}
	byPrefix, err := svc.GetRun(r.RunUUID[:8])
	if err != nil || byPrefix.RunUUID != r.RunUUID {
		t.Fatalf("GetRun by prefix failed: %v %+v", err, byPrefix)
	}
	if _, err := svc.GetRun("does-not-exist"); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}

	all, err := svc.ListResults(runID, "")
	if err != nil {
		t.Fatalf("ListResults failed: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 results, got %d", len(all))
	}
	found, err := svc.ListResults(runID, model.StatusFound)
	if err != nil {
		t.Fatalf("ListResults(FOUND) failed: %v", err)
	}
	if len(found) != 2 || found[0].Key() != "ec2/eu-west-1/DescribeVpcs" || found[0].ItemCount != 2 {
		t.Fatalf("unexpected found results: %+v", found)
	}
	if found[0].Payload == "" || found[0].DurationMS != 120 {
		t.Fatalf("expected payload and duration to be stored: %+v", found[0])
	}
	errs, err := svc.ListResults(runID, model.StatusError)
	if err != nil {
		t.Fatalf("ListResults(ERROR) failed: %v", err)
	}
	if len(errs) != 1 || errs[0].Attempts != 6 || errs[0].ErrorCode != "Throttling" {
		t.Fatalf("unexpected error results: %+v", errs)
	}
}

func TestRunComparison(t *testing.T) {
	svc := newTestStorage(t)
	ctx := context.Background()

	run1, err := svc.SaveRun(ctx, SaveRunInput{RunUUID: "run-1", AccountID: "222222222222", Results: sampleResults()})
	if err != nil {
		t.Fatalf("SaveRun #1 failed: %v", err)
	}

	second := sampleResults()
	second[0].Status = model.StatusNotFound
	second[0].Payload = nil
	second[1].Status = model.StatusFound
	second[1].Payload = map[string]any{"Reservations": []any{"r-1"}}
	run2, err := svc.SaveRun(ctx, SaveRunInput{RunUUID: "run-2", AccountID: "222222222222", Results: second})
	if err != nil {
		t.Fatalf("SaveRun #2 failed: %v", err)
	}

	cmp, err := svc.GetRunComparison(run1, run2)
	if err != nil {
		t.Fatalf("GetRunComparison failed: %v", err)
	}
	if cmp.NewFound != 1 || cmp.Gone != 1 || cmp.Persistent != 1 {
		t.Fatalf("unexpected comparison: %+v", cmp)
	}
	if cmp.NewKeys[0] != "ec2/eu-west-1/DescribeInstances" || cmp.GoneKeys[0] != "ec2/eu-west-1/DescribeVpcs" {
		t.Fatalf("unexpected comparison keys: %+v", cmp)
	}

	if _, err := svc.SaveRun(ctx, SaveRunInput{RunUUID: "run-1", AccountID: "222222222222"}); err == nil {
		t.Fatalf("expected duplicate run uuid to fail")
	}
}

func TestTrendsIncludeAccountDimensionAndFilter(t *testing.T) {
	svc := newTestStorage(t)
	ctx := context.Background()

	if _, err := svc.SaveRun(ctx, SaveRunInput{AccountID: "444444444444", Results: sampleResults()}); err != nil {
		t.Fatalf("SaveRun account A failed: %v", err)
	}
	if _, err := svc.SaveRun(ctx, SaveRunInput{AccountID: "555555555555", Results: sampleResults()[:2]}); err != nil {
		t.Fatalf("SaveRun account B failed: %v", err)
	}

	allPoints, err := svc.GetTrends("", 30)
	if err != nil {
		t.Fatalf("GetTrends (all accounts) failed: %v", err)
	}
	if len(allPoints) != 2 {
		t.Fatalf("expected 2 trend points across accounts, got %d", len(allPoints))
	}

	filtered, err := svc.GetTrends("444444444444", 30)
	if err != nil {
		t.Fatalf("GetTrends (filtered) failed: %v", err)
	}
	if len(filtered) != 1 {
		t.Fatalf("expected 1 filtered trend point, got %d", len(filtered))
	}
	p := filtered[0]
	if p.AccountID != "444444444444" || p.Runs != 1 || p.Found != 2 || p.Items != 3 {
		t.Fatalf("unexpected trend point: %+v", p)
	}
}

func TestSaveRunRequiresAccount(t *testing.T) {
	svc := newTestStorage(t)
	if _, err := svc.SaveRun(context.Background(), SaveRunInput{}); err == nil {
		t.Fatalf("expected error without account id")
	}
}

func TestMaintenanceCommands(t *testing.T) {
	svc := newTestStorage(t)
	ctx := context.Background()

	if err := svc.Vacuum(ctx); err != nil {
		t.Fatalf("Vacuum failed: %v", err)
	}
	if err := svc.Reindex(ctx); err != nil {
		t.Fatalf("Reindex failed: %v", err)
	}
	if _, err := svc.PurgeOlderThan(ctx, 0); err == nil {
		t.Fatalf("expected error for invalid purge days")
	}
	n, err := svc.PurgeOlderThan(ctx, 7)
	if err != nil || n != 0 {
		t.Fatalf("expected nothing purged, got %d %v", n, err)
	}
}

func TestResolvePath(t *testing.T) {
	p, err := resolvePath("")
	if err != nil {
		t.Fatalf("resolvePath failed: %v", err)
	}
	if filepath.Base(p) != "history.db" || !filepath.IsAbs(p) {
		t.Fatalf("unexpected default path %q", p)
	}
}
