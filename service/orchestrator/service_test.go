package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/fatih/color"
	"github.com/thirukguru/aws-list-all/model"
	"github.com/thirukguru/aws-list-all/service/query"
	"github.com/thirukguru/aws-list-all/service/storage"
)

type mockSTS struct{ err error }

func (m *mockSTS) GetCallerIdentity(context.Context) (*sts.GetCallerIdentityOutput, error) {
	return &sts.GetCallerIdentityOutput{}, m.err
}

func (m *mockSTS) AccountID(context.Context) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "123456789012", nil
}

type mockEnumerator struct{ tasks []model.Task }

func (m *mockEnumerator) Enumerate(context.Context, []string, []string, []string) ([]model.Task, error) {
	return m.tasks, nil
}

// mockEngine replays results, emitting a duplicate of the first one.
type mockEngine struct {
	results []model.Result
	cancel  context.CancelFunc
}

func (m *mockEngine) Run(_ context.Context, tasks []model.Task) <-chan model.Result {
	out := make(chan model.Result)
	go func() {
		defer close(out)
		for i, r := range m.results {
			out <- r
			if i == 0 {
				out <- r
				if m.cancel != nil {
					m.cancel()
				}
			}
		}
	}()
	return out
}

type mockListing struct {
	persisted []string
	err       error
}

func (m *mockListing) Persist(r model.Result) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.persisted = append(m.persisted, r.Task.Key())
	return r.Task.Key(), nil
}

type mockOutput struct{ run *model.RenderRunInput }

func (m *mockOutput) RenderRun(in model.RenderRunInput) error {
	m.run = &in
	return nil
}
func (m *mockOutput) RenderRuns([]storage.RunSummary) error { return nil }
func (m *mockOutput) RenderRunDetail(storage.RunSummary, []storage.ResultRecord) error {
	return nil
}
func (m *mockOutput) RenderTrends([]storage.TrendPoint) error       { return nil }
func (m *mockOutput) RenderComparison(*storage.RunComparison) error { return nil }

type mockStorage struct {
	storage.Service
	saved *storage.SaveRunInput
}

func (m *mockStorage) SaveRun(_ context.Context, in storage.SaveRunInput) (int64, error) {
	m.saved = &in
	return 1, nil
}

func fixture() ([]model.Task, []model.Result) {
	tasks := []model.Task{
		{Service: "sqs", Region: "eu-west-1", Operation: "ListQueues"},
		{Service: "ec2", Region: "eu-west-1", Operation: "DescribeVpcs"},
		{Service: "iam", Region: "aws-global", Operation: "ListUsers"},
	}
	results := []model.Result{
		{Task: tasks[0], Status: model.StatusFound, Payload: map[string]any{"QueueUrls": []any{"https://q/1"}}},
		{Task: tasks[1], Status: model.StatusNotFound},
		{Task: tasks[2], Status: model.StatusAccessDenied, ErrorCode: "AccessDenied", Diagnostic: "denied"},
	}
	return tasks, results
}

type harness struct {
	svc     *service
	out     *bytes.Buffer
	listing *mockListing
	output  *mockOutput
	store   *mockStorage
	engine  *mockEngine
}

func newHarness() *harness {
	color.NoColor = true
	tasks, results := fixture()
	h := &harness{
		out:     &bytes.Buffer{},
		listing: &mockListing{},
		output:  &mockOutput{},
		store:   &mockStorage{},
		engine:  &mockEngine{results: results},
	}
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	h.svc = &service{
		stsService:     &mockSTS{},
		enumerator:     &mockEnumerator{tasks: tasks},
		engine:         h.engine,
		listingService: h.listing,
		outputService:  h.output,
		storageService: h.store,
		versionInfo:    model.VersionInfo{Version: "test"},
		out:            h.out,
		now: func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		},
	}
	return h
}

func TestOrchestrate(t *testing.T) {
	h := newHarness()
	run, err := h.svc.Orchestrate(context.Background(), model.QueryFlags{Output: "table", Store: true, Profile: "dev"})
	if err != nil {
		t.Fatalf("Orchestrate failed: %v", err)
	}

	if run.AccountID != "123456789012" || run.Interrupted || run.UUID == "" {
		t.Fatalf("unexpected run: %+v", run)
	}
	if run.Summary.Total() != 3 {
		t.Fatalf("duplicate result must be counted once, got %d", run.Summary.Total())
	}
	if len(h.listing.persisted) != 4 {
		t.Fatalf("every received result is persisted, got %d", len(h.listing.persisted))
	}
	if h.output.run == nil || h.output.run.Counts[model.StatusFound] != 1 || h.output.run.Duration != time.Second {
		t.Fatalf("unexpected rendered run: %+v", h.output.run)
	}
	if h.store.saved == nil || len(h.store.saved.Results) != 3 || h.store.saved.Profile != "dev" || h.store.saved.RunUUID != run.UUID {
		t.Fatalf("unexpected stored run: %+v", h.store.saved)
	}

	live := h.out.String()
	if !strings.Contains(live, "+++ sqs eu-west-1 ListQueues") || !strings.Contains(live, ">:| iam aws-global ListUsers") {
		t.Fatalf("unexpected live output: %q", live)
	}
	if strings.Contains(live, "DescribeVpcs") {
		t.Fatalf("empty listings are hidden at verbose 0: %q", live)
	}
}

func TestOrchestrateJSONSuppressesLiveLines(t *testing.T) {
	h := newHarness()
	if _, err := h.svc.Orchestrate(context.Background(), model.QueryFlags{Output: "json"}); err != nil {
		t.Fatalf("Orchestrate failed: %v", err)
	}
	if h.out.Len() != 0 {
		t.Fatalf("expected no live output, got %q", h.out.String())
	}
	if h.store.saved != nil {
		t.Fatalf("run must not be stored without --store")
	}
}

func TestOrchestrateCredentialFailure(t *testing.T) {
	h := newHarness()
	h.svc.stsService = &mockSTS{err: query.ErrCredentials}
	if _, err := h.svc.Orchestrate(context.Background(), model.QueryFlags{}); !errors.Is(err, query.ErrCredentials) {
		t.Fatalf("expected ErrCredentials, got %v", err)
	}
	if len(h.listing.persisted) != 0 {
		t.Fatalf("nothing may run without credentials")
	}
}

func TestOrchestrateNoTasks(t *testing.T) {
	h := newHarness()
	h.svc.enumerator = &mockEnumerator{}
	if _, err := h.svc.Orchestrate(context.Background(), model.QueryFlags{}); !errors.Is(err, ErrNoTasks) {
		t.Fatalf("expected ErrNoTasks, got %v", err)
	}
}

func TestOrchestratePersistFailure(t *testing.T) {
	h := newHarness()
	h.listing.err = errors.New("disk full")
	if _, err := h.svc.Orchestrate(context.Background(), model.QueryFlags{}); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected persist failure, got %v", err)
	}
	if h.output.run != nil {
		t.Fatalf("summary must not render after a sink failure")
	}
}

type countingProvider struct{ calls atomic.Int32 }

func (p *countingProvider) Call(context.Context, model.Task) (map[string]any, error) {
	p.calls.Add(1)
	return map[string]any{"Items": []any{"x"}}, nil
}

func TestOrchestratePersistFailureStopsDispatch(t *testing.T) {
	h := newHarness()
	tasks := make([]model.Task, 500)
	for i := range tasks {
		tasks[i] = model.Task{Service: "sqs", Region: "eu-west-1", Operation: fmt.Sprintf("ListThing%d", i)}
	}
	provider := &countingProvider{}
	h.svc.enumerator = &mockEnumerator{tasks: tasks}
	h.svc.engine = query.NewService(provider, query.Options{Parallel: 2})
	h.listing.err = errors.New("disk full")

	if _, err := h.svc.Orchestrate(context.Background(), model.QueryFlags{Parallel: 2}); err == nil {
		t.Fatalf("expected persist failure")
	}
	// the first result fails; only calls already in flight may follow
	if got := provider.calls.Load(); got > 10 {
		t.Fatalf("expected dispatch to stop after the sink failed, got %d calls", got)
	}
}

func TestOrchestrateInterrupted(t *testing.T) {
	h := newHarness()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h.engine.cancel = cancel

	run, err := h.svc.Orchestrate(ctx, model.QueryFlags{Store: true})
	if err != nil {
		t.Fatalf("Orchestrate failed: %v", err)
	}
	if !run.Interrupted {
		t.Fatalf("expected interrupted run")
	}
	if h.output.run == nil {
		t.Fatalf("partial summary must still render")
	}
	if h.store.saved != nil {
		t.Fatalf("interrupted runs are not stored")
	}
}
