// Package orchestrator drives a query run from enumeration to the final
// summary, with the run's results flowing through a single consumer.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/thirukguru/aws-list-all/model"
	"github.com/thirukguru/aws-list-all/service/enumerate"
	"github.com/thirukguru/aws-list-all/service/listing"
	"github.com/thirukguru/aws-list-all/service/output"
	"github.com/thirukguru/aws-list-all/service/query"
	"github.com/thirukguru/aws-list-all/service/storage"
	awssts "github.com/thirukguru/aws-list-all/service/sts"
	"github.com/thirukguru/aws-list-all/service/summary"
	"github.com/thirukguru/aws-list-all/shared/progress"
)

// ErrNoTasks is returned when the selection matches no listing operation.
var ErrNoTasks = errors.New("selection matches no listing operations")

// NewService creates a new orchestrator. storageService may be nil when the
// run is not stored. Live result lines go to out; a progress bar is drawn
// on stderr when showProgress is set.
func NewService(
	stsService awssts.Service,
	enumerator enumerate.Service,
	engine query.Engine,
	listingService listing.Service,
	outputService output.Service,
	storageService storage.Service,
	versionInfo model.VersionInfo,
	out io.Writer,
	showProgress bool,
) Service {
	return &service{
		stsService:     stsService,
		enumerator:     enumerator,
		engine:         engine,
		listingService: listingService,
		outputService:  outputService,
		storageService: storageService,
		versionInfo:    versionInfo,
		out:            out,
		progress:       showProgress,
		now:            time.Now,
	}
}

func (s *service) Orchestrate(ctx context.Context, flags model.QueryFlags) (*Run, error) {
	accountID, err := s.stsService.AccountID(ctx)
	if err != nil {
		return nil, err
	}

	tasks, err := s.enumerator.Enumerate(ctx, flags.Services, flags.Regions, flags.Operations)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate tasks: %w", err)
	}
	if len(tasks) == 0 {
		return nil, ErrNoTasks
	}
	slog.Info("starting query", "account", accountID, "tasks", len(tasks), "parallel", flags.Parallel)

	run := &Run{
		UUID:      uuid.NewString(),
		AccountID: accountID,
		Summary:   summary.New(),
	}
	startedAt := s.now()
	if err := s.consume(ctx, flags, tasks, run.Summary); err != nil {
		return nil, err
	}
	run.Duration = s.now().Sub(startedAt)
	run.Interrupted = ctx.Err() != nil

	if err := s.outputService.RenderRun(model.RenderRunInput{
		AccountID: accountID,
		Profile:   flags.Profile,
		Duration:  run.Duration,
		Counts:    run.Summary.Counts(),
		Results:   run.Summary.Results(),
		Verbose:   flags.Verbose > 0,
	}); err != nil {
		return nil, fmt.Errorf("failed to render summary: %w", err)
	}

	if run.Interrupted {
		slog.Warn("run interrupted, results are incomplete", "completed", run.Summary.Total(), "tasks", len(tasks))
		return run, nil
	}
	if err := s.persistRunIfEnabled(ctx, flags, run); err != nil {
		return nil, fmt.Errorf("failed to store run: %w", err)
	}
	return run, nil
}

// consume is the only reader of the engine's result stream. It writes
// every result to its listing file before counting it. A sink failure
// stops dispatch of further tasks.
func (s *service) consume(ctx context.Context, flags model.QueryFlags, tasks []model.Task, sum *summary.Summary) error {
	bar := progress.New(len(tasks), "querying", s.progress)
	defer bar.Finish()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printer := listing.NewPrinter(flags.Verbose, "")
	live := flags.Output != string(output.FormatJSON)

	var persistErr error
	for r := range s.engine.Run(ctx, tasks) {
		if persistErr != nil {
			// Keep draining so the engine can shut down.
			continue
		}
		if _, err := s.listingService.Persist(r); err != nil {
			persistErr = err
			cancel()
			slog.Error("failed to write listing, stopping run", "task", r.Task.Key(), "error", err)
			continue
		}
		if !sum.Accumulate(r) {
			slog.Debug("duplicate result ignored", "task", r.Task.Key())
			continue
		}
		if live {
			bar.Clear()
			if err := printer.Print(s.out, listing.FromResult(r, flags.Profile)); err != nil {
				slog.Warn("failed to print result", "task", r.Task.Key(), "error", err)
			}
		}
		bar.Step(r.Task.Service)
	}
	return persistErr
}
