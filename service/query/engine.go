// Package query runs listing tasks through a bounded worker pool, retrying
// throttled and transient failures, and classifies every outcome.
package query

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/thirukguru/aws-list-all/model"
	"github.com/thirukguru/aws-list-all/service/awsapi"
	"golang.org/x/sync/errgroup"
)

const (
	defaultParallel = 32
	defaultTimeout  = 60 * time.Second
)

// NewService creates an engine calling AWS through provider.
func NewService(provider awsapi.Provider, opts Options) Engine {
	if opts.Parallel <= 0 {
		opts.Parallel = defaultParallel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = defaultBaseDelay
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = defaultMaxDelay
	}
	return &engine{
		provider: provider,
		opts:     opts,
		sleep:    sleepContext,
		delay:    backoff(opts.BaseDelay, opts.MaxDelay),
	}
}

func (e *engine) Run(ctx context.Context, tasks []model.Task) <-chan model.Result {
	results := make(chan model.Result)

	go func() {
		defer close(results)

		var g errgroup.Group
		g.SetLimit(e.opts.Parallel)
		for _, task := range tasks {
			if ctx.Err() != nil {
				slog.Info("run cancelled, stopping dispatch", "task", task.Key())
				break
			}
			g.Go(func() error {
				if ctx.Err() != nil {
					return nil
				}
				res := e.execute(ctx, task)
				if ctx.Err() != nil {
					return nil
				}
				select {
				case results <- res:
				case <-ctx.Done():
				}
				return nil
			})
		}
		_ = g.Wait()
	}()

	return results
}

func (e *engine) call(ctx context.Context, task model.Task) (map[string]any, error) {
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.opts.Timeout)
	defer cancel()
	return e.provider.Call(callCtx, task)
}

// execute runs one task to a final Result, retrying retryable failures.
func (e *engine) execute(ctx context.Context, task model.Task) model.Result {
	start := time.Now()
	res := model.Result{Task: task}

	var (
		payload map[string]any
		err     error
		kind    ErrorKind
	)
	for attempt := 1; ; attempt++ {
		res.Attempts = attempt
		payload, err = e.call(ctx, task)
		if err == nil {
			break
		}
		kind = Classify(err)
		if !kind.Retryable() || attempt >= e.opts.MaxAttempts {
			break
		}
		d := e.delay(attempt)
		slog.Debug("retrying task", "task", task.Key(), "kind", kind, "attempt", attempt, "delay", d, "error", err)
		if e.sleep(ctx, d) != nil {
			break
		}
	}
	res.Duration = time.Since(start)

	switch {
	case err == nil && awsapi.HasItems(payload):
		res.Status = model.StatusFound
		res.Payload = payload
	case err == nil:
		res.Status = model.StatusNotFound
	case kind == KindPermission:
		res.Status = model.StatusAccessDenied
		res.ErrorCode = ErrorCode(err)
		res.Diagnostic = err.Error()
	default:
		res.Status = model.StatusError
		res.ErrorCode = ErrorCode(err)
		res.Diagnostic = err.Error()
		if kind.Retryable() {
			res.Diagnostic = fmt.Sprintf("giving up after %d attempts: %v", res.Attempts, err)
		}
	}

	slog.Debug("task finished", "task", task.Key(), "status", res.Status, "attempts", res.Attempts, "duration", res.Duration)
	return res
}
