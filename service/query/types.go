package query

import (
	"context"
	"time"

	"github.com/thirukguru/aws-list-all/model"
	"github.com/thirukguru/aws-list-all/service/awsapi"
)

// Engine executes listing tasks concurrently and streams their results.
type Engine interface {
	// Run dispatches tasks and returns a channel carrying one Result per
	// completed task. The channel is closed once every dispatched task has
	// finished. Cancelling ctx stops dispatch and drops in-flight results.
	Run(ctx context.Context, tasks []model.Task) <-chan model.Result
}

// Options tunes an Engine.
type Options struct {
	Parallel    int
	Timeout     time.Duration
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

type engine struct {
	provider awsapi.Provider
	opts     Options

	sleep func(ctx context.Context, d time.Duration) error
	delay func(attempt int) time.Duration
}
