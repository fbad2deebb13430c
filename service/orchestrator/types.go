package orchestrator

import (
	"context"
	"io"
	"time"

	"github.com/thirukguru/aws-list-all/model"
	"github.com/thirukguru/aws-list-all/service/enumerate"
	"github.com/thirukguru/aws-list-all/service/listing"
	"github.com/thirukguru/aws-list-all/service/output"
	"github.com/thirukguru/aws-list-all/service/query"
	"github.com/thirukguru/aws-list-all/service/storage"
	awssts "github.com/thirukguru/aws-list-all/service/sts"
	"github.com/thirukguru/aws-list-all/service/summary"
)

type service struct {
	stsService     awssts.Service
	enumerator     enumerate.Service
	engine         query.Engine
	listingService listing.Service
	outputService  output.Service
	storageService storage.Service
	versionInfo    model.VersionInfo

	out      io.Writer
	progress bool
	now      func() time.Time
}

// Service is the interface for orchestrator service.
type Service interface {
	// Orchestrate runs one query: it resolves the caller account,
	// enumerates tasks, executes them and feeds every result to the
	// listing sink and the run summary. The summary is returned even when
	// the run is interrupted.
	Orchestrate(ctx context.Context, flags model.QueryFlags) (*Run, error)
}

// Run is a finished query run.
type Run struct {
	UUID      string
	AccountID string
	Duration  time.Duration
	Summary   *summary.Summary
	// Interrupted is set when the run stopped before every task finished.
	Interrupted bool
}
