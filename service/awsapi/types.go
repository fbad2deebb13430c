package awsapi

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/thirukguru/aws-list-all/model"
	"golang.org/x/time/rate"
)

// Provider executes one listing task and returns its aggregated payload.
type Provider interface {
	Call(ctx context.Context, task model.Task) (map[string]any, error)
}

// Options tunes a Provider.
type Options struct {
	// Rate caps requests per second per region; zero disables limiting.
	Rate float64
	// MaxPages bounds pagination of a single task.
	MaxPages int
}

type clientFactory func(service string, cfg aws.Config) (any, error)

type provider struct {
	base      aws.Config
	opts      Options
	newClient clientFactory

	mu       sync.Mutex
	clients  map[string]any
	limiters map[string]*rate.Limiter
}
