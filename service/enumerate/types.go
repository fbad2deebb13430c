package enumerate

import (
	"context"

	"github.com/thirukguru/aws-list-all/model"
)

type service struct {
	source Source
}

// Service is the interface for the work enumerator.
type Service interface {
	Enumerate(ctx context.Context, services, regions, operations []string) ([]model.Task, error)
}
