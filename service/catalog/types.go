package catalog

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Entry is the cached discovery result for one service.
type Entry struct {
	Operations []string `json:"operations"`
	Regions    []string `json:"regions"`
	// Required records the missing input fields of listing-named
	// operations that were excluded, for introspection.
	Required map[string][]string `json:"required,omitempty"`
}

// Document is the on-disk cache format.
type Document struct {
	Services map[string]Entry `json:"services"`
}

// Overrides tunes discovery from the settings file.
type Overrides struct {
	// Parameters are merged over the built-in default parameters,
	// keyed by service then operation.
	Parameters map[string]map[string]map[string]any
	// Deny excludes further operations, keyed by service.
	Deny map[string][]string
}

// Catalog answers which services, regions and operations exist.
type Catalog interface {
	Services() []string
	Operations(ctx context.Context, service string) ([]string, error)
	Regions(ctx context.Context, service string) ([]string, error)
	Parameters(service, operation string) map[string]any
	Verbs(service string) ([]string, error)
	Required(ctx context.Context, service string) (map[string][]string, error)
	Refresh(ctx context.Context, target string, parallel int) (Document, error)
}

type service struct {
	user      *Store
	userDoc   Document
	packaged  Document
	overrides Overrides

	group singleflight.Group
	mu    sync.Mutex
	live  map[string]Entry
}
