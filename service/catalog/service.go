// Package catalog discovers the listing operations and regions of every
// registered AWS service and caches the result.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thirukguru/aws-list-all/service/registry"
	"golang.org/x/sync/errgroup"
)

// ErrUnknownService is returned for service names missing from the registry.
var ErrUnknownService = errors.New("unknown service")

// NewService creates a catalog backed by the user cache at userPath
// (DefaultUserPath when empty) and the packaged catalog.
func NewService(userPath string, overrides Overrides) (Catalog, error) {
	if userPath == "" {
		p, err := DefaultUserPath()
		if err != nil {
			return nil, err
		}
		userPath = p
	}
	user := &Store{Path: userPath}

	userDoc, err := user.Load()
	if err != nil {
		return nil, err
	}
	packaged, err := loadPackaged()
	if err != nil {
		return nil, err
	}

	return &service{
		user:      user,
		userDoc:   userDoc,
		packaged:  packaged,
		overrides: overrides,
		live:      map[string]Entry{},
	}, nil
}

func (s *service) Services() []string {
	return registry.Names()
}

func (s *service) Operations(ctx context.Context, name string) ([]string, error) {
	entry, err := s.entry(ctx, name)
	if err != nil {
		return nil, err
	}
	deny := s.overrides.Deny[name]
	if len(deny) == 0 {
		return entry.Operations, nil
	}
	out := make([]string, 0, len(entry.Operations))
	for _, op := range entry.Operations {
		if !contains(deny, op) {
			out = append(out, op)
		}
	}
	return out, nil
}

func (s *service) Regions(ctx context.Context, name string) ([]string, error) {
	entry, err := s.entry(ctx, name)
	if err != nil {
		return nil, err
	}
	return entry.Regions, nil
}

func (s *service) Required(ctx context.Context, name string) (map[string][]string, error) {
	entry, err := s.entry(ctx, name)
	if err != nil {
		return nil, err
	}
	return entry.Required, nil
}

func (s *service) Parameters(name, operation string) map[string]any {
	return mergeParameters(defaultParameters[name][operation], s.overrides.Parameters[name][operation])
}

func (s *service) Verbs(name string) ([]string, error) {
	svc, ok := registry.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownService, name)
	}
	return registry.Verbs(svc.New(probeConfig())), nil
}

// entry resolves a service from the user cache, then the packaged catalog,
// then live discovery. Live results stay in memory only.
func (s *service) entry(ctx context.Context, name string) (Entry, error) {
	if _, ok := registry.Lookup(name); !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrUnknownService, name)
	}

	s.mu.Lock()
	if e, ok := s.userDoc.Services[name]; ok {
		s.mu.Unlock()
		return e, nil
	}
	if e, ok := s.packaged.Services[name]; ok {
		s.mu.Unlock()
		return e, nil
	}
	if e, ok := s.live[name]; ok {
		s.mu.Unlock()
		return e, nil
	}
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}

	v, err, _ := s.group.Do(name, func() (any, error) {
		slog.Debug("catalog cache miss, discovering", "service", name)
		e, err := s.discover(name)
		if err != nil {
			return Entry{}, err
		}
		s.mu.Lock()
		s.live[name] = e
		s.mu.Unlock()
		return e, nil
	})
	if err != nil {
		return Entry{}, err
	}
	return v.(Entry), nil
}

func (s *service) discover(name string) (Entry, error) {
	svc, ok := registry.Lookup(name)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrUnknownService, name)
	}
	client := svc.New(probeConfig())

	entry := Entry{
		Operations: []string{},
		Regions:    partitionRegions(svc.EndpointsID),
		Required:   map[string][]string{},
	}
	for _, verb := range registry.Verbs(client) {
		if !IsListingOperation(name, verb) {
			continue
		}
		required, err := requiredParameters(client, verb, s.Parameters(name, verb))
		if err != nil {
			slog.Warn("skipping operation with unusable parameters", "service", name, "operation", verb, "error", err)
			continue
		}
		if len(required) > 0 {
			entry.Required[verb] = required
			continue
		}
		entry.Operations = append(entry.Operations, verb)
	}
	if entry.Regions == nil {
		entry.Regions = []string{}
	}
	return entry, nil
}

// Refresh rediscovers every registered service and atomically replaces the
// catalog at target. An empty target means the user cache.
func (s *service) Refresh(ctx context.Context, target string, parallel int) (Document, error) {
	if parallel <= 0 {
		parallel = 8
	}
	names := registry.Names()
	entries := make([]Entry, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			e, err := s.discover(name)
			if err != nil {
				return fmt.Errorf("discover %s: %w", name, err)
			}
			entries[i] = e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Document{}, err
	}

	doc := Document{Services: make(map[string]Entry, len(names))}
	for i, name := range names {
		doc.Services[name] = entries[i]
	}

	if target == "" {
		target = s.user.Path
	}
	if err := (&Store{Path: target}).Save(doc); err != nil {
		return Document{}, err
	}

	s.mu.Lock()
	if target == s.user.Path {
		s.userDoc = doc
	}
	s.live = map[string]Entry{}
	s.mu.Unlock()

	return doc, nil
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
