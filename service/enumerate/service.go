// Package enumerate expands service, region and operation selections into
// the set of listing tasks to run.
package enumerate

import (
	"context"
	"fmt"
	"sort"

	"github.com/thirukguru/aws-list-all/model"
	"github.com/thirukguru/aws-list-all/service/catalog"
)

// Source is the part of the catalog the enumerator depends on.
type Source interface {
	Services() []string
	Operations(ctx context.Context, service string) ([]string, error)
	Regions(ctx context.Context, service string) ([]string, error)
	Parameters(service, operation string) map[string]any
}

// NewService creates an enumerator over a catalog.
func NewService(source Source) Service {
	return &service{source: source}
}

// Enumerate returns one task per selected (service, region, operation).
// An empty selection means everything the catalog knows; a non-empty one is
// intersected with it, and values matching nothing are dropped silently.
func (s *service) Enumerate(ctx context.Context, services, regions, operations []string) ([]model.Task, error) {
	selected := intersect(s.source.Services(), services)
	regionFilter := toSet(regions)
	opFilter := toSet(operations)

	var tasks []model.Task
	for _, svc := range selected {
		ops, err := s.source.Operations(ctx, svc)
		if err != nil {
			return nil, fmt.Errorf("failed to load operations of %s: %w", svc, err)
		}
		regs, err := s.source.Regions(ctx, svc)
		if err != nil {
			return nil, fmt.Errorf("failed to load regions of %s: %w", svc, err)
		}

		for _, region := range dedupe(regs) {
			if len(regionFilter) > 0 && !regionFilter[region] && !(region == catalog.GlobalRegion && regionFilter["us-east-1"]) {
				continue
			}
			for _, op := range dedupe(ops) {
				if len(opFilter) > 0 && !opFilter[op] {
					continue
				}
				tasks = append(tasks, model.Task{
					Service:    svc,
					Region:     region,
					Operation:  op,
					Parameters: s.source.Parameters(svc, op),
				})
			}
		}
	}

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].Key() < tasks[j].Key()
	})
	return tasks, nil
}

func intersect(all, selection []string) []string {
	if len(selection) == 0 {
		return dedupe(all)
	}
	want := toSet(selection)
	out := make([]string, 0, len(selection))
	for _, v := range dedupe(all) {
		if want[v] {
			out = append(out, v)
		}
	}
	return out
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
