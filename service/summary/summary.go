// Package summary aggregates a stream of query results into counts and the
// grouped view used by reports.
package summary

import (
	"sort"

	"github.com/thirukguru/aws-list-all/model"
)

// New returns an empty Summary.
func New() *Summary {
	return &Summary{
		counts: map[model.Status]int{},
		keys:   map[string]bool{},
		groups: Groups{},
	}
}

// Accumulate records a result. A second result for an already recorded task
// is ignored so counts stay idempotent.
func (s *Summary) Accumulate(r model.Result) bool {
	key := r.Task.Key()
	if s.keys[key] {
		return false
	}
	s.keys[key] = true
	s.counts[r.Status]++
	s.results = append(s.results, r)

	byStatus, ok := s.groups[r.Task.Region]
	if !ok {
		byStatus = map[model.Status]map[string][]model.Result{}
		s.groups[r.Task.Region] = byStatus
	}
	byService, ok := byStatus[r.Status]
	if !ok {
		byService = map[string][]model.Result{}
		byStatus[r.Status] = byService
	}
	byService[r.Task.Service] = append(byService[r.Task.Service], r)
	return true
}

// Count returns the number of results with the given status.
func (s *Summary) Count(status model.Status) int {
	return s.counts[status]
}

// Counts returns a copy of the per-status counts, including zero entries.
func (s *Summary) Counts() map[model.Status]int {
	out := make(map[model.Status]int, len(model.Statuses))
	for _, st := range model.Statuses {
		out[st] = s.counts[st]
	}
	return out
}

// Total is the number of accumulated results.
func (s *Summary) Total() int {
	return len(s.results)
}

// Results returns the results in completion order.
func (s *Summary) Results() []model.Result {
	return append([]model.Result(nil), s.results...)
}

// Contains reports whether a result for the task key was recorded.
func (s *Summary) Contains(key string) bool {
	return s.keys[key]
}

// Groups returns the grouped view. Callers must not modify it.
func (s *Summary) Groups() Groups {
	return s.groups
}

// Regions returns every region with at least one result, sorted.
func (s *Summary) Regions() []string {
	out := make([]string, 0, len(s.groups))
	for r := range s.groups {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// Services returns every service with at least one result, sorted.
func (s *Summary) Services() []string {
	seen := map[string]bool{}
	for _, byStatus := range s.groups {
		for _, byService := range byStatus {
			for svc := range byService {
				seen[svc] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for svc := range seen {
		out = append(out, svc)
	}
	sort.Strings(out)
	return out
}

// Cell returns the results of one service in one region with the given
// status, sorted by operation.
func (s *Summary) Cell(region, service string, status model.Status) []model.Result {
	rs := append([]model.Result(nil), s.groups[region][status][service]...)
	sort.Slice(rs, func(i, j int) bool { return rs[i].Task.Operation < rs[j].Task.Operation })
	return rs
}
