package summary

import "github.com/thirukguru/aws-list-all/model"

// Groups maps region -> status -> service -> results.
type Groups map[string]map[model.Status]map[string][]model.Result

// Summary aggregates the results of one run. It is not safe for concurrent
// use; a single consumer feeds it.
type Summary struct {
	counts  map[model.Status]int
	results []model.Result
	keys    map[string]bool
	groups  Groups
}
