package model

import (
	"fmt"
	"time"
)

// Status is the classified outcome of a single listing call.
type Status string

const (
	StatusFound        Status = "FOUND"
	StatusNotFound     Status = "NOT_FOUND"
	StatusAccessDenied Status = "ACCESS_DENIED"
	StatusError        Status = "ERROR"
)

// Statuses lists every status in report order.
var Statuses = []Status{StatusNotFound, StatusFound, StatusAccessDenied, StatusError}

// Marker returns the short console marker printed for the status.
func (s Status) Marker() string {
	switch s {
	case StatusFound:
		return "+++"
	case StatusNotFound:
		return "---"
	case StatusAccessDenied:
		return ">:|"
	default:
		return "!!!"
	}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusFound, StatusNotFound, StatusAccessDenied, StatusError:
		return true
	}
	return false
}

// Task is one listing call: an operation of a service in a region.
type Task struct {
	Service    string         `json:"service"`
	Region     string         `json:"region"`
	Operation  string         `json:"operation"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// Key identifies the task by its service, region and operation.
func (t Task) Key() string {
	return fmt.Sprintf("%s/%s/%s", t.Service, t.Region, t.Operation)
}

func (t Task) String() string {
	return fmt.Sprintf("%s %s %s", t.Service, t.Region, t.Operation)
}

// Result is the outcome of executing a Task.
// Payload is set only for StatusFound, Diagnostic only for
// StatusAccessDenied and StatusError.
type Result struct {
	Task       Task
	Status     Status
	Payload    map[string]any
	Diagnostic string
	ErrorCode  string
	Attempts   int
	Duration   time.Duration
}
