package listing

import (
	"io"

	"github.com/thirukguru/aws-list-all/model"
)

// Listing is the on-disk form of one query result.
type Listing struct {
	Service    string         `json:"service"`
	Region     string         `json:"region"`
	Operation  string         `json:"operation"`
	Profile    string         `json:"profile"`
	Status     model.Status   `json:"status"`
	ErrorCode  string         `json:"error_code,omitempty"`
	Diagnostic string         `json:"diagnostic,omitempty"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Attempts   int            `json:"attempts,omitempty"`
	DurationMS int64          `json:"duration_ms,omitempty"`
	Response   map[string]any `json:"response,omitempty"`
}

// Service persists results as listing files and reads them back.
type Service interface {
	// Persist writes the result to its listing file and returns the path.
	Persist(result model.Result) (string, error)
}

// Printer renders loaded listings for the show command.
type Printer interface {
	Print(w io.Writer, l Listing) error
}

type service struct {
	dir     string
	profile string
}

type printer struct {
	verbose int
	query   string
}
