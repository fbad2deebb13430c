// Package listing stores one JSON file per query result and loads them
// back for display.
package listing

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/thirukguru/aws-list-all/model"
	"github.com/thirukguru/aws-list-all/shared/fileutil"
)

const defaultProfile = "default"

// NewService creates a sink writing listing files into dir.
func NewService(dir, profile string) Service {
	if profile == "" {
		profile = defaultProfile
	}
	return &service{dir: dir, profile: profile}
}

// FileName returns the listing file name of a task.
func FileName(task model.Task, profile string) string {
	if profile == "" {
		profile = defaultProfile
	}
	name := fmt.Sprintf("%s_%s_%s_%s.json", task.Service, task.Operation, task.Region, profile)
	return strings.NewReplacer("/", "-", string(os.PathSeparator), "-").Replace(name)
}

// FromResult converts a result into its listing form.
func FromResult(r model.Result, profile string) Listing {
	if profile == "" {
		profile = defaultProfile
	}
	return Listing{
		Service:    r.Task.Service,
		Region:     r.Task.Region,
		Operation:  r.Task.Operation,
		Profile:    profile,
		Status:     r.Status,
		ErrorCode:  r.ErrorCode,
		Diagnostic: r.Diagnostic,
		Parameters: r.Task.Parameters,
		Attempts:   r.Attempts,
		DurationMS: r.Duration.Milliseconds(),
		Response:   r.Payload,
	}
}

// Result converts the listing back into a query result.
func (l Listing) Result() model.Result {
	return model.Result{
		Task: model.Task{
			Service:    l.Service,
			Region:     l.Region,
			Operation:  l.Operation,
			Parameters: l.Parameters,
		},
		Status:     l.Status,
		Payload:    l.Response,
		Diagnostic: l.Diagnostic,
		ErrorCode:  l.ErrorCode,
		Attempts:   l.Attempts,
		Duration:   time.Duration(l.DurationMS) * time.Millisecond,
	}
}

func (s *service) Persist(r model.Result) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create listing directory: %w", err)
	}
	data, err := json.MarshalIndent(FromResult(r, s.profile), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode listing for %s: %w", r.Task.Key(), err)
	}
	path := filepath.Join(s.dir, FileName(r.Task, s.profile))
	if err := fileutil.WriteFileAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// Load reads a listing file.
func Load(path string) (Listing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Listing{}, fmt.Errorf("failed to read listing: %w", err)
	}
	var l Listing
	if err := json.Unmarshal(data, &l); err != nil {
		return Listing{}, fmt.Errorf("failed to parse listing %s: %w", path, err)
	}
	if !l.Status.Valid() {
		return Listing{}, fmt.Errorf("listing %s has unknown status %q", path, l.Status)
	}
	return l, nil
}
