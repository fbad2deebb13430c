package storage

import (
	"context"
	"time"

	"github.com/thirukguru/aws-list-all/model"
)

// Service defines persistence and history queries of query runs.
type Service interface {
	SaveRun(ctx context.Context, input SaveRunInput) (int64, error)
	GetRecentRuns(accountID string, limit int) ([]RunSummary, error)
	GetRun(ref string) (*RunSummary, error)
	ListResults(runID int64, status model.Status) ([]ResultRecord, error)
	GetRunComparison(runID1, runID2 int64) (*RunComparison, error)
	GetTrends(accountID string, days int) ([]TrendPoint, error)
	Vacuum(ctx context.Context) error
	Reindex(ctx context.Context) error
	PurgeOlderThan(ctx context.Context, days int) (int64, error)
	Close() error
}

// SaveRunInput is the payload saved for a completed run.
type SaveRunInput struct {
	RunUUID     string
	AccountID   string
	Profile     string
	DurationSec int64
	Version     string
	FlagsJSON   string
	Results     []model.Result
}

// RunSummary provides compact run metadata.
type RunSummary struct {
	RunID         int64
	RunUUID       string
	AccountID     string
	Profile       string
	RunTimestamp  time.Time
	DurationSec   int64
	TotalTasks    int
	FoundCount    int
	NotFoundCount int
	DeniedCount   int
	ErrorCount    int
	Version       string
}

// ResultRecord is a stored result of one task.
type ResultRecord struct {
	Service    string
	Region     string
	Operation  string
	Status     model.Status
	ErrorCode  string
	Diagnostic string
	ItemCount  int
	Attempts   int
	DurationMS int64
	Payload    string
}

// Key identifies the record's task.
func (r ResultRecord) Key() string {
	return model.Task{Service: r.Service, Region: r.Region, Operation: r.Operation}.Key()
}

// RunComparison holds the listings that started or stopped finding
// resources between two runs.
type RunComparison struct {
	RunID1     int64
	RunID2     int64
	NewFound   int
	Gone       int
	Persistent int
	NewKeys    []string
	GoneKeys   []string
}

// TrendPoint is a daily aggregate of run outcomes.
type TrendPoint struct {
	AccountID string `json:"account_id"`
	Date      string `json:"date"`
	Runs      int    `json:"runs"`
	Found     int    `json:"found"`
	NotFound  int    `json:"not_found"`
	Denied    int    `json:"denied"`
	Errors    int    `json:"errors"`
	Items     int    `json:"items"`
}
