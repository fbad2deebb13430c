package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/thirukguru/aws-list-all/model"
	"github.com/thirukguru/aws-list-all/shared/resource"
	_ "modernc.org/sqlite"
)

const defaultDBPath = "~/.aws-list-all/history.db"

// ErrRunNotFound is returned when a run reference matches no stored run.
var ErrRunNotFound = errors.New("run not found")

// NewService creates a SQLite-backed storage service.
func NewService(dbPath string) (Service, error) {
	resolved, err := resolvePath(dbPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schemaV1); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &service{db: db, dbPath: resolved}, nil
}

type service struct {
	db     *sql.DB
	dbPath string
}

func resolvePath(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		p = defaultDBPath
	}
	if strings.HasPrefix(p, "~/") || p == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home dir: %w", err)
		}
		if p == "~" {
			p = home
		} else {
			p = filepath.Join(home, p[2:])
		}
	}
	return filepath.Clean(p), nil
}

func itemCount(payload map[string]any) int {
	n := 0
	for _, c := range resource.Counts(payload) {
		n += c
	}
	return n
}

func (s *service) SaveRun(ctx context.Context, input SaveRunInput) (runID int64, err error) {
	if input.AccountID == "" {
		return 0, errors.New("account id is required")
	}
	if input.RunUUID == "" {
		input.RunUUID = uuid.NewString()
	}

	counts := map[model.Status]int{}
	items := 0
	for _, r := range input.Results {
		counts[r.Status]++
		items += itemCount(r.Payload)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (
			run_uuid, account_id, run_profile, run_duration, total_tasks,
			found_count, not_found_count, denied_count, error_count, item_count,
			cli_version, run_flags
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, input.RunUUID, input.AccountID, input.Profile, input.DurationSec, len(input.Results),
		counts[model.StatusFound], counts[model.StatusNotFound], counts[model.StatusAccessDenied], counts[model.StatusError], items,
		input.Version, input.FlagsJSON)
	if err != nil {
		return 0, err
	}
	runID, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if err = s.saveResultsTx(ctx, tx, runID, input.Results); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

func (s *service) saveResultsTx(ctx context.Context, tx *sql.Tx, runID int64, results []model.Result) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO results (
			run_id, service, region, operation, status, error_code, diagnostic,
			item_count, attempts, duration_ms, payload
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, service, region, operation) DO NOTHING
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range results {
		var payload sql.NullString
		if r.Payload != nil {
			b, err := json.Marshal(r.Payload)
			if err != nil {
				return fmt.Errorf("failed to encode payload of %s: %w", r.Task.Key(), err)
			}
			payload = sql.NullString{String: string(b), Valid: true}
		}
		_, err := stmt.ExecContext(ctx,
			runID, r.Task.Service, r.Task.Region, r.Task.Operation, string(r.Status), r.ErrorCode, r.Diagnostic,
			itemCount(r.Payload), r.Attempts, r.Duration.Milliseconds(), payload)
		if err != nil {
			return err
		}
	}
	return nil
}

const runColumns = `
	run_id, run_uuid, account_id, COALESCE(run_profile, ''), run_timestamp, COALESCE(run_duration, 0),
	total_tasks, found_count, not_found_count, denied_count, error_count, COALESCE(cli_version, '')
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (RunSummary, error) {
	var r RunSummary
	err := row.Scan(&r.RunID, &r.RunUUID, &r.AccountID, &r.Profile, &r.RunTimestamp, &r.DurationSec,
		&r.TotalTasks, &r.FoundCount, &r.NotFoundCount, &r.DeniedCount, &r.ErrorCount, &r.Version)
	return r, err
}

func (s *service) GetRecentRuns(accountID string, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	query := "SELECT " + runColumns + " FROM runs"
	args := []any{}
	if accountID != "" {
		query += " WHERE account_id=?"
		args = append(args, accountID)
	}
	query += " ORDER BY run_timestamp DESC, run_id DESC LIMIT ?"
	args = append(args, limit)
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []RunSummary{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun looks a run up by numeric id, full uuid or unique uuid prefix.
func (s *service) GetRun(ref string) (*RunSummary, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrRunNotFound
	}

	var rows *sql.Rows
	var err error
	if id, convErr := strconv.ParseInt(ref, 10, 64); convErr == nil {
		rows, err = s.db.Query("SELECT "+runColumns+" FROM runs WHERE run_id=? OR run_uuid=?", id, ref)
	} else {
		rows, err = s.db.Query("SELECT "+runColumns+" FROM runs WHERE run_uuid LIKE ? LIMIT 2", ref+"%")
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var found []RunSummary
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		found = append(found, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, ref)
	case 1:
		return &found[0], nil
	default:
		return nil, fmt.Errorf("run reference %q is ambiguous", ref)
	}
}

// ListResults returns the stored results of a run, optionally limited to
// one status.
func (s *service) ListResults(runID int64, status model.Status) ([]ResultRecord, error) {
	query := `
		SELECT service, region, operation, status, COALESCE(error_code, ''), COALESCE(diagnostic, ''),
			item_count, attempts, duration_ms, COALESCE(payload, '')
		FROM results WHERE run_id=?
	`
	args := []any{runID}
	if status != "" {
		query += " AND status=?"
		args = append(args, string(status))
	}
	query += " ORDER BY service, region, operation"
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ResultRecord{}
	for rows.Next() {
		var r ResultRecord
		var st string
		if err := rows.Scan(&r.Service, &r.Region, &r.Operation, &st, &r.ErrorCode, &r.Diagnostic,
			&r.ItemCount, &r.Attempts, &r.DurationMS, &r.Payload); err != nil {
			return nil, err
		}
		r.Status = model.Status(st)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *service) GetRunComparison(runID1, runID2 int64) (*RunComparison, error) {
	first, err := s.foundKeysByRun(runID1)
	if err != nil {
		return nil, err
	}
	second, err := s.foundKeysByRun(runID2)
	if err != nil {
		return nil, err
	}

	cmp := &RunComparison{RunID1: runID1, RunID2: runID2}
	for k := range second {
		if !first[k] {
			cmp.NewKeys = append(cmp.NewKeys, k)
		} else {
			cmp.Persistent++
		}
	}
	for k := range first {
		if !second[k] {
			cmp.GoneKeys = append(cmp.GoneKeys, k)
		}
	}
	sort.Strings(cmp.NewKeys)
	sort.Strings(cmp.GoneKeys)
	cmp.NewFound = len(cmp.NewKeys)
	cmp.Gone = len(cmp.GoneKeys)
	return cmp, nil
}

func (s *service) foundKeysByRun(runID int64) (map[string]bool, error) {
	rows, err := s.db.Query(`SELECT service, region, operation FROM results WHERE run_id=? AND status=?`, runID, string(model.StatusFound))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]bool{}
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.Service, &t.Region, &t.Operation); err != nil {
			return nil, err
		}
		out[t.Key()] = true
	}
	return out, rows.Err()
}

func (s *service) GetTrends(accountID string, days int) ([]TrendPoint, error) {
	if days <= 0 {
		days = 30
	}
	query := `
		SELECT
			account_id,
			DATE(run_timestamp) as day,
			COUNT(*),
			MAX(found_count),
			MAX(not_found_count),
			MAX(denied_count),
			MAX(error_count),
			MAX(item_count)
		FROM runs
		WHERE run_timestamp >= DATETIME('now', ?)
	`
	args := []any{fmt.Sprintf("-%d day", days)}
	if accountID != "" {
		query += " AND account_id=?"
		args = append(args, accountID)
	}
	query += " GROUP BY account_id, DATE(run_timestamp) ORDER BY day ASC, account_id ASC"
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := []TrendPoint{}
	for rows.Next() {
		var p TrendPoint
		if err := rows.Scan(&p.AccountID, &p.Date, &p.Runs, &p.Found, &p.NotFound, &p.Denied, &p.Errors, &p.Items); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (s *service) Vacuum(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "VACUUM")
	return err
}

func (s *service) Reindex(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "REINDEX")
	return err
}

func (s *service) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, errors.New("days must be > 0")
	}
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM runs WHERE run_timestamp < DATETIME('now', ?)
	`, fmt.Sprintf("-%d day", days))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *service) Close() error {
	return s.db.Close()
}
