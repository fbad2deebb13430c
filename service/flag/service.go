// Package flag parses the command line of every subcommand with its own
// pflag set.
package flag

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/spf13/pflag"
	"github.com/thirukguru/aws-list-all/model"
	"github.com/thirukguru/aws-list-all/service/catalog"
	htmloutput "github.com/thirukguru/aws-list-all/shared/html_output"
)

// ErrUsage is returned after the subcommand's help was printed because
// required arguments are missing.
var ErrUsage = errors.New("missing required arguments")

// IntrospectDetails lists the accepted introspect arguments.
var IntrospectDetails = []string{"list-services", "list-service-regions", "list-operations", "debug"}

// HistoryActions lists the accepted history arguments.
var HistoryActions = []string{"list", "show", "diff", "trends", "purge", "vacuum", "reindex"}

// NewService creates a new flag service printing help to stderr.
func NewService() Service {
	return &service{out: os.Stderr}
}

// DefaultQueryFlags returns the built-in query defaults.
func DefaultQueryFlags() model.QueryFlags {
	return model.QueryFlags{
		Parallel:    32,
		Directory:   ".",
		Timeout:     60 * time.Second,
		MaxAttempts: 6,
		Output:      "table",
		Report:      htmloutput.DefaultReportName,
	}
}

// ConfigPath extracts --config from args without validating anything else,
// so settings can seed the defaults of the real parse.
func ConfigPath(args []string) string {
	fs := pflag.NewFlagSet("config", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	path := fs.String("config", "", "")
	_ = fs.Parse(args)
	return *path
}

func (s *service) newFlagSet(name, usage string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(s.out)
	fs.SortFlags = false
	fs.Usage = func() {
		fmt.Fprintf(s.out, "Usage: aws-list-all %s\n\n%s", usage, fs.FlagUsages())
	}
	return fs
}

func (s *service) ParseQuery(args []string, defaults model.QueryFlags, html bool) (model.QueryFlags, error) {
	name := "query"
	if html {
		name = "print-html"
	}
	fs := s.newFlagSet(name, name+" [flags]")
	f := defaults

	fs.StringSliceVarP(&f.Services, "service", "s", nil, "Restrict querying to the given service (repeatable)")
	fs.StringSliceVarP(&f.Regions, "region", "r", nil, "Restrict querying to the given region (repeatable)")
	fs.StringSliceVarP(&f.Operations, "operation", "o", nil, "Restrict querying to the given operation (repeatable)")
	fs.IntVarP(&f.Parallel, "parallel", "p", f.Parallel, "Number of concurrent requests")
	fs.StringVarP(&f.Directory, "directory", "d", f.Directory, "Directory to save listing files to")
	fs.CountVarP(&f.Verbose, "verbose", "v", "Print more information, repeat for more")
	fs.StringVarP(&f.Profile, "profile", "c", f.Profile, "AWS profile to use")
	fs.DurationVar(&f.Timeout, "timeout", f.Timeout, "Deadline of a single listing call")
	fs.IntVar(&f.MaxAttempts, "max-attempts", f.MaxAttempts, "Attempts per call for throttled or transient failures")
	fs.Float64Var(&f.Rate, "rate", f.Rate, "Requests per second per region (0 disables limiting)")
	fs.StringVar(&f.Output, "output", f.Output, "Summary format (table or json)")
	fs.BoolVar(&f.NoProgress, "no-progress", false, "Disable the progress bar")
	fs.BoolVar(&f.Store, "store", false, "Persist the run in the local SQLite history")
	fs.StringVar(&f.DBPath, "db-path", f.DBPath, "Custom SQLite database path (default ~/.aws-list-all/history.db)")
	fs.StringVar(&f.ConfigPath, "config", "", "Settings file (default ~/.aws-list-all.yaml)")
	if html {
		fs.StringVar(&f.Report, "report", f.Report, "File name of the HTML report inside the directory")
		fs.BoolVar(&f.NoOpen, "no-open", false, "Do not open the report in a browser")
	}

	if err := fs.Parse(args); err != nil {
		return model.QueryFlags{}, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return model.QueryFlags{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if err := validateQuery(f); err != nil {
		return model.QueryFlags{}, err
	}
	return f, nil
}

func validateQuery(f model.QueryFlags) error {
	switch {
	case f.Parallel < 1:
		return fmt.Errorf("--parallel must be at least 1, got %d", f.Parallel)
	case f.MaxAttempts < 1:
		return fmt.Errorf("--max-attempts must be at least 1, got %d", f.MaxAttempts)
	case f.Timeout <= 0:
		return fmt.Errorf("--timeout must be positive, got %s", f.Timeout)
	case f.Rate < 0:
		return fmt.Errorf("--rate must not be negative, got %g", f.Rate)
	case f.Output != "table" && f.Output != "json":
		return fmt.Errorf("unsupported output format %q (table or json)", f.Output)
	}
	return nil
}

func (s *service) ParseShow(args []string) (model.ShowFlags, error) {
	fs := s.newFlagSet("show", "show [flags] listingfile...")
	var f model.ShowFlags
	fs.CountVarP(&f.Verbose, "verbose", "v", "Print resource identifiers, repeat to include empty listings")
	fs.StringVar(&f.Query, "query", "", "jq expression applied to each FOUND response")

	if err := fs.Parse(args); err != nil {
		return model.ShowFlags{}, err
	}
	f.Files = fs.Args()
	if len(f.Files) == 0 {
		fs.Usage()
		return model.ShowFlags{}, ErrUsage
	}
	return f, nil
}

func (s *service) ParseIntrospect(args []string) (model.IntrospectFlags, error) {
	fs := s.newFlagSet("introspect", "introspect <list-services|list-service-regions|list-operations|debug> [flags]")
	var f model.IntrospectFlags
	fs.StringSliceVarP(&f.Services, "service", "s", nil, "Restrict list-operations to the given service (repeatable)")
	fs.CountVarP(&f.Verbose, "verbose", "v", "Print more information")
	fs.StringVar(&f.ConfigPath, "config", "", "Settings file (default ~/.aws-list-all.yaml)")

	if err := fs.Parse(args); err != nil {
		return model.IntrospectFlags{}, err
	}
	if fs.NArg() != 1 || !slices.Contains(IntrospectDetails, fs.Arg(0)) {
		fs.Usage()
		return model.IntrospectFlags{}, ErrUsage
	}
	f.Detail = fs.Arg(0)
	return f, nil
}

func (s *service) ParseCaches(args []string) (model.CacheFlags, error) {
	fs := s.newFlagSet("recreate-caches", "recreate-caches [flags]")
	f := model.CacheFlags{Parallel: 32}
	fs.BoolVar(&f.UpdatePackagedValues, "update-packaged-values", false, "Also rewrite the packaged catalog")
	fs.StringVar(&f.PackagedPath, "packaged-path", catalog.PackagedPath, "Packaged catalog file to rewrite")
	fs.IntVarP(&f.Parallel, "parallel", "p", f.Parallel, "Number of concurrent probes")
	fs.CountVarP(&f.Verbose, "verbose", "v", "Print more information")
	fs.StringVar(&f.ConfigPath, "config", "", "Settings file (default ~/.aws-list-all.yaml)")

	if err := fs.Parse(args); err != nil {
		return model.CacheFlags{}, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return model.CacheFlags{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if f.Parallel < 1 {
		return model.CacheFlags{}, fmt.Errorf("--parallel must be at least 1, got %d", f.Parallel)
	}
	return f, nil
}

func (s *service) ParseHistory(args []string) (model.HistoryFlags, error) {
	fs := s.newFlagSet("history", "history <list|show <run>|diff <run> <run>|trends|purge|vacuum|reindex> [flags]")
	f := model.HistoryFlags{Limit: 20, Days: 30, Output: "table"}
	fs.StringVar(&f.DBPath, "db-path", "", "SQLite database path")
	fs.StringVar(&f.AccountID, "account-id", "", "AWS account ID filter")
	fs.IntVar(&f.Limit, "limit", f.Limit, "Number of runs to list")
	fs.IntVar(&f.Days, "days", f.Days, "Trend window, or purge runs older than this many days")
	fs.StringVar(&f.Status, "status", "", "Only show results with this status")
	fs.StringVar(&f.Output, "output", f.Output, "Output format (table or json)")
	fs.StringVar(&f.ExportCSV, "export-csv", "", "Export trends as CSV to this file")
	fs.StringVar(&f.ConfigPath, "config", "", "Settings file (default ~/.aws-list-all.yaml)")

	if err := fs.Parse(args); err != nil {
		return model.HistoryFlags{}, err
	}
	rest := fs.Args()
	if len(rest) == 0 || !slices.Contains(HistoryActions, rest[0]) {
		fs.Usage()
		return model.HistoryFlags{}, ErrUsage
	}
	f.Action, f.Args = rest[0], rest[1:]

	want := map[string]int{"show": 1, "diff": 2}[f.Action]
	if len(f.Args) != want {
		fs.Usage()
		return model.HistoryFlags{}, ErrUsage
	}
	if f.Status != "" && !model.Status(f.Status).Valid() {
		return model.HistoryFlags{}, fmt.Errorf("unknown status %q", f.Status)
	}
	if f.Output != "table" && f.Output != "json" {
		return model.HistoryFlags{}, fmt.Errorf("unsupported output format %q (table or json)", f.Output)
	}
	return f, nil
}
