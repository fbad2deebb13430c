package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/thirukguru/aws-list-all/model"
	"github.com/thirukguru/aws-list-all/service/catalog"
	"github.com/thirukguru/aws-list-all/service/flag"
	"github.com/thirukguru/aws-list-all/service/listing"
	"github.com/thirukguru/aws-list-all/service/output"
	"github.com/thirukguru/aws-list-all/service/settings"
	"github.com/thirukguru/aws-list-all/service/storage"
	"github.com/thirukguru/aws-list-all/shared/logs"
	"github.com/thirukguru/aws-list-all/shared/spinner"
	"github.com/thirukguru/aws-list-all/shared/tables"
)

func runShowCommand(args []string) error {
	flags, err := flag.NewService().ParseShow(args)
	if err != nil {
		return err
	}
	logs.Setup(0)
	raiseFileLimit()
	return showListings(os.Stdout, os.Stderr, flags)
}

// showListings prints every listing file. Unreadable files are reported and
// skipped; the first such failure is returned once all files were tried.
func showListings(w, errw io.Writer, flags model.ShowFlags) error {
	printer := listing.NewPrinter(flags.Verbose, flags.Query)

	var firstErr error
	for _, path := range flags.Files {
		l, err := listing.Load(path)
		if err == nil {
			err = printer.Print(w, l)
		}
		if err != nil {
			fmt.Fprintf(errw, "%s: %v\n", path, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func loadCatalog(configPath string) (catalog.Catalog, error) {
	cfg, err := settings.Load(configPath)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.NewService("", cfg.Overrides())
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return cat, nil
}

func runIntrospectCommand(args []string) error {
	flags, err := flag.NewService().ParseIntrospect(args)
	if err != nil {
		return err
	}
	logs.Setup(flags.Verbose)

	cat, err := loadCatalog(flags.ConfigPath)
	if err != nil {
		return err
	}
	return introspect(context.Background(), os.Stdout, cat, flags)
}

func introspect(ctx context.Context, w io.Writer, cat catalog.Catalog, flags model.IntrospectFlags) error {
	switch flags.Detail {
	case "list-services":
		for _, name := range cat.Services() {
			fmt.Fprintln(w, name)
		}
	case "list-service-regions":
		regions := map[string][]string{}
		for _, name := range cat.Services() {
			rs, err := cat.Regions(ctx, name)
			if err != nil {
				return err
			}
			regions[name] = rs
		}
		tables.RenderServiceRegionsTable(w, regions)
	case "list-operations":
		services := flags.Services
		if len(services) == 0 {
			services = cat.Services()
		}
		for _, name := range services {
			ops, err := cat.Operations(ctx, name)
			if err != nil {
				return err
			}
			for _, op := range ops {
				fmt.Fprintln(w, name, op)
			}
			if flags.Verbose == 0 {
				continue
			}
			required, err := cat.Required(ctx, name)
			if err != nil {
				return err
			}
			for _, op := range sortedKeys(required) {
				fmt.Fprintf(w, "%s %s (skipped, requires %s)\n", name, op, strings.Join(required[op], ", "))
			}
		}
	case "debug":
		for _, name := range cat.Services() {
			verbs, err := cat.Verbs(name)
			if err != nil {
				return err
			}
			for _, verb := range verbs {
				fmt.Fprintln(w, name, verb)
			}
		}
	default:
		return fmt.Errorf("unsupported introspect detail: %s", flags.Detail)
	}
	return nil
}

func runRecreateCachesCommand(args []string) error {
	flags, err := flag.NewService().ParseCaches(args)
	if err != nil {
		return err
	}
	logs.Setup(flags.Verbose)

	cat, err := loadCatalog(flags.ConfigPath)
	if err != nil {
		return err
	}

	spinner.StartSpinner("Discovering listing operations...")
	doc, err := cat.Refresh(context.Background(), "", flags.Parallel)
	if err == nil && flags.UpdatePackagedValues {
		spinner.UpdateSpinner("Writing packaged catalog...")
		err = (&catalog.Store{Path: flags.PackagedPath}).Save(doc)
	}
	spinner.StopSpinner()
	if err != nil {
		return fmt.Errorf("failed to recreate caches: %w", err)
	}

	ops := 0
	for _, e := range doc.Services {
		ops += len(e.Operations)
	}
	fmt.Printf("Cached %d listing operations of %d services\n", ops, len(doc.Services))
	return nil
}

func runHistoryCommand(args []string) error {
	flags, err := flag.NewService().ParseHistory(args)
	if err != nil {
		return err
	}
	logs.Setup(0)

	dbPath := flags.DBPath
	if dbPath == "" {
		cfg, err := settings.Load(flags.ConfigPath)
		if err != nil {
			return err
		}
		dbPath = cfg.DBPath
	}

	store, err := storage.NewService(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	return runHistory(context.Background(), os.Stdout, store, output.NewService(flags.Output), flags)
}

func runHistory(ctx context.Context, w io.Writer, store storage.Service, out output.Service, flags model.HistoryFlags) error {
	switch flags.Action {
	case "list":
		runs, err := store.GetRecentRuns(flags.AccountID, flags.Limit)
		if err != nil {
			return err
		}
		return out.RenderRuns(runs)
	case "show":
		run, err := store.GetRun(flags.Args[0])
		if err != nil {
			return err
		}
		results, err := store.ListResults(run.RunID, model.Status(flags.Status))
		if err != nil {
			return err
		}
		return out.RenderRunDetail(*run, results)
	case "diff":
		older, err := store.GetRun(flags.Args[0])
		if err != nil {
			return err
		}
		newer, err := store.GetRun(flags.Args[1])
		if err != nil {
			return err
		}
		cmp, err := store.GetRunComparison(older.RunID, newer.RunID)
		if err != nil {
			return err
		}
		return out.RenderComparison(cmp)
	case "trends":
		points, err := store.GetTrends(flags.AccountID, flags.Days)
		if err != nil {
			return err
		}
		if err := out.RenderTrends(points); err != nil {
			return err
		}
		if strings.TrimSpace(flags.ExportCSV) != "" {
			return exportTrendsCSV(flags.ExportCSV, points)
		}
		return nil
	case "purge":
		count, err := store.PurgeOlderThan(ctx, flags.Days)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Purged %d runs\n", count)
		return nil
	case "vacuum":
		return store.Vacuum(ctx)
	case "reindex":
		return store.Reindex(ctx)
	default:
		return fmt.Errorf("unsupported history command: %s", flags.Action)
	}
}

func exportTrendsCSV(path string, points []storage.TrendPoint) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	rows := [][]string{{"account_id", "date", "runs", "found", "not_found", "denied", "errors", "items"}}
	for _, p := range points {
		rows = append(rows, []string{
			p.AccountID, p.Date,
			strconv.Itoa(p.Runs), strconv.Itoa(p.Found), strconv.Itoa(p.NotFound),
			strconv.Itoa(p.Denied), strconv.Itoa(p.Errors), strconv.Itoa(p.Items),
		})
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
