package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/browser"
	"github.com/thirukguru/aws-list-all/model"
	awsconfig "github.com/thirukguru/aws-list-all/service/aws_config"
	"github.com/thirukguru/aws-list-all/service/awsapi"
	"github.com/thirukguru/aws-list-all/service/catalog"
	"github.com/thirukguru/aws-list-all/service/enumerate"
	"github.com/thirukguru/aws-list-all/service/flag"
	"github.com/thirukguru/aws-list-all/service/listing"
	"github.com/thirukguru/aws-list-all/service/orchestrator"
	"github.com/thirukguru/aws-list-all/service/output"
	"github.com/thirukguru/aws-list-all/service/query"
	"github.com/thirukguru/aws-list-all/service/settings"
	"github.com/thirukguru/aws-list-all/service/storage"
	awssts "github.com/thirukguru/aws-list-all/service/sts"
	"github.com/thirukguru/aws-list-all/shared/banner"
	"github.com/thirukguru/aws-list-all/shared/console"
	htmloutput "github.com/thirukguru/aws-list-all/shared/html_output"
	"github.com/thirukguru/aws-list-all/shared/logs"
	"github.com/thirukguru/aws-list-all/shared/rlimit"
)

// sdkDebugVerbosity is the -v count at which SDK request logs are shown.
const sdkDebugVerbosity = 3

// openBrowser is a variable to allow replacing it in tests.
var openBrowser = browser.OpenFile

func runQueryCommand(args []string, html bool) error {
	cfg, err := settings.Load(flag.ConfigPath(args))
	if err != nil {
		return err
	}
	defaults := flag.DefaultQueryFlags()
	cfg.Apply(&defaults)

	flags, err := flag.NewService().ParseQuery(args, defaults, html)
	if err != nil {
		return err
	}
	logs.Setup(flags.Verbose)
	raiseFileLimit()

	if flags.Output != string(output.FormatJSON) {
		banner.DrawBannerTitle(os.Stdout)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	awsCfg, err := awsconfig.NewService(flags.Verbose >= sdkDebugVerbosity).GetAWSCfg(ctx, "", flags.Profile)
	if err != nil {
		return fmt.Errorf("%w: %v", query.ErrCredentials, err)
	}

	cat, err := catalog.NewService("", cfg.Overrides())
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	var storageService storage.Service
	if flags.Store {
		storageService, err = storage.NewService(flags.DBPath)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		defer storageService.Close()
	}

	provider := awsapi.NewService(awsCfg, awsapi.Options{Rate: flags.Rate})
	engine := query.NewService(provider, query.Options{
		Parallel:    flags.Parallel,
		Timeout:     flags.Timeout,
		MaxAttempts: flags.MaxAttempts,
	})

	orchestratorService := orchestrator.NewService(
		awssts.NewService(awsCfg),
		enumerate.NewService(cat),
		engine,
		listing.NewService(flags.Directory, flags.Profile),
		output.NewService(flags.Output),
		storageService,
		versionInfo(),
		os.Stdout,
		!flags.NoProgress && console.IsInteractive(os.Stderr),
	)

	run, err := orchestratorService.Orchestrate(ctx, flags)
	if err != nil {
		return err
	}
	if run.Interrupted {
		return fmt.Errorf("interrupted after %d completed calls: %w", run.Summary.Total(), context.Cause(ctx))
	}

	if html {
		return writeReport(os.Stderr, run, flags)
	}
	return nil
}

func writeReport(w io.Writer, run *orchestrator.Run, flags model.QueryFlags) error {
	data := htmloutput.BuildReportData(run.Summary, run.AccountID, flags.Profile)
	path, err := htmloutput.WriteHTMLReport(flags.Directory, flags.Report, data)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "HTML report written to %s\n", path)

	if flags.NoOpen {
		return nil
	}
	if err := openBrowser(path); err != nil {
		slog.Warn("failed to open report in browser", "path", path, "error", err)
	}
	return nil
}

func raiseFileLimit() {
	warning, err := rlimit.Raise()
	if err != nil {
		slog.Warn("failed to raise open file limit", "error", err)
		return
	}
	if warning != "" {
		slog.Warn(warning)
	}
}
