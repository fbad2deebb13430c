// Package main is the entry point for the aws-list-all application.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"github.com/thirukguru/aws-list-all/model"
	"github.com/thirukguru/aws-list-all/service/flag"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = `Usage: aws-list-all <command> [flags]

List all resources in an AWS account, all regions, all services.

Commands:
  query            Query AWS and save a listing file per call
  show             Print listing files saved by query
  introspect       Print service, region and operation discovery details
  print-html       Query AWS and render the results as an HTML report
  recreate-caches  Rediscover listing operations and regions
  history          Inspect runs stored with query --store
  version          Print version information

Run "aws-list-all <command> --help" for the flags of a command.
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		if !errors.Is(err, flag.ErrUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return flag.ErrUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "query":
		return runQueryCommand(rest, false)
	case "print-html":
		return runQueryCommand(rest, true)
	case "show":
		return runShowCommand(rest)
	case "introspect":
		return runIntrospectCommand(rest)
	case "recreate-caches":
		return runRecreateCachesCommand(rest)
	case "history":
		return runHistoryCommand(rest)
	case "version", "--version":
		printVersion(os.Stdout, versionInfo())
		return nil
	case "help", "-h", "--help":
		fmt.Fprint(os.Stdout, usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func versionInfo() model.VersionInfo {
	return model.VersionInfo{Version: version, Commit: commit, Date: date}
}

func printVersion(w io.Writer, v model.VersionInfo) {
	fmt.Fprintf(w, "aws-list-all version %s\n", v.Version)
	fmt.Fprintf(w, "commit: %s\n", v.Commit)
	fmt.Fprintf(w, "built at: %s\n", v.Date)
}
