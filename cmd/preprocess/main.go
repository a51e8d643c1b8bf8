package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/nba-stats-preprocess/internal/app"
	"github.com/riskibarqy/nba-stats-preprocess/internal/config"
	"github.com/riskibarqy/nba-stats-preprocess/internal/platform/logging"
	"github.com/riskibarqy/nba-stats-preprocess/internal/usecase"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	unpack, err := parseUnpack(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		printUsage(stderr)
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return exitUsage
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := app.Run(ctx, cfg, logger, usecase.RunOptions{Unpack: unpack})
	if err != nil {
		logger.Error("preprocess failed", "error", err)
		fmt.Fprintln(stderr, diagnostic(err))
		return exitFailure
	}

	for _, exported := range report.Exports {
		fmt.Fprintf(stderr, "Output generated successfully to: %s\n", exported.Path)
	}
	return exitOK
}

// parseUnpack reads the single optional positional argument.
func parseUnpack(args []string) (bool, error) {
	switch len(args) {
	case 0:
		return false, nil
	case 1:
		unpack, err := strconv.ParseBool(strings.TrimSpace(args[0]))
		if err != nil {
			return false, fmt.Errorf("invalid unpack flag %q: want 1, 0, true or false", args[0])
		}
		return unpack, nil
	default:
		return false, fmt.Errorf("expected at most one argument, got %d", len(args))
	}
}

func diagnostic(err error) string {
	switch {
	case crerr.Is(err, usecase.ErrOutputDirExists):
		return "Unpacking is designed to work with an empty output folder, please remove the folder before proceeding."
	case crerr.Is(err, usecase.ErrArchiveNotFound):
		return "Make sure to download the dataset first."
	default:
		return fmt.Sprintf("preprocess failed: %v", err)
	}
}

func printUsage(w io.Writer) {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(w, "usage: %s [unpack]\n", name)
	fmt.Fprintln(w, "examples:")
	fmt.Fprintf(w, "  %s       process the already extracted csv files\n", name)
	fmt.Fprintf(w, "  %s 1     extract the dataset archive first\n", name)
}
