/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"

	"github.com/labgrid-fcefyn/labnet/pkg/errors"
	"github.com/labgrid-fcefyn/labnet/pkg/logging"
)

const (
	name           = "labnet"
	versionDefault = "dev"

	envMetricsFile = "LABNET_METRICS_FILE"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

type runIDKey struct{}

// Execute runs the labnet command line and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().Run(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "labnet - lab topology resolver and places renderer",
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Description: `Tooling over the lab topology document (labnet.yaml):

resolve - maps a device or instance name to its labgrid target file.
places  - renders the coordinator places inventory for one lab.
lint    - reports dangling, duplicate and shadowed aliases.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars(logging.EnvLogLevel),
			},
			&cli.StringFlag{
				Name:      "metrics-file",
				Usage:     "Write Prometheus metrics in textfile format to this path on exit",
				Sources:   cli.EnvVars(envMetricsFile),
				TakesFile: true,
			},
		},
		Before: initRun,
		After:  writeMetrics,
		Commands: []*cli.Command{
			resolveCmd(),
			placesCmd(),
			lintCmd(),
		},
	}
}

// initRun configures slog once flags are parsed so --log-level applies
// before any command executes, and tags the run with a fresh id.
func initRun(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	logLevel := cmd.String("log-level")
	logging.SetDefaultStructuredLoggerWithLevel(name, version, logLevel)

	runID := uuid.NewString()
	slog.SetDefault(slog.Default().With("run_id", runID))
	slog.Debug("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"logLevel", logLevel)

	return context.WithValue(ctx, runIDKey{}, runID), nil
}

func runIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

func writeMetrics(_ context.Context, cmd *cli.Command) error {
	path := cmd.String("metrics-file")
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal, "failed to write metrics file", err,
			map[string]any{"path": path})
	}
	slog.Debug("metrics written", "path", path)
	return nil
}
