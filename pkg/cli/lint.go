/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/labgrid-fcefyn/labnet/pkg/config"
	"github.com/labgrid-fcefyn/labnet/pkg/defaults"
	"github.com/labgrid-fcefyn/labnet/pkg/errors"
	"github.com/labgrid-fcefyn/labnet/pkg/header"
	"github.com/labgrid-fcefyn/labnet/pkg/lint"
	"github.com/labgrid-fcefyn/labnet/pkg/serializer"
	"github.com/labgrid-fcefyn/labnet/pkg/topology"
)

func lintCmd() *cli.Command {
	return &cli.Command{
		Name:                  "lint",
		EnableShellCompletion: true,
		Usage:                 "Check labnet.yaml for alias and target file problems",
		Description: `Report topology entries that resolve surprisingly or not at all:

  dangling_alias   (error)    alias whose base device is not in devices
  duplicate_alias  (warning)  alias listed more than once; the first entry wins
  shadowed_alias   (warning)  alias equal to a device name; the device wins
  missing_target   (error)    device without targets/<stem>.yaml (needs --targets-dir)

Exits non-zero when any error-severity finding is reported.`,
		Flags: []cli.Flag{
			labnetFlag(),
			&cli.StringFlag{
				Name:      "targets-dir",
				Usage:     "openwrt-tests checkout whose targets/ directory is checked for each device",
				TakesFile: true,
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Value: defaults.LintConcurrency,
				Usage: "Maximum parallel target file checks",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: defaults.LintTimeout,
				Usage: "Abort the run after this long",
			},
			formatFlag(formatText),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var outFormat serializer.Format
			if !wantsText(cmd) {
				f, err := parseOutputFormat(cmd)
				if err != nil {
					return err
				}
				outFormat = f
			}

			cfg := config.NewConfig(
				config.WithLabnetPath(cmd.String("labnet")),
				config.WithRepoDir(cmd.String("targets-dir")),
			)
			if cfg.LabnetPath == "" {
				if root, ok := config.DetectFromEnvironment(); ok {
					cfg.ApplyRoot(root)
				}
			}
			if err := cfg.ValidateForResolve(); err != nil {
				return err
			}

			topo, err := topology.Load(cfg.LabnetPath)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
			defer cancel()

			rep, err := lint.Run(ctx, topo, lint.Options{
				RepoDir:     cfg.RepoDir,
				Concurrency: cmd.Int("concurrency"),
			})
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, "lint run failed", err)
			}

			if outFormat == "" {
				err = printLintReport(cmd.Root().Writer, rep)
			} else {
				err = writeDocument(ctx, cmd, outFormat, header.KindLintReport, rep)
			}
			if err != nil {
				return err
			}

			if rep.HasErrors() {
				return errors.NewWithContext(errors.ErrCodeInvalidRequest,
					fmt.Sprintf("%s has %d lint error(s)", rep.Source, rep.Count(lint.SeverityError)),
					map[string]any{"source": rep.Source})
			}
			slog.Debug("lint passed", "source", rep.Source, "warnings", rep.Count(lint.SeverityWarning))
			return nil
		},
	}
}

func printLintReport(w io.Writer, rep *lint.Report) error {
	for _, f := range rep.Findings {
		if _, err := fmt.Fprintf(w, "%-7s %-16s %s\n", f.Severity, f.Rule, f.Message); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s: %d lab(s), %d device(s), %d error(s), %d warning(s)\n",
		rep.Source, rep.Labs, rep.Devices,
		rep.Count(lint.SeverityError), rep.Count(lint.SeverityWarning))
	return err
}
