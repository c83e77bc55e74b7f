/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/labgrid-fcefyn/labnet/pkg/config"
	"github.com/labgrid-fcefyn/labnet/pkg/errors"
	"github.com/labgrid-fcefyn/labnet/pkg/header"
	"github.com/labgrid-fcefyn/labnet/pkg/resolver"
	"github.com/labgrid-fcefyn/labnet/pkg/serializer"
	"github.com/labgrid-fcefyn/labnet/pkg/topology"
)

func resolveCmd() *cli.Command {
	return &cli.Command{
		Name:                  "resolve",
		EnableShellCompletion: true,
		Usage:                 "Print the target file for a device or instance name",
		ArgsUsage:             "<device_name>",
		Description: `Resolve a canonical device name or a lab instance alias to the
labgrid target file that describes it, relative to the openwrt-tests
checkout:

  labnet resolve belkin_rt3200_1
  targets/linksys_e8450.yaml

Device names are matched first. Instance aliases are then searched lab by
lab in document order; the first lab listing the alias wins.

With --details the full resolution (kind, base device, lab) is written in
the selected --format instead of the bare path.`,
		Flags: []cli.Flag{
			labnetFlag(),
			&cli.BoolFlag{
				Name:  "details",
				Usage: "Print the full resolution instead of the path",
			},
			formatFlag(string(serializer.FormatYAML)),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return errors.New(errors.ErrCodeInvalidRequest,
					"usage: labnet resolve <device_name>")
			}
			identifier := cmd.Args().First()

			cfg := config.NewConfig(config.WithLabnetPath(cmd.String("labnet")))
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

			res, err := resolver.Resolve(topo, identifier)
			if err != nil {
				return err
			}

			slog.Debug("resolved",
				"identifier", identifier,
				"kind", res.Kind,
				"device", res.Device,
				"path", res.Path)

			out := cmd.Root().Writer
			if !cmd.Bool("details") {
				_, err = fmt.Fprintln(out, res.Path)
				return err
			}

			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			return writeDocument(ctx, cmd, outFormat, header.KindResolution, res)
		},
	}
}
