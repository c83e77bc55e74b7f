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
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/labgrid-fcefyn/labnet/pkg/config"
	"github.com/labgrid-fcefyn/labnet/pkg/defaults"
	"github.com/labgrid-fcefyn/labnet/pkg/errors"
	"github.com/labgrid-fcefyn/labnet/pkg/header"
	"github.com/labgrid-fcefyn/labnet/pkg/render"
	"github.com/labgrid-fcefyn/labnet/pkg/report"
	"github.com/labgrid-fcefyn/labnet/pkg/serializer"
	"github.com/labgrid-fcefyn/labnet/pkg/topology"
)

func placesCmd() *cli.Command {
	return &cli.Command{
		Name:                  "places",
		EnableShellCompletion: true,
		Usage:                 "Render the coordinator places inventory for a lab",
		Description: `Render places.yaml for the labgrid coordinator from labnet.yaml and
the coordinator role's template, then list the generated places.

When --labnet or --template is omitted, an openwrt-tests checkout is
looked for in ~/Documents/openwrt-tests, ~/openwrt-tests, the current
directory and ../openwrt-tests.

Examples:

  labnet places
  labnet places --lab labgrid-fcefyn --output /tmp/places.yaml
  labnet places --labnet labnet.yaml --template places.yaml.tmpl --format json

The place listing is a line scan of the rendered output. Use --structural
to count one place per instance alias from the topology instead.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "lab",
				Value:   defaults.Lab,
				Usage:   "Lab to render",
				Sources: cli.EnvVars(envLab),
			},
			labnetFlag(),
			&cli.StringFlag{
				Name:      "template",
				Usage:     "Path to the places template (default: " + defaults.PlacesTemplate + " in the checkout)",
				Sources:   cli.EnvVars(envTemplate),
				TakesFile: true,
			},
			&cli.StringFlag{
				Name:      "output",
				Aliases:   []string{"o"},
				Usage:     "Output path (default: ~/" + defaults.CoordinatorDir + "/" + defaults.PlacesFile + ")",
				Sources:   cli.EnvVars(envOutput),
				TakesFile: true,
			},
			&cli.StringFlag{
				Name: "engine",
				Usage: fmt.Sprintf("Template engine (supported values: %s; default: by template extension)",
					strings.Join(render.SupportedEngines(), ", ")),
			},
			&cli.BoolFlag{
				Name:  "structural",
				Usage: "List places from the topology instead of scanning the rendered output",
			},
			formatFlag(formatText),
		},
		Action: runPlaces,
	}
}

func runPlaces(ctx context.Context, cmd *cli.Command) error {
	var outFormat serializer.Format
	if !wantsText(cmd) {
		f, err := parseOutputFormat(cmd)
		if err != nil {
			return err
		}
		outFormat = f
	}

	var engine render.Engine
	if name := cmd.String("engine"); name != "" {
		e, err := render.ParseEngine(name)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRequest, "invalid --engine", err)
		}
		engine = e
	}

	cfg := config.NewConfig(
		config.WithLab(cmd.String("lab")),
		config.WithLabnetPath(cmd.String("labnet")),
		config.WithTemplatePath(cmd.String("template")),
		config.WithOutputPath(cmd.String("output")),
	)
	applyDetectedRoot(cfg)
	if cfg.OutputPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, "failed to determine home directory", err)
		}
		cfg.OutputPath = config.DefaultOutputPath(home)
	}
	if err := cfg.ValidateForRender(); err != nil {
		return err
	}
	slog.Debug("places configuration", "config", cfg.String())

	topo, err := topology.Load(cfg.LabnetPath)
	if err != nil {
		return err
	}
	if err = render.CheckLab(topo, cfg.Lab); err != nil {
		return err
	}

	tmpl, err := render.LoadTemplate(cfg.TemplatePath, engine)
	if err != nil {
		return err
	}

	text, err := render.Render(topo, cfg.Lab, tmpl)
	if err != nil {
		return err
	}
	if err = render.WriteArtifact(cfg.OutputPath, text); err != nil {
		return err
	}

	summary := report.Summarize(text)
	if cmd.Bool("structural") {
		if summary, err = report.FromTopology(topo, cfg.Lab); err != nil {
			return errors.Wrap(errors.ErrCodeUnknownLab, "failed to list places", err)
		}
	}
	summary.Lab = cfg.Lab
	summary.Output = cfg.OutputPath

	slog.Info("places rendered",
		"lab", summary.Lab,
		"output", summary.Output,
		"engine", tmpl.Engine.Name(),
		"method", summary.Method,
		"places", summary.Count)

	if outFormat == "" {
		return summary.Print(cmd.Root().Writer)
	}
	return writeDocument(ctx, cmd, outFormat, header.KindPlacesSummary, summary)
}
