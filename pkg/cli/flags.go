/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/labgrid-fcefyn/labnet/pkg/config"
	"github.com/labgrid-fcefyn/labnet/pkg/errors"
	"github.com/labgrid-fcefyn/labnet/pkg/header"
	"github.com/labgrid-fcefyn/labnet/pkg/serializer"
)

// formatText selects the human-readable listing instead of a serializer.
const formatText = "text"

const (
	envLabnetPath = "LABNET_PATH"
	envTemplate   = "LABNET_TEMPLATE"
	envLab        = "LABNET_LAB"
	envOutput     = "LABNET_OUTPUT"
)

// Flags are built per command so parsed state never leaks between runs.

func labnetFlag() cli.Flag {
	return &cli.StringFlag{
		Name:      "labnet",
		Usage:     "Path to labnet.yaml (default: detected openwrt-tests checkout)",
		Sources:   cli.EnvVars(envLabnetPath),
		TakesFile: true,
	}
}

func formatFlag(value string) cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   value,
		Usage: fmt.Sprintf("Output format (supported values: %s, %s)",
			formatText, strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

// parseOutputFormat returns the serializer format selected by --format.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown output format: %q", outFormat))
	}
	return outFormat, nil
}

// wantsText reports whether --format asks for the human-readable listing.
func wantsText(cmd *cli.Command) bool {
	return cmd.String("format") == formatText
}

// writeDocument serializes spec to stdout wrapped in a header of kind.
func writeDocument(ctx context.Context, cmd *cli.Command, format serializer.Format, kind header.Kind, spec any) error {
	doc := header.NewDocument(kind, spec,
		header.WithVersion(version),
		header.WithRunID(runIDFrom(ctx)))
	return serializer.NewWriter(format, cmd.Root().Writer).Serialize(ctx, doc)
}

// applyDetectedRoot fills unset paths from an openwrt-tests checkout when
// one can be found.
func applyDetectedRoot(cfg *config.Config) {
	if !cfg.NeedsRoot() {
		return
	}
	if root, ok := config.DetectFromEnvironment(); ok {
		cfg.ApplyRoot(root)
	}
}
