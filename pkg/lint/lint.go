// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lint

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/labgrid-fcefyn/labnet/pkg/topology"
)

// Severity of a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Rule identifies what a finding is about.
type Rule string

const (
	// RuleDanglingAlias: an alias's base device is not under devices.
	RuleDanglingAlias Rule = "dangling_alias"
	// RuleDuplicateAlias: an alias appears more than once in a lab.
	RuleDuplicateAlias Rule = "duplicate_alias"
	// RuleShadowedAlias: an alias equals a canonical device name, so it
	// always resolves to that device.
	RuleShadowedAlias Rule = "shadowed_alias"
	// RuleMissingTarget: a device's target file does not exist.
	RuleMissingTarget Rule = "missing_target"
)

// DefaultConcurrency bounds parallel target-file checks.
const DefaultConcurrency = 8

// Finding is one lint result.
type Finding struct {
	Rule     Rule     `json:"rule" yaml:"rule"`
	Severity Severity `json:"severity" yaml:"severity"`
	Lab      string   `json:"lab,omitempty" yaml:"lab,omitempty"`
	Device   string   `json:"device,omitempty" yaml:"device,omitempty"`
	Alias    string   `json:"alias,omitempty" yaml:"alias,omitempty"`
	Message  string   `json:"message" yaml:"message"`
}

// Report collects the findings of one run.
type Report struct {
	Source   string    `json:"source" yaml:"source"`
	Labs     int       `json:"labs" yaml:"labs"`
	Devices  int       `json:"devices" yaml:"devices"`
	Findings []Finding `json:"findings" yaml:"findings"`
}

// HasErrors reports whether any finding has error severity.
func (r *Report) HasErrors() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns the number of findings with the given severity.
func (r *Report) Count(sev Severity) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == sev {
			n++
		}
	}
	return n
}

// Options configures a lint run.
type Options struct {
	// RepoDir, when set, is the directory holding targets/; each device's
	// target file is checked for existence.
	RepoDir string

	// Concurrency bounds parallel file checks. Zero means DefaultConcurrency.
	Concurrency int
}

// Run checks topo and returns its findings. Findings never stop the run;
// the error is reserved for cancellation and unexpected I/O failures.
func Run(ctx context.Context, topo *topology.Topology, opts Options) (*Report, error) {
	r := &Report{
		Source:   topo.Source,
		Labs:     len(topo.Labs()),
		Devices:  len(topo.Devices()),
		Findings: []Finding{},
	}

	r.Findings = append(r.Findings, checkAliases(topo)...)

	if opts.RepoDir != "" {
		missing, err := checkTargets(ctx, topo, opts)
		if err != nil {
			return nil, err
		}
		r.Findings = append(r.Findings, missing...)
	}

	for _, f := range r.Findings {
		findingsTotal.WithLabelValues(string(f.Rule), string(f.Severity)).Inc()
	}

	slog.Debug("lint complete",
		"source", r.Source,
		"errors", r.Count(SeverityError),
		"warnings", r.Count(SeverityWarning),
	)

	return r, nil
}

// entry locates an instance group by lab and base device.
type entry struct {
	lab    string
	device string
}

// lookupWinners maps each alias to the group resolution picks: the first,
// in document order, whose base device is defined.
func lookupWinners(topo *topology.Topology) map[string]entry {
	winners := make(map[string]entry)
	for _, lab := range topo.Labs() {
		for _, g := range lab.Instances {
			if _, known := topo.Device(g.Device); !known {
				continue
			}
			for _, alias := range g.Aliases {
				if _, seen := winners[alias]; !seen {
					winners[alias] = entry{lab: lab.Name, device: g.Device}
				}
			}
		}
	}
	return winners
}

func lookupOutcome(winners map[string]entry, alias string) string {
	w, ok := winners[alias]
	if !ok {
		return "no entry names a defined device, so lookup fails"
	}
	return fmt.Sprintf("lookup picks the entry under %q in lab %q", w.device, w.lab)
}

func checkAliases(topo *topology.Topology) []Finding {
	var out []Finding
	winners := lookupWinners(topo)
	firstLab := make(map[string]string)
	for _, lab := range topo.Labs() {
		owner := make(map[string]string)
		for _, g := range lab.Instances {
			_, known := topo.Device(g.Device)
			if !known {
				for _, alias := range g.Aliases {
					out = append(out, Finding{
						Rule:     RuleDanglingAlias,
						Severity: SeverityError,
						Lab:      lab.Name,
						Device:   g.Device,
						Alias:    alias,
						Message: fmt.Sprintf("instance %q refers to device %q, which is not defined in devices",
							alias, g.Device),
					})
				}
			}

			for _, alias := range g.Aliases {
				if _, seen := owner[alias]; seen {
					out = append(out, Finding{
						Rule:     RuleDuplicateAlias,
						Severity: SeverityWarning,
						Lab:      lab.Name,
						Device:   g.Device,
						Alias:    alias,
						Message: fmt.Sprintf("instance %q is listed again under %q; %s",
							alias, g.Device, lookupOutcome(winners, alias)),
					})
					continue
				}
				owner[alias] = g.Device

				if earlier, seen := firstLab[alias]; seen {
					out = append(out, Finding{
						Rule:     RuleDuplicateAlias,
						Severity: SeverityWarning,
						Lab:      lab.Name,
						Device:   g.Device,
						Alias:    alias,
						Message: fmt.Sprintf("instance %q is also listed in lab %q; %s",
							alias, earlier, lookupOutcome(winners, alias)),
					})
				} else {
					firstLab[alias] = lab.Name
				}

				if _, isDevice := topo.Device(alias); isDevice && alias != g.Device {
					out = append(out, Finding{
						Rule:     RuleShadowedAlias,
						Severity: SeverityWarning,
						Lab:      lab.Name,
						Device:   g.Device,
						Alias:    alias,
						Message: fmt.Sprintf("instance %q is also a device name and resolves to that device, not %q",
							alias, g.Device),
					})
				}
			}
		}
	}
	return out
}

func checkTargets(ctx context.Context, topo *topology.Topology, opts Options) ([]Finding, error) {
	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	devices := topo.Devices()
	missing := make([]*Finding, len(devices))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, d := range devices {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			path := filepath.Join(opts.RepoDir, filepath.FromSlash(d.TargetPath()))
			_, err := os.Stat(path)
			switch {
			case err == nil:
				return nil
			case stderrors.Is(err, fs.ErrNotExist):
				missing[i] = &Finding{
					Rule:     RuleMissingTarget,
					Severity: SeverityError,
					Device:   d.Name,
					Message:  fmt.Sprintf("target file %s does not exist", d.TargetPath()),
				}
				return nil
			default:
				return fmt.Errorf("failed to check target file %s: %w", path, err)
			}
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Finding, 0)
	for _, f := range missing {
		if f != nil {
			out = append(out, *f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Device < out[j].Device })
	return out, nil
}
