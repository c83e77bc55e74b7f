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

package config

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/labgrid-fcefyn/labnet/pkg/defaults"
	"github.com/labgrid-fcefyn/labnet/pkg/errors"
)

// Config holds the file locations and lab selection for one invocation.
// Nothing in the resolver or renderer reads the environment; everything
// they need arrives through these fields.
type Config struct {
	// LabnetPath is the topology document.
	LabnetPath string

	// TemplatePath is the places template.
	TemplatePath string

	// OutputPath is where the rendered artifact is written.
	OutputPath string

	// Lab selects the lab to render.
	Lab string

	// RepoDir is the openwrt-tests checkout holding targets/. Optional.
	RepoDir string
}

// Option is a functional option for configuring Config instances.
type Option func(*Config)

// WithLabnetPath sets the topology document path.
func WithLabnetPath(path string) Option {
	return func(c *Config) { c.LabnetPath = path }
}

// WithTemplatePath sets the template path.
func WithTemplatePath(path string) Option {
	return func(c *Config) { c.TemplatePath = path }
}

// WithOutputPath sets the artifact output path.
func WithOutputPath(path string) Option {
	return func(c *Config) { c.OutputPath = path }
}

// WithLab sets the lab to render.
func WithLab(lab string) Option {
	return func(c *Config) { c.Lab = lab }
}

// WithRepoDir sets the openwrt-tests checkout directory.
func WithRepoDir(dir string) Option {
	return func(c *Config) { c.RepoDir = dir }
}

// NewConfig returns a Config with the default lab and the given options applied.
func NewConfig(opts ...Option) *Config {
	c := &Config{Lab: defaults.Lab}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultOutputPath returns ~/labgrid-coordinator/places.yaml for home.
func DefaultOutputPath(home string) string {
	return filepath.Join(home, defaults.CoordinatorDir, defaults.PlacesFile)
}

// ApplyRoot fills the empty paths from an openwrt-tests checkout root.
func (c *Config) ApplyRoot(root string) {
	if c.LabnetPath == "" {
		c.LabnetPath = filepath.Join(root, defaults.LabnetFile)
	}
	if c.TemplatePath == "" {
		c.TemplatePath = filepath.Join(root, filepath.FromSlash(defaults.PlacesTemplate))
	}
	if c.RepoDir == "" {
		c.RepoDir = root
	}
}

// NeedsRoot reports whether a path required by a render is still unset.
func (c *Config) NeedsRoot() bool {
	return c.LabnetPath == "" || c.TemplatePath == ""
}

// ValidateForResolve checks the settings the resolve and lint commands need.
func (c *Config) ValidateForResolve() error {
	if strings.TrimSpace(c.LabnetPath) == "" {
		return errors.New(errors.ErrCodeInvalidRequest,
			"labnet.yaml location unknown: pass --labnet or run from an openwrt-tests checkout")
	}
	return nil
}

// ValidateForRender checks the settings the places command needs.
func (c *Config) ValidateForRender() error {
	if c.NeedsRoot() {
		return errors.New(errors.ErrCodeInvalidRequest,
			"could not find openwrt-tests directory: specify --labnet and --template paths")
	}
	if strings.TrimSpace(c.Lab) == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "lab name must not be empty")
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "output path must not be empty")
	}
	return nil
}

// StatFunc matches os.Stat.
type StatFunc func(name string) (fs.FileInfo, error)

// Candidates returns the checkout locations probed when paths are not
// given, in priority order.
func Candidates(home, cwd string) []string {
	var out []string
	if home != "" {
		out = append(out,
			filepath.Join(home, "Documents", defaults.TestsDirName),
			filepath.Join(home, defaults.TestsDirName),
		)
	}
	if cwd != "" {
		out = append(out,
			cwd,
			filepath.Join(filepath.Dir(cwd), defaults.TestsDirName),
		)
	}
	return out
}

// DetectRoot returns the first candidate that contains labnet.yaml.
func DetectRoot(candidates []string, stat StatFunc) (string, bool) {
	for _, dir := range candidates {
		info, err := stat(filepath.Join(dir, defaults.LabnetFile))
		if err != nil || info.IsDir() {
			continue
		}
		slog.Debug("detected openwrt-tests checkout", "dir", dir)
		return dir, true
	}
	return "", false
}

// DetectFromEnvironment probes the usual locations using the process's
// home and working directories.
func DetectFromEnvironment() (string, bool) {
	home, _ := os.UserHomeDir()
	cwd, _ := os.Getwd()
	return DetectRoot(Candidates(home, cwd), os.Stat)
}

// String renders the config for debug logs.
func (c *Config) String() string {
	return fmt.Sprintf("labnet=%s template=%s output=%s lab=%s repo=%s",
		c.LabnetPath, c.TemplatePath, c.OutputPath, c.Lab, c.RepoDir)
}
