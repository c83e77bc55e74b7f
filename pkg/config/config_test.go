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
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/labgrid-fcefyn/labnet/pkg/defaults"
	"github.com/labgrid-fcefyn/labnet/pkg/errors"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()
	if cfg.Lab != defaults.Lab {
		t.Errorf("default lab = %q, want %q", cfg.Lab, defaults.Lab)
	}

	cfg = NewConfig(
		WithLabnetPath("/srv/labnet.yaml"),
		WithTemplatePath("/srv/places.yaml.j2"),
		WithOutputPath("/tmp/places.yaml"),
		WithLab("labgrid-hsn"),
		WithRepoDir("/srv"),
	)
	if cfg.LabnetPath != "/srv/labnet.yaml" || cfg.TemplatePath != "/srv/places.yaml.j2" ||
		cfg.OutputPath != "/tmp/places.yaml" || cfg.Lab != "labgrid-hsn" || cfg.RepoDir != "/srv" {
		t.Errorf("options not applied: %s", cfg)
	}
}

func TestApplyRoot(t *testing.T) {
	root := filepath.Join("home", "me", "openwrt-tests")

	cfg := NewConfig(WithTemplatePath("/custom/places.j2"))
	if !cfg.NeedsRoot() {
		t.Fatal("expected NeedsRoot with empty labnet path")
	}
	cfg.ApplyRoot(root)

	if cfg.LabnetPath != filepath.Join(root, "labnet.yaml") {
		t.Errorf("LabnetPath = %q", cfg.LabnetPath)
	}
	if cfg.TemplatePath != "/custom/places.j2" {
		t.Errorf("explicit TemplatePath overwritten: %q", cfg.TemplatePath)
	}
	if cfg.RepoDir != root {
		t.Errorf("RepoDir = %q", cfg.RepoDir)
	}
	if cfg.NeedsRoot() {
		t.Error("NeedsRoot should be false after ApplyRoot")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		cfg        *Config
		resolveErr bool
		renderErr  bool
	}{
		{
			name:       "empty",
			cfg:        NewConfig(),
			resolveErr: true,
			renderErr:  true,
		},
		{
			name:       "labnet only",
			cfg:        NewConfig(WithLabnetPath("labnet.yaml")),
			resolveErr: false,
			renderErr:  true,
		},
		{
			name: "complete",
			cfg: NewConfig(WithLabnetPath("labnet.yaml"), WithTemplatePath("p.j2"),
				WithOutputPath("out/places.yaml")),
		},
		{
			name: "blank lab",
			cfg: NewConfig(WithLabnetPath("labnet.yaml"), WithTemplatePath("p.j2"),
				WithOutputPath("out/places.yaml"), WithLab(" ")),
			renderErr: true,
		},
		{
			name:      "no output",
			cfg:       NewConfig(WithLabnetPath("labnet.yaml"), WithTemplatePath("p.j2")),
			renderErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.ValidateForResolve()
			if (err != nil) != tt.resolveErr {
				t.Errorf("ValidateForResolve() error = %v, want error %v", err, tt.resolveErr)
			}
			err = tt.cfg.ValidateForRender()
			if (err != nil) != tt.renderErr {
				t.Errorf("ValidateForRender() error = %v, want error %v", err, tt.renderErr)
			}
			if err != nil && !errors.HasCode(err, errors.ErrCodeInvalidRequest) {
				t.Errorf("expected INVALID_REQUEST, got %v", err)
			}
		})
	}
}

func TestCandidates(t *testing.T) {
	got := Candidates("/home/me", "/work/labnet")
	want := []string{
		filepath.Join("/home/me", "Documents", "openwrt-tests"),
		filepath.Join("/home/me", "openwrt-tests"),
		"/work/labnet",
		filepath.Join("/work", "openwrt-tests"),
	}
	if len(got) != len(want) {
		t.Fatalf("Candidates() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Candidates()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if len(Candidates("", "")) != 0 {
		t.Error("expected no candidates without home and cwd")
	}
}

func TestDetectRoot(t *testing.T) {
	base := t.TempDir()
	empty := filepath.Join(base, "empty")
	withDirNamedLabnet := filepath.Join(base, "dir")
	checkout := filepath.Join(base, "openwrt-tests")

	for _, d := range []string{empty, filepath.Join(withDirNamedLabnet, "labnet.yaml"), checkout} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(checkout, "labnet.yaml"), []byte("labs: {}\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, ok := DetectRoot([]string{filepath.Join(base, "missing"), empty, withDirNamedLabnet, checkout}, os.Stat)
	if !ok || got != checkout {
		t.Errorf("DetectRoot() = %q, %v; want %q", got, ok, checkout)
	}

	_, ok = DetectRoot([]string{empty}, os.Stat)
	if ok {
		t.Error("expected no detection")
	}
}

func TestDetectRoot_InjectedStat(t *testing.T) {
	var probed []string
	stat := func(name string) (fs.FileInfo, error) {
		probed = append(probed, name)
		return nil, fs.ErrNotExist
	}

	if _, ok := DetectRoot([]string{"/a", "/b"}, stat); ok {
		t.Error("expected no detection")
	}
	if len(probed) != 2 || probed[0] != filepath.Join("/a", "labnet.yaml") {
		t.Errorf("unexpected probes: %v", probed)
	}
}

func TestDefaultOutputPath(t *testing.T) {
	got := DefaultOutputPath("/home/me")
	want := filepath.Join("/home/me", "labgrid-coordinator", "places.yaml")
	if got != want {
		t.Errorf("DefaultOutputPath() = %q, want %q", got, want)
	}
}
