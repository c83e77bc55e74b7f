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

package render

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labgrid-fcefyn/labnet/pkg/errors"
	"github.com/labgrid-fcefyn/labnet/pkg/serializer"
	"github.com/labgrid-fcefyn/labnet/pkg/topology"
)

// Rendering context keys. Templates written for the Ansible coordinator
// role read these names.
const (
	KeyLabnet            = "labnet"
	KeyInventoryHostname = "inventory_hostname"
	KeyAnsibleDateTime   = "ansible_date_time"
	KeyEpoch             = "epoch"
)

// ContextLabs is the error context key listing known labs.
const ContextLabs = "available_labs"

// now is swapped in tests.
var now = time.Now

// Template is a template text paired with the engine that evaluates it.
type Template struct {
	Name   string
	Text   string
	Engine Engine
}

// NewTemplate creates a Template. A nil engine selects one from name's extension.
func NewTemplate(name, text string, engine Engine) *Template {
	if engine == nil {
		engine = EngineForPath(name)
	}
	return &Template{Name: name, Text: text, Engine: engine}
}

// LoadTemplate reads a template file. A nil engine selects one from the
// file extension.
func LoadTemplate(path string, engine Engine) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.WrapWithContext(errors.ErrCodeNotFound,
				fmt.Sprintf("template not found at %s", path), err,
				map[string]any{"path": path})
		}
		return nil, errors.WrapWithContext(errors.ErrCodeInternal,
			fmt.Sprintf("failed to read template %s", path), err,
			map[string]any{"path": path})
	}
	return NewTemplate(filepath.Base(path), string(data), engine), nil
}

// NewContext builds the rendering context for lab at the given instant.
func NewContext(topo *topology.Topology, lab string, at time.Time) map[string]any {
	return map[string]any{
		KeyLabnet:            topo.Ordered(),
		KeyInventoryHostname: lab,
		KeyAnsibleDateTime: map[string]any{
			KeyEpoch: at.Unix(),
		},
	}
}

// Render evaluates tmpl for lab and returns the output verbatim.
//
// lab must name a lab in topo; otherwise the ErrCodeUnknownLab error
// message lists every known lab. Engine failures come back as
// ErrCodeRender wrapping the engine error. The epoch in the context is
// taken when Render starts.
func Render(topo *topology.Topology, lab string, tmpl *Template) (string, error) {
	start := now()

	if err := CheckLab(topo, lab); err != nil {
		return "", err
	}

	out, err := tmpl.Engine.Execute(tmpl.Name, tmpl.Text, NewContext(topo, lab, start))
	renderDuration.WithLabelValues(tmpl.Engine.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		renderFailures.WithLabelValues(tmpl.Engine.Name()).Inc()
		return "", errors.WrapWithContext(errors.ErrCodeRender,
			fmt.Sprintf("failed to render %s for lab %q", tmpl.Name, lab), err,
			map[string]any{
				"lab":      lab,
				"template": tmpl.Name,
				"engine":   tmpl.Engine.Name(),
			})
	}

	slog.Debug("template rendered",
		"lab", lab,
		"template", tmpl.Name,
		"engine", tmpl.Engine.Name(),
		"bytes", len(out),
	)

	return out, nil
}

// CheckLab returns an ErrCodeUnknownLab error listing every known lab when
// lab is not in topo.
func CheckLab(topo *topology.Topology, lab string) error {
	if _, ok := topo.Lab(lab); ok {
		return nil
	}

	names := topo.LabNames()
	listed := strings.Join(names, ", ")
	if listed == "" {
		listed = "(none)"
	}
	return errors.NewWithContext(errors.ErrCodeUnknownLab,
		fmt.Sprintf("lab %q not found in %s; available labs: %s", lab, sourceName(topo), listed),
		map[string]any{
			"lab":       lab,
			ContextLabs: names,
		})
}

func sourceName(topo *topology.Topology) string {
	if topo.Source == "" {
		return "topology"
	}
	return topo.Source
}

// WriteArtifact writes rendered text to path, creating parent directories.
func WriteArtifact(path, text string) error {
	if err := serializer.WriteToFile(path, []byte(text)); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal,
			fmt.Sprintf("failed to write %s", path), err,
			map[string]any{"path": path})
	}
	slog.Debug("artifact written", "path", path, "size_bytes", len(text))
	return nil
}
