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
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/nikolalohinski/gonja/v2/exec"
	"github.com/nikolalohinski/gonja/v2/loaders"

	"github.com/labgrid-fcefyn/labnet/pkg/topology"
)

// Engine evaluates template text against a rendering context.
// Implementations treat the template as opaque and return its output verbatim.
type Engine interface {
	// Name identifies the engine on the command line.
	Name() string

	// Execute parses and evaluates text. name labels parse errors.
	Execute(name, text string, data map[string]any) (string, error)
}

// Engine names.
const (
	EngineJinja      = "jinja"
	EngineGoTemplate = "gotemplate"
)

var engines = map[string]Engine{
	EngineJinja:      JinjaEngine{},
	EngineGoTemplate: GoTemplateEngine{},
}

// SupportedEngines returns the registered engine names, sorted.
func SupportedEngines() []string {
	names := make([]string, 0, len(engines))
	for n := range engines {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParseEngine returns the engine registered under name.
func ParseEngine(name string) (Engine, error) {
	e, ok := engines[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown template engine %q, supported values: %v", name, SupportedEngines())
	}
	return e, nil
}

// EngineForPath picks an engine from the template file extension:
// .tmpl and .gotmpl use Go templates, everything else (.j2 included) Jinja.
func EngineForPath(path string) Engine {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tmpl", ".gotmpl":
		return GoTemplateEngine{}
	default:
		return JinjaEngine{}
	}
}

// JinjaEngine renders Jinja2 templates, the format of the coordinator's
// places.yaml.j2, with gonja. Mappings from the topology iterate in
// document order.
type JinjaEngine struct{}

// Name implements Engine.
func (JinjaEngine) Name() string { return EngineJinja }

// Execute implements Engine.
func (JinjaEngine) Execute(name, text string, data map[string]any) (string, error) {
	id := name
	if !strings.HasPrefix(id, "/") {
		id = "/" + id
	}
	loader, err := loaders.NewMemoryLoader(map[string]string{id: text})
	if err != nil {
		return "", fmt.Errorf("failed to load template %s: %w", name, err)
	}

	tpl, err := exec.NewTemplate(id, jinjaConfig(), loader, jinjaEnvironment)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	out, err := tpl.ExecuteToString(exec.NewContext(jinjaContext(data)))
	if err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return out, nil
}

// GoTemplateEngine renders text/template templates. Missing map keys are
// errors rather than "<no value>". Topology mappings are handed over as
// plain maps, which range visits in sorted key order.
type GoTemplateEngine struct{}

// Name implements Engine.
func (GoTemplateEngine) Name() string { return EngineGoTemplate }

// Execute implements Engine.
func (GoTemplateEngine) Execute(name, text string, data map[string]any) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, plainContext(data)); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}

func plainContext(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		if m, ok := v.(*topology.Mapping); ok {
			out[k] = m.Map()
			continue
		}
		out[k] = v
	}
	return out
}
