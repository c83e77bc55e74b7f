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

package topology

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/labgrid-fcefyn/labnet/pkg/errors"
	"github.com/labgrid-fcefyn/labnet/pkg/serializer"
)

// Load reads and parses the topology document at path.
//
// Returns an ErrCodeNotFound error when path does not exist and an
// ErrCodeMalformedDocument error when the content is not a mapping with
// the expected labs/devices shapes.
func Load(path string) (*Topology, error) {
	reader, err := serializer.NewFileReader(serializer.FormatYAML, path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.WrapWithContext(errors.ErrCodeNotFound,
				fmt.Sprintf("topology document not found at %s", path), err,
				map[string]any{"path": path})
		}
		return nil, errors.WrapWithContext(errors.ErrCodeInternal,
			fmt.Sprintf("failed to open topology document %s", path), err,
			map[string]any{"path": path})
	}
	defer func() {
		if closeErr := reader.Close(); closeErr != nil {
			slog.Warn("failed to close topology document", "path", path, "error", closeErr)
		}
	}()

	var doc yaml.Node
	if err := reader.Deserialize(&doc); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, malformed(path, "document is empty", nil)
		}
		return nil, malformed(path, "failed to parse document", err)
	}

	topo, err := fromNode(&doc, path)
	if err != nil {
		return nil, err
	}

	slog.Debug("topology loaded",
		"path", path,
		"labs", len(topo.labs),
		"devices", len(topo.devices),
	)

	return topo, nil
}

// Parse builds a Topology from an in-memory document. source labels errors.
func Parse(data []byte, source string) (*Topology, error) {
	var doc yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, malformed(source, "document is empty", nil)
		}
		return nil, malformed(source, "failed to parse document", err)
	}
	return fromNode(&doc, source)
}

func malformed(source, msg string, cause error) error {
	full := fmt.Sprintf("%s: %s", source, msg)
	ctx := map[string]any{"path": source}
	if cause != nil {
		return errors.WrapWithContext(errors.ErrCodeMalformedDocument, full, cause, ctx)
	}
	return errors.NewWithContext(errors.ErrCodeMalformedDocument, full, ctx)
}

func malformedAt(source string, n *yaml.Node, format string, args ...any) error {
	return malformed(source, fmt.Sprintf("line %d: %s", n.Line, fmt.Sprintf(format, args...)), nil)
}

func fromNode(doc *yaml.Node, source string) (*Topology, error) {
	root := doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, malformed(source, "document is empty", nil)
		}
		root = root.Content[0]
	}
	root = deref(root)
	if root.Kind != yaml.MappingNode {
		return nil, malformedAt(source, root, "top level must be a mapping")
	}

	var raw map[string]any
	if err := root.Decode(&raw); err != nil {
		return nil, malformed(source, "failed to decode document", err)
	}

	view, err := ordered(root)
	if err != nil {
		return nil, malformed(source, "failed to decode document", err)
	}

	t := &Topology{
		Source:      source,
		labIndex:    make(map[string]*Lab),
		deviceIndex: make(map[string]*DeviceSpec),
		raw:         raw,
		ordered:     view.(*Mapping),
	}

	if n := lookup(root, KeyDevices); n != nil {
		if err := t.parseDevices(n); err != nil {
			return nil, err
		}
	}
	if n := lookup(root, KeyLabs); n != nil {
		if err := t.parseLabs(n); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func (t *Topology) parseDevices(n *yaml.Node) error {
	if isNull(n) {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return malformedAt(t.Source, n, "%q must be a mapping", KeyDevices)
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], deref(n.Content[i+1])
		if key.Kind != yaml.ScalarNode || key.Value == "" {
			return malformedAt(t.Source, key, "device names must be non-empty scalars")
		}

		spec := &DeviceSpec{Name: key.Value}
		switch {
		case isNull(val):
		case val.Kind == yaml.MappingNode:
			if tf := lookup(val, KeyTargetFile); tf != nil && !isNull(tf) {
				if tf.Kind != yaml.ScalarNode {
					return malformedAt(t.Source, tf, "device %q: %q must be a scalar", key.Value, KeyTargetFile)
				}
				spec.TargetFile = tf.Value
			}
		default:
			return malformedAt(t.Source, val, "device %q must be a mapping", key.Value)
		}

		t.devices = append(t.devices, spec)
		t.deviceIndex[spec.Name] = spec
	}
	return nil
}

func (t *Topology) parseLabs(n *yaml.Node) error {
	if isNull(n) {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return malformedAt(t.Source, n, "%q must be a mapping", KeyLabs)
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], deref(n.Content[i+1])
		if key.Kind != yaml.ScalarNode || key.Value == "" {
			return malformedAt(t.Source, key, "lab names must be non-empty scalars")
		}

		lab := &Lab{Name: key.Value}
		switch {
		case isNull(val):
		case val.Kind == yaml.MappingNode:
			groups, err := t.parseInstances(lab.Name, lookup(val, KeyDeviceInstances))
			if err != nil {
				return err
			}
			lab.Instances = groups
		default:
			return malformedAt(t.Source, val, "lab %q must be a mapping", key.Value)
		}

		t.labs = append(t.labs, lab)
		t.labIndex[lab.Name] = lab
	}
	return nil
}

func (t *Topology) parseInstances(lab string, n *yaml.Node) ([]InstanceGroup, error) {
	if n == nil || isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, malformedAt(t.Source, n, "lab %q: %q must be a mapping", lab, KeyDeviceInstances)
	}

	groups := make([]InstanceGroup, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], deref(n.Content[i+1])
		if key.Kind != yaml.ScalarNode || key.Value == "" {
			return nil, malformedAt(t.Source, key, "lab %q: base device names must be non-empty scalars", lab)
		}

		g := InstanceGroup{Device: key.Value}
		switch {
		case isNull(val):
		case val.Kind == yaml.SequenceNode:
			for _, item := range val.Content {
				item = deref(item)
				if item.Kind != yaml.ScalarNode || isNull(item) {
					return nil, malformedAt(t.Source, item, "lab %q: instances of %q must be scalars", lab, key.Value)
				}
				g.Aliases = append(g.Aliases, item.Value)
			}
		default:
			return nil, malformedAt(t.Source, val, "lab %q: instances of %q must be a list", lab, key.Value)
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// lookup returns the value node for key in mapping n, or nil.
func lookup(n *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return deref(n.Content[i+1])
		}
	}
	return nil
}

func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}
