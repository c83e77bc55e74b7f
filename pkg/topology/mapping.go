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
	"gopkg.in/yaml.v3"
)

const mergeTag = "!!merge"

// Mapping is a YAML mapping that keeps document order. Values are decoded
// scalars (string, int, float64, bool, nil), []any, or *Mapping.
type Mapping struct {
	keys   []string
	values map[string]any
}

// Keys returns the keys in document order. Callers must not modify it.
func (m *Mapping) Keys() []string {
	return m.keys
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Len returns the number of keys.
func (m *Mapping) Len() int {
	return len(m.keys)
}

// Map converts the mapping, recursively, into plain maps. Order is lost.
func (m *Mapping) Map() map[string]any {
	out := make(map[string]any, len(m.keys))
	for _, k := range m.keys {
		out[k] = plain(m.values[k])
	}
	return out
}

func plain(v any) any {
	switch t := v.(type) {
	case *Mapping:
		return t.Map()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plain(e)
		}
		return out
	default:
		return v
	}
}

func (m *Mapping) set(key string, v any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// ordered converts a node into the Mapping value model. Merge keys are
// expanded in place; explicit keys win over merged ones.
func ordered(n *yaml.Node) (any, error) {
	n = deref(n)
	switch n.Kind {
	case yaml.MappingNode:
		m := &Mapping{values: make(map[string]any, len(n.Content)/2)}
		explicit := make(map[string]bool, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			if n.Content[i].ShortTag() != mergeTag {
				explicit[n.Content[i].Value] = true
			}
		}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], n.Content[i+1]
			if key.ShortTag() == mergeTag {
				if err := m.merge(val, explicit); err != nil {
					return nil, err
				}
				continue
			}
			v, err := ordered(val)
			if err != nil {
				return nil, err
			}
			m.set(key.Value, v)
		}
		return m, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := ordered(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

func (m *Mapping) merge(n *yaml.Node, explicit map[string]bool) error {
	n = deref(n)
	sources := []*yaml.Node{n}
	if n.Kind == yaml.SequenceNode {
		sources = n.Content
	}
	for _, src := range sources {
		v, err := ordered(src)
		if err != nil {
			return err
		}
		sub, ok := v.(*Mapping)
		if !ok {
			continue
		}
		for _, k := range sub.keys {
			if _, seen := m.values[k]; seen || explicit[k] {
				continue
			}
			m.set(k, sub.values[k])
		}
	}
	return nil
}
