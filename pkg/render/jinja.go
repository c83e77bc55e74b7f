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
	"sort"

	"github.com/nikolalohinski/gonja/v2"
	"github.com/nikolalohinski/gonja/v2/builtins"
	"github.com/nikolalohinski/gonja/v2/config"
	"github.com/nikolalohinski/gonja/v2/exec"

	"github.com/labgrid-fcefyn/labnet/pkg/topology"
)

// jinjaEnvironment is gonja's default environment with dict methods that
// walk exec.Dict pairs in order instead of sorting keys.
var jinjaEnvironment = &exec.Environment{
	Context:           gonja.DefaultContext,
	Filters:           builtins.Filters,
	Tests:             builtins.Tests,
	ControlStructures: builtins.ControlStructures,
	Methods: exec.Methods{
		Bool:  builtins.Methods.Bool,
		Int:   builtins.Methods.Int,
		Float: builtins.Methods.Float,
		Str:   builtins.Methods.Str,
		Dict:  orderedDictMethods(),
		List:  builtins.Methods.List,
	},
}

// jinjaConfig mirrors a bare jinja2.Template: no block trimming, autoescape
// off, and a single trailing newline dropped.
func jinjaConfig() *config.Config {
	return config.New()
}

type dictMethod = exec.Method[map[string]any]

func orderedDictMethods() *exec.MethodSet[map[string]any] {
	methods := map[string]dictMethod{
		"keys":   pairsMethod(func(p *exec.Pair) any { return p.Key.Interface() }),
		"values": pairsMethod(func(p *exec.Pair) any { return p.Value.Interface() }),
		"items": pairsMethod(func(p *exec.Pair) any {
			return []any{p.Key.Interface(), p.Value.Interface()}
		}),
		"get": dictGet,
	}
	for _, name := range []string{"pop", "setdefault", "update", "copy", "clear"} {
		if m, ok := builtins.Methods.Dict.Get(name); ok {
			methods[name] = m
		}
	}
	return exec.NewMethodSet(methods)
}

// pairsMethod builds a no-argument method returning one element per pair.
// Plain Go maps fall back to sorted keys.
func pairsMethod(elem func(*exec.Pair) any) dictMethod {
	return func(self map[string]any, selfValue *exec.Value, arguments *exec.VarArgs) (any, error) {
		if err := arguments.Take(); err != nil {
			return nil, exec.ErrInvalidCall(err)
		}
		pairs := dictPairs(self, selfValue)
		out := make([]any, 0, len(pairs))
		for _, p := range pairs {
			out = append(out, elem(p))
		}
		return out, nil
	}
}

func dictGet(self map[string]any, selfValue *exec.Value, arguments *exec.VarArgs) (any, error) {
	fallback, ok := builtins.Methods.Dict.Get("get")
	if !ok {
		return nil, exec.ErrInvalidCall(fmt.Errorf("get() is not available"))
	}
	if len(arguments.Args) < 1 || len(arguments.Args) > 2 {
		return fallback(self, selfValue, arguments)
	}
	key := arguments.Args[0].String()
	for _, p := range dictPairs(self, selfValue) {
		if p.Key.String() == key {
			return p.Value.Interface(), nil
		}
	}
	if len(arguments.Args) == 2 {
		return arguments.Args[1].Interface(), nil
	}
	return nil, nil
}

func dictPairs(self map[string]any, selfValue *exec.Value) []*exec.Pair {
	switch d := selfValue.Interface().(type) {
	case *exec.Dict:
		return d.Pairs
	case exec.Dict:
		return d.Pairs
	}
	keys := make([]string, 0, len(self))
	for k := range self {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]*exec.Pair, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, &exec.Pair{Key: exec.AsValue(k), Value: exec.AsValue(self[k])})
	}
	return pairs
}

// jinjaContext converts topology mappings into exec.Dict values so that
// loops, items() and printing follow document order. Plain maps become
// dicts with sorted keys.
func jinjaContext(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = jinjaValue(v)
	}
	return out
}

func jinjaValue(v any) any {
	switch t := v.(type) {
	case *topology.Mapping:
		d := &exec.Dict{Pairs: make([]*exec.Pair, 0, t.Len())}
		for _, k := range t.Keys() {
			val, _ := t.Get(k)
			d.Pairs = append(d.Pairs, &exec.Pair{Key: exec.AsValue(k), Value: exec.AsValue(jinjaValue(val))})
		}
		return d
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		d := &exec.Dict{Pairs: make([]*exec.Pair, 0, len(keys))}
		for _, k := range keys {
			d.Pairs = append(d.Pairs, &exec.Pair{Key: exec.AsValue(k), Value: exec.AsValue(jinjaValue(t[k]))})
		}
		return d
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = jinjaValue(e)
		}
		return out
	default:
		return v
	}
}
