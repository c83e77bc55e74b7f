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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labgrid-fcefyn/labnet/pkg/errors"
)

func TestLoad(t *testing.T) {
	topo, err := Load(filepath.Join("testdata", "labnet.yaml"))
	require.NoError(t, err)

	assert.Equal(t, []string{"labgrid-fcefyn", "labgrid-hsn", "labgrid-empty"}, topo.LabNames())
	require.Len(t, topo.Devices(), 4)
	assert.Equal(t, "linksys_e8450", topo.Devices()[0].Name)
	assert.Equal(t, "tplink_archer-c7-v2", topo.Devices()[3].Name)

	one, ok := topo.Device("openwrt_one")
	require.True(t, ok)
	assert.Equal(t, "openwrt_one_snand", one.Stem())
	assert.Equal(t, "targets/openwrt_one_snand.yaml", one.TargetPath())

	nullSpec, ok := topo.Device("tplink_archer-c7-v2")
	require.True(t, ok)
	assert.Equal(t, "tplink_archer-c7-v2", nullSpec.Stem())

	lab, ok := topo.Lab("labgrid-fcefyn")
	require.True(t, ok)
	require.Len(t, lab.Instances, 2)
	assert.Equal(t, "linksys_e8450", lab.Instances[0].Device)
	assert.Equal(t, []string{"belkin_rt3200_1", "belkin_rt3200_2"}, lab.Instances[0].Aliases)
	assert.Equal(t, 3, lab.AliasCount())

	empty, ok := topo.Lab("labgrid-empty")
	require.True(t, ok)
	assert.Empty(t, empty.Instances)

	_, ok = topo.Lab("labgrid-missing")
	assert.False(t, ok)
}

func TestLoad_RawKeepsUnmodelledKeys(t *testing.T) {
	topo, err := Load(filepath.Join("testdata", "labnet.yaml"))
	require.NoError(t, err)

	labs, ok := topo.Raw()["labs"].(map[string]any)
	require.True(t, ok)
	fcefyn, ok := labs["labgrid-fcefyn"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "@fcefyn", fcefyn["maintainers"])
	assert.Equal(t, "labgrid-fcefyn", fcefyn["proxy"])
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "labnet.yaml"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound), "got %v", err)
}

func TestLoad_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "empty", content: ""},
		{name: "not yaml", content: "labs: [unterminated\n"},
		{name: "top level list", content: "- a\n- b\n"},
		{name: "top level scalar", content: "hello\n"},
		{name: "labs is a list", content: "labs:\n  - one\n"},
		{name: "devices is a scalar", content: "devices: nope\n"},
		{name: "device is a list", content: "devices:\n  foo: [1]\n"},
		{name: "target_file is a map", content: "devices:\n  foo:\n    target_file: {a: b}\n"},
		{name: "instances not a map", content: "labs:\n  l:\n    device_instances: [a]\n"},
		{name: "aliases not a list", content: "labs:\n  l:\n    device_instances:\n      foo: bar\n"},
		{name: "nested alias", content: "labs:\n  l:\n    device_instances:\n      foo:\n        - [x]\n"},
		{name: "duplicate key", content: "devices:\n  foo: {}\n  foo: {}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "labnet.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := Load(path)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ErrCodeMalformedDocument), "got %v", err)
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestParse(t *testing.T) {
	doc := []byte(`
devices:
  linksys_e8450: {}
labs:
  labgrid-fcefyn:
    device_instances:
      linksys_e8450: [belkin_rt3200_1]
`)
	topo, err := Parse(doc, "inline")
	require.NoError(t, err)
	assert.Equal(t, "inline", topo.Source)
	assert.Equal(t, []string{"labgrid-fcefyn"}, topo.LabNames())
}

func TestParse_NullSections(t *testing.T) {
	topo, err := Parse([]byte("labs:\ndevices:\n"), "inline")
	require.NoError(t, err)
	assert.Empty(t, topo.Labs())
	assert.Empty(t, topo.Devices())
}

func TestParse_EmptyTargetFileFallsBackToName(t *testing.T) {
	topo, err := Parse([]byte("devices:\n  foo:\n    target_file: ''\n"), "inline")
	require.NoError(t, err)
	foo, ok := topo.Device("foo")
	require.True(t, ok)
	assert.Equal(t, "foo", foo.Stem())
}

func TestParse_YAMLAnchors(t *testing.T) {
	doc := []byte(`
devices:
  foo: &spec
    target_file: bar
  baz: *spec
labs:
  a:
    device_instances: &inst
      foo: [foo_1]
  b:
    device_instances: *inst
`)
	topo, err := Parse(doc, "inline")
	require.NoError(t, err)

	baz, ok := topo.Device("baz")
	require.True(t, ok)
	assert.Equal(t, "bar", baz.Stem())

	b, ok := topo.Lab("b")
	require.True(t, ok)
	require.Len(t, b.Instances, 1)
	assert.Equal(t, []string{"foo_1"}, b.Instances[0].Aliases)
}

func TestInstanceGroupContains(t *testing.T) {
	g := InstanceGroup{Device: "foo", Aliases: []string{"a", "b"}}
	assert.True(t, g.Contains("a"))
	assert.False(t, g.Contains("c"))
	assert.False(t, (&InstanceGroup{}).Contains(""))
}
