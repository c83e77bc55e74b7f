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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labgrid-fcefyn/labnet/pkg/topology"
)

const testTopology = `
devices:
  linksys_e8450: {}
  openwrt_one:
    target_file: openwrt_one_snand
  bananapi_bpi-r4: {}
labs:
  labgrid-fcefyn:
    device_instances:
      linksys_e8450: [belkin_rt3200_1, belkin_rt3200_1]
      openwrt_one: [belkin_rt3200_1, bananapi_bpi-r4]
      ghost: [ghost_1]
  labgrid-hsn:
    device_instances:
      linksys_e8450: [belkin_rt3200_1, hsn_1]
`

func mustParse(t *testing.T, doc string) *topology.Topology {
	t.Helper()
	topo, err := topology.Parse([]byte(doc), "labnet.yaml")
	require.NoError(t, err)
	return topo
}

func findingsFor(r *Report, rule Rule) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Rule == rule {
			out = append(out, f)
		}
	}
	return out
}

func TestRun_Aliases(t *testing.T) {
	topo := mustParse(t, testTopology)

	r, err := Run(context.Background(), topo, Options{})
	require.NoError(t, err)

	assert.Equal(t, "labnet.yaml", r.Source)
	assert.Equal(t, 2, r.Labs)
	assert.Equal(t, 3, r.Devices)

	dangling := findingsFor(r, RuleDanglingAlias)
	require.Len(t, dangling, 1)
	assert.Equal(t, "ghost_1", dangling[0].Alias)
	assert.Equal(t, "ghost", dangling[0].Device)
	assert.Equal(t, SeverityError, dangling[0].Severity)

	dups := findingsFor(r, RuleDuplicateAlias)
	require.Len(t, dups, 3)
	assert.Equal(t, "labgrid-fcefyn", dups[0].Lab)
	assert.Equal(t, "linksys_e8450", dups[0].Device)
	assert.Equal(t, "labgrid-fcefyn", dups[1].Lab)
	assert.Equal(t, "openwrt_one", dups[1].Device)
	assert.Contains(t, dups[1].Message, `lookup picks the entry under "linksys_e8450" in lab "labgrid-fcefyn"`)
	assert.Equal(t, "labgrid-hsn", dups[2].Lab)
	assert.Contains(t, dups[2].Message, `also listed in lab "labgrid-fcefyn"`)
	assert.Contains(t, dups[2].Message, `lookup picks the entry under "linksys_e8450" in lab "labgrid-fcefyn"`)

	shadowed := findingsFor(r, RuleShadowedAlias)
	require.Len(t, shadowed, 1)
	assert.Equal(t, "bananapi_bpi-r4", shadowed[0].Alias)

	assert.True(t, r.HasErrors())
	assert.Equal(t, 1, r.Count(SeverityError))
	assert.Equal(t, 4, r.Count(SeverityWarning))
}

func TestRun_DuplicateNamesLookupWinner(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "dangling group skipped within lab",
			doc: `
devices:
  openwrt_one: {}
labs:
  lab-a:
    device_instances:
      ghost_device: [unit_1]
      openwrt_one: [unit_1]
`,
			want: `lookup picks the entry under "openwrt_one" in lab "lab-a"`,
		},
		{
			name: "dangling group skipped across labs",
			doc: `
devices:
  linksys_e8450: {}
labs:
  lab-a:
    device_instances:
      ghost_device: [unit_1]
  lab-b:
    device_instances:
      linksys_e8450: [unit_1]
`,
			want: `lookup picks the entry under "linksys_e8450" in lab "lab-b"`,
		},
		{
			name: "every group dangling",
			doc: `
devices: {}
labs:
  lab-a:
    device_instances:
      ghost_device: [unit_1]
      phantom_device: [unit_1]
`,
			want: "no entry names a defined device, so lookup fails",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Run(context.Background(), mustParse(t, tt.doc), Options{})
			require.NoError(t, err)

			dups := findingsFor(r, RuleDuplicateAlias)
			require.Len(t, dups, 1)
			assert.Equal(t, "unit_1", dups[0].Alias)
			assert.Contains(t, dups[0].Message, tt.want)
		})
	}
}

func TestRun_Clean(t *testing.T) {
	topo := mustParse(t, `
devices:
  linksys_e8450: {}
labs:
  labgrid-fcefyn:
    device_instances:
      linksys_e8450: [belkin_rt3200_1]
`)
	r, err := Run(context.Background(), topo, Options{})
	require.NoError(t, err)
	assert.Empty(t, r.Findings)
	assert.False(t, r.HasErrors())
}

func TestRun_MissingTargets(t *testing.T) {
	repo := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(repo, "targets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(repo, "targets", "linksys_e8450.yaml"), []byte("targets: {}\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(repo, "targets", "openwrt_one.yaml"), []byte("targets: {}\n"), 0o600))

	topo := mustParse(t, `
devices:
  linksys_e8450: {}
  openwrt_one:
    target_file: openwrt_one_snand
  bananapi_bpi-r4: {}
`)

	r, err := Run(context.Background(), topo, Options{RepoDir: repo, Concurrency: 2})
	require.NoError(t, err)

	missing := findingsFor(r, RuleMissingTarget)
	require.Len(t, missing, 2)
	assert.Equal(t, "bananapi_bpi-r4", missing[0].Device)
	assert.Equal(t, "openwrt_one", missing[1].Device)
	assert.Contains(t, missing[1].Message, "targets/openwrt_one_snand.yaml")
	assert.True(t, r.HasErrors())
}

func TestRun_Canceled(t *testing.T) {
	topo := mustParse(t, "devices:\n  a: {}\n  b: {}\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, topo, Options{RepoDir: t.TempDir()})
	assert.ErrorIs(t, err, context.Canceled)
}
