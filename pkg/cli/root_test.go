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

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Commands(t *testing.T) {
	cmd := newRootCmd()
	var names []string
	for _, c := range cmd.Commands {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"resolve", "places", "lint"}, names)
}

func TestRootCmd_MetricsFile(t *testing.T) {
	dir := t.TempDir()
	labnet := writeFile(t, dir, "labnet.yaml", testLabnet)
	metrics := filepath.Join(dir, "labnet.prom")

	_, err := runCLI(t, "--metrics-file", metrics, "resolve", "--labnet", labnet, "belkin_rt3200_1")
	require.NoError(t, err)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), "labnet_resolutions_total")
}

func TestRootCmd_MetricsFileOnFailure(t *testing.T) {
	dir := t.TempDir()
	labnet := writeFile(t, dir, "labnet.yaml", testLabnet)
	metrics := filepath.Join(dir, "labnet.prom")

	_, err := runCLI(t, "--metrics-file", metrics, "resolve", "--labnet", labnet, "nonexistent_device")
	require.Error(t, err)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), "labnet_resolution_failures_total")
}
