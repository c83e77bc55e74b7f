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

package defaults

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestPathConstants(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"LabnetFile", LabnetFile},
		{"PlacesTemplate", PlacesTemplate},
		{"TestsDirName", TestsDirName},
		{"Lab", Lab},
		{"CoordinatorDir", CoordinatorDir},
		{"PlacesFile", PlacesFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value == "" {
				t.Errorf("%s should not be empty", tt.name)
			}
			if filepath.IsAbs(tt.value) {
				t.Errorf("%s should be relative, got %q", tt.name, tt.value)
			}
		})
	}
}

func TestLabNaming(t *testing.T) {
	if !strings.HasPrefix(Lab, "labgrid-") {
		t.Errorf("default lab %q should follow the labgrid- naming used for places", Lab)
	}
}

func TestLintTuning(t *testing.T) {
	if LintConcurrency < 1 {
		t.Errorf("LintConcurrency = %d, want >= 1", LintConcurrency)
	}
	if LintTimeout < time.Second || LintTimeout > 5*time.Minute {
		t.Errorf("LintTimeout = %v, outside [1s, 5m]", LintTimeout)
	}
}
