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

import "time"

// Topology and template locations, relative to an openwrt-tests checkout.
const (
	// LabnetFile is the topology document at the checkout root.
	LabnetFile = "labnet.yaml"

	// PlacesTemplate is the coordinator role's places template.
	PlacesTemplate = "ansible/files/coordinator/places.yaml.j2"

	// TestsDirName is the checkout directory name looked for during detection.
	TestsDirName = "openwrt-tests"
)

// Coordinator output.
const (
	// Lab is the lab rendered when none is given.
	Lab = "labgrid-fcefyn"

	// CoordinatorDir is the coordinator directory under the user's home.
	CoordinatorDir = "labgrid-coordinator"

	// PlacesFile is the rendered inventory file name.
	PlacesFile = "places.yaml"
)

// Lint tuning.
const (
	// LintConcurrency bounds parallel target-file checks.
	LintConcurrency = 8

	// LintTimeout caps a whole lint run, target checks included.
	LintTimeout = 30 * time.Second
)
