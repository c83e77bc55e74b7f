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
// Package header provides the envelope for labnet's machine-readable output.
//
// Every yaml, json or table document written by the CLI has the same shape:
//
//	kind: Resolution
//	apiVersion: labnet.fcefyn.dev/v1
//	metadata:
//	  timestamp: "2025-01-15T10:30:00Z"
//	  version: v1.0.0
//	  run_id: 7f1c...
//	spec:
//	  identifier: belkin_rt3200_1
//	  kind: instance
//	  device: linksys_e8450
//	  lab: labgrid-fcefyn
//	  path: targets/linksys_e8450.yaml
//
// Kinds are Resolution, PlacesSummary and LintReport.
package header
