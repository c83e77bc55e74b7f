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

// Package topology loads the lab-topology document (labnet.yaml).
//
// The document has two top-level mappings:
//
//	devices:
//	  linksys_e8450: {}
//	  openwrt_one:
//	    target_file: openwrt_one_snand
//	labs:
//	  labgrid-fcefyn:
//	    device_instances:
//	      linksys_e8450:
//	        - belkin_rt3200_1
//	        - belkin_rt3200_2
//
// Labs, devices and device_instances keep their document order, which the
// resolver relies on for first-match-wins lookups. The full decoded
// document stays available through Raw for template rendering.
package topology
