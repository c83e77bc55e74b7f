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

// Package config holds per-invocation settings for labnet commands.
//
// Paths come from flags or environment variables first. Anything left
// empty can be filled from an openwrt-tests checkout found by DetectRoot,
// which probes an injected candidate list through an injected stat
// function so tests never touch the real home directory:
//
//	cfg := config.NewConfig(
//	    config.WithLab("labgrid-hsn"),
//	    config.WithOutputPath(config.DefaultOutputPath(home)),
//	)
//	if cfg.NeedsRoot() {
//	    if root, ok := config.DetectFromEnvironment(); ok {
//	        cfg.ApplyRoot(root)
//	    }
//	}
//	if err := cfg.ValidateForRender(); err != nil {
//	    return err
//	}
package config
