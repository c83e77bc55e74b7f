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

// Package serializer reads and writes labnet documents and reports.
//
// Reading is used by the topology store to decode labnet.yaml; writing is
// used by the CLI to emit place summaries and lint reports.
//
// # Supported Formats
//
//   - yaml: gopkg.in/yaml.v3, the format of labnet.yaml itself
//   - json: encoding/json, for machine consumers in CI
//   - table: flattened FIELD/VALUE listing for terminals (write-only)
//
// # Usage
//
//	reader, err := serializer.NewFileReader(serializer.FormatYAML, "labnet.yaml")
//	if err != nil {
//	    return err
//	}
//	defer reader.Close()
//
//	var node yaml.Node
//	if err := reader.Deserialize(&node); err != nil {
//	    return err
//	}
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatJSON, "")
//	defer w.Close()
//	return w.Serialize(ctx, summary)
//
// WriteToFile writes raw bytes, creating parent directories first; the
// renderer uses it to place the generated places.yaml.
package serializer
