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

package resolver

import (
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/labgrid-fcefyn/labnet/pkg/errors"
	"github.com/labgrid-fcefyn/labnet/pkg/topology"
)

// Kind tells how an identifier matched.
type Kind string

const (
	// KindDevice means the identifier is a canonical device name.
	KindDevice Kind = "device"
	// KindInstance means the identifier is a lab-scoped instance alias.
	KindInstance Kind = "instance"
)

// Reason classifies a failed resolution.
type Reason string

const (
	// ReasonUnknownIdentifier means nothing in the topology matched.
	ReasonUnknownIdentifier Reason = "unknown_identifier"
	// ReasonDanglingAlias means the first matching alias belongs to a base
	// device that has no entry under devices.
	ReasonDanglingAlias Reason = "dangling_alias"
)

// Context keys set on resolution errors.
const (
	ContextIdentifier = "identifier"
	ContextReason     = "reason"
	ContextLab        = "lab"
	ContextDevice     = "device"
)

// Result is a successful resolution.
type Result struct {
	Identifier string `json:"identifier" yaml:"identifier"`
	Kind       Kind   `json:"kind" yaml:"kind"`
	// Device is the canonical device the identifier resolved to.
	Device string `json:"device" yaml:"device"`
	// Lab is set for instance matches.
	Lab string `json:"lab,omitempty" yaml:"lab,omitempty"`
	// Path is the target file, targets/<stem>.yaml.
	Path string `json:"path" yaml:"path"`
}

// Resolve maps identifier to its target file.
//
// A canonical device name resolves directly. Otherwise labs are scanned in
// document order, and within each lab its device_instances in document
// order; the first group listing identifier whose base device is defined
// wins, with no ambiguity check across labs. Groups whose base device is
// missing from devices are skipped. When only such groups list identifier
// the lookup fails with ReasonDanglingAlias naming the first of them,
// instead of falling back to the base device name.
//
// Every failure carries errors.ErrCodeNotFound; ReasonOf tells the two
// cases apart.
func Resolve(topo *topology.Topology, identifier string) (*Result, error) {
	if spec, ok := topo.Device(identifier); ok {
		res := &Result{
			Identifier: identifier,
			Kind:       KindDevice,
			Device:     spec.Name,
			Path:       spec.TargetPath(),
		}
		observe(res, nil)
		return res, nil
	}

	var dangling *danglingMatch
	for _, lab := range topo.Labs() {
		for _, group := range lab.Instances {
			if !group.Contains(identifier) {
				continue
			}

			spec, ok := topo.Device(group.Device)
			if !ok {
				if dangling == nil {
					dangling = &danglingMatch{lab: lab.Name, device: group.Device}
				}
				slog.Debug("skipping instance group with undefined device",
					"identifier", identifier,
					"lab", lab.Name,
					"device", group.Device,
				)
				continue
			}

			res := &Result{
				Identifier: identifier,
				Kind:       KindInstance,
				Device:     spec.Name,
				Lab:        lab.Name,
				Path:       spec.TargetPath(),
			}
			slog.Debug("resolved instance alias",
				"identifier", identifier,
				"lab", lab.Name,
				"device", spec.Name,
			)
			observe(res, nil)
			return res, nil
		}
	}

	if dangling != nil {
		err := errors.NewWithContext(errors.ErrCodeNotFound,
			fmt.Sprintf("instance %q in lab %q refers to device %q, which is not defined in devices",
				identifier, dangling.lab, dangling.device),
			map[string]any{
				ContextIdentifier: identifier,
				ContextReason:     ReasonDanglingAlias,
				ContextLab:        dangling.lab,
				ContextDevice:     dangling.device,
			})
		observe(nil, err)
		return nil, err
	}

	err := errors.NewWithContext(errors.ErrCodeNotFound,
		fmt.Sprintf("device or instance %q not found in %s", identifier, sourceName(topo)),
		map[string]any{
			ContextIdentifier: identifier,
			ContextReason:     ReasonUnknownIdentifier,
		})
	observe(nil, err)
	return nil, err
}

type danglingMatch struct {
	lab    string
	device string
}

// ResolvePath is Resolve returning only the target path.
func ResolvePath(topo *topology.Topology, identifier string) (string, error) {
	res, err := Resolve(topo, identifier)
	if err != nil {
		return "", err
	}
	return res.Path, nil
}

// ReasonOf returns the failure reason recorded on a resolution error.
func ReasonOf(err error) (Reason, bool) {
	var se *errors.StructuredError
	if !stderrors.As(err, &se) || se.Code != errors.ErrCodeNotFound {
		return "", false
	}
	r, ok := se.Context[ContextReason].(Reason)
	return r, ok
}

func sourceName(topo *topology.Topology) string {
	if topo.Source == "" {
		return "topology"
	}
	return topo.Source
}
