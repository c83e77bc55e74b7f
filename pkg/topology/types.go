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

import "fmt"

// Document keys understood by the typed model.
const (
	KeyLabs            = "labs"
	KeyDevices         = "devices"
	KeyDeviceInstances = "device_instances"
	KeyTargetFile      = "target_file"
)

// TargetsDir is the directory prefix of every resolved target file.
const TargetsDir = "targets"

// DeviceSpec describes one physical device class.
type DeviceSpec struct {
	// Name is the canonical identifier, equal to its key under devices.
	Name string `json:"name" yaml:"name"`

	// TargetFile overrides the target-config filename stem when set.
	TargetFile string `json:"target_file,omitempty" yaml:"target_file,omitempty"`
}

// Stem returns the target-config filename stem: TargetFile when set,
// the canonical name otherwise.
func (d *DeviceSpec) Stem() string {
	if d.TargetFile != "" {
		return d.TargetFile
	}
	return d.Name
}

// TargetPath returns the target file path for the device, targets/<stem>.yaml.
func (d *DeviceSpec) TargetPath() string {
	return fmt.Sprintf("%s/%s.yaml", TargetsDir, d.Stem())
}

// InstanceGroup lists the aliases of one base device within a lab.
type InstanceGroup struct {
	// Device is the base (canonical) device name.
	Device string `json:"device" yaml:"device"`

	// Aliases identify physical units of Device, in document order.
	Aliases []string `json:"aliases" yaml:"aliases"`
}

// Contains reports whether alias is listed in the group.
func (g *InstanceGroup) Contains(alias string) bool {
	for _, a := range g.Aliases {
		if a == alias {
			return true
		}
	}
	return false
}

// Lab is a physical or logical test site.
type Lab struct {
	Name string `json:"name" yaml:"name"`

	// Instances holds the device_instances mapping in document order.
	Instances []InstanceGroup `json:"device_instances" yaml:"device_instances"`
}

// AliasCount returns the number of aliases across all groups.
func (l *Lab) AliasCount() int {
	n := 0
	for i := range l.Instances {
		n += len(l.Instances[i].Aliases)
	}
	return n
}

// Topology is the parsed lab-topology document. It is read-only after Load.
type Topology struct {
	// Source is the path or label the document was loaded from.
	Source string

	labs    []*Lab
	devices []*DeviceSpec

	labIndex    map[string]*Lab
	deviceIndex map[string]*DeviceSpec

	raw     map[string]any
	ordered *Mapping
}

// Labs returns the labs in document order.
func (t *Topology) Labs() []*Lab {
	return t.labs
}

// Devices returns the device specs in document order.
func (t *Topology) Devices() []*DeviceSpec {
	return t.devices
}

// Lab returns the named lab.
func (t *Topology) Lab(name string) (*Lab, bool) {
	l, ok := t.labIndex[name]
	return l, ok
}

// Device returns the named canonical device.
func (t *Topology) Device(name string) (*DeviceSpec, bool) {
	d, ok := t.deviceIndex[name]
	return d, ok
}

// LabNames returns lab names in document order.
func (t *Topology) LabNames() []string {
	names := make([]string, 0, len(t.labs))
	for _, l := range t.labs {
		names = append(names, l.Name)
	}
	return names
}

// Raw returns the whole decoded document, including keys the typed model
// ignores, as plain maps. Callers must not modify it.
func (t *Topology) Raw() map[string]any {
	return t.raw
}

// Ordered returns the whole document with mappings in document order.
// Templates consume this view. Callers must not modify it.
func (t *Topology) Ordered() *Mapping {
	return t.ordered
}
