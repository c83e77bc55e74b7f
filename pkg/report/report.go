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

package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/labgrid-fcefyn/labnet/pkg/topology"
)

// PlaceMarker is the substring that marks a place key in rendered output.
const PlaceMarker = "labgrid-"

// Method records how a Summary was computed.
type Method string

const (
	// MethodScan counts place-like lines in rendered text.
	MethodScan Method = "scan"
	// MethodTopology counts instance aliases in the topology.
	MethodTopology Method = "topology"
)

// Summary lists generated places for operator feedback. It is informational
// only; nothing downstream depends on it being exact.
type Summary struct {
	Method Method   `json:"method" yaml:"method"`
	Lab    string   `json:"lab,omitempty" yaml:"lab,omitempty"`
	Output string   `json:"output,omitempty" yaml:"output,omitempty"`
	Count  int      `json:"count" yaml:"count"`
	Places []string `json:"places" yaml:"places"`
}

// Summarize scans rendered text for place entries: lines that, trimmed,
// end with a colon and contain "labgrid-". This is a heuristic over text,
// not a YAML parse.
func Summarize(rendered string) *Summary {
	s := &Summary{Method: MethodScan, Places: []string{}}

	sc := bufio.NewScanner(strings.NewReader(rendered))
	sc.Buffer(make([]byte, 0, 64*1024), len(rendered)+1)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !strings.HasSuffix(line, ":") || !strings.Contains(line, PlaceMarker) {
			continue
		}
		s.Places = append(s.Places, strings.TrimSpace(strings.TrimSuffix(line, ":")))
	}

	s.Count = len(s.Places)
	placesGenerated.WithLabelValues(string(MethodScan)).Set(float64(s.Count))
	return s
}

// FromTopology lists one place per instance alias of lab, named
// "<lab>-<alias>", in document order. It does not look at rendered output.
func FromTopology(topo *topology.Topology, lab string) (*Summary, error) {
	l, ok := topo.Lab(lab)
	if !ok {
		return nil, fmt.Errorf("lab %q not found", lab)
	}

	s := &Summary{Method: MethodTopology, Lab: lab, Places: make([]string, 0, l.AliasCount())}
	for _, g := range l.Instances {
		for _, alias := range g.Aliases {
			s.Places = append(s.Places, fmt.Sprintf("%s-%s", lab, alias))
		}
	}

	s.Count = len(s.Places)
	placesGenerated.WithLabelValues(string(MethodTopology)).Set(float64(s.Count))
	return s, nil
}

// Print writes the human-readable listing.
func (s *Summary) Print(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "✓ places.yaml generated successfully")
	if s.Output != "" {
		fmt.Fprintf(bw, "  Output: %s\n", s.Output)
	}
	if s.Lab != "" {
		fmt.Fprintf(bw, "  Lab: %s\n", s.Lab)
	}
	fmt.Fprintf(bw, "  Places generated: %d\n", s.Count)
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "Generated places:")
	for _, p := range s.Places {
		fmt.Fprintf(bw, "  - %s\n", p)
	}
	return bw.Flush()
}
