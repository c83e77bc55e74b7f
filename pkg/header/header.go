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
package header

import (
	"time"
)

// APIVersion is the schema version of labnet's machine-readable output.
const APIVersion = "labnet.fcefyn.dev/v1"

// Metadata keys.
const (
	MetadataTimestamp = "timestamp"
	MetadataVersion   = "version"
	MetadataRunID     = "run_id"
)

// Kind identifies the payload carried by a Document.
type Kind string

const (
	KindResolution    Kind = "Resolution"
	KindPlacesSummary Kind = "PlacesSummary"
	KindLintReport    Kind = "LintReport"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid reports whether k is a known kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindResolution, KindPlacesSummary, KindLintReport:
		return true
	default:
		return false
	}
}

// now is swapped in tests.
var now = time.Now

// Option is a functional option for configuring Header instances.
type Option func(*Header)

// WithMetadata sets a metadata key/value pair.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if value == "" {
			return
		}
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithVersion records the labnet version that produced the output.
func WithVersion(version string) Option {
	return WithMetadata(MetadataVersion, version)
}

// WithRunID records the invocation's run id.
func WithRunID(id string) Option {
	return WithMetadata(MetadataRunID, id)
}

// Header carries the kind, schema version and provenance of an output document.
type Header struct {
	Kind       Kind              `json:"kind" yaml:"kind"`
	APIVersion string            `json:"apiVersion" yaml:"apiVersion"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// New creates a Header of kind stamped with the current UTC time.
func New(kind Kind, opts ...Option) *Header {
	h := &Header{
		Kind:       kind,
		APIVersion: APIVersion,
		Metadata: map[string]string{
			MetadataTimestamp: now().UTC().Format(time.RFC3339),
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Document is a Header followed by its payload.
type Document struct {
	Header `json:",inline" yaml:",inline"`

	Spec any `json:"spec" yaml:"spec"`
}

// NewDocument wraps spec in a Document of kind.
func NewDocument(kind Kind, spec any, opts ...Option) *Document {
	return &Document{
		Header: *New(kind, opts...),
		Spec:   spec,
	}
}
