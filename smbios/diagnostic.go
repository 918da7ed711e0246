// Copyright 2023-2024 hwinspect.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package smbios

import "fmt"

// A DiagnosticKind classifies a defect found in firmware-supplied data.
type DiagnosticKind int

const (
	// DiagStructureMalformed is a header whose length field is smaller
	// than the header itself. No boundary signal survives past it, so
	// walking stops there.
	DiagStructureMalformed DiagnosticKind = iota

	// DiagTableTruncated is a buffer that ended mid-structure or without a
	// string-set terminator.
	DiagTableTruncated

	// DiagChecksumMismatch is an entry point whose bytes do not sum to
	// zero.
	DiagChecksumMismatch

	// DiagDuplicateHandle is two structures sharing one handle. The first
	// occurrence stays in the handle index.
	DiagDuplicateHandle
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagStructureMalformed:
		return "structure malformed"
	case DiagTableTruncated:
		return "table truncated"
	case DiagChecksumMismatch:
		return "checksum mismatch"
	case DiagDuplicateHandle:
		return "duplicate handle"
	default:
		return fmt.Sprintf("DiagnosticKind(%d)", int(k))
	}
}

// A Diagnostic records a defect that did not stop the decode. Structures
// decoded before the defect remain valid; callers decide how much of a
// flawed table to trust.
type Diagnostic struct {
	Kind    DiagnosticKind
	Offset  int
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s at offset %#x: %s", d.Kind, d.Offset, d.Message)
}
