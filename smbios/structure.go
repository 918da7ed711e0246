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

import (
	"fmt"
	"strings"
)

// headerLen is the length of a structure Header.
const headerLen = 4

// A Handle identifies one structure within a single table snapshot.
// Handles are not stable across table regenerations: firmware may assign
// them differently on every boot.
type Handle uint16

// Handle values reserved by the specification to mean "no structure".
// Fields carrying them must be passed through as-is, not resolved.
const (
	HandleReserved Handle = 0xfffe
	HandleNone     Handle = 0xffff
)

// A Header is a Structure's header.
//
// Length counts the header plus the formatted area only; the trailing
// string-set is excluded and delimited by null terminators instead.
type Header struct {
	Type   uint8
	Length uint8
	Handle Handle
}

func (h Header) String() string {
	return fmt.Sprintf("type: %d, length: %d, handle: %#04x", h.Type, h.Length, uint16(h.Handle))
}

// A Structure is one SMBIOS structure: a header, a formatted area, and the
// decoded string-set that trailed it. Structures are immutable once
// decoded and safe to share between goroutines.
//
// Fields within the formatted area are read through the Field accessors in
// fields.go; typed views over well-known type codes are built on the same
// accessors via Typed.
type Structure struct {
	Header    Header
	Formatted []byte
	Strings   StringTable

	// EndOffset is the position immediately past this structure, string-set
	// terminator included, in the table buffer it was decoded from. When
	// the terminator was missing and the buffer end stood in for it,
	// EndOffset equals the buffer length; the decode records a truncation
	// diagnostic alongside.
	EndOffset int
}

// Raw makes *Structure the fallback TypedStructure for type codes this
// package has no view for.
func (s *Structure) Raw() *Structure { return s }

func (s *Structure) String() string {
	out := s.Header.String()
	if len(s.Strings) > 0 {
		out += fmt.Sprintf(", strings: [%s]", strings.Join(s.Strings, ", "))
	}
	return out
}
