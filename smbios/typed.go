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

// Type codes with typed views in this package. The full specification
// defines dozens more; views not listed here fall back to the raw
// Structure.
const (
	TypeSystemInformation      uint8 = 1
	TypeSystemEnclosure        uint8 = 3
	TypeGroupAssociations      uint8 = 14
	TypeElectricalCurrentProbe uint8 = 29
)

// A TypedStructure is a view over one raw Structure. Views hold no state
// of their own: every accessor reads the underlying bytes through the
// Field accessors, so constructing one is free.
type TypedStructure interface {
	Raw() *Structure
}

// Typed returns the typed view for s's type code. Type codes without a
// view in this package, including all OEM-defined codes, come back as the
// raw *Structure itself.
func Typed(s *Structure) TypedStructure {
	switch s.Header.Type {
	case TypeSystemInformation:
		return &SystemInformation{s}
	case TypeSystemEnclosure:
		return &SystemEnclosure{s}
	case TypeGroupAssociations:
		return &GroupAssociations{s}
	case TypeElectricalCurrentProbe:
		return &ElectricalCurrentProbe{s}
	}
	return s
}
