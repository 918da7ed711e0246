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

import "github.com/google/uuid"

// A SystemInformation is a System Information structure (type 1). It
// carries the machine-level identity fields: manufacturer, product,
// serial, and the system UUID hypervisors and asset trackers key on.
type SystemInformation struct{ *Structure }

// Manufacturer returns the system manufacturer string.
func (si *SystemInformation) Manufacturer() (string, bool) { return si.FieldString(0x04) }

// ProductName returns the product name string.
func (si *SystemInformation) ProductName() (string, bool) { return si.FieldString(0x05) }

// Version returns the system version string.
func (si *SystemInformation) Version() (string, bool) { return si.FieldString(0x06) }

// SerialNumber returns the system serial number string.
func (si *SystemInformation) SerialNumber() (string, bool) { return si.FieldString(0x07) }

// UUID returns the system UUID.
//
// The wire layout stores the time-low, time-mid, and time-high fields
// little-endian, so they are byte-swapped into RFC 4122 order here. An
// all-0x00 value means the UUID is not settable and an all-0xFF value
// means it is not present; both report ok == false.
func (si *SystemInformation) UUID() (uuid.UUID, bool) {
	var raw [16]byte
	for i := range raw {
		b, ok := si.FieldByte(0x08 + i)
		if !ok {
			return uuid.UUID{}, false
		}
		raw[i] = b
	}

	allZero, allFF := true, true
	for _, b := range raw {
		if b != 0x00 {
			allZero = false
		}
		if b != 0xff {
			allFF = false
		}
	}
	if allZero || allFF {
		return uuid.UUID{}, false
	}

	var u uuid.UUID
	u[0], u[1], u[2], u[3] = raw[3], raw[2], raw[1], raw[0]
	u[4], u[5] = raw[5], raw[4]
	u[6], u[7] = raw[7], raw[6]
	copy(u[8:], raw[8:])
	return u, true
}

// WakeUpType returns the enumerated event that last powered the system on.
func (si *SystemInformation) WakeUpType() (uint8, bool) { return si.FieldByte(0x18) }

// SKUNumber returns the SKU number string.
func (si *SystemInformation) SKUNumber() (string, bool) { return si.FieldString(0x19) }

// Family returns the family string grouping systems that share a board
// design.
func (si *SystemInformation) Family() (string, bool) { return si.FieldString(0x1a) }
