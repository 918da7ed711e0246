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

// A SystemEnclosure is a System Enclosure or Chassis structure (type 3),
// describing one mechanical enclosure. A system with a separate
// peripheral enclosure reports two of these.
type SystemEnclosure struct{ *Structure }

// Manufacturer returns the enclosure manufacturer string.
func (e *SystemEnclosure) Manufacturer() (string, bool) { return e.FieldString(0x04) }

// EnclosureType returns the packed chassis type byte. Bit 7 reports a
// chassis lock; bits 6:0 carry the enumeration value (desktop, tower,
// rack mount chassis, and so on).
func (e *SystemEnclosure) EnclosureType() (uint8, bool) { return e.FieldByte(0x05) }

// Version returns the enclosure version string.
func (e *SystemEnclosure) Version() (string, bool) { return e.FieldString(0x06) }

// SerialNumber returns the enclosure serial number string.
func (e *SystemEnclosure) SerialNumber() (string, bool) { return e.FieldString(0x07) }

// AssetTag returns the asset tag string.
func (e *SystemEnclosure) AssetTag() (string, bool) { return e.FieldString(0x08) }

// BootUpState returns the enclosure state at last boot.
func (e *SystemEnclosure) BootUpState() (uint8, bool) { return e.FieldByte(0x09) }

// PowerSupplyState returns the power supply state at last boot.
func (e *SystemEnclosure) PowerSupplyState() (uint8, bool) { return e.FieldByte(0x0a) }

// ThermalState returns the thermal state at last boot.
func (e *SystemEnclosure) ThermalState() (uint8, bool) { return e.FieldByte(0x0b) }

// SecurityStatus returns the physical security status at last boot.
func (e *SystemEnclosure) SecurityStatus() (uint8, bool) { return e.FieldByte(0x0c) }

// OEMDefined returns the OEM- or BIOS vendor-specific dword.
func (e *SystemEnclosure) OEMDefined() (uint32, bool) { return e.FieldDWord(0x0d) }

// Height returns the enclosure height in rack units. Zero means
// unspecified.
func (e *SystemEnclosure) Height() (uint8, bool) { return e.FieldByte(0x11) }

// NumberOfPowerCords returns the number of power cords. Zero means
// unspecified.
func (e *SystemEnclosure) NumberOfPowerCords() (uint8, bool) { return e.FieldByte(0x12) }

// ContainedElementCount returns the number of contained element records
// following at offset 0x15.
func (e *SystemEnclosure) ContainedElementCount() (uint8, bool) { return e.FieldByte(0x13) }

// ContainedElementRecordLength returns the byte length of each contained
// element record.
func (e *SystemEnclosure) ContainedElementRecordLength() (uint8, bool) { return e.FieldByte(0x14) }

// SKUNumber returns the enclosure SKU string. It floats past the
// variable-length contained element records, so its offset depends on
// their count and record length.
func (e *SystemEnclosure) SKUNumber() (string, bool) {
	n, ok := e.ContainedElementCount()
	m, ok2 := e.ContainedElementRecordLength()
	if !ok || !ok2 {
		return "", false
	}
	return e.FieldString(0x15 + int(n)*int(m))
}
