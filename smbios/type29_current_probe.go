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

// An ElectricalCurrentProbe is an Electrical Current Probe structure
// (type 29), one per probe. Readings are in milliamps unless noted.
type ElectricalCurrentProbe struct{ *Structure }

// Description returns descriptive text about the probe or its location.
func (p *ElectricalCurrentProbe) Description() (string, bool) { return p.FieldString(0x04) }

// LocationAndStatus returns the probe's unpacked location-and-status
// byte.
func (p *ElectricalCurrentProbe) LocationAndStatus() (CurrentProbeLocationAndStatus, bool) {
	raw, ok := p.FieldByte(0x05)
	if !ok {
		return CurrentProbeLocationAndStatus{}, false
	}
	return unpackCurrentProbeLocationAndStatus(raw), true
}

// MaximumValue returns the highest current the probe can read. 0x8000
// means unknown.
func (p *ElectricalCurrentProbe) MaximumValue() (uint16, bool) { return p.FieldWord(0x06) }

// MinimumValue returns the lowest current the probe can read. 0x8000
// means unknown.
func (p *ElectricalCurrentProbe) MinimumValue() (uint16, bool) { return p.FieldWord(0x08) }

// Resolution returns the probe's reading resolution, in tenths of
// milliamps.
func (p *ElectricalCurrentProbe) Resolution() (uint16, bool) { return p.FieldWord(0x0a) }

// Tolerance returns the probe's reading tolerance, plus or minus.
func (p *ElectricalCurrentProbe) Tolerance() (uint16, bool) { return p.FieldWord(0x0c) }

// Accuracy returns the probe's reading accuracy, in hundredths of a
// percent.
func (p *ElectricalCurrentProbe) Accuracy() (uint16, bool) { return p.FieldWord(0x0e) }

// OEMDefined returns the OEM- or BIOS vendor-specific dword.
func (p *ElectricalCurrentProbe) OEMDefined() (uint32, bool) { return p.FieldDWord(0x10) }

// NominalValue returns the probe's nominal reading.
func (p *ElectricalCurrentProbe) NominalValue() (uint16, bool) { return p.FieldWord(0x14) }

// A CurrentProbeStatus is the status component of a probe's packed
// location-and-status byte (bits 7:5).
type CurrentProbeStatus uint8

const (
	CurrentProbeStatusOther          CurrentProbeStatus = 0x01
	CurrentProbeStatusUnknown        CurrentProbeStatus = 0x02
	CurrentProbeStatusOK             CurrentProbeStatus = 0x03
	CurrentProbeStatusNonCritical    CurrentProbeStatus = 0x04
	CurrentProbeStatusCritical       CurrentProbeStatus = 0x05
	CurrentProbeStatusNonRecoverable CurrentProbeStatus = 0x06
)

func (s CurrentProbeStatus) String() string {
	switch s {
	case CurrentProbeStatusOther:
		return "Other"
	case CurrentProbeStatusUnknown:
		return "Unknown"
	case CurrentProbeStatusOK:
		return "OK"
	case CurrentProbeStatusNonCritical:
		return "Non-critical"
	case CurrentProbeStatusCritical:
		return "Critical"
	case CurrentProbeStatusNonRecoverable:
		return "Non-recoverable"
	default:
		return fmt.Sprintf("CurrentProbeStatus(%d)", uint8(s))
	}
}

// A CurrentProbeLocation is the location component of a probe's packed
// location-and-status byte (bits 4:0).
type CurrentProbeLocation uint8

const (
	CurrentProbeLocationOther                  CurrentProbeLocation = 0x01
	CurrentProbeLocationUnknown                CurrentProbeLocation = 0x02
	CurrentProbeLocationProcessor              CurrentProbeLocation = 0x03
	CurrentProbeLocationDisk                   CurrentProbeLocation = 0x04
	CurrentProbeLocationPeripheralBay          CurrentProbeLocation = 0x05
	CurrentProbeLocationSystemManagementModule CurrentProbeLocation = 0x06
	CurrentProbeLocationMotherboard            CurrentProbeLocation = 0x07
	CurrentProbeLocationMemoryModule           CurrentProbeLocation = 0x08
	CurrentProbeLocationProcessorModule        CurrentProbeLocation = 0x09
	CurrentProbeLocationPowerUnit              CurrentProbeLocation = 0x0a
	CurrentProbeLocationAddInCard              CurrentProbeLocation = 0x0b
)

func (l CurrentProbeLocation) String() string {
	switch l {
	case CurrentProbeLocationOther:
		return "Other"
	case CurrentProbeLocationUnknown:
		return "Unknown"
	case CurrentProbeLocationProcessor:
		return "Processor"
	case CurrentProbeLocationDisk:
		return "Disk"
	case CurrentProbeLocationPeripheralBay:
		return "Peripheral Bay"
	case CurrentProbeLocationSystemManagementModule:
		return "System Management Module"
	case CurrentProbeLocationMotherboard:
		return "Motherboard"
	case CurrentProbeLocationMemoryModule:
		return "Memory Module"
	case CurrentProbeLocationProcessorModule:
		return "Processor Module"
	case CurrentProbeLocationPowerUnit:
		return "Power Unit"
	case CurrentProbeLocationAddInCard:
		return "Add-in Card"
	default:
		return fmt.Sprintf("CurrentProbeLocation(%d)", uint8(l))
	}
}

// A CurrentProbeLocationAndStatus is the unpacked form of the probe's
// location-and-status byte. Raw is kept for values newer than this
// package's enumeration tables.
type CurrentProbeLocationAndStatus struct {
	Raw      uint8
	Status   CurrentProbeStatus
	Location CurrentProbeLocation
}

func unpackCurrentProbeLocationAndStatus(raw uint8) CurrentProbeLocationAndStatus {
	return CurrentProbeLocationAndStatus{
		Raw:      raw,
		Status:   CurrentProbeStatus(raw >> 5),
		Location: CurrentProbeLocation(raw & 0x1f),
	}
}
