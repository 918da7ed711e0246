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
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Anchor strings used to detect entry points.
var (
	anchor32  = []byte("_SM_")
	anchor64  = []byte("_SM3_")
	anchorDMI = []byte("_DMI_")
)

// An EntryPoint is an SMBIOS entry point, in either its 32-bit (SMBIOS
// 2.1, "_SM_") or 64-bit (SMBIOS 3.0, "_SM3_") form. It locates and
// versions the structure table.
//
// Use a type assertion to access form-specific fields.
type EntryPoint interface {
	// Version returns the SMBIOS specification version advertised by the
	// entry point. Revision is always zero for the 32-bit form.
	Version() (major, minor, revision int)

	// Table returns the physical address and byte length of the structure
	// table. The 64-bit form carries a maximum size rather than an exact
	// length; the table is walked to its end-of-table marker instead.
	Table() (address, size int)

	// Valid reports whether the entry point's checksums summed to zero.
	// Firmware ships bad checksums often enough that a mismatch does not
	// fail parsing; callers choose how much to trust the parsed fields.
	Valid() bool
}

// ParseEntryPoint parses an EntryPoint from the input stream. An
// unrecognized anchor is fatal: without it the buffer is not an SMBIOS
// entry point at all. A checksum mismatch is not; it is surfaced through
// the EntryPoint's Valid method.
func ParseEntryPoint(r io.Reader) (EntryPoint, error) {
	// Prevent unbounded reads since this structure should be small.
	b, err := io.ReadAll(io.LimitReader(r, 64))
	if err != nil {
		return nil, errors.Wrap(err, "reading entry point")
	}

	if l := len(b); l < 4 {
		return nil, errors.Errorf("too few bytes for SMBIOS entry point anchor: %d", l)
	}

	switch {
	case bytes.HasPrefix(b, anchor32):
		return parse32(b)
	case bytes.HasPrefix(b, anchor64):
		return parse64(b)
	}

	return nil, errors.Errorf("unrecognized SMBIOS entry point anchor: %q", b[0:4])
}

var _ EntryPoint = &EntryPoint32Bit{}

// EntryPoint32Bit is the SMBIOS 32-bit Entry Point structure, used
// starting in SMBIOS 2.1.
type EntryPoint32Bit struct {
	Anchor                string
	Checksum              uint8
	Length                uint8
	Major                 uint8
	Minor                 uint8
	MaxStructureSize      uint16
	EntryPointRevision    uint8
	FormattedArea         [5]byte
	IntermediateAnchor    string
	IntermediateChecksum  uint8
	StructureTableLength  uint16
	StructureTableAddress uint32
	NumberStructures      uint16
	BCDRevision           uint8
	ChecksumValid         bool
}

// Version implements EntryPoint.
func (e *EntryPoint32Bit) Version() (major, minor, revision int) {
	return int(e.Major), int(e.Minor), 0
}

// Table implements EntryPoint.
func (e *EntryPoint32Bit) Table() (address, size int) {
	return int(e.StructureTableAddress), int(e.StructureTableLength)
}

// Valid implements EntryPoint.
func (e *EntryPoint32Bit) Valid() bool { return e.ChecksumValid }

// parse32 parses an EntryPoint32Bit from b.
func parse32(b []byte) (*EntryPoint32Bit, error) {
	l := len(b)

	// Correct minimum length as of SMBIOS 3.1.1.
	const expLen = 31
	if l < expLen {
		return nil, errors.Errorf("expected SMBIOS 32-bit entry point length of at least %d, but got: %d", expLen, l)
	}

	length := b[5]
	if l != int(length) {
		return nil, errors.Errorf("expected SMBIOS 32-bit entry point length %d, but got: %d", length, l)
	}

	// Look for the intermediate anchor with DMI magic.
	iAnchor := b[16:21]
	if !bytes.Equal(iAnchor, anchorDMI) {
		return nil, errors.Errorf("incorrect DMI magic in SMBIOS 32-bit entry point: %q", iAnchor)
	}

	// Both the entry point checksum and the intermediate checksum over the
	// DMI sub-span must hold for the record to be marked valid.
	valid := checksum(b) && checksum(b[16:31])

	ep := &EntryPoint32Bit{
		Anchor:                string(b[0:4]),
		Checksum:              b[4],
		Length:                length,
		Major:                 b[6],
		Minor:                 b[7],
		MaxStructureSize:      binary.LittleEndian.Uint16(b[8:10]),
		EntryPointRevision:    b[10],
		IntermediateAnchor:    string(iAnchor),
		IntermediateChecksum:  b[21],
		StructureTableLength:  binary.LittleEndian.Uint16(b[22:24]),
		StructureTableAddress: binary.LittleEndian.Uint32(b[24:28]),
		NumberStructures:      binary.LittleEndian.Uint16(b[28:30]),
		BCDRevision:           b[30],
		ChecksumValid:         valid,
	}
	copy(ep.FormattedArea[:], b[10:15])

	return ep, nil
}

var _ EntryPoint = &EntryPoint64Bit{}

// EntryPoint64Bit is the SMBIOS 64-bit Entry Point structure, used
// starting in SMBIOS 3.0.
type EntryPoint64Bit struct {
	Anchor                string
	Checksum              uint8
	Length                uint8
	Major                 uint8
	Minor                 uint8
	Revision              uint8
	EntryPointRevision    uint8
	Reserved              uint8
	StructureTableMaxSize uint32
	StructureTableAddress uint64
	ChecksumValid         bool
}

// Version implements EntryPoint.
func (e *EntryPoint64Bit) Version() (major, minor, revision int) {
	return int(e.Major), int(e.Minor), int(e.Revision)
}

// Table implements EntryPoint. The reported size is the maximum table
// size; the walk to the end-of-table marker bounds the real one.
func (e *EntryPoint64Bit) Table() (address, size int) {
	return int(e.StructureTableAddress), int(e.StructureTableMaxSize)
}

// Valid implements EntryPoint.
func (e *EntryPoint64Bit) Valid() bool { return e.ChecksumValid }

// parse64 parses an EntryPoint64Bit from b.
func parse64(b []byte) (*EntryPoint64Bit, error) {
	l := len(b)

	// Correct minimum length as of SMBIOS 3.1.1.
	const expLen = 24
	if l < expLen {
		return nil, errors.Errorf("expected SMBIOS 64-bit entry point length of at least %d, but got: %d", expLen, l)
	}

	length := b[6]
	if l != int(length) {
		return nil, errors.Errorf("expected SMBIOS 64-bit entry point length %d, but got: %d", length, l)
	}

	return &EntryPoint64Bit{
		Anchor:                string(b[0:5]),
		Checksum:              b[5],
		Length:                length,
		Major:                 b[7],
		Minor:                 b[8],
		Revision:              b[9],
		EntryPointRevision:    b[10],
		Reserved:              b[11],
		StructureTableMaxSize: binary.LittleEndian.Uint32(b[12:16]),
		StructureTableAddress: binary.LittleEndian.Uint64(b[16:24]),
		ChecksumValid:         checksum(b),
	}, nil
}

// checksum reports whether b sums to zero modulo 256. The producer chooses
// the checksum byte so that a conformant record's bytes cancel out.
func checksum(b []byte) bool {
	var sum uint8
	for _, c := range b {
		sum += c
	}
	return sum == 0
}
