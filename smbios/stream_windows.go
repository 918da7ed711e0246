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

//go:build windows

package smbios

import (
	"bytes"
	"encoding/binary"
	"io"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

// 'RSMB' selects the raw SMBIOS firmware table provider.
const firmwareTableProviderSigRSMB uint32 = 0x52534d42

// rawSMBIOSDataHeaderSize is the fixed preamble GetSystemFirmwareTable
// prepends to the table bytes.
const rawSMBIOSDataHeaderSize = 8

var (
	libKernel32                = windows.NewLazySystemDLL("kernel32.dll")
	procGetSystemFirmwareTable = libKernel32.NewProc("GetSystemFirmwareTable")
)

// nativeEndian returns the native byte order of this system.
func nativeEndian() binary.ByteOrder {
	// Determine endianness by interpreting a uint16 as a byte slice.
	v := uint16(1)
	b := *(*[2]byte)(unsafe.Pointer(&v))

	if b[0] == 1 {
		return binary.LittleEndian
	}

	return binary.BigEndian
}

// A WindowsEntryPoint carries the SMBIOS table information returned by
// GetSystemFirmwareTable. The call does not expose the underlying entry
// point record, so only the version and size survive; there is no
// checksum to verify.
type WindowsEntryPoint struct {
	Size         uint32
	MajorVersion byte
	MinorVersion byte
	Revision     byte
}

// Table implements EntryPoint. The returned address is always 0, as the
// table bytes are handed over directly rather than located in memory.
func (e *WindowsEntryPoint) Table() (address, size int) {
	return 0, int(e.Size)
}

// Version implements EntryPoint.
func (e *WindowsEntryPoint) Version() (major, minor, revision int) {
	return int(e.MajorVersion), int(e.MinorVersion), int(e.Revision)
}

// Valid implements EntryPoint. The firmware table API exposes no checksum
// byte, so there is nothing to invalidate.
func (e *WindowsEntryPoint) Valid() bool { return true }

func stream() (io.ReadCloser, EntryPoint, error) {
	// Call first with an empty buffer to learn the required size.
	r1, _, err := procGetSystemFirmwareTable.Call(
		uintptr(firmwareTableProviderSigRSMB),
		uintptr(0),
		uintptr(0),
		uintptr(0),
	)
	if r1 == 0 {
		return nil, nil, errors.Wrap(err, "determining firmware table buffer size")
	}

	bufferSize := uint32(r1)
	buffer := make([]byte, bufferSize)

	r1, _, err = procGetSystemFirmwareTable.Call(
		uintptr(firmwareTableProviderSigRSMB),
		uintptr(0),
		uintptr(unsafe.Pointer(&buffer[0])),
		uintptr(bufferSize),
	)
	if uint32(r1) != bufferSize {
		return nil, nil, errors.Wrapf(err, "reading SMBIOS data: expected %d bytes, read %d", bufferSize, r1)
	}

	return windowsStream(buffer)
}

// windowsStream interprets a RawSMBIOSData buffer as returned by
// GetSystemFirmwareTable for the RSMB provider:
//
//	struct RawSMBIOSData {
//		BYTE  Used20CallingMethod;
//		BYTE  SMBIOSMajorVersion;
//		BYTE  SMBIOSMinorVersion;
//		BYTE  DMIRevision;
//		DWORD Length;
//		BYTE  SMBIOSTableData[];
//	}
func windowsStream(buffer []byte) (io.ReadCloser, EntryPoint, error) {
	if len(buffer) < rawSMBIOSDataHeaderSize {
		return nil, nil, errors.Errorf("RawSMBIOSData header needs %d bytes, got %d", rawSMBIOSDataHeaderSize, len(buffer))
	}

	tableSize := nativeEndian().Uint32(buffer[4:8])
	if int(tableSize) > len(buffer)-rawSMBIOSDataHeaderSize {
		return nil, nil, errors.Errorf("RawSMBIOSData length %d exceeds the %d table bytes supplied",
			tableSize, len(buffer)-rawSMBIOSDataHeaderSize)
	}

	ep := &WindowsEntryPoint{
		MajorVersion: buffer[1],
		MinorVersion: buffer[2],
		Revision:     buffer[3],
		Size:         tableSize,
	}

	tableBuff := buffer[rawSMBIOSDataHeaderSize : rawSMBIOSDataHeaderSize+tableSize]

	return io.NopCloser(bytes.NewReader(tableBuff)), ep, nil
}
