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

//go:build linux

package smbios

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// sysfs locations for SMBIOS information.
const (
	sysfsDMI        = "/sys/firmware/dmi/tables/DMI"
	sysfsEntryPoint = "/sys/firmware/dmi/tables/smbios_entry_point"
)

// stream opens the SMBIOS entry point and an SMBIOS structure stream.
func stream() (io.ReadCloser, EntryPoint, error) {
	// The sysfs table files have been exposed since Linux 4.2. Scanning
	// physical memory for the anchor is deliberately not supported.
	if _, err := os.Stat(sysfsEntryPoint); err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.Errorf("no SMBIOS entry point at %q; kernel too old or firmware tables absent", sysfsEntryPoint)
		}
		return nil, nil, err
	}

	return sysfsStream()
}

// sysfsStream reads the SMBIOS entry point and structure stream from the
// sysfs locations present in modern kernels.
func sysfsStream() (io.ReadCloser, EntryPoint, error) {
	epf, err := os.Open(sysfsEntryPoint)
	if err != nil {
		return nil, nil, err
	}
	defer epf.Close()

	ep, err := ParseEntryPoint(epf)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "parsing %q", sysfsEntryPoint)
	}

	sf, err := os.Open(sysfsDMI)
	if err != nil {
		return nil, nil, err
	}

	return sf, ep, nil
}
