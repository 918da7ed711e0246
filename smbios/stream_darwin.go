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

//go:build darwin

package smbios

import (
	"bytes"
	"encoding/hex"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// ioreg exposes the AppleSMBIOS service's copies of the entry point and
// table as hex-dumped properties.
const (
	propEntryPoint = `"SMBIOS-EPS"`
	propTable      = `"SMBIOS"`
)

// stream opens the SMBIOS entry point and an SMBIOS structure stream.
func stream() (io.ReadCloser, EntryPoint, error) {
	buf := &bytes.Buffer{}
	cmd := exec.Command("ioreg", "-rd1", "-c", "AppleSMBIOS")
	cmd.Stdout = buf
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, nil, errors.Wrap(err, "running ioreg")
	}

	epHex, tableHex, err := extractSMBIOS(buf.String())
	if err != nil {
		return nil, nil, err
	}

	eps, err := hex.DecodeString(epHex)
	if err != nil {
		return nil, nil, errors.Wrap(err, "decoding entry point property")
	}
	data, err := hex.DecodeString(tableHex)
	if err != nil {
		return nil, nil, errors.Wrap(err, "decoding table property")
	}

	ep, err := ParseEntryPoint(bytes.NewReader(eps))
	if err != nil {
		return nil, nil, err
	}

	return io.NopCloser(bytes.NewReader(data)), ep, nil
}

// extractSMBIOS pulls the entry point and table hex strings out of ioreg
// property-list output.
func extractSMBIOS(lines string) (epHex, tableHex string, err error) {
	for _, line := range strings.Split(lines, "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		switch strings.TrimSpace(key) {
		case propEntryPoint:
			epHex = trimAngle(value)
		case propTable:
			tableHex = trimAngle(value)
		}
	}

	if epHex == "" || tableHex == "" {
		return "", "", errors.Errorf("missing %s or %s in ioreg output:\n%s", propEntryPoint, propTable, lines)
	}
	return epHex, tableHex, nil
}

// trimAngle strips the <...> wrapping ioreg puts around data values.
func trimAngle(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "<")
	return strings.TrimRight(s, ">")
}
