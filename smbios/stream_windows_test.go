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
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

// makeRawSMBIOSData creates a buffer with a valid RawSMBIOSData struct
// with the given version and table bytes.
func makeRawSMBIOSData(major, minor, revision byte, table []byte) []byte {
	buffer := make([]byte, rawSMBIOSDataHeaderSize+len(table))
	buffer[1] = major
	buffer[2] = minor
	buffer[3] = revision
	nativeEndian().PutUint32(buffer[4:8], uint32(len(table)))
	copy(buffer[8:], table)
	return buffer
}

func Test_windowsStream(t *testing.T) {
	const (
		major    = byte(2)
		minor    = byte(4)
		revision = byte(1)
	)

	tests := []struct {
		name   string
		buffer []byte
		table  []byte
		ok     bool
	}{
		{
			name:   "empty buffer",
			buffer: []byte{},
		},
		{
			name:   "short buffer",
			buffer: []byte{0, 1, 2, 3, 4, 5, 6},
		},
		{
			name:  "valid header, empty table",
			table: nil,
			ok:    true,
		},
		{
			name: "length too large",
			buffer: func() []byte {
				buf := []byte{
					0, 2, 4, 1, // version
					0, 0, 0, 0, // length placeholder
					1, 2, 3, 4, // table
				}
				nativeEndian().PutUint32(buf[4:8], 5)
				return buf
			}(),
		},
		{
			name: "valid header and table",
			table: []byte{
				0x00, 0x05, 0x01, 0x00,
				0xff,
				0x00,
				0x00,

				127, 0x04, 0x02, 0x00,
				0x00,
				0x00,
			},
			ok: true,
		},
		{
			name: "buffer larger than needed",
			buffer: func() []byte {
				buf := makeRawSMBIOSData(major, minor, revision, []byte{1, 2, 3, 4})
				return append(buf, 5, 6, 7, 8)
			}(),
			table: []byte{1, 2, 3, 4},
			ok:    true,
		},
	}

	for _, tt := range tests {
		if tt.buffer == nil {
			tt.buffer = makeRawSMBIOSData(major, minor, revision, tt.table)
		}

		t.Run(tt.name, func(t *testing.T) {
			rc, ep, err := windowsStream(tt.buffer)
			if !tt.ok {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer rc.Close()

			_, size := ep.Table()
			require.Equal(t, len(tt.table), size)
			require.True(t, ep.Valid())

			maj, min, rev := ep.Version()
			require.Equal(t, []int{int(major), int(minor), int(revision)}, []int{maj, min, rev})

			got, err := io.ReadAll(rc)
			require.NoError(t, err)
			require.Equal(t, len(tt.table), len(got))
			if len(tt.table) > 0 {
				require.Equal(t, tt.table, got)
			}
		})
	}
}
