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

	"golang.org/x/text/encoding/charmap"
)

// A StringTable holds a structure's decoded string-set in wire order.
// References into it are 1-based, matching the index bytes stored in
// formatted-area fields.
type StringTable []string

// At returns entry i, counting from 1.
func (st StringTable) At(i int) (string, bool) {
	if i < 1 || i > len(st) {
		return "", false
	}
	return st[i-1], true
}

// parseStringSet decodes the string-set starting at offset p in the table
// buffer b. It returns the decoded entries and the offset immediately past
// the set's double-null terminator.
//
// ok is false when the buffer ended before a terminator was found. The end
// of the buffer then acts as an implicit terminator, a known firmware
// quirk, and whatever was decoded up to that point is still returned.
func parseStringSet(b []byte, p int) (_ StringTable, end int, ok bool) {
	if p >= len(b) {
		return nil, len(b), false
	}

	// Zero strings: the set collapses to a single extra null ahead of the
	// structure terminator.
	if b[p] == 0x00 {
		if p+1 >= len(b) {
			return nil, len(b), false
		}
		if b[p+1] == 0x00 {
			return nil, p + 2, true
		}
		// A lone null ahead of more text is a malformed set with a leading
		// empty entry. Fall through and keep scanning for the double-null
		// terminator so the walk does not resume inside string data.
	}

	var st StringTable
	for p < len(b) {
		i := bytes.IndexByte(b[p:], 0x00)
		if i < 0 {
			// Unterminated final string; keep what is there.
			st = append(st, decodeString(b[p:]))
			return st, len(b), false
		}

		st = append(st, decodeString(b[p:p+i]))
		p += i + 1

		if p < len(b) && b[p] == 0x00 {
			return st, p + 1, true
		}
	}

	return st, len(b), false
}

// decodeString interprets firmware text as ISO 8859-1. SMBIOS strings are
// single-byte text; going through Latin-1 maps every byte to a code point,
// so vendor text above 0x7f survives decoding instead of turning into
// U+FFFD runs.
func decodeString(b []byte) string {
	if isASCII(b) {
		return string(b)
	}

	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		// Latin-1 decoding is total over single bytes; keep the raw bytes
		// if that ever changes.
		return string(b)
	}
	return string(s)
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}
