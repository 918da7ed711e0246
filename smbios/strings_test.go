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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseStringSet(t *testing.T) {
	tests := []struct {
		name string
		b    []byte
		p    int
		st   StringTable
		end  int
		ok   bool
	}{
		{
			name: "offset past buffer",
			b:    []byte{0x00},
			p:    1,
			end:  1,
		},
		{
			name: "no strings",
			b:    []byte{0x00, 0x00},
			st:   nil,
			end:  2,
			ok:   true,
		},
		{
			name: "no strings, second null missing at end",
			b:    []byte{0x00},
			end:  1,
		},
		{
			name: "one string",
			b:    []byte{'a', 'b', 0x00, 0x00},
			st:   StringTable{"ab"},
			end:  4,
			ok:   true,
		},
		{
			name: "leading empty entry before text",
			b:    []byte{0x00, 'A', 'B', 0x00, 0x00},
			st:   StringTable{"", "AB"},
			end:  5,
			ok:   true,
		},
		{
			name: "interior double null terminates the set",
			b:    []byte{'a', 0x00, 0x00, 'b', 0x00, 0x00},
			st:   StringTable{"a"},
			end:  3,
			ok:   true,
		},
		{
			name: "leading empty entry, unterminated",
			b:    []byte{0x00, 'A', 'B'},
			st:   StringTable{"", "AB"},
			end:  3,
		},
		{
			name: "two strings with trailing data",
			b:    []byte{'a', 0x00, 'b', 0x00, 0x00, 0xff},
			st:   StringTable{"a", "b"},
			end:  5,
			ok:   true,
		},
		{
			name: "unterminated final string",
			b:    []byte{'a', 0x00, 'b', 'c'},
			st:   StringTable{"a", "bc"},
			end:  4,
		},
		{
			name: "terminator missing at end",
			b:    []byte{'a', 0x00},
			st:   StringTable{"a"},
			end:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, end, ok := parseStringSet(tt.b, tt.p)

			if diff := cmp.Diff(tt.st, st); diff != "" {
				t.Fatalf("unexpected strings (-want +got):\n%s", diff)
			}
			if end != tt.end {
				t.Fatalf("unexpected end offset: got %d, want %d", end, tt.end)
			}
			if ok != tt.ok {
				t.Fatalf("unexpected ok: got %v, want %v", ok, tt.ok)
			}
		})
	}
}

func TestStringTableLatin1(t *testing.T) {
	// The decode policy is ISO 8859-1 passthrough: every byte above 0x7f
	// maps to the matching code point, nothing is replaced.
	got := decodeString([]byte{'S', 0xe9, 'r', 'i', 'e', ' ', 0xdf, 0xb5})
	want := "Série ßµ"
	if got != want {
		t.Fatalf("unexpected decode: got %q, want %q", got, want)
	}

	// Plain ASCII takes the fast path and is unchanged.
	if got := decodeString([]byte("DIMM 0")); got != "DIMM 0" {
		t.Fatalf("unexpected ASCII decode: %q", got)
	}
}
