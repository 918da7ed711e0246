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

// Package smbios decodes the SMBIOS/DMI binary table into a navigable
// collection of structures. The input is firmware-authored and frequently
// non-conformant, so decoding is tolerant by default: defects stop the
// walk at the offending structure, everything decoded before it stays
// valid, and the defect is recorded as a Diagnostic.
package smbios

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

const (
	// typeEndOfTable terminates a stream of Structures.
	typeEndOfTable = 127

	// maxTableSize bounds reads from a stream source. Real tables are a
	// few tens of kilobytes.
	maxTableSize = 4 << 20
)

// A Decoder splits a structure table into Structures.
//
// The table is walked in memory: structures are variable-length and
// delimited only by their length byte and string-set terminators, so a
// decode defect leaves no resync point. When one is hit the Decoder keeps
// what it has, records a Diagnostic, and stops.
type Decoder struct {
	r io.Reader
	b []byte

	// Count caps the number of structures decoded when non-zero, matching
	// the structure count a 32-bit entry point advertises.
	Count int

	diags []Diagnostic
}

// NewDecoder creates a Decoder which decodes Structures from the input
// stream. The stream is drained on the first Decode call; the walk itself
// is a pure in-memory transformation.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// NewBufferDecoder creates a Decoder over an in-memory table buffer, such
// as the contents of a sysfs table file or a region sliced out using an
// entry point's table address.
func NewBufferDecoder(b []byte) *Decoder {
	return &Decoder{b: b}
}

// Decode decodes Structures until the end-of-table structure, the end of
// the input, or the Decoder's Count is reached, whichever comes first. The
// end-of-table marker itself is not returned, and anything after it is
// ignored.
//
// Decode fails only when the input stream cannot be read. Malformed or
// truncated table contents instead end the walk early: Decode returns the
// structures decoded up to that point and records the defect, retrievable
// via Diagnostics.
func (d *Decoder) Decode() ([]*Structure, error) {
	if d.b == nil && d.r != nil {
		b, err := io.ReadAll(io.LimitReader(d.r, maxTableSize))
		if err != nil {
			return nil, errors.Wrap(err, "reading structure table")
		}
		d.b = b
	}
	d.diags = nil

	var ss []*Structure
	p := 0
	for p < len(d.b) {
		if d.Count > 0 && len(ss) == d.Count {
			break
		}

		if len(d.b)-p < headerLen {
			d.diag(DiagTableTruncated, p,
				fmt.Sprintf("%d trailing bytes, a header needs %d", len(d.b)-p, headerLen))
			break
		}

		h := parseHeader(d.b, p)
		if int(h.Length) < headerLen {
			d.diag(DiagStructureMalformed, p,
				fmt.Sprintf("header length %d below the %d-byte minimum", h.Length, headerLen))
			break
		}

		end := p + int(h.Length)
		if end > len(d.b) {
			d.diag(DiagTableTruncated, p,
				fmt.Sprintf("formatted area runs %d bytes past the end of the table", end-len(d.b)))
			break
		}

		var fb []byte
		if l := int(h.Length) - headerLen; l > 0 {
			fb = make([]byte, l)
			copy(fb, d.b[p+headerLen:end])
		}

		strs, next, ok := parseStringSet(d.b, end)
		if !ok {
			d.diag(DiagTableTruncated, end,
				"string-set terminator missing, treating end of table as terminator")
		}

		p = next
		if h.Type == typeEndOfTable {
			break
		}

		ss = append(ss, &Structure{
			Header:    h,
			Formatted: fb,
			Strings:   strs,
			EndOffset: next,
		})
	}

	return ss, nil
}

// Diagnostics reports the defects found by the last Decode, in the order
// they were encountered.
func (d *Decoder) Diagnostics() []Diagnostic {
	return d.diags
}

func (d *Decoder) diag(k DiagnosticKind, off int, msg string) {
	d.diags = append(d.diags, Diagnostic{Kind: k, Offset: off, Message: msg})
}

// parseHeader reads a structure Header at offset p. The caller guarantees
// four bytes are available.
func parseHeader(b []byte, p int) Header {
	return Header{
		Type:   b[p],
		Length: b[p+1],
		Handle: Handle(binary.LittleEndian.Uint16(b[p+2 : p+4])),
	}
}
