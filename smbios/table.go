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
	"fmt"
	"io"
	"iter"
)

// A Table is a decoded structure table: every Structure in table order,
// plus handle and type-code indexes over them. A Table is built once and
// immutable afterwards, so it is safe to query from concurrent readers
// without locking. Decoding the same bytes again produces an independent
// snapshot.
type Table struct {
	// Structures holds every decoded structure in table order.
	Structures []*Structure

	byHandle map[Handle]*Structure
	byType   map[uint8][]*Structure
	diags    []Diagnostic
}

// NewTable decodes a structure table from r and indexes it.
func NewTable(r io.Reader) (*Table, error) {
	d := NewDecoder(r)
	ss, err := d.Decode()
	if err != nil {
		return nil, err
	}
	return newTable(ss, d.Diagnostics()), nil
}

// NewTableWithEntryPoint decodes a structure table from r, bounding the
// walk with the structure count when the entry point's 32-bit form
// advertises one. ep may be nil.
//
// An entry point with a failed checksum does not stop decoding, but the
// table's diagnostics carry a DiagChecksumMismatch warning since the
// fields that located and bounded the table may themselves be corrupt.
func NewTableWithEntryPoint(r io.Reader, ep EntryPoint) (*Table, error) {
	d := NewDecoder(r)
	if ep32, ok := ep.(*EntryPoint32Bit); ok {
		d.Count = int(ep32.NumberStructures)
	}

	ss, err := d.Decode()
	if err != nil {
		return nil, err
	}

	var diags []Diagnostic
	if ep != nil && !ep.Valid() {
		diags = append(diags, Diagnostic{
			Kind:    DiagChecksumMismatch,
			Message: "entry point checksum mismatch, table location fields may be unreliable",
		})
	}
	diags = append(diags, d.Diagnostics()...)

	return newTable(ss, diags), nil
}

// DecodeTable decodes an in-memory structure table buffer, such as the
// contents of /sys/firmware/dmi/tables/DMI or a saved dump, and indexes
// it.
func DecodeTable(b []byte) *Table {
	// A bytes.Reader cannot fail mid-read.
	t, _ := NewTable(bytes.NewReader(b))
	return t
}

func newTable(ss []*Structure, diags []Diagnostic) *Table {
	t := &Table{
		Structures: ss,
		byHandle:   make(map[Handle]*Structure, len(ss)),
		byType:     make(map[uint8][]*Structure),
		diags:      diags,
	}

	off := 0
	for _, s := range ss {
		if prev, ok := t.byHandle[s.Header.Handle]; ok {
			// First occurrence wins, deterministically.
			t.diags = append(t.diags, Diagnostic{
				Kind:   DiagDuplicateHandle,
				Offset: off,
				Message: fmt.Sprintf("handle %#04x already used by a type %d structure, keeping the first",
					uint16(s.Header.Handle), prev.Header.Type),
			})
		} else {
			t.byHandle[s.Header.Handle] = s
		}

		t.byType[s.Header.Type] = append(t.byType[s.Header.Type], s)
		off = s.EndOffset
	}

	return t
}

// ByHandle returns the structure with handle h, if present. Structures
// reference each other by handle (cache handles, group members, array
// links); resolve those references here rather than assuming table order.
func (t *Table) ByHandle(h Handle) (*Structure, bool) {
	s, ok := t.byHandle[h]
	return s, ok
}

// ByType returns every structure with the given type code, in table
// order. Multiple structures of one type are legal; a machine reports one
// type 17 structure per memory device, for instance.
func (t *Table) ByType(code uint8) []*Structure {
	return t.byType[code]
}

// All returns an iterator over every structure in table order. The
// iterator is restartable: each range over it starts from the beginning.
func (t *Table) All() iter.Seq[*Structure] {
	return func(yield func(*Structure) bool) {
		for _, s := range t.Structures {
			if !yield(s) {
				return
			}
		}
	}
}

// Diagnostics reports the defects found while decoding and indexing, in
// the order they were encountered.
func (t *Table) Diagnostics() []Diagnostic {
	return t.diags
}
