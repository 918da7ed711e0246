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

// Field accessors address a structure as one flat byte span starting at
// its header, matching the offsets published in the SMBIOS specification
// tables. Every accessor is total: a read falling wholly or partly outside
// the span reports ok == false instead of failing. Firmware routinely
// ships structures shorter than the newest SMBIOS revision defines, so a
// missing field is a first-class outcome for callers, not an error.

// fieldLen is the number of addressable bytes: the header plus whatever
// part of the formatted area was present in the buffer.
func (s *Structure) fieldLen() int {
	return headerLen + len(s.Formatted)
}

// FieldByte returns the byte at offset o.
func (s *Structure) FieldByte(o int) (uint8, bool) {
	if o < 0 || o >= s.fieldLen() {
		return 0, false
	}
	if o >= headerLen {
		return s.Formatted[o-headerLen], true
	}
	switch o {
	case 0:
		return s.Header.Type, true
	case 1:
		return s.Header.Length, true
	case 2:
		return uint8(s.Header.Handle), true
	default:
		return uint8(s.Header.Handle >> 8), true
	}
}

// FieldWord returns the little-endian uint16 at offset o.
func (s *Structure) FieldWord(o int) (uint16, bool) {
	lo, ok := s.FieldByte(o)
	hi, ok2 := s.FieldByte(o + 1)
	if !ok || !ok2 {
		return 0, false
	}
	return uint16(hi)<<8 | uint16(lo), true
}

// FieldDWord returns the little-endian uint32 at offset o.
func (s *Structure) FieldDWord(o int) (uint32, bool) {
	lo, ok := s.FieldWord(o)
	hi, ok2 := s.FieldWord(o + 2)
	if !ok || !ok2 {
		return 0, false
	}
	return uint32(hi)<<16 | uint32(lo), true
}

// FieldQWord returns the little-endian uint64 at offset o.
func (s *Structure) FieldQWord(o int) (uint64, bool) {
	lo, ok := s.FieldDWord(o)
	hi, ok2 := s.FieldDWord(o + 4)
	if !ok || !ok2 {
		return 0, false
	}
	return uint64(hi)<<32 | uint64(lo), true
}

// FieldHandle returns the Handle stored at offset o. Reserved sentinel
// values pass through unchanged.
func (s *Structure) FieldHandle(o int) (Handle, bool) {
	w, ok := s.FieldWord(o)
	return Handle(w), ok
}

// FieldString resolves the string-set reference stored at offset o. The
// wire value is a 1-based index; zero means "no string". An index past the
// end of the string-set also reports false, since firmware references
// strings it does not always ship.
func (s *Structure) FieldString(o int) (string, bool) {
	i, ok := s.FieldByte(o)
	if !ok || i == 0 {
		return "", false
	}
	return s.Strings.At(int(i))
}
