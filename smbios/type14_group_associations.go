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

// A GroupAssociations structure (type 14) names an OEM-defined grouping
// of other structures, such as two processors sharing an external cache.
// Members reference their structures by handle; resolve them through
// Table.ByHandle, since members may appear later in the table than the
// group that names them.
type GroupAssociations struct{ *Structure }

// GroupName returns the string describing the group.
func (g *GroupAssociations) GroupName() (string, bool) { return g.FieldString(0x04) }

// A GroupMember is one {type, handle} entry of a Group Associations
// structure.
type GroupMember struct {
	ItemType   uint8
	ItemHandle Handle
}

// Members returns the group's member entries. Each occupies three bytes
// starting at offset 0x05; the member count is implied by the header
// length.
func (g *GroupAssociations) Members() []GroupMember {
	var ms []GroupMember
	for o := 0x05; o+3 <= int(g.Header.Length); o += 3 {
		it, ok := g.FieldByte(o)
		ih, ok2 := g.FieldHandle(o + 1)
		if !ok || !ok2 {
			break
		}
		ms = append(ms, GroupMember{ItemType: it, ItemHandle: ih})
	}
	return ms
}
