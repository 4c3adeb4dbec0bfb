/*
Copyright 2019-2026 the huffpack authors
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package huffman

import (
	huffpack "github.com/ocelle/huffpack"
)

// MAX_CODE_LENGTH is the deepest possible leaf: a fully skewed tree over
// the 256 byte alphabet.
const MAX_CODE_LENGTH = 255

// Code is the bit string assigned to one byte value: the path from the
// root to its leaf, 0 for left and 1 for right. Bits are packed most
// significant bit first into fixed words, so building and writing a code
// never allocates.
type Code struct {
	bits   [4]uint64
	length int
}

// Length returns the number of bits in the code
func (this *Code) Length() int {
	return this.length
}

// withBit returns a copy of the code extended by one path bit
func (this Code) withBit(bit int) Code {
	this.bits[this.length>>6] |= uint64(bit&1) << (63 - uint(this.length&63))
	this.length++
	return this
}

// Bit returns the i-th bit of the code (0 or 1)
func (this *Code) Bit(i int) int {
	return int(this.bits[i>>6]>>(63-uint(i&63))) & 1
}

// WriteTo emits the code on the bitstream, first path bit first
func (this *Code) WriteTo(obs huffpack.OutputBitStream) {
	remaining := this.length

	for i := 0; remaining > 0; i++ {
		n := remaining

		if n > 64 {
			n = 64
		}

		obs.WriteBits(this.bits[i]>>uint(64-n), uint(n))
		remaining -= n
	}
}

// String renders the code as a string of '0' and '1' runes
func (this *Code) String() string {
	buf := make([]byte, this.length)

	for i := 0; i < this.length; i++ {
		buf[i] = byte('0' + this.Bit(i))
	}

	return string(buf)
}

// CodeTable maps each byte value to its code. Symbols absent from the
// input keep a zero length code.
type CodeTable [256]Code

// BuildCodeTable derives the code of every leaf of the tree with an
// iterative depth first traversal. The path is carried by value on an
// explicit stack, so no per-level string copies are made and the
// recursion depth of a degenerate tree costs nothing.
func BuildCodeTable(root *Node) *CodeTable {
	table := &CodeTable{}

	type frame struct {
		node *Node
		code Code
	}

	stack := make([]frame, 0, 64)
	stack = append(stack, frame{node: root})

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.node.IsLeaf() {
			// The left leaf wins when a symbol appears twice, which only
			// happens in the synthesized single-symbol tree: its code is
			// the fixed 1-bit code 0.
			if table[top.node.Symbol()].length == 0 {
				table[top.node.Symbol()] = top.code
			}

			continue
		}

		stack = append(stack, frame{node: top.node.Right(), code: top.code.withBit(1)})
		stack = append(stack, frame{node: top.node.Left(), code: top.code.withBit(0)})
	}

	return table
}
