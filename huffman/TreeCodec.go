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

// Serialized tree format, preorder: an internal node is the bit 0
// followed by the encodings of its left then right children, a leaf is
// the bit 1 followed by the raw 8 bit symbol. The shape bits make the
// encoding self-delimiting, no node count or length prefix is needed.

// WriteTree emits the serialized form of the tree on the bitstream and
// returns the number of bits written.
func WriteTree(root *Node, obs huffpack.OutputBitStream) uint {
	if root.IsLeaf() {
		obs.WriteBit(1)
		obs.WriteBits(uint64(root.Symbol()), 8)
		return 9
	}

	obs.WriteBit(0)
	n := WriteTree(root.Left(), obs)
	n += WriteTree(root.Right(), obs)
	return 1 + n
}

// ReadTree rebuilds a tree from its serialized form. It fails with code
// ERR_TRUNCATED_TREE when the bit source is exhausted before a well
// formed tree has been fully read, or when the shape bits describe a
// tree deeper than the 256 byte alphabet allows.
func ReadTree(ibs huffpack.InputBitStream) (root *Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			root = nil
			err = huffpack.NewCodecError("Cannot read tree: bit source exhausted", huffpack.ERR_TRUNCATED_TREE)
		}
	}()

	return readNode(ibs, 0)
}

func readNode(ibs huffpack.InputBitStream, depth int) (*Node, error) {
	if depth > MAX_CODE_LENGTH+1 {
		return nil, huffpack.NewCodecError("Cannot read tree: maximum depth exceeded", huffpack.ERR_TRUNCATED_TREE)
	}

	if ibs.ReadBit() == 1 {
		return &Node{symbol: byte(ibs.ReadBits(8)), isLeaf: true}, nil
	}

	left, err := readNode(ibs, depth+1)

	if err != nil {
		return nil, err
	}

	right, err := readNode(ibs, depth+1)

	if err != nil {
		return nil, err
	}

	return &Node{left: left, right: right}, nil
}
