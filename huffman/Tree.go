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
	"container/heap"

	huffpack "github.com/ocelle/huffpack"
)

// Node is one node of the prefix tree. A leaf carries a symbol, an
// internal node carries exactly two children and no symbol. The weight
// is only meaningful during construction and is not persisted.
type Node struct {
	weight  uint64
	ordinal int // total order on equal weights: symbol for a leaf, 256 + creation index otherwise
	symbol  byte
	isLeaf  bool
	left    *Node
	right   *Node
}

// IsLeaf returns true if the node carries a symbol and has no children
func (this *Node) IsLeaf() bool {
	return this.isLeaf
}

// Symbol returns the byte value of a leaf (0 for an internal node)
func (this *Node) Symbol() byte {
	return this.symbol
}

// Left returns the left child (nil for a leaf)
func (this *Node) Left() *Node {
	return this.left
}

// Right returns the right child (nil for a leaf)
func (this *Node) Right() *Node {
	return this.right
}

// Count returns the total number of nodes in the subtree
func (this *Node) Count() int {
	if this.isLeaf {
		return 1
	}

	return 1 + this.left.Count() + this.right.Count()
}

// MaxDepth returns the length of the longest root to leaf path
func (this *Node) MaxDepth() int {
	if this.isLeaf {
		return 0
	}

	dl := this.left.MaxDepth()
	dr := this.right.MaxDepth()

	if dl > dr {
		return 1 + dl
	}

	return 1 + dr
}

// nodeHeap is a min-heap ordered by (weight, ordinal). The ordinal makes
// the order total: leaves of equal weight are taken by ascending byte
// value, internal nodes of equal weight by creation order, and a leaf
// always wins a tie against an internal node.
type nodeHeap []*Node

func (this nodeHeap) Len() int { return len(this) }

func (this nodeHeap) Less(i, j int) bool {
	if this[i].weight != this[j].weight {
		return this[i].weight < this[j].weight
	}

	return this[i].ordinal < this[j].ordinal
}

func (this nodeHeap) Swap(i, j int) { this[i], this[j] = this[j], this[i] }

func (this *nodeHeap) Push(x any) { *this = append(*this, x.(*Node)) }

func (this *nodeHeap) Pop() any {
	old := *this
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*this = old[:n-1]
	return item
}

// BuildTree builds the prefix tree for the given frequencies using the
// greedy bottom-up merge: repeatedly extract the two lowest nodes and
// merge them, the first extracted becoming the left child. The total
// order on equal weights makes the tree, and therefore the compressed
// output, identical across runs.
//
// A table with a single distinct symbol gets a synthesized internal root
// whose two children are leaves carrying that symbol. The symbol then
// receives the 1-bit code 0 and the serialized tree keeps its invariant
// that every internal node has exactly two children.
func BuildTree(freqs *FrequencyTable) (*Node, error) {
	nodes := make(nodeHeap, 0, 256)

	for s, f := range freqs {
		if f > 0 {
			nodes = append(nodes, &Node{weight: uint64(f), ordinal: s, symbol: byte(s), isLeaf: true})
		}
	}

	if len(nodes) == 0 {
		return nil, huffpack.NewCodecError("Cannot build tree: no symbol has a non zero frequency", huffpack.ERR_EMPTY_INPUT)
	}

	if len(nodes) == 1 {
		leaf := nodes[0]
		twin := &Node{weight: leaf.weight, ordinal: leaf.ordinal, symbol: leaf.symbol, isLeaf: true}
		return &Node{weight: leaf.weight, ordinal: 256, left: leaf, right: twin}, nil
	}

	heap.Init(&nodes)
	created := 0

	for len(nodes) > 1 {
		left := heap.Pop(&nodes).(*Node)
		right := heap.Pop(&nodes).(*Node)
		merged := &Node{
			weight:  left.weight + right.weight,
			ordinal: 256 + created,
			left:    left,
			right:   right,
		}
		created++
		heap.Push(&nodes, merged)
	}

	return nodes[0], nil
}
