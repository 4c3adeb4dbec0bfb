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

// Package huffman implements the core of the huffpack codec: byte
// frequency analysis, prefix tree construction with a deterministic
// tie-break rule, code table derivation and the self-delimiting
// serialized tree format.
package huffman

import (
	huffpack "github.com/ocelle/huffpack"
)

// FrequencyTable holds the number of occurrences of each byte value.
type FrequencyTable [256]int

// ComputeFrequencies counts the occurrences of each byte value in the
// block. Returns an error with code ERR_EMPTY_INPUT for an empty block:
// compressing nothing is undefined and must be rejected rather than
// silently producing a degenerate tree.
func ComputeFrequencies(block []byte) (*FrequencyTable, error) {
	if len(block) == 0 {
		return nil, huffpack.NewCodecError("Cannot compute frequencies: empty input", huffpack.ERR_EMPTY_INPUT)
	}

	freqs := &FrequencyTable{}
	end4 := len(block) & -4

	for i := 0; i < end4; i += 4 {
		freqs[block[i]]++
		freqs[block[i+1]]++
		freqs[block[i+2]]++
		freqs[block[i+3]]++
	}

	for i := end4; i < len(block); i++ {
		freqs[block[i]]++
	}

	return freqs, nil
}

// Distinct returns the number of byte values with a non zero count.
func (this *FrequencyTable) Distinct() int {
	count := 0

	for _, f := range this {
		if f > 0 {
			count++
		}
	}

	return count
}

// Total returns the sum of all counts. It equals the input length.
func (this *FrequencyTable) Total() uint64 {
	total := uint64(0)

	for _, f := range this {
		total += uint64(f)
	}

	return total
}
