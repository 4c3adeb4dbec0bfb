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

// Package codec assembles the huffpack compression pipeline.
//
// Compressed artifact layout, bit exact:
//
//	1. the serialized prefix tree (see the huffman package), not byte
//	   aligned, zero padded up to the next byte boundary
//	2. one byte holding the payload pad count (0..7)
//	3. the packed payload: the concatenated codes of every input byte,
//	   most significant bit first, padded with 0 bits to a full byte
//
// The tree is self-delimiting, so no length prefix is required. Each
// call owns its tree and tables, nothing is shared between calls.
package codec

import (
	huffpack "github.com/ocelle/huffpack"
	"github.com/ocelle/huffpack/bitstream"
	"github.com/ocelle/huffpack/huffman"
	"github.com/ocelle/huffpack/internal"
)

const _CODEC_BUFFER_SIZE = 65536

// EncodeResult is the outcome of one compression call. The tree figures
// are returned rather than kept as mutable state so that concurrent
// calls never share anything.
type EncodeResult struct {
	Data      []byte // the compressed artifact
	NodeCount int    // total number of nodes in the prefix tree
	MaxDepth  int    // longest root to leaf path
}

// Compress encodes the input and returns the compressed artifact.
func Compress(src []byte) ([]byte, error) {
	res, err := Encode(src)

	if err != nil {
		return nil, err
	}

	return res.Data, nil
}

// Encode compresses the input and reports the tree statistics along with
// the artifact. An empty input is rejected with code ERR_EMPTY_INPUT.
func Encode(src []byte) (res *EncodeResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil

			if e, ok := r.(error); ok {
				err = huffpack.NewCodecError(e.Error(), huffpack.ERR_UNKNOWN)
			} else {
				err = huffpack.NewCodecError("Unexpected encoding failure", huffpack.ERR_UNKNOWN)
			}
		}
	}()

	freqs, err := huffman.ComputeFrequencies(src)

	if err != nil {
		return nil, err
	}

	root, err := huffman.BuildTree(freqs)

	if err != nil {
		return nil, err
	}

	codes := huffman.BuildCodeTable(root)

	// The payload length in bits is known up front, so the pad count can
	// be written before the payload itself.
	payloadBits := uint64(0)

	for s, f := range freqs {
		payloadBits += uint64(f) * uint64(codes[s].Length())
	}

	padCount := (8 - (payloadBits & 7)) & 7
	bs := internal.NewBufferStream()
	obs, err := bitstream.NewDefaultOutputBitStream(bs, _CODEC_BUFFER_SIZE)

	if err != nil {
		return nil, huffpack.NewCodecError(err.Error(), huffpack.ERR_INVALID_PARAM)
	}

	huffman.WriteTree(root, obs)

	// Pad the tree bits up to the next byte boundary
	if n := (8 - (obs.Written() & 7)) & 7; n > 0 {
		obs.WriteBits(0, uint(n))
	}

	obs.WriteBits(padCount, 8)

	for _, b := range src {
		codes[b].WriteTo(obs)
	}

	// Closing flushes the pending payload bits, zero padded to a full
	// byte. The padding is exactly padCount bits by construction.
	if _, err := obs.Close(); err != nil {
		return nil, huffpack.NewCodecError(err.Error(), huffpack.ERR_WRITE_FILE)
	}

	return &EncodeResult{
		Data:      bs.Bytes(),
		NodeCount: root.Count(),
		MaxDepth:  root.MaxDepth(),
	}, nil
}

// Decompress decodes a compressed artifact back to the exact original
// bytes. A malformed artifact yields a typed error, never partial
// output: ERR_TRUNCATED_TREE if the tree bits run out, ERR_TRUNCATED_STREAM
// if the pad count byte is missing, ERR_CORRUPT_PADDING if the pad count
// is out of range, ERR_CORRUPT_PAYLOAD if the payload does not resolve to
// a whole number of codes.
func Decompress(src []byte) (dst []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			dst = nil

			if e, ok := r.(error); ok {
				err = huffpack.NewCodecError(e.Error(), huffpack.ERR_UNKNOWN)
			} else {
				err = huffpack.NewCodecError("Unexpected decoding failure", huffpack.ERR_UNKNOWN)
			}
		}
	}()

	bs := internal.NewBufferStream(src)
	ibs, err := bitstream.NewDefaultInputBitStream(bs, _CODEC_BUFFER_SIZE)

	if err != nil {
		return nil, huffpack.NewCodecError(err.Error(), huffpack.ERR_INVALID_PARAM)
	}

	root, err := huffman.ReadTree(ibs)

	if err != nil {
		return nil, err
	}

	totalBits := uint64(len(src)) << 3
	headerBits := ibs.Read()

	// Skip the zero bits padding the tree up to the byte boundary
	if n := (8 - (headerBits & 7)) & 7; n > 0 {
		headerBits += n
	}

	if totalBits < headerBits+8 {
		return nil, huffpack.NewCodecError("Cannot decode: missing pad count byte", huffpack.ERR_TRUNCATED_STREAM)
	}

	if n := headerBits - ibs.Read(); n > 0 {
		ibs.ReadBits(uint(n))
	}

	padCount := ibs.ReadBits(8)
	payloadBits := totalBits - headerBits - 8

	if padCount > 7 || padCount > payloadBits {
		return nil, huffpack.NewCodecError("Cannot decode: invalid pad count", huffpack.ERR_CORRUPT_PADDING)
	}

	return walkTree(root, ibs, payloadBits-padCount, len(src))
}

// walkTree consumes one bit per step from the root, 0 going left and 1
// going right, emitting a symbol and restarting at the root every time a
// leaf is reached.
func walkTree(root *huffman.Node, ibs huffpack.InputBitStream, dataBits uint64, srcLen int) ([]byte, error) {
	dst := make([]byte, 0, 2*srcLen)
	current := root

	for i := uint64(0); i < dataBits; i++ {
		if ibs.ReadBit() == 0 {
			current = current.Left()
		} else {
			current = current.Right()
		}

		if current == nil {
			return nil, huffpack.NewCodecError("Cannot decode: code walks out of the tree", huffpack.ERR_CORRUPT_PAYLOAD)
		}

		if current.IsLeaf() {
			dst = append(dst, current.Symbol())
			current = root
		}
	}

	if current != root {
		return nil, huffpack.NewCodecError("Cannot decode: payload ends in the middle of a code", huffpack.ERR_CORRUPT_PAYLOAD)
	}

	return dst, nil
}
