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

// Package huffpack defines the top level interfaces used in the huffpack
// lossless compressor/decompressor.
//
// The implementations of these interfaces are available in sub-folders
// like bitstream, huffman or codec. In particular, the codec package
// contains the Encoder and Decoder used to compress and decompress data.
package huffpack

import "fmt"

const (
	ERR_EMPTY_INPUT      = 1
	ERR_TRUNCATED_TREE   = 2
	ERR_TRUNCATED_STREAM = 3
	ERR_CORRUPT_PADDING  = 4
	ERR_CORRUPT_PAYLOAD  = 5
	ERR_INVALID_PARAM    = 6
	ERR_OPEN_FILE        = 7
	ERR_READ_FILE        = 8
	ERR_WRITE_FILE       = 9
	ERR_UNKNOWN          = 127
)

// CodecError is an extended error containing a message and a code value
type CodecError struct {
	msg  string
	code int
}

// NewCodecError creates a CodecError from a message and one of the ERR_* codes
func NewCodecError(msg string, code int) *CodecError {
	return &CodecError{msg: msg, code: code}
}

// Error returns the underlying error
func (this CodecError) Error() string {
	return fmt.Sprintf("%v (code %v)", this.msg, this.code)
}

// Message returns the message string associated with the error
func (this CodecError) Message() string {
	return this.msg
}

// ErrorCode returns the code value associated with the error
func (this CodecError) ErrorCode() int {
	return this.code
}

// InputBitStream is a bitstream reader
type InputBitStream interface {
	// ReadBit returns the next bit in the bitstream. Panics if closed or EOS is reached.
	ReadBit() int

	// ReadBits reads 'length' (in [1..64]) bits from the bitstream.
	// Returns the bits read as an uint64.
	// Panics if closed or EOS is reached.
	ReadBits(length uint) uint64

	// ReadArray reads 'length' bits from the bitstream and put them in the byte slice.
	// Returns the number of bits read.
	// Panics if closed or EOS is reached.
	ReadArray(bits []byte, length uint) uint

	// Close makes the bitstream unavailable for further reads.
	Close() (bool, error)

	// Read returns the number of bits read
	Read() uint64

	// HasMoreToRead returns false when the bitstream is closed or the EOS has been reached
	HasMoreToRead() (bool, error)
}

// OutputBitStream is a bitstream writer
type OutputBitStream interface {
	// WriteBit writes the least significant bit of the input integer.
	// Panics if closed or an IO error is received.
	WriteBit(bit int)

	// WriteBits writes the least significant bits of 'bits' to the bitstream.
	// Length is the number of bits to write (in [1..64]).
	// Returns the number of bits written.
	// Panics if closed or an IO error is received.
	WriteBits(bits uint64, length uint) uint

	// WriteArray writes bits out of the byte slice. Length is the number of bits.
	// Returns the number of bits written.
	// Panics if closed or an IO error is received.
	WriteArray(bits []byte, length uint) uint

	// Close makes the bitstream unavailable for further writes.
	Close() (bool, error)

	// Written returns the number of bits written
	Written() uint64
}
