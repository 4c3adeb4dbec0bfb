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

package codec

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/icza/bitio"
	"github.com/stretchr/testify/require"

	huffpack "github.com/ocelle/huffpack"
)

func errorCode(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	ce, ok := err.(*huffpack.CodecError)
	require.True(t, ok, "expected a CodecError, got %T", err)
	return ce.ErrorCode()
}

func TestRoundTrip(t *testing.T) {
	inputs := [][]byte{
		[]byte("a"),
		[]byte("ab"),
		[]byte("aaaa"),
		[]byte("abracadabra"),
		[]byte("the quick brown fox jumps over the lazy dog"),
		bytes.Repeat([]byte{0x00, 0xFF}, 1000),
	}

	for _, src := range inputs {
		compressed, err := Compress(src)
		require.NoError(t, err)

		decoded, err := Decompress(compressed)
		require.NoError(t, err)
		require.Equal(t, src, decoded, "round trip mismatch for %q", src)
	}
}

func TestRoundTripRandom(t *testing.T) {
	r := rand.New(rand.NewSource(1234))

	for _, size := range []int{1, 2, 7, 256, 4096, 65536} {
		src := make([]byte, size)

		for i := range src {
			src[i] = byte(r.Intn(256))
		}

		compressed, err := Compress(src)
		require.NoError(t, err)

		decoded, err := Decompress(compressed)
		require.NoError(t, err)
		require.Equal(t, src, decoded, "round trip mismatch for size %d", size)
	}
}

func TestRoundTripFullAlphabet(t *testing.T) {
	src := make([]byte, 256)

	for i := range src {
		src[i] = byte(i)
	}

	res, err := Encode(src)
	require.NoError(t, err)

	// 256 leaves and 255 internal nodes, all codes 8 bits deep
	require.Equal(t, 511, res.NodeCount)
	require.Equal(t, 8, res.MaxDepth)

	decoded, err := Decompress(res.Data)
	require.NoError(t, err)
	require.Equal(t, src, decoded)
}

func TestDeterministicArtifact(t *testing.T) {
	src := []byte("so much depends upon a red wheel barrow")
	first, err := Compress(src)
	require.NoError(t, err)

	second, err := Compress(src)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEmptyInputRejected(t *testing.T) {
	_, err := Compress(nil)
	require.Equal(t, huffpack.ERR_EMPTY_INPUT, errorCode(t, err))

	_, err = Compress([]byte{})
	require.Equal(t, huffpack.ERR_EMPTY_INPUT, errorCode(t, err))
}

func TestSingleRepeatedByte(t *testing.T) {
	res, err := Encode([]byte("aaaa"))
	require.NoError(t, err)

	// Synthesized root over the single leaf: 3 nodes, 1 bit codes.
	// Tree: 0 1 'a' 1 'a' (19 bits), 5 alignment bits, pad count 4,
	// payload 0000 padded to one byte.
	require.Equal(t, 3, res.NodeCount)
	require.Equal(t, 1, res.MaxDepth)
	require.Equal(t, []byte{0x58, 0x6C, 0x20, 0x04, 0x00}, res.Data)

	decoded, err := Decompress(res.Data)
	require.NoError(t, err)
	require.Equal(t, []byte("aaaa"), decoded)
}

// TestArtifactLayout checks the bit exact layout of a small artifact with
// an independent bit reader.
func TestArtifactLayout(t *testing.T) {
	compressed, err := Compress([]byte("ab"))
	require.NoError(t, err)
	require.Equal(t, []byte{0x58, 0x6C, 0x40, 0x06, 0x40}, compressed)

	r := bitio.NewReader(bytes.NewReader(compressed))

	// Serialized tree: internal root, leaf 'a', leaf 'b'
	shape, err := r.ReadBool()
	require.NoError(t, err)
	require.False(t, shape)

	shape, err = r.ReadBool()
	require.NoError(t, err)
	require.True(t, shape)

	symbol, err := r.ReadBits(8)
	require.NoError(t, err)
	require.Equal(t, uint64('a'), symbol)

	shape, err = r.ReadBool()
	require.NoError(t, err)
	require.True(t, shape)

	symbol, err = r.ReadBits(8)
	require.NoError(t, err)
	require.Equal(t, uint64('b'), symbol)

	// 5 zero bits pad the 19 tree bits to the byte boundary
	align, err := r.ReadBits(5)
	require.NoError(t, err)
	require.Zero(t, align)

	// Pad count byte: the 2 payload bits need 6 pad bits
	padCount, err := r.ReadBits(8)
	require.NoError(t, err)
	require.Equal(t, uint64(6), padCount)

	// Payload: code of 'a' (0), code of 'b' (1), then the pad bits
	payload, err := r.ReadBits(2)
	require.NoError(t, err)
	require.Equal(t, uint64(0x1), payload)

	pad, err := r.ReadBits(6)
	require.NoError(t, err)
	require.Zero(t, pad)
}

func TestTruncatedPayload(t *testing.T) {
	// 8 symbols with equal weights: a perfect depth 3 tree, every code 3
	// bits. Dropping the last payload byte leaves 16 payload bits, which
	// is not a whole number of codes.
	compressed, err := Compress([]byte("abcdefgh"))
	require.NoError(t, err)
	require.Equal(t, 14, len(compressed))

	_, err = Decompress(compressed[:len(compressed)-1])
	require.Equal(t, huffpack.ERR_CORRUPT_PAYLOAD, errorCode(t, err))
}

func TestMissingPadCountByte(t *testing.T) {
	compressed, err := Compress([]byte("abcdefgh"))
	require.NoError(t, err)

	// Keep only the serialized tree (80 bits with alignment)
	_, err = Decompress(compressed[:10])
	require.Equal(t, huffpack.ERR_TRUNCATED_STREAM, errorCode(t, err))
}

func TestTruncatedTree(t *testing.T) {
	compressed, err := Compress([]byte("abcdefgh"))
	require.NoError(t, err)

	_, err = Decompress(compressed[:4])
	require.Equal(t, huffpack.ERR_TRUNCATED_TREE, errorCode(t, err))

	_, err = Decompress(nil)
	require.Equal(t, huffpack.ERR_TRUNCATED_TREE, errorCode(t, err))
}

func TestCorruptPadCount(t *testing.T) {
	compressed, err := Compress([]byte("abcdefgh"))
	require.NoError(t, err)

	// The pad count byte sits right before the 3 payload bytes
	corrupted := bytes.Clone(compressed)
	corrupted[len(corrupted)-4] = 0xFF

	_, err = Decompress(corrupted)
	require.Equal(t, huffpack.ERR_CORRUPT_PADDING, errorCode(t, err))
}

func TestPadCountExceedsPayload(t *testing.T) {
	// Hand built artifact: single leaf root 'a' (9 bits + 7 alignment
	// bits), pad count 5, no payload at all
	artifact := []byte{0xB0, 0x80, 0x05}

	_, err := Decompress(artifact)
	require.Equal(t, huffpack.ERR_CORRUPT_PADDING, errorCode(t, err))
}

func TestWalkOutOfTree(t *testing.T) {
	// Hand built artifact with a bare leaf as root: any payload bit asks
	// for a child the leaf does not have
	artifact := []byte{0xB0, 0x80, 0x00, 0x00}

	_, err := Decompress(artifact)
	require.Equal(t, huffpack.ERR_CORRUPT_PAYLOAD, errorCode(t, err))
}

func TestCompressedSmallerOnSkewedInput(t *testing.T) {
	src := bytes.Repeat([]byte("aaaaaaab"), 4096)
	compressed, err := Compress(src)
	require.NoError(t, err)
	require.Less(t, len(compressed), len(src))
}
