package codec

import (
	"encoding/hex"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// decodeStream is a test helper that feeds the full input in one buffer.
func decodeStream[T any, PT DecoderPtr[T]](t *testing.T,
	d *StreamDecoder[T, PT], input []byte) bool {

	t.Helper()
	done, err := d.Decode(NewBuffer(input, nil))
	require.NoError(t, err)
	return done
}

// feedRandomSlices drives a decoder with randomly sized frames, asserting
// it completes exactly at the end of the input.
func feedRandomSlices[T any, PT DecoderPtr[T]](t *testing.T, rng *rand.Rand,
	d *StreamDecoder[T, PT], input []byte) {

	t.Helper()
	length := 0
	for length < len(input) {
		size := rng.Intn(len(input) - length + 1)
		buf := NewBuffer(input[length:length+size], nil)
		length += size

		done, err := d.Decode(buf)
		require.NoError(t, err)
		require.Equal(t, length == len(input), done)
	}
	require.True(t, d.Complete())
}

func hexBytes(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestDecodeI32(t *testing.T) {
	t.Parallel()

	cases := []struct {
		encoded string
		value   int32
	}{
		{"00", 0},
		{"01", 1},
		{"02", 2},
		{"3f", -1},
		{"3e", -2},
		{"1e", 30},
		{"1f", 31},
		{"4020", 32},
		{"4021", 33},
		{"4022", 34},
		{"5ffe", 8190},
		{"5fff", 8191},
		{"80002000", 8192},
		{"80002001", 8193},
		{"80002002", 8194},
		{"9ffffffe", 536870910},
		{"9fffffff", 536870911},
		{"c020000000", 536870912},
		{"c020000001", 536870913},
		{"c020000002", 536870914},
		{"c07fffffff", math.MaxInt32},
		{"c080000000", math.MinInt32},
		{"c03fffffff", 1073741823},
		{"c0c0000000", -1073741824},
	}

	rng := rand.New(rand.NewSource(1))
	for _, tc := range cases {
		input := hexBytes(t, tc.encoded)

		var d StreamDecoder[I32, *I32]
		require.True(t, decodeStream(t, &d, input))
		require.Equal(t, tc.value, d.Inner.Value)
		require.True(t, d.Complete())

		var split StreamDecoder[I32, *I32]
		feedRandomSlices(t, rng, &split, input)
		require.Equal(t, tc.value, split.Inner.Value)
	}
}

func TestDecodeI32TooLong(t *testing.T) {
	t.Parallel()

	// A multi-byte header declaring more than four payload bytes cannot
	// fit a 32-bit value.
	var d StreamDecoder[I32, *I32]
	_, err := d.Decode(NewBuffer([]byte{0xc1, 0, 0, 0, 0, 0}, nil))
	require.ErrorIs(t, err, ErrInvalidSize)
}

func TestI32String(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value int32
		want  string
	}{
		{0, "0"},
		{1, "1"},
		{-1, "-1"},
		{math.MaxInt32, "2147483647"},
		{math.MinInt32, "-2147483648"},
		{111000, "111000"},
		{999999, "999999"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, NewI32(tc.value).String())
	}
}
