package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeOptionAbsent(t *testing.T) {
	t.Parallel()

	var d StreamDecoder[Option[Byte32, *Byte32], *Option[Byte32, *Byte32]]
	require.True(t, decodeStream(t, &d, []byte{0}))
	require.False(t, d.Inner.Present())
}

func TestDecodeOptionPresent(t *testing.T) {
	t.Parallel()

	input := append([]byte{1}, make([]byte, 32)...)
	input[5] = 0xab

	var d StreamDecoder[Option[Byte32, *Byte32], *Option[Byte32, *Byte32]]
	require.True(t, decodeStream(t, &d, input))
	require.True(t, d.Inner.Present())
	require.Equal(t, byte(0xab), d.Inner.Value().Bytes[4])
}

func TestDecodeOptionBadLeader(t *testing.T) {
	t.Parallel()

	var d StreamDecoder[Option[Byte32, *Byte32], *Option[Byte32, *Byte32]]
	_, err := d.Decode(NewBuffer([]byte{2}, nil))
	require.ErrorIs(t, err, ErrInvalidData)
}
