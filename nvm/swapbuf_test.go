package nvm

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func testBuffer(t *testing.T) *SwappingBuffer {
	t.Helper()
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewSwappingBuffer(store.Region("scratch", StoreSize))
}

func TestSwappingBufferRAMOnly(t *testing.T) {
	t.Parallel()

	buf := testBuffer(t)
	to, err := buf.Write([]byte("abc"))
	require.NoError(t, err)
	require.Equal(t, 3, to)
	to, err = buf.Write([]byte("def"))
	require.NoError(t, err)
	require.Equal(t, 6, to)
	require.Equal(t, []byte("abcdef"), buf.ReadAll())
	require.Equal(t, []byte("cd"), buf.Read(2, 4))
}

func TestSwappingBufferSpill(t *testing.T) {
	t.Parallel()

	buf := testBuffer(t)
	rng := rand.New(rand.NewSource(40))
	first := make([]byte, RAMSize-10)
	rng.Read(first)
	_, err := buf.Write(first)
	require.NoError(t, err)

	// This write crosses the RAM window: prior content is flushed to
	// the store and reads remain transparent.
	second := make([]byte, 100)
	rng.Read(second)
	to, err := buf.Write(second)
	require.NoError(t, err)
	require.Equal(t, len(first)+len(second), to)
	require.Equal(t, append(append([]byte{}, first...), second...),
		buf.ReadAll())

	// Subsequent writes land in the store.
	third := []byte("tail")
	_, err = buf.Write(third)
	require.NoError(t, err)
	require.Equal(t, third, buf.Read(to, to+len(third)))
}

func TestSwappingBufferOverflow(t *testing.T) {
	t.Parallel()

	buf := testBuffer(t)
	big := make([]byte, StoreSize+1)
	_, err := buf.Write(big)
	require.ErrorIs(t, err, ErrRegionBounds)
}

func TestSwappingBufferReset(t *testing.T) {
	t.Parallel()

	buf := testBuffer(t)
	table := bytes.Repeat([]byte{0xaa}, 100)
	_, err := buf.Write(table)
	require.NoError(t, err)

	// Spill, then truncate back into the RAM tier: the prefix written
	// before the spill must still be readable.
	spill := make([]byte, RAMSize)
	_, err = buf.Write(spill)
	require.NoError(t, err)

	buf.Reset(len(table))
	require.Equal(t, table, buf.ReadAll())
	_, err = buf.Write([]byte{0xbb})
	require.NoError(t, err)
	require.Equal(t, []byte{0xbb}, buf.Read(100, 101))
}

func TestSwappingBufferUpdate(t *testing.T) {
	t.Parallel()

	buf := testBuffer(t)
	_, err := buf.Write([]byte("abcdef"))
	require.NoError(t, err)
	require.NoError(t, buf.Update(2, []byte("XY")))
	require.Equal(t, []byte("abXYef"), buf.ReadAll())
	require.Equal(t, 6, buf.Index())
}
