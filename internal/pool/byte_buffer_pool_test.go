package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(128)

	require.NotNil(t, bb.B)
	require.Equal(t, 0, bb.Len())
	require.Equal(t, 128, cap(bb.B))
}

func TestByteBuffer_MustWrite(t *testing.T) {
	bb := NewByteBuffer(4)

	bb.MustWrite([]byte("hello"))
	bb.MustWrite(nil)
	bb.MustWrite([]byte(" world"))

	require.Equal(t, []byte("hello world"), bb.Bytes())
	require.Equal(t, 11, bb.Len())
}

func TestByteBuffer_WriteZeros(t *testing.T) {
	bb := NewByteBuffer(2)
	bb.MustWrite([]byte{0xAA})

	// Dirty the spare capacity to make sure zeros are actually written.
	bb.B = append(bb.B, 0xFF)
	bb.B = bb.B[:1]

	bb.WriteZeros(3)
	require.Equal(t, []byte{0xAA, 0, 0, 0}, bb.Bytes())

	bb.WriteZeros(0)
	bb.WriteZeros(-1)
	require.Equal(t, 4, bb.Len())
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("no-op with spare capacity", func(t *testing.T) {
		bb := NewByteBuffer(16)
		bb.Grow(8)
		require.Equal(t, 16, cap(bb.B))
	})

	t.Run("small buffer grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.MustWrite([]byte("ab"))
		before := cap(bb.B)
		bb.Grow(before)
		require.GreaterOrEqual(t, cap(bb.B), bb.Len()+BlockBufferDefaultSize)
		require.Equal(t, []byte("ab"), bb.Bytes())
	})

	t.Run("grows at least by request", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.Grow(BlockBufferDefaultSize * 3)
		require.GreaterOrEqual(t, cap(bb.B), BlockBufferDefaultSize*3)
	})
}

func TestByteBufferPool(t *testing.T) {
	t.Run("get returns empty buffer", func(t *testing.T) {
		p := NewByteBufferPool(64, 0)
		bb := p.Get()
		require.NotNil(t, bb)
		require.Equal(t, 0, bb.Len())

		bb.MustWrite([]byte("data"))
		p.Put(bb)

		again := p.Get()
		require.Equal(t, 0, again.Len())
	})

	t.Run("put nil is ignored", func(t *testing.T) {
		p := NewByteBufferPool(64, 0)
		require.NotPanics(t, func() { p.Put(nil) })
	})

	t.Run("oversized buffers are dropped", func(t *testing.T) {
		p := NewByteBufferPool(8, 16)
		bb := NewByteBuffer(32)
		bb.MustWrite([]byte("oversized"))
		require.NotPanics(t, func() { p.Put(bb) })
		// The dropped buffer keeps its contents because Put returned early.
		require.Equal(t, []byte("oversized"), bb.Bytes())
	})
}

func TestDefaultBlockPool(t *testing.T) {
	bb := GetBlockBuffer()
	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len())
	bb.MustWrite([]byte("block"))
	PutBlockBuffer(bb)
}
