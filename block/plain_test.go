package block

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/colblock/encoding"
	"github.com/arloliu/colblock/errs"
	"github.com/arloliu/colblock/format"
	"github.com/arloliu/colblock/value"
)

func TestPlainPrimitiveBuilder(t *testing.T) {
	t.Run("layout", func(t *testing.T) {
		b, err := NewPlainPrimitiveBuilder(encoding.Int32, 1024)
		require.NoError(t, err)

		require.NoError(t, b.Append(value.Some[int32](1)))
		require.NoError(t, b.Append(value.Some[int32](-1)))
		require.Equal(t, 8, b.EstimatedSize())

		require.Equal(t, []byte{1, 0, 0, 0, 0xFF, 0xFF, 0xFF, 0xFF}, b.Finish())
	})

	t.Run("nullable layout", func(t *testing.T) {
		b, err := NewPlainPrimitiveBuilder(encoding.Int32, 1024, WithNullable())
		require.NoError(t, err)

		require.NoError(t, b.Append(value.Some[int32](1)))
		require.NoError(t, b.Append(value.Null[int32]()))
		require.NoError(t, b.Append(value.Some[int32](3)))
		require.Equal(t, 12+1, b.EstimatedSize())

		want := []byte{
			1, 0, 0, 0,
			0, 0, 0, 0,
			3, 0, 0, 0,
			0b101, // validity
		}
		require.Equal(t, want, b.Finish())
	})

	t.Run("rejects null when not nullable", func(t *testing.T) {
		b, err := NewPlainPrimitiveBuilder(encoding.Float64, 1024)
		require.NoError(t, err)
		require.ErrorIs(t, b.Append(value.Null[float64]()), errs.ErrNullValue)
		require.Equal(t, 0, b.EstimatedSize())
	})

	t.Run("rejects variable-width codec", func(t *testing.T) {
		_, err := NewPlainPrimitiveBuilder(encoding.UTF8, 1024)
		require.ErrorIs(t, err, errs.ErrVariableWidth)
	})

	t.Run("should finish", func(t *testing.T) {
		b, err := NewPlainPrimitiveBuilder(encoding.Int32, 8)
		require.NoError(t, err)

		require.False(t, b.ShouldFinish(value.Some[int32](1)))
		require.NoError(t, b.Append(value.Some[int32](1)))
		require.False(t, b.ShouldFinish(value.Some[int32](2)))
		require.NoError(t, b.Append(value.Some[int32](2)))
		require.True(t, b.ShouldFinish(value.Some[int32](3)))
	})

	t.Run("use after finish panics", func(t *testing.T) {
		b, err := NewPlainPrimitiveBuilder(encoding.Int32, 8)
		require.NoError(t, err)
		b.Finish()
		require.PanicsWithValue(t, "block builder already finished", func() {
			_ = b.Append(value.Some[int32](1))
		})
		require.PanicsWithValue(t, "block builder already finished", func() {
			b.EstimatedSize()
		})
		require.PanicsWithValue(t, "block builder already finished", func() {
			b.Statistics()
		})
	})
}

func TestPlainCharBuilder(t *testing.T) {
	t.Run("pads to char width", func(t *testing.T) {
		b, err := NewPlainCharBuilder(encoding.UTF8, 1024, 4)
		require.NoError(t, err)

		require.NoError(t, b.Append(value.Some("ab")))
		require.NoError(t, b.Append(value.Some("abcd")))
		require.NoError(t, b.Append(value.Some("")))
		require.Equal(t, 12, b.EstimatedSize())

		want := []byte("ab\x00\x00abcd\x00\x00\x00\x00")
		require.Equal(t, want, b.Finish())
	})

	t.Run("rejects values wider than char width", func(t *testing.T) {
		b, err := NewPlainCharBuilder(encoding.UTF8, 1024, 2)
		require.NoError(t, err)
		require.ErrorIs(t, b.Append(value.Some("abc")), errs.ErrValueTooLong)
		require.Equal(t, 0, b.EstimatedSize())
	})

	t.Run("invalid char width", func(t *testing.T) {
		_, err := NewPlainCharBuilder(encoding.UTF8, 1024, 0)
		require.ErrorIs(t, err, errs.ErrInvalidCharWidth)
	})

	t.Run("should finish", func(t *testing.T) {
		b, err := NewPlainCharBuilder(encoding.UTF8, 10, 4, WithNullable())
		require.NoError(t, err)
		require.NoError(t, b.Append(value.Some("a")))
		// 4 + 1 bitmap, next costs 4 + 1
		require.False(t, b.ShouldFinish(value.Some("b")))
		require.NoError(t, b.Append(value.Null[string]()))
		require.True(t, b.ShouldFinish(value.Some("c")))
	})
}

func TestPlainBlobBuilder(t *testing.T) {
	t.Run("layout", func(t *testing.T) {
		b, err := NewPlainBlobBuilder(encoding.Blob, 1024)
		require.NoError(t, err)

		require.NoError(t, b.Append(value.Some(value.Blob("ab"))))
		require.NoError(t, b.Append(value.Some(value.Blob(""))))
		require.NoError(t, b.Append(value.Some(value.Blob("xyz"))))
		require.Equal(t, 12+5, b.EstimatedSize())

		want := []byte{
			2, 0, 0, 0,
			2, 0, 0, 0,
			5, 0, 0, 0,
			'a', 'b', 'x', 'y', 'z',
		}
		require.Equal(t, want, b.Finish())
	})

	t.Run("nullable layout", func(t *testing.T) {
		b, err := NewPlainBlobBuilder(encoding.UTF8, 1024, WithNullable())
		require.NoError(t, err)

		require.NoError(t, b.Append(value.Null[string]()))
		require.NoError(t, b.Append(value.Some("hi")))

		want := []byte{
			0, 0, 0, 0,
			2, 0, 0, 0,
			'h', 'i',
			0b10,
		}
		require.Equal(t, want, b.Finish())
	})

	t.Run("should finish uses next length", func(t *testing.T) {
		b, err := NewPlainBlobBuilder(encoding.UTF8, 16)
		require.NoError(t, err)
		require.False(t, b.ShouldFinish(value.Some("a very long first value")))
		require.NoError(t, b.Append(value.Some("abcd"))) // size 8

		require.False(t, b.ShouldFinish(value.Some("abcd"))) // 8 + 4 + 4 = 16
		require.True(t, b.ShouldFinish(value.Some("abcde")))
	})
}

func TestPlainStatistics(t *testing.T) {
	b, err := NewPlainBlobBuilder(encoding.UTF8, 1024, WithNullable())
	require.NoError(t, err)

	for _, s := range []string{"a", "b", "a", "c"} {
		require.NoError(t, b.Append(value.Some(s)))
	}
	require.NoError(t, b.Append(value.Null[string]()))

	stats := b.Statistics()
	require.Len(t, stats, 2)

	rows, ok := FindStatistic(stats, format.StatRowCount)
	require.True(t, ok)
	require.Equal(t, uint64(5), rows.Value())
	require.Equal(t, "RowCount=5", rows.String())

	distinct, ok := FindStatistic(stats, format.StatDistinctValue)
	require.True(t, ok)
	require.Equal(t, uint64(3), distinct.Value())

	_, ok = FindStatistic(stats, format.StatType(99))
	require.False(t, ok)
}

func TestPlainDecoders(t *testing.T) {
	t.Run("primitive", func(t *testing.T) {
		items := []value.Nullable[int32]{value.Some[int32](5), value.Null[int32](), value.Some[int32](-7)}
		b, err := NewPlainPrimitiveBuilder(encoding.Int32, 1024, WithNullable())
		require.NoError(t, err)
		for _, item := range items {
			require.NoError(t, b.Append(item))
		}

		decoded, err := NewPlainPrimitiveDecoder(encoding.Int32, true).Decode(b.Finish(), len(items))
		require.NoError(t, err)
		require.Equal(t, items, decoded)
	})

	t.Run("char strips padding", func(t *testing.T) {
		items := []value.Nullable[string]{value.Some("ab"), value.Some(""), value.Some("abcd")}
		b, err := NewPlainCharBuilder(encoding.UTF8, 1024, 4)
		require.NoError(t, err)
		for _, item := range items {
			require.NoError(t, b.Append(item))
		}

		decoded, err := NewPlainCharDecoder(encoding.UTF8, 4, false).Decode(b.Finish(), len(items))
		require.NoError(t, err)
		require.Equal(t, items, decoded)
	})

	t.Run("blob", func(t *testing.T) {
		items := []value.Nullable[value.Blob]{value.Some(value.Blob{1, 2}), value.Null[value.Blob](), value.Some(value.Blob{3})}
		b, err := NewPlainBlobBuilder(encoding.Blob, 1024, WithNullable())
		require.NoError(t, err)
		for _, item := range items {
			require.NoError(t, b.Append(item))
		}

		decoded, err := NewPlainBlobDecoder(encoding.Blob, true).Decode(b.Finish(), len(items))
		require.NoError(t, err)
		require.Equal(t, items, decoded)
	})
}

func TestPlainDecoders_Corrupt(t *testing.T) {
	tests := []struct {
		name   string
		decode func() error
	}{
		{"primitive short", func() error {
			_, err := NewPlainPrimitiveDecoder(encoding.Int32, false).Decode([]byte{1, 0, 0}, 1)
			return err
		}},
		{"primitive trailing bytes", func() error {
			_, err := NewPlainPrimitiveDecoder(encoding.Int32, false).Decode([]byte{1, 0, 0, 0, 9}, 1)
			return err
		}},
		{"primitive missing bitmap", func() error {
			_, err := NewPlainPrimitiveDecoder(encoding.Int32, true).Decode(nil, 1)
			return err
		}},
		{"negative count", func() error {
			_, err := NewPlainPrimitiveDecoder(encoding.Int32, false).Decode(nil, -1)
			return err
		}},
		{"char short", func() error {
			_, err := NewPlainCharDecoder(encoding.UTF8, 4, false).Decode([]byte("abc"), 1)
			return err
		}},
		{"blob short offsets", func() error {
			_, err := NewPlainBlobDecoder(encoding.UTF8, false).Decode([]byte{1, 0}, 1)
			return err
		}},
		{"blob offset past data", func() error {
			_, err := NewPlainBlobDecoder(encoding.UTF8, false).Decode([]byte{9, 0, 0, 0, 'a'}, 1)
			return err
		}},
		{"blob decreasing offsets", func() error {
			_, err := NewPlainBlobDecoder(encoding.UTF8, false).Decode([]byte{2, 0, 0, 0, 1, 0, 0, 0, 'a', 'b'}, 2)
			return err
		}},
		{"blob trailing data", func() error {
			_, err := NewPlainBlobDecoder(encoding.UTF8, false).Decode([]byte{1, 0, 0, 0, 'a', 'b'}, 1)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.decode(), errs.ErrCorruptBlock)
		})
	}
}

func TestPlainBuilders_UseAfterFinish(t *testing.T) {
	const msg = "block builder already finished"

	char, err := NewPlainCharBuilder(encoding.UTF8, 64, 4)
	require.NoError(t, err)
	require.NoError(t, char.Append(value.Some("ab")))
	char.Finish()

	blob, err := NewPlainBlobBuilder(encoding.Blob, 64)
	require.NoError(t, err)
	require.NoError(t, blob.Append(value.Some(value.Blob{1, 2})))
	blob.Finish()

	require.PanicsWithValue(t, msg, func() { char.ShouldFinish(value.Some("cd")) })
	require.PanicsWithValue(t, msg, func() { char.EstimatedSize() })
	require.PanicsWithValue(t, msg, func() { char.Finish() })
	require.PanicsWithValue(t, msg, func() { blob.ShouldFinish(value.Some(value.Blob{3})) })
	require.PanicsWithValue(t, msg, func() { blob.EstimatedSize() })
	require.PanicsWithValue(t, msg, func() { blob.Statistics() })
}
