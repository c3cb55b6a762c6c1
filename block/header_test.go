package block

import (
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/colblock/errs"
	"github.com/arloliu/colblock/format"
	"github.com/arloliu/colblock/internal/hash"
)

func TestSealOpen(t *testing.T) {
	payload := []byte{2, 0, 0, 0, 30, 0, 30, 0, 1, 0, 0, 0, 2, 0, 0, 0}

	tests := []struct {
		name     string
		checksum format.ChecksumType
		sum      uint64
	}{
		{"none", format.ChecksumNone, 0},
		{"crc32", format.ChecksumCRC32, uint64(crc32.ChecksumIEEE(payload))},
		{"xxhash", format.ChecksumXXHash, hash.Sum64(payload)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sealed, err := Seal(format.BlockRunLength, tt.checksum, payload)
			require.NoError(t, err)
			require.Len(t, sealed, HeaderSize+len(payload))

			h, got, err := Open(sealed)
			require.NoError(t, err)
			require.Equal(t, Header{Type: format.BlockRunLength, Checksum: tt.checksum, Sum: tt.sum}, h)
			require.Equal(t, payload, got)
		})
	}
}

func TestHeader_Layout(t *testing.T) {
	h := Header{Type: format.BlockPlainNullable, Checksum: format.ChecksumXXHash, Sum: 0x0102030405060708}
	want := []byte{
		2, 0, 0, 0,
		2, 0, 0, 0,
		8, 7, 6, 5, 4, 3, 2, 1,
	}
	require.Equal(t, want, h.AppendTo(nil))

	parsed, err := ParseHeader(want)
	require.NoError(t, err)
	require.Equal(t, h, parsed)
}

func TestOpen_Errors(t *testing.T) {
	payload := []byte("payload")

	t.Run("checksum mismatch", func(t *testing.T) {
		sealed, err := Seal(format.BlockPlain, format.ChecksumXXHash, payload)
		require.NoError(t, err)
		sealed[len(sealed)-1] ^= 0xFF

		_, _, err = Open(sealed)
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	})

	t.Run("short header", func(t *testing.T) {
		_, _, err := Open([]byte{1, 0, 0})
		require.ErrorIs(t, err, errs.ErrCorruptBlock)
	})

	t.Run("unknown block type", func(t *testing.T) {
		sealed, err := Seal(format.BlockPlain, format.ChecksumNone, payload)
		require.NoError(t, err)
		sealed[0] = 0x7F

		_, _, err = Open(sealed)
		require.ErrorIs(t, err, errs.ErrUnknownBlockType)
	})

	t.Run("unsupported checksum", func(t *testing.T) {
		_, err := Seal(format.BlockPlain, format.ChecksumType(9), payload)
		require.ErrorIs(t, err, errs.ErrUnsupportedChecksum)

		sealed, err := Seal(format.BlockPlain, format.ChecksumNone, payload)
		require.NoError(t, err)
		sealed[4] = 9

		_, _, err = Open(sealed)
		require.ErrorIs(t, err, errs.ErrUnsupportedChecksum)
	})

	t.Run("seal rejects unknown block type", func(t *testing.T) {
		_, err := Seal(format.BlockType(0), format.ChecksumNone, payload)
		require.ErrorIs(t, err, errs.ErrUnknownBlockType)
	})
}
