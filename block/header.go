package block

import (
	"fmt"
	"hash/crc32"

	"github.com/arloliu/colblock/errs"
	"github.com/arloliu/colblock/format"
	"github.com/arloliu/colblock/internal/hash"
)

// HeaderSize is the size of the header Seal puts in front of a block payload.
const HeaderSize = 16

// Header describes a sealed block:
//
//	| block type (u32) | checksum type (u32) | checksum (u64) |
type Header struct {
	Type     format.BlockType
	Checksum format.ChecksumType
	Sum      uint64
}

// AppendTo appends the encoded header to dst.
func (h Header) AppendTo(dst []byte) []byte {
	dst = le.AppendUint32(dst, uint32(h.Type))
	dst = le.AppendUint32(dst, uint32(h.Checksum))

	return le.AppendUint64(dst, h.Sum)
}

// ParseHeader decodes the header at the start of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes, need %d for header", errs.ErrCorruptBlock, len(data), HeaderSize)
	}

	h := Header{
		Type:     format.BlockType(le.Uint32(data[0:4])),
		Checksum: format.ChecksumType(le.Uint32(data[4:8])),
		Sum:      le.Uint64(data[8:16]),
	}
	if !h.Type.IsValid() {
		return Header{}, fmt.Errorf("%w: %s", errs.ErrUnknownBlockType, h.Type)
	}

	return h, nil
}

// Checksum computes the checksum of payload with the given algorithm.
func Checksum(ct format.ChecksumType, payload []byte) (uint64, error) {
	switch ct {
	case format.ChecksumNone:
		return 0, nil
	case format.ChecksumCRC32:
		return uint64(crc32.ChecksumIEEE(payload)), nil
	case format.ChecksumXXHash:
		return hash.Sum64(payload), nil
	default:
		return 0, fmt.Errorf("%w: %s", errs.ErrUnsupportedChecksum, ct)
	}
}

// Seal prepends a header with the block type and payload checksum.
func Seal(bt format.BlockType, ct format.ChecksumType, payload []byte) ([]byte, error) {
	if !bt.IsValid() {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnknownBlockType, bt)
	}

	sum, err := Checksum(ct, payload)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, HeaderSize+len(payload))
	out = Header{Type: bt, Checksum: ct, Sum: sum}.AppendTo(out)

	return append(out, payload...), nil
}

// Open parses the header of a sealed block, verifies the checksum and returns
// the payload, which aliases data.
func Open(data []byte) (Header, []byte, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return Header{}, nil, err
	}

	payload := data[HeaderSize:]
	sum, err := Checksum(h.Checksum, payload)
	if err != nil {
		return Header{}, nil, err
	}
	if sum != h.Sum {
		return Header{}, nil, fmt.Errorf("%w: stored 0x%016x, computed 0x%016x", errs.ErrChecksumMismatch, h.Sum, sum)
	}

	return h, payload, nil
}
