package block

import (
	"github.com/arloliu/colblock/encoding"
	"github.com/arloliu/colblock/errs"
	"github.com/arloliu/colblock/value"
)

// blobOffsetSize is the size of one end offset in the blob layout.
const blobOffsetSize = 4

// PlainBlobBuilder encodes variable-length values as an offset table followed by
// the concatenated bytes:
//
//	| end offset (u32) | end offset | ... | data | data | ... | [validity bitmap] |
//
// Offset i is the end of value i within the data section. Nulls are empty values.
type PlainBlobBuilder[T any] struct {
	plainState
	codec   encoding.TypeCodec[T]
	offsets []byte
	scratch []byte
}

var _ Builder[value.Blob] = (*PlainBlobBuilder[value.Blob])(nil)

// NewPlainBlobBuilder creates a builder for variable-length values.
func NewPlainBlobBuilder[T any](codec encoding.TypeCodec[T], targetSize int, opts ...BuilderOption) (*PlainBlobBuilder[T], error) {
	cfg, err := newBuilderConfig(opts)
	if err != nil {
		return nil, err
	}

	return &PlainBlobBuilder[T]{
		plainState: newPlainState(targetSize, cfg),
		codec:      codec,
	}, nil
}

// Append adds one value slot. It rejects nulls unless the builder is nullable.
func (b *PlainBlobBuilder[T]) Append(item value.Nullable[T]) error {
	b.checkOpen()

	if !item.Valid {
		if !b.nullable {
			return errs.ErrNullValue
		}
		b.offsets = le.AppendUint32(b.offsets, uint32(b.buf.Len())) //nolint:gosec
		b.markRow(false)

		return nil
	}

	raw, ok := b.codec.Borrowed(item.V)
	if !ok {
		b.scratch = b.codec.AppendOwned(b.scratch[:0], item.V)
		raw = b.scratch
	}

	b.buf.MustWrite(raw)
	b.offsets = le.AppendUint32(b.offsets, uint32(b.buf.Len())) //nolint:gosec
	b.distinct.Add(raw)
	b.markRow(true)

	return nil
}

// EstimatedSize returns the size of the payload Finish would produce now.
func (b *PlainBlobBuilder[T]) EstimatedSize() int {
	b.checkOpen()
	return len(b.offsets) + b.buf.Len() + b.bitmapLen()
}

// ShouldFinish reports whether next and its offset would exceed the target size.
func (b *PlainBlobBuilder[T]) ShouldFinish(next value.Nullable[T]) bool {
	b.checkOpen()
	if b.count == 0 {
		return false
	}

	nextLen := 0
	if next.Valid {
		nextLen = b.codec.Len(next.V)
	}

	return b.EstimatedSize()+nextLen+blobOffsetSize+b.nullOverhead() > b.targetSize
}

// Statistics returns the RowCount and DistinctValue statistics.
func (b *PlainBlobBuilder[T]) Statistics() []Statistic {
	return b.statistics()
}

// Finish returns the payload and releases the value buffer.
func (b *PlainBlobBuilder[T]) Finish() []byte {
	b.checkOpen()
	out := b.finish(b.offsets)
	b.offsets = nil

	return out
}
