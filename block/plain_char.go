package block

import (
	"fmt"

	"github.com/arloliu/colblock/encoding"
	"github.com/arloliu/colblock/errs"
	"github.com/arloliu/colblock/value"
)

// PlainCharBuilder encodes variable-width values in fixed-width slots of charWidth
// bytes, zero-padded on the right:
//
//	| value 0 0 | value 0 | ... | [validity bitmap] |
//
// Trailing zero bytes are not significant; the decoder strips them.
type PlainCharBuilder[T any] struct {
	plainState
	codec     encoding.TypeCodec[T]
	charWidth int
	scratch   []byte
}

var _ Builder[string] = (*PlainCharBuilder[string])(nil)

// NewPlainCharBuilder creates a builder with slots of charWidth bytes.
func NewPlainCharBuilder[T any](codec encoding.TypeCodec[T], targetSize, charWidth int, opts ...BuilderOption) (*PlainCharBuilder[T], error) {
	if charWidth <= 0 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidCharWidth, charWidth)
	}

	cfg, err := newBuilderConfig(opts)
	if err != nil {
		return nil, err
	}

	return &PlainCharBuilder[T]{
		plainState: newPlainState(targetSize, cfg),
		codec:      codec,
		charWidth:  charWidth,
	}, nil
}

// Append adds one value slot. It rejects nulls unless the builder is nullable.
func (b *PlainCharBuilder[T]) Append(item value.Nullable[T]) error {
	b.checkOpen()

	if !item.Valid {
		if !b.nullable {
			return errs.ErrNullValue
		}
		b.buf.WriteZeros(b.charWidth)
		b.markRow(false)

		return nil
	}

	raw, ok := b.codec.Borrowed(item.V)
	if !ok {
		b.scratch = b.codec.AppendOwned(b.scratch[:0], item.V)
		raw = b.scratch
	}
	if len(raw) > b.charWidth {
		return fmt.Errorf("%w: %d bytes, char width %d", errs.ErrValueTooLong, len(raw), b.charWidth)
	}

	b.buf.Grow(b.charWidth)
	b.buf.MustWrite(raw)
	b.buf.WriteZeros(b.charWidth - len(raw))
	b.distinct.Add(raw)
	b.markRow(true)

	return nil
}

// EstimatedSize returns the size of the payload Finish would produce now.
func (b *PlainCharBuilder[T]) EstimatedSize() int {
	b.checkOpen()
	return b.buf.Len() + b.bitmapLen()
}

// ShouldFinish reports whether one more slot would exceed the target size.
func (b *PlainCharBuilder[T]) ShouldFinish(value.Nullable[T]) bool {
	b.checkOpen()
	return b.count > 0 && b.EstimatedSize()+b.charWidth+b.nullOverhead() > b.targetSize
}

// Statistics returns the RowCount and DistinctValue statistics.
func (b *PlainCharBuilder[T]) Statistics() []Statistic {
	return b.statistics()
}

// Finish returns the payload and releases the value buffer.
func (b *PlainCharBuilder[T]) Finish() []byte {
	b.checkOpen()
	return b.finish(nil)
}
