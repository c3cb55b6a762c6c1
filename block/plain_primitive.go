package block

import (
	"fmt"

	"github.com/arloliu/colblock/encoding"
	"github.com/arloliu/colblock/errs"
	"github.com/arloliu/colblock/value"
)

// PlainPrimitiveBuilder encodes fixed-width values back to back:
//
//	| value | value | ... | [validity bitmap] |
//
// Nulls, when enabled with WithNullable, occupy a zeroed value slot.
type PlainPrimitiveBuilder[T any] struct {
	plainState
	codec encoding.TypeCodec[T]
	width int
}

var _ Builder[int32] = (*PlainPrimitiveBuilder[int32])(nil)

// NewPlainPrimitiveBuilder creates a builder for a fixed-width codec.
// targetSize is the soft block size consulted by ShouldFinish.
func NewPlainPrimitiveBuilder[T any](codec encoding.TypeCodec[T], targetSize int, opts ...BuilderOption) (*PlainPrimitiveBuilder[T], error) {
	if codec.Width() <= 0 {
		return nil, fmt.Errorf("%w: %s", errs.ErrVariableWidth, codec.Type())
	}

	cfg, err := newBuilderConfig(opts)
	if err != nil {
		return nil, err
	}

	return &PlainPrimitiveBuilder[T]{
		plainState: newPlainState(targetSize, cfg),
		codec:      codec,
		width:      codec.Width(),
	}, nil
}

// Append adds one value slot. It rejects nulls unless the builder is nullable.
func (b *PlainPrimitiveBuilder[T]) Append(item value.Nullable[T]) error {
	b.checkOpen()

	if !item.Valid {
		if !b.nullable {
			return errs.ErrNullValue
		}
		b.buf.WriteZeros(b.width)
		b.markRow(false)

		return nil
	}

	start := b.buf.Len()
	b.buf.Grow(b.width)
	b.buf.B = b.codec.AppendOwned(b.buf.B, item.V)
	b.distinct.Add(b.buf.B[start:])
	b.markRow(true)

	return nil
}

// EstimatedSize returns the size of the payload Finish would produce now.
func (b *PlainPrimitiveBuilder[T]) EstimatedSize() int {
	b.checkOpen()
	return b.buf.Len() + b.bitmapLen()
}

// ShouldFinish reports whether one more value would exceed the target size.
func (b *PlainPrimitiveBuilder[T]) ShouldFinish(value.Nullable[T]) bool {
	b.checkOpen()
	return b.count > 0 && b.EstimatedSize()+b.width+b.nullOverhead() > b.targetSize
}

// Statistics returns the RowCount and DistinctValue statistics.
func (b *PlainPrimitiveBuilder[T]) Statistics() []Statistic {
	return b.statistics()
}

// Finish returns the payload and releases the value buffer.
func (b *PlainPrimitiveBuilder[T]) Finish() []byte {
	b.checkOpen()
	return b.finish(nil)
}
