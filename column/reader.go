package column

import (
	"fmt"
	"iter"

	"github.com/arloliu/colblock/block"
	"github.com/arloliu/colblock/encoding"
	"github.com/arloliu/colblock/errs"
	"github.com/arloliu/colblock/value"
)

// Reader decodes the blocks of a Column.
//
// Note: a Reader is not safe for concurrent use because All records its
// error on the reader.
type Reader[T any] struct {
	col     *Column
	decoder block.PlainDecoder[T]
	err     error
}

// NewReader creates a reader for col. The codec must encode the column's logical type.
func NewReader[T any](codec encoding.TypeCodec[T], col *Column) (*Reader[T], error) {
	if err := col.Desc.validate(codec.Width(), codec.Type()); err != nil {
		return nil, err
	}

	return &Reader[T]{
		col:     col,
		decoder: plainDecoder(codec, col.Desc),
	}, nil
}

// RowCount returns the number of rows in the column.
func (r *Reader[T]) RowCount() int {
	return r.col.RowCount()
}

// BlockCount returns the number of blocks in the column.
func (r *Reader[T]) BlockCount() int {
	return r.col.BlockCount()
}

// Block verifies and decodes block i.
func (r *Reader[T]) Block(i int) ([]value.Nullable[T], error) {
	if i < 0 || i >= len(r.col.Index) {
		return nil, fmt.Errorf("%w: block %d of %d", errs.ErrIndexOutOfRange, i, len(r.col.Index))
	}

	entry := r.col.Index[i]
	end := entry.Offset + entry.Length
	if entry.Offset < 0 || entry.Length < 0 || end > len(r.col.Data) {
		return nil, fmt.Errorf("%w: block %d spans [%d, %d) of %d bytes", errs.ErrCorruptBlock, i, entry.Offset, end, len(r.col.Data))
	}

	header, payload, err := block.Open(r.col.Data[entry.Offset:end])
	if err != nil {
		return nil, fmt.Errorf("block %d: %w", i, err)
	}
	if header.Type != r.col.Desc.BlockType {
		return nil, fmt.Errorf("%w: block %d is %s, column is %s", errs.ErrBlockTypeMismatch, i, header.Type, r.col.Desc.BlockType)
	}

	values, err := r.decoder.Decode(payload, entry.RowCount)
	if err != nil {
		return nil, fmt.Errorf("block %d: %w", i, err)
	}

	return values, nil
}

// All returns an iterator over every row of the column with its row number.
// Iteration stops at the first block that fails to decode; the error is then
// available from Err.
//
// Example:
//
//	for row, v := range r.All() {
//	    fmt.Println(row, v)
//	}
//	if err := r.Err(); err != nil {
//	    ...
//	}
func (r *Reader[T]) All() iter.Seq2[int, value.Nullable[T]] {
	return func(yield func(int, value.Nullable[T]) bool) {
		r.err = nil
		row := 0
		for i := range r.col.Index {
			values, err := r.Block(i)
			if err != nil {
				r.err = err
				return
			}
			for _, v := range values {
				if !yield(row, v) {
					return
				}
				row++
			}
		}
	}
}

// Err returns the error that stopped the last All iteration, if any.
func (r *Reader[T]) Err() error {
	return r.err
}

// ReadAll decodes every block and returns all rows.
func (r *Reader[T]) ReadAll() ([]value.Nullable[T], error) {
	out := make([]value.Nullable[T], 0, r.RowCount())
	for i := range r.col.Index {
		values, err := r.Block(i)
		if err != nil {
			return nil, err
		}
		out = append(out, values...)
	}

	return out, nil
}
