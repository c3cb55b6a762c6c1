package column

import (
	"fmt"

	"github.com/arloliu/colblock/block"
	"github.com/arloliu/colblock/encoding"
	"github.com/arloliu/colblock/internal/options"
	"github.com/arloliu/colblock/value"
)

// Builder splits a stream of values into sealed blocks of roughly the target
// block size.
//
// Note: the Builder is NOT thread-safe and NOT reusable. After Finish, any
// further call panics.
type Builder[T any] struct {
	codec  encoding.TypeCodec[T]
	cfg    *Config
	desc   Descriptor
	cur    block.Builder[T]
	curRow int // rows in cur
	rows   int
	data   []byte
	index  []BlockIndex
	done   bool
}

// NewBuilder creates a column builder for values encoded by codec.
//
// Example:
//
//	b, err := column.NewBuilder(encoding.UTF8, column.WithNullable(true), column.WithTargetBlockSize(4096))
//	...
//	_ = b.Append(value.Some("ok"))
//	col, err := b.Finish()
func NewBuilder[T any](codec encoding.TypeCodec[T], opts ...Option) (*Builder[T], error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	desc, err := newDescriptor(codec.Width(), codec.Type(), cfg)
	if err != nil {
		return nil, err
	}

	b := &Builder[T]{
		codec: codec,
		cfg:   cfg,
		desc:  desc,
	}
	cur, err := b.newBlock()
	if err != nil {
		return nil, err
	}
	b.cur = cur

	return b, nil
}

// Descriptor returns the encoding of the blocks being built.
func (b *Builder[T]) Descriptor() Descriptor {
	return b.desc
}

func (b *Builder[T]) checkOpen() {
	if b.done {
		panic("column builder already finished")
	}
}

// newBlock creates an empty block builder for the column's layout.
func (b *Builder[T]) newBlock() (block.Builder[T], error) {
	var opts []block.BuilderOption
	if b.cfg.nullable {
		opts = append(opts, block.WithNullable())
	}

	target := b.cfg.targetBlockSize

	var (
		plain block.Builder[T]
		err   error
	)
	switch b.desc.Layout {
	case LayoutChar:
		plain, err = block.NewPlainCharBuilder(b.codec, target, b.desc.CharWidth, opts...)
	case LayoutBlob:
		plain, err = block.NewPlainBlobBuilder(b.codec, target, opts...)
	default:
		plain, err = block.NewPlainPrimitiveBuilder(b.codec, target, opts...)
	}
	if err != nil {
		return nil, err
	}

	if b.desc.RunLength() {
		return block.NewRunLengthBuilder(plain, b.codec, target, b.desc.runKind()), nil
	}

	return plain, nil
}

// sealBlock finishes the current block and appends it to the column data.
func (b *Builder[T]) sealBlock() error {
	stats := b.cur.Statistics()
	payload := b.cur.Finish()

	sealed, err := block.Seal(b.desc.BlockType, b.desc.Checksum, payload)
	if err != nil {
		return fmt.Errorf("seal block %d: %w", len(b.index), err)
	}

	b.index = append(b.index, BlockIndex{
		Offset:   len(b.data),
		Length:   len(sealed),
		FirstRow: b.rows - b.curRow,
		RowCount: b.curRow,
		Stats:    stats,
	})
	b.data = append(b.data, sealed...)

	return nil
}

// Append adds one value. When the current block reports that it should be
// closed before item, item goes into a new block and the current one is
// sealed once the new block has accepted it. A rejected item leaves the
// column unchanged.
func (b *Builder[T]) Append(item value.Nullable[T]) error {
	b.checkOpen()

	if !b.cur.ShouldFinish(item) {
		if err := b.cur.Append(item); err != nil {
			return fmt.Errorf("row %d: %w", b.rows, err)
		}
		b.curRow++
		b.rows++

		return nil
	}

	next, err := b.newBlock()
	if err != nil {
		return err
	}
	if err := next.Append(item); err != nil {
		next.Finish()
		return fmt.Errorf("row %d: %w", b.rows, err)
	}
	if err := b.sealBlock(); err != nil {
		next.Finish()
		return err
	}

	b.cur = next
	b.curRow = 1
	b.rows++

	return nil
}

// RowCount returns the number of rows appended so far.
func (b *Builder[T]) RowCount() int {
	return b.rows
}

// BlockCount returns the number of blocks sealed so far.
func (b *Builder[T]) BlockCount() int {
	return len(b.index)
}

// Finish seals the last block and returns the column.
func (b *Builder[T]) Finish() (*Column, error) {
	b.checkOpen()
	b.done = true

	if b.curRow > 0 {
		if err := b.sealBlock(); err != nil {
			return nil, err
		}
	} else {
		b.cur.Finish()
	}
	b.cur = nil

	return &Column{
		Desc:  b.desc,
		Data:  b.data,
		Index: b.index,
	}, nil
}
