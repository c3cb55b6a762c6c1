package column

import (
	"fmt"

	"github.com/arloliu/colblock/block"
	"github.com/arloliu/colblock/encoding"
	"github.com/arloliu/colblock/errs"
	"github.com/arloliu/colblock/format"
)

// Layout is the plain block layout a column uses for its values.
type Layout uint8

const (
	// LayoutPrimitive stores fixed-width values back to back.
	LayoutPrimitive Layout = iota + 1
	// LayoutChar stores variable-width values in zero-padded slots of CharWidth bytes.
	LayoutChar
	// LayoutBlob stores variable-width values behind an offset table.
	LayoutBlob
)

func (l Layout) String() string {
	switch l {
	case LayoutPrimitive:
		return "Primitive"
	case LayoutChar:
		return "Char"
	case LayoutBlob:
		return "Blob"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(l))
	}
}

// Descriptor describes how the blocks of a column are encoded.
type Descriptor struct {
	Type      format.LogicalType
	BlockType format.BlockType
	Layout    Layout
	CharWidth int
	Checksum  format.ChecksumType
}

// Nullable reports whether the column may hold nulls.
func (d Descriptor) Nullable() bool {
	return d.BlockType.IsNullable()
}

// RunLength reports whether blocks are run-length encoded.
func (d Descriptor) RunLength() bool {
	return d.BlockType.IsRunLength()
}

func (d Descriptor) runKind() block.RunKind {
	switch d.Layout {
	case LayoutChar:
		return block.BytesKind(d.CharWidth)
	case LayoutBlob:
		return block.BytesKind(0)
	default:
		return block.PrimitiveKind()
	}
}

// validate checks that the descriptor is usable with codec.
func (d Descriptor) validate(width int, typ format.LogicalType) error {
	if d.Type != typ {
		return fmt.Errorf("%w: column holds %s, codec encodes %s", errs.ErrBlockTypeMismatch, d.Type, typ)
	}
	if !d.BlockType.IsValid() {
		return fmt.Errorf("%w: %s", errs.ErrUnknownBlockType, d.BlockType)
	}

	switch d.Layout {
	case LayoutPrimitive:
		if width <= 0 {
			return fmt.Errorf("%w: %s", errs.ErrVariableWidth, typ)
		}
	case LayoutChar:
		if width > 0 || d.CharWidth <= 0 {
			return fmt.Errorf("%w: %d for %s", errs.ErrInvalidCharWidth, d.CharWidth, typ)
		}
	case LayoutBlob:
		if width > 0 {
			return fmt.Errorf("%w: blob layout for fixed-width %s", errs.ErrBlockTypeMismatch, typ)
		}
	default:
		return fmt.Errorf("%w: layout %s", errs.ErrBlockTypeMismatch, d.Layout)
	}

	return nil
}

func newDescriptor(width int, typ format.LogicalType, cfg *Config) (Descriptor, error) {
	desc := Descriptor{
		Type:      typ,
		BlockType: format.BlockTypeOf(cfg.runLength, cfg.nullable),
		CharWidth: cfg.charWidth,
		Checksum:  cfg.checksum,
	}

	switch {
	case width > 0:
		if cfg.charWidth > 0 {
			return Descriptor{}, fmt.Errorf("%w: %s has a fixed width of %d", errs.ErrInvalidCharWidth, typ, width)
		}
		desc.Layout = LayoutPrimitive
	case cfg.charWidth > 0:
		desc.Layout = LayoutChar
	default:
		desc.Layout = LayoutBlob
	}

	return desc, nil
}

// BlockIndex locates one sealed block inside Column.Data.
type BlockIndex struct {
	Offset   int
	Length   int
	FirstRow int
	RowCount int
	Stats    []block.Statistic
}

// Column is a finished column: a sequence of sealed blocks and their index.
type Column struct {
	Desc  Descriptor
	Data  []byte
	Index []BlockIndex
}

// RowCount returns the number of rows in the column.
func (c *Column) RowCount() int {
	if len(c.Index) == 0 {
		return 0
	}
	last := c.Index[len(c.Index)-1]

	return last.FirstRow + last.RowCount
}

// BlockCount returns the number of blocks in the column.
func (c *Column) BlockCount() int {
	return len(c.Index)
}

func plainDecoder[T any](codec encoding.TypeCodec[T], desc Descriptor) block.PlainDecoder[T] {
	nullable := desc.Nullable()

	var dec block.PlainDecoder[T]
	switch desc.Layout {
	case LayoutChar:
		dec = block.NewPlainCharDecoder(codec, desc.CharWidth, nullable)
	case LayoutBlob:
		dec = block.NewPlainBlobDecoder(codec, nullable)
	default:
		dec = block.NewPlainPrimitiveDecoder(codec, nullable)
	}

	if desc.RunLength() {
		return block.NewRunLengthDecoder(dec)
	}

	return dec
}
