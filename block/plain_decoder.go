package block

import (
	"bytes"
	"fmt"

	"github.com/arloliu/colblock/encoding"
	"github.com/arloliu/colblock/errs"
	"github.com/arloliu/colblock/value"
)

// PlainDecoder decodes count value slots from a plain block payload.
//
// The payload must be exactly what the matching builder's Finish produced;
// any length mismatch is reported as errs.ErrCorruptBlock.
type PlainDecoder[T any] interface {
	Decode(data []byte, count int) ([]value.Nullable[T], error)
}

// splitBitmap separates the trailing validity bitmap from the value section.
func splitBitmap(data []byte, count int, nullable bool) ([]byte, []byte, error) {
	if !nullable {
		return data, nil, nil
	}

	size := bitmapSize(count)
	if len(data) < size {
		return nil, nil, fmt.Errorf("%w: %d bytes, need %d for validity bitmap", errs.ErrCorruptBlock, len(data), size)
	}

	return data[:len(data)-size], data[len(data)-size:], nil
}

func checkCount(count int) error {
	if count < 0 {
		return fmt.Errorf("%w: negative row count %d", errs.ErrCorruptBlock, count)
	}

	return nil
}

// PlainPrimitiveDecoder decodes PlainPrimitiveBuilder payloads.
type PlainPrimitiveDecoder[T any] struct {
	codec    encoding.TypeCodec[T]
	nullable bool
}

var _ PlainDecoder[int32] = PlainPrimitiveDecoder[int32]{}

// NewPlainPrimitiveDecoder creates a decoder for a fixed-width codec.
func NewPlainPrimitiveDecoder[T any](codec encoding.TypeCodec[T], nullable bool) PlainPrimitiveDecoder[T] {
	return PlainPrimitiveDecoder[T]{codec: codec, nullable: nullable}
}

func (d PlainPrimitiveDecoder[T]) Decode(data []byte, count int) ([]value.Nullable[T], error) {
	if err := checkCount(count); err != nil {
		return nil, err
	}

	values, bitmap, err := splitBitmap(data, count, d.nullable)
	if err != nil {
		return nil, err
	}

	width := d.codec.Width()
	if width <= 0 {
		return nil, fmt.Errorf("%w: %s", errs.ErrVariableWidth, d.codec.Type())
	}
	if len(values) != count*width {
		return nil, fmt.Errorf("%w: %d value bytes, expected %d x %d", errs.ErrCorruptBlock, len(values), count, width)
	}

	out := make([]value.Nullable[T], count)
	for i := range out {
		if bitmap != nil && !isValid(bitmap, i) {
			continue
		}
		out[i] = value.Some(d.codec.FromBytes(values[i*width : (i+1)*width]))
	}

	return out, nil
}

// PlainCharDecoder decodes PlainCharBuilder payloads, stripping zero padding.
type PlainCharDecoder[T any] struct {
	codec     encoding.TypeCodec[T]
	charWidth int
	nullable  bool
}

var _ PlainDecoder[string] = PlainCharDecoder[string]{}

// NewPlainCharDecoder creates a decoder for slots of charWidth bytes.
func NewPlainCharDecoder[T any](codec encoding.TypeCodec[T], charWidth int, nullable bool) PlainCharDecoder[T] {
	return PlainCharDecoder[T]{codec: codec, charWidth: charWidth, nullable: nullable}
}

func (d PlainCharDecoder[T]) Decode(data []byte, count int) ([]value.Nullable[T], error) {
	if err := checkCount(count); err != nil {
		return nil, err
	}
	if d.charWidth <= 0 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidCharWidth, d.charWidth)
	}

	values, bitmap, err := splitBitmap(data, count, d.nullable)
	if err != nil {
		return nil, err
	}
	if len(values) != count*d.charWidth {
		return nil, fmt.Errorf("%w: %d value bytes, expected %d x %d", errs.ErrCorruptBlock, len(values), count, d.charWidth)
	}

	out := make([]value.Nullable[T], count)
	for i := range out {
		if bitmap != nil && !isValid(bitmap, i) {
			continue
		}
		slot := values[i*d.charWidth : (i+1)*d.charWidth]
		out[i] = value.Some(d.codec.FromBytes(bytes.TrimRight(slot, "\x00")))
	}

	return out, nil
}

// PlainBlobDecoder decodes PlainBlobBuilder payloads.
type PlainBlobDecoder[T any] struct {
	codec    encoding.TypeCodec[T]
	nullable bool
}

var _ PlainDecoder[value.Blob] = PlainBlobDecoder[value.Blob]{}

// NewPlainBlobDecoder creates a decoder for variable-length values.
func NewPlainBlobDecoder[T any](codec encoding.TypeCodec[T], nullable bool) PlainBlobDecoder[T] {
	return PlainBlobDecoder[T]{codec: codec, nullable: nullable}
}

func (d PlainBlobDecoder[T]) Decode(data []byte, count int) ([]value.Nullable[T], error) {
	if err := checkCount(count); err != nil {
		return nil, err
	}

	body, bitmap, err := splitBitmap(data, count, d.nullable)
	if err != nil {
		return nil, err
	}

	tableSize := count * blobOffsetSize
	if len(body) < tableSize {
		return nil, fmt.Errorf("%w: %d bytes, need %d for offset table", errs.ErrCorruptBlock, len(body), tableSize)
	}
	offsets, payload := body[:tableSize], body[tableSize:]

	out := make([]value.Nullable[T], count)
	start := 0
	for i := range out {
		end := int(le.Uint32(offsets[i*blobOffsetSize:]))
		if end < start || end > len(payload) {
			return nil, fmt.Errorf("%w: offset %d of value %d out of range [%d, %d]", errs.ErrCorruptBlock, end, i, start, len(payload))
		}
		if bitmap == nil || isValid(bitmap, i) {
			out[i] = value.Some(d.codec.FromBytes(payload[start:end]))
		}
		start = end
	}

	if start != len(payload) {
		return nil, fmt.Errorf("%w: %d trailing bytes after last value", errs.ErrCorruptBlock, len(payload)-start)
	}

	return out, nil
}
