package encoding

import (
	"math"
	"unsafe"

	"github.com/arloliu/colblock/endian"
	"github.com/arloliu/colblock/format"
	"github.com/arloliu/colblock/value"
)

var le = endian.GetLittleEndianEngine()

// TypeCodec is the per-logical-type byte serialization contract used by block builders.
//
// Run-length builders compare values by their serialized bytes, so two values
// are "equal" for run detection exactly when their owned encodings are equal.
type TypeCodec[T any] interface {
	// Type returns the logical type handled by the codec.
	Type() format.LogicalType

	// Width returns the fixed serialized length in bytes, or 0 for variable-width types.
	Width() int

	// AppendOwned appends the serialized form of v to dst and returns the extended slice.
	AppendOwned(dst []byte, v T) []byte

	// Borrowed returns a zero-copy view of v's bytes. Codecs whose values have
	// no natural byte view return false; callers fall back to AppendOwned.
	Borrowed(v T) ([]byte, bool)

	// Len returns the serialized length of v. It equals Width() for fixed-width types.
	Len(v T) int

	// FromBytes decodes a value from its owned serialized form.
	// For fixed-width types b must hold at least Width() bytes.
	FromBytes(b []byte) T
}

// Owned returns a freshly allocated copy of v's serialized form.
func Owned[T any](c TypeCodec[T], v T) []byte {
	return c.AppendOwned(make([]byte, 0, c.Len(v)), v)
}

// BoolCodec encodes booleans as a single byte, 0 or 1.
type BoolCodec struct{}

// Int32Codec encodes 32-bit integers as 4 little-endian bytes.
type Int32Codec struct{}

// Float64Codec encodes floats as their 8-byte little-endian IEEE 754 bits.
//
// Run detection compares bits, so 0.0 and -0.0 start different runs while
// identical NaN payloads share one.
type Float64Codec struct{}

// DateCodec encodes dates as 4 little-endian bytes of days since epoch.
type DateCodec struct{}

// IntervalCodec encodes intervals as months then days, each 4 little-endian bytes.
type IntervalCodec struct{}

// UTF8Codec encodes text as its raw UTF-8 bytes.
type UTF8Codec struct{}

// BlobCodec encodes blobs as their raw bytes.
type BlobCodec struct{}

// Codecs for the built-in logical types.
var (
	// Bool is the codec for TypeBool.
	Bool TypeCodec[bool] = BoolCodec{}

	// Int32 is the codec for TypeInt32.
	Int32 TypeCodec[int32] = Int32Codec{}

	// Float64 is the codec for TypeFloat64.
	Float64 TypeCodec[float64] = Float64Codec{}

	// Date is the codec for TypeDate.
	Date TypeCodec[value.Date] = DateCodec{}

	// Interval is the codec for TypeInterval.
	Interval TypeCodec[value.Interval] = IntervalCodec{}

	// UTF8 is the codec for TypeUTF8.
	UTF8 TypeCodec[string] = UTF8Codec{}

	// Blob is the codec for TypeBlob.
	Blob TypeCodec[value.Blob] = BlobCodec{}
)

func (BoolCodec) Type() format.LogicalType { return format.TypeBool }
func (BoolCodec) Width() int { return 1 }
func (BoolCodec) Len(bool) int { return 1 }
func (BoolCodec) Borrowed(bool) ([]byte, bool) { return nil, false }

func (BoolCodec) AppendOwned(dst []byte, v bool) []byte {
	if v {
		return append(dst, 1)
	}

	return append(dst, 0)
}

func (BoolCodec) FromBytes(b []byte) bool {
	return b[0] != 0
}

func (Int32Codec) Type() format.LogicalType { return format.TypeInt32 }
func (Int32Codec) Width() int { return 4 }
func (Int32Codec) Len(int32) int { return 4 }
func (Int32Codec) Borrowed(int32) ([]byte, bool) { return nil, false }

func (Int32Codec) AppendOwned(dst []byte, v int32) []byte {
	return le.AppendUint32(dst, uint32(v)) //nolint:gosec
}

func (Int32Codec) FromBytes(b []byte) int32 {
	return int32(le.Uint32(b)) //nolint:gosec
}

func (Float64Codec) Type() format.LogicalType { return format.TypeFloat64 }
func (Float64Codec) Width() int { return 8 }
func (Float64Codec) Len(float64) int { return 8 }
func (Float64Codec) Borrowed(float64) ([]byte, bool) { return nil, false }

func (Float64Codec) AppendOwned(dst []byte, v float64) []byte {
	return le.AppendUint64(dst, math.Float64bits(v))
}

func (Float64Codec) FromBytes(b []byte) float64 {
	return math.Float64frombits(le.Uint64(b))
}

func (DateCodec) Type() format.LogicalType { return format.TypeDate }
func (DateCodec) Width() int { return 4 }
func (DateCodec) Len(value.Date) int { return 4 }
func (DateCodec) Borrowed(value.Date) ([]byte, bool) { return nil, false }

func (DateCodec) AppendOwned(dst []byte, v value.Date) []byte {
	return le.AppendUint32(dst, uint32(v)) //nolint:gosec
}

func (DateCodec) FromBytes(b []byte) value.Date {
	return value.Date(int32(le.Uint32(b))) //nolint:gosec
}

func (IntervalCodec) Type() format.LogicalType { return format.TypeInterval }
func (IntervalCodec) Width() int { return 8 }
func (IntervalCodec) Len(value.Interval) int { return 8 }
func (IntervalCodec) Borrowed(value.Interval) ([]byte, bool) { return nil, false }

func (IntervalCodec) AppendOwned(dst []byte, v value.Interval) []byte {
	dst = le.AppendUint32(dst, uint32(v.Months)) //nolint:gosec
	return le.AppendUint32(dst, uint32(v.Days))  //nolint:gosec
}

func (IntervalCodec) FromBytes(b []byte) value.Interval {
	return value.Interval{
		Months: int32(le.Uint32(b[0:4])), //nolint:gosec
		Days:   int32(le.Uint32(b[4:8])), //nolint:gosec
	}
}

func (UTF8Codec) Type() format.LogicalType { return format.TypeUTF8 }
func (UTF8Codec) Width() int { return 0 }
func (UTF8Codec) Len(v string) int { return len(v) }

func (UTF8Codec) AppendOwned(dst []byte, v string) []byte {
	return append(dst, v...)
}

// Borrowed returns a view of the string's bytes. The view must not be modified.
func (UTF8Codec) Borrowed(v string) ([]byte, bool) {
	if len(v) == 0 {
		return []byte{}, true
	}

	return unsafe.Slice(unsafe.StringData(v), len(v)), true
}

func (UTF8Codec) FromBytes(b []byte) string {
	return string(b)
}

func (BlobCodec) Type() format.LogicalType { return format.TypeBlob }
func (BlobCodec) Width() int { return 0 }
func (BlobCodec) Len(v value.Blob) int { return len(v) }

func (BlobCodec) AppendOwned(dst []byte, v value.Blob) []byte {
	return append(dst, v...)
}

func (BlobCodec) Borrowed(v value.Blob) ([]byte, bool) {
	if v == nil {
		return []byte{}, true
	}

	return v, true
}

func (BlobCodec) FromBytes(b []byte) value.Blob {
	out := make(value.Blob, len(b))
	copy(out, b)

	return out
}
