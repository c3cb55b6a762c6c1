// Package encoding defines the per-logical-type byte serialization contract
// used by colblock's block builders.
//
// A TypeCodec[T] tells a builder how wide a value is, how to serialize it, and
// whether a zero-copy view of its bytes is available. Run-length builders use
// these bytes as the value's signature: consecutive values with identical
// serialized bytes collapse into a single run.
//
// # Supported Types
//
//	Codec     Go type           Width  Layout
//	Bool      bool              1      0 or 1
//	Int32     int32             4      little-endian
//	Float64   float64           8      IEEE 754 bits, little-endian
//	Decimal   decimal.Decimal   16     flags (scale, sign) + 96-bit magnitude
//	Date      value.Date        4      days since epoch, little-endian
//	Interval  value.Interval    8      months, days, little-endian
//	UTF8      string            0      raw bytes (variable width)
//	Blob      value.Blob        0      raw bytes (variable width)
//
// Fixed-width codecs report Borrowed as unavailable; variable-width codecs
// return a view of the value's own memory, which callers must not modify.
//
// # Custom Codecs
//
// Any type can be stored by implementing TypeCodec[T]:
//
//	type UUIDCodec struct{}
//
//	func (UUIDCodec) Type() format.LogicalType               { return format.TypeBlob }
//	func (UUIDCodec) Width() int                             { return 16 }
//	func (UUIDCodec) Len(uuid.UUID) int                      { return 16 }
//	func (UUIDCodec) Borrowed(uuid.UUID) ([]byte, bool)      { return nil, false }
//	func (UUIDCodec) AppendOwned(dst []byte, v uuid.UUID) []byte { return append(dst, v[:]...) }
//	func (UUIDCodec) FromBytes(b []byte) uuid.UUID           { return uuid.UUID(b[:16]) }
package encoding
