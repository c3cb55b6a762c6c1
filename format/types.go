package format

import "fmt"

type (
	LogicalType  uint8
	BlockType    uint32
	ChecksumType uint32
	StatType     uint8
)

const (
	TypeBool     LogicalType = 0x1 // TypeBool represents a boolean column.
	TypeInt32    LogicalType = 0x2 // TypeInt32 represents a 32-bit signed integer column.
	TypeFloat64  LogicalType = 0x3 // TypeFloat64 represents a 64-bit IEEE float column.
	TypeDecimal  LogicalType = 0x4 // TypeDecimal represents a 128-bit decimal column.
	TypeDate     LogicalType = 0x5 // TypeDate represents a date column (days since epoch).
	TypeInterval LogicalType = 0x6 // TypeInterval represents a month/day interval column.
	TypeUTF8     LogicalType = 0x7 // TypeUTF8 represents a UTF-8 text column.
	TypeBlob     LogicalType = 0x8 // TypeBlob represents an opaque byte blob column.
)

const (
	BlockPlain             BlockType = 0x1 // BlockPlain is a plain block without nulls.
	BlockPlainNullable     BlockType = 0x2 // BlockPlainNullable is a plain block followed by a validity bitmap.
	BlockRunLength         BlockType = 0x3 // BlockRunLength is a run-length block wrapping a plain block.
	BlockRunLengthNullable BlockType = 0x4 // BlockRunLengthNullable is a run-length block wrapping a nullable plain block.
)

const (
	ChecksumNone   ChecksumType = 0x0 // ChecksumNone stores a zero checksum.
	ChecksumCRC32  ChecksumType = 0x1 // ChecksumCRC32 uses CRC-32 (IEEE).
	ChecksumXXHash ChecksumType = 0x2 // ChecksumXXHash uses xxHash64.
)

const (
	StatRowCount      StatType = 0x1 // StatRowCount holds the number of appended items as u32 LE.
	StatDistinctValue StatType = 0x2 // StatDistinctValue holds the number of distinct non-null values as u64 LE.
)

func (t LogicalType) String() string {
	switch t {
	case TypeBool:
		return "Bool"
	case TypeInt32:
		return "Int32"
	case TypeFloat64:
		return "Float64"
	case TypeDecimal:
		return "Decimal"
	case TypeDate:
		return "Date"
	case TypeInterval:
		return "Interval"
	case TypeUTF8:
		return "UTF8"
	case TypeBlob:
		return "Blob"
	default:
		return "Unknown"
	}
}

func (b BlockType) String() string {
	switch b {
	case BlockPlain:
		return "Plain"
	case BlockPlainNullable:
		return "PlainNullable"
	case BlockRunLength:
		return "RunLength"
	case BlockRunLengthNullable:
		return "RunLengthNullable"
	default:
		return fmt.Sprintf("Unknown(%d)", uint32(b))
	}
}

// IsValid reports whether b is a known block type.
func (b BlockType) IsValid() bool {
	return b >= BlockPlain && b <= BlockRunLengthNullable
}

// IsRunLength reports whether blocks of this type start with a run-count table.
func (b BlockType) IsRunLength() bool {
	return b == BlockRunLength || b == BlockRunLengthNullable
}

// IsNullable reports whether the plain payload carries a validity bitmap.
func (b BlockType) IsNullable() bool {
	return b == BlockPlainNullable || b == BlockRunLengthNullable
}

// BlockTypeOf returns the block type for the given run-length and nullability settings.
func BlockTypeOf(runLength, nullable bool) BlockType {
	switch {
	case runLength && nullable:
		return BlockRunLengthNullable
	case runLength:
		return BlockRunLength
	case nullable:
		return BlockPlainNullable
	default:
		return BlockPlain
	}
}

func (c ChecksumType) String() string {
	switch c {
	case ChecksumNone:
		return "None"
	case ChecksumCRC32:
		return "CRC32"
	case ChecksumXXHash:
		return "XXHash"
	default:
		return fmt.Sprintf("Unknown(%d)", uint32(c))
	}
}

func (s StatType) String() string {
	switch s {
	case StatRowCount:
		return "RowCount"
	case StatDistinctValue:
		return "DistinctValue"
	default:
		return "Unknown"
	}
}
