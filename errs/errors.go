// Package errs defines the sentinel errors returned by colblock.
//
// Errors are wrapped with context using fmt.Errorf("%w: ...") so callers can
// match them with errors.Is.
package errs

import "errors"

var (
	// Block decoding errors
	ErrCorruptBlock        = errors.New("corrupt block")
	ErrChecksumMismatch    = errors.New("block checksum mismatch")
	ErrUnknownBlockType    = errors.New("unknown block type")
	ErrBlockTypeMismatch   = errors.New("block type does not match column descriptor")
	ErrRowCountMismatch    = errors.New("decoded row count does not match expected row count")
	ErrUnsupportedChecksum = errors.New("unsupported checksum type")

	// Builder errors
	ErrNullValue         = errors.New("null value appended to non-nullable builder")
	ErrValueTooLong      = errors.New("value exceeds char width")
	ErrInvalidTargetSize = errors.New("target block size must be positive")
	ErrInvalidCharWidth  = errors.New("invalid char width")
	ErrVariableWidth     = errors.New("codec has no fixed width")

	// Reader errors
	ErrIndexOutOfRange = errors.New("block index out of range")
)
