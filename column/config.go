package column

import (
	"fmt"

	"github.com/arloliu/colblock/errs"
	"github.com/arloliu/colblock/format"
	"github.com/arloliu/colblock/internal/options"
)

// DefaultTargetBlockSize is the soft block size used when WithTargetBlockSize is not given.
const DefaultTargetBlockSize = 64 * 1024

// Config holds the column builder configuration.
type Config struct {
	targetBlockSize int
	runLength       bool
	nullable        bool
	charWidth       int
	checksum        format.ChecksumType
}

func newConfig() *Config {
	return &Config{
		targetBlockSize: DefaultTargetBlockSize,
		runLength:       true,
		checksum:        format.ChecksumXXHash,
	}
}

// Option configures a column Builder.
type Option = options.Option[*Config]

// WithTargetBlockSize sets the soft size limit of one block. A block is closed
// before the value that would push it over the limit; a single value larger
// than the limit still gets a block of its own.
func WithTargetBlockSize(size int) Option {
	return options.New(func(c *Config) error {
		if size <= 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidTargetSize, size)
		}
		c.targetBlockSize = size

		return nil
	})
}

// WithRunLength enables or disables run-length encoding of blocks.
// It is enabled by default.
func WithRunLength(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.runLength = enabled
	})
}

// WithNullable allows null values in the column.
func WithNullable(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.nullable = enabled
	})
}

// WithCharWidth stores text or blob values in fixed slots of width bytes,
// zero padded. Only valid for variable-width types; 0 keeps the
// variable-length layout.
func WithCharWidth(width int) Option {
	return options.New(func(c *Config) error {
		if width < 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidCharWidth, width)
		}
		c.charWidth = width

		return nil
	})
}

// WithChecksum sets the checksum stored in every block header.
// The default is xxHash64.
func WithChecksum(ct format.ChecksumType) Option {
	return options.New(func(c *Config) error {
		switch ct {
		case format.ChecksumNone, format.ChecksumCRC32, format.ChecksumXXHash:
			c.checksum = ct
			return nil
		default:
			return fmt.Errorf("%w: %s", errs.ErrUnsupportedChecksum, ct)
		}
	})
}
