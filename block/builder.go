package block

import (
	"fmt"

	"github.com/arloliu/colblock/endian"
	"github.com/arloliu/colblock/format"
	"github.com/arloliu/colblock/internal/options"
	"github.com/arloliu/colblock/value"
)

var le = endian.GetLittleEndianEngine()

// Builder incrementally builds one block of a single column.
//
// Implementations are single-owner and not safe for concurrent use. Finish is
// terminal: calling any method afterwards panics.
type Builder[T any] interface {
	// Append adds one value slot. It returns an error when the builder rejects
	// the item, in which case the builder state is unchanged.
	Append(item value.Nullable[T]) error

	// EstimatedSize returns the size in bytes Finish would produce now.
	EstimatedSize() int

	// ShouldFinish reports whether the block should be closed before next is appended.
	ShouldFinish(next value.Nullable[T]) bool

	// Statistics returns per-block statistics for the items appended so far.
	Statistics() []Statistic

	// Finish returns the encoded block payload and releases the builder's resources.
	Finish() []byte
}

// Statistic is one per-block statistic with a type-specific little-endian body.
type Statistic struct {
	Type format.StatType
	Body []byte
}

// Value decodes the statistic body as an unsigned integer.
// RowCount bodies are 4 bytes and DistinctValue bodies 8 bytes; other lengths decode as 0.
func (s Statistic) Value() uint64 {
	switch len(s.Body) {
	case 4:
		return uint64(le.Uint32(s.Body))
	case 8:
		return le.Uint64(s.Body)
	default:
		return 0
	}
}

func (s Statistic) String() string {
	return fmt.Sprintf("%s=%d", s.Type, s.Value())
}

// FindStatistic returns the first statistic of the given type.
func FindStatistic(stats []Statistic, typ format.StatType) (Statistic, bool) {
	for _, s := range stats {
		if s.Type == typ {
			return s, true
		}
	}

	return Statistic{}, false
}

type builderConfig struct {
	nullable bool
}

// BuilderOption configures a plain builder.
type BuilderOption = options.Option[*builderConfig]

// WithNullable makes the builder accept nulls. The payload is then followed by a
// validity bitmap of ceil(n/8) bytes, bit i (LSB first) set when row i is non-null.
func WithNullable() BuilderOption {
	return options.NoError(func(c *builderConfig) {
		c.nullable = true
	})
}

func newBuilderConfig(opts []BuilderOption) (*builderConfig, error) {
	cfg := &builderConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// bitmapSize returns the validity bitmap length for n rows.
func bitmapSize(n int) int {
	return (n + 7) / 8
}

// isValid reports whether row i is marked non-null in bitmap.
func isValid(bitmap []byte, i int) bool {
	return bitmap[i/8]&(1<<(i%8)) != 0
}
