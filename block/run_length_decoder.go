package block

import (
	"fmt"

	"github.com/arloliu/colblock/errs"
	"github.com/arloliu/colblock/value"
)

// RunLengthBlock is a run-length block split into its parts. Counts and
// Payload alias the decoded buffer.
type RunLengthBlock struct {
	// RunCount is the number of runs, and of values in Payload.
	RunCount int
	// Counts is the run-count table: RunCount little-endian u16 values.
	Counts []byte
	// Payload is the wrapped plain builder's output.
	Payload []byte
}

// DecodeRunLength splits a run-length block into its run-count table and the
// wrapped payload. It fails with errs.ErrCorruptBlock when data is shorter than
// the table its leading run count implies.
func DecodeRunLength(data []byte) (RunLengthBlock, error) {
	if len(data) < runCountHeaderSize {
		return RunLengthBlock{}, fmt.Errorf("%w: %d bytes, need %d for run count", errs.ErrCorruptBlock, len(data), runCountHeaderSize)
	}

	runs := uint64(le.Uint32(data))
	tableEnd := uint64(runCountHeaderSize) + runCountEntrySize*runs
	if uint64(len(data)) < tableEnd {
		return RunLengthBlock{}, fmt.Errorf("%w: %d bytes, need %d for %d run counts", errs.ErrCorruptBlock, len(data), tableEnd, runs)
	}

	return RunLengthBlock{
		RunCount: int(runs),
		Counts:   data[runCountHeaderSize:tableEnd],
		Payload:  data[tableEnd:],
	}, nil
}

// Count returns the length of run i.
func (b RunLengthBlock) Count(i int) uint16 {
	return le.Uint16(b.Counts[i*runCountEntrySize:])
}

// Rows returns the total number of rows the runs expand to.
func (b RunLengthBlock) Rows() int {
	rows := 0
	for i := 0; i < b.RunCount; i++ {
		rows += int(b.Count(i))
	}

	return rows
}

// RunLengthDecoder reconstructs the full column of a run-length block: it
// decodes one value per run with the wrapped decoder and repeats it by the
// run's count.
type RunLengthDecoder[T any] struct {
	inner PlainDecoder[T]
}

var _ PlainDecoder[int32] = RunLengthDecoder[int32]{}

// NewRunLengthDecoder creates a decoder whose payload format is handled by inner.
func NewRunLengthDecoder[T any](inner PlainDecoder[T]) RunLengthDecoder[T] {
	return RunLengthDecoder[T]{inner: inner}
}

// Decode expands data into rowCount value slots. The runs must add up to
// exactly rowCount, otherwise errs.ErrRowCountMismatch is returned.
func (d RunLengthDecoder[T]) Decode(data []byte, rowCount int) ([]value.Nullable[T], error) {
	blk, err := DecodeRunLength(data)
	if err != nil {
		return nil, err
	}

	heads, err := d.inner.Decode(blk.Payload, blk.RunCount)
	if err != nil {
		return nil, fmt.Errorf("decode run heads: %w", err)
	}

	if rows := blk.Rows(); rows != rowCount {
		return nil, fmt.Errorf("%w: runs expand to %d rows, expected %d", errs.ErrRowCountMismatch, rows, rowCount)
	}

	out := make([]value.Nullable[T], 0, rowCount)
	for i, head := range heads {
		count := int(blk.Count(i))
		if count == 0 {
			return nil, fmt.Errorf("%w: run %d has zero length", errs.ErrCorruptBlock, i)
		}
		for range count {
			out = append(out, head)
		}
	}

	return out, nil
}
