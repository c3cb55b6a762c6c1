package block

import (
	"bytes"
	"fmt"
	"math"

	"github.com/arloliu/colblock/encoding"
	"github.com/arloliu/colblock/value"
)

const (
	// MaxRunLength is the largest count a single run entry can hold.
	// Longer runs of the same value are split into several entries.
	MaxRunLength = math.MaxUint16

	runCountHeaderSize = 4 // u32 number of runs
	runCountEntrySize  = 2 // u16 per run
)

// RunKind selects how a run-length builder compares values and prices a new run.
type RunKind struct {
	bytes     bool
	charWidth int
}

// PrimitiveKind is the kind for fixed-width codecs. Values are compared by their
// owned bytes and a new run costs Width()+2 bytes.
func PrimitiveKind() RunKind {
	return RunKind{}
}

// BytesKind is the kind for variable-width codecs. Values are compared by their
// borrowed bytes. With charWidth > 0 a new run costs charWidth+2 bytes; with
// charWidth == 0 (unbounded) it costs the value length plus a 4-byte offset and
// the 2-byte run count.
func BytesKind(charWidth int) RunKind {
	return RunKind{bytes: true, charWidth: charWidth}
}

// IsBytes reports whether k is a bytes kind.
func (k RunKind) IsBytes() bool {
	return k.bytes
}

// CharWidth returns the fixed char width of a bytes kind, or 0 when unbounded.
func (k RunKind) CharWidth() int {
	return k.charWidth
}

func (k RunKind) String() string {
	switch {
	case !k.bytes:
		return "Primitive"
	case k.charWidth > 0:
		return fmt.Sprintf("Bytes(%d)", k.charWidth)
	default:
		return "Bytes(unbounded)"
	}
}

// runState tells what the last run holds.
type runState uint8

const (
	noRun runState = iota
	nullRun
	valueRun
)

// RunLengthBuilder wraps a plain builder and collapses consecutive equal values
// into runs. Only the first value of each run is forwarded to the wrapped
// builder; the run lengths are kept in a count table written ahead of the
// wrapped payload:
//
//	| run count N (u32) | count (u16) x N | wrapped payload |
//
// A run never exceeds MaxRunLength; the next equal value starts a new run.
// The builder owns the wrapped builder and finishes it in Finish.
type RunLengthBuilder[T any] struct {
	inner      Builder[T]
	codec      encoding.TypeCodec[T]
	counts     []uint16
	last       []byte // owned copy of the last value run's signature
	scratch    []byte
	rows       int
	targetSize int
	kind       RunKind
	state      runState
	finished   bool
}

var _ Builder[int32] = (*RunLengthBuilder[int32])(nil)

// NewRunLengthBuilder creates a run-length builder around inner.
//
// targetSize is the soft block size used by ShouldFinish; the wrapped builder's
// own target is ignored. codec must be the codec inner was built with.
func NewRunLengthBuilder[T any](inner Builder[T], codec encoding.TypeCodec[T], targetSize int, kind RunKind) *RunLengthBuilder[T] {
	return &RunLengthBuilder[T]{
		inner:      inner,
		codec:      codec,
		targetSize: targetSize,
		kind:       kind,
	}
}

func (b *RunLengthBuilder[T]) checkOpen() {
	if b.finished {
		panic("run-length builder already finished")
	}
}

// signature returns the bytes v is compared by. The result may alias v or the
// builder's scratch buffer and is only valid until the next call.
func (b *RunLengthBuilder[T]) signature(v T) []byte {
	if b.kind.bytes {
		if view, ok := b.codec.Borrowed(v); ok {
			return view
		}
	}
	b.scratch = b.codec.AppendOwned(b.scratch[:0], v)

	return b.scratch
}

// extendsRun reports whether item would be absorbed by the current run.
func (b *RunLengthBuilder[T]) extendsRun(item value.Nullable[T]) bool {
	n := len(b.counts)
	if n == 0 || b.counts[n-1] == MaxRunLength {
		return false
	}

	if !item.Valid {
		return b.state == nullRun
	}

	return b.state == valueRun && bytes.Equal(b.last, b.signature(item.V))
}

// Append adds item, either extending the current run or starting a new one.
// Errors come from the wrapped builder and leave the run state unchanged.
func (b *RunLengthBuilder[T]) Append(item value.Nullable[T]) error {
	b.checkOpen()

	if b.extendsRun(item) {
		b.counts[len(b.counts)-1]++
		b.rows++

		return nil
	}

	if err := b.inner.Append(item); err != nil {
		return err
	}

	if item.Valid {
		b.last = append(b.last[:0], b.signature(item.V)...)
		b.state = valueRun
	} else {
		b.last = b.last[:0]
		b.state = nullRun
	}
	b.counts = append(b.counts, 1)
	b.rows++

	return nil
}

// EstimatedSize returns the wrapped builder's size plus the run-count table.
func (b *RunLengthBuilder[T]) EstimatedSize() int {
	b.checkOpen()

	return b.inner.EstimatedSize() + runCountEntrySize*len(b.counts) + runCountHeaderSize
}

// ShouldFinish reports whether starting a run with next would push the block
// past its target size. Extending the current run is free, and an empty block
// always accepts its first value.
func (b *RunLengthBuilder[T]) ShouldFinish(next value.Nullable[T]) bool {
	b.checkOpen()

	if len(b.counts) == 0 || b.extendsRun(next) {
		return false
	}

	return b.EstimatedSize()+b.newRunCost(next) > b.targetSize
}

func (b *RunLengthBuilder[T]) newRunCost(next value.Nullable[T]) int {
	switch {
	case !b.kind.bytes:
		return b.codec.Width() + runCountEntrySize
	case b.kind.charWidth > 0:
		return b.kind.charWidth + runCountEntrySize
	default:
		n := 0
		if next.Valid {
			n = b.codec.Len(next.V)
		}

		return n + blobOffsetSize + runCountEntrySize
	}
}

// Statistics returns the wrapped builder's statistics unchanged.
func (b *RunLengthBuilder[T]) Statistics() []Statistic {
	b.checkOpen()
	return b.inner.Statistics()
}

// RunCount returns the number of runs recorded so far.
func (b *RunLengthBuilder[T]) RunCount() int {
	b.checkOpen()
	return len(b.counts)
}

// RowCount returns the number of value slots appended so far.
func (b *RunLengthBuilder[T]) RowCount() int {
	b.checkOpen()
	return b.rows
}

// Runs returns a copy of the run-count table.
func (b *RunLengthBuilder[T]) Runs() []uint16 {
	b.checkOpen()
	out := make([]uint16, len(b.counts))
	copy(out, b.counts)

	return out
}

// Finish writes the run-count table followed by the wrapped builder's payload.
// The builder cannot be used afterwards.
func (b *RunLengthBuilder[T]) Finish() []byte {
	b.checkOpen()
	b.finished = true

	payload := b.inner.Finish()

	out := make([]byte, 0, runCountHeaderSize+runCountEntrySize*len(b.counts)+len(payload))
	out = le.AppendUint32(out, uint32(len(b.counts))) //nolint:gosec
	for _, c := range b.counts {
		out = le.AppendUint16(out, c)
	}
	out = append(out, payload...)

	b.inner = nil
	b.counts = nil
	b.last = nil
	b.scratch = nil

	return out
}
