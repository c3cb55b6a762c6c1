package block

import (
	"github.com/arloliu/colblock/format"
	"github.com/arloliu/colblock/internal/hash"
	"github.com/arloliu/colblock/internal/pool"
)

// plainState holds what every plain builder tracks: the value buffer, the
// validity bitmap, and the statistics counters.
type plainState struct {
	buf        *pool.ByteBuffer
	validity   []byte
	distinct   *hash.DistinctSet
	count      int
	targetSize int
	nullable   bool
}

func newPlainState(targetSize int, cfg *builderConfig) plainState {
	return plainState{
		buf:        pool.GetBlockBuffer(),
		distinct:   hash.NewDistinctSet(),
		targetSize: targetSize,
		nullable:   cfg.nullable,
	}
}

func (s *plainState) checkOpen() {
	if s.buf == nil {
		panic("block builder already finished")
	}
}

// markRow records the validity of the row being appended.
func (s *plainState) markRow(valid bool) {
	if s.nullable {
		if s.count%8 == 0 {
			s.validity = append(s.validity, 0)
		}
		if valid {
			s.validity[s.count/8] |= 1 << (s.count % 8)
		}
	}
	s.count++
}

// nullOverhead is the worst-case bitmap growth for one more row.
func (s *plainState) nullOverhead() int {
	if s.nullable {
		return 1
	}

	return 0
}

func (s *plainState) bitmapLen() int {
	if s.nullable {
		return len(s.validity)
	}

	return 0
}

func (s *plainState) statistics() []Statistic {
	s.checkOpen()
	rows := le.AppendUint32(nil, uint32(s.count)) //nolint:gosec
	distinct := le.AppendUint64(nil, uint64(s.distinct.Len()))

	return []Statistic{
		{Type: format.StatRowCount, Body: rows},
		{Type: format.StatDistinctValue, Body: distinct},
	}
}

// finish assembles header + values + bitmap and returns the value buffer to the pool.
func (s *plainState) finish(header []byte) []byte {
	out := make([]byte, 0, len(header)+s.buf.Len()+s.bitmapLen())
	out = append(out, header...)
	out = append(out, s.buf.Bytes()...)
	if s.nullable {
		out = append(out, s.validity...)
	}

	pool.PutBlockBuffer(s.buf)
	s.buf = nil
	s.validity = nil
	s.distinct = nil

	return out
}
