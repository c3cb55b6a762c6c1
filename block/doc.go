// Package block builds and decodes single-column storage blocks.
//
// A block holds the values of one column for a bounded row range. Plain
// builders store every value; RunLengthBuilder wraps any plain builder and
// stores each run of consecutive equal values (or nulls) once, together with a
// table of run lengths:
//
//	offset 0        u32  run count N
//	offset 4        N x u16 run lengths, in row order
//	offset 4 + 2N   wrapped plain payload (N values)
//
// All integers are little-endian.
//
// # Building
//
//	inner, _ := block.NewPlainPrimitiveBuilder(encoding.Int32, 0)
//	b := block.NewRunLengthBuilder(inner, encoding.Int32, 64*1024, block.PrimitiveKind())
//	for _, v := range values {
//	    if b.ShouldFinish(value.Some(v)) {
//	        // seal this block and start a new one
//	    }
//	    _ = b.Append(value.Some(v))
//	}
//	payload := b.Finish()
//
// The target size is a soft limit: ShouldFinish only answers for the next
// value, so a finished block may exceed the target by up to one run's cost.
//
// # Decoding
//
//	dec := block.NewRunLengthDecoder(block.NewPlainPrimitiveDecoder(encoding.Int32, false))
//	values, err := dec.Decode(payload, rowCount)
//
// DecodeRunLength exposes the raw split for callers that consume runs directly.
//
// # Sealing
//
// Seal prepends a 16-byte header carrying the block type and a checksum of the
// payload (CRC-32 or xxHash64); Open verifies it.
package block
