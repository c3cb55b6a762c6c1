// Package column builds and reads whole columns made of sealed blocks.
//
// A Builder feeds values into a block builder (plain, optionally wrapped in
// run-length encoding) and closes the block as soon as it reports that the
// next value would exceed the target block size. Each closed block is sealed
// with a header and checksum and recorded in the column's BlockIndex together
// with its statistics.
//
// The block layout follows the codec: fixed-width types use the primitive
// layout, text and blob types use fixed char slots when WithCharWidth is set
// and the offset-table layout otherwise.
//
// Example:
//
//	b, err := column.NewBuilder(encoding.Int32, column.WithNullable(true))
//	if err != nil {
//	    return err
//	}
//	for _, v := range values {
//	    if err := b.Append(v); err != nil {
//	        return err
//	    }
//	}
//	col, err := b.Finish()
//	if err != nil {
//	    return err
//	}
//
//	r, err := column.NewReader(encoding.Int32, col)
//	if err != nil {
//	    return err
//	}
//	rows, err := r.ReadAll()
package column
