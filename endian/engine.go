// Package endian provides the byte order engine used by colblock's block layouts.
//
// Every persisted structure in colblock (run-count tables, plain payloads, block
// headers) is little-endian. The EndianEngine interface combines the read/write
// and append halves of encoding/binary so builders can append integers directly
// into their output buffers:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, uint32(runCount))
//	buf = engine.AppendUint16(buf, count)
//
// The returned engines are stateless and safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine, the byte order of all block layouts.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
