package io

import (
	"bytes"
	"encoding/binary"
	"io"
)

// BinWriter is a convenient wrapper around an io.Writer and err object.
// Used to simplify error handling when writing into an io.Writer
// from a struct with many fields.
type BinWriter struct {
	w   io.Writer
	Err error
	uv  [8]byte
}

// NewBinWriterFromIO makes a BinWriter from io.Writer.
func NewBinWriterFromIO(iow io.Writer) *BinWriter {
	return &BinWriter{w: iow}
}

// NewBufBinWriter makes a BinWriter backed by an in-memory buffer.
func NewBufBinWriter() *BufBinWriter {
	b := new(bytes.Buffer)
	return &BufBinWriter{BinWriter: NewBinWriterFromIO(b), buf: b}
}

// BufBinWriter is a BinWriter that writes into a byte buffer.
type BufBinWriter struct {
	*BinWriter
	buf *bytes.Buffer
}

// Bytes returns the accumulated bytes, or nil if any write has failed.
func (bw *BufBinWriter) Bytes() []byte {
	if bw.Err != nil {
		return nil
	}
	return bw.buf.Bytes()
}

// Reset resets the underlying buffer and error state for reuse.
func (bw *BufBinWriter) Reset() {
	bw.Err = nil
	bw.buf.Reset()
}

// WriteU64LE writes a uint64 value into the underlying io.Writer in
// little-endian format.
func (w *BinWriter) WriteU64LE(u64 uint64) {
	binary.LittleEndian.PutUint64(w.uv[:8], u64)
	w.WriteBytes(w.uv[:8])
}

// WriteU32LE writes a uint32 value into the underlying io.Writer in
// little-endian format.
func (w *BinWriter) WriteU32LE(u32 uint32) {
	binary.LittleEndian.PutUint32(w.uv[:4], u32)
	w.WriteBytes(w.uv[:4])
}

// WriteB writes a byte into the underlying io.Writer.
func (w *BinWriter) WriteB(u8 byte) {
	w.uv[0] = u8
	w.WriteBytes(w.uv[:1])
}

// WriteBytes writes a variable byte slice into the underlying io.Writer
// without any prefix.
func (w *BinWriter) WriteBytes(b []byte) {
	if w.Err != nil {
		return
	}
	_, w.Err = w.w.Write(b)
}

// WriteString writes a string prefixed by its length as a little-endian
// uint32, matching the Borsh encoding of Rust's String.
func (w *BinWriter) WriteString(s string) {
	w.WriteU32LE(uint32(len(s)))
	if w.Err != nil {
		return
	}
	_, w.Err = io.WriteString(w.w, s)
}

// WriteCompactU16 writes a value in the shortvec encoding used by
// transaction messages for array lengths: 7 bits of the value per byte,
// the high bit set on all bytes but the last.
func (w *BinWriter) WriteCompactU16(val uint16) {
	v := uint32(val)
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			w.WriteB(b)
			return
		}
		w.WriteB(b | 0x80)
	}
}
