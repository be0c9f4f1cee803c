package io

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// maxStringSize is the maximum length of a length-prefixed string that can
// be decoded. Account data and instruction payloads are tiny, anything
// bigger than this is garbage, not data.
const maxStringSize = 0x100000

// errCompactU16Overflow is returned when a shortvec value doesn't fit 16 bits.
var errCompactU16Overflow = errors.New("compact-u16 value overflows 16 bits")

// BinReader is a convenient wrapper around an io.Reader and err object.
// Used to simplify error handling when reading into a struct with many fields.
type BinReader struct {
	r   io.Reader
	Err error
	uv  [8]byte
}

// NewBinReaderFromIO makes a BinReader from io.Reader.
func NewBinReaderFromIO(ior io.Reader) *BinReader {
	return &BinReader{r: ior}
}

// NewBinReaderFromBuf makes a BinReader from a byte buffer.
func NewBinReaderFromBuf(b []byte) *BinReader {
	r := bytes.NewReader(b)
	return NewBinReaderFromIO(r)
}

// ReadU64LE reads a little-endian uint64 from the underlying io.Reader.
func (r *BinReader) ReadU64LE() uint64 {
	r.ReadBytes(r.uv[:8])
	if r.Err != nil {
		return 0
	}
	return binary.LittleEndian.Uint64(r.uv[:8])
}

// ReadU32LE reads a little-endian uint32 from the underlying io.Reader.
func (r *BinReader) ReadU32LE() uint32 {
	r.ReadBytes(r.uv[:4])
	if r.Err != nil {
		return 0
	}
	return binary.LittleEndian.Uint32(r.uv[:4])
}

// ReadB reads a byte from the underlying io.Reader.
func (r *BinReader) ReadB() byte {
	r.ReadBytes(r.uv[:1])
	if r.Err != nil {
		return 0
	}
	return r.uv[0]
}

// ReadBytes fills the given slice from the underlying io.Reader.
func (r *BinReader) ReadBytes(b []byte) {
	if r.Err != nil {
		return
	}
	_, r.Err = io.ReadFull(r.r, b)
}

// ReadString reads a string prefixed by its length as a little-endian
// uint32, matching the Borsh encoding of Rust's String.
func (r *BinReader) ReadString() string {
	n := r.ReadU32LE()
	if r.Err != nil {
		return ""
	}
	if n > maxStringSize {
		r.Err = fmt.Errorf("string is too big (%d)", n)
		return ""
	}
	b := make([]byte, n)
	r.ReadBytes(b)
	if r.Err != nil {
		return ""
	}
	return string(b)
}

// ReadCompactU16 reads a value in the shortvec encoding used by transaction
// messages for array lengths.
func (r *BinReader) ReadCompactU16() uint16 {
	var (
		val   uint32
		shift uint
	)
	for {
		b := r.ReadB()
		if r.Err != nil {
			return 0
		}
		val |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			break
		}
		shift += 7
		if shift > 14 {
			r.Err = errCompactU16Overflow
			return 0
		}
	}
	if val > 0xffff {
		r.Err = errCompactU16Overflow
		return 0
	}
	return uint16(val)
}
