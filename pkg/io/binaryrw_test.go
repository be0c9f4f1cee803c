package io

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteReadU64LE(t *testing.T) {
	var val uint64 = 0xbadc0de15a11f00d
	bw := NewBufBinWriter()
	bw.WriteU64LE(val)
	require.NoError(t, bw.Err)
	require.Equal(t, []byte{0x0d, 0xf0, 0x11, 0x5a, 0xe1, 0x0d, 0xdc, 0xba}, bw.Bytes())

	br := NewBinReaderFromBuf(bw.Bytes())
	require.Equal(t, val, br.ReadU64LE())
	require.NoError(t, br.Err)
}

func TestWriteReadU32LE(t *testing.T) {
	var val uint32 = 0xdeadbeef
	bw := NewBufBinWriter()
	bw.WriteU32LE(val)
	require.NoError(t, bw.Err)

	br := NewBinReaderFromBuf(bw.Bytes())
	require.Equal(t, val, br.ReadU32LE())
	require.NoError(t, br.Err)
}

func TestWriteReadString(t *testing.T) {
	for _, s := range []string{"", "job-1", "контракт"} {
		bw := NewBufBinWriter()
		bw.WriteString(s)
		require.NoError(t, bw.Err)
		require.Len(t, bw.Bytes(), 4+len(s))

		br := NewBinReaderFromBuf(bw.Bytes())
		require.Equal(t, s, br.ReadString())
		require.NoError(t, br.Err)
	}
}

func TestEmptyStringHasZeroPrefix(t *testing.T) {
	bw := NewBufBinWriter()
	bw.WriteString("")
	require.NoError(t, bw.Err)
	require.Equal(t, []byte{0, 0, 0, 0}, bw.Bytes())
}

func TestReadStringTooBig(t *testing.T) {
	br := NewBinReaderFromBuf([]byte{0xff, 0xff, 0xff, 0xff})
	_ = br.ReadString()
	require.Error(t, br.Err)
}

func TestCompactU16Vectors(t *testing.T) {
	vectors := map[uint16][]byte{
		0:      {0x00},
		1:      {0x01},
		127:    {0x7f},
		128:    {0x80, 0x01},
		16383:  {0xff, 0x7f},
		16384:  {0x80, 0x80, 0x01},
		0xffff: {0xff, 0xff, 0x03},
	}
	for val, expected := range vectors {
		bw := NewBufBinWriter()
		bw.WriteCompactU16(val)
		require.NoError(t, bw.Err)
		require.Equal(t, expected, bw.Bytes(), "value %d", val)

		br := NewBinReaderFromBuf(expected)
		require.Equal(t, val, br.ReadCompactU16())
		require.NoError(t, br.Err)
	}
}

func TestCompactU16Overflow(t *testing.T) {
	br := NewBinReaderFromBuf([]byte{0x80, 0x80, 0x80, 0x01})
	_ = br.ReadCompactU16()
	require.ErrorIs(t, br.Err, errCompactU16Overflow)

	br = NewBinReaderFromBuf([]byte{0xff, 0xff, 0x07})
	_ = br.ReadCompactU16()
	require.ErrorIs(t, br.Err, errCompactU16Overflow)
}

func TestStickyWriterError(t *testing.T) {
	bw := NewBufBinWriter()
	bw.Err = errors.New("sticky")
	bw.WriteU64LE(42)
	bw.WriteString("ignored")
	require.Nil(t, bw.Bytes())
}

func TestStickyReaderError(t *testing.T) {
	br := NewBinReaderFromBuf(bytes.Repeat([]byte{1}, 16))
	br.Err = errors.New("sticky")
	require.EqualValues(t, 0, br.ReadU64LE())
	require.EqualValues(t, 0, br.ReadB())
}
