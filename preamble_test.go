package rarblock

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPreambleCanonical(t *testing.T) {
	src := NewBufferSource(mainHeaderBytes)
	p, cs, err := ReadPreamble(src, BlockArchive)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x90cf), p.HeaderCRC)
	assert.Equal(t, BlockArchive, p.Type)
	assert.Equal(t, uint16(13), p.HeadSize)
	assert.Equal(t, uint64(13), p.TotalSize)
	assert.Equal(t, 7, p.Consumed)
	assert.Equal(t, uint64(6), p.Remaining())
	assert.Equal(t, int64(7), src.Offset())

	want := NewChecksum()
	_, _ = want.Write(mainHeaderBytes[2:7])
	assert.Equal(t, want.Sum32(), cs.Sum32())
}

func TestReadPreambleAddSize(t *testing.T) {
	b := rawBlock(BlockSubBlock, flagAddSize, u32(1000), nil, nil)
	p, _, err := ReadPreamble(NewBufferSource(b), BlockSubBlock)
	require.NoError(t, err)
	assert.True(t, p.Flags.HasAddSize())
	assert.Equal(t, uint32(1000), p.AddSize)
	assert.Equal(t, 11, p.Consumed)
	assert.Equal(t, uint64(1011), p.TotalSize)
	assert.Equal(t, uint64(1000), p.Remaining())
	assert.Equal(t, 0, p.HeaderRemaining())
}

func TestReadPreambleShortInput(t *testing.T) {
	cases := []struct {
		name     string
		in       []byte
		want     BlockType
		required int
	}{
		{"empty", nil, BlockArchive, 7},
		{"three bytes", mainHeaderBytes[:3], BlockArchive, 7},
		{"six bytes", mainHeaderBytes[:6], BlockArchive, 7},
		{"add size cut", rawBlock(BlockSubBlock, flagAddSize, u32(5), nil, nil)[:9], BlockSubBlock, 11},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ReadPreamble(NewBufferSource(tc.in), tc.want)
			require.ErrorIs(t, err, ErrShortInput)
			var de *DecodeError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tc.required, de.Required)
		})
	}
}

func TestReadPreambleRetryAfterShortInput(t *testing.T) {
	src := NewBufferSource(mainHeaderBytes[:4])
	_, _, err := ReadPreamble(src, BlockArchive)
	require.ErrorIs(t, err, ErrShortInput)
	assert.Equal(t, int64(0), src.Offset())

	p, _, err := ReadPreamble(NewBufferSource(mainHeaderBytes), BlockArchive)
	require.NoError(t, err)
	assert.Equal(t, BlockArchive, p.Type)
}

func TestReadPreambleTagMismatch(t *testing.T) {
	_, _, err := ReadPreamble(NewBufferSource(mainHeaderBytes), BlockFile)
	require.ErrorIs(t, err, ErrTagMismatch)
	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, byte(BlockArchive), de.Tag)
	assert.Equal(t, byte(BlockFile), de.Want)
	assert.Contains(t, de.Error(), "want FileHeader, got ArchiveHeader")
}

func TestReadPreambleSizeUnderflow(t *testing.T) {
	b := []byte{0, 0, byte(BlockArchive), 0, 0, 0, 0}
	_, _, err := ReadPreamble(NewBufferSource(b), BlockArchive)
	require.ErrorIs(t, err, ErrSizeUnderflow)

	var de *DecodeError
	require.True(t, errors.As(err, &de))
	require.NotNil(t, de.Preamble)
	assert.Equal(t, "head_size", de.Field)

	// A long preamble with HEAD_SIZE 7 and no ADD_SIZE still fits.
	b = []byte{0, 0, byte(BlockSubBlock), 0x00, 0x80, 7, 0, 4, 0, 0, 0}
	p, _, err := ReadPreamble(NewBufferSource(b), BlockSubBlock)
	require.NoError(t, err)
	assert.Equal(t, uint64(11), p.TotalSize)
}

func TestReadPreambleSizeOverflow(t *testing.T) {
	b := []byte{0, 0, byte(BlockFile), 0x00, 0x80, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	_, _, err := ReadPreamble(NewBufferSource(b), BlockFile)
	require.ErrorIs(t, err, ErrSizeOverflow)

	// The largest sum that still fits.
	b = []byte{0, 0, byte(BlockFile), 0x00, 0x80, 0xff, 0xff, 0x00, 0x00, 0xff, 0xff}
	p, _, err := ReadPreamble(NewBufferSource(b), BlockFile)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xffffffff), p.TotalSize)
}

func TestDecodeUnknownTag(t *testing.T) {
	// Unknown tags are rejected before their size fields are looked at.
	for _, tag := range []byte{0x00, 0x71, 0x7c, 0xff} {
		b := []byte{0, 0, tag, 0, 0, 0, 0}
		_, err := DecodeNextBlock(NewBufferSource(b))
		require.ErrorIs(t, err, ErrUnknownBlockType)
		var de *DecodeError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, tag, de.Tag)
	}
}

func TestResumePreambleChainsDigest(t *testing.T) {
	seed := NewChecksum()
	_, _ = seed.Write([]byte("previous"))
	_, fresh, err := ReadPreamble(NewBufferSource(mainHeaderBytes), BlockArchive)
	require.NoError(t, err)
	_, resumed, err := ResumePreamble(NewBufferSource(mainHeaderBytes), BlockArchive, seed)
	require.NoError(t, err)
	assert.NotEqual(t, fresh.Sum32(), resumed.Sum32())
}
