// Package parse reads little-endian header fields from a byte source while
// feeding every byte into a running hash.
package parse

import (
	"encoding/binary"
	"io"
)

// Source pulls exactly n bytes or fails.
type Source interface {
	ReadExact(n int) ([]byte, error)
}

// Reader is the checksum-feeding view of a Source used by the block
// decoders. It counts the bytes it consumed so callers can compare against
// the declared header size.
type Reader struct {
	src Source
	h   io.Writer
	n   int
}

// NewReader returns a Reader that writes every byte it reads into h.
func NewReader(src Source, h io.Writer) *Reader {
	return &Reader{src: src, h: h}
}

// Consumed is the number of bytes read through r.
func (r *Reader) Consumed() int { return r.n }

func (r *Reader) Bytes(n int) ([]byte, error) {
	b, err := r.src.ReadExact(n)
	if err != nil {
		return nil, err
	}
	_, _ = r.h.Write(b)
	r.n += n
	return b, nil
}

func (r *Reader) Uint8() (byte, error) {
	b, err := r.Bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) Uint16() (uint16, error) {
	b, err := r.Bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) Uint32() (uint32, error) {
	b, err := r.Bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}
