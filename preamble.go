package rarblock

import (
	"encoding/binary"
	"math"
)

// RAR3 block preamble layout:
//
//	HEAD_CRC   2  CRC of everything after this field up to the end of the header
//	HEAD_TYPE  1  block type
//	HEAD_FLAGS 2  0x8000 = ADD_SIZE present, 0x4000 = deleted, rest per type
//	HEAD_SIZE  2  header size including the preamble
//	ADD_SIZE   4  only if HEAD_FLAGS & 0x8000
const (
	preambleSize     = 7
	preambleSizeLong = preambleSize + 4
)

// Preamble holds the fields common to every block.
type Preamble struct {
	HeaderCRC uint16
	Type      BlockType
	Flags     HeaderFlags
	HeadSize  uint16
	AddSize   uint32
	// TotalSize is HeadSize + AddSize.
	TotalSize uint64
	// Consumed is the number of stream bytes the preamble occupied (7 or 11).
	Consumed int
}

// Remaining is the part of TotalSize not covered by the preamble.
func (p Preamble) Remaining() uint64 { return p.TotalSize - uint64(p.Consumed) }

// HeaderRemaining is the part of HEAD_SIZE not covered by the preamble; it
// is zero when the ADD_SIZE field reaches past HEAD_SIZE.
func (p Preamble) HeaderRemaining() int {
	if int(p.HeadSize) < p.Consumed {
		return 0
	}
	return int(p.HeadSize) - p.Consumed
}

// ReadPreamble decodes the preamble of a block that must be of type want,
// starting a fresh checksum. The returned Checksum has already been fed the
// preamble bytes and belongs to the caller's body decoder.
func ReadPreamble(src ByteSource, want BlockType) (Preamble, Checksum, error) {
	return ResumePreamble(src, want, NewChecksum())
}

// ResumePreamble is ReadPreamble continuing from an existing digest.
func ResumePreamble(src ByteSource, want BlockType, cs Checksum) (Preamble, Checksum, error) {
	return readPreamble(src, &want, cs)
}

// readPreamble reads the preamble; a nil want accepts any type byte.
func readPreamble(src ByteSource, want *BlockType, cs Checksum) (Preamble, Checksum, error) {
	raw, err := src.ReadExact(preambleSize)
	if err != nil {
		return Preamble{}, cs, err
	}
	p := Preamble{
		HeaderCRC: binary.LittleEndian.Uint16(raw[0:2]),
		Type:      BlockType(raw[2]),
		Flags:     HeaderFlags(binary.LittleEndian.Uint16(raw[3:5])),
		HeadSize:  binary.LittleEndian.Uint16(raw[5:7]),
		Consumed:  preambleSize,
	}
	switch {
	case want != nil && p.Type != *want:
		return Preamble{}, cs, &DecodeError{Kind: KindTagMismatch, Tag: raw[2], Want: byte(*want)}
	case want == nil && !p.Type.Known():
		// The size fields of an unknown block cannot be trusted to find the
		// next one, so stop before interpreting them.
		return Preamble{}, cs, &DecodeError{Kind: KindUnknownBlockType, Tag: raw[2]}
	}
	_, _ = cs.Write(raw[2:])
	if p.Flags.HasAddSize() {
		add, err := inBlock{src}.ReadExact(4)
		if err != nil {
			return Preamble{}, cs, err
		}
		_, _ = cs.Write(add)
		p.AddSize = binary.LittleEndian.Uint32(add)
		p.Consumed = preambleSizeLong
	}
	total, ok := addSize(p.HeadSize, p.AddSize)
	if !ok {
		return Preamble{}, cs, sizeError(KindSizeOverflow, &p, "add_size",
			"head size %d + add size %d exceeds %d", p.HeadSize, p.AddSize, uint64(math.MaxUint32))
	}
	p.TotalSize = total
	if p.TotalSize < uint64(p.Consumed) {
		return Preamble{}, cs, sizeError(KindSizeUnderflow, &p, "head_size",
			"declared size %d smaller than %d byte preamble", p.TotalSize, p.Consumed)
	}
	return p, cs, nil
}

// addSize sums the two size fields inside the 32-bit block size domain.
func addSize(head uint16, add uint32) (uint64, bool) {
	sum := uint64(head) + uint64(add)
	return sum, sum <= math.MaxUint32
}
