package rarblock

import (
	"encoding/binary"
	"hash/crc32"
)

var (
	markerBytes     = []byte{0x52, 0x61, 0x72, 0x21, 0x1a, 0x07, 0x00}
	mainHeaderBytes = []byte{0xcf, 0x90, 0x73, 0x00, 0x00, 0x0d, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	endArcBytes     = []byte{0xc4, 0x3d, 0x7b, 0x00, 0x40, 0x07, 0x00}
)

// seal stores the header checksum of the first headSize bytes of b.
func seal(b []byte, headSize int) []byte {
	binary.LittleEndian.PutUint16(b[0:2], uint16(crc32.ChecksumIEEE(b[2:headSize])))
	return b
}

// rawBlock builds a sealed block: preamble, optional ADD_SIZE, body.
// HEAD_SIZE covers everything but data.
func rawBlock(typ BlockType, flags HeaderFlags, add *uint32, body, data []byte) []byte {
	b := []byte{0, 0, byte(typ)}
	b = binary.LittleEndian.AppendUint16(b, uint16(flags))
	size := 7 + len(body)
	if add != nil {
		size += 4
	}
	b = binary.LittleEndian.AppendUint16(b, uint16(size))
	if add != nil {
		b = binary.LittleEndian.AppendUint32(b, *add)
	}
	b = append(b, body...)
	seal(b, size)
	return append(b, data...)
}

// fileSpec describes a file header for fileBlock. When flags carry 0x8000
// the low packed size doubles as ADD_SIZE, as RAR writers emit it.
type fileSpec struct {
	flags  uint16
	pack   uint64
	unp    uint64
	host   HostOS
	crc    uint32
	ftime  uint32
	ver    uint8
	method PackMethod
	attr   uint32
	name   []byte
	salt   []byte
	extra  []byte
	data   []byte
}

func (s fileSpec) headSize() int {
	n := 7 + 4 + fileFixedSize + len(s.name) + len(s.salt) + len(s.extra)
	if FileFlags(s.flags).HasHighSizes() {
		n += 8
	}
	return n
}

func fileBlock(s fileSpec) []byte {
	if s.method == 0 {
		s.method = MethodStore
	}
	size := s.headSize()
	b := []byte{0, 0, byte(BlockFile)}
	b = binary.LittleEndian.AppendUint16(b, s.flags)
	b = binary.LittleEndian.AppendUint16(b, uint16(size))
	b = binary.LittleEndian.AppendUint32(b, uint32(s.pack))
	b = binary.LittleEndian.AppendUint32(b, uint32(s.unp))
	b = append(b, byte(s.host))
	b = binary.LittleEndian.AppendUint32(b, s.crc)
	b = binary.LittleEndian.AppendUint32(b, s.ftime)
	b = append(b, s.ver, byte(s.method))
	b = binary.LittleEndian.AppendUint16(b, uint16(len(s.name)))
	b = binary.LittleEndian.AppendUint32(b, s.attr)
	if FileFlags(s.flags).HasHighSizes() {
		b = binary.LittleEndian.AppendUint32(b, uint32(s.pack>>32))
		b = binary.LittleEndian.AppendUint32(b, uint32(s.unp>>32))
	}
	b = append(b, s.name...)
	b = append(b, s.salt...)
	b = append(b, s.extra...)
	seal(b, size)
	return append(b, s.data...)
}

// archive concatenates blocks into one stream.
func archive(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func u32(v uint32) *uint32 { return &v }
