package rarblock

import "github.com/javi11/rarblock/internal/parse"

// archiveBodySize is RESERVED1 (2) + RESERVED2 (4).
const archiveBodySize = 6

// ArchiveHeader is the main archive header (HEAD_TYPE 0x73).
type ArchiveHeader struct {
	header
	// Reserved1 and Reserved2 are HighPosAV and PosAV in later writers.
	Reserved1 uint16
	Reserved2 uint32
}

// Flags returns the archive-specific view of HEAD_FLAGS.
func (a *ArchiveHeader) Flags() ArchiveFlags { return ArchiveFlags(a.Header.Flags) }

// DecodeArchiveHeader decodes an archive header from src.
func DecodeArchiveHeader(src ByteSource) (*ArchiveHeader, error) {
	p, cs, err := ReadPreamble(src, BlockArchive)
	if err != nil {
		return nil, err
	}
	return decodeArchiveBody(src, p, cs)
}

func decodeArchiveBody(src ByteSource, p Preamble, cs Checksum) (*ArchiveHeader, error) {
	// Anything but exactly the two reserved fields is a layout this decoder
	// does not understand (an EncryptVer byte, for instance).
	if p.Remaining() != archiveBodySize {
		return nil, sizeError(KindSizeMismatch, &p, "head_size",
			"archive header body is %d bytes, want %d", p.Remaining(), archiveBodySize)
	}
	r := parse.NewReader(inBlock{src}, &cs)
	res1, err := r.Uint16()
	if err != nil {
		return nil, withPreamble(err, &p)
	}
	res2, err := r.Uint32()
	if err != nil {
		return nil, withPreamble(err, &p)
	}
	return &ArchiveHeader{
		header:    header{Header: p, Computed: cs.Sum16()},
		Reserved1: res1,
		Reserved2: res2,
	}, nil
}
