package rarblock

// MarkerBlock is the signature block. Its seven bytes are a fixed magic
// string, so HEAD_CRC never validates; callers compare signatures instead.
type MarkerBlock struct {
	header
}

// The RAR5 signature read as a RAR3 preamble: the 0x01 of "\x07\x01\x00"
// lands in HEAD_SIZE.
const (
	rar5MarkerFlags    HeaderFlags = 0x1a21
	rar5MarkerHeadSize uint16      = 0x0107
)

// DecodeMarker decodes a marker block from src.
func DecodeMarker(src ByteSource) (*MarkerBlock, error) {
	p, cs, err := ReadPreamble(src, BlockMarker)
	if err != nil {
		return nil, err
	}
	return decodeMarkerBody(p, cs)
}

func decodeMarkerBody(p Preamble, cs Checksum) (*MarkerBlock, error) {
	if p.Remaining() != 0 {
		if p.Flags == rar5MarkerFlags && p.HeadSize == rar5MarkerHeadSize {
			return nil, &DecodeError{Kind: KindUnsupportedVersion, Tag: byte(p.Type), Detail: "RAR5 signature", Preamble: &p}
		}
		return nil, sizeError(KindSizeMismatch, &p, "head_size", "marker declares %d trailing bytes", p.Remaining())
	}
	return &MarkerBlock{header{Header: p, Computed: cs.Sum16()}}, nil
}
