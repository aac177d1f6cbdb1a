package rarblock

type decoderState int

const (
	awaitingPreamble decoderState = iota
	decodingBody
	done
)

// Decoder decodes exactly one block from a ByteSource. It reads the
// preamble once and picks the body decoder from the type byte, so no byte is
// read twice. A Decoder is single use: after Decode returns, with or without
// an error, it is done.
type Decoder struct {
	src   ByteSource
	cs    Checksum
	state decoderState
}

// NewDecoder returns a Decoder with a fresh checksum.
func NewDecoder(src ByteSource) *Decoder {
	return &Decoder{src: src, cs: NewChecksum()}
}

// NewDecoderWithChecksum returns a Decoder whose checksum continues from cs.
func NewDecoderWithChecksum(src ByteSource, cs Checksum) *Decoder {
	return &Decoder{src: src, cs: cs}
}

// Decode runs the decoder to completion.
func (d *Decoder) Decode() (Block, error) {
	if d.state != awaitingPreamble {
		return nil, ErrDecoderDone
	}
	defer func() { d.state = done }()

	p, cs, err := readPreamble(d.src, nil, d.cs)
	if err != nil {
		return nil, err
	}
	d.state = decodingBody
	switch p.Type {
	case BlockMarker:
		return asBlock(decodeMarkerBody(p, cs))
	case BlockArchive:
		return asBlock(decodeArchiveBody(d.src, p, cs))
	case BlockFile:
		return asBlock(decodeFileBody(d.src, p, cs))
	}
	return nil, &DecodeError{Kind: KindUnsupportedBlock, Tag: byte(p.Type), Preamble: &p}
}

// asBlock keeps a nil concrete pointer from becoming a non-nil Block.
func asBlock[T Block](b T, err error) (Block, error) {
	if err != nil {
		return nil, err
	}
	return b, nil
}

// DecodeNextBlock decodes the block at the current position of src.
func DecodeNextBlock(src ByteSource) (Block, error) {
	return NewDecoder(src).Decode()
}

// DecodeNextBlockWithChecksum is DecodeNextBlock with the header digest
// resumed from cs, for containers that chain a running checksum across
// blocks.
func DecodeNextBlockWithChecksum(src ByteSource, cs Checksum) (Block, error) {
	return NewDecoderWithChecksum(src, cs).Decode()
}
