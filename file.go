package rarblock

import (
	"bytes"
	"time"
	"unicode/utf8"

	"github.com/javi11/rarblock/internal/parse"
	"github.com/javi11/rarblock/internal/util"
)

// File header layout after the preamble:
//
//	PACK_SIZE        4  low 32 bits; this is the ADD_SIZE field when HEAD_FLAGS & 0x8000
//	UNP_SIZE         4
//	HOST_OS          1
//	FILE_CRC         4
//	FTIME            4  MS-DOS date and time
//	UNP_VER          1
//	METHOD           1
//	NAME_SIZE        2
//	ATTR             4
//	HIGH_PACK_SIZE   4  if FileFlags.HasHighSizes
//	HIGH_UNP_SIZE    4  if FileFlags.HasHighSizes
//	FILE_NAME        NAME_SIZE
//	SALT             8  if FileFlags.Salted
//	EXT_TIME         variable, if FileFlags.HasExtTime
const (
	fileFixedSize = 21 // UNP_SIZE through ATTR
	saltSize      = 8
)

// FileHeader is a file entry (HEAD_TYPE 0x74). The packed data follows the
// header and is not read by the decoder.
type FileHeader struct {
	header
	PackedSize    uint64
	UnpackedSize  uint64
	HostOS        HostOS
	FileCRC       uint32
	RawModTime    uint32
	UnpackVersion uint8
	Method        PackMethod
	Attributes    uint32
	// Name holds the FILE_NAME bytes, or the part before the zero separator
	// when the entry carries an encoded unicode name.
	Name []byte
	// UnicodeName is the encoded unicode part; nil when absent.
	UnicodeName []byte
	Salt        []byte
	// Extra holds header bytes past the known fields (HEAD_SIZE leftovers).
	Extra []byte
}

// Flags returns the file-specific view of HEAD_FLAGS.
func (f *FileHeader) Flags() FileFlags { return FileFlags(f.Header.Flags) }

// DataSize is the full 64-bit packed size.
func (f *FileHeader) DataSize() uint64 { return f.PackedSize }

// DecodedName returns the entry name as text.
func (f *FileHeader) DecodedName() string {
	if f.UnicodeName != nil {
		return util.DecodeRar3Unicode(f.Name, f.UnicodeName)
	}
	// A unicode flag without the zero separator means a plain UTF-8 name.
	if f.Flags().HasUnicodeName() || utf8.Valid(f.Name) {
		return string(f.Name)
	}
	switch f.HostOS {
	case HostMSDOS, HostOS2, HostWindows:
		return util.DecodeOEM(f.Name)
	}
	return string(f.Name)
}

// ModTime decodes the MS-DOS timestamp. DOS times carry no zone; the value
// is returned in UTC.
func (f *FileHeader) ModTime() time.Time {
	t := f.RawModTime
	return time.Date(
		int(t>>25)+1980,
		time.Month((t>>21)&0x0f),
		int((t>>16)&0x1f),
		int((t>>11)&0x1f),
		int((t>>5)&0x3f),
		int(t&0x1f)*2,
		0, time.UTC)
}

// DecodeFileHeader decodes a file header from src.
func DecodeFileHeader(src ByteSource) (*FileHeader, error) {
	p, cs, err := ReadPreamble(src, BlockFile)
	if err != nil {
		return nil, err
	}
	return decodeFileBody(src, p, cs)
}

func decodeFileBody(src ByteSource, p Preamble, cs Checksum) (*FileHeader, error) {
	flags := FileFlags(p.Flags)
	if int(p.HeadSize) < p.Consumed {
		return nil, sizeError(KindSizeMismatch, &p, "head_size",
			"file header size %d smaller than %d byte preamble", p.HeadSize, p.Consumed)
	}
	limit := p.HeaderRemaining()
	r := parse.NewReader(inBlock{src}, &cs)
	need := func(n int, field string) error {
		if r.Consumed()+n > limit {
			return sizeError(KindSizeMismatch, &p, field, "field overruns %d byte header", p.HeadSize)
		}
		return nil
	}
	fail := func(err error) (*FileHeader, error) { return nil, withPreamble(err, &p) }

	fh := &FileHeader{}
	var packLow uint32
	if p.Flags.HasAddSize() {
		packLow = p.AddSize
	} else {
		if err := need(4, "pack_size"); err != nil {
			return nil, err
		}
		v, err := r.Uint32()
		if err != nil {
			return fail(err)
		}
		packLow = v
	}

	if err := need(fileFixedSize, "unp_size"); err != nil {
		return nil, err
	}
	unpLow, err := r.Uint32()
	if err != nil {
		return fail(err)
	}
	host, err := r.Uint8()
	if err != nil {
		return fail(err)
	}
	fh.HostOS = HostOS(host)
	if fh.FileCRC, err = r.Uint32(); err != nil {
		return fail(err)
	}
	if fh.RawModTime, err = r.Uint32(); err != nil {
		return fail(err)
	}
	if fh.UnpackVersion, err = r.Uint8(); err != nil {
		return fail(err)
	}
	method, err := r.Uint8()
	if err != nil {
		return fail(err)
	}
	fh.Method = PackMethod(method)
	nameSize, err := r.Uint16()
	if err != nil {
		return fail(err)
	}
	if fh.Attributes, err = r.Uint32(); err != nil {
		return fail(err)
	}

	var packHigh, unpHigh uint32
	if flags.HasHighSizes() {
		if err := need(8, "high_pack_size"); err != nil {
			return nil, err
		}
		if packHigh, err = r.Uint32(); err != nil {
			return fail(err)
		}
		if unpHigh, err = r.Uint32(); err != nil {
			return fail(err)
		}
	}
	fh.PackedSize = uint64(packHigh)<<32 | uint64(packLow)
	fh.UnpackedSize = uint64(unpHigh)<<32 | uint64(unpLow)

	if err := need(int(nameSize), "file_name"); err != nil {
		return nil, err
	}
	name, err := r.Bytes(int(nameSize))
	if err != nil {
		return fail(err)
	}
	fh.Name = name
	if flags.HasUnicodeName() {
		if zero := bytes.IndexByte(name, 0); zero >= 0 {
			fh.Name = name[:zero]
			fh.UnicodeName = name[zero+1:]
		}
	}

	if flags.Salted() {
		if err := need(saltSize, "salt"); err != nil {
			return nil, err
		}
		if fh.Salt, err = r.Bytes(saltSize); err != nil {
			return fail(err)
		}
	}
	if flags.HasExtTime() {
		return nil, &DecodeError{Kind: KindUnsupportedField, Tag: byte(p.Type), Field: "ext_time",
			Detail: "extended time records are not decoded", Preamble: &p}
	}
	if left := limit - r.Consumed(); left > 0 {
		if fh.Extra, err = r.Bytes(left); err != nil {
			return fail(err)
		}
	}
	fh.header = header{Header: p, Computed: cs.Sum16()}
	return fh, nil
}
