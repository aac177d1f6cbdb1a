package rarblock

import "fmt"

// BlockType is the HEAD_TYPE byte of a RAR3 block.
type BlockType byte

const (
	BlockMarker           BlockType = 0x72
	BlockArchive          BlockType = 0x73
	BlockFile             BlockType = 0x74
	BlockOldComment       BlockType = 0x75
	BlockOldAuthenticity  BlockType = 0x76
	BlockOldSubBlock      BlockType = 0x77
	BlockOldRecovery      BlockType = 0x78
	BlockOldAuthenticity2 BlockType = 0x79
	BlockSubBlock         BlockType = 0x7a
	BlockTerminator       BlockType = 0x7b
)

var blockTypeNames = map[BlockType]string{
	BlockMarker:           "Marker",
	BlockArchive:          "ArchiveHeader",
	BlockFile:             "FileHeader",
	BlockOldComment:       "OldCommentHeader",
	BlockOldAuthenticity:  "OldAuthenticityInfo",
	BlockOldSubBlock:      "OldSubBlock",
	BlockOldRecovery:      "OldRecoveryRecord",
	BlockOldAuthenticity2: "OldAuthenticityInfo2",
	BlockSubBlock:         "SubBlock",
	BlockTerminator:       "Terminator",
}

// Known reports whether t is one of the RAR3 block types.
func (t BlockType) Known() bool {
	_, ok := blockTypeNames[t]
	return ok
}

func (t BlockType) String() string {
	if s, ok := blockTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Unknown(0x%02x)", byte(t))
}

// HostOS is the operating system that created a file entry. Values outside
// the table are kept as-is.
type HostOS byte

const (
	HostMSDOS HostOS = iota
	HostOS2
	HostWindows
	HostUnix
	HostMacOS
	HostBeOS
)

func (h HostOS) Known() bool { return h <= HostBeOS }

func (h HostOS) String() string {
	switch h {
	case HostMSDOS:
		return "MSDOS"
	case HostOS2:
		return "OS2"
	case HostWindows:
		return "Windows"
	case HostUnix:
		return "Unix"
	case HostMacOS:
		return "MacOS"
	case HostBeOS:
		return "BeOS"
	}
	return fmt.Sprintf("Unknown(%d)", byte(h))
}

// PackMethod is the compression level byte of a file entry.
type PackMethod byte

const (
	MethodStore   PackMethod = 0x30
	MethodFastest PackMethod = 0x31
	MethodFast    PackMethod = 0x32
	MethodNormal  PackMethod = 0x33
	MethodGood    PackMethod = 0x34
	MethodBest    PackMethod = 0x35
)

func (m PackMethod) Known() bool { return m >= MethodStore && m <= MethodBest }

func (m PackMethod) String() string {
	switch m {
	case MethodStore:
		return "Store"
	case MethodFastest:
		return "Fastest"
	case MethodFast:
		return "Fast"
	case MethodNormal:
		return "Normal"
	case MethodGood:
		return "Good"
	case MethodBest:
		return "Best"
	}
	return fmt.Sprintf("Unknown(0x%02x)", byte(m))
}

// Block is one decoded block header: *MarkerBlock, *ArchiveHeader or
// *FileHeader.
type Block interface {
	Type() BlockType
	Preamble() Preamble
	// ExpectedCRC is HEAD_CRC as stored in the stream.
	ExpectedCRC() uint16
	// ComputedCRC is the digest of the header bytes actually read.
	ComputedCRC() uint16
	CRCValid() bool
	// DataSize is the length of the data area that follows the header.
	DataSize() uint64

	block()
}

// header carries the fields every block type shares.
type header struct {
	Header   Preamble
	Computed uint16
}

func (h *header) Type() BlockType     { return h.Header.Type }
func (h *header) Preamble() Preamble  { return h.Header }
func (h *header) ExpectedCRC() uint16 { return h.Header.HeaderCRC }
func (h *header) ComputedCRC() uint16 { return h.Computed }
func (h *header) CRCValid() bool      { return h.Header.HeaderCRC == h.Computed }
func (h *header) block()              {}

// DataSize is zero for marker and archive headers: their decoders count
// ADD_SIZE as part of the header itself.
func (h *header) DataSize() uint64 { return 0 }
