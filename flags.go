package rarblock

// HeaderFlags is HEAD_FLAGS. Only the two high bits mean the same thing for
// every block type; the rest are interpreted per type.
type HeaderFlags uint16

const (
	flagAddSize HeaderFlags = 0x8000
	flagDeleted HeaderFlags = 0x4000
)

// HasAddSize reports whether a 32-bit ADD_SIZE field follows HEAD_SIZE.
func (f HeaderFlags) HasAddSize() bool { return f&flagAddSize != 0 }
func (f HeaderFlags) IsDeleted() bool  { return f&flagDeleted != 0 }

// ArchiveFlags are the HEAD_FLAGS of an archive header.
type ArchiveFlags uint16

func (f ArchiveFlags) IsVolume() bool          { return f&0x0001 != 0 }
func (f ArchiveFlags) HasComment() bool        { return f&0x0002 != 0 }
func (f ArchiveFlags) IsLocked() bool          { return f&0x0004 != 0 }
func (f ArchiveFlags) IsSolid() bool           { return f&0x0008 != 0 }
func (f ArchiveFlags) NewVolumeNaming() bool   { return f&0x0010 != 0 }
func (f ArchiveFlags) HasAuthenticity() bool   { return f&0x0020 != 0 }
func (f ArchiveFlags) HasRecoveryRecord() bool { return f&0x0040 != 0 }
func (f ArchiveFlags) HeadersEncrypted() bool  { return f&0x0080 != 0 }

// FileFlags are the HEAD_FLAGS of a file header.
type FileFlags uint16

const (
	fileContinuedFrom FileFlags = 0x0001
	fileContinuedTo   FileFlags = 0x0002
	fileEncrypted     FileFlags = 0x0004
	fileComment       FileFlags = 0x0008
	fileSolid         FileFlags = 0x0010
	fileDictMask      FileFlags = 0x00e0
	fileHighSizes     FileFlags = 0x0100
	fileUnicodeName   FileFlags = 0x0200
	fileSalted        FileFlags = 0x0400
	fileVersioned     FileFlags = 0x0800
	fileExtTime       FileFlags = 0x1000
)

func (f FileFlags) ContinuedFromPrevious() bool { return f&fileContinuedFrom != 0 }
func (f FileFlags) ContinuedToNext() bool       { return f&fileContinuedTo != 0 }
func (f FileFlags) Encrypted() bool             { return f&fileEncrypted != 0 }
func (f FileFlags) CommentPresent() bool        { return f&fileComment != 0 }
func (f FileFlags) Solid() bool                 { return f&fileSolid != 0 }
func (f FileFlags) HasHighSizes() bool          { return f&fileHighSizes != 0 }
func (f FileFlags) HasUnicodeName() bool        { return f&fileUnicodeName != 0 }
func (f FileFlags) Salted() bool                { return f&fileSalted != 0 }
func (f FileFlags) Versioned() bool             { return f&fileVersioned != 0 }
func (f FileFlags) HasExtTime() bool            { return f&fileExtTime != 0 }

// DictionaryBits returns the 3-bit dictionary field (0-7).
func (f FileFlags) DictionaryBits() uint8 { return uint8((f & fileDictMask) >> 5) }

// IsDirectory reports the "all dictionary bits set" encoding used for
// directory entries.
func (f FileFlags) IsDirectory() bool { return f.DictionaryBits() == 7 }

// DictionarySize returns the sliding window size in KiB, or 0 for
// directory entries.
func (f FileFlags) DictionarySize() uint32 {
	if f.IsDirectory() {
		return 0
	}
	return 64 << f.DictionaryBits()
}
