package rarblock

import "bytes"

// Version identifies the archive format from its signature.
type Version string

const (
	VersionUnknown Version = "UNKNOWN"
	VersionRar3    Version = "RAR3"
	VersionRar5    Version = "RAR5"
)

// sfxSearchLimit bounds how far into a self-extracting stub the signature is
// searched for.
const sfxSearchLimit = 1 << 20

var (
	sigRar3 = []byte("Rar!\x1a\x07\x00")     // RAR 1.5 to 4.x, also a marker block
	sigRar5 = []byte("Rar!\x1a\x07\x01\x00") // RAR 5.0
)

// DetectVersion finds the first RAR signature in b and returns the format and
// its offset. The offset is -1 when no signature is present in the first
// sfxSearchLimit bytes.
func DetectVersion(b []byte) (Version, int) {
	if len(b) > sfxSearchLimit+len(sigRar5) {
		b = b[:sfxSearchLimit+len(sigRar5)]
	}
	for off := 0; ; {
		i := bytes.Index(b[off:], sigRar3[:6])
		at := off + i
		if i < 0 || at >= sfxSearchLimit {
			return VersionUnknown, -1
		}
		switch {
		case bytes.HasPrefix(b[at:], sigRar3):
			return VersionRar3, at
		case bytes.HasPrefix(b[at:], sigRar5):
			return VersionRar5, at
		}
		off = at + 1
	}
}

// ReadSignature reads the signature at the current position of src without
// decoding it as a block. A RAR5 signature is consumed in full (8 bytes) and
// reported with KindUnsupportedVersion.
func ReadSignature(src ByteSource) (Version, error) {
	raw, err := src.ReadExact(len(sigRar3))
	if err != nil {
		return VersionUnknown, err
	}
	if bytes.Equal(raw, sigRar3) {
		return VersionRar3, nil
	}
	if bytes.Equal(raw, sigRar5[:len(sigRar3)]) {
		last, err := inBlock{src}.ReadExact(1)
		if err != nil {
			return VersionUnknown, err
		}
		if last[0] == 0 {
			return VersionRar5, &DecodeError{Kind: KindUnsupportedVersion, Detail: "RAR5 signature"}
		}
	}
	return VersionUnknown, &DecodeError{Kind: KindUnsupportedVersion, Detail: "no RAR signature"}
}
