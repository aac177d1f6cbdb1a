package rarblock

import "hash/crc32"

// Checksum is the running header digest. RAR3 computes a full CRC-32 (IEEE)
// over every header byte after the HEAD_CRC field and stores only the low 16
// bits in the block.
//
// Checksum is a value: copying it forks the digest, so a decoder that hands
// it to the next stage must stop using its own copy.
type Checksum struct {
	crc uint32
}

// NewChecksum returns a digest with the standard CRC-32 initial value.
func NewChecksum() Checksum { return Checksum{} }

// ResumeChecksum continues from a digest previously returned by Sum32.
func ResumeChecksum(seed uint32) Checksum { return Checksum{crc: seed} }

// Write feeds p into the digest.
func (c *Checksum) Write(p []byte) (int, error) {
	c.crc = crc32.Update(c.crc, crc32.IEEETable, p)
	return len(p), nil
}

// Sum32 returns the full CRC-32 of everything written so far.
func (c Checksum) Sum32() uint32 { return c.crc }

// Sum16 returns the low half of Sum32, the form stored in HEAD_CRC.
func (c Checksum) Sum16() uint16 { return uint16(c.crc & 0xffff) }
