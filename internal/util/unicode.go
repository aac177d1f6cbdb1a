package util

import "unicode/utf16"

// DecodeRar3Unicode rebuilds a RAR3 unicode file name from the ASCII name
// and the encoded form stored after the zero separator.
//
// The encoded form starts with a high byte, then groups of four 2-bit ops:
//
//	0  one byte, high byte zero
//	1  one byte, combined with the stored high byte
//	2  two bytes, little endian
//	3  run copied from the ASCII name; bit 7 of the length adds a correction
func DecodeRar3Unicode(ascii, enc []byte) string {
	if len(enc) == 0 {
		return string(ascii)
	}
	out := make([]uint16, 0, len(ascii))
	high := uint16(enc[0]) << 8
	pos := 1
	var flags byte
	bits := 0
	for pos < len(enc) {
		if bits == 0 {
			flags = enc[pos]
			pos++
			bits = 8
		}
		switch flags >> 6 {
		case 0:
			if pos >= len(enc) {
				return finish(ascii, out)
			}
			out = append(out, uint16(enc[pos]))
			pos++
		case 1:
			if pos >= len(enc) {
				return finish(ascii, out)
			}
			out = append(out, uint16(enc[pos])|high)
			pos++
		case 2:
			if pos+1 >= len(enc) {
				return finish(ascii, out)
			}
			out = append(out, uint16(enc[pos])|uint16(enc[pos+1])<<8)
			pos += 2
		case 3:
			if pos >= len(enc) {
				return finish(ascii, out)
			}
			n := int(enc[pos])
			pos++
			if n&0x80 != 0 {
				if pos >= len(enc) {
					return finish(ascii, out)
				}
				correction := enc[pos]
				pos++
				for n = n&0x7f + 2; n > 0 && len(out) < len(ascii); n-- {
					out = append(out, uint16(ascii[len(out)]+correction)|high)
				}
			} else {
				for n += 2; n > 0 && len(out) < len(ascii); n-- {
					out = append(out, uint16(ascii[len(out)]))
				}
			}
		}
		flags <<= 2
		bits -= 2
	}
	return finish(ascii, out)
}

// finish falls back to the ASCII name when the encoded part yields nothing.
func finish(ascii []byte, out []uint16) string {
	if len(out) == 0 {
		return string(ascii)
	}
	return string(utf16.Decode(out))
}
