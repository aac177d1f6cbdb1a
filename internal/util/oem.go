package util

import "golang.org/x/text/encoding/charmap"

// DecodeOEM converts a name stored in the DOS OEM code page (437) to UTF-8.
// Archives written on DOS and older Windows hosts store names this way.
func DecodeOEM(b []byte) string {
	out, err := charmap.CodePage437.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}
