package fat16

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// ShortName formats an 11 byte 8.3 name as NAME.EXT.
// Padding is removed and the dot is omitted if there is no extension.
func ShortName(raw [11]byte) string {
	if raw[0] == entryKanjiMarker {
		raw[0] = entryDeletedMarker
	}

	name := decodeOEM(strings.TrimRight(string(raw[:8]), " "))
	ext := decodeOEM(strings.TrimRight(string(raw[8:11]), " "))
	if ext != "" {
		return name + "." + ext
	}
	return name
}

// decodeOEM converts code page 437 bytes to UTF-8.
// Pure ASCII is returned as is.
func decodeOEM(s string) string {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return s
	}

	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		sb.WriteRune(charmap.CodePage437.DecodeByte(s[i]))
	}
	return sb.String()
}

// ShortNameChecksum computes the checksum stored in every long filename
// fragment which belongs to the short name raw.
func ShortNameChecksum(raw [11]byte) byte {
	var sum byte
	for _, c := range raw {
		sum = (sum>>1 | sum<<7) + c
	}
	return sum
}
