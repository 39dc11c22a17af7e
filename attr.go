package fat16

import "strings"

// Attr is the attribute byte of a directory entry.
type Attr uint8

const (
	AttrReadOnly  Attr = 0x01
	AttrHidden    Attr = 0x02
	AttrSystem    Attr = 0x04
	AttrVolumeID  Attr = 0x08
	AttrDirectory Attr = 0x10
	AttrArchive   Attr = 0x20
	// AttrLongName marks a long filename fragment. Only the low nibble is checked.
	AttrLongName = AttrReadOnly | AttrHidden | AttrSystem | AttrVolumeID
)

// Has reports if all bits of flag are set.
func (a Attr) Has(flag Attr) bool {
	return a&flag == flag
}

// IsLongName reports if an entry with these attributes is a long filename fragment.
func (a Attr) IsLongName() bool {
	return a&0x0F == AttrLongName
}

// String renders the flags in the order RHSVDA, using '-' for unset ones.
func (a Attr) String() string {
	var sb strings.Builder
	for _, f := range []struct {
		flag Attr
		c    byte
	}{
		{AttrReadOnly, 'R'},
		{AttrHidden, 'H'},
		{AttrSystem, 'S'},
		{AttrVolumeID, 'V'},
		{AttrDirectory, 'D'},
		{AttrArchive, 'A'},
	} {
		if a.Has(f.flag) {
			sb.WriteByte(f.c)
		} else {
			sb.WriteByte('-')
		}
	}
	return sb.String()
}
