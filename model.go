// File model contains the on-disk records of the FAT16 directory structures
// and their field by field decoding.

package fat16

import (
	"encoding/binary"
)

const (
	directoryEntrySize  = 32
	firstDataCluster    = 2
	maxLongNameOrdinals = 20
	longNameUnits       = 13
)

// Markers in the first byte of a directory entry name.
const (
	entryEndMarker     = 0x00
	entryDeletedMarker = 0xE5
	// entryKanjiMarker stands for a real 0xE5 as first character.
	entryKanjiMarker = 0x05
)

// Byte offsets of the directory entry fields.
const (
	dirName            = 0
	dirAttribute       = 11
	dirNTReserved      = 12
	dirCreateTimeTenth = 13
	dirCreateTime      = 14
	dirCreateDate      = 16
	dirLastAccessDate  = 18
	dirFirstClusterHI  = 20
	dirWriteTime       = 22
	dirWriteDate       = 24
	dirFirstClusterLO  = 26
	dirFileSize        = 28
)

// Byte offsets of the long filename entry fields.
const (
	ldirOrdinal   = 0
	ldirName1     = 1
	ldirAttribute = 11
	ldirType      = 12
	ldirChecksum  = 13
	ldirName2     = 14
	ldirFirstClus = 26
	ldirName3     = 28

	longNameLastFlag    = 0x40
	longNameOrdinalMask = 0x1F
)

// EntryHeader is a 32 byte short directory entry.
type EntryHeader struct {
	Name            [11]byte
	Attribute       Attr
	NTReserved      byte
	CreateTimeTenth byte
	CreateTime      uint16
	CreateDate      uint16
	LastAccessDate  uint16
	FirstClusterHI  uint16
	WriteTime       uint16
	WriteDate       uint16
	FirstClusterLO  uint16
	FileSize        uint32
}

// LongFilenameEntry is a 32 byte long filename fragment.
// It is distinguished from an EntryHeader by the attribute AttrLongName.
type LongFilenameEntry struct {
	Sequence  byte
	First     [5]uint16
	Attribute Attr
	EntryType byte
	Checksum  byte
	Second    [6]uint16
	Zero      uint16
	Third     [2]uint16
}

// Ordinal returns the position of the fragment in its name, starting at 1.
func (l LongFilenameEntry) Ordinal() int {
	return int(l.Sequence & longNameOrdinalMask)
}

// IsLast reports if this fragment holds the end of the name.
// It is the first fragment stored on disk.
func (l LongFilenameEntry) IsLast() bool {
	return l.Sequence&longNameLastFlag != 0
}

// Units returns the 13 UTF-16 code units of the fragment in name order.
func (l LongFilenameEntry) Units() []uint16 {
	units := make([]uint16, 0, longNameUnits)
	units = append(units, l.First[:]...)
	units = append(units, l.Second[:]...)
	return append(units, l.Third[:]...)
}

func decodeEntryHeader(b []byte) EntryHeader {
	le := binary.LittleEndian
	h := EntryHeader{
		Attribute:       Attr(b[dirAttribute]),
		NTReserved:      b[dirNTReserved],
		CreateTimeTenth: b[dirCreateTimeTenth],
		CreateTime:      le.Uint16(b[dirCreateTime:]),
		CreateDate:      le.Uint16(b[dirCreateDate:]),
		LastAccessDate:  le.Uint16(b[dirLastAccessDate:]),
		FirstClusterHI:  le.Uint16(b[dirFirstClusterHI:]),
		WriteTime:       le.Uint16(b[dirWriteTime:]),
		WriteDate:       le.Uint16(b[dirWriteDate:]),
		FirstClusterLO:  le.Uint16(b[dirFirstClusterLO:]),
		FileSize:        le.Uint32(b[dirFileSize:]),
	}
	copy(h.Name[:], b[dirName:dirName+11])
	return h
}

func decodeLongFilenameEntry(b []byte) LongFilenameEntry {
	le := binary.LittleEndian
	l := LongFilenameEntry{
		Sequence:  b[ldirOrdinal],
		Attribute: Attr(b[ldirAttribute]),
		EntryType: b[ldirType],
		Checksum:  b[ldirChecksum],
		Zero:      le.Uint16(b[ldirFirstClus:]),
	}
	for i := range l.First {
		l.First[i] = le.Uint16(b[ldirName1+2*i:])
	}
	for i := range l.Second {
		l.Second[i] = le.Uint16(b[ldirName2+2*i:])
	}
	for i := range l.Third {
		l.Third[i] = le.Uint16(b[ldirName3+2*i:])
	}
	return l
}
