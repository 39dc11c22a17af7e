// Package fattest builds small FAT16 images in memory for tests.
//
// The images are laid out like a freshly formatted volume: one reserved sector,
// the FAT copies, the fixed root directory and the data region. Files are placed
// into clusters chosen by the caller or allocated in order, and the FAT can be
// patched freely to produce corrupt chains.
package fattest

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
	"time"
	"unicode/utf16"
)

const (
	// mediaDescriptor is the media descriptor for a hard disk (as opposed to floppy).
	mediaDescriptor = uint8(0xF8)

	// EndOfChain marks the end of a cluster chain in the FAT.
	EndOfChain = uint16(0xFFFF)
	// Bad marks a bad cluster in the FAT.
	Bad = uint16(0xFFF7)

	AttrReadOnly  = uint8(0x01)
	AttrHidden    = uint8(0x02)
	AttrSystem    = uint8(0x04)
	AttrVolumeID  = uint8(0x08)
	AttrDirectory = uint8(0x10)
	AttrArchive   = uint8(0x20)
	AttrLongName  = uint8(0x0F)
)

// Builder collects the content of an image. The zero value is not usable, use New.
type Builder struct {
	BytesPerSector    uint16
	SectorsPerCluster uint8
	ReservedSectors   uint16
	NumFATs           uint8
	RootEntries       uint16
	Clusters          int
	Label             string
	ModTime           time.Time

	fat  []uint16
	root [][]byte
	data map[uint16][]byte
	next uint16
}

// New returns a builder for a volume with 512 byte sectors, one sector per cluster,
// two FATs, 64 root entries and 128 data clusters.
func New() *Builder {
	return &Builder{
		BytesPerSector:    512,
		SectorsPerCluster: 1,
		ReservedSectors:   1,
		NumFATs:           2,
		RootEntries:       64,
		Clusters:          128,
		Label:             "TESTVOLUME",
		ModTime:           time.Date(2021, 3, 14, 15, 9, 26, 0, time.UTC),
		data:              map[uint16][]byte{},
		next:              2,
	}
}

// ClusterSize returns the size of one cluster in bytes.
func (b *Builder) ClusterSize() int {
	return int(b.BytesPerSector) * int(b.SectorsPerCluster)
}

func (b *Builder) ensureFAT() {
	if len(b.fat) < b.Clusters+2 {
		fat := make([]uint16, b.Clusters+2)
		copy(fat, b.fat)
		b.fat = fat
	}
	b.fat[0] = 0xFF00 | uint16(mediaDescriptor)
	b.fat[1] = 0xFFFF
}

// SetFAT stores a raw value in the FAT entry of cluster.
func (b *Builder) SetFAT(cluster, value uint16) {
	b.ensureFAT()
	b.fat[cluster] = value
}

// WriteCluster sets the content of a data cluster. data is truncated to the cluster size.
func (b *Builder) WriteCluster(cluster uint16, data []byte) {
	buf := make([]byte, b.ClusterSize())
	copy(buf, data)
	b.data[cluster] = buf
}

// Link writes a chain over the given clusters, terminated by EndOfChain.
func (b *Builder) Link(clusters ...uint16) {
	for i, c := range clusters {
		if i == len(clusters)-1 {
			b.SetFAT(c, EndOfChain)
		} else {
			b.SetFAT(c, clusters[i+1])
		}
	}
}

// Allocate reserves n clusters in order after all previously allocated ones.
func (b *Builder) Allocate(n int) []uint16 {
	clusters := make([]uint16, n)
	for i := range clusters {
		clusters[i] = b.next
		b.next++
	}
	return clusters
}

// Place writes content into the given clusters and links them.
// The clusters do not need to be contiguous.
func (b *Builder) Place(content []byte, clusters []uint16) {
	size := b.ClusterSize()
	for i, c := range clusters {
		start := i * size
		if start > len(content) {
			start = len(content)
		}
		end := start + size
		if end > len(content) {
			end = len(content)
		}
		b.WriteCluster(c, content[start:end])
	}
	b.Link(clusters...)
}

// AddRecord appends raw 32 byte records to the root directory.
func (b *Builder) AddRecord(records ...[]byte) {
	b.root = append(b.root, records...)
}

// AddFile stores content in newly allocated clusters and adds a root entry for it.
// longName may be empty. It returns the first cluster, which is 0 for empty files.
func (b *Builder) AddFile(shortName, longName string, content []byte) uint16 {
	var clusters []uint16
	if len(content) > 0 {
		clusters = b.Allocate((len(content) + b.ClusterSize() - 1) / b.ClusterSize())
	}
	return b.AddFileAt(shortName, longName, content, clusters)
}

// AddFileAt works like AddFile but uses the given clusters.
func (b *Builder) AddFileAt(shortName, longName string, content []byte, clusters []uint16) uint16 {
	var first uint16
	if len(clusters) > 0 {
		b.Place(content, clusters)
		first = clusters[0]
	}
	b.AddRecord(b.Entries(shortName, longName, AttrArchive, first, uint32(len(content)))...)
	return first
}

// AddDir creates a subdirectory in the root directory containing the given records
// after the "." and ".." entries. It returns the first cluster of the directory.
func (b *Builder) AddDir(shortName, longName string, records ...[]byte) uint16 {
	n := (len(records) + 2) * 32
	clusters := b.Allocate((n + b.ClusterSize() - 1) / b.ClusterSize())
	first := clusters[0]

	var buf bytes.Buffer
	buf.Write(ShortEntry(Short("."), AttrDirectory, first, 0, b.ModTime))
	buf.Write(ShortEntry(Short(".."), AttrDirectory, 0, 0, b.ModTime))
	for _, r := range records {
		buf.Write(r)
	}
	b.Place(buf.Bytes(), clusters)

	b.AddRecord(b.Entries(shortName, longName, AttrDirectory, first, 0)...)
	return first
}

// Entries returns the records for one directory entry: the long filename
// fragments (if longName is not empty) followed by the short entry.
func (b *Builder) Entries(shortName, longName string, attr uint8, cluster uint16, size uint32) [][]byte {
	short := Short(shortName)
	var records [][]byte
	if longName != "" {
		records = LongNameEntries(longName, short)
	}
	return append(records, ShortEntry(short, attr, cluster, size, b.ModTime))
}

// Short converts NAME.EXT into the padded 11 byte form. Names are not upper cased.
func Short(name string) [11]byte {
	var result [11]byte
	copy(result[:], "           ")
	if name == "." || name == ".." {
		copy(result[:], name)
		return result
	}

	base, ext := name, ""
	if i := strings.LastIndex(name, "."); i >= 0 {
		base, ext = name[:i], name[i+1:]
	}
	copy(result[:8], base)
	copy(result[8:], ext)
	return result
}

// Checksum computes the short name checksum stored in long filename fragments.
func Checksum(short [11]byte) byte {
	var sum byte
	for _, c := range short {
		sum = ((sum & 1) << 7) + (sum >> 1) + c
	}
	return sum
}

// ShortEntry encodes a short directory entry.
func ShortEntry(short [11]byte, attr uint8, cluster uint16, size uint32, modTime time.Time) []byte {
	var buf bytes.Buffer
	for _, v := range []interface{}{
		short,
		attr,
		uint8(0),           // NT reserved
		uint8(0),           // create time tenth
		timeStamp(modTime), // create time
		dateStamp(modTime), // create date
		dateStamp(modTime), // last access date
		uint16(0),          // first cluster high
		timeStamp(modTime), // write time
		dateStamp(modTime), // write date
		cluster,
		size,
	} {
		binary.Write(&buf, binary.LittleEndian, v)
	}
	return buf.Bytes()
}

// LongNameEntries encodes name as long filename fragments in on-disk order,
// which is descending by ordinal.
func LongNameEntries(name string, short [11]byte) [][]byte {
	units := utf16.Encode([]rune(name))
	count := (len(units) + 12) / 13
	if len(units)%13 != 0 {
		units = append(units, 0x0000)
	}
	for len(units)%13 != 0 {
		units = append(units, 0xFFFF)
	}

	sum := Checksum(short)
	records := make([][]byte, 0, count)
	for ordinal := count; ordinal >= 1; ordinal-- {
		seq := uint8(ordinal)
		if ordinal == count {
			seq |= 0x40
		}
		records = append(records, LongNameEntry(seq, units[(ordinal-1)*13:ordinal*13], sum))
	}
	return records
}

// LongNameEntry encodes a single long filename fragment holding 13 UTF-16 units.
func LongNameEntry(seq uint8, units []uint16, checksum byte) []byte {
	if len(units) != 13 {
		panic(fmt.Sprintf("a long filename fragment has 13 units, got %d", len(units)))
	}

	var buf bytes.Buffer
	for _, v := range []interface{}{
		seq,
		units[0:5],
		AttrLongName,
		uint8(0), // type
		checksum,
		units[5:11],
		uint16(0), // first cluster, always 0
		units[11:13],
	} {
		binary.Write(&buf, binary.LittleEndian, v)
	}
	return buf.Bytes()
}

func timeStamp(t time.Time) uint16 {
	return uint16(t.Hour())<<11 |
		uint16(t.Minute())<<5 |
		uint16(t.Second()/2)
}

func dateStamp(t time.Time) uint16 {
	return uint16(t.Year()-1980)<<9 |
		uint16(t.Month())<<5 |
		uint16(t.Day())
}

func (b *Builder) fatSectors() int {
	bytesNeeded := (b.Clusters + 2) * 2
	return (bytesNeeded + int(b.BytesPerSector) - 1) / int(b.BytesPerSector)
}

// BootSector encodes the boot sector for the current settings.
func (b *Builder) BootSector() []byte {
	rootSectors := int(b.RootEntries) * 32 / int(b.BytesPerSector)
	totalSectors := int(b.ReservedSectors) + int(b.NumFATs)*b.fatSectors() + rootSectors + b.Clusters*int(b.SectorsPerCluster)

	var label [11]byte
	copy(label[:], "           ")
	copy(label[:], b.Label)

	var buf bytes.Buffer
	for _, v := range []interface{}{
		[3]byte{0xEB, 0x3C, 0x90}, // jump code: intel 80x86 jump instruction
		[8]byte{'f', 'a', 't', '1', '6', 't', 's', 't'},
		b.BytesPerSector,
		b.SectorsPerCluster,
		b.ReservedSectors,
		b.NumFATs,
		b.RootEntries,
		uint16(0), // 0 = use uint32 number of sectors following later
		mediaDescriptor,
		uint16(b.fatSectors()),
		uint16(32), // (only for bootcode) number of sectors per track
		uint16(4),  // (only for bootcode) number of heads
		uint32(0),  // no hidden sectors
		uint32(totalSectors),
		uint8(0x80), // (only for bootcode) drive number
		uint8(0),    // reserved
		uint8(0x29), // magic value: boot signature
		uint32(0x1234abcd),
		label,
		[8]byte{'F', 'A', 'T', '1', '6', ' ', ' ', ' '},
	} {
		binary.Write(&buf, binary.LittleEndian, v)
	}

	sector := make([]byte, b.BytesPerSector)
	copy(sector, buf.Bytes())
	sector[510] = 0x55
	sector[511] = 0xAA
	return sector
}

// Bytes assembles the image.
func (b *Builder) Bytes() []byte {
	b.ensureFAT()
	bps := int(b.BytesPerSector)

	var img bytes.Buffer
	img.Write(b.BootSector())
	img.Write(make([]byte, (int(b.ReservedSectors)-1)*bps))

	fat := make([]byte, b.fatSectors()*bps)
	for i, v := range b.fat {
		binary.LittleEndian.PutUint16(fat[i*2:], v)
	}
	for i := 0; i < int(b.NumFATs); i++ {
		img.Write(fat)
	}

	root := make([]byte, int(b.RootEntries)*32)
	for i, r := range b.root {
		copy(root[i*32:], r)
	}
	img.Write(root)

	empty := make([]byte, b.ClusterSize())
	for c := 2; c < b.Clusters+2; c++ {
		if data, ok := b.data[uint16(c)]; ok {
			img.Write(data)
		} else {
			img.Write(empty)
		}
	}

	return img.Bytes()
}
