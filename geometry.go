package fat16

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/aligator/fat16/checkpoint"
)

// BootSectorSize is the size of the boot sector record which is decoded by ParseGeometry.
// It covers the jump code, the OEM name, the BIOS parameter block and the FAT16 extended
// boot record up to the filesystem type string.
const BootSectorSize = 62

// Byte offsets of the boot sector fields.
const (
	bsJumpBoot         = 0
	bsOEMName          = 3
	bpbBytesPerSector  = 11
	bpbSectorsPerClus  = 13
	bpbReservedSectors = 14
	bpbNumFATs         = 16
	bpbRootEntryCount  = 17
	bpbTotalSectors16  = 19
	bpbMedia           = 21
	bpbFATSize16       = 22
	bpbSectorsPerTrack = 24
	bpbNumberOfHeads   = 26
	bpbHiddenSectors   = 28
	bpbTotalSectors32  = 32
	bsDriveNumber      = 36
	bsBootSignature    = 38
	bsVolumeID         = 39
	bsVolumeLabel      = 43
	bsFileSystemType   = 54
)

// Geometry contains the volume layout decoded from the boot sector.
// It is immutable once parsed and may be shared freely.
type Geometry struct {
	JumpBoot            [3]byte
	OEMName             string
	BytesPerSector      uint16
	SectorsPerCluster   uint8
	ReservedSectorCount uint16
	NumberOfFATs        uint8
	RootEntryCount      uint16
	Media               uint8
	FATSizeSectors      uint16
	SectorsPerTrack     uint16
	NumberOfHeads       uint16
	HiddenSectors       uint32
	// TotalSectors is taken from the 16 bit field, or from the 32 bit field if the first one is 0.
	TotalSectors uint32

	DriveNumber    uint8
	BootSignature  uint8
	VolumeID       uint32
	VolumeLabel    string
	FileSystemType string

	// ClusterSize is the size of one cluster in bytes.
	ClusterSize int64
	// FATRegionOffset is the byte offset of the first FAT.
	FATRegionOffset int64
	// RootDirOffset is the byte offset of the fixed root directory region.
	RootDirOffset int64
	// RootDirSize is the size of the root directory region in bytes.
	RootDirSize int64
	// DataRegionOffset is the byte offset of cluster 2.
	DataRegionOffset int64
	// TotalClusters is the number of data clusters on the volume.
	TotalClusters uint32
}

// ClusterLimit is the first cluster number which is not backed by the data region.
func (g Geometry) ClusterLimit() uint32 {
	return g.TotalClusters + firstDataCluster
}

// FATSize returns the size of one FAT copy in bytes.
func (g Geometry) FATSize() int64 {
	return int64(g.FATSizeSectors) * int64(g.BytesPerSector)
}

// ReadGeometry reads and parses the boot sector at offset 0 of r.
func ReadGeometry(r io.ReaderAt) (Geometry, error) {
	buf := make([]byte, BootSectorSize)
	n, err := r.ReadAt(buf, 0)
	if n < BootSectorSize {
		if err == nil || err == io.EOF || err == io.ErrUnexpectedEOF {
			return Geometry{}, checkpoint.From(fmt.Errorf("%w: truncated boot sector, got %d of %d bytes", ErrFormat, n, BootSectorSize))
		}
		return Geometry{}, checkpoint.Wrap(err, ErrIO)
	}

	return ParseGeometry(buf)
}

// ParseGeometry decodes the boot sector in b and validates the values needed for the
// address arithmetic. The volume label and OEM name are not checked.
func ParseGeometry(b []byte) (Geometry, error) {
	if len(b) < BootSectorSize {
		return Geometry{}, checkpoint.From(fmt.Errorf("%w: truncated boot sector, got %d of %d bytes", ErrFormat, len(b), BootSectorSize))
	}

	le := binary.LittleEndian
	g := Geometry{
		OEMName:             strings.TrimRight(string(b[bsOEMName:bsOEMName+8]), " \x00"),
		BytesPerSector:      le.Uint16(b[bpbBytesPerSector:]),
		SectorsPerCluster:   b[bpbSectorsPerClus],
		ReservedSectorCount: le.Uint16(b[bpbReservedSectors:]),
		NumberOfFATs:        b[bpbNumFATs],
		RootEntryCount:      le.Uint16(b[bpbRootEntryCount:]),
		Media:               b[bpbMedia],
		FATSizeSectors:      le.Uint16(b[bpbFATSize16:]),
		SectorsPerTrack:     le.Uint16(b[bpbSectorsPerTrack:]),
		NumberOfHeads:       le.Uint16(b[bpbNumberOfHeads:]),
		HiddenSectors:       le.Uint32(b[bpbHiddenSectors:]),
		DriveNumber:         b[bsDriveNumber],
		BootSignature:       b[bsBootSignature],
		VolumeID:            le.Uint32(b[bsVolumeID:]),
		VolumeLabel:         strings.TrimRight(string(b[bsVolumeLabel:bsVolumeLabel+11]), " \x00"),
		FileSystemType:      strings.TrimRight(string(b[bsFileSystemType:bsFileSystemType+8]), " \x00"),
	}
	copy(g.JumpBoot[:], b[bsJumpBoot:bsJumpBoot+3])

	if total16 := le.Uint16(b[bpbTotalSectors16:]); total16 != 0 {
		g.TotalSectors = uint32(total16)
	} else {
		g.TotalSectors = le.Uint32(b[bpbTotalSectors32:])
	}

	if err := g.validate(); err != nil {
		return Geometry{}, checkpoint.From(err)
	}

	g.ClusterSize = int64(g.SectorsPerCluster) * int64(g.BytesPerSector)
	g.FATRegionOffset = int64(g.ReservedSectorCount) * int64(g.BytesPerSector)
	g.RootDirOffset = g.FATRegionOffset + int64(g.NumberOfFATs)*g.FATSize()
	g.RootDirSize = int64(g.RootEntryCount) * directoryEntrySize
	g.DataRegionOffset = g.RootDirOffset + g.RootDirSize

	dataStartSector := g.DataRegionOffset / int64(g.BytesPerSector)
	if int64(g.TotalSectors) < dataStartSector {
		return Geometry{}, checkpoint.From(fmt.Errorf("%w: data region starts at sector %d beyond the %d total sectors", ErrFormat, dataStartSector, g.TotalSectors))
	}
	g.TotalClusters = uint32((int64(g.TotalSectors) - dataStartSector) / int64(g.SectorsPerCluster))

	return g, nil
}

func isPowerOfTwo(v uint32) bool {
	return v != 0 && v&(v-1) == 0
}

func (g Geometry) validate() error {
	if !isPowerOfTwo(uint32(g.BytesPerSector)) {
		return fmt.Errorf("%w: invalid bytes per sector %d", ErrFormat, g.BytesPerSector)
	}

	if !isPowerOfTwo(uint32(g.SectorsPerCluster)) {
		return fmt.Errorf("%w: invalid sectors per cluster %d", ErrFormat, g.SectorsPerCluster)
	}

	if g.NumberOfFATs == 0 {
		return fmt.Errorf("%w: the volume has no FAT", ErrFormat)
	}

	// A FAT16 volume always has a fixed root directory and a 16 bit FAT size.
	// If one of them is 0 it is most likely FAT32 which is not supported.
	if g.RootEntryCount == 0 {
		return fmt.Errorf("%w: root entry count is 0", ErrFormat)
	}
	if (uint32(g.RootEntryCount)*directoryEntrySize)%uint32(g.BytesPerSector) != 0 {
		return fmt.Errorf("%w: root directory of %d entries is not sector aligned", ErrFormat, g.RootEntryCount)
	}
	if g.FATSizeSectors == 0 {
		return fmt.Errorf("%w: FAT size is 0", ErrFormat)
	}

	if g.TotalSectors == 0 {
		return fmt.Errorf("%w: total sector count is 0", ErrFormat)
	}

	return nil
}
