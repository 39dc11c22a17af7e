package fat16

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/aligator/fat16/internal/fattest"
	"github.com/google/go-cmp/cmp"
)

// errReaderAt fails every read.
type errReaderAt struct {
	err error
}

func (r errReaderAt) ReadAt(p []byte, off int64) (int, error) {
	return 0, r.err
}

// readerAtFunc turns a function into an io.ReaderAt.
type readerAtFunc func(p []byte, off int64) (int, error)

func (f readerAtFunc) ReadAt(p []byte, off int64) (int, error) {
	return f(p, off)
}

func bytesReaderAt(b []byte) readerAtFunc {
	return bytes.NewReader(b).ReadAt
}

func testBootSector(modify func(b []byte)) []byte {
	b := fattest.New().BootSector()
	if modify != nil {
		modify(b)
	}
	return b
}

func TestParseGeometry(t *testing.T) {
	tests := []struct {
		name    string
		b       []byte
		want    Geometry
		wantErr error
	}{
		{
			name: "default test image",
			b:    testBootSector(nil),
			want: Geometry{
				JumpBoot:            [3]byte{0xEB, 0x3C, 0x90},
				OEMName:             "fat16tst",
				BytesPerSector:      512,
				SectorsPerCluster:   1,
				ReservedSectorCount: 1,
				NumberOfFATs:        2,
				RootEntryCount:      64,
				Media:               0xF8,
				FATSizeSectors:      1,
				SectorsPerTrack:     32,
				NumberOfHeads:       4,
				TotalSectors:        135,
				DriveNumber:         0x80,
				BootSignature:       0x29,
				VolumeID:            0x1234abcd,
				VolumeLabel:         "TESTVOLUME",
				FileSystemType:      "FAT16",
				ClusterSize:         512,
				FATRegionOffset:     512,
				RootDirOffset:       1536,
				RootDirSize:         2048,
				DataRegionOffset:    3584,
				TotalClusters:       128,
			},
		},
		{
			name: "16 bit total sectors win",
			b: testBootSector(func(b []byte) {
				binary.LittleEndian.PutUint16(b[bpbTotalSectors16:], 71)
			}),
			want: Geometry{
				JumpBoot:            [3]byte{0xEB, 0x3C, 0x90},
				OEMName:             "fat16tst",
				BytesPerSector:      512,
				SectorsPerCluster:   1,
				ReservedSectorCount: 1,
				NumberOfFATs:        2,
				RootEntryCount:      64,
				Media:               0xF8,
				FATSizeSectors:      1,
				SectorsPerTrack:     32,
				NumberOfHeads:       4,
				TotalSectors:        71,
				DriveNumber:         0x80,
				BootSignature:       0x29,
				VolumeID:            0x1234abcd,
				VolumeLabel:         "TESTVOLUME",
				FileSystemType:      "FAT16",
				ClusterSize:         512,
				FATRegionOffset:     512,
				RootDirOffset:       1536,
				RootDirSize:         2048,
				DataRegionOffset:    3584,
				TotalClusters:       64,
			},
		},
		{
			name:    "truncated",
			b:       testBootSector(nil)[:30],
			wantErr: ErrFormat,
		},
		{
			name: "bytes per sector is 0",
			b: testBootSector(func(b []byte) {
				binary.LittleEndian.PutUint16(b[bpbBytesPerSector:], 0)
			}),
			wantErr: ErrFormat,
		},
		{
			name: "bytes per sector is no power of two",
			b: testBootSector(func(b []byte) {
				binary.LittleEndian.PutUint16(b[bpbBytesPerSector:], 500)
			}),
			wantErr: ErrFormat,
		},
		{
			name: "sectors per cluster is no power of two",
			b: testBootSector(func(b []byte) {
				b[bpbSectorsPerClus] = 3
			}),
			wantErr: ErrFormat,
		},
		{
			name: "no FAT",
			b: testBootSector(func(b []byte) {
				b[bpbNumFATs] = 0
			}),
			wantErr: ErrFormat,
		},
		{
			name: "no root directory",
			b: testBootSector(func(b []byte) {
				binary.LittleEndian.PutUint16(b[bpbRootEntryCount:], 0)
			}),
			wantErr: ErrFormat,
		},
		{
			name: "root directory not sector aligned",
			b: testBootSector(func(b []byte) {
				binary.LittleEndian.PutUint16(b[bpbRootEntryCount:], 63)
			}),
			wantErr: ErrFormat,
		},
		{
			name: "FAT size is 0",
			b: testBootSector(func(b []byte) {
				binary.LittleEndian.PutUint16(b[bpbFATSize16:], 0)
			}),
			wantErr: ErrFormat,
		},
		{
			name: "no sectors",
			b: testBootSector(func(b []byte) {
				binary.LittleEndian.PutUint32(b[bpbTotalSectors32:], 0)
			}),
			wantErr: ErrFormat,
		},
		{
			name: "data region beyond the volume",
			b: testBootSector(func(b []byte) {
				binary.LittleEndian.PutUint32(b[bpbTotalSectors32:], 5)
			}),
			wantErr: ErrFormat,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseGeometry(tt.b)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseGeometry() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseGeometry() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadGeometry(t *testing.T) {
	tests := []struct {
		name    string
		r       readerAtFunc
		wantErr error
	}{
		{
			name:    "short image",
			r:       bytesReaderAt(make([]byte, 10)),
			wantErr: ErrFormat,
		},
		{
			name:    "read error",
			r:       errReaderAt{err: fileTestsError}.ReadAt,
			wantErr: ErrIO,
		},
		{
			name: "valid",
			r:    bytesReaderAt(testBootSector(nil)),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadGeometry(tt.r)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ReadGeometry() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestReadGeometry_wrapsReadError(t *testing.T) {
	_, err := ReadGeometry(errReaderAt{err: fileTestsError})
	if !errors.Is(err, fileTestsError) {
		t.Errorf("ReadGeometry() error = %v, want the read error to be kept", err)
	}
}
