package fat16

import (
	"os"
	"reflect"
	"testing"
	"time"
)

func TestDirEntry_FileInfo(t *testing.T) {
	tests := []struct {
		name        string
		entry       DirEntry
		wantName    string
		wantSize    int64
		wantMode    os.FileMode
		wantIsDir   bool
		wantModTime time.Time
	}{
		{
			name: "file with long name",
			entry: DirEntry{
				EntryHeader: EntryHeader{
					Name:      [11]byte{'H', 'E', 'L', 'L', 'O', ' ', ' ', ' ', 'T', 'X', 'T'},
					Attribute: AttrArchive,
					WriteTime: 15<<11 | 9<<5 | 13,
					WriteDate: 41<<9 | 3<<5 | 14,
					FileSize:  9,
				},
				ShortName: "HELLO.TXT",
				LongName:  "hello world.txt",
			},
			wantName:    "hello world.txt",
			wantSize:    9,
			wantMode:    0444,
			wantModTime: time.Date(2021, 3, 14, 15, 9, 26, 0, time.UTC),
		},
		{
			name: "directory",
			entry: DirEntry{
				EntryHeader: EntryHeader{
					Name:      [11]byte{'S', 'U', 'B', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' '},
					Attribute: AttrDirectory,
				},
				ShortName: "SUB",
			},
			wantName:  "SUB",
			wantMode:  os.ModeDir | 0555,
			wantIsDir: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := tt.entry.FileInfo()
			if got := info.Name(); got != tt.wantName {
				t.Errorf("FileInfo.Name() = %v, want %v", got, tt.wantName)
			}
			if got := info.Size(); got != tt.wantSize {
				t.Errorf("FileInfo.Size() = %v, want %v", got, tt.wantSize)
			}
			if got := info.Mode(); got != tt.wantMode {
				t.Errorf("FileInfo.Mode() = %v, want %v", got, tt.wantMode)
			}
			if got := info.IsDir(); got != tt.wantIsDir {
				t.Errorf("FileInfo.IsDir() = %v, want %v", got, tt.wantIsDir)
			}
			if got := info.ModTime(); !got.Equal(tt.wantModTime) {
				t.Errorf("FileInfo.ModTime() = %v, want %v", got, tt.wantModTime)
			}
			if got := info.Sys(); !reflect.DeepEqual(got, tt.entry) {
				t.Errorf("FileInfo.Sys() = %v, want %v", got, tt.entry)
			}
		})
	}
}

func Test_rootFileInfo(t *testing.T) {
	var info os.FileInfo = rootFileInfo{}
	if !info.IsDir() || !info.Mode().IsDir() {
		t.Errorf("rootFileInfo is no directory")
	}
	if info.Sys() != nil {
		t.Errorf("rootFileInfo.Sys() = %v, want nil", info.Sys())
	}
}
