package fat16

import (
	"os"
	"time"
)

// FileInfo returns the entry as os.FileInfo. Sys returns the DirEntry.
func (e DirEntry) FileInfo() os.FileInfo {
	return entryFileInfo{e}
}

type entryFileInfo struct {
	entry DirEntry
}

func (e entryFileInfo) Name() string {
	return e.entry.Name()
}

func (e entryFileInfo) Size() int64 {
	return e.entry.Size()
}

func (e entryFileInfo) Mode() os.FileMode {
	mode := os.FileMode(0444)
	if e.entry.IsDir() {
		mode |= os.ModeDir | 0111
	}
	return mode
}

// ModTime returns the last write time or time.Time{} if the stored date is invalid.
func (e entryFileInfo) ModTime() time.Time {
	return e.entry.ModTime()
}

func (e entryFileInfo) IsDir() bool {
	return e.entry.IsDir()
}

func (e entryFileInfo) Sys() interface{} {
	return e.entry
}

// rootFileInfo describes the root directory, which has no entry of its own.
type rootFileInfo struct{}

func (rootFileInfo) Name() string       { return "/" }
func (rootFileInfo) Size() int64        { return 0 }
func (rootFileInfo) Mode() os.FileMode  { return os.ModeDir | 0555 }
func (rootFileInfo) ModTime() time.Time { return time.Time{} }
func (rootFileInfo) IsDir() bool        { return true }
func (rootFileInfo) Sys() interface{}   { return nil }
