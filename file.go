package fat16

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/aligator/fat16/checkpoint"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// These errors may occur while processing a file.
var (
	ErrReadFile       = errors.New("could not read file completely")
	ErrSeekFile       = errors.New("could not seek inside of the file")
	ErrReadDir        = errors.New("could not read the directory")
	ErrNegativeOffset = errors.New("negative offset")
)

// clusterSource provides everything a File needs from its volume.
// It mainly exists to be able to mock the Volume in tests.
// Generated mock using mockgen:
//
//	mockgen -source=file.go -destination=file_mock.go -package fat16
type clusterSource interface {
	chain(start uint16) ([]uint16, error)
	clusterOffset(cluster uint16) (int64, error)
	clusterSize() int64
	readAt(p []byte, off int64) (int, error)
	rootDir() *DirectoryReader
	readDir(entry DirEntry) (*DirectoryReader, error)
	logger() logrus.FieldLogger
}

// File is a read-only handle to a file or directory of a volume.
// The position is private to the handle, so a File must not be used by
// several goroutines without synchronization. Different Files of the
// same volume are independent of each other.
type File struct {
	src  clusterSource
	path string

	entry  DirEntry
	isRoot bool

	// chain is loaded by the first read and kept until Close.
	chain  []uint16
	offset int64

	// dirEntries is loaded by the first Readdir.
	dirEntries []DirEntry
	dirOffset  int

	closed bool
}

func newFile(src clusterSource, path string, entry DirEntry) *File {
	return &File{
		src:   src,
		path:  path,
		entry: entry,
	}
}

func newRootDir(src clusterSource, path string) *File {
	return &File{
		src:    src,
		path:   path,
		isRoot: true,
	}
}

func (f *File) isDir() bool {
	return f.isRoot || f.entry.IsDir()
}

func (f *File) checkOpen(op string) error {
	if f.closed {
		return &os.PathError{Op: op, Path: f.path, Err: afero.ErrFileClosed}
	}
	return nil
}

// Close releases the handle. The volume stays usable for other handles.
func (f *File) Close() error {
	if err := f.checkOpen("close"); err != nil {
		return err
	}

	*f = File{closed: true}
	return nil
}

// Read reads up to len(p) bytes at the current position and advances it.
// At or beyond the end of the file it returns 0, io.EOF.
func (f *File) Read(p []byte) (n int, err error) {
	if err := f.checkOpen("read"); err != nil {
		return 0, err
	}

	n, err = f.readAt(p, f.offset)
	f.offset += int64(n)
	if err != nil && err != io.EOF {
		return n, checkpoint.Wrap(err, ErrReadFile)
	}

	return n, err
}

// ReadAt reads len(p) bytes at off without changing the position.
// If less than len(p) bytes are available it returns io.EOF.
func (f *File) ReadAt(p []byte, off int64) (n int, err error) {
	if err := f.checkOpen("read"); err != nil {
		return 0, err
	}

	if off < 0 {
		return 0, checkpoint.Wrap(ErrNegativeOffset, ErrReadFile)
	}

	n, err = f.readAt(p, off)
	if err != nil && err != io.EOF {
		return n, checkpoint.Wrap(err, ErrReadFile)
	}

	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// readAt translates the file offset into positions on the image and reads
// cluster by cluster. It never reads past the file size, the slack space at
// the end of the last cluster is never returned.
func (f *File) readAt(p []byte, off int64) (int, error) {
	if f.isDir() {
		return 0, checkpoint.From(fmt.Errorf("%w: %q", ErrNotAFile, f.path))
	}

	size := f.entry.Size()
	if off >= size {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}

	want := int64(len(p))
	if remaining := size - off; want > remaining {
		want = remaining
	}

	chain, err := f.loadChain()
	if err != nil {
		return 0, err
	}

	clusterSize := f.src.clusterSize()
	var n int64
	for n < want {
		pos := off + n
		index := pos / clusterSize
		if index >= int64(len(chain)) {
			return int(n), checkpoint.From(fmt.Errorf("%w: chain of %d clusters is too short for %d bytes", chainError(ErrCorruptChain, chain[len(chain)-1]), len(chain), size))
		}

		physical, err := f.src.clusterOffset(chain[index])
		if err != nil {
			return int(n), err
		}

		within := pos % clusterSize
		span := clusterSize - within
		if span > want-n {
			span = want - n
		}

		read, err := f.src.readAt(p[n:n+span], physical+within)
		n += int64(read)
		if int64(read) < span {
			if err == nil || err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return int(n), checkpoint.From(fmt.Errorf("%w: reading cluster %d: %v", ErrIO, chain[index], err))
		}
	}

	return int(n), nil
}

func (f *File) loadChain() ([]uint16, error) {
	if f.chain != nil {
		return f.chain, nil
	}

	chain, err := f.src.chain(f.entry.FirstCluster())
	if err != nil {
		return nil, err
	}
	f.chain = chain
	return chain, nil
}

// Seek sets the position for the next Read. Positions beyond the end
// of the file are allowed, reading there returns io.EOF.
// May return a syscall.EINVAL error if the whence value is invalid.
// May return ErrNegativeOffset if the resulting position is negative.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	if err := f.checkOpen("seek"); err != nil {
		return 0, err
	}

	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset = f.offset + offset
	case io.SeekEnd:
		offset = f.entry.Size() + offset
	default:
		return 0, checkpoint.Wrap(ErrSeekFile, fmt.Errorf("%w, offset: %v, whence: %v", syscall.EINVAL, offset, whence))
	}

	if offset < 0 {
		return 0, checkpoint.Wrap(ErrNegativeOffset, fmt.Errorf("%w, offset: %v, whence: %v", ErrSeekFile, offset, whence))
	}

	f.offset = offset
	return offset, nil
}

func (f *File) Write(p []byte) (n int, err error) {
	return 0, checkpoint.From(ErrReadOnly)
}

func (f *File) WriteAt(p []byte, off int64) (n int, err error) {
	return 0, checkpoint.From(ErrReadOnly)
}

func (f *File) WriteString(s string) (ret int, err error) {
	return f.Write([]byte(s))
}

func (f *File) Truncate(size int64) error {
	return checkpoint.From(ErrReadOnly)
}

// Sync does nothing as nothing is ever written.
func (f *File) Sync() error {
	return f.checkOpen("sync")
}

// Name returns the name as passed to Open.
func (f *File) Name() string {
	return f.path
}

func (f *File) Stat() (os.FileInfo, error) {
	if err := f.checkOpen("stat"); err != nil {
		return nil, err
	}

	if f.isRoot {
		return rootFileInfo{}, nil
	}
	return f.entry.FileInfo(), nil
}

// Readdir reads the contents of a directory like os.File.Readdir.
// The volume label and the "." and ".." entries are left out.
// May return syscall.ENOTDIR if the File is no directory.
func (f *File) Readdir(count int) ([]os.FileInfo, error) {
	if err := f.checkOpen("readdir"); err != nil {
		return nil, err
	}

	if !f.isDir() {
		return nil, checkpoint.Wrap(syscall.ENOTDIR, ErrReadDir)
	}

	if f.dirEntries == nil {
		entries, err := f.listDir()
		if err != nil {
			return nil, checkpoint.Wrap(err, ErrReadDir)
		}
		f.dirEntries = entries
	}

	remaining := f.dirEntries[f.dirOffset:]
	if count > 0 {
		if len(remaining) == 0 {
			return []os.FileInfo{}, io.EOF
		}
		if count < len(remaining) {
			remaining = remaining[:count]
		}
	}
	f.dirOffset += len(remaining)

	result := make([]os.FileInfo, len(remaining))
	for i := range remaining {
		result[i] = remaining[i].FileInfo()
	}

	return result, nil
}

func (f *File) listDir() ([]DirEntry, error) {
	var (
		r   *DirectoryReader
		err error
	)
	if f.isRoot {
		r = f.src.rootDir()
	} else {
		r, err = f.src.readDir(f.entry)
		if err != nil {
			return nil, err
		}
	}

	// The root directory has no cluster, entries pointing to it use 0.
	self := f.entry.FirstCluster()

	entries := []DirEntry{}
	for r.Next() {
		e := r.Entry()
		if e.IsVolumeLabel() || e.ShortName == "." || e.ShortName == ".." {
			continue
		}
		if e.IsDir() && e.FirstCluster() == self {
			f.src.logger().WithFields(logrus.Fields{
				"dir":     f.path,
				"name":    e.Name(),
				"cluster": self,
			}).Debug("skipping directory entry which points to the directory itself")
			continue
		}
		entries = append(entries, e)
	}

	return entries, r.Err()
}

func (f *File) Readdirnames(count int) ([]string, error) {
	content, err := f.Readdir(count)

	names := make([]string, len(content))
	for i, entry := range content {
		names[i] = entry.Name()
	}

	return names, err
}
