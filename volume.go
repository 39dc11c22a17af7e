package fat16

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aligator/fat16/checkpoint"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Option configures a Volume.
type Option func(o *options)

type options struct {
	fs             afero.Fs
	log            logrus.FieldLogger
	maxChainLength int
}

// WithFs sets the filesystem OpenVolume opens the image from.
// The default is the read-only OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithLogger sets the logger for debug output. The default is the logrus standard logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithChainLimit limits the length of every cluster chain, see WithMaxChainLength.
func WithChainLimit(n int) Option {
	return func(o *options) {
		o.maxChainLength = n
	}
}

func newOptions(opts []Option) options {
	o := options{
		log: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.fs == nil {
		o.fs = afero.NewReadOnlyFs(afero.NewOsFs())
	}
	return o
}

// Volume is an opened FAT16 image.
//
// The geometry, the FAT and the root directory are loaded once on open and never
// change afterwards. All reads use explicit offsets, so any number of Files may be
// used concurrently, each from its own goroutine.
type Volume struct {
	r      io.ReaderAt
	closer io.Closer
	name   string
	log    logrus.FieldLogger

	geometry Geometry
	fat      *FatTable
	root     []byte
}

// OpenVolume opens the image at path read-only.
func OpenVolume(path string, opts ...Option) (*Volume, error) {
	o := newOptions(opts)

	file, err := o.fs.Open(path)
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrIO)
	}

	v, err := newVolume(file, o)
	if err != nil {
		file.Close()
		return nil, err
	}

	v.closer = file
	v.name = path
	return v, nil
}

// NewVolume reads a volume from any positioned reader.
// Closing the volume does not close r.
func NewVolume(r io.ReaderAt, opts ...Option) (*Volume, error) {
	return newVolume(r, newOptions(opts))
}

func newVolume(r io.ReaderAt, o options) (*Volume, error) {
	g, err := ReadGeometry(r)
	if err != nil {
		return nil, err
	}

	log := o.log.WithField("volume", g.VolumeLabel)
	log.WithFields(logrus.Fields{
		"bytesPerSector":    g.BytesPerSector,
		"sectorsPerCluster": g.SectorsPerCluster,
		"reservedSectors":   g.ReservedSectorCount,
		"fats":              g.NumberOfFATs,
		"rootEntries":       g.RootEntryCount,
		"fatSectors":        g.FATSizeSectors,
		"totalSectors":      g.TotalSectors,
		"clusters":          g.TotalClusters,
	}).Debug("parsed boot sector")

	fat, err := LoadFatTable(r, g, WithMaxChainLength(o.maxChainLength))
	if err != nil {
		return nil, err
	}
	log.WithField("entries", fat.Len()).Debug("loaded FAT")

	root := make([]byte, g.RootDirSize)
	if n, err := r.ReadAt(root, g.RootDirectoryOffset()); n < len(root) {
		if err == nil || err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, checkpoint.From(fmt.Errorf("%w: reading root directory at offset %d: %v", ErrIO, g.RootDirectoryOffset(), err))
	}

	return &Volume{
		r:        r,
		log:      log,
		geometry: g,
		fat:      fat,
		root:     root,
	}, nil
}

// Close closes the image file if it was opened by OpenVolume.
// Files which are still open must not be used afterwards.
func (v *Volume) Close() error {
	if v.closer == nil {
		return nil
	}
	err := v.closer.Close()
	v.closer = nil
	return checkpoint.Wrap(err, ErrIO)
}

// Name returns the path the volume was opened from.
func (v *Volume) Name() string {
	return v.name
}

func (v *Volume) Geometry() Geometry {
	return v.geometry
}

func (v *Volume) FAT() *FatTable {
	return v.fat
}

// Label returns the label of the volume label entry in the root directory,
// or the label of the boot sector if there is no such entry.
func (v *Volume) Label() string {
	r := v.RootEntries()
	for r.Next() {
		if e := r.Entry(); e.IsVolumeLabel() {
			return e.Label()
		}
	}
	return v.geometry.VolumeLabel
}

// RootEntries returns a new reader over the root directory.
func (v *Volume) RootEntries() *DirectoryReader {
	return newDirectoryReader(v.root, v.log)
}

// ReadDir returns a reader over the subdirectory described by entry.
func (v *Volume) ReadDir(entry DirEntry) (*DirectoryReader, error) {
	if !entry.IsDir() {
		return nil, checkpoint.From(fmt.Errorf("%w: %q is not a directory", ErrNotFound, entry.Name()))
	}

	// ".." entries pointing to the root use cluster 0.
	if entry.FirstCluster() == 0 {
		return v.RootEntries(), nil
	}

	chain, err := v.chain(entry.FirstCluster())
	if err != nil {
		return nil, err
	}

	data := make([]byte, int64(len(chain))*v.geometry.ClusterSize)
	for i, cluster := range chain {
		offset, err := v.geometry.ClusterOffset(cluster)
		if err != nil {
			return nil, err
		}
		start := int64(i) * v.geometry.ClusterSize
		if n, err := v.r.ReadAt(data[start:start+v.geometry.ClusterSize], offset); int64(n) < v.geometry.ClusterSize {
			if err == nil || err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, checkpoint.From(fmt.Errorf("%w: reading directory cluster %d: %v", ErrIO, cluster, err))
		}
	}

	return newDirectoryReader(data, v.log), nil
}

// lookup resolves a slash separated path starting at the root directory.
func (v *Volume) lookup(name string) (DirEntry, bool, error) {
	name = cleanPath(name)
	if name == "" {
		return DirEntry{}, true, nil
	}

	r := v.RootEntries()
	parts := strings.Split(name, "/")
	for i, part := range parts {
		e, err := r.Find(part)
		if err != nil {
			return DirEntry{}, false, err
		}
		if i == len(parts)-1 {
			return e, false, nil
		}

		r, err = v.ReadDir(e)
		if err != nil {
			return DirEntry{}, false, err
		}
	}

	return DirEntry{}, false, checkpoint.From(fmt.Errorf("%w: %q", ErrNotFound, name))
}

// cleanPath converts a slash separated path to the form used by lookup.
// The root directory is represented by "".
func cleanPath(name string) string {
	return strings.TrimPrefix(path.Clean("/"+name), "/")
}

// dosPath accepts "\" as separator in addition to "/".
func dosPath(name string) string {
	return strings.ReplaceAll(name, "\\", "/")
}

// Stat returns information about the entry with the given path.
// Both "/" and "\" separate directories.
func (v *Volume) Stat(name string) (DirEntry, error) {
	e, isRoot, err := v.lookup(dosPath(name))
	if err != nil {
		return DirEntry{}, err
	}
	if isRoot {
		return DirEntry{}, checkpoint.From(fmt.Errorf("%w: the root directory has no entry", ErrNotFound))
	}
	return e, nil
}

// Open opens a file for reading. A plain name is resolved in the root directory,
// subdirectories may be given as "DIR/NAME" or "DIR\NAME".
// Returns ErrNotFound if the name does not exist and ErrNotAFile if it is a directory.
func (v *Volume) Open(name string) (*File, error) {
	e, isRoot, err := v.lookup(dosPath(name))
	if err != nil {
		return nil, err
	}
	if isRoot || e.IsDir() {
		return nil, checkpoint.From(fmt.Errorf("%w: %q", ErrNotAFile, name))
	}

	v.log.WithFields(logrus.Fields{
		"name":    name,
		"cluster": e.FirstCluster(),
		"size":    e.Size(),
	}).Debug("opened file")

	return newFile(v, name, e), nil
}

// openAny opens files and directories, it is used by the afero adapter.
// Only "/" separates directories here.
func (v *Volume) openAny(name string) (*File, error) {
	e, isRoot, err := v.lookup(name)
	if err != nil {
		return nil, err
	}
	if isRoot {
		return newRootDir(v, name), nil
	}
	return newFile(v, name, e), nil
}

// The methods below implement clusterSource.

func (v *Volume) chain(start uint16) ([]uint16, error) {
	chain, err := v.fat.Chain(start)
	if err != nil {
		v.log.WithFields(logrus.Fields{
			"start": start,
			"error": err,
		}).Debug("invalid cluster chain")
	}
	return chain, err
}

func (v *Volume) clusterOffset(cluster uint16) (int64, error) {
	return v.geometry.ClusterOffset(cluster)
}

func (v *Volume) clusterSize() int64 {
	return v.geometry.ClusterSize
}

func (v *Volume) readAt(p []byte, off int64) (int, error) {
	return v.r.ReadAt(p, off)
}

func (v *Volume) rootDir() *DirectoryReader {
	return v.RootEntries()
}

func (v *Volume) readDir(entry DirEntry) (*DirectoryReader, error) {
	return v.ReadDir(entry)
}

func (v *Volume) logger() logrus.FieldLogger {
	return v.log
}
