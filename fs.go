package fat16

import (
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/aligator/fat16/checkpoint"
	"github.com/spf13/afero"
)

var (
	_ afero.Fs   = (*Fs)(nil)
	_ afero.File = (*File)(nil)
)

// Fs exposes a Volume as read-only afero.Fs.
// All methods which would modify the volume return ErrReadOnly.
type Fs struct {
	vol *Volume
}

// NewFs wraps the volume. Closing files opened by the Fs does not close the volume.
func NewFs(v *Volume) afero.Fs {
	return &Fs{vol: v}
}

// NewIOFS exposes the volume as io/fs filesystem.
func NewIOFS(v *Volume) fs.FS {
	return afero.NewIOFS(NewFs(v))
}

// validName rejects names containing "\". The adapters only use "/" as
// separator, like io/fs does.
func validName(op, name string) error {
	if strings.Contains(name, "\\") {
		return &os.PathError{Op: op, Path: name, Err: fs.ErrInvalid}
	}
	return nil
}

func (f *Fs) Open(name string) (afero.File, error) {
	if err := validName("open", name); err != nil {
		return nil, err
	}
	file, err := f.vol.openAny(name)
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: name, Err: err}
	}
	return file, nil
}

// OpenFile only supports os.O_RDONLY, the permissions are ignored.
func (f *Fs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_APPEND|os.O_CREATE|os.O_TRUNC) != 0 {
		return nil, &os.PathError{Op: "open", Path: name, Err: checkpoint.From(ErrReadOnly)}
	}
	return f.Open(name)
}

func (f *Fs) Stat(name string) (os.FileInfo, error) {
	if err := validName("stat", name); err != nil {
		return nil, err
	}
	e, isRoot, err := f.vol.lookup(name)
	if err != nil {
		return nil, &os.PathError{Op: "stat", Path: name, Err: err}
	}
	if isRoot {
		return rootFileInfo{}, nil
	}
	return e.FileInfo(), nil
}

func (f *Fs) Name() string {
	return "fat16"
}

func (f *Fs) Create(name string) (afero.File, error) {
	return nil, &os.PathError{Op: "create", Path: name, Err: checkpoint.From(ErrReadOnly)}
}

func (f *Fs) Mkdir(name string, perm os.FileMode) error {
	return &os.PathError{Op: "mkdir", Path: name, Err: checkpoint.From(ErrReadOnly)}
}

func (f *Fs) MkdirAll(path string, perm os.FileMode) error {
	return &os.PathError{Op: "mkdir", Path: path, Err: checkpoint.From(ErrReadOnly)}
}

func (f *Fs) Remove(name string) error {
	return &os.PathError{Op: "remove", Path: name, Err: checkpoint.From(ErrReadOnly)}
}

func (f *Fs) RemoveAll(path string) error {
	return &os.PathError{Op: "remove", Path: path, Err: checkpoint.From(ErrReadOnly)}
}

func (f *Fs) Rename(oldname, newname string) error {
	return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: checkpoint.From(ErrReadOnly)}
}

func (f *Fs) Chmod(name string, mode os.FileMode) error {
	return &os.PathError{Op: "chmod", Path: name, Err: checkpoint.From(ErrReadOnly)}
}

func (f *Fs) Chown(name string, uid, gid int) error {
	return &os.PathError{Op: "chown", Path: name, Err: checkpoint.From(ErrReadOnly)}
}

func (f *Fs) Chtimes(name string, atime time.Time, mtime time.Time) error {
	return &os.PathError{Op: "chtimes", Path: name, Err: checkpoint.From(ErrReadOnly)}
}
