package fatreader

import (
	"os"
	"path"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/tamurashingo/fat-image-reader/checkpoint"
)

// Fs is a read only afero.Fs showing the root directory of a Volume.
// Entries of the root can be opened and stat'ed, but neither file contents
// nor subdirectories can be read as both live in cluster chains.
// Deleted entries and the volume label are hidden.
type Fs struct {
	vol *Volume
}

var _ afero.Fs = (*Fs)(nil)

// NewFs creates the afero.Fs view of v.
func NewFs(v *Volume) *Fs {
	return &Fs{vol: v}
}

// readRoot returns the visible entries of the root directory.
func (fs *Fs) readRoot() ([]DirectoryEntry, error) {
	entries, err := fs.vol.RootDirectory()
	if err != nil {
		return nil, checkpoint.From(err)
	}

	visible := make([]DirectoryEntry, 0, len(entries))
	for _, e := range entries {
		if e.Deleted || e.IsVolumeLabel() {
			continue
		}
		visible = append(visible, e)
	}
	return visible, nil
}

// cleanPath converts name to the form used inside of the root, "" for the root itself.
func cleanPath(name string) string {
	name = path.Clean("/" + strings.ReplaceAll(name, "\\", "/"))
	return strings.TrimPrefix(name, "/")
}

func (fs *Fs) Open(name string) (afero.File, error) {
	p := cleanPath(name)
	if p == "" {
		return &File{
			fs:     fs,
			name:   name,
			isRoot: true,
			stat:   rootFileInfo{name: "/"},
		}, nil
	}

	// Everything below a subdirectory would need its cluster chain.
	if strings.Contains(p, "/") {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
	}

	entries, err := fs.readRoot()
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: name, Err: err}
	}

	for _, e := range entries {
		if strings.EqualFold(e.FileName(), p) {
			return &File{
				fs:   fs,
				name: name,
				stat: e.FileInfo(),
			}, nil
		}
	}

	return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
}

func (fs *Fs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_APPEND|os.O_CREATE|os.O_TRUNC) != 0 {
		return nil, &os.PathError{Op: "open", Path: name, Err: syscall.EROFS}
	}
	return fs.Open(name)
}

func (fs *Fs) Stat(name string) (os.FileInfo, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.Stat()
}

func (fs *Fs) Name() string {
	return "FAT " + fs.vol.FATType().String()
}

func (fs *Fs) Create(name string) (afero.File, error) {
	return nil, &os.PathError{Op: "create", Path: name, Err: syscall.EROFS}
}

func (fs *Fs) Mkdir(name string, perm os.FileMode) error {
	return &os.PathError{Op: "mkdir", Path: name, Err: syscall.EROFS}
}

func (fs *Fs) MkdirAll(path string, perm os.FileMode) error {
	return &os.PathError{Op: "mkdir", Path: path, Err: syscall.EROFS}
}

func (fs *Fs) Remove(name string) error {
	return &os.PathError{Op: "remove", Path: name, Err: syscall.EROFS}
}

func (fs *Fs) RemoveAll(path string) error {
	return &os.PathError{Op: "remove", Path: path, Err: syscall.EROFS}
}

func (fs *Fs) Rename(oldname, newname string) error {
	return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: syscall.EROFS}
}

func (fs *Fs) Chmod(name string, mode os.FileMode) error {
	return &os.PathError{Op: "chmod", Path: name, Err: syscall.EROFS}
}

func (fs *Fs) Chown(name string, uid, gid int) error {
	return &os.PathError{Op: "chown", Path: name, Err: syscall.EROFS}
}

func (fs *Fs) Chtimes(name string, atime time.Time, mtime time.Time) error {
	return &os.PathError{Op: "chtimes", Path: name, Err: syscall.EROFS}
}
