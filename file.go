package fatreader

import (
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/spf13/afero"
	"github.com/tamurashingo/fat-image-reader/checkpoint"
)

// rootDirReader lists the live entries of the root directory.
// Mock for the File tests:
//  mockgen -source=file.go -destination=file_mock.go -package fatreader
type rootDirReader interface {
	readRoot() ([]DirectoryEntry, error)
}

// File is a read only handle to the root directory or to one of its entries.
// Only the metadata is available. Reading the contents would need the
// cluster chain of the file and fails with ErrContentUnsupported.
type File struct {
	fs   rootDirReader
	name string

	isRoot bool
	stat   os.FileInfo

	// offset is the read position for files and the count of already returned entries for the root.
	offset int64
}

var _ afero.File = (*File)(nil)

func (f *File) Close() error {
	f.fs = nil
	f.name = ""
	f.isRoot = false
	f.stat = nil
	f.offset = 0

	return nil
}

// checkOpen fails with os.ErrClosed once Close was called.
func (f *File) checkOpen(op string) error {
	if f.stat == nil {
		return &os.PathError{Op: op, Path: f.name, Err: os.ErrClosed}
	}
	return nil
}

func (f *File) Read(p []byte) (n int, err error) {
	n, err = f.ReadAt(p, f.offset)
	f.offset += int64(n)
	return n, err
}

func (f *File) ReadAt(p []byte, off int64) (n int, err error) {
	if err := f.checkOpen("read"); err != nil {
		return 0, err
	}
	if f.stat.IsDir() {
		return 0, &os.PathError{Op: "read", Path: f.name, Err: syscall.EISDIR}
	}

	if len(p) == 0 {
		return 0, nil
	}

	if off >= f.stat.Size() {
		return 0, io.EOF
	}

	return 0, checkpoint.Wrap(&os.PathError{Op: "read", Path: f.name, Err: syscall.ENOTSUP}, ErrContentUnsupported)
}

// Seek moves the position used by Read. On the root directory, Seek(0, io.SeekStart)
// restarts Readdir.
// An unknown whence fails with syscall.EINVAL, a position outside of the file
// with afero.ErrOutOfRange.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	if err := f.checkOpen("seek"); err != nil {
		return 0, err
	}
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset = f.offset + offset
	case io.SeekEnd:
		offset = f.stat.Size() + offset
	default:
		return 0, checkpoint.Wrap(syscall.EINVAL, fmt.Errorf("%w, offset: %v, whence: %v", ErrSeekFile, offset, whence))
	}

	if offset < 0 || offset > f.stat.Size() {
		return 0, checkpoint.Wrap(afero.ErrOutOfRange, fmt.Errorf("%w, offset: %v, whence: %v", ErrSeekFile, offset, whence))
	}

	f.offset = offset
	return offset, nil
}

func (f *File) Write(p []byte) (n int, err error) {
	return 0, &os.PathError{Op: "write", Path: f.name, Err: syscall.EROFS}
}

func (f *File) WriteAt(p []byte, off int64) (n int, err error) {
	return 0, &os.PathError{Op: "write", Path: f.name, Err: syscall.EROFS}
}

func (f *File) WriteString(s string) (ret int, err error) {
	return f.Write([]byte(s))
}

func (f *File) Truncate(size int64) error {
	return &os.PathError{Op: "truncate", Path: f.name, Err: syscall.EROFS}
}

// Sync does nothing as nothing can be written.
func (f *File) Sync() error {
	return nil
}

func (f *File) Name() string {
	return f.name
}

func (f *File) Stat() (os.FileInfo, error) {
	if err := f.checkOpen("stat"); err != nil {
		return nil, err
	}
	return f.stat, nil
}

// Readdir reads the contents of the root directory.
// If count > 0, at most count entries are returned and io.EOF signals the end.
// Otherwise all remaining entries are returned.
// May return syscall.ENOTDIR if the File is no directory and
// ErrContentUnsupported for other directories than the root.
func (f *File) Readdir(count int) ([]os.FileInfo, error) {
	if err := f.checkOpen("readdir"); err != nil {
		return nil, err
	}
	if !f.stat.IsDir() {
		return nil, checkpoint.Wrap(syscall.ENOTDIR, ErrReadDir)
	}
	if !f.isRoot {
		return nil, checkpoint.Wrap(ErrContentUnsupported, ErrReadDir)
	}

	content, err := f.fs.readRoot()
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrReadDir)
	}

	start := f.offset
	if start > int64(len(content)) {
		start = int64(len(content))
	}
	end := int64(len(content))
	if count > 0 {
		if start == end {
			return nil, io.EOF
		}
		if start+int64(count) < end {
			end = start + int64(count)
		}
	}
	f.offset = end

	result := make([]os.FileInfo, 0, end-start)
	for _, e := range content[start:end] {
		result = append(result, e.FileInfo())
	}

	return result, nil
}

func (f *File) Readdirnames(count int) ([]string, error) {
	content, err := f.Readdir(count)
	if err != nil {
		return nil, checkpoint.From(err)
	}

	names := make([]string, len(content))
	for i, entry := range content {
		names[i] = entry.Name()
	}

	return names, nil
}
