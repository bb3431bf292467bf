package fatreader

import (
	"errors"
	"io/fs"
	"sort"
)

// dirEntry is a root directory entry seen through io/fs.
type dirEntry struct {
	info fs.FileInfo
}

func (d dirEntry) Name() string               { return d.info.Name() }
func (d dirEntry) IsDir() bool                { return d.info.IsDir() }
func (d dirEntry) Type() fs.FileMode          { return d.info.Mode().Type() }
func (d dirEntry) Info() (fs.FileInfo, error) { return d.info, nil }
func (d dirEntry) String() string             { return fs.FormatDirEntry(d) }

// ioFile exposes a File as fs.ReadDirFile.
type ioFile struct {
	f *File
}

func (g ioFile) Stat() (fs.FileInfo, error) {
	return g.f.Stat()
}

func (g ioFile) Read(p []byte) (int, error) {
	return g.f.Read(p)
}

func (g ioFile) Close() error {
	return g.f.Close()
}

func (g ioFile) ReadDir(n int) ([]fs.DirEntry, error) {
	infos, err := g.f.Readdir(n)

	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = dirEntry{info}
	}
	return entries, err
}

// GoFs is the read-only fs.FS view of a volume.
// Paths follow the io/fs rules, "." names the root directory.
type GoFs struct {
	*Fs
}

var (
	_ fs.ReadDirFS = GoFs{}
	_ fs.StatFS    = GoFs{}
)

// NewGoFS creates the fs.FS view of v.
func NewGoFS(v *Volume) GoFs {
	return GoFs{NewFs(v)}
}

func (g GoFs) open(op, name string) (*File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: op, Path: name, Err: fs.ErrInvalid}
	}

	file, err := g.Fs.Open(name)
	if err != nil {
		return nil, err
	}

	f, ok := file.(*File)
	if !ok {
		return nil, errors.New("invalid File implementation")
	}
	return f, nil
}

func (g GoFs) Open(name string) (fs.File, error) {
	f, err := g.open("open", name)
	if err != nil {
		return nil, err
	}
	return ioFile{f}, nil
}

func (g GoFs) Stat(name string) (fs.FileInfo, error) {
	f, err := g.open("stat", name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.Stat()
}

// ReadDir lists the directory name sorted by file name.
func (g GoFs) ReadDir(name string) ([]fs.DirEntry, error) {
	f, err := g.open("readdir", name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := ioFile{f}.ReadDir(-1)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, err
}
