package fatreader

import (
	"os"
	"time"
)

// FileInfo returns the entry as os.FileInfo.
// Sys() returns the DirectoryEntry itself.
func (e DirectoryEntry) FileInfo() os.FileInfo {
	return entryFileInfo{e}
}

type entryFileInfo struct {
	entry DirectoryEntry
}

func (e entryFileInfo) Name() string {
	return e.entry.FileName()
}

func (e entryFileInfo) Size() int64 {
	return int64(e.entry.Size)
}

func (e entryFileInfo) Mode() os.FileMode {
	mode := os.FileMode(0o666)
	if e.entry.Attribute.IsReadOnly() {
		mode = 0o444
	}
	if e.IsDir() {
		return mode | os.ModeDir | 0o111
	}
	return mode
}

func (e entryFileInfo) ModTime() time.Time {
	return e.entry.Updated()
}

func (e entryFileInfo) IsDir() bool {
	return e.entry.IsDir()
}

func (e entryFileInfo) Sys() interface{} {
	return e.entry
}

// rootFileInfo describes the root directory which has no directory entry of its own.
type rootFileInfo struct {
	name string
}

func (r rootFileInfo) Name() string       { return r.name }
func (r rootFileInfo) Size() int64        { return 0 }
func (r rootFileInfo) Mode() os.FileMode  { return os.ModeDir | 0o555 }
func (r rootFileInfo) ModTime() time.Time { return time.Time{} }
func (r rootFileInfo) IsDir() bool        { return true }
func (r rootFileInfo) Sys() interface{}   { return nil }
