package fatreader

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tamurashingo/fat-image-reader/checkpoint"
)

// DecodeOptions configures DecodeDirectory.
// The zero value decodes names strictly.
type DecodeOptions struct {
	Policy DecodePolicy
}

// DirectoryEntry is one decoded 32 byte directory record.
type DirectoryEntry struct {
	// Name and Extension are the decoded parts of the 8.3 name without padding.
	Name      string
	Extension string
	Attribute Attribute

	CreatedTenths uint8
	CreatedTime   Time
	CreatedDate   Date
	AccessedDate  Date
	UpdatedTime   Time
	UpdatedDate   Date

	FirstCluster uint32
	Size         uint32

	// Deleted is set for records starting with 0xE5. Their first name byte is lost.
	Deleted bool

	Raw [DirEntrySize]byte
}

// IsDir uses the directory attribute bit.
func (e DirectoryEntry) IsDir() bool {
	return e.Attribute.IsDirectory()
}

func (e DirectoryEntry) IsVolumeLabel() bool {
	return e.Attribute.IsVolumeLabel() && !e.Attribute.IsDirectory()
}

// FileName returns the name in the form NAME.EXT, or NAME if there is no extension.
func (e DirectoryEntry) FileName() string {
	if e.Extension == "" {
		return e.Name
	}
	return e.Name + "." + e.Extension
}

// Created returns the creation time. It is time.Time{} if the date is invalid.
func (e DirectoryEntry) Created() time.Time {
	t := Timestamp(e.CreatedDate, e.CreatedTime)
	if t.IsZero() {
		return t
	}
	// The tenths field holds 10ms units from 0 to 199.
	return t.Add(time.Duration(e.CreatedTenths) * 10 * time.Millisecond)
}

// Updated returns the time of the last write. It is time.Time{} if the date is invalid.
func (e DirectoryEntry) Updated() time.Time {
	return Timestamp(e.UpdatedDate, e.UpdatedTime)
}

// DecodeDirectory decodes the records of a directory area, e.g. the root directory
// located by Region.RootDirOffset and Region.RootDirLength.
//
// Decoding stops at the first record starting with 0x00, which marks the end of the directory.
// Deleted records (starting with 0xE5) are returned with Deleted set.
// Long filename slots are skipped.
//
// The length of buf has to be a multiple of DirEntrySize, otherwise ErrTruncatedImage is returned.
func DecodeDirectory(buf []byte, opts DecodeOptions) ([]DirectoryEntry, error) {
	if len(buf)%DirEntrySize != 0 {
		return nil, checkpoint.Wrap(fmt.Errorf("directory area of %d bytes is no multiple of %d", len(buf), DirEntrySize), ErrTruncatedImage)
	}

	var entries []DirectoryEntry
	for off := 0; off < len(buf); off += DirEntrySize {
		record := buf[off : off+DirEntrySize]
		if record[0] == entryEndOfDirectory {
			break
		}

		if Attribute(record[offEntryAttribute]) == AttrLongName {
			continue
		}

		entry, err := decodeEntry(record, opts)
		if err != nil {
			return nil, checkpoint.Wrap(err, fmt.Errorf("record %d at offset %d", off/DirEntrySize, off))
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// decodeEntry decodes a single record which is neither the end marker nor a long filename slot.
func decodeEntry(record []byte, opts DecodeOptions) (DirectoryEntry, error) {
	var e DirectoryEntry
	copy(e.Raw[:], record)

	var name [entryNameLength]byte
	copy(name[:], record[offEntryName:])
	ext := trimPadding(record[offEntryExtension : offEntryExtension+entryExtensionLength])

	var err error
	if name[0] == entryDeleted {
		e.Deleted = true
		e.Name, err = deletedName(name[1:])
		if err != nil {
			return DirectoryEntry{}, err
		}
		// Deleted names are informational only and never fail the listing.
		e.Extension, err = decodeName(ext, PolicyReplace)
		if err != nil {
			return DirectoryEntry{}, err
		}
	} else {
		if name[0] == entryKanjiE5 {
			name[0] = entryDeleted
		}
		e.Name, err = decodeName(trimPadding(name[:]), opts.Policy)
		if err != nil {
			return DirectoryEntry{}, err
		}
		e.Extension, err = decodeName(ext, opts.Policy)
		if err != nil {
			return DirectoryEntry{}, err
		}
	}

	le := binary.LittleEndian
	e.Attribute = Attribute(record[offEntryAttribute])
	e.CreatedTenths = record[offEntryCreateTenths]
	e.CreatedTime = Time(le.Uint16(record[offEntryCreateTime:]))
	e.CreatedDate = Date(le.Uint16(record[offEntryCreateDate:]))
	e.AccessedDate = Date(le.Uint16(record[offEntryAccessDate:]))
	e.UpdatedTime = Time(le.Uint16(record[offEntryWriteTime:]))
	e.UpdatedDate = Date(le.Uint16(record[offEntryWriteDate:]))
	e.FirstCluster = uint32(le.Uint16(record[offEntryClusterHI:]))<<16 | uint32(le.Uint16(record[offEntryClusterLO:]))
	e.Size = le.Uint32(record[offEntryFileSize:])

	return e, nil
}

// deletedName decodes the name of a deleted record whose first byte was
// overwritten by the marker. The lost byte is shown as '?'. If it was the
// lead byte of a double-byte character, the orphaned trail byte is dropped.
func deletedName(rest []byte) (string, error) {
	decoded, err := decodeName(trimPadding(rest), PolicyReplace)
	if err != nil {
		return "", err
	}
	return "?" + strings.TrimLeft(decoded, string(utf8.RuneError)), nil
}
