// File model contains the offsets of the on-disk structures of the FAT filesystem.

package fatreader

// BootSectorSize is the size of the header read from the start of every volume.
const BootSectorSize = 512

// Boot sector (BPB) field offsets.
const (
	offJumpBoot          = 0x00
	offOEMName           = 0x03
	offBytesPerSector    = 0x0B
	offSectorsPerCluster = 0x0D
	offReservedSectors   = 0x0E
	offNumFATs           = 0x10
	offRootEntryCount    = 0x11
	offTotalSectors16    = 0x13
	offMedia             = 0x15
	offFATSize16         = 0x16
	offSectorsPerTrack   = 0x18
	offNumberOfHeads     = 0x1A
	offHiddenSectors     = 0x1C
	offTotalSectors32    = 0x20
	offFATSize32         = 0x24
	offSignature         = 0x1FE

	// Extended BPB of FAT12 and FAT16.
	offVolumeID16       = 0x27
	offVolumeLabel16    = 0x2B
	offFileSystemType16 = 0x36

	// Extended BPB of FAT32.
	offVolumeID32       = 0x43
	offVolumeLabel32    = 0x47
	offFileSystemType32 = 0x52
)

// oemNameLength is the part of the OEM name reported by OEMName.
const oemNameLength = 6

// BootSignature is stored at offset 0x1FE of a valid volume.
const BootSignature = 0xAA55

// DirEntrySize is the size of one directory record.
const DirEntrySize = 32

// Directory record field offsets.
const (
	offEntryName         = 0x00
	offEntryExtension    = 0x08
	offEntryAttribute    = 0x0B
	offEntryCreateTenths = 0x0D
	offEntryCreateTime   = 0x0E
	offEntryCreateDate   = 0x10
	offEntryAccessDate   = 0x12
	offEntryClusterHI    = 0x14
	offEntryWriteTime    = 0x16
	offEntryWriteDate    = 0x18
	offEntryClusterLO    = 0x1A
	offEntryFileSize     = 0x1C

	entryNameLength      = 8
	entryExtensionLength = 3
)

// Markers in the first byte of a directory record.
const (
	entryEndOfDirectory = 0x00
	entryDeleted        = 0xE5
	// entryKanjiE5 stands for a real 0xE5 lead byte in a live entry.
	entryKanjiE5 = 0x05
)

// Attribute is the attribute bitmask of a directory record.
type Attribute byte

const (
	AttrReadOnly    Attribute = 0x01
	AttrHidden      Attribute = 0x02
	AttrSystem      Attribute = 0x04
	AttrVolumeLabel Attribute = 0x08
	AttrDirectory   Attribute = 0x10
	AttrArchive     Attribute = 0x20

	// AttrLongName marks a VFAT long filename slot.
	AttrLongName = AttrReadOnly | AttrHidden | AttrSystem | AttrVolumeLabel
)

func (a Attribute) IsReadOnly() bool    { return a&AttrReadOnly != 0 }
func (a Attribute) IsHidden() bool      { return a&AttrHidden != 0 }
func (a Attribute) IsSystem() bool      { return a&AttrSystem != 0 }
func (a Attribute) IsVolumeLabel() bool { return a&AttrVolumeLabel != 0 }
func (a Attribute) IsDirectory() bool   { return a&AttrDirectory != 0 }
func (a Attribute) IsArchive() bool     { return a&AttrArchive != 0 }

// String returns the attributes as letters in the order RHSVDA, using '-' for unset bits.
func (a Attribute) String() string {
	letters := [...]struct {
		flag   Attribute
		letter byte
	}{
		{AttrReadOnly, 'R'},
		{AttrHidden, 'H'},
		{AttrSystem, 'S'},
		{AttrVolumeLabel, 'V'},
		{AttrDirectory, 'D'},
		{AttrArchive, 'A'},
	}

	out := make([]byte, len(letters))
	for i, l := range letters {
		out[i] = '-'
		if a&l.flag != 0 {
			out[i] = l.letter
		}
	}
	return string(out)
}
