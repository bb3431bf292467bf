package fatreader

import (
	"encoding/binary"
	"testing"
)

// testGeometry describes the boot sector of a synthesized test image.
type testGeometry struct {
	oemName           string
	bytesPerSector    uint16
	sectorsPerCluster uint8
	reservedSectors   uint16
	fatCount          uint8
	rootEntryCount    uint16
	totalSectors16    uint16
	totalSectors32    uint32
	media             uint8
	sectorsPerFAT16   uint16
	sectorsPerFAT32   uint32
	label             string
}

// floppyGeometry is a 1.44 MB FAT12 floppy.
func floppyGeometry() testGeometry {
	return testGeometry{
		oemName:           "MSDOS5.0",
		bytesPerSector:    512,
		sectorsPerCluster: 1,
		reservedSectors:   1,
		fatCount:          2,
		rootEntryCount:    224,
		totalSectors16:    2880,
		media:             0xF0,
		sectorsPerFAT16:   9,
		label:             "TESTDISK",
	}
}

// fat32Geometry is a 64 MB FAT32 volume.
func fat32Geometry() testGeometry {
	return testGeometry{
		oemName:           "mkfs.fat",
		bytesPerSector:    512,
		sectorsPerCluster: 1,
		reservedSectors:   32,
		fatCount:          2,
		rootEntryCount:    0,
		totalSectors32:    131072,
		media:             0xF8,
		sectorsPerFAT32:   1009,
		label:             "BIGDISK",
	}
}

func (g testGeometry) bootSector() []byte {
	b := make([]byte, BootSectorSize)
	le := binary.LittleEndian

	copy(b[0:3], []byte{0xEB, 0x3C, 0x90})
	copy(b[3:11], g.oemName)
	le.PutUint16(b[0x0B:], g.bytesPerSector)
	b[0x0D] = g.sectorsPerCluster
	le.PutUint16(b[0x0E:], g.reservedSectors)
	b[0x10] = g.fatCount
	le.PutUint16(b[0x11:], g.rootEntryCount)
	le.PutUint16(b[0x13:], g.totalSectors16)
	b[0x15] = g.media
	le.PutUint16(b[0x16:], g.sectorsPerFAT16)
	le.PutUint16(b[0x18:], 18)
	le.PutUint16(b[0x1A:], 2)
	le.PutUint32(b[0x1C:], 0)
	le.PutUint32(b[0x20:], g.totalSectors32)

	if g.sectorsPerFAT16 == 0 {
		le.PutUint32(b[0x24:], g.sectorsPerFAT32)
		le.PutUint32(b[0x2C:], 2)
		le.PutUint32(b[0x43:], 0x1234ABCD)
		copy(b[0x47:0x52], padRight(g.label, 11))
		copy(b[0x52:0x5A], "FAT32   ")
	} else {
		le.PutUint32(b[0x27:], 0x1234ABCD)
		copy(b[0x2B:0x36], padRight(g.label, 11))
		copy(b[0x36:0x3E], "FAT12   ")
	}

	le.PutUint16(b[0x1FE:], BootSignature)
	return b
}

func padRight(s string, n int) []byte {
	b := []byte(s)
	for len(b) < n {
		b = append(b, ' ')
	}
	return b[:n]
}

// testEntry creates a 32 byte directory record.
// Created: 2005-04-01 12:34:56, updated: 2021-12-24 08:15:30.
func testEntry(name, ext string, attr Attribute, size uint32) []byte {
	return testRawEntry(padRight(name, 8), padRight(ext, 3), attr, size)
}

func testRawEntry(name, ext []byte, attr Attribute, size uint32) []byte {
	b := make([]byte, DirEntrySize)
	le := binary.LittleEndian

	copy(b[0:8], name)
	copy(b[8:11], ext)
	b[0x0B] = byte(attr)
	b[0x0D] = 100
	le.PutUint16(b[0x0E:], 0x645C)
	le.PutUint16(b[0x10:], 0x3281)
	le.PutUint16(b[0x12:], 0x3281)
	le.PutUint16(b[0x14:], 0x0001)
	le.PutUint16(b[0x16:], 0x41EF)
	le.PutUint16(b[0x18:], 0x5398)
	le.PutUint16(b[0x1A:], 0x0005)
	le.PutUint32(b[0x1C:], size)
	return b
}

// testLongNameSlot creates a VFAT long filename slot.
func testLongNameSlot() []byte {
	b := make([]byte, DirEntrySize)
	b[0] = 0x41
	// "ab" in UTF-16 followed by garbage which is invalid Shift_JIS.
	copy(b[1:11], []byte{'a', 0, 'b', 0, 0, 0, 0xFF, 0xFF, 0xFF, 0xFF})
	b[0x0B] = byte(AttrLongName)
	return b
}

func joinRecords(records ...[]byte) []byte {
	var out []byte
	for _, r := range records {
		out = append(out, r...)
	}
	return out
}

// testImage builds a complete image of g with the given root directory records.
func testImage(t *testing.T, g testGeometry, records ...[]byte) []byte {
	t.Helper()

	total := uint32(g.totalSectors16)
	if total == 0 {
		total = g.totalSectors32
	}
	img := make([]byte, int(total)*int(g.bytesPerSector))
	copy(img, g.bootSector())

	bs, err := NewBootSector(img)
	if err != nil {
		t.Fatalf("NewBootSector() error = %v", err)
	}
	region, err := ComputeRegion(bs)
	if err != nil {
		t.Fatalf("ComputeRegion() error = %v", err)
	}

	root := joinRecords(records...)
	if int64(len(root)) > region.RootDirLength() {
		t.Fatalf("%d records do not fit into the root directory", len(records))
	}
	copy(img[region.RootDirOffset():], root)

	return img
}
