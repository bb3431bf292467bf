package fatreader

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/tamurashingo/fat-image-reader/checkpoint"
)

// BootSector interprets the start of an image as the FAT boot sector (BPB).
// All fields are read from the backing buffer on access. The buffer is at
// least BootSectorSize bytes long, which is checked once on construction.
type BootSector struct {
	buf []byte
}

// NewBootSector wraps b as boot sector. b must contain at least BootSectorSize bytes.
// The buffer is not copied, so it must not be modified afterwards.
func NewBootSector(b []byte) (*BootSector, error) {
	if len(b) < BootSectorSize {
		return nil, checkpoint.Wrap(fmt.Errorf("got %d bytes, need %d", len(b), BootSectorSize), ErrTruncatedImage)
	}
	return &BootSector{buf: b}, nil
}

// ReadBootSector seeks r to the start and reads the boot sector from there.
func ReadBootSector(r io.ReadSeeker) (*BootSector, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, checkpoint.From(err)
	}

	buf := make([]byte, BootSectorSize)
	n, err := io.ReadFull(r, buf)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return nil, checkpoint.Wrap(fmt.Errorf("got %d bytes, need %d", n, BootSectorSize), ErrTruncatedImage)
	}
	if err != nil {
		return nil, checkpoint.From(err)
	}

	return NewBootSector(buf)
}

// ReadBootSectorFrom reads the boot sector from the start of src.
func ReadBootSectorFrom(src Source) (*BootSector, error) {
	buf, err := src.ReadExact(0, BootSectorSize)
	if err != nil {
		return nil, checkpoint.From(err)
	}
	return NewBootSector(buf)
}

func (b *BootSector) u8(off int) uint8 {
	return b.buf[off]
}

func (b *BootSector) u16(off int) uint16 {
	return binary.LittleEndian.Uint16(b.buf[off:])
}

func (b *BootSector) u32(off int) uint32 {
	return binary.LittleEndian.Uint32(b.buf[off:])
}

// Bytes returns the raw boot sector.
func (b *BootSector) Bytes() []byte {
	return b.buf[:BootSectorSize]
}

// JumpBoot returns the jump instruction at the very beginning.
func (b *BootSector) JumpBoot() [3]byte {
	var jmp [3]byte
	copy(jmp[:], b.buf[offJumpBoot:])
	return jmp
}

// OEMName returns the first six bytes of the OEM name field.
func (b *BootSector) OEMName() string {
	return string(b.buf[offOEMName : offOEMName+oemNameLength])
}

// RawOEMName returns the whole 8 byte OEM name field.
func (b *BootSector) RawOEMName() [8]byte {
	var name [8]byte
	copy(name[:], b.buf[offOEMName:])
	return name
}

func (b *BootSector) BytesPerSector() uint16 {
	return b.u16(offBytesPerSector)
}

func (b *BootSector) SectorsPerCluster() uint8 {
	return b.u8(offSectorsPerCluster)
}

func (b *BootSector) ReservedSectors() uint16 {
	return b.u16(offReservedSectors)
}

// FATCount is almost always 2.
func (b *BootSector) FATCount() uint8 {
	return b.u8(offNumFATs)
}

// RootEntryCount is 0 on FAT32.
func (b *BootSector) RootEntryCount() uint16 {
	return b.u16(offRootEntryCount)
}

// TotalSectors uses the 32 bit field only if the 16 bit field is 0.
func (b *BootSector) TotalSectors() uint32 {
	if total := b.u16(offTotalSectors16); total != 0 {
		return uint32(total)
	}
	return b.u32(offTotalSectors32)
}

func (b *BootSector) MediaDescriptor() uint8 {
	return b.u8(offMedia)
}

// SectorsPerFAT uses the 32 bit field only if the 16 bit field is 0.
func (b *BootSector) SectorsPerFAT() uint32 {
	if size := b.u16(offFATSize16); size != 0 {
		return uint32(size)
	}
	return b.u32(offFATSize32)
}

func (b *BootSector) SectorsPerTrack() uint16 {
	return b.u16(offSectorsPerTrack)
}

func (b *BootSector) NumberOfHeads() uint16 {
	return b.u16(offNumberOfHeads)
}

func (b *BootSector) HiddenSectors() uint32 {
	return b.u32(offHiddenSectors)
}

// Signature should be BootSignature.
func (b *BootSector) Signature() uint16 {
	return b.u16(offSignature)
}

// fat32Layout reports whether the extended BPB uses the FAT32 layout.
// That is the case if the 16 bit sectors per FAT field is 0.
func (b *BootSector) fat32Layout() bool {
	return b.u16(offFATSize16) == 0
}

func (b *BootSector) VolumeID() uint32 {
	if b.fat32Layout() {
		return b.u32(offVolumeID32)
	}
	return b.u32(offVolumeID16)
}

// VolumeLabel returns the label of the extended BPB without the space padding.
func (b *BootSector) VolumeLabel() string {
	off := offVolumeLabel16
	if b.fat32Layout() {
		off = offVolumeLabel32
	}
	return strings.TrimRight(string(b.buf[off:off+11]), " \x00")
}

// FileSystemType returns the informational type string, e.g. "FAT12".
// Do not use it to determine the FAT type, use Region.FATType instead.
func (b *BootSector) FileSystemType() string {
	off := offFileSystemType16
	if b.fat32Layout() {
		off = offFileSystemType32
	}
	return strings.TrimRight(string(b.buf[off:off+8]), " \x00")
}

// ReservedAreaSize is the size of the reserved area in bytes.
func (b *BootSector) ReservedAreaSize() uint32 {
	return uint32(b.BytesPerSector()) * uint32(b.ReservedSectors())
}

// ReservedRange returns the half-open byte range [start, end) of the reserved sectors.
func (b *BootSector) ReservedRange() (start, end int64) {
	return 0, int64(b.ReservedAreaSize())
}

// ReservedArea returns the reserved sectors from the backing buffer.
// It fails with ErrTruncatedImage if the buffer does not reach that far,
// which is the case for a bare 512 byte boot sector with more than one reserved sector.
func (b *BootSector) ReservedArea() ([]byte, error) {
	start, end := b.ReservedRange()
	if end > int64(len(b.buf)) {
		return nil, checkpoint.Wrap(fmt.Errorf("reserved area ends at %d, buffer has %d bytes", end, len(b.buf)), ErrTruncatedImage)
	}
	return b.buf[start:end], nil
}

func isPowerOfTwo(v uint32) bool {
	return v != 0 && v&(v-1) == 0
}

// Validate checks if the boot sector looks like a FAT boot sector.
// All failures wrap ErrInvalidGeometry.
func (b *BootSector) Validate() error {
	// Check for valid jump instructions
	jmp := b.JumpBoot()
	if !(jmp[0] == 0xEB && jmp[2] == 0x90) && jmp[0] != 0xE9 {
		return checkpoint.Wrap(fmt.Errorf("no valid jump instructions at the beginning: % x", jmp), ErrInvalidGeometry)
	}

	// FAT only supports 512, 1024, 2048 and 4096
	bps := uint32(b.BytesPerSector())
	if !isPowerOfTwo(bps) || bps < 512 || bps > 4096 {
		return checkpoint.Wrap(fmt.Errorf("invalid sector size %d", bps), ErrInvalidGeometry)
	}

	// Sectors per cluster has to be a power of two and greater than 0.
	// Also the whole cluster size should not be more than 32K.
	spc := uint32(b.SectorsPerCluster())
	if !isPowerOfTwo(spc) || bps*spc > 32*1024 {
		return checkpoint.Wrap(fmt.Errorf("invalid sectors per cluster %d", spc), ErrInvalidGeometry)
	}

	// Typically 1 for FAT12 and FAT16 and 32 for FAT32.
	if b.ReservedSectors() == 0 {
		return checkpoint.Wrap(fmt.Errorf("invalid reserved sector count 0"), ErrInvalidGeometry)
	}

	if b.FATCount() == 0 {
		return checkpoint.Wrap(fmt.Errorf("invalid FAT count 0"), ErrInvalidGeometry)
	}

	// Valid values are 0xF0 and 0xF8 to 0xFF.
	if media := b.MediaDescriptor(); media != 0xF0 && media < 0xF8 {
		return checkpoint.Wrap(fmt.Errorf("invalid media value 0x%02X", media), ErrInvalidGeometry)
	}

	if b.TotalSectors() == 0 {
		return checkpoint.Wrap(fmt.Errorf("invalid total sector count 0"), ErrInvalidGeometry)
	}

	return nil
}
