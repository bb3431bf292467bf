package fatreader

import (
	"bytes"
	"encoding/binary"
	"errors"
	"reflect"
	"testing"
)

func TestClassifyFATType(t *testing.T) {
	tests := []struct {
		clusters uint32
		want     FATType
	}{
		{0, FAT12},
		{1, FAT12},
		{4085, FAT12},
		{4086, FAT16},
		{65525, FAT16},
		{65526, FAT32},
		{0x0FFFFFF5, FAT32},
	}
	for _, tt := range tests {
		if got := ClassifyFATType(tt.clusters); got != tt.want {
			t.Errorf("ClassifyFATType(%d) = %v, want %v", tt.clusters, got, tt.want)
		}
	}
}

func TestFATType_String(t *testing.T) {
	tests := []struct {
		t    FATType
		want string
	}{
		{FAT12, "FAT12"},
		{FAT16, "FAT16"},
		{FAT32, "FAT32"},
		{FATType(7), "FATType(7)"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("FATType.String() = %v, want %v", got, tt.want)
		}
	}
}

func TestComputeRegion(t *testing.T) {
	fat16 := testGeometry{
		bytesPerSector:    512,
		sectorsPerCluster: 4,
		reservedSectors:   4,
		fatCount:          2,
		rootEntryCount:    512,
		totalSectors32:    204800,
		media:             0xF8,
		sectorsPerFAT16:   200,
	}
	oddRoot := floppyGeometry()
	oddRoot.rootEntryCount = 17

	tests := []struct {
		name string
		g    testGeometry
		want Region
	}{
		{
			name: "FAT12 floppy",
			g:    floppyGeometry(),
			want: Region{
				FATStartSector:     1,
				FATSectorSize:      18,
				RootDirStartSector: 19,
				RootDirSectorSize:  14,
				DataStartSector:    33,
				DataSectorSize:     2847,
				FATType:            FAT12,
				SectorSize:         512,
				SectorsPerCluster:  1,
				ClusterCount:       2847,
			},
		},
		{
			name: "FAT16 with 32 bit total sectors",
			g:    fat16,
			want: Region{
				FATStartSector:     4,
				FATSectorSize:      400,
				RootDirStartSector: 404,
				RootDirSectorSize:  32,
				DataStartSector:    436,
				DataSectorSize:     204364,
				FATType:            FAT16,
				SectorSize:         512,
				SectorsPerCluster:  4,
				ClusterCount:       51091,
			},
		},
		{
			name: "FAT32",
			g:    fat32Geometry(),
			want: Region{
				FATStartSector:     32,
				FATSectorSize:      2018,
				RootDirStartSector: 2050,
				RootDirSectorSize:  0,
				DataStartSector:    2050,
				DataSectorSize:     129022,
				FATType:            FAT32,
				SectorSize:         512,
				SectorsPerCluster:  1,
				ClusterCount:       129022,
			},
		},
		{
			name: "root directory rounded up",
			g:    oddRoot,
			want: Region{
				FATStartSector:     1,
				FATSectorSize:      18,
				RootDirStartSector: 19,
				RootDirSectorSize:  2,
				DataStartSector:    21,
				DataSectorSize:     2859,
				FATType:            FAT12,
				SectorSize:         512,
				SectorsPerCluster:  1,
				ClusterCount:       2859,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bs, err := NewBootSector(tt.g.bootSector())
			if err != nil {
				t.Fatal(err)
			}
			got, err := ComputeRegion(bs)
			if err != nil {
				t.Fatalf("ComputeRegion() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ComputeRegion() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeRegion_InvalidGeometry(t *testing.T) {
	tests := []struct {
		name   string
		modify func(b []byte)
	}{
		{name: "zero sectors per cluster", modify: func(b []byte) { b[0x0D] = 0 }},
		{name: "zero bytes per sector", modify: func(b []byte) { binary.LittleEndian.PutUint16(b[0x0B:], 0) }},
		{name: "data behind the end", modify: func(b []byte) { binary.LittleEndian.PutUint16(b[0x13:], 20) }},
		{name: "FAT overflows 32 bits", modify: func(b []byte) {
			binary.LittleEndian.PutUint16(b[0x16:], 0)
			binary.LittleEndian.PutUint32(b[0x24:], 0xFFFFFFFF)
			b[0x10] = 0xFF
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := floppyGeometry().bootSector()
			tt.modify(b)
			bs, _ := NewBootSector(b)

			got, err := ComputeRegion(bs)
			if !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("ComputeRegion() error = %v, wantErr %v", err, ErrInvalidGeometry)
			}
			if got != (Region{}) {
				t.Errorf("ComputeRegion() = %+v, want empty region", got)
			}
		})
	}
}

func TestRegion_RootDirOffset(t *testing.T) {
	g := floppyGeometry()
	g.reservedSectors = 3
	g.fatCount = 1
	g.sectorsPerFAT16 = 5

	// Build the image by hand: reserved sectors, FAT and then a marker at the root directory.
	img := make([]byte, 2880*512)
	copy(img, g.bootSector())
	rootStart := (3 + 1*5) * 512
	marker := testEntry("MARKER", "TXT", AttrArchive, 1)
	copy(img[rootStart:], marker)

	bs, _ := NewBootSector(img)
	region, err := ComputeRegion(bs)
	if err != nil {
		t.Fatal(err)
	}

	if got := region.RootDirOffset(); got != int64(rootStart) {
		t.Errorf("Region.RootDirOffset() = %v, want %v", got, rootStart)
	}
	if got := int64(region.RootDirStartSector) * int64(region.SectorSize); !bytes.Equal(img[got:got+DirEntrySize], marker) {
		t.Errorf("Region.RootDirStartSector does not address the root directory")
	}
	if got := region.RootDirLength(); got != 14*512 {
		t.Errorf("Region.RootDirLength() = %v, want %v", got, 14*512)
	}
	if got := region.FATOffset(); got != 3*512 {
		t.Errorf("Region.FATOffset() = %v, want %v", got, 3*512)
	}
	if got := region.DataOffset(); got != int64(rootStart)+14*512 {
		t.Errorf("Region.DataOffset() = %v, want %v", got, int64(rootStart)+14*512)
	}
	if got := region.ClusterSize(); got != 512 {
		t.Errorf("Region.ClusterSize() = %v, want %v", got, 512)
	}
}
