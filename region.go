package fatreader

import (
	"fmt"
	"math"

	"github.com/tamurashingo/fat-image-reader/checkpoint"
)

// FATType is the FAT variant of a volume.
type FATType uint8

const (
	FAT12 FATType = iota
	FAT16
	FAT32
)

func (t FATType) String() string {
	switch t {
	case FAT12:
		return "FAT12"
	case FAT16:
		return "FAT16"
	case FAT32:
		return "FAT32"
	default:
		return fmt.Sprintf("FATType(%d)", uint8(t))
	}
}

// Cluster count limits of FAT12 and FAT16.
const (
	maxFAT12Clusters = 4085
	maxFAT16Clusters = 65525
)

// ClassifyFATType determines the FAT variant from the count of data clusters.
// This is the only valid way to determine it.
func ClassifyFATType(clusterCount uint32) FATType {
	switch {
	case clusterCount <= maxFAT12Clusters:
		return FAT12
	case clusterCount <= maxFAT16Clusters:
		return FAT16
	default:
		return FAT32
	}
}

// Region describes where the FATs, the root directory and the data area are located.
// All positions and sizes are counted in sectors.
type Region struct {
	FATStartSector uint32
	FATSectorSize  uint32

	RootDirStartSector uint32
	RootDirSectorSize  uint32

	DataStartSector uint32
	DataSectorSize  uint32

	FATType FATType

	// SectorSize is the size of a sector in bytes.
	SectorSize        uint32
	SectorsPerCluster uint32
	ClusterCount      uint32
}

// ComputeRegion derives the Region from the boot sector.
// It fails with ErrInvalidGeometry if the fields contradict each other.
func ComputeRegion(bs *BootSector) (Region, error) {
	sectorSize := uint64(bs.BytesPerSector())
	if sectorSize == 0 {
		return Region{}, checkpoint.Wrap(fmt.Errorf("bytes per sector is 0"), ErrInvalidGeometry)
	}
	sectorsPerCluster := uint64(bs.SectorsPerCluster())
	if sectorsPerCluster == 0 {
		return Region{}, checkpoint.Wrap(fmt.Errorf("sectors per cluster is 0"), ErrInvalidGeometry)
	}

	fatStart := uint64(bs.ReservedSectors())
	fatSize := uint64(bs.SectorsPerFAT()) * uint64(bs.FATCount())
	rootStart := fatStart + fatSize
	// Round up, a partially used sector still belongs to the root directory.
	rootSize := (DirEntrySize*uint64(bs.RootEntryCount()) + sectorSize - 1) / sectorSize
	dataStart := rootStart + rootSize
	total := uint64(bs.TotalSectors())

	if dataStart > math.MaxUint32 {
		return Region{}, checkpoint.Wrap(fmt.Errorf("data area starts at sector %d which does not fit into 32 bits", dataStart), ErrInvalidGeometry)
	}
	if dataStart > total {
		return Region{}, checkpoint.Wrap(fmt.Errorf("data area starts at sector %d behind the last sector %d", dataStart, total), ErrInvalidGeometry)
	}

	dataSize := total - dataStart
	clusterCount := dataSize / sectorsPerCluster

	return Region{
		FATStartSector:     uint32(fatStart),
		FATSectorSize:      uint32(fatSize),
		RootDirStartSector: uint32(rootStart),
		RootDirSectorSize:  uint32(rootSize),
		DataStartSector:    uint32(dataStart),
		DataSectorSize:     uint32(dataSize),
		FATType:            ClassifyFATType(uint32(clusterCount)),
		SectorSize:         uint32(sectorSize),
		SectorsPerCluster:  uint32(sectorsPerCluster),
		ClusterCount:       uint32(clusterCount),
	}, nil
}

// RootDirOffset is the byte offset of the root directory area.
func (r Region) RootDirOffset() int64 {
	return int64(r.RootDirStartSector) * int64(r.SectorSize)
}

// RootDirLength is the byte length of the root directory area.
func (r Region) RootDirLength() int64 {
	return int64(r.RootDirSectorSize) * int64(r.SectorSize)
}

// FATOffset is the byte offset of the first FAT.
func (r Region) FATOffset() int64 {
	return int64(r.FATStartSector) * int64(r.SectorSize)
}

// DataOffset is the byte offset of the data area, which starts with cluster 2.
func (r Region) DataOffset() int64 {
	return int64(r.DataStartSector) * int64(r.SectorSize)
}

// ClusterSize is the size of a cluster in bytes.
func (r Region) ClusterSize() int64 {
	return int64(r.SectorsPerCluster) * int64(r.SectorSize)
}
