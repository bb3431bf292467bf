package fatreader

import (
	"fmt"

	"github.com/diskfs/go-diskfs/partition/mbr"
	"github.com/spf13/afero"
	"github.com/tamurashingo/fat-image-reader/checkpoint"
)

// mbrBlockSize is the logical and physical block size assumed for MBR disk images.
const mbrBlockSize = 512

// PartitionOffset reads the MBR partition table of a disk image and returns
// the byte window of the partition with the given 1-based index.
// The window can be passed to NewSectionSource.
func PartitionOffset(f afero.File, index int) (offset, size int64, err error) {
	table, err := mbr.Read(f, mbrBlockSize, mbrBlockSize)
	if err != nil {
		return 0, 0, checkpoint.From(err)
	}

	if index < 1 || index > len(table.Partitions) {
		return 0, 0, checkpoint.Wrap(fmt.Errorf("partition %d requested, table has %d entries", index, len(table.Partitions)), ErrNoPartition)
	}

	p := table.Partitions[index-1]
	if p == nil || p.Type == mbr.Empty || p.Size == 0 {
		return 0, 0, checkpoint.Wrap(fmt.Errorf("partition %d is empty", index), ErrNoPartition)
	}

	// Start and Size are counted in logical sectors.
	blockSize := int64(table.LogicalSectorSize)
	return int64(p.Start) * blockSize, int64(p.Size) * blockSize, nil
}
