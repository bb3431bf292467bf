package main

import (
	"fmt"
	"io"
	"time"

	fatreader "github.com/tamurashingo/fat-image-reader"
)

const timeLayout = "2006-01-02 15:04:05"

func printVolume(out io.Writer, vol *fatreader.Volume) {
	bs := vol.BootSector()
	r := vol.Region()

	fmt.Fprintf(out, "OEM name:            %s\n", bs.OEMName())
	fmt.Fprintf(out, "Volume label:        %s\n", bs.VolumeLabel())
	fmt.Fprintf(out, "Bytes per sector:    %d\n", bs.BytesPerSector())
	fmt.Fprintf(out, "Sectors per cluster: %d\n", bs.SectorsPerCluster())
	fmt.Fprintf(out, "Reserved sectors:    %d\n", bs.ReservedSectors())
	fmt.Fprintf(out, "Number of FATs:      %d\n", bs.FATCount())
	fmt.Fprintf(out, "Root entries:        %d\n", bs.RootEntryCount())
	fmt.Fprintf(out, "Total sectors:       %d\n", bs.TotalSectors())
	fmt.Fprintf(out, "Media descriptor:    0x%02X\n", bs.MediaDescriptor())
	fmt.Fprintf(out, "Sectors per FAT:     %d\n", bs.SectorsPerFAT())
	fmt.Fprintf(out, "FAT type:            %v (%d clusters)\n", r.FATType, r.ClusterCount)
	fmt.Fprintf(out, "FAT region:          sector %d, %d sectors\n", r.FATStartSector, r.FATSectorSize)
	fmt.Fprintf(out, "Root region:         sector %d, %d sectors\n", r.RootDirStartSector, r.RootDirSectorSize)
	fmt.Fprintf(out, "Data region:         sector %d, %d sectors\n", r.DataStartSector, r.DataSectorSize)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(timeLayout)
}

func printEntries(out io.Writer, entries []fatreader.DirectoryEntry, deleted bool) {
	fmt.Fprintf(out, "\n%-8s %-3s %10s %-6s %-19s %-19s\n", "NAME", "EXT", "SIZE", "ATTR", "CREATED", "UPDATED")
	for _, e := range entries {
		if e.Deleted && !deleted {
			continue
		}

		mark := ""
		if e.Deleted {
			mark = " (deleted)"
		}
		fmt.Fprintf(out, "%-8s %-3s %10d %-6s %-19s %-19s%s\n",
			e.Name, e.Extension, e.Size, e.Attribute, formatTime(e.Created()), formatTime(e.Updated()), mark)
	}
}
