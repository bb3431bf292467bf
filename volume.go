package fatreader

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/tamurashingo/fat-image-reader/checkpoint"
)

// Volume is an opened FAT volume. It reads the boot sector once on Open and
// the root directory each time RootDirectory is called.
// A Volume is not modified after Open.
type Volume struct {
	src    Source
	boot   *BootSector
	region Region

	skipChecks bool
	decodeOpts DecodeOptions
	log        logrus.FieldLogger
}

// Option configures a Volume.
type Option func(v *Volume)

// WithSkipChecks skips the boot sector validation which may allow you to
// open not perfectly standard FAT filesystems. Use with caution!
// The geometry is still checked by ComputeRegion.
func WithSkipChecks() Option {
	return func(v *Volume) {
		v.skipChecks = true
	}
}

// WithDecodeOptions sets the options used to decode directory entries.
func WithDecodeOptions(opts DecodeOptions) Option {
	return func(v *Volume) {
		v.decodeOpts = opts
	}
}

// WithLogger sets the logger for debug output. By default nothing is logged.
func WithLogger(log logrus.FieldLogger) Option {
	return func(v *Volume) {
		v.log = log
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Open reads the boot sector from src and computes the region of the volume.
func Open(src Source, opts ...Option) (*Volume, error) {
	v := &Volume{
		src: src,
		log: discardLogger(),
	}
	for _, opt := range opts {
		opt(v)
	}

	boot, err := ReadBootSectorFrom(src)
	if err != nil {
		return nil, checkpoint.From(err)
	}

	if !v.skipChecks {
		if err := boot.Validate(); err != nil {
			return nil, checkpoint.From(err)
		}
	}

	region, err := ComputeRegion(boot)
	if err != nil {
		return nil, checkpoint.From(err)
	}

	v.boot = boot
	v.region = region

	v.log.WithFields(logrus.Fields{
		"oem":         boot.OEMName(),
		"type":        region.FATType,
		"sectorSize":  region.SectorSize,
		"fatStart":    region.FATStartSector,
		"rootStart":   region.RootDirStartSector,
		"rootSectors": region.RootDirSectorSize,
		"dataStart":   region.DataStartSector,
		"clusters":    region.ClusterCount,
	}).Debug("opened volume")

	return v, nil
}

func (v *Volume) BootSector() *BootSector {
	return v.boot
}

func (v *Volume) Region() Region {
	return v.region
}

func (v *Volume) FATType() FATType {
	return v.region.FATType
}

// Label returns the volume label of the boot sector.
func (v *Volume) Label() string {
	return v.boot.VolumeLabel()
}

// RootDirectory reads and decodes the root directory area.
// On FAT32 the root directory is stored in a cluster chain which is not
// supported, so ErrRootInClusterChain is returned.
func (v *Volume) RootDirectory() ([]DirectoryEntry, error) {
	if v.region.FATType == FAT32 || v.region.RootDirSectorSize == 0 {
		return nil, checkpoint.Wrap(fmt.Errorf("%v volume with %d root entries", v.region.FATType, v.boot.RootEntryCount()), ErrRootInClusterChain)
	}

	offset := v.region.RootDirOffset()
	length := v.region.RootDirLength()
	v.log.WithFields(logrus.Fields{
		"offset": offset,
		"length": length,
	}).Debug("reading root directory")

	buf, err := v.src.ReadExact(offset, int(length))
	if err != nil {
		return nil, checkpoint.From(err)
	}

	// The last sector may be only partially used by the root entries.
	if used := DirEntrySize * int(v.boot.RootEntryCount()); used < len(buf) {
		buf = buf[:used]
	}

	entries, err := DecodeDirectory(buf, v.decodeOpts)
	if err != nil {
		return nil, checkpoint.From(err)
	}

	v.log.WithField("entries", len(entries)).Debug("decoded root directory")
	return entries, nil
}
