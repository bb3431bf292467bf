package main

import (
	"errors"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	fatreader "github.com/tamurashingo/fat-image-reader"
)

// options are the settings of a single run.
type options struct {
	partition  int
	lossy      bool
	deleted    bool
	skipChecks bool
}

func newCmd() *cobra.Command {
	return newCmdWithFs(afero.NewOsFs())
}

func newCmdWithFs(fs afero.Fs) *cobra.Command {
	var (
		flagQuiet       bool
		flagVerbose     int
		flagVerboseName = "verbose"
		configPath      string
		opts            options
	)
	cmd := &cobra.Command{
		Use:   "fatinfo [options] IMAGE",
		Short: "print the geometry and the root directory of a FAT image",
		Long: `Print the boot sector geometry, the FAT type and the root directory
of a FAT12, FAT16 or FAT32 image.
Use --partition to read a volume of an MBR partitioned disk image.`,
		Args:              cobra.ExactArgs(1),
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := setupLogging(flagQuiet, flagVerbose, cmd.Flag(flagVerboseName).Changed); err != nil {
				return err
			}

			cfg, err := readConfig(fs, configPath, cmd.Flag("config").Changed)
			if err != nil {
				return err
			}
			if !cmd.Flag("lossy").Changed {
				opts.lossy = cfg.Lossy
			}
			if !cmd.Flag("deleted").Changed {
				opts.deleted = cfg.Deleted
			}
			if !cmd.Flag("skip-checks").Changed {
				opts.skipChecks = cfg.SkipChecks
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(fs, args[0], opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVarP(&opts.partition, "partition", "p", 0, "Number of the MBR partition holding the volume, 0 for an image without partition table")
	cmd.Flags().BoolVar(&opts.lossy, "lossy", false, "Replace invalid Shift_JIS sequences in names instead of failing")
	cmd.Flags().BoolVar(&opts.deleted, "deleted", false, "Also list deleted entries")
	cmd.Flags().BoolVar(&opts.skipChecks, "skip-checks", false, "Skip the boot sector validation to open not perfectly standard images")
	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath(), "Path of the configuration file")
	cmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "Quiet execution")
	cmd.Flags().IntVarP(&flagVerbose, flagVerboseName, "v", 1, "Verbosity of logging: 0 = quiet, 1 = info, 2 = debug, 3 = trace. Default is info. Setting it explicitly will create structured logging lines.")

	return cmd
}

// run opens the image at path and prints its information to out.
func run(fs afero.Fs, path string, opts options, out io.Writer) error {
	f, err := fatreader.OpenImage(fs, path)
	if err != nil {
		return fmt.Errorf("could not open image %q: %w", path, err)
	}
	defer f.Close()

	src := fatreader.NewSource(f)
	if opts.partition > 0 {
		offset, size, err := fatreader.PartitionOffset(f, opts.partition)
		if err != nil {
			return fmt.Errorf("could not find partition %d: %w", opts.partition, err)
		}
		log.WithFields(log.Fields{"offset": offset, "size": size}).Debugf("using partition %d", opts.partition)
		src = fatreader.NewSectionSource(f, offset, size)
	}

	volOpts := []fatreader.Option{fatreader.WithLogger(log.StandardLogger())}
	if opts.skipChecks {
		volOpts = append(volOpts, fatreader.WithSkipChecks())
	}
	if opts.lossy {
		volOpts = append(volOpts, fatreader.WithDecodeOptions(fatreader.DecodeOptions{Policy: fatreader.PolicyReplace}))
	}

	vol, err := fatreader.Open(src, volOpts...)
	if err != nil {
		return fmt.Errorf("could not open volume: %w", err)
	}

	printVolume(out, vol)

	entries, err := vol.RootDirectory()
	if errors.Is(err, fatreader.ErrRootInClusterChain) {
		log.Warnf("listing the root directory of a %v volume is not supported", vol.FATType())
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not read the root directory: %w", err)
	}

	printEntries(out, entries, opts.deleted)
	return nil
}
