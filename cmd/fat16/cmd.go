package main

import (
	"fmt"

	"github.com/aligator/fat16"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	flagVerboseName        = "verbose"
	flagConfigName         = "config"
	flagMaxChainLengthName = "max-chain-length"
)

var maxChainLength int

// registerVolumeFlags adds the flags which change how an image is read.
func registerVolumeFlags(fs *pflag.FlagSet) {
	fs.IntVar(&maxChainLength,
		flagMaxChainLengthName,
		0,
		`maximum number of clusters in a chain, 0 allows as many clusters as the FAT has entries`)
}

func newCmd() *cobra.Command {
	var (
		flagQuiet   bool
		flagVerbose int
		flagConfig  string
	)
	cmd := &cobra.Command{
		Use:               "fat16",
		Short:             "inspect FAT16 disk images",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := readConfig(flagConfig, cmd.Flag(flagConfigName).Changed); err != nil {
				return err
			}

			if cmd.Flag(flagMaxChainLengthName).Changed {
				if maxChainLength < 0 {
					return fmt.Errorf("%s must not be negative", flagMaxChainLengthName)
				}
				Config.MaxChainLength = maxChainLength
			}

			verboseSet := cmd.Flag(flagVerboseName).Changed
			if !verboseSet && Config.Verbose != nil {
				flagVerbose = *Config.Verbose
				verboseSet = true
			}

			// Set up logging
			return SetupLogging(flagQuiet, flagVerbose, verboseSet)
		},
	}

	cmd.AddCommand(catCmd())
	cmd.AddCommand(chainCmd())
	cmd.AddCommand(infoCmd())
	cmd.AddCommand(lsCmd())

	cmd.PersistentFlags().StringVar(&flagConfig, flagConfigName, defaultConfigPath(), "Path of the YAML config file")
	cmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Quiet execution")
	cmd.PersistentFlags().IntVarP(&flagVerbose, flagVerboseName, "v", 1, "Verbosity of logging: 0 = quiet, 1 = info, 2 = debug. Default is info. Setting it explicitly will create structured logging lines.")
	registerVolumeFlags(cmd.PersistentFlags())

	return cmd
}

// openVolume opens an image with the global configuration applied.
func openVolume(path string) (*fat16.Volume, error) {
	v, err := fat16.OpenVolume(path,
		fat16.WithFs(afero.NewReadOnlyFs(appFs)),
		fat16.WithLogger(log.StandardLogger()),
		fat16.WithChainLimit(Config.MaxChainLength),
	)
	if err != nil {
		return nil, err
	}
	log.WithField("image", path).Debug("opened volume")
	return v, nil
}
