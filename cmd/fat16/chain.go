package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func chainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chain IMAGE CLUSTER",
		Short: "print the cluster chain starting at CLUSTER",
		Long: `Print the cluster chain starting at CLUSTER.
CLUSTER may be given in decimal or with a 0x prefix in hex.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := strconv.ParseUint(args[1], 0, 16)
			if err != nil {
				return fmt.Errorf("invalid cluster %q: %w", args[1], err)
			}

			v, err := openVolume(args[0])
			if err != nil {
				return err
			}
			defer v.Close()

			chain, err := v.FAT().Chain(uint16(start))
			if err != nil {
				return err
			}

			parts := make([]string, len(chain))
			for i, c := range chain {
				parts[i] = strconv.Itoa(int(c))
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(parts, " -> "))
			return err
		},
	}

	return cmd
}
