package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func catCmd() *cobra.Command {
	var offset, length int64
	cmd := &cobra.Command{
		Use:   "cat IMAGE NAME",
		Short: "write the content of a file to stdout",
		Long: `Write the content of a file to stdout.
NAME is resolved from the root directory, subdirectories are separated by "/".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if offset < 0 {
				return fmt.Errorf("offset must not be negative")
			}

			v, err := openVolume(args[0])
			if err != nil {
				return err
			}
			defer v.Close()

			f, err := v.Open(args[1])
			if err != nil {
				return err
			}
			defer f.Close()

			if _, err := f.Seek(offset, io.SeekStart); err != nil {
				return err
			}

			var r io.Reader = f
			if length >= 0 {
				r = io.LimitReader(f, length)
			}
			_, err = io.Copy(cmd.OutOrStdout(), r)
			return err
		},
	}
	cmd.Flags().Int64Var(&offset, "offset", 0, "first byte to print")
	cmd.Flags().Int64Var(&length, "length", -1, "number of bytes to print, -1 prints up to the end")

	return cmd
}
