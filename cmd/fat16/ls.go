package main

import (
	"fmt"
	"io"
	"path"
	"strconv"
	"text/tabwriter"

	"github.com/aligator/fat16"
	"github.com/docker/go-units"
	"github.com/spf13/cobra"
)

func lsCmd() *cobra.Command {
	var human bool
	cmd := &cobra.Command{
		Use:   "ls IMAGE [DIR]",
		Short: "list a directory of an image",
		Long: `List a directory of an image, by default the root directory.
Every entry which is not deleted is shown, including the volume label
and the "." and ".." entries of subdirectories.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := openVolume(args[0])
			if err != nil {
				return err
			}
			defer v.Close()

			r := v.RootEntries()
			if len(args) == 2 && path.Clean("/"+args[1]) != "/" {
				dir, err := v.Stat(args[1])
				if err != nil {
					return err
				}
				if r, err = v.ReadDir(dir); err != nil {
					return err
				}
			}

			entries, err := r.Entries()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			printTableHeader(tw)
			for _, e := range entries {
				printTableRow(tw, e, human)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVarP(&human, "human-readable", "H", false, "print sizes like 1.5kB")

	return cmd
}

func printTableHeader(w io.Writer) {
	_, _ = fmt.Fprintln(w, "CLUSTER\tDATE\tTIME\tATTR\tSIZE\tSHORT NAME\tLONG NAME")
}

func printTableRow(w io.Writer, e fat16.DirEntry, human bool) {
	date, clock := "-", "-"
	if t := e.ModTime(); !t.IsZero() {
		date = t.Format("2006-01-02")
		clock = t.Format("15:04:05")
	}

	size := strconv.FormatInt(e.Size(), 10)
	if human {
		size = units.HumanSize(float64(e.Size()))
	}

	short := e.ShortName
	if e.IsVolumeLabel() {
		short = e.Label()
	}

	_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
		e.FirstCluster(), date, clock, e.Attributes(), size, short, e.LongName)
}
