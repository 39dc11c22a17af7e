package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/aligator/fat16"
	"github.com/docker/go-units"
	"github.com/spf13/cobra"
)

func infoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info IMAGE",
		Short: "show the boot sector and the usage of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := openVolume(args[0])
			if err != nil {
				return err
			}
			defer v.Close()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			printInfo(tw, v)
			return tw.Flush()
		},
	}

	return cmd
}

func printInfo(w io.Writer, v *fat16.Volume) {
	g := v.Geometry()
	free := v.FAT().FreeClusters()

	_, _ = fmt.Fprintf(w, "Label:\t%s\n", v.Label())
	_, _ = fmt.Fprintf(w, "OEM name:\t%s\n", strings.TrimSpace(g.OEMName))
	_, _ = fmt.Fprintf(w, "File system:\t%s\n", strings.TrimSpace(g.FileSystemType))
	_, _ = fmt.Fprintf(w, "Volume ID:\t%04X-%04X\n", g.VolumeID>>16, g.VolumeID&0xFFFF)
	_, _ = fmt.Fprintf(w, "Media:\t0x%02X\n", g.Media)
	_, _ = fmt.Fprintf(w, "Bytes per sector:\t%d\n", g.BytesPerSector)
	_, _ = fmt.Fprintf(w, "Sectors per cluster:\t%d\n", g.SectorsPerCluster)
	_, _ = fmt.Fprintf(w, "Cluster size:\t%s\n", units.BytesSize(float64(g.ClusterSize)))
	_, _ = fmt.Fprintf(w, "Reserved sectors:\t%d\n", g.ReservedSectorCount)
	_, _ = fmt.Fprintf(w, "FATs:\t%d\n", g.NumberOfFATs)
	_, _ = fmt.Fprintf(w, "Sectors per FAT:\t%d\n", g.FATSizeSectors)
	_, _ = fmt.Fprintf(w, "Root entries:\t%d\n", g.RootEntryCount)
	_, _ = fmt.Fprintf(w, "Total sectors:\t%d\n", g.TotalSectors)
	_, _ = fmt.Fprintf(w, "FAT offset:\t%d\n", g.FATRegionOffset)
	_, _ = fmt.Fprintf(w, "Root directory offset:\t%d\n", g.RootDirOffset)
	_, _ = fmt.Fprintf(w, "Data offset:\t%d\n", g.DataRegionOffset)
	_, _ = fmt.Fprintf(w, "Clusters:\t%d\n", g.TotalClusters)
	_, _ = fmt.Fprintf(w, "Free clusters:\t%d\n", free)
	_, _ = fmt.Fprintf(w, "Size:\t%s\n", units.BytesSize(float64(int64(g.TotalClusters)*g.ClusterSize)))
	_, _ = fmt.Fprintf(w, "Free:\t%s\n", units.BytesSize(float64(int64(free)*g.ClusterSize)))
}
