package fat16

import (
	"fmt"

	"github.com/aligator/fat16/checkpoint"
)

// ClusterOffset returns the byte offset of the first byte of the given data cluster.
// Cluster numbering starts at 2, clusters 0 and 1 are reserved and have no data.
// Returns ErrOutOfRange for clusters outside of the data region.
func (g Geometry) ClusterOffset(cluster uint16) (int64, error) {
	if cluster < firstDataCluster || uint32(cluster) >= g.ClusterLimit() {
		return 0, checkpoint.From(chainError(ErrOutOfRange, cluster))
	}

	return g.DataRegionOffset + int64(cluster-firstDataCluster)*g.ClusterSize, nil
}

// RootDirectoryOffset returns the byte offset of the fixed root directory region.
func (g Geometry) RootDirectoryOffset() int64 {
	return g.RootDirOffset
}

// FATOffset returns the byte offset of the FAT copy with the given index.
func (g Geometry) FATOffset(index int) (int64, error) {
	if index < 0 || index >= int(g.NumberOfFATs) {
		return 0, checkpoint.From(fmt.Errorf("%w: FAT index %d, the volume has %d FATs", ErrOutOfRange, index, g.NumberOfFATs))
	}

	return g.FATRegionOffset + int64(index)*g.FATSize(), nil
}

// SectorOffset returns the byte offset of an absolute sector.
func (g Geometry) SectorOffset(sector uint32) int64 {
	return int64(sector) * int64(g.BytesPerSector)
}
