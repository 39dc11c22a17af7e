package fat16

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/aligator/fat16/checkpoint"
)

// Special FAT16 entry values.
const (
	fatFree          = 0x0000
	fatReservedLow   = 0x0001
	fatReservedFirst = 0xFFF0
	fatReservedLast  = 0xFFF6
	fatBad           = 0xFFF7
	fatEndOfChain    = 0xFFF8
)

// LinkKind classifies a FAT entry.
type LinkKind uint8

const (
	// LinkNext means the entry points to the next cluster of the chain.
	LinkNext LinkKind = iota
	// LinkEndOfChain means the cluster is the last one of its chain.
	LinkEndOfChain
	// LinkBad means the cluster is marked as bad.
	LinkBad
	// LinkFree means the cluster is not allocated.
	LinkFree
	// LinkReserved means the entry holds a reserved value.
	LinkReserved
)

func (k LinkKind) String() string {
	switch k {
	case LinkNext:
		return "next"
	case LinkEndOfChain:
		return "end of chain"
	case LinkBad:
		return "bad"
	case LinkFree:
		return "free"
	case LinkReserved:
		return "reserved"
	}
	return fmt.Sprintf("LinkKind(%d)", uint8(k))
}

// ClusterLink is the decoded value of a single FAT entry.
// Cluster is only meaningful if Kind is LinkNext.
type ClusterLink struct {
	Kind    LinkKind
	Cluster uint16
}

func classifyEntry(value uint16) ClusterLink {
	switch {
	case value == fatFree:
		return ClusterLink{Kind: LinkFree}
	case value == fatReservedLow:
		return ClusterLink{Kind: LinkReserved}
	case value >= fatEndOfChain:
		return ClusterLink{Kind: LinkEndOfChain}
	case value == fatBad:
		return ClusterLink{Kind: LinkBad}
	case value >= fatReservedFirst && value <= fatReservedLast:
		return ClusterLink{Kind: LinkReserved}
	}
	return ClusterLink{Kind: LinkNext, Cluster: value}
}

// ChainOption configures the chain walk of a FatTable.
type ChainOption func(t *FatTable)

// WithMaxChainLength limits the number of clusters a single chain may have.
// A longer chain fails with ErrChainTooLong. Values <= 0 keep the default,
// which is the number of FAT entries.
func WithMaxChainLength(n int) ChainOption {
	return func(t *FatTable) {
		if n > 0 {
			t.maxChainLength = n
		}
	}
}

// FatTable is an in-memory copy of the first FAT.
// It is never modified after loading and may be shared between goroutines.
type FatTable struct {
	entries []uint16
	// limit is the first cluster number which is neither outside the FAT
	// nor outside the data region.
	limit          uint32
	maxChainLength int
}

// LoadFatTable reads the first FAT of the volume described by g.
func LoadFatTable(r io.ReaderAt, g Geometry, opts ...ChainOption) (*FatTable, error) {
	offset, err := g.FATOffset(0)
	if err != nil {
		return nil, checkpoint.From(err)
	}

	raw := make([]byte, g.FATSize())
	n, err := r.ReadAt(raw, offset)
	if n < len(raw) {
		if err == nil || err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, checkpoint.From(fmt.Errorf("%w: reading FAT at offset %d, got %d of %d bytes: %v", ErrIO, offset, n, len(raw), err))
	}

	entries := make([]uint16, len(raw)/2)
	for i := range entries {
		entries[i] = binary.LittleEndian.Uint16(raw[i*2:])
	}

	return NewFatTable(entries, g.ClusterLimit(), opts...), nil
}

// NewFatTable creates a table from already decoded entries.
// clusterLimit is the first cluster number not backed by the data region,
// 0 means that only the table size limits the cluster numbers.
func NewFatTable(entries []uint16, clusterLimit uint32, opts ...ChainOption) *FatTable {
	limit := uint32(len(entries))
	if clusterLimit != 0 && clusterLimit < limit {
		limit = clusterLimit
	}

	t := &FatTable{
		entries:        entries,
		limit:          limit,
		maxChainLength: len(entries),
	}
	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Len returns the number of entries in the table, including the two reserved ones.
func (t *FatTable) Len() int {
	return len(t.entries)
}

// Next returns the link stored for the given cluster.
func (t *FatTable) Next(cluster uint16) (ClusterLink, error) {
	if int(cluster) >= len(t.entries) {
		return ClusterLink{}, checkpoint.From(chainError(ErrOutOfRange, cluster))
	}

	return classifyEntry(t.entries[cluster]), nil
}

// Chain returns all clusters of the chain starting at start in order.
// Every call walks the FAT again.
//
// The walk fails with ErrCorruptChain on free, bad or reserved entries,
// with ErrCycleDetected if a cluster is visited twice, with ErrOutOfRange
// for cluster numbers outside of the volume and with ErrChainTooLong if
// the configured maximum length is exceeded.
func (t *FatTable) Chain(start uint16) ([]uint16, error) {
	if !t.inRange(start) {
		return nil, checkpoint.From(chainError(ErrOutOfRange, start))
	}

	visited := make([]bool, t.limit)
	var chain []uint16
	cluster := start
	for {
		if visited[cluster] {
			return nil, checkpoint.From(chainError(ErrCycleDetected, cluster))
		}
		visited[cluster] = true

		if len(chain) >= t.maxChainLength {
			return nil, checkpoint.From(chainError(ErrChainTooLong, cluster))
		}
		chain = append(chain, cluster)

		link, err := t.Next(cluster)
		if err != nil {
			return nil, err
		}

		switch link.Kind {
		case LinkEndOfChain:
			return chain, nil
		case LinkNext:
			if !t.inRange(link.Cluster) {
				return nil, checkpoint.From(chainError(ErrOutOfRange, link.Cluster))
			}
			cluster = link.Cluster
		default:
			return nil, checkpoint.From(fmt.Errorf("%w, entry is %v", chainError(ErrCorruptChain, cluster), link.Kind))
		}
	}
}

// FreeClusters counts the data clusters which are not allocated.
func (t *FatTable) FreeClusters() int {
	free := 0
	for c := uint32(firstDataCluster); c < t.limit; c++ {
		if t.entries[c] == fatFree {
			free++
		}
	}
	return free
}

func (t *FatTable) inRange(cluster uint16) bool {
	return cluster >= firstDataCluster && uint32(cluster) < t.limit
}
