package fat16

import (
	"errors"
	"testing"
)

func testGeometry(t *testing.T) Geometry {
	t.Helper()
	g, err := ParseGeometry(testBootSector(nil))
	if err != nil {
		t.Fatalf("ParseGeometry() error = %v", err)
	}
	return g
}

func TestGeometry_ClusterOffset(t *testing.T) {
	g := testGeometry(t)

	tests := []struct {
		name        string
		cluster     uint16
		want        int64
		wantErr     error
		wantCluster uint16
	}{
		{
			name:    "first data cluster is the data region",
			cluster: 2,
			want:    3584,
		},
		{
			name:    "next cluster",
			cluster: 3,
			want:    3584 + 512,
		},
		{
			name:    "last cluster",
			cluster: 129,
			want:    3584 + 127*512,
		},
		{
			name:        "cluster 0 is reserved",
			cluster:     0,
			wantErr:     ErrOutOfRange,
			wantCluster: 0,
		},
		{
			name:        "cluster 1 is reserved",
			cluster:     1,
			wantErr:     ErrOutOfRange,
			wantCluster: 1,
		},
		{
			name:        "behind the data region",
			cluster:     130,
			wantErr:     ErrOutOfRange,
			wantCluster: 130,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.ClusterOffset(tt.cluster)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Geometry.ClusterOffset() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("Geometry.ClusterOffset() = %v, want %v", got, tt.want)
			}

			if tt.wantErr != nil {
				var chainErr *ChainError
				if !errors.As(err, &chainErr) {
					t.Fatalf("Geometry.ClusterOffset() error = %v is no ChainError", err)
				}
				if chainErr.Cluster != tt.wantCluster {
					t.Errorf("ChainError.Cluster = %v, want %v", chainErr.Cluster, tt.wantCluster)
				}
			}
		})
	}
}

func TestGeometry_FATOffset(t *testing.T) {
	g := testGeometry(t)

	tests := []struct {
		name    string
		index   int
		want    int64
		wantErr error
	}{
		{name: "first FAT", index: 0, want: 512},
		{name: "second FAT", index: 1, want: 1024},
		{name: "no third FAT", index: 2, wantErr: ErrOutOfRange},
		{name: "negative", index: -1, wantErr: ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.FATOffset(tt.index)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Geometry.FATOffset() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("Geometry.FATOffset() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGeometry_offsets(t *testing.T) {
	g := testGeometry(t)

	if got := g.RootDirectoryOffset(); got != 1536 {
		t.Errorf("Geometry.RootDirectoryOffset() = %v, want 1536", got)
	}
	if got := g.SectorOffset(7); got != 3584 {
		t.Errorf("Geometry.SectorOffset() = %v, want 3584", got)
	}
	if got := g.ClusterLimit(); got != 130 {
		t.Errorf("Geometry.ClusterLimit() = %v, want 130", got)
	}
	if got := g.FATSize(); got != 512 {
		t.Errorf("Geometry.FATSize() = %v, want 512", got)
	}
}
