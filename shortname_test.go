package fat16

import (
	"testing"

	"github.com/aligator/fat16/internal/fattest"
)

func TestShortName(t *testing.T) {
	tests := []struct {
		name string
		raw  [11]byte
		want string
	}{
		{
			name: "name with extension",
			raw:  [11]byte{'R', 'E', 'A', 'D', 'M', 'E', ' ', ' ', 'T', 'X', 'T'},
			want: "README.TXT",
		},
		{
			name: "full length",
			raw:  [11]byte{'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K'},
			want: "ABCDEFGH.IJK",
		},
		{
			name: "without extension",
			raw:  [11]byte{'N', 'O', 'E', 'X', 'T', ' ', ' ', ' ', ' ', ' ', ' '},
			want: "NOEXT",
		},
		{
			name: "short extension",
			raw:  [11]byte{'A', ' ', ' ', ' ', ' ', ' ', ' ', ' ', 'C', ' ', ' '},
			want: "A.C",
		},
		{
			name: "dot entry",
			raw:  [11]byte{'.', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' '},
			want: ".",
		},
		{
			name: "dot dot entry",
			raw:  [11]byte{'.', '.', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' '},
			want: "..",
		},
		{
			name: "0x05 stands for 0xE5",
			raw:  [11]byte{0x05, 'B', 'C', ' ', ' ', ' ', ' ', ' ', 'T', 'X', 'T'},
			want: "σBC.TXT",
		},
		{
			name: "code page 437",
			raw:  [11]byte{'C', 'A', 'F', 0x90, ' ', ' ', ' ', ' ', 'T', 'X', 'T'},
			want: "CAFÉ.TXT",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShortName(tt.raw); got != tt.want {
				t.Errorf("ShortName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShortNameChecksum(t *testing.T) {
	for _, name := range []string{"README.TXT", "HELLOW~1.TXT", "A", "LONGFI~1", "X.Y"} {
		t.Run(name, func(t *testing.T) {
			raw := fattest.Short(name)
			if got, want := ShortNameChecksum(raw), fattest.Checksum(raw); got != want {
				t.Errorf("ShortNameChecksum() = %#x, want %#x", got, want)
			}
		})
	}
}
