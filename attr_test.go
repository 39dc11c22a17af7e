package fat16

import "testing"

func TestAttr(t *testing.T) {
	tests := []struct {
		name         string
		a            Attr
		wantString   string
		wantLongName bool
	}{
		{name: "none", a: 0, wantString: "------"},
		{name: "archive", a: AttrArchive, wantString: "-----A"},
		{name: "hidden system directory", a: AttrHidden | AttrSystem | AttrDirectory, wantString: "-HS-D-"},
		{name: "long name", a: AttrLongName, wantString: "RHSV--", wantLongName: true},
		{name: "long name with archive bit", a: AttrLongName | AttrArchive, wantString: "RHSV-A", wantLongName: true},
		{name: "volume label", a: AttrVolumeID, wantString: "---V--"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.String(); got != tt.wantString {
				t.Errorf("Attr.String() = %v, want %v", got, tt.wantString)
			}
			if got := tt.a.IsLongName(); got != tt.wantLongName {
				t.Errorf("Attr.IsLongName() = %v, want %v", got, tt.wantLongName)
			}
		})
	}
}
