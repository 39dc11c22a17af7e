package fat16

import (
	"errors"
	"unicode/utf16"
)

var (
	errLongNameOrdinal   = errors.New("long filename fragment with invalid ordinal")
	errLongNameDuplicate = errors.New("duplicate long filename fragment")
	errLongNameOrphan    = errors.New("long filename fragment without a starting fragment")
	errLongNameChecksum  = errors.New("long filename fragments with different checksums")
)

// longNameSet buffers the fragments of one long filename until the
// short entry following them is reached.
type longNameSet struct {
	fragments [maxLongNameOrdinals][]uint16
	present   [maxLongNameOrdinals]bool
	// count is the ordinal of the fragment flagged as last, 0 if none was seen yet.
	count    int
	checksum byte
}

func (s *longNameSet) reset() {
	*s = longNameSet{}
}

func (s *longNameSet) pending() bool {
	return s.count != 0
}

// add buffers a fragment. A fragment flagged as last starts a new set.
// Fragments which do not fit into the current set reset it and return an error,
// which is not fatal for the directory scan.
func (s *longNameSet) add(l LongFilenameEntry) error {
	ordinal := l.Ordinal()
	if ordinal < 1 || ordinal > maxLongNameOrdinals {
		s.reset()
		return errLongNameOrdinal
	}

	if l.IsLast() {
		s.reset()
		s.count = ordinal
		s.checksum = l.Checksum
	} else {
		switch {
		case s.count == 0:
			return errLongNameOrphan
		case ordinal > s.count:
			s.reset()
			return errLongNameOrdinal
		case s.present[ordinal-1]:
			s.reset()
			return errLongNameDuplicate
		case l.Checksum != s.checksum:
			s.reset()
			return errLongNameChecksum
		}
	}

	s.fragments[ordinal-1] = l.Units()
	s.present[ordinal-1] = true
	return nil
}

// complete reports if the last fragment and all ordinals 1..N are present.
func (s *longNameSet) complete() bool {
	if s.count == 0 {
		return false
	}
	for i := 0; i < s.count; i++ {
		if !s.present[i] {
			return false
		}
	}
	return true
}

// name reassembles the fragments in ascending ordinal order.
// Each fragment is cut at the first terminator or padding unit.
func (s *longNameSet) name() string {
	units := make([]uint16, 0, s.count*longNameUnits)
	for i := 0; i < s.count; i++ {
		for _, u := range s.fragments[i] {
			if u == 0x0000 || u == 0xFFFF {
				break
			}
			units = append(units, u)
		}
	}
	return string(utf16.Decode(units))
}
