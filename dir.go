package fat16

import (
	"fmt"
	"strings"
	"time"

	"github.com/aligator/fat16/checkpoint"
	"github.com/sirupsen/logrus"
)

// DirEntry is a resolved directory entry: the short entry together with
// the long filename reassembled from the fragments preceding it.
type DirEntry struct {
	EntryHeader
	// LongName is empty if the entry has no (valid) long filename.
	LongName string
	// ShortName is the 8.3 name formatted as NAME.EXT.
	ShortName string
	// Offset is the position of the short entry inside the directory data.
	Offset int64
}

// Name returns the long filename if there is one, the 8.3 name otherwise.
func (e DirEntry) Name() string {
	if e.LongName != "" {
		return e.LongName
	}
	return e.ShortName
}

// Label returns the 11 byte name without padding and without a dot,
// which is how volume labels are stored.
func (e DirEntry) Label() string {
	return decodeOEM(strings.TrimRight(string(e.EntryHeader.Name[:]), " "))
}

// FirstCluster returns the first cluster of the entry's data.
// FAT16 only uses the low half, the high half is ignored.
func (e DirEntry) FirstCluster() uint16 {
	return e.FirstClusterLO
}

// Size returns the file size in bytes. Directories have a size of 0.
func (e DirEntry) Size() int64 {
	return int64(e.FileSize)
}

func (e DirEntry) Attributes() Attr {
	return e.Attribute
}

func (e DirEntry) IsDir() bool {
	return e.Attribute.Has(AttrDirectory)
}

// IsVolumeLabel reports if the entry only holds the volume label.
func (e DirEntry) IsVolumeLabel() bool {
	return e.Attribute.Has(AttrVolumeID) && !e.Attribute.Has(AttrDirectory)
}

// ModTime returns the last write time.
func (e DirEntry) ModTime() time.Time {
	return ParseDateTime(e.WriteDate, e.WriteTime)
}

// CreatedAt returns the creation time including the tenth-of-second field.
func (e DirEntry) CreatedAt() time.Time {
	t := ParseDateTime(e.CreateDate, e.CreateTime)
	if t.IsZero() || e.CreateTimeTenth > 199 {
		return t
	}
	return t.Add(time.Duration(e.CreateTimeTenth) * 10 * time.Millisecond)
}

// AccessedAt returns the last access date, FAT does not store a time for it.
func (e DirEntry) AccessedAt() time.Time {
	return ParseDate(e.LastAccessDate)
}

// DirectoryReader iterates the 32 byte records of a directory.
// Entries are decoded one at a time on each call to Next:
//
//	r := vol.RootEntries()
//	for r.Next() {
//		e := r.Entry()
//	}
//	if err := r.Err(); err != nil {
//		...
//	}
//
// The records are never modified, so Reset may be used to iterate again.
type DirectoryReader struct {
	data []byte
	log  logrus.FieldLogger

	pos   int
	done  bool
	entry DirEntry
	err   error
	lfn   longNameSet
}

// NewDirectoryReader creates a reader over raw directory data, for example the
// root directory region or the concatenated clusters of a subdirectory.
func NewDirectoryReader(data []byte) *DirectoryReader {
	return newDirectoryReader(data, logrus.StandardLogger())
}

func newDirectoryReader(data []byte, log logrus.FieldLogger) *DirectoryReader {
	return &DirectoryReader{
		data: data,
		log:  log,
	}
}

// Reset starts the iteration from the first record again.
func (r *DirectoryReader) Reset() {
	r.pos = 0
	r.done = false
	r.entry = DirEntry{}
	r.err = nil
	r.lfn.reset()
}

// Next advances to the next entry. It returns false at the end marker,
// at the end of the data or if an error occurred.
func (r *DirectoryReader) Next() bool {
	if r.done {
		return false
	}

	for r.pos+directoryEntrySize <= len(r.data) {
		record := r.data[r.pos : r.pos+directoryEntrySize]
		offset := r.pos
		r.pos += directoryEntrySize

		switch {
		case record[dirName] == entryEndMarker:
			r.done = true
			r.dropLongName(offset, "end marker")
			return false
		case record[dirName] == entryDeletedMarker:
			r.dropLongName(offset, "deleted entry")
			continue
		case Attr(record[dirAttribute]).IsLongName():
			if err := r.lfn.add(decodeLongFilenameEntry(record)); err != nil {
				r.log.WithFields(logrus.Fields{
					"offset": offset,
					"error":  err,
				}).Debug("skipping long filename fragment")
			}
			continue
		}

		header := decodeEntryHeader(record)
		r.entry = DirEntry{
			EntryHeader: header,
			ShortName:   ShortName(header.Name),
			Offset:      int64(offset),
		}

		if r.lfn.pending() {
			if !r.lfn.complete() {
				r.dropLongName(offset, "incomplete long filename")
			} else {
				// Some writers leave the checksum unset, so a mismatch is only reported.
				if sum := ShortNameChecksum(header.Name); r.lfn.checksum != sum {
					r.log.WithFields(logrus.Fields{
						"offset":   offset,
						"checksum": r.lfn.checksum,
						"expected": sum,
					}).Debug("long filename checksum mismatch")
				}
				r.entry.LongName = r.lfn.name()
			}
			r.lfn.reset()
		}

		return true
	}

	r.done = true
	if len(r.data)%directoryEntrySize != 0 {
		r.err = checkpoint.From(fmt.Errorf("%w: directory data of %d bytes is truncated", ErrFormat, len(r.data)))
	}
	return false
}

func (r *DirectoryReader) dropLongName(offset int, reason string) {
	if !r.lfn.pending() {
		return
	}
	r.log.WithFields(logrus.Fields{
		"offset": offset,
		"reason": reason,
	}).Debug("dropping long filename")
	r.lfn.reset()
}

// Entry returns the entry read by the last successful call to Next.
func (r *DirectoryReader) Entry() DirEntry {
	return r.entry
}

// Err returns the error which stopped the iteration, if any.
func (r *DirectoryReader) Err() error {
	return r.err
}

// Entries resets the reader and returns all entries.
func (r *DirectoryReader) Entries() ([]DirEntry, error) {
	r.Reset()
	var entries []DirEntry
	for r.Next() {
		entries = append(entries, r.Entry())
	}
	return entries, r.Err()
}

// Find resets the reader and searches an entry by name.
// The long filename is compared byte by byte. Entries without long filename
// are compared by their 8.3 name, either in the NAME.EXT form or in the
// padded 11 byte form. Volume labels never match.
// Returns ErrNotFound if there is no such entry.
func (r *DirectoryReader) Find(name string) (DirEntry, error) {
	r.Reset()
	for r.Next() {
		e := r.Entry()
		if e.IsVolumeLabel() {
			continue
		}
		if matchName(e, name) {
			return e, nil
		}
	}

	if err := r.Err(); err != nil {
		return DirEntry{}, err
	}
	return DirEntry{}, checkpoint.From(fmt.Errorf("%w: %q", ErrNotFound, name))
}

// FindFile works like Find but fails with ErrNotAFile if the name belongs to a directory.
func (r *DirectoryReader) FindFile(name string) (DirEntry, error) {
	e, err := r.Find(name)
	if err != nil {
		return DirEntry{}, err
	}
	if e.IsDir() {
		return DirEntry{}, checkpoint.From(fmt.Errorf("%w: %q", ErrNotAFile, name))
	}
	return e, nil
}

func matchName(e DirEntry, name string) bool {
	if e.LongName != "" {
		return e.LongName == name
	}
	return e.ShortName == name || string(e.EntryHeader.Name[:]) == name
}
