// Package checkpoint decorates errors with the location they passed through,
// which adds up to something similar to a stacktrace over the decoding pipeline.
// Every error attached to a checkpoint stays visible to errors.Is and errors.As.
package checkpoint

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"
)

// passThrough reports errors which must reach the caller unchanged.
// io.EOF has to be returned as io.EOF directly:
// https://github.com/golang/go/issues/39155
func passThrough(err error) bool {
	return err == io.EOF || err == io.ErrUnexpectedEOF
}

// From marks the location of the caller on err.
// It returns nil if err == nil.
func From(err error) error {
	if err == nil || passThrough(err) {
		return err
	}

	return newCheckpoint(nil, err)
}

// Wrap adds a checkpoint to prev which is further described by err.
// Returns nil if prev == nil.
//
// The usual pattern is to predefine sentinel errors and attach them to whatever
// a lower layer returned:
//
//	var ErrTruncated = errors.New("truncated image")
//
//	func readHeader() error {
//		_, err := r.ReadAt(buf, 0)
//		return checkpoint.Wrap(err, ErrTruncated)
//	}
//
// errors.Is then finds both ErrTruncated and the error returned by ReadAt.
func Wrap(prev, err error) error {
	if prev == nil || passThrough(prev) {
		return prev
	}

	return newCheckpoint(prev, err)
}

type checkpoint struct {
	err  error
	prev error

	callerOk bool
	file     string
	line     int
}

// newCheckpoint must be called directly by From or Wrap, the caller
// information is taken two frames up.
func newCheckpoint(prev, err error) *checkpoint {
	_, file, line, ok := runtime.Caller(2)
	return &checkpoint{
		err:      err,
		prev:     prev,
		callerOk: ok,
		file:     filepath.Base(file),
		line:     line,
	}
}

func (e *checkpoint) location() string {
	if !e.callerOk {
		return "File: unknown"
	}
	return fmt.Sprintf("File: %s:%d", e.file, e.line)
}

func (e *checkpoint) Error() string {
	msg := e.location()
	if e.err != nil {
		msg += "\n\t" + e.err.Error()
	}
	if e.prev == nil {
		return msg
	}

	// Use different formatting for the prev error if it was not also a checkpoint.
	prev := e.prev.Error()
	if _, ok := e.prev.(*checkpoint); !ok {
		prev = "File: unknown\n\t" + strings.ReplaceAll(prev, "\n", "\n\t")
	}
	return msg + "\n" + prev
}

func (e *checkpoint) Unwrap() error {
	if e.prev == nil {
		return e.err
	}
	return e.prev
}

func (e *checkpoint) Is(target error) bool {
	return errors.Is(e.err, target)
}

func (e *checkpoint) As(target interface{}) bool {
	return errors.As(e.err, target)
}
