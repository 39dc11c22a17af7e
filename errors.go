package fat16

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// These errors describe the failure kinds of the decoding pipeline.
// They are always decorated by a checkpoint, so use errors.Is to check for them.
var (
	// ErrIO means the backing image could not be opened or read.
	ErrIO = errors.New("image i/o failed")
	// ErrFormat means the boot sector or a fixed size structure is invalid or truncated.
	ErrFormat = errors.New("invalid FAT16 format")
	// ErrNotFound means a name is not present in the directory.
	ErrNotFound = fmt.Errorf("file not found: %w", os.ErrNotExist)
	// ErrNotAFile means a name resolved to a directory where a file was expected.
	ErrNotAFile = fmt.Errorf("not a regular file: %w", syscall.EISDIR)
	// ErrReadOnly is returned by every operation which would modify the image.
	ErrReadOnly = fmt.Errorf("the FAT16 volume is read-only: %w", syscall.EROFS)

	// ErrChain is the parent of all cluster chain errors.
	ErrChain = errors.New("invalid cluster chain")
	// ErrOutOfRange means a cluster number is outside of the FAT or the data region.
	ErrOutOfRange = fmt.Errorf("%w: cluster out of range", ErrChain)
	// ErrCorruptChain means a chain references a free, bad or reserved cluster,
	// or ends before the file size is covered.
	ErrCorruptChain = fmt.Errorf("%w: corrupt chain", ErrChain)
	// ErrCycleDetected means a chain visits the same cluster twice.
	ErrCycleDetected = fmt.Errorf("%w: cycle detected", ErrChain)
	// ErrChainTooLong means a chain exceeds the configured maximum length.
	ErrChainTooLong = fmt.Errorf("%w: chain too long", ErrChain)
)

// ChainError carries the cluster at which a chain operation failed.
type ChainError struct {
	// Kind is one of ErrOutOfRange, ErrCorruptChain, ErrCycleDetected or ErrChainTooLong.
	Kind    error
	Cluster uint16
}

func (e *ChainError) Error() string {
	return fmt.Sprintf("%v at cluster %d", e.Kind, e.Cluster)
}

func (e *ChainError) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

func chainError(kind error, cluster uint16) error {
	return &ChainError{Kind: kind, Cluster: cluster}
}
