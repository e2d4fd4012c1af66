package winamp

import (
	"errors"
	"fmt"
)

var (
	// ErrTargetNotFound is returned by Attach when no top-level window of the
	// target exists. Callers should read it as "Winamp is not running".
	ErrTargetNotFound = errors.New("target window not found")

	// ErrInvalidState is the parent of all errors raised because the session
	// or the target is in the wrong state for the requested operation.
	ErrInvalidState = errors.New("invalid state")

	// ErrDetached is returned for any operation on a detached session.
	ErrDetached = fmt.Errorf("%w: session detached", ErrInvalidState)

	// ErrNotPlaying is returned by Seek when the target is not playing.
	ErrNotPlaying = fmt.Errorf("%w: not playing", ErrInvalidState)

	// ErrInvalidArgument is returned when a value is rejected locally,
	// before anything is sent to the target.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupportedPlatform is returned by the System stub on platforms
	// without window messages.
	ErrUnsupportedPlatform = errors.New("winamp control is only supported on Windows")
)

// AttachReason classifies an attach failure.
type AttachReason int

const (
	ReasonNotFound AttachReason = iota
	ReasonOS
)

// AttachError reports a failure to resolve or open the target.
type AttachError struct {
	Title  string
	Reason AttachReason
	Err    error
}

func (e *AttachError) Error() string {
	if e.Reason == ReasonNotFound {
		return fmt.Sprintf("attach %q: %v", e.Title, ErrTargetNotFound)
	}
	return fmt.Sprintf("attach %q: %v", e.Title, e.Err)
}

func (e *AttachError) Unwrap() error {
	if e.Reason == ReasonNotFound {
		return ErrTargetNotFound
	}
	return e.Err
}

// AllocError wraps the OS error of a failed remote allocation.
type AllocError struct {
	Size int
	Err  error
}

func (e *AllocError) Error() string {
	return fmt.Sprintf("remote alloc of %d bytes failed: %v", e.Size, e.Err)
}

func (e *AllocError) Unwrap() error { return e.Err }

// FreeError wraps the OS error of a failed remote free.
type FreeError struct {
	Addr Address
	Err  error
}

func (e *FreeError) Error() string {
	return fmt.Sprintf("remote free at %s failed: %v", e.Addr, e.Err)
}

func (e *FreeError) Unwrap() error { return e.Err }

// ReadError reports a remote read that could not be satisfied.
type ReadError struct {
	Addr Address
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("remote read at %s failed: %v", e.Addr, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a remote write that could not be satisfied.
type WriteError struct {
	Addr Address
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("remote write at %s failed: %v", e.Addr, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// UnsupportedError is returned when the target answers that it cannot
// serve the request, e.g. an input plugin without extended file info.
type UnsupportedError struct {
	Op string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported by target: %s", e.Op)
}

// ReplyError carries a raw reply code the target used to signal failure.
type ReplyError struct {
	Op   string
	Code int32
}

func (e *ReplyError) Error() string {
	return fmt.Sprintf("%s failed with reply %d", e.Op, e.Code)
}

// CatalogNotFoundError is returned when a path label is missing from the
// media library tree.
type CatalogNotFoundError struct {
	Label string
}

func (e *CatalogNotFoundError) Error() string {
	return fmt.Sprintf("catalog item %q not found", e.Label)
}

// NoChildrenError is returned when descending into a catalog item that has
// no children.
type NoChildrenError struct {
	Label string
}

func (e *NoChildrenError) Error() string {
	return fmt.Sprintf("catalog item %q has no children", e.Label)
}
