package dirmeta

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// Sentinel errors returned by the walk and watch APIs.
var (
	// ErrNotDirectory is returned when the walk root is not a directory.
	ErrNotDirectory = fmt.Errorf("not a directory: %w", syscall.ENOTDIR)

	// ErrPathNotSet is returned by Watch when no path was configured.
	// It wraps fs.ErrNotExist so callers can treat it as a not-found failure.
	ErrPathNotSet = fmt.Errorf("the path was not found, maybe you didn't specify it: %w", fs.ErrNotExist)

	// ErrChannelClosed is returned by Watch once the consumer closed the channel.
	ErrChannelClosed = errors.New("SENDER_CHANNEL_CLOSED")
)

// ErrorKind categorizes an I/O failure.
type ErrorKind int

const (
	KindOther ErrorKind = iota
	KindNotFound
	KindPermissionDenied
	KindNotADirectory
	KindInterrupted
)

// String returns the lower case name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not-found"
	case KindPermissionDenied:
		return "permission-denied"
	case KindNotADirectory:
		return "not-a-directory"
	case KindInterrupted:
		return "interrupted"
	default:
		return "other"
	}
}

// MarshalText lets the kind appear by name in JSON output.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// KindOf maps err onto an ErrorKind.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindOther
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission):
		return KindPermissionDenied
	case errors.Is(err, syscall.ENOTDIR):
		return KindNotADirectory
	case errors.Is(err, syscall.EINTR):
		return KindInterrupted
	default:
		return KindOther
	}
}

// TraversalError is one failure recorded while walking. It never aborts the walk.
type TraversalError struct {
	Path    string    `json:"path"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func newTraversalError(path string, err error, format string, args ...any) TraversalError {
	return TraversalError{
		Path:    path,
		Kind:    KindOf(err),
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

func (e TraversalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e TraversalError) Unwrap() error {
	return e.Err
}
