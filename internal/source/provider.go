package source

import (
	"errors"
	"fmt"
)

// Op identifies the step at which a source failed.
type Op int

const (
	// OpOpen means the path could not be opened for reading.
	OpOpen Op = iota
	// OpIsDirectory means the path names a directory.
	OpIsDirectory
	// OpRead means reading failed after the source was opened.
	OpRead
)

func (o Op) String() string {
	switch o {
	case OpOpen:
		return "open"
	case OpIsDirectory:
		return "is directory"
	case OpRead:
		return "read"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// ErrIsDirectory is wrapped by errors for sources naming a directory.
var ErrIsDirectory = errors.New("is a directory")

// Error reports a failure to open or read a source.
type Error struct {
	Op   Op
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Op {
	case OpIsDirectory:
		return fmt.Sprintf("'%s' is a directory.", e.Path)
	case OpRead:
		return fmt.Sprintf("reading '%s': %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("'%s': %v", e.Path, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsOp reports whether err is a source Error for the given step.
func IsOp(err error, op Op) bool {
	var serr *Error
	return errors.As(err, &serr) && serr.Op == op
}
