package doc

import (
	"errors"
	"fmt"
)

// ErrCannotDelete is returned when deletion would leave a document with no
// pages. Callers should gate the action on CanDelete instead of relying on
// this error.
var ErrCannotDelete = errors.New("document must have more than one page")

// ErrClosed is returned by operations on a closed or never-loaded document.
var ErrClosed = errors.New("no document loaded")

// OpenError reports a file that the engine could not parse or read. It is
// recovered locally: the document is left empty and the message is
// surfaced for display.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// SaveError reports an I/O or encoding failure during save. Document state
// is unchanged when it occurs.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save %s: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }
