package app

import (
	"errors"
	"fmt"
)

// Item-level failures. These never abort an import pass.
var (
	// ErrMissingAttribute is returned when an item lacks a required attribute.
	ErrMissingAttribute = errors.New("missing required attribute")

	// ErrInvalidAttribute is returned when an attribute value cannot be used.
	ErrInvalidAttribute = errors.New("invalid attribute")

	// ErrFolderInvalid marks a folder rolled back for having too few children.
	ErrFolderInvalid = errors.New("folder rolled back")
)

// StructuralError reports a document shape the importer refuses to continue
// past, such as a non-shortcut item nested in a folder. It aborts the pass.
type StructuralError struct {
	Tag      string
	Line     int
	FolderID int64
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("line %d: <%s> inside folder %d: folders can contain only shortcuts", e.Line, e.Tag, e.FolderID)
}

// StreamError wraps a tokenizer or I/O failure. It aborts the pass.
type StreamError struct {
	Err error
}

func (e *StreamError) Error() string {
	return "layout stream failed: " + e.Err.Error()
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err aborted an import pass rather than failing a
// single item.
func IsFatal(err error) bool {
	var structural *StructuralError
	var stream *StreamError
	return errors.As(err, &structural) || errors.As(err, &stream)
}
