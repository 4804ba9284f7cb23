package script

import (
	"errors"
	"fmt"
	"path/filepath"
)

// ErrUnsupportedScript is returned when a descriptor's kind has no
// runnable variant.
var ErrUnsupportedScript = errors.New("script type is not supported")

// ErrorKind classifies recoverable script failures.
type ErrorKind int

const (
	// ErrorNotFound: the script location is unreachable.
	ErrorNotFound ErrorKind = iota

	// ErrorPermissionDenied: the current user may not execute the script.
	ErrorPermissionDenied

	// ErrorUnreadable: the script content could not be decoded to text.
	ErrorUnreadable

	// ErrorEditorLaunch: the host refused to open the script for editing.
	ErrorEditorLaunch

	// ErrorNoInputDocument: an input directive is present but no document
	// is open to read from.
	ErrorNoInputDocument

	// ErrorNoOutputDocument: an output directive is present but no
	// document is open to write to.
	ErrorNoOutputDocument
)

// Kind sentinels for errors.Is checks.
var (
	ErrScriptNotFound     = &Error{Kind: ErrorNotFound}
	ErrPermissionDenied   = &Error{Kind: ErrorPermissionDenied}
	ErrUnreadable         = &Error{Kind: ErrorUnreadable}
	ErrEditorLaunchFailed = &Error{Kind: ErrorEditorLaunch}
	ErrNoInputDocument    = &Error{Kind: ErrorNoInputDocument}
	ErrNoOutputDocument   = &Error{Kind: ErrorNoOutputDocument}
)

// Error is a recoverable script failure carrying enough context to render
// a user-facing message. None of these are fatal to the host; all are
// recoverable at single-run granularity.
type Error struct {
	Kind ErrorKind
	Path string
}

// Error returns the human-readable description.
func (e *Error) Error() string {
	name := filepath.Base(e.Path)
	switch e.Kind {
	case ErrorNotFound:
		return fmt.Sprintf("the script %q does not exist", name)
	case ErrorPermissionDenied:
		return fmt.Sprintf("you do not have permission to execute the script %q", name)
	case ErrorUnreadable:
		return fmt.Sprintf("the script %q could not be read", name)
	case ErrorEditorLaunch:
		return fmt.Sprintf("the editor could not be opened for the script %q", name)
	case ErrorNoInputDocument:
		return "no document to get input from"
	case ErrorNoOutputDocument:
		return "no document to put output to"
	default:
		return fmt.Sprintf("script error for %q", name)
	}
}

// RecoverySuggestion returns advice the host may show alongside the
// description.
func (e *Error) RecoverySuggestion() string {
	if e.Kind == ErrorPermissionDenied {
		return "Check the script's execute permission."
	}
	return "Check the script file."
}

// Is matches by kind, so errors.Is(err, ErrPermissionDenied) works for any
// permission error regardless of path.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
