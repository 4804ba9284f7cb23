package script

import (
	"context"

	"github.com/vellum-editor/vellum/internal/encoding"
	"github.com/vellum-editor/vellum/internal/host"
)

// Variant is a runnable script built from a descriptor. The two concrete
// shapes are EventScript and SubprocessScript; there is no partially
// implemented base.
type Variant interface {
	// Name returns the display name used for console labels.
	Name() string

	// Run executes the script. Pre-flight failures return synchronously;
	// the execution itself happens off the caller's goroutine with
	// outcomes reported to the console.
	Run(ctx context.Context) error

	// RunWithEvent executes the script with an event payload. Subprocess
	// scripts ignore the event.
	RunWithEvent(ctx context.Context, ev *host.Event) error

	// Reveal highlights the script in the host's file browser.
	Reveal() error

	// Edit opens the script in its designated editor.
	Edit() error
}

// Services bundles the host collaborators a variant needs. All fields are
// injected explicitly; the subsystem holds no ambient global state.
type Services struct {
	// Documents supplies the active document.
	Documents host.DocumentProvider

	// Console receives script output and asynchronous failures.
	Console host.Console

	// Clipboard serves the Pasteboard output mode.
	Clipboard host.Clipboard

	// Workspace performs reveal and edit.
	Workspace host.Workspace

	// Beeper signals clipboard-write failure.
	Beeper host.Beeper

	// Encodings supplies candidate encodings for decoding script source.
	Encodings encoding.Provider

	// Dispatcher marshals onto the document run loop.
	Dispatcher host.Dispatcher

	// EditorApp is the application that edits event scripts. Empty means
	// the platform default.
	EditorApp string
}

// NewVariant builds the runnable variant for a descriptor. Unsupported
// descriptors yield ErrUnsupportedScript.
func NewVariant(desc *Descriptor, services *Services) (Variant, error) {
	switch desc.Kind {
	case KindEventScript:
		return newEventScript(desc, services), nil
	case KindSubprocess:
		return newSubprocessScript(desc, services), nil
	default:
		return nil, ErrUnsupportedScript
	}
}
