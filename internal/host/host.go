package host

// Document is the narrow view of an open text document that scripts may
// read from and write to. Implementations are only ever touched on the
// document run loop.
type Document interface {
	// SelectedText returns the current selection, empty if none.
	SelectedText() string

	// FullText returns the entire document text.
	FullText() string

	// Insert replaces the current selection with text (or inserts at the
	// caret when the selection is empty).
	Insert(text string)

	// InsertAfterSelection inserts text immediately after the current
	// selection without replacing it.
	InsertAfterSelection(text string)

	// ReplaceAll replaces the entire document text.
	ReplaceAll(text string)

	// Append appends text at the end of the document.
	Append(text string)

	// Path returns the backing file path, if the document has one.
	Path() (string, bool)
}

// DocumentProvider supplies the active document.
type DocumentProvider interface {
	// ActiveDocument returns the frontmost document, or nil if none.
	ActiveDocument() Document
}

// Console is the script console surface. Messages are grouped under a
// source label, normally the script's display name.
type Console interface {
	Append(message, source string)
}

// Clipboard writes plain text to the system pasteboard.
type Clipboard interface {
	WriteText(text string) error
}

// Workspace performs host-environment file operations.
type Workspace interface {
	// Reveal highlights the path in the host's file browser.
	Reveal(path string) error

	// OpenWithEditor opens the path with the named editor application.
	// An empty editor name means the host application itself.
	OpenWithEditor(path, editor string) error
}

// Beeper emits an audible signal. Used instead of an error when a
// clipboard write fails.
type Beeper interface {
	Beep()
}

// Event is an application-level notification forwarded to event scripts,
// such as a document being opened or saved.
type Event struct {
	// Name is the handler name, e.g. "document opened".
	Name string

	// Payload carries optional event parameters.
	Payload map[string]any
}

// NewEvent creates an event with the given handler name and payload. A
// nil payload is fine for events that carry no parameters.
func NewEvent(name string, payload map[string]any) *Event {
	return &Event{Name: name, Payload: payload}
}
