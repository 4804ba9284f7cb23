package script

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vellum-editor/vellum/internal/script/shortcut"
)

// EventType identifies an application lifecycle notification a script can
// declare a handler for.
type EventType int

const (
	// EventDocumentOpened fires after a document is opened.
	EventDocumentOpened EventType = iota

	// EventDocumentSaved fires after a document is saved.
	EventDocumentSaved
)

// Name returns the external handler name.
func (e EventType) Name() string {
	switch e {
	case EventDocumentOpened:
		return "document opened"
	case EventDocumentSaved:
		return "document saved"
	default:
		return ""
	}
}

// eventTypeNames maps recognized handler names from bundle metadata.
// Unrecognized names are silently dropped.
var eventTypeNames = map[string]EventType{
	"document opened": EventDocumentOpened,
	"document saved":  EventDocumentSaved,
}

// Descriptor is the derived, read-only view of one script location.
// Descriptors are built once per directory scan, never mutated, and
// rebuilt from scratch on rescan.
type Descriptor struct {
	// Location is the script file or bundle path.
	Location string

	// DisplayName is the filename with its extension and any ordering
	// and shortcut components removed.
	DisplayName string

	// Ordering is the manual menu position, nil if the filename carries
	// no ordering prefix.
	Ordering *int

	// Shortcut is the keyboard shortcut, shortcut.None if the filename
	// carries no valid shortcut suffix.
	Shortcut shortcut.Shortcut

	// Bindings are the event handlers declared in bundle metadata, empty
	// for non-bundle locations.
	Bindings []EventType

	// Kind classifies how the script executes.
	Kind Kind
}

// HandlesEvent reports whether the script declared a handler for ev.
func (d *Descriptor) HandlesEvent(ev EventType) bool {
	for _, b := range d.Bindings {
		if b == ev {
			return true
		}
	}
	return false
}

// BuildDescriptor derives a descriptor from a location without reading
// script content. It never fails: malformed name components degrade to
// "no ordering" and "no shortcut".
//
// The passes run in a fixed order over the working name: extension strip,
// then shortcut-suffix extraction, then ordering-prefix extraction. The
// order matters; they are deliberately two independent scans rather than
// one grammar.
func BuildDescriptor(location string) *Descriptor {
	base := filepath.Base(location)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)

	// Shortcut pass: the next extension-shaped component is only stripped
	// when it parses to a real shortcut (at least one modifier).
	sc := shortcut.None
	if sfx := filepath.Ext(name); sfx != "" {
		if parsed := shortcut.Parse(sfx[1:]); !parsed.IsNone() {
			sc = parsed
			name = strings.TrimSuffix(name, sfx)
		}
	}

	// Ordering pass: a leading decimal integer immediately followed by a
	// closing parenthesis, e.g. "3)Title".
	var ordering *int
	digits := 0
	for digits < len(name) && name[digits] >= '0' && name[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits < len(name) && name[digits] == ')' {
		if n, err := strconv.Atoi(name[:digits]); err == nil {
			ordering = &n
			name = name[digits+1:]
		}
	}

	return &Descriptor{
		Location:    location,
		DisplayName: name,
		Ordering:    ordering,
		Shortcut:    sc,
		Bindings:    readBundleBindings(location),
		Kind:        KindForExtension(strings.TrimPrefix(ext, ".")),
	}
}
