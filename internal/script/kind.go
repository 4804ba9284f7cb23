package script

import (
	"path/filepath"
	"strings"
)

// Kind tells how a script executes. It is a pure function of the
// location's file extension; the extension sets are disjoint and fixed.
type Kind int

const (
	// KindUnsupported scripts are listed but never runnable.
	KindUnsupported Kind = iota

	// KindEventScript scripts receive structured events.
	KindEventScript

	// KindSubprocess scripts run as child processes with piped stdio.
	KindSubprocess
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindEventScript:
		return "event"
	case KindSubprocess:
		return "subprocess"
	default:
		return "unsupported"
	}
}

var eventScriptExtensions = map[string]bool{
	"applescript": true,
	"scpt":        true,
	"scptd":       true,
	"lua":         true,
}

var subprocessExtensions = map[string]bool{
	"sh":  true,
	"pl":  true,
	"php": true,
	"rb":  true,
	"py":  true,
	"js":  true,
}

// KindForExtension classifies a file extension (without the dot,
// case-insensitive).
func KindForExtension(ext string) Kind {
	ext = strings.ToLower(ext)
	switch {
	case eventScriptExtensions[ext]:
		return KindEventScript
	case subprocessExtensions[ext]:
		return KindSubprocess
	default:
		return KindUnsupported
	}
}

// KindForLocation classifies a script location by its extension.
func KindForLocation(location string) Kind {
	return KindForExtension(strings.TrimPrefix(filepath.Ext(location), "."))
}
