// Package shortcut represents keyboard shortcuts derived from encoded
// script filename suffixes.
//
// A script named "Do Thing.@$d.sh" carries the encoded suffix "@$d":
// single-character modifier codes followed by the key equivalent. The
// suffix is only a shortcut specification when at least one modifier code
// is present; a bare key is not a shortcut and leaves the filename alone.
package shortcut

import "strings"

// Modifier represents keyboard modifier keys as a bitmask.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModCtrl indicates the Control key.
	ModCtrl Modifier = 1 << iota

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModShift indicates the Shift key.
	ModShift

	// ModMeta indicates the Meta key (Cmd on macOS, Win on Windows).
	ModMeta
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// String returns a human-readable representation like "Ctrl+Shift".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	if m.Has(ModMeta) {
		parts = append(parts, "Meta")
	}
	return strings.Join(parts, "+")
}

// modifierCodes maps encoded suffix characters to modifiers.
var modifierCodes = map[rune]Modifier{
	'^': ModCtrl,
	'~': ModAlt,
	'$': ModShift,
	'@': ModMeta,
}

// codeOrder renders modifiers back into suffix form in canonical order.
var codeOrder = []struct {
	mod  Modifier
	code rune
}{
	{ModCtrl, '^'},
	{ModAlt, '~'},
	{ModShift, '$'},
	{ModMeta, '@'},
}

// ModifierFromCode returns the Modifier for an encoded suffix character.
// Returns ModNone if the character is not a modifier code.
func ModifierFromCode(c rune) Modifier {
	if m, ok := modifierCodes[c]; ok {
		return m
	}
	return ModNone
}
