package shortcut

import "strings"

// Shortcut is a modifier set plus a key equivalent. The zero value is the
// canonical "no shortcut".
type Shortcut struct {
	Mods Modifier
	Key  rune
}

// None is the canonical "no shortcut" value.
var None = Shortcut{}

// IsNone reports whether s is the "no shortcut" value.
func (s Shortcut) IsNone() bool {
	return s == None
}

// String returns a readable form like "Meta+Shift+D", or "" for None.
func (s Shortcut) String() string {
	if s.IsNone() {
		return ""
	}
	return s.Mods.String() + "+" + strings.ToUpper(string(s.Key))
}

// Symbols returns the encoded suffix form like "@$d", or "" for None.
func (s Shortcut) Symbols() string {
	if s.IsNone() {
		return ""
	}
	var b strings.Builder
	for _, c := range codeOrder {
		if s.Mods.Has(c.mod) {
			b.WriteRune(c.code)
		}
	}
	b.WriteRune(s.Key)
	return b.String()
}

// Parse derives a Shortcut from an encoded filename suffix: zero or more
// modifier codes followed by exactly one key character. A suffix with no
// modifiers, an unknown modifier code, or anything but one trailing key
// character is not a shortcut specification and yields None.
func Parse(spec string) Shortcut {
	runes := []rune(spec)
	if len(runes) < 2 {
		return None
	}

	key := runes[len(runes)-1]
	var mods Modifier
	for _, c := range runes[:len(runes)-1] {
		mod := ModifierFromCode(c)
		if mod == ModNone {
			return None
		}
		mods = mods.With(mod)
	}

	if mods.IsEmpty() {
		return None
	}
	return Shortcut{Mods: mods, Key: key}
}
