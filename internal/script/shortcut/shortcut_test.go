package shortcut

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want Shortcut
	}{
		{"meta key", "@d", Shortcut{Mods: ModMeta, Key: 'd'}},
		{"meta shift key", "@$d", Shortcut{Mods: ModMeta | ModShift, Key: 'd'}},
		{"all modifiers", "^~$@k", Shortcut{Mods: ModCtrl | ModAlt | ModShift | ModMeta, Key: 'k'}},
		{"ctrl digit", "^2", Shortcut{Mods: ModCtrl, Key: '2'}},
		{"no modifiers", "d", None},
		{"empty", "", None},
		{"bare word is not a shortcut", "txt", None},
		{"unknown modifier code", "!d", None},
		{"modifier codes without key still need one trailing key", "@", None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.spec); got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParse_TrailingModifierCodeIsKey(t *testing.T) {
	// The last rune is always the key equivalent, even when it happens to
	// be a modifier code character.
	got := Parse("@$")
	want := Shortcut{Mods: ModMeta, Key: '$'}
	if got != want {
		t.Errorf("Parse(%q) = %+v, want %+v", "@$", got, want)
	}
}

func TestShortcut_IsNone(t *testing.T) {
	if !None.IsNone() {
		t.Error("None.IsNone() = false")
	}
	if (Shortcut{Mods: ModCtrl, Key: 'a'}).IsNone() {
		t.Error("real shortcut reported as None")
	}
}

func TestShortcut_String(t *testing.T) {
	s := Shortcut{Mods: ModMeta | ModShift, Key: 'd'}
	if got := s.String(); got != "Shift+Meta+D" {
		t.Errorf("String() = %q, want %q", got, "Shift+Meta+D")
	}
	if got := None.String(); got != "" {
		t.Errorf("None.String() = %q, want empty", got)
	}
}

func TestShortcut_SymbolsRoundTrip(t *testing.T) {
	tests := []string{"@d", "^~k", "$@x"}
	for _, spec := range tests {
		s := Parse(spec)
		if s.IsNone() {
			t.Fatalf("Parse(%q) unexpectedly None", spec)
		}
		if got := Parse(s.Symbols()); got != s {
			t.Errorf("round trip of %q: got %+v, want %+v", spec, got, s)
		}
	}
}

func TestModifier_String(t *testing.T) {
	if got := (ModCtrl | ModMeta).String(); got != "Ctrl+Meta" {
		t.Errorf("String() = %q, want %q", got, "Ctrl+Meta")
	}
	if got := ModNone.String(); got != "" {
		t.Errorf("ModNone.String() = %q, want empty", got)
	}
}
