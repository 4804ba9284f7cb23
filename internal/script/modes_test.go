package script

import "testing"

func TestScanInputMode(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   InputMode
		found  bool
	}{
		{
			"selection anywhere in text",
			"#!/bin/sh\n# before\n# %%%{CotEditorXInput=Selection}%%%\ncat -\n",
			InputSelection, true,
		},
		{
			"all text",
			"# %%%{CotEditorXInput=AllText}%%%",
			InputAllText, true,
		},
		{
			"absent",
			"#!/bin/sh\ncat -\n",
			0, false,
		},
		{
			"unrecognized value",
			"# %%%{CotEditorXInput=Everything}%%%",
			0, false,
		},
		{
			"output directive does not satisfy input family",
			"# %%%{CotEditorXOutput=ReplaceSelection}%%%",
			0, false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ScanInputMode(tt.source)
			if found != tt.found {
				t.Fatalf("found = %v, want %v", found, tt.found)
			}
			if found && got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScanOutputMode_AllValues(t *testing.T) {
	tests := []struct {
		value string
		want  OutputMode
	}{
		{"ReplaceSelection", OutputReplaceSelection},
		{"ReplaceAllText", OutputReplaceAllText},
		{"InsertAfterSelection", OutputInsertAfterSelection},
		{"AppendToAllText", OutputAppendToAllText},
		{"Pasteboard", OutputPasteboard},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			src := "# %%%{CotEditorXOutput=" + tt.value + "}%%%\n"
			got, found := ScanOutputMode(src)
			if !found {
				t.Fatal("directive not found")
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScanOutputMode_FirstMatchWins(t *testing.T) {
	src := "# %%%{CotEditorXOutput=Pasteboard}%%%\n# %%%{CotEditorXOutput=ReplaceAllText}%%%\n"
	got, found := ScanOutputMode(src)
	if !found || got != OutputPasteboard {
		t.Fatalf("got (%v, %v), want first match OutputPasteboard", got, found)
	}
}
