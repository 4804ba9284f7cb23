package script

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			"not found uses script name",
			&Error{Kind: ErrorNotFound, Path: "/scripts/Upcase.sh"},
			`the script "Upcase.sh" does not exist`,
		},
		{
			"permission denied",
			&Error{Kind: ErrorPermissionDenied, Path: "/scripts/Upcase.sh"},
			`you do not have permission to execute the script "Upcase.sh"`,
		},
		{
			"unreadable",
			&Error{Kind: ErrorUnreadable, Path: "/scripts/Upcase.sh"},
			`the script "Upcase.sh" could not be read`,
		},
		{
			"editor launch",
			&Error{Kind: ErrorEditorLaunch, Path: "/scripts/Upcase.sh"},
			`the editor could not be opened for the script "Upcase.sh"`,
		},
		{
			"no input document",
			&Error{Kind: ErrorNoInputDocument},
			"no document to get input from",
		},
		{
			"no output document",
			&Error{Kind: ErrorNoOutputDocument},
			"no document to put output to",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorIs_MatchesByKind(t *testing.T) {
	err := fmt.Errorf("running script: %w", &Error{Kind: ErrorPermissionDenied, Path: "/s/a.sh"})

	if !errors.Is(err, ErrPermissionDenied) {
		t.Error("wrapped permission error should match ErrPermissionDenied")
	}
	if errors.Is(err, ErrScriptNotFound) {
		t.Error("permission error must not match ErrScriptNotFound")
	}

	var se *Error
	if !errors.As(err, &se) {
		t.Fatal("errors.As failed to extract *Error")
	}
	if se.Path != "/s/a.sh" {
		t.Errorf("extracted path = %q, want /s/a.sh", se.Path)
	}
}

func TestRecoverySuggestion(t *testing.T) {
	perm := &Error{Kind: ErrorPermissionDenied, Path: "x.sh"}
	if got := perm.RecoverySuggestion(); !strings.Contains(got, "execute permission") {
		t.Errorf("permission suggestion = %q, want execute-permission advice", got)
	}

	other := &Error{Kind: ErrorUnreadable, Path: "x.sh"}
	if got := other.RecoverySuggestion(); got == perm.RecoverySuggestion() {
		t.Error("permission errors should carry a distinct suggestion")
	}
}
