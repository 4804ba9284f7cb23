package host

import (
	"fmt"
	"os"
	osexec "os/exec"
	"runtime"

	"github.com/atotto/clipboard"
)

// SystemClipboard writes to the OS pasteboard.
type SystemClipboard struct{}

// WriteText places text on the system clipboard as plain text.
func (SystemClipboard) WriteText(text string) error {
	return clipboard.WriteAll(text)
}

// SystemWorkspace implements Workspace with the platform's opener command.
type SystemWorkspace struct{}

// Reveal highlights path in the platform file browser.
func (SystemWorkspace) Reveal(path string) error {
	var cmd *osexec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = osexec.Command("open", "-R", path)
	case "windows":
		cmd = osexec.Command("explorer", "/select,", path)
	default:
		// No portable "select in file manager"; open the parent instead.
		cmd = osexec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("reveal %s: %w", path, err)
	}
	return nil
}

// OpenWithEditor opens path with the named editor application. An empty
// name falls back to the platform default opener.
func (SystemWorkspace) OpenWithEditor(path, editor string) error {
	var cmd *osexec.Cmd
	switch {
	case editor != "" && runtime.GOOS == "darwin":
		cmd = osexec.Command("open", "-a", editor, path)
	case editor != "":
		cmd = osexec.Command(editor, path)
	case runtime.GOOS == "darwin":
		cmd = osexec.Command("open", path)
	default:
		cmd = osexec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}

// TerminalBeeper rings the terminal bell.
type TerminalBeeper struct{}

// Beep writes BEL to stderr.
func (TerminalBeeper) Beep() {
	fmt.Fprint(os.Stderr, "\a")
}
