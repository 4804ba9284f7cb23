package script

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	osexec "os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/sys/unix"

	"github.com/vellum-editor/vellum/internal/encoding"
	"github.com/vellum-editor/vellum/internal/host"
)

// SubprocessScript is the POSIX-subprocess variant. The script file runs
// directly (its shebang picks the interpreter) with stdin, stdout, and
// stderr mediated to the active document and the console.
type SubprocessScript struct {
	name     string
	location string
	services *Services

	// content is loaded and decoded lazily on first need.
	content    string
	contentErr error
	loadOnce   sync.Once

	// active tracks in-flight run IDs.
	active sync.Map
}

// newSubprocessScript builds the variant. No file content is touched yet.
func newSubprocessScript(desc *Descriptor, services *Services) *SubprocessScript {
	return &SubprocessScript{
		name:     desc.DisplayName,
		location: desc.Location,
		services: services,
	}
}

// Name returns the display name.
func (s *SubprocessScript) Name() string {
	return s.name
}

// Reveal highlights the script in the host's file browser.
func (s *SubprocessScript) Reveal() error {
	if _, err := os.Stat(s.location); err != nil {
		return &Error{Kind: ErrorNotFound, Path: s.location}
	}
	return s.services.Workspace.Reveal(s.location)
}

// Edit opens the script in the host application itself.
func (s *SubprocessScript) Edit() error {
	if err := s.services.Workspace.OpenWithEditor(s.location, ""); err != nil {
		return &Error{Kind: ErrorEditorLaunch, Path: s.location}
	}
	return nil
}

// source loads and decodes the script content, caching the result.
func (s *SubprocessScript) source() (string, error) {
	s.loadOnce.Do(func() {
		data, err := os.ReadFile(s.location)
		if err != nil {
			s.contentErr = &Error{Kind: ErrorUnreadable, Path: s.location}
			return
		}
		text, err := encoding.Decode(data, s.services.Encodings.CandidateEncodings())
		if err != nil || len(strings.TrimSpace(text)) == 0 {
			s.contentErr = &Error{Kind: ErrorUnreadable, Path: s.location}
			return
		}
		s.content = text
	})
	return s.content, s.contentErr
}

// RunWithEvent executes the script; the event payload has no meaning for
// subprocess scripts and is ignored.
func (s *SubprocessScript) RunWithEvent(ctx context.Context, _ *host.Event) error {
	return s.Run(ctx)
}

// Run performs the pre-flight checks synchronously, spawns the subprocess,
// and returns. Everything after the spawn happens on background
// goroutines; completion outcomes go to the console.
//
// Pre-flight order is fixed: reachability, then execute permission, then
// decodability. Each failure short-circuits the rest.
func (s *SubprocessScript) Run(ctx context.Context) error {
	if _, err := os.Stat(s.location); err != nil {
		return &Error{Kind: ErrorNotFound, Path: s.location}
	}
	if err := unix.Access(s.location, unix.X_OK); err != nil {
		return &Error{Kind: ErrorPermissionDenied, Path: s.location}
	}
	src, err := s.source()
	if err != nil {
		return err
	}

	inputMode, hasInput := ScanInputMode(src)
	outputMode, hasOutput := ScanOutputMode(src)

	// Gather input text and the document's backing path on the run loop.
	var (
		input   string
		noDoc   bool
		docPath string
		hasPath bool
	)
	host.Call(s.services.Dispatcher, func() {
		doc := s.services.Documents.ActiveDocument()
		if doc == nil {
			noDoc = true
			return
		}
		docPath, hasPath = doc.Path()
		if hasInput {
			switch inputMode {
			case InputSelection:
				input = doc.SelectedText()
			case InputAllText:
				input = doc.FullText()
			}
		}
	})

	if hasInput && noDoc {
		// Post-decision failures never interrupt the user; report and
		// stop before spawning anything.
		inputErr := &Error{Kind: ErrorNoInputDocument, Path: s.location}
		s.services.Dispatcher.Dispatch(func() {
			s.services.Console.Append(inputErr.Error(), s.name)
		})
		return nil
	}

	var args []string
	if hasPath {
		args = append(args, docPath)
	}

	cmd := osexec.CommandContext(ctx, s.location, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}

	x := &execution{
		id:         uuid.NewString(),
		name:       s.name,
		location:   s.location,
		services:   s.services,
		cmd:        cmd,
		outputMode: outputMode,
		hasOutput:  hasOutput,
		ctx:        ctx,
	}
	s.active.Store(x.id, x)
	x.onDone = func() { s.active.Delete(x.id) }
	if err := x.start(input, hasInput); err != nil {
		s.active.Delete(x.id)
		return err
	}
	return nil
}

// ActiveRuns returns the IDs of runs that have not yet completed.
func (s *SubprocessScript) ActiveRuns() []string {
	var ids []string
	s.active.Range(func(key, _ any) bool {
		ids = append(ids, key.(string))
		return true
	})
	return ids
}

// execution owns the pipe and process state for exactly one run. A fresh
// run gets a fresh execution; nothing here is shared across runs.
type execution struct {
	id       string
	name     string
	location string
	services *Services
	cmd      *osexec.Cmd
	ctx      context.Context

	outputMode OutputMode
	hasOutput  bool

	stdout bytes.Buffer
	stderr bytes.Buffer

	// cancelled suppresses output application once the process is known
	// to have been cancelled by the user.
	cancelled atomic.Bool

	// onDone runs after finish, whatever the outcome.
	onDone func()
}

// start wires the three pipes, launches the process, and arranges the
// asynchronous completion handling. Only launch failures are returned.
func (x *execution) start(input string, hasInput bool) error {
	stdin, err := x.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := x.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := x.cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}

	if err := x.cmd.Start(); err != nil {
		return fmt.Errorf("launching %s: %w", x.location, err)
	}

	// Input writing and output reading are independent pipes; each gets
	// its own goroutine so neither blocks the other.
	go func() {
		if hasInput {
			_, _ = io.WriteString(stdin, input)
		}
		_ = stdin.Close()
	}()

	var pipes sync.WaitGroup
	pipes.Add(2)
	go func() {
		defer pipes.Done()
		if x.hasOutput {
			_, _ = io.Copy(&x.stdout, stdout)
		} else {
			// No output directive: drain and discard so the child never
			// blocks on a full pipe.
			_, _ = io.Copy(io.Discard, stdout)
		}
	}()
	go func() {
		defer pipes.Done()
		_, _ = io.Copy(&x.stderr, stderr)
	}()

	go func() {
		pipes.Wait()
		x.finish(x.cmd.Wait())
		if x.onDone != nil {
			x.onDone()
		}
	}()
	return nil
}

// finish runs once the process has exited and both output pipes are
// drained. Ordering: cancellation state first, then stderr reporting,
// then output application.
func (x *execution) finish(waitErr error) {
	if x.userCancelled(waitErr) {
		x.cancelled.Store(true)
		return
	}

	if msg := strings.TrimSpace(x.stderr.String()); msg != "" {
		x.services.Dispatcher.Dispatch(func() {
			x.services.Console.Append(msg, x.name)
		})
	}

	if !x.hasOutput {
		return
	}
	text := x.stdout.String()
	x.services.Dispatcher.Dispatch(func() {
		if x.cancelled.Load() {
			return
		}
		applyScriptOutput(x.services, x.outputMode, text, x.name)
	})
}

// userCancelled recognizes the out-of-band "cancelled by user" condition:
// a cancelled context, or the process dying to an interactive kill signal.
func (x *execution) userCancelled(waitErr error) bool {
	if x.ctx.Err() != nil {
		return true
	}
	var exitErr *osexec.ExitError
	if !errors.As(waitErr, &exitErr) {
		return false
	}
	status, ok := exitErr.Sys().(syscall.WaitStatus)
	if !ok || !status.Signaled() {
		return false
	}
	sig := status.Signal()
	return sig == syscall.SIGTERM || sig == syscall.SIGINT
}

// applyScriptOutput applies captured output to the document per mode.
// Must run on the document run loop. Failures go to the console; by the
// time output exists there is no caller left to return an error to.
func applyScriptOutput(services *Services, mode OutputMode, text, label string) {
	if mode == OutputPasteboard {
		// Clipboard output needs no document. A failed write is signaled
		// audibly rather than raised.
		if err := services.Clipboard.WriteText(text); err != nil {
			services.Beeper.Beep()
		}
		return
	}

	doc := services.Documents.ActiveDocument()
	if doc == nil {
		outErr := &Error{Kind: ErrorNoOutputDocument}
		services.Console.Append(outErr.Error(), label)
		return
	}

	switch mode {
	case OutputReplaceSelection:
		doc.Insert(text)
	case OutputReplaceAllText:
		doc.ReplaceAll(text)
	case OutputInsertAfterSelection:
		doc.InsertAfterSelection(text)
	case OutputAppendToAllText:
		doc.Append(text)
	}
}
