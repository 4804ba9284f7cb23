package script

import (
	"bytes"
	"context"
	"os"
	osexec "os/exec"
	"path/filepath"
	"strings"

	"github.com/vellum-editor/vellum/internal/host"
	"github.com/vellum-editor/vellum/internal/script/lua"
)

// eventRunner dispatches a structured event to a script asynchronously.
// Execution-time errors go to the console under label, never to the
// caller.
type eventRunner interface {
	Dispatch(ctx context.Context, path, label string, ev *host.Event)
}

// EventScript is the structured-event variant. Lua scripts run in-process
// through the lua engine; the AppleScript family is handed to osascript.
type EventScript struct {
	name     string
	location string
	services *Services
	runner   eventRunner
}

// newEventScript builds the variant, choosing the runner by extension.
func newEventScript(desc *Descriptor, services *Services) *EventScript {
	var runner eventRunner
	if strings.EqualFold(filepath.Ext(desc.Location), ".lua") {
		runner = lua.NewEngine(services.Documents, services.Console, services.Dispatcher)
	} else {
		runner = &osaRunner{services: services}
	}
	return &EventScript{
		name:     desc.DisplayName,
		location: desc.Location,
		services: services,
		runner:   runner,
	}
}

// Name returns the display name.
func (s *EventScript) Name() string {
	return s.name
}

// Run executes the script with no event payload.
func (s *EventScript) Run(ctx context.Context) error {
	return s.RunWithEvent(ctx, nil)
}

// RunWithEvent fails fast when the location is unreachable, then
// dispatches the event for asynchronous execution and returns.
func (s *EventScript) RunWithEvent(ctx context.Context, ev *host.Event) error {
	if _, err := os.Stat(s.location); err != nil {
		return &Error{Kind: ErrorNotFound, Path: s.location}
	}
	s.runner.Dispatch(ctx, s.location, s.name, ev)
	return nil
}

// Reveal highlights the script in the host's file browser.
func (s *EventScript) Reveal() error {
	if _, err := os.Stat(s.location); err != nil {
		return &Error{Kind: ErrorNotFound, Path: s.location}
	}
	return s.services.Workspace.Reveal(s.location)
}

// Edit opens the script with the configured editor application.
func (s *EventScript) Edit() error {
	if err := s.services.Workspace.OpenWithEditor(s.location, s.services.EditorApp); err != nil {
		return &Error{Kind: ErrorEditorLaunch, Path: s.location}
	}
	return nil
}

// osaRunner executes AppleScript-family scripts through osascript. The
// event payload is not representable on the osascript command line and is
// dropped; bundle scripts that declare handlers still run their top level.
type osaRunner struct {
	services *Services
}

// Dispatch runs osascript in the background, reporting stderr and launch
// failures to the console.
func (r *osaRunner) Dispatch(ctx context.Context, path, label string, _ *host.Event) {
	go func() {
		cmd := osexec.CommandContext(ctx, "osascript", path)
		var stderr bytes.Buffer
		cmd.Stderr = &stderr

		err := cmd.Run()
		msg := strings.TrimSpace(stderr.String())
		if msg == "" && err != nil {
			msg = err.Error()
		}
		if msg == "" {
			return
		}
		r.services.Dispatcher.Dispatch(func() {
			r.services.Console.Append(msg, label)
		})
	}()
}
