package script

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/vellum-editor/vellum/internal/host"
)

type recordingRunner struct {
	mu     sync.Mutex
	paths  []string
	labels []string
	events []*host.Event
}

func (r *recordingRunner) Dispatch(_ context.Context, path, label string, ev *host.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
	r.labels = append(r.labels, label)
	r.events = append(r.events, ev)
}

func newEventScriptFor(t *testing.T, path string, services *Services) *EventScript {
	t.Helper()
	v, err := NewVariant(BuildDescriptor(path), services)
	if err != nil {
		t.Fatal(err)
	}
	es, ok := v.(*EventScript)
	if !ok {
		t.Fatalf("got %T, want *EventScript", v)
	}
	return es
}

func TestEventScriptRun_MissingScriptFailsFast(t *testing.T) {
	services, _ := testServices(nil)
	es := newEventScriptFor(t, filepath.Join(t.TempDir(), "Gone.scpt"), services)
	runner := &recordingRunner{}
	es.runner = runner

	err := es.Run(context.Background())
	if !errors.Is(err, ErrScriptNotFound) {
		t.Fatalf("got %v, want ErrScriptNotFound", err)
	}
	if len(runner.paths) != 0 {
		t.Error("nothing should have been dispatched")
	}
}

func TestEventScriptRunWithEvent_DispatchesEvent(t *testing.T) {
	services, _ := testServices(nil)
	path := writeScript(t, t.TempDir(), "Open Hook.scpt", "-- handler\n")
	es := newEventScriptFor(t, path, services)
	runner := &recordingRunner{}
	es.runner = runner

	ev := host.NewEvent(EventDocumentOpened.Name(), map[string]any{"path": "/tmp/a.md"})
	if err := es.RunWithEvent(context.Background(), ev); err != nil {
		t.Fatal(err)
	}

	if len(runner.paths) != 1 || runner.paths[0] != path {
		t.Errorf("dispatched paths = %v, want [%s]", runner.paths, path)
	}
	if runner.labels[0] != "Open Hook" {
		t.Errorf("label = %q, want display name", runner.labels[0])
	}
	if runner.events[0] != ev {
		t.Error("event payload not forwarded")
	}
}

func TestEventScriptLua_EndToEnd(t *testing.T) {
	doc := &fakeDocument{text: "say hello", selection: "hello"}
	services, console := testServices(doc)

	path := writeScript(t, t.TempDir(), "Shout.lua", `
editor.insert(string.upper(editor.selection()))
`)
	es := newEventScriptFor(t, path, services)

	if err := es.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "lua mutation", func() bool {
		return doc.snapshot() == "say HELLO"
	})
	if msg := console.joined(); msg != "" {
		t.Errorf("console should stay empty, got %q", msg)
	}
}

func TestEventScriptLua_HandlerReceivesPayload(t *testing.T) {
	doc := &fakeDocument{}
	services, _ := testServices(doc)

	path := writeScript(t, t.TempDir(), "OnSave.lua", `
function document_saved(event)
	editor.append("saved " .. event.path)
end
`)
	es := newEventScriptFor(t, path, services)

	ev := host.NewEvent(EventDocumentSaved.Name(), map[string]any{"path": "/tmp/a.md"})
	if err := es.RunWithEvent(context.Background(), ev); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "handler invocation", func() bool {
		return doc.snapshot() == "saved /tmp/a.md"
	})
}

func TestEventScriptLua_RuntimeErrorToConsole(t *testing.T) {
	services, console := testServices(nil)

	path := writeScript(t, t.TempDir(), "Broken.lua", `error("kaput")`)
	es := newEventScriptFor(t, path, services)

	if err := es.Run(context.Background()); err != nil {
		t.Fatalf("runtime errors must not surface to the caller: %v", err)
	}
	waitFor(t, "error on console", func() bool {
		return strings.Contains(console.joined(), "kaput")
	})
	if src := console.lastSource(); src != "Broken" {
		t.Errorf("console source = %q, want script name", src)
	}
}

func TestEventScriptRevealAndEdit(t *testing.T) {
	services, _ := testServices(nil)
	services.EditorApp = "Vellum"
	workspace := services.Workspace.(*fakeWorkspace)

	path := writeScript(t, t.TempDir(), "Hook.scpt", "-- noop\n")
	es := newEventScriptFor(t, path, services)

	if err := es.Reveal(); err != nil {
		t.Fatalf("Reveal: %v", err)
	}
	if len(workspace.revealed) != 1 || workspace.revealed[0] != path {
		t.Errorf("revealed = %v, want [%s]", workspace.revealed, path)
	}

	if err := es.Edit(); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if workspace.editors[0] != "Vellum" {
		t.Errorf("editor = %q, want configured app", workspace.editors[0])
	}

	missing := newEventScriptFor(t, filepath.Join(t.TempDir(), "Gone.scpt"), services)
	if err := missing.Reveal(); !errors.Is(err, ErrScriptNotFound) {
		t.Errorf("Reveal of missing script: got %v, want ErrScriptNotFound", err)
	}

	services.Workspace = &fakeWorkspace{err: os.ErrPermission}
	if err := es.Edit(); !errors.Is(err, ErrEditorLaunchFailed) {
		t.Errorf("Edit failure: got %v, want ErrEditorLaunchFailed", err)
	}
}
