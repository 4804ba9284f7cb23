// Package lua runs in-process structured-event scripts with gopher-lua.
//
// An event script is a plain Lua file. Its top level runs on every
// dispatch; when the dispatch carries an event, the global function named
// after the event (spaces become underscores, e.g. "document opened" →
// document_opened) is called with the event payload as its argument.
//
// Scripts see an `editor` table bridging the active document:
//
//	editor.selection()      -- selected text
//	editor.text()           -- full document text
//	editor.insert(s)        -- replace the selection with s
//	editor.insert_after(s)  -- insert s after the selection
//	editor.replace_all(s)   -- replace the whole document
//	editor.append(s)        -- append s at the end
//	editor.path()           -- backing file path or nil
//	editor.log(s)           -- write s to the script console
//
// Every bridge call is marshaled onto the document run loop; Lua itself
// executes on a background goroutine with a fresh state per dispatch, so
// no two dispatches share interpreter state.
package lua

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/vellum-editor/vellum/internal/host"
)

// DefaultTimeout bounds a single script dispatch.
const DefaultTimeout = 30 * time.Second

// ErrNoDocument is raised to Lua when a bridge call needs a document and
// none is open.
var ErrNoDocument = errors.New("no document is open")

// Engine dispatches events to Lua scripts.
type Engine struct {
	docs       host.DocumentProvider
	console    host.Console
	dispatcher host.Dispatcher
	timeout    time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout sets the per-dispatch execution timeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.timeout = d
	}
}

// NewEngine creates an engine over the given collaborators.
func NewEngine(docs host.DocumentProvider, console host.Console, dispatcher host.Dispatcher, opts ...Option) *Engine {
	e := &Engine{
		docs:       docs,
		console:    console,
		dispatcher: dispatcher,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dispatch runs the script at path on a background goroutine, returning
// immediately. Execution errors are written to the console under label,
// never returned.
func (e *Engine) Dispatch(ctx context.Context, path, label string, ev *host.Event) {
	go func() {
		if err := e.run(ctx, path, label, ev); err != nil {
			msg := err.Error()
			e.dispatcher.Dispatch(func() {
				e.console.Append(msg, label)
			})
		}
	}()
}

// run executes the script synchronously on the calling goroutine.
func (e *Engine) run(ctx context.Context, path, label string, ev *host.Event) error {
	runCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	L := lua.NewState(lua.Options{
		SkipOpenLibs: true, // opened selectively below
	})
	defer L.Close()
	L.SetContext(runCtx)

	openSafeLibraries(L)
	e.registerEditorAPI(L, label)

	if err := L.DoFile(path); err != nil {
		return fmt.Errorf("script error: %w", err)
	}

	if ev == nil {
		return nil
	}

	handler := L.GetGlobal(handlerName(ev.Name))
	fn, ok := handler.(*lua.LFunction)
	if !ok {
		// Scripts declare their handlers in bundle metadata; a missing
		// function is not an error here.
		return nil
	}

	L.Push(fn)
	L.Push(payloadTable(L, ev.Payload))
	if err := L.PCall(1, 0, nil); err != nil {
		return fmt.Errorf("handler %s: %w", handlerName(ev.Name), err)
	}
	return nil
}

// handlerName maps an event name to the Lua global to invoke.
func handlerName(event string) string {
	return strings.ReplaceAll(strings.TrimSpace(event), " ", "_")
}

// openSafeLibraries loads the interpreter-safe standard libraries. io, os,
// debug, and package stay closed; scripts reach the world only through the
// editor bridge.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Base brings in loaders that read the filesystem; close those off.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// payloadTable converts an event payload into a Lua table.
func payloadTable(L *lua.LState, payload map[string]any) lua.LValue {
	if payload == nil {
		return lua.LNil
	}
	t := L.NewTable()
	for k, v := range payload {
		t.RawSetString(k, toLValue(L, v))
	}
	return t
}

// toLValue converts a Go value to a Lua value. Unknown types map to nil.
func toLValue(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case map[string]any:
		t := L.NewTable()
		for k, item := range val {
			t.RawSetString(k, toLValue(L, item))
		}
		return t
	case []any:
		t := L.NewTable()
		for _, item := range val {
			t.Append(toLValue(L, item))
		}
		return t
	default:
		return lua.LNil
	}
}

// registerEditorAPI installs the `editor` global.
func (e *Engine) registerEditorAPI(L *lua.LState, label string) {
	editor := L.NewTable()

	L.SetField(editor, "selection", L.NewFunction(e.readFn(func(d host.Document) string {
		return d.SelectedText()
	})))
	L.SetField(editor, "text", L.NewFunction(e.readFn(func(d host.Document) string {
		return d.FullText()
	})))
	L.SetField(editor, "insert", L.NewFunction(e.writeFn(func(d host.Document, s string) {
		d.Insert(s)
	})))
	L.SetField(editor, "insert_after", L.NewFunction(e.writeFn(func(d host.Document, s string) {
		d.InsertAfterSelection(s)
	})))
	L.SetField(editor, "replace_all", L.NewFunction(e.writeFn(func(d host.Document, s string) {
		d.ReplaceAll(s)
	})))
	L.SetField(editor, "append", L.NewFunction(e.writeFn(func(d host.Document, s string) {
		d.Append(s)
	})))

	L.SetField(editor, "path", L.NewFunction(func(L *lua.LState) int {
		var path string
		var ok bool
		host.Call(e.dispatcher, func() {
			if doc := e.docs.ActiveDocument(); doc != nil {
				path, ok = doc.Path()
			}
		})
		if !ok {
			L.Push(lua.LNil)
		} else {
			L.Push(lua.LString(path))
		}
		return 1
	}))

	L.SetField(editor, "log", L.NewFunction(func(L *lua.LState) int {
		msg := L.CheckString(1)
		host.Call(e.dispatcher, func() {
			e.console.Append(msg, label)
		})
		return 0
	}))

	L.SetGlobal("editor", editor)
}

// readFn builds a bridge function returning a document string.
func (e *Engine) readFn(read func(host.Document) string) lua.LGFunction {
	return func(L *lua.LState) int {
		var text string
		var missing bool
		host.Call(e.dispatcher, func() {
			doc := e.docs.ActiveDocument()
			if doc == nil {
				missing = true
				return
			}
			text = read(doc)
		})
		if missing {
			L.RaiseError("%s", ErrNoDocument.Error())
			return 0
		}
		L.Push(lua.LString(text))
		return 1
	}
}

// writeFn builds a bridge function applying a document mutation.
func (e *Engine) writeFn(write func(host.Document, string)) lua.LGFunction {
	return func(L *lua.LState) int {
		text := L.CheckString(1)
		var missing bool
		host.Call(e.dispatcher, func() {
			doc := e.docs.ActiveDocument()
			if doc == nil {
				missing = true
				return
			}
			write(doc, text)
		})
		if missing {
			L.RaiseError("%s", ErrNoDocument.Error())
			return 0
		}
		return 0
	}
}
