// Package host defines the collaborator contracts the script subsystem
// needs from the surrounding editor, plus default implementations for the
// system-level ones.
//
// The subsystem never reaches for ambient globals; every collaborator is
// injected explicitly:
//   - Document / DocumentProvider: the active text document
//   - Console: the script console surface
//   - Clipboard: the system pasteboard
//   - Workspace: file-browser reveal and external-editor launch
//   - Beeper: audible failure signal
//
// # Threading
//
// All document, console, and clipboard access is confined to a single
// goroutine, the document run loop. Background work (subprocess I/O, event
// dispatch) marshals back via Dispatcher.Dispatch before touching any of
// the collaborators above:
//
//	loop := host.NewRunLoop(64)
//	go loop.Run(ctx)
//	defer loop.Close()
//
//	// From any goroutine:
//	loop.Dispatch(func() { console.Append("done", "My Script") })
//
// Call is the synchronous round-trip helper for reads.
package host
