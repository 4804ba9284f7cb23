// Package script implements the user-script subsystem: discovery of
// scripts in the user script directory, metadata derivation from filenames
// and bundle descriptors, and execution against the active document.
//
// # Filename grammar
//
// A script filename carries optional ordering and shortcut components:
//
//	[<digits>)]<Name>[.<ModifierChars><KeyChar>].<ext>
//
// "3)Sort Lines.@$s.sh" sorts into menu position 3, displays as
// "Sort Lines", and binds Meta+Shift+S. Both components are optional and
// detected independently; malformed components degrade gracefully.
//
// # Script kinds
//
// The file extension alone decides how a script runs:
//   - event scripts (applescript, scpt, scptd, lua) receive structured
//     events; Lua scripts run in-process, the AppleScript family is handed
//     to osascript
//   - subprocess scripts (sh, pl, php, rb, py, js) run as child processes
//     with their standard streams mediated to the document
//   - anything else is unsupported and never runnable
//
// # Document mediation
//
// Subprocess scripts declare document I/O with embedded directives:
//
//	%%%{CotEditorXInput=Selection}%%%
//	%%%{CotEditorXOutput=ReplaceAllText}%%%
//
// The input directive selects what is written to the child's stdin; the
// output directive selects how captured stdout is applied back to the
// document (or the clipboard). stderr content is reported to the script
// console under the script's display name.
//
// Pre-flight failures (missing file, bad permissions, undecodable source)
// surface synchronously from Run; anything after dispatch reports to the
// console only.
package script
