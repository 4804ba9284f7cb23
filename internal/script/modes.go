package script

import "github.com/vellum-editor/vellum/internal/script/directive"

// InputMode declares what document text a subprocess script reads.
type InputMode int

const (
	// InputSelection feeds the current selection to stdin.
	InputSelection InputMode = iota

	// InputAllText feeds the full document text to stdin.
	InputAllText
)

// OutputMode declares how a subprocess script's stdout is applied.
type OutputMode int

const (
	// OutputReplaceSelection replaces the current selection.
	OutputReplaceSelection OutputMode = iota

	// OutputReplaceAllText replaces the entire document text.
	OutputReplaceAllText

	// OutputInsertAfterSelection inserts after the selection.
	OutputInsertAfterSelection

	// OutputAppendToAllText appends at the end of the document.
	OutputAppendToAllText

	// OutputPasteboard writes to the system clipboard. The only mode that
	// works without an open document.
	OutputPasteboard
)

// The two directive families scripts may embed in their source.
var (
	inputDirective = directive.NewFamily("CotEditorXInput", map[string]InputMode{
		"Selection": InputSelection,
		"AllText":   InputAllText,
	})

	outputDirective = directive.NewFamily("CotEditorXOutput", map[string]OutputMode{
		"ReplaceSelection":     OutputReplaceSelection,
		"ReplaceAllText":       OutputReplaceAllText,
		"InsertAfterSelection": OutputInsertAfterSelection,
		"AppendToAllText":      OutputAppendToAllText,
		"Pasteboard":           OutputPasteboard,
	})
)

// ScanInputMode extracts the input-mode directive from script source.
func ScanInputMode(source string) (InputMode, bool) {
	return inputDirective.Scan(source)
}

// ScanOutputMode extracts the output-mode directive from script source.
func ScanOutputMode(source string) (OutputMode, bool) {
	return outputDirective.Scan(source)
}
