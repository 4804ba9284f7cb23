package script

import (
	"os"
	"path/filepath"

	"howett.net/plist"
)

// handlersKey is the bundle metadata key listing declared event handlers.
const handlersKey = "CotEditorHandlers"

// bundleInfo is the subset of a bundle's Info.plist this subsystem reads.
type bundleInfo struct {
	Handlers []string `plist:"CotEditorHandlers"`
}

// readBundleBindings reads declared event handlers from a bundle-shaped
// location's Contents/Info.plist. Non-bundles, unreadable plists, and
// unrecognized handler names all degrade to no bindings.
func readBundleBindings(location string) []EventType {
	fi, err := os.Stat(location)
	if err != nil || !fi.IsDir() {
		return nil
	}

	data, err := os.ReadFile(filepath.Join(location, "Contents", "Info.plist"))
	if err != nil {
		return nil
	}

	var info bundleInfo
	if _, err := plist.Unmarshal(data, &info); err != nil {
		return nil
	}

	var bindings []EventType
	for _, name := range info.Handlers {
		if ev, ok := eventTypeNames[name]; ok {
			bindings = append(bindings, ev)
		}
	}
	return bindings
}
