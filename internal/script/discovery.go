package script

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scanner discovers scripts in the user script directory. Every Scan
// rebuilds all descriptors from scratch; there is no incremental update.
type Scanner struct {
	dir string

	// includeUnsupported keeps descriptors for unrecognized extensions,
	// letting the host list them disabled.
	includeUnsupported bool
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithUnsupported includes descriptors whose kind is KindUnsupported.
func WithUnsupported() ScannerOption {
	return func(s *Scanner) {
		s.includeUnsupported = true
	}
}

// NewScanner creates a scanner over the given directory.
func NewScanner(dir string, opts ...ScannerOption) *Scanner {
	s := &Scanner{dir: dir}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the scanned directory.
func (s *Scanner) Dir() string {
	return s.dir
}

// Scan lists the directory and builds one descriptor per script. A
// missing directory is not an error and yields no descriptors. Dotfiles
// are skipped, as are subdirectories that are not bundle-shaped (those
// are submenu folders, which this layer does not descend into).
//
// Results sort by ordering (scripts without one come last), then by
// display name.
func (s *Scanner) Scan() ([]*Descriptor, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var descriptors []*Descriptor
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		location := filepath.Join(s.dir, name)
		desc := BuildDescriptor(location)

		if entry.IsDir() && desc.Kind == KindUnsupported {
			continue // submenu folder
		}
		if desc.Kind == KindUnsupported && !s.includeUnsupported {
			continue
		}
		descriptors = append(descriptors, desc)
	}

	sort.SliceStable(descriptors, func(i, j int) bool {
		a, b := descriptors[i], descriptors[j]
		switch {
		case a.Ordering != nil && b.Ordering != nil:
			if *a.Ordering != *b.Ordering {
				return *a.Ordering < *b.Ordering
			}
		case a.Ordering != nil:
			return true
		case b.Ordering != nil:
			return false
		}
		return a.DisplayName < b.DisplayName
	})

	return descriptors, nil
}
