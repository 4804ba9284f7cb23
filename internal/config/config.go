// Package config holds the user-facing configuration for the script
// subsystem: where scripts live, which text encodings to try when reading
// them, and which application edits them.
//
// Configuration may be written in TOML or YAML; the loader dispatches on
// the file extension. A missing file is not an error and yields defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config is the script subsystem configuration.
type Config struct {
	// ScriptsDir is the user script directory.
	ScriptsDir string `toml:"scripts_dir" yaml:"scripts_dir"`

	// Encodings is the ordered list of IANA encoding names tried when
	// decoding script source. Empty means the built-in default order.
	Encodings []string `toml:"encodings" yaml:"encodings"`

	// EditorApp is the application used to edit event scripts. Empty
	// means the platform's script editor.
	EditorApp string `toml:"editor_app" yaml:"editor_app"`
}

// Default returns the default configuration.
func Default() Config {
	cfg := Config{}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.ScriptsDir = filepath.Join(home, ".config", "vellum", "scripts")
	}
	return cfg
}

// Load reads configuration from path, dispatching on the extension
// (.toml, .yaml, .yml). A missing file returns Default with no error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("unsupported config format: %s", path)
	}
	return cfg, nil
}
