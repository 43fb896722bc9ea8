// Package config loads user defaults for the hilbertmaze CLI from a TOML
// file.
//
// The file lives at $XDG_CONFIG_HOME/hilbertmaze/config.toml (falling back to
// ~/.config). Every key is optional:
//
//	output_dir = "out"
//	formats    = ["png", "svg"]
//	palette    = "hsluv"
//	zoom       = 4
//	no_cache   = false
//	cache_ttl  = "168h"
//
// Values from the file override built-in defaults; explicit command-line
// flags override the file.
package config

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/hilbertmaze/pkg/colorize"
	apperr "github.com/matzehuels/hilbertmaze/pkg/errors"
	"github.com/matzehuels/hilbertmaze/pkg/sink"
)

const appName = "hilbertmaze"

// DefaultCacheTTL is how long encoded artifacts stay in the cache.
const DefaultCacheTTL = 7 * 24 * time.Hour

// Config holds user defaults.
type Config struct {
	OutputDir string   `toml:"output_dir"`
	Formats   []string `toml:"formats"`
	Palette   string   `toml:"palette"`
	Zoom      int      `toml:"zoom"`
	NoCache   bool     `toml:"no_cache"`
	CacheTTL  string   `toml:"cache_ttl"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		OutputDir: ".",
		Formats:   []string{sink.FormatPNG},
		Palette:   string(colorize.RGB),
		Zoom:      1,
		CacheTTL:  DefaultCacheTTL.String(),
	}
}

// DefaultPath returns the config file location.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", appName, "config.toml")
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// Load reads the file at path on top of the defaults. An empty path reads
// DefaultPath and tolerates its absence; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, apperr.New(apperr.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	for _, f := range c.Formats {
		if err := sink.ValidateFormat(f); err != nil {
			return err
		}
	}
	if _, err := colorize.ParsePalette(c.Palette); err != nil {
		return err
	}
	if err := apperr.ValidateZoom(c.Zoom, sink.MaxZoom); err != nil {
		return err
	}
	if err := apperr.ValidateDir(c.OutputDir); err != nil {
		return err
	}
	if _, err := c.TTL(); err != nil {
		return err
	}
	return nil
}

// TTL parses CacheTTL. An empty value selects DefaultCacheTTL.
func (c Config) TTL() (time.Duration, error) {
	if c.CacheTTL == "" {
		return DefaultCacheTTL, nil
	}
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil || d < 0 {
		return 0, apperr.New(apperr.ErrCodeInvalidConfig, "invalid cache_ttl: %q", c.CacheTTL)
	}
	return d, nil
}

// Write encodes c as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
