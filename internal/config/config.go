// Package config loads the TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/naoina/toml"

	"github.com/litescript/ls-skymap/internal/astro"
	"github.com/litescript/ls-skymap/internal/engine"
	"github.com/litescript/ls-skymap/internal/ephem"
)

// Config is the full application configuration.
type Config struct {
	LogLevel  string    `toml:"log_level"`
	Ephemeris Ephemeris `toml:"ephemeris"`
	Store     Store     `toml:"store"`
	Server    Server    `toml:"server"`
	Observers []Preset  `toml:"observer"`
}

// Ephemeris selects and locates the ephemeris data.
type Ephemeris struct {
	Source    string `toml:"source"` // de, vsop87 or auto
	DEFile    string `toml:"de_file"`
	VSOP87Dir string `toml:"vsop87_dir"`
}

// Store locates the saved-positions database.
type Store struct {
	Path string `toml:"path"`
}

// Server configures the HTTP API.
type Server struct {
	Addr          string `toml:"addr"`
	RatePerMinute int    `toml:"rate_per_minute"` // per client; 0 disables
	Burst         int    `toml:"burst"`
}

// Preset is a named observer location.
type Preset struct {
	Name string  `toml:"name"`
	Lat  float64 `toml:"lat"`
	Lon  float64 `toml:"lon"`
}

// Observer converts the preset.
func (p Preset) Observer() astro.Observer {
	return astro.Observer{LatDeg: p.Lat, LonDeg: p.Lon, Name: p.Name}
}

// DefaultPresets are the built-in observer locations.
var DefaultPresets = []Preset{
	{Name: "Equator", Lat: 0, Lon: 0},
	{Name: "Colombo", Lat: 6.9271, Lon: 79.8612},
	{Name: "London", Lat: 51.5074, Lon: -0.1278},
}

// Default returns the built-in configuration.
func Default() Config {
	presets := make([]Preset, len(DefaultPresets))
	copy(presets, DefaultPresets)
	return Config{
		LogLevel: "info",
		Ephemeris: Ephemeris{
			Source: "auto",
			DEFile: envOr("LS_SKYMAP_DE_FILE", "de421.bin"),
		},
		Store:     Store{Path: "ls-skymap.db"},
		Server:    Server{Addr: ":8080", RatePerMinute: 120, Burst: 20},
		Observers: presets,
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// DefaultPath returns $XDG_CONFIG_HOME/ls-skymap/config.toml, or "" if no
// user config directory is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ls-skymap", "config.toml")
}

// Load reads the file at path over the defaults. A missing file is not an
// error when path is the default location.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML over the defaults and validates the result. Presets in
// the file replace the built-in ones.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	cfg.Observers = nil
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if len(cfg.Observers) == 0 {
		cfg.Observers = Default().Observers
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the ephemeris source and every preset.
func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Ephemeris.Source)) {
	case "", "auto", "de", "vsop87":
	default:
		return fmt.Errorf("config: unknown ephemeris source %q", c.Ephemeris.Source)
	}
	if c.Server.RatePerMinute < 0 || c.Server.Burst < 0 {
		return errors.New("config: server rate limit must not be negative")
	}
	seen := make(map[string]bool)
	for _, p := range c.Observers {
		if p.Name == "" {
			return errors.New("config: observer preset without a name")
		}
		if seen[p.Name] {
			return fmt.Errorf("config: duplicate observer preset %q", p.Name)
		}
		seen[p.Name] = true
		if err := engine.ValidateLocation(p.Observer()); err != nil {
			return fmt.Errorf("config: observer %q: %w", p.Name, err)
		}
	}
	return nil
}

// EphemerisOptions converts the ephemeris section for ephem.Open.
func (c Config) EphemerisOptions() ephem.Options {
	return ephem.Options{
		Mode:      ephem.ParseMode(c.Ephemeris.Source),
		DEFile:    c.Ephemeris.DEFile,
		VSOP87Dir: c.Ephemeris.VSOP87Dir,
	}
}

// Preset finds an observer preset by case-insensitive name.
func (c Config) Preset(name string) (Preset, bool) {
	for _, p := range c.Observers {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}
