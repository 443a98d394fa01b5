// Package config holds the tessellation settings: angular resolutions,
// the degenerate-radius epsilon, the weld precision, worker count and log
// level. Settings load from TOML and fall back to Default for any key a
// file omits.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Resolution sets the angular subdivision of curved surfaces.
type Resolution struct {
	SphereSegments int `toml:"sphere_segments"`
	TubeSegments   int `toml:"tube_segments"`
	TorusRadial    int `toml:"torus_radial"`  // around the tube
	TorusTubular   int `toml:"torus_tubular"` // along the ring
}

// Config is the full settings tree.
type Config struct {
	LogLevel      string     `toml:"log_level"`
	Workers       int        `toml:"workers"` // 0 selects GOMAXPROCS
	WeldPrecision float64    `toml:"weld_precision"`
	Epsilon       float64    `toml:"epsilon"` // replaces non-positive inner radii
	Resolution    Resolution `toml:"resolution"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:      "warn",
		WeldPrecision: 1e-6,
		Epsilon:       1e-7,
		Resolution: Resolution{
			SphereSegments: 32,
			TubeSegments:   60,
			TorusRadial:    30,
			TorusTubular:   60,
		},
	}
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the TOML file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Encode renders cfg as TOML.
func (c Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

// Validate checks ranges.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers is %d", ErrInvalid, c.Workers)
	}
	if !(c.WeldPrecision > 0) {
		return fmt.Errorf("%w: weld_precision is %g, must be positive", ErrInvalid, c.WeldPrecision)
	}
	if !(c.Epsilon > 0) {
		return fmt.Errorf("%w: epsilon is %g, must be positive", ErrInvalid, c.Epsilon)
	}
	r := c.Resolution
	for _, f := range []struct {
		name string
		v    int
	}{
		{"sphere_segments", r.SphereSegments},
		{"tube_segments", r.TubeSegments},
		{"torus_radial", r.TorusRadial},
		{"torus_tubular", r.TorusTubular},
	} {
		if f.v < 3 {
			return fmt.Errorf("%w: resolution.%s is %d, need at least 3", ErrInvalid, f.name, f.v)
		}
	}
	return nil
}

// WorkerCount resolves Workers, mapping 0 to GOMAXPROCS.
func (c Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}
