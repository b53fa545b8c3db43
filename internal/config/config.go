// Package config loads the scivis TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"scivis/internal/extract"
	"scivis/internal/palette"
)

const (
	configFile = "config.toml"
	appDir     = "scivis"

	// EnvPath names the environment variable that overrides the config path.
	EnvPath = "SCIVIS_CONFIG"
)

// Config holds settings shared by the command line tools.
type Config struct {
	Store     string  `toml:"store"`
	OutputDir string  `toml:"output_dir"`
	LogLevel  string  `toml:"log_level"`
	Extract   Extract `toml:"extract"`
	Palette   Palette `toml:"palette"`

	path string
}

// Extract configures image color extraction.
type Extract struct {
	NumColors      int     `toml:"num_colors"`
	ExcludeWhite   bool    `toml:"exclude_white"`
	WhiteThreshold float64 `toml:"white_threshold"`
	Precision      float64 `toml:"precision"`
	MaxDimension   int     `toml:"max_dimension"`
}

// Palette configures palette generation defaults.
type Palette struct {
	Num  int    `toml:"num"`
	Type string `toml:"type"`
}

// Default returns the built-in configuration.
func Default() *Config {
	opts := extract.DefaultOptions()
	return &Config{
		Store:     filepath.Join("outputs", "image_colors.json"),
		OutputDir: "outputs",
		LogLevel:  "info",
		Extract: Extract{
			NumColors:      5,
			ExcludeWhite:   opts.ExcludeWhite,
			WhiteThreshold: opts.WhiteThreshold,
			Precision:      opts.Precision,
			MaxDimension:   extract.DefaultMaxDimension,
		},
		Palette: Palette{
			Num:  5,
			Type: string(palette.Complementary),
		},
	}
}

// Path resolves the config file location: explicit, else $SCIVIS_CONFIG,
// else the user config directory.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvPath); env != "" {
		return env
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, appDir, configFile)
}

// Load reads the config at path over the defaults. A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	c.path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return c, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Extract.NumColors < 1 {
		return fmt.Errorf("extract.num_colors must be positive, got %d", c.Extract.NumColors)
	}
	if c.Extract.Precision <= 0 || c.Extract.Precision > 1 {
		return fmt.Errorf("extract.precision must be in (0,1], got %g", c.Extract.Precision)
	}
	if c.Extract.WhiteThreshold < 0 || c.Extract.WhiteThreshold > 1 {
		return fmt.Errorf("extract.white_threshold must be in [0,1], got %g", c.Extract.WhiteThreshold)
	}
	if c.Extract.MaxDimension < 0 {
		return fmt.Errorf("extract.max_dimension must not be negative, got %d", c.Extract.MaxDimension)
	}
	if c.Palette.Num < 1 {
		return fmt.Errorf("palette.num must be positive, got %d", c.Palette.Num)
	}
	if _, err := palette.ParseKind(c.Palette.Type); err != nil {
		return err
	}
	return nil
}

// File returns the path the config was loaded from.
func (c *Config) File() string { return c.path }

// Save writes the config back to the file it was loaded from.
func (c *Config) Save() error {
	if c.path == "" {
		return errors.New("config has no path")
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o644)
}

// ExtractOptions converts the extract section to extractor options.
func (c *Config) ExtractOptions() extract.Options {
	return extract.Options{
		ExcludeWhite:   c.Extract.ExcludeWhite,
		WhiteThreshold: c.Extract.WhiteThreshold,
		Precision:      c.Extract.Precision,
	}
}

// ApplyExtract sets the decoder and options of e from the extract section.
func (c *Config) ApplyExtract(e *extract.Extractor) *extract.Extractor {
	e.Decoder = extract.FileDecoder{MaxDimension: c.Extract.MaxDimension}
	e.Options = c.ExtractOptions()
	return e
}
