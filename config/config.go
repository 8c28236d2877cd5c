package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Carmen-Shannon/oxy-desk/common"
	"github.com/Carmen-Shannon/oxy-desk/engine/director"
	"github.com/Carmen-Shannon/oxy-desk/engine/loader"
	"github.com/Carmen-Shannon/oxy-desk/engine/overlay"
	"github.com/Carmen-Shannon/oxy-desk/engine/reframe"
	"github.com/Carmen-Shannon/oxy-desk/engine/viewpoint"
	"gopkg.in/yaml.v3"
)

// Window holds the host window settings.
type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Engine holds the frame driver settings.
type Engine struct {
	TickRate         float64 `yaml:"tick_rate"`
	RenderFrameLimit float64 `yaml:"render_frame_limit"`
	Profiling        bool    `yaml:"profiling"`
}

// Loader holds the asset preload settings.
type Loader struct {
	Workers int            `yaml:"workers"`
	Assets  []loader.Asset `yaml:"assets"`
}

// Config is the full tunable surface of the desk scene.
type Config struct {
	LogLevel      string           `yaml:"log_level"`
	Window        Window           `yaml:"window"`
	Engine        Engine           `yaml:"engine"`
	Reframe       reframe.Policy   `yaml:"reframe"`
	Viewpoints    viewpoint.Tuning `yaml:"viewpoints"`
	Timings       director.Timings `yaml:"timings"`
	Overlay       overlay.Geometry `yaml:"overlay"`
	ComputerNames []string         `yaml:"computer_names"`
	Loader        Loader           `yaml:"loader"`
}

// Default returns the configuration used when no file overrides it.
func Default() Config {
	return Config{
		LogLevel: "info",
		Window: Window{
			Title:  "oxy-desk",
			Width:  1280,
			Height: 720,
		},
		Engine: Engine{
			TickRate: 60,
		},
		Reframe:       reframe.DefaultPolicy(),
		Viewpoints:    viewpoint.DefaultTuning(),
		Timings:       director.DefaultTimings(),
		Overlay:       overlay.DefaultGeometry(),
		ComputerNames: append([]string(nil), director.DefaultComputerNames...),
		Loader: Loader{
			Workers: 4,
		},
	}
}

// Load reads a YAML file over the defaults. Fields absent from the file keep their default
// values. A missing file is not an error and yields Default().
//
// Parameters:
//   - path: the YAML file to read, or "" for defaults
//
// Returns:
//   - Config: the merged configuration
//   - error: error if the file exists but cannot be read or parsed
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and normalizes out-of-range values.
// Unknown keys are rejected so typos surface instead of being silently ignored.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Config: the merged configuration
//   - error: error if the document is malformed
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}

	cfg.normalize()
	return cfg, nil
}

// normalize replaces zero or invalid values with defaults.
func (c *Config) normalize() {
	def := Default()

	c.LogLevel = common.Coalesce(c.LogLevel, def.LogLevel)
	c.Window.Title = common.Coalesce(c.Window.Title, def.Window.Title)
	c.Window.Width = common.AtLeast(c.Window.Width, 1)
	c.Window.Height = common.AtLeast(c.Window.Height, 1)
	if c.Engine.TickRate <= 0 {
		c.Engine.TickRate = def.Engine.TickRate
	}
	c.Loader.Workers = common.AtLeast(c.Loader.Workers, 1)
	c.Reframe.MinDimension = common.AtLeast(c.Reframe.MinDimension, 1)
	if len(c.ComputerNames) == 0 {
		c.ComputerNames = def.ComputerNames
	}
	if c.Overlay.RetryInterval <= 0 {
		c.Overlay.RetryInterval = def.Overlay.RetryInterval
	}
}
