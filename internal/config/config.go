package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"speedread/internal/draw"
	"speedread/internal/errors"
	"speedread/internal/mimetype"
	"speedread/internal/reader"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration structure.
type Config struct {
	Playback struct {
		Speed       float64 `yaml:"speed"`         // Initial words per minute
		SpeedStep   float64 `yaml:"speed_step"`    // Change per wheel notch
		MinSpeed    float64 `yaml:"min_speed"`     // Lowest selectable speed
		ResetOnLoad bool    `yaml:"reset_on_load"` // Rewind when a new document loads
	} `yaml:"playback"`
	Window struct {
		Width  int    `yaml:"width"`
		Height int    `yaml:"height"`
		Title  string `yaml:"title"`
	} `yaml:"window"`
	Theme struct {
		Background string `yaml:"background"`
		Prompt     string `yaml:"prompt"`
		Word       string `yaml:"word"`
		Speed      string `yaml:"speed"`
		Frame      string `yaml:"frame"`
		Drag       string `yaml:"drag"`
	} `yaml:"theme"`
	Text struct {
		Prompt   string `yaml:"prompt"`
		Dragging string `yaml:"dragging"` // Must contain one %d
		Speed    string `yaml:"speed"`    // Must contain one %s
	} `yaml:"text"`
	// MIME maps media types to file name patterns for drop sources that
	// deliver bare paths.
	MIME    map[string][]string `yaml:"mime"`
	Logging struct {
		Debug bool   `yaml:"debug"`
		JSON  bool   `yaml:"json"`
		File  string `yaml:"file"`
	} `yaml:"logging"`
}

// DefaultPath returns ~/.config/speedread/config.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "speedread", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(err, "error reading config file")
	}

	// Unmarshal on top of the defaults so unset fields keep them
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "error parsing config file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{}

	defaults := reader.DefaultSettings()
	cfg.Playback.Speed = defaults.Speed
	cfg.Playback.SpeedStep = defaults.Step
	cfg.Playback.MinSpeed = defaults.MinSpeed
	cfg.Playback.ResetOnLoad = defaults.ResetOnLoad

	cfg.Window.Width = 800
	cfg.Window.Height = 600
	cfg.Window.Title = "speedread"

	theme := reader.DefaultTheme()
	cfg.Theme.Background = draw.Hex(theme.Background)
	cfg.Theme.Prompt = draw.Hex(theme.Prompt)
	cfg.Theme.Word = draw.Hex(theme.Word)
	cfg.Theme.Speed = draw.Hex(theme.Speed)
	cfg.Theme.Frame = draw.Hex(theme.Frame)
	cfg.Theme.Drag = draw.Hex(theme.Drag)

	cfg.Text.Prompt = theme.PromptText
	cfg.Text.Dragging = theme.DraggingFormat
	cfg.Text.Speed = theme.SpeedFormat

	cfg.MIME = mimetype.DefaultPatterns()
	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}
	return nil
}

func invalid(param, format string, args ...interface{}) error {
	return errors.NewConfigError(fmt.Sprintf(format, args...), param, errors.InvalidConfig, nil)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("nil config")
	}

	if c.Playback.MinSpeed <= 0 {
		return invalid("playback.min_speed", "must be > 0, got %v", c.Playback.MinSpeed)
	}
	if c.Playback.SpeedStep <= 0 {
		return invalid("playback.speed_step", "must be > 0, got %v", c.Playback.SpeedStep)
	}
	if c.Playback.Speed < c.Playback.MinSpeed {
		return invalid("playback.speed", "must be >= min_speed %v, got %v", c.Playback.MinSpeed, c.Playback.Speed)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window", "dimensions must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	colors := map[string]string{
		"theme.background": c.Theme.Background,
		"theme.prompt":     c.Theme.Prompt,
		"theme.word":       c.Theme.Word,
		"theme.speed":      c.Theme.Speed,
		"theme.frame":      c.Theme.Frame,
		"theme.drag":       c.Theme.Drag,
	}
	for param, value := range colors {
		if _, err := draw.ParseHex(value); err != nil {
			return errors.NewConfigError("invalid color", param, errors.InvalidConfig, err)
		}
	}

	if err := checkVerb("text.dragging", c.Text.Dragging, "%d"); err != nil {
		return err
	}
	if err := checkVerb("text.speed", c.Text.Speed, "%s"); err != nil {
		return err
	}

	for mediaType := range c.MIME {
		if !strings.Contains(mediaType, "/") {
			return invalid("mime", "media type %q must be type/subtype", mediaType)
		}
	}
	if _, err := mimetype.New(c.MIME); err != nil {
		return errors.NewConfigError("invalid mime pattern", "mime", errors.InvalidConfig, err)
	}

	return nil
}

// checkVerb requires format to contain verb exactly once and no other
// verbs besides %%.
func checkVerb(param, format, verb string) error {
	rest := strings.ReplaceAll(format, "%%", "")
	if strings.Count(rest, "%") != 1 || strings.Count(rest, verb) != 1 {
		return invalid(param, "must contain exactly one %s, got %q", verb, format)
	}
	return nil
}

// PlaybackSettings converts the playback section for the reader
func (c *Config) PlaybackSettings() reader.Settings {
	return reader.Settings{
		Speed:       c.Playback.Speed,
		Step:        c.Playback.SpeedStep,
		MinSpeed:    c.Playback.MinSpeed,
		ResetOnLoad: c.Playback.ResetOnLoad,
	}
}

// ReaderTheme builds the reader theme. Colors were checked by Validate;
// unparsable ones keep the default.
func (c *Config) ReaderTheme() reader.Theme {
	theme := reader.DefaultTheme()
	set := func(dst *color.NRGBA, value string) {
		if parsed, err := draw.ParseHex(value); err == nil {
			*dst = parsed
		}
	}
	set(&theme.Background, c.Theme.Background)
	set(&theme.Prompt, c.Theme.Prompt)
	set(&theme.Word, c.Theme.Word)
	set(&theme.Speed, c.Theme.Speed)
	set(&theme.Frame, c.Theme.Frame)
	set(&theme.Drag, c.Theme.Drag)

	theme.PromptText = c.Text.Prompt
	theme.DraggingFormat = c.Text.Dragging
	theme.SpeedFormat = c.Text.Speed
	return theme
}

// Classifier compiles the MIME patterns
func (c *Config) Classifier() (*mimetype.Classifier, error) {
	return mimetype.New(c.MIME)
}

// Bounds returns the window size as draw bounds
func (c *Config) Bounds() draw.Bounds {
	return draw.Bounds{Width: float32(c.Window.Width), Height: float32(c.Window.Height)}
}
