package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every editcore setting.
type Config struct {
	Editor   EditorConfig   `toml:"editor" yaml:"editor"`
	Viewport ViewportConfig `toml:"viewport" yaml:"viewport"`
	Logging  LoggingConfig  `toml:"logging" yaml:"logging"`
}

// EditorConfig configures the editing engine.
type EditorConfig struct {
	// IndentString is inserted by indent commands given no explicit indent.
	IndentString string `toml:"indent" yaml:"indent"`
	// TabWidth is the display width of a tab.
	TabWidth int `toml:"tab_width" yaml:"tab_width"`
	// BracketDelay debounces bracket highlighting after cursor moves.
	BracketDelay Duration `toml:"bracket_delay" yaml:"bracket_delay"`
	// Mode forces a language mode by name, or a path to a Lua mode script.
	// Empty picks the mode from the file extension.
	Mode string `toml:"mode" yaml:"mode"`
	// Keymap names a TOML or YAML file of extra key bindings.
	Keymap string `toml:"keymap" yaml:"keymap"`
}

// ViewportConfig configures the terminal viewport.
type ViewportConfig struct {
	// Height overrides the terminal height when positive.
	Height       int `toml:"height" yaml:"height"`
	MarginTop    int `toml:"margin_top" yaml:"margin_top"`
	MarginBottom int `toml:"margin_bottom" yaml:"margin_bottom"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"`
	// File receives log output. Empty disables logging in the terminal UI.
	File string `toml:"file" yaml:"file"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Editor: EditorConfig{
			IndentString: "    ",
			TabWidth:     4,
			BracketDelay: Duration(10 * time.Millisecond),
		},
		Viewport: ViewportConfig{
			MarginTop:    2,
			MarginBottom: 2,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks setting ranges.
func (c Config) Validate() error {
	switch {
	case c.Editor.TabWidth < 1:
		return fmt.Errorf("editor.tab_width %d: %w", c.Editor.TabWidth, ErrInvalidValue)
	case c.Editor.BracketDelay < 0:
		return fmt.Errorf("editor.bracket_delay %s: %w", c.Editor.BracketDelay, ErrInvalidValue)
	case c.Viewport.Height < 0:
		return fmt.Errorf("viewport.height %d: %w", c.Viewport.Height, ErrInvalidValue)
	case c.Viewport.MarginTop < 0 || c.Viewport.MarginBottom < 0:
		return fmt.Errorf("viewport margins %d/%d: %w", c.Viewport.MarginTop, c.Viewport.MarginBottom, ErrInvalidValue)
	}
	return nil
}

// Duration is a time.Duration written as a string such as "10ms".
type Duration time.Duration

// Std returns the duration as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}
