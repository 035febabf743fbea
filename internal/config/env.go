package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultEnvPrefix prefixes every environment override.
const DefaultEnvPrefix = "EDITCORE_"

// envSetter applies one environment variable to a config.
type envSetter func(c *Config, value string) error

var envSettings = map[string]envSetter{
	"INDENT": func(c *Config, v string) error {
		c.Editor.IndentString = v
		return nil
	},
	"TAB_WIDTH": func(c *Config, v string) error {
		return setInt(&c.Editor.TabWidth, v)
	},
	"BRACKET_DELAY": func(c *Config, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		c.Editor.BracketDelay = Duration(d)
		return nil
	},
	"MODE": func(c *Config, v string) error {
		c.Editor.Mode = v
		return nil
	},
	"KEYMAP": func(c *Config, v string) error {
		c.Editor.Keymap = v
		return nil
	},
	"VIEWPORT_HEIGHT": func(c *Config, v string) error {
		return setInt(&c.Viewport.Height, v)
	},
	"MARGIN_TOP": func(c *Config, v string) error {
		return setInt(&c.Viewport.MarginTop, v)
	},
	"MARGIN_BOTTOM": func(c *Config, v string) error {
		return setInt(&c.Viewport.MarginBottom, v)
	},
	"LOG_LEVEL": func(c *Config, v string) error {
		c.Logging.Level = v
		return nil
	},
	"LOG_FILE": func(c *Config, v string) error {
		c.Logging.File = v
		return nil
	},
}

func setInt(dst *int, v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

// ApplyEnv overrides settings from prefixed environment variables, for
// example EDITCORE_TAB_WIDTH=8. Empty values count as set.
func (c *Config) ApplyEnv(prefix string) error {
	return c.applyEnv(prefix, os.LookupEnv)
}

func (c *Config) applyEnv(prefix string, lookup func(string) (string, bool)) error {
	for name, set := range envSettings {
		v, ok := lookup(prefix + name)
		if !ok {
			continue
		}
		if err := set(c, v); err != nil {
			return fmt.Errorf("%s%s=%q: %w: %v", prefix, name, v, ErrInvalidValue, err)
		}
	}
	return c.Validate()
}
