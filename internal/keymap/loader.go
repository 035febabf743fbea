package keymap

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/editcore/internal/config"
)

// LoadFile reads a keymap from a TOML or YAML file, picked by extension.
func LoadFile(path string) (*Keymap, error) {
	format, err := config.FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keymap file: %w", err)
	}
	km, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return km, nil
}

// Decode reads a keymap in the given format and validates it.
func Decode(r io.Reader, format config.Format) (*Keymap, error) {
	km := &Keymap{}
	switch format {
	case config.FormatTOML:
		if err := toml.NewDecoder(r).Decode(km); err != nil {
			return nil, fmt.Errorf("decoding keymap: %w", err)
		}
	case config.FormatYAML:
		if err := yaml.NewDecoder(r).Decode(km); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decoding keymap: %w", err)
		}
	default:
		return nil, fmt.Errorf("keymap format %q: %w", format, config.ErrUnsupportedFormat)
	}
	if km.Name == "" {
		km.Name = "user"
	}
	if err := km.Validate(); err != nil {
		return nil, err
	}
	return km, nil
}
