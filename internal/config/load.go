package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a config file format.
type Format int

const (
	// FormatTOML is TOML, selected by the .toml extension.
	FormatTOML Format = iota
	// FormatYAML is YAML, selected by .yaml or .yml.
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// Load builds the effective configuration: defaults, then the file at path
// if path is not empty, then the environment. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := LoadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile decodes the file at path over into. Keys missing from the file
// keep their current values.
func LoadFile(path string, into *Config) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Decode(format, path, data, into)
}

// Decode parses data in the given format over into. Unknown keys are
// rejected. source names the data in errors.
func Decode(format Format, source string, data []byte, into *Config) error {
	switch format {
	case FormatTOML:
		return decodeTOML(source, data, into)
	case FormatYAML:
		return decodeYAML(source, data, into)
	default:
		return fmt.Errorf("%s: %w", source, ErrUnsupportedFormat)
	}
}

func decodeTOML(source string, data []byte, into *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(into); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}
	return nil
}

func decodeYAML(source string, data []byte, into *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(into); err != nil {
		if errors.Is(err, io.EOF) {
			// Empty document.
			return nil
		}
		return &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return nil
}
