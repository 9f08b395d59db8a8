package config

import (
	"errors"
	"strconv"
)

// EnvPrefix starts every environment variable the package reads.
const EnvPrefix = "TEXTLAYOUT_"

// envSetting binds one environment variable to one setting.
type envSetting struct {
	name string
	path string
	set  func(c *Config, val string) error
}

// envSettings lists the environment overrides.
var envSettings = []envSetting{
	{EnvPrefix + "TAB_SIZE", "editor.tabSize", intSetter(func(c *Config) *int { return &c.Editor.TabSize })},
	{EnvPrefix + "WORD_WRAP", "editor.wordWrap", boolSetter(func(c *Config) *bool { return &c.Editor.WordWrap })},
	{EnvPrefix + "MAX_TEXT_LENGTH", "editor.maxTextLength", intSetter(func(c *Config) *int { return &c.Editor.MaxTextLength })},
	{EnvPrefix + "UNDO_MAX_BYTES", "undo.maxBytes", intSetter(func(c *Config) *int { return &c.Undo.MaxBytes })},
	{EnvPrefix + "UNDO_MAX_POINTS", "undo.maxPoints", intSetter(func(c *Config) *int { return &c.Undo.MaxPoints })},
	{EnvPrefix + "LOG_LEVEL", "logging.level", func(c *Config, val string) error {
		c.Logging.Level = val
		return nil
	}},
}

// EnvVars returns the names of the environment variables ApplyEnv reads.
func EnvVars() []string {
	out := make([]string, len(envSettings))
	for i, s := range envSettings {
		out[i] = s.name
	}
	return out
}

// ApplyEnv overrides settings from environment variables found by lookup,
// usually os.LookupEnv. Empty values are treated as unset. Every malformed
// value is reported; the valid ones are still applied.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	for _, s := range envSettings {
		val, ok := lookup(s.name)
		if !ok || val == "" {
			continue
		}
		if err := s.set(c, val); err != nil {
			errs = append(errs, &ValidationError{Path: s.path, Message: s.name + " is " + err.Error(), Value: val})
		}
	}
	return errors.Join(errs...)
}

func intSetter(field func(*Config) *int) func(*Config, string) error {
	return func(c *Config, val string) error {
		n, err := strconv.Atoi(val)
		if err != nil {
			return errors.New("not an integer")
		}
		*field(c) = n
		return nil
	}
}

func boolSetter(field func(*Config) *bool) func(*Config, string) error {
	return func(c *Config, val string) error {
		b, err := strconv.ParseBool(val)
		if err != nil {
			return errors.New("not a boolean")
		}
		*field(c) = b
		return nil
	}
}
