package config

import (
	"errors"

	"github.com/dshills/textlayout/internal/engine"
	"github.com/dshills/textlayout/internal/logging"
)

// MaxTabSize is the largest accepted editor.tabSize.
const MaxTabSize = 32

// Config holds every host setting.
type Config struct {
	Editor  EditorConfig  `toml:"editor" yaml:"editor"`
	Undo    UndoConfig    `toml:"undo" yaml:"undo"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// EditorConfig holds text and layout settings.
type EditorConfig struct {
	// TabSize is the number of space widths per tab column.
	TabSize int `toml:"tabSize" yaml:"tabSize"`
	// WordWrap sets whether new views wrap at their width.
	WordWrap bool `toml:"wordWrap" yaml:"wordWrap"`
	// MaxTextLength bounds the text length in bytes.
	MaxTextLength int `toml:"maxTextLength" yaml:"maxTextLength"`
}

// UndoConfig bounds the undo history. Zero means unlimited.
type UndoConfig struct {
	MaxBytes  int `toml:"maxBytes" yaml:"maxBytes"`
	MaxPoints int `toml:"maxPoints" yaml:"maxPoints"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `toml:"level" yaml:"level"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			TabSize:       engine.DefaultTabSize,
			MaxTextLength: engine.DefaultMaxTextLength,
		},
		Undo: UndoConfig{
			MaxBytes: 16 << 20,
		},
		Logging: LoggingConfig{
			Level: logging.LevelInfo.String(),
		},
	}
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}

// Validate checks every setting and returns all failures joined. Each is
// a *ValidationError wrapping ErrInvalidValue.
func (c *Config) Validate() error {
	var errs []error
	if c.Editor.TabSize < 1 || c.Editor.TabSize > MaxTabSize {
		errs = append(errs, &ValidationError{Path: "editor.tabSize", Message: "must be between 1 and 32", Value: c.Editor.TabSize})
	}
	if c.Editor.MaxTextLength < 1 {
		errs = append(errs, &ValidationError{Path: "editor.maxTextLength", Message: "must be positive", Value: c.Editor.MaxTextLength})
	}
	if c.Undo.MaxBytes < 0 {
		errs = append(errs, &ValidationError{Path: "undo.maxBytes", Message: "must not be negative", Value: c.Undo.MaxBytes})
	}
	if c.Undo.MaxPoints < 0 {
		errs = append(errs, &ValidationError{Path: "undo.maxPoints", Message: "must not be negative", Value: c.Undo.MaxPoints})
	}
	if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
		errs = append(errs, &ValidationError{Path: "logging.level", Message: "unknown level", Value: c.Logging.Level})
	}
	return errors.Join(errs...)
}

// EngineOptions maps the settings onto engine options.
func (c *Config) EngineOptions() []engine.Option {
	return []engine.Option{
		engine.WithTabSize(c.Editor.TabSize),
		engine.WithWordWrap(c.Editor.WordWrap),
		engine.WithMaxTextLength(c.Editor.MaxTextLength),
		engine.WithUndoLimits(c.Undo.MaxBytes, c.Undo.MaxPoints),
	}
}

// LogLevel returns the configured level, or LevelInfo if it is unknown.
func (c *Config) LogLevel() logging.Level {
	level, _ := logging.ParseLevel(c.Logging.Level)
	return level
}

// Apply pushes the settings that can change at runtime onto a live
// engine and logger: tab size, undo limits and log level.
func (c *Config) Apply(e *engine.Engine, log *logging.Logger) {
	if e != nil {
		e.SetTabSize(c.Editor.TabSize)
		e.SetUndoLimits(c.Undo.MaxBytes, c.Undo.MaxPoints)
	}
	if log != nil {
		log.SetLevel(c.LogLevel())
	}
}
