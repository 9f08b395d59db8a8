// Package config loads the settings of a textlayout host.
//
// Settings come from three places, each overriding the one before:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← TEXTLAYOUT_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← settings.toml or settings.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Configuration Files
//
// The format is chosen by extension. TOML:
//
//	[editor]
//	tabSize = 2
//	wordWrap = true
//	maxTextLength = 1048576
//
//	[undo]
//	maxBytes = 4194304
//	maxPoints = 1000
//
//	[logging]
//	level = "debug"
//
// YAML uses the same keys.
//
// # Basic Usage
//
//	cfg, err := config.Load(path)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	e := engine.New(cfg.EngineOptions()...)
//
// # Live Reload
//
// A Watcher reloads the file when it changes on disk and hands the new
// Config, or the error that prevented loading it, to a handler:
//
//	w, err := config.NewWatcher(path, func(cfg *config.Config, err error) {
//	    // Called on the watcher goroutine.
//	})
//	defer w.Close()
//
// # Error Handling
//
//   - ErrInvalidValue: a setting is out of range (wrapped by ValidationError)
//   - ErrUnsupportedFormat: the file extension is not .toml, .yaml or .yml
//   - ParseError: the file could not be decoded
package config
