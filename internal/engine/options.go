package engine

import (
	"github.com/dshills/textlayout/internal/engine/history"
	"github.com/dshills/textlayout/internal/logging"
)

// Default configuration values.
const (
	DefaultTabSize       = 4
	DefaultMaxTextLength = 1 << 30
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithText sets the initial text of the engine.
func WithText(text string) Option {
	return func(e *Engine) {
		e.initText = text
	}
}

// WithTabSize sets the number of space widths per tab column.
func WithTabSize(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.tabSize = size
		}
	}
}

// WithMaxTextLength bounds the text length in bytes. Edits that would
// exceed it fail and leave the text unchanged.
func WithMaxTextLength(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxTextLength = max
		}
	}
}

// WithUndoLimits bounds the undo history. maxBytes limits the bytes of
// recorded text and host state, maxPoints the number of undo points.
// Zero means unlimited.
func WithUndoLimits(maxBytes, maxPoints int) Option {
	return func(e *Engine) {
		e.undoOpts = history.Options{
			MaxBytes:  max(maxBytes, 0),
			MaxPoints: max(maxPoints, 0),
		}
	}
}

// WithWordWrap sets whether new views start with word wrap enabled.
func WithWordWrap(enabled bool) Option {
	return func(e *Engine) {
		e.wordWrap = enabled
	}
}

// WithMeasurer sets the text measurer. The default is style.CellMeasurer.
func WithMeasurer(m Measurer) Option {
	return func(e *Engine) {
		if m != nil {
			e.measurer = m
		}
	}
}

// WithHighlighter sets the highlight source.
func WithHighlighter(h Highlighter) Option {
	return func(e *Engine) {
		e.highlighter = h
	}
}

// WithListener sets the notification receiver.
func WithListener(l Listener) Option {
	return func(e *Engine) {
		if l != nil {
			e.listener = l
		}
	}
}

// WithUndoStateProvider sets the source of host data stored with each undo
// point.
func WithUndoStateProvider(p UndoStateProvider) Option {
	return func(e *Engine) {
		e.undoState = p
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}
