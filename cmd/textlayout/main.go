// Package main is a terminal demo host for the textlayout engine.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/textlayout/internal/config"
	"github.com/dshills/textlayout/internal/engine"
	"github.com/dshills/textlayout/internal/host/term"
	"github.com/dshills/textlayout/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

const sample = `// Type to edit. Ctrl+W toggles word wrap, Esc quits.
package main

import "fmt"

func main() {
	for i := 0; i < 3; i++ {
		fmt.Println("hello, world", i)
	}
}
`

type options struct {
	configPath string
	logPath    string
	watch      bool
	text       string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	log, closeLog, err := openLog(opts.logPath, cfg.LogLevel())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open log: %v\n", err)
		return 1
	}
	defer closeLog()

	text := sample
	if opts.text != "" {
		text = opts.text
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer screen.Fini()
	screen.EnableMouse()

	engineOpts := append(cfg.EngineOptions(), engine.WithText(text))
	h := term.New(screen, engineOpts, term.WithLogger(log))

	if opts.watch && opts.configPath != "" {
		w, err := config.NewWatcher(opts.configPath, func(next *config.Config, err error) {
			if err != nil {
				log.Warn("config reload: %v", err)
				return
			}
			// best-effort; the event queue may be full
			_ = h.Post(func(h *term.Host) {
				next.Apply(h.Engine(), log)
				h.View().SetWordWrap(next.Editor.WordWrap)
			})
		}, config.WithWatcherLogger(log))
		if err != nil {
			log.Warn("config watch disabled: %v", err)
		} else {
			defer w.Close()
		}
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		screen.Fini()
	}()

	h.Run()
	log.Info("exit after %d undo points", h.Engine().UndoIndex())
	return 0
}

func openLog(path string, level logging.Level) (*logging.Logger, func(), error) {
	if path == "" {
		return logging.Nop(), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	cfg := logging.DefaultConfig()
	cfg.Level = level
	cfg.Output = f
	return logging.New(cfg), func() { f.Close() }, nil
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to a TOML or YAML configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logPath, "log", "", "Write logs to this file")
	flag.StringVar(&opts.text, "text", "", "Initial text (defaults to a built-in sample)")
	flag.BoolVar(&opts.watch, "watch", true, "Reload the configuration file when it changes")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "textlayout - terminal host for the text layout engine\n\n")
		fmt.Fprintf(os.Stderr, "Usage: textlayout [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		for _, v := range config.EnvVars() {
			fmt.Fprintf(os.Stderr, "  %s\n", v)
		}
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("textlayout %s (%s)\n", version, commit)
		os.Exit(0)
	}
	return opts
}
