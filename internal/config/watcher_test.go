package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

type reload struct {
	cfg *Config
	err error
}

func startWatcher(t *testing.T, path string) (*Watcher, <-chan reload) {
	t.Helper()
	ch := make(chan reload, 16)
	w, err := NewWatcher(path, func(cfg *Config, err error) {
		ch <- reload{cfg, err}
	}, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	t.Cleanup(func() { w.Close() })
	return w, ch
}

func waitReload(t *testing.T, ch <-chan reload) reload {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
		return reload{}
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := writeFile(t, "settings.toml", "[editor]\ntabSize = 2\n")
	w, ch := startWatcher(t, path)

	if w.Path() != path {
		t.Errorf("Path() = %q, want %q", w.Path(), path)
	}

	if err := os.WriteFile(path, []byte("[editor]\ntabSize = 6\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	r := waitReload(t, ch)
	if r.err != nil {
		t.Fatalf("reload error: %v", r.err)
	}
	if r.cfg.Editor.TabSize != 6 {
		t.Errorf("Editor.TabSize = %d, want 6", r.cfg.Editor.TabSize)
	}
}

func TestWatcherReportsBadFile(t *testing.T) {
	path := writeFile(t, "settings.toml", "[editor]\ntabSize = 2\n")
	_, ch := startWatcher(t, path)

	if err := os.WriteFile(path, []byte("[editor\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	r := waitReload(t, ch)
	var perr *ParseError
	if !errors.As(r.err, &perr) {
		t.Errorf("reload error = %v, want *ParseError", r.err)
	}
	if r.cfg != nil {
		t.Error("reload returned a config alongside an error")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	path := writeFile(t, "settings.toml", "[editor]\ntabSize = 2\n")
	_, ch := startWatcher(t, path)

	other := filepath.Join(filepath.Dir(path), "other.toml")
	if err := os.WriteFile(other, []byte("x = 1\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	select {
	case r := <-ch:
		t.Errorf("unexpected reload: %+v", r)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherUnsupportedFormat(t *testing.T) {
	path := writeFile(t, "settings.json", "{}")
	if _, err := NewWatcher(path, nil); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("NewWatcher() = %v, want ErrUnsupportedFormat", err)
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	path := writeFile(t, "settings.toml", "")
	w, _ := startWatcher(t, path)
	if err := w.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}

func TestWatcherCloseWaitsForHandler(t *testing.T) {
	path := writeFile(t, "settings.toml", "[editor]\ntabSize = 2\n")
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	var calls atomic.Int32
	w, err := NewWatcher(path, func(*Config, error) {
		calls.Add(1)
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
	}, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}

	if err := os.WriteFile(path, []byte("[editor]\ntabSize = 6\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for the handler")
	}

	done := make(chan struct{})
	go func() {
		w.Close()
		close(done)
	}()
	select {
	case <-done:
		t.Fatal("Close returned while the handler was running")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Close did not return after the handler finished")
	}

	n := calls.Load()
	if err := os.WriteFile(path, []byte("[editor]\ntabSize = 4\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	time.Sleep(200 * time.Millisecond)
	if got := calls.Load(); got != n {
		t.Errorf("handler calls after Close = %d, want %d", got, n)
	}
}
