// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package generator

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.astrophena.name/base/logger"
	"go.astrophena.name/cushead/internal/config"

	"github.com/fsnotify/fsnotify"
)

var serveReadyHook func() // used in tests, called when Serve started serving the output

// debouncer delays execution of a function until a specified duration has
// passed without any new events.
type debouncer struct {
	d       time.Duration
	mu      sync.Mutex
	f       func()
	t       *time.Timer
	stopped bool
}

func newDebouncer(d time.Duration, f func()) *debouncer {
	return &debouncer{
		d: d,
		f: f,
	}
}

// Do schedules a function to be executed.
func (d *debouncer) Do() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.t != nil {
		d.t.Stop()
	}

	d.t = time.AfterFunc(d.d, d.f)
}

// Stop cancels a pending execution. Later calls to Do are ignored.
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.t != nil {
		d.t.Stop()
	}
}

// watchState holds the settings Serve currently watches for.
type watchState struct {
	gc      *Config
	watcher *fsnotify.Watcher
	c       atomic.Pointer[config.Config]
}

// reload loads the settings again and starts watching directories of newly
// configured images.
func (s *watchState) reload(ctx context.Context) error {
	c, err := config.Load(s.gc.Settings, s.gc.Output)
	if err != nil {
		return err
	}
	for _, dir := range watchDirs(c) {
		if err := s.watcher.Add(dir); err != nil {
			logger.Error(ctx, "failed to watch directory", slog.String("dir", dir), slog.Any("err", err))
		}
	}
	s.c.Store(c)
	return nil
}

// Serve generates the output, serves it on a provided host:port and
// regenerates it when the settings file or a source image changes.
func Serve(ctx context.Context, gc *Config, addr string) error {
	gc.setDefaults()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	state := &watchState{gc: gc, watcher: watcher}
	if err := state.reload(ctx); err != nil {
		return err
	}
	c := state.c.Load()

	logger.Info(ctx, "performing an initial generation")
	if err := Generate(ctx, gc); err != nil {
		logger.Error(ctx, "initial generation failed", slog.Any("err", err))
	}

	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer l.Close()
	logger.Info(ctx, "listening for HTTP requests", slog.String("addr", "http://"+l.Addr().String()))

	httpSrv := &http.Server{Handler: &staticHandler{fs: os.DirFS(c.OutputFolderPath)}}
	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(l); err != nil {
			if err != http.ErrServerClosed {
				errCh <- err
			}
		}
	}()

	regenerate := func() {
		if err := state.reload(ctx); err != nil {
			logger.Error(ctx, "failed to reload settings", slog.Any("err", err))
			return
		}
		logger.Info(ctx, "triggering generation")
		if err := Generate(ctx, gc); err != nil {
			logger.Error(ctx, "failed to regenerate", slog.Any("err", err))
		}
	}
	// Image editors save in several steps, wait for them to settle.
	debouncer := newDebouncer(250*time.Millisecond, regenerate)
	defer debouncer.Stop()

	go func() {
		logger.Info(ctx, "started watching for new changes")

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !shouldRegenerate(state.c.Load(), event.Name, event.Op) {
					continue
				}
				logger.Info(ctx, "detected change, scheduling generation",
					slog.String("name", event.Name),
					slog.Any("op", event.Op),
				)
				debouncer.Do()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Error(ctx, "watcher error", slog.Any("err", err))
			case <-ctx.Done():
				return
			}
		}
	}()

	if serveReadyHook != nil {
		serveReadyHook()
	}

	select {
	case <-ctx.Done():
		logger.Info(ctx, "gracefully shutting down")
	case err := <-errCh:
		return err
	}
	debouncer.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return httpSrv.Shutdown(shutdownCtx)
}

// watchDirs returns the directories holding the settings file and the
// source images.
func watchDirs(c *config.Config) []string {
	dirs := []string{c.MainFolderPath}
	for _, src := range []string{c.FaviconICO, c.FaviconPNG, c.FaviconSVG, c.PreviewPNG} {
		if src == "" {
			continue
		}
		if !filepath.IsAbs(src) {
			src = filepath.Join(c.MainFolderPath, src)
		}
		dirs = append(dirs, filepath.Dir(src))
	}
	slices.Sort(dirs)
	return slices.Compact(dirs)
}

// Based on
// https://github.com/brandur/modulir/blob/1ff912fdc45a79cb4d8d9f199d213ae9c3598cbd/watch.go#L201.
func shouldRegenerate(c *config.Config, name string, op fsnotify.Op) bool {
	// Our own output.
	if name == c.OutputFolderPath || strings.HasPrefix(name, c.OutputFolderPath+string(filepath.Separator)) {
		return false
	}

	base := filepath.Base(name)

	// Mac OS' worst mistake.
	if base == ".DS_Store" {
		return false
	}

	// Vim creates this temporary file to see whether it can write into a target
	// directory.
	if base == "4913" {
		return false
	}

	// Vim backups.
	if strings.HasSuffix(base, "~") {
		return false
	}

	// Renames produce a following create event, and chmod doesn't change
	// the output.
	return op&(fsnotify.Create|fsnotify.Remove|fsnotify.Write) != 0
}

type staticHandler struct {
	fs fs.FS
}

func (h *staticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p := r.URL.Path
	if p == "/" {
		p += "/index.html"
	}
	p = strings.TrimPrefix(path.Clean(p), "/")

	d, err := fs.Stat(h.fs, p)
	if errors.Is(err, fs.ErrNotExist) {
		http.NotFound(w, r)
		return
	} else if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if d.IsDir() {
		http.NotFound(w, r)
		return
	}

	f, err := h.fs.Open(p)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	http.ServeContent(w, r, d.Name(), d.ModTime(), bytes.NewReader(b))
}
