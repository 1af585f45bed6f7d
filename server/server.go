// Package server implements the development server behind `lectern serve`:
// a static file server over the build output, a recursive file watcher that
// triggers rebuilds, and a websocket hub that tells open browser tabs to
// reload after each successful rebuild.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"

	"github.com/lectern/lectern/command"
	"github.com/lectern/lectern/config"
	"github.com/lectern/lectern/errors"
	"github.com/lectern/lectern/logging"
	"github.com/lectern/lectern/site"
)

const (
	// DefaultPort is used when neither the flag nor serve.port is set.
	DefaultPort = 1313

	// rebuildDebounce collapses editor save bursts into one rebuild.
	rebuildDebounce = 300 * time.Millisecond

	shutdownTimeout = 5 * time.Second
)

// Options tweak one serve session.
type Options struct {
	// Port overrides serve.port from course.yml when non-zero.
	Port int
	// Open launches the default browser once the server is listening.
	Open bool
	// Drafts builds pages marked draft.
	Drafts bool
}

// Server ties the builder, watcher and livereload hub together.
type Server struct {
	projectRoot string
	opts        Options
	hub         *Hub
	log         *logging.UnifiedLogger

	// cfgMu guards cfg: rebuild replaces it from the watcher goroutine
	// while request handlers read it.
	cfgMu sync.RWMutex
	cfg   *config.Config
}

// New creates a server for an already-loaded configuration.
func New(cfg *config.Config, opts Options) *Server {
	return &Server{
		projectRoot: cfg.ProjectRoot(),
		cfg:         cfg,
		opts:        opts,
		hub:         NewHub(),
		log:         logging.NewUnifiedLogger("server"),
	}
}

// config returns the current configuration snapshot.
func (s *Server) config() *config.Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg
}

func (s *Server) setConfig(cfg *config.Config) {
	s.cfgMu.Lock()
	s.cfg = cfg
	s.cfgMu.Unlock()
}

// Port returns the effective listen port.
func (s *Server) Port() int {
	if s.opts.Port != 0 {
		return s.opts.Port
	}
	if cfg := s.config(); cfg.Serve.Port != 0 {
		return cfg.Serve.Port
	}
	return DefaultPort
}

// URL returns the local address the site is served on.
func (s *Server) URL() string {
	return fmt.Sprintf("http://localhost:%d/", s.Port())
}

// Run builds the site, starts watching and serving, and blocks until the
// context is cancelled or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	report, err := s.rebuild(ctx)
	if err != nil {
		return err
	}
	report.Print(s.config().AbsOutputDir())

	watcher, err := NewWatcher(s.watchPaths(), s.ignorePaths(), rebuildDebounce, func() {
		s.onChange(ctx)
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeWatchFailed, "failed to start file watcher")
	}
	defer watcher.Close()
	go watcher.Start(ctx)

	mux := http.NewServeMux()
	mux.Handle("/livereload", s.hub)
	mux.HandleFunc("/livereload.js", ServeScript)
	mux.Handle("/", s.Handler())

	addr := fmt.Sprintf(":%d", s.Port())
	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- errors.ServerStart(addr, err)
		}
	}()

	s.log.Success(fmt.Sprintf("Serving %s on %s", s.config().Course.Name, s.URL())).
		Field("port", s.Port()).
		Log(ctx)
	s.log.Status("Watching for changes. Press Ctrl+C to stop.").PrettyOnly().Log(ctx)

	if s.opts.Open || s.config().ServeOpen() {
		s.openBrowser(ctx)
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.hub.CloseAll()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// onChange runs the watcher-triggered rebuild and reports its outcome on
// both the console and the structured log.
func (s *Server) onChange(ctx context.Context) {
	rebuilt, err := s.rebuild(ctx)
	if err != nil {
		s.log.Error("Rebuild failed").Err(err).Log(ctx)
		return
	}
	s.log.Success("Rebuilt after change").Field("pages", rebuilt.PageCount()).Log(ctx)
	s.hub.Broadcast(ReloadMessage)
}

// rebuild reloads the configuration so course.yml edits take effect, then
// runs a full build with livereload injection enabled.
func (s *Server) rebuild(ctx context.Context) (*site.Report, error) {
	cfg, err := config.LoadFrom(s.projectRoot)
	if err != nil {
		return nil, err
	}
	s.setConfig(cfg)

	return site.NewBuilder(cfg, site.Options{
		Drafts:     s.opts.Drafts,
		LiveReload: true,
	}).Build(ctx)
}

// watchPaths lists the directories whose changes should trigger a rebuild.
// The project root is watched so course.yml edits are picked up.
func (s *Server) watchPaths() []string {
	if s.projectRoot != "" {
		return []string{s.projectRoot}
	}
	cfg := s.config()
	return []string{
		cfg.AbsContentDir(),
		cfg.AbsLayoutsDir(),
		cfg.AbsStaticDir(),
	}
}

// ignorePaths lists subtrees the watcher must skip. The builder rewrites the
// output directory on every run; watching it would rebuild forever.
func (s *Server) ignorePaths() []string {
	paths := []string{s.config().AbsOutputDir()}
	if s.projectRoot != "" {
		paths = append(paths, filepath.Join(s.projectRoot, ".lectern"))
	}
	return paths
}

func (s *Server) openBrowser(ctx context.Context) {
	cmd, err := command.NewSafeBuilder().OpenBrowser(ctx, s.URL())
	if err != nil {
		s.log.Warn("Cannot open browser").Err(err).Log(ctx)
		return
	}
	if err := cmd.Exec().Start(); err != nil {
		s.log.Warn("Failed to open browser").Err(err).Log(ctx)
	}
}

// Handler serves the output directory with development-friendly behavior:
// no directory listings, no caching, and a 404.html fallback when present.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		root := s.config().AbsOutputDir()

		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")

		clean := path.Clean("/" + r.URL.Path)
		target := filepath.Join(root, filepath.FromSlash(clean))

		info, err := os.Stat(target)
		if err != nil {
			s.serveNotFound(w, root)
			return
		}
		if info.IsDir() {
			if _, err := os.Stat(filepath.Join(target, "index.html")); err != nil {
				s.serveNotFound(w, root)
				return
			}
		}
		http.FileServer(http.Dir(root)).ServeHTTP(w, r)
	})
}

func (s *Server) serveNotFound(w http.ResponseWriter, root string) {
	if data, err := os.ReadFile(filepath.Join(root, "404.html")); err == nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		w.Write(data)
		return
	}
	http.Error(w, "404 page not found", http.StatusNotFound)
}
