package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/lectern/lectern/config"
	"github.com/lectern/lectern/logging"
	"github.com/lectern/lectern/site"
	"github.com/lectern/lectern/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

func builtServer(t *testing.T) (*Server, string) {
	t.Helper()
	root := testutil.NewCourseProject(t)
	cfg, err := config.LoadFrom(root)
	require.NoError(t, err)

	_, err = site.NewBuilder(cfg, site.Options{}).Build(context.Background())
	require.NoError(t, err)

	return New(cfg, Options{}), root
}

func TestHandlerServesPages(t *testing.T) {
	srv, _ := builtServer(t)

	req := httptest.NewRequest(http.MethodGet, "/mod1/intro/", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Introduction")
	assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))
}

func TestHandlerNotFound(t *testing.T) {
	srv, _ := builtServer(t)

	req := httptest.NewRequest(http.MethodGet, "/nope/", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerCustom404Page(t *testing.T) {
	srv, root := builtServer(t)
	testutil.WriteFile(t, root, "public/404.html", "<h1>Lost?</h1>")

	req := httptest.NewRequest(http.MethodGet, "/nope/", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Lost?")
}

func TestHandlerNoDirectoryListing(t *testing.T) {
	srv, root := builtServer(t)
	// A directory with files but no index.html must not list its contents.
	testutil.WriteFile(t, root, "public/assets/data.csv", "a,b\n")

	req := httptest.NewRequest(http.MethodGet, "/assets/", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), "data.csv")
}

func TestServeScript(t *testing.T) {
	rec := httptest.NewRecorder()
	ServeScript(rec, httptest.NewRequest(http.MethodGet, "/livereload.js", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "javascript")
	assert.Contains(t, rec.Body.String(), "location.reload()")
}

func TestPortPrecedence(t *testing.T) {
	root := testutil.NewCourseProject(t)
	cfg, err := config.LoadFrom(root)
	require.NoError(t, err)

	assert.Equal(t, 1313, New(cfg, Options{}).Port())
	assert.Equal(t, 8080, New(cfg, Options{Port: 8080}).Port())

	cfg.Serve.Port = 4000
	assert.Equal(t, 4000, New(cfg, Options{}).Port())
	assert.Equal(t, "http://localhost:4000/", New(cfg, Options{}).URL())
}

func TestRebuildConcurrentWithRequests(t *testing.T) {
	srv, _ := builtServer(t)
	handler := srv.Handler()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	// Config reloads from the watcher path must not race with request
	// handling or port resolution.
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				rec := httptest.NewRecorder()
				handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/mod1/intro/", nil))
				_ = srv.Port()
				_ = srv.URL()
			}
		}()
	}
	for i := 0; i < 3; i++ {
		_, err := srv.rebuild(ctx)
		require.NoError(t, err)
	}
	wg.Wait()
}

func TestChangeNotificationsUseContextWriter(t *testing.T) {
	srv, _ := builtServer(t)

	var buf bytes.Buffer
	ctx := logging.WithWriter(context.Background(), &buf)
	srv.onChange(ctx)

	assert.Contains(t, buf.String(), "Rebuilt after change")
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	ts := httptest.NewServer(hub)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/livereload"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	hub.Broadcast(ReloadMessage)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, ReloadMessage, string(msg))

	hub.CloseAll()
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 },
		time.Second, 10*time.Millisecond)
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32

	w, err := NewWatcher([]string{dir}, nil, 100*time.Millisecond, func() {
		calls.Add(1)
	})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(dir+"/page.md", []byte("x"), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 },
		2*time.Second, 20*time.Millisecond)
	// Give a potential second callback time to fire; it must not.
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatcherIgnoresOutputTree(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(dir+"/public", 0755))
	var calls atomic.Int32

	w, err := NewWatcher([]string{dir}, []string{dir + "/public"}, 50*time.Millisecond, func() {
		calls.Add(1)
	})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	require.NoError(t, os.WriteFile(dir+"/public/index.html", []byte("x"), 0644))
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}
