package preview

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func siteDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>rent vs buy</h1>"), 0o600))
	return dir
}

func TestHandler_ServesFiles(t *testing.T) {
	s := New(Config{Dir: siteDir(t)})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "rent vs buy")

	missing, err := http.Get(ts.URL + "/nope.html")
	require.NoError(t, err)
	missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestHandler_HealthAndStatus(t *testing.T) {
	dir := siteDir(t)
	s := New(Config{Dir: dir})
	h := s.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, "ok\n", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/_preview/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var st Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, dir, st.Dir)
	assert.Equal(t, int64(1), st.Requests) // the health check
}

func TestHandler_CORSLocalhostOnly(t *testing.T) {
	h := New(Config{Dir: siteDir(t)}).Handler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestListen_SkipsBusyPorts(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()
	port := busy.Addr().(*net.TCPAddr).Port

	_, err = Listen("127.0.0.1", port, 1)
	assert.ErrorIs(t, err, ErrNoFreePort)

	ln, err := Listen("127.0.0.1", port, 5)
	if err != nil {
		t.Skipf("no free port near %d: %v", port, err)
	}
	defer ln.Close()
	assert.NotEqual(t, port, ln.Addr().(*net.TCPAddr).Port)
}

func TestListen_RejectsNoAttempts(t *testing.T) {
	for _, attempts := range []int{0, -3} {
		_, err := Listen("127.0.0.1", DefaultStartPort, attempts)
		assert.ErrorIs(t, err, ErrInvalidAttempts)
		assert.NotErrorIs(t, err, ErrNoFreePort)
	}
}

func TestDefaults_ProbeThrough8100(t *testing.T) {
	assert.Equal(t, 8100, DefaultStartPort+DefaultMaxAttempts-1)

	s := New(Config{})
	assert.Equal(t, DefaultMaxAttempts, s.cfg.MaxAttempts)
	assert.Equal(t, DefaultHost, s.cfg.Host)
}

func TestURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8000/", URL(&net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 8000}))
	assert.Equal(t, "http://localhost:8001/", URL(&net.TCPAddr{IP: net.IPv6unspecified, Port: 8001}))
	assert.Equal(t, "http://192.168.1.5:8000/", URL(&net.TCPAddr{IP: net.ParseIP("192.168.1.5"), Port: 8000}))
}

func TestRun_OpensBrowserAndShutsDown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := New(Config{Dir: siteDir(t), OpenBrowser: true, OpenDelay: time.Millisecond})

	var (
		mu     sync.Mutex
		opened string
	)
	done := make(chan struct{})
	s.open = func(url string) error {
		mu.Lock()
		opened = url
		mu.Unlock()
		close(done)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Run(ctx, ln) }()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("browser was never opened")
	}

	port := ln.Addr().(*net.TCPAddr).Port
	resp, err := http.Get("http://127.0.0.1:" + strconv.Itoa(port) + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "http://localhost:"+strconv.Itoa(port)+"/", opened)
}
