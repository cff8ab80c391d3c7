// Package preview serves a local directory over HTTP so the published site
// can be checked in a browser before it goes live.
package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Errors returned by Listen.
var (
	ErrNoFreePort      = eris.New("no free port")
	ErrInvalidAttempts = eris.New("port attempts must be at least 1")
)

// Defaults for Config.
const (
	DefaultHost        = "127.0.0.1"
	DefaultStartPort   = 8000
	DefaultMaxAttempts = 101 // 8000 through 8100
	DefaultOpenDelay   = 1500 * time.Millisecond

	shutdownTimeout = 5 * time.Second
)

// Config controls the preview server.
type Config struct {
	Dir         string
	Host        string
	StartPort   int
	MaxAttempts int
	OpenBrowser bool
	OpenDelay   time.Duration
}

// Status is served at /_preview/status.
type Status struct {
	StartedAt time.Time `json:"started_at"`
	Dir       string    `json:"dir"`
	URL       string    `json:"url"`
	Requests  int64     `json:"requests"`
}

// Server serves Config.Dir.
type Server struct {
	cfg       Config
	startedAt time.Time
	url       atomic.Value // string
	requests  atomic.Int64

	open func(url string) error
}

// New returns a server for cfg with defaults filled in.
func New(cfg Config) *Server {
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.StartPort == 0 {
		cfg.StartPort = DefaultStartPort
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.OpenDelay == 0 {
		cfg.OpenDelay = DefaultOpenDelay
	}

	s := &Server{
		cfg:       cfg,
		startedAt: time.Now(),
		open:      OpenBrowser,
	}
	s.url.Store("")
	return s
}

// Listen binds the first free port on host, starting at start and trying
// at most attempts ports. Errors other than "address in use" stop the probe.
func Listen(host string, start, attempts int) (net.Listener, error) {
	if attempts < 1 {
		return nil, eris.Wrapf(ErrInvalidAttempts, "got %d", attempts)
	}
	for port := start; port < start+attempts; port++ {
		ln, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
		if err == nil {
			return ln, nil
		}
		if !errors.Is(err, syscall.EADDRINUSE) {
			return nil, eris.Wrapf(err, "preview: listen on port %d", port)
		}
		zap.L().Debug("port in use", zap.Int("port", port))
	}
	return nil, eris.Wrapf(ErrNoFreePort, "ports %d-%d", start, start+attempts-1)
}

// URL returns the browser URL for a listener address. Loopback addresses
// are shown as localhost.
func URL(addr net.Addr) string {
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return "http://" + addr.String() + "/"
	}
	if ip := net.ParseIP(host); ip == nil || ip.IsLoopback() || ip.IsUnspecified() {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s/", net.JoinHostPort(host, port))
}

// Handler returns the router: health and status endpoints plus the static
// file server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Get("/_preview/status", s.handleStatus)
	r.Handle("/*", http.FileServer(http.Dir(s.cfg.Dir)))
	return r
}

// Run serves on ln until ctx is canceled, then shuts down gracefully. If
// OpenBrowser is set, the site is opened after OpenDelay.
func (s *Server) Run(ctx context.Context, ln net.Listener) error {
	url := URL(ln.Addr())
	s.url.Store(url)

	server := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "preview: serve")
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return eris.Wrap(err, "preview: shutdown")
		}
		return nil
	})

	if s.cfg.OpenBrowser {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return nil
			case <-time.After(s.cfg.OpenDelay):
			}
			if err := s.open(url); err != nil {
				zap.L().Warn("could not open browser", zap.String("url", url), zap.Error(err))
			}
			return nil
		})
	}

	return g.Wait()
}

func (s *Server) status() Status {
	return Status{
		StartedAt: s.startedAt,
		Dir:       s.cfg.Dir,
		URL:       s.url.Load().(string),
		Requests:  s.requests.Load(),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.status())
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.requests.Add(1)
		zap.L().Info("request",
			zap.String("id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("took", time.Since(start)),
		)
	})
}
