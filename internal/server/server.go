package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/cors"

	"github.com/wigest/chartboard/internal/chartjs"
	"github.com/wigest/chartboard/internal/page"
	"github.com/wigest/chartboard/internal/render"
	"github.com/wigest/chartboard/internal/store"
)

const (
	// shutdownTimeout bounds graceful shutdown of in-flight requests.
	shutdownTimeout = 5 * time.Second

	// defaultCacheSize is the number of rendered images kept in memory.
	defaultCacheSize = 64
)

// Config holds the server settings.
type Config struct {
	// Port is the TCP port to listen on. Zero picks a free port.
	Port int

	// Title and Base are substituted into the page template.
	Title string
	Base  string

	// Missing is the browser-side missing container policy ("fail" or "skip").
	Missing string

	// Page is the dashboard page template.
	Page []byte

	// Static is served under /assets/. May be nil.
	Static fs.FS

	// CacheSize is the number of rendered images to cache. Zero uses a default.
	CacheSize int
}

// Server handles HTTP requests for the dashboard, its API and images.
//
// The server is designed for graceful shutdown via context cancellation.
type Server struct {
	store      store.Store
	cfg        Config
	images     *lru.Cache[string, []byte]
	httpServer *http.Server
	logger     *slog.Logger

	mu   sync.Mutex
	addr string
}

// NewServer creates a new HTTP [Server] reading charts from st.
//
// The server is not started until [Server.Start] is called.
// Returns an error if the image cache cannot be created.
func NewServer(st store.Store, cfg Config, logger *slog.Logger) (*Server, error) {
	size := cfg.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	images, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create image cache: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		store:  st,
		cfg:    cfg,
		images: images,
		logger: logger,
	}, nil
}

// Handler returns the server's routes. Responses are gzip-compressed when
// the client accepts it.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /api/charts", s.handleCharts)
	api.HandleFunc("GET /api/charts/{id}", s.handleChart)
	api.HandleFunc("GET /charts/{file}", s.handleImage)

	withCORS := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
	}).Handler(api)

	mux := http.NewServeMux()
	mux.Handle("/api/", withCORS)
	mux.Handle("/charts/", withCORS)
	mux.HandleFunc("GET /{$}", s.handleDashboard)
	if s.cfg.Static != nil {
		mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(s.cfg.Static)))
	}
	return gzhttp.GzipHandler(mux)
}

// Start begins serving HTTP requests in a background goroutine.
//
// Start is non-blocking and returns immediately after confirming the server
// is listening. The server will continue running until the context is
// cancelled, at which point it initiates a graceful shutdown.
//
// Returns an error if the server fails to bind to the configured port.
func (s *Server) Start(ctx context.Context) error {
	// create listener first to verify port availability synchronously
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("failed to bind to port %d: %w", s.cfg.Port, err)
	}

	s.mu.Lock()
	s.addr = ln.Addr().String()
	s.mu.Unlock()

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server error", "error", err)
		}
	}()

	// shutdown on context cancellation
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("http server shutdown error", "error", err)
		}
	}()

	return nil
}

// Addr returns the listening address once [Server.Start] has succeeded.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// entries converts the mounted charts to page entries in mount order.
func (s *Server) entries() []page.Entry {
	records := s.store.GetAll()
	out := make([]page.Entry, len(records))
	for i, rec := range records {
		out[i] = page.Entry{ID: rec.ContainerID, Config: chartjs.FromChart(rec.Chart)}
	}
	return out
}

// handleDashboard serves the dashboard page with the mounted charts inlined.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if len(s.cfg.Page) == 0 {
		http.Error(w, "Dashboard not found", http.StatusInternalServerError)
		return
	}

	body, err := page.Render(s.cfg.Page, page.Data{
		Title:   s.cfg.Title,
		Base:    s.cfg.Base,
		Missing: s.cfg.Missing,
		Charts:  s.entries(),
	})
	if err != nil {
		s.logger.Error("failed to render dashboard", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(body); err != nil {
		s.logger.Error("failed to write dashboard response", "error", err)
	}
}

// handleCharts returns every mounted chart as JSON, in mount order.
func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.entries())
}

// handleChart returns a single mounted chart.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.store.Get(r.PathValue("id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.writeJSON(w, page.Entry{ID: rec.ContainerID, Config: chartjs.FromChart(rec.Chart)})
}

// handleImage renders a mounted chart as PNG or SVG.
//
// The file name is "<id>.<format>"; the optional w and h query parameters
// set the size in pixels.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	dot := strings.LastIndex(file, ".")
	if dot <= 0 {
		http.NotFound(w, r)
		return
	}
	id, ext := file[:dot], file[dot+1:]

	format, err := render.ParseFormat(ext)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	rec, ok := s.store.Get(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	width, err := sizeParam(r, "w", render.DefaultWidth)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	height, err := sizeParam(r, "h", render.DefaultHeight)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// handle id changes on remount, so a stale image is never served
	key := fmt.Sprintf("%s|%s|%s|%dx%d", id, rec.HandleID, format, width, height)
	img, ok := s.images.Get(key)
	if !ok {
		var buf bytes.Buffer
		if err := render.Image(&buf, rec.Chart, format, width, height); err != nil {
			s.logger.Error("failed to render chart image", "container", id, "format", string(format), "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		img = buf.Bytes()
		s.images.Add(key, img)
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "no-cache")
	if _, err := w.Write(img); err != nil {
		s.logger.Error("failed to write image response", "error", err)
	}
}

// sizeParam reads an image dimension from the query string.
func sizeParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < render.MinSize || n > render.MaxSize {
		return 0, fmt.Errorf("%s must be an integer between %d and %d", name, render.MinSize, render.MaxSize)
	}
	return n, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}
