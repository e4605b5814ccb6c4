package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/wigest/chartboard/chart"
	"github.com/wigest/chartboard/internal/page"
	"github.com/wigest/chartboard/internal/store"
)

// testLogger returns a logger that discards all output for clean test output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const testPage = `<title>{{.Title}}</title><canvas id="chartA"></canvas>` +
	`<script type="application/json" id="chart-data">{{.ChartData}}</script>` +
	`<script src="{{.Base}}assets/main.js"></script>`

func testChart(t *testing.T, kind chart.Kind, labels []string, values []float64) chart.Chart {
	t.Helper()
	ds, err := chart.NewDataset("Series", values)
	if err != nil {
		t.Fatalf("NewDataset() error = %v", err)
	}
	c, err := chart.New(kind, labels, chart.WithDataset(ds))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

// newTestServer returns a server over a store holding chartA (bar) and chartB (pie).
func newTestServer(t *testing.T, cfg Config) (*Server, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	st.Put(store.Record{ContainerID: "chartA", HandleID: "h-a",
		Chart: testChart(t, chart.KindBar, []string{"x", "y", "z"}, []float64{3, 2, 1})})
	st.Put(store.Record{ContainerID: "chartB", HandleID: "h-b",
		Chart: testChart(t, chart.KindPie, []string{"on", "off"}, []float64{80, 20})})

	if cfg.Page == nil {
		cfg.Page = []byte(testPage)
	}
	srv, err := NewServer(st, cfg, testLogger())
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	return srv, st
}

func get(t *testing.T, h http.Handler, target string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleDashboard_InlinesMountedCharts(t *testing.T) {
	srv, _ := newTestServer(t, Config{Title: "Wigest Admin", Base: "./", Missing: "skip"})

	rec := get(t, srv.Handler(), "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}

	body := rec.Body.String()
	for _, want := range []string{
		"<title>Wigest Admin</title>",
		`src="./assets/main.js"`,
		`"missing":"skip"`,
		`"id":"chartA"`,
		`"id":"chartB"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %s\nGot: %s", want, body)
		}
	}
}

func TestHandleDashboard_NonRootPath(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	rec := get(t, srv.Handler(), "/other")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleDashboard_NoPage(t *testing.T) {
	st := store.NewMemoryStore()
	srv, err := NewServer(st, Config{}, testLogger())
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}

	rec := get(t, srv.Handler(), "/")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestHandleDashboard_MethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestHandleCharts_MountOrder(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	rec := get(t, srv.Handler(), "/api/charts")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var entries []page.Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].ID != "chartA" || entries[0].Config.Type != "bar" {
		t.Errorf("entries[0] = %s/%s, want chartA/bar", entries[0].ID, entries[0].Config.Type)
	}
	if entries[1].ID != "chartB" || entries[1].Config.Type != "pie" {
		t.Errorf("entries[1] = %s/%s, want chartB/pie", entries[1].ID, entries[1].Config.Type)
	}
}

func TestHandleChart(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	rec := get(t, srv.Handler(), "/api/charts/chartB")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var entry page.Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got := entry.Config.Data.Labels; len(got) != 2 || got[0] != "on" {
		t.Errorf("labels = %v, want [on off]", got)
	}

	rec = get(t, srv.Handler(), "/api/charts/unknown")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown chart status = %d, want 404", rec.Code)
	}
}

func TestHandleCharts_MethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	req := httptest.NewRequest(http.MethodDelete, "/api/charts", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestHandleCharts_CORS(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	rec := get(t, srv.Handler(), "/api/charts", "Origin", "http://example.com")
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestHandleImage(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	tests := []struct {
		target      string
		contentType string
		prefix      []byte
	}{
		{"/charts/chartA.png", "image/png", []byte("\x89PNG")},
		{"/charts/chartB.svg?w=300&h=300", "image/svg+xml", []byte("<svg")},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(t, srv.Handler(), tt.target)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
			if !bytes.Contains(rec.Body.Bytes()[:min(64, rec.Body.Len())], tt.prefix) {
				t.Errorf("body does not start like %q", tt.prefix)
			}
		})
	}
}

func TestHandleImage_EdgeShapes(t *testing.T) {
	srv, st := newTestServer(t, Config{})
	st.Put(store.Record{ContainerID: "oneDay", HandleID: "h-1",
		Chart: testChart(t, chart.KindLine, []string{"Lundi"}, []float64{120})})
	st.Put(store.Record{ContainerID: "noSync", HandleID: "h-2",
		Chart: testChart(t, chart.KindPie, []string{"ok", "ko"}, []float64{0, 0})})
	st.Put(store.Record{ContainerID: "noProfile", HandleID: "h-3",
		Chart: testChart(t, chart.KindDoughnut, []string{"a", "b"}, []float64{0, 0})})

	for _, target := range []string{
		"/charts/oneDay.png", "/charts/oneDay.svg",
		"/charts/noSync.png", "/charts/noSync.svg",
		"/charts/noProfile.png", "/charts/noProfile.svg",
	} {
		t.Run(target, func(t *testing.T) {
			rec := get(t, srv.Handler(), target)
			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want 200: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandleImage_Cached(t *testing.T) {
	srv, _ := newTestServer(t, Config{CacheSize: 4})

	first := get(t, srv.Handler(), "/charts/chartA.svg").Body.Bytes()
	if srv.images.Len() != 1 {
		t.Fatalf("cache size = %d, want 1", srv.images.Len())
	}
	second := get(t, srv.Handler(), "/charts/chartA.svg").Body.Bytes()

	if !bytes.Equal(first, second) {
		t.Error("cached image differs from first render")
	}
	if srv.images.Len() != 1 {
		t.Errorf("cache size = %d, want 1", srv.images.Len())
	}
}

func TestHandler_GzipWhenAccepted(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	plain := get(t, srv.Handler(), "/charts/chartA.svg")
	if enc := plain.Header().Get("Content-Encoding"); enc != "" {
		t.Fatalf("Content-Encoding = %q without Accept-Encoding", enc)
	}

	rec := get(t, srv.Handler(), "/charts/chartA.svg", "Accept-Encoding", "gzip")
	if enc := rec.Header().Get("Content-Encoding"); enc != "gzip" {
		t.Fatalf("Content-Encoding = %q, want gzip", enc)
	}

	zr, err := gzip.NewReader(rec.Body)
	if err != nil {
		t.Fatalf("gzip.NewReader() error = %v", err)
	}
	body, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !bytes.Equal(body, plain.Body.Bytes()) {
		t.Error("decompressed body differs from the uncompressed response")
	}
}

func TestHandleImage_Errors(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	tests := []struct {
		target string
		code   int
	}{
		{"/charts/unknown.png", http.StatusNotFound},
		{"/charts/chartA.gif", http.StatusNotFound},
		{"/charts/chartA", http.StatusNotFound},
		{"/charts/chartA.png?w=abc", http.StatusBadRequest},
		{"/charts/chartA.png?h=1", http.StatusBadRequest},
		{"/charts/chartA.png?w=99999", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(t, srv.Handler(), tt.target)
			if rec.Code != tt.code {
				t.Errorf("status = %d, want %d", rec.Code, tt.code)
			}
		})
	}
}

func TestStaticAssets(t *testing.T) {
	static := fstest.MapFS{
		"main.js": &fstest.MapFile{Data: []byte("console.log('ok')")},
	}
	srv, _ := newTestServer(t, Config{Static: static})

	rec := get(t, srv.Handler(), "/assets/main.js")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "console.log") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestStart_ServesAndShutsDown(t *testing.T) {
	srv, _ := newTestServer(t, Config{Port: 0})

	ctx, cancel := context.WithCancel(context.Background())
	if err := srv.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	_, port, err := net.SplitHostPort(srv.Addr())
	if err != nil {
		t.Fatalf("Addr() = %q: %v", srv.Addr(), err)
	}
	addr := net.JoinHostPort("127.0.0.1", port)

	resp, err := http.Get("http://" + addr + "/api/charts")
	if err != nil {
		t.Fatalf("GET /api/charts error = %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	cancel()

	// server should stop accepting connections after shutdown
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", addr, 100*time.Millisecond)
		if err != nil {
			return
		}
		_ = conn.Close()
		time.Sleep(20 * time.Millisecond)
	}
	t.Error("server still accepting connections after context cancellation")
}

func TestStart_PortInUse_ReturnsError(t *testing.T) {
	// occupy a port
	ln, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("failed to create listener: %v", err)
	}
	defer func() { _ = ln.Close() }()

	port := ln.Addr().(*net.TCPAddr).Port

	srv, _ := newTestServer(t, Config{Port: port})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err = srv.Start(ctx)
	if err == nil {
		t.Fatal("Start() on occupied port should return error")
	}
	if !strings.Contains(err.Error(), "failed to bind") {
		t.Errorf("expected bind error, got: %v", err)
	}
}

func TestStart_InvalidPort_ReturnsError(t *testing.T) {
	srv, _ := newTestServer(t, Config{Port: -1})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := srv.Start(ctx); err == nil {
		t.Fatal("Start() with invalid port should return error")
	}
}
