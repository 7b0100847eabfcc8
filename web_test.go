/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Seednode/chaoskitchen/kitchen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopSender struct{}

func (nopSender) Send(string, kitchen.Message) {}

func newTestRouter(t *testing.T, cfg *Config) (http.Handler, *kitchen.Manager) {
	t.Helper()

	opts, err := cfg.gameOptions()
	require.NoError(t, err)
	opts.Rand = kitchen.NewRand(1)

	mgr, err := kitchen.NewManager(nopSender{}, opts)
	require.NoError(t, err)
	t.Cleanup(mgr.Shutdown)

	errs := make(chan error, 8)
	return newRouter(cfg, mgr, newHub(cfg), errs), mgr
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

func TestStaticRoutes(t *testing.T) {
	h, _ := newTestRouter(t, testConfig(t))

	tests := []struct {
		path        string
		contentType string
		contains    string
	}{
		{"/healthz", "text/plain; charset=utf-8", "Ok\n"},
		{"/version", "text/plain; charset=utf-8", "chaoskitchen v" + releaseVersion},
		{"/robots.txt", "text/plain; charset=utf-8", "Disallow: /kitchen/"},
		{"/favicon.svg", "image/svg+xml", "<svg"},
		{"/", "text/html; charset=utf-8", "/kitchen/ws"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(t, h, tt.path)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
			assert.Contains(t, rec.Body.String(), tt.contains)
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	h, _ := newTestRouter(t, testConfig(t))

	assert.Equal(t, http.StatusNotFound, get(t, h, "/nope").Code)
}

func TestPrefixedRoutes(t *testing.T) {
	cfg := testConfig(t)
	cfg.prefix = "/party"
	h, _ := newTestRouter(t, cfg)

	assert.Equal(t, http.StatusOK, get(t, h, "/party/healthz").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/healthz").Code)
	assert.Contains(t, get(t, h, "/party/").Body.String(), "/party/kitchen/ws")
}

func TestProfileRoutes(t *testing.T) {
	cfg := testConfig(t)
	h, _ := newTestRouter(t, cfg)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/pprof/heap").Code)

	cfg.profile = true
	h, _ = newTestRouter(t, cfg)
	assert.Equal(t, http.StatusOK, get(t, h, "/pprof/heap").Code)
}

func TestHomePageInvite(t *testing.T) {
	h, mgr := newTestRouter(t, testConfig(t))
	code := mgr.CreateRoom("host", "Alice")

	body := get(t, h, "/?room="+code).Body.String()
	assert.Contains(t, body, "invited to kitchen <strong>"+code+"</strong>")
	assert.Contains(t, body, "1 kitchen(s) open")

	body = get(t, h, "/?room=ZZZZ").Body.String()
	assert.Contains(t, body, "already closed")
}

func TestRoomQR(t *testing.T) {
	h, mgr := newTestRouter(t, testConfig(t))

	rec := get(t, h, "/kitchen/qr/ZZZZ")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	code := mgr.CreateRoom("host", "Alice")

	rec = get(t, h, "/kitchen/qr/"+code)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("\x89PNG\r\n\x1a\n")))
}

func TestRoomURL(t *testing.T) {
	cfg := testConfig(t)
	cfg.prefix = "/party"

	req := httptest.NewRequest(http.MethodGet, "http://kitchen.example.com/party/kitchen/qr/ABCD", nil)
	assert.Equal(t, "http://kitchen.example.com/party/?room=ABCD", roomURL(cfg, req, "ABCD"))

	req.Header.Set("X-Forwarded-Proto", "https")
	assert.Equal(t, "https://kitchen.example.com/party/?room=ABCD", roomURL(cfg, req, "ABCD"))
}

func TestRealIP(t *testing.T) {
	tests := []struct {
		name   string
		remote string
		header []string
		want   string
	}{
		{"remote addr", "10.0.0.1:1234", nil, "10.0.0.1:1234"},
		{"cloudflare", "10.0.0.1:1234", []string{"CF-Connecting-IP", "192.0.2.7"}, "192.0.2.7:1234"},
		{"x-real-ip", "10.0.0.1:1234", []string{"X-Real-IP", "192.0.2.8"}, "192.0.2.8:1234"},
		{"bogus header", "10.0.0.1:1234", []string{"X-Real-IP", "not-an-ip"}, "10.0.0.1:1234"},
		{"ipv6", "[::1]:1234", nil, "[::1]:1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.header != nil {
				req.Header.Set(tt.header[0], tt.header[1])
			}
			assert.Equal(t, tt.want, realIP(req))
		})
	}
}

func TestHumanReadableSize(t *testing.T) {
	assert.Equal(t, "999 B", humanReadableSize(999))
	assert.Equal(t, "1.5 kB", humanReadableSize(1500))
	assert.Equal(t, "2.0 MB", humanReadableSize(2_000_000))
}
