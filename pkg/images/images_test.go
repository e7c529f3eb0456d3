package images

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/bannersmith/pkg/cache"
	"github.com/matzehuels/bannersmith/pkg/errors"
)

// pngBytes encodes a small solid image for test servers.
func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func TestTrustList(t *testing.T) {
	tests := []struct {
		name    string
		list    TrustList
		url     string
		trusted bool
	}{
		{"wildcard", TrustList{"*"}, "https://anywhere.example.com/a.png", true},
		{"listed host", TrustList{"cdn.example.com"}, "https://cdn.example.com/a.png", true},
		{"other host", TrustList{"cdn.example.com"}, "https://evil.example.com/a.png", false},
		{"empty list", nil, "https://cdn.example.com/a.png", false},
		{"garbage url", TrustList{"cdn.example.com"}, "::not-a-url::", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.list.Trusts(tt.url); got != tt.trusted {
				t.Errorf("Trusts(%q) = %v, want %v", tt.url, got, tt.trusted)
			}
		})
	}
}

func TestLoaderFetch(t *testing.T) {
	payload := pngBytes(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	host := mustHost(t, srv.URL)
	l := NewLoader(LoaderConfig{TrustedOrigins: TrustList{host}})

	img, err := l.Fetch(context.Background(), srv.URL+"/bg.png")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if img.Raster == nil {
		t.Fatal("Fetch returned nil raster")
	}
	if !img.Trusted {
		t.Error("raster from a trusted origin should be trusted")
	}

	l2 := NewLoader(LoaderConfig{})
	img2, err := l2.Fetch(context.Background(), srv.URL+"/bg.png")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if img2.Trusted {
		t.Error("raster with no trusted origins should be untrusted")
	}
}

func TestLoaderFetchDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not an image"))
	}))
	defer srv.Close()

	l := NewLoader(LoaderConfig{})
	_, err := l.Fetch(context.Background(), srv.URL+"/bad.png")
	if !errors.Is(err, errors.ErrCodeImageDecode) {
		t.Errorf("err = %v, want IMAGE_DECODE", err)
	}
}

func TestLoaderFetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	l := NewLoader(LoaderConfig{})
	_, err := l.Fetch(context.Background(), srv.URL+"/missing.png")
	if !errors.Is(err, errors.ErrCodeImageFetch) {
		t.Errorf("err = %v, want IMAGE_FETCH", err)
	}
}

func TestLoaderUsesCache(t *testing.T) {
	payload := pngBytes(t)
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write(payload)
	}))
	defer srv.Close()

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	l := NewLoader(LoaderConfig{Cache: c})

	url := srv.URL + "/bg.png"
	for i := 0; i < 3; i++ {
		if _, err := l.Fetch(context.Background(), url); err != nil {
			t.Fatalf("Fetch %d: %v", i, err)
		}
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("origin hit %d times, want 1 (cache should serve repeats)", n)
	}
}

func TestManagerLifecycle(t *testing.T) {
	payload := pngBytes(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad.png" {
			w.Write([]byte("nope"))
			return
		}
		w.Write(payload)
	}))
	defer srv.Close()

	var updates int32
	m := NewManager(NewLoader(LoaderConfig{}), func() { atomic.AddInt32(&updates, 1) })

	good := srv.URL + "/good.png"
	bad := srv.URL + "/bad.png"

	if got := m.State(good); got != StateUnloaded {
		t.Errorf("initial state = %s, want unloaded", got)
	}

	m.Request(context.Background(), good)
	m.Request(context.Background(), bad)

	waitFor(t, func() bool {
		return m.State(good) == StateLoaded && m.State(bad) == StateFailed
	})

	set := m.Snapshot()
	if set.Lookup(good) == nil {
		t.Error("loaded slot should appear in snapshot")
	}
	if set.Lookup(bad) != nil {
		t.Error("failed slot should not appear in snapshot")
	}
	if atomic.LoadInt32(&updates) < 2 {
		t.Errorf("updates = %d, want >= 2", updates)
	}
}

func TestManagerRequestSync(t *testing.T) {
	payload := pngBytes(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	m := NewManager(NewLoader(LoaderConfig{}), nil)
	url := srv.URL + "/bg.png"

	if err := m.RequestSync(context.Background(), url); err != nil {
		t.Fatalf("RequestSync: %v", err)
	}
	if got := m.State(url); got != StateLoaded {
		t.Errorf("state = %s, want loaded", got)
	}
	// Empty URL is a no-op.
	if err := m.RequestSync(context.Background(), ""); err != nil {
		t.Errorf("RequestSync(\"\") = %v, want nil", err)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func mustHost(t *testing.T, raw string) string {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %s: %v", raw, err)
	}
	return u.Host
}
