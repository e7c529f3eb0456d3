package export

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/matzehuels/bannersmith/pkg/banner"
	"github.com/matzehuels/bannersmith/pkg/errors"
	"github.com/matzehuels/bannersmith/pkg/images"
	"github.com/matzehuels/bannersmith/pkg/observability"
	"github.com/matzehuels/bannersmith/pkg/render"
)

func testComposition() *banner.Composition {
	return banner.NewComposition(banner.Seed{
		BannerID:           "banner-1",
		BackgroundImageURL: "https://cdn.example.com/bg.png",
		PartnerLogoURL:     "https://cdn.example.com/logo.png",
		MainText:           "Flash Sale",
		CTAText:            "Shop Now",
		BrandColors:        []string{"#112233", "#445566"},
		CanvasSize:         banner.Size{Width: 300, Height: 150},
	})
}

func solid(trusted bool) *images.Image {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.Set(x, y, color.RGBA{R: 120, G: 40, B: 200, A: 255})
		}
	}
	return &images.Image{Source: "test", Raster: img, Trusted: trusted}
}

type exportRecorder struct {
	refused  int
	fallback int
}

func (r *exportRecorder) OnDirectRefused(context.Context, string) { r.refused++ }
func (r *exportRecorder) OnFallbackUsed(context.Context, string)  { r.fallback++ }
func (r *exportRecorder) OnExportComplete(context.Context, string, int, time.Duration, error) {}

func TestExportDirectPath(t *testing.T) {
	comp := testComposition()
	set := images.Set{comp.BackgroundImageURL: solid(true)}

	data, err := New(nil).Export(context.Background(), comp, set, render.FormatPNG)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Export returned zero bytes")
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("artifact is not valid PNG: %v", err)
	}
	if img.Bounds().Dx() != 300 || img.Bounds().Dy() != 150 {
		t.Errorf("artifact size = %v, want 300x150", img.Bounds())
	}
}

func TestExportTaintedFallsBack(t *testing.T) {
	defer observability.Reset()
	rec := &exportRecorder{}
	observability.SetExportHooks(rec)

	comp := testComposition()
	// Background from an unauthorized cross-origin source.
	set := images.Set{comp.BackgroundImageURL: solid(false)}

	data, err := New(nil).Export(context.Background(), comp, set, render.FormatPNG)
	if err != nil {
		t.Fatalf("Export must recover from a tainted surface: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("fallback artifact must be non-empty")
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("fallback artifact is not valid PNG: %v", err)
	}
	if rec.refused != 1 || rec.fallback != 1 {
		t.Errorf("hooks = %d refused / %d fallback, want 1/1", rec.refused, rec.fallback)
	}
}

func TestExportFallbackOmitsUntrustedPixels(t *testing.T) {
	comp := testComposition()
	set := images.Set{comp.BackgroundImageURL: solid(false)}

	direct, err := New(nil).Export(context.Background(), comp, nil, render.FormatPNG)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	viaFallback, err := New(nil).Export(context.Background(), comp, set, render.FormatPNG)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	// The fallback draws a gradient, not the raster - output differs from the
	// placeholder-background direct render.
	if bytes.Equal(direct, viaFallback) {
		t.Error("fallback surface should use the brand gradient background")
	}
}

func TestExportJPEG(t *testing.T) {
	comp := testComposition()

	data, err := New(nil).Export(context.Background(), comp, nil, render.FormatJPEG)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	// JPEG SOI marker.
	if len(data) < 2 || data[0] != 0xFF || data[1] != 0xD8 {
		t.Error("artifact does not look like JPEG")
	}
}

func TestExportInvalidFormat(t *testing.T) {
	_, err := New(nil).Export(context.Background(), testComposition(), nil, "gif")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}

func TestExportSnapshotsComposition(t *testing.T) {
	comp := testComposition()
	before := comp.Assets[1].Text

	if _, err := New(nil).Export(context.Background(), comp, nil, render.FormatPNG); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if comp.Assets[1].Text != before {
		t.Error("export must not mutate the live composition")
	}
}

func TestFilename(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	tests := []struct {
		partner string
		format  string
		want    string
	}{
		{"Acme Corp", render.FormatPNG, "acme_corp_banner_20260314_092653.png"},
		{"Acme", render.FormatJPEG, "acme_banner_20260314_092653.jpg"},
		{"  ", render.FormatPNG, "banner_banner_20260314_092653.png"},
	}
	for _, tt := range tests {
		if got := Filename(tt.partner, at, tt.format); got != tt.want {
			t.Errorf("Filename(%q, %s) = %q, want %q", tt.partner, tt.format, got, tt.want)
		}
	}
}
