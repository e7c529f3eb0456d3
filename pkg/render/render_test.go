package render

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/matzehuels/bannersmith/pkg/banner"
	"github.com/matzehuels/bannersmith/pkg/errors"
	"github.com/matzehuels/bannersmith/pkg/images"
)

func testComposition() *banner.Composition {
	return banner.NewComposition(banner.Seed{
		BannerID:           "banner-1",
		BackgroundImageURL: "https://cdn.example.com/bg.png",
		PartnerLogoURL:     "https://cdn.example.com/logo.png",
		MainText:           "Flash Sale\nToday Only",
		CTAText:            "Shop Now",
		BrandColors:        []string{"#FF6B35"},
		CanvasSize:         banner.Size{Width: 400, Height: 200},
	})
}

func solidImage(w, h int, c color.RGBA, trusted bool) *images.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return &images.Image{Source: "test", Raster: img, Trusted: trusted}
}

func renderBytes(t *testing.T, comp *banner.Composition, set images.Set, selected, editing string) []byte {
	t.Helper()
	s := NewSurface(int(comp.CanvasSize.Width), int(comp.CanvasSize.Height))
	Render(context.Background(), s, comp, set, selected, editing)
	data, err := s.Encode(FormatPNG)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return data
}

func TestRenderDeterminism(t *testing.T) {
	comp := testComposition()
	set := images.Set{
		comp.BackgroundImageURL: solidImage(40, 20, color.RGBA{R: 10, G: 80, B: 160, A: 255}, true),
	}
	selected := comp.Assets[1].ID

	a := renderBytes(t, comp, set, selected, "")
	b := renderBytes(t, comp, set, selected, "")
	if !bytes.Equal(a, b) {
		t.Error("identical inputs must produce byte-identical output")
	}
}

func TestRenderSelectionChangesPixels(t *testing.T) {
	comp := testComposition()

	plain := renderBytes(t, comp, nil, "", "")
	selected := renderBytes(t, comp, nil, comp.Assets[1].ID, "")
	if bytes.Equal(plain, selected) {
		t.Error("selection decoration should change the output")
	}
}

func TestRenderSkipsEditingAsset(t *testing.T) {
	comp := testComposition()
	title := comp.Assets[1].ID

	withTitle := renderBytes(t, comp, nil, "", "")
	withoutTitle := renderBytes(t, comp, nil, "", title)
	if bytes.Equal(withTitle, withoutTitle) {
		t.Error("the asset under edit must not be drawn by the pipeline")
	}

	// Editing suppresses the selection outline too.
	selectedAndEditing := renderBytes(t, comp, nil, title, title)
	if !bytes.Equal(withoutTitle, selectedAndEditing) {
		t.Error("no selection outline should be drawn for the asset under edit")
	}
}

func TestRenderBackgroundFallback(t *testing.T) {
	comp := testComposition()
	comp.Assets = nil // just the background

	s := NewSurface(int(comp.CanvasSize.Width), int(comp.CanvasSize.Height))
	Render(context.Background(), s, comp, nil, "", "")

	// Unresolved background degrades to the flat neutral fill.
	r, g, b, _ := s.Image().At(200, 100).RGBA()
	if r>>8 != 0xE8 || g>>8 != 0xE8 || b>>8 != 0xE8 {
		t.Errorf("fallback fill = #%02X%02X%02X, want #E8E8E8", r>>8, g>>8, b>>8)
	}
}

func TestRenderRotationChangesPixels(t *testing.T) {
	comp := testComposition()

	straight := renderBytes(t, comp, nil, "", "")
	comp.Assets[1].Rotation = 30
	rotated := renderBytes(t, comp, nil, "", "")
	if bytes.Equal(straight, rotated) {
		t.Error("rotation should change the output")
	}
}

func TestSurfaceTaint(t *testing.T) {
	comp := testComposition()
	set := images.Set{
		comp.BackgroundImageURL: solidImage(10, 10, color.RGBA{R: 255, A: 255}, false),
	}

	s := NewSurface(int(comp.CanvasSize.Width), int(comp.CanvasSize.Height))
	Render(context.Background(), s, comp, set, "", "")

	if !s.Tainted() {
		t.Fatal("drawing an untrusted raster must taint the surface")
	}
	_, err := s.Encode(FormatPNG)
	if !errors.Is(err, errors.ErrCodeExportTainted) {
		t.Errorf("Encode on tainted surface = %v, want EXPORT_TAINTED", err)
	}
}

func TestSurfaceTrustedStaysClean(t *testing.T) {
	comp := testComposition()
	set := images.Set{
		comp.BackgroundImageURL: solidImage(10, 10, color.RGBA{G: 255, A: 255}, true),
		comp.Assets[0].ImageURL: solidImage(8, 8, color.RGBA{B: 255, A: 255}, true),
	}

	s := NewSurface(int(comp.CanvasSize.Width), int(comp.CanvasSize.Height))
	Render(context.Background(), s, comp, set, "", "")

	if s.Tainted() {
		t.Error("trusted rasters must not taint the surface")
	}
	data, err := s.Encode(FormatJPEG)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(data) == 0 {
		t.Error("Encode returned zero bytes")
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	s := NewSurface(10, 10)
	_, err := s.Encode("webp")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}

func TestValidFormat(t *testing.T) {
	if !ValidFormat(FormatPNG) || !ValidFormat(FormatJPEG) {
		t.Error("png and jpeg are valid formats")
	}
	if ValidFormat("gif") {
		t.Error("gif is not a valid format")
	}
}
