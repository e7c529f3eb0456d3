package render

import (
	"context"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/matzehuels/bannersmith/pkg/banner"
)

// Neutral gradient endpoints used when the composition has no brand colors.
const (
	gradientFallbackTop    = "#4A5568"
	gradientFallbackBottom = "#1A202C"
)

// RenderFallback draws the composition using only locally synthesizable
// primitives: a vertical gradient derived from the brand colors instead of
// the background raster, and the vector placeholder instead of every logo
// raster. Text and cta assets follow the same rules as Render.
//
// Nothing drawn here can taint the surface, so the result always
// serializes. The export pipeline uses this pass when the direct path is
// refused.
func RenderFallback(ctx context.Context, s *Surface, comp *banner.Composition) {
	dc := s.Context()
	w, h := comp.CanvasSize.Width, comp.CanvasSize.Height

	top, bottom := gradientFallbackTop, gradientFallbackBottom
	if len(comp.BrandColors) >= 2 {
		top, bottom = comp.BrandColors[0], comp.BrandColors[1]
	} else if len(comp.BrandColors) == 1 {
		top = comp.BrandColors[0]
	}

	grad := gg.NewLinearGradient(0, 0, 0, h)
	grad.AddColorStop(0, hexColor(top))
	grad.AddColorStop(1, hexColor(bottom))
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	for i := range comp.Assets {
		a := &comp.Assets[i]

		dc.Push()
		if a.Rotation != 0 {
			c := a.Center()
			dc.RotateAbout(gg.Radians(a.Rotation), c.X, c.Y)
		}

		switch a.Kind {
		case banner.KindText:
			drawText(dc, a, false)
		case banner.KindCTA:
			drawCTA(dc, a)
		case banner.KindLogo:
			DrawLogoPlaceholder(dc, a)
		}
		dc.Pop()
	}
}

// hexColor parses "#RGB" or "#RRGGBB" hex notation, defaulting to opaque
// black on malformed input.
func hexColor(s string) color.Color {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	var r, g, b uint8
	var err error
	switch len(s) {
	case 3:
		_, err = fmt.Sscanf(s, "%1x%1x%1x", &r, &g, &b)
		r, g, b = r*17, g*17, b*17
	case 6:
		_, err = fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b)
	default:
		return color.RGBA{A: 255}
	}
	if err != nil {
		return color.RGBA{A: 255}
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
