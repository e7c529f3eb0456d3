// Package render draws banner compositions onto raster surfaces.
//
// Render is a pure pass: given the same composition, resolved images,
// selection, and editing id, it produces byte-identical pixels. It reads no
// hidden state - image loading, interaction, and persistence all happen
// elsewhere, and the pipeline only consumes their resolved outputs.
//
// Drawing rules per asset kind:
//   - text: explicit newlines only (no wrapping), line height 1.2x the font
//     size, line block vertically centered, horizontal anchor per text_align
//   - cta: filled rounded rectangle, optional stroked border, text forced to
//     horizontal center
//   - logo: raster stretched to the asset's size, or a bordered "LOGO"
//     placeholder while unresolved
//
// The asset being live-edited is skipped entirely; the host owns that
// overlay. A selected asset gets a dashed outline 2px outside its bounds,
// drawn in the asset's own (rotated) frame.
package render

import (
	"context"
	"strings"
	"time"

	"github.com/fogleman/gg"

	"github.com/matzehuels/bannersmith/pkg/banner"
	"github.com/matzehuels/bannersmith/pkg/images"
	"github.com/matzehuels/bannersmith/pkg/observability"
)

// Fallback colors.
const (
	backgroundFallback  = "#E8E8E8" // flat fill when the background raster is unresolved
	textFallback        = "#000000"
	placeholderFill     = "#F0F0F0"
	placeholderBorder   = "#999999"
	placeholderLabel    = "#666666"
	selectionColor      = "#3B82F6"
	selectionInset      = 2.0 // outline distance outside asset bounds
	placeholderFontSize = 16.0
)

// Render draws the composition onto the surface.
//
// selectedID gets the selection decoration; editingID is skipped because the
// host renders the live text-edit overlay itself. Unresolved rasters degrade
// to placeholders and never fail the pass.
func Render(ctx context.Context, s *Surface, comp *banner.Composition, set images.Set, selectedID, editingID string) {
	start := time.Now()
	observability.Render().OnRenderStart(ctx, len(comp.Assets))

	dc := s.Context()
	w, h := comp.CanvasSize.Width, comp.CanvasSize.Height

	// Background: white base, then the raster stretched to the canvas, or a
	// flat neutral fill when it failed to resolve.
	dc.SetHexColor("#FFFFFF")
	dc.Clear()
	if bg := set.Lookup(comp.BackgroundImageURL); bg != nil {
		s.DrawRaster(bg, 0, 0, w, h)
	} else {
		dc.SetHexColor(backgroundFallback)
		dc.DrawRectangle(0, 0, w, h)
		dc.Fill()
	}

	// Assets in array order: low index paints first.
	for i := range comp.Assets {
		a := &comp.Assets[i]
		if a.ID == editingID {
			continue
		}

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
			drawLogo(s, a, set)
		}

		if a.ID == selectedID {
			drawSelection(dc, a)
		}
		dc.Pop()
	}

	observability.Render().OnRenderComplete(ctx, len(comp.Assets), time.Since(start))
}

// drawText renders the asset's text split on explicit newlines, the line
// block vertically centered on the asset's middle.
func drawText(dc *gg.Context, a *banner.Asset, forceCenter bool) {
	if a.Text == "" {
		return
	}

	dc.SetFontFace(faceFor(a.FontWeight, a.FontSize))
	color := a.Color
	if color == "" {
		color = textFallback
	}
	dc.SetHexColor(color)

	lines := strings.Split(a.Text, "\n")
	lineHeight := a.FontSize * 1.2
	centerY := a.Position.Y + a.Size.Height/2
	startY := centerY - float64(len(lines)-1)*lineHeight/2

	align := a.TextAlign
	if forceCenter {
		align = banner.AlignCenter
	}

	var x, ax float64
	switch align {
	case banner.AlignCenter:
		x, ax = a.Position.X+a.Size.Width/2, 0.5
	case banner.AlignRight:
		x, ax = a.Position.X+a.Size.Width, 1
	default:
		x, ax = a.Position.X, 0
	}

	for i, line := range lines {
		dc.DrawStringAnchored(line, x, startY+float64(i)*lineHeight, ax, 0.5)
	}
}

// drawCTA renders the button: filled rounded rectangle, optional border,
// then the label forced to horizontal center.
func drawCTA(dc *gg.Context, a *banner.Asset) {
	radius := a.CornerRadius()

	if a.BackgroundColor != "" {
		dc.SetHexColor(a.BackgroundColor)
		dc.DrawRoundedRectangle(a.Position.X, a.Position.Y, a.Size.Width, a.Size.Height, radius)
		dc.Fill()
	}
	if a.BorderColor != "" && a.BorderWidth > 0 {
		dc.SetHexColor(a.BorderColor)
		dc.SetLineWidth(a.BorderWidth)
		dc.DrawRoundedRectangle(a.Position.X, a.Position.Y, a.Size.Width, a.Size.Height, radius)
		dc.Stroke()
	}

	drawText(dc, a, true)
}

// drawLogo renders the resolved raster stretched to the asset's size, or the
// bordered placeholder while the slot is unresolved.
func drawLogo(s *Surface, a *banner.Asset, set images.Set) {
	if img := set.Lookup(a.ImageURL); img != nil {
		s.DrawRaster(img, a.Position.X, a.Position.Y, a.Size.Width, a.Size.Height)
		return
	}
	DrawLogoPlaceholder(s.Context(), a)
}

// DrawLogoPlaceholder draws the bordered "LOGO" rectangle. Exported because
// the export fallback path substitutes it for every logo raster.
func DrawLogoPlaceholder(dc *gg.Context, a *banner.Asset) {
	dc.SetHexColor(placeholderFill)
	dc.DrawRectangle(a.Position.X, a.Position.Y, a.Size.Width, a.Size.Height)
	dc.Fill()

	dc.SetHexColor(placeholderBorder)
	dc.SetLineWidth(2)
	dc.DrawRectangle(a.Position.X, a.Position.Y, a.Size.Width, a.Size.Height)
	dc.Stroke()

	dc.SetFontFace(faceFor(banner.WeightBold, placeholderFontSize))
	dc.SetHexColor(placeholderLabel)
	c := a.Center()
	dc.DrawStringAnchored("LOGO", c.X, c.Y, 0.5, 0.5)
}

// drawSelection strokes the dashed outline 2px outside the asset bounds.
// It runs inside the asset's rotation transform, so the outline is axis
// aligned in the asset's own frame.
func drawSelection(dc *gg.Context, a *banner.Asset) {
	dc.SetHexColor(selectionColor)
	dc.SetLineWidth(2)
	dc.SetDash(6, 4)
	dc.DrawRectangle(
		a.Position.X-selectionInset,
		a.Position.Y-selectionInset,
		a.Size.Width+2*selectionInset,
		a.Size.Height+2*selectionInset,
	)
	dc.Stroke()
	dc.SetDash()
}
