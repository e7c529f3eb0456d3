package render

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/matzehuels/bannersmith/pkg/errors"
	"github.com/matzehuels/bannersmith/pkg/images"
)

// Output formats for surface serialization.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
)

// JPEGQuality is the encoder quality for JPEG output.
const JPEGQuality = 95

// ValidFormat reports whether format names a supported output format.
func ValidFormat(format string) bool {
	return format == FormatPNG || format == FormatJPEG
}

// Surface is a render target: a drawing context plus a taint flag.
//
// Drawing a raster whose origin was not cleared for pixel reads marks the
// surface tainted, and a tainted surface refuses direct serialization. This
// makes the browser canvas-taint security model an explicit property of the
// surface instead of implicit host behavior; runtimes without that
// restriction simply run with every origin trusted and never taint.
type Surface struct {
	dc      *gg.Context
	tainted bool
}

// NewSurface creates a surface of the given pixel dimensions.
func NewSurface(width, height int) *Surface {
	return &Surface{dc: gg.NewContext(width, height)}
}

// Context exposes the underlying drawing context.
func (s *Surface) Context() *gg.Context {
	return s.dc
}

// Tainted reports whether untrusted pixels have been drawn.
func (s *Surface) Tainted() bool {
	return s.tainted
}

// DrawRaster draws img stretched to exactly (width, height) pixels at
// (x, y), honoring the context's current transform. Untrusted rasters taint
// the surface.
func (s *Surface) DrawRaster(img *images.Image, x, y, width, height float64) {
	if img == nil || img.Raster == nil || width < 1 || height < 1 {
		return
	}
	if !img.Trusted {
		s.tainted = true
	}
	scaled := imaging.Resize(img.Raster, int(width+0.5), int(height+0.5), imaging.Lanczos)
	s.dc.DrawImage(scaled, int(x+0.5), int(y+0.5))
}

// Image returns the rendered pixels. Reading pixels programmatically is the
// caller's concern; the taint restriction applies only to serialization.
func (s *Surface) Image() image.Image {
	return s.dc.Image()
}

// Encode serializes the surface to image bytes.
//
// A tainted surface refuses to serialize with an EXPORT_TAINTED error - this
// is the direct-path refusal the export pipeline recovers from. PNG output
// is lossless; JPEG encodes at quality 95.
func (s *Surface) Encode(format string) ([]byte, error) {
	if s.tainted {
		return nil, errors.New(errors.ErrCodeExportTainted, "surface contains untrusted cross-origin pixels")
	}

	var buf bytes.Buffer
	switch format {
	case FormatPNG:
		if err := png.Encode(&buf, s.dc.Image()); err != nil {
			return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "encoding png")
		}
	case FormatJPEG:
		if err := jpeg.Encode(&buf, s.dc.Image(), &jpeg.Options{Quality: JPEGQuality}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "encoding jpeg")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s", format)
	}
	return buf.Bytes(), nil
}
