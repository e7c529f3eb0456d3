// Package export serializes rendered banner surfaces to image artifacts.
//
// Export is a two-stage procedure:
//
//  1. Direct path: render the composition and serialize the surface
//     straight to PNG or JPEG bytes. This succeeds whenever every raster
//     drawn onto the surface came from a trusted origin.
//  2. Fallback path: when the direct path is refused because the surface is
//     tainted by untrusted pixels, rebuild a brand-new surface from locally
//     synthesizable primitives only (brand-color gradient, vector logo
//     placeholders) and serialize that instead.
//
// The two stages are indistinguishable to the caller beyond an
// observability signal: Export either returns a non-empty artifact or a
// single named error. The composition is snapshotted and rendered
// synchronously before serialization, so concurrent edits can't produce a
// stale or torn artifact.
package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bannersmith/pkg/banner"
	"github.com/matzehuels/bannersmith/pkg/errors"
	"github.com/matzehuels/bannersmith/pkg/images"
	"github.com/matzehuels/bannersmith/pkg/observability"
	"github.com/matzehuels/bannersmith/pkg/render"
)

// Exporter produces image artifacts from compositions.
type Exporter struct {
	logger *log.Logger
}

// New creates an exporter. A nil logger falls back to log.Default().
func New(logger *log.Logger) *Exporter {
	if logger == nil {
		logger = log.Default()
	}
	return &Exporter{logger: logger}
}

// Export renders a snapshot of comp and serializes it to format ("png" or
// "jpeg"). It returns a non-empty artifact or a single named error - never
// partial output.
func (x *Exporter) Export(ctx context.Context, comp *banner.Composition, set images.Set, format string) ([]byte, error) {
	start := time.Now()

	if !render.ValidFormat(format) {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown export format: %s", format)
	}

	// Snapshot and render synchronously so later edits can't leak in.
	snap := comp.Clone()
	w, h := int(snap.CanvasSize.Width), int(snap.CanvasSize.Height)

	surface := render.NewSurface(w, h)
	render.Render(ctx, surface, snap, set, "", "")

	data, err := surface.Encode(format)
	if err == nil {
		x.logger.Debug("export via direct path", "format", format, "bytes", len(data))
		observability.Export().OnExportComplete(ctx, format, len(data), time.Since(start), nil)
		return data, nil
	}
	if !errors.Is(err, errors.ErrCodeExportTainted) {
		observability.Export().OnExportComplete(ctx, format, 0, time.Since(start), err)
		return nil, err
	}

	// Direct path refused: the surface holds untrusted pixels. Rebuild from
	// local primitives only.
	observability.Export().OnDirectRefused(ctx, format)
	x.logger.Debug("direct export refused, using fallback surface", "format", format)

	fallback := render.NewSurface(w, h)
	render.RenderFallback(ctx, fallback, snap)

	data, err = fallback.Encode(format)
	if err != nil {
		err = errors.Wrap(errors.ErrCodeExportFailed, err, "fallback surface failed to serialize")
		observability.Export().OnExportComplete(ctx, format, 0, time.Since(start), err)
		return nil, err
	}
	if len(data) == 0 {
		err = errors.New(errors.ErrCodeExportFailed, "fallback surface produced no bytes")
		observability.Export().OnExportComplete(ctx, format, 0, time.Since(start), err)
		return nil, err
	}

	observability.Export().OnFallbackUsed(ctx, format)
	observability.Export().OnExportComplete(ctx, format, len(data), time.Since(start), nil)
	return data, nil
}

// Filename builds the artifact name: {partner}_banner_{timestamp}.{ext}.
// The partner name is lowercased with whitespace collapsed to underscores;
// JPEG artifacts use the "jpg" extension.
func Filename(partner string, at time.Time, format string) string {
	name := strings.ToLower(strings.TrimSpace(partner))
	name = strings.Join(strings.Fields(name), "_")
	if name == "" {
		name = "banner"
	}

	ext := "png"
	if format == render.FormatJPEG {
		ext = "jpg"
	}
	return fmt.Sprintf("%s_banner_%s.%s", name, at.Format("20060102_150405"), ext)
}
