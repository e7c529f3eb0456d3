// Package geometry provides pure functions for hit-testing, bounds clamping,
// and resize-handle transform math over banner assets.
//
// All functions are deterministic and allocation-free; they operate on plain
// values and never mutate their inputs. The editor package is the only
// intended caller, but the functions are exported for testability.
package geometry

import "github.com/matzehuels/bannersmith/pkg/banner"

// MinAssetSize is the floor for asset width and height, enforced at resize
// time.
const MinAssetSize = 20.0

// Handle identifies one of the four corner resize handles.
type Handle string

// Corner resize handles.
const (
	HandleNW Handle = "nw"
	HandleNE Handle = "ne"
	HandleSW Handle = "sw"
	HandleSE Handle = "se"
)

// Valid reports whether h names a known handle.
func (h Handle) Valid() bool {
	switch h {
	case HandleNW, HandleNE, HandleSW, HandleSE:
		return true
	}
	return false
}

// HitTest scans assets in reverse paint order (topmost first) and returns
// the id of the first whose axis-aligned bounding box contains p, or empty
// string if none does.
//
// Rotation is deliberately ignored: hit-testing uses the unrotated bounding
// box. This is a documented approximation for a simpler, faster interaction
// model, not a bug.
func HitTest(p banner.Point, assets []banner.Asset) string {
	for i := len(assets) - 1; i >= 0; i-- {
		a := &assets[i]
		if p.X >= a.Position.X && p.X <= a.Position.X+a.Size.Width &&
			p.Y >= a.Position.Y && p.Y <= a.Position.Y+a.Size.Height {
			return a.ID
		}
	}
	return ""
}

// ClampPosition clamps pos so that a box of the given size stays fully
// inside the canvas, independently per axis.
func ClampPosition(pos banner.Point, size, canvas banner.Size) banner.Point {
	return banner.Point{
		X: clamp(pos.X, 0, canvas.Width-size.Width),
		Y: clamp(pos.Y, 0, canvas.Height-size.Height),
	}
}

// ComputeResize applies a pointer delta to the starting geometry for the
// given corner handle. The opposite edge stays fixed: dragging nw, ne, or sw
// shifts the position on the axes where the far edge must not move. Width
// and height are floored at MinAssetSize, and the position shift is limited
// accordingly so the anchored edge never drifts.
func ComputeResize(h Handle, startPos banner.Point, startSize banner.Size, delta banner.Point) (banner.Point, banner.Size) {
	pos, size := startPos, startSize

	switch h {
	case HandleSE:
		size.Width = startSize.Width + delta.X
		size.Height = startSize.Height + delta.Y
	case HandleSW:
		size.Width = startSize.Width - delta.X
		size.Height = startSize.Height + delta.Y
		pos.X = startPos.X + delta.X
	case HandleNE:
		size.Width = startSize.Width + delta.X
		size.Height = startSize.Height - delta.Y
		pos.Y = startPos.Y + delta.Y
	case HandleNW:
		size.Width = startSize.Width - delta.X
		size.Height = startSize.Height - delta.Y
		pos.X = startPos.X + delta.X
		pos.Y = startPos.Y + delta.Y
	default:
		return startPos, startSize
	}

	// Floor the size and pin the moving edge so the anchored edge stays put.
	if size.Width < MinAssetSize {
		if pos.X != startPos.X {
			pos.X = startPos.X + startSize.Width - MinAssetSize
		}
		size.Width = MinAssetSize
	}
	if size.Height < MinAssetSize {
		if pos.Y != startPos.Y {
			pos.Y = startPos.Y + startSize.Height - MinAssetSize
		}
		size.Height = MinAssetSize
	}

	return pos, size
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		// Asset larger than canvas: pin to origin.
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
