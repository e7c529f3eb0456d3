// Package banner defines the composition document and its overlay assets.
//
// A Composition is the root aggregate: a fixed-size canvas, a background
// raster reference, and an ordered list of assets. Asset order is paint
// order - low index is painted first, so the last asset is topmost.
//
// Compositions are plain JSON-serializable values. They carry no behavior
// beyond structural mutation (duplicate, remove, touch); all interaction
// logic lives in the editor package, and all drawing in the render package.
package banner

import (
	"time"

	"github.com/google/uuid"
)

// DuplicateOffset is the position offset applied to duplicated assets.
const DuplicateOffset = 20.0

// Composition is the full document describing one banner: its background
// reference plus the ordered list of overlay assets.
type Composition struct {
	ID                 string    `json:"id" bson:"_id"`
	BannerID           string    `json:"banner_id" bson:"banner_id"`
	BackgroundImageURL string    `json:"background_image_url,omitempty" bson:"background_image_url,omitempty"`
	Assets             []Asset   `json:"assets" bson:"assets"`
	CanvasSize         Size      `json:"canvas_size" bson:"canvas_size"`
	Zoom               float64   `json:"zoom,omitempty" bson:"zoom,omitempty"` // display-only, never affects stored geometry
	BrandColors        []string  `json:"brand_colors,omitempty" bson:"brand_colors,omitempty"`
	LastModified       time.Time `json:"last_modified" bson:"last_modified"`
}

// Find returns a pointer to the asset with the given id, or nil.
// The pointer is only valid until the Assets slice is next modified.
func (c *Composition) Find(id string) *Asset {
	for i := range c.Assets {
		if c.Assets[i].ID == id {
			return &c.Assets[i]
		}
	}
	return nil
}

// Duplicate copies the asset with the given id, assigns a fresh id, offsets
// the copy by (+20,+20), and appends it (so the copy paints topmost).
// Returns the new asset's id, or empty string if no such asset exists.
// Nothing prevents duplicating a logo; the document permits multiple.
func (c *Composition) Duplicate(id string) string {
	src := c.Find(id)
	if src == nil {
		return ""
	}
	dup := *src
	dup.ID = uuid.NewString()
	dup.Position.X += DuplicateOffset
	dup.Position.Y += DuplicateOffset
	c.Assets = append(c.Assets, dup)
	c.Touch()
	return dup.ID
}

// Remove deletes the asset with the given id. Returns true if an asset was
// removed.
func (c *Composition) Remove(id string) bool {
	for i := range c.Assets {
		if c.Assets[i].ID == id {
			c.Assets = append(c.Assets[:i], c.Assets[i+1:]...)
			c.Touch()
			return true
		}
	}
	return false
}

// Touch updates the last-modified timestamp.
func (c *Composition) Touch() {
	c.LastModified = time.Now().UTC()
}

// Clone returns a deep copy of the composition. Used to snapshot the
// document for export and persistence while the editor keeps mutating the
// original.
func (c *Composition) Clone() *Composition {
	out := *c
	out.Assets = make([]Asset, len(c.Assets))
	copy(out.Assets, c.Assets)
	if c.BrandColors != nil {
		out.BrandColors = make([]string, len(c.BrandColors))
		copy(out.BrandColors, c.BrandColors)
	}
	return &out
}
