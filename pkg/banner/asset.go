package banner

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Asset kinds. Every asset carries exactly one kind; variant fields outside
// the shared set are only meaningful for the kind that declares them.
const (
	KindText = "text"
	KindCTA  = "cta"
	KindLogo = "logo"
)

// Text alignment values for text and cta assets.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// Font weights recognized by the render pipeline.
const (
	WeightNormal = "normal"
	WeightBold   = "bold"
)

// DefaultBorderRadius is the corner radius used for cta assets that don't
// specify one.
const DefaultBorderRadius = 24.0

// =============================================================================
// Geometry Primitives
// =============================================================================

// Point is a position in canvas coordinates (top-left origin).
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Size is a width/height pair in canvas pixels.
type Size struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// =============================================================================
// Asset - Tagged Variant Overlay Element
// =============================================================================

// Asset is one movable, resizable, rotatable overlay element. The Kind field
// is the discriminant: text and cta assets use the typography fields, cta
// additionally uses the button fields, and logo assets use ImageURL only.
// Mutation handlers and the render pipeline switch exhaustively on Kind.
type Asset struct {
	ID       string  `json:"id" bson:"id"`
	Kind     string  `json:"kind" bson:"kind"`
	Position Point   `json:"position" bson:"position"`
	Size     Size    `json:"size" bson:"size"`
	Rotation float64 `json:"rotation,omitempty" bson:"rotation,omitempty"` // degrees, about the asset's center

	// Typography (text, cta)
	Text       string  `json:"text,omitempty" bson:"text,omitempty"`
	FontSize   float64 `json:"font_size,omitempty" bson:"font_size,omitempty"`
	FontFamily string  `json:"font_family,omitempty" bson:"font_family,omitempty"`
	Color      string  `json:"color,omitempty" bson:"color,omitempty"`
	FontWeight string  `json:"font_weight,omitempty" bson:"font_weight,omitempty"`
	TextAlign  string  `json:"text_align,omitempty" bson:"text_align,omitempty"`

	// Button (cta only)
	BackgroundColor string  `json:"background_color,omitempty" bson:"background_color,omitempty"`
	BorderRadius    float64 `json:"border_radius,omitempty" bson:"border_radius,omitempty"`
	BorderColor     string  `json:"border_color,omitempty" bson:"border_color,omitempty"`
	BorderWidth     float64 `json:"border_width,omitempty" bson:"border_width,omitempty"`

	// Raster (logo only)
	ImageURL string `json:"image_url,omitempty" bson:"image_url,omitempty"`
}

// IsText returns true for text assets.
func (a *Asset) IsText() bool { return a.Kind == KindText }

// IsCTA returns true for call-to-action button assets.
func (a *Asset) IsCTA() bool { return a.Kind == KindCTA }

// IsLogo returns true for logo assets.
func (a *Asset) IsLogo() bool { return a.Kind == KindLogo }

// Editable returns true if the asset carries user-editable text.
func (a *Asset) Editable() bool { return a.Kind == KindText || a.Kind == KindCTA }

// CornerRadius returns the effective border radius for a cta asset.
func (a *Asset) CornerRadius() float64 {
	if a.BorderRadius > 0 {
		return a.BorderRadius
	}
	return DefaultBorderRadius
}

// Center returns the asset's center point in canvas coordinates.
func (a *Asset) Center() Point {
	return Point{
		X: a.Position.X + a.Size.Width/2,
		Y: a.Position.Y + a.Size.Height/2,
	}
}
