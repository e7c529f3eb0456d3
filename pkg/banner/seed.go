package banner

import "github.com/google/uuid"

// Default canvas dimensions (standard social banner format).
const (
	DefaultCanvasWidth  = 1200.0
	DefaultCanvasHeight = 628.0
)

// Placement is a fixed position/size slot in the layout template.
type Placement struct {
	Position Point `json:"position"`
	Size     Size  `json:"size"`
}

// FixedLayout enumerates the default placement per asset type used when a
// composition is first seeded. These are recognized options with fixed
// effect, not a free-form layout system.
type FixedLayout struct {
	Logo        Placement `json:"logo"`
	Title       Placement `json:"title"`
	Description Placement `json:"description"`
	CTA         Placement `json:"cta"`
}

// DefaultLayout returns the standard template for the given canvas: logo
// top-right, title top-left, description below the title, CTA below the
// description.
func DefaultLayout(canvas Size) FixedLayout {
	return FixedLayout{
		Logo: Placement{
			Position: Point{X: canvas.Width - 180 - 40, Y: 40},
			Size:     Size{Width: 180, Height: 80},
		},
		Title: Placement{
			Position: Point{X: 60, Y: 80},
			Size:     Size{Width: 600, Height: 120},
		},
		Description: Placement{
			Position: Point{X: 60, Y: 220},
			Size:     Size{Width: 520, Height: 80},
		},
		CTA: Placement{
			Position: Point{X: 60, Y: 340},
			Size:     Size{Width: 220, Height: 64},
		},
	}
}

// Seed is the constructor-time configuration supplied by the host: initial
// text strings, image references, brand colors, and the layout template.
type Seed struct {
	BannerID           string
	BackgroundImageURL string
	PartnerLogoURL     string // optional; empty means no logo asset
	MainText           string
	DescriptionText    string // optional; empty means no description asset
	CTAText            string
	BrandColors        []string
	CanvasSize         Size         // zero value falls back to the default banner size
	Layout             *FixedLayout // nil falls back to DefaultLayout
}

// NewComposition seeds a composition from host-provided inputs, honoring the
// fixed layout template. Assets are appended in template order (logo, title,
// description, CTA), which fixes their initial paint order. Empty optional
// strings suppress the corresponding asset; nothing prevents the host from
// seeding more than one logo later via Duplicate.
func NewComposition(seed Seed) *Composition {
	canvas := seed.CanvasSize
	if canvas.Width <= 0 || canvas.Height <= 0 {
		canvas = Size{Width: DefaultCanvasWidth, Height: DefaultCanvasHeight}
	}
	layout := seed.Layout
	if layout == nil {
		l := DefaultLayout(canvas)
		layout = &l
	}

	c := &Composition{
		ID:                 uuid.NewString(),
		BannerID:           seed.BannerID,
		BackgroundImageURL: seed.BackgroundImageURL,
		CanvasSize:         canvas,
		Zoom:               1.0,
		BrandColors:        seed.BrandColors,
	}

	accent := "#FF6B35"
	if len(seed.BrandColors) > 0 {
		accent = seed.BrandColors[0]
	}

	if seed.PartnerLogoURL != "" {
		c.Assets = append(c.Assets, Asset{
			ID:       uuid.NewString(),
			Kind:     KindLogo,
			Position: layout.Logo.Position,
			Size:     layout.Logo.Size,
			ImageURL: seed.PartnerLogoURL,
		})
	}

	if seed.MainText != "" {
		c.Assets = append(c.Assets, Asset{
			ID:         uuid.NewString(),
			Kind:       KindText,
			Position:   layout.Title.Position,
			Size:       layout.Title.Size,
			Text:       seed.MainText,
			FontSize:   48,
			FontFamily: "sans-serif",
			Color:      "#FFFFFF",
			FontWeight: WeightBold,
			TextAlign:  AlignLeft,
		})
	}

	if seed.DescriptionText != "" {
		c.Assets = append(c.Assets, Asset{
			ID:         uuid.NewString(),
			Kind:       KindText,
			Position:   layout.Description.Position,
			Size:       layout.Description.Size,
			Text:       seed.DescriptionText,
			FontSize:   24,
			FontFamily: "sans-serif",
			Color:      "#FFFFFF",
			FontWeight: WeightNormal,
			TextAlign:  AlignLeft,
		})
	}

	if seed.CTAText != "" {
		c.Assets = append(c.Assets, Asset{
			ID:              uuid.NewString(),
			Kind:            KindCTA,
			Position:        layout.CTA.Position,
			Size:            layout.CTA.Size,
			Text:            seed.CTAText,
			FontSize:        20,
			FontFamily:      "sans-serif",
			Color:           "#FFFFFF",
			FontWeight:      WeightBold,
			TextAlign:       AlignCenter,
			BackgroundColor: accent,
			BorderRadius:    DefaultBorderRadius,
		})
	}

	c.Touch()
	return c
}
