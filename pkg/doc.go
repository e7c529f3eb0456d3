// Package pkg provides the core libraries for Bannersmith banner composition.
//
// # Overview
//
// Bannersmith composes partner ad banners from text, call-to-action, and
// logo assets and exports them as image artifacts. The pkg directory is
// organized into three main areas:
//
//  1. Domain - composition documents, geometry, and the interaction machine
//  2. Pipeline - rasterization and artifact export
//  3. Infrastructure - image loading, caching, persistence, notifications
//
// # Architecture
//
// The typical data flow through Bannersmith:
//
//	Partner inputs (seed)
//	         ↓
//	    [banner] package (composition document)
//	         ↓
//	    [editor] package (interaction state machine, mutations)
//	         ↓
//	    [render] package (surface drawing, taint tracking)
//	         ↓
//	    [export] package (PNG/JPEG artifact, taint-safe fallback)
//
// # Quick Start
//
// Seed a composition and export it:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/bannersmith/pkg/banner"
//	    "github.com/matzehuels/bannersmith/pkg/export"
//	    "github.com/matzehuels/bannersmith/pkg/render"
//	)
//
//	// 1. Seed the document
//	comp := banner.NewComposition(banner.Seed{
//	    BannerID:    "summer-sale",
//	    MainText:    "Summer Sale",
//	    CTAText:     "Shop Now",
//	    BrandColors: []string{"#FF6B35"},
//	})
//
//	// 2. Export the artifact
//	data, _ := export.New(nil).Export(context.Background(), comp, nil, render.FormatPNG)
//
// # Main Packages
//
// ## Domain
//
// [banner] - The composition document: ordered assets (text, cta, logo),
// canvas size, brand colors, and the default seed layout.
//
// [geometry] - Pure spatial helpers: hit-testing in reverse paint order,
// position clamping, and corner-handle resize math.
//
// [editor] - The interaction state machine. One Engine owns one composition
// and translates pointer and keyboard events into mutations.
//
// ## Pipeline
//
// [render] - Deterministic surface drawing on fogleman/gg: background,
// per-asset rotation about the center, text layout, selection outlines, and
// the taint flag for untrusted pixels.
//
// [export] - Two-stage artifact production: direct serialization when the
// surface is clean, brand-gradient fallback when it is tainted.
//
// ## Infrastructure
//
// [images] - Remote raster loading with per-URL lifecycle slots, origin
// trust, and retry with backoff.
//
// [cache] - TTL cache for downloaded bytes (file-backed and null
// implementations) plus the retry helpers.
//
// [store] - Composition persistence keyed by banner id: memory, file,
// Redis, and MongoDB backends.
//
// [notify] - User-facing success/error notifications.
//
// [errors] - Structured errors with stable codes and user-safe messages.
//
// [observability] - Pluggable hooks for editor transitions, render timing,
// and export outcomes.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/editor/...    # Specific package
//
// [banner]: https://pkg.go.dev/github.com/matzehuels/bannersmith/pkg/banner
// [geometry]: https://pkg.go.dev/github.com/matzehuels/bannersmith/pkg/geometry
// [editor]: https://pkg.go.dev/github.com/matzehuels/bannersmith/pkg/editor
// [render]: https://pkg.go.dev/github.com/matzehuels/bannersmith/pkg/render
// [export]: https://pkg.go.dev/github.com/matzehuels/bannersmith/pkg/export
// [images]: https://pkg.go.dev/github.com/matzehuels/bannersmith/pkg/images
// [cache]: https://pkg.go.dev/github.com/matzehuels/bannersmith/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/bannersmith/pkg/store
// [notify]: https://pkg.go.dev/github.com/matzehuels/bannersmith/pkg/notify
// [errors]: https://pkg.go.dev/github.com/matzehuels/bannersmith/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/bannersmith/pkg/observability
package pkg
