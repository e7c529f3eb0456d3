// Package images resolves raster references (background, logos) for the
// render pipeline.
//
// Each reference goes through a small per-slot state machine:
//
//	unloaded → loading → loaded | failed
//
// The render pipeline consults only the resolved state - a slot that is not
// loaded renders as a placeholder. Loading happens asynchronously; a failed
// load degrades to placeholder rendering and never propagates a fault into
// the interaction state machine.
//
// # Trust model
//
// Every resolved raster is classified as trusted or untrusted based on its
// origin. Drawing an untrusted raster taints the render surface, which
// blocks the direct export path (see the export package). The trusted-origin
// list is host configuration; the wildcard "*" trusts every origin.
package images

import (
	"image"
	"net/url"
	"strings"
)

// Slot states.
const (
	StateUnloaded = "unloaded"
	StateLoading  = "loading"
	StateLoaded   = "loaded"
	StateFailed   = "failed"
)

// Image is a resolved raster plus its trust classification.
type Image struct {
	Source  string      // the URL the raster was fetched from
	Raster  image.Image // decoded pixels
	Trusted bool        // cleared for pixel reads; untrusted rasters taint the surface
}

// Set maps raster URLs to resolved images. It is the read-only view the
// render and export pipelines consume; unresolved URLs are simply absent.
type Set map[string]*Image

// Lookup returns the resolved image for url, or nil.
func (s Set) Lookup(url string) *Image {
	if s == nil {
		return nil
	}
	return s[url]
}

// TrustList decides whether an origin is cleared for pixel reads.
type TrustList []string

// Trusts reports whether rawURL's host is on the list. The wildcard "*"
// trusts everything; an unparseable URL is never trusted.
func (t TrustList) Trusts(rawURL string) bool {
	for _, origin := range t {
		if origin == "*" {
			return true
		}
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}
	for _, origin := range t {
		if strings.EqualFold(origin, u.Host) {
			return true
		}
	}
	return false
}
