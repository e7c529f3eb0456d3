package images

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/matzehuels/bannersmith/pkg/cache"
	"github.com/matzehuels/bannersmith/pkg/errors"
)

// DefaultFetchTimeout bounds a single raster download.
const DefaultFetchTimeout = 10 * time.Second

// maxImageBytes caps a single raster download (16 MiB).
const maxImageBytes = 16 << 20

// LoaderConfig configures a Loader.
type LoaderConfig struct {
	// TrustedOrigins lists hosts cleared for pixel reads. "*" trusts all.
	TrustedOrigins TrustList

	// Cache stores fetched bytes. Nil disables caching.
	Cache cache.Cache

	// Client is the HTTP client for downloads. Nil uses a default with
	// DefaultFetchTimeout.
	Client *http.Client

	// Logger receives fetch diagnostics. Nil uses log.Default().
	Logger *log.Logger
}

// Loader fetches and decodes rasters, caching the raw bytes.
type Loader struct {
	trusted TrustList
	cache   cache.Cache
	client  *http.Client
	logger  *log.Logger
}

// NewLoader creates a loader from the given config.
func NewLoader(cfg LoaderConfig) *Loader {
	l := &Loader{
		trusted: cfg.TrustedOrigins,
		cache:   cfg.Cache,
		client:  cfg.Client,
		logger:  cfg.Logger,
	}
	if l.cache == nil {
		l.cache = cache.NewNullCache()
	}
	if l.client == nil {
		l.client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	if l.logger == nil {
		l.logger = log.Default()
	}
	return l
}

// Fetch downloads and decodes the raster at url. The raw bytes are cached;
// decode failures are reported as IMAGE_DECODE errors, transport failures
// as IMAGE_FETCH.
func (l *Loader) Fetch(ctx context.Context, url string) (*Image, error) {
	data, err := l.fetchBytes(ctx, url)
	if err != nil {
		return nil, err
	}

	raster, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeImageDecode, err, "decoding %s", url)
	}

	b := raster.Bounds()
	l.logger.Debug("resolved raster", "url", url, "width", b.Dx(), "height", b.Dy())

	return &Image{
		Source:  url,
		Raster:  raster,
		Trusted: l.trusted.Trusts(url),
	}, nil
}

// fetchBytes returns the raw bytes for url, consulting the cache first.
// Transient HTTP failures (5xx, network errors) are retried with backoff.
func (l *Loader) fetchBytes(ctx context.Context, url string) ([]byte, error) {
	key := cache.ImageKey(url)
	if data, hit, err := l.cache.Get(ctx, key); err == nil && hit {
		return data, nil
	}

	var data []byte
	err := cache.RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "building request for %s", url)
		}

		resp, err := l.client.Do(req)
		if err != nil {
			return cache.Retryable(errors.Wrap(errors.ErrCodeImageFetch, err, "fetching %s", url))
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return cache.Retryable(errors.New(errors.ErrCodeImageFetch, "fetching %s: status %d", url, resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return errors.New(errors.ErrCodeImageFetch, "fetching %s: status %d", url, resp.StatusCode)
		}

		data, err = io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
		if err != nil {
			return cache.Retryable(errors.Wrap(errors.ErrCodeImageFetch, err, "reading %s", url))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := l.cache.Set(ctx, key, data, cache.DefaultImageTTL); err != nil {
		l.logger.Debug("image cache write failed", "url", url, "err", err)
	}
	return data, nil
}

// String describes the loader's trust configuration, for diagnostics.
func (l *Loader) String() string {
	return fmt.Sprintf("loader(trusted=%v)", []string(l.trusted))
}
