package images

import (
	"context"
	"sync"
)

// Manager tracks one slot per raster URL and resolves them through a Loader.
//
// Loads run on background goroutines; the OnUpdate callback fires after
// every slot transition so the host can schedule a re-render. The callback
// may run on a loader goroutine - hosts that need single-threaded delivery
// must marshal it onto their own event loop.
type Manager struct {
	loader   *Loader
	onUpdate func()

	mu    sync.Mutex
	slots map[string]*slot
}

// slot is the per-URL lifecycle record.
type slot struct {
	state string
	img   *Image
	err   error
}

// NewManager creates a manager. onUpdate may be nil.
func NewManager(loader *Loader, onUpdate func()) *Manager {
	if onUpdate == nil {
		onUpdate = func() {}
	}
	return &Manager{
		loader:   loader,
		onUpdate: onUpdate,
		slots:    make(map[string]*slot),
	}
}

// Request ensures a load is underway for url. Calling Request for a URL
// that is already loading, loaded, or failed is a no-op; there is no retry
// of failed slots and no cancellation of in-flight loads.
func (m *Manager) Request(ctx context.Context, url string) {
	if url == "" {
		return
	}

	m.mu.Lock()
	if _, ok := m.slots[url]; ok {
		m.mu.Unlock()
		return
	}
	m.slots[url] = &slot{state: StateLoading}
	m.mu.Unlock()

	go func() {
		img, err := m.loader.Fetch(ctx, url)

		m.mu.Lock()
		s := m.slots[url]
		if err != nil {
			s.state = StateFailed
			s.err = err
		} else {
			s.state = StateLoaded
			s.img = img
		}
		m.mu.Unlock()

		m.onUpdate()
	}()
}

// RequestSync loads url on the calling goroutine. Used by one-shot callers
// (render/export commands) that want resolution to finish before drawing.
func (m *Manager) RequestSync(ctx context.Context, url string) error {
	if url == "" {
		return nil
	}

	m.mu.Lock()
	if s, ok := m.slots[url]; ok && s.state != StateLoading {
		err := s.err
		m.mu.Unlock()
		return err
	}
	m.slots[url] = &slot{state: StateLoading}
	m.mu.Unlock()

	img, err := m.loader.Fetch(ctx, url)

	m.mu.Lock()
	s := m.slots[url]
	if err != nil {
		s.state = StateFailed
		s.err = err
	} else {
		s.state = StateLoaded
		s.img = img
	}
	m.mu.Unlock()

	m.onUpdate()
	return err
}

// State returns the lifecycle state for url.
func (m *Manager) State(url string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.slots[url]; ok {
		return s.state
	}
	return StateUnloaded
}

// Snapshot returns the currently resolved images as a Set. Loading and
// failed slots are absent, so the render pipeline falls back to
// placeholders for them.
func (m *Manager) Snapshot() Set {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(Set, len(m.slots))
	for url, s := range m.slots {
		if s.state == StateLoaded {
			out[url] = s.img
		}
	}
	return out
}
