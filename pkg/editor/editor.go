// Package editor implements the interaction state machine for banner
// compositions.
//
// One Engine owns one composition document and its transient editor state.
// Raw pointer and keyboard events come in; composition mutations and
// re-render requests come out. All transitions are synchronous - the host
// is expected to deliver events from a single goroutine (its UI loop), and
// the engine never suspends inside a transition.
//
// # States
//
//	idle → selected → dragging → selected
//	       selected → resizing → selected
//	       selected → editing_text → selected
//
// A pointer-down that hits an asset selects it and arms dragging on the
// same gesture. A double click (within 300ms, same area) on a text or cta
// asset enters text editing directly. A pointer-down that hits nothing
// returns to idle from any state. Invalid input for the current state
// (resize with no selection, moves while idle) is silently ignored.
//
// Every mutating transition bumps the composition's last-modified
// timestamp, raises the dirty flag, and schedules a re-render through the
// injected callback.
package editor

import (
	"context"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bannersmith/pkg/banner"
	"github.com/matzehuels/bannersmith/pkg/geometry"
	"github.com/matzehuels/bannersmith/pkg/observability"
)

// States of the interaction machine.
const (
	StateIdle        = "idle"
	StateSelected    = "selected"
	StateDragging    = "dragging"
	StateResizing    = "resizing"
	StateEditingText = "editing_text"
)

// Double-click detection thresholds.
const (
	DoubleClickInterval = 300 * time.Millisecond
	DoubleClickRadius   = 5.0 // max pointer travel between the two downs
)

// EditorState is a snapshot of the transient interaction state. It is never
// persisted; only the composition document survives a reload.
type EditorState struct {
	State              string
	SelectedAssetID    string
	IsDragging         bool
	IsResizing         bool
	DragOffset         banner.Point
	Zoom               float64
	EditingTextAssetID string
	TextEditBuffer     string
}

// Config configures an Engine.
type Config struct {
	// Logger receives transition diagnostics. Nil uses log.Default().
	Logger *log.Logger

	// OnRenderNeeded is called after every mutation that invalidates the
	// displayed pixels. Nil is allowed for headless use.
	OnRenderNeeded func()

	// Now is the clock used for double-click detection. Nil uses time.Now.
	Now func() time.Time
}

// Engine owns one composition and translates input events into mutations.
// Not safe for concurrent use; the host serializes events.
type Engine struct {
	comp   *banner.Composition
	logger *log.Logger
	render func()
	now    func() time.Time

	state      string
	selectedID string
	dragOffset banner.Point
	zoom       float64
	editingID  string
	textBuffer string
	dirty      bool

	resizeHandle    geometry.Handle
	resizeStart     banner.Point // pointer position at resize start
	resizeStartPos  banner.Point
	resizeStartSize banner.Size

	lastDownAt time.Time
	lastDownPt banner.Point
}

// New creates an engine owning the given composition.
func New(comp *banner.Composition, cfg Config) *Engine {
	e := &Engine{
		comp:   comp,
		logger: cfg.Logger,
		render: cfg.OnRenderNeeded,
		now:    cfg.Now,
		state:  StateIdle,
		zoom:   comp.Zoom,
	}
	if e.logger == nil {
		e.logger = log.Default()
	}
	if e.render == nil {
		e.render = func() {}
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.zoom == 0 {
		e.zoom = 1.0
	}
	return e
}

// Composition returns the document the engine owns. The host must not
// mutate it outside the engine's events; persistence reads snapshots via
// Composition().Clone().
func (e *Engine) Composition() *banner.Composition {
	return e.comp
}

// Snapshot returns the current transient editor state.
func (e *Engine) Snapshot() EditorState {
	return EditorState{
		State:              e.state,
		SelectedAssetID:    e.selectedID,
		IsDragging:         e.state == StateDragging,
		IsResizing:         e.state == StateResizing,
		DragOffset:         e.dragOffset,
		Zoom:               e.zoom,
		EditingTextAssetID: e.editingID,
		TextEditBuffer:     e.textBuffer,
	}
}

// State returns the current machine state.
func (e *Engine) State() string { return e.state }

// SelectedID returns the selected asset id, or empty string.
func (e *Engine) SelectedID() string { return e.selectedID }

// EditingID returns the asset id under text edit, or empty string.
func (e *Engine) EditingID() string { return e.editingID }

// TextBuffer returns the live text-edit buffer.
func (e *Engine) TextBuffer() string { return e.textBuffer }

// Dirty reports whether there are unsaved changes.
func (e *Engine) Dirty() bool { return e.dirty }

// ClearDirty resets the dirty flag; the host calls this after a successful
// save.
func (e *Engine) ClearDirty() { e.dirty = false }

// =============================================================================
// Pointer Events
// =============================================================================

// PointerDown handles a pointer press at p in canvas coordinates.
func (e *Engine) PointerDown(p banner.Point) {
	// Pressing anywhere while editing is a blur: commit first, then handle
	// the press normally.
	if e.state == StateEditingText {
		e.CommitTextEdit()
	}

	doubleClick := e.isDoubleClick(p)
	e.lastDownAt = e.now()
	e.lastDownPt = p

	hit := geometry.HitTest(p, e.comp.Assets)
	if hit == "" {
		e.selectedID = ""
		e.transition(StateIdle, "pointerDown")
		e.render()
		return
	}

	if doubleClick {
		if a := e.comp.Find(hit); a != nil && a.Editable() {
			e.startTextEdit(a)
			return
		}
	}

	// Select and arm dragging on the same gesture.
	a := e.comp.Find(hit)
	e.selectedID = hit
	e.dragOffset = banner.Point{X: p.X - a.Position.X, Y: p.Y - a.Position.Y}
	e.transition(StateDragging, "pointerDown")
	e.render()
}

// PointerMove handles pointer motion. Outside a drag or resize it is
// ignored.
func (e *Engine) PointerMove(p banner.Point) {
	switch e.state {
	case StateDragging:
		a := e.comp.Find(e.selectedID)
		if a == nil {
			return
		}
		raw := banner.Point{X: p.X - e.dragOffset.X, Y: p.Y - e.dragOffset.Y}
		a.Position = geometry.ClampPosition(raw, a.Size, e.comp.CanvasSize)
		e.markMutated("drag", a.ID)

	case StateResizing:
		a := e.comp.Find(e.selectedID)
		if a == nil {
			return
		}
		delta := banner.Point{X: p.X - e.resizeStart.X, Y: p.Y - e.resizeStart.Y}
		a.Position, a.Size = geometry.ComputeResize(e.resizeHandle, e.resizeStartPos, e.resizeStartSize, delta)
		e.markMutated("resize", a.ID)
	}
}

// PointerUp ends a drag or resize gesture.
func (e *Engine) PointerUp() {
	switch e.state {
	case StateDragging, StateResizing:
		e.transition(StateSelected, "pointerUp")
	}
}

// ResizeHandleDown starts a resize from the given corner handle. Ignored
// unless an asset is selected and the handle is valid.
func (e *Engine) ResizeHandleDown(h geometry.Handle, p banner.Point) {
	if e.state != StateSelected || !h.Valid() {
		return
	}
	a := e.comp.Find(e.selectedID)
	if a == nil {
		return
	}
	e.resizeHandle = h
	e.resizeStart = p
	e.resizeStartPos = a.Position
	e.resizeStartSize = a.Size
	e.transition(StateResizing, "resizeHandleDown")
}

// =============================================================================
// Text Editing
// =============================================================================

// StartTextEdit enters text editing on the given asset, seeding the buffer
// from its current text. Ignored for non-editable assets.
func (e *Engine) StartTextEdit(id string) {
	a := e.comp.Find(id)
	if a == nil || !a.Editable() {
		return
	}
	e.startTextEdit(a)
}

func (e *Engine) startTextEdit(a *banner.Asset) {
	e.selectedID = a.ID
	e.editingID = a.ID
	e.textBuffer = a.Text
	e.transition(StateEditingText, "doubleClick")
	e.render()
}

// SetTextBuffer replaces the live edit buffer. The host owns the visible
// edit overlay and feeds keystrokes through here.
func (e *Engine) SetTextBuffer(text string) {
	if e.state != StateEditingText {
		return
	}
	e.textBuffer = text
}

// CommitTextEdit writes the buffer into the edited asset and returns to
// selected. Triggered by Enter or blur.
func (e *Engine) CommitTextEdit() {
	if e.state != StateEditingText {
		return
	}
	if a := e.comp.Find(e.editingID); a != nil {
		a.Text = e.textBuffer
		e.markMutated("textCommit", a.ID)
	}
	e.editingID = ""
	e.textBuffer = ""
	e.transition(StateSelected, "commit")
	e.render()
}

// CancelTextEdit discards the buffer and returns to selected; the asset
// text is unchanged. Triggered by Escape.
func (e *Engine) CancelTextEdit() {
	if e.state != StateEditingText {
		return
	}
	e.editingID = ""
	e.textBuffer = ""
	e.transition(StateSelected, "cancel")
	e.render()
}

// =============================================================================
// Direct Operations
// =============================================================================

// Duplicate copies the given asset (the selection when id is empty) and
// selects the copy. Returns the new asset id, or empty string.
func (e *Engine) Duplicate(id string) string {
	if id == "" {
		id = e.selectedID
	}
	newID := e.comp.Duplicate(id)
	if newID == "" {
		return ""
	}
	e.selectedID = newID
	e.transition(StateSelected, "duplicate")
	e.markMutated("duplicate", newID)
	return newID
}

// Delete removes the given asset (the selection when id is empty),
// clearing the selection if it pointed at the deleted asset.
func (e *Engine) Delete(id string) bool {
	if id == "" {
		id = e.selectedID
	}
	if id == e.editingID && e.state == StateEditingText {
		e.CancelTextEdit()
	}
	if !e.comp.Remove(id) {
		return false
	}
	if e.selectedID == id {
		e.selectedID = ""
		e.transition(StateIdle, "delete")
	}
	e.markMutated("delete", id)
	return true
}

// SetZoom updates the display scale factor. Zoom never affects stored
// geometry, but it is part of the persisted document.
func (e *Engine) SetZoom(zoom float64) {
	if zoom <= 0 {
		return
	}
	e.zoom = zoom
	e.comp.Zoom = zoom
	e.markMutated("zoom", "")
}

// =============================================================================
// Internals
// =============================================================================

func (e *Engine) isDoubleClick(p banner.Point) bool {
	if e.lastDownAt.IsZero() {
		return false
	}
	if e.now().Sub(e.lastDownAt) >= DoubleClickInterval {
		return false
	}
	return math.Hypot(p.X-e.lastDownPt.X, p.Y-e.lastDownPt.Y) <= DoubleClickRadius
}

func (e *Engine) transition(to, event string) {
	if e.state == to {
		return
	}
	e.logger.Debug("editor transition", "from", e.state, "to", to, "event", event)
	observability.Editor().OnTransition(context.Background(), e.state, to, event)
	e.state = to
}

func (e *Engine) markMutated(op, assetID string) {
	e.comp.Touch()
	e.dirty = true
	observability.Editor().OnMutation(context.Background(), op, assetID)
	e.render()
}
