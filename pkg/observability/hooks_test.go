package observability

import (
	"context"
	"testing"
	"time"
)

type recordingExportHooks struct {
	refused   int
	fallbacks int
	completed int
}

func (r *recordingExportHooks) OnDirectRefused(context.Context, string) { r.refused++ }
func (r *recordingExportHooks) OnFallbackUsed(context.Context, string)  { r.fallbacks++ }
func (r *recordingExportHooks) OnExportComplete(context.Context, string, int, time.Duration, error) {
	r.completed++
}

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	// Must not panic.
	Editor().OnTransition(ctx, "Idle", "Selected", "pointerDown")
	Editor().OnMutation(ctx, "drag", "asset-1")
	Render().OnRenderStart(ctx, 3)
	Render().OnRenderComplete(ctx, 3, time.Millisecond)
	Export().OnDirectRefused(ctx, "png")
	Store().OnSave(ctx, "banner-1", nil)
}

func TestSetExportHooks(t *testing.T) {
	defer Reset()

	rec := &recordingExportHooks{}
	SetExportHooks(rec)

	ctx := context.Background()
	Export().OnDirectRefused(ctx, "png")
	Export().OnFallbackUsed(ctx, "png")
	Export().OnExportComplete(ctx, "png", 1024, time.Millisecond, nil)

	if rec.refused != 1 || rec.fallbacks != 1 || rec.completed != 1 {
		t.Errorf("recorded %d/%d/%d events, want 1/1/1", rec.refused, rec.fallbacks, rec.completed)
	}
}

func TestSetNilHooksKeepsPrevious(t *testing.T) {
	defer Reset()

	rec := &recordingExportHooks{}
	SetExportHooks(rec)
	SetExportHooks(nil)

	Export().OnFallbackUsed(context.Background(), "jpeg")
	if rec.fallbacks != 1 {
		t.Error("nil registration should not replace existing hooks")
	}
}
