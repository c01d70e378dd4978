package observability

import (
	"context"
	"testing"
	"time"
)

type recordingComputeHooks struct {
	NoopComputeHooks
	starts int
}

func (h *recordingComputeHooks) OnComputeStart(ctx context.Context, attribute string, numVertices int) {
	h.starts++
}

type recordingCacheHooks struct {
	NoopCacheHooks
	hits int
}

func (h *recordingCacheHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.hits++
}

func TestSetComputeHooks(t *testing.T) {
	defer Reset()

	h := &recordingComputeHooks{}
	SetComputeHooks(h)

	Compute().OnComputeStart(context.Background(), "area", 5)
	Compute().OnComputeStart(context.Background(), "depth", 5)

	if h.starts != 2 {
		t.Errorf("starts = %d, want 2", h.starts)
	}
}

func TestSetCacheHooks(t *testing.T) {
	defer Reset()

	h := &recordingCacheHooks{}
	SetCacheHooks(h)

	Cache().OnCacheHit(context.Background(), "attr")
	if h.hits != 1 {
		t.Errorf("hits = %d, want 1", h.hits)
	}
}

func TestSetHooks_NilIgnored(t *testing.T) {
	defer Reset()

	SetComputeHooks(nil)
	SetCacheHooks(nil)

	// Defaults remain usable.
	Compute().OnLoadComplete(context.Background(), "file", 5, time.Millisecond, nil)
	Cache().OnCacheMiss(context.Background(), "attr")
}

func TestReset(t *testing.T) {
	h := &recordingComputeHooks{}
	SetComputeHooks(h)
	Reset()

	Compute().OnComputeStart(context.Background(), "area", 5)
	if h.starts != 0 {
		t.Errorf("hooks still registered after Reset, starts = %d", h.starts)
	}
}
