package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Solve hooks
	p := NoopSolveHooks{}
	p.OnSolveStart(ctx, 800, 600)
	p.OnSolveComplete(ctx, 12, time.Millisecond, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "snapshot")
	c.OnCacheMiss(ctx, "snapshot")
	c.OnCacheSet(ctx, "artifact", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/v1/layout")
	h.OnResponse(ctx, "POST", "/v1/layout", 200, time.Second)
	h.OnError(ctx, "POST", "/v1/layout", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Solve().(NoopSolveHooks); !ok {
		t.Error("Solve() should return NoopSolveHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customSolve := &testSolveHooks{}
	SetSolveHooks(customSolve)
	if Solve() != customSolve {
		t.Error("SetSolveHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Solve().(NoopSolveHooks); !ok {
		t.Error("Reset() should restore NoopSolveHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testSolveHooks{}
	SetSolveHooks(custom)

	// Setting nil should be ignored
	SetSolveHooks(nil)

	if Solve() != custom {
		t.Error("SetSolveHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testSolveHooks struct{ NoopSolveHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
