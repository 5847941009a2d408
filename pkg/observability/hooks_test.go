package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnSceneStart(ctx, "network")
	p.OnSceneComplete(ctx, "network", 42, time.Millisecond, nil)
	p.OnExportStart(ctx, "network", "svg")
	p.OnExportComplete(ctx, "network", "svg", 1024, time.Millisecond, nil)

	a := NoopAnimationHooks{}
	a.OnPulse("network", 3)
	a.OnTick("concepts")
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Animation().(NoopAnimationHooks); !ok {
		t.Error("Animation() should return NoopAnimationHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customAnimation := &testAnimationHooks{}
	SetAnimationHooks(customAnimation)
	if Animation() != customAnimation {
		t.Error("SetAnimationHooks should set custom hooks")
	}

	// nil must not replace registered hooks
	SetPipelineHooks(nil)
	SetAnimationHooks(nil)
	if Pipeline() != customPipeline || Animation() != customAnimation {
		t.Error("setting nil hooks should be ignored")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestAnimationHooksConcurrentUse(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	h := &testAnimationHooks{}
	SetAnimationHooks(h)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Animation().OnPulse("network", i)
		}()
	}
	wg.Wait()

	if got := h.count(); got != 8 {
		t.Errorf("pulses recorded = %d, want 8", got)
	}
}

type testPipelineHooks struct{ NoopPipelineHooks }

type testAnimationHooks struct {
	mu     sync.Mutex
	pulses int
}

func (h *testAnimationHooks) OnPulse(string, int) {
	h.mu.Lock()
	h.pulses++
	h.mu.Unlock()
}

func (h *testAnimationHooks) OnTick(string) {}

func (h *testAnimationHooks) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pulses
}
