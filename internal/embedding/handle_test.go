package embedding

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestHandleLoadsOnceUnderConcurrentUse(t *testing.T) {
	var loads atomic.Int32
	handle := NewHandle("hashing", func(context.Context) (Backend, error) {
		loads.Add(1)
		return NewHashingBackend(16), nil
	})

	var wg sync.WaitGroup
	backends := make([]Backend, 32)
	for i := range backends {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			backend, err := handle.Get(context.Background())
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			backends[idx] = backend
		}(i)
	}
	wg.Wait()

	if got := loads.Load(); got != 1 {
		t.Fatalf("expected a single load, got %d", got)
	}

	for i, backend := range backends {
		if backend != backends[0] {
			t.Fatalf("caller %d observed a different backend instance", i)
		}
	}
}

func TestHandleRemembersLoadError(t *testing.T) {
	var loads atomic.Int32
	loadErr := errors.New("model unavailable")
	handle := NewHandle("broken", func(context.Context) (Backend, error) {
		loads.Add(1)
		return nil, loadErr
	})

	for range 3 {
		if _, err := handle.Get(context.Background()); !errors.Is(err, loadErr) {
			t.Fatalf("expected load error, got %v", err)
		}
	}

	if got := loads.Load(); got != 1 {
		t.Fatalf("expected a single load attempt, got %d", got)
	}
}

func TestNilHandle(t *testing.T) {
	var handle *Handle
	if _, err := handle.Get(context.Background()); err == nil {
		t.Fatal("expected error for nil handle")
	}
	if handle.Model() != "" {
		t.Fatal("expected empty model for nil handle")
	}
}
