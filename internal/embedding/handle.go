package embedding

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Loader builds a Backend. It is invoked at most once per Handle.
type Loader func(ctx context.Context) (Backend, error)

// Handle owns a single model instance identified by its model name. The model
// is loaded on first use; concurrent first callers wait for the same load and
// never observe a partially built backend.
type Handle struct {
	model string
	load  Loader

	once    sync.Once
	backend Backend
	err     error
}

func NewHandle(model string, load Loader) *Handle {
	return &Handle{model: model, load: load}
}

// Get returns the loaded backend, loading it on the first call. A failed load
// is remembered and returned to every later caller.
func (h *Handle) Get(ctx context.Context) (Backend, error) {
	if h == nil || h.load == nil {
		return nil, errors.New("embedding model handle is not initialized")
	}

	h.once.Do(func() {
		backend, err := h.load(ctx)
		if err != nil {
			h.err = fmt.Errorf("load embedding model %q: %w", h.model, err)
			return
		}
		if backend == nil {
			h.err = fmt.Errorf("load embedding model %q: loader returned no backend", h.model)
			return
		}
		h.backend = backend
	})

	return h.backend, h.err
}

// Model returns the model identifier the handle was created for.
func (h *Handle) Model() string {
	if h == nil {
		return ""
	}
	return h.model
}
