package navigator

import (
	"context"
	"sync"

	multierror "github.com/hashicorp/go-multierror"
)

// A Listener is told about every location change
type Listener func(ctx context.Context, path string) error

// History is the location the tree view is bound to, with back and forward
// stacks like a browser's.
type History struct {
	mu        sync.Mutex
	current   string
	back      []string
	forward   []string
	listeners []Listener
}

// NewHistory returns a History at the empty location
func NewHistory() *History {
	return &History{}
}

// Listen registers fn for every later change
func (h *History) Listen(fn Listener) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, fn)
}

// Path returns the current location
func (h *History) Path() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Push moves to path, recording the current location for Back. Moving to
// the current location is a no-op.
func (h *History) Push(ctx context.Context, path string) error {
	h.mu.Lock()
	if path == h.current {
		h.mu.Unlock()
		return nil
	}
	h.back = append(h.back, h.current)
	h.forward = nil
	h.current = path
	h.mu.Unlock()

	return h.notify(ctx, path)
}

// Redirect moves to path in place of the current location and notifies.
func (h *History) Redirect(ctx context.Context, path string) error {
	h.Replace(path)
	return h.notify(ctx, path)
}

// Replace rewrites the current location without notifying anyone
func (h *History) Replace(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = path
}

// Back moves to the previous location. It reports false when there is none.
func (h *History) Back(ctx context.Context) (bool, error) {
	h.mu.Lock()
	if len(h.back) == 0 {
		h.mu.Unlock()
		return false, nil
	}
	path := h.back[len(h.back)-1]
	h.back = h.back[:len(h.back)-1]
	h.forward = append(h.forward, h.current)
	h.current = path
	h.mu.Unlock()

	return true, h.notify(ctx, path)
}

// Forward undoes a Back. It reports false when there is nothing to redo.
func (h *History) Forward(ctx context.Context) (bool, error) {
	h.mu.Lock()
	if len(h.forward) == 0 {
		h.mu.Unlock()
		return false, nil
	}
	path := h.forward[len(h.forward)-1]
	h.forward = h.forward[:len(h.forward)-1]
	h.back = append(h.back, h.current)
	h.current = path
	h.mu.Unlock()

	return true, h.notify(ctx, path)
}

func (h *History) notify(ctx context.Context, path string) error {
	h.mu.Lock()
	listeners := append([]Listener{}, h.listeners...)
	h.mu.Unlock()

	var errs []error
	for _, listener := range listeners {
		if err := listener(ctx, path); err != nil {
			errs = append(errs, err)
		}
	}
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return multierror.Append(nil, errs...)
	}
}
