package navigator

import (
	"context"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/shaie/browze/pkg/api"
	"github.com/shaie/browze/pkg/zkpath"
)

// Navigator binds a Reconciler to a History. The location is the single
// external representation of the current view: widget actions only change
// the location, and every location change is reconciled.
type Navigator struct {
	Logger     log.Logger
	History    *History
	Reconciler *Reconciler
}

// NewNavigator builds a Navigator and subscribes it to history, used with dig
func NewNavigator(logger log.Logger, history *History, reconciler *Reconciler) *Navigator {
	n := &Navigator{
		Logger:     logger,
		History:    history,
		Reconciler: reconciler,
	}
	history.Listen(n.onLocationChange)
	return n
}

// Start shows path, "/" when empty
func (n *Navigator) Start(ctx context.Context, path string) error {
	n.History.Replace(path)
	return n.onLocationChange(ctx, path)
}

func (n *Navigator) onLocationChange(ctx context.Context, path string) error {
	debug := level.Debug(log.With(n.Logger, "method", "onLocationChange", "path", path))

	if path == "" {
		debug.Log("event", "redirect.root")
		return n.History.Redirect(ctx, zkpath.Root)
	}

	canonical := Canonicalize(path)
	if canonical != path {
		debug.Log("event", "location.normalize", "canonical", canonical)
		n.History.Replace(canonical)
	}

	err := n.Reconciler.Navigate(ctx, canonical)
	if err == ErrStale {
		return nil
	}
	return err
}

// Go moves the location to path, as typing it into the address bar would
func (n *Navigator) Go(ctx context.Context, path string) error {
	return n.History.Push(ctx, path)
}

// Select is called by the widget when node gets selected or deselected.
// Selecting moves to the node, deselecting moves to its parent. The
// selection is updated after the navigation returns, even when it failed.
func (n *Navigator) Select(ctx context.Context, node *api.Node, selected bool) error {
	var err error
	if selected {
		err = n.History.Push(ctx, node.FullPath())
		n.Reconciler.SetSelected(node)
	} else {
		err = n.History.Push(ctx, node.Parent)
		n.Reconciler.SetSelected(nil)
	}
	return err
}

// Toggle is called by the widget when node gets expanded or collapsed.
// Expanding anything but the root moves to the node.
func (n *Navigator) Toggle(ctx context.Context, node *api.Node, expanded bool) error {
	n.Reconciler.SetExpanded(node, expanded)
	if expanded && !node.IsRoot() {
		return n.History.Push(ctx, node.FullPath())
	}
	return nil
}

// Back moves to the previous location
func (n *Navigator) Back(ctx context.Context) (bool, error) {
	return n.History.Back(ctx)
}

// Forward moves to the next location
func (n *Navigator) Forward(ctx context.Context) (bool, error) {
	return n.History.Forward(ctx)
}

// Refresh reconciles the current location again
func (n *Navigator) Refresh(ctx context.Context) error {
	return n.onLocationChange(ctx, n.History.Path())
}

// SelectedPrefix joins the selected path up to depth, for breadcrumbs.
func (n *Navigator) SelectedPrefix(depth int) string {
	selected := n.Reconciler.SelectedPath()
	end := depth + 1
	if end > len(selected) {
		end = len(selected)
	}
	if end < 1 {
		end = 1
	}
	return "/" + strings.Join(selected[1:end], "/")
}

// Canonicalize normalizes a location path and makes it absolute.
func Canonicalize(path string) string {
	normalized := zkpath.Normalize(path)
	if !strings.HasPrefix(normalized, "/") {
		normalized = "/" + normalized
	}
	return normalized
}
