// Package navigator keeps a partial, lazily fetched copy of the store tree in
// step with a location path.
package navigator

import (
	"context"
	"strings"
	"sync"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/pkg/errors"
	"github.com/shaie/browze/pkg/api"
	"github.com/shaie/browze/pkg/zkpath"
)

// ErrStale is returned by Navigate when a newer navigation started while
// this one was fetching. The response is dropped.
var ErrStale = errors.New("navigation superseded")

//go:generate mockgen -destination=../test-mocks/navigator/fetcher_mock.go -package=navigator github.com/shaie/browze/pkg/navigator Fetcher

// A Fetcher fetches the node at path. With fullHierarchy the tree in the
// response starts at the root.
type Fetcher interface {
	Browse(ctx context.Context, path string, fullHierarchy bool) (*api.ZkNode, error)
}

// Reconciler owns the partial tree, the expanded set and the selection.
// Navigate is the only operation that changes the tree.
type Reconciler struct {
	Logger  log.Logger
	Fetcher Fetcher

	mu           sync.Mutex
	tree         []*api.Node
	expanded     []*api.Node
	selectedPath []string
	selectedNode *api.Node
	data         interface{}
	stat         *api.Stat
	errorMsg     string
	seq          uint64
}

// NewReconciler builds an empty Reconciler, used with dig
func NewReconciler(logger log.Logger, fetcher Fetcher) *Reconciler {
	return &Reconciler{
		Logger:       logger,
		Fetcher:      fetcher,
		tree:         []*api.Node{},
		expanded:     []*api.Node{},
		selectedPath: []string{zkpath.Root},
	}
}

// Navigate fetches whatever is missing to show path and merges it into the
// tree. path must be normalized and non-empty. A failed fetch is recorded
// as the display error and leaves tree and expansion untouched.
func (r *Reconciler) Navigate(ctx context.Context, path string) error {
	debug := level.Debug(log.With(r.Logger, "method", "Navigate", "path", path))

	r.mu.Lock()
	r.seq++
	seq := r.seq
	r.removeSubExpandedNodes(path)
	fullHierarchyExists := path != zkpath.Root && r.fullHierarchyExists(path)
	r.mu.Unlock()

	debug.Log("event", "fetch", "fullHierarchy", !fullHierarchyExists)
	resp, err := r.Fetcher.Browse(ctx, path, !fullHierarchyExists)

	r.mu.Lock()
	defer r.mu.Unlock()

	if seq != r.seq {
		debug.Log("event", "fetch.stale", "seq", seq, "latest", r.seq)
		return ErrStale
	}

	if err != nil {
		debug.Log("event", "fetch.fail", "err", err)
		r.errorMsg = err.Error()
		return err
	}
	if resp == nil || resp.Tree == nil {
		r.errorMsg = "empty response for " + path
		return errors.New(r.errorMsg)
	}

	if !fullHierarchyExists {
		r.tree = []*api.Node{resp.Tree}
		r.removeRootFromExpandedNodes()
	}

	node := r.findNode(path)
	if node == nil {
		r.errorMsg = "node " + path + " not found in tree"
		return errors.New(r.errorMsg)
	}
	if fullHierarchyExists {
		node.Children = resp.Tree.Children
		node.Leaf = resp.Tree.Leaf
	}

	if node.Leaf {
		r.selectedNode = node
	}

	r.setSelectedPath(path)
	r.data = resp.Data
	r.stat = resp.Stat
	if node.Leaf {
		r.expandAllNodesOnPath(node.Parent)
	} else {
		r.expandAllNodesOnPath(path)
	}
	r.errorMsg = ""
	return nil
}

// the node at the parent of path is already in memory
func (r *Reconciler) fullHierarchyExists(path string) bool {
	if len(r.tree) == 0 {
		return false
	}
	return r.findNode(zkpath.Parent(path)) != nil
}

func (r *Reconciler) findNode(path string) *api.Node {
	if len(r.tree) == 0 {
		return nil
	}
	node := r.tree[0]
	for _, label := range zkpath.SplitTrim(path, "/") {
		idx := zkpath.FindChildIndex(label, node.Children)
		if idx == -1 {
			return nil
		}
		node = node.Children[idx]
	}
	return node
}

func (r *Reconciler) indexOfExpanded(node *api.Node) int {
	for i, expanded := range r.expanded {
		if expanded.SameAs(node) {
			return i
		}
	}
	return -1
}

func (r *Reconciler) addToExpandedNodes(node *api.Node) {
	if node == nil || r.indexOfExpanded(node) != -1 {
		return
	}
	r.expanded = append(r.expanded, node)
}

// drops expanded nodes whose parent path starts with prefix
func (r *Reconciler) removeSubExpandedNodes(prefix string) {
	kept := r.expanded[:0]
	for _, node := range r.expanded {
		if node.Parent != "" && strings.HasPrefix(node.Parent, prefix) {
			continue
		}
		kept = append(kept, node)
	}
	r.expanded = kept
}

func (r *Reconciler) removeRootFromExpandedNodes() {
	kept := r.expanded[:0]
	for _, node := range r.expanded {
		if node.Parent == "" {
			continue
		}
		kept = append(kept, node)
	}
	r.expanded = kept
}

// expands the root and every node on path
func (r *Reconciler) expandAllNodesOnPath(path string) {
	if len(r.tree) == 0 {
		return
	}
	node := r.tree[0]
	r.addToExpandedNodes(node)
	for _, label := range zkpath.SplitTrim(path, "/") {
		idx := zkpath.FindChildIndex(label, node.Children)
		if idx == -1 {
			return
		}
		node = node.Children[idx]
		r.addToExpandedNodes(node)
	}
}

func (r *Reconciler) setSelectedPath(path string) {
	r.selectedPath = append([]string{zkpath.Root}, zkpath.SplitTrim(path, "/")...)
}

// SetExpanded adds node to or removes it from the expanded set, the way the
// tree widget does when the user toggles a node.
func (r *Reconciler) SetExpanded(node *api.Node, expanded bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if expanded {
		if found := r.findNode(node.FullPath()); found != nil {
			node = found
		}
		r.addToExpandedNodes(node)
		return
	}
	if idx := r.indexOfExpanded(node); idx != -1 {
		r.expanded = append(r.expanded[:idx], r.expanded[idx+1:]...)
	}
}

// SetSelected marks node as the selected node; nil clears the selection
func (r *Reconciler) SetSelected(node *api.Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if node == nil {
		r.selectedNode = nil
		return
	}
	if found := r.findNode(node.FullPath()); found != nil {
		node = found
	}
	r.selectedNode = node
}

// IsExpanded reports whether node is in the expanded set
func (r *Reconciler) IsExpanded(node *api.Node) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.indexOfExpanded(node) != -1
}

// Lookup returns a copy of the node at path, or nil
func (r *Reconciler) Lookup(path string) *api.Node {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findNode(path).Clone()
}

// SelectedPath returns a copy of the selected path segments
func (r *Reconciler) SelectedPath() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.selectedPath...)
}
