package zoo

import (
	"context"
	"sort"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/pkg/errors"
	"github.com/shaie/browze/pkg/api"
	"github.com/shaie/browze/pkg/zkpath"
)

// A Browser answers browse requests against a Store
type Browser interface {
	Browse(ctx context.Context, store Store, path string, fullHierarchy bool) (*api.ZkNode, error)
}

// NewBrowser builds a treeBrowser, used with dig
func NewBrowser(logger log.Logger) Browser {
	return &treeBrowser{Logger: logger}
}

type treeBrowser struct {
	Logger log.Logger
}

// Browse returns the node at path with its data and stat. Without
// fullHierarchy the tree is the node and its direct children. With it the
// tree starts at the root and every node on the way to path carries its
// children.
func (b *treeBrowser) Browse(ctx context.Context, store Store, path string, fullHierarchy bool) (*api.ZkNode, error) {
	debug := level.Debug(log.With(b.Logger, "method", "Browse", "path", path, "fullHierarchy", fullHierarchy))

	zkPath := zkpath.Root + strings.Trim(path, "/")
	data, stat, err := store.Get(ctx, zkPath)
	if err != nil {
		return nil, err
	}

	var tree *api.Node
	if !fullHierarchy {
		children, err := b.children(ctx, store, zkPath, stat)
		if err != nil {
			return nil, errors.Wrapf(err, "load children of %s", zkPath)
		}
		parent, name := zkpath.Split(zkPath)
		tree = newNode(parent, name, children, stat)
	} else {
		tree, err = b.rootNode(ctx, store)
		if err != nil {
			return nil, err
		}
		if err := b.buildRecursiveTree(ctx, store, tree, zkPath[1:]); err != nil {
			return nil, errors.Wrapf(err, "build tree to %s", zkPath)
		}
	}

	debug.Log("event", "browse.done", "children", len(tree.Children))
	return &api.ZkNode{
		Tree: tree,
		Data: api.ResolveData(data),
		Stat: stat,
	}, nil
}

// replaces the child of parent labeled by the first component of rest with
// a node carrying its own children, then descends into it
func (b *treeBrowser) buildRecursiveTree(ctx context.Context, store Store, parent *api.Node, rest string) error {
	label, ok := zkpath.ExtractLabel(rest)
	if !ok {
		return nil
	}

	parentPath := parent.FullPath()
	nodePath := zkpath.MakePath(parentPath, label)
	stat, err := store.Exists(ctx, nodePath)
	if err != nil {
		return err
	}
	children, err := b.children(ctx, store, nodePath, stat)
	if err != nil {
		return err
	}
	node := newNode(parentPath, label, children, stat)

	idx := zkpath.FindChildIndex(label, parent.Children)
	if idx == -1 {
		return nil
	}
	parent.Children[idx] = node

	if len(rest) <= len(label)+1 {
		return nil
	}
	return b.buildRecursiveTree(ctx, store, node, rest[len(label)+1:])
}

func (b *treeBrowser) rootNode(ctx context.Context, store Store) (*api.Node, error) {
	stat, err := store.Exists(ctx, zkpath.Root)
	if err != nil {
		return nil, errors.Wrap(err, "Cannot get stat of root node!")
	}
	children, err := b.children(ctx, store, zkpath.Root, stat)
	if err != nil {
		return nil, errors.Wrap(err, "load children of root")
	}
	return newNode(zkpath.Root, "", children, stat), nil
}

func (b *treeBrowser) children(ctx context.Context, store Store, path string, stat *api.Stat) ([]*api.Node, error) {
	if stat == nil || stat.NumChildren == 0 {
		return []*api.Node{}, nil
	}

	names, err := store.Children(ctx, path)
	if err != nil {
		return nil, err
	}

	children := make([]*api.Node, 0, len(names))
	for _, name := range names {
		childStat, err := store.Exists(ctx, zkpath.MakePath(path, name))
		if IsNoNode(err) {
			level.Debug(b.Logger).Log("event", "child.vanished", "path", path, "child", name)
			continue
		}
		if err != nil {
			return nil, err
		}
		children = append(children, newNode(path, name, nil, childStat))
	}
	return children, nil
}

// newNode builds the node named name under parent. An empty name denotes the
// root, labeled by parent itself.
func newNode(parent, name string, children []*api.Node, stat *api.Stat) *api.Node {
	node := &api.Node{
		Label:    name,
		Parent:   parent,
		Children: append([]*api.Node{}, children...),
	}
	if name == "" {
		node.Label = parent
		node.Parent = ""
	}

	// directories first, then by label
	sort.SliceStable(node.Children, func(i, j int) bool {
		ci, cj := node.Children[i], node.Children[j]
		if ci.Leaf != cj.Leaf {
			return !ci.Leaf
		}
		return ci.Label < cj.Label
	})

	node.Leaf = len(children) == 0 && (stat == nil || stat.NumChildren == 0)
	return node
}
