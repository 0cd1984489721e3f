package navigator

import "github.com/shaie/browze/pkg/api"

// State is a read-only copy of everything the presentation layer shows.
type State struct {
	Tree         []*api.Node
	Expanded     []string
	SelectedPath []string
	SelectedNode string
	Data         interface{}
	Stat         *api.Stat
	Error        string
}

// Row is one visible line of the tree widget
type Row struct {
	Node     *api.Node // without children
	Children int
	Depth    int
	Expanded bool
	Selected bool
}

// Snapshot copies the current state
func (r *Reconciler) Snapshot() State {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := State{
		Tree:         make([]*api.Node, 0, len(r.tree)),
		Expanded:     make([]string, 0, len(r.expanded)),
		SelectedPath: append([]string{}, r.selectedPath...),
		Data:         r.data,
		Error:        r.errorMsg,
	}
	for _, node := range r.tree {
		state.Tree = append(state.Tree, node.Clone())
	}
	for _, node := range r.expanded {
		state.Expanded = append(state.Expanded, node.FullPath())
	}
	if r.selectedNode != nil {
		state.SelectedNode = r.selectedNode.FullPath()
	}
	if r.stat != nil {
		stat := *r.stat
		state.Stat = &stat
	}
	return state
}

// Rows flattens the tree into the lines a tree widget shows: the root, and
// the children of every expanded node, depth first.
func (r *Reconciler) Rows() []Row {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := []Row{}
	var walk func(node *api.Node, depth int)
	walk = func(node *api.Node, depth int) {
		expanded := r.indexOfExpanded(node) != -1
		rows = append(rows, Row{
			Node:     &api.Node{Label: node.Label, Parent: node.Parent, Leaf: node.Leaf},
			Children: len(node.Children),
			Depth:    depth,
			Expanded: expanded,
			Selected: r.selectedNode != nil && r.selectedNode.SameAs(node),
		})
		if !expanded {
			return
		}
		for _, child := range node.Children {
			walk(child, depth+1)
		}
	}
	for _, root := range r.tree {
		walk(root, 0)
	}
	return rows
}
