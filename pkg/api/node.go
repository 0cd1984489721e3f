package api

import "github.com/shaie/browze/pkg/zkpath"

// Node is one entry of the browsed store. Parent is the path of the parent
// node and is empty for the root.
type Node struct {
	Label    string  `json:"label" yaml:"label"`
	Parent   string  `json:"parent,omitempty" yaml:"parent,omitempty"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
	Leaf     bool    `json:"leaf" yaml:"leaf"`
}

// GetLabel implements zkpath.Labeled
func (n *Node) GetLabel() string {
	return n.Label
}

// FullPath returns the store path of the node
func (n *Node) FullPath() string {
	return zkpath.FullPath(n.Parent, n.Label)
}

// IsRoot reports whether n has no parent
func (n *Node) IsRoot() bool {
	return n.Parent == ""
}

// SameAs compares nodes by identity key (parent, label)
func (n *Node) SameAs(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.Parent == other.Parent && n.Label == other.Label
}

// Clone returns a deep copy of n
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	clone := &Node{
		Label:  n.Label,
		Parent: n.Parent,
		Leaf:   n.Leaf,
	}
	if n.Children != nil {
		clone.Children = make([]*Node, 0, len(n.Children))
		for _, child := range n.Children {
			clone.Children = append(clone.Children, child.Clone())
		}
	}
	return clone
}

// Stat is the metadata kept by the store for every node
type Stat struct {
	Czxid          int64 `json:"czxid" yaml:"czxid"`
	Mzxid          int64 `json:"mzxid" yaml:"mzxid"`
	Ctime          int64 `json:"ctime" yaml:"ctime"`
	Mtime          int64 `json:"mtime" yaml:"mtime"`
	Version        int32 `json:"version" yaml:"version"`
	Cversion       int32 `json:"cversion" yaml:"cversion"`
	Aversion       int32 `json:"aversion" yaml:"aversion"`
	EphemeralOwner int64 `json:"ephemeralOwner" yaml:"ephemeralOwner"`
	DataLength     int32 `json:"dataLength" yaml:"dataLength"`
	NumChildren    int32 `json:"numChildren" yaml:"numChildren"`
	Pzxid          int64 `json:"pzxid" yaml:"pzxid"`
}

// ZkNode is the body of a successful browse call
type ZkNode struct {
	Tree *Node       `json:"tree" yaml:"tree"`
	Data interface{} `json:"data" yaml:"data"`
	Stat *Stat       `json:"stat" yaml:"stat"`
}

// ResolveData turns a raw payload into the value served as ZkNode.Data:
// nil stays nil, anything else is read as UTF-8 text.
func ResolveData(data []byte) interface{} {
	if data == nil {
		return nil
	}
	return string(data)
}

// Status is the body of the status call. ConnectString is nil while
// disconnected.
type Status struct {
	ConnectString *string `json:"connectString" yaml:"connectString"`
}

// ConnectResult is the body of a successful connect call
type ConnectResult struct {
	Msg string `json:"msg" yaml:"msg"`
}
