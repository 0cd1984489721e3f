// Package zkpath holds the path helpers shared by the browse server and the
// navigation client.
package zkpath

import (
	"path"
	"regexp"
	"strings"
)

// Root is the path of the root node.
const Root = "/"

var (
	slashRuns     = regexp.MustCompile(`/+`)
	trailingSlash = regexp.MustCompile(`/+$`)
)

// FullPath returns the path of the node named label under parent.
// An empty parent denotes the root node itself.
func FullPath(parent, label string) string {
	separator := "/"
	if parent == "" || parent == Root {
		separator = ""
	}
	return parent + separator + label
}

// Normalize collapses runs of '/' into one and strips a trailing '/'.
func Normalize(url string) string {
	if url == "" {
		return ""
	}
	return trailingSlash.ReplaceAllString(slashRuns.ReplaceAllString(url, "/"), "")
}

// SplitTrim splits s on sep and drops leading and trailing empty segments.
// Interior empty segments are kept.
func SplitTrim(s, sep string) []string {
	if s == "" {
		return []string{}
	}
	elements := strings.Split(s, sep)

	start := 0
	for start < len(elements) && elements[start] == "" {
		start++
	}
	end := len(elements)
	for end > start && elements[end-1] == "" {
		end--
	}
	return elements[start:end]
}

// Labeled is anything carrying a path label.
type Labeled interface {
	GetLabel() string
}

// FindChildIndex returns the index of the first child whose label equals
// label, or -1.
func FindChildIndex[T Labeled](label string, children []T) int {
	for i, child := range children {
		if child.GetLabel() == label {
			return i
		}
	}
	return -1
}

// ExtractLabel returns the first path component of p.
func ExtractLabel(p string) (string, bool) {
	if p == "" {
		return "", false
	}
	idx := strings.Index(p, "/")
	if idx == -1 {
		return p, true
	}
	return p[:idx], true
}

// MakePath joins a store path and a child name into a clean absolute path.
func MakePath(parent, child string) string {
	return path.Join(Root, parent, child)
}

// Split returns the parent path and the node name of p. The root splits into
// ("/", "").
func Split(p string) (string, string) {
	clean := MakePath(p, "")
	if clean == Root {
		return Root, ""
	}
	idx := strings.LastIndex(clean, "/")
	if idx == 0 {
		return Root, clean[1:]
	}
	return clean[:idx], clean[idx+1:]
}

// Parent returns the substring of p before its last '/', or "" when p has
// none.
func Parent(p string) string {
	idx := strings.LastIndex(p, "/")
	if idx == -1 {
		return ""
	}
	return p[:idx]
}
