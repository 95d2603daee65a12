package rubyast

import (
	"errors"

	"github.com/yaklabco/rbfix/pkg/srcrange"
)

// ErrStopWalk may be returned from a WalkFunc to end a walk early without
// reporting an error.
var ErrStopWalk = errors.New("stop walk")

// File is a parsed Ruby source file.
type File struct {
	Path   string
	Buffer *srcrange.Buffer
	Root   *Node

	// Comments holds every comment range in source order.
	Comments []srcrange.Range

	// HasErrors is set when the parser recovered from syntax errors.
	HasErrors bool
}

// Content returns the raw file content.
func (f *File) Content() []byte {
	return f.Buffer.Source()
}

// CommentAtLine returns the first comment that starts on the 1-based line.
func (f *File) CommentAtLine(line int) (srcrange.Range, bool) {
	for _, c := range f.Comments {
		switch first := c.FirstLine(); {
		case first == line:
			return c, true
		case first > line:
			return srcrange.Range{}, false
		}
	}
	return srcrange.Range{}, false
}

// WalkFunc is the function signature for Walk callbacks.
type WalkFunc func(n *Node) error

// Walk performs a pre-order traversal of the tree starting at root. A
// non-nil error from walkFunc stops the walk; ErrStopWalk is swallowed.
func Walk(root *Node, walkFunc WalkFunc) error {
	err := walk(root, walkFunc)
	if errors.Is(err, ErrStopWalk) {
		return nil
	}
	return err
}

func walk(n *Node, walkFunc WalkFunc) error {
	if n == nil {
		return nil
	}
	if err := walkFunc(n); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := walk(child, walkFunc); err != nil {
			return err
		}
	}
	return nil
}

// Descendants returns every node below root in pre-order, root excluded.
func Descendants(root *Node) []*Node {
	var out []*Node
	if root == nil {
		return out
	}
	for _, child := range root.Children {
		_ = walk(child, func(n *Node) error {
			out = append(out, n)
			return nil
		})
	}
	return out
}

// FindAll returns the descendants of root that satisfy pred, in pre-order.
func FindAll(root *Node, pred func(*Node) bool) []*Node {
	var out []*Node
	for _, n := range Descendants(root) {
		if pred(n) {
			out = append(out, n)
		}
	}
	return out
}
