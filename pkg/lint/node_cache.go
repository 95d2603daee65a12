package lint

import "github.com/yaklabco/rbfix/pkg/rubyast"

// NodeCache holds collections of AST nodes by kind, gathered in one pre-order
// walk so that rules sharing a file do not walk it repeatedly.
//
// The returned slices are shared by every rule of the file. Copy before
// sorting or filtering in place.
//
// NodeCache is not safe for concurrent use; each RuleContext owns its own.
type NodeCache struct {
	sends   []*rubyast.Node
	strings []*rubyast.Node
	arrays  []*rubyast.Node
}

// NewNodeCache walks root and indexes its nodes. A nil root yields an empty
// cache.
func NewNodeCache(root *rubyast.Node) *NodeCache {
	nc := &NodeCache{}
	if root == nil {
		return nc
	}
	_ = rubyast.Walk(root, func(n *rubyast.Node) error {
		switch {
		case n.Kind == rubyast.KindSend:
			nc.sends = append(nc.sends, n)
		case n.IsStringLike():
			nc.strings = append(nc.strings, n)
		case n.Kind == rubyast.KindArray:
			nc.arrays = append(nc.arrays, n)
		}
		return nil
	})
	return nc
}

// Sends returns all method calls in document order.
func (nc *NodeCache) Sends() []*rubyast.Node { return nc.sends }

// Strings returns all string, heredoc, and backtick literals in document order.
func (nc *NodeCache) Strings() []*rubyast.Node { return nc.strings }

// Arrays returns all array literals, percent literals included.
func (nc *NodeCache) Arrays() []*rubyast.Node { return nc.arrays }

// SendsNamed returns the calls to any of the given methods, in document order.
func (nc *NodeCache) SendsNamed(methods ...string) []*rubyast.Node {
	var out []*rubyast.Node
	for _, n := range nc.sends {
		for _, m := range methods {
			if n.IsSend(m) {
				out = append(out, n)
				break
			}
		}
	}
	return out
}
