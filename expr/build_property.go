package expr

import (
	"fmt"

	"github.com/fuhongbo/grapheme/lex"
	"github.com/fuhongbo/grapheme/pos"
)

// collapsePropertyAccess is Step E: a post-order, left-to-right rebuild
// of every child list. A property_access token pops the node just
// emitted and replaces it with a "." operator node whose right child is
// a synthetic string leaf carrying the property name — the same shape
// `a.b` would have if `.` were an ordinary infix operator.
func collapsePropertyAccess(source string, root *Node) error {
	return rewriteChildLists(root, true, func(_ *Node, children []*Node) ([]*Node, error) {
		out := make([]*Node, 0, len(children))
		for _, c := range children {
			if c.Kind != KindPropertyAccessToken {
				out = append(out, c)
				continue
			}
			if len(out) == 0 {
				return nil, pos.NewErrorAt(source, c.Index, fmt.Sprintf("Property access '.%s' on nothing", c.Prop), "")
			}
			left := out[len(out)-1]
			propEnd := c.Index + len(c.Prop)
			propNode := &Node{
				Kind: KindString, Index: c.Index, EndIndex: propEnd, hasIndex: true,
				Contents: c.Prop, Src: lex.SrcPropertyAccess, Quote: lex.QuoteNone,
			}
			out[len(out)-1] = &Node{
				Kind: KindOperator, Op: ".", Index: left.Index, EndIndex: propEnd, hasIndex: true,
				Children: []*Node{left, propNode},
			}
		}
		return out, nil
	})
}
