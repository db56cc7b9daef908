package expr

import (
	"fmt"

	"github.com/fuhongbo/grapheme/pos"
)

// collapseFunctions is Step D: a pre-order pass over every child list
// looking for a function_token immediately followed by a KindGroup
// (its argument list). The pair collapses into one KindFunction node;
// the group's children are split on commas into one subtree per
// argument (splitFunctionArgs), which is what lets a comma survive at
// all — anywhere else a surviving comma is a Step K error.
func collapseFunctions(source string, root *Node) error {
	return rewriteChildLists(root, false, func(_ *Node, children []*Node) ([]*Node, error) {
		out := make([]*Node, 0, len(children))
		i := 0
		for i < len(children) {
			c := children[i]
			if c.Kind != KindFunctionToken {
				out = append(out, c)
				i++
				continue
			}
			if i+1 >= len(children) || children[i+1].Kind != KindGroup || children[i+1].ParenType != '(' {
				return nil, pos.NewErrorAt(source, c.Index, fmt.Sprintf("Function %q must be followed by a parenthesized argument list", c.Name), "")
			}
			argsGroup := children[i+1]
			args, err := splitFunctionArgs(argsGroup.Children)
			if err != nil {
				return nil, err
			}
			out = append(out, &Node{
				Kind:      KindFunction,
				Index:     c.Index,
				EndIndex:  argsGroup.EndIndex,
				hasIndex:  true,
				Name:      c.Name,
				ParenInfo: ParenInfo{StartIndex: argsGroup.Index, EndIndex: argsGroup.EndIndex},
				Children:  args,
			})
			i += 2
		}
		return out, nil
	})
}

// splitFunctionArgs splits a parenthesized argument list's flat
// children on comma tokens. A segment of more than one item is wrapped
// in a synthetic ε-group so later passes (the operator passes, then
// Step K's group finalizer) can reduce it like any other subexpression.
// An empty children list (no tokens at all, i.e. "f()") yields zero
// arguments; empty segments cannot occur here because Step A already
// rejects a comma at the start or end of a parenthesized subexpression.
func splitFunctionArgs(children []*Node) ([]*Node, error) {
	if len(children) == 0 {
		return nil, nil
	}
	var args []*Node
	var cur []*Node
	for _, c := range children {
		if c.Kind == KindComma {
			args = append(args, wrapArgument(cur))
			cur = nil
			continue
		}
		cur = append(cur, c)
	}
	args = append(args, wrapArgument(cur))
	return args, nil
}

func wrapArgument(items []*Node) *Node {
	if len(items) == 1 {
		return items[0]
	}
	idx := 0
	if len(items) > 0 {
		idx = items[0].Index
	}
	return &Node{Kind: KindGroup, ParenType: 0, Index: idx, Children: items}
}
