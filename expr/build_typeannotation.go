package expr

import "github.com/fuhongbo/grapheme/pos"

// collapseTypeAnnotations is Step F: a post-order triplewise scan for
// (target, colon, typename). target must be a variable or a
// parenthesized group (so "x: real" and "(x+1): real" both work, but
// "2: real" does not); typename must currently be a plain variable
// token — the scanner never emits a dedicated typename token, so
// recognizing one here is what turns a `variable` into a `typename` in
// the first place (mutated in place, keeping its Index/EndIndex).
func collapseTypeAnnotations(source string, root *Node) error {
	return rewriteChildLists(root, true, func(_ *Node, children []*Node) ([]*Node, error) {
		out := make([]*Node, 0, len(children))
		i := 0
		for i < len(children) {
			c := children[i]
			if c.Kind != KindColonToken {
				out = append(out, c)
				i++
				continue
			}
			if len(out) == 0 {
				return nil, pos.NewErrorAt(source, c.Index, "Stray ':' with nothing to its left", "")
			}
			target := out[len(out)-1]
			if target.Kind != KindVariable && target.Kind != KindGroup {
				return nil, pos.NewErrorAt(source, c.Index, "A type annotation ':' must follow a variable or a parenthesized expression", "")
			}
			if i+1 >= len(children) || children[i+1].Kind != KindVariable {
				return nil, pos.NewErrorAt(source, c.Index, "A type annotation ':' must be followed by a type name", "")
			}
			typeTok := children[i+1]
			typeTok.Kind = KindTypenameToken

			out[len(out)-1] = &Node{
				Kind: KindTypeAnnotation, Index: target.Index, EndIndex: typeTok.EndIndex, hasIndex: true,
				Children: []*Node{target, typeTok},
			}
			i += 2
		}
		return out, nil
	})
}
