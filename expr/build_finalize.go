package expr

import "github.com/fuhongbo/grapheme/pos"

// finalizeGroups is Step K: every KindGroup node still sitting in a
// child list at this point is either a leftover paren/bracket that
// never got consumed by a function call, or the synthetic ε-wrapper
// splitFunctionArgs used for a multi-token argument. Each is resolved (and, on success, replaced by its single
// surviving child) by resolveGroup.
func finalizeGroups(source string, root *Node) error {
	return rewriteChildLists(root, true, func(parent *Node, children []*Node) ([]*Node, error) {
		out := make([]*Node, 0, len(children))
		for _, c := range children {
			if c.Kind != KindGroup {
				out = append(out, c)
				continue
			}
			resolved, err := resolveGroup(source, c)
			if err != nil {
				if pe, ok := err.(*pos.ParserError); ok && pe.Message == emptySubexprMessage &&
					parent != nil && parent.Kind == KindOperator && parent.Op == "*" && parent.Implicit &&
					len(out) == 1 && out[0].Kind == KindVariable {
					return nil, pe.WithNote(source, out[0].Index, "if you meant a function call, remove the space before '('")
				}
				return nil, err
			}
			out = append(out, resolved)
		}
		return out, nil
	})
}

const emptySubexprMessage = "Empty parenthesized subexpression"

// resolveGroup validates a single parenthesized subexpression and, if
// valid, returns the one node it resolves to. A comma still present
// takes priority over reporting emptiness when, hypothetically, both
// could apply (Design Notes: the comma diagnostic wins).
func resolveGroup(source string, g *Node) (*Node, error) {
	for _, c := range g.Children {
		if c.Kind == KindComma {
			return nil, pos.NewErrorAt(source, g.Index, "Parenthesized subexpression contains a comma that was not consumed by a function call", "")
		}
	}
	switch len(g.Children) {
	case 0:
		return nil, pos.NewErrorAt(source, g.Index, emptySubexprMessage, "")
	case 1:
		return g.Children[0], nil
	default:
		return nil, pos.NewErrorAt(source, g.Index, "Parenthesized subexpression did not reduce to a single expression", "")
	}
}

// residualCheck is Step L: after every collapsing pass has run, no
// token-kind node may remain anywhere in the tree, and no
// type_annotation may remain either. A type_annotation only has meaning
// as an arrow function's parameter (Step J's buildSignature consumes it
// there, pulling its target/typename out into Vars/Types); a "x: real"
// that never reaches a '->' is dangling, the same way a stray comma or
// operator token is, so it must fail here rather than surface as a
// standalone AST node.
func residualCheck(source string, root *Node) error {
	return Traverse(root, func(node, _ *Node, _ int) error {
		if node.Kind.isTokenKind() {
			return pos.NewErrorAt(source, node.Index, "Internal error: an unprocessed "+node.Kind.String()+" token remained in the tree", "")
		}
		if node.Kind == KindTypeAnnotation {
			return pos.NewErrorAt(source, node.Index, "A type annotation is only valid as an arrow function's parameter; it cannot stand on its own", "")
		}
		return nil
	}, TraverseOptions{})
}

// completeIndices is Step M: a safety-net post-order pass filling in
// Index/EndIndex for any node a construction site left unset, by
// spanning its first and last child. Every node built by this package
// already sets its own index eagerly; this exists for nodes that don't
// (KindInvalid placeholders, future passes) rather than as the primary
// mechanism.
func completeIndices(root *Node) error {
	return Traverse(root, func(node, _ *Node, _ int) error {
		if node.hasIndex {
			return nil
		}
		if len(node.Children) > 0 {
			node.Index = node.Children[0].Index
			node.EndIndex = node.Children[len(node.Children)-1].EndIndex
		}
		node.hasIndex = true
		return nil
	}, TraverseOptions{ChildrenFirst: true})
}

// checkMaxDepth is Step N: an optional final check against
// plan.Options.MaxExpressionDepth (0 means unlimited).
func checkMaxDepth(source string, root *Node, maxDepth int) error {
	if maxDepth <= 0 {
		return nil
	}
	depth, err := Depth(root)
	if err != nil {
		return err
	}
	if depth > maxDepth {
		return pos.NewErrorAt(source, root.Index, "Expression tree is too deeply nested", "")
	}
	return nil
}
