package expr

import "github.com/fuhongbo/grapheme/lex"

// collapseChainedComparisons is Step H: tried after Phase 1 but before
// Phase 2, so "a < b < c" collapses as one three-way chain instead of
// Phase 2 first folding it left-associatively into "(a < b) < c". A
// child list qualifies only if it strictly alternates operand,
// comparison operator_token, operand, ... for at least two operators
// (length >= 5, odd); anything else is left untouched for Phase 2.
func collapseChainedComparisons(source string, root *Node) error {
	return rewriteChildLists(root, true, func(_ *Node, children []*Node) ([]*Node, error) {
		if len(children) < 5 || len(children)%2 == 0 {
			return children, nil
		}
		for i, c := range children {
			if i%2 == 1 {
				if c.Kind != KindOperatorToken || !isComparisonOp(c.Op) {
					return children, nil
				}
			} else if !c.IsOperand() {
				return children, nil
			}
		}

		newChildren := make([]*Node, 0, len(children))
		newChildren = append(newChildren, children[0])
		for i := 1; i < len(children); i += 2 {
			opTok := children[i]
			opNode := &Node{
				Kind: KindString, Index: opTok.Index, EndIndex: opTok.EndIndex, hasIndex: true,
				Contents: opTok.Op, Src: lex.SrcOperator, Quote: lex.QuoteNone,
			}
			newChildren = append(newChildren, opNode, children[i+1])
		}
		cchain := &Node{
			Kind: KindOperator, Op: "cchain",
			Index: children[0].Index, EndIndex: children[len(children)-1].EndIndex, hasIndex: true,
			Children: newChildren,
		}
		return []*Node{cchain}, nil
	})
}

func isComparisonOp(op string) bool {
	switch op {
	case "==", "!=", "<", ">", "<=", ">=":
		return true
	}
	return false
}
