package expr

import "github.com/fuhongbo/grapheme/lex"

// parenthesize is Step B: a single left-to-right pass that turns the
// flat token buffer into an initial tree. It keeps a stack of "opener
// frames" recording, for each open paren/bracket/bar, the position in
// the output buffer where its contents begin; on the matching closer it
// slices that range out of the output buffer and replaces it with one
// KindGroup node. tokens must already be balanced (lex.Balance).
func parenthesize(tokens []lex.Token) *Node {
	type openerFrame struct {
		startPos  int
		parenChar byte
		index     int
	}

	var stack []openerFrame
	var output []*Node

	for _, t := range tokens {
		if t.Kind != lex.Paren {
			output = append(output, FromToken(t))
			continue
		}
		if t.Opening {
			stack = append(stack, openerFrame{startPos: len(output), parenChar: t.ParenChar, index: t.Index})
			continue
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		children := append([]*Node(nil), output[top.startPos:]...)
		output = output[:top.startPos]
		output = append(output, &Node{
			Kind:      KindGroup,
			Index:     top.index,
			EndIndex:  t.Index,
			hasIndex:  true,
			ParenType: top.parenChar,
			Children:  children,
		})
	}

	return &Node{Kind: KindGroup, ParenType: 0, Children: output}
}
