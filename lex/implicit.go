package lex

import u "github.com/araddon/gou"

// InsertImplicitMultiplication walks the balanced token stream and
// inserts a synthetic `*` operator_token between adjacent "value-like"
// tokens, e.g. "2x" -> "2 * x", "3(x+1)" -> "3 * (x+1)". `[` is
// deliberately excluded as an opener on the right-hand side so that
// `arr[3]` stays a subscript rather than becoming `arr * [3]` — it is
// not yet a valid expression opener in the tree builder, but the
// exclusion keeps the door open for subscript syntax later.
func InsertImplicitMultiplication(tokens []Token) []Token {
	if len(tokens) == 0 {
		return tokens
	}
	out := make([]Token, 0, len(tokens)+len(tokens)/4)
	out = append(out, tokens[0])
	for i := 1; i < len(tokens); i++ {
		prev := tokens[i-1]
		cur := tokens[i]
		if needsImplicitMultiply(prev, cur) {
			synth := Token{Kind: Operator, Op: "*", Implicit: true, Index: cur.Index - 1}
			u.Debugf("implicit *: between %v and %v", prev, cur)
			out = append(out, synth)
		}
		out = append(out, cur)
	}
	return out
}

func needsImplicitMultiply(a, b Token) bool {
	if !isImplicitLeft(a) {
		return false
	}
	return isImplicitRight(b)
}

// isImplicitLeft reports whether a can be the left operand of a
// synthesized implicit multiplication: a number, a variable, or a
// closing paren/bracket/bar.
func isImplicitLeft(a Token) bool {
	switch a.Kind {
	case Number, Variable:
		return true
	case Paren:
		return !a.Opening
	}
	return false
}

// isImplicitRight reports whether b can be the right operand: an
// opening paren (but not '['), an opening bar, a number, a variable,
// or a function_token.
func isImplicitRight(b Token) bool {
	switch b.Kind {
	case Number, Variable, Function:
		return true
	case Paren:
		if !b.Opening {
			return false
		}
		return b.ParenChar == '(' || b.ParenChar == '|'
	}
	return false
}
