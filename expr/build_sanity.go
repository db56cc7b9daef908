package expr

import (
	"fmt"

	"github.com/fuhongbo/grapheme/lex"
	"github.com/fuhongbo/grapheme/pos"
)

// earlySanityCheck is the tree builder's first pass: a single pairwise
// scan over the flat, balanced token stream that rejects the cheapest,
// most common mistakes (a stray operator at the edge of a subexpression,
// a doubled comma, a property access on nothing) before any tree gets
// built at all. Everything it doesn't catch is still caught later, by
// the operator passes or the residual-token check; this pass exists so
// those mistakes get a sharper, more specific error.
func earlySanityCheck(source string, tokens []lex.Token) error {
	for i := range tokens {
		t := &tokens[i]
		var left, right *lex.Token
		if i > 0 {
			left = &tokens[i-1]
		}
		if i+1 < len(tokens) {
			right = &tokens[i+1]
		}

		switch t.Kind {
		case lex.Operator:
			if requiresPrefixCapableNext(left) && !isPrefixCapable(t.Op) {
				return pos.NewErrorAt(source, t.Index, fmt.Sprintf("Unexpected operator %q at the start of an expression", t.Op), "")
			}
			if isCloserOrEnd(right) && !isPostfixCapable(t.Op) {
				return pos.NewErrorAt(source, t.Index, fmt.Sprintf("Operator %q has nothing to its right", t.Op), "")
			}
		case lex.Comma:
			if isOpenerOrStart(left) {
				return pos.NewErrorAt(source, t.Index, "Comma at the start of a parenthesized subexpression", "")
			}
			if isCloserOrEnd(right) {
				return pos.NewErrorAt(source, t.Index, "Comma at the end of a parenthesized subexpression", "")
			}
		case lex.PropertyAccess:
			if left == nil || left.Kind == lex.Comma || left.Kind == lex.Operator || (left.Kind == lex.Paren && left.Opening) {
				return pos.NewErrorAt(source, t.Index, fmt.Sprintf("Property access '.%s' on nothing", t.Prop), "")
			}
		}
	}
	return nil
}

func isPrefixCapable(op string) bool  { return op == "+" || op == "-" }
func isPostfixCapable(op string) bool { return op == "!" || op == "!!" }

// requiresPrefixCapableNext reports whether an operator sitting just
// after t must be usable as a prefix operator: true at the start of
// input, right after an opener or comma, or right after another
// operator (back-to-back operators are only valid when the second acts
// as a unary prefix, e.g. "3 * -x").
func requiresPrefixCapableNext(t *lex.Token) bool {
	if isOpenerOrStart(t) {
		return true
	}
	return t != nil && t.Kind == lex.Operator
}

func isOpenerOrStart(t *lex.Token) bool {
	if t == nil {
		return true
	}
	if t.Kind == lex.Comma {
		return true
	}
	return t.Kind == lex.Paren && t.Opening
}

func isCloserOrEnd(t *lex.Token) bool {
	if t == nil {
		return true
	}
	if t.Kind == lex.Comma {
		return true
	}
	return t.Kind == lex.Paren && !t.Opening
}
