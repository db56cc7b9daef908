package lex

import (
	u "github.com/araddon/gou"

	"github.com/fuhongbo/grapheme/pos"
)

type bracketFrame struct {
	pairID int
	char   byte
	index  int
}

// Balance runs the second, linear pass over tokens: it assigns a shared
// pairID to every matching paren/bracket pair, disambiguates opening vs.
// closing vertical bars, and rejects any imbalance. tokens are mutated
// in place.
func Balance(source string, tokens []Token) error {
	var stack []bracketFrame
	counter := 0

	for i := range tokens {
		tok := &tokens[i]
		if tok.Kind != Paren {
			continue
		}
		switch tok.ParenChar {
		case '(', '[':
			counter++
			tok.PairID = counter
			tok.Opening = true
			stack = append(stack, bracketFrame{pairID: counter, char: tok.ParenChar, index: tok.Index})
			u.Debugf("balance: push %c pair=%d", tok.ParenChar, counter)

		case ')', ']':
			want := byte('(')
			if tok.ParenChar == ']' {
				want = '['
			}
			if len(stack) == 0 {
				return pos.NewErrorAt(source, tok.Index, "Unbalanced bracket: no matching opener", "")
			}
			top := stack[len(stack)-1]
			if top.char != want {
				err := pos.NewErrorAt(source, tok.Index, "Unbalanced bracket: mismatched closer", "")
				return err.WithNote(source, top.index, "this is the bracket it does not match")
			}
			stack = stack[:len(stack)-1]
			tok.PairID = top.pairID
			tok.Opening = false

		case '|':
			if isOpeningBar(tokens, i) || len(stack) == 0 || stack[len(stack)-1].char != '|' {
				counter++
				tok.PairID = counter
				tok.Opening = true
				stack = append(stack, bracketFrame{pairID: counter, char: '|', index: tok.Index})
				u.Debugf("balance: push | pair=%d", counter)
			} else {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				tok.PairID = top.pairID
				tok.Opening = false
			}
		}
	}

	if len(stack) > 0 {
		outer := stack[0]
		return pos.NewErrorAt(source, outer.index, "Unbalanced bracket: never closed", "")
	}
	return nil
}

// isOpeningBar implements the "close bars as soon as semantically
// possible" disambiguation: a '|' is opening if the previous token is
// an operator_token, an opening bar, or the start of input. Otherwise
// Balance closes the open bar on top of the bracket stack, or, when the
// stack top is not an open bar (e.g. "(|x|)" or "f(a, |b|)"), opens a
// new one. This correctly disambiguates `||x||` (two opening bars) from
// `|3*|x||` (the outer `| ... |` closes normally).
func isOpeningBar(tokens []Token, i int) bool {
	if i == 0 {
		return true
	}
	prev := tokens[i-1]
	if prev.Kind == Operator {
		return true
	}
	if prev.Kind == Paren && prev.ParenChar == '|' && prev.Opening {
		return true
	}
	return false
}
