package expr

import (
	"fmt"

	"github.com/fuhongbo/grapheme/pos"
)

// opSet classifies operator strings by the role(s) they may play within
// a single pass. A given op string is never in more than one of these
// three sets for any one pass (e.g. "+" is unary-only in Phase 1's
// second pass and binary-only in its fourth).
type opSet struct {
	unaries, binaries, postfixes map[string]bool
}

func (s opSet) classify(op string) (isUnary, isBinary, isPostfix bool) {
	return s.unaries[op], s.binaries[op], s.postfixes[op]
}

func opsOf(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		m[it] = true
	}
	return m
}

// runOperatorPhase1 is Step G: five fixed passes over every child list,
// each scanning only for its own operator set, in precedence order from
// tightest to loosest.
func runOperatorPhase1(source string, root *Node) error {
	passes := []struct {
		ops opSet
		rtl bool
	}{
		{opSet{postfixes: opsOf("!", "!!")}, false},
		{opSet{unaries: opsOf("+", "-"), binaries: opsOf("^")}, true},
		{opSet{binaries: opsOf("*", "/")}, false},
		{opSet{binaries: opsOf("+", "-")}, false},
		{opSet{binaries: opsOf("and", "or")}, false},
	}
	for _, p := range passes {
		if err := applyOperatorPass(source, root, p.ops, p.rtl); err != nil {
			return err
		}
	}
	return nil
}

// runOperatorPhase2 is Step I: one left-to-right pass over the six
// comparison operators, run after Step H (chained comparisons) has had
// first refusal at the same tokens.
func runOperatorPhase2(source string, root *Node) error {
	ops := opSet{binaries: opsOf("==", "!=", "<", ">", "<=", ">=")}
	return applyOperatorPass(source, root, ops, false)
}

func applyOperatorPass(source string, root *Node, ops opSet, rtl bool) error {
	return rewriteChildLists(root, true, func(_ *Node, children []*Node) ([]*Node, error) {
		if rtl {
			return scanOperatorsRTL(source, children, ops)
		}
		return scanOperatorsLTR(source, children, ops)
	})
}

// scanOperatorsLTR sweeps a child list left to right. Reaching an
// operator_token in this pass's set, it tries binary collapse (both
// neighbors already valid operands) first, then unary (missing or
// operator to the left), then postfix (missing or operator to the
// right); whichever of the three applies to this op string. If none
// apply the token is passed through untouched — either it belongs to a
// later pass (e.g. "+" failing unary here still gets a shot at binary in
// the fourth pass) or it is genuinely malformed input that Step L's
// residual-token check will reject.
func scanOperatorsLTR(source string, list []*Node, ops opSet) ([]*Node, error) {
	var result []*Node
	i := 0
	for i < len(list) {
		cur := list[i]
		if cur.Kind == KindOperatorToken {
			isUnary, isBinary, isPostfix := ops.classify(cur.Op)
			if isUnary || isBinary || isPostfix {
				var left *Node
				if len(result) > 0 {
					left = result[len(result)-1]
				}
				var right *Node
				if i+1 < len(list) {
					right = list[i+1]
				}

				if isBinary && left.IsOperand() && right.IsOperand() {
					result[len(result)-1] = &Node{
						Kind: KindOperator, Op: cur.Op, Implicit: cur.Implicit,
						Index: left.Index, EndIndex: right.EndIndex, hasIndex: true,
						Children: []*Node{left, right},
					}
					i += 2
					continue
				}
				if isUnary && left.IsMissingOrOperator() {
					if !right.IsOperand() {
						return nil, pos.NewErrorAt(source, cur.Index, fmt.Sprintf("Operator %q has no valid operand to its right", cur.Op), "")
					}
					result = append(result, &Node{
						Kind: KindOperator, Op: cur.Op, Implicit: cur.Implicit,
						Index: cur.Index, EndIndex: right.EndIndex, hasIndex: true,
						Children: []*Node{right},
					})
					i += 2
					continue
				}
				if isPostfix && right.IsMissingOrOperator() {
					if !left.IsOperand() {
						return nil, pos.NewErrorAt(source, cur.Index, fmt.Sprintf("Operator %q has no valid operand to its left", cur.Op), "")
					}
					result[len(result)-1] = &Node{
						Kind: KindOperator, Op: cur.Op, Implicit: cur.Implicit,
						Index: left.Index, EndIndex: cur.EndIndex, hasIndex: true,
						Children: []*Node{left},
					}
					i++
					continue
				}
			}
		}
		result = append(result, cur)
		i++
	}
	return result, nil
}

// scanOperatorsRTL is the mirror of scanOperatorsLTR, used for Phase 1's
// right-to-left pass (unary +/-, binary ^) so "-x^y" parses as
// "-(x^y)". Children are always attached in source order regardless of
// scan direction.
func scanOperatorsRTL(source string, list []*Node, ops opSet) ([]*Node, error) {
	var result []*Node
	i := len(list) - 1
	for i >= 0 {
		cur := list[i]
		if cur.Kind == KindOperatorToken {
			isUnary, isBinary, isPostfix := ops.classify(cur.Op)
			if isUnary || isBinary || isPostfix {
				var left *Node
				if i-1 >= 0 {
					left = list[i-1]
				}
				var right *Node
				if len(result) > 0 {
					right = result[0]
				}

				if isBinary && left.IsOperand() && right.IsOperand() {
					result[0] = &Node{
						Kind: KindOperator, Op: cur.Op, Implicit: cur.Implicit,
						Index: left.Index, EndIndex: right.EndIndex, hasIndex: true,
						Children: []*Node{left, right},
					}
					i -= 2
					continue
				}
				if isUnary && left.IsMissingOrOperator() {
					if !right.IsOperand() {
						return nil, pos.NewErrorAt(source, cur.Index, fmt.Sprintf("Operator %q has no valid operand to its right", cur.Op), "")
					}
					node := &Node{
						Kind: KindOperator, Op: cur.Op, Implicit: cur.Implicit,
						Index: cur.Index, EndIndex: right.EndIndex, hasIndex: true,
						Children: []*Node{right},
					}
					if len(result) > 0 {
						result[0] = node
					} else {
						result = []*Node{node}
					}
					i--
					continue
				}
				if isPostfix && right.IsMissingOrOperator() {
					if !left.IsOperand() {
						return nil, pos.NewErrorAt(source, cur.Index, fmt.Sprintf("Operator %q has no valid operand to its left", cur.Op), "")
					}
					node := &Node{
						Kind: KindOperator, Op: cur.Op, Implicit: cur.Implicit,
						Index: left.Index, EndIndex: cur.EndIndex, hasIndex: true,
						Children: []*Node{left},
					}
					result = prepend(node, result)
					i -= 2
					continue
				}
			}
		}
		result = prepend(cur, result)
		i--
	}
	return result, nil
}
