// Package expr implements the tree-rewriting pipeline that turns a
// balanced token stream into a validated expression tree: the
// Parenthesization, Function Collapsing, Property Access, Type
// Annotation, Operator, Chained Comparison, and Arrow Function passes,
// plus the iterative traversal primitive they are all built on.
package expr

import (
	"fmt"
	"strings"

	"github.com/fuhongbo/grapheme/lex"
)

// Kind tags a Node's variant. Node is a single tagged-union struct (see
// dynamic token/node shapes) rather than a Go
// interface hierarchy: tree-builder passes mutate a node's Kind in
// place as they collapse token-kind nodes into composite ones, which
// mirrors how the source language rewrites untyped records.
type Kind int

const (
	KindInvalid Kind = iota

	// Leaf kinds present in both the token and node phases.
	KindNumber
	KindString
	KindVariable

	// Token-kind nodes: pass-through wrappers created in Step B so the
	// early passes can operate uniformly on *Node. None of these may
	// survive a successful parse (see Step L, the residual-token check).
	KindComma
	KindParenToken
	KindFunctionToken
	KindOperatorToken
	KindPropertyAccessToken
	KindColonToken
	KindTypenameToken
	KindArrowFunctionToken

	// KindGroup is the generic parenthesized-group node produced by
	// Step B (Parenthesization). A successful parse eliminates every
	// KindGroup node except possibly the root (ParenType == 0, "ε").
	KindGroup

	// Final composite kinds.
	KindFunction
	KindOperator
	KindTypeAnnotation
	KindArrowSignature
	KindArrowFunction
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindVariable:
		return "variable"
	case KindComma:
		return "comma"
	case KindParenToken:
		return "paren"
	case KindFunctionToken:
		return "function_token"
	case KindOperatorToken:
		return "operator_token"
	case KindPropertyAccessToken:
		return "property_access"
	case KindColonToken:
		return "colon"
	case KindTypenameToken:
		return "typename"
	case KindArrowFunctionToken:
		return "arrow_function_token"
	case KindGroup:
		return "node"
	case KindFunction:
		return "function"
	case KindOperator:
		return "operator"
	case KindTypeAnnotation:
		return "type_annotation"
	case KindArrowSignature:
		return "arrow_signature"
	case KindArrowFunction:
		return "arrow_function"
	}
	return "invalid"
}

// isTokenKind reports whether k is one of the pass-through token kinds
// that must be gone by the time ParseString returns successfully.
//
// KindTypenameToken is deliberately excluded: the scanner never emits a
// standalone typename token (the scanner's rules only ever
// produce `variable` or `function_token` for identifier-like text); a
// typename comes into being when Step F re-tags an existing `variable`
// node in place upon recognizing it in type position, or when Step J
// creates the implicit "real" type of an unannotated parameter. From
// that point on it is embedded data (type_annotation's second child,
// arrow_signature's Types), not a loose unprocessed token, so it is
// exempt from the token-purity check in Step L.
func (k Kind) isTokenKind() bool {
	switch k {
	case KindComma, KindParenToken, KindFunctionToken, KindOperatorToken,
		KindPropertyAccessToken, KindColonToken, KindArrowFunctionToken:
		return true
	}
	return false
}

// ParenInfo records where a `function` node's original parenthesized
// (or vertical-bar) argument list began and ended.
type ParenInfo struct {
	StartIndex  int
	EndIndex    int
	VerticalBar bool
}

// Node is the tree element produced by the builder pipeline. Only the
// fields relevant to Kind are meaningful at any point; see the table in
// the per-kind field comments below for the authoritative list.
type Node struct {
	Kind     Kind
	Index    int
	EndIndex int
	hasIndex bool

	// number
	Value string

	// string
	Contents string
	Src      lex.StringSource
	Quote    lex.Quote

	// variable / function_token / typename (may be namespaced /
	// templated, e.g. "a::b::c" or "pair::<complex, complex>")
	Name string

	// paren token (pre-parenthesization)
	ParenChar byte
	Opening   bool
	PairID    int

	// generic group node (post-parenthesization, pre-collapse)
	ParenType byte // '(', '[', '|', or 0 for ε (the root)

	// operator / operator_token
	Op       string
	Implicit bool

	// property_access token
	Prop string

	// function (final)
	ParenInfo ParenInfo

	// arrow_signature
	Vars       []*Node
	Types      []*Node
	ReturnType *Node

	// arrow_function
	Signature  *Node
	ArrowIndex int

	Children []*Node
}

func leaf(kind Kind, index int) *Node {
	return &Node{Kind: kind, Index: index, EndIndex: index, hasIndex: true}
}

// FromToken wraps a single lex.Token as a leaf *Node, carrying over
// every field the token kind needs. This is the conversion Step B
// performs as it slices the flat token buffer into a tree.
func FromToken(t lex.Token) *Node {
	n := &Node{Index: t.Index}
	switch t.Kind {
	case lex.Number:
		n.Kind = KindNumber
		n.Value = t.Value
		n.EndIndex = t.Index + len(t.Value) - 1
		n.hasIndex = true
	case lex.String:
		n.Kind = KindString
		n.Contents = t.Contents
		n.Src = t.Src
		n.Quote = t.Quote
		n.EndIndex = t.Index + len(t.Contents) + 1
		n.hasIndex = true
	case lex.Variable:
		n.Kind = KindVariable
		n.Name = t.Name
		n.EndIndex = t.Index + len(t.Name) - 1
		n.hasIndex = true
	case lex.Comma:
		n.Kind = KindComma
		n.EndIndex = t.Index
		n.hasIndex = true
	case lex.Paren:
		n.Kind = KindParenToken
		n.ParenChar = t.ParenChar
		n.Opening = t.Opening
		n.PairID = t.PairID
		n.EndIndex = t.Index
		n.hasIndex = true
	case lex.Function:
		n.Kind = KindFunctionToken
		n.Name = t.Name
		n.EndIndex = t.Index + len(t.Name) - 1
		n.hasIndex = true
	case lex.Operator:
		n.Kind = KindOperatorToken
		n.Op = t.Op
		n.Implicit = t.Implicit
		n.EndIndex = t.Index + operatorWidth(t) - 1
		n.hasIndex = true
	case lex.PropertyAccess:
		n.Kind = KindPropertyAccessToken
		n.Prop = t.Prop
		n.EndIndex = t.Index + len(t.Prop) // '.' + prop
		n.hasIndex = true
	case lex.Colon:
		n.Kind = KindColonToken
		n.EndIndex = t.Index
		n.hasIndex = true
	case lex.Typename:
		n.Kind = KindTypenameToken
		n.Name = t.Name
		n.EndIndex = t.Index + len(t.Name) - 1
		n.hasIndex = true
	case lex.ArrowFunction:
		n.Kind = KindArrowFunctionToken
		n.EndIndex = t.Index + 1
		n.hasIndex = true
	default:
		n.Kind = KindInvalid
	}
	return n
}

// operatorWidth reports how many source characters an operator token
// occupies; implicit operators occupy zero source characters (they sit
// between two real tokens), and '=' is canonicalized to "==" but only
// ever consumes one character of source text.
func operatorWidth(t lex.Token) int {
	if t.Implicit {
		return 0
	}
	switch t.Op {
	case "==", "!=", "<=", ">=", "!!":
		return 2
	default:
		return 1
	}
}

// IsOperand reports whether n is "valid" as an operator's operand: it
// is anything other than a still-unprocessed token kind.
func (n *Node) IsOperand() bool {
	return n != nil && !n.Kind.isTokenKind()
}

// IsMissingOrOperator reports whether n is nil (missing operand,
// e.g. at the start/end of a child list) or an operator, either still
// an operator token or already collapsed into an operator node; used by
// the unary/postfix collapse rules.
func (n *Node) IsMissingOrOperator() bool {
	return n == nil || n.Kind == KindOperatorToken || n.Kind == KindOperator
}

func (n *Node) String() string { return NodeToString(n) }

// nodeStringFrame is one level of the explicit stack NodeToString walks
// instead of recursing: it accumulates the already-computed strings of
// node's children (in order) until all are ready, then composeNodeString
// folds them into node's own string.
type nodeStringFrame struct {
	node      *Node
	childIx   int
	childStrs []string
}

// NodeToString is the pretty-printer used for error messages. It
// stringifies every remaining kind using its own fields, never the
// surrounding source text. Composition happens bottom-up over an
// explicit stack rather than by recursing into children, so printing a
// deeply nested tree never grows the Go call stack.
func NodeToString(n *Node) string {
	if n == nil {
		return "<nil>"
	}
	stack := []*nodeStringFrame{{node: n}}
	var result string
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.childIx < len(top.node.Children) {
			child := top.node.Children[top.childIx]
			top.childIx++
			if child == nil {
				top.childStrs = append(top.childStrs, "<nil>")
				continue
			}
			stack = append(stack, &nodeStringFrame{node: child})
			continue
		}
		s := composeNodeString(top.node, top.childStrs)
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			result = s
		} else {
			parent := stack[len(stack)-1]
			parent.childStrs = append(parent.childStrs, s)
		}
	}
	return result
}

// composeNodeString builds node's own string given the already-computed
// strings of its Children (childStrs, same order). Vars/Types/ReturnType
// and KindArrowSignature never need a child's full NodeToString (they
// only ever read a type node's Name directly), so those stay simple
// field reads with no stack involved.
func composeNodeString(n *Node, childStrs []string) string {
	switch n.Kind {
	case KindNumber:
		return n.Value
	case KindString:
		return quoteFor(n.Quote, n.Contents)
	case KindVariable:
		return n.Name
	case KindGroup:
		return parenWrap(n.ParenType, strings.Join(childStrs, ", "))
	case KindFunction:
		if n.ParenInfo.VerticalBar {
			return "|" + strings.Join(childStrs, ", ") + "|"
		}
		return n.Name + "(" + strings.Join(childStrs, ", ") + ")"
	case KindOperator:
		return operatorToString(n, childStrs)
	case KindTypeAnnotation:
		return childStrs[0] + ": " + childStrs[1]
	case KindTypenameToken:
		return n.Name
	case KindArrowSignature:
		return signatureToString(n)
	case KindArrowFunction:
		return NodeToString(n.Signature) + " -> " + childStrs[0]
	case KindPropertyAccessToken:
		return "." + n.Prop
	case KindColonToken:
		return ":"
	case KindComma:
		return ","
	case KindParenToken:
		return string(n.ParenChar)
	case KindFunctionToken, KindOperatorToken, KindArrowFunctionToken:
		if n.Op != "" {
			return n.Op
		}
		return n.Name
	}
	return "?"
}

func quoteFor(q lex.Quote, contents string) string {
	switch q {
	case lex.QuoteSingle:
		return "'" + contents + "'"
	case lex.QuoteDouble:
		return "\"" + contents + "\""
	default:
		return contents
	}
}

func parenWrap(pt byte, inner string) string {
	switch pt {
	case '(':
		return "(" + inner + ")"
	case '[':
		return "[" + inner + "]"
	case '|':
		return "|" + inner + "|"
	default:
		return inner
	}
}

func operatorToString(n *Node, childStrs []string) string {
	if n.Op == "cchain" {
		s := childStrs[0]
		for i := 1; i < len(childStrs); i += 2 {
			s += " " + childStrs[i] + " " + childStrs[i+1]
		}
		return s
	}
	if n.Op == "." {
		return childStrs[0] + "." + childStrs[1]
	}
	switch len(childStrs) {
	case 1:
		if isPostfixOp(n.Op) {
			return childStrs[0] + n.Op
		}
		return n.Op + childStrs[0]
	case 2:
		return fmt.Sprintf("(%s %s %s)", childStrs[0], n.Op, childStrs[1])
	}
	return n.Op
}

func isPostfixOp(op string) bool { return op == "!" || op == "!!" }

func signatureToString(n *Node) string {
	s := "("
	for i, v := range n.Vars {
		if i > 0 {
			s += ", "
		}
		s += v.Name
		if i < len(n.Types) && n.Types[i] != nil {
			s += ": " + n.Types[i].Name
		}
	}
	s += ")"
	if n.ReturnType != nil {
		s += ": " + n.ReturnType.Name
	}
	return s
}
