package expr

import (
	"strings"

	"github.com/fuhongbo/grapheme/pos"
)

// collapseArrowFunctions is Step J: a post-order, right-to-left triple
// scan for (params, arrow_function_token, body), so "a -> b -> c"
// associates as "a -> (b -> c)". params becomes a signature via
// buildSignature; body is attached as the arrow function's only child.
func collapseArrowFunctions(source string, root *Node) error {
	return rewriteChildLists(root, true, func(_ *Node, children []*Node) ([]*Node, error) {
		return scanArrowsRTL(source, children)
	})
}

func scanArrowsRTL(source string, list []*Node) ([]*Node, error) {
	var result []*Node
	i := len(list) - 1
	for i >= 0 {
		cur := list[i]
		if cur.Kind == KindArrowFunctionToken {
			var left *Node
			if i-1 >= 0 {
				left = list[i-1]
			}
			var right *Node
			if len(result) > 0 {
				right = result[0]
			}
			node, err := buildArrowFunction(source, left, cur, right)
			if err != nil {
				return nil, err
			}
			if len(result) > 0 {
				result[0] = node
			} else {
				result = []*Node{node}
			}
			i--
			if left != nil {
				i--
			}
			continue
		}
		result = prepend(cur, result)
		i--
	}
	return result, nil
}

func buildArrowFunction(source string, left, arrowTok, right *Node) (*Node, error) {
	if left == nil {
		return nil, pos.NewErrorAt(source, arrowTok.Index, "Arrow function is missing its parameter list; use '()' for no parameters", "")
	}
	if right == nil {
		return nil, pos.NewErrorAt(source, arrowTok.Index, "Arrow function is missing its body", "")
	}
	sig, err := buildSignature(source, left)
	if err != nil {
		return nil, err
	}
	return &Node{
		Kind: KindArrowFunction, Index: left.Index, EndIndex: right.EndIndex, hasIndex: true,
		Signature: sig, ArrowIndex: arrowTok.Index, Children: []*Node{right},
	}, nil
}

func buildSignature(source string, left *Node) (*Node, error) {
	switch left.Kind {
	case KindVariable:
		return &Node{
			Kind: KindArrowSignature, Index: left.Index, EndIndex: left.EndIndex, hasIndex: true,
			Vars: []*Node{left}, Types: []*Node{implicitRealType(left.Index)},
		}, nil
	case KindGroup:
		return buildSignatureFromGroup(source, left)
	case KindTypeAnnotation:
		params := left.Children[0]
		retType := left.Children[1]
		if params.Kind != KindGroup {
			return nil, pos.NewErrorAt(source, left.Index, "A single typed parameter before '->' is ambiguous; wrap it in parens, e.g. '(x: real) -> ...'", "")
		}
		sig, err := buildSignatureFromGroup(source, params)
		if err != nil {
			return nil, err
		}
		sig.ReturnType = retType
		sig.EndIndex = retType.EndIndex
		return sig, nil
	default:
		return nil, pos.NewErrorAt(source, left.Index, "Invalid arrow-function parameter list", "")
	}
}

func buildSignatureFromGroup(source string, group *Node) (*Node, error) {
	var segments [][]*Node
	var cur []*Node
	for _, c := range group.Children {
		if c.Kind == KindComma {
			segments = append(segments, cur)
			cur = nil
			continue
		}
		cur = append(cur, c)
	}
	if len(group.Children) > 0 {
		segments = append(segments, cur)
	}

	var vars, types []*Node
	for _, seg := range segments {
		if len(seg) != 1 {
			return nil, pos.NewErrorAt(source, group.Index, "Invalid arrow-function parameter", "")
		}
		item := seg[0]
		switch item.Kind {
		case KindVariable:
			if !isSimpleName(item.Name) {
				return nil, pos.NewErrorAt(source, item.Index, "Arrow-function parameters must be simple, non-namespaced names", "")
			}
			vars = append(vars, item)
			types = append(types, implicitRealType(item.Index))
		case KindTypeAnnotation:
			name := item.Children[0]
			typ := item.Children[1]
			if name.Kind != KindVariable || !isSimpleName(name.Name) {
				return nil, pos.NewErrorAt(source, item.Index, "Arrow-function parameters must be simple, non-namespaced names", "")
			}
			vars = append(vars, name)
			types = append(types, typ)
		default:
			return nil, pos.NewErrorAt(source, item.Index, "Invalid arrow-function parameter", "")
		}
	}
	return &Node{
		Kind: KindArrowSignature, Index: group.Index, EndIndex: group.EndIndex, hasIndex: true,
		Vars: vars, Types: types,
	}, nil
}

func isSimpleName(name string) bool { return !strings.Contains(name, "::") }

func implicitRealType(index int) *Node {
	return &Node{Kind: KindTypenameToken, Index: index, EndIndex: index, hasIndex: true, Name: "real"}
}
