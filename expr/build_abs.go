package expr

import "github.com/fuhongbo/grapheme/pos"

// convertBarsToAbs is Step C: a post-order traversal that retags every
// vertical-bar KindGroup node in place as a one-argument `abs` function
// call, so every later pass only has to reason about function calls,
// never bars. Retagging in place (rather than allocating a replacement
// node) keeps the parent's existing Children slice valid with no
// splicing. A bar group's contents are split on commas exactly like a
// real function call's argument list (Step D), but exactly one argument
// is required: "|x, y|" has no meaning.
func convertBarsToAbs(source string, root *Node) error {
	return Traverse(root, func(node, _ *Node, _ int) error {
		if node.Kind != KindGroup || node.ParenType != '|' {
			return nil
		}
		args, err := splitFunctionArgs(node.Children)
		if err != nil {
			return err
		}
		if len(args) != 1 {
			return pos.NewErrorAt(source, node.Index, "abs (|...|) takes exactly one argument", "")
		}
		node.Kind = KindFunction
		node.Name = "abs"
		node.ParenInfo = ParenInfo{StartIndex: node.Index, EndIndex: node.EndIndex, VerticalBar: true}
		node.Children = args
		return nil
	}, TraverseOptions{ChildrenFirst: true})
}
