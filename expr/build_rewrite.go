package expr

// rewriteChildLists walks every node in the tree (root included, via
// Traverse) and replaces each node's Children slice with whatever
// rewrite returns for (that node, its current children). Every
// child-list-scoped pass in this package (function collapsing, property
// access, type annotation, the operator passes, arrow functions, group
// finalization) is a thin wrapper around this.
func rewriteChildLists(root *Node, postOrder bool, rewrite func(parent *Node, children []*Node) ([]*Node, error)) error {
	return Traverse(root, func(node, _ *Node, _ int) error {
		if len(node.Children) == 0 {
			return nil
		}
		newChildren, err := rewrite(node, node.Children)
		if err != nil {
			return err
		}
		node.Children = newChildren
		return nil
	}, TraverseOptions{ChildrenFirst: postOrder})
}

func prepend(n *Node, list []*Node) []*Node {
	out := make([]*Node, 0, len(list)+1)
	out = append(out, n)
	out = append(out, list...)
	return out
}
