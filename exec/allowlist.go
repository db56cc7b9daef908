package exec

import (
	"strings"

	u "github.com/araddon/gou"
	"github.com/mb0/glob"

	"github.com/fuhongbo/grapheme/expr"
	"github.com/fuhongbo/grapheme/pos"
)

// NamespaceAllowlist is an optional, off-by-default post-parse check:
// it walks every variable node in an already-successfully-parsed tree
// and rejects the tree if any variable's namespace prefix doesn't
// match one of the configured glob patterns. It never changes how a
// tree is built; a caller opts in by calling Check after
// expr.ParseString succeeds.
type NamespaceAllowlist struct {
	patterns []string
}

// NewNamespaceAllowlist builds an allowlist from glob patterns such as
// "request::*" or "env::prod::*". A variable with no "::" separator
// (no namespace) always passes.
func NewNamespaceAllowlist(patterns ...string) *NamespaceAllowlist {
	return &NamespaceAllowlist{patterns: patterns}
}

// Check walks root and returns an error for the first variable node
// whose namespace prefix matches none of the allowlist's patterns.
func (a *NamespaceAllowlist) Check(source string, root *expr.Node) error {
	if root == nil {
		return nil
	}
	return expr.Traverse(root, func(node, _ *expr.Node, _ int) error {
		if node.Kind != expr.KindVariable {
			return nil
		}
		prefix := namespaceOf(node.Name)
		if prefix == "" {
			return nil
		}
		if a.allows(prefix) {
			return nil
		}
		u.Warnf("namespace %q rejected by allowlist", prefix)
		return pos.NewErrorAt(source, node.Index, "variable \""+node.Name+"\" has a namespace not in the configured allowlist", "")
	}, expr.TraverseOptions{})
}

func (a *NamespaceAllowlist) allows(prefix string) bool {
	for _, pattern := range a.patterns {
		if ok, err := glob.Match(pattern, prefix); err == nil && ok {
			return true
		}
	}
	return false
}

// namespaceOf returns everything before the last "::" separator in a
// (possibly namespaced) variable name, e.g. "a::b::c" -> "a::b". A
// name with no separator has no namespace.
func namespaceOf(name string) string {
	idx := strings.LastIndex(name, "::")
	if idx == -1 {
		return ""
	}
	return name[:idx]
}
