package expr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuhongbo/grapheme/expr"
	"github.com/fuhongbo/grapheme/plan"
)

func parse(t *testing.T, source string) *expr.Node {
	t.Helper()
	root, err := expr.ParseString(source, plan.DefaultOptions())
	require.NoError(t, err, "parsing %q", source)
	return root
}

func parseErr(t *testing.T, source string) error {
	t.Helper()
	_, err := expr.ParseString(source, plan.DefaultOptions())
	require.Error(t, err, "expected an error parsing %q", source)
	return err
}

func TestParseString_emptyInput(t *testing.T) {
	root, err := expr.ParseString("", plan.DefaultOptions())
	require.NoError(t, err)
	assert.Nil(t, root)
}

func TestParseString_precedence(t *testing.T) {
	cases := map[string]string{
		"1 + 2 * 3":   "(1 + (2 * 3))",
		"(1 + 2) * 3": "((1 + 2) * 3)",
		"2 ^ 3 ^ 2":   "(2 ^ (3 ^ 2))",
		"-2 ^ 2":      "-(2 ^ 2)",
		"1 + 2 + 3":   "((1 + 2) + 3)",
		"a and b or c": "((a and b) or c)",
	}
	for src, want := range cases {
		root := parse(t, src)
		assert.Equal(t, want, expr.NodeToString(root), "source %q", src)
	}
}

func TestParseString_implicitMultiplication(t *testing.T) {
	root := parse(t, "2x")
	assert.Equal(t, "(2 * x)", expr.NodeToString(root))
}

func TestParseString_functionCall(t *testing.T) {
	root := parse(t, "foo(x, y + 1)")
	require.Equal(t, expr.KindFunction, root.Kind)
	assert.Equal(t, "foo", root.Name)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "foo(x, (y + 1))", expr.NodeToString(root))
}

func TestParseString_absoluteValue(t *testing.T) {
	root := parse(t, "|x - 1|")
	require.Equal(t, expr.KindFunction, root.Kind)
	assert.Equal(t, "abs", root.Name)
	assert.True(t, root.ParenInfo.VerticalBar)
	assert.Equal(t, "|(x - 1)|", expr.NodeToString(root))
}

func TestParseString_absoluteValueRejectsComma(t *testing.T) {
	parseErr(t, "|x, y|")
}

func TestParseString_propertyAccess(t *testing.T) {
	root := parse(t, "a.b.c")
	assert.Equal(t, "a.b.c", expr.NodeToString(root))
}

func TestParseString_standaloneTypeAnnotationIsRejected(t *testing.T) {
	// A type annotation only means something as an arrow function's
	// parameter (see TestParseString_arrowFunction); one that never
	// reaches a '->' must not survive as a standalone AST node.
	parseErr(t, "x: real")
}

func TestParseString_chainedComparison(t *testing.T) {
	root := parse(t, "a < b < c")
	require.Equal(t, expr.KindOperator, root.Kind)
	assert.Equal(t, "cchain", root.Op)
	assert.Equal(t, "a < b < c", expr.NodeToString(root))
}

func TestParseString_arrowFunction(t *testing.T) {
	root := parse(t, "x -> x + 1")
	require.Equal(t, expr.KindArrowFunction, root.Kind)
	assert.Equal(t, "(x: real) -> (x + 1)", expr.NodeToString(root))
}

func TestParseString_arrowFunctionTypedParamRequiresParens(t *testing.T) {
	parseErr(t, "x: real -> x + 1")
	root := parse(t, "(x: real) -> x + 1")
	assert.Equal(t, expr.KindArrowFunction, root.Kind)
}

func TestParseString_arrowFunctionRightAssociative(t *testing.T) {
	root := parse(t, "x -> y -> x + y")
	require.Equal(t, expr.KindArrowFunction, root.Kind)
	inner := root.Children[0]
	require.Equal(t, expr.KindArrowFunction, inner.Kind)
}

func TestParseString_emptyParenIsError(t *testing.T) {
	parseErr(t, "()")
}

func TestParseString_emptySubexpressionHintsAtStraySpace(t *testing.T) {
	err := parseErr(t, "myFunc ()")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "remove the space before '('")
}

func TestParseString_danglingOperator(t *testing.T) {
	parseErr(t, "1 + ")
	parseErr(t, "+ 1 +")
	parseErr(t, "* 2")
}

func TestParseString_commaOutsideCall(t *testing.T) {
	parseErr(t, "(1, 2)")
}

func TestParseString_strayPropertyAccess(t *testing.T) {
	parseErr(t, ".foo")
}

func TestParseString_unbalancedParens(t *testing.T) {
	parseErr(t, "(1 + 2")
	parseErr(t, "1 + 2)")
}

func TestParseString_maxExpressionDepth(t *testing.T) {
	opts := plan.DefaultOptions()
	opts.MaxExpressionDepth = 2
	_, err := expr.ParseString("1 + 2 + 3 + 4 + 5", opts)
	assert.Error(t, err)
}

func TestTokenize_withoutImplicitMultiplication(t *testing.T) {
	opts := plan.DefaultOptions()
	opts.ImplicitMultiplication = false
	tokens, err := expr.Tokenize("2x", opts)
	require.NoError(t, err)
	for _, tok := range tokens {
		assert.False(t, tok.Implicit)
	}
}

func TestParseExpression_carriesSource(t *testing.T) {
	ex, err := expr.ParseExpression("1 + 2", plan.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "1 + 2", ex.Source)
	assert.Equal(t, "(1 + 2)", expr.NodeToString(ex.Root))
}
