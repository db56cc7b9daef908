package expr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fuhongbo/grapheme/expr"
	"github.com/fuhongbo/grapheme/plan"
)

func TestFingerprint_stableAcrossParses(t *testing.T) {
	a := parse(t, "x + 1")
	b := parse(t, "x + 1")
	assert.Equal(t, expr.Fingerprint(a), expr.Fingerprint(b))
}

func TestFingerprint_differsOnLiteralValue(t *testing.T) {
	a := parse(t, "x + 1")
	b := parse(t, "x + 2")
	assert.NotEqual(t, expr.Fingerprint(a), expr.Fingerprint(b))
}

func TestFingerprint_differsOnShape(t *testing.T) {
	a := parse(t, "x + y")
	b := parse(t, "x - y")
	assert.NotEqual(t, expr.Fingerprint(a), expr.Fingerprint(b))
}

func TestFingerprint_nilIsStable(t *testing.T) {
	root, err := expr.ParseString("", plan.DefaultOptions())
	assertNoErrorAndNilRoot(t, root, err)
	assert.Equal(t, expr.Fingerprint(nil), expr.Fingerprint(root))
}

func assertNoErrorAndNilRoot(t *testing.T, root *expr.Node, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root != nil {
		t.Fatalf("expected nil root for empty input")
	}
}
