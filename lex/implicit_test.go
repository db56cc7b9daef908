package lex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuhongbo/grapheme/lex"
)

func balancedTokens(t *testing.T, source string) []lex.Token {
	t.Helper()
	tokens := tokenize(t, source)
	require.NoError(t, lex.Balance(source, tokens))
	return tokens
}

func TestInsertImplicitMultiplication_numberVariable(t *testing.T) {
	src := "2x"
	out := lex.InsertImplicitMultiplication(balancedTokens(t, src))
	require.Len(t, out, 3)
	assert.Equal(t, lex.Number, out[0].Kind)
	assert.Equal(t, lex.Operator, out[1].Kind)
	assert.True(t, out[1].Implicit)
	assert.Equal(t, "*", out[1].Op)
	assert.Equal(t, lex.Variable, out[2].Kind)
}

func TestInsertImplicitMultiplication_numberParen(t *testing.T) {
	src := "3(x+1)"
	out := lex.InsertImplicitMultiplication(balancedTokens(t, src))
	assert.Equal(t, lex.Number, out[0].Kind)
	assert.Equal(t, lex.Operator, out[1].Kind)
	assert.True(t, out[1].Implicit)
}

func TestInsertImplicitMultiplication_closeParenOpenParen(t *testing.T) {
	src := "(a)(b)"
	out := lex.InsertImplicitMultiplication(balancedTokens(t, src))
	var ops int
	for _, tok := range out {
		if tok.Kind == lex.Operator && tok.Implicit {
			ops++
		}
	}
	assert.Equal(t, 1, ops)
}

func TestInsertImplicitMultiplication_bracketSubscriptExcluded(t *testing.T) {
	src := "arr[3]"
	out := lex.InsertImplicitMultiplication(balancedTokens(t, src))
	require.Len(t, out, 4, "no synthetic '*' should be inserted before '['")
	for _, tok := range out {
		assert.False(t, tok.Implicit)
	}
}

func TestInsertImplicitMultiplication_explicitOperatorUnaffected(t *testing.T) {
	src := "2 * x"
	out := lex.InsertImplicitMultiplication(balancedTokens(t, src))
	require.Len(t, out, 3)
	assert.False(t, out[1].Implicit)
}
