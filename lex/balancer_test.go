package lex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuhongbo/grapheme/lex"
)

func TestBalance_matchesPairs(t *testing.T) {
	tokens := tokenize(t, "(a + [b, |c|])")
	require.NoError(t, lex.Balance("(a + [b, |c|])", tokens))

	var opens, closes int
	pairIDs := map[int]bool{}
	for _, tok := range tokens {
		if tok.Kind != lex.Paren {
			continue
		}
		if tok.Opening {
			opens++
		} else {
			closes++
		}
		pairIDs[tok.PairID] = true
	}
	assert.Equal(t, opens, closes)
	assert.Len(t, pairIDs, 3)
}

func TestBalance_unmatchedOpener(t *testing.T) {
	src := "(a + b"
	tokens := tokenize(t, src)
	err := lex.Balance(src, tokens)
	assert.Error(t, err)
}

func TestBalance_unmatchedCloser(t *testing.T) {
	src := "a + b)"
	tokens := tokenize(t, src)
	err := lex.Balance(src, tokens)
	assert.Error(t, err)
}

func TestBalance_mismatchedBracketKind(t *testing.T) {
	src := "(a + b]"
	tokens := tokenize(t, src)
	err := lex.Balance(src, tokens)
	assert.Error(t, err)
}

func TestBalance_verticalBarClosesAsSoonAsPossible(t *testing.T) {
	src := "|a| + |b|"
	tokens := tokenize(t, src)
	require.NoError(t, lex.Balance(src, tokens))

	var bars []lex.Token
	for _, tok := range tokens {
		if tok.Kind == lex.Paren && tok.ParenChar == '|' {
			bars = append(bars, tok)
		}
	}
	require.Len(t, bars, 4)
	assert.True(t, bars[0].Opening)
	assert.False(t, bars[1].Opening)
	assert.Equal(t, bars[0].PairID, bars[1].PairID)
	assert.True(t, bars[2].Opening)
	assert.False(t, bars[3].Opening)
	assert.Equal(t, bars[2].PairID, bars[3].PairID)
	assert.NotEqual(t, bars[0].PairID, bars[2].PairID)
}
