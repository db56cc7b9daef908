package pos_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuhongbo/grapheme/pos"
)

func TestLocate(t *testing.T) {
	src := "abc\ndef\nghi"

	t.Run("first line", func(t *testing.T) {
		line, lineStart, col := pos.Locate(src, 1)
		assert.Equal(t, 0, line)
		assert.Equal(t, 0, lineStart)
		assert.Equal(t, 2, col)
	})

	t.Run("second line", func(t *testing.T) {
		line, lineStart, col := pos.Locate(src, 5)
		assert.Equal(t, 1, line)
		assert.Equal(t, 4, lineStart)
		assert.Equal(t, 2, col)
	})

	t.Run("clamps beyond end", func(t *testing.T) {
		line, _, col := pos.Locate(src, 1000)
		assert.Equal(t, 2, line)
		assert.Equal(t, 4, col)
	})

	t.Run("clamps negative", func(t *testing.T) {
		line, lineStart, col := pos.Locate(src, -5)
		assert.Equal(t, 0, line)
		assert.Equal(t, 0, lineStart)
		assert.Equal(t, 1, col)
	})
}

func TestNewErrorAt(t *testing.T) {
	src := "1 + + 2"
	err := pos.NewErrorAt(src, 4, "Unexpected operator", "try removing one")

	require.Error(t, err)
	assert.Equal(t, "Unexpected operator", err.Message)
	assert.Equal(t, 1, err.Line)
	assert.Equal(t, 5, err.Column)
	assert.Contains(t, err.Error(), "Unexpected operator")
	assert.Contains(t, err.Error(), "try removing one")
	assert.True(t, strings.Contains(err.Error(), "^"), "report should contain a caret line")
}

func TestNewError_pointsPastEnd(t *testing.T) {
	src := "(1 + 2"
	err := pos.NewError(src, "Unclosed parenthesis")
	assert.Equal(t, len(src), err.Index)
}

func TestWithNote(t *testing.T) {
	src := "x: -> y"
	err := pos.NewErrorAt(src, 1, "Expected a type after ':'", "")
	err = err.WithNote(src, 0, "the variable this colon follows")
	assert.Contains(t, err.Note, "the variable this colon follows")
	assert.Contains(t, err.Error(), err.Note)
}

func TestNewConfigError(t *testing.T) {
	err := pos.NewConfigError("Configuration: invalid option MaxExpressionDepth=-1, must be >= 0")
	require.Error(t, err)
	assert.Equal(t, "Configuration: invalid option MaxExpressionDepth=-1, must be >= 0", err.Error())
}

func TestFormatError_longLineIsWindowed(t *testing.T) {
	src := strings.Repeat("a", 200) + " + b"
	report := pos.FormatError(src, 201, "bad operator", "")
	for _, line := range strings.Split(report, "\n") {
		assert.LessOrEqual(t, len(line), 85)
	}
}
