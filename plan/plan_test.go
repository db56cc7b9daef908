package plan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuhongbo/grapheme/plan"
	"github.com/fuhongbo/grapheme/pos"
)

func TestDefaultOptions(t *testing.T) {
	opts := plan.DefaultOptions()
	assert.True(t, opts.ImplicitMultiplication)
	assert.Equal(t, 16, opts.MaxTemplateDepth)
	assert.Equal(t, 0, opts.MaxExpressionDepth)
}

func TestOptionsValidate_clampsTemplateDepth(t *testing.T) {
	opts := plan.Options{MaxTemplateDepth: 0}
	require.NoError(t, opts.Validate())
	assert.Equal(t, 16, opts.MaxTemplateDepth)

	opts = plan.Options{MaxTemplateDepth: 10000}
	require.NoError(t, opts.Validate())
	assert.Equal(t, 512, opts.MaxTemplateDepth)

	opts = plan.Options{MaxTemplateDepth: 32}
	require.NoError(t, opts.Validate())
	assert.Equal(t, 32, opts.MaxTemplateDepth)
}

func TestOptionsValidate_rejectsNegativeExpressionDepth(t *testing.T) {
	opts := plan.Options{MaxExpressionDepth: -1}
	err := opts.Validate()
	require.Error(t, err)
	var parserErr *pos.ParserError
	require.ErrorAs(t, err, &parserErr)
	assert.Contains(t, parserErr.Error(), "Configuration")
}

func TestNewContext(t *testing.T) {
	ctx, err := plan.NewContext(plan.DefaultOptions())
	require.NoError(t, err)
	assert.NotEmpty(t, ctx.ID)

	ctx2, err := plan.NewContext(plan.DefaultOptions())
	require.NoError(t, err)
	assert.NotEqual(t, ctx.ID, ctx2.ID)
}

func TestNewContext_propagatesValidationError(t *testing.T) {
	_, err := plan.NewContext(plan.Options{MaxExpressionDepth: -5})
	assert.Error(t, err)
}
