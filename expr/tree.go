package expr

import (
	u "github.com/araddon/gou"

	"github.com/fuhongbo/grapheme/lex"
	"github.com/fuhongbo/grapheme/plan"
)

// Expression pairs a parsed root with the source text it came from, so
// later error reporting never needs the caller to hand the string back.
type Expression struct {
	Source string
	Root   *Node
}

// Tokenize runs the scanner, bracket balancer, and (if enabled) the
// implicit-multiplication inserter, without building a tree. It is the
// standalone `tokenize` entry point.
func Tokenize(source string, opts plan.Options) ([]lex.Token, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return tokenizeAndBalance(source, opts)
}

func tokenizeAndBalance(source string, opts plan.Options) ([]lex.Token, error) {
	tokens, err := lex.Tokenize(source, lex.ScanOptions{MaxTemplateDepth: opts.MaxTemplateDepth})
	if err != nil {
		return nil, err
	}
	if err := lex.Balance(source, tokens); err != nil {
		return nil, err
	}
	if opts.ImplicitMultiplication {
		tokens = lex.InsertImplicitMultiplication(tokens)
	}
	return tokens, nil
}

// ParseString runs the full tree-builder pipeline (Steps A-N) and
// returns just the root node, or (nil, nil) for empty input.
func ParseString(source string, opts plan.Options) (*Node, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	tokens, err := tokenizeAndBalance(source, opts)
	if err != nil {
		return nil, err
	}
	b := &builder{source: source, opts: opts}
	return b.build(tokens)
}

// ParseExpression is ParseString wrapped with the original source text.
func ParseExpression(source string, opts plan.Options) (*Expression, error) {
	root, err := ParseString(source, opts)
	if err != nil {
		return nil, err
	}
	return &Expression{Source: source, Root: root}, nil
}

type builder struct {
	source string
	opts   plan.Options
}

func (b *builder) build(tokens []lex.Token) (*Node, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	if err := earlySanityCheck(b.source, tokens); err != nil {
		return nil, err
	}

	root := parenthesize(tokens)
	u.Debugf("build: %d top-level items after parenthesization", len(root.Children))

	if err := convertBarsToAbs(b.source, root); err != nil {
		return nil, err
	}
	if err := collapseFunctions(b.source, root); err != nil {
		return nil, err
	}
	if err := collapsePropertyAccess(b.source, root); err != nil {
		return nil, err
	}
	if err := collapseTypeAnnotations(b.source, root); err != nil {
		return nil, err
	}
	if err := runOperatorPhase1(b.source, root); err != nil {
		return nil, err
	}
	if err := collapseChainedComparisons(b.source, root); err != nil {
		return nil, err
	}
	if err := runOperatorPhase2(b.source, root); err != nil {
		return nil, err
	}
	if err := collapseArrowFunctions(b.source, root); err != nil {
		return nil, err
	}
	if err := finalizeGroups(b.source, root); err != nil {
		return nil, err
	}

	result, err := resolveGroup(b.source, root)
	if err != nil {
		return nil, err
	}

	if err := residualCheck(b.source, result); err != nil {
		return nil, err
	}
	if err := completeIndices(result); err != nil {
		return nil, err
	}
	if err := checkMaxDepth(b.source, result, b.opts.MaxExpressionDepth); err != nil {
		return nil, err
	}

	u.Debugf("build: parse complete, root kind=%s", result.Kind)
	return result, nil
}
