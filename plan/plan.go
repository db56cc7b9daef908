// Package plan holds the parser's configuration surface: the handful of
// options a caller can set, and a Context that pairs those options with
// a correlation id for the caller's own logging (lex and expr never read
// it). Grounded on
// qlbridge's plan.Context, which exec.JobBuilder carries through a
// single query's execution.
package plan

import (
	"fmt"

	"github.com/pborman/uuid"

	"github.com/fuhongbo/grapheme/pos"
)

// Options are the knobs a caller can tune for a single parse.
type Options struct {
	// ImplicitMultiplication turns on the implicit-multiplication
	// inserter (lex.InsertImplicitMultiplication). Default true.
	ImplicitMultiplication bool

	// MaxTemplateDepth bounds how deeply "::<...>" specializations may
	// nest. Default 16, hard cap 512 (DefaultMaxTemplateDepth /
	// HardMaxTemplateDepth in package lex).
	MaxTemplateDepth int

	// MaxExpressionDepth bounds the AST's depth after parsing. 0 means
	// unlimited (the default).
	MaxExpressionDepth int
}

// DefaultOptions returns the parser's default options.
func DefaultOptions() Options {
	return Options{
		ImplicitMultiplication: true,
		MaxTemplateDepth:       16,
		MaxExpressionDepth:     0,
	}
}

// Validate clamps MaxTemplateDepth into its documented bounds and
// rejects a negative MaxExpressionDepth.
func (o *Options) Validate() error {
	if o.MaxTemplateDepth <= 0 {
		o.MaxTemplateDepth = 16
	}
	if o.MaxTemplateDepth > 512 {
		o.MaxTemplateDepth = 512
	}
	if o.MaxExpressionDepth < 0 {
		return pos.NewConfigError(fmt.Sprintf("Configuration: invalid option MaxExpressionDepth=%d, must be >= 0", o.MaxExpressionDepth))
	}
	return nil
}

// Context wraps Options with an id used only for log correlation when
// many parses run concurrently. Nothing in Context is consulted by the
// parser's actual algorithm.
type Context struct {
	ID      string
	Options Options
}

// NewContext builds a Context with a fresh correlation id and the
// given options already validated.
func NewContext(opts Options) (*Context, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Context{ID: uuid.New(), Options: opts}, nil
}
