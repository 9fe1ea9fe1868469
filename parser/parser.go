/*
Package parser reads ASS dialogue lines into an abstract syntax tree.

Parsing is done in two steps: a parsing expression grammar for override tags
(see Rules) recognizes the structure of a line and produces a concrete parse
tree. Then every named production of the tree is folded into its AST value,
bottom-up, by a fold function registered for the production's rule name.

	line, err := parser.Parse(`{\an8\c&H0000FF&}Hello`)

Blocks in curly braces which do not consist of known tags are kept as
comments. Tags with arguments in parentheses are not as forgiving: once an
opening parenthesis has been read, malformed arguments are reported as a
*ParseError.

Parsing is safe for concurrent use.

# BSD License

Copyright (c) 2021, Norbert Pillmayer.

Redistribution and use in source and binary forms, with or without modification,
are permitted under the terms of the 3-clause BSD license, see package asstag.
*/
package parser

import (
	"errors"
	"fmt"

	"github.com/npillmayer/asstag/ast"
	"github.com/npillmayer/asstag/peg"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to asstag.parser .
func tracer() tracing.Trace {
	return tracing.Select("asstag.parser")
}

// ParseError is returned for lines which cannot be parsed.
// Use errors.As to retrieve it.
type ParseError = peg.ParseError

// ErrByteRange is wrapped by a ParseError for color, alpha or fade values
// outside of 0…255.
var ErrByteRange = errors.New("byte value out of range")

// ErrGrammarShape is wrapped by a ParseError if a custom grammar produces a
// tree which does not fit the AST node of a production.
var ErrGrammarShape = errors.New("unexpected production shape")

// Option configures Parse.
type Option func(p *config)

type config struct {
	grammar  *peg.Grammar
	maxDepth int
}

// MaxDepth limits the nesting depth of grammar rules, which mostly is a limit
// for animations nested in animations. Deeper lines fail to parse with an
// error wrapping peg.ErrNestingTooDeep.
func MaxDepth(depth int) Option {
	return func(p *config) {
		p.maxDepth = depth
	}
}

// WithGrammar parses with a grammar created by LoadGrammar instead of the
// default one.
func WithGrammar(g *peg.Grammar) Option {
	return func(p *config) {
		if g != nil {
			p.grammar = g
		}
	}
}

// Parse parses a dialogue line. If the line cannot be parsed, an error of
// type *ParseError is returned and no partial line.
func Parse(text string, opts ...Option) (*ast.Line, error) {
	cfg := config{maxDepth: peg.DefaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.grammar == nil {
		cfg.grammar = defaultGrammar()
	}
	tree, err := cfg.grammar.Parse(text, peg.MaxDepth(cfg.maxDepth))
	if err != nil {
		return nil, err
	}
	v, err := build(tree)
	if err != nil {
		tracer().Debugf("cannot build AST: %v", err)
		return nil, err
	}
	line, ok := v.(*ast.Line)
	if !ok {
		return nil, peg.NewParseError(text, 0,
			fmt.Errorf("%w: start rule %s yields %T", ErrGrammarShape, tree.Rule, v))
	}
	return line, nil
}
