/*
Package peg is a small engine for parsing expression grammars.

Grammars are written as rule text in the notation of Go's exp/ebnf, extended by
a few operators of PEGs:

	Production  = name "=" Expression "." .
	Expression  = Alternative { "|" Alternative } .
	Alternative = Term { Term } .
	Term        = name | token [ "…" token ] | "!" Term | "^"
	            | "(" Expression ")" | "[" Expression "]" | "{" Expression "}" .

Alternatives are ordered: the first alternative which matches wins, and later
alternatives are not tried. "[ x ]" matches x optionally, "{ x }" matches x zero
or more times, greedily. "a" … "z" matches a single rune of a range. "!x" succeeds
without consuming input if x does not match. "^" is a cut: once a sequence has
passed a cut, failure of any of the following terms is a parse error instead of
a reason to backtrack. Lines starting with "//" are comments.

Two builtin rules are available: "any" matches a single rune, "end" matches at
the end of the input only. The first production of a grammar is its start rule.

Parsing produces a concrete tree of Nodes. Every application of a rule produces
a node carrying the rule's name; sequences, options and repetitions produce
anonymous nodes. Clients usually fold a concrete tree into an AST by visiting
named nodes only (see Node.Named).

Matching is packrat-style: results of rule applications are memoized per input
position, so parsing time is linear in the length of the input for the grammars
this package is used with.

# BSD License

Copyright (c) 2021, Norbert Pillmayer.

Redistribution and use in source and binary forms, with or without modification,
are permitted under the terms of the 3-clause BSD license, see package asstag.
*/
package peg

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to asstag.peg .
func tracer() tracing.Trace {
	return tracing.Select("asstag.peg")
}
