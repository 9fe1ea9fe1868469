/*
Package asstag is about the inline override tags of ASS subtitle dialogue lines.

# Description

Advanced SubStation Alpha (ASS) subtitle files carry formatting instructions
inside the text of their dialogue events. Runs of plain text are interleaved
with blocks in curly braces, and these blocks hold override tags:

	{\an8\fs40\c&H0000FF&}Hello {\i1}World{\i0}

Tags toggle font attributes (\b, \i, \u, \s), change sizes and spacing (\fs,
\fsp, \bord, \shad), colors and transparency (\c, \1c…\4c, \alpha, \1a…\4a),
position and move text (\pos, \move, \org), clip it (\clip, \iclip), fade it
(\fad, \fade), time karaoke syllables (\k, \K, \kf, \ko) or animate other tags
over time (\t). Blocks which do not consist of tags are treated as comments by
renderers.

Package asstag and its sub-packages turn such a line into a typed abstract
syntax tree and back:

	line, err := parser.Parse(`{\an8\fs40}Hello`)
	…
	text := compose.Compose(line)

Composing always produces one canonical spelling for every tag: hex digits are
upper-case, numbers carry no superfluous decimals, durations are converted back
to their source unit. For lines produced by the parser, parsing the composed text
yields the same tree again.

# Contents

Sub-package ast holds the tree types and a traversal helper. Sub-package peg is
a small parsing-expression-grammar engine: grammars are written as EBNF-style rule
text with ordered alternatives, and the engine produces a concrete parse tree.
Sub-package parser carries the grammar for ASS tags and folds concrete trees into
AST nodes. Sub-package compose serializes ASTs. Base package asstag provides the
numeric formatting shared by all of them.

Tag semantics are not interpreted. Nothing in this module computes glyph
positions, colors or timing effects; it only structures and reconstructs the
textual instructions.

# BSD License

Copyright (c) 2021, Norbert Pillmayer.

All rights reserved.
Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package asstag

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// CT traces to the core-tracer.
func CT() tracing.Trace {
	return gtrace.CoreTracer
}
