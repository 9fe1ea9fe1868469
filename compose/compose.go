/*
Package compose writes ASS dialogue lines from their abstract syntax tree.

Every tag has exactly one canonical spelling: hex digits are upper-case and
colors are closed with '&', numbers carry no superfluous decimals and karaoke
durations are converted back to tenths of a second. A few spelling variants are
preserved, as they are recorded in the tree: \b0/\b1 versus a font weight,
legacy \a versus \an, \fr versus \frz and \c versus \1c.

Composing is total. For trees created by package parser,

	parser.Parse(compose.Compose(line))

yields a tree equal to line.

# BSD License

Copyright (c) 2021, Norbert Pillmayer.

Redistribution and use in source and binary forms, with or without modification,
are permitted under the terms of the 3-clause BSD license, see package asstag.
*/
package compose

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/asstag"
	"github.com/npillmayer/asstag/ast"
)

// Compose returns the canonical text of a line.
func Compose(line *ast.Line) string {
	e := newEmitter()
	ast.Walk(line, e)
	return e.String()
}

// Tags returns the canonical text of a sequence of tags, without braces.
func Tags(tags []ast.Tag) string {
	e := newEmitter()
	ast.WalkTags(tags, e)
	return e.String()
}

// --- Emitter ---------------------------------------------------------------

// emitter writes the text of nodes as they are entered. Tag lists and
// animations open a scope, which is closed when they are exited.
type emitter struct {
	b      strings.Builder
	scopes *arraystack.Stack // of closing tokens
}

var _ ast.Visitor = &emitter{}

func newEmitter() *emitter {
	return &emitter{scopes: arraystack.New()}
}

func (e *emitter) String() string {
	return e.b.String()
}

func (e *emitter) open(token, closing string) {
	e.b.WriteString(token)
	e.scopes.Push(closing)
}

func (e *emitter) close() {
	if closing, ok := e.scopes.Pop(); ok {
		e.b.WriteString(closing.(string))
	}
}

func (e *emitter) write(parts ...string) {
	for _, p := range parts {
		e.b.WriteString(p)
	}
}

// Exit closes the scope of tag lists and animations.
func (e *emitter) Exit(n ast.Node) {
	switch n.(type) {
	case *ast.TagList, *ast.Animation:
		e.close()
	}
}

// Enter writes the canonical text of a node. For tag lists and animations,
// only the opening part is written.
func (e *emitter) Enter(n ast.Node) {
	switch t := n.(type) {
	case *ast.PlainText:
		e.write(t.Text)
	case *ast.Comment:
		e.write("{", t.Text, "}")
	case *ast.TagList:
		e.open("{", "}")
	// font
	case *ast.Italics:
		e.write(`\i`, flag(t.Enabled))
	case *ast.Underline:
		e.write(`\u`, flag(t.Enabled))
	case *ast.Strikeout:
		e.write(`\s`, flag(t.Enabled))
	case *ast.Bold:
		e.write(`\b`, flag(t.Enabled))
	case *ast.BoldWeight:
		e.write(`\b`, asstag.FormatInt(t.Weight))
	case *ast.FontName:
		e.write(`\fn`, t.Name)
	case *ast.FontEncoding:
		e.write(`\fe`, asstag.FormatInt(t.Encoding))
	case *ast.FontSize:
		e.write(`\fs`, num(t.Size))
	case *ast.FontScaleX:
		e.write(`\fscx`, num(t.Scale))
	case *ast.FontScaleY:
		e.write(`\fscy`, num(t.Scale))
	case *ast.LetterSpacing:
		e.write(`\fsp`, num(t.Value))
	case *ast.RotationX:
		e.write(`\frx`, num(t.Angle))
	case *ast.RotationY:
		e.write(`\fry`, num(t.Angle))
	case *ast.RotationZ:
		if t.Short {
			e.write(`\fr`, num(t.Angle))
		} else {
			e.write(`\frz`, num(t.Angle))
		}
	case *ast.ShearX:
		e.write(`\fax`, num(t.Value))
	case *ast.ShearY:
		e.write(`\fay`, num(t.Value))
	// borders, shadows, blur
	case *ast.Border:
		e.write(`\bord`, num(t.Size))
	case *ast.BorderX:
		e.write(`\xbord`, num(t.Size))
	case *ast.BorderY:
		e.write(`\ybord`, num(t.Size))
	case *ast.Shadow:
		e.write(`\shad`, num(t.Size))
	case *ast.ShadowX:
		e.write(`\xshad`, num(t.Size))
	case *ast.ShadowY:
		e.write(`\yshad`, num(t.Size))
	case *ast.BlurEdges:
		e.write(`\be`, asstag.FormatInt(t.Times))
	case *ast.BlurEdgesGauss:
		e.write(`\blur`, num(t.Weight))
	// colors and transparency
	case *ast.Color:
		if t.Short && t.Target == ast.ColorPrimary {
			e.write(`\c`)
		} else {
			e.write(`\`, asstag.FormatInt(int(t.Target)), "c")
		}
		e.write(fmt.Sprintf("&H%02X%02X%02X&", t.Blue, t.Green, t.Red))
	case *ast.Alpha:
		if t.Target == ast.AlphaAll {
			e.write(`\alpha`)
		} else {
			e.write(`\`, asstag.FormatInt(int(t.Target)), "a")
		}
		if t.Value != nil {
			e.write(fmt.Sprintf("&H%02X&", *t.Value))
		}
	// layout, karaoke
	case *ast.Karaoke:
		tag, ok := karaokeTags[t.Effect]
		if !ok {
			panic(fmt.Sprintf("compose: unknown karaoke effect %d", t.Effect))
		}
		e.write(tag, num(float64(t.Duration)/10))
	case *ast.Alignment:
		if t.Legacy {
			e.write(`\a`, asstag.FormatInt(toLegacy(t.Alignment)))
		} else {
			e.write(`\an`, asstag.FormatInt(t.Alignment))
		}
	case *ast.WrapStyle:
		e.write(`\q`, asstag.FormatInt(t.Style))
	case *ast.ResetStyle:
		e.write(`\r`, t.Style)
	// geometry
	case *ast.Position:
		e.write(`\pos(`, num(t.X), ",", num(t.Y), ")")
	case *ast.RotationOrigin:
		e.write(`\org(`, num(t.X), ",", num(t.Y), ")")
	case *ast.Movement:
		e.write(`\move(`, num(t.X1), ",", num(t.Y1), ",", num(t.X2), ",", num(t.Y2))
		if t.Start != nil && t.End != nil {
			e.write(",", asstag.FormatInt(*t.Start), ",", asstag.FormatInt(*t.End))
		}
		e.write(")")
	case *ast.Fade:
		e.write(`\fad(`, asstag.FormatInt(t.Start), ",", asstag.FormatInt(t.End), ")")
	case *ast.FadeComplex:
		e.write(`\fade(`, ints(int(t.Alpha1), int(t.Alpha2), int(t.Alpha3),
			t.Time1, t.Time2, t.Time3, t.Time4), ")")
	case *ast.Animation:
		var b strings.Builder
		b.WriteString(`\t(`)
		if t.Start != nil && t.End != nil {
			b.WriteString(ints(*t.Start, *t.End) + ",")
		}
		if t.Accel != nil {
			b.WriteString(num(*t.Accel) + ",")
		}
		e.open(b.String(), ")")
	// clips and drawings
	case *ast.ClipRectangle:
		e.write(clip(t.Inverse), num(t.X1), ",", num(t.Y1), ",", num(t.X2), ",", num(t.Y2), ")")
	case *ast.ClipVector:
		e.write(clip(t.Inverse))
		if t.Scale != nil {
			e.write(asstag.FormatInt(*t.Scale), ",")
		}
		e.write(t.Commands, ")")
	case *ast.DrawingMode:
		e.write(`\p`, asstag.FormatInt(t.Scale))
	case *ast.BaselineOffset:
		e.write(`\pbo`, num(t.Value))
	default:
		panic(fmt.Sprintf("compose: unknown node type %T", n))
	}
}

var karaokeTags = map[ast.KaraokeEffect]string{
	ast.KaraokeFill:     `\k`,
	ast.KaraokeSweep:    `\K`,
	ast.KaraokeSweepAlt: `\kf`,
	ast.KaraokeOutline:  `\ko`,
}

func num(v float64) string {
	return asstag.FormatNumber(v)
}

func ints(n ...int) string {
	s := make([]string, len(n))
	for i, v := range n {
		s[i] = asstag.FormatInt(v)
	}
	return strings.Join(s, ",")
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func clip(inverse bool) string {
	if inverse {
		return `\iclip(`
	}
	return `\clip(`
}

// toLegacy maps numpad alignments 1…9 to the numbering of \a.
func toLegacy(v int) int {
	switch {
	case v >= 7:
		return v + 2
	case v >= 4:
		return v + 1
	}
	return v
}
