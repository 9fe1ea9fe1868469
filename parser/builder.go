package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/asstag/ast"
	"github.com/npillmayer/asstag/peg"
)

// --- Parse tree to AST folds -----------------------------------------------

// build folds a concrete parse tree into AST values, bottom-up.
// Recursion is bounded by the nesting depth of rule applications, which the
// matcher limits.
func build(n *peg.Node) (interface{}, error) {
	a := &args{node: n}
	f := folds[n.Rule]
	if f == nil || !f.leaf {
		for _, ch := range n.Named() {
			v, err := build(ch)
			if err != nil {
				return nil, err
			}
			a.kids = append(a.kids, kid{rule: ch.Rule, value: v, node: ch})
		}
	}
	var v interface{}
	if f == nil {
		v = passThrough(a)
	} else {
		v = f.fold(a)
	}
	if a.err != nil {
		return nil, a.err
	}
	return v, nil
}

type kid struct {
	rule  string
	value interface{}
	node  *peg.Node
}

// args are the input of a fold: the node of a production and the folded
// values of its nearest named children. Accessors record the first error
// and return zero values afterwards.
type args struct {
	node *peg.Node
	kids []kid
	err  error
}

// tagFold folds a production into its AST value.
type tagFold struct {
	name string
	leaf bool // value is computed from the node's text, children are not folded
	fold func(*args) interface{}
}

// span is the value of a pair of times.
type span struct {
	start, end int
}

// bgr is the value of a color, in the order of the source text.
type bgr [3]uint8

// passThrough is the fold for productions without a fold of their own.
func passThrough(a *args) interface{} {
	if len(a.kids) == 1 {
		return a.kids[0].value
	}
	return a.node.Text()
}

func (a *args) fail(err error) {
	if a.err == nil {
		a.err = peg.NewParseError(a.node.Source(), a.node.Start, err)
	}
}

func (a *args) mismatch(format string, v ...interface{}) {
	a.fail(fmt.Errorf("%w: %s: %s", ErrGrammarShape, a.node.Rule, fmt.Sprintf(format, v...)))
}

func (a *args) valueAt(i int) interface{} {
	if i >= 0 && i < len(a.kids) {
		return a.kids[i].value
	}
	a.mismatch("missing argument #%d", i)
	return nil
}

func (a *args) floatAt(i int) float64 {
	switch v := a.valueAt(i).(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	a.mismatch("argument #%d is not a number", i)
	return 0
}

func (a *args) intAt(i int) int {
	if v, ok := a.valueAt(i).(int); ok {
		return v
	}
	a.mismatch("argument #%d is not an integer", i)
	return 0
}

func (a *args) boolAt(i int) bool {
	if v, ok := a.valueAt(i).(bool); ok {
		return v
	}
	a.mismatch("argument #%d is not a boolean", i)
	return false
}

func (a *args) byteAt(i int) uint8 {
	if v, ok := a.valueAt(i).(uint8); ok {
		return v
	}
	a.mismatch("argument #%d is not a byte value", i)
	return 0
}

func (a *args) stringAt(i int) string {
	if v, ok := a.valueAt(i).(string); ok {
		return v
	}
	a.mismatch("argument #%d is not text", i)
	return ""
}

func (a *args) tags() []ast.Tag {
	tags := make([]ast.Tag, 0, len(a.kids))
	for i, k := range a.kids {
		tag, ok := k.value.(ast.Tag)
		if !ok {
			a.mismatch("argument #%d is not a tag", i)
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

func (a *args) hasPrefix(prefix string) bool {
	return strings.HasPrefix(a.node.Text(), prefix)
}

// --- Fold table ------------------------------------------------------------

var folds = makeFolds(
	// structure
	&tagFold{name: "ass_line", fold: func(a *args) interface{} {
		chunks := make([]ast.Chunk, 0, len(a.kids))
		for i, k := range a.kids {
			c, ok := k.value.(ast.Chunk)
			if !ok {
				a.mismatch("argument #%d is not a chunk", i)
				continue
			}
			chunks = append(chunks, c)
		}
		return ast.NewLine(chunks...)
	}},
	&tagFold{name: "ass_chunk", fold: func(a *args) interface{} {
		return ast.NewTagList(a.tags()...)
	}},
	&tagFold{name: "ass_comment", fold: func(a *args) interface{} {
		return &ast.Comment{Text: a.stringAt(0)}
	}},
	&tagFold{name: "plain_text", leaf: true, fold: func(a *args) interface{} {
		return &ast.PlainText{Text: a.node.Text()}
	}},
	textFold("comment_text"),
	textFold("name"),
	textFold("animated_name"),
	textFold("clip_commands"),
	// values
	&tagFold{name: "boolean", leaf: true, fold: func(a *args) interface{} {
		return a.hasPrefix("1")
	}},
	intFold("integer"),
	intFold("integer_positive"),
	floatFold("float"),
	floatFold("float_positive"),
	&tagFold{name: "hex_byte", leaf: true, fold: func(a *args) interface{} {
		return parseByte(a, a.node.Text(), 16)
	}},
	&tagFold{name: "byte_value", leaf: true, fold: func(a *args) interface{} {
		text := a.node.Text()
		if len(text) > 2 && (text[0] == '&' || text[0] == '$') {
			return parseByte(a, strings.TrimSuffix(text[2:], "&"), 16)
		}
		return parseByte(a, text, 10)
	}},
	&tagFold{name: "color_value", fold: func(a *args) interface{} {
		return bgr{a.byteAt(0), a.byteAt(1), a.byteAt(2)}
	}},
	&tagFold{name: "times", fold: func(a *args) interface{} {
		return span{start: a.intAt(0), end: a.intAt(1)}
	}},
	// tags with arguments in parentheses
	&tagFold{name: "animation", fold: foldAnimation},
	&tagFold{name: "position", fold: func(a *args) interface{} {
		return &ast.Position{X: a.floatAt(0), Y: a.floatAt(1)}
	}},
	&tagFold{name: "rotation_origin", fold: func(a *args) interface{} {
		return &ast.RotationOrigin{X: a.floatAt(0), Y: a.floatAt(1)}
	}},
	&tagFold{name: "movement", fold: func(a *args) interface{} {
		m := &ast.Movement{X1: a.floatAt(0), Y1: a.floatAt(1), X2: a.floatAt(2), Y2: a.floatAt(3)}
		if len(a.kids) > 4 {
			if t, ok := a.kids[4].value.(span); ok {
				m.Start, m.End = &t.start, &t.end
			} else {
				a.mismatch("times expected")
			}
		}
		return m
	}},
	&tagFold{name: "fade_complex", fold: func(a *args) interface{} {
		return &ast.FadeComplex{
			Alpha1: a.byteAt(0), Alpha2: a.byteAt(1), Alpha3: a.byteAt(2),
			Time1: a.intAt(3), Time2: a.intAt(4), Time3: a.intAt(5), Time4: a.intAt(6),
		}
	}},
	&tagFold{name: "fade_simple", fold: func(a *args) interface{} {
		return &ast.Fade{Start: a.intAt(0), End: a.intAt(1)}
	}},
	&tagFold{name: "clip_rectangle", fold: func(a *args) interface{} {
		return &ast.ClipRectangle{
			X1: a.floatAt(0), Y1: a.floatAt(1), X2: a.floatAt(2), Y2: a.floatAt(3),
			Inverse: a.hasPrefix("i"),
		}
	}},
	&tagFold{name: "clip_vector", fold: func(a *args) interface{} {
		c := &ast.ClipVector{Inverse: a.hasPrefix("i")}
		if len(a.kids) > 1 {
			scale := a.intAt(0)
			c.Scale = &scale
		}
		c.Commands = a.stringAt(len(a.kids) - 1)
		return c
	}},
	// borders, shadows, blur
	&tagFold{name: "border", fold: func(a *args) interface{} { return &ast.Border{Size: a.floatAt(0)} }},
	&tagFold{name: "border_x", fold: func(a *args) interface{} { return &ast.BorderX{Size: a.floatAt(0)} }},
	&tagFold{name: "border_y", fold: func(a *args) interface{} { return &ast.BorderY{Size: a.floatAt(0)} }},
	&tagFold{name: "shadow", fold: func(a *args) interface{} { return &ast.Shadow{Size: a.floatAt(0)} }},
	&tagFold{name: "shadow_x", fold: func(a *args) interface{} { return &ast.ShadowX{Size: a.floatAt(0)} }},
	&tagFold{name: "shadow_y", fold: func(a *args) interface{} { return &ast.ShadowY{Size: a.floatAt(0)} }},
	&tagFold{name: "blur_edges", fold: func(a *args) interface{} { return &ast.BlurEdges{Times: a.intAt(0)} }},
	&tagFold{name: "blur_edges_gauss", fold: func(a *args) interface{} {
		return &ast.BlurEdgesGauss{Weight: a.floatAt(0)}
	}},
	// font
	&tagFold{name: "bold", fold: func(a *args) interface{} {
		if len(a.kids) > 0 && a.kids[0].rule == "boolean" {
			return &ast.Bold{Enabled: a.boolAt(0)}
		}
		w := a.intAt(0)
		if w > 1 {
			return &ast.BoldWeight{Weight: w}
		}
		return &ast.Bold{Enabled: w == 1} // \b00, \b01
	}},
	&tagFold{name: "italics", fold: func(a *args) interface{} { return &ast.Italics{Enabled: a.boolAt(0)} }},
	&tagFold{name: "underline", fold: func(a *args) interface{} { return &ast.Underline{Enabled: a.boolAt(0)} }},
	&tagFold{name: "strikeout", fold: func(a *args) interface{} { return &ast.Strikeout{Enabled: a.boolAt(0)} }},
	&tagFold{name: "shear_x", fold: func(a *args) interface{} { return &ast.ShearX{Value: a.floatAt(0)} }},
	&tagFold{name: "shear_y", fold: func(a *args) interface{} { return &ast.ShearY{Value: a.floatAt(0)} }},
	&tagFold{name: "font_encoding", fold: func(a *args) interface{} {
		return &ast.FontEncoding{Encoding: a.intAt(0)}
	}},
	&tagFold{name: "font_name", fold: foldFontName},
	&tagFold{name: "animated_font_name", fold: foldFontName},
	&tagFold{name: "rotation_x", fold: func(a *args) interface{} { return &ast.RotationX{Angle: a.floatAt(0)} }},
	&tagFold{name: "rotation_y", fold: func(a *args) interface{} { return &ast.RotationY{Angle: a.floatAt(0)} }},
	&tagFold{name: "rotation_z", fold: func(a *args) interface{} {
		return &ast.RotationZ{Angle: a.floatAt(0), Short: !a.hasPrefix("frz")}
	}},
	&tagFold{name: "font_scale_x", fold: func(a *args) interface{} { return &ast.FontScaleX{Scale: a.floatAt(0)} }},
	&tagFold{name: "font_scale_y", fold: func(a *args) interface{} { return &ast.FontScaleY{Scale: a.floatAt(0)} }},
	&tagFold{name: "letter_spacing", fold: func(a *args) interface{} {
		return &ast.LetterSpacing{Value: a.floatAt(0)}
	}},
	&tagFold{name: "font_size", fold: func(a *args) interface{} { return &ast.FontSize{Size: a.floatAt(0)} }},
	// colors and transparency
	&tagFold{name: "color", fold: func(a *args) interface{} {
		v, ok := a.valueAt(0).(bgr)
		if !ok {
			a.mismatch("color value expected")
		}
		c := &ast.Color{Red: v[2], Green: v[1], Blue: v[0]}
		if a.hasPrefix("c") {
			c.Target, c.Short = ast.ColorPrimary, true
		} else {
			c.Target = ast.ColorTarget(a.node.Text()[0] - '0')
		}
		return c
	}},
	&tagFold{name: "alpha", fold: func(a *args) interface{} {
		al := &ast.Alpha{Target: ast.AlphaAll}
		if !a.hasPrefix("alpha") {
			al.Target = ast.AlphaTarget(a.node.Text()[0] - '0')
		}
		if len(a.kids) > 0 {
			v := a.byteAt(0)
			al.Value = &v
		}
		return al
	}},
	// layout, karaoke, drawings
	&tagFold{name: "alignment", leaf: true, fold: func(a *args) interface{} {
		return &ast.Alignment{Alignment: parseInt(a, a.node.Text()[2:])}
	}},
	&tagFold{name: "alignment_legacy", leaf: true, fold: func(a *args) interface{} {
		return &ast.Alignment{Alignment: fromLegacy(parseInt(a, a.node.Text()[1:])), Legacy: true}
	}},
	&tagFold{name: "karaoke", fold: func(a *args) interface{} {
		k := &ast.Karaoke{Effect: ast.KaraokeFill}
		switch {
		case a.hasPrefix("kf"):
			k.Effect = ast.KaraokeSweepAlt
		case a.hasPrefix("ko"):
			k.Effect = ast.KaraokeOutline
		case a.hasPrefix("K"):
			k.Effect = ast.KaraokeSweep
		}
		d := math.Round(a.floatAt(0) * 10)
		if d >= math.MaxInt32 {
			a.fail(fmt.Errorf("karaoke duration %s: %w", a.node.Text(), strconv.ErrRange))
			return k
		}
		k.Duration = int(d)
		return k
	}},
	&tagFold{name: "wrap_style", leaf: true, fold: func(a *args) interface{} {
		return &ast.WrapStyle{Style: parseInt(a, a.node.Text()[1:])}
	}},
	&tagFold{name: "reset_style", fold: foldResetStyle},
	&tagFold{name: "animated_reset_style", fold: foldResetStyle},
	&tagFold{name: "baseline_offset", fold: func(a *args) interface{} {
		return &ast.BaselineOffset{Value: a.floatAt(0)}
	}},
	&tagFold{name: "drawing_mode", fold: func(a *args) interface{} {
		return &ast.DrawingMode{Scale: a.intAt(0)}
	}},
)

func makeFolds(list ...*tagFold) map[string]*tagFold {
	m := make(map[string]*tagFold, len(list))
	for _, f := range list {
		m[f.name] = f
	}
	return m
}

func textFold(name string) *tagFold {
	return &tagFold{name: name, leaf: true, fold: func(a *args) interface{} {
		return a.node.Text()
	}}
}

func intFold(name string) *tagFold {
	return &tagFold{name: name, leaf: true, fold: func(a *args) interface{} {
		return parseInt(a, a.node.Text())
	}}
}

func floatFold(name string) *tagFold {
	return &tagFold{name: name, leaf: true, fold: func(a *args) interface{} {
		v, err := strconv.ParseFloat(a.node.Text(), 64)
		if err != nil {
			a.fail(err)
		}
		return v
	}}
}

func foldAnimation(a *args) interface{} {
	anim := &ast.Animation{Tags: make([]ast.Tag, 0, len(a.kids))}
	for i, k := range a.kids {
		switch v := k.value.(type) {
		case span:
			anim.Start, anim.End = &v.start, &v.end
		case float64:
			anim.Accel = &v
		case ast.Tag:
			anim.Tags = append(anim.Tags, v)
		default:
			a.mismatch("unexpected argument #%d", i)
		}
	}
	return anim
}

func foldFontName(a *args) interface{} {
	return &ast.FontName{Name: a.stringAt(0)}
}

func foldResetStyle(a *args) interface{} {
	return &ast.ResetStyle{Style: a.stringAt(0)}
}

func parseInt(a *args, text string) int {
	n, err := strconv.Atoi(text)
	if err != nil {
		a.fail(err)
	}
	return n
}

func parseByte(a *args, text string, base int) uint8 {
	n, err := strconv.ParseUint(text, base, 64)
	if err != nil || n > math.MaxUint8 {
		a.fail(fmt.Errorf("%w: %s", ErrByteRange, text))
		return 0
	}
	return uint8(n)
}

// fromLegacy maps the numbering of \a (1…3, 5…7, 9…11) to the numpad
// numbering of \an.
func fromLegacy(v int) int {
	switch {
	case v >= 9:
		return v - 2
	case v >= 5:
		return v - 1
	}
	return v
}
