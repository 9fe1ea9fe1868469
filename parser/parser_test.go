package parser

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/npillmayer/asstag/ast"
	"github.com/npillmayer/asstag/compose"
	"github.com/npillmayer/asstag/internal/testdata"
	"github.com/npillmayer/asstag/peg"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/schuko/tracing"
)

func TestGrammarLoads(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	//
	g := defaultGrammar()
	if g.StartRule() != "ass_line" {
		t.Errorf("expected start rule ass_line, is %s", g.StartRule())
	}
	for name := range folds {
		if g.Rule(name) == nil {
			t.Errorf("fold %s has no rule in the tag grammar", name)
		}
	}
}

func TestParseChunks(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	line, err := Parse(`{\an8}Hello {note}World{}`)
	if err != nil {
		t.Fatal(err)
	}
	expected := ast.NewLine(
		ast.NewTagList(&ast.Alignment{Alignment: 8}),
		&ast.PlainText{Text: "Hello "},
		&ast.Comment{Text: "note"},
		&ast.PlainText{Text: "World"},
		ast.NewTagList(),
	)
	if !reflect.DeepEqual(line, expected) {
		t.Errorf("unexpected AST for line: %s", kinds(line))
	}
	line, err = Parse("")
	if err != nil || len(line.Chunks) != 0 {
		t.Errorf("expected empty line to have no chunks, is %v / %v", line, err)
	}
}

func TestParseColorByteOrder(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	tag := singleTag(t, `{\c&H0000FF&}`)
	c, ok := tag.(*ast.Color)
	if !ok {
		t.Fatalf("expected color, is %s", tag.Kind())
	}
	if c.Red != 255 || c.Green != 0 || c.Blue != 0 || !c.Short || c.Target != ast.ColorPrimary {
		t.Errorf("expected short primary color {255,0,0}, is %+v", c)
	}
	if out := compose.Tags([]ast.Tag{c}); out != `\c&H0000FF&` {
		t.Errorf("expected color to compose to \\c&H0000FF&, is %s", out)
	}
	c = singleTag(t, `{\3c&H563412&}`).(*ast.Color)
	if c.Target != ast.ColorBorder || c.Short || c.Red != 0x12 || c.Green != 0x34 || c.Blue != 0x56 {
		t.Errorf("expected border color {0x12,0x34,0x56}, is %+v", c)
	}
}

func TestParseAlpha(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	a := singleTag(t, `{\alpha&H80&}`).(*ast.Alpha)
	if a.Target != ast.AlphaAll || a.Value == nil || *a.Value != 0x80 {
		t.Errorf("expected alpha-all 0x80, is %+v", a)
	}
	a = singleTag(t, `{\2a}`).(*ast.Alpha)
	if a.Target != ast.AlphaSecondary || a.Value != nil {
		t.Errorf("expected alpha-secondary without value, is %+v", a)
	}
}

func TestParseLegacyAlignment(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	for in, out := range map[string]int{
		`{\a1}`: 1, `{\a2}`: 2, `{\a3}`: 3,
		`{\a5}`: 4, `{\a6}`: 5, `{\a7}`: 6,
		`{\a9}`: 7, `{\a10}`: 8, `{\a11}`: 9,
	} {
		a := singleTag(t, in).(*ast.Alignment)
		if a.Alignment != out || !a.Legacy {
			t.Errorf("expected %s to be legacy alignment %d, is %+v", in, out, a)
		}
		if text := compose.Tags([]ast.Tag{a}); "{"+text+"}" != in {
			t.Errorf("expected legacy alignment to compose back to %s, is %s", in, text)
		}
	}
	a := singleTag(t, `{\an9}`).(*ast.Alignment)
	if a.Alignment != 9 || a.Legacy {
		t.Errorf("expected \\an9 to be alignment 9, is %+v", a)
	}
	// \a4 and \a8 do not exist
	for _, in := range []string{`{\a4}`, `{\a8}`} {
		line := mustParse(t, in)
		if _, ok := line.Chunks[0].(*ast.Comment); !ok {
			t.Errorf("expected %s to be a comment, is %s", in, kinds(line))
		}
	}
}

func TestParseKaraoke(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	k := singleTag(t, `{\k100}`).(*ast.Karaoke)
	if k.Duration != 1000 || k.Effect != ast.KaraokeFill {
		t.Errorf("expected \\k100 to have duration 1000, is %+v", k)
	}
	if out := compose.Tags([]ast.Tag{&ast.Karaoke{Effect: ast.KaraokeFill, Duration: 1000}}); out != `\k100` {
		t.Errorf("expected duration 1000 to compose to \\k100, is %s", out)
	}
	for in, effect := range map[string]ast.KaraokeEffect{
		`{\K1}`:  ast.KaraokeSweep,
		`{\kf1}`: ast.KaraokeSweepAlt,
		`{\ko1}`: ast.KaraokeOutline,
	} {
		if k := singleTag(t, in).(*ast.Karaoke); k.Effect != effect || k.Duration != 10 {
			t.Errorf("expected %s to have effect %d, duration 10, is %+v", in, effect, k)
		}
	}
}

func TestParseKaraokeOverflow(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	for _, in := range []string{`{\k99999999999999999999}`, `{\k214748364.8}`} {
		_, err := Parse(in)
		var perr *ParseError
		if !errors.As(err, &perr) || !errors.Is(err, strconv.ErrRange) {
			t.Errorf("expected range error for %s, is %v", in, err)
		}
	}
	if k := singleTag(t, `{\k214748364.6}`).(*ast.Karaoke); k.Duration != 2147483646 {
		t.Errorf("expected duration 2147483646, is %d", k.Duration)
	}
}

func TestParseBold(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	if b, ok := singleTag(t, `{\b1}`).(*ast.Bold); !ok || !b.Enabled {
		t.Errorf("expected \\b1 to enable bold")
	}
	if b, ok := singleTag(t, `{\b0}`).(*ast.Bold); !ok || b.Enabled {
		t.Errorf("expected \\b0 to disable bold")
	}
	if b, ok := singleTag(t, `{\b100}`).(*ast.BoldWeight); !ok || b.Weight != 100 {
		t.Errorf("expected \\b100 to be weight 100")
	}
	for in, enabled := range map[string]bool{`{\b00}`: false, `{\b01}`: true} {
		b, ok := singleTag(t, in).(*ast.Bold)
		if !ok || b.Enabled != enabled {
			t.Errorf("expected %s to be a bold toggle, is %v", in, singleTag(t, in))
		}
	}
	if _, ok := singleTag(t, `{\bord1}`).(*ast.Border); !ok {
		t.Errorf("expected \\bord1 to be a border")
	}
	if _, ok := singleTag(t, `{\blur1}`).(*ast.BlurEdgesGauss); !ok {
		t.Errorf("expected \\blur1 to be a gaussian blur")
	}
	if _, ok := singleTag(t, `{\be1}`).(*ast.BlurEdges); !ok {
		t.Errorf("expected \\be1 to be edge blur")
	}
}

func TestParsePrefixOverlaps(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	line := mustParse(t, `{\iclip(0,0,1,1)\i1\pos(1,2)\pbo2\p1\xshad1\shad1\s1\fscx1\fsp1\fs1\frx1\frz1\fr1\an1\a1\alpha&H00&}`)
	expected := "clip-rectangle,italics,position,baseline-offset,drawing-mode,shadow-x,shadow," +
		"strikeout,font-scale-x,letter-spacing,font-size,rotation-x,rotation-z,rotation-z," +
		"alignment,alignment,alpha-all"
	if k := tagKinds(line); k != expected {
		t.Errorf("expected tags %s, have %s", expected, k)
	}
}

func TestParseUnknownTags(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	for in, comment := range map[string]string{
		`{\zzz}`:     `\zzz`,
		`{\b1\zzz}`:  `\b1\zzz`,
		`{\c&H1&}`:   `\c&H1&`,
		`{\b1 }`:     `\b1 `,
		`{a \pos(1}`: `a \pos(1`,
	} {
		line := mustParse(t, in)
		if len(line.Chunks) != 1 {
			t.Errorf("expected %s to be a single chunk, is %s", in, kinds(line))
			continue
		}
		c, ok := line.Chunks[0].(*ast.Comment)
		if !ok || c.Text != comment {
			t.Errorf("expected %s to be comment %q, is %s", in, comment, kinds(line))
		}
	}
}

func TestParseAnimation(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	in := `{\t(0,1000,\fs20\c&H0000FF&)}`
	anim, ok := singleTag(t, in).(*ast.Animation)
	if !ok {
		t.Fatalf("expected animation")
	}
	if anim.Start == nil || *anim.Start != 0 || anim.End == nil || *anim.End != 1000 || anim.Accel != nil {
		t.Errorf("expected animation from 0 to 1000 without acceleration, is %+v", anim)
	}
	if len(anim.Tags) != 2 || anim.Tags[0].Kind() != "font-size" || anim.Tags[1].Kind() != "color-primary" {
		t.Errorf("expected font-size and color-primary in animation, have %v", anim.Tags)
	}
	if out := compose.Compose(mustParse(t, in)); out != in {
		t.Errorf("expected animation to compose to %s, is %s", in, out)
	}
	anim = singleTag(t, `{\t(1.5,\bord2)}`).(*ast.Animation)
	if anim.Start != nil || anim.Accel == nil || *anim.Accel != 1.5 {
		t.Errorf("expected animation with acceleration 1.5 only, is %+v", anim)
	}
}

func TestParseAnimatedNames(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	for in, expected := range map[string]string{
		`{\t(0,1000,\fnX)}`:       "font-name",
		`{\t(\rSign)}`:            "reset-style",
		`{\t(\fnArial Black\b1)}`: "font-name bold",
	} {
		anim, ok := singleTag(t, in).(*ast.Animation)
		if !ok {
			t.Errorf("expected animation for %s", in)
			continue
		}
		if k := kindsOf(anim.Tags); k != expected {
			t.Errorf("expected %s in animation %s, is %s", expected, in, k)
		}
		if out := compose.Compose(mustParse(t, in)); out != in {
			t.Errorf("expected %s to compose to itself, is %s", in, out)
		}
	}
	fn := singleTag(t, `{\t(\fnX)}`).(*ast.Animation).Tags[0].(*ast.FontName)
	if fn.Name != "X" {
		t.Errorf("expected font name X, is %q", fn.Name)
	}
	if fn := singleTag(t, `{\fnArial (Bold)}`).(*ast.FontName); fn.Name != "Arial (Bold)" {
		t.Errorf("expected font name with parentheses outside of animations, is %q", fn.Name)
	}
}

func TestParseErrorPosition(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	in := `{\pos(1,)}`
	_, err := Parse(in)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, is %v", err)
	}
	if perr.Pos != strings.Index(in, ",")+1 {
		t.Errorf("expected error right after the comma, at %d, is %d", strings.Index(in, ",")+1, perr.Pos)
	}
	if perr.Text != in {
		t.Errorf("expected error to carry input text, is %q", perr.Text)
	}
	t.Logf("error = %v", err)
}

func TestParseErrors(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	for _, in := range []string{
		`{\pos(1,2}`,
		`{\move(1,2,3)}`,
		`{\t(\zzz)}`,
		`{\fad(1)}`,
		`{\clip()}`,
		`{unclosed`,
		`text {\b1`,
	} {
		_, err := Parse(in)
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("expected ParseError for %s, is %v", in, err)
		}
	}
}

func TestParseByteRange(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	in := `{\fade(1,256,3,0,0,0,0)}`
	_, err := Parse(in)
	if !errors.Is(err, ErrByteRange) {
		t.Fatalf("expected byte range error, is %v", err)
	}
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Pos != strings.Index(in, "256") {
		t.Errorf("expected ParseError at offset of 256, is %v", err)
	}
	if _, err := Parse(`{\fade(&H100&,0,0,0,0,0,0)}`); !errors.Is(err, ErrByteRange) {
		t.Errorf("expected byte range error for &H100&, is %v", err)
	}
}

func TestParseMaxDepth(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	nested := func(depth int) string {
		return "{" + strings.Repeat(`\t(`, depth) + `\b1` + strings.Repeat(")", depth) + "}"
	}
	line, err := Parse(nested(50))
	if err != nil {
		t.Fatalf("expected 50 nested animations to parse, have %v", err)
	}
	if n := len(ast.Tags(line)); n != 51 {
		t.Errorf("expected 51 tags, have %d", n)
	}
	_, err = Parse(nested(50), MaxDepth(40))
	if !errors.Is(err, peg.ErrNestingTooDeep) {
		t.Errorf("expected nesting error with MaxDepth(40), is %v", err)
	}
	_, err = Parse(nested(10000))
	if !errors.Is(err, peg.ErrNestingTooDeep) {
		t.Errorf("expected nesting error for 10000 nested animations, is %v", err)
	}
}

func TestWithGrammar(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	rules := strings.Replace(Rules(), `"1" … "9"`, `"1" … "3"`, 1)
	g, err := LoadGrammar(rules)
	if err != nil {
		t.Fatal(err)
	}
	line, err := Parse(`{\an8}`, WithGrammar(g))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := line.Chunks[0].(*ast.Comment); !ok {
		t.Errorf("expected \\an8 to be a comment with restricted grammar, is %s", kinds(line))
	}
	if _, err := LoadGrammar(`ass_line = undefined .`); err == nil {
		t.Errorf("expected error for undefined rule")
	}
	shape, _ := LoadGrammar(`line = "x" .`)
	if _, err := Parse("x", WithGrammar(shape)); !errors.Is(err, ErrGrammarShape) {
		t.Errorf("expected shape error for start rule yielding text, is %v", err)
	}
}

func TestRoundTripFixtures(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	tf := testdata.OpenTestFile("roundtrip.txt", t)
	if tf == nil {
		t.FailNow()
	}
	defer tf.Close()
	cnt := 0
	for tf.Scan() {
		cnt++
		line, err := Parse(tf.Input())
		if err != nil {
			t.Errorf("line %d: cannot parse %s: %v", tf.Line(), tf.Input(), err)
			continue
		}
		out := compose.Compose(line)
		if out != tf.Canonical() {
			t.Errorf("line %d: expected %s to compose to %s, is %s", tf.Line(), tf.Input(), tf.Canonical(), out)
			continue
		}
		again, err := Parse(out)
		if err != nil {
			t.Errorf("line %d: cannot parse composed %s: %v", tf.Line(), out, err)
			continue
		}
		if !reflect.DeepEqual(line, again) {
			t.Errorf("line %d: re-parsing %s yields a different tree: %s", tf.Line(), out, kinds(again))
		}
		if out2 := compose.Compose(again); out2 != out {
			t.Errorf("line %d: composing is not idempotent: %s ≠ %s", tf.Line(), out, out2)
		}
	}
	if err := tf.Err(); err != nil {
		t.Error(err)
	}
	if cnt < 50 {
		t.Errorf("expected at least 50 fixture lines, have %d", cnt)
	}
}

func TestConcurrentParse(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	in := `{\an8\fs40\c&H0000FF&\t(0,500,\frz10)}Hello {\i1}World`
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				line, err := Parse(in)
				if err != nil {
					errs <- err
					return
				}
				if compose.Compose(line) != in {
					errs <- errors.New("concurrent parse yields different text")
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

// --- Helpers ---------------------------------------------------------------

func mustParse(t *testing.T, text string) *ast.Line {
	t.Helper()
	line, err := Parse(text)
	if err != nil {
		t.Fatalf("cannot parse %s: %v", text, err)
	}
	return line
}

func singleTag(t *testing.T, text string) ast.Tag {
	t.Helper()
	line := mustParse(t, text)
	if len(line.Chunks) != 1 {
		t.Fatalf("expected a single chunk for %s, have %s", text, kinds(line))
	}
	list, ok := line.Chunks[0].(*ast.TagList)
	if !ok || len(list.Tags) != 1 {
		t.Fatalf("expected a single tag for %s, have %s", text, kinds(line))
	}
	return list.Tags[0]
}

func kinds(line *ast.Line) string {
	if line == nil {
		return "<nil>"
	}
	var k []string
	ast.Walk(line, ast.VisitorFunc(func(n ast.Node) {
		k = append(k, n.Kind())
	}))
	return strings.Join(k, ",")
}

func tagKinds(line *ast.Line) string {
	var k []string
	for _, tag := range ast.Tags(line) {
		k = append(k, tag.Kind())
	}
	return strings.Join(k, ",")
}

func kindsOf(tags []ast.Tag) string {
	k := make([]string, len(tags))
	for i, tag := range tags {
		k[i] = tag.Kind()
	}
	return strings.Join(k, " ")
}
