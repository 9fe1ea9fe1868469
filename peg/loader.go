package peg

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/emirpasic/gods/lists/arraylist"
)

// ErrGrammar is wrapped by errors returned from Load.
var ErrGrammar = errors.New("invalid grammar")

// --- Rule text -------------------------------------------------------------

// Structures for reading rule text with participle.

type ebnfGrammar struct {
	Productions []*ebnfProduction `@@*`
}

type ebnfProduction struct {
	Pos  lexer.Position
	Name string          `@Ident "="`
	Expr *ebnfExpression `@@ "."`
}

type ebnfExpression struct {
	Alternatives []*ebnfSequence `@@ ( "|" @@ )*`
}

type ebnfSequence struct {
	Terms []*ebnfTerm `@@+`
}

type ebnfTerm struct {
	Pos        lexer.Position
	Not        *ebnfTerm       `  "!" @@`
	Cut        bool            `| @"^"`
	Name       string          `| @Ident`
	Literal    *ebnfLiteral    `| @@`
	Group      *ebnfExpression `| "(" @@ ")"`
	Option     *ebnfExpression `| "[" @@ "]"`
	Repetition *ebnfExpression `| "{" @@ "}"`
}

type ebnfLiteral struct {
	Start string `@String`
	End   string `( Ellipsis @String )?`
}

var ebnfLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Ellipsis", Pattern: `…|\.\.\.`},
	{Name: "Punct", Pattern: `[=|()\[\]{}.!^]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var ebnfParser = participle.MustBuild[ebnfGrammar](
	participle.Lexer(ebnfLexer),
	participle.Elide("Whitespace", "Comment"),
)

// --- Loading ---------------------------------------------------------------

// Load reads rule text and creates a grammar from it. name is used for
// error messages only.
func Load(name, ruletext string) (*Grammar, error) {
	ast, err := ebnfParser.ParseString(name, ruletext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGrammar, err)
	}
	if len(ast.Productions) == 0 {
		return nil, fmt.Errorf("%w: %s: no rules", ErrGrammar, name)
	}
	l := &loader{
		g: &Grammar{
			Name:  name,
			rules: make(map[string]*Rule, len(ast.Productions)),
			order: arraylist.New(),
		},
	}
	for _, p := range ast.Productions {
		if _, dup := l.g.rules[p.Name]; dup {
			return nil, fmt.Errorf("%w: %s: rule %q defined twice", ErrGrammar, p.Pos, p.Name)
		}
		r := &Rule{Name: p.Name, index: l.g.order.Size()}
		l.g.rules[p.Name] = r
		l.g.order.Add(r)
	}
	for _, p := range ast.Productions {
		body, err := l.expression(p.Expr)
		if err != nil {
			return nil, err
		}
		l.g.rules[p.Name].body = body
	}
	l.g.start = l.g.rules[ast.Productions[0].Name]
	tracer().Debugf("loaded grammar %s with %d rules", name, l.g.order.Size())
	return l.g, nil
}

// MustLoad is like Load, but panics if the rule text is invalid.
func MustLoad(name, ruletext string) *Grammar {
	g, err := Load(name, ruletext)
	if err != nil {
		panic(err)
	}
	return g
}

type loader struct {
	g *Grammar
}

func (l *loader) expression(e *ebnfExpression) (expr, error) {
	alts := make([]expr, 0, len(e.Alternatives))
	for _, seq := range e.Alternatives {
		x, err := l.sequence(seq)
		if err != nil {
			return nil, err
		}
		alts = append(alts, x)
	}
	if len(alts) == 1 {
		return alts[0], nil
	}
	return &choice{alts: alts}, nil
}

func (l *loader) sequence(s *ebnfSequence) (expr, error) {
	items := make([]expr, 0, len(s.Terms))
	for _, t := range s.Terms {
		x, err := l.term(t)
		if err != nil {
			return nil, err
		}
		items = append(items, x)
	}
	if len(items) == 1 {
		if _, isCut := items[0].(cut); !isCut {
			return items[0], nil
		}
	}
	return &sequence{items: items}, nil
}

func (l *loader) term(t *ebnfTerm) (expr, error) {
	switch {
	case t.Not != nil:
		x, err := l.term(t.Not)
		if err != nil {
			return nil, err
		}
		return &not{x: x}, nil
	case t.Cut:
		return cut{}, nil
	case t.Name != "":
		return l.reference(t)
	case t.Literal != nil:
		return l.literal(t)
	case t.Group != nil:
		return l.expression(t.Group)
	case t.Option != nil:
		x, err := l.expression(t.Option)
		if err != nil {
			return nil, err
		}
		return &option{x: x}, nil
	case t.Repetition != nil:
		x, err := l.expression(t.Repetition)
		if err != nil {
			return nil, err
		}
		return &repetition{x: x}, nil
	}
	return nil, fmt.Errorf("%w: %s: empty term", ErrGrammar, t.Pos)
}

func (l *loader) reference(t *ebnfTerm) (expr, error) {
	if r, ok := l.g.rules[t.Name]; ok {
		return &ref{name: t.Name, rule: r}, nil
	}
	switch t.Name {
	case "any":
		return anyRune{}, nil
	case "end":
		return endOfInput{}, nil
	}
	return nil, fmt.Errorf("%w: %s: undefined rule %q", ErrGrammar, t.Pos, t.Name)
}

func (l *loader) literal(t *ebnfTerm) (expr, error) {
	start, err := strconv.Unquote(t.Literal.Start)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: malformed token %s", ErrGrammar, t.Pos, t.Literal.Start)
	}
	if t.Literal.End == "" {
		return &literal{s: start}, nil
	}
	end, err := strconv.Unquote(t.Literal.End)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: malformed token %s", ErrGrammar, t.Pos, t.Literal.End)
	}
	if utf8.RuneCountInString(start) != 1 || utf8.RuneCountInString(end) != 1 {
		return nil, fmt.Errorf("%w: %s: range bounds must be single characters", ErrGrammar, t.Pos)
	}
	lo, _ := utf8.DecodeRuneInString(start)
	hi, _ := utf8.DecodeRuneInString(end)
	if lo > hi {
		return nil, fmt.Errorf("%w: %s: empty range %s … %s", ErrGrammar, t.Pos, t.Literal.Start, t.Literal.End)
	}
	return &runeRange{lo: lo, hi: hi}, nil
}
