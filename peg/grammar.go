package peg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
)

// Grammar is a set of rules loaded from rule text. A Grammar is immutable
// after loading and may be used by concurrent parses.
type Grammar struct {
	Name  string
	rules map[string]*Rule
	order *arraylist.List // of *Rule, in order of definition
	start *Rule
}

// Rule is a named production of a grammar.
type Rule struct {
	Name  string
	index int
	body  expr
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s = %s .", r.Name, r.body)
}

// Rule returns the rule with the given name, or nil.
func (g *Grammar) Rule(name string) *Rule {
	return g.rules[name]
}

// Rules returns the names of all rules in order of definition.
func (g *Grammar) Rules() []string {
	names := make([]string, 0, g.order.Size())
	it := g.order.Iterator()
	for it.Next() {
		names = append(names, it.Value().(*Rule).Name)
	}
	return names
}

// StartRule returns the name of the start rule.
func (g *Grammar) StartRule() string {
	return g.start.Name
}

// String lists the rules of g in rule text notation.
func (g *Grammar) String() string {
	var b strings.Builder
	it := g.order.Iterator()
	for it.Next() {
		b.WriteString(it.Value().(*Rule).String())
		b.WriteByte('\n')
	}
	return b.String()
}

// --- Expressions -----------------------------------------------------------

// expr is a parsing expression. match tries to match the expression at byte
// offset pos. On success it returns the node produced (which may be nil for
// expressions not consuming input) and the position after the match.
type expr interface {
	match(m *matcher, pos int) (*Node, int, bool)
	String() string
}

type literal struct {
	s string
}

func (l *literal) match(m *matcher, pos int) (*Node, int, bool) {
	if strings.HasPrefix(m.text[pos:], l.s) {
		end := pos + len(l.s)
		return m.leaf(pos, end), end, true
	}
	m.fail(pos, l.String())
	return nil, pos, false
}

func (l *literal) String() string {
	return strconv.Quote(l.s)
}

// runeRange matches a single rune r with lo <= r <= hi.
type runeRange struct {
	lo, hi rune
}

func (rr *runeRange) match(m *matcher, pos int) (*Node, int, bool) {
	if r, w := m.runeAt(pos); w > 0 && r >= rr.lo && r <= rr.hi {
		return m.leaf(pos, pos+w), pos + w, true
	}
	m.fail(pos, rr.String())
	return nil, pos, false
}

func (rr *runeRange) String() string {
	return fmt.Sprintf("%q … %q", string(rr.lo), string(rr.hi))
}

type anyRune struct{}

func (anyRune) match(m *matcher, pos int) (*Node, int, bool) {
	if _, w := m.runeAt(pos); w > 0 {
		return m.leaf(pos, pos+w), pos + w, true
	}
	m.fail(pos, "any character")
	return nil, pos, false
}

func (anyRune) String() string { return "any" }

type endOfInput struct{}

func (endOfInput) match(m *matcher, pos int) (*Node, int, bool) {
	if pos == len(m.text) {
		return nil, pos, true
	}
	m.fail(pos, "end of input")
	return nil, pos, false
}

func (endOfInput) String() string { return "end" }

// cut commits the enclosing sequence.
type cut struct{}

func (cut) match(m *matcher, pos int) (*Node, int, bool) { return nil, pos, true }
func (cut) String() string                               { return "^" }

type sequence struct {
	items []expr
}

func (s *sequence) match(m *matcher, pos int) (*Node, int, bool) {
	committed := false
	children := make([]*Node, 0, len(s.items))
	p := pos
	for _, item := range s.items {
		if _, ok := item.(cut); ok {
			committed = true
			continue
		}
		n, next, ok := item.match(m, p)
		if !ok {
			if committed {
				m.commit()
			}
			return nil, pos, false
		}
		if n != nil {
			children = append(children, n)
		}
		p = next
	}
	return m.inner(pos, p, children), p, true
}

func (s *sequence) String() string {
	parts := make([]string, len(s.items))
	for i, item := range s.items {
		parts[i] = item.String()
	}
	return strings.Join(parts, " ")
}

type choice struct {
	alts []expr
}

func (c *choice) match(m *matcher, pos int) (*Node, int, bool) {
	for _, alt := range c.alts {
		if n, next, ok := alt.match(m, pos); ok {
			return n, next, true
		}
		if m.fatal != nil {
			break
		}
	}
	return nil, pos, false
}

func (c *choice) String() string {
	parts := make([]string, len(c.alts))
	for i, alt := range c.alts {
		parts[i] = alt.String()
	}
	return "( " + strings.Join(parts, " | ") + " )"
}

type option struct {
	x expr
}

func (o *option) match(m *matcher, pos int) (*Node, int, bool) {
	n, next, ok := o.x.match(m, pos)
	if m.fatal != nil {
		return nil, pos, false
	}
	if !ok || n == nil {
		return m.inner(pos, next, nil), next, true
	}
	return m.inner(pos, next, []*Node{n}), next, true
}

func (o *option) String() string {
	return "[ " + o.x.String() + " ]"
}

type repetition struct {
	x expr
}

func (r *repetition) match(m *matcher, pos int) (*Node, int, bool) {
	var children []*Node
	p := pos
	for {
		n, next, ok := r.x.match(m, p)
		if m.fatal != nil {
			return nil, pos, false
		}
		if !ok || next == p {
			break
		}
		if n != nil {
			children = append(children, n)
		}
		p = next
	}
	return m.inner(pos, p, children), p, true
}

func (r *repetition) String() string {
	return "{ " + r.x.String() + " }"
}

// not is a negative lookahead.
type not struct {
	x expr
}

func (nt *not) match(m *matcher, pos int) (*Node, int, bool) {
	m.quiet++
	_, _, ok := nt.x.match(m, pos)
	m.quiet--
	if m.fatal != nil {
		return nil, pos, false
	}
	if ok {
		m.fail(pos, "not "+nt.x.String())
		return nil, pos, false
	}
	return nil, pos, true
}

func (nt *not) String() string {
	return "!" + nt.x.String()
}

// ref applies a rule by name. rule is resolved when loading the grammar.
type ref struct {
	name string
	rule *Rule
}

func (r *ref) match(m *matcher, pos int) (*Node, int, bool) {
	return m.apply(r.rule, pos)
}

func (r *ref) String() string {
	return r.name
}
