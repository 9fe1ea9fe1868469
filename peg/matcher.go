package peg

import (
	"unicode/utf8"
)

// DefaultMaxDepth is the default limit for nested rule applications.
const DefaultMaxDepth = 512

// Option configures a single parse.
type Option func(m *matcher)

// MaxDepth limits the nesting depth of rule applications. Parsing input which
// nests deeper fails with a ParseError wrapping ErrNestingTooDeep.
// Values < 1 select DefaultMaxDepth.
func MaxDepth(depth int) Option {
	return func(m *matcher) {
		if depth < 1 {
			depth = DefaultMaxDepth
		}
		m.maxDepth = depth
	}
}

// Parse matches text against the start rule of g and returns the concrete
// parse tree. The start rule has to consume the complete text.
// If the text does not match, a *ParseError is returned.
func (g *Grammar) Parse(text string, opts ...Option) (*Node, error) {
	m := newPooledMatcher(g, text)
	defer m.releaseIntoPool()
	for _, opt := range opts {
		opt(m)
	}
	n, end, ok := m.apply(g.start, 0)
	if m.fatal != nil {
		tracer().Debugf("parse failed: %v", m.fatal)
		return nil, m.fatal
	}
	if ok && end < len(text) {
		m.fail(end, "end of input")
		ok = false
	}
	if !ok {
		err := m.failure()
		tracer().Debugf("parse failed: %v", err)
		return nil, err
	}
	return n, nil
}

// --- Matcher ---------------------------------------------------------------

type memoKey struct {
	rule int
	pos  int
}

type memoEntry struct {
	node *Node
	end  int
	ok   bool
}

// matcher holds the state of a single parse.
type matcher struct {
	grammar  *Grammar
	text     string
	memo     map[memoKey]memoEntry
	depth    int
	maxDepth int
	rule     string      // rule currently applied
	quiet    int         // > 0 inside lookaheads
	farthest int         // farthest failure position
	farRule  string      // rule active at farthest failure
	expected []string    // terminals expected at farthest failure
	fatal    *ParseError // set by cuts and depth overflow
}

func (m *matcher) reset(g *Grammar, text string) {
	m.grammar = g
	m.text = text
	if m.memo == nil {
		m.memo = make(map[memoKey]memoEntry)
	}
	m.depth = 0
	m.maxDepth = DefaultMaxDepth
	m.rule = ""
	m.quiet = 0
	m.farthest = -1
	m.farRule = ""
	m.expected = m.expected[:0]
	m.fatal = nil
}

// apply applies rule r at position pos, memoizing the result.
func (m *matcher) apply(r *Rule, pos int) (*Node, int, bool) {
	key := memoKey{rule: r.index, pos: pos}
	if e, ok := m.memo[key]; ok {
		return e.node, e.end, e.ok
	}
	if m.depth >= m.maxDepth {
		m.fatal = &ParseError{
			Text: m.text,
			Pos:  pos,
			Rule: r.Name,
			Err:  ErrNestingTooDeep,
		}
		return nil, pos, false
	}
	m.depth++
	outer := m.rule
	m.rule = r.Name
	n, end, ok := r.body.match(m, pos)
	m.rule = outer
	m.depth--
	if m.fatal != nil {
		return nil, pos, false
	}
	if ok {
		n = m.named(r.Name, n, pos, end)
	} else {
		n, end = nil, pos
	}
	m.memo[key] = memoEntry{node: n, end: end, ok: ok}
	return n, end, ok
}

// named gives a name to the result n of a rule body. Anonymous nodes are
// renamed, named nodes are wrapped.
func (m *matcher) named(name string, n *Node, start, end int) *Node {
	if n == nil {
		return &Node{Rule: name, Start: start, End: end, source: m.text}
	}
	if n.Rule == "" {
		n.Rule = name
		return n
	}
	return &Node{Rule: name, Start: start, End: end, Children: []*Node{n}, source: m.text}
}

func (m *matcher) leaf(start, end int) *Node {
	return &Node{Start: start, End: end, source: m.text}
}

func (m *matcher) inner(start, end int, children []*Node) *Node {
	return &Node{Start: start, End: end, Children: children, source: m.text}
}

func (m *matcher) runeAt(pos int) (rune, int) {
	if pos >= len(m.text) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(m.text[pos:])
}

// fail records that the terminal described by expected did not match at pos.
func (m *matcher) fail(pos int, expected string) {
	if m.quiet > 0 || pos < m.farthest {
		return
	}
	if pos > m.farthest {
		m.farthest = pos
		m.farRule = m.rule
		m.expected = m.expected[:0]
	}
	for _, e := range m.expected {
		if e == expected {
			return
		}
	}
	m.expected = append(m.expected, expected)
}

// commit is called when a sequence fails after having passed a cut.
func (m *matcher) commit() {
	if m.fatal != nil || m.quiet > 0 {
		return
	}
	m.fatal = m.failure()
}

func (m *matcher) failure() *ParseError {
	pos := m.farthest
	if pos < 0 {
		pos = 0
	}
	expected := make([]string, len(m.expected))
	copy(expected, m.expected)
	return &ParseError{
		Text:     m.text,
		Pos:      pos,
		Expected: expected,
		Rule:     m.farRule,
	}
}
