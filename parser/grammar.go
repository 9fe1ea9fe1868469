package parser

import (
	_ "embed"
	"sync"

	"github.com/npillmayer/asstag/peg"
)

// --- Initialization --------------------------------------------------------

//go:embed ass.ebnf
var assRules string

var globalTagGrammar *peg.Grammar

var initGrammar sync.Once

func defaultGrammar() *peg.Grammar {
	initGrammar.Do(func() {
		globalTagGrammar = peg.MustLoad("ass.ebnf", assRules)
		tracer().Debugf("tag grammar has %d rules", len(globalTagGrammar.Rules()))
	})
	return globalTagGrammar
}

// Rules returns the rule text of the default tag grammar.
func Rules() string {
	return assRules
}

// LoadGrammar creates a tag grammar from rule text, for usage with option
// WithGrammar. It is included in the API for advanced usage, like extending
// the default rules, which are available with Rules().
//
// A tag grammar has to use the rule names of the default grammar for all
// productions to be folded into AST nodes; rules with other names are folded
// by passing through the value of their single named child or by yielding
// their text.
func LoadGrammar(ruletext string) (*peg.Grammar, error) {
	return peg.Load("custom tag grammar", ruletext)
}
