package peg

import (
	"context"

	pool "github.com/jolestar/go-commons-pool"
)

// Matchers are short-lived objects carrying a memo table which is expensive
// to grow. To avoid re-allocating them for every line we will pool them.
type matcherPool struct {
	opool *pool.ObjectPool
	ctx   context.Context
}

var globalMatcherPool *matcherPool

func init() {
	globalMatcherPool = &matcherPool{}
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			m := &matcher{}
			return m, nil
		})
	globalMatcherPool.ctx = context.Background()
	config := pool.NewDefaultPoolConfig()
	config.MaxTotal = -1 // infinity
	config.BlockWhenExhausted = false
	globalMatcherPool.opool = pool.NewObjectPool(globalMatcherPool.ctx, factory, config)
}

// newPooledMatcher returns a matcher, prepared to match text against g.
func newPooledMatcher(g *Grammar, text string) *matcher {
	var m *matcher
	if o, err := globalMatcherPool.opool.BorrowObject(globalMatcherPool.ctx); err == nil {
		m = o.(*matcher)
	} else {
		tracer().Errorf("cannot borrow matcher from pool: %v", err)
		m = &matcher{}
	}
	m.reset(g, text)
	return m
}

// Clears the matcher and puts it back into the pool.
func (m *matcher) releaseIntoPool() {
	clear(m.memo)
	m.grammar = nil
	m.text = ""
	m.fatal = nil
	_ = globalMatcherPool.opool.ReturnObject(globalMatcherPool.ctx, m)
}
