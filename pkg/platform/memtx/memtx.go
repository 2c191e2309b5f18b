// Package memtx carries an in-memory commit log through a context so memory
// stores defer their writes until the surrounding unit of work commits. It is
// the in-memory counterpart of pkg/platform/tx: a store that finds a Tx in
// scope stages its mutation with OnCommit instead of applying it at once.
package memtx

import (
	"context"
	"sync"
)

type txKey struct{}

// Tx accumulates deferred writes. Hooks run in registration order on commit
// and are dropped without running when the unit of work fails.
type Tx struct {
	mu    sync.Mutex
	hooks []func()
}

// OnCommit defers fn until Commit.
func (t *Tx) OnCommit(fn func()) {
	t.mu.Lock()
	t.hooks = append(t.hooks, fn)
	t.mu.Unlock()
}

// Commit applies the deferred writes in the order they were staged.
func (t *Tx) Commit() {
	t.mu.Lock()
	hooks := t.hooks
	t.hooks = nil
	t.mu.Unlock()
	for _, fn := range hooks {
		fn()
	}
}

// With places a fresh Tx in the context. An existing Tx is reused so nested
// units of work share one commit point.
func With(ctx context.Context) (context.Context, *Tx) {
	if tx, ok := From(ctx); ok {
		return ctx, tx
	}
	tx := &Tx{}
	return context.WithValue(ctx, txKey{}, tx), tx
}

// From extracts the Tx placed by With, if any.
func From(ctx context.Context) (*Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*Tx)
	return tx, ok
}
