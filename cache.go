package morph

import (
	"context"
	"reflect"
	"sync"
	"time"
)

// ctorFunc constructs a new *Dst value from a *Src value. A nil source
// yields a typed nil pointer.
type ctorFunc func(src reflect.Value) reflect.Value

// mutFunc updates an existing target from a source. Both arguments are
// struct values; dst must be addressable.
type mutFunc func(src, dst reflect.Value)

// ctorEntry and mutEntry are published to the cache before their bodies
// are compiled. Nested bindings capture the entry and read fn at call
// time, so self-referential type graphs resolve to the in-progress entry
// instead of recursing forever; termination is the runtime nil check.
type ctorEntry struct{ fn ctorFunc }

type mutEntry struct{ fn mutFunc }

// store is the process-wide compiled-function cache, keyed by TypePair.
// Plans, constructors, and mutators are built lazily and independently;
// entries are never evicted.
type store struct {
	mu    sync.RWMutex
	plans map[TypePair][]binding
	ctors map[TypePair]*ctorEntry
	muts  map[TypePair]*mutEntry
}

var cache = newStore()

func newStore() *store {
	return &store{
		plans: make(map[TypePair][]binding),
		ctors: make(map[TypePair]*ctorEntry),
		muts:  make(map[TypePair]*mutEntry),
	}
}

// Reset clears all compiled pairs.
// This is primarily useful for test isolation.
func Reset() {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.plans = make(map[TypePair][]binding)
	cache.ctors = make(map[TypePair]*ctorEntry)
	cache.muts = make(map[TypePair]*mutEntry)
}

// planLocked returns the memoized binding plan for a pair, deriving it on
// first use. Plan errors are not cached; a failed pair can be retried.
func (s *store) planLocked(ctx context.Context, pair TypePair) ([]binding, error) {
	if p, ok := s.plans[pair]; ok {
		return p, nil
	}

	p, err := plan(ctx, pair)
	if err != nil {
		return nil, err
	}

	s.plans[pair] = p
	return p, nil
}

// constructorLocked returns the compiled constructor entry for a pair,
// compiling it on first use. The caller must hold s.mu for writing;
// nested pairs compile recursively under the same lock.
func (s *store) constructorLocked(ctx context.Context, pair TypePair) (*ctorEntry, error) {
	if e, ok := s.ctors[pair]; ok {
		return e, nil
	}

	bindings, err := s.planLocked(ctx, pair)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	// Publish before compiling; cyclic pairs find this entry.
	e := &ctorEntry{}
	s.ctors[pair] = e

	fn, err := s.compileConstructorLocked(ctx, pair, bindings)
	if err != nil {
		delete(s.ctors, pair)
		return nil, err
	}

	e.fn = fn
	emitPairCompiled(ctx, pair, kindConstructor, len(bindings), time.Since(start))
	return e, nil
}

// mutatorLocked returns the compiled mutator entry for a pair, compiling
// it on first use. Nested object and collection bindings update through
// the constructing path, so compiling a mutator may compile constructors.
func (s *store) mutatorLocked(ctx context.Context, pair TypePair) (*mutEntry, error) {
	if e, ok := s.muts[pair]; ok {
		return e, nil
	}

	bindings, err := s.planLocked(ctx, pair)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	e := &mutEntry{}
	s.muts[pair] = e

	fn, err := s.compileMutatorLocked(ctx, pair, bindings)
	if err != nil {
		delete(s.muts, pair)
		return nil, err
	}

	e.fn = fn
	emitPairCompiled(ctx, pair, kindMutator, len(bindings), time.Since(start))
	return e, nil
}
