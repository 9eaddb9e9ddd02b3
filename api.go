package morph

import (
	"context"
	"iter"
	"reflect"

	"github.com/zoobzio/sentinel"
)

// Map converts src into a newly constructed target.
// A nil source yields a nil target. The first call for a (S, T) pair
// compiles and caches the conversion; subsequent calls reuse it.
//
// Returns a ConfigError wrapping ErrRootCollection or ErrNotStruct when
// either type parameter is not a plain struct type.
func Map[S, T any](src *S) (*T, error) {
	e, err := constructorFor[S, T]()
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, nil
	}

	out := e.fn(reflect.ValueOf(src))
	return out.Interface().(*T), nil
}

// MapWith maps src like Map, then invokes post on the result before
// returning it. post is not invoked when the mapped result is nil.
func MapWith[S, T any](src *S, post func(*T)) (*T, error) {
	out, err := Map[S, T](src)
	if err != nil || out == nil {
		return out, err
	}
	if post != nil {
		post(out)
	}
	return out, nil
}

// MapSlice eagerly maps every element of src. A nil slice yields a nil
// slice; an empty slice yields an empty slice.
func MapSlice[S, T any](src []S) ([]T, error) {
	e, err := constructorFor[S, T]()
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, nil
	}

	out := make([]T, len(src))
	for i := range src {
		mapped := e.fn(reflect.ValueOf(&src[i]))
		out[i] = *mapped.Interface().(*T)
	}
	return out, nil
}

// MapSeq returns a lazy sequence that maps each element of src as it is
// pulled. Compilation still happens eagerly so configuration errors
// surface here, not mid-iteration. A nil source yields an empty sequence
// that is safe to range over.
func MapSeq[S, T any](src iter.Seq[S]) (iter.Seq[T], error) {
	e, err := constructorFor[S, T]()
	if err != nil {
		return nil, err
	}
	if src == nil {
		return func(func(T) bool) {}, nil
	}

	return func(yield func(T) bool) {
		for v := range src {
			mapped := e.fn(reflect.ValueOf(&v))
			if !yield(*mapped.Interface().(*T)) {
				return
			}
		}
	}, nil
}

// MapInto updates dst in place from src using the pair's compiled
// mutator. It is a no-op when either argument is nil. Target fields
// without a binding are left untouched.
func MapInto[S, T any](src *S, dst *T) error {
	e, err := mutatorFor[S, T]()
	if err != nil {
		return err
	}
	if src == nil || dst == nil {
		return nil
	}

	e.fn(reflect.ValueOf(src).Elem(), reflect.ValueOf(dst).Elem())
	return nil
}

// constructorFor resolves the cached constructor entry for a pair,
// compiling it on first use.
func constructorFor[S, T any]() (*ctorEntry, error) {
	pair := TypePair{Src: reflect.TypeFor[S](), Dst: reflect.TypeFor[T]()}

	// Fast path: read-lock cache check
	cache.mu.RLock()
	e, ok := cache.ctors[pair]
	cache.mu.RUnlock()
	if ok {
		return e, nil
	}

	if err := checkRoot(pair); err != nil {
		return nil, err
	}

	// Register both root types with sentinel so nested descriptor
	// lookups hit its registry.
	sentinel.Scan[S]()
	sentinel.Scan[T]()

	// Slow path: compile and cache with write-lock. constructorLocked
	// double-checks, so concurrent first users compile at most once.
	cache.mu.Lock()
	defer cache.mu.Unlock()
	return cache.constructorLocked(context.Background(), pair)
}

// mutatorFor resolves the cached mutator entry for a pair, compiling it
// on first use.
func mutatorFor[S, T any]() (*mutEntry, error) {
	pair := TypePair{Src: reflect.TypeFor[S](), Dst: reflect.TypeFor[T]()}

	cache.mu.RLock()
	e, ok := cache.muts[pair]
	cache.mu.RUnlock()
	if ok {
		return e, nil
	}

	if err := checkRoot(pair); err != nil {
		return nil, err
	}

	sentinel.Scan[S]()
	sentinel.Scan[T]()

	cache.mu.Lock()
	defer cache.mu.Unlock()
	return cache.mutatorLocked(context.Background(), pair)
}
