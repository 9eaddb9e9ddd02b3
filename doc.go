// Package morph converts values of one struct type into values of another
// by copying name-matched fields, recursing into nested structs and
// collections, and normalizing pointer/value differences.
//
// The package targets applications that keep parallel families of types
// (domain models vs. transport or view models) and want one generic,
// cached conversion mechanism instead of hand-written copy code per pair.
//
// # Usage
//
//	type User struct {
//	    ID    int
//	    Email string
//	    Age   *int
//	}
//
//	type UserView struct {
//	    ID    int
//	    Email string
//	    Age   int
//	}
//
//	view, err := morph.Map[User, UserView](&user)
//
// The first call for a (source, target) pair inspects both types, derives
// a per-field binding plan, and compiles it into a reusable conversion
// function. The compiled function is cached for the process lifetime;
// subsequent calls for the same pair reuse it.
//
// # Field binding
//
// For every exported, settable target field, the planner looks for a
// source field with the exact same name and picks one rule:
//
//   - identical types: direct copy
//   - *V to V: narrow, dereferencing when non-nil, zero value otherwise
//   - V to *V: widen, always wrapping
//   - differing struct shapes: recurse with the nested pair's compiled
//     constructor
//   - differing slice/array shapes: rebuild element by element
//   - map-typed targets: never populated, always cleared
//
// Fields with no matching source, an excluded source, or no recognized
// rule are left at their zero value. A source field tagged `morph:"-"`
// is never copied, even when names and types match.
//
// # Updating in place
//
// MapInto updates an existing target from a source. Scalar writes are
// change-guarded: a field is only assigned when its value actually
// differs, so change-tracking wrappers around the target are not marked
// dirty by no-op updates. Nested structs and collections are always
// rebuilt.
//
// # Diagnostics
//
// Planning faults and skipped fields never fail a mapping call. They are
// emitted as capitan signals (see signals.go); hook the signals to
// observe plan decisions, or ignore them for zero overhead.
package morph
