package morph

import "reflect"

// TypePair is an ordered (source, target) type pair. It is the cache key
// for binding plans and compiled conversion functions. Equality is
// nominal: two pairs are equal iff both reflect.Types are identical.
type TypePair struct {
	Src, Dst reflect.Type
}

// bindingOp identifies the conversion rule bound to one target field.
type bindingOp int

const (
	// opDirect - direct assignment, source and target types identical.
	opDirect bindingOp = iota
	// opConvert - reflect conversion between convertible basic types.
	// Only produced for collection elements; name-matched top-level
	// fields with merely convertible types are skipped.
	opConvert
	// opNarrow - *V source to V target: dereference when non-nil,
	// zero value otherwise.
	opNarrow
	// opWiden - V source to *V target: always wrap.
	opWiden
	// opObject - differing struct shapes, converted via the nested
	// pair's compiled constructor.
	opObject
	// opCollection - differing slice/array shapes, rebuilt element by
	// element; map-typed targets are cleared instead.
	opCollection
	// opDefault - planning this field faulted; the target field is
	// assigned its zero value.
	opDefault
)

// String returns a human-readable op name.
func (op bindingOp) String() string {
	switch op {
	case opDirect:
		return "direct"
	case opConvert:
		return "convert"
	case opNarrow:
		return "narrow"
	case opWiden:
		return "widen"
	case opObject:
		return "object"
	case opCollection:
		return "collection"
	case opDefault:
		return "default"
	default:
		return "unknown"
	}
}

// binding is the planned conversion for one target field. Built once per
// TypePair and immutable thereafter.
type binding struct {
	op bindingOp

	// field is the target field name, kept for diagnostics.
	field string

	srcIndex []int
	dstIndex []int

	srcType reflect.Type
	dstType reflect.Type

	// pair is the nested struct pair for opObject, or the collection
	// element pair for opCollection.
	pair TypePair

	// elemOp is the per-element rule for opCollection.
	elemOp bindingOp

	// convert marks narrow/widen bindings whose value types differ and
	// need a reflect conversion.
	convert bool
}
