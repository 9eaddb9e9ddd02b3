package morph

import (
	"context"
	"fmt"
	"reflect"
	"time"
)

// plan derives the ordered binding list for a type pair: one attempted
// binding per exported target field, in declaration order. Planning never
// fails for an individual field; a fault substitutes a zero-value binding
// and planning continues. Only invalid root shapes are errors.
func plan(ctx context.Context, pair TypePair) ([]binding, error) {
	if err := checkRoot(pair); err != nil {
		return nil, err
	}

	start := time.Now()

	srcProps := make(map[string]property)
	for _, p := range propertiesOf(pair.Src) {
		srcProps[p.name] = p
	}

	var bindings []binding
	for _, t := range propertiesOf(pair.Dst) {
		b, ok, reason := planField(ctx, pair, srcProps, t)
		if !ok {
			emitPropertySkipped(ctx, pair, t.name, reason)
			continue
		}
		bindings = append(bindings, b)
	}

	emitPairPlanned(ctx, pair, len(bindings), time.Since(start))
	return bindings, nil
}

// checkRoot refuses pairs whose either side is itself a collection or not
// a struct. Collections are mapped through the dedicated entry points.
func checkRoot(pair TypePair) error {
	for _, rt := range []reflect.Type{pair.Src, pair.Dst} {
		switch rt.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map:
			return newConfigError(ErrRootCollection, pair)
		case reflect.Struct:
		default:
			return newConfigError(ErrNotStruct, pair)
		}
	}
	return nil
}

// planField decides the binding for one target field. A panic while
// planning is recovered into an opDefault binding so one malformed field
// never aborts planning of the rest.
func planField(ctx context.Context, pair TypePair, srcProps map[string]property, t property) (b binding, ok bool, reason string) {
	defer func() {
		if r := recover(); r != nil {
			emitPlanFault(ctx, pair, t.name, fmt.Errorf("plan field %s: %v", t.name, r))
			b = binding{op: opDefault, field: t.name, dstIndex: t.index, dstType: t.typ}
			ok = true
		}
	}()

	s, found := srcProps[t.name]
	if !found {
		return binding{}, false, "no matching source field"
	}
	if s.excluded {
		return binding{}, false, "source field excluded"
	}

	b = binding{
		field:    t.name,
		srcIndex: s.index,
		dstIndex: t.index,
		srcType:  s.typ,
		dstType:  t.typ,
	}

	if s.typ == t.typ {
		b.op = opDirect
		return b, true, ""
	}

	sk, dk := classify(s.typ), classify(t.typ)

	switch {
	case sk == kindObject && dk == kindObject:
		sb, _ := baseStruct(s.typ)
		db, _ := baseStruct(t.typ)
		b.op = opObject
		b.pair = TypePair{Src: sb, Dst: db}

	case dk == kindKeyed && (sk == kindCollection || sk == kindKeyed):
		// Keyed targets are never populated, only cleared.
		b.op = opCollection

	case sk == kindCollection && dk == kindCollection:
		elemOp, elemPair, known := elementOp(s.typ.Elem(), t.typ.Elem())
		if !known {
			return binding{}, false, "unsupported element shape"
		}
		b.op = opCollection
		b.elemOp = elemOp
		b.pair = elemPair

	case sk == kindNullable && dk == kindValue && scalarAssignable(s.typ.Elem(), t.typ):
		b.op = opNarrow
		b.convert = s.typ.Elem() != t.typ

	case sk == kindValue && dk == kindNullable && scalarAssignable(s.typ, t.typ.Elem()):
		b.op = opWiden
		b.convert = s.typ != t.typ.Elem()

	default:
		return binding{}, false, "no defined coercion"
	}

	return b, true, ""
}

// elementOp decides the per-element rule for a collection binding, using
// the same precedence as top-level fields plus basic-type conversion.
func elementOp(se, de reflect.Type) (bindingOp, TypePair, bool) {
	if se == de {
		return opDirect, TypePair{}, true
	}

	sk, dk := classify(se), classify(de)

	switch {
	case sk == kindObject && dk == kindObject:
		sb, _ := baseStruct(se)
		db, _ := baseStruct(de)
		return opObject, TypePair{Src: sb, Dst: db}, true

	case sk == kindNullable && dk == kindValue && scalarAssignable(se.Elem(), de):
		return opNarrow, TypePair{}, true

	case sk == kindValue && dk == kindNullable && scalarAssignable(se, de.Elem()):
		return opWiden, TypePair{}, true

	case sk == kindValue && dk == kindValue && scalarAssignable(se, de):
		return opConvert, TypePair{}, true
	}

	return 0, TypePair{}, false
}

// scalarAssignable reports whether a basic value of type s can carry over
// into type d: identical, or convertible within the same basic class.
// Cross-class conversions Go permits (int to string) are rejected.
func scalarAssignable(s, d reflect.Type) bool {
	if s == d {
		return true
	}
	if !isBasic(s) || !isBasic(d) {
		return false
	}
	return basicClass(s.Kind()) == basicClass(d.Kind()) && s.ConvertibleTo(d)
}

// basicClass buckets basic kinds so numeric widths may convert among
// themselves but never into strings or bools.
func basicClass(k reflect.Kind) int {
	switch k {
	case reflect.Bool:
		return 1
	case reflect.String:
		return 2
	default:
		return 3 // numeric
	}
}
