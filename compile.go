package morph

import (
	"context"
	"fmt"
	"reflect"
)

// stepFunc applies one binding. src and dst are struct values; dst is
// addressable.
type stepFunc func(src, dst reflect.Value)

// compileConstructorLocked turns a binding plan into a constructor: nil
// source yields a typed nil pointer, otherwise a freshly allocated target
// is populated in one shot. The result is deterministic and side-effect
// free.
func (s *store) compileConstructorLocked(ctx context.Context, pair TypePair, bindings []binding) (ctorFunc, error) {
	steps, err := s.compileStepsLocked(ctx, bindings, false)
	if err != nil {
		return nil, err
	}

	dstType := pair.Dst
	nilDst := reflect.Zero(reflect.PointerTo(dstType))

	return func(src reflect.Value) reflect.Value {
		if src.IsNil() {
			return nilDst
		}

		dst := reflect.New(dstType)
		se, de := src.Elem(), dst.Elem()
		for _, step := range steps {
			step(se, de)
		}
		return dst
	}, nil
}

// compileMutatorLocked turns a binding plan into an in-place updater.
// Scalar writes are change-guarded; nested objects and collections are
// always rebuilt. Fields without a binding are left untouched.
func (s *store) compileMutatorLocked(ctx context.Context, _ TypePair, bindings []binding) (mutFunc, error) {
	steps, err := s.compileStepsLocked(ctx, bindings, true)
	if err != nil {
		return nil, err
	}

	return func(src, dst reflect.Value) {
		for _, step := range steps {
			step(src, dst)
		}
	}, nil
}

func (s *store) compileStepsLocked(ctx context.Context, bindings []binding, mutate bool) ([]stepFunc, error) {
	steps := make([]stepFunc, 0, len(bindings))
	for _, b := range bindings {
		step, err := s.compileStepLocked(ctx, b, mutate)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func (s *store) compileStepLocked(ctx context.Context, b binding, mutate bool) (stepFunc, error) {
	switch b.op {
	case opDirect:
		return directStep(b, mutate), nil
	case opNarrow:
		return narrowStep(b, mutate), nil
	case opWiden:
		return widenStep(b, mutate), nil
	case opObject:
		e, err := s.constructorLocked(ctx, b.pair)
		if err != nil {
			return nil, err
		}
		return objectStep(b, e), nil
	case opCollection:
		return s.collectionStepLocked(ctx, b)
	case opDefault:
		return defaultStep(b, mutate), nil
	default:
		return nil, fmt.Errorf("unhandled binding op %s for field %s", b.op, b.field)
	}
}

// directStep copies an identically typed field. In mutate mode comparable
// values are change-guarded so unchanged fields are never rewritten.
func directStep(b binding, mutate bool) stepFunc {
	srcIndex, dstIndex := b.srcIndex, b.dstIndex

	if mutate && runtimeComparable(b.srcType) {
		return func(src, dst reflect.Value) {
			sv := src.FieldByIndex(srcIndex)
			dv := dst.FieldByIndex(dstIndex)
			if !dv.Equal(sv) {
				dv.Set(sv)
			}
		}
	}

	return func(src, dst reflect.Value) {
		dst.FieldByIndex(dstIndex).Set(src.FieldByIndex(srcIndex))
	}
}

// narrowStep maps *V to V: the dereferenced value when present, the zero
// value otherwise. Zeroing is unconditional in mutate mode.
func narrowStep(b binding, mutate bool) stepFunc {
	srcIndex, dstIndex := b.srcIndex, b.dstIndex
	dt := b.dstType
	convert := b.convert

	return func(src, dst reflect.Value) {
		sv := src.FieldByIndex(srcIndex)
		dv := dst.FieldByIndex(dstIndex)

		if sv.IsNil() {
			if mutate {
				dv.SetZero()
			}
			return
		}

		v := sv.Elem()
		if convert {
			v = v.Convert(dt)
		}
		if mutate && dv.Equal(v) {
			return
		}
		dv.Set(v)
	}
}

// widenStep maps V to *V, always wrapping. In mutate mode the existing
// pointer is kept when it already holds an equal value.
func widenStep(b binding, mutate bool) stepFunc {
	srcIndex, dstIndex := b.srcIndex, b.dstIndex
	elem := b.dstType.Elem()
	convert := b.convert

	return func(src, dst reflect.Value) {
		v := src.FieldByIndex(srcIndex)
		if convert {
			v = v.Convert(elem)
		}

		dv := dst.FieldByIndex(dstIndex)
		if mutate && !dv.IsNil() && dv.Elem().Equal(v) {
			return
		}

		p := reflect.New(elem)
		p.Elem().Set(v)
		dv.Set(p)
	}
}

// objectStep maps a nested struct field through the nested pair's
// compiled constructor. A nil source pointer clears the target. The
// entry's fn is read at call time, not captured, so cyclic pairs work.
func objectStep(b binding, e *ctorEntry) stepFunc {
	srcIndex, dstIndex := b.srcIndex, b.dstIndex
	srcPtr := b.srcType.Kind() == reflect.Pointer
	dstPtr := b.dstType.Kind() == reflect.Pointer

	return func(src, dst reflect.Value) {
		sv := src.FieldByIndex(srcIndex)
		if !srcPtr {
			sv = ptrTo(sv)
		}

		out := e.fn(sv)
		dv := dst.FieldByIndex(dstIndex)

		switch {
		case dstPtr:
			dv.Set(out)
		case out.IsNil():
			dv.SetZero()
		default:
			dv.Set(out.Elem())
		}
	}
}

// defaultStep assigns the target field's zero value. Fresh targets are
// already zero, so the constructing form is a no-op.
func defaultStep(b binding, mutate bool) stepFunc {
	if !mutate {
		return func(_, _ reflect.Value) {}
	}

	dstIndex := b.dstIndex
	return func(_, dst reflect.Value) {
		dst.FieldByIndex(dstIndex).SetZero()
	}
}

// runtimeComparable reports whether values of type t can be compared with
// reflect.Value.Equal without panicking. Type.Comparable is not enough:
// it is true for interface types whose dynamic value may be a slice, map,
// or func, and for aggregates containing such interfaces.
func runtimeComparable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface:
		return false
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !runtimeComparable(t.Field(i).Type) {
				return false
			}
		}
		return true
	case reflect.Array:
		return runtimeComparable(t.Elem())
	default:
		return t.Comparable()
	}
}

// ptrTo returns a pointer to v, copying into fresh storage when v is not
// addressable.
func ptrTo(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v.Addr()
	}
	p := reflect.New(v.Type())
	p.Elem().Set(v)
	return p
}
