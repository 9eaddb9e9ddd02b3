package morph

import (
	"context"
	"fmt"
	"reflect"
)

// collectionStepLocked builds the step for a collection binding: convert
// every source element, then adapt the result to the target's declared
// shape. A nil source slice clears the target; map-typed targets are
// cleared unconditionally.
func (s *store) collectionStepLocked(ctx context.Context, b binding) (stepFunc, error) {
	dstIndex := b.dstIndex
	dt := b.dstType

	if dt.Kind() == reflect.Map {
		return func(_, dst reflect.Value) {
			dst.FieldByIndex(dstIndex).SetZero()
		}, nil
	}

	conv, err := s.elementConvLocked(ctx, b)
	if err != nil {
		return nil, err
	}

	srcIndex := b.srcIndex
	srcIsSlice := b.srcType.Kind() == reflect.Slice

	switch dt.Kind() {
	case reflect.Slice:
		return func(src, dst reflect.Value) {
			sv := src.FieldByIndex(srcIndex)
			dv := dst.FieldByIndex(dstIndex)

			if srcIsSlice && sv.IsNil() {
				dv.SetZero()
				return
			}

			n := sv.Len()
			out := reflect.MakeSlice(dt, n, n)
			for i := 0; i < n; i++ {
				out.Index(i).Set(conv(sv.Index(i)))
			}
			dv.Set(out)
		}, nil

	case reflect.Array:
		return func(src, dst reflect.Value) {
			sv := src.FieldByIndex(srcIndex)
			dv := dst.FieldByIndex(dstIndex)

			out := reflect.New(dt).Elem()
			if srcIsSlice && sv.IsNil() {
				dv.Set(out)
				return
			}

			n := min(sv.Len(), dt.Len())
			for i := 0; i < n; i++ {
				out.Index(i).Set(conv(sv.Index(i)))
			}
			dv.Set(out)
		}, nil

	default:
		// Planner only emits slice, array, or map targets.
		return nil, fmt.Errorf("unhandled collection target %s for field %s", dt, b.field)
	}
}

// elementConvLocked resolves the per-element conversion for a collection
// binding, compiling the element pair's constructor when elements are
// struct shaped.
func (s *store) elementConvLocked(ctx context.Context, b binding) (func(reflect.Value) reflect.Value, error) {
	se, de := b.srcType.Elem(), b.dstType.Elem()

	switch b.elemOp {
	case opDirect:
		return func(v reflect.Value) reflect.Value { return v }, nil

	case opConvert:
		return func(v reflect.Value) reflect.Value { return v.Convert(de) }, nil

	case opNarrow:
		convert := se.Elem() != de
		return func(v reflect.Value) reflect.Value {
			if v.IsNil() {
				return reflect.Zero(de)
			}
			ev := v.Elem()
			if convert {
				ev = ev.Convert(de)
			}
			return ev
		}, nil

	case opWiden:
		elem := de.Elem()
		convert := se != elem
		return func(v reflect.Value) reflect.Value {
			if convert {
				v = v.Convert(elem)
			}
			p := reflect.New(elem)
			p.Elem().Set(v)
			return p
		}, nil

	case opObject:
		e, err := s.constructorLocked(ctx, b.pair)
		if err != nil {
			return nil, err
		}
		srcPtr := se.Kind() == reflect.Pointer
		dstPtr := de.Kind() == reflect.Pointer
		return func(v reflect.Value) reflect.Value {
			if !srcPtr {
				v = ptrTo(v)
			}
			out := e.fn(v)
			switch {
			case dstPtr:
				return out
			case out.IsNil():
				return reflect.Zero(de)
			default:
				return out.Elem()
			}
		}, nil

	default:
		return nil, fmt.Errorf("unhandled element op %s for field %s", b.elemOp, b.field)
	}
}
