package morph

import (
	"reflect"

	"github.com/zoobzio/sentinel"
)

// excludeTag is the struct tag controlling mapping. A source field tagged
// `morph:"-"` is never copied, even when names and types match.
const excludeTag = "morph"

func init() {
	// Register the mapping tag with sentinel
	sentinel.Tag(excludeTag)
}

// valueKind classifies a field type for binding purposes.
type valueKind int

const (
	// kindValue - comparable basic value (bool, numeric, string).
	kindValue valueKind = iota
	// kindNullable - pointer to a basic value.
	kindNullable
	// kindObject - struct or pointer to struct.
	kindObject
	// kindCollection - slice or array.
	kindCollection
	// kindKeyed - map. Never populated as a mapping target.
	kindKeyed
	// kindOpaque - interface, func, chan, or other unmappable shape.
	kindOpaque
)

// classify derives a field type's value kind from static type metadata.
func classify(t reflect.Type) valueKind {
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return kindCollection
	case reflect.Map:
		return kindKeyed
	case reflect.Struct:
		return kindObject
	case reflect.Pointer:
		switch {
		case t.Elem().Kind() == reflect.Struct:
			return kindObject
		case isBasic(t.Elem()):
			return kindNullable
		default:
			return kindOpaque
		}
	case reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return kindOpaque
	default:
		if isBasic(t) {
			return kindValue
		}
		return kindOpaque
	}
}

// isBasic reports whether t is a bool, numeric, or string type.
func isBasic(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return true
	default:
		return false
	}
}

// baseStruct returns the struct type behind t, unwrapping one pointer.
// The second result is false when t is not struct-shaped.
func baseStruct(t reflect.Type) (reflect.Type, bool) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() == reflect.Struct {
		return t, true
	}
	return nil, false
}

// property is the reflected shape of one exported struct field.
// Derived purely from static type metadata, never from instance data.
type property struct {
	name     string
	typ      reflect.Type
	index    []int
	excluded bool
}

// propertiesOf returns the exported fields of a struct type, consulting
// sentinel's registry first and falling back to a manual scan.
func propertiesOf(rt reflect.Type) []property {
	meta := metadataFor(rt)
	props := make([]property, 0, len(meta.Fields))

	for _, field := range meta.Fields {
		props = append(props, property{
			name:     field.Name,
			typ:      field.ReflectType,
			index:    field.Index,
			excluded: field.Tags[excludeTag] == "-",
		})
	}

	return props
}

// metadataFor returns sentinel metadata for a struct type. Types reached
// only through nested pairs are never scanned generically, so a manual
// reflect scan covers them.
func metadataFor(rt reflect.Type) sentinel.Metadata {
	if spec, ok := sentinel.Lookup(rt.String()); ok {
		return spec
	}

	spec := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        parseMappingTags(sf.Tag),
		}

		switch sf.Type.Kind() {
		case reflect.Struct:
			fm.Kind = sentinel.KindStruct
		case reflect.Pointer:
			fm.Kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			fm.Kind = sentinel.KindSlice
		case reflect.Map:
			fm.Kind = sentinel.KindMap
		case reflect.Interface:
			fm.Kind = sentinel.KindInterface
		default:
			fm.Kind = sentinel.KindScalar
		}

		spec.Fields = append(spec.Fields, fm)
	}

	return spec
}

// parseMappingTags extracts mapping tags from a struct tag.
func parseMappingTags(tag reflect.StructTag) map[string]string {
	tags := make(map[string]string)
	if val, ok := tag.Lookup(excludeTag); ok {
		tags[excludeTag] = val
	}
	return tags
}
