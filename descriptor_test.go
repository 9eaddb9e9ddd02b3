package morph

import (
	"reflect"
	"testing"
)

type descriptorProbe struct {
	Plain    int
	Optional *int
	Child    descriptorChild
	ChildPtr *descriptorChild
	List     []string
	Fixed    [4]byte
	Lookup   map[string]int
	Callback func()
	Anything any
	Hidden   string `morph:"-"`

	internal bool
}

type descriptorChild struct{ ID int }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		typ  reflect.Type
		want valueKind
	}{
		{"int", reflect.TypeOf(0), kindValue},
		{"string", reflect.TypeOf(""), kindValue},
		{"bool", reflect.TypeOf(false), kindValue},
		{"pointer to int", reflect.TypeOf((*int)(nil)), kindNullable},
		{"struct", reflect.TypeOf(descriptorChild{}), kindObject},
		{"pointer to struct", reflect.TypeOf(&descriptorChild{}), kindObject},
		{"slice", reflect.TypeOf([]string{}), kindCollection},
		{"array", reflect.TypeOf([4]byte{}), kindCollection},
		{"map", reflect.TypeOf(map[string]int{}), kindKeyed},
		{"func", reflect.TypeOf(func() {}), kindOpaque},
		{"interface", reflect.TypeOf((*any)(nil)).Elem(), kindOpaque},
		{"pointer to slice", reflect.TypeOf((*[]int)(nil)), kindOpaque},
		{"pointer to pointer", reflect.TypeOf((**int)(nil)), kindOpaque},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.typ); got != tt.want {
				t.Errorf("classify(%s) = %d, want %d", tt.typ, got, tt.want)
			}
		})
	}
}

func TestPropertiesOf(t *testing.T) {
	props := propertiesOf(reflect.TypeOf(descriptorProbe{}))

	byName := make(map[string]property, len(props))
	for _, p := range props {
		byName[p.name] = p
	}

	if len(props) != 10 {
		t.Errorf("propertiesOf() returned %d fields, want 10 exported", len(props))
	}

	if _, ok := byName["internal"]; ok {
		t.Error("unexported field must not be listed")
	}

	hidden, ok := byName["Hidden"]
	if !ok {
		t.Fatal("tagged field missing from properties")
	}
	if !hidden.excluded {
		t.Error("morph:\"-\" field should be marked excluded")
	}

	if byName["Plain"].excluded {
		t.Error("untagged field should not be excluded")
	}

	if byName["Optional"].typ != reflect.TypeOf((*int)(nil)) {
		t.Errorf("Optional type = %s, want *int", byName["Optional"].typ)
	}
}

func TestBaseStruct(t *testing.T) {
	child := reflect.TypeOf(descriptorChild{})

	if got, ok := baseStruct(child); !ok || got != child {
		t.Errorf("baseStruct(struct) = %v, %v", got, ok)
	}
	if got, ok := baseStruct(reflect.PointerTo(child)); !ok || got != child {
		t.Errorf("baseStruct(*struct) = %v, %v", got, ok)
	}
	if _, ok := baseStruct(reflect.TypeOf(0)); ok {
		t.Error("baseStruct(int) should report false")
	}
}
