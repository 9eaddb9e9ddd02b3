package morph

import (
	"errors"
	"reflect"
	"testing"
)

func TestConfigError_Is(t *testing.T) {
	pair := TypePair{Src: reflect.TypeOf([]int{}), Dst: reflect.TypeOf(struct{}{})}
	err := newConfigError(ErrRootCollection, pair)

	if !errors.Is(err, ErrRootCollection) {
		t.Error("ConfigError should unwrap to ErrRootCollection")
	}

	if errors.Is(err, ErrNotStruct) {
		t.Error("ConfigError should not match ErrNotStruct")
	}
}

func TestConfigError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "full context",
			err:  newConfigError(ErrRootCollection, TypePair{Src: reflect.TypeOf([]int{}), Dst: reflect.TypeOf(0)}),
			want: "collection type at mapping root ([]int -> int)",
		},
		{
			name: "bare sentinel",
			err:  &ConfigError{Err: ErrNotStruct},
			want: "mapping requires struct types",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
