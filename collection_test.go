package morph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type elemSrc struct{ ID int }

type elemDst struct{ ID int }

type collSrc struct {
	Items  []elemSrc
	Ptrs   []*elemSrc
	Nums   []int32
	Opts   []*int
	Plain  []int
	Window []int
	Attrs  map[string]string
}

type collDst struct {
	Items  []elemDst
	Ptrs   []elemDst
	Nums   []int64
	Opts   []int
	Plain  [2]int
	Window []int64
	Attrs  map[string]int
}

func TestCollection_StructElements(t *testing.T) {
	src := &collSrc{Items: []elemSrc{{ID: 1}, {ID: 2}}}

	dst, err := Map[collSrc, collDst](src)
	require.NoError(t, err)

	assert.Equal(t, []elemDst{{ID: 1}, {ID: 2}}, dst.Items)
}

func TestCollection_PointerElementsToValues(t *testing.T) {
	src := &collSrc{Ptrs: []*elemSrc{{ID: 5}, nil}}

	dst, err := Map[collSrc, collDst](src)
	require.NoError(t, err)

	require.Len(t, dst.Ptrs, 2)
	assert.Equal(t, elemDst{ID: 5}, dst.Ptrs[0])
	assert.Equal(t, elemDst{}, dst.Ptrs[1], "nil element maps to zero value")
}

func TestCollection_ConvertibleElements(t *testing.T) {
	src := &collSrc{Nums: []int32{3, 4}, Window: []int{8, 9}}

	dst, err := Map[collSrc, collDst](src)
	require.NoError(t, err)

	assert.Equal(t, []int64{3, 4}, dst.Nums)
	assert.Equal(t, []int64{8, 9}, dst.Window)
}

func TestCollection_NarrowElements(t *testing.T) {
	five := 5
	src := &collSrc{Opts: []*int{&five, nil}}

	dst, err := Map[collSrc, collDst](src)
	require.NoError(t, err)

	assert.Equal(t, []int{5, 0}, dst.Opts)
}

func TestCollection_ArrayTarget(t *testing.T) {
	tests := []struct {
		name string
		in   []int
		want [2]int
	}{
		{"exact", []int{1, 2}, [2]int{1, 2}},
		{"truncated", []int{1, 2, 3}, [2]int{1, 2}},
		{"padded", []int{1}, [2]int{1, 0}},
		{"empty", nil, [2]int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst, err := Map[collSrc, collDst](&collSrc{Plain: tt.in})
			require.NoError(t, err)
			assert.Equal(t, tt.want, dst.Plain)
		})
	}
}

func TestCollection_KeyedTargetCleared(t *testing.T) {
	src := &collSrc{Attrs: map[string]string{"k": "v"}}

	dst, err := Map[collSrc, collDst](src)
	require.NoError(t, err)
	assert.Nil(t, dst.Attrs, "map targets are never populated")

	existing := &collDst{Attrs: map[string]int{"stale": 1}}
	require.NoError(t, MapInto(src, existing))
	assert.Nil(t, existing.Attrs, "map targets are cleared on update")
}

func TestCollection_NilSourcePropagates(t *testing.T) {
	dst, err := Map[collSrc, collDst](&collSrc{})
	require.NoError(t, err)
	assert.Nil(t, dst.Items)
	assert.Nil(t, dst.Nums)

	existing := &collDst{Items: []elemDst{{ID: 1}}}
	require.NoError(t, MapInto(&collSrc{}, existing))
	assert.Nil(t, existing.Items, "nil source collection clears the target")
}

func TestCollection_MutateRebuilds(t *testing.T) {
	src := &collSrc{Items: []elemSrc{{ID: 1}}}
	dst := &collDst{}

	require.NoError(t, MapInto(src, dst))
	first := dst.Items

	require.NoError(t, MapInto(src, dst))
	assert.Equal(t, first, dst.Items)
	if len(first) > 0 && len(dst.Items) > 0 {
		assert.NotSame(t, &first[0], &dst.Items[0], "collections are rebuilt, never patched")
	}
}
