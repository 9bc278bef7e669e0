package mylang

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Values_Equal(t *testing.T) {
	l := List(nil)
	require.True(t, Equal(Int(1), Float(1)))
	require.True(t, Equal(Float(0.5), Float(0.5)))
	require.False(t, Equal(Float(0.5), Int(0)))
	require.False(t, Equal(Float(math.NaN()), Float(math.NaN())))
	require.True(t, Equal(Nil, Absent))
	require.False(t, Equal(Nil, False))
	require.False(t, Equal(Str("1"), Int(1)))
	require.True(t, Equal(l, l))
	require.False(t, Equal(l, List(nil)))
}

func Test_Values_Set_Dedup_Keeps_First(t *testing.T) {
	s := NewSet([]Value{Int(2), Float(2), Str("2"), Int(2)}).Data.(*SetObject)
	require.Len(t, s.Items, 2)
	require.Equal(t, VTInt, s.Items[0].Tag)
	require.True(t, s.Has(Float(2.0)))
	require.False(t, s.Has(Int(3)))
}

func Test_Values_Dict_Overwrite_Keeps_Position(t *testing.T) {
	d := NewDict().Data.(*DictObject)
	d.Set(Str("a"), Int(1))
	d.Set(Str("b"), Int(2))
	d.Set(Str("a"), Int(3))
	require.Equal(t, 2, d.Len())
	v, ok := d.Get(Str("a"))
	require.True(t, ok)
	wantInt(t, v, 3)
	require.Equal(t, "a", d.Keys[0].Data.(string))
	_, ok = d.Get(Str("zz"))
	require.False(t, ok)
}

func Test_Values_List_Copies_Input(t *testing.T) {
	items := []Value{Int(1)}
	l := List(items)
	items[0] = Int(9)
	wantInt(t, l.Data.(*ListObject).Items[0], 1)
}

func Test_Values_Tag_Names(t *testing.T) {
	require.Equal(t, "int", VTInt.String())
	require.Equal(t, "function", VTFunction.String())
	require.Equal(t, "unknown", ValueTag(42).String())
}

func Test_Function_Arity(t *testing.T) {
	for _, tc := range []struct {
		src      string
		min, max int
	}{
		{"[] 1", 0, 0},
		{"[a b] 1", 2, 2},
		{"[a b = 1] 1", 1, 2},
		{"[a @rest] 1", 1, -1},
		{"[@rest] 1", 0, -1},
	} {
		fn := evalSrc(t, tc.src).Data.(*FunctionValue)
		min, max := fn.Arity()
		require.Equal(t, tc.min, min, tc.src)
		require.Equal(t, tc.max, max, tc.src)
	}
}
