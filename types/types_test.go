package types

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestDominant(t *testing.T) {
	tests := []struct {
		name     string
		sets     []Set
		dflt     Type
		expected Type
	}{
		{name: "Empty", dflt: Number, expected: Number},
		{name: "NilOnly", sets: []Set{SetOf(Nil)}, dflt: Number, expected: Number},
		{name: "AnyOnly", sets: []Set{SetOf(Any)}, dflt: Boolean, expected: Boolean},
		{name: "StringBeatsNumber", sets: []Set{SetOf(Number), SetOf(String)}, dflt: Nil, expected: String},
		{name: "FunctionStrongest", sets: []Set{SetOf(List, Function, Boolean)}, dflt: Nil, expected: Function},
		{name: "ListBeatsObject", sets: []Set{SetOf(Object), SetOf(List)}, dflt: Nil, expected: List},
		{name: "Boolean", sets: []Set{SetOf(Boolean, Nil)}, dflt: Number, expected: Boolean},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, Dominant(test.dflt, test.sets...))
		})
	}
}

func TestWeakest(t *testing.T) {
	tests := []struct {
		name     string
		set      Set
		expected Type
	}{
		{name: "Empty", set: 0, expected: Nil},
		{name: "AnyOnly", set: SetOf(Any), expected: Nil},
		{name: "NumberString", set: SetOf(String, Number), expected: Number},
		{name: "BooleanFunction", set: SetOf(Function, Boolean), expected: Boolean},
		{name: "ObjectList", set: SetOf(List, Object), expected: Object},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, Weakest(test.set))
			// Same input, same answer.
			assert.Equal(t, Weakest(test.set), Weakest(test.set))
		})
	}
}

func TestSet(t *testing.T) {
	s := SetOf(String, Number, Nil)
	assert.Equal(t, []Type{Nil, Number, String}, s.Types())
	assert.Equal(t, "{nil, number, string}", s.String())
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains(SetOf(Number, String)))
	assert.False(t, s.Contains(SetOf(List)))
	assert.True(t, s.ScalarOnly())
	assert.False(t, s.Add(Object).ScalarOnly())
	assert.False(t, Set(0).ScalarOnly())
	assert.Equal(t, []Type{Nil, Any, Boolean, Function}, SetOf(Function, Any, Boolean, Nil).Types())
}

func TestVariableWidenIsMonotonic(t *testing.T) {
	v := Var("x", SetOf(Number))
	seen := []Set{v.Types()}
	for _, s := range []Set{SetOf(String), SetOf(Number), 0, SetOf(List, Nil), SetOf(Boolean)} {
		v.Widen(s)
		seen = append(seen, v.Types())
	}
	for i := 1; i < len(seen); i++ {
		assert.True(t, seen[i].Contains(seen[i-1]), "%s does not contain %s", seen[i], seen[i-1])
	}
	assert.Equal(t, SetOf(Nil, Boolean, Number, String, List), v.Types())
}

func TestVariableProperties(t *testing.T) {
	v := Const("pi", SetOf(Number))
	assert.True(t, v.ReadOnly())
	assert.False(t, v.Local())
	v = NewVariable("p", Local, 0)
	assert.True(t, v.Local())
	assert.Equal(t, SetOf(Nil), v.Types())
	assert.Equal(t, "p {nil}", v.String())
}
