package types

import (
	"fmt"
)

//go:generate stringer -type Property

// Property of a variable.
type Property int64

// Has returns true if the given property is set.
func (p Property) Has(prop Property) bool { return p&prop != 0 }

// Set properties.
func (p *Property) Set(prop Property) { *p |= prop }

// Variable properties.
const (
	// Local variables are scoped to their block rather than hoisted to the
	// enclosing function.
	Local Property = 1 << iota
	// ReadOnly variables can't be reassigned.
	ReadOnly
)

// A Variable binding.
//
// Its type set only ever grows.
type Variable struct {
	Name       string
	Properties Property
	types      Set
}

// NewVariable creates a Variable holding the given types, or {nil} if
// initial is empty.
func NewVariable(name string, props Property, initial Set) *Variable {
	if initial.Empty() {
		initial = SetOf(Nil)
	}
	return &Variable{Name: name, Properties: props, types: initial}
}

// Var creates a mutable, hoistable Variable.
func Var(name string, initial Set) *Variable {
	return NewVariable(name, 0, initial)
}

// Const creates a read-only Variable.
func Const(name string, initial Set) *Variable {
	return NewVariable(name, ReadOnly, initial)
}

func (v *Variable) Local() bool    { return v.Properties.Has(Local) }
func (v *Variable) ReadOnly() bool { return v.Properties.Has(ReadOnly) }

// Types the variable has been observed holding.
func (v *Variable) Types() Set { return v.types }

// Widen adds types to the variable's type set.
func (v *Variable) Widen(types Set) { v.types = v.types.Union(types) }

func (v *Variable) String() string { return fmt.Sprintf("%s %s", v.Name, v.types) }
