package ast

import (
	"github.com/alecthomas/lumen/types"
)

// DefaultValue constructs the zero value of a type.
//
// Any has no value of its own and defaults to nil.
func DefaultValue(t types.Type) Expr {
	switch t {
	case types.Nil, types.Any:
		return &Nil{}
	case types.Boolean:
		return &Boolean{}
	case types.Number:
		return &Number{}
	case types.String:
		return &String{}
	case types.List:
		return &List{}
	case types.Object:
		return &Object{}
	case types.Function:
		return &Function{Body: &Block{}}
	default:
		panic("??")
	}
}

// DefaultFor returns the default value of the weakest type in set.
func DefaultFor(set types.Set) Expr {
	return DefaultValue(types.Weakest(set))
}
