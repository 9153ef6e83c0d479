// Package ast is the fully typed, normalised output of semantic analysis.
package ast

import (
	"github.com/alecthomas/lumen/parser"
	"github.com/alecthomas/lumen/types"
)

// go-sumtype:decl Node

// A Node in the AST.
type Node interface {
	node()
}

// Expr is a Node that carries a value.
//
// Types are computed from children on demand; only Variables store them.
type Expr interface {
	Node
	Type() types.Set
}

// NaryKind is the precedence level of an n-ary chain.
type NaryKind int

const (
	// Group is a parenthesised sub-expression with a single operand.
	Group NaryKind = iota
	Additive
	Multiplicative
	Exponential
	Comparison
)

func (k NaryKind) String() string {
	switch k {
	case Group:
		return "group"
	case Additive:
		return "additive"
	case Multiplicative:
		return "multiplicative"
	case Exponential:
		return "exponential"
	case Comparison:
		return "comparison"
	default:
		panic("??")
	}
}

// Block is an ordered sequence of statements.
type Block struct {
	Statements []Node
}

// Type of a Block is the union of the types of its own return statements.
func (b *Block) Type() types.Set {
	var out types.Set
	for _, stmt := range b.Statements {
		if ret, ok := stmt.(*ReturnStatement); ok {
			out = out.Union(ret.Type())
		}
	}
	if out.Empty() {
		return types.SetOf(types.Nil)
	}
	return out
}

// Default value of the Block's type.
func (b *Block) Default() Expr { return DefaultFor(b.Type()) }

// VarDec declares a variable with an initial value.
type VarDec struct {
	Var   *types.Variable
	Value Expr
}

// Assign a value to a VarRef, Member or Subscript.
type Assign struct {
	Target Expr
	Value  Expr
}

type ReturnStatement struct {
	// Value may be nil.
	Value Expr
}

func (r *ReturnStatement) Type() types.Set {
	if r.Value == nil {
		return types.SetOf(types.Nil)
	}
	return r.Value.Type()
}

type BreakStatement struct{}

// NaryExp is a flattened chain of same-precedence binary operators.
//
// len(Operators) is always len(Operands)-1.
type NaryExp struct {
	Kind      NaryKind
	Operands  []Expr
	Operators []parser.Op
}

func (n *NaryExp) Type() types.Set {
	switch n.Kind {
	case Group:
		return n.Operands[0].Type()
	case Comparison:
		return types.SetOf(types.Boolean)
	}
	sets := make([]types.Set, 0, len(n.Operands))
	for _, operand := range n.Operands {
		sets = append(sets, operand.Type())
	}
	return types.SetOf(types.Dominant(types.Number, sets...))
}

// Logical is a binary || or &&.
type Logical struct {
	Op    parser.Op
	Left  Expr
	Right Expr
}

func (l *Logical) Type() types.Set { return types.SetOf(types.Boolean) }

// Unary negation (OpSub) or logical not (OpNot).
type Unary struct {
	Op      parser.Op
	Operand Expr
}

func (u *Unary) Type() types.Set {
	if u.Op == parser.OpNot {
		return types.SetOf(types.Boolean)
	}
	return types.SetOf(types.Number)
}

// Update is a pre or post increment (OpInc) or decrement (OpDec).
type Update struct {
	Op     parser.Op
	Prefix bool
	Target Expr
}

func (u *Update) Type() types.Set { return types.SetOf(types.Number) }

type Nil struct{}

func (n *Nil) Type() types.Set { return types.SetOf(types.Nil) }

type Boolean struct{ Value bool }

func (b *Boolean) Type() types.Set { return types.SetOf(types.Boolean) }

type Number struct{ Value float64 }

func (n *Number) Type() types.Set { return types.SetOf(types.Number) }

type String struct{ Value string }

func (s *String) Type() types.Set { return types.SetOf(types.String) }

// Interpolation is a string built from literal *String parts and expressions.
type Interpolation struct {
	Parts []Expr
}

func (i *Interpolation) Type() types.Set { return types.SetOf(types.String) }

type List struct {
	Elements []Expr
}

func (l *List) Type() types.Set { return types.SetOf(types.List) }

type Object struct {
	Fields []*Field
}

func (o *Object) Type() types.Set { return types.SetOf(types.Object) }

// Field of an object literal.
type Field struct {
	Key   string
	Value Expr
}

type Function struct {
	Params []*Param
	Body   *Block
}

func (f *Function) Type() types.Set { return types.SetOf(types.Function) }

// Returns is the type of the function's result.
func (f *Function) Returns() types.Set { return f.Body.Type() }

// Param is a positional, keyword (with a Default) or rest parameter.
type Param struct {
	Var     *types.Variable
	Default Expr
	Rest    bool
}

// VarRef reads or writes a Variable.
type VarRef struct {
	Var *types.Variable
}

func (v *VarRef) Type() types.Set { return v.Var.Types() }

// Member access, target.Name.
type Member struct {
	Target Expr
	Name   string
}

func (m *Member) Type() types.Set { return types.SetOf(types.Any) }

// Subscript, target[index].
type Subscript struct {
	Target Expr
	Index  Expr
}

func (s *Subscript) Type() types.Set { return types.SetOf(types.Any) }

// Call a function. Args may contain *KeywordArg and *Spread.
type Call struct {
	Target Expr
	Args   []Expr
}

func (c *Call) Type() types.Set { return types.SetOf(types.Any) }

type KeywordArg struct {
	Name  string
	Value Expr
}

func (k *KeywordArg) Type() types.Set { return k.Value.Type() }

// Spread expands a list into call arguments or list elements.
type Spread struct {
	Value Expr
}

func (s *Spread) Type() types.Set { return s.Value.Type() }

// Ternary expression. Else may be nil.
type Ternary struct {
	Condition Expr
	Then      *Block
	Else      *Block
}

func (t *Ternary) Type() types.Set {
	if t.Else == nil {
		return t.Then.Type()
	}
	return t.Then.Type().Union(t.Else.Type())
}

type Match struct {
	Subject Expr
	Clauses []*MatchClause
}

func (m *Match) Type() types.Set {
	var out types.Set
	for _, clause := range m.Clauses {
		out = out.Union(clause.Body.Type())
	}
	if out.Empty() {
		return types.SetOf(types.Nil)
	}
	return out
}

// MatchClause matches any of Values, or anything if Values is empty.
type MatchClause struct {
	Values []Expr
	Body   *Block
}

// Default reports whether this is the "else" clause.
func (m *MatchClause) Default() bool { return len(m.Values) == 0 }

func (*Block) node()           {}
func (*VarDec) node()          {}
func (*Assign) node()          {}
func (*ReturnStatement) node() {}
func (*BreakStatement) node()  {}
func (*NaryExp) node()         {}
func (*Logical) node()         {}
func (*Unary) node()           {}
func (*Update) node()          {}
func (*Nil) node()             {}
func (*Boolean) node()         {}
func (*Number) node()          {}
func (*String) node()          {}
func (*Interpolation) node()   {}
func (*List) node()            {}
func (*Object) node()          {}
func (*Field) node()           {}
func (*Function) node()        {}
func (*Param) node()           {}
func (*VarRef) node()          {}
func (*Member) node()          {}
func (*Subscript) node()       {}
func (*Call) node()            {}
func (*KeywordArg) node()      {}
func (*Spread) node()          {}
func (*Ternary) node()         {}
func (*Match) node()           {}
func (*MatchClause) node()     {}
