package ast

import (
	"fmt"
	"io"

	"github.com/alecthomas/lumen/ast/sexpr"
	"github.com/alecthomas/lumen/parser"
)

// Format renders node as a single line s-expression, eg.
//
//	(block (var x 1) (return (nary x + 2)))
func Format(node Node) string {
	return sexpr.String(ToSExpr(node))
}

// FormatIndent writes node as an s-expression with one statement per line.
func FormatIndent(w io.Writer, node Node) error {
	return sexpr.WriteIndent(w, ToSExpr(node), "block")
}

// ToSExpr converts node to an s-expression tree.
func ToSExpr(node Node) sexpr.Node {
	switch n := node.(type) {
	case *Block:
		out := sexpr.List{sexpr.ID("block")}
		for _, stmt := range n.Statements {
			out.Add(ToSExpr(stmt))
		}
		return out

	case *VarDec:
		head := "var"
		switch {
		case n.Var.ReadOnly():
			head = "const"
		case n.Var.Local():
			head = "local"
		}
		return sexpr.List{sexpr.ID(head), sexpr.ID(n.Var.Name), ToSExpr(n.Value)}

	case *Assign:
		return sexpr.List{sexpr.ID("="), ToSExpr(n.Target), ToSExpr(n.Value)}

	case *ReturnStatement:
		if n.Value == nil {
			return sexpr.List{sexpr.ID("return")}
		}
		return sexpr.List{sexpr.ID("return"), ToSExpr(n.Value)}

	case *BreakStatement:
		return sexpr.List{sexpr.ID("break")}

	case *NaryExp:
		if n.Kind == Group {
			return sexpr.List{sexpr.ID("group"), ToSExpr(n.Operands[0])}
		}
		out := sexpr.List{sexpr.ID("nary"), ToSExpr(n.Operands[0])}
		for i, op := range n.Operators {
			out.Add(sexpr.ID(op.String()), ToSExpr(n.Operands[i+1]))
		}
		return out

	case *Logical:
		return sexpr.List{sexpr.ID(n.Op.String()), ToSExpr(n.Left), ToSExpr(n.Right)}

	case *Unary:
		head := "neg"
		if n.Op == parser.OpNot {
			head = "not"
		}
		return sexpr.List{sexpr.ID(head), ToSExpr(n.Operand)}

	case *Update:
		head := "post"
		if n.Prefix {
			head = "pre"
		}
		return sexpr.List{sexpr.ID(head + n.Op.String()), ToSExpr(n.Target)}

	case *Nil:
		return sexpr.ID("nil")

	case *Boolean:
		return sexpr.ID(fmt.Sprint(n.Value))

	case *Number:
		return sexpr.Float(n.Value)

	case *String:
		return sexpr.Str(n.Value)

	case *Interpolation:
		out := sexpr.List{sexpr.ID("interp")}
		for _, part := range n.Parts {
			out.Add(ToSExpr(part))
		}
		return out

	case *List:
		out := sexpr.List{sexpr.ID("list")}
		for _, element := range n.Elements {
			out.Add(ToSExpr(element))
		}
		return out

	case *Object:
		out := sexpr.List{sexpr.ID("object")}
		for _, field := range n.Fields {
			out.Add(ToSExpr(field))
		}
		return out

	case *Field:
		return sexpr.List{sexpr.ID(n.Key), ToSExpr(n.Value)}

	case *Function:
		params := sexpr.List{}
		for _, param := range n.Params {
			params.Add(ToSExpr(param))
		}
		return sexpr.List{sexpr.ID("fn"), params, ToSExpr(n.Body)}

	case *Param:
		switch {
		case n.Rest:
			return sexpr.List{sexpr.ID("..."), sexpr.ID(n.Var.Name)}
		case n.Default != nil:
			return sexpr.List{sexpr.ID(n.Var.Name), ToSExpr(n.Default)}
		}
		return sexpr.ID(n.Var.Name)

	case *VarRef:
		return sexpr.ID(n.Var.Name)

	case *Member:
		return sexpr.List{sexpr.ID("."), ToSExpr(n.Target), sexpr.ID(n.Name)}

	case *Subscript:
		return sexpr.List{sexpr.ID("index"), ToSExpr(n.Target), ToSExpr(n.Index)}

	case *Call:
		out := sexpr.List{sexpr.ID("call"), ToSExpr(n.Target)}
		for _, arg := range n.Args {
			out.Add(ToSExpr(arg))
		}
		return out

	case *KeywordArg:
		return sexpr.List{sexpr.ID("kw"), sexpr.ID(n.Name), ToSExpr(n.Value)}

	case *Spread:
		return sexpr.List{sexpr.ID("..."), ToSExpr(n.Value)}

	case *Ternary:
		out := sexpr.List{sexpr.ID("?"), ToSExpr(n.Condition), ToSExpr(n.Then)}
		if n.Else != nil {
			out.Add(ToSExpr(n.Else))
		}
		return out

	case *Match:
		out := sexpr.List{sexpr.ID("match"), ToSExpr(n.Subject)}
		for _, clause := range n.Clauses {
			out.Add(ToSExpr(clause))
		}
		return out

	case *MatchClause:
		if n.Default() {
			return sexpr.List{sexpr.ID("else"), ToSExpr(n.Body)}
		}
		values := sexpr.List{}
		for _, value := range n.Values {
			values.Add(ToSExpr(value))
		}
		return sexpr.List{sexpr.ID("case"), values, ToSExpr(n.Body)}

	default:
		panic(fmt.Sprintf("unsupported node %T", node))
	}
}
