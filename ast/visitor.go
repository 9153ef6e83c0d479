package ast

import (
	"fmt"

	"github.com/pkg/errors"
)

// Next should be called by VisitorFunc to proceed with the walk.
//
// The walk will terminate if "err" is non-nil.
type Next func(err error) error

// VisitorFunc can be used to walk all nodes in the AST.
type VisitorFunc func(node Node, next Next) error

// TerminateRecursion can be passed to Next to skip a node's children
// while continuing the walk.
var TerminateRecursion = errors.New("no recurse")

// Visit calls the visitor function on node and, depth-first, all of its
// children.
func Visit(node Node, visit VisitorFunc) error {
	if node == nil {
		return nil
	}
	return visit(node, func(err error) error {
		if err == TerminateRecursion {
			return nil
		}
		if err != nil {
			return err
		}
		for _, child := range Children(node) {
			if err := Visit(child, visit); err != nil {
				return err
			}
		}
		return nil
	})
}

// Children of a node, in evaluation order.
func Children(node Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		out = append(out, nodes...)
	}
	switch n := node.(type) {
	case *Block:
		add(n.Statements...)
	case *VarDec:
		add(n.Value)
	case *Assign:
		add(n.Target, n.Value)
	case *ReturnStatement:
		if n.Value != nil {
			add(n.Value)
		}
	case *NaryExp:
		for _, operand := range n.Operands {
			add(operand)
		}
	case *Logical:
		add(n.Left, n.Right)
	case *Unary:
		add(n.Operand)
	case *Update:
		add(n.Target)
	case *Interpolation:
		for _, part := range n.Parts {
			add(part)
		}
	case *List:
		for _, element := range n.Elements {
			add(element)
		}
	case *Object:
		for _, field := range n.Fields {
			add(field)
		}
	case *Field:
		add(n.Value)
	case *Function:
		for _, param := range n.Params {
			add(param)
		}
		add(n.Body)
	case *Param:
		if n.Default != nil {
			add(n.Default)
		}
	case *Member:
		add(n.Target)
	case *Subscript:
		add(n.Target, n.Index)
	case *Call:
		add(n.Target)
		for _, arg := range n.Args {
			add(arg)
		}
	case *KeywordArg:
		add(n.Value)
	case *Spread:
		add(n.Value)
	case *Ternary:
		add(n.Condition, n.Then)
		if n.Else != nil {
			add(n.Else)
		}
	case *Match:
		add(n.Subject)
		for _, clause := range n.Clauses {
			add(clause)
		}
	case *MatchClause:
		for _, value := range n.Values {
			add(value)
		}
		add(n.Body)
	case *BreakStatement, *Nil, *Boolean, *Number, *String, *VarRef:
	default:
		panic(fmt.Sprintf("unsupported node %T", node))
	}
	return out
}

// Validate checks that every expression reachable from node has a
// non-empty type.
//
// Blocks and return statements take their type from their values, so the
// offending value is reported rather than its statement.
func Validate(node Node) error {
	return Visit(node, func(node Node, next Next) error {
		switch node.(type) {
		case *Block, *ReturnStatement:
			return next(nil)
		}
		if expr, ok := node.(Expr); ok && expr.Type().Empty() {
			return next(errors.Errorf("%s has no type", Format(node)))
		}
		return next(nil)
	})
}
