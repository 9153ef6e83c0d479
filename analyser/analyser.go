// Package analyser converts a parse tree into a typed, normalised AST.
//
// Identifiers that are used before being bound are implicitly declared at
// the top of their enclosing block, with a type inferred from the position
// they first appear in.
package analyser

import (
	"go.uber.org/zap"

	"github.com/alecthomas/lumen/ast"
	"github.com/alecthomas/lumen/parser"
	"github.com/alecthomas/lumen/types"
)

type analyser struct {
	log      *zap.Logger
	builtins []string
	scopes   []*Scope
	warnings []Warning
}

func (a *analyser) scope() *Scope { return a.scopes[len(a.scopes)-1] }

func (a *analyser) enter(kind frameKind, owner *ast.Block) {
	var parent *Scope
	if len(a.scopes) > 0 {
		parent = a.scope()
	}
	a.scopes = append(a.scopes, makeScope(parent, kind, owner))
	a.log.Debug("enter scope", zap.Stringer("kind", kind), zap.Int("depth", len(a.scopes)))
}

// exit pops the current scope, returning its pending declarations in
// source order.
func (a *analyser) exit() []ast.Node {
	scope := a.scope()
	a.scopes = a.scopes[:len(a.scopes)-1]
	a.log.Debug("exit scope",
		zap.Stringer("kind", scope.kind),
		zap.Int("depth", len(a.scopes)),
		zap.Int("declarations", len(scope.pending)))
	return scope.flush()
}

// buildBlock analyses stmts in a new scope of the given kind into block.
//
// setup is called after the scope is entered, to bind parameters or
// builtins. Implicit declarations are placed before the statements.
func (a *analyser) buildBlock(block *ast.Block, kind frameKind, stmts []*parser.Stmt, setup func() error) error {
	var owner *ast.Block
	if kind == frameRoot || kind == frameFunction {
		owner = block
	}
	a.enter(kind, owner)
	var body []ast.Node
	err := func() error {
		if setup != nil {
			if err := setup(); err != nil {
				return err
			}
		}
		for _, stmt := range stmts {
			node, err := a.buildStmt(stmt)
			if err != nil {
				return err
			}
			body = append(body, node)
		}
		return nil
	}()
	pending := a.exit()
	if err != nil {
		return err
	}
	block.Statements = append(pending, impliedReturn(body)...)
	return nil
}

// impliedReturn wraps the final expression statement of a block in a
// return.
//
// Ternaries and calls are never wrapped. Updates are only wrapped when
// they are the sole statement.
func impliedReturn(stmts []ast.Node) []ast.Node {
	if len(stmts) == 0 {
		return stmts
	}
	expr, ok := stmts[len(stmts)-1].(ast.Expr)
	if !ok {
		return stmts
	}
	switch expr.(type) {
	case *ast.ReturnStatement, *ast.Block:
		return stmts
	case *ast.Ternary, *ast.Call:
		return stmts
	case *ast.Update:
		if len(stmts) > 1 {
			return stmts
		}
	}
	stmts[len(stmts)-1] = &ast.ReturnStatement{Value: expr}
	return stmts
}

// inFunctionBody is true if the innermost scope is a function body or the
// root.
func (a *analyser) inFunctionBody() bool {
	return a.scope().Owner() != nil
}

func (a *analyser) buildStmt(stmt *parser.Stmt) (ast.Node, error) {
	switch {
	case stmt.Return != nil:
		if !a.inFunctionBody() {
			return nil, errorf(stmt.Pos, "Unexpected return outside of a function body")
		}
		if stmt.Return.Value == nil {
			return &ast.ReturnStatement{}, nil
		}
		value, err := a.buildExpr(stmt.Return.Value)
		if err != nil {
			return nil, err
		}
		return &ast.ReturnStatement{Value: a.define(value, nilSet)}, nil

	case stmt.Break:
		if !a.inFunctionBody() {
			return nil, errorf(stmt.Pos, "Unexpected break outside of a function body")
		}
		return &ast.BreakStatement{}, nil

	case stmt.Decl != nil:
		return a.buildDecl(stmt.Decl)

	case stmt.Block != nil:
		block := &ast.Block{}
		return block, a.buildBlock(block, frameBlock, stmt.Block.Statements, nil)

	case stmt.Assignment != nil:
		return a.buildAssignment(stmt.Assignment)

	case stmt.Expression != nil:
		value, err := a.buildExpr(stmt.Expression)
		if err != nil {
			return nil, err
		}
		return a.define(value, nilSet), nil

	default:
		panic("??")
	}
}

func (a *analyser) buildDecl(decl *parser.Decl) (ast.Node, error) {
	var props types.Property
	if decl.Modifiers.Has(parser.ModifierConst) {
		props.Set(types.ReadOnly)
	}
	if decl.Modifiers.Has(parser.ModifierLocal) {
		props.Set(types.Local)
	}
	scope := a.scope()
	if !props.Has(types.Local) {
		scope = scope.FunctionScope()
	}
	if props.Has(types.ReadOnly) {
		if decl.Value == nil {
			return nil, errorf(decl.Pos, "Constant %s must be initialised", decl.Name)
		}
		if existing, ok := scope.symbols[decl.Name]; ok && existing.ReadOnly() && !existing.Local() {
			return nil, errorf(decl.Pos, "Cannot assign to constant variable %s", decl.Name)
		}
	}
	var value ast.Expr = &ast.Nil{}
	if decl.Value != nil {
		op, err := a.buildExpr(decl.Value)
		if err != nil {
			return nil, err
		}
		value = a.define(op, nilSet)
	}
	v := types.NewVariable(decl.Name, props, value.Type())
	scope.Bind(v)
	return &ast.VarDec{Var: v, Value: value}, nil
}

func (a *analyser) buildAssignment(asg *parser.Assignment) (ast.Node, error) {
	target := asg.Target
	if target.Op != parser.OpNone || target.Primary == nil {
		return nil, errorf(asg.Pos, "Invalid assignment target")
	}
	if len(target.Suffixes) == 0 {
		if target.Primary.Ident == "" {
			return nil, errorf(asg.Pos, "Invalid assignment target")
		}
		return a.assignVariable(asg, target.Primary.Ident)
	}
	last := target.Suffixes[len(target.Suffixes)-1]
	if last.Call != nil {
		return nil, errorf(asg.Pos, "Invalid assignment target")
	}
	return a.assignElement(asg)
}

// assignVariable handles plain and compound assignment to an identifier,
// declaring it if it is unbound.
func (a *analyser) assignVariable(asg *parser.Assignment, name string) (ast.Node, error) {
	rhs, err := a.buildExpr(asg.Value)
	if err != nil {
		return nil, err
	}
	binop := asg.Op.Binary()
	expected := nilSet
	if binop != parser.OpNone {
		known := resolvedTypes(rhs)
		if v := a.scope().Lookup(name); v != nil {
			known = []types.Set{v.Types()}
		}
		expected = types.SetOf(types.Dominant(types.Number, known...))
	}
	// The right hand side may itself declare the target, eg. "x = x".
	value := a.define(rhs, expected)
	v := a.scope().Lookup(name)
	if v != nil && v.ReadOnly() && !v.Local() {
		return nil, errorf(asg.Pos, "Cannot assign to constant variable %s", name)
	}
	if binop == parser.OpNone {
		if v == nil {
			v = a.declare(name, value.Type())
			return &ast.VarDec{Var: v, Value: value}, nil
		}
		v.Widen(value.Type())
		return &ast.Assign{Target: &ast.VarRef{Var: v}, Value: value}, nil
	}

	var left ast.Expr
	if v == nil {
		left = ast.DefaultValue(types.Dominant(types.Number, value.Type()))
	} else {
		left = &ast.VarRef{Var: v}
	}
	nary, err := a.compound(asg, left, binop, value)
	if err != nil {
		return nil, err
	}
	if v == nil {
		v = a.declare(name, nary.Type())
		return &ast.VarDec{Var: v, Value: nary}, nil
	}
	v.Widen(nary.Type())
	return &ast.Assign{Target: &ast.VarRef{Var: v}, Value: nary}, nil
}

// declare a new non-local variable, hoisted to the enclosing function body
// or root.
func (a *analyser) declare(name string, set types.Set) *types.Variable {
	v := types.Var(name, set)
	a.scope().FunctionScope().Bind(v)
	return v
}

// assignElement handles assignment to a member or subscript.
func (a *analyser) assignElement(asg *parser.Assignment) (ast.Node, error) {
	suffixes := asg.Target.Suffixes
	base, err := a.buildPrimary(asg.Target.Primary)
	if err != nil {
		return nil, err
	}
	base, err = a.buildSuffixes(base, suffixes[:len(suffixes)-1])
	if err != nil {
		return nil, err
	}
	last := suffixes[len(suffixes)-1]
	var target func() ast.Expr
	if last.Member != "" {
		obj := a.defineWith(base, objectSet, memberDefault(last.Member))
		if err := checkMutable(asg, obj); err != nil {
			return nil, err
		}
		target = func() ast.Expr { return &ast.Member{Target: obj, Name: last.Member} }
	} else {
		list := a.defineWith(base, listSet, &ast.List{})
		if err := checkMutable(asg, list); err != nil {
			return nil, err
		}
		op, err := a.buildExpr(last.Subscript)
		if err != nil {
			return nil, err
		}
		index := a.define(op, numberSet)
		target = func() ast.Expr { return &ast.Subscript{Target: list, Index: index} }
	}

	rhs, err := a.buildExpr(asg.Value)
	if err != nil {
		return nil, err
	}
	binop := asg.Op.Binary()
	if binop == parser.OpNone {
		return &ast.Assign{Target: target(), Value: a.define(rhs, nilSet)}, nil
	}
	value := a.define(rhs, types.SetOf(types.Dominant(types.Number, target().Type())))
	nary, err := a.compound(asg, target(), binop, value)
	if err != nil {
		return nil, err
	}
	return &ast.Assign{Target: target(), Value: nary}, nil
}

// checkMutable rejects writes through a read-only variable that can't hold
// a container.
func checkMutable(asg *parser.Assignment, target ast.Expr) error {
	ref, ok := target.(*ast.VarRef)
	if ok && ref.Var.ReadOnly() && ref.Var.Types().ScalarOnly() {
		return errorf(asg.Pos, "Cannot assign to a member of constant variable %s", ref.Var.Name)
	}
	return nil
}

// memberDefault is the initial value of an object implicitly declared by
// a member access.
func memberDefault(name string) ast.Expr {
	return &ast.Object{Fields: []*ast.Field{{Key: name, Value: &ast.String{Value: name}}}}
}

// compound desugars "target op= value" into "target op value", splicing
// value into the chain if it has the same precedence.
func (a *analyser) compound(asg *parser.Assignment, left ast.Expr, op parser.Op, right ast.Expr) (*ast.NaryExp, error) {
	nary := &ast.NaryExp{Kind: naryKind(op), Operands: []ast.Expr{left}, Operators: []parser.Op{op}}
	if chain, ok := right.(*ast.NaryExp); ok && chain.Kind == nary.Kind {
		nary.Operands = append(nary.Operands, chain.Operands...)
		nary.Operators = append(nary.Operators, chain.Operators...)
	} else {
		nary.Operands = append(nary.Operands, right)
	}
	return nary, checkAmbiguity(asg.Pos, nary)
}

func naryKind(op parser.Op) ast.NaryKind {
	switch op {
	case parser.OpAdd, parser.OpSub:
		return ast.Additive
	case parser.OpMul, parser.OpDiv, parser.OpMod:
		return ast.Multiplicative
	case parser.OpPow:
		return ast.Exponential
	default:
		if op.IsComparison() {
			return ast.Comparison
		}
		panic("no chain for " + op.String())
	}
}
