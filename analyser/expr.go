package analyser

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/alecthomas/lumen/ast"
	"github.com/alecthomas/lumen/parser"
	"github.com/alecthomas/lumen/types"
)

func (a *analyser) buildExpr(expr *parser.Expr) (operand, error) {
	cond, err := a.buildLogicalOr(expr.Condition)
	if err != nil || expr.Then == nil {
		return cond, err
	}
	ternary := &ast.Ternary{Condition: a.define(cond, boolSet)}
	if ternary.Then, err = a.buildBranch(expr.Then); err != nil {
		return operand{}, err
	}
	if expr.Else != nil {
		if ternary.Else, err = a.buildBranch(expr.Else); err != nil {
			return operand{}, err
		}
	}
	return resolved(ternary), nil
}

// buildBranch builds a ternary branch or match clause body in its own scope.
func (a *analyser) buildBranch(branch *parser.Branch) (*ast.Block, error) {
	stmts := []*parser.Stmt{branch.Stmt}
	if branch.Block != nil {
		stmts = branch.Block.Statements
	}
	block := &ast.Block{}
	return block, a.buildBlock(block, frameBranch, stmts, nil)
}

func (a *analyser) buildLogicalOr(expr *parser.LogicalOr) (operand, error) {
	left, err := a.buildLogicalAnd(expr.Operands[0])
	if err != nil || len(expr.Operands) == 1 {
		return left, err
	}
	out := a.define(left, boolSet)
	for _, next := range expr.Operands[1:] {
		right, err := a.buildLogicalAnd(next)
		if err != nil {
			return operand{}, err
		}
		out = &ast.Logical{Op: parser.OpOr, Left: out, Right: a.define(right, boolSet)}
	}
	return resolved(out), nil
}

func (a *analyser) buildLogicalAnd(expr *parser.LogicalAnd) (operand, error) {
	left, err := a.buildComparison(expr.Operands[0])
	if err != nil || len(expr.Operands) == 1 {
		return left, err
	}
	out := a.define(left, boolSet)
	for _, next := range expr.Operands[1:] {
		right, err := a.buildComparison(next)
		if err != nil {
			return operand{}, err
		}
		out = &ast.Logical{Op: parser.OpAnd, Left: out, Right: a.define(right, boolSet)}
	}
	return resolved(out), nil
}

func (a *analyser) buildComparison(expr *parser.Comparison) (operand, error) {
	head, err := a.buildAdditive(expr.Head)
	if err != nil || len(expr.Tail) == 0 {
		return head, err
	}
	ops := []operand{head}
	operators := []parser.Op{}
	for _, tail := range expr.Tail {
		op, err := a.buildAdditive(tail.Operand)
		if err != nil {
			return operand{}, err
		}
		ops = append(ops, op)
		operators = append(operators, tail.Op)
	}
	return a.chain(expr.Pos, ast.Comparison, ops, operators)
}

func (a *analyser) buildAdditive(expr *parser.Additive) (operand, error) {
	head, err := a.buildMultiplicative(expr.Head)
	if err != nil || len(expr.Tail) == 0 {
		return head, err
	}
	ops := []operand{head}
	operators := []parser.Op{}
	for _, tail := range expr.Tail {
		op, err := a.buildMultiplicative(tail.Operand)
		if err != nil {
			return operand{}, err
		}
		ops = append(ops, op)
		operators = append(operators, tail.Op)
	}
	return a.chain(expr.Pos, ast.Additive, ops, operators)
}

func (a *analyser) buildMultiplicative(expr *parser.Multiplicative) (operand, error) {
	head, err := a.buildExponential(expr.Head)
	if err != nil || len(expr.Tail) == 0 {
		return head, err
	}
	ops := []operand{head}
	operators := []parser.Op{}
	for _, tail := range expr.Tail {
		op, err := a.buildExponential(tail.Operand)
		if err != nil {
			return operand{}, err
		}
		ops = append(ops, op)
		operators = append(operators, tail.Op)
	}
	return a.chain(expr.Pos, ast.Multiplicative, ops, operators)
}

func (a *analyser) buildExponential(expr *parser.Exponential) (operand, error) {
	head, err := a.buildUnary(expr.Head)
	if err != nil || len(expr.Tail) == 0 {
		return head, err
	}
	ops := []operand{head}
	operators := []parser.Op{}
	for _, tail := range expr.Tail {
		op, err := a.buildUnary(tail.Operand)
		if err != nil {
			return operand{}, err
		}
		ops = append(ops, op)
		operators = append(operators, tail.Op)
	}
	return a.chain(expr.Pos, ast.Exponential, ops, operators)
}

// chain builds an n-ary expression. Unbound operands take the dominant type
// of the bound ones, or number.
func (a *analyser) chain(pos lexer.Position, kind ast.NaryKind, ops []operand, operators []parser.Op) (operand, error) {
	expected := types.SetOf(types.Dominant(types.Number, resolvedTypes(ops...)...))
	nary := &ast.NaryExp{Kind: kind, Operators: operators}
	for _, op := range ops {
		nary.Operands = append(nary.Operands, a.define(op, expected))
	}
	if err := checkAmbiguity(pos, nary); err != nil {
		return operand{}, err
	}
	return resolved(nary), nil
}

// checkAmbiguity rejects chains that read differently depending on where
// the increment and decrement operators bind.
func checkAmbiguity(pos lexer.Position, nary *ast.NaryExp) error {
	for i, op := range nary.Operators {
		left, right := nary.Operands[i], nary.Operands[i+1]
		switch op {
		case parser.OpSub:
			if isUpdate(right, parser.OpDec, true) {
				return errorf(pos, "Expected parentheses around pre-decrement operation on the right side of a subtraction")
			}
			if isUpdate(left, parser.OpDec, false) {
				return errorf(pos, "Expected parentheses around post-decrement operation on the left side of a subtraction")
			}
		case parser.OpAdd:
			if isUpdate(right, parser.OpInc, true) {
				return errorf(pos, "Expected parentheses around pre-increment operation on the right side of an addition")
			}
			if isUpdate(left, parser.OpInc, false) {
				return errorf(pos, "Expected parentheses around post-increment operation on the left side of an addition")
			}
		case parser.OpPow:
			if unary, ok := left.(*ast.Unary); ok && unary.Op == parser.OpSub {
				return errorf(pos, "Expected parentheses around negative operation on the left side of an exponential expression")
			}
		}
	}
	return nil
}

func isUpdate(expr ast.Expr, op parser.Op, prefix bool) bool {
	update, ok := expr.(*ast.Update)
	return ok && update.Op == op && update.Prefix == prefix
}

func (a *analyser) buildUnary(expr *parser.Unary) (operand, error) {
	if expr.Postfix != nil {
		return a.buildPostfix(expr.Postfix)
	}
	op, err := a.buildUnary(expr.Operand)
	if err != nil {
		return operand{}, err
	}
	switch expr.Op {
	case parser.OpSub:
		value := a.define(op, numberSet)
		if isUpdate(value, parser.OpDec, true) {
			return operand{}, errorf(expr.Pos, "Expected parentheses around pre-decrement operation on the right side of a negation")
		}
		return resolved(&ast.Unary{Op: parser.OpSub, Operand: value}), nil
	case parser.OpNot:
		return resolved(&ast.Unary{Op: parser.OpNot, Operand: a.define(op, boolSet)}), nil
	case parser.OpInc, parser.OpDec:
		return a.update(expr.Pos, expr.Op, true, op)
	default:
		panic("unexpected unary " + expr.Op.String())
	}
}

// update builds a pre or post increment or decrement of op.
func (a *analyser) update(pos lexer.Position, op parser.Op, prefix bool, target operand) (operand, error) {
	value := a.define(target, numberSet)
	switch value := value.(type) {
	case *ast.VarRef:
		if value.Var.ReadOnly() && !value.Var.Local() {
			return operand{}, errorf(pos, "Cannot assign to constant variable %s", value.Var.Name)
		}
		value.Var.Widen(numberSet)
	case *ast.Member, *ast.Subscript:
	default:
		return operand{}, errorf(pos, "Invalid operand for %s", op)
	}
	return resolved(&ast.Update{Op: op, Prefix: prefix, Target: value}), nil
}

func (a *analyser) buildPostfix(expr *parser.Postfix) (operand, error) {
	op, err := a.buildPrimary(expr.Primary)
	if err != nil {
		return operand{}, err
	}
	if op, err = a.buildSuffixes(op, expr.Suffixes); err != nil {
		return operand{}, err
	}
	if expr.Op == parser.OpNone {
		return op, nil
	}
	return a.update(expr.Pos, expr.Op, false, op)
}

func (a *analyser) buildSuffixes(op operand, suffixes []*parser.Suffix) (operand, error) {
	for _, suffix := range suffixes {
		switch {
		case suffix.Member != "":
			target := a.defineWith(op, objectSet, memberDefault(suffix.Member))
			op = resolved(&ast.Member{Target: target, Name: suffix.Member})

		case suffix.Subscript != nil:
			target := a.defineWith(op, listSet, &ast.List{})
			index, err := a.buildExpr(suffix.Subscript)
			if err != nil {
				return operand{}, err
			}
			op = resolved(&ast.Subscript{Target: target, Index: a.define(index, numberSet)})

		case suffix.Call != nil:
			call := &ast.Call{Target: a.define(op, functionSet)}
			for _, arg := range suffix.Call.Arguments {
				value, err := a.buildExpr(arg.Value)
				if err != nil {
					return operand{}, err
				}
				switch {
				case arg.Spread:
					call.Args = append(call.Args, &ast.Spread{Value: a.define(value, listSet)})
				case arg.Name != "":
					call.Args = append(call.Args, &ast.KeywordArg{Name: arg.Name, Value: a.define(value, nilSet)})
				default:
					call.Args = append(call.Args, a.define(value, nilSet))
				}
			}
			op = resolved(call)
		}
	}
	return op, nil
}

func (a *analyser) buildPrimary(expr *parser.Primary) (operand, error) {
	switch {
	case expr.Number != nil:
		return resolved(&ast.Number{Value: *expr.Number}), nil

	case expr.Raw != nil:
		return resolved(&ast.String{Value: string(*expr.Raw)}), nil

	case expr.String != nil:
		return a.buildString(expr.String)

	case expr.Bool != nil:
		return resolved(&ast.Boolean{Value: bool(*expr.Bool)}), nil

	case expr.Nil:
		return resolved(&ast.Nil{}), nil

	case expr.List != nil:
		list := &ast.List{}
		for _, element := range expr.List.Elements {
			value, err := a.buildExpr(element.Value)
			if err != nil {
				return operand{}, err
			}
			if element.Spread {
				list.Elements = append(list.Elements, &ast.Spread{Value: a.define(value, listSet)})
			} else {
				list.Elements = append(list.Elements, a.define(value, nilSet))
			}
		}
		return resolved(list), nil

	case expr.Object != nil:
		object := &ast.Object{}
		for _, entry := range expr.Object.Entries {
			value, err := a.buildExpr(entry.Value)
			if err != nil {
				return operand{}, err
			}
			object.Fields = append(object.Fields, &ast.Field{Key: entry.Name(), Value: a.define(value, nilSet)})
		}
		return resolved(object), nil

	case expr.Function != nil:
		return a.buildFunction(expr.Function)

	case expr.Match != nil:
		return a.buildMatch(expr.Match)

	case expr.Group != nil:
		inner, err := a.buildExpr(expr.Group)
		if err != nil || inner.expr == nil {
			return inner, err
		}
		return resolved(&ast.NaryExp{Kind: ast.Group, Operands: []ast.Expr{inner.expr}}), nil

	case expr.Ident != "":
		if v := a.scope().Lookup(expr.Ident); v != nil {
			return resolved(&ast.VarRef{Var: v}), nil
		}
		return unresolved(expr.Ident, expr.Pos), nil

	default:
		panic("??")
	}
}

// buildString builds a string literal, collapsing it to a plain string if
// it has no interpolations.
func (a *analyser) buildString(str *parser.String) (operand, error) {
	interp := &ast.Interpolation{}
	text := &strings.Builder{}
	flush := func() {
		if text.Len() > 0 {
			interp.Parts = append(interp.Parts, &ast.String{Value: text.String()})
			text.Reset()
		}
	}
	for _, fragment := range str.Fragments {
		if fragment.Text != nil {
			text.WriteString(string(*fragment.Text))
			continue
		}
		flush()
		value, err := a.buildExpr(fragment.Expr)
		if err != nil {
			return operand{}, err
		}
		interp.Parts = append(interp.Parts, a.define(value, stringSet))
	}
	if len(interp.Parts) == 0 {
		return resolved(&ast.String{Value: text.String()}), nil
	}
	flush()
	return resolved(interp), nil
}

func (a *analyser) buildFunction(fn *parser.FuncLiteral) (operand, error) {
	out := &ast.Function{Body: &ast.Block{}}
	err := a.buildBlock(out.Body, frameFunction, fn.Body.Statements, func() error {
		seen := map[string]bool{}
		for i, param := range fn.Parameters {
			if seen[param.Name] {
				return errorf(param.Pos, "Duplicate parameter %s", param.Name)
			}
			seen[param.Name] = true
			set := types.SetOf(types.Any)
			p := &ast.Param{Rest: param.Rest}
			switch {
			case param.Rest && i != len(fn.Parameters)-1:
				return errorf(param.Pos, "Rest parameter %s must be last", param.Name)
			case param.Rest && param.Default != nil:
				return errorf(param.Pos, "Rest parameter %s can't have a default value", param.Name)
			case param.Rest:
				set = listSet
			case param.Default != nil:
				value, err := a.buildExpr(param.Default)
				if err != nil {
					return err
				}
				p.Default = a.define(value, nilSet)
				set = p.Default.Type()
			}
			p.Var = types.NewVariable(param.Name, types.Local, set)
			a.scope().Bind(p.Var)
			out.Params = append(out.Params, p)
		}
		return nil
	})
	if err != nil {
		return operand{}, err
	}
	return resolved(out), nil
}

func (a *analyser) buildMatch(match *parser.Match) (operand, error) {
	subject, err := a.buildExpr(match.Subject)
	if err != nil {
		return operand{}, err
	}
	// Case values are built first so an unbound subject can take their type.
	values := make([][]operand, len(match.Clauses))
	var known []types.Set
	for i, clause := range match.Clauses {
		if clause.Default && i != len(match.Clauses)-1 {
			return operand{}, errorf(clause.Pos, "else must be the last clause of a match")
		}
		for _, value := range clause.Values {
			op, err := a.buildExpr(value)
			if err != nil {
				return operand{}, err
			}
			values[i] = append(values[i], op)
			known = append(known, resolvedTypes(op)...)
		}
	}
	out := &ast.Match{Subject: a.define(subject, types.SetOf(types.Dominant(types.Nil, known...)))}
	for i, clause := range match.Clauses {
		c := &ast.MatchClause{}
		for _, op := range values[i] {
			c.Values = append(c.Values, a.define(op, out.Subject.Type()))
		}
		if c.Body, err = a.buildBranch(clause.Body); err != nil {
			return operand{}, err
		}
		out.Clauses = append(out.Clauses, c)
	}
	return resolved(out), nil
}
