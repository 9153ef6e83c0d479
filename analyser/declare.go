package analyser

import (
	"fmt"

	"github.com/agnivade/levenshtein"
	"github.com/alecthomas/participle/v2/lexer"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"github.com/alecthomas/lumen/ast"
	"github.com/alecthomas/lumen/types"
)

// Maximum edit distance for "did you mean" warnings.
const typoDistance = 2

// operand is the result of building an expression. Either expr is set, or
// name holds an identifier that is not bound yet and whose type will be
// decided by the position it is used in.
type operand struct {
	expr ast.Expr
	name string
	pos  lexer.Position
}

func resolved(expr ast.Expr) operand { return operand{expr: expr} }

func unresolved(name string, pos lexer.Position) operand {
	return operand{name: name, pos: pos}
}

var (
	nilSet      = types.SetOf(types.Nil)
	boolSet     = types.SetOf(types.Boolean)
	numberSet   = types.SetOf(types.Number)
	stringSet   = types.SetOf(types.String)
	listSet     = types.SetOf(types.List)
	objectSet   = types.SetOf(types.Object)
	functionSet = types.SetOf(types.Function)
)

// define returns the expression for op, implicitly declaring op as a
// variable of the expected types if it is unbound.
func (a *analyser) define(op operand, expected types.Set) ast.Expr {
	return a.defineWith(op, expected, nil)
}

// defineWith is define with an explicit initial value for a new variable.
// A nil dflt uses the default value of the weakest expected type.
func (a *analyser) defineWith(op operand, expected types.Set, dflt ast.Expr) ast.Expr {
	if op.expr != nil {
		return op.expr
	}
	scope := a.scope()
	// An earlier occurrence in the same expression may have declared it.
	if v := scope.Lookup(op.name); v != nil {
		return &ast.VarRef{Var: v}
	}
	a.checkTypo(op)
	v := types.Var(op.name, expected)
	if dflt == nil {
		dflt = ast.DefaultFor(v.Types())
	}
	scope.Bind(v)
	scope.pending = append(scope.pending, pendingDecl{pos: op.pos, decl: &ast.VarDec{Var: v, Value: dflt}})
	a.log.Debug("implicit declaration",
		zap.String("name", op.name),
		zap.Stringer("types", v.Types()),
		zap.Stringer("scope", scope.kind),
		zap.Stringer("pos", op.pos))
	return &ast.VarRef{Var: v}
}

// resolvedTypes returns the type sets of the operands that are already
// resolved.
func resolvedTypes(ops ...operand) []types.Set {
	out := make([]types.Set, 0, len(ops))
	for _, op := range ops {
		if op.expr != nil {
			out = append(out, op.expr.Type())
		}
	}
	return out
}

type candidate struct {
	name     string
	distance int
}

// checkTypo warns when an implicitly declared name is close to a visible
// binding.
func (a *analyser) checkTypo(op operand) {
	if len(op.name) <= typoDistance {
		return
	}
	var candidates []candidate
	for _, name := range a.scope().Visible() {
		if d := levenshtein.ComputeDistance(op.name, name); d > 0 && d <= typoDistance {
			candidates = append(candidates, candidate{name, d})
		}
	}
	if len(candidates) == 0 {
		return
	}
	slices.SortFunc(candidates, func(x, y candidate) bool {
		if x.distance != y.distance {
			return x.distance < y.distance
		}
		return x.name < y.name
	})
	warning := Warning{
		Pos:     op.pos,
		Message: fmt.Sprintf("%q is implicitly declared, did you mean %q?", op.name, candidates[0].name),
	}
	a.log.Warn(warning.Message, zap.Stringer("pos", op.pos))
	a.warnings = append(a.warnings, warning)
}
