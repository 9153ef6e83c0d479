package analyser

import (
	"github.com/alecthomas/participle/v2/lexer"
	"golang.org/x/exp/slices"

	"github.com/alecthomas/lumen/ast"
	"github.com/alecthomas/lumen/types"
)

type frameKind int

const (
	frameRoot frameKind = iota
	frameFunction
	frameBlock
	frameBranch
)

func (k frameKind) String() string {
	switch k {
	case frameRoot:
		return "root"
	case frameFunction:
		return "function"
	case frameBlock:
		return "block"
	case frameBranch:
		return "branch"
	default:
		panic("??")
	}
}

// Scope resolves symbols.
//
// One Scope is pushed for the root, each function body, explicit block,
// ternary branch and match clause.
type Scope struct {
	parent  *Scope
	kind    frameKind
	owner   *ast.Block
	symbols map[string]*types.Variable
	// Implicit declarations discovered in this scope.
	pending []pendingDecl
}

// pendingDecl is an implicit declaration and the position of the
// identifier that caused it.
type pendingDecl struct {
	pos  lexer.Position
	decl *ast.VarDec
}

// flush returns the pending declarations in source order.
func (s *Scope) flush() []ast.Node {
	slices.SortStableFunc(s.pending, func(a, b pendingDecl) bool {
		return a.pos.Offset < b.pos.Offset
	})
	out := make([]ast.Node, 0, len(s.pending))
	for _, pending := range s.pending {
		out = append(out, pending.decl)
	}
	return out
}

func makeScope(parent *Scope, kind frameKind, owner *ast.Block) *Scope {
	return &Scope{
		parent:  parent,
		kind:    kind,
		owner:   owner,
		symbols: map[string]*types.Variable{},
	}
}

func (s *Scope) Parent() *Scope { return s.parent }

// Owner returns the function body (or root) Block this scope belongs to, or
// nil for nested blocks and branches.
func (s *Scope) Owner() *ast.Block { return s.owner }

// FunctionScope returns the nearest scope, starting from s, that belongs
// to a function body or the root. Non-local variables are bound there.
func (s *Scope) FunctionScope() *Scope {
	for scope := s; scope != nil; scope = scope.parent {
		if scope.owner != nil {
			return scope
		}
	}
	panic("scope has no enclosing function or root")
}

// Function returns the Block of the nearest enclosing function body or root.
func (s *Scope) Function() *ast.Block { return s.FunctionScope().owner }

func (s *Scope) Symbols() map[string]*types.Variable { return s.symbols }

// Lookup walks from this scope to the root returning the first binding of
// name, or nil.
func (s *Scope) Lookup(name string) *types.Variable {
	for scope := s; scope != nil; scope = scope.parent {
		if v, ok := scope.symbols[name]; ok {
			return v
		}
	}
	return nil
}

// Bind v in this scope, shadowing any outer binding of the same name.
func (s *Scope) Bind(v *types.Variable) {
	s.symbols[v.Name] = v
}

// Visible returns every name bound in this scope or its parents.
func (s *Scope) Visible() []string {
	seen := map[string]bool{}
	out := []string{}
	for scope := s; scope != nil; scope = scope.parent {
		for name := range scope.symbols {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}
