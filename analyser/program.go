package analyser

import (
	"fmt"
	"io"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/alecthomas/lumen/ast"
	"github.com/alecthomas/lumen/parser"
	"github.com/alecthomas/lumen/types"
)

// DefaultBuiltins are bound read-only in the root scope.
var DefaultBuiltins = []string{"print", "range", "len"}

// Program is the result of a successful analysis.
type Program struct {
	Root     *ast.Block
	Warnings []Warning
}

// Warning is a non-fatal diagnostic.
type Warning struct {
	Pos     lexer.Position
	Message string
}

func (w Warning) String() string {
	if w.Pos.Line == 0 {
		return w.Message
	}
	return fmt.Sprintf("%s: %s", w.Pos, w.Message)
}

// An Option configures Analyse.
type Option func(a *analyser)

// WithLogger logs scope and declaration events at debug level.
func WithLogger(log *zap.Logger) Option {
	return func(a *analyser) { a.log = log }
}

// WithBuiltins replaces the set of builtin function names.
func WithBuiltins(names ...string) Option {
	return func(a *analyser) { a.builtins = names }
}

// Analyse performs semantic analysis on a parse tree, producing a typed AST.
//
// Analysis stops at the first error, which will be a *SemanticError.
func Analyse(program *parser.Program, options ...Option) (*Program, error) {
	a := &analyser{
		log:      zap.NewNop(),
		builtins: DefaultBuiltins,
	}
	for _, option := range options {
		option(a)
	}
	root := &ast.Block{}
	err := a.buildBlock(root, frameRoot, program.Statements, func() error {
		for _, name := range a.builtins {
			a.scope().Bind(types.Const(name, functionSet))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(a.scopes) != 0 {
		return nil, errors.Errorf("%d scopes left open", len(a.scopes))
	}
	if err := ast.Validate(root); err != nil {
		return nil, errors.Wrap(err, "invalid AST")
	}
	return &Program{Root: root, Warnings: a.warnings}, nil
}

// AnalyseString parses and analyses source.
func AnalyseString(filename, source string, options ...Option) (*Program, error) {
	program, err := parser.ParseString(filename, source)
	if err != nil {
		return nil, err
	}
	return Analyse(program, options...)
}

// AnalyseReader parses and analyses source from r.
func AnalyseReader(filename string, r io.Reader, options ...Option) (*Program, error) {
	program, err := parser.Parse(filename, r)
	if err != nil {
		return nil, err
	}
	return Analyse(program, options...)
}
