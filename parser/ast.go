// Package parser parses source into a parse tree.
package parser

import (
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	lex = lexer.MustStateful(lexer.Rules{
		"Root": {
			{"Comment", `//[^\n]*|/\*(?s:.*?)\*/`, nil},
			{"Whitespace", `[\r\t ]+`, nil},
			{"Backslash", `\\`, nil},
			{"Newline", `\n`, nil},
			{"Keyword", `\b(?:return|break|const|local|match|fn|else|true|false|nil)\b`, nil},
			{"Ident", `[[:alpha:]_]\w*`, nil},
			{"Number", `\d+(?:\.\d+)?(?:[eE][-+]?\d+)?`, nil},
			{"RawString", `'(?:\\.|[^'\\])*'`, nil},
			{"StringStart", `"`, lexer.Push("String")},
			{"Operator", `\*\*=|\.\.\.|\*\*|\+\+|--|\+=|-=|\*=|/=|%=|==|!=|<=|>=|&&|\|\||=>|[-+*/%<>=!?]`, nil},
			{"Punct", `[][(){}:;.,]`, nil},
		},
		"String": {
			{"Escaped", `\\.`, nil},
			{"StringEnd", `"`, lexer.Pop()},
			{"InterpStart", `\$\{`, lexer.Push("Interp")},
			{"Chars", `\$|[^$"\\]+`, nil},
		},
		// Braces nest inside an interpolation, the unmatched "}" closes it.
		"Interp": {
			{"InterpOpen", `{`, lexer.Push("Interp")},
			{"InterpEnd", `}`, lexer.Pop()},
			lexer.Include("Root"),
		},
	})

	commentToken    = lex.Symbols()["Comment"]
	whitespaceToken = lex.Symbols()["Whitespace"]
	backslashToken  = lex.Symbols()["Backslash"]
	newlineToken    = lex.Symbols()["Newline"]
	identToken      = lex.Symbols()["Ident"]
	numberToken     = lex.Symbols()["Number"]
	rawStringToken  = lex.Symbols()["RawString"]
	stringEndToken  = lex.Symbols()["StringEnd"]
	punctToken      = lex.Symbols()["Punct"]

	parser = participle.MustBuild[Program](
		participle.Lexer(&fixupLexerDefinition{}),
		participle.UseLookahead(1024),
	)
)

// Program is the root of the parse tree, a sequence of statements.
type Program struct {
	Pos lexer.Position

	Statements []*Stmt `( @@ | ";" )*`
}

type Stmt struct {
	Pos lexer.Position

	Return     *ReturnStmt `  @@`
	Break      bool        `| @"break"`
	Decl       *Decl       `| @@`
	Block      *Block      `| @@`
	Assignment *Assignment `| @@`

	// Must be last alternative.
	Expression *Expr `| @@`
}

type ReturnStmt struct {
	Pos lexer.Position

	Value *Expr `"return" @@?`
}

// Decl is a "const" or "local" declaration.
type Decl struct {
	Pos lexer.Position

	Modifiers Modifiers `@( "const" | "local" )+`
	Name      string    `@Ident`
	Value     *Expr     `( "=" @@ )?`
}

type Block struct {
	Pos lexer.Position

	Statements []*Stmt `"{" ( @@ | ";" )* "}"`
}

// Assignment or compound assignment to an identifier, member or subscript.
type Assignment struct {
	Pos lexer.Position

	Target *Postfix `@@`
	Op     Op       `@( "=" | "+=" | "-=" | "*=" | "/=" | "%=" | "**=" )`
	Value  *Expr    `@@`
}

// Branch of a ternary or match clause.
type Branch struct {
	Pos lexer.Position

	Block *Block `  @@`
	Stmt  *Stmt  `| @@`
}

func Parse(filename string, r io.Reader) (*Program, error) {
	return parser.Parse(filename, r)
}

func ParseString(filename, source string) (*Program, error) {
	return parser.ParseString(filename, source)
}
