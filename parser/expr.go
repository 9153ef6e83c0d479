package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Expr node in the parse tree: a ternary, or a plain logical expression if
// there is no "?".
type Expr struct {
	Pos lexer.Position

	Condition *LogicalOr `@@`
	Then      *Branch    `( "?" @@`
	Else      *Branch    `  ( ":" @@ )? )?`
}

type LogicalOr struct {
	Pos lexer.Position

	Operands []*LogicalAnd `@@ ( "||" @@ )*`
}

type LogicalAnd struct {
	Pos lexer.Position

	Operands []*Comparison `@@ ( "&&" @@ )*`
}

// Comparison chain, eg. a < b == c.
type Comparison struct {
	Pos lexer.Position

	Head *Additive      `@@`
	Tail []*ComparisonOp `@@*`
}

type ComparisonOp struct {
	Pos lexer.Position

	Op      Op        `@( "==" | "!=" | "<=" | ">=" | "<" | ">" )`
	Operand *Additive `@@`
}

type Additive struct {
	Pos lexer.Position

	Head *Multiplicative `@@`
	Tail []*AdditiveOp    `@@*`
}

type AdditiveOp struct {
	Pos lexer.Position

	Op      Op              `@( "+" | "-" )`
	Operand *Multiplicative `@@`
}

type Multiplicative struct {
	Pos lexer.Position

	Head *Exponential        `@@`
	Tail []*MultiplicativeOp `@@*`
}

type MultiplicativeOp struct {
	Pos lexer.Position

	Op      Op           `@( "*" | "/" | "%" )`
	Operand *Exponential `@@`
}

type Exponential struct {
	Pos lexer.Position

	Head *Unary           `@@`
	Tail []*ExponentialOp `@@*`
}

type ExponentialOp struct {
	Pos lexer.Position

	Op      Op     `@"**"`
	Operand *Unary `@@`
}

// Unary is a prefix operation or a postfix expression.
type Unary struct {
	Pos lexer.Position

	Op      Op       `(  @( "-" | "!" | "++" | "--" )`
	Operand *Unary   `   @@`
	Postfix *Postfix `| @@ )`
}

// Postfix is a primary followed by member accesses, subscripts and calls,
// and an optional post-increment or post-decrement.
type Postfix struct {
	Pos lexer.Position

	Primary  *Primary  `@@`
	Suffixes []*Suffix `@@*`
	Op       Op        `@( "++" | "--" )?`
}

type Suffix struct {
	Pos lexer.Position

	Member    string `(  "." @Ident`
	Subscript *Expr  ` | "[" @@ "]"`
	Call      *Call  ` | @@ )`
}

type Call struct {
	Pos lexer.Position

	Arguments []*Argument `"(" ( @@ ( "," @@ )* ","? )? ")"`
}

// Argument to a call: positional, "name: value" keyword or "...spread".
type Argument struct {
	Pos lexer.Position

	Spread bool   `(  @"..."`
	Name   string ` | @Ident ":" )?`
	Value  *Expr  `@@`
}

type Primary struct {
	Pos lexer.Position

	Number   *float64       `  @Number`
	Raw      *RawString     `| @RawString`
	String   *String        `| @@`
	Bool     *Boolean       `| @( "true" | "false" )`
	Nil      bool           `| @"nil"`
	List     *ListLiteral   `| @@`
	Object   *ObjectLiteral `| @@`
	Function *FuncLiteral   `| @@`
	Match    *Match         `| @@`
	Group    *Expr          `| "(" @@ ")"`
	Ident    string         `| @Ident`
}

// Boolean literal.
type Boolean bool

func (b *Boolean) Capture(values []string) error {
	*b = values[0] == "true"
	return nil
}

// RawString is a single-quoted string without interpolation.
type RawString string

func (s *RawString) Capture(values []string) error {
	raw := values[0]
	*s = RawString(unescape(raw[1 : len(raw)-1]))
	return nil
}

// String is a double-quoted string with "${expr}" interpolation.
type String struct {
	Pos lexer.Position

	Fragments []*Fragment `StringStart @@* StringEnd`
}

type Fragment struct {
	Pos lexer.Position

	Text *Text `  @( Chars | Escaped )`
	Expr *Expr `| InterpStart @@ "}"`
}

// Text within a string.
type Text string

func (t *Text) Capture(values []string) error {
	*t = Text(unescape(strings.Join(values, "")))
	return nil
}

type ListLiteral struct {
	Pos lexer.Position

	Elements []*Element `"[" ( @@ ( "," @@ )* ","? )? "]"`
}

type Element struct {
	Pos lexer.Position

	Spread bool  `@"..."?`
	Value  *Expr `@@`
}

// ObjectLiteral in the form {key: value, 'quoted key': value}.
type ObjectLiteral struct {
	Pos lexer.Position

	Entries []*ObjectEntry `"{" ( @@ ( ( "," | ";" ) @@ )* ( "," | ";" )? )? "}"`
}

type ObjectEntry struct {
	Pos lexer.Position

	Key    string     `(  @Ident`
	Quoted *RawString ` | @RawString ) ":"`
	Value  *Expr      `@@`
}

// Name of the entry's key.
func (e *ObjectEntry) Name() string {
	if e.Quoted != nil {
		return string(*e.Quoted)
	}
	return e.Key
}

// FuncLiteral in the form fn(a, b = 1, ...rest) { ... }
type FuncLiteral struct {
	Pos lexer.Position

	Parameters []*Parameter `"fn" "(" ( @@ ( "," @@ )* ","? )? ")"`
	Body       *Block       `@@`
}

type Parameter struct {
	Pos lexer.Position

	Rest    bool   `@"..."?`
	Name    string `@Ident`
	Default *Expr  `( "=" @@ )?`
}

// Match in the form match subject { a, b => ...; else => ... }
type Match struct {
	Pos lexer.Position

	Subject *Expr          `"match" @@ "{"`
	Clauses []*MatchClause `( @@ | ";" )* "}"`
}

type MatchClause struct {
	Pos lexer.Position

	Default bool    `(  @"else"`
	Values  []*Expr ` | @@ ( "," @@ )* ) "=>"`
	Body    *Branch `@@`
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	w := &strings.Builder{}
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i == len(s)-1 {
			w.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			w.WriteByte('\n')
		case 't':
			w.WriteByte('\t')
		case 'r':
			w.WriteByte('\r')
		case '0':
			w.WriteByte(0)
		default:
			w.WriteByte(s[i])
		}
	}
	return w.String()
}
