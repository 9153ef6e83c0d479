package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLexerDefinition(t *testing.T) {
	require.NotNil(t, lex)
	require.Equal(t, lex.Symbols(), parser.Lexer().Symbols())
	require.NotEqual(t, punctToken, newlineToken)
	program, err := ParseString("", "x")
	require.NoError(t, err)
	require.Len(t, program.Statements, 1)
}

func TestLexer(t *testing.T) {
	tokens, err := parser.Lex("", strings.NewReader(`
	// Comment
	x = 1 /* Multi-line
	comment */
	y += 2 + \
		3
	f(a,
		b)
	s = "a${x}b"
	z = c
		? 1
		: 2
	`))
	require.NoError(t, err)
	actual := []string{}
	for _, token := range tokens {
		actual = append(actual, token.Value)
	}
	expected := []string{
		"x", "=", "1", ";",
		"y", "+=", "2", "+", "3", ";",
		"f", "(", "a", ",", "b", ")", ";",
		"s", "=", `"`, "a", "${", "x", "}", "b", `"`, ";",
		"z", "=", "c", "?", "1", ":", "2", ";",
		"",
	}
	require.Equal(t, expected, actual)
}

func TestLexerNoSemicolonBeforeClosingBracket(t *testing.T) {
	tokens, err := parser.Lex("", strings.NewReader("x = [\n1,\n2\n]\n"))
	require.NoError(t, err)
	actual := []string{}
	for _, token := range tokens {
		actual = append(actual, token.Value)
	}
	require.Equal(t, []string{"x", "=", "[", "1", ",", "2", "]", ";", ""}, actual)
}

func TestLexerNestedInterpolation(t *testing.T) {
	tokens, err := parser.Lex("", strings.NewReader(`"${ {a: 1}.a }"`))
	require.NoError(t, err)
	actual := []string{}
	for _, token := range tokens {
		actual = append(actual, token.Value)
	}
	require.Equal(t, []string{`"`, "${", "{", "a", ":", "1", "}", ".", "a", "}", `"`, ""}, actual)
}
