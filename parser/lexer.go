package parser

import (
	"io"

	"github.com/alecthomas/participle/v2/lexer"
)

// A Lexer that inserts semi-colons and collapses \-separated lines.
type fixupLexerDefinition struct{}

func (l *fixupLexerDefinition) Lex(filename string, r io.Reader) (lexer.Lexer, error) { // nolint: golint
	ll, err := lex.Lex(filename, r)
	if err != nil {
		return nil, err
	}
	return &fixupLexer{lexer: ll}, nil
}

func (l *fixupLexerDefinition) Symbols() map[string]lexer.TokenType { // nolint: golint
	return lex.Symbols()
}

type fixupLexer struct {
	lexer    lexer.Lexer
	last     lexer.Token
	buffered *lexer.Token
}

func (l *fixupLexer) Next() (lexer.Token, error) {
	if l.buffered != nil {
		token := *l.buffered
		l.buffered = nil
		l.last = token
		return token, nil
	}
	for {
		token, err := l.next()
		if err != nil {
			return token, err
		}
		if token.Type != newlineToken {
			l.last = token
			return token, nil
		}

		// Do we need to insert a semi-colon?
		if l.last.Type == backslashToken || !l.terminates() {
			l.last = token
			continue
		}
		// Not before a closing bracket or the rest of a ternary.
		ahead, err := l.skipNewlines()
		if err != nil {
			return ahead, err
		}
		switch ahead.Value {
		case ")", "]", "}", "?", ":":
			l.last = ahead
			return ahead, nil
		}
		l.buffered = &ahead
		token.Value = ";"
		token.Type = punctToken
		l.last = token
		return token, nil
	}
}

// Next token, dropping whitespace and comments.
func (l *fixupLexer) next() (lexer.Token, error) {
	for {
		token, err := l.lexer.Next()
		if err != nil {
			return token, err
		}
		switch token.Type {
		case commentToken, whitespaceToken:
			continue

		case backslashToken:
			l.last = token
			continue
		}
		return token, nil
	}
}

func (l *fixupLexer) skipNewlines() (lexer.Token, error) {
	for {
		token, err := l.next()
		if err != nil || token.Type != newlineToken {
			return token, err
		}
	}
}

// Does the last token end a statement if followed by a newline?
func (l *fixupLexer) terminates() bool {
	if l.last.Value == "" {
		return false
	}
	switch l.last.Value {
	case "break", "return", "true", "false", "nil", "++", "--", ")", "]", "}":
		return true
	}
	switch l.last.Type {
	case identToken, numberToken, rawStringToken, stringEndToken:
		return true
	}
	return false
}
