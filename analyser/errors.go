package analyser

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// SemanticError is returned for the first rule violated during analysis.
// No AST is produced when analysis fails.
type SemanticError struct {
	Pos lexer.Position
	Msg string
}

var _ participle.Error = &SemanticError{}

func errorf(pos lexer.Position, format string, args ...interface{}) error {
	return &SemanticError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (e *SemanticError) Error() string {
	if e.Pos.Line == 0 {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// Message without the position.
func (e *SemanticError) Message() string { return e.Msg }

func (e *SemanticError) Position() lexer.Position { return e.Pos }
