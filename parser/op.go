package parser

import (
	"fmt"
)

type Op int

const (
	OpNone   Op = iota //
	OpAsgn             // =
	OpAddAsgn          // +=
	OpSubAsgn          // -=
	OpMulAsgn          // *=
	OpDivAsgn          // /=
	OpModAsgn          // %=
	OpPowAsgn          // **=
	OpAdd              // +
	OpSub              // -
	OpMul              // *
	OpDiv              // /
	OpMod              // %
	OpPow              // **
	OpEq               // ==
	OpNe               // !=
	OpLt               // <
	OpGt               // >
	OpLe               // <=
	OpGe               // >=
	OpAnd              // &&
	OpOr               // ||
	OpNot              // !
	OpInc              // ++
	OpDec              // --
)

var opStrings = map[Op]string{
	OpNone:    "",
	OpAsgn:    "=",
	OpAddAsgn: "+=",
	OpSubAsgn: "-=",
	OpMulAsgn: "*=",
	OpDivAsgn: "/=",
	OpModAsgn: "%=",
	OpPowAsgn: "**=",
	OpAdd:     "+",
	OpSub:     "-",
	OpMul:     "*",
	OpDiv:     "/",
	OpMod:     "%",
	OpPow:     "**",
	OpEq:      "==",
	OpNe:      "!=",
	OpLt:      "<",
	OpGt:      ">",
	OpLe:      "<=",
	OpGe:      ">=",
	OpAnd:     "&&",
	OpOr:      "||",
	OpNot:     "!",
	OpInc:     "++",
	OpDec:     "--",
}

var opsByString = func() map[string]Op {
	out := map[string]Op{}
	for op, str := range opStrings {
		if op != OpNone {
			out[str] = op
		}
	}
	return out
}()

func (o Op) String() string {
	if str, ok := opStrings[o]; ok {
		return str
	}
	panic("??")
}

func (o Op) GoString() string { return fmt.Sprintf("parser.Op(%q)", o.String()) }

func (o *Op) Capture(values []string) error {
	op, ok := opsByString[values[0]]
	if !ok {
		return fmt.Errorf("unknown operator %q", values[0])
	}
	*o = op
	return nil
}

// Binary returns the binary operator of a compound assignment operator,
// eg. OpAdd for OpAddAsgn. OpAsgn maps to OpNone.
func (o Op) Binary() Op {
	switch o {
	case OpAddAsgn:
		return OpAdd
	case OpSubAsgn:
		return OpSub
	case OpMulAsgn:
		return OpMul
	case OpDivAsgn:
		return OpDiv
	case OpModAsgn:
		return OpMod
	case OpPowAsgn:
		return OpPow
	}
	return OpNone
}

// IsComparison returns true for the equality and relational operators.
func (o Op) IsComparison() bool {
	switch o {
	case OpEq, OpNe, OpLt, OpGt, OpLe, OpGe:
		return true
	}
	return false
}
