package analyser

import (
	"testing"

	"github.com/alecthomas/repr"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/alecthomas/lumen/ast"
	"github.com/alecthomas/lumen/types"
)

func TestAnalyser(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected string
		err      string
	}{
		{name: "Assign",
			source:   `x = 1`,
			expected: `(block (var x 1))`},
		{name: "Reassign",
			source:   `x = 1; x = 'a'`,
			expected: `(block (var x 1) (= x "a"))`},
		{name: "ImplicitPostIncrement",
			source:   `x++`,
			expected: `(block (var x 0) (return (post++ x)))`},
		{name: "FlattenedChain",
			source:   `1 + 2 + 3`,
			expected: `(block (return (nary 1 + 2 + 3)))`},
		{name: "TernaryAssign",
			source:   `x = true ? 1 : 'str'`,
			expected: `(block (var x (? true (block (return 1)) (block (return "str")))))`},
		{name: "ImplicitOperand",
			source:   `y = x + 1`,
			expected: `(block (var x 0) (var y (nary x + 1)))`},
		{name: "ImplicitOperandsInOrder",
			source:   `y = a + b`,
			expected: `(block (var a 0) (var b 0) (var y (nary a + b)))`},
		{name: "ImplicitStringOperand",
			source:   `s = 'a' + x`,
			expected: `(block (var x "") (var s (nary "a" + x)))`},
		{name: "ImplicitComparisonOperand",
			source:   `x == 'a'`,
			expected: `(block (var x "") (return (nary x == "a")))`},
		{name: "ImplicitLogicalOperands",
			source:   `a && b`,
			expected: `(block (var a false) (var b false) (return (&& a b)))`},
		{name: "ImplicitCondition",
			source:   `c ? 1 : 2`,
			expected: `(block (var c false) (? c (block (return 1)) (block (return 2))))`},
		{name: "SameNameDeclaredOnce",
			source:   `x * x`,
			expected: `(block (var x 0) (return (nary x * x)))`},
		{name: "RightSideDeclaresTarget",
			source:   `x = x + 1`,
			expected: `(block (var x 0) (= x (nary x + 1)))`},
		{name: "CompoundNew",
			source:   `x += 1`,
			expected: `(block (var x (nary 0 + 1)))`},
		{name: "CompoundNewString",
			source:   `x += 'a'`,
			expected: `(block (var x (nary "" + "a")))`},
		{name: "CompoundSplicesSameKind",
			source:   `x = 1; x += 2 + 3`,
			expected: `(block (var x 1) (= x (nary x + 2 + 3)))`},
		{name: "CompoundNestsOtherKind",
			source:   `x = 1; x *= 2 + 3`,
			expected: `(block (var x 1) (= x (nary x * (nary 2 + 3))))`},
		{name: "CompoundMember",
			source:   `o = {}; o.n += 1`,
			expected: `(block (var o (object)) (= (. o n) (nary (. o n) + 1)))`},
		{name: "MemberAssignDeclaresObject",
			source:   `o.a = 1`,
			expected: `(block (var o (object (a "a"))) (= (. o a) 1))`},
		{name: "SubscriptAssignDeclaresList",
			source:   `l[0] = 1`,
			expected: `(block (var l (list)) (= (index l 0) 1))`},
		{name: "ConstantObjectMember",
			source:   `const o = {}; o.a = 2`,
			expected: `(block (const o (object)) (= (. o a) 2))`},
		{name: "CallDeclaresArguments",
			source:   `print(x)`,
			expected: `(block (var x nil) (call print x))`},
		{name: "CallDeclaresFunction",
			source:   `f(1)`,
			expected: `(block (var f (fn () (block))) (call f 1))`},
		{name: "CallArguments",
			source:   `print(1, k: 2, ...l)`,
			expected: `(block (var l (list)) (call print 1 (kw k 2) (... l)))`},
		{name: "FinalCallNotReturned",
			source:   `print(1); print(2)`,
			expected: `(block (call print 1) (call print 2))`},
		{name: "FinalUpdateNotReturned",
			source:   `x = 1; x++`,
			expected: `(block (var x 1) (post++ x))`},
		{name: "FinalTernaryNotReturned",
			source:   `x = true; x ? 1 : 2`,
			expected: `(block (var x true) (? x (block (return 1)) (block (return 2))))`},
		{name: "FinalExpressionReturned",
			source:   `x = 1; x + 1`,
			expected: `(block (var x 1) (return (nary x + 1)))`},
		{name: "BranchScope",
			source:   `true ? z : 1`,
			expected: `(block (? true (block (var z nil) (return z)) (block (return 1))))`},
		{name: "BranchBlock",
			source:   `true ? { y = 1 } : 2`,
			expected: `(block (? true (block (var y 1)) (block (return 2))))`},
		{name: "Function",
			source:   `f = fn(a, b = 1, ...c) { a }`,
			expected: `(block (var f (fn (a (b 1) (... c)) (block (return a)))))`},
		{name: "FunctionScope",
			source:   `fn() { y }`,
			expected: `(block (return (fn () (block (var y nil) (return y)))))`},
		{name: "Match",
			source:   `match x { 1, 2 => 'a'; else => 'b' }`,
			expected: `(block (var x 0) (return (match x (case (1 2) (block (return "a"))) (else (block (return "b"))))))`},
		{name: "Interpolation",
			source:   `"a${n}b"`,
			expected: `(block (var n "") (return (interp "a" n "b")))`},
		{name: "PlainString",
			source:   `"abc"`,
			expected: `(block (return "abc"))`},
		{name: "LocalShadows",
			source:   `x = 1; { local x = 'a' }; x`,
			expected: `(block (var x 1) (block (local x "a")) (return x))`},
		{name: "LocalWithoutValue",
			source:   `local x`,
			expected: `(block (local x nil))`},
		{name: "ListLiteral",
			source:   `[1, ...rest]`,
			expected: `(block (var rest (list)) (return (list 1 (... rest))))`},
		{name: "ParenthesisedNegation",
			source:   `(-2) ** 2`,
			expected: `(block (return (nary (group (neg 2)) ** 2)))`},
		{name: "ParenthesisedDecrement",
			source:   `x = 1; 1 - (--x)`,
			expected: `(block (var x 1) (return (nary 1 - (group (pre-- x)))))`},
		{name: "BreakAtRoot",
			source:   `break`,
			expected: `(block (break))`},
		{name: "ReturnInFunction",
			source:   `fn() { return 1 }`,
			expected: `(block (return (fn () (block (return 1)))))`},

		{name: "SelfAssign",
			source:   `x = x`,
			expected: `(block (var x nil) (= x x))`},
		{name: "SelfCompound",
			source:   `x += x`,
			expected: `(block (var x 0) (= x (nary x + x)))`},
		{name: "SelfAssignGrouped",
			source:   `x = (x)`,
			expected: `(block (var x nil) (= x x))`},
		{name: "DeclarationsInSourceOrder",
			source:   `a < b + c`,
			expected: `(block (var a 0) (var b 0) (var c 0) (return (nary a < (nary b + c))))`},
		{name: "NestedDeclarationsInSourceOrder",
			source:   `y = a + f(b) + c`,
			expected: `(block (var a 0) (var f (fn () (block))) (var b nil) (var c 0) (var y (nary a + (call f b) + c)))`},
		{name: "AssignmentHoistedFromBlock",
			source:   `x = 1; {y = 2}; y`,
			expected: `(block (var x 1) (block (var y 2)) (return y))`},
		{name: "AssignmentHoistedFromBranch",
			source:   `fn() { true ? { y = 1 } : 0; y }`,
			expected: `(block (return (fn () (block (? true (block (var y 1)) (block (return 0))) (return y)))))`},
		{name: "LocalNotHoisted",
			source:   `{ local y = 2 }; y`,
			expected: `(block (var y nil) (block (local y 2)) (return y))`},
		{name: "SoleMatchReturned",
			source:   `match 1 { else => 2 }`,
			expected: `(block (return (match 1 (else (block (return 2))))))`},

		{name: "AssignToConstant",
			source: `const x = 1; x = 2`,
			err:    `Cannot assign to constant variable x`},
		{name: "RedeclareConstant",
			source: `const x = 1; const x = 2`,
			err:    `Cannot assign to constant variable x`},
		{name: "IncrementConstant",
			source: `const c = 1; c++`,
			err:    `Cannot assign to constant variable c`},
		{name: "AssignToBuiltin",
			source: `print = 1`,
			err:    `Cannot assign to constant variable print`},
		{name: "ConstantMember",
			source: `const c = 1; c.a = 2`,
			err:    `Cannot assign to a member of constant variable c`},
		{name: "UninitialisedConstant",
			source: `const x`,
			err:    `Constant x must be initialised`},
		{name: "PreDecrementSubtraction",
			source: `x = 1 - --y`,
			err:    `Expected parentheses around pre-decrement operation on the right side of a subtraction`},
		{name: "PostDecrementSubtraction",
			source: `x = 1; x-- - 1`,
			err:    `Expected parentheses around post-decrement operation on the left side of a subtraction`},
		{name: "PostIncrementAddition",
			source: `x = 1; x++ + 1`,
			err:    `Expected parentheses around post-increment operation on the left side of an addition`},
		{name: "PreIncrementAddition",
			source: `x = 1; 1 + ++x`,
			err:    `Expected parentheses around pre-increment operation on the right side of an addition`},
		{name: "NegativeExponent",
			source: `-2 ** 2`,
			err:    `Expected parentheses around negative operation on the left side of an exponential expression`},
		{name: "NegatedPreDecrement",
			source: `x = 1; - --x`,
			err:    `Expected parentheses around pre-decrement operation on the right side of a negation`},
		{name: "ReturnInBlock",
			source: `{ return 1 }`,
			err:    `Unexpected return outside of a function body`},
		{name: "BreakInBranch",
			source: `true ? break : 1`,
			err:    `Unexpected break outside of a function body`},
		{name: "AssignToCall",
			source: `f() = 1`,
			err:    `Invalid assignment target`},
		{name: "DuplicateParameter",
			source: `fn(a, a) {}`,
			err:    `Duplicate parameter a`},
		{name: "RestNotLast",
			source: `fn(...a, b) {}`,
			err:    `Rest parameter a must be last`},
		{name: "ElseNotLast",
			source: `match 1 { else => 1; 2 => 2 }`,
			err:    `else must be the last clause of a match`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			program, err := AnalyseString("test.lm", test.source)
			if test.err != "" {
				var serr *SemanticError
				require.True(t, errors.As(err, &serr), "expected a semantic error but got %v", err)
				require.Equal(t, test.err, serr.Message())
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.expected, ast.Format(program.Root), repr.String(program.Root, repr.Indent("  ")))
		})
	}
}

func TestErrorPosition(t *testing.T) {
	_, err := AnalyseString("test.lm", `const x = 1; x = 2`)
	require.EqualError(t, err, "test.lm:1:14: Cannot assign to constant variable x")
}

func TestVariableTypes(t *testing.T) {
	program, err := AnalyseString("test.lm", `x = 1; x = 'a'; y = fn(a, b = 1, ...c) { a }`)
	require.NoError(t, err)
	x := program.Root.Statements[0].(*ast.VarDec).Var
	require.Equal(t, types.SetOf(types.Number, types.String), x.Types())

	fn := program.Root.Statements[2].(*ast.VarDec).Value.(*ast.Function)
	require.Len(t, fn.Params, 3)
	require.Equal(t, types.SetOf(types.Any), fn.Params[0].Var.Types())
	require.True(t, fn.Params[0].Var.Local())
	require.Equal(t, types.SetOf(types.Number), fn.Params[1].Var.Types())
	require.Equal(t, types.SetOf(types.List), fn.Params[2].Var.Types())
	require.Equal(t, types.SetOf(types.Any), fn.Returns())
}

func TestShadowingLeavesOuterTypes(t *testing.T) {
	program, err := AnalyseString("test.lm", `x = 1; { local x = 'a' }; x`)
	require.NoError(t, err)
	x := program.Root.Statements[0].(*ast.VarDec).Var
	require.Equal(t, types.SetOf(types.Number), x.Types())
	require.Equal(t, types.SetOf(types.Number), program.Root.Type())
}

func TestWidenThroughNestedBlock(t *testing.T) {
	program, err := AnalyseString("test.lm", `x = 1; { x = 'a' }; x`)
	require.NoError(t, err)
	require.Equal(t, `(block (var x 1) (block (= x "a")) (return x))`, ast.Format(program.Root))
	require.Equal(t, types.SetOf(types.Number, types.String), program.Root.Type())
}

func TestWarnings(t *testing.T) {
	program, err := AnalyseString("test.lm", `count = 1; coutn + 1`)
	require.NoError(t, err)
	require.Len(t, program.Warnings, 1)
	require.Equal(t, `"coutn" is implicitly declared, did you mean "count"?`, program.Warnings[0].Message)
	require.Equal(t, 1, program.Warnings[0].Pos.Line)

	program, err = AnalyseString("test.lm", `total = 1; y = 2`)
	require.NoError(t, err)
	require.Empty(t, program.Warnings)
}

func TestWithBuiltins(t *testing.T) {
	program, err := AnalyseString("test.lm", `print(1)`, WithBuiltins("emit"))
	require.NoError(t, err)
	require.Equal(t, `(block (var print (fn () (block))) (call print 1))`, ast.Format(program.Root))

	_, err = AnalyseString("test.lm", `emit = 1`, WithBuiltins("emit"))
	require.EqualError(t, err, "test.lm:1:1: Cannot assign to constant variable emit")
}

func TestWithLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	_, err := AnalyseString("test.lm", `y = a + b`, WithLogger(zap.New(core)))
	require.NoError(t, err)
	require.Equal(t, 2, logs.FilterMessage("implicit declaration").Len())
	require.Equal(t, logs.FilterMessage("enter scope").Len(), logs.FilterMessage("exit scope").Len())
}

func TestParseErrorPassesThrough(t *testing.T) {
	_, err := AnalyseString("test.lm", `x = `)
	require.Error(t, err)
	var serr *SemanticError
	require.False(t, errors.As(err, &serr))
}

func TestOutputValidates(t *testing.T) {
	sources := []string{
		`x = 1; y = x + z; o.a.b = y`,
		`f = fn(a) { match a { 1 => a; else => b } }; f(1)`,
		`"${x}" == s ? l[0]++ : !q`,
	}
	for _, source := range sources {
		program, err := AnalyseString("test.lm", source)
		require.NoError(t, err, source)
		require.NoError(t, ast.Validate(program.Root), source)
	}
}
