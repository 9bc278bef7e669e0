package mylang

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *Program {
	t.Helper()
	p, err := ParseProgram(src)
	require.NoError(t, err, "source: %q", src)
	return p
}

func wantAST(t *testing.T, src string, want ...Node) {
	t.Helper()
	got := mustParse(t, src)
	if diff := cmp.Diff(&Program{Statements: want}, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("AST mismatch for %q (-want +got):\n%s", src, diff)
	}
}

func wantParseErr(t *testing.T, src string, sentinel error, msg string) *ParseError {
	t.Helper()
	_, err := ParseProgram(src)
	require.Error(t, err, "source: %q", src)
	require.True(t, errors.Is(err, sentinel), "want %v, got %v", sentinel, err)
	require.Equal(t, msg, err.Error())
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	return pe
}

func call(callee Expr, args ...Expr) *Call { return &Call{Callee: callee, Args: args} }
func id(name string) *Identifier           { return &Identifier{Name: name} }

func eqX(n int64) *Call { return call(id("="), id("x"), IntLiteral(n)) }

func Test_Parser_Let(t *testing.T) {
	wantAST(t, "let x 1", &Let{Name: "x", Value: IntLiteral(1)})
}

func Test_Parser_Let_Requires_Identifier(t *testing.T) {
	wantParseErr(t, "let let 1", ErrParser, "expected 'let' to be an identifier (1:5)")
	wantParseErr(t, "let 4 1", ErrParser, "expected '4' to be an identifier (1:5)")
}

func Test_Parser_Literals(t *testing.T) {
	wantAST(t, `1 -1.5 "Hi" true false nil`,
		IntLiteral(1), FloatLiteral(-1.5), StringLiteral("Hi"),
		TrueLiteral(), FalseLiteral(), NilLiteral())
}

func Test_Parser_Function_Calls(t *testing.T) {
	wantAST(t, "(f)", call(id("f")))
	wantAST(t, "(f x 2)", call(id("f"), id("x"), IntLiteral(2)))
	wantAST(t, "((f) 1 2 3)", call(call(id("f")), IntLiteral(1), IntLiteral(2), IntLiteral(3)))
	wantAST(t, "(g @rest)", call(id("g"), &VarArgs{Name: "rest"}))
}

func Test_Parser_Unclosed_Call(t *testing.T) {
	pe := wantParseErr(t, "(f 1", ErrParser, "expected '' to be ')' (1:5)")
	require.True(t, pe.Incomplete)
	require.True(t, IsIncomplete(pe))
}

func Test_Parser_Empty_Call_Is_Syntax_Error(t *testing.T) {
	pe := wantParseErr(t, "()", ErrSyntax, "invalid syntax ')' (1:2)")
	require.False(t, pe.Incomplete)
}

func Test_Parser_If_Chains(t *testing.T) {
	wantAST(t, "if (= x 1) { 42 }",
		&Conditional{Kind: CondIf, Cond: eqX(1), Body: []Node{IntLiteral(42)}})

	wantAST(t, "if (= x 1) { 42 } else { 45 }",
		&Conditional{Kind: CondIf, Cond: eqX(1), Body: []Node{IntLiteral(42)},
			Next: ElseBranch([]Node{IntLiteral(45)})})

	wantAST(t, "if (= x 1) { 42 } elsif (= x 2) { 43 } elsif (= x 3) { 44 } else { 45 }",
		&Conditional{Kind: CondIf, Cond: eqX(1), Body: []Node{IntLiteral(42)},
			Next: &Conditional{Kind: CondElsif, Cond: eqX(2), Body: []Node{IntLiteral(43)},
				Next: &Conditional{Kind: CondElsif, Cond: eqX(3), Body: []Node{IntLiteral(44)},
					Next: ElseBranch([]Node{IntLiteral(45)})}}})
}

func Test_Parser_If_Single_Expression_Bodies(t *testing.T) {
	wantAST(t, "if (= x 1) 42 else 45",
		&Conditional{Kind: CondIf, Cond: eqX(1), Body: []Node{IntLiteral(42)},
			Next: ElseBranch([]Node{IntLiteral(45)})})
}

func Test_Parser_If_Missing_Body_Is_Incomplete(t *testing.T) {
	pe := wantParseErr(t, "if (= x 1) {", ErrParser, "expected '' to be '}' (1:13)")
	require.True(t, pe.Incomplete)
}

func Test_Parser_Functions(t *testing.T) {
	wantAST(t, "[] 42", &Function{Name: "anonymous", Body: []Node{IntLiteral(42)}})
	wantAST(t, "[] { 42 }", &Function{Name: "anonymous", Body: []Node{IntLiteral(42)}})
	wantAST(t, "let func [] 42",
		&Let{Name: "func", Value: &Function{Name: "func", Body: []Node{IntLiteral(42)}}})
	wantAST(t, "[a b @c] 42", &Function{
		Name:     "anonymous",
		Params:   []Param{{Name: "a"}, {Name: "b"}, {Name: "c", Variadic: true}},
		Variadic: true,
		Body:     []Node{IntLiteral(42)},
	})
}

func Test_Parser_Multiline_Function_Body(t *testing.T) {
	src := `let main [] {
  let y 2
  (println y)
  y
}`
	wantAST(t, src, &Let{Name: "main", Value: &Function{
		Name: "main",
		Body: []Node{
			&Let{Name: "y", Value: IntLiteral(2)},
			call(id("println"), id("y")),
			id("y"),
		},
	}})
}

func Test_Parser_Only_Direct_Let_Value_Is_Named(t *testing.T) {
	wantAST(t, "let f ([] 1)",
		&Let{Name: "f", Value: call(&Function{Name: "anonymous", Body: []Node{IntLiteral(1)}})})
}

func Test_Parser_Default_Parameters(t *testing.T) {
	wantAST(t, "[a b = 1 c = (+ a 1)] c", &Function{
		Name: "anonymous",
		Params: []Param{
			{Name: "a"},
			{Name: "b", Default: IntLiteral(1)},
			{Name: "c", Default: call(id("+"), id("a"), IntLiteral(1))},
		},
		Body: []Node{id("c")},
	})
	wantParseErr(t, "[a = 1 b] b", ErrParser, "'b' must have a default value (1:8)")
}

func Test_Parser_Parameter_Errors(t *testing.T) {
	pe := wantParseErr(t, "[", ErrParser, "expected '' to be ']' (1:2)")
	require.True(t, pe.Incomplete)

	wantParseErr(t, "[a a] 42", ErrParser, "double argument error: 'a' already exists (1:4)")
	wantParseErr(t, "[a @a] 42", ErrParser, "double argument error: '@a' already exists (1:4)")
	wantParseErr(t, "[@a b] 42", ErrParser, "'@a' must be used as the last argument (1:2)")
	wantParseErr(t, "[4] 42", ErrParser, "expected '4' to be an identifier (1:2)")
}

func Test_Parser_Invalid_Syntax(t *testing.T) {
	pe := wantParseErr(t, "{", ErrSyntax, "invalid syntax '{' (1:1)")
	require.Equal(t, KindSyntax, pe.Kind)
	require.False(t, pe.Incomplete)

	wantParseErr(t, "let x )", ErrSyntax, "invalid syntax ')' (1:7)")
	wantParseErr(t, "else 1", ErrSyntax, "invalid syntax 'else' (1:1)")
}

func Test_Parser_Missing_Expression_At_EOF(t *testing.T) {
	pe := wantParseErr(t, "let x", ErrSyntax, "unexpected end of input (1:6)")
	require.True(t, pe.Incomplete)
}

func Test_Parser_Accepts_Tokens_Without_EOF(t *testing.T) {
	ts := toks(t, "(f 1)")
	p, err := Parse(ts[:len(ts)-1])
	require.NoError(t, err)
	require.Len(t, p.Statements, 1)
}

func Test_Parser_Lexer_Errors_Propagate(t *testing.T) {
	_, err := ParseProgram("let x #")
	require.True(t, errors.Is(err, ErrInvalidToken))
}
