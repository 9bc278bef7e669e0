package mylang

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Errors_Hierarchy(t *testing.T) {
	_, lexErr := Tokenize("#")
	_, parseErr := ParseProgram("[4] 1")
	_, syntaxErr := ParseProgram("{")
	typeErr := rtError(KindType, "bad")

	require.True(t, errors.Is(lexErr, ErrLexer))
	require.True(t, errors.Is(lexErr, ErrInvalidToken))
	require.True(t, errors.Is(parseErr, ErrParser))
	require.False(t, errors.Is(parseErr, ErrSyntax))
	require.True(t, errors.Is(syntaxErr, ErrParser))
	require.True(t, errors.Is(syntaxErr, ErrSyntax))
	require.True(t, errors.Is(typeErr, ErrRuntime))
	require.True(t, errors.Is(typeErr, ErrType))
	require.False(t, errors.Is(typeErr, ErrArity))

	wrapped := fmt.Errorf("running main.my: %w", typeErr)
	require.True(t, errors.Is(wrapped, ErrType))
	k, ok := KindOf(wrapped)
	require.True(t, ok)
	require.Equal(t, KindType, k)
}

func Test_Errors_Describe(t *testing.T) {
	_, err := Tokenize("#")
	require.Equal(t, "InvalidTokenError: unexpected token '#' (1:1)", Describe(err))
	require.Equal(t, "DivisionByZeroError: division by zero", Describe(rtError(KindDivisionByZero, "division by zero")))
	require.Equal(t, "plain", Describe(errors.New("plain")))
	_, ok := KindOf(errors.New("plain"))
	require.False(t, ok)
}

func Test_Errors_Kind_Names(t *testing.T) {
	require.Equal(t, "SymbolNotFound", KindSymbolNotFound.String())
	require.Equal(t, "ArityError", KindArity.String())
	require.Equal(t, "ErrorKind(99)", ErrorKind(99).String())
}

func Test_WrapErrorWithSource_Parse(t *testing.T) {
	src := "let main [] {\n  (println 1\n}"
	_, err := ParseProgram(src)
	require.Error(t, err)
	wrapped := WrapErrorWithSource(err, "main.my", src)

	msg := wrapped.Error()
	require.True(t, strings.HasPrefix(msg, "PARSE ERROR in main.my at 3:1: "), msg)
	require.Contains(t, msg, "   2 |   (println 1\n")
	require.Contains(t, msg, "   3 | }\n     | ^\n")
	require.True(t, errors.Is(wrapped, ErrParser))
}

func Test_WrapErrorWithSource_Lexer_Without_Name(t *testing.T) {
	src := "let x 1\nlet y #\nlet z 3"
	_, err := Tokenize(src)
	wrapped := WrapErrorWithSource(err, "", src)
	require.Equal(t, "LEXICAL ERROR at 2:7: unexpected token '#'\n\n"+
		"   1 | let x 1\n"+
		"   2 | let y #\n"+
		"     |       ^\n"+
		"   3 | let z 3\n", wrapped.Error())
}

func Test_WrapErrorWithSource_Passes_Runtime_Errors_Through(t *testing.T) {
	err := rtError(KindType, "boom")
	require.Same(t, err, WrapErrorWithSource(err, "x", "src"))
}
