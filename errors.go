// errors.go: error taxonomy and caret-snippet rendering
//
// Every failure surfaced by the lexer, parser, and evaluator is one of three
// Go types, each carrying an ErrorKind:
//
//	*LexError      KindInvalidToken
//	*ParseError    KindParser, KindSyntax
//	*RuntimeError  KindType, KindDivisionByZero, KindSymbolNotFound,
//	               KindInvalidExitCode, KindArity, KindRedeclaration,
//	               KindStackOverflow
//
// The kinds form a two-level hierarchy that is queried with errors.Is against
// the exported sentinels: an invalid-token error is also an ErrLexer, a syntax
// error is also an ErrParser, and every runtime kind is also an ErrRuntime.
//
// Error() returns the bare message; lexer/parser messages end with the
// "(row:col)" of the offending token. WrapErrorWithSource renders lexer and
// parser errors with a numbered source excerpt and a caret for terminals.
package mylang

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind discriminates the error taxonomy.
type ErrorKind int

const (
	KindLexer ErrorKind = iota
	KindInvalidToken
	KindParser
	KindSyntax
	KindRuntime
	KindType
	KindDivisionByZero
	KindSymbolNotFound
	KindInvalidExitCode
	KindArity
	KindRedeclaration
	KindStackOverflow
)

var kindNames = [...]string{
	KindLexer:           "LexerError",
	KindInvalidToken:    "InvalidTokenError",
	KindParser:          "ParserError",
	KindSyntax:          "SyntaxError",
	KindRuntime:         "RuntimeError",
	KindType:            "TypeError",
	KindDivisionByZero:  "DivisionByZeroError",
	KindSymbolNotFound:  "SymbolNotFound",
	KindInvalidExitCode: "InvalidExitCodeError",
	KindArity:           "ArityError",
	KindRedeclaration:   "RedeclarationError",
	KindStackOverflow:   "StackOverflowError",
}

func (k ErrorKind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Sentinels for errors.Is. Each kind matches itself and its family root.
var (
	ErrLexer           = errors.New("lexer error")
	ErrInvalidToken    = errors.New("invalid token")
	ErrParser          = errors.New("parser error")
	ErrSyntax          = errors.New("syntax error")
	ErrRuntime         = errors.New("runtime error")
	ErrType            = errors.New("type error")
	ErrDivisionByZero  = errors.New("division by zero")
	ErrSymbolNotFound  = errors.New("symbol not found")
	ErrInvalidExitCode = errors.New("invalid exit code")
	ErrArity           = errors.New("arity mismatch")
	ErrRedeclaration   = errors.New("redeclaration")
	ErrStackOverflow   = errors.New("stack overflow")
)

var kindSentinels = map[ErrorKind]error{
	KindLexer:           ErrLexer,
	KindInvalidToken:    ErrInvalidToken,
	KindParser:          ErrParser,
	KindSyntax:          ErrSyntax,
	KindRuntime:         ErrRuntime,
	KindType:            ErrType,
	KindDivisionByZero:  ErrDivisionByZero,
	KindSymbolNotFound:  ErrSymbolNotFound,
	KindInvalidExitCode: ErrInvalidExitCode,
	KindArity:           ErrArity,
	KindRedeclaration:   ErrRedeclaration,
	KindStackOverflow:   ErrStackOverflow,
}

// family returns the root kind of k.
func (k ErrorKind) family() ErrorKind {
	switch k {
	case KindLexer, KindInvalidToken:
		return KindLexer
	case KindParser, KindSyntax:
		return KindParser
	default:
		return KindRuntime
	}
}

func kindIs(k ErrorKind, target error) bool {
	return target == kindSentinels[k] || target == kindSentinels[k.family()]
}

// LexError reports input that no token pattern matches. Line/Col are 1-based.
type LexError struct {
	Kind ErrorKind
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string { return fmt.Sprintf("%s %s", e.Msg, formatPos(e.Line, e.Col)) }

func (e *LexError) Is(target error) bool { return kindIs(e.Kind, target) }

// ParseError reports a grammar violation at a token. Line/Col are 1-based.
// Incomplete is set when the parser ran into the end of input, which the
// REPL uses to keep reading continuation lines.
type ParseError struct {
	Kind       ErrorKind
	Line       int
	Col        int
	Msg        string
	Incomplete bool
}

func (e *ParseError) Error() string { return fmt.Sprintf("%s %s", e.Msg, formatPos(e.Line, e.Col)) }

func (e *ParseError) Is(target error) bool { return kindIs(e.Kind, target) }

// RuntimeError represents an evaluation failure.
type RuntimeError struct {
	Kind ErrorKind
	Msg  string
}

func (e *RuntimeError) Error() string { return e.Msg }

func (e *RuntimeError) Is(target error) bool { return kindIs(e.Kind, target) }

func rtError(kind ErrorKind, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf reports the ErrorKind carried by err, if any.
func KindOf(err error) (ErrorKind, bool) {
	var le *LexError
	if errors.As(err, &le) {
		return le.Kind, true
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Kind, true
	}
	return 0, false
}

// Describe renders err as "<KindName>: <message>", the way the REPL prints
// errors. Errors outside the taxonomy are returned as-is.
func Describe(err error) string {
	if k, ok := KindOf(err); ok {
		return k.String() + ": " + err.Error()
	}
	return err.Error()
}

// IsIncomplete reports whether err is a parse error caused by running out of
// input (an unterminated call, scope, or parameter list).
func IsIncomplete(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Incomplete
}

// WrapErrorWithSource returns an error whose message is a caret-annotated
// snippet of src when err is a *LexError or *ParseError:
//
//	PARSE ERROR in main.my at 3:12: expected '' to be ')'
//
//	   2 | let x (+ 1
//	   3 |            2
//	     |            ^
//
// Other errors are returned unchanged. name may be empty.
func WrapErrorWithSource(err error, name, src string) error {
	var le *LexError
	if errors.As(err, &le) {
		return &snippetError{err: err, text: prettyErrorString(src, "LEXICAL ERROR", name, le.Line, le.Col, le.Msg)}
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return &snippetError{err: err, text: prettyErrorString(src, "PARSE ERROR", name, pe.Line, pe.Col, pe.Msg)}
	}
	return err
}

// snippetError keeps the original error reachable through errors.Is/As.
type snippetError struct {
	err  error
	text string
}

func (e *snippetError) Error() string { return e.text }
func (e *snippetError) Unwrap() error { return e.err }

// prettyErrorString builds the snippet with at most one line of context on
// each side. Coordinates are clamped to the source bounds.
func prettyErrorString(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if line > len(lines) {
		line = len(lines)
	}

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
