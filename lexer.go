// lexer.go: ordered-pattern tokenizer for mylang.
//
// OVERVIEW
// --------
// The lexer walks the source from left to right. At every position it tries
// the *ignored* definitions (whitespace, `;` comments, commas) and then the
// *significant* definitions, both in registration order, and takes the first
// pattern that matches exactly at the current position. There is no
// longest-match rule: order is the only disambiguation, so specific patterns
// (keywords that require trailing whitespace, `nil?`, ...) are registered
// before the general identifier pattern.
//
// Positions are 1-based. Every token records the row/column where it starts.
// After a match is consumed (ignored or not) the embedded newlines are
// counted: the row advances by that count and the column restarts after the
// last newline; without newlines the column advances by the match length
// (in runes).
//
// The token stream always ends with exactly one EOF token positioned at the
// final row/column reached, so the parser never indexes past the end.
package mylang

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// TokenType represents the category of a token.
type TokenType int

const (
	// Special
	EOF TokenType = iota

	// Ignored (only surfaced by ScanWithTrivia)
	WHITESPACE
	COMMENT
	COMMA

	// Keywords
	LET
	IF
	ELSIF
	ELSE

	// Brackets
	LPAREN   // "("
	RPAREN   // ")"
	LBRACKET // "["
	RBRACKET // "]"
	LSCOPE   // "{"
	RSCOPE   // "}"

	// Literals & identifiers
	INT
	FLOAT
	STRING
	TRUE
	FALSE
	NIL
	IDENTIFIER
	VARARGS // "@name"
)

var tokenTypeNames = [...]string{
	EOF:        "EOF",
	WHITESPACE: "WHITESPACE",
	COMMENT:    "COMMENT",
	COMMA:      "COMMA",
	LET:        "LET",
	IF:         "IF",
	ELSIF:      "ELSIF",
	ELSE:       "ELSE",
	LPAREN:     "LPAREN",
	RPAREN:     "RPAREN",
	LBRACKET:   "LBRACKET",
	RBRACKET:   "RBRACKET",
	LSCOPE:     "LSCOPE",
	RSCOPE:     "RSCOPE",
	INT:        "INT",
	FLOAT:      "FLOAT",
	STRING:     "STRING",
	TRUE:       "TRUE",
	FALSE:      "FALSE",
	NIL:        "NIL",
	IDENTIFIER: "IDENTIFIER",
	VARARGS:    "VARARGS",
}

func (t TokenType) String() string {
	if int(t) >= 0 && int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a classified, positioned lexical unit. Text is the raw matched
// slice of the source (keyword tokens include their trailing whitespace).
type Token struct {
	Type TokenType
	Text string
	Line int
	Col  int
}

// Pos renders the token position the way diagnostics quote it: "(row:col)".
func (t Token) Pos() string { return formatPos(t.Line, t.Col) }

func formatPos(line, col int) string { return fmt.Sprintf("(%d:%d)", line, col) }

// definition pairs a token category with an anchored pattern.
type definition struct {
	typ TokenType
	re  *regexp.Regexp
}

// definitions is an ordered set of ignored and significant patterns.
type definitions struct {
	ignored     []definition
	significant []definition
}

func (d *definitions) ignore(tt TokenType, pattern string) *definitions {
	d.ignored = append(d.ignored, definition{typ: tt, re: regexp.MustCompile(`^(?:` + pattern + `)`)})
	return d
}

func (d *definitions) add(tt TokenType, pattern string) *definitions {
	d.significant = append(d.significant, definition{typ: tt, re: regexp.MustCompile(`^(?:` + pattern + `)`)})
	return d
}

// languageDefinitions is built once and never mutated afterwards.
// space is the whitespace class used by the ignored WHITESPACE pattern and
// the keyword patterns: ASCII whitespace plus \v, Unicode space separators,
// the line/paragraph separators and the byte order mark.
const space = `[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]`

var spaceRe = regexp.MustCompile(space)

var languageDefinitions = (&definitions{}).
	ignore(WHITESPACE, space+`+`).
	ignore(COMMENT, `;.*`).
	ignore(COMMA, `,`).
	add(LET, `let`+space+`+`).
	add(LPAREN, `\(`).
	add(RPAREN, `\)`).
	add(LBRACKET, `\[`).
	add(RBRACKET, `\]`).
	add(LSCOPE, `\{`).
	add(RSCOPE, `\}`).
	add(IF, `if`+space+`+`).
	add(ELSIF, `elsif`+space+`+`).
	add(ELSE, `else`+space+`+`).
	add(FLOAT, `[+-]?\d+\.\d+`).
	add(INT, `[+-]?\d+`).
	add(STRING, `"[^"]*"`).
	add(IDENTIFIER, `(?:nil|true|false)\?`).
	add(TRUE, `true\b`).
	add(FALSE, `false\b`).
	add(NIL, `nil\b`).
	add(VARARGS, `@[_a-zA-Z][_a-zA-Z0-9]*`).
	add(IDENTIFIER, `[+\-*/|&~<>?=!_a-zA-Z][+\-*/|&~<>?=!_a-zA-Z0-9]*`)

// Lexer scans a mylang source string into tokens.
type Lexer struct {
	src  string
	cur  int // byte offset
	line int // 1-based
	col  int // 1-based, in runes
	defs *definitions
}

// NewLexer creates a lexer for the given source using the language patterns.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1, defs: languageDefinitions}
}

// Tokenize is a convenience wrapper around NewLexer(src).Scan().
func Tokenize(src string) ([]Token, error) {
	return NewLexer(src).Scan()
}

// Scan returns the significant tokens followed by a single EOF token.
func (l *Lexer) Scan() ([]Token, error) {
	return l.scan(false)
}

// ScanWithTrivia is like Scan but also returns the ignored spans (whitespace,
// comments, commas) as tokens, so the concatenation of every Text reproduces
// the source exactly.
func (l *Lexer) ScanWithTrivia() ([]Token, error) {
	return l.scan(true)
}

func (l *Lexer) scan(trivia bool) ([]Token, error) {
	var out []Token
	for l.cur < len(l.src) {
		rest := l.src[l.cur:]

		if d, n, ok := find(rest, l.defs.ignored); ok {
			tok := l.consume(d.typ, n)
			if trivia {
				out = append(out, tok)
			}
			continue
		}

		d, n, ok := find(rest, l.defs.significant)
		if !ok {
			return nil, &LexError{
				Kind: KindInvalidToken,
				Line: l.line,
				Col:  l.col,
				Msg:  fmt.Sprintf("unexpected token '%s'", nextChunk(rest)),
			}
		}
		out = append(out, l.consume(d.typ, n))
	}
	out = append(out, Token{Type: EOF, Text: "", Line: l.line, Col: l.col})
	return out, nil
}

// find returns the first definition (in order) matching at the start of s.
func find(s string, defs []definition) (definition, int, bool) {
	for _, d := range defs {
		if loc := d.re.FindStringIndex(s); loc != nil && loc[0] == 0 && loc[1] > 0 {
			return d, loc[1], true
		}
	}
	return definition{}, 0, false
}

// consume emits a token of n bytes at the current position and advances.
func (l *Lexer) consume(tt TokenType, n int) Token {
	text := l.src[l.cur : l.cur+n]
	tok := Token{Type: tt, Text: text, Line: l.line, Col: l.col}
	l.advance(text)
	l.cur += n
	return tok
}

func (l *Lexer) advance(match string) {
	newlines := strings.Count(match, "\n")
	if newlines == 0 {
		l.col += utf8.RuneCountInString(match)
		return
	}
	l.line += newlines
	last := strings.LastIndexByte(match, '\n')
	l.col = 1 + utf8.RuneCountInString(match[last+1:])
}

// nextChunk returns the remaining input up to the next whitespace.
func nextChunk(s string) string {
	if loc := spaceRe.FindStringIndex(s); loc != nil {
		return s[:loc[0]]
	}
	return s
}
