// parser.go: recursive-descent parser for mylang.
//
// OVERVIEW
// --------
// The parser consumes the token slice produced by the lexer (which always ends
// with one EOF token) with a single token of lookahead. peek never moves past
// the EOF sentinel, so running out of input shows up as "found EOF where X was
// expected" rather than as an index error.
//
// Grammar
// -------
//
//	program    := line*
//	line       := let | expression
//	let        := LET IDENTIFIER expression
//	scope      := '{' line* '}' | expression
//	expression := '(' expression expression* ')'
//	            | IF expression scope (ELSIF expression scope)* (ELSE scope)?
//	            | literal | IDENTIFIER | VARARGS | function
//	function   := '[' param* ']' scope
//	param      := IDENTIFIER | IDENTIFIER '=' expression | VARARGS
//
// Commas between parameters are ignored by the lexer. '=' is an ordinary
// identifier token; it only has meaning right after a parameter name.
//
// Errors
// ------
// Structural mismatches are ParserErrors shaped
//
//	expected '<found>' to be '<expected>' (row:col)
//
// where <found> is the offending token's text with surrounding whitespace
// trimmed ('' at end of input). A token that cannot start an expression is a
// SyntaxError "invalid syntax '<text>'". Every error raised at the EOF token is
// marked Incomplete so the REPL can ask for another line.
package mylang

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse builds a Program from a token sequence produced by Tokenize.
func Parse(tokens []Token) (*Program, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != EOF {
		tokens = append(append([]Token{}, tokens...), eofAfter(tokens))
	}
	p := &parser{toks: tokens}
	return p.program()
}

// ParseProgram tokenizes and parses src.
func ParseProgram(src string) (*Program, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

//// END_OF_PUBLIC

type parser struct {
	toks []Token
	i    int
}

// ─────────────────────────── token basics & helpers ─────────────────────────

func eofAfter(toks []Token) Token {
	if len(toks) == 0 {
		return Token{Type: EOF, Line: 1, Col: 1}
	}
	last := toks[len(toks)-1]
	return Token{Type: EOF, Line: last.Line, Col: last.Col + len([]rune(last.Text))}
}

func (p *parser) atEnd() bool { return p.peek().Type == EOF }

func (p *parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i]
}

// pop returns the current token and advances, except at EOF.
func (p *parser) pop() Token {
	t := p.peek()
	if t.Type != EOF {
		p.i++
	}
	return t
}

func tokText(t Token) string { return strings.TrimSpace(t.Text) }

func (p *parser) errAt(t Token, kind ErrorKind, format string, args ...any) *ParseError {
	return &ParseError{
		Kind:       kind,
		Line:       t.Line,
		Col:        t.Col,
		Msg:        fmt.Sprintf(format, args...),
		Incomplete: t.Type == EOF,
	}
}

// expected reports that t was found where want was required.
func (p *parser) expected(t Token, want string) *ParseError {
	return p.errAt(t, KindParser, "expected '%s' to be %s", tokText(t), want)
}

func (p *parser) need(tt TokenType, want string) (Token, error) {
	t := p.peek()
	if t.Type != tt {
		return Token{}, p.expected(t, want)
	}
	return p.pop(), nil
}

// ─────────────────────────────── productions ───────────────────────────────

func (p *parser) program() (*Program, error) {
	prog := &Program{}
	for !p.atEnd() {
		n, err := p.line()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, n)
	}
	return prog, nil
}

func (p *parser) line() (Node, error) {
	if p.peek().Type == LET {
		return p.let()
	}
	return p.expression("")
}

func (p *parser) let() (Node, error) {
	p.pop()
	id := p.peek()
	if id.Type != IDENTIFIER {
		return nil, p.expected(id, "an identifier")
	}
	p.pop()
	val, err := p.expression(id.Text)
	if err != nil {
		return nil, err
	}
	return &Let{Name: id.Text, Value: val}, nil
}

// scope parses a braced block of lines or a single expression.
func (p *parser) scope() ([]Node, error) {
	if p.peek().Type != LSCOPE {
		e, err := p.expression("")
		if err != nil {
			return nil, err
		}
		return []Node{e}, nil
	}
	p.pop()
	body := []Node{}
	for p.peek().Type != RSCOPE {
		if p.atEnd() {
			return nil, p.expected(p.peek(), "'}'")
		}
		n, err := p.line()
		if err != nil {
			return nil, err
		}
		body = append(body, n)
	}
	p.pop()
	return body, nil
}

// expression parses one expression. name is the binding name when the
// expression is the direct value of a let, used to name function literals.
func (p *parser) expression(name string) (Expr, error) {
	t := p.peek()
	switch t.Type {
	case LPAREN:
		return p.call()
	case IF:
		return p.conditional()
	case LBRACKET:
		return p.function(name)
	case IDENTIFIER:
		p.pop()
		return &Identifier{Name: t.Text}, nil
	case VARARGS:
		p.pop()
		return &VarArgs{Name: strings.TrimPrefix(t.Text, "@")}, nil
	case INT:
		p.pop()
		n, err := strconv.ParseInt(t.Text, 10, 64)
		if err != nil {
			return nil, p.errAt(t, KindSyntax, "integer literal '%s' out of range", t.Text)
		}
		return IntLiteral(n), nil
	case FLOAT:
		p.pop()
		f, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return nil, p.errAt(t, KindSyntax, "float literal '%s' out of range", t.Text)
		}
		return FloatLiteral(f), nil
	case STRING:
		p.pop()
		return StringLiteral(t.Text[1 : len(t.Text)-1]), nil
	case TRUE:
		p.pop()
		return TrueLiteral(), nil
	case FALSE:
		p.pop()
		return FalseLiteral(), nil
	case NIL:
		p.pop()
		return NilLiteral(), nil
	case EOF:
		return nil, p.errAt(t, KindSyntax, "unexpected end of input")
	default:
		return nil, p.errAt(t, KindSyntax, "invalid syntax '%s'", tokText(t))
	}
}

func (p *parser) call() (Expr, error) {
	p.pop()
	if p.peek().Type == RPAREN {
		return nil, p.errAt(p.peek(), KindSyntax, "invalid syntax '%s'", tokText(p.peek()))
	}
	callee, err := p.expression("")
	if err != nil {
		return nil, err
	}
	args := []Expr{}
	for p.peek().Type != RPAREN {
		if p.atEnd() {
			return nil, p.expected(p.peek(), "')'")
		}
		a, err := p.expression("")
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	p.pop()
	return &Call{Callee: callee, Args: args}, nil
}

func (p *parser) conditional() (Expr, error) {
	p.pop()
	head, err := p.branch(CondIf)
	if err != nil {
		return nil, err
	}
	tail := head
	for p.peek().Type == ELSIF {
		p.pop()
		next, err := p.branch(CondElsif)
		if err != nil {
			return nil, err
		}
		tail.Next = next
		tail = next
	}
	if p.peek().Type == ELSE {
		p.pop()
		body, err := p.scope()
		if err != nil {
			return nil, err
		}
		tail.Next = ElseBranch(body)
	}
	return head, nil
}

// branch parses "<cond> <scope>" after an if/elsif keyword.
func (p *parser) branch(kind CondKind) (*Conditional, error) {
	cond, err := p.expression("")
	if err != nil {
		return nil, err
	}
	body, err := p.scope()
	if err != nil {
		return nil, err
	}
	return &Conditional{Kind: kind, Cond: cond, Body: body}, nil
}

func (p *parser) function(name string) (Expr, error) {
	p.pop()
	if name == "" {
		name = "anonymous"
	}
	params, variadic, err := p.params()
	if err != nil {
		return nil, err
	}
	body, err := p.scope()
	if err != nil {
		return nil, err
	}
	return &Function{Name: name, Params: params, Variadic: variadic, Body: body}, nil
}

// params parses up to and including the closing ']'. Names are recorded in a
// scratch Env so duplicates are caught the same way the evaluator detects
// redeclaration.
func (p *parser) params() ([]Param, bool, error) {
	seen := NewEnv(nil)
	params := []Param{}
	var rest *Token
	sawDefault := false

	for p.peek().Type != RBRACKET {
		t := p.peek()
		switch t.Type {
		case EOF:
			return nil, false, p.expected(t, "']'")
		case IDENTIFIER, VARARGS:
		default:
			return nil, false, p.expected(t, "an identifier")
		}
		if rest != nil {
			return nil, false, p.errAt(*rest, KindParser, "'%s' must be used as the last argument", rest.Text)
		}
		p.pop()

		pname := strings.TrimPrefix(t.Text, "@")
		if seen.HasOwn(pname) {
			return nil, false, p.errAt(t, KindParser, "double argument error: '%s' already exists", t.Text)
		}
		seen.Define(pname, Nil)

		if t.Type == VARARGS {
			tt := t
			rest = &tt
			params = append(params, Param{Name: pname, Variadic: true})
			continue
		}

		param := Param{Name: pname}
		if eq := p.peek(); eq.Type == IDENTIFIER && eq.Text == "=" {
			p.pop()
			def, err := p.expression("")
			if err != nil {
				return nil, false, err
			}
			param.Default = def
			sawDefault = true
		} else if sawDefault {
			return nil, false, p.errAt(t, KindParser, "'%s' must have a default value", t.Text)
		}
		params = append(params, param)
	}
	p.pop()
	return params, rest != nil, nil
}
