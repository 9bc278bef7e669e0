package mylang

import (
	"math"
	"strconv"
	"strings"
)

/* ---------- values ---------- */

// FormatValue renders v the way println and the REPL echo show it:
//
//	nil          nil
//	list         [v1 v2 ...]
//	set          {v1 v2 ...}
//	dict         {k1:v1 k2:v2 ...}
//	string       raw text, no quotes
//	function     <function name [params]>
//
// Elements are formatted recursively. No value formats as "".
func FormatValue(v Value) string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

func writeValue(b *strings.Builder, v Value) {
	switch v.Tag {
	case VTAbsent:
	case VTNil:
		b.WriteString("nil")
	case VTBool:
		b.WriteString(strconv.FormatBool(v.Data.(bool)))
	case VTInt:
		b.WriteString(strconv.FormatInt(v.Data.(int64), 10))
	case VTFloat:
		b.WriteString(formatFloat(v.Data.(float64)))
	case VTString:
		b.WriteString(v.Data.(string))
	case VTList:
		writeSeq(b, '[', ']', v.Data.(*ListObject).Items)
	case VTSet:
		writeSeq(b, '{', '}', v.Data.(*SetObject).Items)
	case VTDict:
		d := v.Data.(*DictObject)
		b.WriteByte('{')
		for i, k := range d.Keys {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeValue(b, k)
			b.WriteByte(':')
			writeValue(b, d.Values[i])
		}
		b.WriteByte('}')
	case VTFunction:
		f := v.Data.(*FunctionValue)
		b.WriteString("<function ")
		b.WriteString(f.Name)
		b.WriteByte(' ')
		writeParams(b, f.Params)
		b.WriteByte('>')
	}
}

func writeSeq(b *strings.Builder, open, close byte, items []Value) {
	b.WriteByte(open)
	for i, it := range items {
		if i > 0 {
			b.WriteByte(' ')
		}
		writeValue(b, it)
	}
	b.WriteByte(close)
}

// formatFloat prints the shortest decimal that round-trips, switching to
// exponent form for very large or very small magnitudes.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	if a := math.Abs(f); a != 0 && (a < 1e-6 || a >= 1e21) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// writeParams renders a parameter list in source form: [a b = 1 @rest].
func writeParams(b *strings.Builder, params []Param) {
	b.WriteByte('[')
	for i, p := range params {
		if i > 0 {
			b.WriteByte(' ')
		}
		if p.Variadic {
			b.WriteByte('@')
		}
		b.WriteString(p.Name)
		if p.Default != nil {
			b.WriteString(" = ")
			b.WriteString(FormatNode(p.Default))
		}
	}
	b.WriteByte(']')
}

/* ---------- source ---------- */

// Pretty parses src and prints it back in canonical layout. Comments are not
// preserved.
func Pretty(src string) (string, error) {
	prog, err := ParseProgram(src)
	if err != nil {
		return "", err
	}
	return FormatProgram(prog), nil
}

// FormatProgram prints a program, one top-level line per line. Parsing the
// output yields an equal Program.
func FormatProgram(p *Program) string {
	pp := &pp{}
	for _, s := range p.Statements {
		pp.node(s)
		pp.b.WriteByte('\n')
	}
	return pp.b.String()
}

// FormatNode prints a single node in source form.
func FormatNode(n Node) string {
	pp := &pp{}
	pp.node(n)
	return pp.b.String()
}

type pp struct {
	b     strings.Builder
	depth int
}

func (p *pp) write(s string) { p.b.WriteString(s) }

func (p *pp) pad() { p.write(strings.Repeat("  ", p.depth)) }

func (p *pp) node(n Node) {
	switch n := n.(type) {
	case *Let:
		p.write("let ")
		p.write(n.Name)
		p.write(" ")
		p.node(n.Value)
	case *Literal:
		p.write(formatLiteral(n))
	case *Identifier:
		p.write(n.Name)
	case *VarArgs:
		p.write("@" + n.Name)
	case *Call:
		p.write("(")
		p.node(n.Callee)
		for _, a := range n.Args {
			p.write(" ")
			p.node(a)
		}
		p.write(")")
	case *Function:
		var b strings.Builder
		writeParams(&b, n.Params)
		p.write(b.String())
		p.write(" ")
		if len(n.Body) == 1 && isInline(n.Body[0]) {
			p.node(n.Body[0])
			return
		}
		p.block(n.Body)
	case *Conditional:
		p.write("if ")
		for br := n; br != nil; br = br.Next {
			if br.Kind == CondElse {
				p.write(" else ")
				p.block(br.Body)
				break
			}
			if br.Kind == CondElsif {
				p.write(" elsif ")
			}
			p.node(br.Cond)
			p.write(" ")
			p.block(br.Body)
		}
	}
}

// block prints { ... }, on one line when the body is a single short
// expression.
func (p *pp) block(body []Node) {
	if len(body) == 0 {
		p.write("{}")
		return
	}
	if len(body) == 1 && isInline(body[0]) {
		p.write("{ ")
		p.node(body[0])
		p.write(" }")
		return
	}
	p.write("{\n")
	p.depth++
	for _, s := range body {
		p.pad()
		p.node(s)
		p.write("\n")
	}
	p.depth--
	p.pad()
	p.write("}")
}

// isInline reports whether n prints on one line without braces.
func isInline(n Node) bool {
	switch n := n.(type) {
	case *Literal, *Identifier, *VarArgs:
		return true
	case *Call:
		if !isInline(n.Callee) {
			return false
		}
		for _, a := range n.Args {
			if !isInline(a) {
				return false
			}
		}
		return true
	}
	return false
}

func formatLiteral(l *Literal) string {
	switch l.Kind {
	case LitString:
		return `"` + l.Value.Data.(string) + `"`
	case LitFloat:
		s := strconv.FormatFloat(l.Value.Data.(float64), 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	default:
		return FormatValue(l.Value)
	}
}
