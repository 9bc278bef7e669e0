// ast.go: the mylang abstract syntax tree.
//
// Nodes are plain structs behind the closed Node interface (the unexported
// marker methods keep the set of implementations inside this package), so
// the evaluator and the debug printer switch over a fixed list of kinds.
// Nodes are never mutated after the parser builds them; in particular a
// Function literal does not own an environment. Closures are created by the
// evaluator as fresh *FunctionValue values every time a literal is evaluated.
//
//	Program      { Statements []Node }
//	Let          { Name, Value Expr }                  statement only
//	Literal      { Kind, Value }                       int/float/string/true/false/nil
//	Identifier   { Name }
//	VarArgs      { Name }                              "@name" (Name without '@')
//	Call         { Callee Expr, Args []Expr }
//	Function     { Name, Params, Variadic, Body }
//	Conditional  { Kind, Cond, Body, Next }            if / elsif / else chain
package mylang

// Node is any AST node.
type Node interface {
	node()
}

// Expr is a node that produces a value.
type Expr interface {
	Node
	expr()
}

// Program is an ordered sequence of top-level lines.
type Program struct {
	Statements []Node
}

// Let binds Name in the current frame.
type Let struct {
	Name  string
	Value Expr
}

// LiteralKind tells which literal syntax produced a Literal.
type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitFloat
	LitString
	LitTrue
	LitFalse
	LitNil
)

// Literal holds an already-parsed constant.
type Literal struct {
	Kind  LiteralKind
	Value Value
}

// Identifier is a name resolved at evaluation time.
type Identifier struct {
	Name string
}

// VarArgs references a variadic parameter. As a call argument it spreads the
// collected sequence into the call.
type VarArgs struct {
	Name string
}

// Call applies the value of Callee to Args.
type Call struct {
	Callee Expr
	Args   []Expr
}

// Param is one declared parameter. Default is nil when the parameter has no
// default value; Variadic marks the trailing "@name" parameter.
type Param struct {
	Name     string
	Default  Expr
	Variadic bool
}

// Function is a function literal. Name is display-only ("anonymous" unless
// the literal is the direct value of a let).
type Function struct {
	Name     string
	Params   []Param
	Variadic bool
	Body     []Node
}

// CondKind tells which keyword introduced a branch.
type CondKind int

const (
	CondIf CondKind = iota
	CondElsif
	CondElse
)

// Conditional is one branch of an if/elsif/else chain. An else branch has a
// condition that is always true.
type Conditional struct {
	Kind CondKind
	Cond Expr
	Body []Node
	Next *Conditional
}

func (*Let) node()         {}
func (*Literal) node()     {}
func (*Identifier) node()  {}
func (*VarArgs) node()     {}
func (*Call) node()        {}
func (*Function) node()    {}
func (*Conditional) node() {}

func (*Literal) expr()     {}
func (*Identifier) expr()  {}
func (*VarArgs) expr()     {}
func (*Call) expr()        {}
func (*Function) expr()    {}
func (*Conditional) expr() {}

// Literal constructors.
func IntLiteral(n int64) *Literal     { return &Literal{Kind: LitInt, Value: Int(n)} }
func FloatLiteral(f float64) *Literal { return &Literal{Kind: LitFloat, Value: Float(f)} }
func StringLiteral(s string) *Literal { return &Literal{Kind: LitString, Value: Str(s)} }
func TrueLiteral() *Literal           { return &Literal{Kind: LitTrue, Value: True} }
func FalseLiteral() *Literal          { return &Literal{Kind: LitFalse, Value: False} }
func NilLiteral() *Literal            { return &Literal{Kind: LitNil, Value: Nil} }

// ElseBranch builds the terminal branch of a conditional chain.
func ElseBranch(body []Node) *Conditional {
	return &Conditional{Kind: CondElse, Cond: TrueLiteral(), Body: body}
}

// Arity returns how many arguments the literal accepts: min, and max (-1 when
// variadic).
func (f *Function) Arity() (min, max int) {
	return paramArity(f.Params, f.Variadic)
}

func paramArity(params []Param, variadic bool) (min, max int) {
	for _, p := range params {
		if p.Variadic {
			continue
		}
		if p.Default == nil {
			min++
		}
		max++
	}
	if variadic {
		max = -1
	}
	return min, max
}
