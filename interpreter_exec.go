// interpreter_exec.go: tree-walking evaluator and call protocol.
//
// evalNode/evalExpr switch exhaustively over the closed AST node set. Every
// failure is returned as an error and propagates straight out to the entry
// point; nothing is recovered internally.
//
// Call protocol (shared by user functions and built-ins):
//
//  1. Evaluate the callee; it must be a function value.
//  2. Check the number of argument expressions against the callee's arity.
//  3. Evaluate arguments left to right in the caller's frame. An @name
//     argument that falls into a variadic callee's rest list is spliced into
//     it; in any other position it evaluates to the list itself.
//  4. Open a frame whose parent is the callee's closure. Bind fixed
//     parameters positionally; missing trailing ones take their default,
//     evaluated in the new frame. A variadic callee gets a fresh list of the
//     remaining arguments under its rest name.
//  5. Run the native, or evaluate the body lines and yield the last value.
package mylang

import (
	"fmt"
)

// CallCtx gives a native access to its bound parameters.
type CallCtx interface {
	Arg(name string) (Value, bool)
	MustArg(name string) Value
	Env() *Env
}

type callCtx struct {
	env *Env
}

func (c callCtx) Arg(name string) (Value, bool) { return c.env.Lookup(name) }

func (c callCtx) MustArg(name string) Value {
	v, ok := c.env.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("native: parameter %q is not bound", name))
	}
	return v
}

func (c callCtx) Env() *Env { return c.env }

// ─────────────────────────────── statements ────────────────────────────────

func (ip *Interpreter) evalNode(n Node, env *Env) (Value, error) {
	switch n := n.(type) {
	case *Let:
		if env.HasOwn(n.Name) {
			return Absent, rtError(KindRedeclaration, "identifier '%s' already exists", n.Name)
		}
		v, err := ip.evalExpr(n.Value, env)
		if err != nil {
			return Absent, err
		}
		env.Define(n.Name, orNil(v))
		return Absent, nil
	case Expr:
		return ip.evalExpr(n, env)
	default:
		return Absent, rtError(KindRuntime, "cannot evaluate %T", n)
	}
}

func (ip *Interpreter) evalBody(body []Node, env *Env) (Value, error) {
	result := Absent
	for _, stmt := range body {
		v, err := ip.evalNode(stmt, env)
		if err != nil {
			return Absent, err
		}
		result = v
	}
	return result, nil
}

// ─────────────────────────────── expressions ───────────────────────────────

func (ip *Interpreter) evalExpr(e Expr, env *Env) (Value, error) {
	switch e := e.(type) {
	case *Literal:
		return e.Value, nil
	case *Identifier:
		return env.Get(e.Name)
	case *VarArgs:
		return env.Get(e.Name)
	case *Function:
		return FunctionVal(&FunctionValue{
			Name:     e.Name,
			Params:   e.Params,
			Variadic: e.Variadic,
			Body:     e.Body,
			Closure:  env,
		}), nil
	case *Call:
		return ip.evalCall(e, env)
	case *Conditional:
		return ip.evalConditional(e, env)
	default:
		return Absent, rtError(KindRuntime, "cannot evaluate %T", e)
	}
}

func (ip *Interpreter) evalConditional(c *Conditional, env *Env) (Value, error) {
	for br := c; br != nil; br = br.Next {
		cond, err := ip.evalExpr(br.Cond, env)
		if err != nil {
			return Absent, err
		}
		if !isBoolean(cond) {
			return Absent, rtError(KindType, "expected if to be called with a boolean, but it was called with %s", FormatValue(cond))
		}
		if isTrue(cond) {
			return ip.evalBody(br.Body, env)
		}
	}
	return Absent, nil
}

func (ip *Interpreter) evalCall(c *Call, env *Env) (Value, error) {
	callee, err := ip.evalExpr(c.Callee, env)
	if err != nil {
		return Absent, err
	}
	if !isFunction(callee) {
		return Absent, rtError(KindType, "%s is not a function", calleeName(c.Callee, callee))
	}
	f := callee.Data.(*FunctionValue)
	if err := checkArity(f, len(c.Args)); err != nil {
		return Absent, err
	}
	args, err := ip.evalArgs(f, c.Args, env)
	if err != nil {
		return Absent, err
	}
	return ip.invoke(f, args)
}

// evalArgs evaluates call arguments in the caller's frame. Arguments that
// land in f's rest list splice @name references; anywhere else @name is the
// list itself.
func (ip *Interpreter) evalArgs(f *FunctionValue, exprs []Expr, env *Env) ([]Value, error) {
	nfixed := len(f.fixedParams())
	args := make([]Value, 0, len(exprs))
	for i, a := range exprs {
		if va, ok := a.(*VarArgs); ok && f.Variadic && i >= nfixed {
			rest, err := env.Get(va.Name)
			if err != nil {
				return nil, err
			}
			if !isList(rest) {
				return nil, rtError(KindType, "cannot spread '@%s': expected a list, got %s", va.Name, FormatValue(rest))
			}
			args = append(args, rest.Data.(*ListObject).Items...)
			continue
		}
		v, err := ip.evalExpr(a, env)
		if err != nil {
			return nil, err
		}
		args = append(args, orNil(v))
	}
	return args, nil
}

func calleeName(e Expr, v Value) string {
	if id, ok := e.(*Identifier); ok {
		return id.Name
	}
	return FormatValue(v)
}

// ─────────────────────────────── application ───────────────────────────────

// apply runs f on already-evaluated arguments, one value per argument.
func (ip *Interpreter) apply(f *FunctionValue, args []Value) (Value, error) {
	if err := checkArity(f, len(args)); err != nil {
		return Absent, err
	}
	return ip.invoke(f, args)
}

// invoke binds args in a fresh frame and runs f. The arity has already been
// checked against the call as written; spliced rest arguments may make args
// longer than that.
func (ip *Interpreter) invoke(f *FunctionValue, args []Value) (Value, error) {
	ip.depth++
	defer func() { ip.depth-- }()
	if ip.depth > ip.maxCallDepth {
		return Absent, rtError(KindStackOverflow, "maximum call depth exceeded (%d)", ip.maxCallDepth)
	}

	frame := NewEnv(f.Closure)
	fixed := f.fixedParams()
	for i, p := range fixed {
		if i < len(args) {
			frame.Define(p.Name, args[i])
			continue
		}
		v, err := ip.evalExpr(p.Default, frame)
		if err != nil {
			return Absent, err
		}
		frame.Define(p.Name, orNil(v))
	}
	if rest, ok := f.restParam(); ok {
		var extra []Value
		if len(args) > len(fixed) {
			extra = args[len(fixed):]
		}
		frame.Define(rest, List(extra))
	}

	if f.IsNative() {
		return f.Native(ip, callCtx{env: frame})
	}
	return ip.evalBody(f.Body, frame)
}

func checkArity(f *FunctionValue, n int) error {
	min, max := f.Arity()
	if n >= min && (max < 0 || n <= max) {
		return nil
	}
	var want string
	switch {
	case max < 0:
		want = fmt.Sprintf("at least %d", min)
	case min == max:
		want = fmt.Sprintf("%d", min)
	default:
		want = fmt.Sprintf("%d to %d", min, max)
	}
	return rtError(KindArity, "%d arguments passed to '%s' (expected %s)", n, f.Name, want)
}
