// interpreter.go: public API surface of the mylang runtime.
//
// OVERVIEW
// ========
// This file holds the exported entry points. The evaluator itself lives in
// interpreter_exec.go and the built-in library in builtin_*.go.
//
// EXECUTION & SCOPING SEMANTICS
// -----------------------------
// Every Interpreter owns exactly one persistent frame, Global. NewInterpreter
// fills it with the built-in functions, and top-level program lines and REPL
// lines are evaluated directly in it. Because `let` refuses to rebind a name
// that already exists in the same frame, user code cannot redefine a built-in
// at top level; it can only shadow one inside a function.
//
// A call creates a fresh frame whose parent is the callee's closure (the frame
// where its literal was evaluated), never the caller's frame.
//
// Entry points:
//   - RunProgram evaluates all top-level lines, then calls `main` with no
//     arguments and returns its result (see ExitCode).
//   - EvalLine / EvalSource evaluate REPL input against Global.
//   - EvalLineIn evaluates in a caller-supplied frame.
//   - Call applies a function value to already-evaluated arguments.
//
// ERRORS
// ------
// All entry points return (Value, error). Errors are *LexError, *ParseError,
// or *RuntimeError (see errors.go). A failed evaluation leaves the interpreter
// usable; bindings made before the failure remain.
//
////////////////////////////////////////////////////////////////////////////////
//                               PUBLIC INTERPRETER
////////////////////////////////////////////////////////////////////////////////

package mylang

import (
	"io"
	"os"

	"github.com/jcgregorio/logger"
	"github.com/jcgregorio/slog"
)

// DefaultMaxCallDepth bounds nested calls before a StackOverflowError.
const DefaultMaxCallDepth = 10000

// MaxCallDepthLimit is the largest accepted call depth. Deeper nesting would
// exhaust the Go stack before StackOverflowError could be raised.
const MaxCallDepthLimit = 100000

// Interpreter evaluates mylang programs.
type Interpreter struct {
	// Global is the single persistent frame holding built-ins and top-level
	// bindings.
	Global *Env

	stdout       io.Writer
	log          slog.Logger
	maxCallDepth int
	depth        int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithStdout redirects println output (default os.Stdout).
func WithStdout(w io.Writer) Option {
	return func(ip *Interpreter) { ip.stdout = w }
}

// WithLogger sets the debug logger (default: a no-op logger).
func WithLogger(l slog.Logger) Option {
	return func(ip *Interpreter) { ip.log = l }
}

// WithMaxCallDepth bounds call nesting. Values < 1 select the default and
// values above MaxCallDepthLimit are clamped to it.
func WithMaxCallDepth(n int) Option {
	return func(ip *Interpreter) {
		switch {
		case n < 1:
			n = DefaultMaxCallDepth
		case n > MaxCallDepthLimit:
			n = MaxCallDepthLimit
		}
		ip.maxCallDepth = n
	}
}

// NewInterpreter returns an interpreter whose Global frame holds the built-in
// library.
func NewInterpreter(opts ...Option) *Interpreter {
	ip := &Interpreter{
		Global:       NewEnv(nil),
		stdout:       os.Stdout,
		log:          logger.NewNopLogger(),
		maxCallDepth: DefaultMaxCallDepth,
	}
	for _, o := range opts {
		o(ip)
	}
	installBuiltins(ip.Global)
	return ip
}

////////////////////////////////////////////////////////////////////////////////
//                         PUBLIC METHODS (THIN DELEGATIONS)
////////////////////////////////////////////////////////////////////////////////

// RunProgram evaluates every top-level line of p in Global, then calls the
// zero-argument function bound to `main` and returns its result. A program
// without `main` fails with SymbolNotFound.
func (ip *Interpreter) RunProgram(p *Program) (Value, error) {
	ip.log.Debugf("running program with %d top-level statements", len(p.Statements))
	for _, stmt := range p.Statements {
		if _, err := ip.EvalLine(stmt); err != nil {
			return Absent, err
		}
	}
	mainFn, err := ip.Global.Get("main")
	if err != nil {
		return Absent, err
	}
	ip.log.Debugf("calling main")
	return ip.Call(mainFn)
}

// EvalLine evaluates one statement in Global. A let line yields Absent.
func (ip *Interpreter) EvalLine(stmt Node) (Value, error) {
	return ip.EvalLineIn(stmt, ip.Global)
}

// EvalLineIn evaluates one statement in env.
func (ip *Interpreter) EvalLineIn(stmt Node, env *Env) (Value, error) {
	ip.depth = 0
	return ip.evalNode(stmt, env)
}

// EvalSource parses src and evaluates each statement in Global, returning the
// value of the last one.
func (ip *Interpreter) EvalSource(src string) (Value, error) {
	prog, err := ParseProgram(src)
	if err != nil {
		return Absent, err
	}
	last := Absent
	for _, stmt := range prog.Statements {
		v, err := ip.EvalLine(stmt)
		if err != nil {
			return Absent, err
		}
		last = v
	}
	return last, nil
}

// Call applies fn to already-evaluated arguments through the regular call
// protocol (arity check, fresh frame on the closure, defaults, rest list).
func (ip *Interpreter) Call(fn Value, args ...Value) (Value, error) {
	if !isFunction(fn) {
		return Absent, rtError(KindType, "%s is not a function", FormatValue(fn))
	}
	bound := make([]Value, len(args))
	for i, a := range args {
		bound[i] = orNil(a)
	}
	return ip.apply(fn.Data.(*FunctionValue), bound)
}

// ExitCode maps the result of `main` to a process exit code: an int is used
// as-is, nil or no value means 0, and anything else is an
// InvalidExitCodeError.
func ExitCode(v Value) (int, error) {
	switch v.Tag {
	case VTInt:
		return int(v.Data.(int64)), nil
	case VTNil, VTAbsent:
		return 0, nil
	default:
		return 1, rtError(KindInvalidExitCode, "main returned with '%s' (expected an int or nil)", FormatValue(v))
	}
}

// Stdout returns the writer println writes to.
func (ip *Interpreter) Stdout() io.Writer { return ip.stdout }
