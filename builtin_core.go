package mylang

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ---- registration --------------------------------------------------------

// registry collects the built-in function values. Each register*Builtins
// function in builtin_*.go adds one category.
type registry struct {
	fns []*FunctionValue
}

// native adds a built-in. params uses the source syntax: a leading '@' marks
// the trailing variadic parameter.
func (r *registry) native(name string, params []string, doc string, impl NativeImpl) {
	fn := &FunctionValue{Name: name, Native: impl, Doc: doc}
	for _, p := range params {
		if strings.HasPrefix(p, "@") {
			fn.Params = append(fn.Params, Param{Name: p[1:], Variadic: true})
			fn.Variadic = true
			continue
		}
		fn.Params = append(fn.Params, Param{Name: p})
	}
	r.fns = append(r.fns, fn)
}

// builtins is built once per process and shared read-only by every
// interpreter. Natives carry no closure, so sharing the values is safe.
var builtins = sync.OnceValue(func() []*FunctionValue {
	r := &registry{}
	registerIOBuiltins(r)
	registerMathBuiltins(r)
	registerBitwiseBuiltins(r)
	registerLogicBuiltins(r)
	registerTypeBuiltins(r)
	registerCollectionBuiltins(r)
	return r.fns
})

func installBuiltins(env *Env) {
	for _, fn := range builtins() {
		env.Define(fn.Name, FunctionVal(fn))
	}
}

// BuiltinNames lists the built-in function names in sorted order.
func BuiltinNames() []string {
	fns := builtins()
	out := make([]string, 0, len(fns))
	for _, fn := range fns {
		out = append(out, fn.Name)
	}
	sort.Strings(out)
	return out
}

// ---- argument validation -------------------------------------------------

type typeCheck struct {
	name string
	fn   func(Value) bool
}

var (
	tInt     = typeCheck{"int", isInt}
	tFloat   = typeCheck{"float", isFloat}
	tBoolean = typeCheck{"boolean", isBoolean}
)

// validateType fails with a TypeError unless v satisfies one of checks.
func validateType(v Value, name string, checks ...typeCheck) error {
	for _, c := range checks {
		if c.fn(v) {
			return nil
		}
	}
	names := make([]string, len(checks))
	for i, c := range checks {
		names[i] = "'" + c.name + "'"
	}
	return rtError(KindType, "expected '%s' to be of one of the types [%s]", name, strings.Join(names, " "))
}

// typedArgs reads the named fixed parameters followed by the elements of the rest
// parameter (if given), validating each against checks. Rest elements are
// reported as "@rest[i]".
func typedArgs(ctx CallCtx, fixed []string, rest string, checks ...typeCheck) ([]Value, error) {
	out := make([]Value, 0, len(fixed))
	for _, name := range fixed {
		v := ctx.MustArg(name)
		if err := validateType(v, name, checks...); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if rest == "" {
		return out, nil
	}
	for i, v := range restItems(ctx, rest) {
		if err := validateType(v, fmt.Sprintf("@%s[%d]", rest, i), checks...); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func restItems(ctx CallCtx, name string) []Value {
	return ctx.MustArg(name).Data.(*ListObject).Items
}

// number is the type set accepted by arithmetic and ordering.
var number = []typeCheck{tInt, tFloat}
