// values.go: runtime value model.
//
// Value is a tagged carrier (Tag + Data). The zero Value is VTAbsent, the
// "no value" produced by a let line or a conditional whose branches all
// failed; it is never echoed by the REPL and becomes nil once stored.
//
// Collections and functions are reference values: equality between two of
// them is identity. Scalars compare by value, and numbers compare across
// int/float (1 = 1.0). Sets and dicts dedupe keys with the same equality and
// preserve insertion order.
package mylang

import (
	"math"
)

// ValueTag enumerates the runtime kinds.
type ValueTag int

const (
	VTAbsent   ValueTag = iota // no payload
	VTNil                      // no payload
	VTBool                     // bool
	VTInt                      // int64
	VTFloat                    // float64
	VTString                   // string
	VTList                     // *ListObject
	VTSet                      // *SetObject
	VTDict                     // *DictObject
	VTFunction                 // *FunctionValue
)

var tagNames = [...]string{
	VTAbsent:   "absent",
	VTNil:      "nil",
	VTBool:     "boolean",
	VTInt:      "int",
	VTFloat:    "float",
	VTString:   "string",
	VTList:     "list",
	VTSet:      "set",
	VTDict:     "dict",
	VTFunction: "function",
}

func (t ValueTag) String() string {
	if int(t) >= 0 && int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "unknown"
}

// Value is the universal runtime carrier.
type Value struct {
	Tag  ValueTag
	Data any
}

var (
	Absent = Value{}
	Nil    = Value{Tag: VTNil}
	True   = Value{Tag: VTBool, Data: true}
	False  = Value{Tag: VTBool, Data: false}
)

func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}
func Int(n int64) Value     { return Value{Tag: VTInt, Data: n} }
func Float(f float64) Value { return Value{Tag: VTFloat, Data: f} }
func Str(s string) Value    { return Value{Tag: VTString, Data: s} }

// ListObject is an ordered sequence.
type ListObject struct {
	Items []Value
}

// List builds a list value over a copy of items.
func List(items []Value) Value {
	return Value{Tag: VTList, Data: &ListObject{Items: append([]Value{}, items...)}}
}

// SetObject is a deduplicated collection preserving insertion order.
type SetObject struct {
	Items []Value
	index map[valueKey]struct{}
}

// NewSet builds a set from items; later duplicates are dropped.
func NewSet(items []Value) Value {
	s := &SetObject{index: map[valueKey]struct{}{}}
	for _, v := range items {
		s.Add(v)
	}
	return Value{Tag: VTSet, Data: s}
}

// Add inserts v unless an equal value is already present.
func (s *SetObject) Add(v Value) {
	k := keyOf(v)
	if _, ok := s.index[k]; ok {
		return
	}
	s.index[k] = struct{}{}
	s.Items = append(s.Items, v)
}

// Has reports whether an equal value is present.
func (s *SetObject) Has(v Value) bool {
	_, ok := s.index[keyOf(v)]
	return ok
}

// DictObject maps keys to values preserving first-insertion order of keys.
type DictObject struct {
	Keys   []Value
	Values []Value
	index  map[valueKey]int
}

// NewDict returns an empty dict value.
func NewDict() Value {
	return Value{Tag: VTDict, Data: &DictObject{index: map[valueKey]int{}}}
}

// Set binds k to v, overwriting an earlier equal key in place.
func (d *DictObject) Set(k, v Value) {
	key := keyOf(k)
	if i, ok := d.index[key]; ok {
		d.Values[i] = v
		return
	}
	d.index[key] = len(d.Keys)
	d.Keys = append(d.Keys, k)
	d.Values = append(d.Values, v)
}

// Get looks k up.
func (d *DictObject) Get(k Value) (Value, bool) {
	if i, ok := d.index[keyOf(k)]; ok {
		return d.Values[i], true
	}
	return Absent, false
}

// Len returns the number of entries.
func (d *DictObject) Len() int { return len(d.Keys) }

// NativeImpl implements a built-in. It reads its already-bound parameters
// through ctx.
type NativeImpl func(ip *Interpreter, ctx CallCtx) (Value, error)

// FunctionValue is a first-class function: either user code (Body) closed
// over the environment where its literal was evaluated, or a native.
// Closure is assigned once at construction and never changes.
type FunctionValue struct {
	Name     string
	Params   []Param
	Variadic bool
	Body     []Node
	Native   NativeImpl
	Closure  *Env
	Doc      string
}

// FunctionVal wraps f into a Value.
func FunctionVal(f *FunctionValue) Value { return Value{Tag: VTFunction, Data: f} }

// Arity returns the accepted argument count range (max is -1 when variadic).
func (f *FunctionValue) Arity() (min, max int) { return paramArity(f.Params, f.Variadic) }

// IsNative reports whether f is implemented in Go.
func (f *FunctionValue) IsNative() bool { return f.Native != nil }

// restParam returns the variadic parameter name, if any.
func (f *FunctionValue) restParam() (string, bool) {
	if !f.Variadic || len(f.Params) == 0 {
		return "", false
	}
	return f.Params[len(f.Params)-1].Name, true
}

// fixedParams returns the non-variadic parameters.
func (f *FunctionValue) fixedParams() []Param {
	if f.Variadic && len(f.Params) > 0 {
		return f.Params[:len(f.Params)-1]
	}
	return f.Params
}

// ---- equality ------------------------------------------------------------

// valueKey is a comparable projection of a Value: scalars by value (integral
// floats fold onto ints), references by pointer identity.
type valueKey struct {
	tag  ValueTag
	data any
}

func keyOf(v Value) valueKey {
	switch v.Tag {
	case VTAbsent:
		return valueKey{tag: VTNil}
	case VTFloat:
		f := v.Data.(float64)
		if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
			return valueKey{tag: VTInt, data: int64(f)}
		}
		return valueKey{tag: VTFloat, data: f}
	default:
		return valueKey{tag: v.Tag, data: v.Data}
	}
}

// Equal implements the language's `=`.
func Equal(a, b Value) bool {
	if a.Tag == VTFloat && b.Tag == VTFloat {
		return a.Data.(float64) == b.Data.(float64)
	}
	return keyOf(a) == keyOf(b)
}

// ---- classification ------------------------------------------------------

func isNil(v Value) bool      { return v.Tag == VTNil || v.Tag == VTAbsent }
func isInt(v Value) bool      { return v.Tag == VTInt }
func isFloat(v Value) bool    { return v.Tag == VTFloat }
func isNumber(v Value) bool   { return v.Tag == VTInt || v.Tag == VTFloat }
func isBoolean(v Value) bool  { return v.Tag == VTBool }
func isTrue(v Value) bool     { return v.Tag == VTBool && v.Data.(bool) }
func isFalse(v Value) bool    { return v.Tag == VTBool && !v.Data.(bool) }
func isString(v Value) bool   { return v.Tag == VTString }
func isFunction(v Value) bool { return v.Tag == VTFunction }
func isList(v Value) bool     { return v.Tag == VTList }
func isSet(v Value) bool      { return v.Tag == VTSet }
func isDict(v Value) bool     { return v.Tag == VTDict }

func toFloat(v Value) float64 {
	if v.Tag == VTInt {
		return float64(v.Data.(int64))
	}
	return v.Data.(float64)
}

// orNil turns "no value" into nil before it is stored anywhere.
func orNil(v Value) Value {
	if v.Tag == VTAbsent {
		return Nil
	}
	return v
}
