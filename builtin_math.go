package mylang

import (
	"math"
)

// ---- arithmetic ----------------------------------------------------------
//
// int op int stays int (wrapping on overflow); any float operand promotes the
// operation to float.

func registerMathBuiltins(r *registry) {
	r.native("+", []string{"a", "b", "@rest"}, "Sum of two or more numbers.",
		func(_ *Interpreter, ctx CallCtx) (Value, error) {
			xs, err := typedArgs(ctx, []string{"a", "b"}, "rest", number...)
			if err != nil {
				return Absent, err
			}
			return foldNumbers(xs, func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b }), nil
		})

	r.native("-", []string{"a", "b"}, "Difference a - b.",
		func(_ *Interpreter, ctx CallCtx) (Value, error) {
			xs, err := typedArgs(ctx, []string{"a", "b"}, "", number...)
			if err != nil {
				return Absent, err
			}
			return foldNumbers(xs, func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b }), nil
		})

	r.native("*", []string{"a", "b", "@rest"}, "Product of two or more numbers.",
		func(_ *Interpreter, ctx CallCtx) (Value, error) {
			xs, err := typedArgs(ctx, []string{"a", "b"}, "rest", number...)
			if err != nil {
				return Absent, err
			}
			return foldNumbers(xs, func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b }), nil
		})

	r.native("/", []string{"a", "b"}, "Quotient a / b. Two ints divide to an int when exact, otherwise a float.",
		func(_ *Interpreter, ctx CallCtx) (Value, error) {
			xs, err := typedArgs(ctx, []string{"a", "b"}, "", number...)
			if err != nil {
				return Absent, err
			}
			a, b := xs[0], xs[1]
			if isZero(b) {
				return Absent, rtError(KindDivisionByZero, "division by zero")
			}
			if isInt(a) && isInt(b) {
				x, y := a.Data.(int64), b.Data.(int64)
				if x%y == 0 {
					return Int(x / y), nil
				}
			}
			return Float(toFloat(a) / toFloat(b)), nil
		})

	r.native("pow", []string{"a", "b"}, "a raised to the power b. An int base with a non-negative int exponent stays int.",
		func(_ *Interpreter, ctx CallCtx) (Value, error) {
			xs, err := typedArgs(ctx, []string{"a", "b"}, "", number...)
			if err != nil {
				return Absent, err
			}
			a, b := xs[0], xs[1]
			if isInt(a) && isInt(b) && b.Data.(int64) >= 0 {
				return Int(ipow(a.Data.(int64), b.Data.(int64))), nil
			}
			return Float(math.Pow(toFloat(a), toFloat(b))), nil
		})

	r.native("mod", []string{"a", "b"}, "Remainder of a / b, with the sign of a.",
		func(_ *Interpreter, ctx CallCtx) (Value, error) {
			xs, err := typedArgs(ctx, []string{"a", "b"}, "", number...)
			if err != nil {
				return Absent, err
			}
			a, b := xs[0], xs[1]
			if isZero(b) {
				return Absent, rtError(KindDivisionByZero, "modulo by zero")
			}
			if isInt(a) && isInt(b) {
				return Int(a.Data.(int64) % b.Data.(int64)), nil
			}
			return Float(math.Mod(toFloat(a), toFloat(b))), nil
		})
}

func foldNumbers(xs []Value, iop func(a, b int64) int64, fop func(a, b float64) float64) Value {
	acc := xs[0]
	for _, x := range xs[1:] {
		if isInt(acc) && isInt(x) {
			acc = Int(iop(acc.Data.(int64), x.Data.(int64)))
			continue
		}
		acc = Float(fop(toFloat(acc), toFloat(x)))
	}
	return acc
}

func isZero(v Value) bool {
	switch v.Tag {
	case VTInt:
		return v.Data.(int64) == 0
	case VTFloat:
		return v.Data.(float64) == 0
	}
	return false
}

// ipow is exponentiation by squaring; it wraps on overflow like the other
// integer operators.
func ipow(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}
