package mylang

// ---- comparison & logic --------------------------------------------------

func registerLogicBuiltins(r *registry) {
	r.native("=", []string{"a", "b"}, "Equality. Numbers compare by value across int and float; collections and functions by identity.",
		func(_ *Interpreter, ctx CallCtx) (Value, error) {
			return Bool(Equal(ctx.MustArg("a"), ctx.MustArg("b"))), nil
		})

	r.native("!=", []string{"a", "b"}, "Negation of =.",
		func(_ *Interpreter, ctx CallCtx) (Value, error) {
			return Bool(!Equal(ctx.MustArg("a"), ctx.MustArg("b"))), nil
		})

	ordering := func(name string, cmp func(c int) bool) {
		r.native(name, []string{"a", "b"}, "Numeric comparison.",
			func(_ *Interpreter, ctx CallCtx) (Value, error) {
				xs, err := typedArgs(ctx, []string{"a", "b"}, "", number...)
				if err != nil {
					return Absent, err
				}
				return Bool(cmp(compareNumbers(xs[0], xs[1]))), nil
			})
	}
	ordering(">", func(c int) bool { return c > 0 })
	ordering(">=", func(c int) bool { return c >= 0 })
	ordering("<", func(c int) bool { return c < 0 })
	ordering("<=", func(c int) bool { return c <= 0 })

	r.native("and", []string{"a", "b", "@rest"}, "Logical AND of two or more booleans. All operands are evaluated.",
		func(_ *Interpreter, ctx CallCtx) (Value, error) {
			xs, err := typedArgs(ctx, []string{"a", "b"}, "rest", tBoolean)
			if err != nil {
				return Absent, err
			}
			for _, x := range xs {
				if isFalse(x) {
					return False, nil
				}
			}
			return True, nil
		})

	r.native("or", []string{"a", "b", "@rest"}, "Logical OR of two or more booleans. All operands are evaluated.",
		func(_ *Interpreter, ctx CallCtx) (Value, error) {
			xs, err := typedArgs(ctx, []string{"a", "b"}, "rest", tBoolean)
			if err != nil {
				return Absent, err
			}
			for _, x := range xs {
				if isTrue(x) {
					return True, nil
				}
			}
			return False, nil
		})

	r.native("not", []string{"a"}, "Logical negation.",
		func(_ *Interpreter, ctx CallCtx) (Value, error) {
			xs, err := typedArgs(ctx, []string{"a"}, "", tBoolean)
			if err != nil {
				return Absent, err
			}
			return Bool(isFalse(xs[0])), nil
		})
}

// compareNumbers returns -1, 0 or 1. Two ints compare exactly; otherwise both
// sides are compared as floats.
func compareNumbers(a, b Value) int {
	if isInt(a) && isInt(b) {
		x, y := a.Data.(int64), b.Data.(int64)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
	x, y := toFloat(a), toFloat(b)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}
