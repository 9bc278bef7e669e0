package mylang

// ---- bitwise -------------------------------------------------------------
//
// Operands are ints only. Shift counts are taken modulo 64.

func registerBitwiseBuiltins(r *registry) {
	r.native("|", []string{"a", "b", "@rest"}, "Bitwise OR of two or more ints.",
		func(_ *Interpreter, ctx CallCtx) (Value, error) {
			xs, err := typedArgs(ctx, []string{"a", "b"}, "rest", tInt)
			if err != nil {
				return Absent, err
			}
			acc := int64(0)
			for _, x := range xs {
				acc |= x.Data.(int64)
			}
			return Int(acc), nil
		})

	r.native("&", []string{"a", "b", "@rest"}, "Bitwise AND of two or more ints.",
		func(_ *Interpreter, ctx CallCtx) (Value, error) {
			xs, err := typedArgs(ctx, []string{"a", "b"}, "rest", tInt)
			if err != nil {
				return Absent, err
			}
			acc := xs[0].Data.(int64)
			for _, x := range xs[1:] {
				acc &= x.Data.(int64)
			}
			return Int(acc), nil
		})

	r.native("~", []string{"a"}, "Bitwise complement.",
		func(_ *Interpreter, ctx CallCtx) (Value, error) {
			xs, err := typedArgs(ctx, []string{"a"}, "", tInt)
			if err != nil {
				return Absent, err
			}
			return Int(^xs[0].Data.(int64)), nil
		})

	binary := func(name, doc string, op func(a, b int64) int64) {
		r.native(name, []string{"a", "b"}, doc,
			func(_ *Interpreter, ctx CallCtx) (Value, error) {
				xs, err := typedArgs(ctx, []string{"a", "b"}, "", tInt)
				if err != nil {
					return Absent, err
				}
				return Int(op(xs[0].Data.(int64), xs[1].Data.(int64))), nil
			})
	}
	binary("xor", "Bitwise exclusive OR.", func(a, b int64) int64 { return a ^ b })
	binary("<<", "Left shift.", func(a, b int64) int64 { return a << uint64(b&63) })
	binary(">>", "Arithmetic (sign-propagating) right shift.", func(a, b int64) int64 { return a >> uint64(b&63) })
	binary(">>>", "Logical (zero-filling) right shift.", func(a, b int64) int64 { return int64(uint64(a) >> uint64(b&63)) })
}
